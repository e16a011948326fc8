// Package align implements the alignment solver (§4.4): for each
// AlignedList in a translated layout.Statement it computes, per column, the
// printed width every row pads its cell out to before the next cell
// begins.
//
// Width is measured relative to each cell's own start rather than the
// absolute column from line start — the renderer's indentation and each
// clause's keyword prefix vary in length, and reproducing real terminal
// tab-stop expansion across that varying prefix would require rendering
// and solving in the same pass. Measuring each column's own maximum
// rendered width, rounded up to the next tab_size boundary strictly past
// it (so at least one column of padding follows the widest value), gives
// the same "columns line up" result for
// the uniform-width rows this solver actually sees and keeps the solver
// and renderer cleanly separated (see DESIGN.md).
package align

import "github.com/uroborosql/sqlfmt/layout"

// Solve walks every AlignedList reachable from stmt (including nested
// sub-statements and CTE bodies) and fills in each Cell's Width.
func Solve(stmt *layout.Statement, tabSize int) {
	if tabSize < 1 {
		tabSize = 1
	}
	for _, cl := range stmt.Clauses {
		solveBody(cl.Body, tabSize)
	}
}

func solveBody(b layout.Body, tabSize int) {
	switch v := b.(type) {
	case *layout.AlignedList:
		solveList(v, tabSize)
	case *layout.SubStatement:
		Solve(v.Inner, tabSize)
	case *layout.CTEList:
		for i := range v.Entries {
			Solve(v.Entries[i].Body, tabSize)
		}
	}
}

// solveList computes, for every column except the last, the width every
// row's cell in that column pads to (§4.4: "at least one tab separates
// values; if a value ends exactly on a tab-stop, one additional tab is
// added").
func solveList(l *layout.AlignedList, tabSize int) {
	if len(l.Items) == 0 {
		return
	}
	cols := 0
	for _, it := range l.Items {
		if len(it.Cells) > cols {
			cols = len(it.Cells)
		}
	}
	widths := make([]int, cols)
	for _, it := range l.Items {
		for i, c := range it.Cells {
			if len(c.Text) > widths[i] {
				widths[i] = len(c.Text)
			}
		}
	}
	for i, w := range widths {
		widths[i] = nextStop(w, tabSize)
	}
	for r := range l.Items {
		for i := range l.Items[r].Cells {
			if i < cols-1 {
				l.Items[r].Cells[i].Width = widths[i]
			}
		}
	}
}

// nextStop returns the smallest multiple of tabSize strictly greater than
// w, so even the widest value is followed by at least one column of
// padding (nextStop(5, 4) is 8: three columns).
func nextStop(w, tabSize int) int {
	stop := ((w / tabSize) + 1) * tabSize
	return stop
}
