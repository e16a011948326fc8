// Package render implements the tab-stop renderer (§4.5): it walks a
// layout.Statement whose AlignedList cells already carry solved widths
// (align.Solve) and emits the final formatted text, leading commas,
// indentation levels, and re-anchored comments included.
package render

import (
	"strings"

	"github.com/uroborosql/sqlfmt/config"
	"github.com/uroborosql/sqlfmt/layout"
)

// Render prints stmt as top-level formatted SQL text, newline-terminated
// (§4.5: "the final output ends with exactly one \n").
func Render(stmt *layout.Statement, cfg config.Config) string {
	var b strings.Builder
	r := &renderer{cfg: cfg, step: indentStep(cfg)}
	r.statement(&b, stmt, 0)
	out := b.String()
	out = strings.TrimRight(out, "\n") + "\n"
	return out
}

type renderer struct {
	cfg  config.Config
	step string
}

func indentStep(cfg config.Config) string {
	if cfg.IndentTab {
		return "\t"
	}
	n := cfg.TabSize
	if n < 1 {
		n = 1
	}
	return strings.Repeat(" ", n)
}

func (r *renderer) indent(level int) string {
	return strings.Repeat(r.step, level)
}

func (r *renderer) statement(b *strings.Builder, stmt *layout.Statement, level int) {
	r.writeLeading(b, stmt.Leading, level)
	for _, cl := range stmt.Clauses {
		r.clause(b, cl, level)
	}
	if stmt.Semicolon {
		b.WriteString(r.indent(level) + ";\n")
	}
	r.writeTrailingInline(b, stmt.Trailing)
}

func (r *renderer) clause(b *strings.Builder, cl *layout.Clause, level int) {
	r.writeLeading(b, cl.Leading, level)
	if cl.Keyword != "" {
		b.WriteString(r.indent(level) + cl.Keyword)
		if cl.Body == nil {
			r.writeTrailingInline(b, cl.Trailing)
			b.WriteString("\n")
			return
		}
		if r.isInlineBody(cl.Body) {
			e := cl.Body.(*layout.Expression)
			b.WriteString(" " + e.Text)
			r.writeTrailingInline(b, e.Trailing)
			r.writeTrailingInline(b, cl.Trailing)
			b.WriteString("\n")
			return
		}
		b.WriteString("\n")
		r.body(b, cl.Body, level+1)
		r.writeTrailingInline(b, cl.Trailing)
		return
	}
	r.body(b, cl.Body, level+1)
}

// isInlineBody reports whether a clause's body prints on the same line as
// its keyword (a bare expression like LIMIT/OFFSET) rather than starting a
// new indented block.
func (r *renderer) isInlineBody(body layout.Body) bool {
	e, ok := body.(*layout.Expression)
	return ok && e.Text != ""
}

func (r *renderer) body(b *strings.Builder, body layout.Body, level int) {
	switch v := body.(type) {
	case *layout.AlignedList:
		r.alignedList(b, v, level)
	case *layout.Expression:
		if v.Text == "" {
			return
		}
		r.writeLeading(b, v.Leading, level)
		b.WriteString(r.indent(level) + v.Text)
		r.writeTrailingInline(b, v.Trailing)
		b.WriteString("\n")
	case *layout.BooleanChain:
		r.booleanChain(b, v, level)
	case *layout.JoinChain:
		r.joinChain(b, v, level)
	case *layout.SubStatement:
		r.statement(b, v.Inner, level)
	case *layout.CTEList:
		r.cteList(b, v, level)
	}
}

func (r *renderer) alignedList(b *strings.Builder, l *layout.AlignedList, level int) {
	ind := r.indent(level)
	for i, it := range l.Items {
		r.writeLeading(b, it.Leading, level)
		b.WriteString(ind)
		if l.LeadingComma {
			if i == 0 {
				b.WriteString("  ")
			} else {
				b.WriteString(", ")
			}
		}
		for ci, cell := range it.Cells {
			if ci > 0 && cell.Text == "" {
				continue
			}
			b.WriteString(cell.Text)
			if cell.Width > len(cell.Text) {
				b.WriteString(strings.Repeat(" ", cell.Width-len(cell.Text)))
			} else if ci < len(it.Cells)-1 {
				b.WriteString(" ")
			}
		}
		r.writeTrailingInline(b, it.Trailing)
		b.WriteString("\n")
	}
}

func (r *renderer) booleanChain(b *strings.Builder, bc *layout.BooleanChain, level int) {
	r.writeLeading(b, bc.Leading, level)
	ind := r.indent(level)
	if len(bc.Operands) == 0 {
		return
	}
	b.WriteString(ind + bc.Operands[0] + "\n")
	for i, conn := range bc.Connectors {
		b.WriteString(ind + conn + " " + bc.Operands[i+1] + "\n")
	}
}

func (r *renderer) joinChain(b *strings.Builder, jc *layout.JoinChain, level int) {
	ind := r.indent(level)
	for i, item := range jc.Items {
		b.WriteString(ind)
		if i == 0 {
			b.WriteString("  ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.Seed + "\n")
		for _, j := range item.Joins {
			b.WriteString(ind + j.Kind + " " + j.Table)
			if j.Condition != "" {
				b.WriteString(" " + j.Condition)
			}
			b.WriteString("\n")
		}
	}
}

func (r *renderer) cteList(b *strings.Builder, l *layout.CTEList, level int) {
	ind := r.indent(level)
	for i, e := range l.Entries {
		r.writeLeading(b, e.Leading, level)
		b.WriteString(ind)
		if i == 0 {
			b.WriteString("  ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(e.Header + " (\n")
		r.statement(b, e.Body, level+1)
		b.WriteString(ind + ")")
		r.writeTrailingInline(b, e.Trailing)
		b.WriteString("\n")
	}
}

func (r *renderer) writeLeading(b *strings.Builder, comments []string, level int) {
	for _, c := range comments {
		b.WriteString(r.indent(level) + c + "\n")
	}
}

func (r *renderer) writeTrailingInline(b *strings.Builder, comments []string) {
	for _, c := range comments {
		b.WriteString(" " + c)
	}
}
