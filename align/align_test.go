package align

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/uroborosql/sqlfmt/layout"
)

func TestSolveListPadsToTabStop(t *testing.T) {
	l := &layout.AlignedList{
		Items: []layout.Item{
			{Cells: []layout.Cell{{Text: "id"}, {Text: "integer"}}},
			{Cells: []layout.Cell{{Text: "name"}, {Text: "text"}}},
		},
	}
	solveList(l, 4)

	// widest first-column value is "name" (4 chars); next tab stop
	// strictly greater than 4 at tabSize 4 is 8.
	assert.Equal(t, 8, l.Items[0].Cells[0].Width)
	assert.Equal(t, 8, l.Items[1].Cells[0].Width)
	// the last column in each row never gets a Width (nothing follows it).
	assert.Equal(t, 0, l.Items[0].Cells[1].Width)
}

func TestSolveListEmptyIsNoop(t *testing.T) {
	l := &layout.AlignedList{}
	solveList(l, 4)
	assert.Equal(t, 0, len(l.Items))
}

func TestNextStopAlwaysExceedsInput(t *testing.T) {
	assert.Equal(t, 4, nextStop(0, 4))
	assert.Equal(t, 8, nextStop(4, 4))
	assert.Equal(t, 8, nextStop(5, 4))
	assert.Equal(t, 12, nextStop(8, 4))
}

func TestSolveRecursesIntoSubStatementAndCTE(t *testing.T) {
	inner := &layout.Statement{
		Clauses: []*layout.Clause{
			{Keyword: "SELECT", Body: &layout.AlignedList{
				Items: []layout.Item{
					{Cells: []layout.Cell{{Text: "a"}, {Text: "b"}}},
				},
			}},
		},
	}
	stmt := &layout.Statement{
		Clauses: []*layout.Clause{
			{Keyword: "FROM", Body: &layout.SubStatement{Inner: inner}},
			{Keyword: "WITH", Body: &layout.CTEList{Entries: []layout.CTEEntry{{Body: inner}}}},
		},
	}
	Solve(stmt, 4)

	list := inner.Clauses[0].Body.(*layout.AlignedList)
	assert.Equal(t, 4, list.Items[0].Cells[0].Width)
}

func TestSolveClampsTabSizeBelowOne(t *testing.T) {
	stmt := &layout.Statement{
		Clauses: []*layout.Clause{
			{Keyword: "SELECT", Body: &layout.AlignedList{
				Items: []layout.Item{{Cells: []layout.Cell{{Text: "a"}, {Text: "b"}}}},
			}},
		},
	}
	// must not panic or divide by zero.
	Solve(stmt, 0)
	list := stmt.Clauses[0].Body.(*layout.AlignedList)
	assert.Equal(t, 2, list.Items[0].Cells[0].Width)
}
