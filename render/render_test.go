package render

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/uroborosql/sqlfmt/config"
	"github.com/uroborosql/sqlfmt/layout"
)

func TestRenderEndsWithExactlyOneNewline(t *testing.T) {
	stmt := &layout.Statement{
		Clauses: []*layout.Clause{
			{Keyword: "SELECT", Body: &layout.Expression{Text: "1"}},
		},
		Semicolon: true,
	}
	out := Render(stmt, config.Default())
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestRenderInlineBodyStaysOnKeywordLine(t *testing.T) {
	stmt := &layout.Statement{
		Clauses: []*layout.Clause{
			{Keyword: "LIMIT", Body: &layout.Expression{Text: "10"}},
		},
	}
	out := Render(stmt, config.Default())
	assert.Equal(t, "LIMIT 10\n", out)
}

func TestRenderAlignedListLeadingComma(t *testing.T) {
	cfg := config.Default()
	cfg.IndentTab = false
	cfg.TabSize = 2

	stmt := &layout.Statement{
		Clauses: []*layout.Clause{
			{Keyword: "SELECT", Body: &layout.AlignedList{
				LeadingComma: true,
				Items: []layout.Item{
					{Cells: []layout.Cell{{Text: "id"}}},
					{Cells: []layout.Cell{{Text: "name"}}},
				},
			}},
		},
	}
	out := Render(stmt, cfg)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.Contains(lines[1], "  id"))
	assert.True(t, strings.Contains(lines[2], ", name"))
}

func TestRenderBooleanChainConnectorsAlignedAtSameIndent(t *testing.T) {
	stmt := &layout.Statement{
		Clauses: []*layout.Clause{
			{Keyword: "WHERE", Body: &layout.BooleanChain{
				Operands:   []string{"a = 1", "b = 2", "c = 3"},
				Connectors: []string{"AND", "OR"},
			}},
		},
	}
	out := Render(stmt, config.Default())
	assert.True(t, strings.Contains(out, "a = 1"))
	assert.True(t, strings.Contains(out, "AND b = 2"))
	assert.True(t, strings.Contains(out, "OR c = 3"))
}

func TestRenderLeadingAndTrailingComments(t *testing.T) {
	stmt := &layout.Statement{
		Clauses: []*layout.Clause{
			{
				Anchor:  layout.Anchor{Leading: []string{"-- note"}, Trailing: []string{"/* tail */"}},
				Keyword: "SELECT",
				Body:    &layout.Expression{Text: "1"},
			},
		},
	}
	out := Render(stmt, config.Default())
	assert.True(t, strings.Contains(out, "-- note\n"))
	assert.True(t, strings.Contains(out, "SELECT 1 /* tail */"))
}

func TestRenderSubStatementIndentsNested(t *testing.T) {
	cfg := config.Default()
	cfg.IndentTab = false
	cfg.TabSize = 2

	inner := &layout.Statement{
		Clauses: []*layout.Clause{
			{Keyword: "SELECT", Body: &layout.Expression{Text: "1"}},
		},
	}
	stmt := &layout.Statement{
		Clauses: []*layout.Clause{
			{Keyword: "INSERT INTO t", Body: &layout.SubStatement{Inner: inner}},
		},
	}
	out := Render(stmt, cfg)
	assert.True(t, strings.Contains(out, "  SELECT 1"))
}

func TestRenderJoinChain(t *testing.T) {
	stmt := &layout.Statement{
		Clauses: []*layout.Clause{
			{Keyword: "FROM", Body: &layout.JoinChain{
				Items: []layout.JoinChainItem{
					{
						Seed: "users u",
						Joins: []layout.JoinSegment{
							{Kind: "LEFT OUTER JOIN", Table: "orders o", Condition: "ON o.user_id = u.id"},
						},
					},
				},
			}},
		},
	}
	out := Render(stmt, config.Default())
	assert.True(t, strings.Contains(out, "users u"))
	assert.True(t, strings.Contains(out, "LEFT OUTER JOIN orders o ON o.user_id = u.id"))
}
