package cstree

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/uroborosql/sqlfmt/lexer"
)

func parse(t *testing.T, sql string) Statement {
	t.Helper()
	toks, err := lexer.Lex(sql)
	assert.NoError(t, err)
	stmt, err := Parse(toks)
	assert.NoError(t, err)
	return stmt
}

func TestParseSelectStatement(t *testing.T) {
	stmt := parse(t, "SELECT id, name FROM users WHERE id = 1")
	sel, ok := stmt.(*SelectStatement)
	assert.True(t, ok)
	assert.Equal(t, 2, len(sel.Select.Items))
	assert.True(t, sel.From != nil)
	assert.True(t, sel.Where != nil)
}

func TestParseInsertStatement(t *testing.T) {
	stmt := parse(t, "INSERT INTO t (a, b) VALUES (1, 2)")
	ins, ok := stmt.(*InsertStatement)
	assert.True(t, ok)
	assert.Equal(t, 2, len(ins.Columns))
	assert.True(t, ins.Values != nil)
}

func TestParseUpdateStatement(t *testing.T) {
	stmt := parse(t, "UPDATE t SET a = 1 WHERE id = 1")
	upd, ok := stmt.(*UpdateStatement)
	assert.True(t, ok)
	assert.Equal(t, 1, len(upd.Set.Items))
}

func TestParseDeleteStatement(t *testing.T) {
	stmt := parse(t, "DELETE FROM t WHERE id = 1")
	del, ok := stmt.(*DeleteStatement)
	assert.True(t, ok)
	assert.True(t, del.Where != nil)
}

func TestParseWithClauseRecursive(t *testing.T) {
	stmt := parse(t, "WITH RECURSIVE r AS (SELECT 1) SELECT * FROM r")
	sel, ok := stmt.(*SelectStatement)
	assert.True(t, ok)
	assert.True(t, sel.With != nil)
	assert.True(t, sel.With.Recursive)
}

func TestParseRejectsUnknownStatementKind(t *testing.T) {
	toks, err := lexer.Lex("MERGE INTO t USING s ON (1=1)")
	assert.NoError(t, err)
	_, err = Parse(toks)
	assert.Error(t, err)
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	toks, err := lexer.Lex("SELECT 1; SELECT 2")
	assert.NoError(t, err)
	_, err = Parse(toks)
	assert.Error(t, err)
}

func TestParseJoinWithOnCondition(t *testing.T) {
	stmt := parse(t, "SELECT 1 FROM a JOIN b ON a.id = b.id")
	sel := stmt.(*SelectStatement)
	assert.Equal(t, 1, len(sel.From.Items[0].Joins))
	assert.True(t, sel.From.Items[0].Joins[0].On != nil)
}
