package translate

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/uroborosql/sqlfmt/config"
	"github.com/uroborosql/sqlfmt/cstree"
	"github.com/uroborosql/sqlfmt/lexer"
)

func TestKeywordCaseLower(t *testing.T) {
	toks, err := lexer.Lex("SELECT id FROM users")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	cfg := config.Default()
	cfg.KeywordCase = config.CaseLower
	ly, err := Translate(stmt, cfg)
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "select"))
	assert.True(t, strings.Contains(out, "from"))
}

func TestComplementAliasAddsDerivedName(t *testing.T) {
	toks, err := lexer.Lex("SELECT id FROM users")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	cfg := config.Default()
	cfg.ComplementAlias = true
	cfg.ComplementColumnAsKeyword = true
	ly, err := Translate(stmt, cfg)
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "AS id"))
}

func TestRemoveTableAsKeyword(t *testing.T) {
	toks, err := lexer.Lex("SELECT u.id FROM users AS u")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	cfg := config.Default()
	cfg.RemoveTableAsKeyword = true
	ly, err := Translate(stmt, cfg)
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "users u"))
	assert.False(t, strings.Contains(out, "AS u"))
}

func TestComplementOuterKeyword(t *testing.T) {
	toks, err := lexer.Lex("SELECT 1 FROM a LEFT JOIN b ON a.id = b.id")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	cfg := config.Default()
	cfg.ComplementOuterKeyword = true
	ly, err := Translate(stmt, cfg)
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "LEFT OUTER JOIN"))
}

func TestConvertDoubleColonCast(t *testing.T) {
	toks, err := lexer.Lex("SELECT id::text FROM users")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	cfg := config.Default()
	cfg.ConvertDoubleColonCast = true
	ly, err := Translate(stmt, cfg)
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "CAST"))
	assert.False(t, strings.Contains(out, "::"))
}

func TestUnifyNotEqual(t *testing.T) {
	toks, err := lexer.Lex("SELECT 1 FROM a WHERE id <> 1")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	cfg := config.Default()
	cfg.UnifyNotEqual = true
	ly, err := Translate(stmt, cfg)
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "!="))
	assert.False(t, strings.Contains(out, "<>"))
}

func TestRemoveRedundantNest(t *testing.T) {
	toks, err := lexer.Lex("SELECT 1 FROM a WHERE ((id = 1))")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	cfg := config.Default()
	cfg.RemoveRedundantNest = true
	ly, err := Translate(stmt, cfg)
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.False(t, strings.Contains(out, "(("))
}

func TestComplementSQLIDInsertsMarker(t *testing.T) {
	toks, err := lexer.Lex("SELECT id FROM users")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	cfg := config.Default()
	cfg.ComplementSQLID = true
	ly, err := Translate(stmt, cfg)
	assert.NoError(t, err)
	assert.True(t, ly.SQLIDInsert)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "_SQL_ID_"))
}

func TestTrimBindParamDropsSampleValue(t *testing.T) {
	toks, err := lexer.Lex("SELECT id FROM users WHERE id = /*id*/1")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	cfg := config.Default()
	cfg.TrimBindParam = true
	ly, err := Translate(stmt, cfg)
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "/*id*/"))
	assert.False(t, strings.Contains(out, "/*id*/1"))
}

func TestInsertSelectProducesSubStatement(t *testing.T) {
	toks, err := lexer.Lex("INSERT INTO t (a, b) SELECT x, y FROM s")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	ly, err := Translate(stmt, config.Default())
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "INSERT"))
	assert.True(t, strings.Contains(out, "SELECT x, y FROM s"))
}

func TestUpdateSetRendersAssignments(t *testing.T) {
	toks, err := lexer.Lex("UPDATE t SET a = 1, b = 2 WHERE id = 1")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	ly, err := Translate(stmt, config.Default())
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "SET"))
	assert.True(t, strings.Contains(out, "a = 1"))
	assert.True(t, strings.Contains(out, "b = 2"))
}

func TestDeleteUsingAndReturning(t *testing.T) {
	toks, err := lexer.Lex("DELETE FROM t USING s WHERE t.id = s.id RETURNING t.id")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	ly, err := Translate(stmt, config.Default())
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "USING"))
	assert.True(t, strings.Contains(out, "RETURNING"))
}

func TestUnnestWithOrdinalityKeepsForcedAs(t *testing.T) {
	toks, err := lexer.Lex("SELECT 1 FROM unnest(a) WITH ORDINALITY AS t(v, n)")
	assert.NoError(t, err)
	stmt, err := cstree.Parse(toks)
	assert.NoError(t, err)

	cfg := config.Default()
	cfg.RemoveTableAsKeyword = true
	ly, err := Translate(stmt, cfg)
	assert.NoError(t, err)

	out := RenderInline(ly)
	assert.True(t, strings.Contains(out, "WITH ORDINALITY AS t(v, n)"))
}

func TestUnsupportedStatementKindRejected(t *testing.T) {
	_, err := Translate(nil, config.Default())
	assert.Error(t, err)
}
