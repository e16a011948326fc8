package lexer

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/uroborosql/sqlfmt/token"
)

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	toks, err := Lex("SELECT id FROM users")
	assert.NoError(t, err)

	expectedKinds := []token.Kind{
		token.Keyword, token.Identifier, token.Keyword, token.Identifier, token.EOF,
	}
	actualKinds := make([]token.Kind, len(toks))
	for i, tok := range toks {
		actualKinds[i] = tok.Kind
	}
	assert.Equal(t, expectedKinds, actualKinds)
}

func TestLexStringLiteral(t *testing.T) {
	toks, err := Lex("SELECT 'hello world'")
	assert.NoError(t, err)
	assert.Equal(t, token.Literal, toks[1].Kind)
	assert.Equal(t, "'hello world'", toks[1].Text)
}

func TestLexUnterminatedStringErrors(t *testing.T) {
	_, err := Lex("SELECT 'hello")
	assert.Error(t, err)
}

func TestLexUnterminatedBlockCommentErrors(t *testing.T) {
	_, err := Lex("SELECT 1 /* unterminated")
	assert.Error(t, err)
}

func TestLexQuotedIdentifier(t *testing.T) {
	toks, err := Lex(`SELECT "User Id" FROM users`)
	assert.NoError(t, err)
	assert.Equal(t, token.QuotedIdentifier, toks[1].Kind)
}

func TestLexDirectiveCommentClassifiedAsDirective(t *testing.T) {
	toks, err := Lex("select 1 /*%if sf.isId */ and id = 1 /*%end*/")
	assert.NoError(t, err)

	var sawDirective bool
	for _, tok := range toks {
		if tok.Kind == token.Directive {
			sawDirective = true
		}
	}
	assert.True(t, sawDirective)
}

func TestLexOwnLineTracksLeadingWhitespace(t *testing.T) {
	toks, err := Lex("SELECT 1\nFROM users")
	assert.NoError(t, err)

	var fromTok token.Token
	for _, tok := range toks {
		if tok.Kind == token.Keyword && tok.Text == "FROM" {
			fromTok = tok
		}
	}
	assert.True(t, fromTok.OwnLine)
}

func TestIsDirectiveMarkerRecognizesBothStyles(t *testing.T) {
	assert.True(t, IsDirectiveMarker("/*%if sf.isId */"))
	assert.True(t, IsDirectiveMarker("/*IF sf.isId */"))
	assert.False(t, IsDirectiveMarker("/* just a comment */"))
}

func TestIsHintRecognizesPlannerHint(t *testing.T) {
	assert.True(t, IsHint("/*+ IndexScan(t) */"))
	assert.False(t, IsHint("/* not a hint */"))
}

func TestIsBindParamExcludesSQLID(t *testing.T) {
	assert.True(t, IsBindParam("/*id*/"))
	assert.False(t, IsBindParam("/*_SQL_ID_*/"))
}

func TestIsSQLIDRecognizesMarker(t *testing.T) {
	assert.True(t, IsSQLID("/*_SQL_ID_*/"))
	assert.False(t, IsSQLID("/*id*/"))
}
