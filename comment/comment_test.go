package comment

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/uroborosql/sqlfmt/token"
)

func tok(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text}
}

func ident(text string) token.Token {
	return tok(token.Identifier, text)
}

func lineComment(text string) token.Token {
	return tok(token.CommentLine, text)
}

func TestSplitLeadingPeelsFrontComments(t *testing.T) {
	toks := []token.Token{lineComment("-- note"), ident("id")}
	leading, rest := SplitLeading(toks)
	assert.Equal(t, []string{"-- note"}, leading)
	assert.Equal(t, 1, len(rest))
	assert.Equal(t, "id", rest[0].Text)
}

func TestSplitLeadingNoCommentsReturnsAll(t *testing.T) {
	toks := []token.Token{ident("id")}
	leading, rest := SplitLeading(toks)
	assert.Equal(t, 0, len(leading))
	assert.Equal(t, toks, rest)
}

func TestSplitTrailingPeelsBackComments(t *testing.T) {
	toks := []token.Token{ident("id"), lineComment("-- a"), lineComment("-- b")}
	rest, trailing := SplitTrailing(toks)
	assert.Equal(t, 1, len(rest))
	assert.Equal(t, []string{"-- a", "-- b"}, trailing)
}

func TestInteriorCollectsMiddleComments(t *testing.T) {
	toks := []token.Token{
		lineComment("-- lead"),
		ident("a"),
		lineComment("-- mid"),
		ident("b"),
		lineComment("-- trail"),
	}
	mid := Interior(toks)
	assert.Equal(t, []string{"-- mid"}, mid)
}

type fakeAnchor struct {
	leading, trailing []string
}

func (f *fakeAnchor) AppendLeading(text string)  { f.leading = append(f.leading, text) }
func (f *fakeAnchor) AppendTrailing(text string) { f.trailing = append(f.trailing, text) }

func TestReanchorMovesCommentsInOrder(t *testing.T) {
	dst := &fakeAnchor{}
	Reanchor([]string{"-- a", "-- b"}, []string{"-- c"}, dst)
	assert.Equal(t, []string{"-- a", "-- b"}, dst.leading)
	assert.Equal(t, []string{"-- c"}, dst.trailing)
}
