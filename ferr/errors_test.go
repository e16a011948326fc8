package ferr

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/uroborosql/sqlfmt/token"
)

func TestParseErrorFormatsPosition(t *testing.T) {
	e := &ParseError{Pos: token.Position{Line: 2, Column: 5}, Message: "unexpected token"}
	assert.Equal(t, "parse error at 2:5: unexpected token", e.Error())
}

func TestParseErrorUnwrapsUpstream(t *testing.T) {
	upstream := errors.New("boom")
	e := &ParseError{Pos: token.Position{Line: 1, Column: 1}, Message: "wrap", Upstream: upstream}
	assert.Equal(t, upstream, errors.Unwrap(e))
}

func TestParseErrorsAsErrorEmptyIsNil(t *testing.T) {
	agg := &ParseErrors{}
	if err := agg.AsError(); err != nil {
		t.Fatalf("expected nil error for an empty aggregate, got %v", err)
	}
}

func TestParseErrorsAddFlattensNestedAggregates(t *testing.T) {
	inner := &ParseErrors{}
	inner.Add(errors.New("a"))
	inner.Add(errors.New("b"))

	outer := &ParseErrors{}
	outer.Add(inner)
	assert.Equal(t, 2, len(outer.Errors))
}

func TestParseErrorsSingleErrorMessagePassesThrough(t *testing.T) {
	agg := &ParseErrors{}
	agg.Add(errors.New("only one"))
	assert.Equal(t, "only one", agg.Error())
}

func TestConfigErrorMentionsField(t *testing.T) {
	e := &ConfigError{Field: "tab_size", Message: "must be >= 1"}
	assert.True(t, len(e.Error()) > 0)
	assert.Equal(t, "config error: tab_size: must be >= 1", e.Error())
}
