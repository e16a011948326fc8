package cstree

import (
	"fmt"
	"strings"

	"github.com/uroborosql/sqlfmt/ferr"
	"github.com/uroborosql/sqlfmt/token"
)

// maxDepth bounds expression/statement nesting (§5: "no recursion depth is
// unbounded ... returns UnsupportedSyntax beyond an implementation-chosen
// limit (recommended >=256)").
const maxDepth = 256

// Parser is a hand-written recursive-descent parser over a flat token
// stream that still contains comment and directive trivia; it is the
// concrete implementation backing the "CST producer" the spec treats as an
// external collaborator (§1).
type Parser struct {
	toks  []token.Token
	pos   int
	depth int
}

// Parse builds a single top-level Statement from toks (as produced by the
// lexer package). It returns *ferr.ParseError or *ferr.UnsupportedSyntax on
// failure.
func Parse(toks []token.Token) (Statement, error) {
	p := &Parser{toks: toks}
	kw := strings.ToUpper(p.peek().Text)
	var stmt Statement
	var err error
	switch {
	case p.peekKeyword("WITH"):
		stmt, err = p.parseWithPrefixedStatement()
	case p.peekKeyword("SELECT"):
		stmt, err = p.parseSelectStatement(nil, false)
	case p.peekKeyword("INSERT"):
		stmt, err = p.parseInsertStatement(nil)
	case p.peekKeyword("UPDATE"):
		stmt, err = p.parseUpdateStatement(nil)
	case p.peekKeyword("DELETE"):
		stmt, err = p.parseDeleteStatement(nil)
	default:
		return nil, &ferr.ParseError{Pos: p.peek().Start, Message: fmt.Sprintf("expected a SQL statement, found %q", kw)}
	}
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, &ferr.ParseError{Pos: p.peek().Start, Message: fmt.Sprintf("unexpected trailing input %q", p.peek().Text)}
	}
	return stmt, nil
}

func isTrivia(t token.Token) bool {
	return t.Kind == token.CommentLine || t.Kind == token.CommentBlock || t.Kind == token.Directive
}

func (p *Parser) peekIdxFrom(i int) int {
	for i < len(p.toks) && isTrivia(p.toks[i]) {
		i++
	}
	return i
}

func (p *Parser) peekIdx() int { return p.peekIdxFrom(p.pos) }

func (p *Parser) peek() token.Token {
	i := p.peekIdx()
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

// peekAt looks n significant tokens ahead (0 == peek()).
func (p *Parser) peekAt(n int) token.Token {
	i := p.peekIdx()
	for ; n > 0 && i < len(p.toks); n-- {
		i = p.peekIdxFrom(i + 1)
	}
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

func (p *Parser) atEnd() bool {
	t := p.peek()
	return t.Kind == token.EOF || (t.Kind == token.Punctuation && t.Text == ";")
}

func (p *Parser) advance() token.Token {
	i := p.peekIdx()
	if i >= len(p.toks) {
		p.pos = len(p.toks)
		return token.Token{Kind: token.EOF}
	}
	t := p.toks[i]
	p.pos = i + 1
	return t
}

func (p *Parser) peekKeyword(words ...string) bool {
	t := p.peek()
	if t.Kind != token.Keyword {
		return false
	}
	for _, w := range words {
		if t.Text == w {
			return true
		}
	}
	return false
}

func (p *Parser) peekPunct(s string) bool {
	t := p.peek()
	return (t.Kind == token.Punctuation || t.Kind == token.Operator) && t.Text == s
}

func (p *Parser) expectKeyword(w string) (token.Token, error) {
	if !p.peekKeyword(w) {
		return token.Token{}, &ferr.ParseError{Pos: p.peek().Start, Message: fmt.Sprintf("expected %s, found %q", w, p.peek().Text)}
	}
	return p.advance(), nil
}

func (p *Parser) expectPunct(s string) (token.Token, error) {
	if !p.peekPunct(s) {
		return token.Token{}, &ferr.ParseError{Pos: p.peek().Start, Message: fmt.Sprintf("expected %q, found %q", s, p.peek().Text)}
	}
	return p.advance(), nil
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return &ferr.UnsupportedSyntax{Pos: p.peek().Start, Kind: "nesting", Message: "expression/statement nesting exceeds the implementation limit"}
	}
	return nil
}

func (p *Parser) leave() { p.depth-- }

// span returns the full raw-token slice (including trivia) from the stream
// index of start (inclusive) through the current position (exclusive) —
// used to populate Base.Tokens so comment attachment can recover every
// comment physically inside a node later.
func (p *Parser) span(startIdx int) []token.Token {
	return p.toks[startIdx:p.pos]
}

// rawIdx returns the raw stream index currently about to be read (including
// any pending trivia) — call before parsing a node to remember its start.
func (p *Parser) rawIdx() int { return p.pos }

func (p *Parser) parseWithPrefixedStatement() (Statement, error) {
	with, err := p.parseWithClause()
	if err != nil {
		return nil, err
	}
	switch {
	case p.peekKeyword("SELECT"):
		return p.parseSelectStatement(with, false)
	case p.peekKeyword("INSERT"):
		return p.parseInsertStatement(with)
	case p.peekKeyword("UPDATE"):
		return p.parseUpdateStatement(with)
	case p.peekKeyword("DELETE"):
		return p.parseDeleteStatement(with)
	}
	return nil, &ferr.ParseError{Pos: p.peek().Start, Message: "expected SELECT/INSERT/UPDATE/DELETE after WITH clause"}
}

func (p *Parser) parseWithClause() (*WithClause, error) {
	start := p.rawIdx()
	kw, err := p.expectKeyword("WITH")
	if err != nil {
		return nil, err
	}
	recursive := false
	if p.peekKeyword("RECURSIVE") {
		p.advance()
		recursive = true
	}
	var ctes []CTE
	for {
		cteStart := p.rawIdx()
		name, err := p.expectIdentifierLike()
		if err != nil {
			return nil, err
		}
		var cols []token.Token
		if p.peekPunct("(") {
			p.advance()
			for {
				id, err := p.expectIdentifierLike()
				if err != nil {
					return nil, err
				}
				cols = append(cols, id)
				if p.peekPunct(",") {
					p.advance()
					continue
				}
				break
			}
			if _, err := p.expectPunct(")"); err != nil {
				return nil, err
			}
		}
		if _, err := p.expectKeyword("AS"); err != nil {
			return nil, err
		}
		materialized := 0
		if p.peekKeyword("MATERIALIZED") {
			p.advance()
			materialized = 1
		} else if p.peekKeyword("NOT") && p.peekAt(1).Text == "MATERIALIZED" {
			p.advance()
			p.advance()
			materialized = -1
		}
		if _, err := p.expectPunct("("); err != nil {
			return nil, err
		}
		stmt, err := p.parseSelectStatement(nil, true)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		trailingComma := false
		if p.peekPunct(",") {
			p.advance()
			trailingComma = true
		}
		ctes = append(ctes, CTE{
			Base:          Base{NodeKind: KindCTE, Tokens: p.span(cteStart)},
			Name:          name,
			Columns:       cols,
			Materialized:  materialized,
			Statement:     stmt,
			TrailingComma: trailingComma,
		})
		if !trailingComma {
			break
		}
	}
	_ = kw
	return &WithClause{Base: Base{NodeKind: KindWithClause, Tokens: p.span(start)}, Recursive: recursive, CTEs: ctes}, nil
}

func (p *Parser) expectIdentifierLike() (token.Token, error) {
	t := p.peek()
	if t.Kind == token.Identifier || t.Kind == token.QuotedIdentifier {
		return p.advance(), nil
	}
	return token.Token{}, &ferr.ParseError{Pos: t.Start, Message: fmt.Sprintf("expected identifier, found %q", t.Text)}
}
