package cstree

import (
	"fmt"
	"strings"

	"github.com/uroborosql/sqlfmt/ferr"
	"github.com/uroborosql/sqlfmt/lexer"
	"github.com/uroborosql/sqlfmt/token"
)

// parseExpr is the expression entry point, following the standard
// precedence-climbing chain (lowest to highest): OR, AND, NOT, comparison
// (BETWEEN/IN/LIKE/IS/<=>), additive, multiplicative, unary, postfix
// (indirection/cast), primary.
func (p *Parser) parseExpr() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseOr()
}

func (p *Parser) parseOr() (Node, error) {
	start := p.rawIdx()
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if !p.peekKeyword("OR") {
		return first, nil
	}
	operands := []Node{first}
	var connectors []token.Token
	for p.peekKeyword("OR") {
		connectors = append(connectors, p.advance())
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	return &BooleanChain{Base: Base{NodeKind: KindBooleanChainExpr, Tokens: p.span(start)}, Operands: operands, Connectors: connectors}, nil
}

func (p *Parser) parseAnd() (Node, error) {
	start := p.rawIdx()
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if !p.peekKeyword("AND") {
		return first, nil
	}
	operands := []Node{first}
	var connectors []token.Token
	for p.peekKeyword("AND") {
		connectors = append(connectors, p.advance())
		next, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}
	return &BooleanChain{Base: Base{NodeKind: KindBooleanChainExpr, Tokens: p.span(start)}, Operands: operands, Connectors: connectors}, nil
}

func (p *Parser) parseNot() (Node, error) {
	if p.peekKeyword("NOT") {
		start := p.rawIdx()
		op := p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Base: Base{NodeKind: KindUnaryExpr, Tokens: p.span(start)}, Op: op, Operand: operand}, nil
	}
	return p.parseComparison()
}

var comparisonOps = map[string]bool{
	"=": true, "<>": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

func (p *Parser) parseComparison() (Node, error) {
	start := p.rawIdx()
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	not := false
	if p.peekKeyword("NOT") {
		switch p.peekAt(1).Text {
		case "BETWEEN", "IN", "LIKE", "ILIKE", "SIMILAR":
			p.advance()
			not = true
		}
	}

	switch {
	case p.peekKeyword("BETWEEN"):
		p.advance()
		low, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("AND"); err != nil {
			return nil, err
		}
		high, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &BetweenExpr{Base: Base{NodeKind: KindBetweenExpr, Tokens: p.span(start)}, Operand: left, Not: not, Low: low, High: high}, nil

	case p.peekKeyword("IN"):
		op := p.advance()
		right, err := p.parseInList()
		if err != nil {
			return nil, err
		}
		opText := "IN"
		if not {
			opText = "NOT IN"
		}
		op.Text = opText
		return &BinaryExpr{Base: Base{NodeKind: KindBinaryExpr, Tokens: p.span(start)}, Left: left, Op: op, Right: right}, nil

	case p.peekKeyword("LIKE", "ILIKE"):
		op := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if not {
			op.Text = "NOT " + op.Text
		}
		return &BinaryExpr{Base: Base{NodeKind: KindBinaryExpr, Tokens: p.span(start)}, Left: left, Op: op, Right: right}, nil

	case p.peekKeyword("IS"):
		op := p.advance()
		isNot := false
		if p.peekKeyword("NOT") {
			p.advance()
			isNot = true
		}
		var rhsTok token.Token
		switch {
		case p.peekKeyword("NULL"):
			rhsTok = p.advance()
		case p.peekKeyword("TRUE"):
			rhsTok = p.advance()
		case p.peekKeyword("FALSE"):
			rhsTok = p.advance()
		case p.peekKeyword("DISTINCT"):
			p.advance()
			if _, err := p.expectKeyword("FROM"); err != nil {
				return nil, err
			}
			rhs, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			opText := "IS DISTINCT FROM"
			if isNot {
				opText = "IS NOT DISTINCT FROM"
			}
			op.Text = opText
			return &BinaryExpr{Base: Base{NodeKind: KindBinaryExpr, Tokens: p.span(start)}, Left: left, Op: op, Right: rhs}, nil
		default:
			return nil, &ferr.ParseError{Pos: p.peek().Start, Message: fmt.Sprintf("expected NULL/TRUE/FALSE/DISTINCT after IS, found %q", p.peek().Text)}
		}
		opText := "IS " + rhsTok.Text
		if isNot {
			opText = "IS NOT " + rhsTok.Text
		}
		op.Text = opText
		return &UnaryExpr{Base: Base{NodeKind: KindUnaryExpr, Tokens: p.span(start)}, Op: op, Operand: left}, nil

	case not:
		return nil, &ferr.ParseError{Pos: p.peek().Start, Message: "expected BETWEEN/IN/LIKE after NOT"}

	case comparisonOps[p.peek().Text] && (p.peek().Kind == token.Operator || p.peek().Kind == token.Punctuation):
		op := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Base: Base{NodeKind: KindBinaryExpr, Tokens: p.span(start)}, Left: left, Op: op, Right: right}, nil
	}

	return left, nil
}

func (p *Parser) parseInList() (Node, error) {
	start := p.rawIdx()
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	if p.peekKeyword("SELECT", "WITH") {
		var with *WithClause
		var err error
		if p.peekKeyword("WITH") {
			with, err = p.parseWithClause()
			if err != nil {
				return nil, err
			}
		}
		stmt, err := p.parseSelectStatement(with, true)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &Subquery{Base: Base{NodeKind: KindSubquery, Tokens: p.span(start)}, Statement: stmt}, nil
	}
	var items []Node
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
		if p.peekPunct(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &ExprList{Base: Base{NodeKind: KindExprList, Tokens: p.span(start)}, Items: items}, nil
}

var additiveOps = map[string]bool{"+": true, "-": true, "||": true}

func (p *Parser) parseAdditive() (Node, error) {
	start := p.rawIdx()
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for additiveOps[p.peek().Text] && p.peek().Kind == token.Operator {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Base: Base{NodeKind: KindBinaryExpr, Tokens: p.span(start)}, Left: left, Op: op, Right: right}
	}
	return left, nil
}

var multiplicativeOps = map[string]bool{"*": true, "/": true, "%": true}

func (p *Parser) parseMultiplicative() (Node, error) {
	start := p.rawIdx()
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for multiplicativeOps[p.peek().Text] && p.peek().Kind == token.Operator {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Base: Base{NodeKind: KindBinaryExpr, Tokens: p.span(start)}, Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	if p.peek().Kind == token.Operator && (p.peek().Text == "-" || p.peek().Text == "+") {
		start := p.rawIdx()
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Base: Base{NodeKind: KindUnaryExpr, Tokens: p.span(start)}, Op: op, Operand: operand}, nil
	}
	return p.parseCastPostfix()
}

func (p *Parser) parseCastPostfix() (Node, error) {
	start := p.rawIdx()
	operand, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.peekPunct("::") {
		p.advance()
		typeName, typeArgs, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		operand = &CastExpr{
			Base:                Base{NodeKind: KindCastExpr, Tokens: p.span(start)},
			Expr:                operand,
			TypeName:            typeName,
			TypeArgs:            typeArgs,
			OriginalDoubleColon: true,
		}
	}
	return operand, nil
}

func (p *Parser) parsePostfix() (Node, error) {
	start := p.rawIdx()
	operand, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.peekPunct("."):
			p.advance()
			if p.peekPunct("*") {
				p.advance()
				operand = &Indirection{Base: Base{NodeKind: KindIndirection, Tokens: p.span(start)}, Target: operand, Star: true}
				continue
			}
			field, err := p.expectIdentifierLike()
			if err != nil {
				return nil, err
			}
			operand = &Indirection{Base: Base{NodeKind: KindIndirection, Tokens: p.span(start)}, Target: operand, Field: field}
		case p.peekPunct("["):
			p.advance()
			lower, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			ind := &Indirection{Base: Base{NodeKind: KindIndirection, Tokens: p.span(start)}, Target: operand, Lower: lower}
			if p.peekPunct(":") {
				p.advance()
				upper, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				ind.Upper = upper
				ind.Slice = true
			}
			if _, err := p.expectPunct("]"); err != nil {
				return nil, err
			}
			operand = ind
		default:
			return operand, nil
		}
	}
}

// typeNameWords are identifiers that may combine into a single PostgreSQL
// multi-word type name (§4.2 "::-to-CAST conversion" needs the exact type
// spelling to reproduce it verbatim inside CAST(... AS ...)).
var typeNameWords = map[string]bool{
	"CHARACTER": true, "VARYING": true, "DOUBLE": true, "PRECISION": true,
	"WITH": true, "WITHOUT": true, "TIME": true, "ZONE": true, "INT": true,
}

func (p *Parser) parseTypeName() ([]token.Token, []token.Token, error) {
	var words []token.Token
	t := p.peek()
	if t.Kind != token.Identifier && t.Kind != token.Keyword {
		return nil, nil, &ferr.ParseError{Pos: t.Start, Message: fmt.Sprintf("expected type name, found %q", t.Text)}
	}
	words = append(words, p.advance())
	for {
		t := p.peek()
		if t.Kind == token.Keyword && typeNameWords[strings.ToUpper(t.Text)] {
			words = append(words, p.advance())
			continue
		}
		break
	}
	var args []token.Token
	if p.peekPunct("(") {
		args = append(args, p.advance())
		for !p.peekPunct(")") && p.peek().Kind != token.EOF {
			args = append(args, p.advance())
		}
		closeTok, err := p.expectPunct(")")
		if err != nil {
			return nil, nil, err
		}
		args = append(args, closeTok)
	}
	if p.peekPunct("[") {
		for p.peekPunct("[") {
			args = append(args, p.advance())
			for !p.peekPunct("]") && p.peek().Kind != token.EOF {
				args = append(args, p.advance())
			}
			closeTok, err := p.expectPunct("]")
			if err != nil {
				return nil, nil, err
			}
			args = append(args, closeTok)
		}
	}
	return words, args, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	if bp := p.tryBindParam(); bp != nil {
		return bp, nil
	}
	start := p.rawIdx()
	t := p.peek()

	switch {
	case p.peekPunct("("):
		p.advance()
		if p.peekKeyword("SELECT", "WITH") {
			var with *WithClause
			var err error
			if p.peekKeyword("WITH") {
				with, err = p.parseWithClause()
				if err != nil {
					return nil, err
				}
			}
			stmt, err := p.parseSelectStatement(with, true)
			if err != nil {
				return nil, err
			}
			if _, err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			return &Subquery{Base: Base{NodeKind: KindSubquery, Tokens: p.span(start)}, Statement: stmt}, nil
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &ParenExpr{Base: Base{NodeKind: KindParenExpr, Tokens: p.span(start)}, Inner: inner}, nil

	case p.peekPunct("*"):
		p.advance()
		return &Star{Base: Base{NodeKind: KindStar, Tokens: p.span(start)}}, nil

	case t.Kind == token.Literal:
		p.advance()
		return &Literal{Base: Base{NodeKind: KindLiteral, Tokens: p.span(start)}, Value: t}, nil

	case p.peekKeyword("NULL", "TRUE", "FALSE"):
		p.advance()
		return &Literal{Base: Base{NodeKind: KindLiteral, Tokens: p.span(start)}, Value: t}, nil

	case p.peekKeyword("CASE"):
		return p.parseCaseExpr()

	case p.peekKeyword("CAST"):
		return p.parseCastFunc()

	case p.peekKeyword("EXISTS"):
		p.advance()
		if _, err := p.expectPunct("("); err != nil {
			return nil, err
		}
		var with *WithClause
		var err error
		if p.peekKeyword("WITH") {
			with, err = p.parseWithClause()
			if err != nil {
				return nil, err
			}
		}
		stmt, err := p.parseSelectStatement(with, true)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		sub := &Subquery{Base: Base{NodeKind: KindSubquery, Tokens: p.span(start)}, Statement: stmt}
		return &FunctionCall{Base: Base{NodeKind: KindFunctionCall, Tokens: p.span(start)}, Name: token.Token{Kind: token.Identifier, Text: "EXISTS"}, Args: []Node{sub}}, nil

	case t.Kind == token.Identifier || t.Kind == token.QuotedIdentifier || t.Kind == token.Keyword:
		return p.parseIdentifierOrCall(start)

	default:
		return nil, &ferr.ParseError{Pos: t.Start, Message: fmt.Sprintf("unexpected token %q", t.Text)}
	}
}

func (p *Parser) parseIdentifierOrCall(start int) (Node, error) {
	name := p.advance()
	var qualifiers []token.Token
	for p.peekPunct(".") && (p.peekAt(1).Kind == token.Identifier || p.peekAt(1).Kind == token.QuotedIdentifier || p.peekAt(1).Text == "*") {
		p.advance()
		qualifiers = append(qualifiers, name)
		if p.peekPunct("*") {
			p.advance()
			return &ColumnRef{Base: Base{NodeKind: KindColumnRef, Tokens: p.span(start)}, Qualifiers: qualifiers, Star: true}, nil
		}
		name = p.advance()
	}

	if p.peekPunct("(") {
		return p.parseFunctionCallArgs(start, name)
	}

	return &ColumnRef{Base: Base{NodeKind: KindColumnRef, Tokens: p.span(start)}, Qualifiers: qualifiers, Name: name}, nil
}

func (p *Parser) parseFunctionCallArgs(start int, name token.Token) (Node, error) {
	p.advance() // consume '('
	fc := &FunctionCall{Name: name}
	if p.peekPunct("*") {
		p.advance()
		fc.Star = true
	} else if !p.peekPunct(")") {
		if p.peekKeyword("DISTINCT") {
			p.advance()
			fc.Distinct = true
		}
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			fc.Args = append(fc.Args, e)
			if p.peekKeyword("ORDER") {
				if _, err := p.parseOrderByClause(); err != nil {
					return nil, err
				}
				continue
			}
			if p.peekPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}

	if p.peekKeyword("FILTER") {
		fStart := p.rawIdx()
		p.advance()
		if _, err := p.expectPunct("("); err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("WHERE"); err != nil {
			return nil, err
		}
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		fc.Filter = &FilterClause{Base: Base{NodeKind: KindFilterClause, Tokens: p.span(fStart)}, Condition: cond}
	}

	if p.peekKeyword("OVER") {
		wStart := p.rawIdx()
		p.advance()
		ws := &WindowSpec{}
		if p.peek().Kind == token.Identifier {
			ws.Name = p.advance()
		} else {
			if _, err := p.expectPunct("("); err != nil {
				return nil, err
			}
			if p.peekKeyword("PARTITION") {
				p.advance()
				if _, err := p.expectKeyword("BY"); err != nil {
					return nil, err
				}
				for {
					e, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					ws.PartitionBy = append(ws.PartitionBy, e)
					if p.peekPunct(",") {
						p.advance()
						continue
					}
					break
				}
			}
			if p.peekKeyword("ORDER") {
				ob, err := p.parseOrderByClause()
				if err != nil {
					return nil, err
				}
				ws.OrderBy = ob.Items
			}
			for !p.peekPunct(")") && p.peek().Kind != token.EOF {
				ws.FrameClause = append(ws.FrameClause, p.advance())
			}
			if _, err := p.expectPunct(")"); err != nil {
				return nil, err
			}
		}
		ws.Base = Base{NodeKind: KindWindowSpec, Tokens: p.span(wStart)}
		fc.Over = ws
	}

	fc.Base = Base{NodeKind: KindFunctionCall, Tokens: p.span(start)}
	return fc, nil
}

func (p *Parser) parseCaseExpr() (Node, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("CASE"); err != nil {
		return nil, err
	}
	ce := &CaseExpr{}
	if !p.peekKeyword("WHEN") {
		operand, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ce.Operand = operand
	}
	for p.peekKeyword("WHEN") {
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("THEN"); err != nil {
			return nil, err
		}
		result, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ce.Whens = append(ce.Whens, WhenClause{Condition: cond, Result: result})
	}
	if p.peekKeyword("ELSE") {
		p.advance()
		elseExpr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ce.Else = elseExpr
	}
	if _, err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	ce.Base = Base{NodeKind: KindCaseExpr, Tokens: p.span(start)}
	return ce, nil
}

func (p *Parser) parseCastFunc() (Node, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("CAST"); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	typeName, typeArgs, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &CastExpr{
		Base:                Base{NodeKind: KindCastExpr, Tokens: p.span(start)},
		Expr:                expr,
		TypeName:            typeName,
		TypeArgs:            typeArgs,
		OriginalDoubleColon: false,
	}, nil
}

// tryBindParam detects a 2-way-SQL bind-parameter comment immediately
// (byte-adjacent, no intervening whitespace) followed by its sample value,
// consuming both into a single BindParam node (§4.2 "bind-parameter
// coalescing"). It inspects the raw stream directly rather than through
// peek(), since peek() treats the comment as skippable trivia.
func (p *Parser) tryBindParam() *BindParam {
	if p.pos >= len(p.toks) {
		return nil
	}
	c := p.toks[p.pos]
	if c.Kind != token.CommentBlock || !lexer.IsBindParam(c.Text) {
		return nil
	}
	if p.pos+1 >= len(p.toks) {
		return nil
	}
	v := p.toks[p.pos+1]
	if v.Start.Offset != c.End.Offset {
		return nil
	}
	if v.Kind != token.Literal && v.Kind != token.Identifier && v.Kind != token.QuotedIdentifier {
		return nil
	}
	start := p.rawIdx()
	p.pos++
	vTok := p.advance()
	var valNode Node
	if v.Kind == token.Literal {
		valNode = &Literal{Base: Base{NodeKind: KindLiteral, Tokens: []token.Token{vTok}}, Value: vTok}
	} else {
		valNode = &ColumnRef{Base: Base{NodeKind: KindColumnRef, Tokens: []token.Token{vTok}}, Name: vTok}
	}
	return &BindParam{Base: Base{NodeKind: KindBindParam, Tokens: p.span(start)}, Comment: c, Value: valNode}
}
