package cstree

import (
	"fmt"

	"github.com/uroborosql/sqlfmt/ferr"
	"github.com/uroborosql/sqlfmt/lexer"
	"github.com/uroborosql/sqlfmt/token"
)

// parseHeader consumes the statement's leading keyword and, if one
// immediately follows as the very next raw token, the SQL-ID marker
// comment (§4.2 "SQL-ID insertion", §6.4).
func (p *Parser) parseHeader(keyword string) Header {
	kwTok := p.advance()
	h := Header{Keyword: kwTok}
	if p.pos < len(p.toks) {
		c := p.toks[p.pos]
		if (c.Kind == token.CommentBlock || c.Kind == token.Directive) && lexer.IsSQLID(c.Text) {
			h.SQLIDComment = &c
			p.pos++
		}
	}
	return h
}

func (p *Parser) parseSelectStatement(with *WithClause, subquery bool) (*SelectStatement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.rawIdx()
	header := p.parseHeader("SELECT")

	sel, err := p.parseSelectClause()
	if err != nil {
		return nil, err
	}
	stmt := &SelectStatement{Header: header, Select: *sel, With: with}

	if p.peekKeyword("FROM") {
		fc, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		stmt.From = fc
	}
	if p.peekKeyword("WHERE") {
		wc, err := p.parseWhereClause()
		if err != nil {
			return nil, err
		}
		stmt.Where = wc
	}
	if p.peekKeyword("GROUP") {
		gc, err := p.parseGroupByClause()
		if err != nil {
			return nil, err
		}
		stmt.GroupBy = gc
	}
	if p.peekKeyword("HAVING") {
		hc, err := p.parseHavingClause()
		if err != nil {
			return nil, err
		}
		stmt.Having = hc
	}
	if p.peekKeyword("ORDER") {
		oc, err := p.parseOrderByClause()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = oc
	}
	if p.peekKeyword("LIMIT") {
		lc, err := p.parseLimitClause()
		if err != nil {
			return nil, err
		}
		stmt.Limit = lc
	}
	if p.peekKeyword("OFFSET") {
		oc, err := p.parseOffsetClause()
		if err != nil {
			return nil, err
		}
		stmt.Offset = oc
	}
	if !subquery && p.peekKeyword("FOR") {
		fu, err := p.parseForUpdateClause()
		if err != nil {
			return nil, err
		}
		stmt.ForUpdate = fu
	}
	if !subquery && p.peekPunct(";") {
		p.advance()
		stmt.HasSemicolon = true
	}
	stmt.Base = Base{NodeKind: KindSelectStatement, Tokens: p.span(start)}
	return stmt, nil
}

func (p *Parser) parseSelectClause() (*SelectClause, error) {
	start := p.rawIdx()
	distinct := false
	if p.peekKeyword("DISTINCT") {
		p.advance()
		distinct = true
	} else if p.peekKeyword("ALL") {
		p.advance()
	}
	var items []SelectItem
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.peekPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return &SelectClause{Base: Base{NodeKind: KindSelectClause, Tokens: p.span(start)}, Distinct: distinct, Items: items}, nil
}

func (p *Parser) parseSelectItem() (SelectItem, error) {
	start := p.rawIdx()
	expr, err := p.parseExpr()
	if err != nil {
		return SelectItem{}, err
	}
	item := SelectItem{Expr: expr}
	if p.peekKeyword("AS") {
		p.advance()
		item.HasAs = true
		alias, err := p.expectIdentifierLike()
		if err != nil {
			return SelectItem{}, err
		}
		item.Alias = alias
	} else if p.peek().Kind == token.Identifier || (p.peek().Kind == token.QuotedIdentifier) {
		// bare alias with no AS: only plausible when not immediately followed
		// by something that continues the expression (caller boundaries
		// like FROM/, handle the rest naturally since those are keywords).
		item.Alias = p.advance()
	}
	item.Base = Base{NodeKind: KindSelectItem, Tokens: p.span(start)}
	return item, nil
}

func (p *Parser) parseFromClause() (*FromClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	var items []TableRef
	for {
		tr, err := p.parseTableRef()
		if err != nil {
			return nil, err
		}
		items = append(items, tr)
		if p.peekPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return &FromClause{Base: Base{NodeKind: KindFromClause, Tokens: p.span(start)}, Items: items}, nil
}

func (p *Parser) parseTableRef() (TableRef, error) {
	start := p.rawIdx()
	table, err := p.parseTablePrimary()
	if err != nil {
		return TableRef{}, err
	}
	tr := TableRef{Table: table}
	if p.peekKeyword("AS") {
		p.advance()
		tr.HasAs = true
		alias, err := p.expectIdentifierLike()
		if err != nil {
			return TableRef{}, err
		}
		tr.Alias = alias
	} else if p.peek().Kind == token.Identifier || p.peek().Kind == token.QuotedIdentifier {
		tr.Alias = p.advance()
	}
	if p.peekKeyword("WITH") && p.peekAt(1).Text == "ORDINALITY" {
		p.advance()
		p.advance()
		tr.WithOrdinality = true
		if p.peekKeyword("AS") {
			p.advance()
			tr.HasAs = true
			alias, err := p.expectIdentifierLike()
			if err != nil {
				return TableRef{}, err
			}
			tr.Alias = alias
		}
	}
	if (tr.HasAs || tr.Alias.Text != "") && p.peekPunct("(") {
		p.advance()
		for {
			id, err := p.expectIdentifierLike()
			if err != nil {
				return TableRef{}, err
			}
			tr.ColumnAlias = append(tr.ColumnAlias, id)
			// optional type name tokens for table-function column defs; skip
			// until comma/close-paren without trying to parse them as types.
			for !p.peekPunct(",") && !p.peekPunct(")") && p.peek().Kind != token.EOF {
				p.advance()
			}
			if p.peekPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expectPunct(")"); err != nil {
			return TableRef{}, err
		}
	}

	for {
		jk, outer, ok := p.peekJoinKind()
		if !ok {
			break
		}
		join, err := p.parseJoin(jk, outer)
		if err != nil {
			return TableRef{}, err
		}
		tr.Joins = append(tr.Joins, join)
	}
	tr.Base = Base{NodeKind: KindTableRef, Tokens: p.span(start)}
	return tr, nil
}

func (p *Parser) parseTablePrimary() (Node, error) {
	if p.peekPunct("(") && p.peekAt(1).Kind == token.Keyword && (p.peekAt(1).Text == "SELECT" || p.peekAt(1).Text == "WITH") {
		start := p.rawIdx()
		p.advance()
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
	return p.parseExpr()
}

var joinKeywords = map[string]JoinKind{
	"JOIN": JoinInner, "INNER": JoinInner, "LEFT": JoinLeft, "RIGHT": JoinRight,
	"FULL": JoinFull, "CROSS": JoinCross, "NATURAL": JoinNatural,
}

func (p *Parser) peekJoinKind() (JoinKind, bool, bool) {
	t := p.peek()
	if t.Kind != token.Keyword {
		return 0, false, false
	}
	kind, ok := joinKeywords[t.Text]
	if !ok {
		return 0, false, false
	}
	return kind, false, true
}

func (p *Parser) parseJoin(kind JoinKind, _ bool) (Join, error) {
	start := p.rawIdx()
	outer := false
	switch kind {
	case JoinLeft, JoinRight, JoinFull:
		p.advance() // LEFT/RIGHT/FULL
		if p.peekKeyword("OUTER") {
			p.advance()
			outer = true
		}
		if p.peekKeyword("JOIN") {
			p.advance()
		}
	case JoinNatural:
		p.advance() // NATURAL
		if sub, _, ok := p.peekJoinKind(); ok {
			kind = sub
			return p.parseJoin(kind, false)
		}
		if p.peekKeyword("JOIN") {
			p.advance()
		}
	case JoinCross:
		p.advance() // CROSS
		if p.peekKeyword("JOIN") {
			p.advance()
		}
	default: // INNER or bare JOIN
		if p.peekKeyword("INNER") {
			p.advance()
		}
		if p.peekKeyword("JOIN") {
			p.advance()
		}
	}
	table, err := p.parseTableRefNoJoins()
	if err != nil {
		return Join{}, err
	}
	j := Join{Kind: kind, HasOuter: outer, Table: table}
	if p.peekKeyword("ON") {
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return Join{}, err
		}
		j.On = cond
	} else if p.peekKeyword("USING") {
		p.advance()
		if _, err := p.expectPunct("("); err != nil {
			return Join{}, err
		}
		for {
			id, err := p.expectIdentifierLike()
			if err != nil {
				return Join{}, err
			}
			j.Using = append(j.Using, id)
			if p.peekPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expectPunct(")"); err != nil {
			return Join{}, err
		}
	}
	j.Base = Base{NodeKind: KindJoin, Tokens: p.span(start)}
	return j, nil
}

// parseTableRefNoJoins parses one join's right-hand table, without trying
// to chain further joins onto it (those belong to the outer loop).
func (p *Parser) parseTableRefNoJoins() (TableRef, error) {
	start := p.rawIdx()
	table, err := p.parseTablePrimary()
	if err != nil {
		return TableRef{}, err
	}
	tr := TableRef{Table: table}
	if p.peekKeyword("AS") {
		p.advance()
		tr.HasAs = true
		alias, err := p.expectIdentifierLike()
		if err != nil {
			return TableRef{}, err
		}
		tr.Alias = alias
	} else if p.peek().Kind == token.Identifier || p.peek().Kind == token.QuotedIdentifier {
		tr.Alias = p.advance()
	}
	tr.Base = Base{NodeKind: KindTableRef, Tokens: p.span(start)}
	return tr, nil
}

func (p *Parser) parseWhereClause() (*WhereClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("WHERE"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &WhereClause{Base: Base{NodeKind: KindWhereClause, Tokens: p.span(start)}, Condition: cond}, nil
}

func (p *Parser) parseGroupByClause() (*GroupByClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("GROUP"); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("BY"); err != nil {
		return nil, err
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
	return &GroupByClause{Base: Base{NodeKind: KindGroupByClause, Tokens: p.span(start)}, Items: items}, nil
}

func (p *Parser) parseHavingClause() (*HavingClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("HAVING"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &HavingClause{Base: Base{NodeKind: KindHavingClause, Tokens: p.span(start)}, Condition: cond}, nil
}

func (p *Parser) parseOrderByClause() (*OrderByClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("ORDER"); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("BY"); err != nil {
		return nil, err
	}
	var items []OrderItem
	for {
		item, err := p.parseOrderItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.peekPunct(",") {
			p.advance()
			continue
		}
		break
	}
	return &OrderByClause{Base: Base{NodeKind: KindOrderByClause, Tokens: p.span(start)}, Items: items}, nil
}

func (p *Parser) parseOrderItem() (OrderItem, error) {
	e, err := p.parseExpr()
	if err != nil {
		return OrderItem{}, err
	}
	item := OrderItem{Expr: e}
	if p.peekKeyword("ASC") {
		p.advance()
		item.HasDir = true
	} else if p.peekKeyword("DESC") {
		p.advance()
		item.HasDir = true
		item.Desc = true
	}
	if p.peekKeyword("NULLS") {
		p.advance()
		if p.peekKeyword("FIRST") {
			p.advance()
			item.Nulls = "FIRST"
		} else if p.peekKeyword("LAST") {
			p.advance()
			item.Nulls = "LAST"
		}
	}
	return item, nil
}

func (p *Parser) parseLimitClause() (*LimitClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("LIMIT"); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &LimitClause{Base: Base{NodeKind: KindLimitClause, Tokens: p.span(start)}, Count: e}, nil
}

func (p *Parser) parseOffsetClause() (*OffsetClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("OFFSET"); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &OffsetClause{Base: Base{NodeKind: KindOffsetClause, Tokens: p.span(start)}, Count: e}, nil
}

func (p *Parser) parseForUpdateClause() (*ForUpdateClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("FOR"); err != nil {
		return nil, err
	}
	fu := &ForUpdateClause{}
	if p.peekKeyword("UPDATE") {
		p.advance()
	} else if p.peekKeyword("SHARE") {
		p.advance()
		fu.Share = true
	} else {
		return nil, &ferr.ParseError{Pos: p.peek().Start, Message: fmt.Sprintf("expected UPDATE or SHARE after FOR, found %q", p.peek().Text)}
	}
	if p.peekKeyword("OF") {
		p.advance()
		for {
			id, err := p.expectIdentifierLike()
			if err != nil {
				return nil, err
			}
			fu.Of = append(fu.Of, id)
			if p.peekPunct(",") {
				p.advance()
				continue
			}
			break
		}
	}
	if p.peekKeyword("NOWAIT") {
		p.advance()
		fu.Nowait = true
	} else if p.peekKeyword("SKIP") {
		p.advance()
		if _, err := p.expectKeyword("LOCKED"); err != nil {
			return nil, err
		}
		fu.SkipLock = true
	}
	fu.Base = Base{NodeKind: KindForUpdateClause, Tokens: p.span(start)}
	return fu, nil
}
