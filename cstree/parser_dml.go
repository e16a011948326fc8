package cstree

import (
	"github.com/uroborosql/sqlfmt/token"
)

func (p *Parser) parseInsertStatement(with *WithClause) (*InsertStatement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.rawIdx()
	header := p.parseHeader("INSERT")
	if _, err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	tableStart := p.rawIdx()
	var quals []token.Token
	name, err := p.expectIdentifierLike()
	for err == nil && p.peekPunct(".") {
		p.advance()
		quals = append(quals, name)
		name, err = p.expectIdentifierLike()
	}
	table := TableRef{Table: &ColumnRef{Base: Base{NodeKind: KindColumnRef, Tokens: p.span(tableStart)}, Qualifiers: quals, Name: name}}
	if err == nil && p.peekKeyword("AS") {
		p.advance()
		table.HasAs = true
		table.Alias, err = p.expectIdentifierLike()
	}
	table.Base = Base{NodeKind: KindTableRef, Tokens: p.span(tableStart)}
	if err != nil {
		return nil, err
	}
	stmt := &InsertStatement{Header: header, With: with, Table: table}

	if p.peekPunct("(") {
		p.advance()
		for {
			colStart := p.rawIdx()
			id, err := p.expectIdentifierLike()
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, ColumnRef{Base: Base{NodeKind: KindColumnRef, Tokens: p.span(colStart)}, Name: id})
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

	switch {
	case p.peekKeyword("DEFAULT"):
		p.advance()
		if _, err := p.expectKeyword("VALUES"); err != nil {
			return nil, err
		}
	case p.peekKeyword("VALUES"):
		vc, err := p.parseValuesClause()
		if err != nil {
			return nil, err
		}
		stmt.Values = vc
	case p.peekKeyword("SELECT", "WITH"):
		var innerWith *WithClause
		var err error
		if p.peekKeyword("WITH") {
			innerWith, err = p.parseWithClause()
			if err != nil {
				return nil, err
			}
		}
		sel, err := p.parseSelectStatement(innerWith, true)
		if err != nil {
			return nil, err
		}
		stmt.Select = sel
	}

	if p.peekKeyword("ON") {
		oc, err := p.parseOnConflictClause()
		if err != nil {
			return nil, err
		}
		stmt.OnConflict = oc
	}
	if p.peekKeyword("RETURNING") {
		rc, err := p.parseReturningClause()
		if err != nil {
			return nil, err
		}
		stmt.Returning = rc
	}
	if p.peekPunct(";") {
		p.advance()
		stmt.HasSemicolon = true
	}
	stmt.Base = Base{NodeKind: KindInsertStatement, Tokens: p.span(start)}
	return stmt, nil
}

func (p *Parser) parseValuesClause() (*ValuesClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}
	vc := &ValuesClause{}
	for {
		if _, err := p.expectPunct("("); err != nil {
			return nil, err
		}
		var row []Node
		for {
			if p.peekKeyword("DEFAULT") {
				p.advance()
				row = append(row, &ColumnRef{Base: Base{NodeKind: KindColumnRef}, Name: token.Token{Kind: token.Keyword, Text: "DEFAULT"}})
			} else {
				e, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				row = append(row, e)
			}
			if p.peekPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		vc.Rows = append(vc.Rows, row)
		if p.peekPunct(",") {
			p.advance()
			continue
		}
		break
	}
	vc.Base = Base{NodeKind: KindValuesClause, Tokens: p.span(start)}
	return vc, nil
}

func (p *Parser) parseOnConflictClause() (*OnConflictClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("ON"); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("CONFLICT"); err != nil {
		return nil, err
	}
	oc := &OnConflictClause{}
	if p.peekPunct("(") {
		p.advance()
		for {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			oc.Targets = append(oc.Targets, e)
			if p.peekPunct(",") {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
	} else if p.peekKeyword("ON") {
		// ON CONSTRAINT name
		p.advance()
		if _, err := p.expectIdentifierLike(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expectKeyword("DO"); err != nil {
		return nil, err
	}
	if p.peekKeyword("NOTHING") {
		p.advance()
		oc.DoNothing = true
	} else if p.peekKeyword("UPDATE") {
		p.advance()
		sc, err := p.parseSetClause()
		if err != nil {
			return nil, err
		}
		oc.Set = sc
		if p.peekKeyword("WHERE") {
			p.advance()
			cond, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			oc.Where = cond
		}
	}
	oc.Base = Base{NodeKind: KindOnConflictClause, Tokens: p.span(start)}
	return oc, nil
}

func (p *Parser) parseReturningClause() (*ReturningClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("RETURNING"); err != nil {
		return nil, err
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
	return &ReturningClause{Base: Base{NodeKind: KindReturningClause, Tokens: p.span(start)}, Items: items}, nil
}

func (p *Parser) parseUpdateStatement(with *WithClause) (*UpdateStatement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.rawIdx()
	header := p.parseHeader("UPDATE")
	table, err := p.parseTableRefNoJoins()
	if err != nil {
		return nil, err
	}
	stmt := &UpdateStatement{Header: header, With: with, Table: table}

	sc, err := p.parseSetClause()
	if err != nil {
		return nil, err
	}
	stmt.Set = *sc

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
	if p.peekKeyword("RETURNING") {
		rc, err := p.parseReturningClause()
		if err != nil {
			return nil, err
		}
		stmt.Returning = rc
	}
	if p.peekPunct(";") {
		p.advance()
		stmt.HasSemicolon = true
	}
	stmt.Base = Base{NodeKind: KindUpdateStatement, Tokens: p.span(start)}
	return stmt, nil
}

func (p *Parser) parseSetClause() (*SetClause, error) {
	start := p.rawIdx()
	if _, err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}
	sc := &SetClause{}
	for {
		itemStart := p.rawIdx()
		if p.peekPunct("(") {
			p.advance()
			var targets []token.Token
			for {
				id, err := p.expectIdentifierLike()
				if err != nil {
					return nil, err
				}
				targets = append(targets, id)
				if p.peekPunct(",") {
					p.advance()
					continue
				}
				break
			}
			if _, err := p.expectPunct(")"); err != nil {
				return nil, err
			}
			if _, err := p.expectPunct("="); err != nil {
				return nil, err
			}
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			targetRefs := make([]token.Token, len(targets))
			copy(targetRefs, targets)
			sc.Items = append(sc.Items, SetItem{
				Base:   Base{NodeKind: KindSetItem, Tokens: p.span(itemStart)},
				Target: &ColumnRef{Base: Base{NodeKind: KindColumnRef, Tokens: targetRefs}, Name: targets[0]},
				Value:  value,
			})
		} else {
			target, err := p.expectIdentifierLike()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectPunct("="); err != nil {
				return nil, err
			}
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			sc.Items = append(sc.Items, SetItem{
				Base:   Base{NodeKind: KindSetItem, Tokens: p.span(itemStart)},
				Target: &ColumnRef{Base: Base{NodeKind: KindColumnRef, Tokens: []token.Token{target}}, Name: target},
				Value:  value,
			})
		}
		if p.peekPunct(",") {
			p.advance()
			continue
		}
		break
	}
	sc.Base = Base{NodeKind: KindSetClause, Tokens: p.span(start)}
	return sc, nil
}

func (p *Parser) parseDeleteStatement(with *WithClause) (*DeleteStatement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	start := p.rawIdx()
	header := p.parseHeader("DELETE")
	if _, err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.parseTableRefNoJoins()
	if err != nil {
		return nil, err
	}
	stmt := &DeleteStatement{Header: header, With: with, Table: table}

	if p.peekKeyword("USING") {
		p.advance()
		using, err := p.parseFromClauseBody()
		if err != nil {
			return nil, err
		}
		stmt.Using = using
	}
	if p.peekKeyword("WHERE") {
		wc, err := p.parseWhereClause()
		if err != nil {
			return nil, err
		}
		stmt.Where = wc
	}
	if p.peekKeyword("RETURNING") {
		rc, err := p.parseReturningClause()
		if err != nil {
			return nil, err
		}
		stmt.Returning = rc
	}
	if p.peekPunct(";") {
		p.advance()
		stmt.HasSemicolon = true
	}
	stmt.Base = Base{NodeKind: KindDeleteStatement, Tokens: p.span(start)}
	return stmt, nil
}

// parseFromClauseBody parses a comma-separated table-ref list without a
// leading FROM keyword, reused by DELETE ... USING.
func (p *Parser) parseFromClauseBody() ([]TableRef, error) {
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
	return items, nil
}
