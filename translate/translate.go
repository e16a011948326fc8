// Package translate implements the CST-to-layout translator (§4.2): it
// walks a cstree.Statement and produces the layout.Statement the alignment
// solver and renderer consume, applying every rewrite the spec assigns to
// this stage (casing, alias/OUTER/CAST completion, redundant-paren removal,
// `<>` unification, bind-parameter coalescing, SQL-ID insertion).
package translate

import (
	"fmt"
	"strings"

	"github.com/uroborosql/sqlfmt/comment"
	"github.com/uroborosql/sqlfmt/config"
	"github.com/uroborosql/sqlfmt/cstree"
	"github.com/uroborosql/sqlfmt/ferr"
	"github.com/uroborosql/sqlfmt/layout"
	"github.com/uroborosql/sqlfmt/token"
)

// Translate converts one parsed statement into its layout form.
func Translate(stmt cstree.Statement, cfg config.Config) (*layout.Statement, error) {
	c := &ctx{cfg: cfg}
	switch s := stmt.(type) {
	case *cstree.SelectStatement:
		return c.translateSelect(s)
	case *cstree.InsertStatement:
		return c.translateInsert(s)
	case *cstree.UpdateStatement:
		return c.translateUpdate(s)
	case *cstree.DeleteStatement:
		return c.translateDelete(s)
	default:
		return nil, &ferr.UnsupportedSyntax{Kind: fmt.Sprintf("%T", stmt), Message: "no top-level translation rule for this statement kind"}
	}
}

func (c *ctx) header(h cstree.Header, sqlIDInsert *bool) (string, error) {
	kw := c.kw(h.Keyword)
	if h.SQLIDComment != nil {
		return kw + " " + h.SQLIDComment.Text, nil
	}
	if c.cfg.ComplementSQLID {
		*sqlIDInsert = true
		return kw + " /* _SQL_ID_ */", nil
	}
	return kw, nil
}

func (c *ctx) translateSelect(s *cstree.SelectStatement) (*layout.Statement, error) {
	out := &layout.Statement{Semicolon: s.HasSemicolon}
	var sqlIDInsert bool
	hdr, err := c.header(s.Header, &sqlIDInsert)
	if err != nil {
		return nil, err
	}
	out.SQLIDInsert = sqlIDInsert

	if s.With != nil {
		cl, err := c.translateWith(s.With)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}

	selectItems, err := c.translateSelectItems(hdr, s.Select)
	if err != nil {
		return nil, err
	}
	out.Clauses = append(out.Clauses, selectItems)

	if s.From != nil {
		cl, err := c.translateFrom(s.From)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	if s.Where != nil {
		cl, err := c.translateCondition("WHERE", s.Where.Condition)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	if s.GroupBy != nil {
		cl, err := c.translateExprList("GROUP BY", s.GroupBy.Items)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	if s.Having != nil {
		cl, err := c.translateCondition("HAVING", s.Having.Condition)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	if s.OrderBy != nil {
		cl, err := c.translateOrderBy(s.OrderBy)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	if s.Limit != nil {
		expr, err := c.renderExpr(s.Limit.Count)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, &layout.Clause{Keyword: c.kwText("LIMIT"), Body: &layout.Expression{Text: expr}})
	}
	if s.Offset != nil {
		expr, err := c.renderExpr(s.Offset.Count)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, &layout.Clause{Keyword: c.kwText("OFFSET"), Body: &layout.Expression{Text: expr}})
	}
	if s.ForUpdate != nil {
		cl, err := c.translateForUpdate(s.ForUpdate)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	return out, nil
}

func (c *ctx) translateWith(w *cstree.WithClause) (*layout.Clause, error) {
	entries := make([]layout.CTEEntry, len(w.CTEs))
	for i, cte := range w.CTEs {
		var b strings.Builder
		b.WriteString(c.ident(cte.Name))
		if len(cte.Columns) > 0 {
			cols := make([]string, len(cte.Columns))
			for j, col := range cte.Columns {
				cols[j] = c.ident(col)
			}
			b.WriteString(" (" + strings.Join(cols, ", ") + ")")
		}
		b.WriteString(" " + c.kwText("AS"))
		if cte.Materialized == 1 {
			b.WriteString(" " + c.kwText("MATERIALIZED"))
		} else if cte.Materialized == -1 {
			b.WriteString(" " + c.kwText("NOT MATERIALIZED"))
		}
		inner, err := Translate(cte.Statement, c.cfg)
		if err != nil {
			return nil, err
		}
		entries[i] = layout.CTEEntry{Header: b.String(), Body: inner}
	}
	kw := "WITH"
	if w.Recursive {
		kw = "WITH RECURSIVE"
	}
	return &layout.Clause{Keyword: c.kwText(kw), Body: &layout.CTEList{Recursive: w.Recursive, Entries: entries}}, nil
}

// translateSelectItems applies complement_alias and complement_column_as_keyword
// (§4.2) while building the SELECT list's AlignedList.
func (c *ctx) translateSelectItems(hdr string, sel cstree.SelectClause) (*layout.Clause, error) {
	items := make([]layout.Item, len(sel.Items))
	for i, it := range sel.Items {
		item, err := c.translateSelectItem(it)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	kw := hdr
	if sel.Distinct {
		kw = hdr + " " + c.kwText("DISTINCT")
	}
	return &layout.Clause{
		Keyword: kw,
		Body:    &layout.AlignedList{GroupID: c.nextGroup(), LeadingComma: true, Items: items},
	}, nil
}

// itemLeading recovers any leading-standalone comment physically preceding
// a list item's first real token (§4.3); trailing comments immediately
// before that same item's list separator are not recoverable here — the
// parser does not retain trivia it skips while matching the separator
// itself (documented in DESIGN.md as a known gap).
func itemLeading(n cstree.Node) []string {
	leading, _ := comment.SplitLeading(n.RawTokens())
	return leading
}

func (c *ctx) translateSelectItem(it cstree.SelectItem) (layout.Item, error) {
	expr, err := c.renderExpr(it.Expr)
	if err != nil {
		return layout.Item{}, err
	}
	hasAlias := it.Alias.Text != ""
	hasAs := it.HasAs
	alias := it.Alias.Text
	if !hasAlias && c.cfg.ComplementAlias {
		if name, ok := deriveAliasName(it.Expr); ok {
			alias, hasAlias, hasAs = name, true, true
		}
	}
	if hasAlias && !hasAs && c.cfg.ComplementColumnAsKeyword {
		hasAs = true
	}
	cells := []layout.Cell{{Text: expr}}
	if hasAlias {
		asWord := ""
		if hasAs {
			asWord = c.kwText("AS")
		}
		cells = append(cells, layout.Cell{Text: asWord}, layout.Cell{Text: c.identText(alias, it.Alias)})
	}
	item := layout.Item{Cells: cells}
	item.Leading = itemLeading(it)
	return item, nil
}

func deriveAliasName(n cstree.Node) (string, bool) {
	switch e := n.(type) {
	case *cstree.ColumnRef:
		if e.Star {
			return "", false
		}
		return e.Name.Text, true
	case *cstree.Indirection:
		if e.Field.Text != "" {
			return e.Field.Text, true
		}
	}
	return "", false
}

func (c *ctx) identText(s string, t token.Token) string {
	if t.Kind == token.QuotedIdentifier {
		return t.Text
	}
	return applyCase(s, c.cfg.IdentifierCase)
}

func (c *ctx) translateFrom(f *cstree.FromClause) (*layout.Clause, error) {
	items := make([]layout.JoinChainItem, len(f.Items))
	for i, tr := range f.Items {
		seed, joins, err := c.translateTableRef(tr)
		if err != nil {
			return nil, err
		}
		items[i] = layout.JoinChainItem{Seed: seed, Joins: joins}
	}
	return &layout.Clause{Keyword: c.kwText("FROM"), Body: &layout.JoinChain{Items: items}}, nil
}

func (c *ctx) translateTableRef(tr cstree.TableRef) (string, []layout.JoinSegment, error) {
	base, err := c.renderExpr(tr.Table)
	if err != nil {
		return "", nil, err
	}
	if tr.WithOrdinality {
		base += " " + c.kwText("WITH ORDINALITY")
	}
	if tr.Alias.Text != "" {
		// UNNEST(...) WITH ORDINALITY AS (col-def-list) requires AS by
		// grammar when a column-definition list follows; remove_table_as_keyword
		// must not strip it there (§4.2).
		forcedAs := tr.WithOrdinality && len(tr.ColumnAlias) > 0
		as := ""
		if tr.HasAs && (forcedAs || !c.cfg.RemoveTableAsKeyword) {
			as = c.kwText("AS") + " "
		}
		base += " " + as + c.ident(tr.Alias)
		if len(tr.ColumnAlias) > 0 {
			cols := make([]string, len(tr.ColumnAlias))
			for i, col := range tr.ColumnAlias {
				cols[i] = c.ident(col)
			}
			base += "(" + strings.Join(cols, ", ") + ")"
		}
	}
	joins := make([]layout.JoinSegment, len(tr.Joins))
	for i, j := range tr.Joins {
		seg, err := c.translateJoin(j)
		if err != nil {
			return "", nil, err
		}
		joins[i] = seg
	}
	return base, joins, nil
}

var joinKindWords = map[cstree.JoinKind]string{
	cstree.JoinInner:   "INNER JOIN",
	cstree.JoinLeft:    "LEFT",
	cstree.JoinRight:   "RIGHT",
	cstree.JoinFull:    "FULL",
	cstree.JoinCross:   "CROSS JOIN",
	cstree.JoinNatural: "NATURAL",
}

// translateJoin applies complement_outer_keyword (§4.2): LEFT/RIGHT/FULL
// JOIN gets an explicit OUTER inserted when the source omitted it.
func (c *ctx) translateJoin(j cstree.Join) (layout.JoinSegment, error) {
	kind := joinKindWords[j.Kind]
	switch j.Kind {
	case cstree.JoinLeft, cstree.JoinRight, cstree.JoinFull:
		outer := j.HasOuter || c.cfg.ComplementOuterKeyword
		if outer {
			kind += " OUTER"
		}
		kind += " JOIN"
	case cstree.JoinNatural:
		kind += " JOIN"
	}
	seed, joins, err := c.translateTableRef(j.Table)
	if err != nil {
		return layout.JoinSegment{}, err
	}
	table := seed
	if len(joins) > 0 {
		// joins chained off a join target (rare) are flattened inline since
		// JoinSegment has no sub-chain slot of its own.
		for _, sub := range joins {
			table += " " + sub.Kind + " " + sub.Table
			if sub.Condition != "" {
				table += " " + sub.Condition
			}
		}
	}
	cond := ""
	switch {
	case j.On != nil:
		s, err := c.renderExpr(j.On)
		if err != nil {
			return layout.JoinSegment{}, err
		}
		cond = c.kwText("ON") + " " + s
	case len(j.Using) > 0:
		cols := make([]string, len(j.Using))
		for i, u := range j.Using {
			cols[i] = c.ident(u)
		}
		cond = c.kwText("USING") + " (" + strings.Join(cols, ", ") + ")"
	}
	return layout.JoinSegment{Kind: applyCase(kind, c.cfg.KeywordCase), Table: table, Condition: cond}, nil
}

func (c *ctx) translateCondition(keyword string, cond cstree.Node) (*layout.Clause, error) {
	if bc, ok := cond.(*cstree.BooleanChain); ok {
		operands := make([]string, len(bc.Operands))
		for i, o := range bc.Operands {
			s, err := c.renderExpr(o)
			if err != nil {
				return nil, err
			}
			operands[i] = s
		}
		connectors := make([]string, len(bc.Connectors))
		for i, t := range bc.Connectors {
			connectors[i] = c.kw(t)
		}
		return &layout.Clause{Keyword: c.kwText(keyword), Body: &layout.BooleanChain{Operands: operands, Connectors: connectors}}, nil
	}
	s, err := c.renderExpr(cond)
	if err != nil {
		return nil, err
	}
	return &layout.Clause{Keyword: c.kwText(keyword), Body: &layout.BooleanChain{Operands: []string{s}}}, nil
}

func (c *ctx) translateExprList(keyword string, items []cstree.Node) (*layout.Clause, error) {
	out := make([]layout.Item, len(items))
	for i, it := range items {
		s, err := c.renderExpr(it)
		if err != nil {
			return nil, err
		}
		item := layout.Item{Cells: []layout.Cell{{Text: s}}}
		item.Leading = itemLeading(it)
		out[i] = item
	}
	return &layout.Clause{Keyword: c.kwText(keyword), Body: &layout.AlignedList{GroupID: c.nextGroup(), LeadingComma: true, Items: out}}, nil
}

func (c *ctx) translateOrderBy(ob *cstree.OrderByClause) (*layout.Clause, error) {
	items := make([]layout.Item, len(ob.Items))
	for i, it := range ob.Items {
		s, err := c.renderOrderItem(it)
		if err != nil {
			return nil, err
		}
		item := layout.Item{Cells: []layout.Cell{{Text: s}}}
		item.Leading = itemLeading(it.Expr)
		items[i] = item
	}
	return &layout.Clause{Keyword: c.kwText("ORDER BY"), Body: &layout.AlignedList{GroupID: c.nextGroup(), LeadingComma: true, Items: items}}, nil
}

func (c *ctx) translateForUpdate(f *cstree.ForUpdateClause) (*layout.Clause, error) {
	kw := "FOR UPDATE"
	if f.Share {
		kw = "FOR SHARE"
	}
	var extra []string
	if len(f.Of) > 0 {
		names := make([]string, len(f.Of))
		for i, n := range f.Of {
			names[i] = c.ident(n)
		}
		extra = append(extra, c.kwText("OF")+" "+strings.Join(names, ", "))
	}
	if f.Nowait {
		extra = append(extra, c.kwText("NOWAIT"))
	}
	if f.SkipLock {
		extra = append(extra, c.kwText("SKIP LOCKED"))
	}
	text := strings.Join(extra, " ")
	return &layout.Clause{Keyword: c.kwText(kw), Body: &layout.Expression{Text: text}}, nil
}

func (c *ctx) translateInsert(s *cstree.InsertStatement) (*layout.Statement, error) {
	out := &layout.Statement{Semicolon: s.HasSemicolon}
	var sqlIDInsert bool
	hdr, err := c.header(s.Header, &sqlIDInsert)
	if err != nil {
		return nil, err
	}
	out.SQLIDInsert = sqlIDInsert

	if s.With != nil {
		cl, err := c.translateWith(s.With)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}

	seed, _, err := c.translateTableRef(s.Table)
	if err != nil {
		return nil, err
	}
	intoKw := hdr + " " + c.kwText("INTO")
	out.Clauses = append(out.Clauses, &layout.Clause{Keyword: intoKw, Body: &layout.Expression{Text: seed}})

	if len(s.Columns) > 0 {
		items := make([]layout.Item, len(s.Columns))
		for i, col := range s.Columns {
			items[i] = layout.Item{Cells: []layout.Cell{{Text: c.ident(col.Name)}}}
		}
		out.Clauses = append(out.Clauses, &layout.Clause{Body: &layout.AlignedList{GroupID: c.nextGroup(), LeadingComma: true, Items: items}})
	}

	switch {
	case s.Values != nil:
		cl, err := c.translateValues(s.Values)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	case s.Select != nil:
		inner, err := Translate(s.Select, c.cfg)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, &layout.Clause{Body: &layout.SubStatement{Inner: inner}})
	default:
		out.Clauses = append(out.Clauses, &layout.Clause{Body: &layout.Expression{Text: c.kwText("DEFAULT VALUES")}})
	}

	if s.OnConflict != nil {
		cl, err := c.translateOnConflict(s.OnConflict)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	if s.Returning != nil {
		cl, err := c.translateReturning(s.Returning)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	return out, nil
}

func (c *ctx) translateValues(v *cstree.ValuesClause) (*layout.Clause, error) {
	items := make([]layout.Item, len(v.Rows))
	for i, row := range v.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell == nil {
				cells[j] = c.kwText("DEFAULT")
				continue
			}
			s, err := c.renderExpr(cell)
			if err != nil {
				return nil, err
			}
			cells[j] = s
		}
		items[i] = layout.Item{Cells: []layout.Cell{{Text: "(" + strings.Join(cells, ", ") + ")"}}}
	}
	return &layout.Clause{Keyword: c.kwText("VALUES"), Body: &layout.AlignedList{GroupID: c.nextGroup(), LeadingComma: true, Items: items}}, nil
}

func (c *ctx) translateOnConflict(oc *cstree.OnConflictClause) (*layout.Clause, error) {
	var b strings.Builder
	b.WriteString(c.kwText("ON CONFLICT"))
	if len(oc.Targets) > 0 {
		names := make([]string, len(oc.Targets))
		for i, t := range oc.Targets {
			s, err := c.renderExpr(t)
			if err != nil {
				return nil, err
			}
			names[i] = s
		}
		b.WriteString(" (" + strings.Join(names, ", ") + ")")
	}
	if oc.DoNothing {
		b.WriteString(" " + c.kwText("DO NOTHING"))
		return &layout.Clause{Keyword: b.String()}, nil
	}
	b.WriteString(" " + c.kwText("DO UPDATE") + " " + c.kwText("SET"))
	setCl, err := c.translateSet(*oc.Set)
	if err != nil {
		return nil, err
	}
	cl := &layout.Clause{Keyword: b.String(), Body: setCl.Body}
	if oc.Where != nil {
		s, err := c.renderExpr(oc.Where)
		if err != nil {
			return nil, err
		}
		cl.Trailing = append(cl.Trailing, c.kwText("WHERE")+" "+s)
	}
	return cl, nil
}

func (c *ctx) translateReturning(r *cstree.ReturningClause) (*layout.Clause, error) {
	items := make([]layout.Item, len(r.Items))
	for i, it := range r.Items {
		item, err := c.translateSelectItem(it)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return &layout.Clause{Keyword: c.kwText("RETURNING"), Body: &layout.AlignedList{GroupID: c.nextGroup(), LeadingComma: true, Items: items}}, nil
}

func (c *ctx) translateUpdate(s *cstree.UpdateStatement) (*layout.Statement, error) {
	out := &layout.Statement{Semicolon: s.HasSemicolon}
	var sqlIDInsert bool
	hdr, err := c.header(s.Header, &sqlIDInsert)
	if err != nil {
		return nil, err
	}
	out.SQLIDInsert = sqlIDInsert

	if s.With != nil {
		cl, err := c.translateWith(s.With)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}

	seed, _, err := c.translateTableRef(s.Table)
	if err != nil {
		return nil, err
	}
	out.Clauses = append(out.Clauses, &layout.Clause{Keyword: hdr, Body: &layout.Expression{Text: seed}})

	setCl, err := c.translateSet(s.Set)
	if err != nil {
		return nil, err
	}
	out.Clauses = append(out.Clauses, setCl)

	if s.From != nil {
		cl, err := c.translateFrom(s.From)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	if s.Where != nil {
		cl, err := c.translateCondition("WHERE", s.Where.Condition)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	if s.Returning != nil {
		cl, err := c.translateReturning(s.Returning)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	return out, nil
}

func (c *ctx) translateSet(s cstree.SetClause) (*layout.Clause, error) {
	items := make([]layout.Item, len(s.Items))
	for i, it := range s.Items {
		target, err := c.renderExpr(it.Target)
		if err != nil {
			return nil, err
		}
		value, err := c.renderExpr(it.Value)
		if err != nil {
			return nil, err
		}
		item := layout.Item{Cells: []layout.Cell{{Text: target}, {Text: "="}, {Text: value}}}
		item.Leading = itemLeading(it)
		items[i] = item
	}
	return &layout.Clause{Keyword: c.kwText("SET"), Body: &layout.AlignedList{GroupID: c.nextGroup(), LeadingComma: true, Items: items}}, nil
}

func (c *ctx) translateDelete(s *cstree.DeleteStatement) (*layout.Statement, error) {
	out := &layout.Statement{Semicolon: s.HasSemicolon}
	var sqlIDInsert bool
	hdr, err := c.header(s.Header, &sqlIDInsert)
	if err != nil {
		return nil, err
	}
	out.SQLIDInsert = sqlIDInsert

	seed, _, err := c.translateTableRef(s.Table)
	if err != nil {
		return nil, err
	}
	fromKw := hdr + " " + c.kwText("FROM")
	out.Clauses = append(out.Clauses, &layout.Clause{Keyword: fromKw, Body: &layout.Expression{Text: seed}})

	if len(s.Using) > 0 {
		items := make([]layout.JoinChainItem, len(s.Using))
		for i, tr := range s.Using {
			sd, joins, err := c.translateTableRef(tr)
			if err != nil {
				return nil, err
			}
			items[i] = layout.JoinChainItem{Seed: sd, Joins: joins}
		}
		out.Clauses = append(out.Clauses, &layout.Clause{Keyword: c.kwText("USING"), Body: &layout.JoinChain{Items: items}})
	}
	if s.Where != nil {
		cl, err := c.translateCondition("WHERE", s.Where.Condition)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	if s.Returning != nil {
		cl, err := c.translateReturning(s.Returning)
		if err != nil {
			return nil, err
		}
		out.Clauses = append(out.Clauses, cl)
	}
	return out, nil
}

// RenderInline flattens an already-translated Statement into one line, used
// to embed a subquery inline inside an expression; the align/render
// packages handle the multi-line top-level form.
func RenderInline(s *layout.Statement) string {
	var parts []string
	for _, cl := range s.Clauses {
		parts = append(parts, inlineClause(cl))
	}
	return strings.Join(parts, " ")
}

func inlineClause(cl *layout.Clause) string {
	var body string
	switch b := cl.Body.(type) {
	case *layout.AlignedList:
		items := make([]string, len(b.Items))
		for i, it := range b.Items {
			cells := make([]string, 0, len(it.Cells))
			for _, c := range it.Cells {
				if c.Text != "" {
					cells = append(cells, c.Text)
				}
			}
			items[i] = strings.Join(cells, " ")
		}
		body = strings.Join(items, ", ")
	case *layout.Expression:
		body = b.Text
	case *layout.BooleanChain:
		var sb strings.Builder
		sb.WriteString(b.Operands[0])
		for i, conn := range b.Connectors {
			sb.WriteString(" " + conn + " " + b.Operands[i+1])
		}
		body = sb.String()
	case *layout.JoinChain:
		var items []string
		for _, jc := range b.Items {
			s := jc.Seed
			for _, j := range jc.Joins {
				s += " " + j.Kind + " " + j.Table
				if j.Condition != "" {
					s += " " + j.Condition
				}
			}
			items = append(items, s)
		}
		body = strings.Join(items, ", ")
	case *layout.SubStatement:
		body = RenderInline(b.Inner)
	case *layout.CTEList:
		var entries []string
		for _, e := range b.Entries {
			entries = append(entries, e.Header+" ("+RenderInline(e.Body)+")")
		}
		body = strings.Join(entries, ", ")
	}
	if cl.Keyword == "" {
		return body
	}
	if body == "" {
		return cl.Keyword
	}
	return cl.Keyword + " " + body
}
