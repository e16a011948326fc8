package translate

import (
	"fmt"
	"strings"

	"github.com/uroborosql/sqlfmt/comment"
	"github.com/uroborosql/sqlfmt/config"
	"github.com/uroborosql/sqlfmt/cstree"
	"github.com/uroborosql/sqlfmt/ferr"
	"github.com/uroborosql/sqlfmt/token"
)

// ctx carries the one Config shared by a whole Format call (§3.2) through
// every translate helper, the same way the teacher's formatter threads a
// single options value through its node visitors instead of a parser
// parent-pointer chain (§9 design note: "explicit threading of context").
type ctx struct {
	cfg      config.Config
	groupSeq int
}

// nextGroup hands out a fresh AlignedList group identity. It is a field on
// ctx, not a package-level counter, because the spec requires the core to
// keep no shared mutable state across calls (§5) — each Translate call
// owns a fresh ctx.
func (c *ctx) nextGroup() int {
	c.groupSeq++
	return c.groupSeq
}

// renderExpr flattens a cstree expression into its final printed text,
// applying every token-level rewrite from §4.2 that operates below the
// clause/list granularity the layout tree models structurally.
func (c *ctx) renderExpr(n cstree.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	switch e := n.(type) {
	case *cstree.ColumnRef:
		return c.renderColumnRef(e), nil
	case *cstree.Star:
		return "*", nil
	case *cstree.Literal:
		return e.Value.Text, nil
	case *cstree.BindParam:
		return c.renderBindParam(e)
	case *cstree.UnaryExpr:
		operand, err := c.renderExpr(e.Operand)
		if err != nil {
			return "", err
		}
		op := c.kw(e.Op)
		if e.Op.Kind == token.Keyword {
			return op + " " + operand, nil
		}
		return op + operand, nil
	case *cstree.BinaryExpr:
		left, err := c.renderExpr(e.Left)
		if err != nil {
			return "", err
		}
		right, err := c.renderExpr(e.Right)
		if err != nil {
			return "", err
		}
		op := e.Op.Text
		if c.cfg.UnifyNotEqual && op == "<>" {
			op = "!="
		}
		if e.Op.Kind == token.Keyword {
			op = c.kw(e.Op)
		}
		return left + " " + op + " " + right, nil
	case *cstree.BetweenExpr:
		operand, err := c.renderExpr(e.Operand)
		if err != nil {
			return "", err
		}
		low, err := c.renderExpr(e.Low)
		if err != nil {
			return "", err
		}
		high, err := c.renderExpr(e.High)
		if err != nil {
			return "", err
		}
		not := ""
		if e.Not {
			not = c.kwText("NOT") + " "
		}
		return fmt.Sprintf("%s %s%s %s %s %s %s", operand, not, c.kwText("BETWEEN"), low, c.kwText("AND"), high, ""), nil
	case *cstree.BooleanChain:
		return c.renderBooleanChainInline(e)
	case *cstree.FunctionCall:
		return c.renderFunctionCall(e)
	case *cstree.CaseExpr:
		return c.renderCaseExpr(e)
	case *cstree.CastExpr:
		return c.renderCastExpr(e)
	case *cstree.ParenExpr:
		return c.renderParenExpr(e)
	case *cstree.Indirection:
		return c.renderIndirection(e)
	case *cstree.Subquery:
		inner, err := Translate(e.Statement, c.cfg)
		if err != nil {
			return "", err
		}
		return "(" + RenderInline(inner) + ")", nil
	case *cstree.ExprList:
		parts := make([]string, len(e.Items))
		for i, it := range e.Items {
			s, err := c.renderExpr(it)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "(" + strings.Join(parts, ", ") + ")", nil
	default:
		return "", &ferr.UnsupportedSyntax{Pos: n.Pos(), Kind: fmt.Sprintf("%T", n), Message: "no expression rewrite rule for this node kind"}
	}
}

func (c *ctx) renderColumnRef(e *cstree.ColumnRef) string {
	var b strings.Builder
	for _, q := range e.Qualifiers {
		b.WriteString(c.ident(q))
		b.WriteString(".")
	}
	if e.Star {
		b.WriteString("*")
	} else {
		b.WriteString(c.ident(e.Name))
	}
	return b.String()
}

// renderBindParam applies bind-parameter coalescing (§4.2): the comment and
// its sample value were already fused into one node by the parser
// (tryBindParam); trim_bind_param controls whether the sample value is kept
// in the printed output or the bare comment marker is left standing alone.
func (c *ctx) renderBindParam(e *cstree.BindParam) (string, error) {
	if c.cfg.TrimBindParam {
		return e.Comment.Text, nil
	}
	val, err := c.renderExpr(e.Value)
	if err != nil {
		return "", err
	}
	return e.Comment.Text + val, nil
}

func (c *ctx) renderFunctionCall(e *cstree.FunctionCall) (string, error) {
	var b strings.Builder
	b.WriteString(c.ident(e.Name))
	b.WriteString("(")
	if e.Distinct {
		b.WriteString(c.kwText("DISTINCT") + " ")
	}
	if e.Star {
		b.WriteString("*")
	} else {
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			s, err := c.renderExpr(a)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		b.WriteString(strings.Join(parts, ", "))
	}
	b.WriteString(")")
	if e.Filter != nil {
		cond, err := c.renderExpr(e.Filter.Condition)
		if err != nil {
			return "", err
		}
		b.WriteString(" " + c.kwText("FILTER") + " (" + c.kwText("WHERE") + " " + cond + ")")
	}
	if e.Over != nil {
		over, err := c.renderWindowSpec(e.Over)
		if err != nil {
			return "", err
		}
		b.WriteString(" " + c.kwText("OVER") + " " + over)
	}
	return b.String(), nil
}

func (c *ctx) renderWindowSpec(w *cstree.WindowSpec) (string, error) {
	if w.Name.Text != "" {
		return c.ident(w.Name), nil
	}
	var parts []string
	if len(w.PartitionBy) > 0 {
		items := make([]string, len(w.PartitionBy))
		for i, p := range w.PartitionBy {
			s, err := c.renderExpr(p)
			if err != nil {
				return "", err
			}
			items[i] = s
		}
		parts = append(parts, c.kwText("PARTITION BY")+" "+strings.Join(items, ", "))
	}
	if len(w.OrderBy) > 0 {
		items := make([]string, len(w.OrderBy))
		for i, o := range w.OrderBy {
			s, err := c.renderOrderItem(o)
			if err != nil {
				return "", err
			}
			items[i] = s
		}
		parts = append(parts, c.kwText("ORDER BY")+" "+strings.Join(items, ", "))
	}
	if len(w.FrameClause) > 0 {
		var fb strings.Builder
		for i, t := range w.FrameClause {
			if i > 0 {
				fb.WriteString(" ")
			}
			if t.Kind == token.Keyword {
				fb.WriteString(c.kw(t))
			} else {
				fb.WriteString(t.Text)
			}
		}
		parts = append(parts, fb.String())
	}
	return "(" + strings.Join(parts, " ") + ")", nil
}

func (c *ctx) renderOrderItem(o cstree.OrderItem) (string, error) {
	s, err := c.renderExpr(o.Expr)
	if err != nil {
		return "", err
	}
	if o.HasDir {
		if o.Desc {
			s += " " + c.kwText("DESC")
		} else {
			s += " " + c.kwText("ASC")
		}
	}
	if o.Nulls != "" {
		s += " " + c.kwText("NULLS") + " " + c.kwText(o.Nulls)
	}
	return s, nil
}

func (c *ctx) renderCaseExpr(e *cstree.CaseExpr) (string, error) {
	var b strings.Builder
	b.WriteString(c.kwText("CASE"))
	if e.Operand != nil {
		s, err := c.renderExpr(e.Operand)
		if err != nil {
			return "", err
		}
		b.WriteString(" " + s)
	}
	for _, w := range e.Whens {
		cond, err := c.renderExpr(w.Condition)
		if err != nil {
			return "", err
		}
		res, err := c.renderExpr(w.Result)
		if err != nil {
			return "", err
		}
		b.WriteString(" " + c.kwText("WHEN") + " " + cond + " " + c.kwText("THEN") + " " + res)
	}
	if e.Else != nil {
		s, err := c.renderExpr(e.Else)
		if err != nil {
			return "", err
		}
		b.WriteString(" " + c.kwText("ELSE") + " " + s)
	}
	b.WriteString(" " + c.kwText("END"))
	return b.String(), nil
}

// renderCastExpr applies convert_double_colon_cast (§4.2): `x::t` becomes
// `CAST(x AS t)` when enabled; otherwise the original spelling (double
// colon or CAST(...)) is preserved.
func (c *ctx) renderCastExpr(e *cstree.CastExpr) (string, error) {
	inner, err := c.renderExpr(e.Expr)
	if err != nil {
		return "", err
	}
	typeName := c.renderTypeName(e.TypeName, e.TypeArgs)
	if e.OriginalDoubleColon && !c.cfg.ConvertDoubleColonCast {
		return inner + "::" + typeName, nil
	}
	return c.kwText("CAST") + "(" + inner + " " + c.kwText("AS") + " " + typeName + ")", nil
}

func (c *ctx) renderTypeName(words []token.Token, args []token.Token) string {
	parts := make([]string, len(words))
	for i, w := range words {
		if w.Kind == token.Keyword {
			parts[i] = c.kw(w)
		} else {
			parts[i] = w.Text
		}
	}
	s := strings.Join(parts, " ")
	for _, a := range args {
		s += a.Text
	}
	return s
}

// renderParenExpr applies remove_redundant_nest (§4.2): a paren wrapping
// another paren collapses to the innermost one; the discarded wrapper's
// comments are re-anchored onto the surviving node (§3.4).
func (c *ctx) renderParenExpr(e *cstree.ParenExpr) (string, error) {
	inner := e.Inner
	leading, _ := comment.SplitLeading(e.Tokens)
	_, trailing := comment.SplitTrailing(e.Tokens)
	for c.cfg.RemoveRedundantNest {
		if p, ok := inner.(*cstree.ParenExpr); ok {
			l, _ := comment.SplitLeading(p.Tokens)
			_, t := comment.SplitTrailing(p.Tokens)
			leading = append(leading, l...)
			trailing = append(trailing, t...)
			inner = p.Inner
			continue
		}
		break
	}
	s, err := c.renderExpr(inner)
	if err != nil {
		return "", err
	}
	result := "(" + s + ")"
	if len(leading) > 0 {
		result = strings.Join(leading, " ") + " " + result
	}
	if len(trailing) > 0 {
		result = result + " " + strings.Join(trailing, " ")
	}
	return result, nil
}

func (c *ctx) renderIndirection(e *cstree.Indirection) (string, error) {
	base, err := c.renderExpr(e.Target)
	if err != nil {
		return "", err
	}
	switch {
	case e.Star:
		return base + ".*", nil
	case e.Slice:
		lo, err := c.renderExpr(e.Lower)
		if err != nil {
			return "", err
		}
		if e.Upper == nil {
			return base + "[" + lo + ":]", nil
		}
		hi, err := c.renderExpr(e.Upper)
		if err != nil {
			return "", err
		}
		return base + "[" + lo + ":" + hi + "]", nil
	case e.Field.Text != "":
		return base + "." + c.ident(e.Field), nil
	default:
		lo, err := c.renderExpr(e.Lower)
		if err != nil {
			return "", err
		}
		return base + "[" + lo + "]", nil
	}
}

// renderBooleanChainInline renders a BooleanChain that appears nested
// inside an expression (e.g. inside a function call argument) as one flat
// line; top-level WHERE/HAVING/ON conditions use layout.BooleanChain
// instead so the connector column can be aligned by the align package.
func (c *ctx) renderBooleanChainInline(e *cstree.BooleanChain) (string, error) {
	parts := make([]string, len(e.Operands))
	for i, o := range e.Operands {
		s, err := c.renderExpr(o)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for i, conn := range e.Connectors {
		b.WriteString(" " + c.kw(conn) + " " + parts[i+1])
	}
	return b.String(), nil
}

func (c *ctx) kw(t token.Token) string {
	return applyCase(t.Text, c.cfg.KeywordCase)
}

func (c *ctx) kwText(s string) string {
	return applyCase(s, c.cfg.KeywordCase)
}

func (c *ctx) ident(t token.Token) string {
	if t.Kind == token.QuotedIdentifier {
		return t.Text
	}
	return applyCase(t.Text, c.cfg.IdentifierCase)
}
