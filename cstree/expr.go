package cstree

import "github.com/uroborosql/sqlfmt/token"

// ColumnRef is a (possibly qualified) identifier: id, tbl.col, tbl.*.
type ColumnRef struct {
	Base
	Qualifiers []token.Token // e.g. ["tbl"] for tbl.col; empty for a bare name
	Name       token.Token   // the final identifier or '*'
	Star       bool
}

// Star represents a bare '*' select target.
type Star struct {
	Base
}

// Literal is a number, string, or NULL/TRUE/FALSE keyword literal.
type Literal struct {
	Base
	Value token.Token
}

// BindParam is a 2-way-SQL bind parameter: a comment token immediately
// followed (no intervening whitespace) by a sample literal or identifier
// (§3.3 "column-ref-with-bind", §4.2 "bind-parameter coalescing").
type BindParam struct {
	Base
	Comment token.Token
	Value   Node // Literal or ColumnRef
}

// UnaryExpr is a prefix operator applied to an operand: -x, NOT x.
type UnaryExpr struct {
	Base
	Op      token.Token
	Operand Node
}

// BinaryExpr is a two-operand infix expression: a comparison or an
// arithmetic operation. AND/OR always produce a BooleanChain instead.
type BinaryExpr struct {
	Base
	Left  Node
	Op    token.Token
	Right Node
}

// BetweenExpr is `operand [NOT] BETWEEN low AND high`.
type BetweenExpr struct {
	Base
	Operand Node
	Not     bool
	Low     Node
	High    Node
}

// BooleanChain is an ordered sequence of operands joined by AND/OR,
// preserving the spec's "short-circuit-style alignment of the connector
// column" requirement (§3.3) by keeping operands and connectors as
// parallel slices instead of a binary tree.
type BooleanChain struct {
	Base
	Operands   []Node
	Connectors []token.Token // len(Connectors) == len(Operands)-1
}

// FunctionCall is `name(args...)` optionally followed by FILTER/OVER.
type FunctionCall struct {
	Base
	Name     token.Token
	Distinct bool
	Star     bool // COUNT(*)
	Args     []Node
	Filter   *FilterClause
	Over     *WindowSpec
}

// FilterClause is `FILTER (WHERE cond)` attached to an aggregate call.
type FilterClause struct {
	Base
	Condition Node
}

// WindowSpec is the body of `OVER (...)`.
type WindowSpec struct {
	Base
	Name          token.Token // non-empty when OVER name instead of OVER (...)
	PartitionBy   []Node
	OrderBy       []OrderItem
	FrameClause   []token.Token // raw tokens for ROWS/RANGE ... ; rendered verbatim
}

// CaseExpr is a CASE expression, optionally simple-form (with Operand).
type CaseExpr struct {
	Base
	Operand Node // nil for searched CASE
	Whens   []WhenClause
	Else    Node // nil if no ELSE
}

// WhenClause is one WHEN cond THEN result arm.
type WhenClause struct {
	Condition Node
	Result    Node
}

// CastExpr is `X::T` or `CAST(X AS T)`; OriginalDoubleColon records which
// source spelling was used so the translator can apply
// convert_double_colon_cast only to the former.
type CastExpr struct {
	Base
	Expr               Node
	TypeName           []token.Token // one or more words, e.g. "timestamp", "character", "varying"
	TypeArgs           []token.Token // optional (n) or (p, s) raw tokens, including parens
	OriginalDoubleColon bool
}

// ParenExpr is a parenthesized sub-expression; nested ParenExprs are how
// remove_redundant_nest finds `(((e)))`.
type ParenExpr struct {
	Base
	Inner Node
}

// Indirection is `.a`, `[i]`, `[i:j]`, or `.*` appended to a base
// expression.
type Indirection struct {
	Base
	Target Node
	Field  token.Token // set for .field style
	Star   bool        // set for .* style
	Lower  Node        // set for [i] or [i:j] style
	Upper  Node        // set (optionally) for [i:j] style
	Slice  bool
}

// Subquery is a parenthesized SELECT used as a scalar/row expression or a
// FROM/table-reference item.
type Subquery struct {
	Base
	Statement *SelectStatement
}

// ExprList is a parenthesized, comma-separated expression list that is not
// a function call: the right side of `x IN (1, 2, 3)`.
type ExprList struct {
	Base
	Items []Node
}
