// Package cstree is the concrete syntax tree the spec calls an external
// collaborator ("a CST producer is assumed available; its output is
// consumed through a well-defined tree interface", §1). This package is
// that tree interface, plus a parser implementation good enough to drive
// the formatting pipeline end to end for the PostgreSQL subset the spec
// names — the translator never depends on parser internals, only on the
// Node/Statement/Clause shapes declared here.
package cstree

import "github.com/uroborosql/sqlfmt/token"

// NodeKind discriminates CST node shapes for the translator's dispatch
// table (§4.2's "dynamic dispatch over node kinds"); unknown kinds surface
// as ferr.UnsupportedSyntax rather than being silently passed through.
type NodeKind int

const (
	KindSelectStatement NodeKind = iota
	KindInsertStatement
	KindUpdateStatement
	KindDeleteStatement

	KindWithClause
	KindCTE
	KindSelectClause
	KindSelectItem
	KindFromClause
	KindTableRef
	KindJoin
	KindWhereClause
	KindGroupByClause
	KindHavingClause
	KindOrderByClause
	KindOrderItem
	KindLimitClause
	KindOffsetClause
	KindSetClause
	KindSetItem
	KindValuesClause
	KindReturningClause
	KindOnConflictClause
	KindForUpdateClause

	KindColumnRef
	KindStar
	KindLiteral
	KindBindParam
	KindUnaryExpr
	KindBinaryExpr
	KindBetweenExpr
	KindBooleanChainExpr
	KindFunctionCall
	KindCaseExpr
	KindCastExpr
	KindParenExpr
	KindIndirection
	KindSubquery
	KindWindowSpec
	KindFilterClause
	KindExprList
)

// Node is the minimal shape every CST node satisfies. RawTokens returns the
// node's original token span, used both to reproduce exact source text
// (literals, identifiers) and to report UnsupportedSyntax/ParseError
// positions.
type Node interface {
	Kind() NodeKind
	Pos() token.Position
	RawTokens() []token.Token
}

// Base is embedded by every concrete node to provide the Node interface's
// position/token bookkeeping without repeating it per type.
type Base struct {
	NodeKind NodeKind
	Tokens   []token.Token
}

func (b Base) Kind() NodeKind          { return b.NodeKind }
func (b Base) RawTokens() []token.Token { return b.Tokens }
func (b Base) Pos() token.Position {
	if len(b.Tokens) == 0 {
		return token.Position{}
	}
	return b.Tokens[0].Start
}
