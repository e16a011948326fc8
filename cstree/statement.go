package cstree

import "github.com/uroborosql/sqlfmt/token"

// Header carries the leading DML/WITH keyword of a statement and, when
// present, the block comment immediately following it — the anchor
// complement_sql_id inspects and inserts into (§4.2).
type Header struct {
	Keyword      token.Token
	SQLIDComment *token.Token
}

// SelectStatement is a complete (possibly WITH-prefixed) SELECT.
type SelectStatement struct {
	Base
	Header
	With      *WithClause
	Select    SelectClause
	From      *FromClause
	Where     *WhereClause
	GroupBy   *GroupByClause
	Having    *HavingClause
	OrderBy   *OrderByClause
	Limit     *LimitClause
	Offset    *OffsetClause
	ForUpdate *ForUpdateClause
	HasSemicolon bool
}

// InsertStatement is a complete INSERT.
type InsertStatement struct {
	Base
	Header
	With       *WithClause
	Table      TableRef
	Columns    []ColumnRef
	Values     *ValuesClause
	Select     *SelectStatement
	OnConflict *OnConflictClause
	Returning  *ReturningClause
	HasSemicolon bool
}

// UpdateStatement is a complete UPDATE.
type UpdateStatement struct {
	Base
	Header
	With      *WithClause
	Table     TableRef
	Set       SetClause
	From      *FromClause
	Where     *WhereClause
	Returning *ReturningClause
	HasSemicolon bool
}

// DeleteStatement is a complete DELETE.
type DeleteStatement struct {
	Base
	Header
	With      *WithClause
	Table     TableRef
	Using     []TableRef
	Where     *WhereClause
	Returning *ReturningClause
	HasSemicolon bool
}

// Statement is the union of the four supported top-level DML shapes,
// satisfied by *SelectStatement, *InsertStatement, *UpdateStatement, and
// *DeleteStatement.
type Statement interface {
	Node
	statementNode()
}

func (*SelectStatement) statementNode() {}
func (*InsertStatement) statementNode() {}
func (*UpdateStatement) statementNode() {}
func (*DeleteStatement) statementNode() {}
