package cstree

import "github.com/uroborosql/sqlfmt/token"

// WithClause is `WITH [RECURSIVE] cte [, cte ...]`.
type WithClause struct {
	Base
	Recursive bool
	CTEs      []CTE
}

// CTE is one `name [(cols)] AS [[NOT] MATERIALIZED] (stmt)` entry.
type CTE struct {
	Base
	Name          token.Token
	Columns       []token.Token
	Materialized  int // 0 = unspecified, 1 = MATERIALIZED, -1 = NOT MATERIALIZED
	Statement     *SelectStatement
	TrailingComma bool
}

// SelectClause is the `SELECT [ALL|DISTINCT] item [, item ...]` list.
type SelectClause struct {
	Base
	Distinct bool
	Items    []SelectItem
}

// SelectItem is one projected expression, optionally aliased.
type SelectItem struct {
	Base
	Expr    Node
	HasAs   bool
	Alias   token.Token // zero value Token when absent
}

// FromClause is `FROM table [, table ...]`, each entry possibly extended
// by a chain of JOINs (§4.2: "joins are not separate clauses but part of
// the same list via JoinChain segments").
type FromClause struct {
	Base
	Items []TableRef
}

// TableRef is one FROM-list entry: a seed table/subquery plus any joins
// chained onto it.
type TableRef struct {
	Base
	Table       Node // ColumnRef (table name), Subquery, or FunctionCall (table function)
	HasAs       bool
	Alias       token.Token
	ColumnAlias []token.Token // UNNEST(...) AS t(a, b) style column list
	WithOrdinality bool
	Joins       []Join
}

// JoinKind enumerates join keywords.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinCross
	JoinNatural
)

// Join is one join segment following a FROM-list seed table.
type Join struct {
	Base
	Kind      JoinKind
	HasOuter  bool // true if source spelled OUTER explicitly
	Table     TableRef
	On        Node   // nil when Using is set
	Using     []token.Token
}

// WhereClause wraps the boolean condition following WHERE.
type WhereClause struct {
	Base
	Condition Node
}

// GroupByClause is `GROUP BY expr [, expr ...]`.
type GroupByClause struct {
	Base
	Items []Node
}

// HavingClause wraps the boolean condition following HAVING.
type HavingClause struct {
	Base
	Condition Node
}

// OrderByClause is `ORDER BY item [, item ...]`.
type OrderByClause struct {
	Base
	Items []OrderItem
}

// OrderItem is one ORDER BY key with optional ASC/DESC and NULLS FIRST/LAST.
type OrderItem struct {
	Expr     Node
	Desc     bool
	HasDir   bool
	Nulls    string // "", "FIRST", "LAST"
}

// LimitClause is `LIMIT n`.
type LimitClause struct {
	Base
	Count Node
}

// OffsetClause is `OFFSET n`.
type OffsetClause struct {
	Base
	Count Node
}

// SetClause is the `SET target = expr [, ...]` list of an UPDATE.
type SetClause struct {
	Base
	Items []SetItem
}

// SetItem is one `target = expr` assignment.
type SetItem struct {
	Base
	Target Node
	Value  Node
}

// ValuesClause is `VALUES (a, b) [, (c, d) ...]`.
type ValuesClause struct {
	Base
	Rows [][]Node
}

// ReturningClause is `RETURNING item [, item ...]`, same shape as SELECT
// items (§4.2 table).
type ReturningClause struct {
	Base
	Items []SelectItem
}

// OnConflictClause is `ON CONFLICT [(elems)] DO NOTHING|UPDATE SET ... [WHERE ...]`.
type OnConflictClause struct {
	Base
	Targets   []Node
	DoNothing bool
	Set       *SetClause
	Where     Node
}

// ForUpdateClause is `FOR UPDATE|SHARE [OF table...] [NOWAIT|SKIP LOCKED]`.
type ForUpdateClause struct {
	Base
	Share    bool
	Of       []token.Token
	Nowait   bool
	SkipLock bool
}
