// Package layout is the intermediate tree the translator builds from a
// cstree.Statement (§3.3): an alignment-aware model that sits between the
// concrete syntax tree and the renderer, exactly the way the teacher's
// formatter stages a result tree before printing it rather than emitting
// text straight out of the parser.
//
// Expression text itself is rendered to a flat string by the translate
// package's expression walker (casing, cast conversion, and the other
// token-level rewrites all apply there): this package's own job is the
// coarser structure the alignment solver and renderer need — clause
// sequencing, leading-comma lists, and the parallel "cell" tuples that make
// AS/operator/trailing-comment columns line up (§4.4).
package layout

// Anchor is embedded by every layout node that may carry comments (§3.3
// "CommentAnchor"). Leading comments are printed on their own line(s) above
// the node; Trailing comments are printed after it on the same line.
type Anchor struct {
	Leading  []string
	Trailing []string
}

// AppendLeading and AppendTrailing satisfy comment.Anchor, letting the
// comment package re-anchor a deleted node's comments onto a survivor
// without importing this package (§3.4).
func (a *Anchor) AppendLeading(text string)  { a.Leading = append(a.Leading, text) }
func (a *Anchor) AppendTrailing(text string) { a.Trailing = append(a.Trailing, text) }

// Statement is one fully translated SQL statement.
type Statement struct {
	Anchor
	Clauses     []*Clause
	Semicolon   bool
	SQLIDInsert bool // true when complement_sql_id added the marker comment
}

// Clause is a keyword header plus its body (§3.3).
type Clause struct {
	Anchor
	Keyword string // e.g. "SELECT", "FROM", "WHERE"; "" for a bare body continuation
	Body    Body
}

// Body is the union of shapes a Clause's payload can take.
type Body interface{ isBody() }

// AlignedList is a leading-comma list of Items, each a parallel tuple of
// Cells (§3.3). GroupID distinguishes independently aligned lists within
// one statement (the align package solves each list on its own and does
// not read it).
type AlignedList struct {
	Anchor
	GroupID      int
	LeadingComma bool
	Items        []Item
}

func (*AlignedList) isBody() {}

// Item is one element of an AlignedList.
type Item struct {
	Anchor
	Cells []Cell
}

// Cell is one aligned column within an Item. Width is filled in by the
// align package; it is the column's printed width including trailing pad.
type Cell struct {
	Text  string
	Width int
}

// Expression is a single flat pre-rendered expression string — the leaf
// shape most Clause bodies reduce to once the expression walker has applied
// every token-level rewrite (§4.2).
type Expression struct {
	Anchor
	Text string
}

func (*Expression) isBody() {}

// BooleanChain is AND/OR-joined operands with their connectors kept
// parallel so the connector column aligns (§3.3).
type BooleanChain struct {
	Anchor
	Operands   []string
	Connectors []string // len == len(Operands)-1
}

func (*BooleanChain) isBody() {}

// JoinChain is a FROM-list seed table plus its chained joins (§3.3).
type JoinChain struct {
	Anchor
	Items []JoinChainItem
}

func (*JoinChain) isBody() {}

// JoinChainItem is one FROM-list seed table and every join segment chained
// onto it in source order.
type JoinChainItem struct {
	Seed  string
	Joins []JoinSegment
}

// JoinSegment is one `[kind] JOIN table ON cond` / `USING (cols)` segment.
type JoinSegment struct {
	Kind      string // "INNER JOIN", "LEFT OUTER JOIN", ...
	Table     string
	Condition string // "ON ..." or "USING (...)"; "" for NATURAL/CROSS
}

// SubStatement wraps a nested Statement (an INSERT ... SELECT body, or a
// WITH clause's CTE bodies) so the renderer can indent it as a block.
type SubStatement struct {
	Anchor
	Inner *Statement
}

func (*SubStatement) isBody() {}

// CTEList is the WITH clause's sequence of named sub-statements.
type CTEList struct {
	Anchor
	Recursive bool
	Entries   []CTEEntry
}

func (*CTEList) isBody() {}

// CTEEntry is one `name [(cols)] AS (stmt)` entry of a WITH clause.
type CTEEntry struct {
	Anchor
	Header string // "name (cols) AS" / "name AS NOT MATERIALIZED", fully rendered
	Body   *Statement
}

// DirectiveBlock exists only transiently, pre-enumeration (§3.3); this
// pipeline resolves directives before translation ever runs (§4.1), so no
// layout.DirectiveBlock value is ever constructed — the type is declared
// here only to document the stage the spec's model assigns it to.
type DirectiveBlock struct {
	Anchor
	Kind      string // "if" | "elif" | "else" | "end"
	Condition string
}

func (*DirectiveBlock) isBody() {}
