package token

// Keywords is the reserved/non-reserved PostgreSQL word set the lexer and
// translator use to decide "is this identifier actually a keyword" (§4.2:
// "Keyword is defined by the grammar, not by lexical shape"). Both strict
// reserved words and commonly-treated non-reserved words (MATERIALIZED,
// LATERAL, NOWAIT, ORDINALITY, ...) are included per the spec's translator
// contract.
var Keywords = map[string]bool{
	"SELECT": true, "INSERT": true, "UPDATE": true, "DELETE": true, "FROM": true,
	"WHERE": true, "GROUP": true, "BY": true, "HAVING": true, "ORDER": true,
	"LIMIT": true, "OFFSET": true, "INTO": true, "VALUES": true, "SET": true,
	"RETURNING": true, "WITH": true, "RECURSIVE": true, "AS": true, "AND": true,
	"OR": true, "NOT": true, "NULL": true, "IS": true, "IN": true, "EXISTS": true,
	"BETWEEN": true, "LIKE": true, "ILIKE": true, "SIMILAR": true, "CASE": true,
	"WHEN": true, "THEN": true, "ELSE": true, "END": true, "DISTINCT": true,
	"ALL": true, "UNION": true, "INTERSECT": true, "EXCEPT": true,
	"JOIN": true, "INNER": true, "LEFT": true, "RIGHT": true, "FULL": true,
	"OUTER": true, "CROSS": true, "NATURAL": true, "LATERAL": true, "ON": true,
	"USING": true, "UNNEST": true, "ORDINALITY": true,
	"OVER": true, "PARTITION": true, "WINDOW": true, "FILTER": true,
	"ROWS": true, "RANGE": true, "GROUPS": true, "UNBOUNDED": true,
	"PRECEDING": true, "FOLLOWING": true, "CURRENT": true, "ROW": true,
	"CONFLICT": true, "DO": true, "NOTHING": true,
	"FOR": true, "NOWAIT": true, "SKIP": true, "LOCKED": true, "SHARE": true,
	"KEY": true, "OF": true, "MATERIALIZED": true, "CAST": true,
	"ASC": true, "DESC": true, "NULLS": true, "FIRST": true, "LAST": true,
	"DEFAULT": true, "TRUE": true, "FALSE": true,
}

// IsKeyword reports whether upperWord (already upper-cased) is a SQL keyword
// per the grammar, not merely identifier-shaped.
func IsKeyword(upperWord string) bool {
	return Keywords[upperWord]
}
