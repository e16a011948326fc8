package translate

import "github.com/uroborosql/sqlfmt/config"

// applyCase renders s according to c, leaving it untouched for
// config.CasePreserve (the lexer already keeps identifiers in their
// original case and upper-cases keyword text at scan time, so "preserve"
// for a keyword means "as upper-cased by the lexer").
func applyCase(s string, c config.Case) string {
	switch c {
	case config.CaseUpper:
		return toUpper(s)
	case config.CaseLower:
		return toLower(s)
	default:
		return s
	}
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}
