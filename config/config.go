// Package config defines the immutable configuration record shared by one
// format call (§3.2) and its validation into ferr.ConfigError. Loading the
// record from .uroborosqlfmtrc.json on disk is the CLI's job (§6.2); this
// package only models and validates the record's shape so both the CLI and
// any embedder can share one source of truth.
package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/uroborosql/sqlfmt/ferr"
)

// Case selects how keywords or identifiers are rendered.
type Case string

const (
	CaseUpper    Case = "upper"
	CaseLower    Case = "lower"
	CasePreserve Case = "preserve"
)

// Config is the read-only configuration record threaded through every
// component of one Format call (§3.2). Zero value is not valid; use
// Default() and override fields, then Validate().
type Config struct {
	Debug bool `json:"debug"`

	TabSize int `json:"tab_size"`

	ComplementAlias          bool `json:"complement_alias"`
	TrimBindParam            bool `json:"trim_bind_param"`
	ComplementOuterKeyword   bool `json:"complement_outer_keyword"`
	ComplementColumnAsKeyword bool `json:"complement_column_as_keyword"`
	RemoveTableAsKeyword     bool `json:"remove_table_as_keyword"`
	RemoveRedundantNest      bool `json:"remove_redundant_nest"`
	ComplementSQLID          bool `json:"complement_sql_id"`
	ConvertDoubleColonCast   bool `json:"convert_double_colon_cast"`
	UnifyNotEqual            bool `json:"unify_not_equal"`
	IndentTab                bool `json:"indent_tab"`
	UseParserErrorRecovery   bool `json:"use_parser_error_recovery"`

	KeywordCase    Case `json:"keyword_case"`
	IdentifierCase Case `json:"identifier_case"`

	MaxCharPerLine int `json:"max_char_per_line"`
}

// Default returns the baseline configuration: tabbed indentation, preserved
// casing, and every completion/rewrite switched off — the same "do the
// least" baseline the CLI falls back to when no rc file is present.
func Default() Config {
	return Config{
		TabSize:        4,
		IndentTab:      true,
		KeywordCase:    CasePreserve,
		IdentifierCase: CasePreserve,
		MaxCharPerLine: 120,
	}
}

// Validate checks §3.2's numeric and enum constraints and returns a
// *ferr.ConfigError describing the first violation found.
func (c Config) Validate() error {
	if c.TabSize < 1 {
		return &ferr.ConfigError{Field: "tab_size", Message: "must be >= 1"}
	}
	if c.MaxCharPerLine <= 0 {
		return &ferr.ConfigError{Field: "max_char_per_line", Message: "must be > 0"}
	}
	if !validCase(c.KeywordCase) {
		return &ferr.ConfigError{Field: "keyword_case", Message: fmt.Sprintf("must be one of upper/lower/preserve, got %q", c.KeywordCase)}
	}
	if !validCase(c.IdentifierCase) {
		return &ferr.ConfigError{Field: "identifier_case", Message: fmt.Sprintf("must be one of upper/lower/preserve, got %q", c.IdentifierCase)}
	}
	return nil
}

func validCase(c Case) bool {
	return c == CaseUpper || c == CaseLower || c == CasePreserve
}

// Load parses a .uroborosqlfmtrc.json document, starting from Default() so
// unspecified fields keep their conservative defaults, then validates the
// result. Unknown keys are rejected (§6.2), matching the external loader's
// contract so this function can back it directly.
func Load(data []byte) (Config, error) {
	cfg := Default()
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, &ferr.ConfigError{Field: "<root>", Message: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
