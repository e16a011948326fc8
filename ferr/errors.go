// Package ferr defines the typed failure model of §7: every error the
// formatter's entry point can return is one of a fixed set of kinds, each
// carrying a byte range (or directive path) and a short message, grounded
// in the aggregate-error style of a ParseError collector that wraps one or
// more underlying diagnostics rather than stopping at the first one.
package ferr

import (
	"fmt"

	"github.com/uroborosql/sqlfmt/token"
)

// ParseError reports that the CST producer could not make sense of the
// input (§4.7); Upstream carries whatever diagnostic the external parser
// produced, when available.
type ParseError struct {
	Pos      token.Position
	Message  string
	Upstream error
}

func (e *ParseError) Error() string {
	if e.Upstream != nil {
		return fmt.Sprintf("parse error at %d:%d: %s: %v", e.Pos.Line, e.Pos.Column, e.Message, e.Upstream)
	}
	return fmt.Sprintf("parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Upstream }

// UnsupportedSyntax reports a CST node shape the translator has no
// dispatch routine for (§4.2, §4.7).
type UnsupportedSyntax struct {
	Pos     token.Position
	Kind    string
	Message string
}

func (e *UnsupportedSyntax) Error() string {
	return fmt.Sprintf("unsupported syntax at %d:%d: %s (%s)", e.Pos.Line, e.Pos.Column, e.Kind, e.Message)
}

// DirectiveError reports a malformed 2-way-SQL directive tree: unmatched
// /*%if*/ / /*%end*/, a dangling /*%else*/, or (when condition validation
// is enabled) a condition expression that fails to parse.
type DirectiveError struct {
	Start, End token.Position
	Message    string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("directive error at %d:%d-%d:%d: %s", e.Start.Line, e.Start.Column, e.End.Line, e.End.Column, e.Message)
}

// ConfigError reports an out-of-range or contradictory configuration value
// caught at validation time (§3.2, §7).
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

// InternalMergeError reports that two 2-way-SQL branch variants disagreed
// on a line outside any directive — per §4.6 this should never happen when
// the enumeration in §4.1 is complete, so it always indicates an engine
// defect rather than a malformed template.
type InternalMergeError struct {
	Line    int
	Message string
}

func (e *InternalMergeError) Error() string {
	return fmt.Sprintf("internal merge error at rendered line %d: %s", e.Line, e.Message)
}

// ParseErrors aggregates multiple diagnostics of the same pass, e.g. when a
// recursive-descent parser chooses to keep scanning after a local failure
// to report more than one problem per call.
type ParseErrors struct {
	Errors []error
}

func (e *ParseErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	s := fmt.Sprintf("%d parse errors:", len(e.Errors))
	for i, err := range e.Errors {
		s += fmt.Sprintf("\n  [%d] %v", i+1, err)
	}
	return s
}

func (e *ParseErrors) Add(err error) {
	if err == nil {
		return
	}
	if pe, ok := err.(*ParseErrors); ok {
		e.Errors = append(e.Errors, pe.Errors...)
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *ParseErrors) AsError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
