// Package sqlfmt is the formatter's single entry point (§6.1): one call
// takes SQL text and a Config and returns formatted text or a typed error,
// wiring the directive splitter, per-variant lex/parse/translate/align/
// render pipeline, and the branch merger together exactly the way the
// teacher's own top-level formatter function sequences its pipeline
// stages.
package sqlfmt

import (
	"github.com/uroborosql/sqlfmt/align"
	"github.com/uroborosql/sqlfmt/config"
	"github.com/uroborosql/sqlfmt/cstree"
	"github.com/uroborosql/sqlfmt/directive"
	"github.com/uroborosql/sqlfmt/ferr"
	"github.com/uroborosql/sqlfmt/lexer"
	"github.com/uroborosql/sqlfmt/merge"
	"github.com/uroborosql/sqlfmt/render"
	"github.com/uroborosql/sqlfmt/translate"
)

// Format implements `format(text, config) -> Result<string, FormatError>`
// (§6.1). The directive splitter resolves any 2-way-SQL blocks into a
// covering set of concrete variants (§4.1); each variant is formatted
// independently (§5: no shared mutable state between them); the merger
// then restores the original directive structure around the formatted
// text (§4.6).
func Format(text string, cfg config.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	tree, err := directive.Parse(text)
	if err != nil {
		return "", err
	}
	if errs := directive.ValidateConditions(tree); len(errs) > 0 {
		agg := &ferr.ParseErrors{}
		for _, e := range errs {
			agg.Add(&ferr.DirectiveError{Message: e.Error()})
		}
		return "", agg.AsError()
	}

	if !tree.HasDirectives {
		return formatOne(tree.Items[0].Text, cfg)
	}

	variants := directive.Enumerate(tree)
	rendered := make([]merge.Rendered, len(variants))
	for i, v := range variants {
		out, err := formatOne(v.Text, cfg)
		if err != nil {
			return "", err
		}
		rendered[i] = merge.Rendered{Selection: v.Selection, Text: out}
	}
	return merge.Merge(tree, rendered)
}

// formatOne runs the lex -> parse -> translate -> align -> render pipeline
// over one concrete (directive-free) SQL statement's text.
func formatOne(sql string, cfg config.Config) (string, error) {
	toks, err := lexer.Lex(sql)
	if err != nil {
		return "", &ferr.ParseError{Message: err.Error()}
	}
	stmt, err := cstree.Parse(toks)
	if err != nil {
		return "", err
	}
	ly, err := translate.Translate(stmt, cfg)
	if err != nil {
		return "", err
	}
	align.Solve(ly, cfg.TabSize)
	return render.Render(ly, cfg), nil
}
