package merge

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/uroborosql/sqlfmt/directive"
)

// fakeRender stands in for the real lex/parse/translate/align/render
// pipeline: it just normalizes line endings, since merge only cares about
// the line-diff structure of its input, not real SQL formatting.
func fakeRender(text string) string {
	return text
}

func renderAll(t *testing.T, tree *directive.Tree) []Rendered {
	t.Helper()
	variants := directive.Enumerate(tree)
	out := make([]Rendered, len(variants))
	for i, v := range variants {
		out[i] = Rendered{Selection: v.Selection, Text: fakeRender(v.Text)}
	}
	return out
}

func TestMergeNoDirectives(t *testing.T) {
	tree, err := directive.Parse("select 1 from dual\n")
	assert.NoError(t, err)
	out, err := Merge(tree, []Rendered{{Text: "select 1 from dual\n"}})
	assert.NoError(t, err)
	assert.Equal(t, "select 1 from dual\n", out)
}

func TestMergeSingleIfEndRestoresDirective(t *testing.T) {
	src := "select 1\nfrom dual\nwhere 1 = 1\n/*%if sf.isId */\nand id = 1\n/*%end*/\n"
	tree, err := directive.Parse(src)
	assert.NoError(t, err)

	rendered := renderAll(t, tree)
	out, err := Merge(tree, rendered)
	assert.NoError(t, err)

	assert.True(t, strings.Contains(out, "/*%if sf.isId */"))
	assert.True(t, strings.Contains(out, "/*%end*/"))
	assert.True(t, strings.Contains(out, "and id = 1"))
	assert.True(t, strings.Contains(out, "where 1 = 1"))
}

func TestMergeIfElseRestoresBothHeaders(t *testing.T) {
	src := "select 1\nfrom dual\nwhere 1 = 1\n/*IF sf.isId */\nand id = 1\n/*ELSE*/\nand id is null\n/*END*/\n"
	tree, err := directive.Parse(src)
	assert.NoError(t, err)

	rendered := renderAll(t, tree)
	out, err := Merge(tree, rendered)
	assert.NoError(t, err)

	assert.True(t, strings.Contains(out, "/*IF sf.isId */"))
	assert.True(t, strings.Contains(out, "/*ELSE*/"))
	assert.True(t, strings.Contains(out, "/*END*/"))
	assert.True(t, strings.Contains(out, "and id = 1"))
	assert.True(t, strings.Contains(out, "and id is null"))
}

func TestMergeNestedGroupsRestoreBoth(t *testing.T) {
	src := "select 1\nfrom dual\nwhere 1 = 1\n" +
		"/*%if a */\nand a = 1\n/*%if b */\nand b = 1\n/*%end*/\n/*%end*/\n"
	tree, err := directive.Parse(src)
	assert.NoError(t, err)

	rendered := renderAll(t, tree)
	out, err := Merge(tree, rendered)
	assert.NoError(t, err)

	assert.True(t, strings.Contains(out, "/*%if a */"))
	assert.True(t, strings.Contains(out, "/*%if b */"))
	assert.True(t, strings.Contains(out, "and a = 1"))
	assert.True(t, strings.Contains(out, "and b = 1"))
}

func TestMergeNoRenderedVariantsErrors(t *testing.T) {
	tree, err := directive.Parse("select 1 /*%if a */and a=1/*%end*/")
	assert.NoError(t, err)
	_, err = Merge(tree, nil)
	assert.Error(t, err)
}
