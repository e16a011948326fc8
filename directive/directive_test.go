package directive

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseNoDirectives(t *testing.T) {
	tree, err := Parse("select 1 from dual")
	assert.NoError(t, err)
	assert.False(t, tree.HasDirectives)
	assert.Equal(t, 1, len(tree.Items))
}

func TestParseDomaIfEnd(t *testing.T) {
	src := "select 1 /*%if sf.isId */and id = 1/*%end*/ from dual"
	tree, err := Parse(src)
	assert.NoError(t, err)
	assert.True(t, tree.HasDirectives)

	groups := Flatten(tree)
	assert.Equal(t, 1, len(groups))
	g := groups[0]
	assert.Equal(t, StyleDoma, g.Style)
	// the written if branch, plus a synthetic implicit-else branch.
	assert.Equal(t, 2, len(g.Branches))
	assert.Equal(t, "sf.isId", g.Branches[0].Condition)
	assert.True(t, g.Branches[1].Synthetic)
}

func TestParseUroboroIfElseEnd(t *testing.T) {
	src := "select 1 /*IF sf.isId */and id = 1/*ELSE*/and id is null/*END*/ from dual"
	tree, err := Parse(src)
	assert.NoError(t, err)

	groups := Flatten(tree)
	assert.Equal(t, 1, len(groups))
	g := groups[0]
	assert.Equal(t, StyleUroboro, g.Style)
	assert.Equal(t, 2, len(g.Branches))
	assert.False(t, g.Branches[1].Synthetic)
	assert.Equal(t, "", g.Branches[1].Condition)
}

func TestParseUnterminatedBlockErrors(t *testing.T) {
	_, err := Parse("select 1 /*%if sf.isId */ and id = 1")
	assert.Error(t, err)
}

func TestParseUnmatchedEndErrors(t *testing.T) {
	_, err := Parse("select 1 /*%end*/")
	assert.Error(t, err)
}

func TestEnumerateCoversEveryBranch(t *testing.T) {
	src := "select 1 from dual where 1=1 /*%if a */ and a=1 /*%elseif b */ and b=1 /*%else*/ and c=1 /*%end*/"
	tree, err := Parse(src)
	assert.NoError(t, err)

	variants := Enumerate(tree)
	assert.Equal(t, 3, len(variants))

	var sawA, sawB, sawC bool
	for _, v := range variants {
		switch {
		case strings.Contains(v.Text, "a=1"):
			sawA = true
		case strings.Contains(v.Text, "b=1"):
			sawB = true
		case strings.Contains(v.Text, "c=1"):
			sawC = true
		}
	}
	assert.True(t, sawA)
	assert.True(t, sawB)
	assert.True(t, sawC)
}

func TestValidateConditionsRejectsMalformed(t *testing.T) {
	src := "select 1 /*%if sf.isId( */and id = 1/*%end*/"
	tree, err := Parse(src)
	assert.NoError(t, err)
	errs := ValidateConditions(tree)
	assert.True(t, len(errs) > 0)
}

func TestValidateConditionsAcceptsWellFormed(t *testing.T) {
	src := "select 1 /*%if sf.isId */and id = 1/*%end*/"
	tree, err := Parse(src)
	assert.NoError(t, err)
	errs := ValidateConditions(tree)
	assert.Equal(t, 0, len(errs))
}
