package macro

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseTextAndArgs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	cmd, ok := Parse("I love #1 and 2")
	assert.True(t, ok)
	assert.Equal(t, 1, cmd.NArgs)
	assert.Equal(t, []chunk{
		{kind: chunkText, text: "I love "},
		{kind: chunkArg, arg: 0},
		{kind: chunkText, text: " and 2"},
	}, cmd.chunks)
}

func TestParseHighArgIndices(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	cmd, ok := Parse("#45#1")
	assert.True(t, ok)
	assert.Equal(t, 45, cmd.NArgs)
	assert.Equal(t, []chunk{
		{kind: chunkArg, arg: 44},
		{kind: chunkArg, arg: 0},
	}, cmd.chunks)
}

func TestParseDanglingHash(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	_, ok := Parse("abc#")
	assert.False(t, ok)
}

func TestApplyGuardsArguments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	cmd, _ := Parse(`\lbrace#1\rbrace`)
	got := cmd.Apply([]string{"a"})
	assert.Equal(t, `\lbrace{}a{}\rbrace{}`, got)
}

func TestCollectionDefineAndExpand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	c := NewCollection()
	err := c.Define("half", 1, `\frac{#1}{2}`)
	assert.NoError(t, err)
	//
	out, err := c.Expand(`\half{x}`)
	assert.NoError(t, err)
	assert.Equal(t, `\frac{{}x{}}{2}{}`, out)
}

func TestCollectionRedefineFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	c := NewCollection()
	assert.NoError(t, c.Define("x", 0, "y"))
	assert.Error(t, c.Define("x", 0, "z"))
}

func TestCollectionArityMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	c := NewCollection()
	err := c.Define("bad", 2, "#1 only")
	assert.Error(t, err)
}

func TestSuggest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	c := NewCollection()
	_ = c.Define("alpha1", 0, "a")
	_ = c.Define("alphb", 0, "b")
	matches := c.Suggest("alph", 10)
	assert.ElementsMatch(t, []string{"alpha1", "alphb"}, matches)
}
