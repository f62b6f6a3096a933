package parse

import (
	"testing"

	"github.com/npillmayer/mathtyp/core/symtab"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseBareLetter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New("x").ParseFormula()
	assert.NoError(t, err)
	assert.Len(t, nodes, 1)
	sym, ok := nodes[0].(Symbol)
	assert.True(t, ok)
	assert.Equal(t, 'x', sym.Codepoint)
	assert.Equal(t, symtab.Alpha, sym.Category)
}

func TestParseSuperscript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New("x^2").ParseFormula()
	assert.NoError(t, err)
	assert.Len(t, nodes, 1)
	sc, ok := nodes[0].(Scripts)
	assert.True(t, ok)
	assert.NotNil(t, sc.Sup)
	assert.Nil(t, sc.Sub)
}

func TestParseSubAndSuperscriptFillBothSlots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New("x_1^2").ParseFormula()
	assert.NoError(t, err)
	assert.Len(t, nodes, 1)
	sc, ok := nodes[0].(Scripts)
	assert.True(t, ok)
	assert.NotNil(t, sc.Sub)
	assert.NotNil(t, sc.Sup)
}

func TestParseDuplicateSuperscriptFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	_, err := New("x^2^3").ParseFormula()
	assert.Error(t, err)
}

func TestParsePrimeFoldsIntoSuperscript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New("x'").ParseFormula()
	assert.NoError(t, err)
	assert.Len(t, nodes, 1)
	sc, ok := nodes[0].(Scripts)
	assert.True(t, ok)
	sup, ok := sc.Sup.(Symbol)
	assert.True(t, ok)
	assert.Equal(t, '′', sup.Codepoint)
}

func TestParseFraction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\frac{1}{2}`).ParseFormula()
	assert.NoError(t, err)
	assert.Len(t, nodes, 1)
	gf, ok := nodes[0].(GenFraction)
	assert.True(t, ok)
	assert.True(t, gf.HasBar)
	assert.Nil(t, gf.StyleOverride)
	assert.Len(t, gf.Num, 1)
	assert.Len(t, gf.Den, 1)
}

func TestParseDfracSetsStyleOverride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\dfrac{a}{b}`).ParseFormula()
	assert.NoError(t, err)
	gf := nodes[0].(GenFraction)
	assert.NotNil(t, gf.StyleOverride)
	assert.Equal(t, Display, *gf.StyleOverride)
}

func TestParseBinomHasNoBarButHasDelimiters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\binom{n}{k}`).ParseFormula()
	assert.NoError(t, err)
	gf := nodes[0].(GenFraction)
	assert.False(t, gf.HasBar)
	assert.NotNil(t, gf.LeftDelim)
	assert.NotNil(t, gf.RightDelim)
	assert.Equal(t, '(', gf.LeftDelim.Codepoint)
	assert.Equal(t, ')', gf.RightDelim.Codepoint)
}

func TestParseSqrtWithIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\sqrt[3]{x}`).ParseFormula()
	assert.NoError(t, err)
	rad := nodes[0].(Radical)
	assert.Len(t, rad.Index, 1)
	assert.Len(t, rad.Inner, 1)
}

func TestParseSqrtWithoutIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\sqrt{x}`).ParseFormula()
	assert.NoError(t, err)
	rad := nodes[0].(Radical)
	assert.Nil(t, rad.Index)
}

func TestParseLeftRightDelimited(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\left( x \right)`).ParseFormula()
	assert.NoError(t, err)
	d := nodes[0].(Delimited)
	assert.Len(t, d.Delimiters, 2)
	assert.Equal(t, '(', d.Delimiters[0].Codepoint)
	assert.Equal(t, ')', d.Delimiters[1].Codepoint)
	assert.Len(t, d.Inners, 1)
}

func TestParseLeftMiddleRight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\left( a \middle| b \right)`).ParseFormula()
	assert.NoError(t, err)
	d := nodes[0].(Delimited)
	assert.Len(t, d.Delimiters, 3)
	assert.Len(t, d.Inners, 2)
}

func TestParseBigDelimiterSizing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\bigl(`).ParseFormula()
	assert.NoError(t, err)
	ed := nodes[0].(ExtendedDelimiter)
	assert.Equal(t, symtab.Open, ed.RequestedAtom)
	assert.InDelta(t, 0.85, ed.EnclosedHeight.Float64(), 1e-9)
}

func TestParseMathbfScopedToArgument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\mathbf{x}y`).ParseFormula()
	assert.NoError(t, err)
	assert.Len(t, nodes, 2)
	group := nodes[0].(Group)
	sym := group.Nodes[0].(Symbol)
	assert.Equal(t, rune(0x1D431), sym.Codepoint) // bold x
	plain := nodes[1].(Symbol)
	assert.Equal(t, 'y', plain.Codepoint) // unaffected
}

func TestParseTextProducesPlainText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\text{hello world}`).ParseFormula()
	assert.NoError(t, err)
	pt, ok := nodes[0].(PlainText)
	assert.True(t, ok)
	assert.Equal(t, "hello world", pt.Text.String())
}

func TestParseOperatorNameStar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\operatorname*{argmax}`).ParseFormula()
	assert.NoError(t, err)
	sym := nodes[0].(Symbol)
	assert.Equal(t, "argmax", sym.Name)
	assert.True(t, sym.WithLimits)
}

func TestParseColorHex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\color{#FF0000}{x}`).ParseFormula()
	assert.NoError(t, err)
	c := nodes[0].(Color)
	assert.Equal(t, uint8(0xFF), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(0), c.B)
	assert.Equal(t, uint8(0xFF), c.A)
}

func TestParsePmatrixDelimitersAndCells(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\begin{pmatrix} a & b \\ c & d \end{pmatrix}`).ParseFormula()
	assert.NoError(t, err)
	arr := nodes[0].(Array)
	assert.Equal(t, '(', arr.LeftDelim.Codepoint)
	assert.Equal(t, ')', arr.RightDelim.Codepoint)
	assert.Len(t, arr.Rows, 2)
	assert.Len(t, arr.Rows[0], 2)
	assert.Len(t, arr.Rows[1], 2)
	assert.Equal(t, AlignCenter, arr.Columns.Alignment[0])
}

func TestParseArrayWithExplicitColumnSpec(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\begin{array}{l|c} a & b \end{array}`).ParseFormula()
	assert.NoError(t, err)
	arr := nodes[0].(Array)
	assert.Equal(t, []ColumnAlign{AlignLeft, AlignCenter}, arr.Columns.Alignment)
	assert.Equal(t, 1, arr.Columns.Separators[1].Bars)
}

func TestParseMismatchedEnvironmentEndFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	_, err := New(`\begin{matrix} a \end{pmatrix}`).ParseFormula()
	assert.Error(t, err)
}

func TestParseMathopChangesAtomType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\mathop{foo}`).ParseFormula()
	assert.NoError(t, err)
	at := nodes[0].(AtomChange)
	assert.Equal(t, symtab.Operator, at.At)
	assert.Equal(t, symtab.Operator, at.AtomType())
}

func TestParseUnrecognizedControlSequenceFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	_, err := New(`\thisisnotacommand`).ParseFormula()
	assert.Error(t, err)
}

func TestParseStrayClosingBraceFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	_, err := New(`x}`).ParseFormula()
	assert.Error(t, err)
}

func TestParseNestedGroup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`{a+b}`).ParseFormula()
	assert.NoError(t, err)
	g := nodes[0].(Group)
	assert.Len(t, g.Nodes, 3)
}

func TestParseSumWithLimits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\sum_{i=1}^n`).ParseFormula()
	assert.NoError(t, err)
	sc := nodes[0].(Scripts)
	base := sc.Base.(Symbol)
	assert.Equal(t, symtab.Operator, base.Category)
	assert.True(t, base.WithLimits)
}

func TestParseNolimitsOverridesDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\sum\nolimits_i`).ParseFormula()
	assert.NoError(t, err)
	sc := nodes[0].(Scripts)
	base := sc.Base.(Symbol)
	assert.False(t, base.WithLimits)
}

func TestParseSubstack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`\substack{a \\ b}`).ParseFormula()
	assert.NoError(t, err)
	st := nodes[0].(Stack)
	assert.Len(t, st.Lines, 2)
}

func TestParseQuadIsTransparentKerning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	nodes, err := New(`a\quad b`).ParseFormula()
	assert.NoError(t, err)
	assert.Len(t, nodes, 3)
	k := nodes[1].(Kerning)
	assert.Equal(t, symtab.Transparent, k.AtomType())
	assert.InDelta(t, 1.0, k.Amount.Float64(), 1e-9)
}
