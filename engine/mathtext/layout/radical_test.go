package layout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 5: "\sqrt{x+1}" at Display — HBox[radical glyph, VerticalBox[
// rule, inner]], the rule's width equal to the inner's width.
func TestScenario_Radical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	lay := typesetSrc(t, `\sqrt{x+1}`, Display)
	contents := topLevelContents(t, lay)
	require.Len(t, contents, 1)

	radicalHB, ok := contents[0].Variant.(HorizontalBox)
	require.True(t, ok, "expected radical construct to be a HorizontalBox, got %T", contents[0].Variant)
	require.Len(t, radicalHB.Contents, 2)

	sqrt, body := radicalHB.Contents[0], radicalHB.Contents[1]
	_, sqrtIsGlyph := sqrt.Variant.(Glyph)
	assert.True(t, sqrtIsGlyph, "expected radical sign to be a plain Glyph, got %T", sqrt.Variant)

	vb, ok := body.Variant.(VerticalBox)
	require.True(t, ok, "expected radical body to be a VerticalBox, got %T", body.Variant)
	require.Len(t, vb.Contents, 3)

	padKern, rule, inner := vb.Contents[0], vb.Contents[1], vb.Contents[2]
	_, padIsKern := padKern.Variant.(Kern)
	assert.True(t, padIsKern, "expected first body entry to be the top-padding kern, got %T", padKern.Variant)
	_, ruleIsRule := rule.Variant.(Rule)
	assert.True(t, ruleIsRule, "expected second body entry to be the overbar rule, got %T", rule.Variant)
	assert.InDelta(t, float64(rule.Width), float64(inner.Width), 1e-9)

	// The radical glyph's own height must clear the inner content plus gap
	// plus rule thickness (spec's "sized to clear it" requirement).
	assert.GreaterOrEqual(t, float64(sqrt.Height.Sub(sqrt.Depth)), float64(inner.Height.Sub(inner.Depth)))

	// Universal invariant applies to the whole subtree.
	assertSigns(t, lay)
}

// Boundary: an empty radical argument still lays out to a zero-width,
// axis-anchored body without error.
func TestBoundary_EmptyRadical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	lay := typesetSrc(t, `\sqrt{}`, Display)
	assert.GreaterOrEqual(t, float64(lay.Width), 0.0)
}
