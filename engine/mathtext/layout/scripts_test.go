package layout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 4: "x^2" at Display — HBox[glyph('x'), glyph('2') scaled down
// and shifted up by adjust_up], no subscript present.
func TestScenario_Superscript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	lay := typesetSrc(t, `x^2`, Display)
	contents := topLevelContents(t, lay)
	require.Len(t, contents, 1)

	hb, ok := contents[0].Variant.(HorizontalBox)
	require.True(t, ok, "expected scripted base to be a HorizontalBox, got %T", contents[0].Variant)
	require.Len(t, hb.Contents, 2)

	base, sup := hb.Contents[0], hb.Contents[1]
	_, baseIsGlyph := base.Variant.(Glyph)
	assert.True(t, baseIsGlyph)
	_, supIsGlyph := sup.Variant.(Glyph)
	assert.True(t, supIsGlyph)

	// The superscript is shifted strictly upward (negative Y offset) and
	// placed to the right of the base (positive X offset at/after base
	// width).
	assert.Less(t, float64(sup.Offset.Y), 0.0)
	assert.GreaterOrEqual(t, float64(sup.Offset.X), float64(base.Width))

	// Script-style scaling: the superscript glyph's own font size is
	// scaled by ScriptPercentScaleDown relative to the base's.
	font := newFakeFont()
	baseGlyph := base.Variant.(Glyph)
	supGlyph := sup.Variant.(Glyph)
	assert.InDelta(t, baseGlyph.SizePx*font.constants.ScriptPercentScaleDown, supGlyph.SizePx, 1e-6)
}

// Boundary: a base with both super- and subscript keeps a minimum gap
// between the two scripts (spec's SubSuperscriptGapMin).
func TestScenario_SuperAndSubscript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	lay := typesetSrc(t, `x^2_1`, Display)
	contents := topLevelContents(t, lay)
	require.Len(t, contents, 1)

	hb := contents[0].Variant.(HorizontalBox)
	require.Len(t, hb.Contents, 3)

	sup, sub := hb.Contents[1], hb.Contents[2]
	assert.Less(t, float64(sup.Offset.Y), 0.0)
	assert.Greater(t, float64(sub.Offset.Y), 0.0)
}
