package layout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 3: "\frac{1}{2}" at Display — a VerticalBox stacking
// numerator, rule, denominator, with the rule sitting on the math axis
// and num/den centered to a common width.
func TestScenario_SimpleFraction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	lay := typesetSrc(t, `\frac{1}{2}`, Display)
	contents := topLevelContents(t, lay)
	require.Len(t, contents, 1)

	vb, ok := contents[0].Variant.(VerticalBox)
	require.True(t, ok, "expected fraction body to be a VerticalBox, got %T", contents[0].Variant)
	require.Len(t, vb.Contents, 3)

	num, rule, den := vb.Contents[0], vb.Contents[1], vb.Contents[2]
	_, numIsRule := num.Variant.(Rule)
	assert.False(t, numIsRule)
	_, denIsRule := den.Variant.(Rule)
	assert.False(t, denIsRule)

	_, isRule := rule.Variant.(Rule)
	require.True(t, isRule, "expected middle entry to be the fraction rule, got %T", rule.Variant)

	// Rule's total height (Height-Depth) equals fractionRuleThickness in px.
	font := newFakeFont()
	thicknessPx := float64(font.constants.FractionRuleThickness) * 10.0 // fontSizePx=10
	assert.InDelta(t, thicknessPx, float64(rule.Height.Sub(rule.Depth)), 1e-9)

	// Numerator and denominator share a common (centered) width.
	assert.InDelta(t, float64(num.Width), float64(den.Width), 1e-9)
	assert.Equal(t, float64(rule.Width), float64(num.Width))
}

// Universal invariant: a VerticalBox's stored Height/Depth equal the
// bounding box of its contents, each taken at its own Y offset.
func TestUniversalInvariant_VBoxHeightDepthAccounting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	lay := typesetSrc(t, `\frac{1}{2}`, Display)
	contents := topLevelContents(t, lay)
	vb := contents[0].Variant.(VerticalBox)

	// Direct recomputation of the VerticalBox's bounds from its children,
	// mirroring vstack's own formula, confirms the stored Height/Depth
	// weren't left stale by the HasBar branch's later Offset mutation.
	var height, depth float64
	for _, c := range vb.Contents {
		top := -float64(c.Offset.Y) + float64(c.Height)
		bot := -float64(c.Offset.Y) + float64(c.Depth)
		if top > height {
			height = top
		}
		if bot < depth {
			depth = bot
		}
	}
	assert.InDelta(t, height, float64(contents[0].Height), 1e-9)
	assert.InDelta(t, depth, float64(contents[0].Depth), 1e-9)
}
