package layout

import (
	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

// layoutRadical realizes spec §4.4's "Radical" paragraph: the inner is
// laid out cramped, a vertical variant of the radical glyph is requested
// tall enough to clear it by the display/non-display vertical gap, and
// the surrounding rule+kern+inner are stacked to its right.
func layoutRadical(r parse.Radical, m Metrics, style Style) (Layout, error) {
	innerStyle := CrampedVariant(style)
	inner, err := typesetList(r.Inner, m, innerStyle)
	if err != nil {
		return Layout{}, err
	}

	c := m.C
	display := size(style) == 0
	var gap dimen.Scalar[dimen.Px]
	if display {
		gap = m.em(c.RadicalDisplayStyleVerticalGap)
	} else {
		gap = m.em(c.RadicalVerticalGap)
	}
	ruleThickness := m.em(c.RadicalRuleThickness)

	requiredHeight := inner.Height.Sub(inner.Depth).Add(gap).Add(ruleThickness)
	gid, ok := m.Font.GlyphIndex(r.Codepoint)
	if !ok {
		return Layout{}, core.Error(core.EFONT, "layout: no glyph for radical codepoint U+%04X", r.Codepoint)
	}
	sqrt, err := verticalVariant(m, gid, emToFUnit(m, requiredHeight))
	if err != nil {
		return Layout{}, err
	}

	actualHeight := sqrt.Height.Sub(sqrt.Depth)
	if actualHeight > requiredHeight {
		// The font's closest variant overshoots; spread the extra space
		// into the gap per spec's oversize adjustment.
		gap = gap.Add(actualHeight.Sub(requiredHeight).Scale(0.5)).Add(ruleThickness)
	}

	rule := Layout{Width: inner.Width, Height: ruleThickness, Variant: Rule{}}

	top := sqrt.Height
	rule.Offset = dimen.Point{Y: top.Neg()}
	inner.Offset = dimen.Point{Y: top.Sub(ruleThickness).Sub(gap).Neg()}

	// Extra clearance above the rule itself, per the font's
	// RadicalExtraAscender constant.
	topPadding := m.em(c.RadicalExtraAscender).Sub(ruleThickness)
	padKern := Layout{Height: topPadding, Variant: Kern{}}
	padKern.Offset = dimen.Point{Y: rule.Offset.Y.Sub(ruleThickness)}

	body := vstack([]Layout{padKern, rule, inner})
	body.Offset = dimen.Point{X: sqrt.Width}

	if len(r.Index) > 0 {
		idxStyle := ScriptScript
		idx, err := typesetList(r.Index, m.atStyle(idxStyle), idxStyle)
		if err != nil {
			return Layout{}, err
		}
		// Place near the radical's lower-left cusp, per spec §9's resolved
		// open question.
		idx.Offset = dimen.Point{X: 0, Y: sqrt.Depth.Scale(0.6).Neg()}
		sqrt.Offset = dimen.Point{X: idx.Width}
		return packAbsolute([]Layout{idx, sqrt, body}), nil
	}

	return packAbsolute([]Layout{sqrt, body}), nil
}
