package layout

import (
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/mathfont"
)

// Constants is an alias for the MATH-table constant block the layout
// engine consults throughout (spec §6's ≈40 named values).
type Constants = mathfont.Constants

// Metrics bundles a font together with the font size the current
// recursion is laying out at, and the derived conversion ratios/
// constants needed on every call. A child recursion gets its own Metrics
// (via atStyle) when style changes the effective size — e.g. a
// superscript's Script style shrinks SizePx by
// Constants.ScriptPercentScaleDown — everything else about the font
// stays shared by reference (spec §5: "a layout engine ... consults an
// immutable font reference").
type Metrics struct {
	Font      mathfont.Font
	SizePx    float64 // pixels per em at this recursion depth
	emToPx    dimen.Ratio[dimen.Px, dimen.Em]
	funitToEm dimen.Ratio[dimen.Em, dimen.FUnit]
	C         Constants
}

// NewMetrics builds the root Metrics for a formula: font size sizePx
// pixels per em, font constants pulled once and reused for the whole
// layout (the "font metrics cache" spec §3's Lifecycles section names).
func NewMetrics(font mathfont.Font, sizePx float64) Metrics {
	funitToEm := font.FontUnitsToEm()
	return Metrics{
		Font:      font,
		SizePx:    sizePx,
		emToPx:    dimen.NewRatio[dimen.Px, dimen.Em](sizePx),
		funitToEm: funitToEm,
		C:         font.Constants(funitToEm),
	}
}

// atStyle returns a copy of m scaled down for style s's size class. The
// MATH-table constants stay in Em (already relative to "the current
// em"); only the em→px conversion ratio changes.
func (m Metrics) atStyle(s Style) Metrics {
	factor := percentScaleDown(s, m.C)
	if factor == 1.0 {
		return m
	}
	m2 := m
	m2.SizePx = m.SizePx * factor
	m2.emToPx = dimen.NewRatio[dimen.Px, dimen.Em](m2.SizePx)
	return m2
}

// em converts an Em-tagged scalar to pixels at this recursion's size.
func (m Metrics) em(v dimen.Scalar[dimen.Em]) dimen.Scalar[dimen.Px] {
	return dimen.Convert[dimen.Px, dimen.Em](v, m.emToPx)
}

// funit converts a font-design-unit scalar to pixels, going through Em.
func (m Metrics) funit(v dimen.Scalar[dimen.FUnit]) dimen.Scalar[dimen.Px] {
	return m.em(dimen.Convert[dimen.Em, dimen.FUnit](v, m.funitToEm))
}

// glyph looks up full metrics for a codepoint, returned as the font's
// design-space (FUnit) values; callers convert them. ok is false if
// the font has no glyph for the codepoint (core.EFONT at the caller).
func (m Metrics) glyph(codepoint rune) (mathfont.Glyph, bool) {
	gid, ok := m.Font.GlyphIndex(codepoint)
	if !ok {
		return mathfont.Glyph{}, false
	}
	g, err := m.Font.GlyphFromGID(gid)
	if err != nil {
		return mathfont.Glyph{}, false
	}
	return g, true
}
