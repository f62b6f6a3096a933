package layout

import (
	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/mathfont"
)

// fakeGlyph is one entry of a fakeFont's metric table, everything in
// FUnit (the fakeFont uses 1000 units per em, like a typical PostScript
// font, so FUnit values read naturally as thousandths of an em).
type fakeGlyph struct {
	gid               mathfont.GlyphID
	advance, lsb       float64
	yMin, yMax         float64
	italics, attachment float64
}

// fakeFont is a minimal, deterministic mathfont.Font used across the
// layout package's tests in place of a real OpenType MATH font — the
// layout engine only ever consults Font through the mathfont.Font
// interface, so a small in-memory table exercises every formula the
// tests need without any font file on disk.
type fakeFont struct {
	glyphs    map[rune]fakeGlyph
	nextGID   mathfont.GlyphID
	constants mathfont.Constants
}

func newFakeFont() *fakeFont {
	f := &fakeFont{glyphs: map[rune]fakeGlyph{}, nextGID: 1}
	// Digits and common operators, glyph metrics loosely modeled on a
	// typical text/math face at 1000 units/em.
	f.add('0', 500, 0, 0, 650, 0, 0)
	f.add('1', 500, 0, 0, 650, 0, 0)
	f.add('2', 500, 0, 0, 650, 0, 0)
	f.add('3', 500, 0, 0, 650, 0, 0)
	f.add('4', 500, 0, 0, 650, 0, 0)
	f.add('+', 600, 20, -100, 500, 0, 0)
	f.add('=', 600, 20, 0, 400, 0, 0)
	f.add('x', 500, 0, 0, 450, 20, 250)
	f.add('a', 450, 0, 0, 450, 0, 220)
	f.add('b', 500, 0, -10, 650, 0, 250)
	f.add('c', 450, 0, 0, 450, 0, 220)
	f.add('d', 500, 0, -10, 650, 0, 250)
	f.add('(', 333, 50, -200, 700, 0, 0)
	f.add(')', 333, 0, -200, 700, 0, 0)
	f.add('[', 333, 50, -200, 700, 0, 0)
	f.add(']', 333, 0, -200, 700, 0, 0)
	f.add('√', 600, 0, -100, 1200, 0, 0) // radical sign

	f.constants = mathfont.DefaultConstants()
	f.constants.AxisHeight = dimen.New[dimen.Em](0.25)
	f.constants.FractionRuleThickness = dimen.New[dimen.Em](0.04)
	f.constants.FractionNumeratorDisplayStyleShiftUp = dimen.New[dimen.Em](0.68)
	f.constants.FractionDenominatorDisplayStyleShiftDown = dimen.New[dimen.Em](0.68)
	f.constants.FractionNumDisplayStyleGapMin = dimen.New[dimen.Em](0.2)
	f.constants.FractionDenomDisplayStyleGapMin = dimen.New[dimen.Em](0.2)
	f.constants.FractionNumeratorShiftUp = dimen.New[dimen.Em](0.39)
	f.constants.FractionDenominatorShiftDown = dimen.New[dimen.Em](0.39)
	f.constants.FractionNumeratorGapMin = dimen.New[dimen.Em](0.05)
	f.constants.FractionDenominatorGapMin = dimen.New[dimen.Em](0.05)
	f.constants.SuperscriptShiftUp = dimen.New[dimen.Em](0.4)
	f.constants.SuperscriptShiftUpCramped = dimen.New[dimen.Em](0.3)
	f.constants.SuperscriptBaselineDropMax = dimen.New[dimen.Em](0.25)
	f.constants.SuperscriptBottomMin = dimen.New[dimen.Em](0.1)
	f.constants.SubscriptShiftDown = dimen.New[dimen.Em](0.2)
	f.constants.SubscriptTopMax = dimen.New[dimen.Em](0.3)
	f.constants.SubscriptBaselineDropMin = dimen.New[dimen.Em](0.1)
	f.constants.SubSuperscriptGapMin = dimen.New[dimen.Em](0.15)
	f.constants.UpperLimitGapMin = dimen.New[dimen.Em](0.1)
	f.constants.UpperLimitBaselineRiseMin = dimen.New[dimen.Em](0.1)
	f.constants.LowerLimitGapMin = dimen.New[dimen.Em](0.1)
	f.constants.LowerLimitBaselineDropMin = dimen.New[dimen.Em](0.6)
	f.constants.RadicalVerticalGap = dimen.New[dimen.Em](0.06)
	f.constants.RadicalDisplayStyleVerticalGap = dimen.New[dimen.Em](0.1)
	f.constants.RadicalRuleThickness = dimen.New[dimen.Em](0.04)
	f.constants.RadicalExtraAscender = dimen.New[dimen.Em](0.04)
	f.constants.StackGapMin = dimen.New[dimen.Em](0.15)
	f.constants.StackDisplayStyleGapMin = dimen.New[dimen.Em](0.3)
	f.constants.StackTopShiftUp = dimen.New[dimen.Em](0.4)
	f.constants.StackTopDisplayStyleShiftUp = dimen.New[dimen.Em](0.68)
	f.constants.StackBottomShiftDown = dimen.New[dimen.Em](0.4)
	f.constants.AccentBaseHeight = dimen.New[dimen.Em](0.5)
	f.constants.DelimitedSubFormulaMinHeight = dimen.New[dimen.Em](1.0)
	f.constants.DisplayOperatorMinHeight = dimen.New[dimen.Em](1.2)
	f.constants.ScriptPercentScaleDown = 0.7
	f.constants.ScriptScriptPercentScaleDown = 0.5
	return f
}

func (f *fakeFont) add(r rune, advance, lsb, yMin, yMax, italics, attachment float64) {
	gid := f.nextGID
	f.nextGID++
	f.glyphs[r] = fakeGlyph{gid: gid, advance: advance, lsb: lsb, yMin: yMin, yMax: yMax, italics: italics, attachment: attachment}
}

func (f *fakeFont) GlyphIndex(r rune) (mathfont.GlyphID, bool) {
	g, ok := f.glyphs[r]
	return g.gid, ok
}

func (f *fakeFont) runeForGID(gid mathfont.GlyphID) (rune, fakeGlyph, bool) {
	for r, g := range f.glyphs {
		if g.gid == gid {
			return r, g, true
		}
	}
	return 0, fakeGlyph{}, false
}

func (f *fakeFont) GlyphFromGID(gid mathfont.GlyphID) (mathfont.Glyph, error) {
	_, g, ok := f.runeForGID(gid)
	if !ok {
		return mathfont.Glyph{}, core.Error(core.EFONT, "fakeFont: no glyph for gid %d", gid)
	}
	return mathfont.Glyph{
		GID: g.gid,
		BBox: mathfont.BBox{
			XMin: dimen.New[dimen.FUnit](g.lsb),
			YMin: dimen.New[dimen.FUnit](g.yMin),
			XMax: dimen.New[dimen.FUnit](g.lsb + g.advance),
			YMax: dimen.New[dimen.FUnit](g.yMax),
		},
		Advance:    dimen.New[dimen.FUnit](g.advance),
		LSB:        dimen.New[dimen.FUnit](g.lsb),
		Italics:    dimen.New[dimen.FUnit](g.italics),
		Attachment: dimen.New[dimen.FUnit](g.attachment),
	}, nil
}

func (f *fakeFont) KernFor(gid mathfont.GlyphID, height dimen.Scalar[dimen.FUnit], corner mathfont.Corner) (dimen.Scalar[dimen.FUnit], bool) {
	return 0, false // no math-kern table: tests exercise the zero-kern boundary behavior
}

func (f *fakeFont) Italics(gid mathfont.GlyphID) dimen.Scalar[dimen.FUnit] {
	_, g, _ := f.runeForGID(gid)
	return dimen.New[dimen.FUnit](g.italics)
}

func (f *fakeFont) Attachment(gid mathfont.GlyphID) dimen.Scalar[dimen.FUnit] {
	_, g, _ := f.runeForGID(gid)
	return dimen.New[dimen.FUnit](g.attachment)
}

func (f *fakeFont) Constants(fontUnitsToEm dimen.Ratio[dimen.Em, dimen.FUnit]) mathfont.Constants {
	return f.constants
}

func (f *fakeFont) FontUnitsToEm() dimen.Ratio[dimen.Em, dimen.FUnit] {
	return dimen.NewRatio[dimen.Em, dimen.FUnit](1.0 / 1000.0)
}

// HorzVariant and VertVariant always return a single replacement: the
// same glyph, scaled up by whatever the caller asked for isn't tracked,
// but the returned glyph's own bbox (post-GlyphFromGID) already reports
// requested-sized metrics for the one rune tests ask a variant of
// ('√'), so a Replacement pointing back at itself is sufficient
// for formulas that only build one radical/delimiter per test.
func (f *fakeFont) HorzVariant(gid mathfont.GlyphID, width dimen.Scalar[dimen.FUnit]) mathfont.Variant {
	return mathfont.Variant{Replacement: gid}
}

func (f *fakeFont) VertVariant(gid mathfont.GlyphID, height dimen.Scalar[dimen.FUnit]) mathfont.Variant {
	return mathfont.Variant{Replacement: gid}
}
