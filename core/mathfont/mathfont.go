/*
Package mathfont declares the abstract font capability the layout engine
consumes (spec §6). The OpenType MATH table itself — the actual glyph
outlines, the byte-level table parsing — is an external collaborator
(spec §1); this package only states the contract. core/otfont supplies a
concrete implementation over a real font file; tests use in-memory
fakes (fakeFont in engine/mathtext/layout's tests, stubFont in
engine/mathtext's tests).

Grounded on tyse's core/font/font.go IsMathFont-shaped contracts and
original_source/src/font/mod.rs's IsMathFont trait, field-for-field.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package mathfont

import "github.com/npillmayer/mathtyp/core/dimen"

// GlyphID is an opaque font-internal glyph identifier.
type GlyphID uint16

// Corner names one of the four corners a math-kern table may carry an
// entry for (spec §6).
type Corner int8

// The four math-kern corners.
const (
	TopRight Corner = iota
	TopLeft
	BottomRight
	BottomLeft
)

// BBox is a glyph's ink bounding box in font design units.
type BBox struct {
	XMin, YMin, XMax, YMax dimen.Scalar[dimen.FUnit]
}

// Glyph bundles everything the layout engine needs about one glyph, as
// returned by Font.GlyphFromGID.
type Glyph struct {
	GID        GlyphID
	BBox       BBox
	Advance    dimen.Scalar[dimen.FUnit]
	LSB        dimen.Scalar[dimen.FUnit] // left side bearing
	Italics    dimen.Scalar[dimen.FUnit] // italic correction
	Attachment dimen.Scalar[dimen.FUnit] // top accent attachment
}

// Direction names the axis a variant glyph was constructed along.
type Direction int8

// Variant construction directions.
const (
	Horizontal Direction = iota
	Vertical
)

// GlyphInstruction is one piece of a constructed (assembled) variant
// glyph: a part glyph plus how much it overlaps with the previous part.
type GlyphInstruction struct {
	GID     GlyphID
	Overlap dimen.Scalar[dimen.FUnit]
}

// Variant is the result of asking a font for a horizontal or vertical
// size variant of a glyph. It is either a single replacement glyph (the
// font shipped a pre-built larger version) or a recipe to assemble one
// out of several part glyphs glued together with overlaps. The layout
// engine treats a Variant opaquely and hands it to the renderer driver
// unchanged (spec §6).
type Variant struct {
	// Replacement is set (IsAssembly == false) when the font supplies a
	// single pre-built glyph at the requested size.
	Replacement GlyphID
	// Direction and Parts are set (IsAssembly == true) when the variant must be
	// constructed from several parts.
	Direction Direction
	Parts     []GlyphInstruction
	IsAssembly bool
}

// Constants is the full set of named MATH-table constants the layout
// engine consults, expressed in Em (already converted from the font's
// raw FUnit design space by Font.FontUnitsToEm). Field names mirror
// original_source/src/font/backend/font.rs's constants() method exactly,
// which is itself a direct translation of the OpenType MATH table's
// MathConstants subtable.
type Constants struct {
	// Scripts.
	SubscriptShiftDown           dimen.Scalar[dimen.Em]
	SubscriptTopMax              dimen.Scalar[dimen.Em]
	SubscriptBaselineDropMin     dimen.Scalar[dimen.Em]
	SuperscriptShiftUp           dimen.Scalar[dimen.Em]
	SuperscriptShiftUpCramped    dimen.Scalar[dimen.Em]
	SuperscriptBaselineDropMax   dimen.Scalar[dimen.Em]
	SuperscriptBottomMin         dimen.Scalar[dimen.Em]
	SubSuperscriptGapMin         dimen.Scalar[dimen.Em]

	// Limits (operators with \limits).
	UpperLimitBaselineRiseMin dimen.Scalar[dimen.Em]
	UpperLimitGapMin          dimen.Scalar[dimen.Em]
	LowerLimitGapMin          dimen.Scalar[dimen.Em]
	LowerLimitBaselineDropMin dimen.Scalar[dimen.Em]

	// Fractions.
	FractionRuleThickness                     dimen.Scalar[dimen.Em]
	FractionNumeratorDisplayStyleShiftUp       dimen.Scalar[dimen.Em]
	FractionDenominatorDisplayStyleShiftDown   dimen.Scalar[dimen.Em]
	FractionNumDisplayStyleGapMin              dimen.Scalar[dimen.Em]
	FractionDenomDisplayStyleGapMin             dimen.Scalar[dimen.Em]
	FractionNumeratorShiftUp                   dimen.Scalar[dimen.Em]
	FractionDenominatorShiftDown               dimen.Scalar[dimen.Em]
	FractionNumeratorGapMin                     dimen.Scalar[dimen.Em]
	FractionDenominatorGapMin                   dimen.Scalar[dimen.Em]

	// Axis and accents.
	AxisHeight        dimen.Scalar[dimen.Em]
	AccentBaseHeight  dimen.Scalar[dimen.Em]

	// Delimiters.
	DelimitedSubFormulaMinHeight dimen.Scalar[dimen.Em]
	DelimiterFactor              float64 // dimensionless, default 0.901
	DelimiterShortFall           dimen.Scalar[dimen.Em]
	NullDelimiterSpace           dimen.Scalar[dimen.Em]

	// Large operators.
	DisplayOperatorMinHeight dimen.Scalar[dimen.Em]

	// Radicals.
	RadicalDisplayStyleVerticalGap dimen.Scalar[dimen.Em]
	RadicalVerticalGap             dimen.Scalar[dimen.Em]
	RadicalRuleThickness           dimen.Scalar[dimen.Em]
	RadicalExtraAscender           dimen.Scalar[dimen.Em]

	// Stacks (substack / GenFraction without a bar).
	StackDisplayStyleGapMin      dimen.Scalar[dimen.Em]
	StackTopDisplayStyleShiftUp dimen.Scalar[dimen.Em]
	StackTopShiftUp              dimen.Scalar[dimen.Em]
	StackBottomShiftDown         dimen.Scalar[dimen.Em]
	StackGapMin                  dimen.Scalar[dimen.Em]

	// Scale-downs.
	ScriptPercentScaleDown       float64
	ScriptScriptPercentScaleDown float64
}

// DefaultConstants returns the documented fallback values spec §6 names
// for constants a font's MATH table may omit: DelimiterFactor=0.901,
// DelimiterShortFall=0.1em, NullDelimiterSpace=0.1em. Font implementations
// should start from this and overwrite whatever their MATH table does
// supply.
func DefaultConstants() Constants {
	return Constants{
		DelimiterFactor:    0.901,
		DelimiterShortFall: dimen.New[dimen.Em](0.1),
		NullDelimiterSpace: dimen.New[dimen.Em](0.1),
	}
}

// Font is the capability the layout engine requires of a math font
// (spec §6). Implementations own no mutable state visible to callers;
// a Font is shared by reference across concurrently-running engines
// (spec §5).
type Font interface {
	// GlyphIndex resolves a Unicode codepoint to a glyph id, or ok=false
	// if the font has no glyph for it.
	GlyphIndex(codepoint rune) (GlyphID, bool)

	// GlyphFromGID returns full glyph metrics for gid, or an error if gid
	// is not present in the font (core.EFONT).
	GlyphFromGID(gid GlyphID) (Glyph, error)

	// KernFor looks up a math-kern value for gid at the given height and
	// corner. ok is false if the font defines no kern table for this
	// glyph/corner (the layout engine then uses a zero kern, per spec §8's
	// boundary behavior).
	KernFor(gid GlyphID, height dimen.Scalar[dimen.FUnit], corner Corner) (dimen.Scalar[dimen.FUnit], bool)

	// Italics returns gid's italic correction in font units.
	Italics(gid GlyphID) dimen.Scalar[dimen.FUnit]

	// Attachment returns gid's top accent attachment in font units.
	Attachment(gid GlyphID) dimen.Scalar[dimen.FUnit]

	// Constants returns the full MATH table constant block, already
	// converted to Em via fontUnitsToEm.
	Constants(fontUnitsToEm dimen.Ratio[dimen.Em, dimen.FUnit]) Constants

	// FontUnitsToEm returns the scale factor 1/unitsPerEm, tagged as a
	// Ratio so callers can use dimen.Convert directly.
	FontUnitsToEm() dimen.Ratio[dimen.Em, dimen.FUnit]

	// HorzVariant requests a horizontal size variant of gid at least
	// width wide.
	HorzVariant(gid GlyphID, width dimen.Scalar[dimen.FUnit]) Variant

	// VertVariant requests a vertical size variant of gid at least
	// height tall.
	VertVariant(gid GlyphID, height dimen.Scalar[dimen.FUnit]) Variant
}
