package otfont

import (
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/mathfont"
)

/*
mathTable holds the parsed contents of an OpenType "MATH" table: the
MathConstants, MathGlyphInfo, and MathVariants subtables (OpenType MATH
spec §5). Parsing the MATH table is domain logic specific to math
typesetting (it is not part of "the OpenType font reader" spec §1 puts out
of scope — that refers to general glyph/cmap/hmtx plumbing, which we get
from x/image/font/sfnt), so it lives here rather than being farmed out.

Table offsets below are sequential MathValueRecords (a signed FUnit value
plus a device-table offset we ignore) unless noted, per the OpenType MATH
table layout. Grounded structurally on tyse's core/font/ot/gpos.go and
layout.go navigation idiom (sequential offset cursor over a fontBinSegm),
and on the field ordering implied by original_source/src/font/backend/
ttf_parser.rs.
*/

type mathValues struct {
	scriptPercentScaleDown       int16
	scriptScriptPercentScaleDown int16
	delimitedSubFormulaMinHeight int16
	displayOperatorMinHeight     int16

	axisHeight       int16
	accentBaseHeight int16

	subscriptShiftDown         int16
	subscriptTopMax            int16
	subscriptBaselineDropMin   int16
	superscriptShiftUp         int16
	superscriptShiftUpCramped  int16
	superscriptBottomMin       int16
	superscriptBaselineDropMax int16
	subSuperscriptGapMin       int16

	upperLimitGapMin          int16
	upperLimitBaselineRiseMin int16
	lowerLimitGapMin          int16
	lowerLimitBaselineDropMin int16

	stackTopShiftUp             int16
	stackTopDisplayStyleShiftUp int16
	stackBottomShiftDown        int16
	stackGapMin                 int16
	stackDisplayStyleGapMin     int16

	fractionNumeratorShiftUp                 int16
	fractionNumeratorDisplayStyleShiftUp     int16
	fractionDenominatorShiftDown             int16
	fractionDenominatorDisplayStyleShiftDown int16
	fractionNumeratorGapMin                  int16
	fractionNumDisplayStyleGapMin            int16
	fractionRuleThickness                    int16
	fractionDenominatorGapMin                int16
	fractionDenomDisplayStyleGapMin          int16

	radicalVerticalGap             int16
	radicalDisplayStyleVerticalGap int16
	radicalRuleThickness           int16
	radicalExtraAscender           int16
}

// cursor walks sequential int16 and MathValueRecord fields of the
// MathConstants subtable, advancing by 2 bytes for a bare int16/UFWORD
// and by 4 bytes for a MathValueRecord (value + device-table offset).
type cursor struct {
	buf fontBinSegm
	pos int
}

func (c *cursor) int16Field() int16 {
	v, err := c.buf.i16(c.pos)
	if err != nil {
		return 0
	}
	c.pos += 2
	return v
}

func (c *cursor) mathValue() int16 {
	v, err := c.buf.mathValueRecord(c.pos)
	if err != nil {
		return 0
	}
	c.pos += 4
	return v
}

// parseMathConstants parses the MathConstants subtable starting at
// offset within buf.
func parseMathConstants(buf fontBinSegm, offset int) mathValues {
	c := &cursor{buf: buf, pos: offset}
	var mv mathValues
	mv.scriptPercentScaleDown = c.int16Field()
	mv.scriptScriptPercentScaleDown = c.int16Field()
	mv.delimitedSubFormulaMinHeight = c.int16Field()
	mv.displayOperatorMinHeight = c.int16Field()
	_ = c.mathValue() // MathLeading, unused by this engine
	mv.axisHeight = c.mathValue()
	mv.accentBaseHeight = c.mathValue()
	_ = c.mathValue() // FlattenedAccentBaseHeight, unused
	mv.subscriptShiftDown = c.mathValue()
	mv.subscriptTopMax = c.mathValue()
	mv.subscriptBaselineDropMin = c.mathValue()
	mv.superscriptShiftUp = c.mathValue()
	mv.superscriptShiftUpCramped = c.mathValue()
	mv.superscriptBottomMin = c.mathValue()
	mv.superscriptBaselineDropMax = c.mathValue()
	mv.subSuperscriptGapMin = c.mathValue()
	_ = c.mathValue() // SuperscriptBottomMaxWithSubscript, unused
	_ = c.mathValue() // SpaceAfterScript, unused
	mv.upperLimitGapMin = c.mathValue()
	mv.upperLimitBaselineRiseMin = c.mathValue()
	mv.lowerLimitGapMin = c.mathValue()
	mv.lowerLimitBaselineDropMin = c.mathValue()
	mv.stackTopShiftUp = c.mathValue()
	mv.stackTopDisplayStyleShiftUp = c.mathValue()
	mv.stackBottomShiftDown = c.mathValue()
	_ = c.mathValue() // StackBottomDisplayStyleShiftDown, unused
	mv.stackGapMin = c.mathValue()
	mv.stackDisplayStyleGapMin = c.mathValue()
	_ = c.mathValue() // StretchStackTopShiftUp, unused
	_ = c.mathValue() // StretchStackBottomShiftDown, unused
	_ = c.mathValue() // StretchStackGapAboveMin, unused
	_ = c.mathValue() // StretchStackGapBelowMin, unused
	mv.fractionNumeratorShiftUp = c.mathValue()
	mv.fractionNumeratorDisplayStyleShiftUp = c.mathValue()
	mv.fractionDenominatorShiftDown = c.mathValue()
	mv.fractionDenominatorDisplayStyleShiftDown = c.mathValue()
	mv.fractionNumeratorGapMin = c.mathValue()
	mv.fractionNumDisplayStyleGapMin = c.mathValue()
	mv.fractionRuleThickness = c.mathValue()
	mv.fractionDenominatorGapMin = c.mathValue()
	mv.fractionDenomDisplayStyleGapMin = c.mathValue()
	_ = c.mathValue() // SkewedFractionHorizontalGap, unused
	_ = c.mathValue() // SkewedFractionVerticalGap, unused
	_ = c.mathValue() // OverbarVerticalGap, unused
	_ = c.mathValue() // OverbarRuleThickness, unused
	_ = c.mathValue() // OverbarExtraAscender, unused
	_ = c.mathValue() // UnderbarVerticalGap, unused
	_ = c.mathValue() // UnderbarRuleThickness, unused
	_ = c.mathValue() // UnderbarExtraDescender, unused
	mv.radicalVerticalGap = c.mathValue()
	mv.radicalDisplayStyleVerticalGap = c.mathValue()
	mv.radicalRuleThickness = c.mathValue()
	mv.radicalExtraAscender = c.mathValue()
	return mv
}

// toConstants converts raw design-unit values to the mathfont.Constants
// block, applying fontUnitsToEm to every FUnit field and filling in the
// documented defaults for fields the MATH table never carries (spec §6).
func (mv mathValues) toConstants(toEm dimen.Ratio[dimen.Em, dimen.FUnit]) mathfont.Constants {
	em := func(v int16) dimen.Scalar[dimen.Em] {
		return dimen.Convert(dimen.New[dimen.FUnit](float64(v)), toEm)
	}
	c := mathfont.Constants{
		SubscriptShiftDown:         em(mv.subscriptShiftDown),
		SubscriptTopMax:            em(mv.subscriptTopMax),
		SubscriptBaselineDropMin:   em(mv.subscriptBaselineDropMin),
		SuperscriptShiftUp:         em(mv.superscriptShiftUp),
		SuperscriptShiftUpCramped:  em(mv.superscriptShiftUpCramped),
		SuperscriptBaselineDropMax: em(mv.superscriptBaselineDropMax),
		SuperscriptBottomMin:       em(mv.superscriptBottomMin),
		SubSuperscriptGapMin:       em(mv.subSuperscriptGapMin),

		UpperLimitBaselineRiseMin: em(mv.upperLimitBaselineRiseMin),
		UpperLimitGapMin:          em(mv.upperLimitGapMin),
		LowerLimitGapMin:          em(mv.lowerLimitGapMin),
		LowerLimitBaselineDropMin: em(mv.lowerLimitBaselineDropMin),

		FractionRuleThickness:                   em(mv.fractionRuleThickness),
		FractionNumeratorDisplayStyleShiftUp:     em(mv.fractionNumeratorDisplayStyleShiftUp),
		FractionDenominatorDisplayStyleShiftDown: em(mv.fractionDenominatorDisplayStyleShiftDown),
		FractionNumDisplayStyleGapMin:            em(mv.fractionNumDisplayStyleGapMin),
		FractionDenomDisplayStyleGapMin:          em(mv.fractionDenomDisplayStyleGapMin),
		FractionNumeratorShiftUp:                 em(mv.fractionNumeratorShiftUp),
		FractionDenominatorShiftDown:             em(mv.fractionDenominatorShiftDown),
		FractionNumeratorGapMin:                  em(mv.fractionNumeratorGapMin),
		FractionDenominatorGapMin:                em(mv.fractionDenominatorGapMin),

		AxisHeight:       em(mv.axisHeight),
		AccentBaseHeight: em(mv.accentBaseHeight),

		DelimitedSubFormulaMinHeight: em(mv.delimitedSubFormulaMinHeight),
		DelimiterFactor:              0.901,
		DelimiterShortFall:           dimen.New[dimen.Em](0.1),
		NullDelimiterSpace:           dimen.New[dimen.Em](0.1),

		DisplayOperatorMinHeight: em(mv.displayOperatorMinHeight),

		RadicalDisplayStyleVerticalGap: em(mv.radicalDisplayStyleVerticalGap),
		RadicalVerticalGap:             em(mv.radicalVerticalGap),
		RadicalRuleThickness:           em(mv.radicalRuleThickness),
		RadicalExtraAscender:           em(mv.radicalExtraAscender),

		StackDisplayStyleGapMin:     em(mv.stackDisplayStyleGapMin),
		StackTopDisplayStyleShiftUp: em(mv.stackTopDisplayStyleShiftUp),
		StackTopShiftUp:             em(mv.stackTopShiftUp),
		StackBottomShiftDown:        em(mv.stackBottomShiftDown),
		StackGapMin:                 em(mv.stackGapMin),

		ScriptPercentScaleDown:       0.01 * float64(mv.scriptPercentScaleDown),
		ScriptScriptPercentScaleDown: 0.01 * float64(mv.scriptScriptPercentScaleDown),
	}
	return c
}

// coverageIndex resolves gid to its zero-based position within a
// Coverage table at the given offset, mirroring the two coverage formats
// the OpenType spec allows (glyph list / range list).
func coverageIndex(buf fontBinSegm, offset int, gid mathfont.GlyphID) (int, bool) {
	format, err := buf.u16(offset)
	if err != nil {
		return 0, false
	}
	switch format {
	case 1:
		count, err := buf.u16(offset + 2)
		if err != nil {
			return 0, false
		}
		for i := 0; i < int(count); i++ {
			g, err := buf.u16(offset + 4 + i*2)
			if err != nil {
				return 0, false
			}
			if mathfont.GlyphID(g) == gid {
				return i, true
			}
		}
	case 2:
		count, err := buf.u16(offset + 2)
		if err != nil {
			return 0, false
		}
		for i := 0; i < int(count); i++ {
			rec := offset + 4 + i*6
			start, err := buf.u16(rec)
			if err != nil {
				return 0, false
			}
			end, err := buf.u16(rec + 2)
			if err != nil {
				return 0, false
			}
			startIdx, err := buf.u16(rec + 4)
			if err != nil {
				return 0, false
			}
			g16 := uint16(gid)
			if g16 >= start && g16 <= end {
				return int(startIdx) + int(g16-start), true
			}
		}
	}
	return 0, false
}

// glyphItalicsCorrection reads MathGlyphInfo.MathItalicsCorrectionInfo
// for gid, returning ok=false when the glyph carries none.
func (f *Font) glyphItalicsCorrection(gid mathfont.GlyphID) (int16, bool) {
	sub, err := f.mathTable.u16(f.glyphInfoOff)
	if err != nil || sub == 0 {
		return 0, false
	}
	base := f.glyphInfoOff + int(sub)
	covOff, err := f.mathTable.u16(base)
	if err != nil {
		return 0, false
	}
	idx, ok := coverageIndex(f.mathTable, base+int(covOff), gid)
	if !ok {
		return 0, false
	}
	v, err := f.mathTable.mathValueRecord(base + 4 + idx*4)
	if err != nil {
		return 0, false
	}
	return v, true
}

// glyphTopAccentAttachment reads MathGlyphInfo.MathTopAccentAttachment
// for gid.
func (f *Font) glyphTopAccentAttachment(gid mathfont.GlyphID) (int16, bool) {
	off, err := f.mathTable.u16(f.glyphInfoOff + 2)
	if err != nil || off == 0 {
		return 0, false
	}
	base := f.glyphInfoOff + int(off)
	covOff, err := f.mathTable.u16(base)
	if err != nil {
		return 0, false
	}
	idx, ok := coverageIndex(f.mathTable, base+int(covOff), gid)
	if !ok {
		return 0, false
	}
	v, err := f.mathTable.mathValueRecord(base + 4 + idx*4)
	if err != nil {
		return 0, false
	}
	return v, true
}

// mathKernTable is one corner's MathKern subtable: a step function from
// correction height to kern value (OpenType MATH spec, MathKern table).
type mathKernTable struct {
	heights []int16
	values  []int16
}

func (k mathKernTable) valueAt(height dimen.Scalar[dimen.FUnit]) dimen.Scalar[dimen.FUnit] {
	h := height.Float64()
	for i, boundary := range k.heights {
		if h < float64(boundary) {
			return dimen.New[dimen.FUnit](float64(k.values[i]))
		}
	}
	return dimen.New[dimen.FUnit](float64(k.values[len(k.values)-1]))
}

// mathKern resolves gid's MathKernInfo entry for the requested corner.
func (f *Font) mathKern(gid mathfont.GlyphID, corner mathfont.Corner) (mathKernTable, bool) {
	kiOff, err := f.mathTable.u16(f.glyphInfoOff + 6)
	if err != nil || kiOff == 0 {
		return mathKernTable{}, false
	}
	base := f.glyphInfoOff + int(kiOff)
	covOff, err := f.mathTable.u16(base)
	if err != nil {
		return mathKernTable{}, false
	}
	idx, ok := coverageIndex(f.mathTable, base+int(covOff), gid)
	if !ok {
		return mathKernTable{}, false
	}
	recBase := base + 4 + idx*8
	var fieldOff int
	switch corner {
	case mathfont.TopRight:
		fieldOff = 0
	case mathfont.TopLeft:
		fieldOff = 2
	case mathfont.BottomRight:
		fieldOff = 4
	case mathfont.BottomLeft:
		fieldOff = 6
	}
	subOff, err := f.mathTable.u16(recBase + fieldOff)
	if err != nil || subOff == 0 {
		return mathKernTable{}, false
	}
	kb := base + int(subOff)
	heightCount, err := f.mathTable.u16(kb)
	if err != nil {
		return mathKernTable{}, false
	}
	kt := mathKernTable{
		heights: make([]int16, heightCount),
		values:  make([]int16, heightCount+1),
	}
	for i := 0; i < int(heightCount); i++ {
		v, err := f.mathTable.mathValueRecord(kb + 2 + i*4)
		if err != nil {
			return mathKernTable{}, false
		}
		kt.heights[i] = v
	}
	for i := 0; i < int(heightCount)+1; i++ {
		v, err := f.mathTable.mathValueRecord(kb + 2 + int(heightCount)*4 + i*4)
		if err != nil {
			return mathKernTable{}, false
		}
		kt.values[i] = v
	}
	return kt, true
}

// glyphVariants resolves a horizontal or vertical size variant for gid
// from the MathVariants subtable, preferring the smallest variant that
// meets the requested size and falling back to an assembly recipe.
func (f *Font) glyphVariants(gid mathfont.GlyphID, want dimen.Scalar[dimen.FUnit], dir mathfont.Direction) (mathfont.Variant, bool) {
	if f.variantsOff == 0 {
		return mathfont.Variant{}, false
	}
	var covOffField, countField int
	if dir == mathfont.Vertical {
		covOffField, countField = 2, 6
	} else {
		covOffField, countField = 4, 8
	}
	covOff, err := f.mathTable.u16(f.variantsOff + covOffField)
	if err != nil || covOff == 0 {
		return mathfont.Variant{}, false
	}
	count, err := f.mathTable.u16(f.variantsOff + countField)
	if err != nil {
		return mathfont.Variant{}, false
	}
	idx, ok := coverageIndex(f.mathTable, f.variantsOff+int(covOff), gid)
	if !ok || idx >= int(count) {
		return mathfont.Variant{}, false
	}
	constructionsBase := f.variantsOff + 10
	if dir == mathfont.Horizontal {
		vertCount, err := f.mathTable.u16(f.variantsOff + 6)
		if err != nil {
			return mathfont.Variant{}, false
		}
		constructionsBase += int(vertCount) * 2
	}
	constrOff, err := f.mathTable.u16(constructionsBase + idx*2)
	if err != nil || constrOff == 0 {
		return mathfont.Variant{}, false
	}
	cb := f.variantsOff + int(constrOff)
	variantCount, err := f.mathTable.u16(cb + 2)
	if err != nil {
		return mathfont.Variant{}, false
	}
	wantFU := want.Float64()
	for i := 0; i < int(variantCount); i++ {
		rec := cb + 4 + i*4
		vg, err := f.mathTable.u16(rec)
		if err != nil {
			continue
		}
		adv, err := f.mathTable.u16(rec + 2)
		if err != nil {
			continue
		}
		if float64(adv) >= wantFU {
			return mathfont.Variant{Replacement: mathfont.GlyphID(vg), Direction: dir}, true
		}
	}
	// No single glyph is large enough: fall back to the assembly recipe,
	// if the font provides one (spec §8).
	assemblyOff, err := f.mathTable.u16(cb)
	if err != nil || assemblyOff == 0 {
		if variantCount > 0 {
			rec := cb + 4 + (int(variantCount)-1)*4
			vg, _ := f.mathTable.u16(rec)
			return mathfont.Variant{Replacement: mathfont.GlyphID(vg), Direction: dir}, true
		}
		return mathfont.Variant{}, false
	}
	ab := cb + int(assemblyOff)
	partCount, err := f.mathTable.u16(ab + 4)
	if err != nil {
		return mathfont.Variant{}, false
	}
	parts := make([]mathfont.GlyphInstruction, 0, partCount)
	for i := 0; i < int(partCount); i++ {
		rec := ab + 6 + i*10
		g, err := f.mathTable.u16(rec)
		if err != nil {
			return mathfont.Variant{}, false
		}
		startConn, err := f.mathTable.u16(rec + 2)
		if err != nil {
			return mathfont.Variant{}, false
		}
		parts = append(parts, mathfont.GlyphInstruction{
			GID:     mathfont.GlyphID(g),
			Overlap: dimen.New[dimen.FUnit](float64(startConn)),
		})
	}
	return mathfont.Variant{Direction: dir, Parts: parts, IsAssembly: true}, true
}
