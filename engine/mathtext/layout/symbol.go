package layout

import (
	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/mathfont"
	"github.com/npillmayer/mathtyp/core/symtab"
	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

// layoutSymbol places a single glyph (spec §4.4 "Symbol placement"), or —
// for a big operator (Operator category) laid out in Display/
// DisplayCramped — requests a taller vertical variant and centers it on
// the math axis (spec §4.4 "Large operators").
func layoutSymbol(s parse.Symbol, m Metrics, style Style) (Layout, error) {
	gid, ok := m.Font.GlyphIndex(s.Codepoint)
	if !ok {
		return Layout{}, core.Error(core.EFONT, "layout: no glyph for codepoint U+%04X", s.Codepoint)
	}
	if s.Category == symtab.Operator && size(style) == 0 {
		return layoutLargeOperator(m, gid)
	}
	return sizedGlyph(m, gid)
}

// layoutLargeOperator realizes spec §4.4's large-operator rule: request a
// vertical variant at least displayOperatorMinHeight tall, then
// vertically center the result on the math axis by offsetting it by
// (height+depth)/2 − axisHeight.
func layoutLargeOperator(m Metrics, gid mathfont.GlyphID) (Layout, error) {
	target := emToFUnit(m, m.C.DisplayOperatorMinHeight)
	lay, err := verticalVariant(m, gid, target)
	if err != nil {
		return Layout{}, err
	}
	offset := lay.Height.Add(lay.Depth).Scale(0.5).Sub(m.em(m.C.AxisHeight))
	lay.Offset = dimen.Point{Y: offset}
	return lay, nil
}
