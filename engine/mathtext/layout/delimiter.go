package layout

import (
	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

// layoutDelimiterGlyph requests a vertical variant of sym's glyph at
// least targetFU tall and resolves it to a Layout, vertically recentered
// on the math axis the way every delimiter (fraction, array, \left...
// \right) needs.
func layoutDelimiterGlyph(m Metrics, sym parse.Symbol, targetFU dimen.Scalar[dimen.FUnit]) (Layout, error) {
	gid, ok := m.Font.GlyphIndex(sym.Codepoint)
	if !ok {
		if sym.Codepoint == 0 {
			// Null delimiter: an empty box of nullDelimiterSpace width.
			return Layout{Width: m.em(m.C.NullDelimiterSpace)}, nil
		}
		return Layout{}, core.Error(core.EFONT, "layout: no glyph for delimiter U+%04X", sym.Codepoint)
	}
	lay, err := verticalVariant(m, gid, targetFU)
	if err != nil {
		return Layout{}, err
	}
	axis := m.em(m.C.AxisHeight)
	center := lay.Height.Add(lay.Depth).Scale(0.5).Sub(axis)
	lay.Offset = dimen.Point{Y: center}
	return lay, nil
}

// layoutExtendedDelimiter realizes spec §4.4's "Extended delimiter":
// `\big`/`\Big`/`\bigg`/`\Bigg` size a delimiter to a fixed multiple of
// BIG_HEIGHT and present the result as a symbol of the requested atom
// type (carried by the node itself, not by this function).
func layoutExtendedDelimiter(e parse.ExtendedDelimiter, m Metrics, style Style) (Layout, error) {
	target := emToFUnit(m, m.em(e.EnclosedHeight))
	return layoutDelimiterGlyph(m, e.Symbol, target)
}

// layoutDelimited realizes `\left ⟨d0⟩ inner0 \middle ⟨d1⟩ ... \right
// ⟨dn⟩` (spec §4.3/§4.4): every delimiter is sized to enclose the tallest
// inner subformula, per the array delimiter rule generalized to this
// node (`max(height × delimiterFactor, height − delimiterShortFall)`).
func layoutDelimited(d parse.Delimited, m Metrics, style Style) (Layout, error) {
	inners := make([]Layout, len(d.Inners))
	var maxAbove, maxBelow dimen.Scalar[dimen.Px]
	axis := m.em(m.C.AxisHeight)
	for i, nodes := range d.Inners {
		lay, err := typesetList(nodes, m, style)
		if err != nil {
			return Layout{}, err
		}
		inners[i] = lay
		maxAbove = dimen.Max(maxAbove, lay.Height.Sub(axis))
		maxBelow = dimen.Max(maxBelow, axis.Sub(lay.Depth))
	}
	enclosed := dimen.Max(maxAbove, maxBelow).Scale(2)

	factor := m.C.DelimiterFactor
	shortfall := m.em(m.C.DelimiterShortFall)
	delimHeight := dimen.Max(enclosed.Scale(factor), enclosed.Sub(shortfall))
	target := emToFUnit(m, delimHeight)

	contents := []Layout{}
	var cursor dimen.Scalar[dimen.Px]
	for i, delim := range d.Delimiters {
		dl, err := layoutDelimiterGlyph(m, delim, target)
		if err != nil {
			return Layout{}, err
		}
		dl.Offset.X = cursor
		cursor = cursor.Add(dl.Width)
		contents = append(contents, dl)
		if i < len(inners) {
			inners[i].Offset.X = cursor
			cursor = cursor.Add(inners[i].Width)
			contents = append(contents, inners[i])
		}
	}
	return packAbsolute(contents), nil
}
