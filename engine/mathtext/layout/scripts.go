package layout

import (
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/mathfont"
	"github.com/npillmayer/mathtyp/core/symtab"
	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

// layoutScripts dispatches parse.Scripts to the operator-with-limits
// placement (spec §4.4) when its base is a with-limits operator, or to
// the general corner-script placement otherwise.
func layoutScripts(s parse.Scripts, m Metrics, style Style) (Layout, error) {
	base, err := typesetOne(s.Base, m, style)
	if err != nil {
		return Layout{}, err
	}
	if sym, ok := s.Base.(parse.Symbol); ok && sym.Category == symtab.Operator && sym.WithLimits {
		return layoutLimits(base, s, m, style)
	}
	return layoutCornerScripts(base, s, m, style)
}

// typesetOne lays out a single node directly, so that a simple symbol
// stays a Glyph the math-kern and italic-correction lookups can see. A
// result that already carries an Offset (e.g. an axis-centered large
// operator) is wrapped in an hbox, whose Height/Depth include the shift.
func typesetOne(n parse.Node, m Metrics, style Style) (Layout, error) {
	lay, err := layoutNode(n, m, style)
	if err != nil {
		return Layout{}, err
	}
	if lay.Offset != (dimen.Point{}) {
		return hbox([]Layout{lay}), nil
	}
	return lay, nil
}

// baseGlyphGID extracts the GID of a base layout when it is a plain
// Glyph, for per-corner math-kern lookups; ok is false for composite
// bases (TeX only consults math-kern tables for simple symbols, per
// spec §4.4's "when base and/or script are simple symbols").
func baseGlyphGID(l Layout) (mathfont.GlyphID, bool) {
	if g, ok := l.Variant.(Glyph); ok {
		return g.GID, true
	}
	return 0, false
}

// layoutCornerScripts implements spec §4.4's adjust_up/adjust_down
// formulas and per-corner math-kern lookups.
func layoutCornerScripts(base Layout, s parse.Scripts, m Metrics, style Style) (Layout, error) {
	var sup, sub Layout
	var hasSup, hasSub bool

	if s.Sup != nil {
		l, err := typesetOne(s.Sup, m.atStyle(SuperscriptVariant(style)), SuperscriptVariant(style))
		if err != nil {
			return Layout{}, err
		}
		sup, hasSup = l, true
	}
	if s.Sub != nil {
		l, err := typesetOne(s.Sub, m.atStyle(SubscriptVariant(style)), SubscriptVariant(style))
		if err != nil {
			return Layout{}, err
		}
		sub, hasSub = l, true
	}

	c := m.C
	var adjustUp, adjustDown dimen.Scalar[dimen.Px]

	if hasSup {
		shiftUp := m.em(c.SuperscriptShiftUp)
		if Cramped(style) {
			shiftUp = m.em(c.SuperscriptShiftUpCramped)
		}
		adjustUp = shiftUp
		adjustUp = dimen.Max(adjustUp, base.Height.Sub(m.em(c.SuperscriptBaselineDropMax)))
		adjustUp = dimen.Max(adjustUp, m.em(c.SuperscriptBottomMin).Sub(sup.Depth))
	}
	if hasSub {
		adjustDown = m.em(c.SubscriptShiftDown)
		adjustDown = dimen.Max(adjustDown, sub.Height.Sub(m.em(c.SubscriptTopMax)))
		adjustDown = dimen.Max(adjustDown, m.em(c.SubscriptBaselineDropMin).Sub(base.Depth))
	}
	if hasSup && hasSub {
		gapMin := m.em(c.SubSuperscriptGapMin)
		gap := adjustUp.Add(sup.Depth).Sub(sub.Height.Sub(adjustDown))
		if gap < gapMin {
			shortfall := gapMin.Sub(gap).Scale(0.5)
			adjustUp = adjustUp.Add(shortfall)
			adjustDown = adjustDown.Add(shortfall)
		}
	}

	delta := italicOf(base) // base italic correction, carried onto the superscript
	_, baseIsSymbol := baseGlyphGID(base)

	var supKern, subKern dimen.Scalar[dimen.Px]
	if hasSup {
		supKern = cornerKern(m, base, sup, adjustUp, mathfont.TopRight, mathfont.BottomLeft, baseIsSymbol)
		supKern = supKern.Add(delta)
	}
	if hasSub {
		subKern = cornerKern(m, base, sub, adjustDown.Neg(), mathfont.BottomRight, mathfont.TopLeft, baseIsSymbol)
		if sym, ok := asOperatorSymbolNoLimits(s.Base); ok && sym {
			subKern = subKern.Sub(delta)
		}
	}

	contents := []Layout{base}
	if hasSup {
		sup.Offset = dimen.Point{X: base.Width.Add(supKern), Y: adjustUp.Neg()}
		contents = append(contents, sup)
	}
	if hasSub {
		sub.Offset = dimen.Point{X: base.Width.Add(subKern), Y: adjustDown}
		contents = append(contents, sub)
	}
	return packAbsolute(contents), nil
}

// asOperatorSymbolNoLimits reports whether n is an Operator-category
// symbol without WithLimits set (spec §4.4: "negate [the subscript
// kern] on the subscript when the base is an Operator(false)").
func asOperatorSymbolNoLimits(n parse.Node) (bool, bool) {
	sym, ok := n.(parse.Symbol)
	if !ok {
		return false, false
	}
	return sym.Category == symtab.Operator && !sym.WithLimits, true
}

// cornerKern looks up the math-kern contribution for a script at the
// given (base-corner, script-corner) pair, evaluated at the height where
// the script's edge meets the base's edge after shift is applied. For a
// composite base (baseIsSymbol false) the kern is zero (spec's "when
// base and/or script are simple symbols").
func cornerKern(m Metrics, base, script Layout, shift dimen.Scalar[dimen.Px], baseCorner, scriptCorner mathfont.Corner, baseIsSymbol bool) dimen.Scalar[dimen.Px] {
	if !baseIsSymbol {
		return 0
	}
	baseGID, _ := baseGlyphGID(base)
	heightAtBase := pxToFU(m, shift)
	var kern dimen.Scalar[dimen.Px]
	if k, ok := m.Font.KernFor(baseGID, heightAtBase, baseCorner); ok {
		kern = kern.Add(m.funit(k))
	}
	if scriptGID, ok := baseGlyphGID(script); ok {
		if k, ok := m.Font.KernFor(scriptGID, heightAtBase, scriptCorner); ok {
			kern = kern.Add(m.funit(k))
		}
	}
	return kern
}

// pxToFU converts a pixel scalar back to font design units, for feeding
// the font's height-keyed KernFor table.
func pxToFU(m Metrics, v dimen.Scalar[dimen.Px]) dimen.Scalar[dimen.FUnit] {
	emToFU := dimen.Invert(m.funitToEm)
	pxToEm := dimen.Invert(m.emToPx)
	return dimen.Convert[dimen.FUnit, dimen.Em](dimen.Convert[dimen.Em, dimen.Px](v, pxToEm), emToFU)
}

// packAbsolute wraps already-positioned contents (each Offset already
// resolved relative to the group's own origin) into one Layout whose own
// Width/Height/Depth are the bounding box of the union, per the
// HorizontalBox invariant generalized to free-form offsets.
func packAbsolute(contents []Layout) Layout {
	var width, height, depth dimen.Scalar[dimen.Px]
	for _, c := range contents {
		right := c.Offset.X.Add(c.Width)
		width = dimen.Max(width, right)
		height = dimen.Max(height, c.Offset.Y.Neg().Add(c.Height))
		depth = dimen.Min(depth, c.Offset.Y.Neg().Add(c.Depth))
	}
	return Layout{Width: width, Height: height, Depth: depth, Variant: HorizontalBox{Contents: contents}}
}
