package layout

import (
	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/mathfont"
	"github.com/npillmayer/mathtyp/core/symtab"
	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

// Typeset is the layout engine's single entry point (spec §4.4): a parse
// list, a starting style, a font, and a font size in pixels-per-em in,
// producing one HorizontalBox summarizing the whole formula.
func Typeset(nodes []parse.Node, style Style, font mathfont.Font, fontSizePx float64) (Layout, error) {
	m := NewMetrics(font, fontSizePx)
	return typesetList(nodes, m, style)
}

// typesetList runs the driver loop (spec §4.4) over one parse list,
// threading an in-list mutable style (StyleChange nodes rewrite it for
// every following sibling) and the "previous atom type" spacing state.
func typesetList(nodes []parse.Node, m Metrics, style Style) (Layout, error) {
	var contents []Layout
	var prevAtom *symtab.Category
	currentStyle := style

	for i, n := range nodes {
		if sc, ok := n.(parse.StyleChange); ok {
			currentStyle = sc.Style
			continue
		}

		cat := n.AtomType()
		var nextCat *symtab.Category
		if j := nextRealIndex(nodes, i+1); j >= 0 {
			c := nodes[j].AtomType()
			nextCat = &c
		}
		eff := effectiveAtomType(cat, prevAtom, nextCat)

		spaced := false
		if prevAtom != nil {
			sp := interAtomSpace(*prevAtom, eff, currentStyle)
			if w := sp.em(); w > 0 {
				contents = append(contents, kernBox(m.em(dimen.New[dimen.Em](w))))
				spaced = true
			}
		}

		lay, err := layoutNode(n, m, currentStyle)
		if err != nil {
			return Layout{}, err
		}

		if !spaced && len(contents) > 0 {
			prevItalics := italicOf(lastNonKern(contents))
			if prevItalics.Float64() > 0 && italicOf(lay).Float64() == 0 {
				contents = append(contents, kernBox(prevItalics))
			}
		}

		contents = append(contents, lay)
		if eff != symtab.Transparent {
			c := eff
			prevAtom = &c
		}
	}
	return hbox(contents), nil
}

// nextRealIndex finds the next index at or after from that is not a
// StyleChange (which contributes no atom to spacing), or -1 if none.
func nextRealIndex(nodes []parse.Node, from int) int {
	for i := from; i < len(nodes); i++ {
		if _, ok := nodes[i].(parse.StyleChange); !ok {
			return i
		}
	}
	return -1
}

// lastNonKern returns the last content entry, skipping trailing pure
// Kern entries this function itself may have just appended, so italic
// correction looks at the actual previous glyph/box rather than at a
// space we just inserted.
func lastNonKern(contents []Layout) Layout {
	for i := len(contents) - 1; i >= 0; i-- {
		if _, ok := contents[i].Variant.(Kern); !ok {
			return contents[i]
		}
	}
	return Layout{}
}

// italicOf extracts a Glyph layout's italic correction, or zero for any
// other variant.
func italicOf(l Layout) dimen.Scalar[dimen.Px] {
	if g, ok := l.Variant.(Glyph); ok {
		return g.Italics
	}
	return 0
}

// kernBox wraps a horizontal distance as a zero-height Kern layout.
func kernBox(width dimen.Scalar[dimen.Px]) Layout {
	return Layout{Width: width, Variant: Kern{}}
}

// layoutNode dispatches a single parse node to its specialized
// sub-routine (spec §4.4 step 4). Each sub-routine lives in its own file
// alongside the node kind it serves.
func layoutNode(n parse.Node, m Metrics, style Style) (Layout, error) {
	switch node := n.(type) {
	case parse.Symbol:
		return layoutSymbol(node, m, style)
	case parse.Scripts:
		return layoutScripts(node, m, style)
	case parse.Radical:
		return layoutRadical(node, m, style)
	case parse.Delimited:
		return layoutDelimited(node, m, style)
	case parse.ExtendedDelimiter:
		return layoutExtendedDelimiter(node, m, style)
	case parse.Accent:
		return layoutAccent(node, m, style)
	case parse.GenFraction:
		return layoutFraction(node, m, style)
	case parse.Stack:
		return layoutStack(node, m, style)
	case parse.Array:
		return layoutArray(node, m, style)
	case parse.Group:
		return typesetList(node.Nodes, m, style)
	case parse.AtomChange:
		return typesetList(node.Inner, m, style)
	case parse.FontEffect:
		return layoutFontEffect(node, m, style)
	case parse.PlainText:
		return layoutPlainText(node, m, style)
	case parse.Kerning:
		return kernBox(m.em(node.Amount)), nil
	case parse.Color:
		return layoutColor(node, m, style)
	case parse.Rule:
		return layoutRule(node, m)
	case parse.Dummy:
		return Layout{}, nil
	case parse.StyleChange:
		return Layout{}, nil
	}
	return Layout{}, core.Error(core.EINTERNAL, "layout: unhandled parse node %T", n)
}
