package layout

import (
	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

// layoutFontEffect realizes `\underline` (spec §4.4's "straightforward
// transformations" group): the inner list boxed with a rule struck below
// its natural depth.
func layoutFontEffect(f parse.FontEffect, m Metrics, style Style) (Layout, error) {
	inner, err := typesetList(f.Inner, m, style)
	if err != nil {
		return Layout{}, err
	}
	c := m.C
	gap := m.em(c.RadicalVerticalGap)
	thickness := m.em(c.RadicalRuleThickness)

	rule := Layout{Width: inner.Width, Height: thickness, Variant: Rule{}}
	below := inner.Depth.Neg().Add(gap)
	rule.Offset.Y = below
	return packAbsolute([]Layout{inner, rule}), nil
}

// layoutPlainText iterates a `\text{}`/`\mbox{}` run character by
// character (spec §4.4: "PlainText iterates character-by-character
// producing ordinary glyphs; ASCII whitespace becomes a medium space").
func layoutPlainText(p parse.PlainText, m Metrics, style Style) (Layout, error) {
	text := p.Text.String()
	var contents []Layout
	for _, r := range text {
		if r <= ' ' {
			contents = append(contents, kernBox(m.em(dimen.New[dimen.Em](4.0/18.0))))
			continue
		}
		gid, ok := m.Font.GlyphIndex(r)
		if !ok {
			return Layout{}, core.Error(core.EFONT, "layout: no glyph for text codepoint U+%04X", r)
		}
		g, err := sizedGlyph(m, gid)
		if err != nil {
			return Layout{}, err
		}
		contents = append(contents, g)
	}
	return hbox(contents), nil
}

// layoutColor realizes `\color{...}{body}` as a Color-wrapped inner box.
func layoutColor(c parse.Color, m Metrics, style Style) (Layout, error) {
	inner, err := typesetList(c.Inner, m, style)
	if err != nil {
		return Layout{}, err
	}
	return Layout{
		Width: inner.Width, Height: inner.Height, Depth: inner.Depth,
		Variant: Color{R: c.R, G: c.G, B: c.B, A: c.A, Inner: inner},
	}, nil
}

// layoutRule realizes an explicit `\rule{width}{height}` filled box.
func layoutRule(r parse.Rule, m Metrics) (Layout, error) {
	return Layout{Width: m.em(r.Width), Height: m.em(r.Height), Variant: Rule{}}, nil
}
