package layout

import (
	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

// layoutAccent realizes spec §4.4's "Accent" paragraph: the accent glyph
// (extended to the base's width first, if extendable) is horizontally
// aligned to the base by their respective attachment points, then
// stacked above (or, if Under, below) the base with a kern that keeps
// a tall base from pushing the accent too high.
func layoutAccent(a parse.Accent, m Metrics, style Style) (Layout, error) {
	nucleusStyle := CrampedVariant(style)
	base, err := typesetList(a.Nucleus, m, nucleusStyle)
	if err != nil {
		return Layout{}, err
	}

	accM := m
	gid, ok := accM.Font.GlyphIndex(a.Symbol.Codepoint)
	if !ok {
		return Layout{}, core.Error(core.EFONT, "layout: no glyph for accent codepoint U+%04X", a.Symbol.Codepoint)
	}

	var accent Layout
	if a.Extendable {
		accent, err = horizontalVariant(accM, gid, emToFUnit(accM, base.Width))
	} else {
		accent, err = sizedGlyph(accM, gid)
	}
	if err != nil {
		return Layout{}, err
	}

	baseAttach := attachmentOf(base)
	accentAttach := attachmentOf(accent)

	var baseOffsetX, accentOffsetX dimen.Scalar[dimen.Px]
	if baseAttach > accentAttach {
		accentOffsetX = baseAttach.Sub(accentAttach)
	} else {
		baseOffsetX = accentAttach.Sub(baseAttach)
	}
	base.Offset.X = baseOffsetX
	accent.Offset.X = accentOffsetX

	c := m.C
	if a.Under {
		capDepth := dimen.Min(base.Depth.Neg(), m.em(c.AccentBaseHeight))
		accent.Offset.Y = capDepth.Add(accent.Height)
	} else {
		capHeight := dimen.Min(base.Height, m.em(c.AccentBaseHeight))
		accent.Offset.Y = accent.Depth.Sub(capHeight)
	}
	return packAbsolute([]Layout{base, accent}), nil
}

// attachmentOf returns l's top-accent attachment in pixels if l is a
// plain glyph with a non-zero one, or the geometric fallback spec §4.4
// names: (advance+italics)/2 for a glyph, width/2 for any composite.
func attachmentOf(l Layout) dimen.Scalar[dimen.Px] {
	if g, ok := l.Variant.(Glyph); ok {
		if g.Attachment != 0 {
			return g.Attachment
		}
		return l.Width.Add(g.Italics).Scale(0.5)
	}
	return l.Width.Scale(0.5)
}
