package layout

import (
	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/mathfont"
)

// sizedGlyph resolves gid to a plain Glyph layout at m's current size.
func sizedGlyph(m Metrics, gid mathfont.GlyphID) (Layout, error) {
	g, err := m.Font.GlyphFromGID(gid)
	if err != nil {
		return Layout{}, core.WrapError(err, core.EFONT, "layout: missing glyph for gid %d", gid)
	}
	return Layout{
		Width:  m.funit(g.Advance),
		Height: m.funit(g.BBox.YMax),
		Depth:  m.funit(g.BBox.YMin),
		Variant: Glyph{
			GID: gid, Font: m.Font, SizePx: m.SizePx,
			Attachment: m.funit(g.Attachment),
			Italics:    m.funit(g.Italics),
		},
	}, nil
}

// emToFUnit converts an Em-tagged target (most MATH constants are
// expressed in Em) into the FUnit scalar the Font.*Variant methods
// expect.
func emToFUnit(m Metrics, target dimen.Scalar[dimen.Em]) dimen.Scalar[dimen.FUnit] {
	return dimen.Convert[dimen.FUnit, dimen.Em](target, dimen.Invert(m.funitToEm))
}

// verticalVariant requests a vertical size variant of gid at least
// targetFU tall and resolves it to a Layout: either the font's single
// replacement glyph, or — when the font must assemble one from parts
// (Variant.IsAssembly) — a VerticalBox stacking each part glyph with its
// declared overlap folded in as a negative vertical offset.
//
// TODO: part overlap accounting assumes uniform glyph widths across
// parts; fonts whose assembly parts carry differing italic corrections
// can produce a slightly misaligned stack at the seams (same open item
// noted for horizontal assembly below).
func verticalVariant(m Metrics, gid mathfont.GlyphID, targetFU dimen.Scalar[dimen.FUnit]) (Layout, error) {
	v := m.Font.VertVariant(gid, targetFU)
	if !v.IsAssembly {
		return sizedGlyph(m, v.Replacement)
	}
	return assembleParts(m, v.Parts, true)
}

// horizontalVariant is verticalVariant's horizontal-direction sibling,
// used for extensible accents (\widehat, \overbrace, ...).
//
// TODO: see verticalVariant's overlap-accounting note; the same
// simplification applies here, transposed to the horizontal axis.
func horizontalVariant(m Metrics, gid mathfont.GlyphID, targetFU dimen.Scalar[dimen.FUnit]) (Layout, error) {
	v := m.Font.HorzVariant(gid, targetFU)
	if !v.IsAssembly {
		return sizedGlyph(m, v.Replacement)
	}
	return assembleParts(m, v.Parts, false)
}

// assembleParts stacks (vertical=true) or lines up (vertical=false) a
// glyph-construction recipe, folding each part's declared Overlap into
// its offset relative to the previous part. Offsets are in the
// renderer's Y-down pixel convention; Height/Depth stay in the
// ascent-positive/descent-negative convention every other Layout uses.
func assembleParts(m Metrics, parts []mathfont.GlyphInstruction, vertical bool) (Layout, error) {
	boxed := make([]Layout, len(parts))
	for i, part := range parts {
		pg, err := sizedGlyph(m, part.GID)
		if err != nil {
			return Layout{}, err
		}
		boxed[i] = pg
	}

	if vertical {
		var cursor, maxWidth, totalExtent dimen.Scalar[dimen.Px]
		firstHeight := boxed[0].Height
		for i, pg := range boxed {
			if i > 0 {
				overlap := m.funit(parts[i].Overlap)
				cursor = cursor.Add(pg.Height.Sub(pg.Depth)).Sub(overlap)
				totalExtent = totalExtent.Sub(overlap)
			}
			boxed[i].Offset = dimen.Point{Y: cursor}
			maxWidth = dimen.Max(maxWidth, pg.Width)
			totalExtent = totalExtent.Add(pg.Height.Sub(pg.Depth))
		}
		depth := firstHeight.Sub(totalExtent)
		return Layout{Width: maxWidth, Height: firstHeight, Depth: depth, Variant: VerticalBox{Contents: boxed}}, nil
	}

	var cursor, maxHeight, maxDepth dimen.Scalar[dimen.Px]
	for i, pg := range boxed {
		if i > 0 {
			overlap := m.funit(parts[i].Overlap)
			cursor = cursor.Sub(overlap)
		}
		boxed[i].Offset = dimen.Point{X: cursor}
		cursor = cursor.Add(pg.Width)
		maxHeight = dimen.Max(maxHeight, pg.Height)
		maxDepth = dimen.Min(maxDepth, pg.Depth)
	}
	return Layout{Width: cursor, Height: maxHeight, Depth: maxDepth, Variant: HorizontalBox{Contents: boxed}}, nil
}
