package otfont

import (
	"fmt"
	"io/ioutil"

	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/mathfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font is the concrete mathfont.Font implementation over an on-disk
// OpenType/TrueType font. It leans on golang.org/x/image/font/sfnt for
// cmap, advance-width and glyph-outline access (general glyph-outline
// reading is not this module's concern to re-implement, mirroring tyse's
// own core/font package), and on our own math.go parser for the MATH
// table's three subtables, which x/image/font/sfnt's parsed model
// doesn't surface.
type Font struct {
	name       string
	raw        fontBinSegm // whole font file, resident; MATH table is tiny
	sf         *sfnt.Font
	buf        sfnt.Buffer
	unitsPerEm sfnt.Units

	mathTable     fontBinSegm // sliced view into raw, or nil if absent
	constantsOff  int
	glyphInfoOff  int
	variantsOff   int
	hasMath       bool
}

// Parse reads an OpenType/TrueType font from raw bytes and wraps it as a
// mathfont.Font. It returns core.EFONT if the font carries no MATH table
// — such a font cannot serve as a math font (spec §6).
func Parse(name string, raw []byte) (*Font, error) {
	sf, err := sfnt.Parse(raw)
	if err != nil {
		return nil, core.Error(core.EFONT, "otfont: cannot parse font %s: %s", name, err.Error())
	}
	f := &Font{
		name: name,
		raw:  fontBinSegm(raw),
		sf:   sf,
	}
	upm, err := sf.UnitsPerEm()
	if err != nil {
		return nil, core.Error(core.EFONT, "otfont: font %s has no unitsPerEm: %s", name, err.Error())
	}
	f.unitsPerEm = upm
	if err := f.locateMathTable(); err != nil {
		trace().Errorf("otfont: font %s has no usable MATH table: %s", name, err.Error())
		return f, core.Error(core.EFONT, "otfont: font %s is not a math font", name)
	}
	return f, nil
}

// LoadFile reads a font file from disk and parses it as a math font.
func LoadFile(path string) (*Font, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, core.Error(core.EFONT, "otfont: cannot read font file %s: %s", path, err.Error())
	}
	return Parse(path, raw)
}

// locateMathTable walks the sfnt table directory by hand (offset table at
// byte 0, table records starting at byte 12) to find the 'MATH' tag, then
// reads its three subtable offsets. Grounded on tyse's core/font/ot
// sequential-offset navigation idiom.
func (f *Font) locateMathTable() error {
	numTables, err := f.raw.u16(4)
	if err != nil {
		return err
	}
	for i := 0; i < int(numTables); i++ {
		rec := 12 + i*16
		tagBytes, err := f.raw.view(rec, 4)
		if err != nil {
			return err
		}
		if string(tagBytes) != "MATH" {
			continue
		}
		offset, err := f.raw.u32(rec + 8)
		if err != nil {
			return err
		}
		length, err := f.raw.u32(rec + 12)
		if err != nil {
			return err
		}
		table, err := f.raw.view(int(offset), int(length))
		if err != nil {
			return err
		}
		f.mathTable = fontBinSegm(table)
		constOff, err := f.mathTable.u16(4)
		if err != nil {
			return err
		}
		infoOff, err := f.mathTable.u16(6)
		if err != nil {
			return err
		}
		varOff, err := f.mathTable.u16(8)
		if err != nil {
			return err
		}
		f.constantsOff = int(constOff)
		f.glyphInfoOff = int(infoOff)
		f.variantsOff = int(varOff)
		f.hasMath = true
		return nil
	}
	return errBufferBounds
}

// GlyphIndex implements mathfont.Font.
func (f *Font) GlyphIndex(codepoint rune) (mathfont.GlyphID, bool) {
	gid, err := f.sf.GlyphIndex(&f.buf, codepoint)
	if err != nil || gid == 0 {
		return 0, false
	}
	return mathfont.GlyphID(gid), true
}

// GlyphFromGID implements mathfont.Font.
func (f *Font) GlyphFromGID(gid mathfont.GlyphID) (mathfont.Glyph, error) {
	sfGid := sfnt.GlyphIndex(gid)
	advance, err := f.sf.GlyphAdvance(&f.buf, sfGid, fixed.Int26_6(f.unitsPerEm)<<6, font.HintingNone)
	if err != nil {
		return mathfont.Glyph{}, core.Error(core.EFONT, "otfont: glyph %d: %s", gid, err.Error())
	}
	segments, err := f.sf.LoadGlyph(&f.buf, sfGid, fixed.Int26_6(f.unitsPerEm)<<6, nil)
	var bbox mathfont.BBox
	if err == nil {
		xmin, ymin, xmax, ymax := fixed.Int26_6(0), fixed.Int26_6(0), fixed.Int26_6(0), fixed.Int26_6(0)
		first := true
		for _, seg := range segments {
			// Only the segment's terminal point is taken: Args[0] for
			// MoveTo/LineTo, Args[1] for QuadTo, Args[2] for CubeTo.
			p := seg.Args[0]
			switch seg.Op {
			case sfnt.SegmentOpQuadTo:
				p = seg.Args[1]
			case sfnt.SegmentOpCubeTo:
				p = seg.Args[2]
			}
			if first {
				xmin, xmax, ymin, ymax = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			if p.X < xmin {
				xmin = p.X
			}
			if p.X > xmax {
				xmax = p.X
			}
			if p.Y < ymin {
				ymin = p.Y
			}
			if p.Y > ymax {
				ymax = p.Y
			}
		}
		bbox = mathfont.BBox{
			XMin: dimen.New[dimen.FUnit](float64(xmin) / 64),
			YMin: dimen.New[dimen.FUnit](float64(ymin) / 64),
			XMax: dimen.New[dimen.FUnit](float64(xmax) / 64),
			YMax: dimen.New[dimen.FUnit](float64(ymax) / 64),
		}
	}
	return mathfont.Glyph{
		GID:        gid,
		BBox:       bbox,
		Advance:    dimen.New[dimen.FUnit](float64(advance) / 64),
		Italics:    f.Italics(gid),
		Attachment: f.Attachment(gid),
	}, nil
}

// KernFor implements mathfont.Font by consulting the MathGlyphInfo
// MathKernInfo subtable. Returns ok=false when the glyph carries no kern
// table for the requested corner, which the layout engine treats as a
// zero kern (spec §8).
func (f *Font) KernFor(gid mathfont.GlyphID, height dimen.Scalar[dimen.FUnit], corner mathfont.Corner) (dimen.Scalar[dimen.FUnit], bool) {
	if !f.hasMath {
		return dimen.Zero[dimen.FUnit](), false
	}
	k, ok := f.mathKern(gid, corner)
	if !ok {
		return dimen.Zero[dimen.FUnit](), false
	}
	return k.valueAt(height), true
}

// Italics implements mathfont.Font.
func (f *Font) Italics(gid mathfont.GlyphID) dimen.Scalar[dimen.FUnit] {
	if !f.hasMath {
		return dimen.Zero[dimen.FUnit]()
	}
	v, _ := f.glyphItalicsCorrection(gid)
	return dimen.New[dimen.FUnit](float64(v))
}

// Attachment implements mathfont.Font.
func (f *Font) Attachment(gid mathfont.GlyphID) dimen.Scalar[dimen.FUnit] {
	if !f.hasMath {
		return dimen.Zero[dimen.FUnit]()
	}
	v, ok := f.glyphTopAccentAttachment(gid)
	if !ok {
		// spec §8: fall back to half the glyph's advance width.
		adv, err := f.sf.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), fixed.Int26_6(f.unitsPerEm)<<6, font.HintingNone)
		if err != nil {
			return dimen.Zero[dimen.FUnit]()
		}
		return dimen.New[dimen.FUnit](float64(adv) / 64).Scale(0.5)
	}
	return dimen.New[dimen.FUnit](float64(v))
}

// Constants implements mathfont.Font.
func (f *Font) Constants(toEm dimen.Ratio[dimen.Em, dimen.FUnit]) mathfont.Constants {
	if !f.hasMath {
		return mathfont.DefaultConstants()
	}
	mv := parseMathConstants(f.mathTable, f.constantsOff)
	return mv.toConstants(toEm)
}

// FontUnitsToEm implements mathfont.Font.
func (f *Font) FontUnitsToEm() dimen.Ratio[dimen.Em, dimen.FUnit] {
	return dimen.NewRatio[dimen.Em, dimen.FUnit](1.0 / float64(f.unitsPerEm))
}

// HorzVariant implements mathfont.Font.
func (f *Font) HorzVariant(gid mathfont.GlyphID, width dimen.Scalar[dimen.FUnit]) mathfont.Variant {
	return f.variantFor(gid, width, mathfont.Horizontal)
}

// VertVariant implements mathfont.Font.
func (f *Font) VertVariant(gid mathfont.GlyphID, height dimen.Scalar[dimen.FUnit]) mathfont.Variant {
	return f.variantFor(gid, height, mathfont.Vertical)
}

func (f *Font) variantFor(gid mathfont.GlyphID, want dimen.Scalar[dimen.FUnit], dir mathfont.Direction) mathfont.Variant {
	if !f.hasMath {
		return mathfont.Variant{Replacement: gid, Direction: dir}
	}
	v, ok := f.glyphVariants(gid, want, dir)
	if !ok {
		return mathfont.Variant{Replacement: gid, Direction: dir}
	}
	return v
}

func (f *Font) String() string {
	return fmt.Sprintf("otfont.Font(%s)", f.name)
}
