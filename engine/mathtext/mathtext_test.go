package mathtext

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/mathfont"
	"github.com/npillmayer/mathtyp/engine/mathtext/layout"
	"github.com/npillmayer/mathtyp/engine/mathtext/macro"
)

// stubFont is a minimal mathfont.Font covering the handful of glyphs the
// Engine smoke tests below typeset, mirroring layout's own fakeFont
// fixture but kept local to this package (unexported types don't cross
// package boundaries).
type stubFont struct {
	gids map[rune]mathfont.GlyphID
}

func newStubFont() *stubFont {
	return &stubFont{gids: map[rune]mathfont.GlyphID{'1': 1, '+': 2, '2': 3, 'x': 4}}
}

func (f *stubFont) GlyphIndex(r rune) (mathfont.GlyphID, bool) {
	g, ok := f.gids[r]
	return g, ok
}

func (f *stubFont) GlyphFromGID(gid mathfont.GlyphID) (mathfont.Glyph, error) {
	for _, g := range f.gids {
		if g == gid {
			return mathfont.Glyph{
				GID:     gid,
				BBox:    mathfont.BBox{XMax: dimen.New[dimen.FUnit](500), YMax: dimen.New[dimen.FUnit](650)},
				Advance: dimen.New[dimen.FUnit](500),
			}, nil
		}
	}
	return mathfont.Glyph{}, core.Error(core.EFONT, "stubFont: no glyph for gid %d", gid)
}

func (f *stubFont) KernFor(gid mathfont.GlyphID, height dimen.Scalar[dimen.FUnit], corner mathfont.Corner) (dimen.Scalar[dimen.FUnit], bool) {
	return 0, false
}

func (f *stubFont) Italics(gid mathfont.GlyphID) dimen.Scalar[dimen.FUnit]    { return 0 }
func (f *stubFont) Attachment(gid mathfont.GlyphID) dimen.Scalar[dimen.FUnit] { return 0 }

func (f *stubFont) Constants(fontUnitsToEm dimen.Ratio[dimen.Em, dimen.FUnit]) mathfont.Constants {
	return mathfont.DefaultConstants()
}

func (f *stubFont) FontUnitsToEm() dimen.Ratio[dimen.Em, dimen.FUnit] {
	return dimen.NewRatio[dimen.Em, dimen.FUnit](1.0 / 1000.0)
}

func (f *stubFont) HorzVariant(gid mathfont.GlyphID, width dimen.Scalar[dimen.FUnit]) mathfont.Variant {
	return mathfont.Variant{Replacement: gid}
}

func (f *stubFont) VertVariant(gid mathfont.GlyphID, height dimen.Scalar[dimen.FUnit]) mathfont.Variant {
	return mathfont.Variant{Replacement: gid}
}

func TestEngine_TypesetEndToEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	e := New(newStubFont(), 10.0)
	lay, err := e.Typeset("1+1")
	require.NoError(t, err)
	require.NotNil(t, lay)
	assert.Greater(t, float64(lay.Width), 0.0)
}

func TestEngine_TypesetPropagatesParseError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	e := New(newStubFont(), 10.0)
	_, err := e.Typeset(`\left(x`)
	assert.Error(t, err)
}

func TestEngine_WithMacrosExpandsBeforeParsing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	macros := macro.NewCollection()
	require.NoError(t, macros.Define("one", 0, "1"))
	e := New(newStubFont(), 10.0, WithMacros(macros))

	lay, err := e.Typeset(`\one+\one`)
	require.NoError(t, err)
	hb, ok := lay.Variant.(layout.HorizontalBox)
	require.True(t, ok)
	assert.NotEmpty(t, hb.Contents)
}

func TestEngine_WithStyleAffectsLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	display := New(newStubFont(), 10.0, WithStyle(layout.Display))
	text := New(newStubFont(), 10.0, WithStyle(layout.Text))

	dl, err := display.Typeset(`x`)
	require.NoError(t, err)
	tl, err := text.Typeset(`x`)
	require.NoError(t, err)
	// Both must lay out without error; style is threaded through but a
	// single bare symbol's box width is style-invariant here, so only
	// non-error and non-nil are asserted.
	assert.NotNil(t, dl)
	assert.NotNil(t, tl)
}

func TestEngine_Font(t *testing.T) {
	font := newStubFont()
	e := New(font, 10.0)
	assert.Same(t, font, e.Font())
}
