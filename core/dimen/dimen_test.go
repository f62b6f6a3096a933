package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestScalarArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	a := New[Em](1.5)
	b := New[Em](0.5)
	assert.Equal(t, New[Em](2.0), a.Add(b))
	assert.Equal(t, New[Em](1.0), a.Sub(b))
	assert.Equal(t, New[Em](-1.5), a.Neg())
}

func TestConvertAndDivide(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	fu := New[FUnit](2048)
	ratio := NewRatio[Em, FUnit](1.0 / 2048.0) // a typical unitsPerEm of 2048
	em := Convert(fu, ratio)
	assert.InDelta(t, 1.0, em.Float64(), 1e-9)
	//
	back := DivideBy[FUnit, Em](New[FUnit](100), New[Em](1))
	assert.InDelta(t, 100.0, back.Float64(), 1e-9)
	assert.InDelta(t, 0.01, Invert(back).Float64(), 1e-9)
}

func TestMinMaxClamp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	assert.Equal(t, New[Px](3), Min(New[Px](3), New[Px](7)))
	assert.Equal(t, New[Px](7), Max(New[Px](3), New[Px](7)))
	assert.Equal(t, New[Px](5), Clamp(New[Px](10), New[Px](0), New[Px](5)))
	assert.Equal(t, New[Px](0), Clamp(New[Px](-10), New[Px](0), New[Px](5)))
}

func TestRectDimensions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	r := Rect{
		TopLeft:     Point{X: New[Px](1), Y: New[Px](2)},
		BottomRight: Point{X: New[Px](11), Y: New[Px](9)},
	}
	assert.Equal(t, New[Px](10), r.Width())
	assert.Equal(t, New[Px](7), r.Height())
}
