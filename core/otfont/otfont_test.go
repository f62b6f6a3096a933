package otfont

import (
	"testing"

	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseRejectsGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	_, err := Parse("garbage", []byte("not a font file"))
	assert.Error(t, err)
	assert.Equal(t, core.EFONT, core.Code(err))
}

func TestCoverageIndexFormat1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	// format=1, glyphCount=3, glyphs {10, 20, 30}
	buf := fontBinSegm{0, 1, 0, 3, 0, 10, 0, 20, 0, 30}
	idx, ok := coverageIndex(buf, 0, 20)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	//
	_, ok = coverageIndex(buf, 0, 99)
	assert.False(t, ok)
}

func TestCoverageIndexFormat2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	// format=2, rangeCount=1, range{start=100,end=110,startIdx=0}
	buf := fontBinSegm{0, 2, 0, 1, 0, 100, 0, 110, 0, 0}
	idx, ok := coverageIndex(buf, 0, 105)
	assert.True(t, ok)
	assert.Equal(t, 5, idx)
}

func TestMathKernStepFunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	kt := mathKernTable{
		heights: []int16{100, 200},
		values:  []int16{10, 20, 30},
	}
	assert.Equal(t, float64(10), kt.valueAt(dimen.New[dimen.FUnit](50)).Float64())
	assert.Equal(t, float64(20), kt.valueAt(dimen.New[dimen.FUnit](150)).Float64())
	assert.Equal(t, float64(30), kt.valueAt(dimen.New[dimen.FUnit](250)).Float64())
}
