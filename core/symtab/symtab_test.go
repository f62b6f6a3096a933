package symtab

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestLookupKnownSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	sym, ok := Lookup("alpha")
	assert.True(t, ok)
	assert.Equal(t, rune(0x3B1), sym.Codepoint)
	assert.Equal(t, Alpha, sym.Category)
	//
	sym, ok = Lookup("sum")
	assert.True(t, ok)
	assert.Equal(t, Operator, sym.Category)
	assert.True(t, sym.WithLimits)
	//
	sym, ok = Lookup("int")
	assert.True(t, ok)
	assert.Equal(t, Operator, sym.Category)
	assert.False(t, sym.WithLimits, "\\int does not take limits by default")
}

func TestLookupUnknown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	_, ok := Lookup("notasymbol")
	assert.False(t, ok)
}

func TestNamesAreSorted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	names := Names()
	assert.True(t, len(names) > 0)
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1], names[i])
	}
}

func TestClassifyChar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	cat, ok := ClassifyChar('+')
	assert.True(t, ok)
	assert.Equal(t, Binary, cat)
	//
	cat, ok = ClassifyChar('(')
	assert.True(t, ok)
	assert.Equal(t, Open, cat)
	//
	cat, ok = ClassifyChar('a')
	assert.True(t, ok)
	assert.Equal(t, Alpha, cat)
	//
	_, ok = ClassifyChar('#')
	assert.False(t, ok)
}

func TestDelimiterRoles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	lbrace, _ := Lookup("lbrace")
	assert.True(t, lbrace.IsOpenDelimiter())
	assert.False(t, lbrace.IsCloseDelimiter())
	//
	vert, _ := Lookup("vert")
	assert.True(t, vert.IsOpenDelimiter())
	assert.True(t, vert.IsCloseDelimiter())
	assert.True(t, vert.IsMiddleDelimiter())
}
