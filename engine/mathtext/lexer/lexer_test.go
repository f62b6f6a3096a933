package lexer

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestSymbolsAndWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	l := New("a + b")
	assert.Equal(t, Token{Kind: Symbol, Char: 'a'}, l.Current())
	assert.Equal(t, Token{Kind: WhiteSpace}, l.Next())
	assert.Equal(t, Token{Kind: Symbol, Char: '+'}, l.Next())
	assert.Equal(t, Token{Kind: WhiteSpace}, l.Next())
	assert.Equal(t, Token{Kind: Symbol, Char: 'b'}, l.Next())
	assert.Equal(t, Token{Kind: EOF}, l.Next())
}

func TestControlSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	l := New(`\alpha+\,x`)
	assert.Equal(t, Token{Kind: Command, Name: "alpha"}, l.Current())
	assert.Equal(t, Token{Kind: Symbol, Char: '+'}, l.Next())
	assert.Equal(t, Token{Kind: Command, Name: ","}, l.Next())
	assert.Equal(t, Token{Kind: Symbol, Char: 'x'}, l.Next())
}

func TestControlSequenceEatsTrailingWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	l := New(`\sin   x`)
	assert.Equal(t, Token{Kind: Command, Name: "sin"}, l.Current())
	assert.Equal(t, Token{Kind: Symbol, Char: 'x'}, l.Next())
}

func TestPrimes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	l := New(`x'`)
	assert.Equal(t, Token{Kind: Symbol, Char: 'x'}, l.Current())
	assert.Equal(t, Token{Kind: Command, Name: "prime"}, l.Next())
	//
	l = New(`x''`)
	l.Next()
	assert.Equal(t, Token{Kind: Command, Name: "dprime"}, l.Current())
	//
	l = New(`x'''`)
	l.Next()
	assert.Equal(t, Token{Kind: Command, Name: "trprime"}, l.Current())
}

func TestEndsExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	assert.True(t, Token{Kind: EOF}.EndsExpression())
	assert.True(t, Token{Kind: Symbol, Char: '}'}.EndsExpression())
	assert.True(t, Token{Kind: Command, Name: "right"}.EndsExpression())
	assert.False(t, Token{Kind: Command, Name: "frac"}.EndsExpression())
	assert.False(t, Token{Kind: Symbol, Char: 'x'}.EndsExpression())
}

func TestGroup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	l := New(`{a+{b}}c`)
	inner, ok := l.Group()
	assert.True(t, ok)
	assert.Equal(t, "a+{b}", inner)
	assert.Equal(t, Token{Kind: Symbol, Char: 'c'}, l.Current())
}

func TestGroupUnterminated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	l := New(`{a`)
	_, ok := l.Group()
	assert.False(t, ok)
}

func TestAlphanumeric(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	l := New(`abc123+x`)
	s := l.Alphanumeric()
	assert.Equal(t, "abc123", s)
	assert.Equal(t, Token{Kind: Symbol, Char: '+'}, l.Current())
}

func TestDimension(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()
	//
	l := New(`1.5em x`)
	d, ok := l.Dimension()
	assert.True(t, ok)
	assert.Equal(t, Dimension{Value: 1.5, Unit: "em"}, d)
	l.ConsumeWhitespace()
	assert.Equal(t, Token{Kind: Symbol, Char: 'x'}, l.Current())
}
