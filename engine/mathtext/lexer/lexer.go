/*
Package lexer turns TeX-flavored math source into a token stream: control
sequences, bare symbols, whitespace runs, and EOF. It deliberately knows
nothing about what a control sequence means — that's the parser's job
(spec §2) — it only recognizes where one starts and ends.

Grounded on original_source/src/parser/lexer.rs, translated from a
borrow-checked `&str` cursor into an idiomatic Go pull iterator: Next()
advances and returns the new current token, mirroring tyse's khipukamayuq
word-breaker pipeline shape (advance-then-inspect) rather than a
channel-based scanner, since math source is short enough that a channel
would only add synchronization overhead for no benefit.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func trace() tracing.Trace {
	return gtrace.CoreTracer
}

// Kind classifies a Token.
type Kind int8

// Token kinds.
const (
	EOF Kind = iota
	Command
	Symbol
	WhiteSpace
)

func (k Kind) String() string {
	switch k {
	case Command:
		return "Command"
	case Symbol:
		return "Symbol"
	case WhiteSpace:
		return "WhiteSpace"
	}
	return "EOF"
}

// Token is the lexer's single output type. For Kind == Command, Name
// holds the control-sequence name without its leading backslash
// (including the single-character names a non-alphabetic escape
// produces, e.g. `\,`). For Kind == Symbol, Char holds the rune.
type Token struct {
	Kind Kind
	Name string
	Char rune
}

// EndsExpression reports whether tok terminates an implicit group the
// way TeXbook-derived grammars expect: end of input, a closing brace, or
// one of the handful of control words that always close whatever group
// is open (\right, \middle, \\, \end, \cr).
func (t Token) EndsExpression() bool {
	switch t.Kind {
	case EOF:
		return true
	case Symbol:
		return t.Char == '}'
	case Command:
		switch t.Name {
		case "right", "middle", "\\", "end", "cr":
			return true
		}
	}
	return false
}

func (t Token) String() string {
	switch t.Kind {
	case Command:
		return `\` + t.Name
	case Symbol:
		return string(t.Char)
	case WhiteSpace:
		return " "
	}
	return "EOF"
}

// Dimension is an explicit length literal as lexed after a control
// sequence that expects one (e.g. \kern, \hspace). Only the two units
// the source grammar recognizes are supported; a third unit is treated
// as "not a dimension" by Lexer.Dimension.
type Dimension struct {
	Value float64
	Unit  string // "em" or "px"
}

// Lexer is a pull-based tokenizer over a UTF-8 string. The zero value is
// not usable; construct with New.
type Lexer struct {
	input   string // remaining, unconsumed input
	current Token
}

// New creates a Lexer positioned at the first token of input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.Next()
	return l
}

// Current returns the most recently lexed token without advancing.
func (l *Lexer) Current() Token {
	return l.current
}

// Next advances the lexer by one token and returns it.
func (l *Lexer) Next() Token {
	r, ok := l.peekRune()
	switch {
	case !ok:
		l.current = Token{Kind: EOF}
	case unicode.IsSpace(r):
		l.advanceWhitespace()
		l.current = Token{Kind: WhiteSpace}
	case r == '\\':
		l.advanceRune()
		l.current = l.controlSequence()
	case r == '\'':
		l.advanceRune()
		l.current = l.sequenceOfPrimes()
	default:
		l.advanceRune()
		l.current = Token{Kind: Symbol, Char: r}
	}
	trace().Debugf("lexer: %v", l.current)
	return l.current
}

// ConsumeWhitespace skips the current token if it is whitespace and
// advances to the first non-whitespace token. Idempotent.
func (l *Lexer) ConsumeWhitespace() {
	if l.current.Kind != WhiteSpace {
		return
	}
	l.Next()
}

func (l *Lexer) peekRune() (rune, bool) {
	if len(l.input) == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.input)
	return r, true
}

func (l *Lexer) advanceRune() {
	if len(l.input) == 0 {
		return
	}
	_, size := utf8.DecodeRuneInString(l.input)
	l.input = l.input[size:]
}

func (l *Lexer) advanceWhitespace() {
	for {
		r, ok := l.peekRune()
		if !ok || !unicode.IsSpace(r) {
			return
		}
		l.advanceRune()
	}
}

// controlSequence lexes a control word or a single-character control
// symbol. It assumes the leading backslash has already been consumed.
func (l *Lexer) controlSequence() Token {
	r, ok := l.peekRune()
	if !ok {
		return Token{Kind: EOF}
	}
	if !unicode.IsLetter(r) {
		l.advanceRune()
		return Token{Kind: Command, Name: string(r)}
	}
	start := l.input
	n := 0
	for {
		r, ok := l.peekRune()
		if !ok || !unicode.IsLetter(r) {
			break
		}
		l.advanceRune()
		n += utf8.RuneLen(r)
	}
	l.advanceWhitespace()
	return Token{Kind: Command, Name: start[:n]}
}

// sequenceOfPrimes folds a run of ASCII apostrophes into a single prime,
// double-prime, or triple-prime control word, the same substitution
// LaTeX performs. It assumes the first apostrophe has already been
// consumed.
func (l *Lexer) sequenceOfPrimes() Token {
	r, ok := l.peekRune()
	if !ok || r != '\'' {
		return Token{Kind: Command, Name: "prime"}
	}
	l.advanceRune()
	r, ok = l.peekRune()
	if !ok || r != '\'' {
		return Token{Kind: Command, Name: "dprime"}
	}
	l.advanceRune()
	return Token{Kind: Command, Name: "trprime"}
}

// Group expects the current token to be '{' and returns the verbatim
// source text between it and its matching close brace, leaving the
// lexer positioned just after the closing brace. Escaped braces (\{,
// \}) do not count towards nesting.
func (l *Lexer) Group() (string, bool) {
	l.ConsumeWhitespace()
	if l.current.Kind != Symbol || l.current.Char != '{' {
		return "", false
	}
	depth := 1
	noEscape := true
	i := 0
	for i < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[i:])
		if noEscape {
			switch r {
			case '{':
				depth++
			case '}':
				depth--
			case '\\':
				noEscape = false
			}
		} else {
			noEscape = true
		}
		i += size
		if depth == 0 {
			break
		}
	}
	if depth != 0 {
		return "", false
	}
	inner := l.input[:i-1]
	l.input = l.input[i:]
	l.Next()
	return inner, true
}

// Alphanumeric consumes a maximal run of alphanumeric runes starting at
// the current token, returning "" if the current token isn't one.
func (l *Lexer) Alphanumeric() string {
	if l.current.Kind != Symbol || !unicode.IsLetter(l.current.Char) && !unicode.IsDigit(l.current.Char) {
		return ""
	}
	var sb strings.Builder
	sb.WriteRune(l.current.Char)
	for {
		r, ok := l.peekRune()
		if !ok || (!unicode.IsLetter(r) && !unicode.IsDigit(r)) {
			break
		}
		sb.WriteRune(r)
		l.advanceRune()
	}
	l.Next()
	return sb.String()
}

// Dimension parses an explicit length literal (e.g. "1.5em", "12px")
// starting at the current token. It assumes ConsumeWhitespace has
// already been called if needed.
func (l *Lexer) Dimension() (Dimension, bool) {
	isFloatChar := func(r rune) bool {
		return (r >= '0' && r <= '9') || r == '-' || r == '+' || r == ' ' || r == '.'
	}
	if l.current.Kind != Symbol || !isFloatChar(l.current.Char) {
		return Dimension{}, false
	}
	var sb strings.Builder
	sb.WriteRune(l.current.Char)
	for {
		r, ok := l.peekRune()
		if !ok || !isFloatChar(r) {
			break
		}
		sb.WriteRune(r)
		l.advanceRune()
	}
	numStr := strings.ReplaceAll(sb.String(), " ", "")
	val, ok := parseFloat(numStr)
	if !ok {
		return Dimension{}, false
	}
	l.ConsumeWhitespace()
	if len(l.input) < 2 {
		return Dimension{}, false
	}
	unit := l.input[:2]
	l.input = l.input[2:]
	l.Next()
	switch unit {
	case "em", "px":
		return Dimension{Value: val, Unit: unit}, true
	}
	return Dimension{}, false
}
