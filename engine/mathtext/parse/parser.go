package parse

import (
	"strings"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/symtab"
	"github.com/npillmayer/mathtyp/engine/mathtext/lexer"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax29"
)

func trace() tracing.Trace {
	return gtrace.CoreTracer
}

// TerminatorKind is why ParseList stopped. Grounded on spec §4.3's
// six-member terminator set.
type TerminatorKind uint8

// Terminator kinds.
const (
	TermEOF TerminatorKind = iota
	TermBraceGroup
	TermAlign
	TermNewLine
	TermEnv
	TermMiddle
	TermRight
)

// Terminator reports how a ParseList call ended.
type Terminator struct {
	Kind TerminatorKind
	Env  string // populated only for TermEnv: the \end{name} name
}

// Parser performs a straight-line, one-token-at-a-time recursive-descent
// parse (spec §4.3). It owns the lexer and its own small amount of
// threaded state (current font family); it holds no reference back to
// the macro expander, since macro expansion is a wholly separate,
// earlier pass (engine/mathtext/macro.Collection.Expand).
type Parser struct {
	lex    *lexer.Lexer
	family FontFamily
}

// New creates a Parser over already-macro-expanded source.
func New(src string) *Parser {
	return &Parser{lex: lexer.New(src)}
}

// ParseFormula parses src to completion, requiring the result to be
// terminated by end-of-input; any other terminator (a stray `}`, `&`,
// `\right`, ...) is reported as core.EPARSE.
func (p *Parser) ParseFormula() ([]Node, error) {
	nodes, term, err := p.ParseList(TermEOF)
	if err != nil {
		return nil, err
	}
	if term.Kind != TermEOF {
		return nil, core.Error(core.EPARSE, "unexpected %v at top level", term.Kind)
	}
	return nodes, nil
}

// ParseList consumes tokens until it hits a terminator, appending one
// node per iteration (fewer when scripts fold into the previous node,
// more when a prime-fold or a multi-node construct is produced). accept
// lists which terminator kinds the caller is prepared to see; any other
// terminator is a parse error. ParseList consumes the terminator token
// itself (e.g. the closing `}`) before returning.
func (p *Parser) ParseList(accept ...TerminatorKind) ([]Node, Terminator, error) {
	savedFamily := p.family
	defer func() { p.family = savedFamily }()
	var nodes []Node
	for {
		tok := p.lex.Current()
		switch {
		case tok.Kind == lexer.EOF:
			return p.finish(nodes, Terminator{Kind: TermEOF}, accept)
		case tok.Kind == lexer.WhiteSpace:
			p.lex.Next()
			continue
		case tok.Kind == lexer.Symbol && tok.Char == '}':
			p.lex.Next()
			return p.finish(nodes, Terminator{Kind: TermBraceGroup}, accept)
		case tok.Kind == lexer.Symbol && tok.Char == '{':
			p.lex.Next()
			inner, _, err := p.ParseList(TermBraceGroup)
			if err != nil {
				return nil, Terminator{}, err
			}
			nodes = append(nodes, Group{Nodes: inner})
		case tok.Kind == lexer.Symbol && tok.Char == '&':
			p.lex.Next()
			return p.finish(nodes, Terminator{Kind: TermAlign}, accept)
		case tok.Kind == lexer.Command && tok.Name == "\\":
			p.lex.Next()
			return p.finish(nodes, Terminator{Kind: TermNewLine}, accept)
		case tok.Kind == lexer.Command && tok.Name == "middle":
			p.lex.Next()
			return p.finish(nodes, Terminator{Kind: TermMiddle}, accept)
		case tok.Kind == lexer.Command && tok.Name == "right":
			p.lex.Next()
			return p.finish(nodes, Terminator{Kind: TermRight}, accept)
		case tok.Kind == lexer.Command && tok.Name == "end":
			p.lex.Next()
			name, ok := p.lex.Group()
			if !ok {
				return nil, Terminator{}, core.Error(core.EPARSE, `\end expects {environment}`)
			}
			return p.finish(nodes, Terminator{Kind: TermEnv, Env: strings.TrimSpace(name)}, accept)
		case tok.Kind == lexer.Symbol && (tok.Char == '^' || tok.Char == '_'):
			n, err := p.parseScript(nodes, tok.Char == '^')
			if err != nil {
				return nil, Terminator{}, err
			}
			nodes = n
		case tok.Kind == lexer.Command && (tok.Name == "prime" || tok.Name == "dprime" || tok.Name == "trprime"):
			n, err := p.parsePrime(nodes, tok.Name)
			if err != nil {
				return nil, Terminator{}, err
			}
			nodes = n
			p.lex.Next()
		default:
			node, err := p.parseOne()
			if err != nil {
				return nil, Terminator{}, err
			}
			if node != nil {
				nodes = append(nodes, node)
			}
		}
	}
}

func (p *Parser) finish(nodes []Node, term Terminator, accept []TerminatorKind) ([]Node, Terminator, error) {
	for _, k := range accept {
		if k == term.Kind {
			return nodes, term, nil
		}
	}
	return nil, Terminator{}, core.Error(core.EPARSE, "unexpected terminator %v", term.Kind)
}

// parseScript pops base off nodes and attaches sup/sub to it, handling
// the "fill the missing slot, or fail on duplication" rule (spec §4.3).
func (p *Parser) parseScript(nodes []Node, isSuper bool) ([]Node, error) {
	if len(nodes) == 0 {
		return nil, core.Error(core.EPARSE, "script with no base")
	}
	base := nodes[len(nodes)-1]
	nodes = nodes[:len(nodes)-1]

	p.lex.Next()
	arg, err := p.parseRequiredArgument()
	if err != nil {
		return nil, err
	}

	if sc, ok := base.(Scripts); ok {
		if isSuper {
			if sc.Sup != nil {
				return nil, core.Error(core.EPARSE, "duplicate superscript")
			}
			sc.Sup = arg
		} else {
			if sc.Sub != nil {
				return nil, core.Error(core.EPARSE, "duplicate subscript")
			}
			sc.Sub = arg
		}
		return append(nodes, sc), nil
	}
	sc := Scripts{Base: base}
	if isSuper {
		sc.Sup = arg
	} else {
		sc.Sub = arg
	}
	return append(nodes, sc), nil
}

// parsePrime folds a (run of) prime token(s) into a superscript on the
// previous node, the way LaTeX's `x'` means `x^\prime` (a supplemented
// behavior beyond the literal lexer-level apostrophe folding spec §4.1
// already does — see SPEC_FULL.md).
func (p *Parser) parsePrime(nodes []Node, name string) ([]Node, error) {
	if len(nodes) == 0 {
		return nil, core.Error(core.EPARSE, "prime with no base")
	}
	var cp rune
	switch name {
	case "prime":
		cp = '′'
	case "dprime":
		cp = '″'
	default:
		cp = '‴'
	}
	primeNode := Symbol{Codepoint: cp, Category: symtab.Ordinary}
	base := nodes[len(nodes)-1]
	nodes = nodes[:len(nodes)-1]
	if sc, ok := base.(Scripts); ok && sc.Sup == nil {
		sc.Sup = primeNode
		return append(nodes, sc), nil
	}
	return append(nodes, Scripts{Base: base, Sup: primeNode}), nil
}

// parseRequiredArgument reads either a `{...}` group (recursively parsed
// as its own list) or a single following atom, per TeX's "one required
// argument" convention used throughout (scripts, \sqrt's mandatory
// braces notwithstanding, \mathbf X, etc.).
func (p *Parser) parseRequiredArgument() (Node, error) {
	p.lex.ConsumeWhitespace()
	if p.lex.Current().Kind == lexer.Symbol && p.lex.Current().Char == '{' {
		p.lex.Next()
		nodes, _, err := p.ParseList(TermBraceGroup)
		if err != nil {
			return nil, err
		}
		return Group{Nodes: nodes}, nil
	}
	return p.parseOne()
}

// parseOne consumes exactly the tokens for one atom (a bare symbol, or a
// full control-sequence construct) and returns the node it produces.
// Whitespace at the current position must already have been skipped by
// the caller where that matters (ParseList's loop skips it itself).
func (p *Parser) parseOne() (Node, error) {
	tok := p.lex.Current()
	if tok.Kind == lexer.Symbol {
		return p.parseSymbolChar(tok.Char)
	}
	if tok.Kind != lexer.Command {
		p.lex.Next()
		return nil, nil
	}
	name := tok.Name

	if fam, ok := familyFromControlWord(name); ok {
		return p.parseFamilyChange(fam)
	}
	if at, ok := atomChangeFromName(name); ok {
		p.lex.Next()
		arg, err := p.parseRequiredArgument()
		if err != nil {
			return nil, err
		}
		return AtomChange{At: at, Inner: nodesOf(arg)}, nil
	}
	if styleVal, ok := styleFromName(name); ok {
		p.lex.Next()
		return StyleChange{Style: styleVal}, nil
	}
	if space, ok := fixedSpaceFromName(name); ok {
		p.lex.Next()
		return Kerning{Amount: space}, nil
	}

	switch name {
	case "frac", "tfrac", "dfrac":
		return p.parseFraction(name, true, nil)
	case "binom", "tbinom", "dbinom":
		open := Symbol{Codepoint: '(', Category: symtab.Open}
		close := Symbol{Codepoint: ')', Category: symtab.Close}
		return p.parseFraction(name, false, &struct{ l, r Symbol }{open, close})
	case "sqrt":
		return p.parseRadical()
	case "left":
		return p.parseDelimited()
	case "big", "Big", "bigg", "Bigg",
		"bigl", "Bigl", "biggl", "Biggl",
		"bigr", "Bigr", "biggr", "Biggr",
		"bigm", "Bigm", "biggm", "Biggm":
		return p.parseExtendedDelimiter(name)
	case "text", "mbox":
		return p.parseText()
	case "operatorname":
		return p.parseOperatorName()
	case "color":
		return p.parseColor()
	case "begin":
		return p.parseEnvironment()
	case "limits", "nolimits":
		// Handled as a lookahead by the caller that dispatched the
		// preceding operator symbol; seeing one here (no preceding
		// operator on this path) is a no-op consumed silently.
		p.lex.Next()
		return nil, nil
	case "substack":
		return p.parseSubstack()
	case "underline":
		p.lex.Next()
		arg, err := p.parseRequiredArgument()
		if err != nil {
			return nil, err
		}
		return FontEffect{Inner: nodesOf(arg)}, nil
	case "rule":
		return p.parseRule()
	case "kern":
		return p.parseKern()
	}

	sym, ok := symtab.Lookup(name)
	if !ok {
		return nil, core.Error(core.EPARSE, `unrecognized control sequence \%s`, name)
	}
	p.lex.Next()
	node := Symbol{Name: name, Codepoint: sym.Codepoint, Category: sym.Category, WithLimits: sym.WithLimits}
	return p.maybeForceLimits(node), nil
}

// maybeForceLimits consumes a following \limits/\nolimits and, if found,
// overrides the operator's with-limits flag accordingly.
func (p *Parser) maybeForceLimits(node Symbol) Node {
	if node.Category != symtab.Operator {
		return node
	}
	tok := p.lex.Current()
	if tok.Kind != lexer.Command {
		return node
	}
	switch tok.Name {
	case "limits":
		node.WithLimits = true
		p.lex.Next()
	case "nolimits":
		node.WithLimits = false
		p.lex.Next()
	}
	return node
}

func (p *Parser) parseSymbolChar(c rune) (Node, error) {
	p.lex.Next()
	if c == '~' {
		space, _ := fixedSpaceFromName("~")
		return Kerning{Amount: space}, nil
	}
	cat, ok := symtab.ClassifyChar(c)
	if !ok {
		return nil, core.Error(core.EPARSE, "unrecognized symbol %q", c)
	}
	return Symbol{Codepoint: styledRune(c, p.family), Category: cat}, nil
}

func nodesOf(n Node) []Node {
	if g, ok := n.(Group); ok {
		return g.Nodes
	}
	return []Node{n}
}

// parseFamilyChange realizes `\mathXX{...}` (a scoped family change
// applied only within the following required group) and the bare
// `\xx` legacy spelling (a family change in effect for the rest of the
// enclosing group, spec §4.3's "entering a brace group snapshots the
// style; exiting restores it").
func (p *Parser) parseFamilyChange(fam FontFamily) (Node, error) {
	name := p.lex.Current().Name
	p.lex.Next()
	saved := p.family
	p.family = fam
	// \mathXX always takes a required argument; the legacy one-word
	// spellings (\rm, \bf, ...) apply until the caller's enclosing group
	// ends, which ParseList's BraceGroup branch will restore via the
	// saved/deferred swap below for \mathXX, and which the *caller*
	// restores for the bare spelling by virtue of Parser.family being
	// restored only when its own enclosing ParseList returns.
	if strings.HasPrefix(name, "math") {
		arg, err := p.parseRequiredArgument()
		p.family = saved
		if err != nil {
			return nil, err
		}
		return Group{Nodes: nodesOf(arg)}, nil
	}
	return nil, nil
}

func atomChangeFromName(name string) (symtab.Category, bool) {
	switch name {
	case "mathop":
		return symtab.Operator, true
	case "mathrel":
		return symtab.Relation, true
	case "mathord":
		return symtab.Ordinary, true
	case "mathbin":
		return symtab.Binary, true
	case "mathinner":
		return symtab.Inner, true
	case "mathpunct":
		return symtab.Punctuation, true
	case "mathopen":
		return symtab.Open, true
	case "mathclose":
		return symtab.Close, true
	}
	return 0, false
}

func styleFromName(name string) (Style, bool) {
	switch name {
	case "displaystyle":
		return Display, true
	case "textstyle":
		return Text, true
	case "scriptstyle":
		return Script, true
	case "scriptscriptstyle":
		return ScriptScript, true
	}
	return 0, false
}

// fixedSpaceFromName resolves the family of fixed-width spacing control
// sequences spec §6 lists, in em (the customary TeX unit for them).
func fixedSpaceFromName(name string) (dimen.Scalar[dimen.Em], bool) {
	switch name {
	case "!":
		return dimen.New[dimen.Em](-3.0 / 18), true
	case ",":
		return dimen.New[dimen.Em](3.0 / 18), true
	case ":":
		return dimen.New[dimen.Em](4.0 / 18), true
	case ";":
		return dimen.New[dimen.Em](5.0 / 18), true
	case " ", "~":
		return dimen.New[dimen.Em](1.0 / 4), true
	case "quad":
		return dimen.New[dimen.Em](1.0), true
	case "qquad":
		return dimen.New[dimen.Em](2.0), true
	}
	return dimen.Zero[dimen.Em](), false
}

func (p *Parser) parseFraction(name string, hasBar bool, delims *struct{ l, r Symbol }) (Node, error) {
	p.lex.Next()
	num, err := p.parseRequiredArgument()
	if err != nil {
		return nil, err
	}
	den, err := p.parseRequiredArgument()
	if err != nil {
		return nil, err
	}
	gf := GenFraction{Num: nodesOf(num), Den: nodesOf(den), HasBar: hasBar}
	switch name {
	case "tfrac":
		s := Text
		gf.StyleOverride = &s
	case "dfrac":
		s := Display
		gf.StyleOverride = &s
	case "tbinom":
		s := Text
		gf.StyleOverride = &s
	case "dbinom":
		s := Display
		gf.StyleOverride = &s
	}
	if delims != nil {
		gf.LeftDelim, gf.RightDelim = &delims.l, &delims.r
	}
	return gf, nil
}

func (p *Parser) parseRadical() (Node, error) {
	p.lex.Next()
	var index []Node
	p.lex.ConsumeWhitespace()
	if p.lex.Current().Kind == lexer.Symbol && p.lex.Current().Char == '[' {
		p.lex.Next()
		nodes, _, err := p.parseUntilSymbol(']')
		if err != nil {
			return nil, err
		}
		index = nodes
	}
	arg, err := p.parseRequiredArgument()
	if err != nil {
		return nil, err
	}
	return Radical{Inner: nodesOf(arg), Codepoint: '√', Index: index}, nil
}

// parseUntilSymbol is used by the `\sqrt[...]` index, the only
// construct terminated by a bare character rather than one of
// ParseList's structural terminators.
func (p *Parser) parseUntilSymbol(closing rune) ([]Node, Terminator, error) {
	var nodes []Node
	for {
		tok := p.lex.Current()
		if tok.Kind == lexer.EOF {
			return nil, Terminator{}, core.Error(core.EPARSE, "unterminated [...]")
		}
		if tok.Kind == lexer.Symbol && tok.Char == closing {
			p.lex.Next()
			return nodes, Terminator{Kind: TermBraceGroup}, nil
		}
		node, err := p.parseOne()
		if err != nil {
			return nil, Terminator{}, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
}

func (p *Parser) parseDelimiterSymbol() (Symbol, error) {
	p.lex.ConsumeWhitespace()
	tok := p.lex.Current()
	if tok.Kind == lexer.Symbol && tok.Char == '.' {
		p.lex.Next()
		return Symbol{Codepoint: 0, Category: symtab.Ordinary}, nil // null delimiter
	}
	if tok.Kind == lexer.Symbol {
		p.lex.Next()
		cat, ok := symtab.ClassifyChar(tok.Char)
		if !ok {
			cat = symtab.Ordinary
		}
		return Symbol{Codepoint: tok.Char, Category: cat}, nil
	}
	if tok.Kind == lexer.Command {
		// `\{` and `\}` lex as single-character control symbols (the
		// escaped literal brace), not as the named "lbrace"/"rbrace"
		// symtab entries — resolve them directly.
		switch tok.Name {
		case "{":
			p.lex.Next()
			return Symbol{Codepoint: '{', Category: symtab.Open}, nil
		case "}":
			p.lex.Next()
			return Symbol{Codepoint: '}', Category: symtab.Close}, nil
		}
		sym, ok := symtab.Lookup(tok.Name)
		if !ok {
			return Symbol{}, core.Error(core.EPARSE, `\%s is not a valid delimiter`, tok.Name)
		}
		p.lex.Next()
		return Symbol{Name: tok.Name, Codepoint: sym.Codepoint, Category: sym.Category}, nil
	}
	return Symbol{}, core.Error(core.EPARSE, "expected a delimiter")
}

// isNullDelimiter reports whether sym is the `.` null delimiter (a
// placeholder meaning "no visible delimiter here").
func isNullDelimiter(sym Symbol) bool {
	return sym.Name == "" && sym.Codepoint == 0
}

func (p *Parser) parseDelimited() (Node, error) {
	p.lex.Next()
	first, err := p.parseDelimiterSymbol()
	if err != nil {
		return nil, err
	}
	if !isNullDelimiter(first) && !(symtab.Symbol{Category: first.Category}).IsOpenDelimiter() {
		return nil, core.Error(core.EPARSE, `\left delimiter must be Open or Fence (or null)`)
	}
	d := Delimited{Delimiters: []Symbol{first}}
	for {
		inner, term, err := p.ParseList(TermMiddle, TermRight)
		if err != nil {
			return nil, err
		}
		d.Inners = append(d.Inners, inner)
		if term.Kind == TermRight {
			delim, err := p.parseDelimiterSymbol()
			if err != nil {
				return nil, err
			}
			if !isNullDelimiter(delim) && !(symtab.Symbol{Category: delim.Category}).IsCloseDelimiter() {
				return nil, core.Error(core.EPARSE, `\right delimiter must be Close or Fence (or null)`)
			}
			d.Delimiters = append(d.Delimiters, delim)
			return d, nil
		}
		delim, err := p.parseDelimiterSymbol()
		if err != nil {
			return nil, err
		}
		if !isNullDelimiter(delim) && !(symtab.Symbol{Category: delim.Category}).IsMiddleDelimiter() {
			return nil, core.Error(core.EPARSE, `\middle delimiter must be Fence (or null)`)
		}
		d.Delimiters = append(d.Delimiters, delim)
	}
}

// bigHeight is the base unit extended delimiters scale from (spec
// §4.4: "a fixed height from a multiple of BIG_HEIGHT (0.85 em)").
const bigHeight = 0.85

func (p *Parser) parseExtendedDelimiter(name string) (Node, error) {
	p.lex.Next()
	sym, err := p.parseDelimiterSymbol()
	if err != nil {
		return nil, err
	}
	base := strings.TrimRight(name, "lrm")
	mult := map[string]float64{"big": 1.0, "Big": 1.5, "bigg": 2.0, "Bigg": 2.5}[base]
	atom := symtab.Ordinary
	switch {
	case strings.HasSuffix(name, "l"):
		atom = symtab.Open
	case strings.HasSuffix(name, "r"):
		atom = symtab.Close
	case strings.HasSuffix(name, "m"):
		atom = symtab.Relation
	}
	return ExtendedDelimiter{
		Symbol:         sym,
		EnclosedHeight: dimen.New[dimen.Em](bigHeight * mult),
		RequestedAtom:  atom,
	}, nil
}

// parseText reads a `\text{...}`/`\mbox{...}` group as literal text,
// segmenting it into words with github.com/npillmayer/uax/uax29 the same
// way engine/khipukamayuq.go's pipeline breaks paragraph text, so a
// future line-breaking pass over long \text runs has break opportunities
// to work with (stored as cord leaves, one per word-or-separator).
func (p *Parser) parseText() (Node, error) {
	p.lex.Next()
	raw, ok := p.lex.Group()
	if !ok {
		return nil, core.Error(core.EPARSE, `\text expects {...}`)
	}
	seg := segment.NewSegmenter(uax29.NewWordBreaker(1))
	seg.Init(strings.NewReader(raw))
	builder := cords.NewBuilder()
	for seg.Next() {
		word := seg.Text()
		builder.Append(textLeaf(word))
	}
	return PlainText{Text: builder.Cord()}, nil
}

// textLeaf is the cords.Leaf implementation backing PlainText runs: a
// flat string segment, one per word-or-separator a \text{} body breaks
// into, following the same leaf-per-fragment shape
// engine/khipu/styled/paragraph.go's pLeaf uses for DOM text nodes.
type textLeaf string

func (l textLeaf) Weight() uint64 { return uint64(len(l)) }
func (l textLeaf) String() string { return string(l) }

func (l textLeaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return l[:i], l[i:]
}

func (l textLeaf) Substring(i, j uint64) []byte {
	return []byte(l)[i:j]
}

var _ cords.Leaf = textLeaf("")

func (p *Parser) parseOperatorName() (Node, error) {
	p.lex.Next()
	withLimits := false
	if p.lex.Current().Kind == lexer.Symbol && p.lex.Current().Char == '*' {
		withLimits = true
		p.lex.Next()
	}
	name, ok := p.lex.Group()
	if !ok {
		return nil, core.Error(core.EPARSE, `\operatorname expects {...}`)
	}
	return Symbol{Name: name, Codepoint: 0, Category: symtab.Operator, WithLimits: withLimits}, nil
}

func (p *Parser) parseColor() (Node, error) {
	p.lex.Next()
	spec, ok := p.lex.Group()
	if !ok {
		return nil, core.Error(core.EPARSE, `\color expects {spec}`)
	}
	r, g, b, a := parseColorSpec(spec)
	inner, err := p.parseRequiredArgument()
	if err != nil {
		return nil, err
	}
	return Color{R: r, G: g, B: b, A: a, Inner: nodesOf(inner)}, nil
}

// parseColorSpec supports "#RRGGBB" and "#RRGGBBAA"; anything else
// (named CSS colors) is left to a higher layer that owns a color table —
// out of scope here (spec doesn't name one) — and resolves to opaque
// black.
func parseColorSpec(spec string) (r, g, b, a uint8) {
	a = 0xFF
	if !strings.HasPrefix(spec, "#") {
		return 0, 0, 0, a
	}
	hex := spec[1:]
	parse := func(s string) uint8 {
		var v int
		for _, c := range s {
			v *= 16
			switch {
			case c >= '0' && c <= '9':
				v += int(c - '0')
			case c >= 'a' && c <= 'f':
				v += int(c-'a') + 10
			case c >= 'A' && c <= 'F':
				v += int(c-'A') + 10
			}
		}
		return uint8(v)
	}
	if len(hex) >= 6 {
		r, g, b = parse(hex[0:2]), parse(hex[2:4]), parse(hex[4:6])
	}
	if len(hex) >= 8 {
		a = parse(hex[6:8])
	}
	return
}

// environmentDelims returns the bracketing delimiters a matrix-family
// environment name implies, and whether the name is recognized at all.
func environmentDelims(name string) (left, right rune, recognized bool) {
	switch name {
	case "matrix", "array", "aligned":
		return 0, 0, true
	case "pmatrix":
		return '(', ')', true
	case "bmatrix":
		return '[', ']', true
	case "Bmatrix":
		return '{', '}', true
	case "vmatrix":
		return '|', '|', true
	case "Vmatrix":
		return 0x2016, 0x2016, true
	}
	return 0, 0, false
}

// defaultColumns builds the implied ArrayColumnsFormatting for an
// environment that has no explicit `{colspec}` (every matrix-family
// environment centers every column; `aligned` alternates right|left so
// `&=&` lines up relation symbols, spec §6's array/matrix note).
func defaultColumns(name string, ncols int) ArrayColumnsFormatting {
	cols := ArrayColumnsFormatting{
		Alignment:  make([]ColumnAlign, ncols),
		Separators: make([]ColumnSeparator, ncols+1),
	}
	for i := range cols.Alignment {
		if name == "aligned" {
			if i%2 == 0 {
				cols.Alignment[i] = AlignRight
			} else {
				cols.Alignment[i] = AlignLeft
			}
		} else {
			cols.Alignment[i] = AlignCenter
		}
	}
	return cols
}

// parseColumnSpec parses an `\begin{array}{colspec}` column specifier:
// a run of 'l'/'c'/'r' alignment letters interspersed with '|' bars and
// optional `@{...}` expressions, the way the original TeX array package
// defines it. Bars and an @-expression both attach to the separator
// slot immediately preceding the next alignment letter.
func parseColumnSpec(spec string) ArrayColumnsFormatting {
	var cols ArrayColumnsFormatting
	var pending ColumnSeparator
	l := lexer.New(spec)
	for l.Current().Kind != lexer.EOF {
		tok := l.Current()
		switch {
		case tok.Kind == lexer.Symbol && tok.Char == '|':
			pending.Bars++
			l.Next()
		case tok.Kind == lexer.Symbol && tok.Char == 'l':
			cols.Alignment = append(cols.Alignment, AlignLeft)
			cols.Separators = append(cols.Separators, pending)
			pending = ColumnSeparator{}
			l.Next()
		case tok.Kind == lexer.Symbol && tok.Char == 'c':
			cols.Alignment = append(cols.Alignment, AlignCenter)
			cols.Separators = append(cols.Separators, pending)
			pending = ColumnSeparator{}
			l.Next()
		case tok.Kind == lexer.Symbol && tok.Char == 'r':
			cols.Alignment = append(cols.Alignment, AlignRight)
			cols.Separators = append(cols.Separators, pending)
			pending = ColumnSeparator{}
			l.Next()
		case tok.Kind == lexer.Symbol && tok.Char == '@':
			l.Next()
			group, ok := l.Group()
			if ok {
				b := cords.NewBuilder()
				b.Append(textLeaf(group))
				pending.AtExpr = []Node{PlainText{Text: b.Cord()}}
			}
		default:
			l.Next()
		}
	}
	cols.Separators = append(cols.Separators, pending)
	return cols
}

// parseEnvironment parses `\begin{name}...\end{name}`, dispatching on
// name to pick an implied column layout (matrix family, aligned) or an
// explicit `{colspec}` (array). Assumes the current token is the
// `\begin` command token.
func (p *Parser) parseEnvironment() (Node, error) {
	p.lex.Next()
	name, ok := p.lex.Group()
	if !ok {
		return nil, core.Error(core.EPARSE, `\begin expects {environment}`)
	}
	name = strings.TrimSpace(name)

	left, right, recognized := environmentDelims(name)
	if !recognized {
		return nil, core.Error(core.EPARSE, `unrecognized environment "%s"`, name)
	}

	var explicitCols *ArrayColumnsFormatting
	if name == "array" {
		p.lex.ConsumeWhitespace()
		spec, ok := p.lex.Group()
		if !ok {
			return nil, core.Error(core.EPARSE, `\begin{array} expects a {colspec} argument`)
		}
		cols := parseColumnSpec(spec)
		explicitCols = &cols
	}

	var rows [][][]Node
	var row [][]Node
	for {
		cell, term, err := p.ParseList(TermAlign, TermNewLine, TermEnv)
		if err != nil {
			return nil, err
		}
		row = append(row, cell)
		switch term.Kind {
		case TermAlign:
			continue
		case TermNewLine:
			rows = append(rows, row)
			row = nil
		case TermEnv:
			rows = append(rows, row)
			if term.Env != name {
				return nil, core.Error(core.EPARSE, `mismatched \end{%s}, expected \end{%s}`, term.Env, name)
			}
			arr := Array{Rows: rows}
			if explicitCols != nil {
				arr.Columns = *explicitCols
			} else {
				ncols := 0
				for _, r := range rows {
					if len(r) > ncols {
						ncols = len(r)
					}
				}
				arr.Columns = defaultColumns(name, ncols)
			}
			if left != 0 {
				l := Symbol{Codepoint: left, Category: symtab.Open}
				r := Symbol{Codepoint: right, Category: symtab.Close}
				arr.LeftDelim, arr.RightDelim = &l, &r
			}
			return arr, nil
		}
	}
}

func (p *Parser) parseSubstack() (Node, error) {
	p.lex.Next()
	p.lex.ConsumeWhitespace()
	if p.lex.Current().Kind != lexer.Symbol || p.lex.Current().Char != '{' {
		return nil, core.Error(core.EPARSE, `\substack expects {...}`)
	}
	p.lex.Next()
	var lines [][]Node
	for {
		line, term, err := p.ParseList(TermBraceGroup, TermNewLine)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		if term.Kind == TermBraceGroup {
			break
		}
	}
	return Stack{Lines: lines}, nil
}

func (p *Parser) parseRule() (Node, error) {
	p.lex.Next()
	w, err := p.parseDimensionArg()
	if err != nil {
		return nil, err
	}
	h, err := p.parseDimensionArg()
	if err != nil {
		return nil, err
	}
	return Rule{Width: w, Height: h}, nil
}

func (p *Parser) parseKern() (Node, error) {
	p.lex.Next()
	v, err := p.parseDimensionArg()
	if err != nil {
		return nil, err
	}
	return Kerning{Amount: v}, nil
}

// parseDimensionArg reads a `{1.5em}`-style required dimension argument.
func (p *Parser) parseDimensionArg() (dimen.Scalar[dimen.Em], error) {
	p.lex.ConsumeWhitespace()
	inner, ok := p.lex.Group()
	if !ok {
		return dimen.Zero[dimen.Em](), core.Error(core.EPARSE, "expected a dimension argument")
	}
	dl := lexer.New(strings.TrimSpace(inner))
	d, ok := dl.Dimension()
	if !ok || d.Unit != "em" {
		return dimen.Zero[dimen.Em](), core.Error(core.EPARSE, "expected an em dimension, got %q", inner)
	}
	return dimen.New[dimen.Em](d.Value), nil
}
