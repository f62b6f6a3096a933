/*
Package symtab holds the TeX/unicode-math symbol table: a static mapping
from a control-sequence name (e.g. "alpha", "sum", "leftarrow") to a
Unicode codepoint and the TeX atom-category that governs its spacing and
delimiter role (spec §3).

The table is compile-time data, not a parser; it is consulted by the
parser (to classify a named symbol's atom type). The layout engine uses
only the Category type: it sees already-classified parse nodes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package symtab

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

func trace() tracing.Trace {
	return gtrace.CoreTracer
}

// Category is the TeX "atom type" alphabet (spec §3), used by the layout
// engine's spacing table and by the parser's delimiter-role checks.
type Category int8

// The 19 atom categories spec §3 names, verbatim.
const (
	Ordinary Category = iota
	Alpha
	Binary
	Relation
	Open
	Close
	Fence
	Punctuation
	Inner
	Operator
	Accent
	AccentWide
	AccentOverlay
	BotAccent
	BotAccentWide
	Over
	Under
	Radical
	Transparent
)

//go:generate stringer -type=Category

func (c Category) String() string {
	switch c {
	case Ordinary:
		return "Ordinary"
	case Alpha:
		return "Alpha"
	case Binary:
		return "Binary"
	case Relation:
		return "Relation"
	case Open:
		return "Open"
	case Close:
		return "Close"
	case Fence:
		return "Fence"
	case Punctuation:
		return "Punctuation"
	case Inner:
		return "Inner"
	case Operator:
		return "Operator"
	case Accent:
		return "Accent"
	case AccentWide:
		return "AccentWide"
	case AccentOverlay:
		return "AccentOverlay"
	case BotAccent:
		return "BotAccent"
	case BotAccentWide:
		return "BotAccentWide"
	case Over:
		return "Over"
	case Under:
		return "Under"
	case Radical:
		return "Radical"
	case Transparent:
		return "Transparent"
	}
	return "UnknownCategory"
}

// Symbol is a single entry of the symbol table: a Unicode codepoint and
// its atom category. WithLimits only has meaning when Category ==
// Operator; it records whether this operator's sub/superscripts render
// above/below (big operators like \sum) or as ordinary corner scripts
// (like \int, per TeX convention, though most fonts render \int with
// limits off by default outside display style — see layout.Style).
type Symbol struct {
	Name       string
	Codepoint  rune
	Category   Category
	WithLimits bool
}

// table is the sorted backing store: name -> Symbol. A treemap keeps the
// table in sorted key order, matching spec §3's "sorted static array of
// (name, codepoint, category) triples" while giving O(log n) lookup.
var table = treemap.NewWithStringComparator()

func define(name string, codepoint rune, cat Category) {
	table.Put(name, Symbol{Name: name, Codepoint: codepoint, Category: cat})
}

func defineOperator(name string, codepoint rune, withLimits bool) {
	table.Put(name, Symbol{Name: name, Codepoint: codepoint, Category: Operator, WithLimits: withLimits})
}

// Lookup resolves a control-sequence name to its Symbol. ok is false if
// the name is not in the table.
func Lookup(name string) (Symbol, bool) {
	v, found := table.Get(name)
	if !found {
		trace().Debugf("symtab: unknown symbol name %q", name)
		return Symbol{}, false
	}
	return v.(Symbol), true
}

// Len returns the number of defined symbol names.
func Len() int {
	return table.Size()
}

// Names returns all defined names in sorted order. Intended for tooling
// and "did you mean" diagnostics, not for the hot parsing path.
func Names() []string {
	keys := table.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// operatorLimits is the set of big-operator names that take limits by
// default (rendered above/below rather than as corner scripts), taken
// verbatim from the unicode-math symbol database's OPERATOR_LIMITS list.
var operatorLimits = map[string]bool{
	"coprod": true, "bigvee": true, "bigwedge": true, "biguplus": true,
	"bigcap": true, "bigcup": true, "prod": true, "sum": true,
	"bigotimes": true, "bigoplus": true, "bigodot": true, "bigsqcup": true,
}

func init() {
	// --- Ordinary / Alpha: Latin and Greek letters ------------------
	greekLower := []struct {
		name string
		cp   rune
	}{
		{"alpha", 0x3B1}, {"beta", 0x3B2}, {"gamma", 0x3B3}, {"delta", 0x3B4},
		{"epsilon", 0x3F5}, {"varepsilon", 0x3B5}, {"zeta", 0x3B6}, {"eta", 0x3B7},
		{"theta", 0x3B8}, {"vartheta", 0x3D1}, {"iota", 0x3B9}, {"kappa", 0x3BA},
		{"lambda", 0x3BB}, {"mu", 0x3BC}, {"nu", 0x3BD}, {"xi", 0x3BE},
		{"pi", 0x3C0}, {"varpi", 0x3D6}, {"rho", 0x3C1}, {"varrho", 0x3F1},
		{"sigma", 0x3C3}, {"varsigma", 0x3C2}, {"tau", 0x3C4}, {"upsilon", 0x3C5},
		{"phi", 0x3D5}, {"varphi", 0x3C6}, {"chi", 0x3C7}, {"psi", 0x3C8},
		{"omega", 0x3C9},
	}
	for _, g := range greekLower {
		define(g.name, g.cp, Alpha)
	}
	greekUpper := []struct {
		name string
		cp   rune
	}{
		{"Alpha", 0x391}, {"Beta", 0x392}, {"Gamma", 0x393}, {"Delta", 0x394},
		{"Epsilon", 0x395}, {"Zeta", 0x396}, {"Eta", 0x397}, {"Theta", 0x398},
		{"Iota", 0x399}, {"Kappa", 0x39A}, {"Lambda", 0x39B}, {"Mu", 0x39C},
		{"Nu", 0x39D}, {"Xi", 0x39E}, {"Omicron", 0x39F}, {"Pi", 0x3A0},
		{"Rho", 0x3A1}, {"Sigma", 0x3A3}, {"Tau", 0x3A4}, {"Upsilon", 0x3A5},
		{"Phi", 0x3A6}, {"Chi", 0x3A7}, {"Psi", 0x3A8}, {"Omega", 0x3A9},
	}
	for _, g := range greekUpper {
		define(g.name, g.cp, Alpha)
	}
	define("hbar", 0x210F, Alpha)
	define("ell", 0x2113, Alpha)
	define("imath", 0x1D6A4, Alpha)
	define("jmath", 0x1D6A5, Alpha)
	define("partial", 0x2202, Alpha)
	define("infty", 0x221E, Ordinary)
	define("emptyset", 0x2205, Ordinary)
	define("nabla", 0x2207, Ordinary)
	define("aleph", 0x2135, Ordinary)
	define("forall", 0x2200, Ordinary)
	define("exists", 0x2203, Ordinary)
	define("angle", 0x2220, Ordinary)
	define("triangle", 0x25B3, Ordinary)
	define("hdots", 0x2026, Inner)
	define("cdots", 0x22EF, Inner)
	define("ldots", 0x2026, Inner)
	define("vdots", 0x22EE, Inner)
	define("ddots", 0x22F1, Inner)

	// --- Binary operators --------------------------------------------
	binaries := map[string]rune{
		"pm": 0xB1, "mp": 0x2213, "times": 0xD7, "div": 0xF7,
		"cdot": 0x22C5, "ast": 0x2217, "star": 0x22C6, "circ": 0x2218,
		"bullet": 0x2022, "cap": 0x2229, "cup": 0x222A, "setminus": 0x2216,
		"wedge": 0x2227, "vee": 0x2228, "oplus": 0x2295, "ominus": 0x2296,
		"otimes": 0x2297, "oslash": 0x2298, "odot": 0x2299, "uplus": 0x228E,
		"sqcap": 0x2293, "sqcup": 0x2294, "wr": 0x2240, "amalg": 0x2A3F,
		"triangleleft": 0x25C1, "triangleright": 0x25B7,
	}
	for name, cp := range binaries {
		define(name, cp, Binary)
	}

	// --- Relations ------------------------------------------------
	relations := map[string]rune{
		"leq": 0x2264, "le": 0x2264, "geq": 0x2265, "ge": 0x2265,
		"neq": 0x2260, "ne": 0x2260, "equiv": 0x2261, "sim": 0x223C,
		"simeq": 0x2243, "approx": 0x2248, "cong": 0x2245, "propto": 0x221D,
		"subset": 0x2282, "supset": 0x2283, "subseteq": 0x2286, "supseteq": 0x2287,
		"in": 0x2208, "ni": 0x220B, "notin": 0x2209, "parallel": 0x2225,
		"perp": 0x27C2, "mid": 0x2223, "prec": 0x227A, "succ": 0x227B,
		"preceq": 0x2AAF, "succeq": 0x2AB0, "ll": 0x226A, "gg": 0x226B,
		"doteq": 0x2250, "asymp": 0x224D, "bowtie": 0x22C8, "models": 0x22A7,
		"leftarrow": 0x2190, "rightarrow": 0x2192, "Leftarrow": 0x21D0,
		"Rightarrow": 0x21D2, "leftrightarrow": 0x2194, "Leftrightarrow": 0x21D4,
		"uparrow": 0x2191, "downarrow": 0x2193, "mapsto": 0x21A6,
		"longleftarrow": 0x27F5, "longrightarrow": 0x27F6,
		"colon": 0x3A, "vdash": 0x22A2, "dashv": 0x22A3,
	}
	for name, cp := range relations {
		define(name, cp, Relation)
	}

	// --- Open / Close / Fence delimiters ---------------------------
	define("lbrace", 0x7B, Open)
	define("rbrace", 0x7D, Close)
	define("langle", 0x27E8, Open)
	define("rangle", 0x27E9, Close)
	define("lceil", 0x2308, Open)
	define("rceil", 0x2309, Close)
	define("lfloor", 0x230A, Open)
	define("rfloor", 0x230B, Close)
	define("lVert", 0x2016, Fence)
	define("rVert", 0x2016, Fence)
	define("vert", 0x7C, Fence)
	define("Vert", 0x2016, Fence)
	define("lbrack", 0x5B, Open)
	define("rbrack", 0x5D, Close)
	define("lgroup", 0x27EE, Open)
	define("rgroup", 0x27EF, Close)

	// --- Punctuation -------------------------------------------------
	define("cdotp", 0x2D9, Punctuation)

	// --- Big operators (spacing-relevant set) ------------------------
	bigOps := map[string]rune{
		"sum": 0x2211, "prod": 0x220F, "coprod": 0x2210, "int": 0x222B,
		"oint": 0x222E, "bigcap": 0x22C2, "bigcup": 0x22C3, "bigvee": 0x22C1,
		"bigwedge": 0x22C0, "biguplus": 0x2A04, "bigsqcup": 0x2A06,
		"bigotimes": 0x2A02, "bigoplus": 0x2A01, "bigodot": 0x2A00,
		"iint": 0x222C, "iiint": 0x222D, "oiint": 0x222F,
	}
	for name, cp := range bigOps {
		defineOperator(name, cp, operatorLimits[name])
	}

	// --- Accents ------------------------------------------------------
	define("hat", 0x302, Accent)
	define("check", 0x30C, Accent)
	define("breve", 0x306, Accent)
	define("acute", 0x301, Accent)
	define("grave", 0x300, Accent)
	define("bar", 0x304, Accent)
	define("vec", 0x20D7, Accent)
	define("dot", 0x307, Accent)
	define("ddot", 0x308, Accent)
	define("widehat", 0x302, AccentWide)
	define("widetilde", 0x303, AccentWide)
	define("overleftarrow", 0x20D6, AccentWide)
	define("overrightarrow", 0x20D7, AccentWide)
	define("overline", 0x305, AccentOverlay)
	define("underline", 0x332, BotAccent)
	define("underbrace", 0x23DF, BotAccentWide)
	define("overbrace", 0x23DE, AccentWide)

	// --- Radical -----------------------------------------------------
	define("sqrt", 0x221A, Radical)

	trace().Debugf("symtab: loaded %d symbol definitions", table.Size())
}

// IsOpenDelimiter reports whether a symbol may be used as a \left
// delimiter. Together with IsCloseDelimiter and IsMiddleDelimiter it
// applies spec §4.3's rule that opening delimiters
// must be Open or Fence, middle must be Fence, closing must be Close or
// Fence (null delimiter '.' is always allowed and is handled by the
// parser directly, not via this table).
func (s Symbol) IsOpenDelimiter() bool {
	return s.Category == Open || s.Category == Fence
}

// IsCloseDelimiter reports whether s may close a \left...\right group.
func (s Symbol) IsCloseDelimiter() bool {
	return s.Category == Close || s.Category == Fence
}

// IsMiddleDelimiter reports whether s may be used with \middle.
func (s Symbol) IsMiddleDelimiter() bool {
	return s.Category == Fence
}

// ClassifyChar determines the atom category of a bare character literal,
// per spec §4.3's character-classification table. It returns false if the
// character has no classification (the parser surfaces
// ErrUnrecognizedSymbol in that case).
func ClassifyChar(r rune) (Category, bool) {
	switch {
	case r >= '0' && r <= '9':
		return Alpha, true
	case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		return Alpha, true
	case r == '+' || r == '*' || r == '-':
		return Binary, true
	case r == '[' || r == '(':
		return Open, true
	case r == ')' || r == ']' || r == '!' || r == '?':
		return Close, true
	case r == '=' || r == '<' || r == '>' || r == ':':
		return Relation, true
	case r == ',' || r == ';':
		return Punctuation, true
	case r == '|':
		return Fence, true
	case r == '/' || r == '@' || r == '.' || r == '"':
		return Alpha, true
	}
	return Ordinary, false
}
