/*
Package parse turns a macro-expanded token stream into a parse tree: the
closed sum of node kinds spec §3 names (Symbol, Scripts, Radical,
Delimited, ExtendedDelimiter, Accent, GenFraction, Stack, Array, Group,
AtomChange, FontEffect, PlainText, Kerning, Color, Rule, StyleChange,
Dummy). Each node's atom type is computed recursively rather than stored
redundantly, following original_source's own AtomType-from-symbol-table
determination (src/parser/mod.rs).

Grounded on original_source/src/parser/{mod,environments,
control_sequence,functions}.rs. Where the Rust original stores nodes in
an arena keyed by index (for its own borrow-checker reasons), we use
plain Go slices of an interface type — the idiomatic shape tyse itself
uses for khipu's linked Knot lists generalized to a tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package parse

import (
	"github.com/npillmayer/cords"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/symtab"
)

// Node is the parse-tree element type. Every concrete node computes its
// own atom type on request rather than caching it, since atom type can
// depend on neighbors the parser folds in only as a node is consumed by
// the layout engine (spec §4.4 step 1's binary-to-ordinary promotion is
// the layout engine's concern, not this package's).
type Node interface {
	// AtomType returns the TeX atom type this node presents to its
	// neighbors for spacing purposes (spec §3's "atom type of any node is
	// determined recursively").
	AtomType() symtab.Category
}

// Style is the layout-style lattice spec §3 names: four text sizes times
// cramped/non-cramped. The parser only ever reads/writes this as an
// override payload (StyleChange, GenFraction.StyleOverride); the lattice
// transition functions themselves belong to the layout engine.
type Style uint8

// The eight lattice members, ordered so Style/2 gives the base size and
// Style%2 gives crampedness — mirrors TeX's own packed style encoding.
const (
	Display Style = iota
	DisplayCramped
	Text
	TextCramped
	Script
	ScriptCramped
	ScriptScript
	ScriptScriptCramped
)

// Cramped reports whether s is one of the four cramped variants.
func (s Style) Cramped() bool { return s%2 == 1 }

// Symbol is both a leaf node (a single glyph reference) and the payload
// carried by Delimited/Radical/ExtendedDelimiter/Accent for the
// delimiter/accent glyph itself.
type Symbol struct {
	Name       string // the source name, for diagnostics; "" for a literal char
	Codepoint  rune
	Category   symtab.Category
	WithLimits bool
}

// AtomType implements Node.
func (s Symbol) AtomType() symtab.Category { return s.Category }

// Scripts attaches an optional superscript and/or subscript to a base
// node. At least one of Sup/Sub is non-nil.
type Scripts struct {
	Base Node
	Sup  Node
	Sub  Node
}

// AtomType implements Node: a scripted atom inherits its base's type.
func (s Scripts) AtomType() symtab.Category { return s.Base.AtomType() }

// Radical is `\sqrt` (Codepoint is the radical glyph, U+221A) with an
// optional index (`\sqrt[n]{...}`, Index == nil when absent).
type Radical struct {
	Inner     []Node
	Codepoint rune
	Index     []Node
}

// AtomType implements Node.
func (Radical) AtomType() symtab.Category { return symtab.Ordinary }

// Delimited is `\left ⟨d0⟩ inner0 \middle ⟨d1⟩ inner1 ... \right ⟨dn⟩`.
// len(Delimiters) == len(Inners)+1.
type Delimited struct {
	Delimiters []Symbol
	Inners     [][]Node
}

// AtomType implements Node: a delimited subformula is always Inner, the
// TeX convention for anything surrounded by matched delimiters.
func (Delimited) AtomType() symtab.Category { return symtab.Inner }

// ExtendedDelimiter is a single `\big`-family delimiter sized to a fixed
// multiple of BIG_HEIGHT, standing in as an ordinary symbol of the atom
// type the caller requested (spec §4.4's "wrap the result as a symbol of
// the requested atom type").
type ExtendedDelimiter struct {
	Symbol         Symbol
	EnclosedHeight dimen.Scalar[dimen.Em]
	RequestedAtom  symtab.Category
}

// AtomType implements Node.
func (e ExtendedDelimiter) AtomType() symtab.Category { return e.RequestedAtom }

// Accent places Symbol over (or, if Under, below) Nucleus.
type Accent struct {
	Symbol     Symbol
	Nucleus    []Node
	Extendable bool
	Under      bool
}

// AtomType implements Node: an accented atom is Ordinary.
func (Accent) AtomType() symtab.Category { return symtab.Ordinary }

// GenFraction is the general fraction node `\frac`/`\binom`/variants.
// HasBar == false renders no dividing rule, as `\binom` requires.
type GenFraction struct {
	Num, Den      []Node
	LeftDelim     *Symbol
	RightDelim    *Symbol
	HasBar        bool
	BarThickness  *dimen.Scalar[dimen.Em] // nil ⇒ font default
	StyleOverride *Style                  // nil ⇒ inherit ("\frac"); non-nil for \d/tfrac
}

// AtomType implements Node: TeX always classifies a generalized fraction
// as Inner.
func (GenFraction) AtomType() symtab.Category { return symtab.Inner }

// Stack is `\substack`: any number of centered lines with no dividing
// rule or enclosing delimiters.
type Stack struct {
	Lines [][]Node
}

// AtomType implements Node.
func (Stack) AtomType() symtab.Category { return symtab.Inner }

// ColumnAlign is one array column's horizontal alignment.
type ColumnAlign uint8

// Column alignments.
const (
	AlignCenter ColumnAlign = iota
	AlignLeft
	AlignRight
)

// ColumnSeparator is what appears between two adjacent array columns: a
// run of vertical bars, an @-expression (verbatim node sequence inserted
// between the columns once per row), or both.
type ColumnSeparator struct {
	Bars   int
	AtExpr []Node // nil if this separator carries no @{...} expression
}

// ArrayColumnsFormatting is the parsed `⟨colspec⟩` of `\begin{array}{...}`.
// len(Separators) == len(Alignment)+1.
type ArrayColumnsFormatting struct {
	Alignment  []ColumnAlign
	Separators []ColumnSeparator
}

// Array is `\begin{array}`/matrix-family/`aligned`.
type Array struct {
	Columns       ArrayColumnsFormatting
	Rows          [][][]Node // Rows[r][c] is cell (r,c)'s node list
	LeftDelim     *Symbol
	RightDelim    *Symbol
	RowSepExtra   dimen.Scalar[dimen.Em]
	CellStyle     Style
}

// AtomType implements Node.
func (Array) AtomType() symtab.Category { return symtab.Inner }

// Group is a brace-delimited subformula processed as a single unit
// (`{...}` with no atom-type-changing prefix). Its own atom type is
// Ordinary per TeX's bracing convention.
type Group struct {
	Nodes []Node
}

// AtomType implements Node.
func (Group) AtomType() symtab.Category { return symtab.Ordinary }

// AtomChange is `\mathop`, `\mathrel`, `\mathord`, ... — reclassifies
// Inner's atom type regardless of what it would otherwise compute to.
type AtomChange struct {
	At    symtab.Category
	Inner []Node
}

// AtomType implements Node.
func (a AtomChange) AtomType() symtab.Category { return a.At }

// FontEffect is `\underline` (the only font-effect box spec §6 names).
type FontEffect struct {
	Inner []Node
}

// AtomType implements Node.
func (FontEffect) AtomType() symtab.Category { return symtab.Ordinary }

// PlainText is a `\text{}`/`\mbox{}` run: literal, non-mathematical
// text, stored as a Cord the way engine/khipu/styled's paragraph text is
// (cheap structural sharing across macro re-expansion, cheap slicing for
// word-break segmentation).
type PlainText struct {
	Text cords.Cord
}

// AtomType implements Node.
func (PlainText) AtomType() symtab.Category { return symtab.Ordinary }

// Kerning is an explicit fixed space (`\,`, `\quad`, `\kern1em`, ...).
type Kerning struct {
	Amount dimen.Scalar[dimen.Em]
}

// AtomType implements Node.
func (Kerning) AtomType() symtab.Category { return symtab.Transparent }

// Color is `\color{...}{...}` (and the named-color macros, which expand
// to it).
type Color struct {
	R, G, B, A uint8
	Inner      []Node
}

// AtomType implements Node: Color always reports Ordinary, the same as a
// Group, whatever atom types its Inner holds.
func (Color) AtomType() symtab.Category { return symtab.Ordinary }

// Rule is an explicit `\rule{width}{height}` filled box.
type Rule struct {
	Width, Height dimen.Scalar[dimen.Em]
}

// AtomType implements Node.
func (Rule) AtomType() symtab.Category { return symtab.Ordinary }

// StyleChange is `\displaystyle`/`\textstyle`/`\scriptstyle`/
// `\scriptscriptstyle`: an in-place style override for every following
// sibling node in the same list, realized by the layout engine rather
// than by any shape change here.
type StyleChange struct {
	Style Style
}

// AtomType implements Node.
func (StyleChange) AtomType() symtab.Category { return symtab.Transparent }

// Dummy copies a neighbor's atom type to preserve spacing across an
// implicit break, the way `aligned`'s r|l alternation needs a spacer
// node that spaces like "whatever came before" without itself being
// anything (spec §4.3's array/matrix note).
type Dummy struct {
	At symtab.Category
}

// AtomType implements Node.
func (d Dummy) AtomType() symtab.Category { return d.At }
