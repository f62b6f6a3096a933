package layout

import "github.com/npillmayer/mathtyp/core/symtab"

// spaceClass is the TeX spacing amount, one of four widths the inter-atom
// kern table resolves to (spec §4.4 step 2).
type spaceClass uint8

// The four spacing widths.
const (
	spaceNone spaceClass = iota
	spaceThin
	spaceMedium
	spaceThick
)

// em returns the spacing class's width in em, per the TeXbook's \thinmuskip
// (3/18em), \medmuskip (4/18em), \thickmuskip (5/18em) defaults.
func (s spaceClass) em() float64 {
	switch s {
	case spaceThin:
		return 3.0 / 18.0
	case spaceMedium:
		return 4.0 / 18.0
	case spaceThick:
		return 5.0 / 18.0
	}
	return 0
}

// spacingIndex is a position in the authoritative 8×8 TeXbook spacing
// table (Appendix G rule 20): Ordinary, Operator, Binary, Relation,
// Open, Close, Punctuation, Inner. Fence is folded into Ordinary for
// this lookup per spec §9's resolution of the two competing tables in
// the source, and so are all the categories the table has no row for
// (Accent/AccentWide/AccentOverlay/BotAccent/BotAccentWide/Over/Under/
// Radical/Transparent) — none of these appear as a standalone spacing
// atom in practice; they are always wrapped in an Ordinary-classified
// node by the parser (Radical, Accent) before reaching here.
type spacingIndex int

const (
	spOrd spacingIndex = iota
	spOp
	spBin
	spRel
	spOpen
	spClose
	spPunct
	spInner
)

// spacingIndexOf maps a symbol category to its spacing-table row/column.
func spacingIndexOf(c symtab.Category) spacingIndex {
	switch c {
	case symtab.Operator:
		return spOp
	case symtab.Binary:
		return spBin
	case symtab.Relation:
		return spRel
	case symtab.Open:
		return spOpen
	case symtab.Close:
		return spClose
	case symtab.Punctuation:
		return spPunct
	case symtab.Inner:
		return spInner
	}
	return spOrd
}

// spacingTable[left][right] is the TeXbook's 8×8 inter-atom spacing
// table, reproduced verbatim from Appendix G rule 20. Cells marked there
// as "not used" (combinations the binary-to-ordinary promotion in step 1
// should always prevent — e.g. Bin-Bin) default to spaceNone, matching
// original_source/src/layout/spacing.rs's test fixture.
var spacingTable = [8][8]spaceClass{
	/* Ord   */ {spaceNone, spaceThin, spaceMedium, spaceThick, spaceNone, spaceNone, spaceNone, spaceThin},
	/* Op    */ {spaceThin, spaceThin, spaceNone, spaceThick, spaceNone, spaceNone, spaceNone, spaceThin},
	/* Bin   */ {spaceMedium, spaceMedium, spaceNone, spaceNone, spaceMedium, spaceNone, spaceNone, spaceMedium},
	/* Rel   */ {spaceThick, spaceThick, spaceNone, spaceNone, spaceThick, spaceNone, spaceNone, spaceThick},
	/* Open  */ {spaceNone, spaceNone, spaceNone, spaceNone, spaceNone, spaceNone, spaceNone, spaceNone},
	/* Close */ {spaceNone, spaceThin, spaceMedium, spaceThick, spaceNone, spaceNone, spaceNone, spaceThin},
	/* Punct */ {spaceThin, spaceThin, spaceNone, spaceThin, spaceThin, spaceThin, spaceThin, spaceThin},
	/* Inner */ {spaceThin, spaceThin, spaceMedium, spaceThick, spaceThin, spaceNone, spaceThin, spaceThin},
}

// interAtomSpace looks up the kern between a left and a right atom type at
// the given style, per spec §4.4 step 2. In Script/ScriptScript styles
// (including their cramped variants) a Thin entry is suppressed to None —
// "script styles force cramped-variant entries to None" — while Medium
// and Thick entries are unaffected; this is a documented simplification
// of the source's finer-grained parenthesized-entry table (see
// DESIGN.md).
func interAtomSpace(left, right symtab.Category, style Style) spaceClass {
	cls := spacingTable[spacingIndexOf(left)][spacingIndexOf(right)]
	if cls == spaceThin && size(style) >= 2 {
		return spaceNone
	}
	return cls
}

// effectiveAtomType realizes spec §4.4 step 1's binary-to-ordinary
// promotion: a Binary atom degrades to Alpha (Ordinary, for spacing
// purposes) if its predecessor is absent or one of
// {Binary,Relation,Open,Punctuation,Operator}, or its successor is one
// of {Relation,Close,Punctuation}.
func effectiveAtomType(cat symtab.Category, prev *symtab.Category, next *symtab.Category) symtab.Category {
	if cat != symtab.Binary {
		return cat
	}
	degrade := false
	if prev == nil {
		degrade = true
	} else {
		switch *prev {
		case symtab.Binary, symtab.Relation, symtab.Open, symtab.Punctuation, symtab.Operator:
			degrade = true
		}
	}
	if next != nil {
		switch *next {
		case symtab.Relation, symtab.Close, symtab.Punctuation:
			degrade = true
		}
	}
	if degrade {
		return symtab.Alpha
	}
	return cat
}
