package parse

// FontFamily is the parser's "current style" state spec §4.3 describes
// as threaded through brace groups: `{\rm abc}` snapshots it on group
// entry and restores it on exit. It never appears as its own Node —
// instead it determines which Unicode "Mathematical Alphanumeric
// Symbols" codepoint a plain-letter Symbol resolves to.
type FontFamily uint8

// Recognized families, one per \math* / legacy \rm-family control word
// spec §6's table names.
const (
	FamilyNormal FontFamily = iota
	FamilyRoman              // \mathrm, \rm  (upright, not italic — math-mode default is italic)
	FamilyBold                // \mathbf, \bf
	FamilyItalic              // \mathit, \it
	FamilySansSerif           // \mathsf, \sf
	FamilyTypewriter          // \mathtt, \tt
	FamilyBlackboard          // \mathbb
	FamilyFraktur             // \mathfrak
	FamilyScript              // \mathcal, \cal
	FamilyScriptBold          // \mathscr (rendered here as bold script; fonts vary)
)

// familyFromControlWord maps a control-sequence name to the family it
// selects, for both the `\math*{...}` and bare `\xx` in-scope spellings
// (spec §6's two rows share one family set).
func familyFromControlWord(name string) (FontFamily, bool) {
	switch name {
	case "mathrm", "rm":
		return FamilyRoman, true
	case "mathbf", "bf":
		return FamilyBold, true
	case "mathit", "it":
		return FamilyItalic, true
	case "mathsf", "sf":
		return FamilySansSerif, true
	case "mathtt", "tt":
		return FamilyTypewriter, true
	case "mathbb":
		return FamilyBlackboard, true
	case "mathfrak":
		return FamilyFraktur, true
	case "mathcal", "cal":
		return FamilyScript, true
	case "mathscr":
		return FamilyScriptBold, true
	}
	return FamilyNormal, false
}

// styledRune maps an ASCII letter or digit to its styled codepoint in
// the Unicode Mathematical Alphanumeric Symbols block (U+1D400-U+1D7FF),
// which lays out as contiguous 26-upper + 26-lower (+10 digit) runs per
// style. Characters outside [A-Za-z0-9], and the Normal family, pass
// through unchanged. A handful of legacy codepoints the block
// deliberately leaves as holes (e.g. italic h is Planck's constant at
// U+210E, not U+1D455) are not special-cased — rare enough in practice
// that callers needing letter-perfect Unicode-math output should special
// case them at a higher layer; tracked as a known simplification.
func styledRune(r rune, fam FontFamily) rune {
	if fam == FamilyNormal {
		return r
	}
	upperBase, lowerBase, digitBase, ok := familyBases(fam)
	switch {
	case r >= 'A' && r <= 'Z' && upperBase != 0:
		return upperBase + (r - 'A')
	case r >= 'a' && r <= 'z' && lowerBase != 0:
		return lowerBase + (r - 'a')
	case r >= '0' && r <= '9' && digitBase != 0:
		return digitBase + (r - '0')
	}
	_ = ok
	return r
}

// familyBases returns the block's upper-case, lower-case, and digit run
// bases for fam. A zero base means that family has no styled variant for
// that character class (e.g. the italic, Fraktur and script families have
// no digit block).
func familyBases(fam FontFamily) (upper, lower, digit rune, ok bool) {
	switch fam {
	case FamilyBold:
		return 0x1D400, 0x1D41A, 0x1D7CE, true
	case FamilyItalic:
		return 0x1D434, 0x1D44E, 0, true
	case FamilySansSerif:
		return 0x1D5A0, 0x1D5BA, 0x1D7E2, true
	case FamilyTypewriter:
		return 0x1D670, 0x1D68A, 0x1D7F6, true
	case FamilyBlackboard:
		return 0x1D538, 0x1D552, 0x1D7D8, true
	case FamilyFraktur:
		return 0x1D504, 0x1D51E, 0, true
	case FamilyScript:
		return 0x1D49C, 0x1D4B6, 0, true
	case FamilyScriptBold:
		return 0x1D4D0, 0x1D4EA, 0, true
	case FamilyRoman:
		return 0, 0, 0, true // roman reuses the plain ASCII codepoints
	}
	return 0, 0, 0, false
}
