/*
Package layout implements the layout engine: the parse tree + font + style
→ positioned layout tree transformation spec §4.4 describes. This is the
largest and most intricate subsystem of the module (spec §2 assigns it
45% of the implementation share).

Grounded on original_source/src/layout/{engine,spacing,constants,mod}.rs,
cross-checked against other_examples' boergens-gotypst script-layout
code (65d304cf_boergens-gotypst__layout-math-scripts.go.go) for the
idiomatic Go shape of the same shift-computation arithmetic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package layout

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

func trace() tracing.Trace {
	return gtrace.CoreTracer
}

// Style is an alias for the parse-tree's layout-style lattice (spec §3):
// {Display, Text, Script, ScriptScript} × {cramped, non-cramped}, packed
// so Style/2 is the base size and Style%2 is crampedness.
type Style = parse.Style

// The eight lattice members, re-exported from parse so layout code never
// needs to import both packages' constant sets.
const (
	Display             = parse.Display
	DisplayCramped       = parse.DisplayCramped
	Text                 = parse.Text
	TextCramped          = parse.TextCramped
	Script               = parse.Script
	ScriptCramped         = parse.ScriptCramped
	ScriptScript         = parse.ScriptScript
	ScriptScriptCramped  = parse.ScriptScriptCramped
)

// Cramped reports whether a style is one of the four cramped variants.
func Cramped(s Style) bool { return s.Cramped() }

// size returns a style's base size class, 0 (Display) through 3
// (ScriptScript), discarding crampedness.
func size(s Style) int { return int(s) / 2 }

// styleAt packs a base size and a crampedness flag back into a Style.
func styleAt(sz int, cramped bool) Style {
	s := Style(sz * 2)
	if cramped {
		s++
	}
	return s
}

// SuperscriptVariant is the style used to lay out a superscript (TeX's
// primed-style rule, TeXbook Appendix G, rule 13/14): Display and Text
// promote to Script; Script and ScriptScript both shrink to
// ScriptScript. A cramped base keeps its script cramped.
func SuperscriptVariant(s Style) Style {
	cramped := Cramped(s)
	switch size(s) {
	case 0, 1: // Display, Text
		return styleAt(2, cramped) // Script
	default: // Script, ScriptScript
		return styleAt(3, cramped) // ScriptScript
	}
}

// SubscriptVariant is the style used to lay out a subscript: always
// cramped, otherwise the same size promotion as SuperscriptVariant.
func SubscriptVariant(s Style) Style {
	switch size(s) {
	case 0, 1:
		return styleAt(2, true)
	default:
		return styleAt(3, true)
	}
}

// NumeratorVariant is the style used to lay out a fraction's numerator
// (rule 15): one size step down, cramping preserved from the un-cramped
// parent (a numerator is never itself cramped by the fraction alone).
func NumeratorVariant(s Style) Style {
	cramped := Cramped(s)
	switch size(s) {
	case 0: // Display -> Text
		return styleAt(1, cramped)
	case 1: // Text -> Script
		return styleAt(2, cramped)
	default: // Script, ScriptScript -> ScriptScript
		return styleAt(3, cramped)
	}
}

// DenominatorVariant is the style used to lay out a fraction's
// denominator (rule 16): one size step down, and always cramped.
func DenominatorVariant(s Style) Style {
	switch size(s) {
	case 0:
		return styleAt(1, true)
	case 1:
		return styleAt(2, true)
	default:
		return styleAt(3, true)
	}
}

// CrampedVariant returns s with the cramped bit forced on, used for
// radical interiors and the numerator/denominator of nested fractions
// (rule 11: "cramp the style").
func CrampedVariant(s Style) Style {
	return styleAt(size(s), true)
}

// percentScaleDown returns the font's scale-down factor for s's size
// class: 1.0 at Display/Text, scriptPercentScaleDown at Script,
// scriptscriptPercentScaleDown at ScriptScript.
func percentScaleDown(s Style, c Constants) float64 {
	switch size(s) {
	case 2:
		return c.ScriptPercentScaleDown
	case 3:
		return c.ScriptScriptPercentScaleDown
	}
	return 1.0
}
