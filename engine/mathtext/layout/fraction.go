package layout

import (
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

// layoutFraction realizes spec §4.4's "Fraction" paragraph: numerator and
// denominator laid out at their style variants, centered to a common
// width, stacked around a rule placed on the math axis, with shift/gap
// constants chosen by whether the effective style is display.
func layoutFraction(f parse.GenFraction, m Metrics, style Style) (Layout, error) {
	effStyle := style
	if f.StyleOverride != nil {
		effStyle = *f.StyleOverride
	}

	numStyle := NumeratorVariant(effStyle)
	denStyle := DenominatorVariant(effStyle)
	num, err := typesetList(f.Num, m.atStyle(numStyle), numStyle)
	if err != nil {
		return Layout{}, err
	}
	den, err := typesetList(f.Den, m.atStyle(denStyle), denStyle)
	if err != nil {
		return Layout{}, err
	}

	width := dimen.Max(num.Width, den.Width)
	num = centerPad(num, width)
	den = centerPad(den, width)

	c := m.C
	display := size(effStyle) == 0
	var ruleThickness dimen.Scalar[dimen.Px]
	if f.BarThickness != nil {
		ruleThickness = m.em(*f.BarThickness)
	} else {
		ruleThickness = m.em(c.FractionRuleThickness)
	}

	var inner Layout
	if f.HasBar {
		var shiftUp, shiftDown, gapNum, gapDen dimen.Scalar[dimen.Px]
		if display {
			shiftUp = m.em(c.FractionNumeratorDisplayStyleShiftUp)
			shiftDown = m.em(c.FractionDenominatorDisplayStyleShiftDown)
			gapNum = m.em(c.FractionNumDisplayStyleGapMin)
			gapDen = m.em(c.FractionDenomDisplayStyleGapMin)
		} else {
			shiftUp = m.em(c.FractionNumeratorShiftUp)
			shiftDown = m.em(c.FractionDenominatorShiftDown)
			gapNum = m.em(c.FractionNumeratorGapMin)
			gapDen = m.em(c.FractionDenominatorGapMin)
		}
		axis := m.em(c.AxisHeight)
		halfRule := ruleThickness.Scale(0.5)

		// Clearance between numerator's bottom edge and the rule's top
		// edge, and between the rule's bottom edge and denominator's top
		// edge, each clamped to its gap-min.
		gapAboveRule := dimen.Max(shiftUp.Add(num.Depth).Sub(axis).Sub(halfRule), gapNum)
		gapBelowRule := dimen.Max(shiftDown.Add(axis).Sub(den.Height).Sub(halfRule), gapDen)

		rule := Layout{Width: width, Height: halfRule, Depth: halfRule.Neg(), Variant: Rule{}}

		num.Offset = dimen.Point{Y: axis.Add(halfRule).Add(gapAboveRule).Sub(num.Depth).Neg()}
		rule.Offset = dimen.Point{Y: axis.Neg()}
		den.Offset = dimen.Point{Y: axis.Neg().Add(halfRule).Add(gapBelowRule).Add(den.Height)}

		inner = vstack([]Layout{num, rule, den})
	} else {
		// Stack-style (e.g. \binom): no dividing rule, num/den placed via
		// the stack*-family constants.
		var topShift, botShift, gapMin dimen.Scalar[dimen.Px]
		if display {
			topShift = m.em(c.StackTopDisplayStyleShiftUp)
			gapMin = m.em(c.StackDisplayStyleGapMin)
		} else {
			topShift = m.em(c.StackTopShiftUp)
			gapMin = m.em(c.StackGapMin)
		}
		botShift = m.em(c.StackBottomShiftDown)
		gap := dimen.Max(gapMin, topShift.Sub(num.Depth).Sub(botShift.Neg().Add(den.Height)))
		num.Offset = dimen.Point{Y: topShift.Neg()}
		den.Offset = dimen.Point{Y: num.Offset.Y.Neg().Add(num.Depth).Add(gap).Add(den.Height)}
		inner = vstack([]Layout{num, den})
	}

	if f.LeftDelim == nil && f.RightDelim == nil {
		return inner, nil
	}
	delimHeight := dimen.Max(
		inner.Height.Sub(m.em(c.AxisHeight)),
		m.em(c.AxisHeight).Sub(inner.Depth),
	).Scale(2)
	delimHeight = dimen.Max(delimHeight, m.em(c.DelimitedSubFormulaMinHeight))

	contents := []Layout{}
	var cursor dimen.Scalar[dimen.Px]
	if f.LeftDelim != nil {
		l, err := layoutDelimiterGlyph(m, *f.LeftDelim, emToFUnit(m, delimHeight))
		if err != nil {
			return Layout{}, err
		}
		l.Offset = dimen.Point{X: cursor}
		cursor = cursor.Add(l.Width)
		contents = append(contents, l)
	}
	inner.Offset = dimen.Point{X: cursor}
	cursor = cursor.Add(inner.Width)
	contents = append(contents, inner)
	if f.RightDelim != nil {
		r, err := layoutDelimiterGlyph(m, *f.RightDelim, emToFUnit(m, delimHeight))
		if err != nil {
			return Layout{}, err
		}
		r.Offset = dimen.Point{X: cursor}
		contents = append(contents, r)
	}
	return packAbsolute(contents), nil
}
