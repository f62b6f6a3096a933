package layout

import (
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

// layoutLimits realizes spec §4.4's "Operator-with-limits placement":
// pad sup/sub (and the base, so everything shares one common width) to
// the widest of {base.width, sub.width+δ/2, sup.width+δ/2}, stack them
// vertically with the documented gaps, and offset the result so the
// base's original baseline is preserved.
func layoutLimits(base Layout, s parse.Scripts, m Metrics, style Style) (Layout, error) {
	var sup, sub Layout
	var hasSup, hasSub bool
	if s.Sup != nil {
		st := SuperscriptVariant(style)
		l, err := typesetOne(s.Sup, m.atStyle(st), st)
		if err != nil {
			return Layout{}, err
		}
		sup, hasSup = l, true
	}
	if s.Sub != nil {
		st := SubscriptVariant(style)
		l, err := typesetOne(s.Sub, m.atStyle(st), st)
		if err != nil {
			return Layout{}, err
		}
		sub, hasSub = l, true
	}

	delta := italicOf(base)
	targetWidth := base.Width
	if hasSub {
		targetWidth = dimen.Max(targetWidth, sub.Width.Add(delta.Scale(0.5)))
	}
	if hasSup {
		targetWidth = dimen.Max(targetWidth, sup.Width.Add(delta.Scale(0.5)))
	}

	c := m.C
	contents := []Layout{centerPad(base, targetWidth)}

	if hasSup {
		upperKern := dimen.Max(m.em(c.UpperLimitBaselineRiseMin), m.em(c.UpperLimitGapMin).Sub(sup.Depth))
		padded := centerPad(sup, targetWidth)
		padded.Offset = dimen.Point{Y: sup.Depth.Sub(upperKern).Sub(base.Height)}
		contents = append(contents, padded)
	}
	if hasSub {
		lowerKern := dimen.Max(m.em(c.LowerLimitGapMin), m.em(c.LowerLimitBaselineDropMin).Sub(sub.Height)).Sub(base.Depth)
		padded := centerPad(sub, targetWidth)
		padded.Offset = dimen.Point{Y: sub.Height.Add(lowerKern)}
		contents = append(contents, padded)
	}
	return packAbsolute(contents), nil
}

// centerPad wraps l in a Layout of the requested width with l centered
// inside, or returns l unchanged if it is already at least that wide.
func centerPad(l Layout, width dimen.Scalar[dimen.Px]) Layout {
	if width <= l.Width {
		return l
	}
	pad := width.Sub(l.Width).Scale(0.5)
	child := l
	child.Offset.X = child.Offset.X.Add(pad)
	child.Alignment = AlignCenter
	return Layout{
		Width: width, Height: l.Height, Depth: l.Depth,
		Variant: HorizontalBox{Contents: []Layout{child}},
	}
}
