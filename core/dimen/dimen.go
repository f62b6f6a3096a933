/*
Package dimen implements dimensions and unit algebra for the layout engine.

Every numeric quantity the layout engine produces is tagged with the unit
it was computed in: font design units straight out of a MATH table
(FUnit), font-relative units (Em), typographic points (Pt), or device
pixels (Px). Mixing units is a compile-time error: Scalar[U] only adds to
or subtracts from another Scalar[U], and the only way to change units is
through an explicit Ratio[A,B] conversion factor or a Font's
font-units-to-em scale.

This generalizes tyse's single scaled-point dimension type (core/dimen.DU)
into a phantom-tagged family, using Go generics in place of the
runtime-assert fallback that non-generic languages require for the same
discipline.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package dimen

import "fmt"

// Unit is the phantom tag for a dimensional scalar. Its only method is
// the unexported unitName, so no type outside this package can satisfy
// it; it exists to make FUnit, Em, Pt, and Px distinct types for the Go
// type checker to key generic instantiations on.
type Unit interface {
	unitName() string
}

// FUnit is the font's internal design-space unit, as found raw in a MATH
// table, before dividing by unitsPerEm.
type FUnit struct{}

func (FUnit) unitName() string { return "funit" }

// Em is a unit relative to the current font size (1em == the font's point
// size).
type Em struct{}

func (Em) unitName() string { return "em" }

// Pt is a typographic point (1/72.27 inch, TeX's printer's point).
type Pt struct{}

func (Pt) unitName() string { return "pt" }

// Px is a device pixel, the unit every finished Layout tree is expressed
// in.
type Px struct{}

func (Px) unitName() string { return "px" }

// Scalar is a dimensional value tagged with unit U. The zero value is a
// zero-length scalar in unit U.
type Scalar[U Unit] float64

// Zero is the zero-length scalar in any unit.
func Zero[U Unit]() Scalar[U] { return Scalar[U](0) }

// New constructs a Scalar from a plain float64 in unit U. Use this only at
// the boundary where a numeric literal or a font-table value first
// acquires a unit; everywhere else, scalars should flow from arithmetic on
// other scalars.
func New[U Unit](v float64) Scalar[U] { return Scalar[U](v) }

// Float64 strips the unit tag and returns the raw numeric value.
func (s Scalar[U]) Float64() float64 { return float64(s) }

// Add returns s+o. Both operands must already share unit U — the type
// system enforces this at the call site.
func (s Scalar[U]) Add(o Scalar[U]) Scalar[U] { return s + o }

// Sub returns s-o.
func (s Scalar[U]) Sub(o Scalar[U]) Scalar[U] { return s - o }

// Neg returns -s.
func (s Scalar[U]) Neg() Scalar[U] { return -s }

// Scale multiplies a scalar by a dimensionless factor (e.g. a style's
// percent-scale-down).
func (s Scalar[U]) Scale(factor float64) Scalar[U] { return Scalar[U](float64(s) * factor) }

// Min returns the smaller of two scalars in the same unit.
func Min[U Unit](a, b Scalar[U]) Scalar[U] {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two scalars in the same unit.
func Max[U Unit](a, b Scalar[U]) Scalar[U] {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts v to the closed interval [lo, hi].
func Clamp[U Unit](v, lo, hi Scalar[U]) Scalar[U] {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// String renders a scalar with its unit suffix, e.g. "12.5em".
func (s Scalar[U]) String() string {
	var zero U
	return fmt.Sprintf("%g%s", float64(s), zero.unitName())
}

// Ratio is a dimensionless quotient of two units, A/B. A Ratio[U,U] is
// unitless (e.g. a percent-scale-down factor expressed as a ratio of the
// same unit to itself).
type Ratio[A, B Unit] float64

// NewRatio constructs a Ratio from a raw factor.
func NewRatio[A, B Unit](v float64) Ratio[A, B] { return Ratio[A, B](v) }

// Float64 strips the tag and returns the raw factor.
func (r Ratio[A, B]) Float64() float64 { return float64(r) }

// Convert multiplies a Scalar[B] by a Ratio[A,B], producing a Scalar[A].
// This realizes spec's "multiplication by Ratio<U,V> converts V to U".
func Convert[A, B Unit](s Scalar[B], r Ratio[A, B]) Scalar[A] {
	return Scalar[A](float64(s) * float64(r))
}

// DivideBy divides a Scalar[A] by a Scalar[B], producing a Ratio[A,B].
// This realizes spec's "division of U by V yields Ratio<U,V>".
func DivideBy[A, B Unit](a Scalar[A], b Scalar[B]) Ratio[A, B] {
	return Ratio[A, B](float64(a) / float64(b))
}

// Invert returns the reciprocal ratio B/A.
func Invert[A, B Unit](r Ratio[A, B]) Ratio[B, A] {
	return Ratio[B, A](1.0 / float64(r))
}

// Point is an (x, y) position in pixel space, the coordinate system the
// renderer driver walks in (Y grows downward from the baseline, per
// spec §4.5).
type Point struct {
	X, Y Scalar[Px]
}

// Origin is the zero point.
var Origin = Point{}

// Shift translates p by vector, returning the new point.
func (p Point) Shift(vector Point) Point {
	return Point{p.X + vector.X, p.Y + vector.Y}
}

// Rect is an axis-aligned rectangle in pixel space, used for rule
// commands and debug boxes.
type Rect struct {
	TopLeft, BottomRight Point
}

// Width returns BottomRight.X - TopLeft.X.
func (r Rect) Width() Scalar[Px] { return r.BottomRight.X - r.TopLeft.X }

// Height returns BottomRight.Y - TopLeft.Y.
func (r Rect) Height() Scalar[Px] { return r.BottomRight.Y - r.TopLeft.Y }
