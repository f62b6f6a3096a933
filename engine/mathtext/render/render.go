/*
Package render implements the renderer driver spec §4.5 describes: a
stateless recursive walk of a resolved `layout.Layout` tree issuing
drawing commands to an arbitrary `Backend`. Every position the tree
carries has already been resolved by the layout engine (`layout.Layout`'s
own doc comment), so the driver's only job is to cumulate offsets on its
way down and translate the signed-depth, Y-down convention into the
concrete calls a backend expects — it never recomputes a placement
decision itself.

Grounded on original_source/src/render/mod.rs's `Renderer::render`/
`render_hbox`/`render_vbox`/`render_node` walk, adapted to mathtyp's
Layout tree where every child's Offset is already absolute relative to
its parent (rather than the original's running cursor stepped by
`node.width` as it walks a flat content slice).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package render

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/mathtyp/core"
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/mathfont"
	"github.com/npillmayer/mathtyp/engine/mathtext/layout"
)

func trace() tracing.Trace {
	return gtrace.CoreTracer
}

// RGBA is a color, spec §4.5's begin_color/end_color payload.
type RGBA struct {
	R, G, B, A uint8
}

// Backend is spec §6's output contract: three sub-contracts — rule,
// symbol, and a color stack — plus the optional debug-box call spec §6
// leaves unspecified and SPEC_FULL.md §7 fixes as a fourth, separately
// opted-in method (see DebugBoxer below). All positions are pixels with
// Y growing downward from the formula's own baseline.
type Backend interface {
	// Rule fills a pos-to-(pos+w,pos+h) rectangle — a fraction bar, a
	// radical overline, an \underline stroke, or an explicit \rule.
	Rule(pos dimen.Point, w, h dimen.Scalar[dimen.Px])
	// Symbol draws gid from font at pos, scaled to scale pixels-per-em.
	Symbol(pos dimen.Point, gid mathfont.GlyphID, scale float64, font mathfont.Font)
	// BeginColor/EndColor bracket a color.Color-wrapped subtree.
	BeginColor(c RGBA)
	EndColor()
}

// DebugBoxer is the optional fourth Backend method SPEC_FULL.md §7 adds:
// a bounding-box call for visual debugging, invoked only when the driver
// is constructed with WithDebugBoxes(true). Grounded on
// original_source/src/render/mod.rs's `GraphicsBackend::bbox`/`Role`.
type DebugBoxer interface {
	DebugBox(pos dimen.Point, w, h dimen.Scalar[dimen.Px], role Role)
}

// Role labels what kind of node a debug box outlines, mirroring the
// original's Role enum.
type Role int

const (
	RoleGlyph Role = iota
	RoleHBox
	RoleVBox
	RoleGrid
)

// Option configures a Driver.
type Option func(*Driver)

// WithDebugBoxes turns on DebugBoxer calls (spec §6's "optional debug-box
// call"), a no-op if the Backend doesn't implement DebugBoxer.
func WithDebugBoxes(on bool) Option {
	return func(d *Driver) { d.debug = on }
}

// Driver walks a Layout tree and issues Backend calls. It holds no
// mutable state beyond its construction-time options, so one Driver
// value may be reused (or shared) across concurrent Render calls — spec
// §5's "no shared mutable structures" extends to the renderer itself.
type Driver struct {
	debug bool
}

// New builds a Driver with the given options.
func New(opts ...Option) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Render walks l, the root of a formula's layout tree (as produced by
// layout.Typeset), and issues out's drawing commands. The root is placed
// with its own baseline at dimen.Origin.
func Render(l layout.Layout, out Backend, opts ...Option) error {
	return New(opts...).Render(l, out)
}

// Render is the Driver method form of the package-level Render, letting
// callers reuse one configured Driver across many formulas.
func (d *Driver) Render(l layout.Layout, out Backend) error {
	trace().Debugf("render: walking layout tree, w=%v h=%v d=%v", l.Width, l.Height, l.Depth)
	return d.walk(l, dimen.Origin, out)
}

// walk recurses over node, which is already positioned at pos (pos is
// node's own baseline/origin in absolute output coordinates). Children
// are visited at pos.Shift(child.Offset) — every Offset in the tree is
// already resolved relative to its immediate parent, so no placement
// arithmetic happens here beyond that single translation.
func (d *Driver) walk(node layout.Layout, pos dimen.Point, out Backend) error {
	switch v := node.Variant.(type) {
	case layout.Glyph:
		d.debugBox(out, pos, node, RoleGlyph)
		out.Symbol(pos, v.GID, v.SizePx, v.Font)
		return nil

	case layout.Rule:
		top := pos.Shift(dimen.Point{Y: node.Height.Neg()})
		out.Rule(top, node.Width, node.Height.Sub(node.Depth))
		return nil

	case layout.Kern:
		return nil

	case layout.Color:
		out.BeginColor(RGBA{R: v.R, G: v.G, B: v.B, A: v.A})
		if err := d.walk(v.Inner, pos, out); err != nil {
			return err
		}
		out.EndColor()
		return nil

	case layout.HorizontalBox:
		d.debugBox(out, pos, node, RoleHBox)
		for _, child := range v.Contents {
			if err := d.walk(child, pos.Shift(child.Offset), out); err != nil {
				return err
			}
		}
		return nil

	case layout.VerticalBox:
		d.debugBox(out, pos, node, RoleVBox)
		for _, child := range v.Contents {
			if err := d.walk(child, pos.Shift(child.Offset), out); err != nil {
				return err
			}
		}
		return nil

	case layout.Grid:
		d.debugBox(out, pos, node, RoleGrid)
		for _, cell := range v.Cells {
			if cell.Variant == nil {
				continue // absent cell, spec §3's Grid "nil Variant marks an absent cell"
			}
			if err := d.walk(cell, pos.Shift(cell.Offset), out); err != nil {
				return err
			}
		}
		return nil
	}
	return core.Error(core.EINTERNAL, "render: unhandled layout variant %T", node.Variant)
}

func (d *Driver) debugBox(out Backend, pos dimen.Point, node layout.Layout, role Role) {
	if !d.debug {
		return
	}
	if dbg, ok := out.(DebugBoxer); ok {
		top := pos.Shift(dimen.Point{Y: node.Height.Neg()})
		dbg.DebugBox(top, node.Width, node.Height.Sub(node.Depth), role)
	}
}
