package layout

import (
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/core/mathfont"
)

// Alignment is how a child layout is positioned within a width wider than
// its own natural width — spec §4.5's "centered alignment shifts child by
// (container.width − child.natural_width)/2; right alignment by
// container.width − child.width".
type Alignment uint8

// The three alignments the renderer driver understands.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Layout is the universal layout-tree node spec §3 names: width, height,
// depth (all in pixels), plus a kind-specific Variant payload. Depth is
// signed (negative below the baseline); every other scalar is
// non-negative. Offset is this node's position relative to its parent's
// origin, already resolved by the layout engine — the renderer driver
// (spec §4.5) only has to cumulate offsets on its way down, never
// recompute them, except where Alignment says a child floats within
// space wider than its own content (handled at the point that child is
// placed into its container, see hbox and vstack below).
type Layout struct {
	Width, Height, Depth dimen.Scalar[dimen.Px]
	Offset               dimen.Point
	Alignment            Alignment
	Variant              Variant
}

// Variant is the closed sum of layout-node kinds spec §3 names. Sealed
// the same way parse.Node is: an unexported marker method.
type Variant interface {
	isVariant()
}

// Glyph is a single positioned glyph reference.
type Glyph struct {
	GID        mathfont.GlyphID
	Font       mathfont.Font
	SizePx     float64 // pixels-per-em scale this glyph was laid out at
	Attachment dimen.Scalar[dimen.Px]
	Italics    dimen.Scalar[dimen.Px]
}

func (Glyph) isVariant() {}

// HorizontalBox stacks its contents left to right; box.Width always
// equals the sum of content widths (spec §8's universal invariant).
type HorizontalBox struct {
	Contents []Layout
}

func (HorizontalBox) isVariant() {}

// VerticalBox stacks its contents top to bottom. Each child carries its
// resolved Offset; vstack sets box.Height to the maximum of
// −child.Offset.Y + child.Height and box.Depth to the minimum of
// −child.Offset.Y + child.Depth. Gaps between children live in those
// offsets, not in Kern children, so box.Height − box.Depth is in general
// not Σ(child.Height − child.Depth) − box.Offset.Y.
type VerticalBox struct {
	Contents []Layout
}

func (VerticalBox) isVariant() {}

// Grid is an array/matrix body: contents addressed by (row, col), with
// per-row height/depth and per-column width already resolved.
type Grid struct {
	Rows        int
	Cols        int
	Cells       []Layout // len == Rows*Cols, row-major; a nil Variant marks an absent cell
	RowHeights  []dimen.Scalar[dimen.Px]
	RowDepths   []dimen.Scalar[dimen.Px]
	ColumnWidths []dimen.Scalar[dimen.Px]
}

func (Grid) isVariant() {}

// Cell returns the layout at (row, col).
func (g Grid) Cell(row, col int) Layout {
	return g.Cells[row*g.Cols+col]
}

// Color wraps Inner with a backend color-stack push/pop (spec §4.5's
// begin_color/end_color commands).
type Color struct {
	R, G, B, A uint8
	Inner      Layout
}

func (Color) isVariant() {}

// Rule is a filled rectangle (a fraction bar, \rule, a radical's
// overline, an \underline stroke).
type Rule struct{}

func (Rule) isVariant() {}

// Kern is empty horizontal (or vertical, inside a VerticalBox) space;
// its extent is carried in the enclosing Layout.Width (or Height).
type Kern struct{}

func (Kern) isVariant() {}

// hbox is a small constructor helper: stacks contents left to right,
// assigning each one's cumulative X offset so that every Layout's Offset
// ends up fully resolved relative to its immediate parent (the renderer
// driver, spec §4.5, never has to re-derive a sequential flow position —
// it only cumulates the Offset it finds). A content's own Offset.Y, if
// already set (e.g. a large operator's axis-centering shift), is left
// untouched.
func hbox(contents []Layout) Layout {
	var h, d dimen.Scalar[dimen.Px]
	var cursor dimen.Scalar[dimen.Px]
	positioned := make([]Layout, len(contents))
	for i, c := range contents {
		c.Offset.X = c.Offset.X.Add(cursor)
		positioned[i] = c
		cursor = cursor.Add(c.Width)
		h = dimen.Max(h, c.Offset.Y.Neg().Add(c.Height))
		d = dimen.Min(d, c.Offset.Y.Neg().Add(c.Depth))
	}
	return Layout{Width: cursor, Height: h, Depth: d, Variant: HorizontalBox{Contents: positioned}}
}

// vbox wraps contents in a Layout whose Height/Depth follow the
// VerticalBox invariant, given an explicit offset and a pre-computed
// total height/depth split (vbox construction always knows the intended
// baseline explicitly — callers drive where the split falls rather than
// having vbox infer it).
func vbox(contents []Layout, width, height, depth dimen.Scalar[dimen.Px], offset dimen.Point) Layout {
	return Layout{
		Width: width, Height: height, Depth: depth,
		Offset:  offset,
		Variant: VerticalBox{Contents: contents},
	}
}

// vstack wraps pre-positioned children (Offset already resolved, same
// convention as packAbsolute) into a VerticalBox, for the constructs
// spec §4.4 names as a genuine top-to-bottom stack rather than a
// left-to-right flow — e.g. the radical's "vbox (padTop, rule, kernGap,
// inner)" composition.
func vstack(contents []Layout) Layout {
	var width, height, depth dimen.Scalar[dimen.Px]
	for _, c := range contents {
		width = dimen.Max(width, c.Offset.X.Add(c.Width))
		height = dimen.Max(height, c.Offset.Y.Neg().Add(c.Height))
		depth = dimen.Min(depth, c.Offset.Y.Neg().Add(c.Depth))
	}
	return Layout{Width: width, Height: height, Depth: depth, Variant: VerticalBox{Contents: contents}}
}
