package layout

import (
	"github.com/npillmayer/mathtyp/core/dimen"
	"github.com/npillmayer/mathtyp/engine/mathtext/parse"
)

// Document-level vertical spacing parameters spec §4.4's "Array"
// paragraph names but that live outside the font's MATH table (they are
// TeX's \baselineskip-family document parameters, not MATH constants).
// Fixed at plain TeX's defaults, scaled by em the way TeX itself scales
// them from the current font's design size.
const (
	baselineSkipEm   = 1.2
	lineSkipEm       = 0.1
	lineSkipLimitEm  = 0.0
	boxSeparationEm  = 0.0
	arrayColumnSepEm = 0.5
	arrayRuleWidthEm = 0.04
	doubleRuleSepEm  = 0.2
)

// layoutArray realizes spec §4.4's "Array" paragraph: per-column widths,
// per-row baseline distances following TeX's \baselineskip/\lineskip
// rule, column alignment, vertical-bar rules, and optional flanking
// delimiters, all centered on the math axis.
func layoutArray(a parse.Array, m Metrics, style Style) (Layout, error) {
	rows := len(a.Rows)
	cols := len(a.Columns.Alignment)
	cellStyle := a.CellStyle

	cells := make([][]Layout, rows)
	colWidths := make([]dimen.Scalar[dimen.Px], cols)
	for r, row := range a.Rows {
		cells[r] = make([]Layout, cols)
		for c := 0; c < cols && c < len(row); c++ {
			lay, err := typesetList(row[c], m, cellStyle)
			if err != nil {
				return Layout{}, err
			}
			cells[r][c] = lay
			colWidths[c] = dimen.Max(colWidths[c], lay.Width)
		}
	}

	if rows == 0 || cols == 0 {
		// spec §8's boundary behavior: an empty array is a zero-width,
		// axis-centered node.
		return Layout{}, nil
	}

	baselineSkip := m.em(dimen.New[dimen.Em](baselineSkipEm))
	lineSkip := m.em(dimen.New[dimen.Em](lineSkipEm))
	lineSkipLimit := m.em(dimen.New[dimen.Em](lineSkipLimitEm))
	strutHeight := baselineSkip.Scale(0.7)

	rowHeights := make([]dimen.Scalar[dimen.Px], rows)
	rowDepths := make([]dimen.Scalar[dimen.Px], rows)
	baselineY := make([]dimen.Scalar[dimen.Px], rows)
	for r := 0; r < rows; r++ {
		var h, d dimen.Scalar[dimen.Px]
		for c := 0; c < cols; c++ {
			h = dimen.Max(h, cells[r][c].Height)
			d = dimen.Min(d, cells[r][c].Depth)
		}
		rowHeights[r], rowDepths[r] = h, d

		if r == 0 {
			baselineY[r] = dimen.Max(h, strutHeight)
			continue
		}
		// spec §4.4: natural spacing exceeding baselineSkip-lineSkipLimit
		// falls back to box_separation+lineSkip; otherwise baselineSkip.
		natural := h.Sub(rowDepths[r-1])
		var dist dimen.Scalar[dimen.Px]
		if natural > baselineSkip.Sub(lineSkipLimit) {
			dist = m.em(dimen.New[dimen.Em](boxSeparationEm)).Add(lineSkip)
		} else {
			dist = baselineSkip
		}
		dist = dist.Add(m.em(a.RowSepExtra))
		baselineY[r] = baselineY[r-1].Add(dist)
	}
	totalHeight := baselineY[0]
	totalDepth := baselineY[rows-1].Add(rowDepths[rows-1]).Neg()
	axis := m.em(m.C.AxisHeight)

	// All Y offsets below are relative to row 0's baseline (this array's
	// own reference origin), Y-down positive.
	var cursor dimen.Scalar[dimen.Px]
	contents := []Layout{}
	vbar := func() Layout {
		return Layout{
			Width: m.em(dimen.New[dimen.Em](arrayRuleWidthEm)),
			Height: totalHeight, Depth: totalDepth,
			Variant: Rule{},
		}
	}
	gridCells := make([]Layout, rows*cols)
	var gridLeft, gridRight dimen.Scalar[dimen.Px]
	for c := 0; c < cols; c++ {
		sep := a.Columns.Separators[c]
		for b := 0; b < sep.Bars; b++ {
			rule := vbar()
			rule.Offset.X = cursor
			contents = append(contents, rule)
			cursor = cursor.Add(rule.Width)
			if b+1 < sep.Bars {
				cursor = cursor.Add(m.em(dimen.New[dimen.Em](doubleRuleSepEm)))
			}
		}
		if c > 0 {
			cursor = cursor.Add(m.em(dimen.New[dimen.Em](arrayColumnSepEm)))
		}
		if c == 0 {
			gridLeft = cursor
		}
		for r := 0; r < rows; r++ {
			cell := cells[r][c]
			cell = alignInColumn(cell, a.Columns.Alignment[c], colWidths[c])
			cell.Offset.X = cell.Offset.X.Add(cursor)
			cell.Offset.Y = baselineY[r].Sub(baselineY[0])
			gridCells[r*cols+c] = cell
		}
		cursor = cursor.Add(colWidths[c])
		gridRight = cursor
		if c+1 < cols {
			cursor = cursor.Add(m.em(dimen.New[dimen.Em](arrayColumnSepEm)))
		}
	}
	lastSep := a.Columns.Separators[cols]
	for b := 0; b < lastSep.Bars; b++ {
		rule := vbar()
		rule.Offset.X = cursor
		contents = append(contents, rule)
		cursor = cursor.Add(rule.Width)
	}

	for i := range gridCells {
		if gridCells[i].Variant != nil {
			gridCells[i].Offset.X = gridCells[i].Offset.X.Sub(gridLeft)
		}
	}
	grid := Layout{
		Width: gridRight.Sub(gridLeft), Height: totalHeight, Depth: totalDepth,
		Offset: dimen.Point{X: gridLeft},
		Variant: Grid{
			Rows: rows, Cols: cols, Cells: gridCells,
			RowHeights: rowHeights, RowDepths: rowDepths, ColumnWidths: colWidths,
		},
	}
	contents = append(contents, grid)

	body := packAbsolute(contents)
	body.Offset.Y = body.Height.Add(body.Depth).Scale(0.5).Sub(axis)

	if a.LeftDelim == nil && a.RightDelim == nil {
		return body, nil
	}
	height := dimen.Max(
		body.Height.Scale(m.C.DelimiterFactor),
		body.Height.Sub(m.em(m.C.DelimiterShortFall)),
	)
	out := []Layout{}
	var x dimen.Scalar[dimen.Px]
	if a.LeftDelim != nil {
		l, err := layoutDelimiterGlyph(m, *a.LeftDelim, emToFUnit(m, height))
		if err != nil {
			return Layout{}, err
		}
		l.Offset.X = x
		x = x.Add(l.Width)
		out = append(out, l)
	}
	body.Offset.X = x
	x = x.Add(body.Width)
	out = append(out, body)
	if a.RightDelim != nil {
		r, err := layoutDelimiterGlyph(m, *a.RightDelim, emToFUnit(m, height))
		if err != nil {
			return Layout{}, err
		}
		r.Offset.X = x
		out = append(out, r)
	}
	return packAbsolute(out), nil
}

// alignInColumn pads cell into a box of colWidth, shifting it per a's
// alignment (spec §4.5's generic alignment rule, applied at layout time
// here rather than left to the renderer since array columns need a
// concrete per-cell offset to compute rule/delimiter geometry).
func alignInColumn(cell Layout, align parse.ColumnAlign, colWidth dimen.Scalar[dimen.Px]) Layout {
	if colWidth <= cell.Width {
		return cell
	}
	switch align {
	case parse.AlignRight:
		cell.Offset.X = cell.Offset.X.Add(colWidth.Sub(cell.Width))
	case parse.AlignCenter:
		cell.Offset.X = cell.Offset.X.Add(colWidth.Sub(cell.Width).Scale(0.5))
	}
	return cell
}

// layoutStack realizes spec §4.4's "Substack": an array with one
// centered column, baseline separation from the stack*-family constants,
// centered on the math axis.
func layoutStack(s parse.Stack, m Metrics, style Style) (Layout, error) {
	lines := make([]Layout, len(s.Lines))
	var width dimen.Scalar[dimen.Px]
	for i, nodes := range s.Lines {
		lay, err := typesetList(nodes, m, style)
		if err != nil {
			return Layout{}, err
		}
		lines[i] = lay
		width = dimen.Max(width, lay.Width)
	}
	if len(lines) == 0 {
		return Layout{}, nil
	}

	c := m.C
	display := size(style) == 0
	var gapMin dimen.Scalar[dimen.Px]
	if display {
		gapMin = m.em(c.StackDisplayStyleGapMin)
	} else {
		gapMin = m.em(c.StackGapMin)
	}

	// Offsets below are relative to line 0's baseline, Y-down positive.
	contents := make([]Layout, len(lines))
	var cursor dimen.Scalar[dimen.Px]
	for i, lay := range lines {
		lay = centerPad(lay, width)
		if i > 0 {
			cursor = cursor.Add(lines[i-1].Depth.Neg()).Add(gapMin).Add(lay.Height)
		}
		lay.Offset.Y = cursor
		contents[i] = lay
	}
	axis := m.em(c.AxisHeight)
	whole := packAbsolute(contents)
	whole.Offset.Y = whole.Height.Add(whole.Depth).Scale(0.5).Sub(axis)
	return whole, nil
}
