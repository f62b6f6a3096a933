package layout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 6: "\begin{pmatrix}1&2\\3&4\end{pmatrix}" at Display —
// HBox[left '(' glyph, HBox[Grid(2x2, centered columns)], right ')'
// glyph].
func TestScenario_PMatrix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	lay := typesetSrc(t, `\begin{pmatrix}1&2\\3&4\end{pmatrix}`, Display)
	contents := topLevelContents(t, lay)
	require.Len(t, contents, 1)

	matrixHB, ok := contents[0].Variant.(HorizontalBox)
	require.True(t, ok, "expected pmatrix construct to be a HorizontalBox, got %T", contents[0].Variant)
	require.Len(t, matrixHB.Contents, 3)

	left, body, right := matrixHB.Contents[0], matrixHB.Contents[1], matrixHB.Contents[2]
	_, leftIsGlyph := left.Variant.(Glyph)
	assert.True(t, leftIsGlyph, "expected left delimiter to be a Glyph, got %T", left.Variant)
	_, rightIsGlyph := right.Variant.(Glyph)
	assert.True(t, rightIsGlyph, "expected right delimiter to be a Glyph, got %T", right.Variant)

	bodyHB, ok := body.Variant.(HorizontalBox)
	require.True(t, ok, "expected matrix body to be a HorizontalBox, got %T", body.Variant)
	require.Len(t, bodyHB.Contents, 1)

	grid, ok := bodyHB.Contents[0].Variant.(Grid)
	require.True(t, ok, "expected sole body entry to be a Grid, got %T", bodyHB.Contents[0].Variant)
	assert.Equal(t, 2, grid.Rows)
	assert.Equal(t, 2, grid.Cols)
	require.Len(t, grid.Cells, 4)
	for _, cell := range grid.Cells {
		require.NotNil(t, cell.Variant)
	}

	assertSigns(t, lay)
}

// Boundary: an empty array body lays out to a zero-width node without
// error.
func TestBoundary_EmptyArray(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mathtyp.core")
	defer teardown()

	lay := typesetSrc(t, `\begin{matrix}\end{matrix}`, Display)
	assert.GreaterOrEqual(t, float64(lay.Width), 0.0)
}
