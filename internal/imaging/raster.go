package imaging

import "image"

// Grid is a Width×Height raster of boolean cells stored row-major.
//
// A freshly created Grid is all false. Grids are used for the per-pixel color
// class indicators, the stripe reference patterns and the final detection map.
type Grid struct {
	Width  int
	Height int
	Cells  []bool
}

// NewGrid allocates an all-false grid. Negative dimensions are treated as zero.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]bool, width*height),
	}
}

// At reports the cell at (x, y). Out-of-range coordinates read as false.
func (g *Grid) At(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	return g.Cells[y*g.Width+x]
}

// Set writes the cell at (x, y). The coordinates must be in range.
func (g *Grid) Set(x, y int, v bool) {
	g.Cells[y*g.Width+x] = v
}

// Row returns the cells of row y, aliasing the grid's storage.
func (g *Grid) Row(y int) []bool {
	return g.Cells[y*g.Width : (y+1)*g.Width]
}

// Count returns the number of true cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.Cells {
		if c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, Cells: make([]bool, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}

// Clear resets every cell to false.
func (g *Grid) Clear() {
	for i := range g.Cells {
		g.Cells[i] = false
	}
}

// Bounds returns the grid rectangle anchored at the origin.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// FloatGrid is a Width×Height raster of real values stored row-major.
type FloatGrid struct {
	Width  int
	Height int
	Values []float64
}

// NewFloatGrid allocates a zeroed grid.
func NewFloatGrid(width, height int) *FloatGrid {
	return &FloatGrid{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// At returns the value at (x, y). Out-of-range coordinates read as zero.
func (f *FloatGrid) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0
	}
	return f.Values[y*f.Width+x]
}

// Set writes the value at (x, y). The coordinates must be in range.
func (f *FloatGrid) Set(x, y int, v float64) {
	f.Values[y*f.Width+x] = v
}

// Zero resets every value to zero.
func (f *FloatGrid) Zero() {
	for i := range f.Values {
		f.Values[i] = 0
	}
}

// Threshold returns a grid that is true wherever the value is strictly
// greater than t.
func (f *FloatGrid) Threshold(t float64) *Grid {
	g := NewGrid(f.Width, f.Height)
	for i, v := range f.Values {
		g.Cells[i] = v > t
	}
	return g
}

// ColumnTotals holds, for every column of a Grid, the running count of true
// cells from the top. The count over any vertical span is two lookups.
type ColumnTotals struct {
	width  int
	height int
	sums   []int32 // (height+1) rows of width entries
}

// NewColumnTotals builds the running column counts of g.
func NewColumnTotals(g *Grid) *ColumnTotals {
	w, h := g.Width, g.Height
	sums := make([]int32, (h+1)*w)
	for y := 0; y < h; y++ {
		prev := sums[y*w : (y+1)*w]
		next := sums[(y+1)*w : (y+2)*w]
		row := g.Row(y)
		for x := 0; x < w; x++ {
			next[x] = prev[x]
			if row[x] {
				next[x]++
			}
		}
	}
	return &ColumnTotals{width: w, height: h, sums: sums}
}

// Width returns the number of columns.
func (c *ColumnTotals) Width() int { return c.width }

// Height returns the number of rows of the underlying grid.
func (c *ColumnTotals) Height() int { return c.height }

// Span counts the true cells of column x within rows [y0, y1).
func (c *ColumnTotals) Span(x, y0, y1 int) int {
	return int(c.sums[y1*c.width+x] - c.sums[y0*c.width+x])
}

// Band returns a view of rows [top, top+rows) across the full width.
// The caller must keep the band inside the grid.
func (c *ColumnTotals) Band(top, rows int) Band {
	return Band{totals: c, top: top, rows: rows}
}

// Band is a non-owning horizontal window onto ColumnTotals. Rows are
// addressed relative to the top of the band. A Band only lives for the
// operation that created it and never copies the underlying counts.
type Band struct {
	totals *ColumnTotals
	top    int
	rows   int
}

// Rows returns the height of the band.
func (b Band) Rows() int { return b.rows }

// Span counts the true cells of column x within band rows [r0, r1).
func (b Band) Span(x, r0, r1 int) int {
	return b.totals.Span(x, b.top+r0, b.top+r1)
}
