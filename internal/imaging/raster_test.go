package imaging

import "testing"

func TestGrid_Basics(t *testing.T) {
	g := NewGrid(4, 3)
	if len(g.Cells) != 12 {
		t.Fatalf("cells: got %d, want 12", len(g.Cells))
	}
	if g.Count() != 0 {
		t.Errorf("new grid should be all false, got %d true cells", g.Count())
	}

	g.Set(3, 2, true)
	g.Set(0, 1, true)

	if !g.At(3, 2) || !g.At(0, 1) {
		t.Error("Set cells should read back true")
	}
	if g.At(-1, 0) || g.At(4, 0) || g.At(0, 3) {
		t.Error("out-of-range cells should read false")
	}
	if g.Count() != 2 {
		t.Errorf("Count: got %d, want 2", g.Count())
	}

	row := g.Row(1)
	if len(row) != 4 || !row[0] {
		t.Errorf("Row(1): got %v", row)
	}

	c := g.Clone()
	c.Set(1, 1, true)
	if g.At(1, 1) {
		t.Error("Clone should not share storage")
	}

	g.Clear()
	if g.Count() != 0 {
		t.Error("Clear should reset every cell")
	}
}

func TestNewGrid_NegativeDimensions(t *testing.T) {
	g := NewGrid(-5, 3)
	if g.Width != 0 || len(g.Cells) != 0 {
		t.Errorf("negative width should clamp to zero, got %dx%d", g.Width, g.Height)
	}
}

func TestFloatGrid_Threshold(t *testing.T) {
	f := NewFloatGrid(3, 1)
	f.Set(0, 0, 0.5)
	f.Set(1, 0, 0.84)
	f.Set(2, 0, 0.85)

	g := f.Threshold(0.84)
	want := []bool{false, false, true}
	for i, w := range want {
		if g.Cells[i] != w {
			t.Errorf("cell %d: got %v, want %v (threshold is strict)", i, g.Cells[i], w)
		}
	}

	if f.At(5, 5) != 0 {
		t.Error("out-of-range values should read zero")
	}

	f.Zero()
	for i, v := range f.Values {
		if v != 0 {
			t.Errorf("value %d not zeroed: %v", i, v)
		}
	}
}

func TestColumnTotals(t *testing.T) {
	// Column 0: rows 0,1,4 true; column 1: row 2 true
	g := NewGrid(2, 5)
	g.Set(0, 0, true)
	g.Set(0, 1, true)
	g.Set(0, 4, true)
	g.Set(1, 2, true)

	ct := NewColumnTotals(g)
	if ct.Width() != 2 || ct.Height() != 5 {
		t.Fatalf("dimensions: got %dx%d", ct.Width(), ct.Height())
	}

	tests := []struct {
		x, y0, y1 int
		want      int
	}{
		{0, 0, 5, 3},
		{0, 0, 2, 2},
		{0, 2, 4, 0},
		{0, 4, 5, 1},
		{1, 0, 5, 1},
		{1, 3, 5, 0},
		{1, 2, 2, 0},
	}
	for _, tt := range tests {
		if got := ct.Span(tt.x, tt.y0, tt.y1); got != tt.want {
			t.Errorf("Span(%d,%d,%d): got %d, want %d", tt.x, tt.y0, tt.y1, got, tt.want)
		}
	}

	band := ct.Band(1, 3) // rows 1..3
	if band.Rows() != 3 {
		t.Errorf("band rows: got %d, want 3", band.Rows())
	}
	if got := band.Span(0, 0, 3); got != 1 {
		t.Errorf("band column 0: got %d, want 1", got)
	}
	if got := band.Span(1, 1, 2); got != 1 {
		t.Errorf("band column 1 row 1 (grid row 2): got %d, want 1", got)
	}
}
