package detection

import (
	"image"

	"github.com/ironsheep/stripe-locator/internal/imaging"
)

// Blob is an 8-connected region of true cells in a detection map.
type Blob struct {
	// Area is the number of cells in the region.
	Area int

	// Bounds is the smallest rectangle containing every cell.
	Bounds image.Rectangle

	sumX int64
	sumY int64
}

// Centroid returns the mean cell position, truncated toward zero. An empty
// blob has no centroid and returns the origin.
func (b Blob) Centroid() image.Point {
	if b.Area == 0 {
		return image.Point{}
	}
	return image.Point{
		X: int(float64(b.sumX) / float64(b.Area)),
		Y: int(float64(b.sumY) / float64(b.Area)),
	}
}

// FindBlobs labels the connected regions of g in raster order of their
// first cell.
func FindBlobs(g *imaging.Grid) []Blob {
	visited := imaging.NewGrid(g.Width, g.Height)
	var blobs []Blob

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.At(x, y) && !visited.At(x, y) {
				blobs = append(blobs, floodFill(g, visited, x, y))
			}
		}
	}

	return blobs
}

// floodFill collects the region containing (startX, startY).
//
// Uses an explicit stack rather than recursion so large regions cannot
// overflow the goroutine stack. Neighbours are 8-connected.
func floodFill(g, visited *imaging.Grid, startX, startY int) Blob {
	b := Blob{Bounds: image.Rect(startX, startY, startX+1, startY+1)}
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.At(p.X, p.Y) || visited.At(p.X, p.Y) {
			continue
		}
		visited.Set(p.X, p.Y, true)

		b.Area++
		b.sumX += int64(p.X)
		b.sumY += int64(p.Y)
		b.Bounds = b.Bounds.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return b
}

// LargestBlob returns the blob with the greatest area. On equal areas the
// one found first wins. It reports false when there is no blob with a
// positive area.
func LargestBlob(blobs []Blob) (Blob, bool) {
	var best Blob
	for _, b := range blobs {
		if b.Area > best.Area {
			best = b
		}
	}
	return best, best.Area > 0
}

// BridgeGaps returns a copy of g in which every vertical run of false cells
// no longer than maxGap, with true cells directly above and below it in the
// same column, is set to true. Runs touching the top or bottom edge are
// left alone.
func BridgeGaps(g *imaging.Grid, maxGap int) *imaging.Grid {
	out := g.Clone()
	if maxGap < 1 {
		return out
	}

	for x := 0; x < g.Width; x++ {
		last := -1
		for y := 0; y < g.Height; y++ {
			if !g.At(x, y) {
				continue
			}
			if gap := y - last - 1; last >= 0 && gap > 0 && gap <= maxGap {
				for fy := last + 1; fy < y; fy++ {
					out.Set(x, fy, true)
				}
			}
			last = y
		}
	}

	return out
}
