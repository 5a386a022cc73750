package detection

import (
	"fmt"

	"github.com/ironsheep/stripe-locator/internal/imaging"
)

// MinPatternSize is the smallest supported stripe pattern height.
const MinPatternSize = 9

// stripeBands is the number of alternating bands in a stripe pattern.
const stripeBands = 5

// Run is a vertical run of pattern rows [Start, End) sharing one value.
type Run struct {
	Start int
	End   int
	Value bool
}

// StripePattern is a Width×Size reference image of five horizontal bands,
// black/white/black/white/black from the top, and its logical complement.
//
// Bands are BandHeight = (Size-1)/4 rows tall except the last one, which
// takes the remainder. The pattern does not vary along x.
type StripePattern struct {
	Size       int
	Width      int
	BandHeight int

	pattern    *imaging.Grid
	complement *imaging.Grid
	runs       []Run
}

// NewStripePattern builds the pattern and complement for an odd size of at
// least MinPatternSize, replicated across width columns.
func NewStripePattern(size, width int) (*StripePattern, error) {
	if size < MinPatternSize || size%2 == 0 {
		return nil, fmt.Errorf("pattern size must be odd and >= %d, got %d", MinPatternSize, size)
	}
	if width < 1 {
		return nil, fmt.Errorf("pattern width must be positive, got %d", width)
	}

	band := (size - 1) / 4
	p := &StripePattern{
		Size:       size,
		Width:      width,
		BandHeight: band,
		pattern:    imaging.NewGrid(width, size),
		complement: imaging.NewGrid(width, size),
	}

	for i := 0; i < stripeBands; i++ {
		start := i * band
		end := start + band
		if i == stripeBands-1 {
			end = size
		}
		white := i%2 == 1
		p.runs = append(p.runs, Run{Start: start, End: end, Value: white})

		for y := start; y < end; y++ {
			pr := p.pattern.Row(y)
			cr := p.complement.Row(y)
			for x := range pr {
				pr[x] = white
				cr[x] = !white
			}
		}
	}

	return p, nil
}

// Pattern returns the reference grid. Callers must not modify it.
func (p *StripePattern) Pattern() *imaging.Grid { return p.pattern }

// Complement returns the elementwise NOT of the reference grid.
func (p *StripePattern) Complement() *imaging.Grid { return p.complement }

// Runs returns the bands from top to bottom.
func (p *StripePattern) Runs() []Run { return p.runs }

// Half returns the distance from the window centre to its edge.
func (p *StripePattern) Half() int { return (p.Size - 1) / 2 }
