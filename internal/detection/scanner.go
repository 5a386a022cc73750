package detection

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/stripe-locator/internal/imaging"
)

const (
	// DefaultRejectRatio is the best ratio a scale must reach to be kept.
	// A uniform low-saturation region scores about 0.55 against the
	// inverse pattern at every size.
	DefaultRejectRatio = 0.60

	// DefaultKeepRatio is the rescaled quality a cell must exceed to be
	// part of the detection map.
	DefaultKeepRatio = 0.84
)

// ErrNoScale reports that no ladder size could be scanned: the image is
// missing, empty, or smaller than the smallest pattern.
var ErrNoScale = errors.New("no scale could be scanned")

// ScaleReport summarises the scoring of one ladder entry.
type ScaleReport struct {
	Size       int     `json:"size" yaml:"size"`
	BandHeight int     `json:"band_height" yaml:"band_height"`
	BestRatio  float64 `json:"best_ratio" yaml:"best_ratio"`
	Rejected   bool    `json:"rejected" yaml:"rejected"`
	Selected   bool    `json:"selected" yaml:"selected"`
}

// ScanResult is the outcome of scanning every ladder size.
type ScanResult struct {
	// Detection is the thresholded map of the winning size. It is all
	// false when every size was rejected.
	Detection *imaging.Grid

	// BestSize is the winning pattern size, or 0 if none was kept.
	BestSize int

	// BestRatio is the winning size's best window ratio.
	BestRatio float64

	// BandHeight is the band height of the winning pattern.
	BandHeight int

	// Scales holds one report per ladder entry, in ladder order.
	Scales []ScaleReport
}

// Scanner scores the classified image against every size of a ladder and
// keeps the thresholded map of the best one.
type Scanner struct {
	Ladder      []int
	RejectRatio float64
	KeepRatio   float64

	// Workers bounds how many sizes are scored at once. Zero means
	// GOMAXPROCS.
	Workers int
}

// scored is the retained state of one accepted size.
type scored struct {
	index     int
	size      int
	band      int
	ratio     float64
	detection *imaging.Grid
}

// Scan evaluates every ladder size and returns the winner. Sizes are
// scored concurrently; the winner is the highest best ratio, with the
// earlier ladder entry taking ties, so the result does not depend on the
// order in which workers finish.
func (s *Scanner) Scan(ctx context.Context, c *Classes) (*ScanResult, error) {
	if c == nil || c.Width() == 0 || c.Height() == 0 {
		return nil, fmt.Errorf("empty image: %w", ErrNoScale)
	}
	w, h := c.Width(), c.Height()

	fits := false
	for _, size := range s.Ladder {
		if size <= w && size <= h {
			fits = true
			break
		}
	}
	if !fits {
		return nil, fmt.Errorf("image %dx%d is smaller than every pattern size: %w", w, h, ErrNoScale)
	}

	red := imaging.NewColumnTotals(c.Red)
	white := imaging.NewColumnTotals(c.White)

	reports := make([]ScaleReport, len(s.Ladder))

	var (
		mu   sync.Mutex
		best *scored
	)

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, size := range s.Ladder {
		i, size := i, size
		g.Go(func() error {
			pattern, err := NewStripePattern(size, w)
			if err != nil {
				return err
			}
			report := ScaleReport{Size: size, BandHeight: pattern.BandHeight}

			if size > w || size > h {
				report.Rejected = true
				reports[i] = report
				return nil
			}

			quality := scoreBuffers.Get(w, h)
			defer scoreBuffers.Put(quality)

			if err := scoreScale(gctx, pattern, red, white, quality); err != nil {
				return err
			}

			ratio := 0.0
			if len(quality.Values) > 0 {
				ratio = floats.Max(quality.Values)
			}
			report.BestRatio = ratio

			// A zero ratio also covers the case where no window fit.
			if ratio <= 0 || ratio < s.RejectRatio {
				report.Rejected = true
				reports[i] = report
				return nil
			}
			reports[i] = report

			mu.Lock()
			defer mu.Unlock()
			if best != nil && (ratio < best.ratio || (ratio == best.ratio && i > best.index)) {
				return nil
			}
			floats.Scale(1/ratio, quality.Values)
			best = &scored{
				index:     i,
				size:      size,
				band:      pattern.BandHeight,
				ratio:     ratio,
				detection: quality.Threshold(s.KeepRatio),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &ScanResult{Scales: reports}
	if best == nil {
		result.Detection = imaging.NewGrid(w, h)
		return result, nil
	}

	result.Scales[best.index].Selected = true
	result.Detection = best.detection
	result.BestSize = best.size
	result.BestRatio = best.ratio
	result.BandHeight = best.band
	return result, nil
}

// scoreScale fills quality with the window ratio of every cell where the
// S×S window fits inside the image. Other cells are left untouched.
func scoreScale(ctx context.Context, p *StripePattern, red, white *imaging.ColumnTotals, quality *imaging.FloatGrid) error {
	w, h := quality.Width, quality.Height
	size := p.Size
	half := p.Half()
	area := float64(size * size)
	runs := p.Runs()

	forward := make([]int, w)
	reverse := make([]int, w)

	for y := half; y < h-half; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		redBand := red.Band(y-half, size)
		whiteBand := white.Band(y-half, size)

		// Column totals of the forward and reverse combinations over
		// the band. Pattern cells take class A, complement cells class B.
		for x := 0; x < w; x++ {
			f, r := 0, 0
			for _, run := range runs {
				nr := redBand.Span(x, run.Start, run.End)
				nw := whiteBand.Span(x, run.Start, run.End)
				if run.Value {
					f += nr
					r += nw
				} else {
					f += nw
					r += nr
				}
			}
			forward[x] = f
			reverse[x] = r
		}

		sumF, sumR := 0, 0
		for x := 0; x < size; x++ {
			sumF += forward[x]
			sumR += reverse[x]
		}
		for cx := half; cx < w-half; cx++ {
			if cx > half {
				sumF += forward[cx+half] - forward[cx-half-1]
				sumR += reverse[cx+half] - reverse[cx-half-1]
			}
			quality.Set(cx, y, float64(max(sumF, sumR))/area)
		}
	}

	return nil
}
