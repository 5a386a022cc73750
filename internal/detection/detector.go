package detection

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// ErrNotFound reports that the image was scanned but no target matched:
// every size was rejected or the detection map held no region.
var ErrNotFound = errors.New("target not found")

// Options tunes a Detector. The zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// LadderSteps is the number of size increments above the smallest
	// pattern size.
	LadderSteps int

	// RejectRatio is the best window ratio below which a size is dropped.
	RejectRatio float64

	// KeepRatio is the rescaled quality a cell must exceed to be kept.
	KeepRatio float64

	// Workers bounds concurrent size scoring. Zero means GOMAXPROCS.
	Workers int

	// BridgeGaps closes vertical gaps shorter than the winning band
	// height before regions are labelled.
	BridgeGaps bool

	// Diagnostics receives intermediate results. May be nil.
	Diagnostics Diagnostics
}

// DefaultOptions returns the standard detection settings.
func DefaultOptions() Options {
	return Options{
		LadderSteps: DefaultLadderSteps,
		RejectRatio: DefaultRejectRatio,
		KeepRatio:   DefaultKeepRatio,
		BridgeGaps:  true,
	}
}

// Result is the outcome of one detection.
type Result struct {
	// Point is the centroid of the largest matching region. It is the
	// origin when Found is false.
	Point image.Point `json:"point"`

	// Found reports whether a target was located.
	Found bool `json:"found"`

	// Scale is the winning pattern size, or 0.
	Scale int `json:"scale"`

	// Ratio is the winning size's best window ratio.
	Ratio float64 `json:"ratio"`

	// Params is the size ladder that was searched.
	Params MaskParams `json:"params"`

	// Scales reports every ladder entry in order.
	Scales []ScaleReport `json:"scales"`
}

// Detector locates a red/white striped target in photographs. A Detector
// holds no per-image state and is safe for concurrent use as long as its
// Diagnostics sink is.
type Detector struct {
	opts Options
}

// New creates a Detector. Non-positive LadderSteps falls back to the
// default.
func New(opts Options) *Detector {
	if opts.LadderSteps < 1 {
		opts.LadderSteps = DefaultLadderSteps
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = nopSink{}
	}
	return &Detector{opts: opts}
}

// Detect runs the detector with DefaultOptions.
func Detect(img image.Image) (*Result, error) {
	return New(DefaultOptions()).Detect(img)
}

// Detect locates the target in img.
//
// It returns ErrNoScale (wrapped) for a nil, empty or too small image, in
// which case the result is nil. When the image was scanned but nothing
// matched it returns a result with Found unset together with ErrNotFound,
// so the per-scale reports stay available to the caller.
func (d *Detector) Detect(img image.Image) (*Result, error) {
	return d.DetectContext(context.Background(), img)
}

// DetectContext is Detect with cancellation between rows of the scan.
func (d *Detector) DetectContext(ctx context.Context, img image.Image) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image: %w", ErrNoScale)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has zero size: %w", ErrNoScale)
	}

	params := OptimalMaskParams(bounds.Dx(), bounds.Dy(), d.opts.LadderSteps)

	classes := Classify(img)
	d.opts.Diagnostics.Classified(classes)

	scanner := &Scanner{
		Ladder:      params.Ladder(),
		RejectRatio: d.opts.RejectRatio,
		KeepRatio:   d.opts.KeepRatio,
		Workers:     d.opts.Workers,
	}
	scan, err := scanner.Scan(ctx, classes)
	if err != nil {
		return nil, err
	}
	for _, r := range scan.Scales {
		d.opts.Diagnostics.ScaleScanned(r)
	}

	detection := scan.Detection
	if d.opts.BridgeGaps && scan.BandHeight > 1 {
		detection = BridgeGaps(detection, scan.BandHeight-1)
	}

	result := &Result{
		Scale:  scan.BestSize,
		Ratio:  scan.BestRatio,
		Params: params,
		Scales: scan.Scales,
	}

	blob, ok := LargestBlob(FindBlobs(detection))
	if ok {
		result.Point = blob.Centroid()
		result.Found = true
	}

	d.opts.Diagnostics.Detected(detection, Summary{
		BestSize:  result.Scale,
		BestRatio: result.Ratio,
		Point:     result.Point,
		Found:     result.Found,
	})

	if !result.Found {
		return result, ErrNotFound
	}
	return result, nil
}
