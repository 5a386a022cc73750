// Package batch processes a folder of photographs listed in a text file,
// the way the field tool is run after a survey.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/stripe-locator/internal/config"
	"github.com/ironsheep/stripe-locator/internal/detection"
	"github.com/ironsheep/stripe-locator/internal/imaging"
)

// Runner drives detection over every image named in the list file.
type Runner struct {
	cfg    *config.Config
	logger *log.Logger
	cache  *imaging.ImageCache
	marker color.RGBA
}

// NewRunner creates a Runner. The configuration must already be valid.
func NewRunner(cfg *config.Config, logger *log.Logger) (*Runner, error) {
	marker, err := cfg.Marker.RGBA()
	if err != nil {
		return nil, fmt.Errorf("invalid marker color: %w", err)
	}
	return &Runner{
		cfg:    cfg,
		logger: logger,
		cache:  imaging.NewImageCache(),
		marker: marker,
	}, nil
}

// ReadList reads a comma-separated list of image base names. Whitespace
// around names is dropped and empty entries are skipped.
func ReadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image list: %w", err)
	}

	var names []string
	for _, part := range strings.Split(string(data), ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Run processes every listed image, then writes the results list and the
// YAML report into the batch folder. A failing image is logged and recorded
// as (0,0) so the results list stays aligned with the input list.
//
// Cancelling ctx stops the run between images; the results gathered so far
// are still written.
func (r *Runner) Run(ctx context.Context) ([]Record, error) {
	folder := r.cfg.Batch.Folder

	names, err := ReadList(filepath.Join(folder, r.cfg.Batch.ListFile))
	if err != nil {
		return nil, err
	}
	r.logger.Printf("Processing %d images from %s", len(names), folder)

	if dir := r.cfg.Batch.DebugDir; dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create debug directory: %w", err)
		}
	}

	records := make([]Record, 0, len(names))
	var runErr error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		records = append(records, r.processImage(ctx, name))
	}

	if err := r.writeOutputs(records); err != nil {
		return records, err
	}
	return records, runErr
}

func (r *Runner) processImage(ctx context.Context, name string) Record {
	rec := Record{Name: name}
	path := filepath.Join(r.cfg.Batch.Folder, name+r.cfg.Batch.ImageExt)

	img, err := r.cache.Load(path)
	if err != nil {
		rec.Error = err.Error()
		r.logger.Printf("[ERROR] %s: %v", name, err)
		return rec
	}
	defer r.cache.Evict(path)

	opts := r.cfg.Detector.Options()
	var sinks detection.MultiSink
	if r.cfg.Debug() {
		sinks = append(sinks, detection.LogSink{Logger: r.logger})
	}
	var dump *detection.DumpSink
	if dir := r.cfg.Batch.DebugDir; dir != "" {
		dump = &detection.DumpSink{Dir: dir, Name: name}
		sinks = append(sinks, dump)
	}
	if len(sinks) > 0 {
		opts.Diagnostics = sinks
	}

	start := time.Now()
	res, err := detection.New(opts).DetectContext(ctx, img)
	elapsed := time.Since(start)
	rec.DurationMS = elapsed.Milliseconds()

	if dump != nil && dump.Err() != nil {
		r.logger.Printf("[WARN] %s: debug rasters not saved: %v", name, dump.Err())
	}

	switch {
	case errors.Is(err, detection.ErrNotFound):
		rec.Scales = res.Scales
		r.logger.Printf("%s: target not found (%v)", name, elapsed)
		return rec
	case err != nil:
		rec.Error = err.Error()
		r.logger.Printf("[ERROR] %s: %v", name, err)
		return rec
	}

	rec.X, rec.Y = res.Point.X, res.Point.Y
	rec.Found = true
	rec.Scale = res.Scale
	rec.Ratio = res.Ratio
	rec.Scales = res.Scales
	r.logger.Printf("Done: (%d, %d) (%v)", rec.X, rec.Y, elapsed)

	if r.cfg.Batch.Annotate {
		out, err := r.annotate(img, name, res.Point)
		if err != nil {
			r.logger.Printf("[WARN] %s: %v", name, err)
		} else {
			rec.Annotated = out
		}
	}

	return rec
}

// annotate saves a copy of img with a bullseye over pt as <name>_final.jpg.
func (r *Runner) annotate(img image.Image, name string, pt image.Point) (string, error) {
	out := filepath.Join(r.cfg.Batch.Folder, name+"_final.jpg")
	if err := imaging.SaveImage(out, imaging.DrawBullseye(img, pt, r.marker)); err != nil {
		return "", err
	}
	return out, nil
}

func (r *Runner) writeOutputs(records []Record) error {
	folder := r.cfg.Batch.Folder

	out := filepath.Join(folder, r.cfg.Batch.OutputFile)
	if err := os.WriteFile(out, []byte(FormatResults(records)), 0o644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if r.cfg.Batch.ReportFile == "" {
		return nil
	}
	rep := NewReport(folder, records)
	if err := WriteReport(rep, filepath.Join(folder, r.cfg.Batch.ReportFile)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	r.logger.Printf("Found %d of %d targets", rep.Found, rep.Total)
	return nil
}
