package detection

import (
	"image"
	"log"
	"path/filepath"

	"github.com/ironsheep/stripe-locator/internal/imaging"
)

// Summary is the final outcome of one detection run as reported to a
// Diagnostics sink.
type Summary struct {
	BestSize  int
	BestRatio float64
	Point     image.Point
	Found     bool
}

// Diagnostics receives intermediate results of a detection run. Sinks are
// called synchronously from the detecting goroutine and must not modify the
// grids they are handed. Nothing a sink does affects the returned result.
type Diagnostics interface {
	// Classified is called once with the red and white indicator grids.
	Classified(c *Classes)

	// ScaleScanned is called once per ladder entry, in ladder order.
	ScaleScanned(r ScaleReport)

	// Detected is called once with the map the blob was taken from.
	Detected(detection *imaging.Grid, s Summary)
}

type nopSink struct{}

func (nopSink) Classified(*Classes)             {}
func (nopSink) ScaleScanned(ScaleReport)        {}
func (nopSink) Detected(*imaging.Grid, Summary) {}

// LogSink writes a line per scale and a final summary to Logger.
type LogSink struct {
	Logger *log.Logger
}

func (s LogSink) Classified(c *Classes) {
	s.Logger.Printf("[DEBUG] classified %dx%d: red=%d white=%d",
		c.Width(), c.Height(), c.Red.Count(), c.White.Count())
}

func (s LogSink) ScaleScanned(r ScaleReport) {
	status := "kept"
	switch {
	case r.Selected:
		status = "selected"
	case r.Rejected:
		status = "rejected"
	}
	s.Logger.Printf("[DEBUG] mask %d (band %d): best ratio %.4f, %s",
		r.Size, r.BandHeight, r.BestRatio, status)
}

func (s LogSink) Detected(detection *imaging.Grid, sum Summary) {
	if !sum.Found {
		s.Logger.Printf("[DEBUG] no target: best size %d, ratio %.4f", sum.BestSize, sum.BestRatio)
		return
	}
	s.Logger.Printf("[DEBUG] target at (%d, %d): size %d, ratio %.4f, %d cells",
		sum.Point.X, sum.Point.Y, sum.BestSize, sum.BestRatio, detection.Count())
}

// DumpSink saves the indicator grids and the detection map as grayscale
// PNGs named <Name>_red.png, <Name>_white.png and <Name>_match.png in Dir.
// Write failures do not interrupt detection; the first one is kept and
// returned by Err.
type DumpSink struct {
	Dir  string
	Name string

	err error
}

func (s *DumpSink) Classified(c *Classes) {
	s.save("red", c.Red)
	s.save("white", c.White)
}

func (s *DumpSink) ScaleScanned(ScaleReport) {}

func (s *DumpSink) Detected(detection *imaging.Grid, _ Summary) {
	s.save("match", detection)
}

// Err returns the first write error, if any.
func (s *DumpSink) Err() error { return s.err }

func (s *DumpSink) save(suffix string, g *imaging.Grid) {
	if s.err != nil {
		return
	}
	path := filepath.Join(s.Dir, s.Name+"_"+suffix+".png")
	s.err = imaging.SaveGrid(path, g)
}

// MultiSink fans every call out to each sink in order.
type MultiSink []Diagnostics

func (m MultiSink) Classified(c *Classes) {
	for _, d := range m {
		d.Classified(c)
	}
}

func (m MultiSink) ScaleScanned(r ScaleReport) {
	for _, d := range m {
		d.ScaleScanned(r)
	}
}

func (m MultiSink) Detected(detection *imaging.Grid, s Summary) {
	for _, d := range m {
		d.Detected(detection, s)
	}
}
