package batch

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/stripe-locator/internal/detection"
)

// Record is the outcome for one listed image.
type Record struct {
	Name       string                  `yaml:"name"`
	X          int                     `yaml:"x"`
	Y          int                     `yaml:"y"`
	Found      bool                    `yaml:"found"`
	Scale      int                     `yaml:"scale,omitempty"`
	Ratio      float64                 `yaml:"ratio,omitempty"`
	DurationMS int64                   `yaml:"duration_ms"`
	Annotated  string                  `yaml:"annotated,omitempty"`
	Error      string                  `yaml:"error,omitempty"`
	Scales     []detection.ScaleReport `yaml:"scales,omitempty"`
}

// Report is the YAML document written after a run.
type Report struct {
	Folder  string   `yaml:"folder"`
	Total   int      `yaml:"total"`
	Found   int      `yaml:"found"`
	Failed  int      `yaml:"failed"`
	Records []Record `yaml:"records"`
}

// NewReport tallies records into a report.
func NewReport(folder string, records []Record) *Report {
	rep := &Report{Folder: folder, Total: len(records), Records: records}
	for _, r := range records {
		switch {
		case r.Error != "":
			rep.Failed++
		case r.Found:
			rep.Found++
		}
	}
	return rep
}

// WriteReport writes a report to a YAML file
func WriteReport(rep *Report, path string) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadReport reads a report from a YAML file
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return nil, err
	}

	return &rep, nil
}

// FormatResults renders the legacy results list: "(x,y)" entries joined by
// commas with no trailing separator.
func FormatResults(records []Record) string {
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = fmt.Sprintf("(%d,%d)", r.X, r.Y)
	}
	return strings.Join(parts, ",")
}
