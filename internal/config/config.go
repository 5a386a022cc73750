// Package config loads stripe-locator settings.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables prefixed with STRIPE_LOCATOR_ in which dots become
// underscores (detector.keep_ratio is STRIPE_LOCATOR_DETECTOR_KEEP_RATIO).
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/stripe-locator/internal/detection"
	"github.com/ironsheep/stripe-locator/internal/imaging"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "STRIPE_LOCATOR"

// DetectorConfig tunes the detection pipeline.
type DetectorConfig struct {
	LadderSteps int     `mapstructure:"ladder_steps"`
	RejectRatio float64 `mapstructure:"reject_ratio"`
	KeepRatio   float64 `mapstructure:"keep_ratio"`
	Workers     int     `mapstructure:"workers"`
	BridgeGaps  bool    `mapstructure:"bridge_gaps"`
}

// BatchConfig describes where the batch driver reads and writes.
type BatchConfig struct {
	Folder     string `mapstructure:"folder"`
	ListFile   string `mapstructure:"list_file"`
	OutputFile string `mapstructure:"output_file"`
	ReportFile string `mapstructure:"report_file"`
	ImageExt   string `mapstructure:"image_ext"`
	Annotate   bool   `mapstructure:"annotate"`
	DebugDir   string `mapstructure:"debug_dir"`
}

// MarkerConfig styles the bullseye drawn on annotated images.
type MarkerConfig struct {
	Color string `mapstructure:"color"`
}

// Config is the full application configuration.
type Config struct {
	Detector DetectorConfig `mapstructure:"detector"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Marker   MarkerConfig   `mapstructure:"marker"`
	LogLevel string         `mapstructure:"log_level"`
}

var defaults = map[string]any{
	"detector.ladder_steps": detection.DefaultLadderSteps,
	"detector.reject_ratio": detection.DefaultRejectRatio,
	"detector.keep_ratio":   detection.DefaultKeepRatio,
	"detector.workers":      0,
	"detector.bridge_gaps":  true,
	"batch.folder":          "Images",
	"batch.list_file":       "input.txt",
	"batch.output_file":     "output.txt",
	"batch.report_file":     "results.yaml",
	"batch.image_ext":       ".jpg",
	"batch.annotate":        true,
	"batch.debug_dir":       "",
	"marker.color":          "#0000FF",
	"log_level":             "info",
}

// Load reads the configuration. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the detector cannot work with.
func (c *Config) Validate() error {
	var errs []error

	d := c.Detector
	if d.LadderSteps < 1 {
		errs = append(errs, fmt.Errorf("detector.ladder_steps must be at least 1, got %d", d.LadderSteps))
	}
	if d.RejectRatio <= 0 || d.RejectRatio > 1 {
		errs = append(errs, fmt.Errorf("detector.reject_ratio must be in (0,1], got %g", d.RejectRatio))
	}
	if d.KeepRatio <= 0 || d.KeepRatio > 1 {
		errs = append(errs, fmt.Errorf("detector.keep_ratio must be in (0,1], got %g", d.KeepRatio))
	}
	if d.Workers < 0 {
		errs = append(errs, fmt.Errorf("detector.workers must not be negative, got %d", d.Workers))
	}

	if c.Batch.ListFile == "" {
		errs = append(errs, errors.New("batch.list_file must be set"))
	}
	if c.Batch.OutputFile == "" {
		errs = append(errs, errors.New("batch.output_file must be set"))
	}
	if _, err := c.Marker.RGBA(); err != nil {
		errs = append(errs, fmt.Errorf("marker.color: %w", err))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel))
	}

	return errors.Join(errs...)
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// Options converts the detector settings. The diagnostics sink is left for
// the caller to attach.
func (d DetectorConfig) Options() detection.Options {
	return detection.Options{
		LadderSteps: d.LadderSteps,
		RejectRatio: d.RejectRatio,
		KeepRatio:   d.KeepRatio,
		Workers:     d.Workers,
		BridgeGaps:  d.BridgeGaps,
	}
}

// RGBA parses the marker color.
func (m MarkerConfig) RGBA() (color.RGBA, error) {
	return imaging.ParseHexColor(m.Color)
}
