package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSVColor represents a color in conventional HSV units.
type HSVColor struct {
	H float64 `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S float64 `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	V float64 `json:"v"` // Value: 0-100 percent (0=black, 100=full brightness)
}

// HSV8 is an HSV triple with every channel scaled to 0-255.
//
// Hue is mapped from degrees as round(h*255/360), so 0 and 360 degrees both
// land near 0 and the red band wraps around the top of the range.
type HSV8 struct {
	H uint8 `json:"h"`
	S uint8 `json:"s"`
	V uint8 `json:"v"`
}

// ColorResult contains a color value in the representations the classifier
// and its callers care about.
type ColorResult struct {
	Hex  string   `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor `json:"rgb"`  // RGB components
	HSV  HSVColor `json:"hsv"`  // HSV in degrees and percent
	HSV8 HSV8     `json:"hsv8"` // HSV on the 0-255 scale
}

// ToHSV8 converts 8-bit RGB components to the 0-255 HSV scale.
func ToHSV8(r, g, b uint8) HSV8 {
	h, s, v := rgbColor(r, g, b).Hsv()
	return HSV8{
		H: scaleHue(h),
		S: scaleUnit(s),
		V: scaleUnit(v),
	}
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Coordinates are 0-based relative to the image's top-left corner, so images
// whose bounds do not start at the origin are sampled consistently with the
// rasters built from them.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || y < 0 || x >= bounds.Dx() || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	h, s, v := rgbColor(r8, g8, b8).Hsv()

	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		HSV:  HSVColor{H: round2(h), S: round2(s * 100), V: round2(v * 100)},
		HSV8: ToHSV8(r8, g8, b8),
	}, nil
}

func rgbColor(r, g, b uint8) colorful.Color {
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// scaleHue maps degrees in [0,360) onto 0-255.
func scaleHue(h float64) uint8 {
	if h < 0 {
		h += 360
	}
	return uint8(math.Min(255, math.Round(h*255/360)))
}

func scaleUnit(x float64) uint8 {
	return uint8(math.Min(255, math.Max(0, math.Round(x*255))))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
