package detection

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/stripe-locator/internal/imaging"
)

// Class is the color class a pixel is assigned to.
type Class int

const (
	// ClassNone marks pixels ignored by the matcher.
	ClassNone Class = iota
	// ClassRed marks red-like pixels (saturated red, or warm/purple hues
	// found in gradients between red and white).
	ClassRed
	// ClassWhite marks low-saturation pixels: whites, greys and blacks.
	ClassWhite
)

// String returns the lower-case class name.
func (c Class) String() string {
	switch c {
	case ClassRed:
		return "red"
	case ClassWhite:
		return "white"
	default:
		return "none"
	}
}

// Thresholds on the 0-255 HSV scale, computed with integer arithmetic from
// degrees and percent.
const (
	redHueAbove  = 350 * 255 / 360 // 247
	redHueBelow  = 10 * 255 / 360  // 7
	redSatAbove  = 90 * 255 / 100  // 229
	whiteSatMax  = 31 * 255 / 100  // 79
	warmHueAbove = 240 * 255 / 360 // 170
	warmHueBelow = 30 * 255 / 360  // 21
	warmValAbove = 30 * 255 / 100  // 76
)

// Classes holds the two indicator grids produced for one image. A pixel is
// never set in both.
type Classes struct {
	Red   *imaging.Grid
	White *imaging.Grid
}

// Width returns the width of the classified image.
func (c *Classes) Width() int { return c.Red.Width }

// Height returns the height of the classified image.
func (c *Classes) Height() int { return c.Red.Height }

// ClassifyHSV applies the color rules in priority order; the first rule that
// matches decides the class.
func ClassifyHSV(p imaging.HSV8) Class {
	switch {
	case (p.H > redHueAbove || p.H < redHueBelow) && p.S > redSatAbove:
		return ClassRed
	case p.S <= whiteSatMax:
		return ClassWhite
	case (p.H > warmHueAbove || p.H < warmHueBelow) && p.V > warmValAbove:
		return ClassRed
	default:
		return ClassNone
	}
}

// Classify converts img into its red and white indicator grids. Rows are
// classified in parallel; every row writes only its own cells.
func Classify(img image.Image) *Classes {
	src := clone.AsRGBA(img)
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	classes := &Classes{
		Red:   imaging.NewGrid(w, h),
		White: imaging.NewGrid(w, h),
	}

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			red := classes.Red.Row(y)
			white := classes.White.Row(y)
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := 0; x < w; x++ {
				pix := src.Pix[off+4*x : off+4*x+3]
				switch ClassifyHSV(imaging.ToHSV8(pix[0], pix[1], pix[2])) {
				case ClassRed:
					red[x] = true
				case ClassWhite:
					white[x] = true
				}
			}
		}
	})

	return classes
}
