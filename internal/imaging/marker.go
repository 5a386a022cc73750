package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/disintegration/imaging"
)

// Bullseye geometry used to mark a located target: a filled dot surrounded by
// two rings.
const (
	bullseyeDot       = 5
	bullseyeInner     = 12
	bullseyeOuter     = 24
	bullseyeThickness = 4
)

// DrawBullseye returns a copy of img with a bullseye centred on pt.
//
// pt is relative to the image's top-left corner. The returned image always
// starts at the origin. Parts of the marker that fall outside the image are
// clipped.
func DrawBullseye(img image.Image, pt image.Point, c color.Color) *image.NRGBA {
	dst := imaging.Clone(img)
	fill := color.NRGBAModel.Convert(c).(color.NRGBA)

	half := bullseyeThickness / 2
	reach := bullseyeOuter + half
	bounds := dst.Bounds()

	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			x, y := pt.X+dx, pt.Y+dy
			if !(image.Point{X: x, Y: y}).In(bounds) {
				continue
			}
			d2 := dx*dx + dy*dy
			if d2 <= bullseyeDot*bullseyeDot ||
				inRing(d2, bullseyeInner, half) ||
				inRing(d2, bullseyeOuter, half) {
				dst.SetNRGBA(x, y, fill)
			}
		}
	}
	return dst
}

// inRing reports whether a squared distance lies within half of radius r.
func inRing(d2, r, half int) bool {
	lo, hi := r-half, r+half
	return d2 >= lo*lo && d2 <= hi*hi
}

// ParseHexColor parses a hex color string like "#FF0000" or "#FF000080".
func ParseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
