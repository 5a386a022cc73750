package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// CropResult contains the cropped image data
type CropResult struct {
	X1          int    `json:"x1"`
	Y1          int    `json:"y1"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts a rectangular region from an image and returns it as a
// base64 PNG. Coordinates are relative to the image's top-left corner; x2 and
// y2 are exclusive. A scale other than 1 resizes the crop with Lanczos.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if x1 < 0 || y1 < 0 || x2 > w || y2 > h {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			x1, y1, x2, y2, w, h)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	rect := image.Rect(x1, y1, x2, y2).Add(bounds.Min)
	cropped := imaging.Crop(img, rect)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		X1:          x1,
		Y1:          y1,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// CropAround extracts the square of the given radius centred on pt, clipped
// to the image. It is used to zoom into a located target.
func CropAround(img image.Image, pt image.Point, radius int, scale float64) (*CropResult, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %d", radius)
	}
	bounds := img.Bounds()
	r := image.Rect(pt.X-radius, pt.Y-radius, pt.X+radius+1, pt.Y+radius+1).
		Intersect(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if r.Empty() {
		return nil, fmt.Errorf("point (%d,%d) outside image bounds", pt.X, pt.Y)
	}
	return Crop(img, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, scale)
}
