package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// GridImage renders a grid as a grayscale image: true cells are white (255),
// false cells black (0).
func GridImage(g *Grid) *image.Gray {
	img := image.NewGray(g.Bounds())
	for i, c := range g.Cells {
		if c {
			img.Pix[i] = 255
		}
	}
	return img
}

// SaveGrid writes a grid to disk as a 0/255 grayscale image. The format is
// chosen from the file extension.
func SaveGrid(path string, g *Grid) error {
	if err := imaging.Save(GridImage(g), path); err != nil {
		return fmt.Errorf("failed to save grid: %w", err)
	}
	return nil
}

// SaveImage writes img to disk, choosing the format from the file extension.
// JPEG output uses quality 95.
func SaveImage(path string, img image.Image) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
