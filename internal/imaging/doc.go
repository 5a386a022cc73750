// Package imaging provides the image plumbing used by the stripe locator.
//
// This package implements everything that touches pixels without making a
// detection decision: loading and caching photographs, converting colors to
// the 8-bit HSV representation the classifier thresholds on, boolean and
// real-valued rasters, drawing the result marker, and rendering rasters for
// debugging. All operations work with standard Go image.Image types and use a
// coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// Rasters (Grid, FloatGrid) always start at (0,0) regardless of the bounds of
// the image they were derived from.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Grid and FloatGrid are not
// synchronized: concurrent readers are fine once a raster is fully written,
// and concurrent writers must touch disjoint rows.
//
// # HSV Representation
//
// HSV8 scales every channel to 0-255, hue included (0-360 degrees maps onto
// 0-255). Classification thresholds are expressed on that scale.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Malformed marker colors
//   - File I/O errors during image loading or saving
package imaging
