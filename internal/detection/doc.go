// Package detection locates a vertically standing red and white striped
// target in a photograph.
//
// The pipeline has four stages:
//
//  1. Classification: every pixel is converted to HSV on a 0-255 scale and
//     assigned to the red class, the white class, or neither.
//  2. Stripe patterns: for each candidate size S (odd, at least 9) a
//     reference of five horizontal bands and its complement are built.
//  3. Scale scan: the sizes of a ladder derived from the image dimensions are
//     scored by sliding an S×S window over both class grids. Each window's
//     quality is the fraction of cells agreeing with the pattern in either
//     phase. Sizes whose best window stays under 0.60 are rejected; the best
//     surviving size is rescaled by its best ratio and thresholded at 0.84.
//  4. Blob extraction: the largest connected region of the thresholded map
//     is found and its centroid returned.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at the top-left corner of the image bounds
//   - X increases rightward
//   - Y increases downward
//
// # Outcomes
//
// Detect distinguishes three outcomes: a found target, ErrNotFound when the
// image was scanned but nothing matched, and ErrNoScale when the image is too
// small for any pattern size. The origin is never returned as a real
// detection without Result.Found being set.
//
// # Diagnostics
//
// A Diagnostics sink passed in Options receives the class grids, one report
// per ladder size and the final map. LogSink writes them to a *log.Logger and
// DumpSink saves the grids as PNG files.
package detection
