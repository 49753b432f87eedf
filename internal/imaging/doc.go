// Package imaging provides the raster plumbing for the labeler: opening the
// source photo, encoding output files, drawing outlines and badges, and
// rendering text.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For rectangles, Min is inclusive and Max is exclusive
//
// Shapes and text are drawn on a Canvas, a github.com/fogleman/gg context
// over a private copy of the image. Drawing clips to the canvas bounds, so
// callers may pass rectangles that extend past the image edge.
//
// # Copy on Render
//
// Nothing in this package mutates a decoded source image. Renderers start
// from NewCanvas or Clone, which copy the pixels, so the same source can feed
// several render passes (annotated, then annotated plus legend).
//
// # Fonts
//
// Text uses the Go fonts shipped with golang.org/x/image. Sizes are given as
// a scale factor where 1.0 produces digits roughly 22 pixels tall, matching
// the scale convention of the command line flags. Thickness picks the weight:
// 1 is regular, 2 is bold, and every step above 2 adds one pixel of stroke.
//
// # Error Handling
//
// Functions return errors for:
//   - Missing files (wrapping fs.ErrNotExist)
//   - Undecodable image data
//   - Unsupported output extensions
//   - Invalid color strings
package imaging
