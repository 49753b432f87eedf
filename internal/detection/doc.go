// Package detection finds candidate face boxes in a photo.
//
// # Detectors
//
// Detector is the seam between the labeling pipeline and a face finder.
// The bundled implementation, CascadeDetector, runs an OpenCV Haar cascade
// through gocv and needs a cgo build with OpenCV installed. Builds without
// cgo get a stub whose constructor returns ErrDetectorUnavailable, so the
// rest of the tool (CSV re-render, legend, names) keeps working.
//
// # Algorithm Overview
//
//  1. Grayscale: the photo is converted to 8-bit gray
//  2. Equalization: the histogram is equalized to even out lighting
//  3. Cascade: multi-scale detection with the configured scale factor,
//     neighbor count and minimum face size
//  4. Padding: each hit is grown by Params.Padding on every side and
//     clamped to the image (see PadAndClamp)
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Cascade Files
//
// The cascade is an XML file shipped with OpenCV, usually
// haarcascade_frontalface_default.xml. ResolveCascade looks at an explicit
// path first and then at the usual install locations.
package detection
