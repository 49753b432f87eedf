package detection

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/ironsheep/group-photo-labeler/internal/box"
)

// ErrDetectorUnavailable is returned when no face detector can be set up:
// the cascade file is missing or unreadable, or the binary was built
// without cgo.
var ErrDetectorUnavailable = errors.New("face detector unavailable")

// CascadeFile is the OpenCV frontal face cascade used by default.
const CascadeFile = "haarcascade_frontalface_default.xml"

// CascadeSearchPaths lists directories checked for CascadeFile when no
// explicit path is configured.
var CascadeSearchPaths = []string{
	"/usr/share/opencv4/haarcascades",
	"/usr/local/share/opencv4/haarcascades",
	"/usr/share/opencv/haarcascades",
	"/usr/local/share/opencv/haarcascades",
	"/opt/homebrew/share/opencv4/haarcascades",
}

// Detector finds faces in an image.
type Detector interface {
	// Detect returns face boxes in image coordinates, unnumbered.
	Detect(ctx context.Context, img image.Image) ([]box.Box, error)
}

// Params tunes the cascade search.
type Params struct {
	// ScaleFactor is the image pyramid step, must be > 1.
	ScaleFactor float64

	// MinNeighbors is how many overlapping hits a face needs to be kept.
	MinNeighbors int

	// MinSize is the smallest face edge in pixels.
	MinSize int

	// Padding grows every hit on each side before clamping.
	Padding int
}

// DefaultParams returns the standard search parameters.
func DefaultParams() Params {
	return Params{
		ScaleFactor:  1.2,
		MinNeighbors: 5,
		MinSize:      40,
		Padding:      6,
	}
}

// Validate reports parameters the cascade would reject.
func (p Params) Validate() error {
	if p.ScaleFactor <= 1 {
		return fmt.Errorf("scale factor must be greater than 1, got %v", p.ScaleFactor)
	}
	if p.MinNeighbors < 0 {
		return fmt.Errorf("min neighbors must not be negative, got %d", p.MinNeighbors)
	}
	if p.MinSize < 0 {
		return fmt.Errorf("min size must not be negative, got %d", p.MinSize)
	}
	if p.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %d", p.Padding)
	}
	return nil
}

// PadAndClamp grows each rectangle by padding on every side, clamps it to
// bounds and converts it to a box. Rectangles left empty are dropped.
//
// The padded box starts at max(0, x-p), max(0, y-p) and is at most
// w+2p by h+2p, cut off at the right and bottom image edges.
func PadAndClamp(rects []image.Rectangle, bounds image.Rectangle, padding int) []box.Box {
	out := make([]box.Box, 0, len(rects))
	W, H := bounds.Dx(), bounds.Dy()
	for _, r := range rects {
		r = r.Canon()
		x := max(0, r.Min.X-padding)
		y := max(0, r.Min.Y-padding)
		w := min(W-x, r.Dx()+2*padding)
		h := min(H-y, r.Dy()+2*padding)
		if w <= 0 || h <= 0 {
			continue
		}
		out = append(out, box.New(x, y, w, h))
	}
	return out
}

// ResolveCascade returns the cascade file to load. An explicit path must
// exist; otherwise CascadeSearchPaths are tried in order.
func ResolveCascade(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: cascade %s: %v", ErrDetectorUnavailable, explicit, err)
		}
		return explicit, nil
	}
	for _, dir := range CascadeSearchPaths {
		p := filepath.Join(dir, CascadeFile)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s not found in %v", ErrDetectorUnavailable, CascadeFile, CascadeSearchPaths)
}
