package ui

import (
	"image"
	"math"
)

// MinBoxSide is the smallest width and height, in source pixels, of a box
// drawn in the editor. Smaller drags are treated as stray clicks.
const MinBoxSide = 10

// viewport maps positions in a widget onto the source image shown inside it,
// scaled to fit and centered.
type viewport struct {
	src   image.Point // source image size in pixels
	viewW float32
	viewH float32
}

func (v viewport) empty() bool {
	return v.src.X <= 0 || v.src.Y <= 0 || v.viewW <= 0 || v.viewH <= 0
}

// scale is the display size of one source pixel.
func (v viewport) scale() float64 {
	if v.empty() {
		return 1
	}
	return math.Min(float64(v.viewW)/float64(v.src.X), float64(v.viewH)/float64(v.src.Y))
}

// toSource converts a widget position to source pixel coordinates. Points
// in the letterbox area map outside the image.
func (v viewport) toSource(x, y float32) image.Point {
	if v.empty() {
		return image.Pt(int(x), int(y))
	}
	s := v.scale()
	offX := (float64(v.viewW) - float64(v.src.X)*s) / 2
	offY := (float64(v.viewH) - float64(v.src.Y)*s) / 2
	return image.Pt(
		int(math.Floor((float64(x)-offX)/s)),
		int(math.Floor((float64(y)-offY)/s)),
	)
}

// drawnBox returns the canonical rectangle spanned by a drag and whether it
// is large enough to keep.
func drawnBox(from, to image.Point) (image.Rectangle, bool) {
	r := image.Rectangle{Min: from, Max: to}.Canon()
	return r, r.Dx() > MinBoxSide && r.Dy() > MinBoxSide
}
