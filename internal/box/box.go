// Package box defines the face region record shared by every stage of the
// labeling pipeline.
//
// Coordinates follow the image convention used throughout the module: origin
// at the top-left corner, X grows rightward, Y grows downward. A Box stores
// its top-left corner plus width and height in whole pixels.
package box

import (
	"fmt"
	"image"
)

// Unassigned is the ID carried by a box before ordering gives it a number.
const Unassigned = -1

// Box is a detected or hand-drawn face region.
type Box struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	W    int    `json:"w"`
	H    int    `json:"h"`
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// New returns an unnumbered box with the given geometry.
func New(x, y, w, h int) Box {
	return Box{X: x, Y: y, W: w, H: h, ID: Unassigned}
}

// FromRect converts an image rectangle into an unnumbered box.
func FromRect(r image.Rectangle) Box {
	r = r.Canon()
	return New(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// Rect returns the box as an image rectangle. Max is exclusive.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
}

// Center returns the geometric center of the box.
func (b Box) Center() (float64, float64) {
	return float64(b.X) + float64(b.W)/2.0, float64(b.Y) + float64(b.H)/2.0
}

// CenterY returns the vertical center used for row clustering.
func (b Box) CenterY() float64 {
	return float64(b.Y) + float64(b.H)/2.0
}

// Contains reports whether p lies on or inside the box outline. All four
// edges are inclusive so a click on the drawn border still hits the box.
func (b Box) Contains(p image.Point) bool {
	return b.X <= p.X && p.X <= b.X+b.W && b.Y <= p.Y && p.Y <= b.Y+b.H
}

// Valid reports whether the geometry satisfies the basic invariants.
func (b Box) Valid() bool {
	return b.W > 0 && b.H > 0 && b.X >= 0 && b.Y >= 0
}

// Clamp intersects the box with bounds. The second result is false when
// nothing of the box is left inside the image.
func (b Box) Clamp(bounds image.Rectangle) (Box, bool) {
	r := b.Rect().Canon().Intersect(bounds)
	if r.Empty() {
		return b, false
	}
	out := b
	out.X, out.Y, out.W, out.H = r.Min.X, r.Min.Y, r.Dx(), r.Dy()
	return out, true
}

// Moved returns a copy of the box with its top-left corner at origin.
func (b Box) Moved(origin image.Point) Box {
	b.X, b.Y = origin.X, origin.Y
	return b
}

// String formats the box for log and prompt output.
func (b Box) String() string {
	return fmt.Sprintf("x=%d, y=%d, w=%d, h=%d", b.X, b.Y, b.W, b.H)
}

// Rects extracts the geometry of boxes in order.
func Rects(boxes []Box) []image.Rectangle {
	out := make([]image.Rectangle, len(boxes))
	for i, b := range boxes {
		out[i] = b.Rect()
	}
	return out
}
