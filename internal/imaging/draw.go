package imaging

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Canvas draws outlines, badges and text onto its own copy of an image.
type Canvas struct {
	dc *gg.Context
}

// NewCanvas returns a canvas holding a copy of img. img is not modified.
func NewCanvas(img image.Image) *Canvas {
	return &Canvas{dc: gg.NewContextForImage(Clone(img))}
}

// NewBlankCanvas returns a width x height canvas filled with bg.
func NewBlankCanvas(width, height int, bg color.Color) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.dc.Width() }

// Image returns a copy of the current canvas contents.
func (c *Canvas) Image() *image.NRGBA {
	return Clone(c.dc.Image())
}

// FillRect paints r with col. The rectangle is clipped to the canvas.
func (c *Canvas) FillRect(r image.Rectangle, col color.Color) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	c.dc.SetColor(col)
	c.rect(r)
	c.dc.Fill()
}

// StrokeRect draws the outline of r with the given line thickness. The line
// is centered on the rectangle edges, so the corner pixels at r.Min and
// r.Max both lie on it.
func (c *Canvas) StrokeRect(r image.Rectangle, thickness int, col color.Color) {
	if thickness < 1 {
		thickness = 1
	}
	r = r.Canon()
	half := thickness / 2
	outer := image.Rect(r.Min.X-half, r.Min.Y-half, r.Max.X+thickness-half, r.Max.Y+thickness-half)
	inner := outer.Inset(thickness)

	// Even-odd fill of outer and inner forms the ring.
	c.dc.SetColor(col)
	c.dc.SetFillRuleEvenOdd()
	c.rect(outer)
	if !inner.Empty() {
		c.rect(inner)
	}
	c.dc.Fill()
	c.dc.SetFillRuleWinding()
}

// FillDisc paints a filled circle centered on pixel (cx, cy) that reaches
// pixel (cx+radius, cy).
func (c *Canvas) FillDisc(cx, cy, radius int, col color.Color) {
	if radius <= 0 {
		return
	}
	c.dc.SetColor(col)
	c.dc.DrawCircle(float64(cx)+0.5, float64(cy)+0.5, float64(radius)+0.5)
	c.dc.Fill()
}

// DrawText renders s with f, its baseline starting at (x, baseline).
func (c *Canvas) DrawText(f *Font, x, baseline int, s string, col color.Color) {
	c.dc.SetFontFace(f.face)
	c.dc.SetColor(col)
	for i := 0; i < f.strokes; i++ {
		c.dc.DrawString(s, float64(x+i), float64(baseline))
	}
}

func (c *Canvas) rect(r image.Rectangle) {
	c.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
}
