package render

import (
	"image"
	"math"
	"strconv"

	"github.com/ironsheep/group-photo-labeler/internal/box"
	"github.com/ironsheep/group-photo-labeler/internal/imaging"
)

// Mode captions shown in the editor.
const (
	CaptionSingleRow = "Modus: Single-Row (links->rechts)"
	CaptionRows      = "Modus: Reihen (oben->unten, links->rechts)"
)

var (
	captionColor = imaging.MustParseHexColor("#141414")
	pendingColor = imaging.MustParseHexColor("#ff0000")
	editColor    = imaging.MustParseHexColor("#00ff00")
)

// ModeCaption returns the caption for the given ordering mode.
func ModeCaption(singleRow bool) string {
	if singleRow {
		return CaptionSingleRow
	}
	return CaptionRows
}

// Frame is one editor redraw.
type Frame struct {
	// Boxes in display order, in source image coordinates.
	Boxes []box.Box

	// Scale maps source coordinates onto the base image handed to Preview.
	Scale float64

	// Caption is drawn in the top-left corner.
	Caption string

	// Pending is the rectangle being dragged out, in source coordinates.
	// The zero rectangle draws nothing.
	Pending image.Rectangle
}

// Preview draws the editor view of f onto a copy of base. Badges show the
// position of each box in f.Boxes (1-based), not its committed ID, and are
// sized to match the final output at f.Scale.
func Preview(base image.Image, f Frame, style Style) (*image.NRGBA, error) {
	scale := f.Scale
	if scale <= 0 {
		scale = 1
	}
	style = previewStyle(style, scale)
	font, err := imaging.NewFont(style.FontScale, style.FontThickness)
	if err != nil {
		return nil, err
	}

	canvas := imaging.NewCanvas(base)
	width := canvas.Width()
	for i, b := range f.Boxes {
		r := scaleRect(b.Rect(), scale)
		canvas.StrokeRect(r, OutlineThickness, editColor)
		text := strconv.Itoa(i + 1)
		badge := PlaceBadge(r.Min, font.Measure(text), style.BadgePad, width)
		drawBadge(canvas, badge, style)
		canvas.DrawText(font, badge.Origin.X, badge.Origin.Y, text, style.TextColor)
	}
	if !f.Pending.Empty() {
		canvas.StrokeRect(scaleRect(f.Pending.Canon(), scale), 1, pendingColor)
	}
	if f.Caption != "" {
		caption, err := imaging.NewFont(0.7, 2)
		if err != nil {
			return nil, err
		}
		canvas.DrawText(caption, 10, 24, f.Caption, captionColor)
	}
	return canvas.Image(), nil
}

// previewStyle shrinks the badge font and padding by scale.
func previewStyle(style Style, scale float64) Style {
	if scale == 1 {
		return style
	}
	style.FontScale *= scale
	style.BadgePad = int(math.Round(float64(style.BadgePad) * scale))
	return style
}

func scaleRect(r image.Rectangle, s float64) image.Rectangle {
	if s == 1 {
		return r
	}
	return image.Rect(
		int(math.Round(float64(r.Min.X)*s)),
		int(math.Round(float64(r.Min.Y)*s)),
		int(math.Round(float64(r.Max.X)*s)),
		int(math.Round(float64(r.Max.Y)*s)),
	)
}
