// Package render draws face outlines and ID/name badges onto a copy of the
// source photo.
package render

import (
	"fmt"
	"image"
	"strconv"

	"github.com/ironsheep/group-photo-labeler/internal/box"
	"github.com/ironsheep/group-photo-labeler/internal/imaging"
)

const (
	// BadgeOffset is the gap in pixels between a box top edge and the badge
	// baseline.
	BadgeOffset = 6

	// OutlineThickness is the width of the box outline in pixels.
	OutlineThickness = 2
)

// Label returns the badge text for b. An empty result means no badge.
func Label(b box.Box, mode LabelMode) string {
	switch mode {
	case ModeNumber:
		return strconv.Itoa(b.ID)
	case ModeName:
		return b.Name
	default:
		if b.Name == "" {
			return strconv.Itoa(b.ID)
		}
		return strconv.Itoa(b.ID) + " " + b.Name
	}
}

// Badge is the placement of one label.
type Badge struct {
	// Background is the filled area behind the text. Both corners are
	// painted.
	Background image.Rectangle

	// Origin is the left end of the text baseline.
	Origin image.Point
}

// PlaceBadge positions a badge for text with metrics m above the box whose
// top-left corner is anchor. Badges that would run past the right edge of an
// image width pixels wide are shifted left, but never past x = 0.
func PlaceBadge(anchor image.Point, m imaging.TextMetrics, pad, width int) Badge {
	outer := m.Width + 2*pad
	tx := anchor.X
	ty := max(0, anchor.Y-BadgeOffset)
	if tx+outer > width {
		tx = max(0, width-outer)
	}
	return Badge{
		Background: image.Rect(tx, max(0, ty-m.Height-2*pad), tx+outer, ty+m.Descent+pad),
		Origin:     image.Pt(tx+pad, ty-m.Descent/2),
	}
}

// Annotate returns a copy of src with every box outlined and labeled.
// src is never modified.
func Annotate(src image.Image, boxes []box.Box, style Style) (*image.NRGBA, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	font, err := imaging.NewFont(style.FontScale, style.FontThickness)
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}

	canvas := imaging.NewCanvas(src)
	width := canvas.Width()
	for _, b := range boxes {
		canvas.StrokeRect(b.Rect(), OutlineThickness, style.BoxColor)
		text := Label(b, style.LabelMode)
		if text == "" {
			continue
		}
		badge := PlaceBadge(image.Pt(b.X, b.Y), font.Measure(text), style.BadgePad, width)
		drawBadge(canvas, badge, style)
		canvas.DrawText(font, badge.Origin.X, badge.Origin.Y, text, style.TextColor)
	}
	return canvas.Image(), nil
}

func drawBadge(c *imaging.Canvas, badge Badge, style Style) {
	bg := badge.Background
	switch style.BadgeShape {
	case ShapeCircle:
		center := image.Pt((bg.Min.X+bg.Max.X)/2, (bg.Min.Y+bg.Max.Y)/2)
		radius := max(bg.Dx(), bg.Dy())/2 + 1
		c.FillDisc(center.X, center.Y, radius, style.BadgeColor)
	default:
		c.FillRect(image.Rect(bg.Min.X, bg.Min.Y, bg.Max.X+1, bg.Max.Y+1), style.BadgeColor)
	}
}
