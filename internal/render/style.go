package render

import (
	"fmt"
	"image/color"
	"strings"
)

// LabelMode selects what text a face badge shows.
type LabelMode string

const (
	// ModeNumber shows the ID only.
	ModeNumber LabelMode = "number"
	// ModeName shows the name only; unnamed boxes get no badge.
	ModeName LabelMode = "name"
	// ModeBoth shows "ID Name", or just the ID when the name is empty.
	ModeBoth LabelMode = "both"
)

// ParseLabelMode validates a label mode string.
func ParseLabelMode(s string) (LabelMode, error) {
	switch m := LabelMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeNumber, ModeName, ModeBoth:
		return m, nil
	}
	return "", fmt.Errorf("invalid label mode %q (want number, name or both)", s)
}

// BadgeShape selects the background drawn behind badge text.
type BadgeShape string

const (
	ShapeRect   BadgeShape = "rect"
	ShapeCircle BadgeShape = "circle"
)

// ParseBadgeShape validates a badge shape string.
func ParseBadgeShape(s string) (BadgeShape, error) {
	switch b := BadgeShape(strings.ToLower(strings.TrimSpace(s))); b {
	case ShapeRect, ShapeCircle:
		return b, nil
	}
	return "", fmt.Errorf("invalid badge shape %q (want rect or circle)", s)
}

// Style configures the label renderer. It is passed by value and never
// modified by the renderer.
type Style struct {
	LabelMode     LabelMode
	FontScale     float64
	FontThickness int
	BadgePad      int
	BadgeShape    BadgeShape
	BoxColor      color.NRGBA
	TextColor     color.NRGBA
	BadgeColor    color.NRGBA
}

// Default colors.
var (
	DefaultBoxColor   = color.NRGBA{R: 0, G: 200, B: 0, A: 255}
	DefaultTextColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	DefaultBadgeColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

// DefaultStyle returns the renderer defaults.
func DefaultStyle() Style {
	return Style{
		LabelMode:     ModeBoth,
		FontScale:     0.9,
		FontThickness: 2,
		BadgePad:      6,
		BadgeShape:    ShapeRect,
		BoxColor:      DefaultBoxColor,
		TextColor:     DefaultTextColor,
		BadgeColor:    DefaultBadgeColor,
	}
}

// Validate checks the style for values the renderer cannot draw.
func (s Style) Validate() error {
	if _, err := ParseLabelMode(string(s.LabelMode)); err != nil {
		return err
	}
	if _, err := ParseBadgeShape(string(s.BadgeShape)); err != nil {
		return err
	}
	if s.FontScale <= 0 {
		return fmt.Errorf("font scale must be positive, got %v", s.FontScale)
	}
	if s.FontThickness < 1 {
		return fmt.Errorf("font thickness must be at least 1, got %d", s.FontThickness)
	}
	if s.BadgePad < 0 {
		return fmt.Errorf("badge pad must not be negative, got %d", s.BadgePad)
	}
	return nil
}
