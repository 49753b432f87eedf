package ui

import (
	"strconv"
	"strings"

	"github.com/ironsheep/group-photo-labeler/internal/render"
)

// Label mode choices in the names form, in display order.
var modeChoices = []struct {
	label string
	mode  render.LabelMode
}{
	{"Nummer + Name", render.ModeBoth},
	{"nur Nummer", render.ModeNumber},
	{"nur Name", render.ModeName},
}

func modeLabels() []string {
	out := make([]string, len(modeChoices))
	for i, c := range modeChoices {
		out[i] = c.label
	}
	return out
}

func labelFor(m render.LabelMode) string {
	for _, c := range modeChoices {
		if c.mode == m {
			return c.label
		}
	}
	return modeChoices[0].label
}

// formSettings holds the render controls of the names form as entered.
type formSettings struct {
	Mode         string
	Circle       bool
	AppendLegend bool
	FontScale    string
	Thickness    string
	Pad          string
}

func settingsFrom(style render.Style, appendLegend bool) formSettings {
	return formSettings{
		Mode:         labelFor(style.LabelMode),
		Circle:       style.BadgeShape == render.ShapeCircle,
		AppendLegend: appendLegend,
		FontScale:    strconv.FormatFloat(style.FontScale, 'g', -1, 64),
		Thickness:    strconv.Itoa(style.FontThickness),
		Pad:          strconv.Itoa(style.BadgePad),
	}
}

// apply returns base with the form's settings. A number that does not
// parse, or is out of range, keeps the value from base.
func (fs formSettings) apply(base render.Style) render.Style {
	out := base
	for _, c := range modeChoices {
		if c.label == fs.Mode {
			out.LabelMode = c.mode
		}
	}
	out.BadgeShape = render.ShapeRect
	if fs.Circle {
		out.BadgeShape = render.ShapeCircle
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(fs.FontScale), 64); err == nil && f > 0 {
		out.FontScale = f
	}
	if n, err := strconv.Atoi(strings.TrimSpace(fs.Thickness)); err == nil && n >= 1 {
		out.FontThickness = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(fs.Pad)); err == nil && n >= 0 {
		out.BadgePad = n
	}
	return out
}
