package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/group-photo-labeler/internal/detection"
	"github.com/ironsheep/group-photo-labeler/internal/imaging"
	"github.com/ironsheep/group-photo-labeler/internal/legend"
	"github.com/ironsheep/group-photo-labeler/internal/ordering"
	"github.com/ironsheep/group-photo-labeler/internal/render"
)

//go:embed presets.yaml
var presetsYAML []byte

// Environment variables read by Load.
const (
	EnvFaceCascade = "GROUPPHOTO_FACE_CASCADE"
	EnvLogLevel    = "GROUPPHOTO_LOG_LEVEL"
	EnvOutDir      = "GROUPPHOTO_OUTDIR"
	EnvRowTol      = "GROUPPHOTO_ROW_TOL"
)

// Config is the effective configuration of one run.
type Config struct {
	Style        render.Style
	Legend       legend.Geometry
	Detection    detection.Params
	RowTolerance float64
	FaceCascade  string
	OutDir       string
	LogLevel     string
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Style:        render.DefaultStyle(),
		Legend:       legend.DefaultGeometry(),
		Detection:    detection.DefaultParams(),
		RowTolerance: ordering.DefaultRowTolerance,
		LogLevel:     "info",
	}
}

// Load returns Defaults with environment overrides applied.
func Load() Config {
	c := Defaults()
	c.FaceCascade = os.Getenv(EnvFaceCascade)
	c.OutDir = os.Getenv(EnvOutDir)
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.LogLevel = lvl
	}
	c.RowTolerance = envFloat(EnvRowTol, c.RowTolerance)
	return c
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// Preset is a named set of overrides. Nil fields leave the value alone.
type Preset struct {
	Description string          `yaml:"description"`
	Render      RenderOverrides `yaml:"render"`
	Legend      LegendOverrides `yaml:"legend"`
}

type RenderOverrides struct {
	LabelMode     *string  `yaml:"label_mode"`
	FontScale     *float64 `yaml:"font_scale"`
	FontThickness *int     `yaml:"font_thickness"`
	BadgePad      *int     `yaml:"badge_pad"`
	BadgeShape    *string  `yaml:"badge_shape"`
	BoxColor      *string  `yaml:"box_color"`
	TextColor     *string  `yaml:"text_color"`
	BadgeColor    *string  `yaml:"badge_color"`
}

type LegendOverrides struct {
	Title       *string  `yaml:"title"`
	TitleScale  *float64 `yaml:"title_scale"`
	FontScale   *float64 `yaml:"font_scale"`
	Thickness   *int     `yaml:"thickness"`
	StripHeight *int     `yaml:"strip_height"`
	Margin      *int     `yaml:"margin"`
	LineHeight  *int     `yaml:"line_height"`
	ColGap      *int     `yaml:"col_gap"`
	ColWidth    *int     `yaml:"col_width"`
}

type presetFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

// Presets returns the built-in presets.
func Presets() map[string]Preset {
	presets, err := parsePresets(presetsYAML)
	if err != nil {
		// Embedded file, only broken by a bad edit to presets.yaml.
		panic("failed to unmarshal embedded presets.yaml: " + err.Error())
	}
	return presets
}

// LoadPresetFile reads additional presets from a YAML file with the same
// layout as the built-in presets.yaml.
func LoadPresetFile(path string) (map[string]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	presets, err := parsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse preset file %s: %w", path, err)
	}
	return presets, nil
}

func parsePresets(data []byte) (map[string]Preset, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Presets == nil {
		f.Presets = map[string]Preset{}
	}
	return f.Presets, nil
}

// LookupPreset finds name among the built-in presets and, when file is not
// empty, the presets in file. A preset in file shadows a built-in one.
func LookupPreset(name, file string) (Preset, error) {
	presets := Presets()
	if file != "" {
		extra, err := LoadPresetFile(file)
		if err != nil {
			return Preset{}, err
		}
		for k, v := range extra {
			presets[k] = v
		}
	}
	p, ok := presets[strings.ToLower(name)]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(names(presets), ", "))
	}
	return p, nil
}

func names(presets map[string]Preset) []string {
	out := make([]string, 0, len(presets))
	for k := range presets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Apply returns c with the preset's overrides set.
func (p Preset) Apply(c Config) (Config, error) {
	r := p.Render
	if r.LabelMode != nil {
		m, err := render.ParseLabelMode(*r.LabelMode)
		if err != nil {
			return c, err
		}
		c.Style.LabelMode = m
	}
	if r.BadgeShape != nil {
		s, err := render.ParseBadgeShape(*r.BadgeShape)
		if err != nil {
			return c, err
		}
		c.Style.BadgeShape = s
	}
	setFloat(&c.Style.FontScale, r.FontScale)
	setInt(&c.Style.FontThickness, r.FontThickness)
	setInt(&c.Style.BadgePad, r.BadgePad)
	for _, col := range []struct {
		dst *color.NRGBA
		hex *string
	}{
		{&c.Style.BoxColor, r.BoxColor},
		{&c.Style.TextColor, r.TextColor},
		{&c.Style.BadgeColor, r.BadgeColor},
	} {
		if col.hex == nil {
			continue
		}
		v, err := imaging.ParseHexColor(*col.hex)
		if err != nil {
			return c, err
		}
		*col.dst = v
	}

	l := p.Legend
	if l.Title != nil {
		c.Legend.Title = *l.Title
	}
	setFloat(&c.Legend.TitleScale, l.TitleScale)
	setFloat(&c.Legend.FontScale, l.FontScale)
	setInt(&c.Legend.Thickness, l.Thickness)
	setInt(&c.Legend.StripHeight, l.StripHeight)
	setInt(&c.Legend.Margin, l.Margin)
	setInt(&c.Legend.LineHeight, l.LineHeight)
	setInt(&c.Legend.ColGap, l.ColGap)
	setInt(&c.Legend.ColWidth, l.ColWidth)
	return c, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks every section for values the pipeline cannot use.
func (c Config) Validate() error {
	if err := c.Style.Validate(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := c.Detection.Validate(); err != nil {
		return fmt.Errorf("detection: %w", err)
	}
	g := c.Legend
	switch {
	case g.StripHeight <= 0:
		return fmt.Errorf("legend: strip height must be positive, got %d", g.StripHeight)
	case g.LineHeight <= 0:
		return fmt.Errorf("legend: line height must be positive, got %d", g.LineHeight)
	case g.ColWidth <= 0:
		return fmt.Errorf("legend: column width must be positive, got %d", g.ColWidth)
	case g.ColGap < 0 || g.Margin < 0:
		return fmt.Errorf("legend: gap and margin must not be negative")
	case g.FontScale <= 0 || g.TitleScale <= 0:
		return fmt.Errorf("legend: font scales must be positive")
	case g.Thickness < 1:
		return fmt.Errorf("legend: thickness must be at least 1, got %d", g.Thickness)
	}
	if c.RowTolerance <= 0 {
		return fmt.Errorf("row tolerance must be positive, got %v", c.RowTolerance)
	}
	return nil
}
