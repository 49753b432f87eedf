package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/group-photo-labeler/internal/render"
)

func TestDefaults(t *testing.T) {
	c := Defaults()
	if c.Style.FontScale != 0.9 || c.Style.FontThickness != 2 || c.Style.BadgePad != 6 {
		t.Errorf("render defaults = %+v", c.Style)
	}
	if c.Legend.StripHeight != 260 || c.Legend.ColWidth != 420 {
		t.Errorf("legend defaults = %+v", c.Legend)
	}
	if c.Detection.MinSize != 40 || c.Detection.Padding != 6 {
		t.Errorf("detection defaults = %+v", c.Detection)
	}
	if c.RowTolerance != 0.75 {
		t.Errorf("RowTolerance = %v, want 0.75", c.RowTolerance)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(EnvFaceCascade, "/tmp/faces.xml")
	t.Setenv(EnvOutDir, "/tmp/out")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvRowTol, "not-a-number")

	c := Load()
	if c.FaceCascade != "/tmp/faces.xml" || c.OutDir != "/tmp/out" || c.LogLevel != "debug" {
		t.Errorf("env not applied: %+v", c)
	}
	if c.RowTolerance != 0.75 {
		t.Errorf("invalid env value should keep default, got %v", c.RowTolerance)
	}

	t.Setenv(EnvRowTol, "1.5")
	if got := Load().RowTolerance; got != 1.5 {
		t.Errorf("RowTolerance = %v, want 1.5", got)
	}
}

func TestPresetA5(t *testing.T) {
	p, err := LookupPreset("A5", "")
	if err != nil {
		t.Fatalf("LookupPreset failed: %v", err)
	}
	c, err := p.Apply(Defaults())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if c.Style.FontScale != 1.4 || c.Style.FontThickness != 3 || c.Style.BadgePad != 8 {
		t.Errorf("render = %+v", c.Style)
	}
	g := c.Legend
	if g.TitleScale != 1.3 || g.FontScale != 1.0 || g.Thickness != 3 ||
		g.StripHeight != 320 || g.LineHeight != 42 || g.ColWidth != 450 {
		t.Errorf("legend = %+v", g)
	}
	// Untouched by the preset.
	if g.ColGap != 48 || g.Margin != 16 || c.Style.BadgeShape != render.ShapeRect {
		t.Errorf("preset changed values it does not set: %+v", c)
	}
}

func TestLookupPreset_Unknown(t *testing.T) {
	if _, err := LookupPreset("poster", ""); err == nil {
		t.Error("LookupPreset should fail for unknown names")
	}
}

func TestLoadPresetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	data := `presets:
  poster:
    render:
      label_mode: number
      badge_shape: circle
      box_color: "#ff0000"
    legend:
      title: "Team 2024"
  a5:
    render:
      font_scale: 2.0
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LookupPreset("poster", path)
	if err != nil {
		t.Fatalf("LookupPreset failed: %v", err)
	}
	c, err := p.Apply(Defaults())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if c.Style.LabelMode != render.ModeNumber || c.Style.BadgeShape != render.ShapeCircle {
		t.Errorf("style = %+v", c.Style)
	}
	if c.Style.BoxColor != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("BoxColor = %v", c.Style.BoxColor)
	}
	if c.Legend.Title != "Team 2024" {
		t.Errorf("Title = %q", c.Legend.Title)
	}

	// File presets shadow built-ins.
	p, err = LookupPreset("a5", path)
	if err != nil {
		t.Fatal(err)
	}
	c, _ = p.Apply(Defaults())
	if c.Style.FontScale != 2.0 || c.Legend.StripHeight != 260 {
		t.Errorf("shadowed a5 = %+v", c)
	}
}

func TestLoadPresetFile_Errors(t *testing.T) {
	if _, err := LoadPresetFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("presets: [not, a, map"), 0o644)
	if _, err := LoadPresetFile(path); err == nil {
		t.Error("malformed yaml should fail")
	}
}

func TestApply_InvalidValues(t *testing.T) {
	bad := "sparkles"
	if _, err := (Preset{Render: RenderOverrides{LabelMode: &bad}}).Apply(Defaults()); err == nil {
		t.Error("invalid label mode should fail")
	}
	if _, err := (Preset{Render: RenderOverrides{BoxColor: &bad}}).Apply(Defaults()); err == nil {
		t.Error("invalid color should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"font scale", func(c *Config) { c.Style.FontScale = 0 }},
		{"scale factor", func(c *Config) { c.Detection.ScaleFactor = 1 }},
		{"strip height", func(c *Config) { c.Legend.StripHeight = 0 }},
		{"line height", func(c *Config) { c.Legend.LineHeight = -1 }},
		{"column width", func(c *Config) { c.Legend.ColWidth = 0 }},
		{"legend thickness", func(c *Config) { c.Legend.Thickness = 0 }},
		{"row tolerance", func(c *Config) { c.RowTolerance = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Defaults()
			tt.modify(&c)
			if err := c.Validate(); err == nil {
				t.Error("Validate should fail")
			}
		})
	}
}
