package main

import (
	"fmt"
	"image/color"

	"github.com/spf13/cobra"

	"github.com/ironsheep/group-photo-labeler/internal/config"
	"github.com/ironsheep/group-photo-labeler/internal/imaging"
	"github.com/ironsheep/group-photo-labeler/internal/render"
)

// mustGetBool gets a bool flag value or panics if the flag doesn't exist.
// Flags are registered in newRootCmd, so an error here is a programming bug.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

func mustGetFloat64(cmd *cobra.Command, name string) float64 {
	val, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		panic(fmt.Sprintf("flag error for --%s: %v", name, err))
	}
	return val
}

func registerFlags(cmd *cobra.Command) {
	d := config.Defaults()
	f := cmd.Flags()

	f.String("outdir", "", "Output directory (default: directory of the image, or $"+config.EnvOutDir+")")
	f.Bool("skip-detection", false, "Load boxes from a CSV instead of detecting and editing them")
	f.String("boxes-csv", "", "Boxes CSV for --skip-detection (default: <stem>_legende.csv next to the image)")
	f.String("names-csv", "", "CSV with id,name columns merged onto the numbered faces")
	f.Bool("prompt-names", false, "Ask for every name on the terminal")
	f.Bool("no-names-gui", false, "Do not open the names form")
	f.Bool("no-names-on-image", false, "Draw numbers only when the label mode is both")
	_ = f.MarkDeprecated("no-names-on-image", "use --label-mode number")
	f.Bool("append-legend", false, "Also write the image with a legend strip below it")
	f.Bool("show", false, "Show the result in a window")

	f.Float64("scale-factor", d.Detection.ScaleFactor, "Detector scale step between image pyramid levels")
	f.Int("min-neighbors", d.Detection.MinNeighbors, "Detector neighbor threshold")
	f.Int("min-size", d.Detection.MinSize, "Smallest face side in pixels")
	f.Int("padding", d.Detection.Padding, "Pixels added around every detected face")
	f.String("face-cascade", "", "Haar cascade XML file (default: $"+config.EnvFaceCascade+" or the OpenCV data directories)")

	f.Float64("row-tol", d.RowTolerance, "Row tolerance as a factor of the median face height")
	f.Bool("force-single-row", false, "Order faces left to right only")

	f.String("preset", "", "Output profile, e.g. a5")
	f.String("preset-file", "", "YAML file with additional output profiles")

	f.String("label-mode", string(d.Style.LabelMode), "Badge text: number, name or both")
	f.String("badge-shape", string(d.Style.BadgeShape), "Badge background: rect or circle")
	f.Float64("font-scale", d.Style.FontScale, "Badge font scale")
	f.Int("font-thickness", d.Style.FontThickness, "Badge font stroke thickness")
	f.Int("badge-pad", d.Style.BadgePad, "Padding inside the badge in pixels")
	f.String("box-color", imaging.HexString(d.Style.BoxColor), "Box outline color")
	f.String("text-color", imaging.HexString(d.Style.TextColor), "Badge text color")
	f.String("badge-color", imaging.HexString(d.Style.BadgeColor), "Badge background color")

	f.String("legend-title", d.Legend.Title, "Legend strip title")
	f.Float64("legend-title-scale", d.Legend.TitleScale, "Legend title font scale")
	f.Float64("legend-font-scale", d.Legend.FontScale, "Legend entry font scale")
	f.Int("legend-thickness", d.Legend.Thickness, "Legend font stroke thickness")
	f.Int("legend-strip-height", d.Legend.StripHeight, "Legend strip height in pixels")
	f.Int("legend-line-height", d.Legend.LineHeight, "Legend line height in pixels")
	f.Int("legend-col-gap", d.Legend.ColGap, "Gap between legend columns in pixels")
	f.Int("legend-col-width", d.Legend.ColWidth, "Legend column width in pixels")

	f.String("log-level", d.LogLevel, "Log level: debug, info, warn, error (or $"+config.EnvLogLevel+")")
	f.Bool("log-json", false, "Log JSON lines instead of console text")
}

// resolveConfig layers the configuration: defaults, then environment, then
// the preset, then every flag set explicitly on the command line.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()

	if name := mustGetString(cmd, "preset"); name != "" {
		p, err := config.LookupPreset(name, mustGetString(cmd, "preset-file"))
		if err != nil {
			return cfg, err
		}
		if cfg, err = p.Apply(cfg); err != nil {
			return cfg, fmt.Errorf("preset %s: %w", name, err)
		}
	}

	changed := cmd.Flags().Changed
	setString := func(dst *string, name string) {
		if changed(name) {
			*dst = mustGetString(cmd, name)
		}
	}
	setInt := func(dst *int, name string) {
		if changed(name) {
			*dst = mustGetInt(cmd, name)
		}
	}
	setFloat := func(dst *float64, name string) {
		if changed(name) {
			*dst = mustGetFloat64(cmd, name)
		}
	}

	setString(&cfg.OutDir, "outdir")
	setString(&cfg.FaceCascade, "face-cascade")
	setString(&cfg.LogLevel, "log-level")
	setFloat(&cfg.RowTolerance, "row-tol")

	setFloat(&cfg.Detection.ScaleFactor, "scale-factor")
	setInt(&cfg.Detection.MinNeighbors, "min-neighbors")
	setInt(&cfg.Detection.MinSize, "min-size")
	setInt(&cfg.Detection.Padding, "padding")

	if changed("label-mode") {
		m, err := render.ParseLabelMode(mustGetString(cmd, "label-mode"))
		if err != nil {
			return cfg, err
		}
		cfg.Style.LabelMode = m
	}
	if changed("badge-shape") {
		s, err := render.ParseBadgeShape(mustGetString(cmd, "badge-shape"))
		if err != nil {
			return cfg, err
		}
		cfg.Style.BadgeShape = s
	}
	setFloat(&cfg.Style.FontScale, "font-scale")
	setInt(&cfg.Style.FontThickness, "font-thickness")
	setInt(&cfg.Style.BadgePad, "badge-pad")
	for _, col := range []struct {
		name string
		dst  *color.NRGBA
	}{
		{"box-color", &cfg.Style.BoxColor},
		{"text-color", &cfg.Style.TextColor},
		{"badge-color", &cfg.Style.BadgeColor},
	} {
		if !changed(col.name) {
			continue
		}
		c, err := imaging.ParseHexColor(mustGetString(cmd, col.name))
		if err != nil {
			return cfg, fmt.Errorf("--%s: %w", col.name, err)
		}
		*col.dst = c
	}

	setString(&cfg.Legend.Title, "legend-title")
	setFloat(&cfg.Legend.TitleScale, "legend-title-scale")
	setFloat(&cfg.Legend.FontScale, "legend-font-scale")
	setInt(&cfg.Legend.Thickness, "legend-thickness")
	setInt(&cfg.Legend.StripHeight, "legend-strip-height")
	setInt(&cfg.Legend.LineHeight, "legend-line-height")
	setInt(&cfg.Legend.ColGap, "legend-col-gap")
	setInt(&cfg.Legend.ColWidth, "legend-col-width")

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
