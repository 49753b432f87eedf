// Package annotate runs one labeling job from the input photo to the output
// files.
package annotate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ironsheep/group-photo-labeler/internal/box"
	"github.com/ironsheep/group-photo-labeler/internal/config"
	"github.com/ironsheep/group-photo-labeler/internal/detection"
	"github.com/ironsheep/group-photo-labeler/internal/imaging"
	"github.com/ironsheep/group-photo-labeler/internal/legend"
	"github.com/ironsheep/group-photo-labeler/internal/logger"
	"github.com/ironsheep/group-photo-labeler/internal/names"
	"github.com/ironsheep/group-photo-labeler/internal/render"
	"github.com/ironsheep/group-photo-labeler/internal/session"
	"github.com/ironsheep/group-photo-labeler/internal/store"
)

// ErrBoxesCSVMissing is returned when detection is skipped and no boxes CSV
// can be found.
var ErrBoxesCSVMissing = errors.New("boxes csv missing")

// Editor lets a user adjust the boxes of a session before it is finalized.
type Editor interface {
	Edit(ctx context.Context, img image.Image, s *session.Session, style render.Style) error
}

// Viewer displays a finished image.
type Viewer interface {
	Show(ctx context.Context, img image.Image) error
}

// Options describe one job.
type Options struct {
	ImagePath string

	// OutDir receives the output files. Empty means the image's directory.
	OutDir string

	// SkipDetection loads boxes from BoxesCSV instead of detecting and
	// editing them. An empty BoxesCSV means <stem>_legende.csv next to the
	// image.
	SkipDetection bool
	BoxesCSV      string

	NamesCSV    string
	PromptNames bool
	NamesGUI    bool

	// NoNamesOnImage turns label mode "both" into "number".
	NoNamesOnImage bool

	AppendLegend   bool
	Show           bool
	ForceSingleRow bool

	Config config.Config
}

// Pipeline holds the collaborators of a job. Nil collaborators are treated
// as unavailable.
type Pipeline struct {
	Detector detection.Detector
	Editor   Editor
	Viewer   Viewer

	// Form is the interactive names provider; Terminal prompts on a console.
	Form     names.Provider
	Terminal names.Provider

	Log *zap.Logger
}

// Result lists what a job produced.
type Result struct {
	Paths store.OutputPaths
	Boxes []box.Box

	// Skipped are the malformed rows dropped from the input CSVs.
	Skipped []*store.RowError
}

// Run executes the job:
//  1. Opens the image
//  2. Detects and edits boxes, or loads them from the boxes CSV
//  3. Orders the boxes and assigns IDs
//  4. Collects names from the names CSV, the terminal and the form
//  5. Writes the annotated image, the CSV, the text legend and, if asked,
//     the image with the legend strip
//  6. Shows the result, if asked
//
// Nothing is written when ctx ends before step 5.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Result, error) {
	log := logger.OrNop(p.Log).With(zap.String("image", opts.ImagePath))
	cfg := opts.Config

	if err := store.CheckInput(opts.ImagePath); err != nil {
		return Result{}, err
	}
	img, err := imaging.Open(opts.ImagePath)
	if err != nil {
		return Result{}, err
	}
	info := imaging.Describe(opts.ImagePath, img)
	log.Info("image loaded", zap.Int("width", info.Width), zap.Int("height", info.Height), zap.String("format", info.Format))

	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Dir(opts.ImagePath)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	res := Result{Paths: store.Paths(filepath.Join(outDir, store.Stem(opts.ImagePath)))}

	boxes, skipped, err := p.collectBoxes(ctx, img, opts, log)
	if err != nil {
		return Result{}, err
	}
	res.Skipped = append(res.Skipped, skipped...)

	boxes, skipped = p.mergeNamesCSV(boxes, opts.NamesCSV, log)
	res.Skipped = append(res.Skipped, skipped...)

	style, appendLegend := cfg.Style, opts.AppendLegend
	boxes, style, appendLegend, err = p.collectNames(ctx, img, boxes, style, appendLegend, opts, log)
	if err != nil {
		return Result{}, err
	}
	if opts.NoNamesOnImage && style.LabelMode == render.ModeBoth {
		style.LabelMode = render.ModeNumber
	}
	res.Boxes = boxes

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	annotated, err := render.Annotate(img, boxes, style)
	if err != nil {
		return Result{}, err
	}
	if err := writeImage(res.Paths.Annotated, annotated); err != nil {
		return Result{}, err
	}
	if err := store.SaveTables(res.Paths, boxes); err != nil {
		return Result{}, err
	}

	final := image.Image(annotated)
	if appendLegend {
		strip, err := legend.Compose(legend.Entries(boxes), annotated.Bounds().Dx(), cfg.Legend)
		if err != nil {
			return Result{}, err
		}
		combined, err := legend.Append(annotated, strip)
		if err != nil {
			return Result{}, err
		}
		if err := writeImage(res.Paths.Legend, combined); err != nil {
			return Result{}, err
		}
		final = combined
	} else {
		res.Paths.Legend = ""
	}
	log.Info("outputs written", zap.Int("faces", len(boxes)), zap.Bool("legend", appendLegend))

	if opts.Show {
		if err := p.show(ctx, final); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			log.Warn("viewer failed", zap.Error(err))
		}
	}
	return res, nil
}

// collectBoxes returns the finalized, numbered boxes and any CSV rows that
// had to be skipped.
func (p *Pipeline) collectBoxes(ctx context.Context, img image.Image, opts Options, log *zap.Logger) ([]box.Box, []*store.RowError, error) {
	cfg := opts.Config
	var (
		initial []box.Box
		skipped []*store.RowError
	)
	if opts.SkipDetection {
		path := opts.BoxesCSV
		if path == "" {
			path = store.DefaultBoxesCSV(opts.ImagePath)
		}
		table, err := store.LoadBoxes(path)
		if err != nil {
			if errors.Is(err, store.ErrInputNotFound) {
				return nil, nil, fmt.Errorf("%w: %s", ErrBoxesCSVMissing, path)
			}
			return nil, nil, err
		}
		for _, e := range table.Skipped {
			log.Warn("skipped boxes csv row", zap.Error(e))
		}
		log.Info("boxes loaded", zap.String("csv", path), zap.Int("boxes", len(table.Boxes)))
		initial, skipped = table.Boxes, table.Skipped
	} else {
		detected, err := p.detect(ctx, img)
		if err != nil {
			return nil, nil, err
		}
		initial = detected
		if len(detected) == 0 {
			log.Info("no faces detected, boxes can be drawn in the editor")
		}
	}

	s := session.New(img.Bounds(), initial, opts.ForceSingleRow, cfg.RowTolerance, log)
	if !opts.SkipDetection {
		if err := p.edit(ctx, img, s, cfg.Style); err != nil {
			if !errors.Is(err, names.ErrUnavailable) {
				return nil, nil, err
			}
			log.Warn("box editor unavailable, keeping detected boxes", zap.Error(err))
		}
	}
	boxes, err := s.Finalize()
	if err != nil {
		return nil, nil, err
	}
	return boxes, skipped, nil
}

func (p *Pipeline) detect(ctx context.Context, img image.Image) ([]box.Box, error) {
	if p.Detector == nil {
		return nil, detection.ErrDetectorUnavailable
	}
	return p.Detector.Detect(ctx, img)
}

func (p *Pipeline) edit(ctx context.Context, img image.Image, s *session.Session, style render.Style) error {
	if p.Editor == nil {
		return names.ErrUnavailable
	}
	return p.Editor.Edit(ctx, img, s, style)
}

func (p *Pipeline) show(ctx context.Context, img image.Image) error {
	if p.Viewer == nil {
		return names.ErrUnavailable
	}
	return p.Viewer.Show(ctx, img)
}

// mergeNamesCSV copies non-empty names from the names CSV. A names CSV that
// cannot be read is reported and ignored.
func (p *Pipeline) mergeNamesCSV(boxes []box.Box, path string, log *zap.Logger) ([]box.Box, []*store.RowError) {
	if path == "" {
		return boxes, nil
	}
	table, err := store.LoadNames(path)
	if err != nil {
		log.Warn("names csv ignored", zap.String("csv", path), zap.Error(err))
		return boxes, nil
	}
	for _, e := range table.Skipped {
		log.Warn("skipped names csv row", zap.Error(e))
	}
	log.Info("names merged", zap.String("csv", path), zap.Int("names", len(table.Names)))
	return names.Merge(boxes, table.Names), table.Skipped
}

// collectNames runs the terminal prompt and the names form. The form may
// change the render style and the legend toggle.
func (p *Pipeline) collectNames(ctx context.Context, img image.Image, boxes []box.Box, style render.Style, appendLegend bool, opts Options, log *zap.Logger) ([]box.Box, render.Style, bool, error) {
	if len(boxes) == 0 {
		return boxes, style, appendLegend, nil
	}
	nopts := func() names.Options {
		return names.Options{Image: img, Style: style, AppendLegend: appendLegend}
	}

	if opts.PromptNames && p.Terminal != nil {
		r, err := p.Terminal.Names(ctx, boxes, nopts())
		if err != nil {
			return nil, style, false, err
		}
		boxes = names.Apply(boxes, r.Names)
	}

	if opts.NamesGUI {
		chain := []names.Provider{p.Form}
		if !opts.PromptNames {
			chain = append(chain, p.Terminal)
		}
		r, err := names.First(chain...).Names(ctx, boxes, nopts())
		switch {
		case err == nil:
			boxes = names.Apply(boxes, r.Names)
			style, appendLegend = r.Style, r.AppendLegend
		case ctx.Err() != nil:
			return nil, style, false, ctx.Err()
		case errors.Is(err, names.ErrUnavailable):
			log.Info("no names frontend available", zap.Error(err))
		default:
			log.Warn("names frontend failed", zap.Error(err))
		}
	}
	return boxes, style, appendLegend, nil
}

func writeImage(path string, img image.Image) error {
	return store.WriteFileAtomic(path, func(w io.Writer) error {
		return imaging.Encode(w, path, img)
	})
}

// Report prints the produced files, one per line.
func (r Result) Report(w io.Writer) {
	fmt.Fprintln(w, "Fertig.")
	fmt.Fprintf(w, "Annotiertes Bild: %s\n", r.Paths.Annotated)
	if r.Paths.Legend != "" {
		fmt.Fprintf(w, "Bild mit Legendenleiste: %s\n", r.Paths.Legend)
	}
	fmt.Fprintf(w, "CSV: %s\n", r.Paths.CSV)
	fmt.Fprintf(w, "TXT: %s\n", r.Paths.Text)
}
