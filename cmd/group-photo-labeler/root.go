package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/group-photo-labeler/internal/annotate"
	"github.com/ironsheep/group-photo-labeler/internal/detection"
	"github.com/ironsheep/group-photo-labeler/internal/logger"
	"github.com/ironsheep/group-photo-labeler/internal/names"
	"github.com/ironsheep/group-photo-labeler/internal/ui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group-photo-labeler [flags] IMAGE",
		Short: "Number the faces in a group photo and write a legend",
		Long: `group-photo-labeler finds the faces in a group photo, lets you correct the
boxes, numbers them row by row (top to bottom, left to right) and collects a
name for every number. It writes the annotated photo, an optional copy with a
legend strip, and the legend as CSV and text.

Examples:
  # Detect, edit, name and render
  group-photo-labeler team.jpg

  # Re-render from an edited <stem>_legende.csv without any window
  group-photo-labeler --skip-detection --no-names-gui --append-legend team.jpg

  # Larger badges and legend for an A5 print
  group-photo-labeler --preset a5 --append-legend team.jpg`,
		Args:          cobra.ExactArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLabel,
	}
	registerFlags(cmd)
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

func runLabel(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Options{Level: cfg.LogLevel, JSON: mustGetBool(cmd, "log-json")}); err != nil {
		return err
	}
	log := logger.Log()
	ctx := cmd.Context()

	opts := annotate.Options{
		ImagePath:      args[0],
		OutDir:         cfg.OutDir,
		SkipDetection:  mustGetBool(cmd, "skip-detection"),
		BoxesCSV:       mustGetString(cmd, "boxes-csv"),
		NamesCSV:       mustGetString(cmd, "names-csv"),
		PromptNames:    mustGetBool(cmd, "prompt-names"),
		NamesGUI:       !mustGetBool(cmd, "no-names-gui"),
		NoNamesOnImage: mustGetBool(cmd, "no-names-on-image"),
		AppendLegend:   mustGetBool(cmd, "append-legend"),
		Show:           mustGetBool(cmd, "show"),
		ForceSingleRow: mustGetBool(cmd, "force-single-row"),
		Config:         cfg,
	}
	p := &annotate.Pipeline{
		Terminal: names.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()),
		Log:      log,
	}

	if !opts.SkipDetection {
		det, err := detection.NewCascadeDetector(cfg.FaceCascade, cfg.Detection, log)
		if err != nil {
			return err
		}
		defer det.Close()
		p.Detector = det
	}

	var res annotate.Result
	work := func() error {
		var err error
		res, err = p.Run(ctx, opts)
		return err
	}

	needsGUI := !opts.SkipDetection || opts.NamesGUI || opts.Show
	var fe *ui.Frontend
	if needsGUI {
		fe, err = ui.NewFrontend(log)
		if err != nil {
			log.Info("running without windows", zap.Error(err))
		}
	}
	if fe != nil {
		p.Editor, p.Viewer, p.Form = fe, fe, fe
		err = fe.Run(work)
	} else {
		err = work()
	}
	if err != nil {
		return err
	}
	res.Report(cmd.OutOrStdout())
	return nil
}
