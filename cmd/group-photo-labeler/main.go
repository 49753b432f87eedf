package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/group-photo-labeler/internal/annotate"
	"github.com/ironsheep/group-photo-labeler/internal/logger"
)

// Process exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitNoBoxesCSV  = 2
	exitInterrupted = 130
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command line and returns the exit code. The GUI needs
// the main goroutine, so everything runs on the caller's goroutine.
func run(args []string, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Sync()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	code := exitCode(err)
	switch code {
	case exitOK:
	case exitInterrupted:
		fmt.Fprintln(stderr, "Abgebrochen.")
	default:
		fmt.Fprintf(stderr, "Fehler: %v\n", err)
	}
	return code
}

// exitCode maps a command error onto the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.Is(err, annotate.ErrBoxesCSVMissing):
		return exitNoBoxesCSV
	default:
		return exitFailure
	}
}
