//go:build cgo

package ui

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ironsheep/group-photo-labeler/internal/logger"
)

// Frontend owns the fyne application.
type Frontend struct {
	app fyne.App
	log *zap.Logger
}

// NewFrontend prepares the fyne application. It returns ErrEditorUnavailable
// when no display is reachable.
func NewFrontend(log *zap.Logger) (*Frontend, error) {
	if !DisplayAvailable(os.Getenv) {
		return nil, ErrEditorUnavailable
	}
	return &Frontend{
		app: app.NewWithID(AppID),
		log: logger.OrNop(log).With(zap.String("component", "ui")),
	}, nil
}

// Run starts the event loop on the calling goroutine, which must be the main
// goroutine, and runs work on a worker goroutine. The loop ends when work
// returns; Run then returns work's error.
func (f *Frontend) Run(work func() error) error {
	errc := make(chan error, 1)
	go func() {
		defer f.app.Quit()
		defer func() {
			if r := recover(); r != nil {
				errc <- fmt.Errorf("pipeline panic: %v", r)
			}
		}()
		errc <- work()
	}()
	f.app.Run()
	return <-errc
}

// modal is a window that blocks its caller until dismissed.
type modal struct {
	win  fyne.Window
	once sync.Once
	done chan struct{}
}

func (f *Frontend) newModal(title string) *modal {
	m := &modal{win: f.app.NewWindow(title), done: make(chan struct{})}
	m.win.SetCloseIntercept(m.dismiss)
	return m
}

func (m *modal) dismiss() {
	m.once.Do(func() {
		m.win.Hide()
		close(m.done)
	})
}

// wait shows the window and blocks until it is dismissed or ctx ends.
func (m *modal) wait(ctx context.Context) error {
	m.win.Show()
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		m.dismiss()
		return ctx.Err()
	}
}

// sizeFor returns a window size showing img at its on-screen size plus extra
// vertical room for controls.
func sizeFor(img image.Image, extra float32) fyne.Size {
	b := img.Bounds()
	return fyne.NewSize(float32(b.Dx()), float32(b.Dy())+extra)
}
