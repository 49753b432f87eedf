// Package ui is the desktop front end: the box editor, the names form and
// the result viewer, built on fyne.
//
// fyne's event loop must own the main goroutine. Frontend.Run starts it and
// runs the pipeline on a worker goroutine; the editor, the form and the
// viewer block that worker until their window is dismissed. Windows are
// hidden rather than closed so the application stays alive between them.
//
// Binaries built without cgo have no fyne driver. NewFrontend then reports
// ErrEditorUnavailable and the caller continues without a GUI.
package ui

import (
	"fmt"
	"runtime"

	"github.com/ironsheep/group-photo-labeler/internal/names"
)

// ErrEditorUnavailable reports that no GUI can be shown. It matches
// names.ErrUnavailable so the name provider chain falls through to the
// terminal.
var ErrEditorUnavailable = fmt.Errorf("editor unavailable: %w", names.ErrUnavailable)

// AppID identifies the application to fyne (preferences, window grouping).
const AppID = "io.github.ironsheep.group-photo-labeler"

// Largest on-screen size of the editor and viewer images, in pixels.
const (
	maxViewWidth  = 1600
	maxViewHeight = 1000
)

// DisplayAvailable reports whether a window can be opened. On X11/Wayland
// systems that means DISPLAY or WAYLAND_DISPLAY is set.
func DisplayAvailable(getenv func(string) string) bool {
	switch runtime.GOOS {
	case "darwin", "windows", "ios", "android":
		return true
	}
	return getenv("DISPLAY") != "" || getenv("WAYLAND_DISPLAY") != ""
}
