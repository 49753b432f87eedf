//go:build cgo

package ui

import (
	"context"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/ironsheep/group-photo-labeler/internal/imaging"
)

// Show displays img until the user presses Esc or closes the window.
func (f *Frontend) Show(ctx context.Context, img image.Image) error {
	view, _ := imaging.Fit(img, maxViewWidth, maxViewHeight)
	raster := canvas.NewImageFromImage(view)
	raster.FillMode = canvas.ImageFillContain

	m := f.newModal("Ergebnis (Esc zum Schließen)")
	m.win.SetContent(raster)
	m.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			m.dismiss()
		}
	})
	m.win.Resize(sizeFor(view, 0))
	return m.wait(ctx)
}
