//go:build cgo

package ui

import (
	"context"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ironsheep/group-photo-labeler/internal/box"
	"github.com/ironsheep/group-photo-labeler/internal/imaging"
	"github.com/ironsheep/group-photo-labeler/internal/names"
)

const (
	formTitle   = "Namen eingeben / korrigieren"
	thumbSide   = 72
	thumbMargin = 8
)

// Names shows one entry per face, with a thumbnail cut from opts.Image, and
// the render settings of the final image. "Übernehmen" returns the entries
// and settings; "Abbrechen" or closing the window keeps the current names
// and the settings from opts.
func (f *Frontend) Names(ctx context.Context, boxes []box.Box, opts names.Options) (names.Result, error) {
	m := f.newModal(formTitle)

	rows := container.NewVBox()
	entries := make(map[int]*widget.Entry, len(boxes))
	for _, b := range boxes {
		e := widget.NewEntry()
		e.SetText(b.Name)
		e.SetPlaceHolder("unbekannt")
		entries[b.ID] = e
		rows.Add(container.NewBorder(nil, nil,
			container.NewHBox(f.thumbnail(opts, b), widget.NewLabel(strconv.Itoa(b.ID))),
			nil, e))
	}
	list := container.NewVScroll(rows)
	list.SetMinSize(fyne.NewSize(560, 380))

	s := settingsFrom(opts.Style, opts.AppendLegend)
	mode := widget.NewRadioGroup(modeLabels(), nil)
	mode.Horizontal = true
	mode.SetSelected(s.Mode)
	legendCheck := widget.NewCheck("Legende anhängen", nil)
	legendCheck.SetChecked(s.AppendLegend)
	circle := widget.NewCheck("Runde Badges", nil)
	circle.SetChecked(s.Circle)
	fontScale := numberEntry(s.FontScale)
	thickness := numberEntry(s.Thickness)
	pad := numberEntry(s.Pad)

	settings := container.NewVBox(
		container.NewHBox(widget.NewLabel("Label-Modus:"), mode),
		container.NewHBox(legendCheck, circle),
		container.NewHBox(
			widget.NewLabel("Schriftgröße:"), fontScale,
			widget.NewLabel("Dicke:"), thickness,
			widget.NewLabel("Badge-Pad:"), pad,
		),
	)

	accepted := false
	ok := widget.NewButton("Übernehmen", func() {
		accepted = true
		m.dismiss()
	})
	ok.Importance = widget.HighImportance
	cancel := widget.NewButton("Abbrechen", m.dismiss)
	buttons := container.NewHBox(layout.NewSpacer(), cancel, ok)

	m.win.SetContent(container.NewBorder(nil, container.NewVBox(widget.NewSeparator(), settings, buttons), nil, nil, list))
	m.win.Resize(fyne.NewSize(640, 600))

	f.log.Info("names form opened", zap.Int("faces", len(boxes)))
	if err := m.wait(ctx); err != nil {
		return names.Result{}, err
	}

	res := names.Result{
		Names:        make(map[int]string, len(boxes)),
		Style:        opts.Style,
		AppendLegend: opts.AppendLegend,
	}
	if !accepted {
		f.log.Info("names form canceled")
		for _, b := range boxes {
			res.Names[b.ID] = b.Name
		}
		return res, nil
	}
	for id, e := range entries {
		res.Names[id] = strings.TrimSpace(e.Text)
	}
	s = formSettings{
		Mode:         mode.Selected,
		Circle:       circle.Checked,
		AppendLegend: legendCheck.Checked,
		FontScale:    fontScale.Text,
		Thickness:    thickness.Text,
		Pad:          pad.Text,
	}
	res.Style = s.apply(opts.Style)
	res.AppendLegend = s.AppendLegend
	f.log.Info("names form accepted",
		zap.String("label_mode", string(res.Style.LabelMode)),
		zap.Bool("append_legend", res.AppendLegend))
	return res, nil
}

func (f *Frontend) thumbnail(opts names.Options, b box.Box) fyne.CanvasObject {
	size := fyne.NewSize(thumbSide, thumbSide)
	blank := func() fyne.CanvasObject {
		r := canvas.NewRectangle(color.Transparent)
		r.SetMinSize(size)
		return r
	}
	if opts.Image == nil {
		return blank()
	}
	thumb, err := imaging.Thumbnail(opts.Image, b.Rect(), thumbMargin, thumbSide)
	if err != nil {
		f.log.Debug("thumbnail skipped", zap.Int("id", b.ID), zap.Error(err))
		return blank()
	}
	img := canvas.NewImageFromImage(thumb)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(size)
	return img
}

func numberEntry(text string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(text)
	return e
}
