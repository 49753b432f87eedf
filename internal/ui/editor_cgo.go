//go:build cgo

package ui

import (
	"context"
	"fmt"
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ironsheep/group-photo-labeler/internal/imaging"
	"github.com/ironsheep/group-photo-labeler/internal/render"
	"github.com/ironsheep/group-photo-labeler/internal/session"
)

const editorTitle = "Bearbeiten  [LMB ziehen: neu | LMB auf Box: verschieben | RMB: löschen | r: Modus | s/q/Esc: fertig]"

// Edit lets the user adjust the boxes of s on top of img. It returns when
// the user finishes or ctx ends. s must not be used by anyone else until
// Edit returns.
func (f *Frontend) Edit(ctx context.Context, img image.Image, s *session.Session, style render.Style) error {
	log := f.log.With(zap.String("session", s.ID()))
	base, scale := imaging.Fit(img, maxViewWidth, maxViewHeight)
	ed := newBoxEditor(s, style, base, scale, img.Bounds().Size(), log)

	m := f.newModal(editorTitle)
	status := widget.NewLabel("")
	ed.onChange = func(n int, singleRow bool) {
		status.SetText(statusText(n, singleRow))
	}
	done := widget.NewButton("Fertig", m.dismiss)
	m.win.SetContent(container.NewBorder(nil, container.NewHBox(done, status), nil, nil, ed))
	m.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyR:
			ed.toggleMode()
		case fyne.KeyS, fyne.KeyQ, fyne.KeyEscape:
			m.dismiss()
		}
	})
	m.win.Resize(sizeFor(base, 48))
	ed.redraw()

	log.Info("editor opened", zap.Int("boxes", s.Len()))
	err := m.wait(ctx)
	ed.freeze()
	log.Info("editor closed", zap.Int("boxes", s.Len()), zap.Bool("single_row", s.SingleRow()))
	return err
}

func statusText(n int, singleRow bool) string {
	mode := "Reihen"
	if singleRow {
		mode = "Single-Row"
	}
	return fmt.Sprintf("%d Boxen, Modus: %s", n, mode)
}

type dragKind int

const (
	dragNone dragKind = iota
	dragDraw
	dragMove
)

// boxEditor shows the session preview and turns pointer events into session
// edits, one edit per event.
type boxEditor struct {
	widget.BaseWidget

	mu      sync.Mutex
	sess    *session.Session
	style   render.Style
	base    *image.NRGBA
	scale   float64
	srcSize image.Point
	raster  *canvas.Image
	frames  frameSeq
	log     *zap.Logger
	frozen  bool

	drag    dragKind
	dragged bool
	start   image.Point
	grab    image.Point
	moving  session.Handle
	pending image.Rectangle

	onChange func(n int, singleRow bool)
}

func newBoxEditor(s *session.Session, style render.Style, base *image.NRGBA, scale float64, srcSize image.Point, log *zap.Logger) *boxEditor {
	e := &boxEditor{
		sess:    s,
		style:   style,
		base:    base,
		scale:   scale,
		srcSize: srcSize,
		log:     log,
	}
	e.raster = canvas.NewImageFromImage(base)
	e.raster.FillMode = canvas.ImageFillContain
	e.raster.ScaleMode = canvas.ImageScaleFastest
	e.raster.SetMinSize(fyne.NewSize(float32(base.Bounds().Dx()), float32(base.Bounds().Dy())))
	e.ExtendBaseWidget(e)
	return e
}

func (e *boxEditor) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(e.raster)
}

func (e *boxEditor) toSource(pos fyne.Position) image.Point {
	size := e.Size()
	return viewport{src: e.srcSize, viewW: size.Width, viewH: size.Height}.toSource(pos.X, pos.Y)
}

// MouseDown picks the drag action: moving the box under the pointer or
// drawing a new one.
func (e *boxEditor) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.frozen {
		return
	}
	p := e.toSource(ev.Position)
	e.dragged = false
	if h, ok := e.sess.BoxAt(p); ok {
		b, _ := e.sess.Box(h)
		e.drag, e.moving = dragMove, h
		e.grab = p.Sub(image.Pt(b.X, b.Y))
		return
	}
	e.drag, e.start = dragDraw, p
}

// MouseUp ends a press that never turned into a drag.
func (e *boxEditor) MouseUp(*desktop.MouseEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.dragged {
		e.drag = dragNone
	}
}

func (e *boxEditor) Dragged(ev *fyne.DragEvent) {
	e.mu.Lock()
	if e.frozen || e.drag == dragNone {
		e.mu.Unlock()
		return
	}
	e.dragged = true
	p := e.toSource(ev.Position)
	switch e.drag {
	case dragDraw:
		e.pending = image.Rectangle{Min: e.start, Max: p}.Canon()
	case dragMove:
		if err := e.sess.MoveBox(e.moving, p.Sub(e.grab)); err != nil {
			e.log.Debug("move rejected", zap.Error(err))
		}
	}
	e.mu.Unlock()
	e.redraw()
}

func (e *boxEditor) DragEnd() {
	e.mu.Lock()
	if e.drag == dragDraw && !e.frozen {
		if r, ok := drawnBox(e.pending.Min, e.pending.Max); ok {
			if _, err := e.sess.AddBox(r); err != nil {
				e.log.Debug("box rejected", zap.Error(err))
			}
		}
	}
	e.drag, e.dragged, e.pending = dragNone, false, image.Rectangle{}
	e.mu.Unlock()
	e.redraw()
}

// TappedSecondary deletes the box under the pointer.
func (e *boxEditor) TappedSecondary(ev *fyne.PointEvent) {
	e.mu.Lock()
	if e.frozen {
		e.mu.Unlock()
		return
	}
	if _, ok, err := e.sess.DeleteBox(e.toSource(ev.Position)); err != nil {
		e.log.Debug("delete failed", zap.Error(err))
	} else if !ok {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()
	e.redraw()
}

func (e *boxEditor) toggleMode() {
	e.mu.Lock()
	if e.frozen {
		e.mu.Unlock()
		return
	}
	if _, err := e.sess.ToggleRowMode(); err != nil {
		e.log.Debug("toggle failed", zap.Error(err))
	}
	e.mu.Unlock()
	e.redraw()
}

// freeze stops all further edits. Events that arrive after the window was
// dismissed are dropped.
func (e *boxEditor) freeze() {
	e.mu.Lock()
	e.frozen = true
	e.mu.Unlock()
}

func (e *boxEditor) redraw() {
	e.mu.Lock()
	if e.frozen {
		e.mu.Unlock()
		return
	}
	boxes, err := e.sess.Preview()
	if err != nil {
		e.mu.Unlock()
		return
	}
	frame := render.Frame{
		Boxes:   boxes,
		Scale:   e.scale,
		Caption: render.ModeCaption(e.sess.SingleRow()),
		Pending: e.pending,
	}
	singleRow := e.sess.SingleRow()
	seq := e.frames.next()
	e.mu.Unlock()

	out, err := render.Preview(e.base, frame, e.style)
	if err != nil {
		e.log.Warn("preview failed", zap.Error(err))
		return
	}
	if !e.frames.publish(seq, func() { e.raster.Image = out }) {
		return
	}
	e.raster.Refresh()
	if e.onChange != nil {
		e.onChange(len(boxes), singleRow)
	}
}
