// Package session holds the working set of face boxes while the user edits
// them.
//
// Boxes are addressed by Handle, an opaque index that stays stable while
// other boxes are added or deleted. Handles are unrelated to the IDs printed
// on the photo: IDs are derived from reading order and change whenever the
// geometry or the row mode changes.
//
// A Session is not safe for concurrent use. The editor applies one change
// per UI event, and the pipeline reads the result only after Finalize.
package session

import (
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ironsheep/group-photo-labeler/internal/box"
	"github.com/ironsheep/group-photo-labeler/internal/logger"
	"github.com/ironsheep/group-photo-labeler/internal/ordering"
)

var (
	// ErrFinalized is returned by every mutating call after Finalize.
	ErrFinalized = errors.New("session already finalized")

	// ErrOutOfBounds is returned when a box lies entirely outside the image.
	ErrOutOfBounds = errors.New("box outside image bounds")

	// ErrUnknownHandle is returned for a deleted or never issued handle.
	ErrUnknownHandle = errors.New("unknown box handle")
)

// State is the lifecycle phase of a session.
type State int

const (
	Editing State = iota
	Finalized
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Finalized:
		return "finalized"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Handle identifies a box within one session.
type Handle int

type slot struct {
	b    box.Box
	live bool
}

// Session is the mutable box set of one labeling run.
type Session struct {
	id        string
	bounds    image.Rectangle
	slots     []slot
	live      int
	singleRow bool
	rowTol    float64
	state     State
	log       *zap.Logger
}

// New starts a session for an image with the given bounds. Initial boxes are
// clamped to the image; boxes left empty by clamping are dropped and logged.
func New(bounds image.Rectangle, initial []box.Box, singleRow bool, rowTol float64, log *zap.Logger) *Session {
	s := &Session{
		id:        uuid.NewString(),
		bounds:    bounds,
		singleRow: singleRow,
		rowTol:    rowTol,
		state:     Editing,
	}
	s.log = logger.OrNop(log).With(zap.String("session", s.id))
	for _, b := range initial {
		c, ok := b.Clamp(bounds)
		if !ok {
			s.log.Warn("dropping box outside image", zap.Stringer("box", b), zap.Int("id", b.ID))
			continue
		}
		s.slots = append(s.slots, slot{b: c, live: true})
		s.live++
	}
	s.log.Debug("session started",
		zap.Int("boxes", s.live),
		zap.Bool("single_row", singleRow),
		zap.Float64("row_tol", rowTol))
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle phase.
func (s *Session) State() State { return s.state }

// Bounds returns the image bounds boxes are clamped to.
func (s *Session) Bounds() image.Rectangle { return s.bounds }

// Len returns the number of live boxes.
func (s *Session) Len() int { return s.live }

// SingleRow reports whether the session orders boxes left to right only.
func (s *Session) SingleRow() bool { return s.singleRow }

// AddBox adds a box covering r, clamped to the image.
func (s *Session) AddBox(r image.Rectangle) (Handle, error) {
	if s.state != Editing {
		return 0, ErrFinalized
	}
	b, ok := box.FromRect(r).Clamp(s.bounds)
	if !ok {
		return 0, fmt.Errorf("add %v: %w", r, ErrOutOfBounds)
	}
	s.slots = append(s.slots, slot{b: b, live: true})
	s.live++
	h := Handle(len(s.slots) - 1)
	s.log.Debug("box added", zap.Int("handle", int(h)), zap.Stringer("box", b))
	return h, nil
}

// MoveBox moves the box to a new top-left corner. The box keeps its size and
// is pushed back inside the image if the new position overhangs an edge.
func (s *Session) MoveBox(h Handle, origin image.Point) error {
	if s.state != Editing {
		return ErrFinalized
	}
	sl, err := s.slot(h)
	if err != nil {
		return err
	}
	moved, ok := fitInside(sl.b.Moved(origin), s.bounds)
	if !ok {
		return fmt.Errorf("move to %v: %w", origin, ErrOutOfBounds)
	}
	sl.b = moved
	return nil
}

// DeleteBox removes the first box, in insertion order, whose outline
// contains p. The boolean result is false when no box was hit.
func (s *Session) DeleteBox(p image.Point) (Handle, bool, error) {
	if s.state != Editing {
		return 0, false, ErrFinalized
	}
	h, ok := s.BoxAt(p)
	if !ok {
		return 0, false, nil
	}
	s.slots[h].live = false
	s.live--
	s.log.Debug("box deleted", zap.Int("handle", int(h)), zap.Stringer("box", s.slots[h].b))
	return h, true, nil
}

// BoxAt returns the first box, in insertion order, whose outline contains p.
func (s *Session) BoxAt(p image.Point) (Handle, bool) {
	for i, sl := range s.slots {
		if sl.live && sl.b.Contains(p) {
			return Handle(i), true
		}
	}
	return 0, false
}

// Box returns the current geometry and name of h.
func (s *Session) Box(h Handle) (box.Box, bool) {
	sl, err := s.slot(h)
	if err != nil {
		return box.Box{}, false
	}
	return sl.b, true
}

// SetName attaches a name to a box. The name moves with the box through
// later edits.
func (s *Session) SetName(h Handle, name string) error {
	if s.state != Editing {
		return ErrFinalized
	}
	sl, err := s.slot(h)
	if err != nil {
		return err
	}
	sl.b.Name = name
	return nil
}

// ToggleRowMode switches between row-grouped and single-row ordering and
// returns the new single-row flag.
func (s *Session) ToggleRowMode() (bool, error) {
	if s.state != Editing {
		return s.singleRow, ErrFinalized
	}
	s.singleRow = !s.singleRow
	s.log.Debug("row mode toggled", zap.Bool("single_row", s.singleRow))
	return s.singleRow, nil
}

// Preview returns the live boxes in display order, numbered by position.
// Nothing is committed.
func (s *Session) Preview() ([]box.Box, error) {
	if s.state != Editing {
		return nil, ErrFinalized
	}
	return s.numbered(), nil
}

// Finalize orders the boxes once, assigns IDs 1..N and freezes the session.
func (s *Session) Finalize() ([]box.Box, error) {
	if s.state != Editing {
		return nil, ErrFinalized
	}
	out := s.numbered()
	s.state = Finalized
	s.log.Info("session finalized", zap.Int("boxes", len(out)), zap.Bool("single_row", s.singleRow))
	return out, nil
}

func (s *Session) numbered() []box.Box {
	current := make([]box.Box, 0, s.live)
	for _, sl := range s.slots {
		if sl.live {
			current = append(current, sl.b)
		}
	}
	return ordering.Number(current, s.singleRow, s.rowTol)
}

func (s *Session) slot(h Handle) (*slot, error) {
	if h < 0 || int(h) >= len(s.slots) || !s.slots[h].live {
		return nil, fmt.Errorf("handle %d: %w", h, ErrUnknownHandle)
	}
	return &s.slots[h], nil
}

// fitInside shifts b so it lies within bounds. A box larger than the image
// in either direction is intersected with it instead.
func fitInside(b box.Box, bounds image.Rectangle) (box.Box, bool) {
	if b.W <= bounds.Dx() {
		b.X = max(bounds.Min.X, min(b.X, bounds.Max.X-b.W))
	}
	if b.H <= bounds.Dy() {
		b.Y = max(bounds.Min.Y, min(b.Y, bounds.Max.Y-b.H))
	}
	return b.Clamp(bounds)
}
