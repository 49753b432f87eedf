package session

import (
	"errors"
	"image"
	"testing"

	"github.com/ironsheep/group-photo-labeler/internal/box"
	"github.com/ironsheep/group-photo-labeler/internal/ordering"
)

var bounds = image.Rect(0, 0, 1000, 800)

func twoRows() []box.Box {
	return []box.Box{
		box.New(400, 100, 50, 50),
		box.New(100, 110, 50, 50),
		box.New(250, 300, 50, 50),
		box.New(50, 305, 50, 50),
	}
}

func TestNew_ClampsInitialBoxes(t *testing.T) {
	initial := []box.Box{
		box.New(980, 10, 50, 50),   // overhangs right edge
		box.New(2000, 2000, 5, 5),  // entirely outside
		box.New(10, 10, 20, 20),
	}
	s := New(bounds, initial, false, ordering.DefaultRowTolerance, nil)
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	b, ok := s.Box(0)
	if !ok || b.W != 20 {
		t.Errorf("first box = %+v, want width clamped to 20", b)
	}
	if s.ID() == "" {
		t.Error("session id is empty")
	}
	if s.State() != Editing {
		t.Errorf("State = %v, want editing", s.State())
	}
}

func TestPreviewAndFinalize(t *testing.T) {
	s := New(bounds, twoRows(), false, ordering.DefaultRowTolerance, nil)

	preview, err := s.Preview()
	if err != nil {
		t.Fatal(err)
	}
	wantX := []int{100, 400, 50, 250}
	for i, b := range preview {
		if b.X != wantX[i] || b.ID != i+1 {
			t.Errorf("preview[%d] = %+v, want x=%d id=%d", i, b, wantX[i], i+1)
		}
	}

	single, err := s.ToggleRowMode()
	if err != nil || !single {
		t.Fatalf("ToggleRowMode = %v, %v", single, err)
	}
	final, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	wantX = []int{50, 100, 250, 400}
	for i, b := range final {
		if b.X != wantX[i] || b.ID != i+1 {
			t.Errorf("final[%d] = %+v, want x=%d id=%d", i, b, wantX[i], i+1)
		}
	}
	if s.State() != Finalized {
		t.Errorf("State = %v, want finalized", s.State())
	}
}

func TestOperationsAfterFinalize(t *testing.T) {
	s := New(bounds, twoRows(), false, ordering.DefaultRowTolerance, nil)
	if _, err := s.Finalize(); err != nil {
		t.Fatal(err)
	}

	checks := map[string]error{}
	_, checks["AddBox"] = s.AddBox(image.Rect(0, 0, 20, 20))
	checks["MoveBox"] = s.MoveBox(0, image.Pt(5, 5))
	_, _, checks["DeleteBox"] = s.DeleteBox(image.Pt(120, 120))
	_, checks["ToggleRowMode"] = s.ToggleRowMode()
	_, checks["Preview"] = s.Preview()
	_, checks["Finalize"] = s.Finalize()
	checks["SetName"] = s.SetName(0, "x")

	for op, err := range checks {
		if !errors.Is(err, ErrFinalized) {
			t.Errorf("%s after finalize: err = %v, want ErrFinalized", op, err)
		}
	}
	if s.SingleRow() {
		t.Error("failed toggle changed the row mode")
	}
}

func TestAddBox(t *testing.T) {
	s := New(bounds, nil, false, ordering.DefaultRowTolerance, nil)

	// Dragged from bottom-right to top-left.
	h, err := s.AddBox(image.Rect(60, 70, 10, 20))
	if err != nil {
		t.Fatalf("AddBox failed: %v", err)
	}
	b, _ := s.Box(h)
	if b != box.New(10, 20, 50, 50) {
		t.Errorf("box = %+v", b)
	}

	h, err = s.AddBox(image.Rect(990, 790, 1010, 820))
	if err != nil {
		t.Fatal(err)
	}
	if b, _ := s.Box(h); b.W != 10 || b.H != 10 {
		t.Errorf("overhanging box not clamped: %+v", b)
	}

	if _, err := s.AddBox(image.Rect(-50, -50, -10, -10)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestMoveBox(t *testing.T) {
	s := New(bounds, []box.Box{{X: 10, Y: 10, W: 40, H: 40, Name: "Anna"}}, false, ordering.DefaultRowTolerance, nil)

	if err := s.MoveBox(0, image.Pt(500, 300)); err != nil {
		t.Fatal(err)
	}
	b, _ := s.Box(0)
	if b.X != 500 || b.Y != 300 || b.W != 40 || b.Name != "Anna" {
		t.Errorf("moved box = %+v", b)
	}

	// Past the bottom-right corner: pushed back inside, size kept.
	if err := s.MoveBox(0, image.Pt(990, 795)); err != nil {
		t.Fatal(err)
	}
	b, _ = s.Box(0)
	if b.X != 960 || b.Y != 760 || b.W != 40 || b.H != 40 {
		t.Errorf("box not pushed inside: %+v", b)
	}

	if err := s.MoveBox(7, image.Pt(0, 0)); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("err = %v, want ErrUnknownHandle", err)
	}
}

func TestDeleteBox_FirstInInsertionOrder(t *testing.T) {
	s := New(bounds, nil, false, ordering.DefaultRowTolerance, nil)
	first, _ := s.AddBox(image.Rect(100, 100, 200, 200))
	second, _ := s.AddBox(image.Rect(150, 150, 250, 250))

	h, ok, err := s.DeleteBox(image.Pt(175, 175))
	if err != nil || !ok || h != first {
		t.Fatalf("DeleteBox = %d, %v, %v; want %d", h, ok, err, first)
	}
	h, ok, _ = s.DeleteBox(image.Pt(175, 175))
	if !ok || h != second {
		t.Errorf("second delete = %d, %v; want %d", h, ok, second)
	}
	if _, ok, _ := s.DeleteBox(image.Pt(175, 175)); ok {
		t.Error("delete on empty area reported a hit")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if _, ok := s.Box(first); ok {
		t.Error("deleted handle still resolves")
	}
}

func TestBoxAt_EdgesInclusive(t *testing.T) {
	s := New(bounds, []box.Box{box.New(10, 10, 20, 20)}, false, ordering.DefaultRowTolerance, nil)
	for _, p := range []image.Point{{10, 10}, {30, 30}, {30, 10}} {
		if _, ok := s.BoxAt(p); !ok {
			t.Errorf("BoxAt(%v) missed", p)
		}
	}
	if _, ok := s.BoxAt(image.Pt(31, 31)); ok {
		t.Error("BoxAt outside the box reported a hit")
	}
}

func TestNamesTravelWithBoxes(t *testing.T) {
	s := New(bounds, []box.Box{
		{X: 500, Y: 100, W: 50, H: 50, Name: "Right"},
		{X: 100, Y: 100, W: 50, H: 50, Name: "Left"},
	}, false, ordering.DefaultRowTolerance, nil)

	if err := s.MoveBox(0, image.Pt(10, 100)); err != nil {
		t.Fatal(err)
	}
	final, err := s.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if final[0].Name != "Right" || final[1].Name != "Left" {
		t.Errorf("names did not follow their boxes: %+v", final)
	}
}

func TestStateString(t *testing.T) {
	if Editing.String() != "editing" || Finalized.String() != "finalized" {
		t.Error("unexpected state names")
	}
}
