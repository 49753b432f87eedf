package ordering

import (
	"image"
	"math"
	"math/rand"
	"testing"

	"github.com/ironsheep/group-photo-labeler/internal/box"
)

func positions(boxes []box.Box) []image.Point {
	out := make([]image.Point, len(boxes))
	for i, b := range boxes {
		out[i] = image.Pt(b.X, b.Y)
	}
	return out
}

func samePoints(a, b []image.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOrder_TwoRowScenario(t *testing.T) {
	// Input deliberately shuffled.
	boxes := []box.Box{
		box.New(60, 105, 20, 20),
		box.New(10, 10, 20, 20),
		box.New(10, 100, 20, 20),
		box.New(50, 12, 20, 20),
	}

	rows := Rows(box.Rects(boxes), 0.75)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	got := Number(boxes, false, 0.75)
	want := []image.Point{{10, 10}, {50, 12}, {10, 100}, {60, 105}}
	if !samePoints(positions(got), want) {
		t.Errorf("order = %v, want %v", positions(got), want)
	}
	for i, b := range got {
		if b.ID != i+1 {
			t.Errorf("box %d has ID %d, want %d", i, b.ID, i+1)
		}
	}
}

func TestOrder_SingleRow(t *testing.T) {
	boxes := []box.Box{
		box.New(60, 105, 20, 20),
		box.New(10, 10, 20, 20),
		box.New(10, 100, 20, 20),
		box.New(50, 12, 20, 20),
	}
	got := Order(boxes, true, 0.75)
	// Equal x keeps input order: (10,10) came before (10,100).
	want := []image.Point{{10, 10}, {10, 100}, {50, 12}, {60, 105}}
	if !samePoints(positions(got), want) {
		t.Errorf("order = %v, want %v", positions(got), want)
	}
}

func TestOrder_SingleRowSortedProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(30)
		boxes := make([]box.Box, n)
		for i := range boxes {
			boxes[i] = box.New(rng.Intn(1000), rng.Intn(1000), 1+rng.Intn(80), 1+rng.Intn(80))
		}
		got := Order(boxes, true, DefaultRowTolerance)
		if len(got) != n {
			t.Fatalf("trial %d: got %d boxes, want %d", trial, len(got), n)
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].X > got[i].X {
				t.Fatalf("trial %d: x not non-decreasing at %d: %d > %d", trial, i, got[i-1].X, got[i].X)
			}
		}
	}
}

func TestRows_SameHeightTolerance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 500; trial++ {
		h := 1 + rng.Intn(60)
		a := box.New(rng.Intn(500), rng.Intn(500), 10, h)
		b := box.New(rng.Intn(500), rng.Intn(500), 10, h)

		rows := Rows(box.Rects([]box.Box{a, b}), 0.75)
		sameRow := len(rows) == 1

		tol := math.Max(0.75*float64(h), 18.0)
		want := math.Abs(a.CenterY()-b.CenterY()) <= tol
		if sameRow != want {
			t.Fatalf("trial %d: h=%d cy=(%v,%v) sameRow=%v, want %v",
				trial, h, a.CenterY(), b.CenterY(), sameRow, want)
		}
	}
}

func TestRows_AnchorChaining(t *testing.T) {
	// Heights 20 give tolerance 18. Centers at 20, 35, 50: the third box is
	// within 15 of its predecessor but 30 from the row anchor.
	rects := []image.Rectangle{
		image.Rect(0, 10, 20, 30),
		image.Rect(30, 25, 50, 45),
		image.Rect(60, 40, 80, 60),
	}
	rows := Rows(rects, 0.75)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (anchor-based split)", len(rows))
	}
	if len(rows[0]) != 2 || len(rows[1]) != 1 || rows[1][0] != 2 {
		t.Errorf("rows = %v, want [[0 1] [2]]", rows)
	}
}

func TestRows_EdgeCases(t *testing.T) {
	if rows := Rows(nil, 0.75); len(rows) != 0 {
		t.Errorf("Rows(nil) = %v, want empty", rows)
	}
	if got := Order(nil, false, 0.75); len(got) != 0 {
		t.Errorf("Order(nil) = %v, want empty", got)
	}
	rows := Rows([]image.Rectangle{image.Rect(5, 5, 10, 10)}, 0.75)
	if len(rows) != 1 || len(rows[0]) != 1 {
		t.Errorf("single box rows = %v, want [[0]]", rows)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 1.0},
		{"odd", []float64{30, 10, 20}, 20},
		{"even averages middle pair", []float64{10, 40, 20, 30}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.values); got != tt.want {
				t.Errorf("Median(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestTolerance(t *testing.T) {
	if got := Tolerance([]float64{10, 10}, 0.75); got != MinRowTolerance {
		t.Errorf("small faces: tolerance = %v, want floor %v", got, MinRowTolerance)
	}
	if got := Tolerance([]float64{100, 100, 100}, 0.75); got != 75 {
		t.Errorf("large faces: tolerance = %v, want 75", got)
	}
}

func TestAssignIDs_Bijection(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	boxes := make([]box.Box, 25)
	for i := range boxes {
		boxes[i] = box.New(rng.Intn(800), rng.Intn(600), 20+rng.Intn(30), 20+rng.Intn(30))
		boxes[i].ID = 1000 - i
	}
	got := Number(boxes, false, 0.75)
	seen := make(map[int]bool)
	for pos, b := range got {
		if b.ID != pos+1 {
			t.Errorf("position %d has ID %d", pos, b.ID)
		}
		seen[b.ID] = true
	}
	if len(seen) != len(boxes) {
		t.Errorf("got %d distinct IDs, want %d", len(seen), len(boxes))
	}
	if boxes[0].ID != 1000 {
		t.Error("AssignIDs modified its input")
	}
}
