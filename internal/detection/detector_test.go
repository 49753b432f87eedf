package detection

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/group-photo-labeler/internal/box"
)

func TestPadAndClamp(t *testing.T) {
	bounds := image.Rect(0, 0, 200, 100)

	tests := []struct {
		name string
		rect image.Rectangle
		pad  int
		want []box.Box
	}{
		{
			name: "interior",
			rect: image.Rect(50, 40, 90, 80),
			pad:  6,
			want: []box.Box{box.New(44, 34, 52, 52)},
		},
		{
			name: "top-left corner",
			rect: image.Rect(2, 3, 42, 43),
			pad:  6,
			want: []box.Box{box.New(0, 0, 52, 52)},
		},
		{
			name: "bottom-right corner",
			rect: image.Rect(170, 70, 200, 100),
			pad:  6,
			want: []box.Box{box.New(164, 64, 36, 36)},
		},
		{
			name: "no padding",
			rect: image.Rect(10, 10, 20, 20),
			pad:  0,
			want: []box.Box{box.New(10, 10, 10, 10)},
		},
		{
			name: "outside dropped",
			rect: image.Rect(250, 10, 260, 20),
			pad:  0,
			want: []box.Box{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadAndClamp([]image.Rectangle{tt.rect}, bounds, tt.pad)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d boxes, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("box %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPadAndClamp_StaysInBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 64, 48)
	var rects []image.Rectangle
	for x := -10; x < 70; x += 7 {
		for y := -10; y < 50; y += 9 {
			rects = append(rects, image.Rect(x, y, x+20, y+15))
		}
	}
	for _, b := range PadAndClamp(rects, bounds, 6) {
		if !b.Valid() || b.X+b.W > 64 || b.Y+b.H > 48 {
			t.Errorf("box %+v escapes %v", b, bounds)
		}
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
	bad := []Params{
		{ScaleFactor: 1.0, MinNeighbors: 5, MinSize: 40},
		{ScaleFactor: 1.2, MinNeighbors: -1},
		{ScaleFactor: 1.2, MinSize: -5},
		{ScaleFactor: 1.2, Padding: -1},
	}
	for _, p := range bad {
		if err := p.Validate(); err == nil {
			t.Errorf("Validate(%+v) should fail", p)
		}
	}
}

func TestResolveCascade(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "faces.xml")
	if err := os.WriteFile(explicit, []byte("<opencv_storage/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ResolveCascade(explicit)
	if err != nil || got != explicit {
		t.Errorf("ResolveCascade(explicit) = %q, %v", got, err)
	}

	_, err = ResolveCascade(filepath.Join(dir, "missing.xml"))
	if !errors.Is(err, ErrDetectorUnavailable) {
		t.Errorf("err = %v, want ErrDetectorUnavailable", err)
	}

	saved := CascadeSearchPaths
	defer func() { CascadeSearchPaths = saved }()
	CascadeSearchPaths = []string{filepath.Join(dir, "none"), dir}
	if err := os.WriteFile(filepath.Join(dir, CascadeFile), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = ResolveCascade("")
	if err != nil || got != filepath.Join(dir, CascadeFile) {
		t.Errorf("ResolveCascade(search) = %q, %v", got, err)
	}

	CascadeSearchPaths = []string{filepath.Join(dir, "none")}
	if _, err := ResolveCascade(""); !errors.Is(err, ErrDetectorUnavailable) {
		t.Errorf("err = %v, want ErrDetectorUnavailable", err)
	}
}

func TestNewCascadeDetector_MissingCascade(t *testing.T) {
	_, err := NewCascadeDetector(filepath.Join(t.TempDir(), "missing.xml"), DefaultParams(), nil)
	if !errors.Is(err, ErrDetectorUnavailable) {
		t.Errorf("err = %v, want ErrDetectorUnavailable", err)
	}
}
