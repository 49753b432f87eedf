package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func TestOpen(t *testing.T) {
	imgPath := createTestImage(t, 120, 80, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	img, err := Open(imgPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 120 || bounds.Dy() != 80 {
		t.Errorf("unexpected dimensions: got %dx%d, want 120x80", bounds.Dx(), bounds.Dy())
	}
}

func TestOpen_NonExistent(t *testing.T) {
	_, err := Open("/nonexistent/path/to/image.png")
	if err == nil {
		t.Fatal("Open should fail for non-existent file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v should wrap fs.ErrNotExist", err)
	}
}

func TestOpen_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if err == nil {
		t.Fatal("Open should fail for undecodable file")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Error("decode failure must not look like a missing file")
	}
}

func TestDescribe(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	tests := []struct {
		path   string
		format string
	}{
		{"a.png", "png"},
		{"b.JPG", "jpeg"},
		{"c.jpeg", "jpeg"},
		{"d.gif", "gif"},
		{"e.webp", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			info := Describe(tt.path, img)
			if info.Format != tt.format {
				t.Errorf("Format = %q, want %q", info.Format, tt.format)
			}
			if info.Width != 30 || info.Height != 20 {
				t.Errorf("size = %dx%d, want 30x20", info.Width, info.Height)
			}
		})
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	dst := Clone(src)
	dst.Set(1, 1, color.White)
	if _, _, _, a := src.At(1, 1).RGBA(); a != 0 {
		t.Error("writing to the clone changed the source")
	}
}

func TestFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))

	small, scale := Fit(src, 1000, 1000)
	if scale != 1 || small.Bounds().Dx() != 400 {
		t.Errorf("Fit should not upscale: scale=%v width=%d", scale, small.Bounds().Dx())
	}

	fitted, scale := Fit(src, 100, 100)
	if fitted.Bounds().Dx() != 100 || fitted.Bounds().Dy() != 50 {
		t.Errorf("Fit size = %v, want 100x50", fitted.Bounds().Size())
	}
	if scale != 0.25 {
		t.Errorf("Fit scale = %v, want 0.25", scale)
	}
}

func TestResizeWidth(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 300, 40))
	out := ResizeWidth(src, 120)
	if out.Bounds().Dx() != 120 || out.Bounds().Dy() != 40 {
		t.Errorf("ResizeWidth size = %v, want 120x40", out.Bounds().Size())
	}
}

func TestStackVertical(t *testing.T) {
	top := NewBlankCanvas(10, 5, color.Black).Image()
	bottom := NewBlankCanvas(10, 3, color.White).Image()

	out, err := StackVertical(top, bottom)
	if err != nil {
		t.Fatalf("StackVertical failed: %v", err)
	}
	if out.Bounds().Dy() != 8 {
		t.Fatalf("height = %d, want 8", out.Bounds().Dy())
	}
	if r, _, _, _ := out.At(0, 4).RGBA(); r != 0 {
		t.Error("row 4 should come from the top image")
	}
	if r, _, _, _ := out.At(0, 5).RGBA(); r != 0xffff {
		t.Error("row 5 should come from the bottom image")
	}

	if _, err := StackVertical(top, image.NewRGBA(image.Rect(0, 0, 9, 3))); err == nil {
		t.Error("StackVertical should reject different widths")
	}
}
