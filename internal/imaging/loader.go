package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ImageInfo contains metadata about a loaded photo.
type ImageInfo struct {
	// Width is the image width in pixels after orientation correction.
	Width int `json:"width"`

	// Height is the image height in pixels after orientation correction.
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif", "tiff", "bmp" or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`
}

// Open decodes the image at path and applies its EXIF orientation, so the
// pixel grid matches what a viewer shows and box coordinates line up with it.
//
// A missing file yields an error wrapping fs.ErrNotExist.
func Open(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// Describe returns metadata for an image opened from path.
func Describe(path string, img image.Image) ImageInfo {
	b := img.Bounds()
	return ImageInfo{
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: formatFromExt(path),
	}
}

// Clone returns a mutable copy of img with bounds starting at (0,0).
func Clone(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// Fit scales img down to fit within maxW x maxH, keeping the aspect ratio.
// The second result is the applied scale factor (1 when no scaling happened).
func Fit(img image.Image, maxW, maxH int) (*image.NRGBA, float64) {
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return Clone(img), 1
	}
	out := imaging.Fit(img, maxW, maxH, imaging.Linear)
	return out, float64(out.Bounds().Dx()) / float64(b.Dx())
}

// ResizeWidth stretches img horizontally to width, keeping its height.
// The box filter averages source pixels, which suits shrinking text strips.
func ResizeWidth(img image.Image, width int) *image.NRGBA {
	return imaging.Resize(img, width, img.Bounds().Dy(), imaging.Box)
}

// StackVertical places bottom directly below top. Both images must have the
// same width.
func StackVertical(top, bottom image.Image) (*image.NRGBA, error) {
	tb, bb := top.Bounds(), bottom.Bounds()
	if tb.Dx() != bb.Dx() {
		return nil, fmt.Errorf("width mismatch: %d vs %d", tb.Dx(), bb.Dx())
	}
	out := imaging.New(tb.Dx(), tb.Dy()+bb.Dy(), image.Transparent)
	out = imaging.Paste(out, top, image.Pt(0, 0))
	out = imaging.Paste(out, bottom, image.Pt(0, tb.Dy()))
	return out, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".tif", ".tiff":
		return "tiff"
	case ".bmp":
		return "bmp"
	}
	return "unknown"
}
