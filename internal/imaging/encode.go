package imaging

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// JPEGQuality is the quality used for annotated JPEG output.
const JPEGQuality = 95

// EncoderFor picks the raster encoder matching the extension of path.
func EncoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(JPEGQuality), nil
	case ".png":
		return imgio.PNGEncoder(), nil
	}
	return nil, fmt.Errorf("unsupported output format %q", filepath.Ext(path))
}

// Encode writes img to w in the format implied by path.
func Encode(w io.Writer, path string, img image.Image) error {
	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}
	if err := enc(w, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return nil
}
