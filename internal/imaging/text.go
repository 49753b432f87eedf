package imaging

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// PixelsPerScale converts a font scale into a font size in pixels.
const PixelsPerScale = 30.0

var (
	fontsOnce sync.Once
	regular   *opentype.Font
	bold      *opentype.Font
	fontsErr  error
)

func loadFonts() {
	fontsOnce.Do(func() {
		regular, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			return
		}
		bold, fontsErr = opentype.Parse(gobold.TTF)
	})
}

// TextMetrics describes the extent of a rendered string.
type TextMetrics struct {
	// Width is the advance width in pixels, including extra stroke.
	Width int

	// Height is the ink height above the baseline.
	Height int

	// Descent is the distance from the baseline to the bottom of the line.
	Descent int
}

// Font draws text at a fixed size and weight.
type Font struct {
	face    font.Face
	strokes int
}

// NewFont returns a font for the given scale and thickness. See the package
// documentation for how both map onto font size and weight.
func NewFont(scale float64, thickness int) (*Font, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("font scale must be positive, got %v", scale)
	}
	loadFonts()
	if fontsErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", fontsErr)
	}

	f := regular
	if thickness >= 2 {
		f = bold
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    math.Max(1, scale*PixelsPerScale),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	strokes := 1
	if thickness > 2 {
		strokes = thickness - 1
	}
	return &Font{face: face, strokes: strokes}, nil
}

// Measure returns the extent of s when drawn with f.
func (f *Font) Measure(s string) TextMetrics {
	bounds, advance := font.BoundString(f.face, s)
	height := (-bounds.Min.Y).Ceil()
	if height < 0 {
		height = 0
	}
	return TextMetrics{
		Width:   advance.Ceil() + f.strokes - 1,
		Height:  height,
		Descent: f.face.Metrics().Descent.Ceil(),
	}
}

// LineHeight returns the font's recommended line spacing in pixels.
func (f *Font) LineHeight() int {
	return f.face.Metrics().Height.Ceil()
}
