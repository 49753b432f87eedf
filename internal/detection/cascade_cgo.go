//go:build cgo

package detection

import (
	"context"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ironsheep/group-photo-labeler/internal/box"
	"github.com/ironsheep/group-photo-labeler/internal/imaging"
	"github.com/ironsheep/group-photo-labeler/internal/logger"
)

// cascadeScaleImage is OpenCV's CASCADE_SCALE_IMAGE flag.
const cascadeScaleImage = 2

// CascadeDetector finds faces with an OpenCV Haar cascade.
type CascadeDetector struct {
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
	params     Params
	path       string
	log        *zap.Logger
}

// NewCascadeDetector loads the cascade at path. Call Close when done.
func NewCascadeDetector(path string, params Params, log *zap.Logger) (*CascadeDetector, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	resolved, err := ResolveCascade(path)
	if err != nil {
		return nil, err
	}
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(resolved) {
		classifier.Close()
		return nil, fmt.Errorf("%w: failed to load cascade %s", ErrDetectorUnavailable, resolved)
	}
	return &CascadeDetector{
		classifier: classifier,
		params:     params,
		path:       resolved,
		log:        logger.OrNop(log),
	}, nil
}

// Detect runs the cascade on img and returns padded, clamped face boxes.
func (d *CascadeDetector) Detect(ctx context.Context, img image.Image) ([]box.Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()

	mat, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, nrgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("failed to create mat: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBAToGray)
	gocv.EqualizeHist(gray, &gray)

	d.mu.Lock()
	rects := d.classifier.DetectMultiScaleWithParams(
		gray,
		d.params.ScaleFactor,
		d.params.MinNeighbors,
		cascadeScaleImage,
		image.Pt(d.params.MinSize, d.params.MinSize),
		image.Pt(0, 0),
	)
	d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	faces := PadAndClamp(rects, image.Rect(0, 0, b.Dx(), b.Dy()), d.params.Padding)
	d.log.Info("face detection finished",
		zap.String("cascade", d.path),
		zap.Int("raw", len(rects)),
		zap.Int("faces", len(faces)))
	return faces, nil
}

// Close releases the cascade.
func (d *CascadeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.Close()
}
