//go:build !cgo

package detection

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/ironsheep/group-photo-labeler/internal/box"
)

// CascadeDetector is unavailable in builds without cgo.
type CascadeDetector struct{}

// NewCascadeDetector always fails without cgo.
func NewCascadeDetector(path string, params Params, log *zap.Logger) (*CascadeDetector, error) {
	return nil, fmt.Errorf("%w: built without cgo", ErrDetectorUnavailable)
}

// Detect always fails without cgo.
func (d *CascadeDetector) Detect(ctx context.Context, img image.Image) ([]box.Box, error) {
	return nil, ErrDetectorUnavailable
}

// Close is a no-op.
func (d *CascadeDetector) Close() error { return nil }
