package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts r from img. The region must lie inside the image bounds.
func Crop(img image.Image, r image.Rectangle) (*image.NRGBA, error) {
	bounds := img.Bounds()
	r = r.Canon()
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region %v", r)
	}
	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", r, bounds)
	}
	return imaging.Crop(img, r), nil
}

// Thumbnail crops r, grown by margin pixels on every side and clipped to the
// image, and scales the result so its longer side is at most maxSide.
// Used to show each face next to its name field.
func Thumbnail(img image.Image, r image.Rectangle, margin, maxSide int) (*image.NRGBA, error) {
	grown := r.Canon().Inset(-margin).Intersect(img.Bounds())
	cropped, err := Crop(img, grown)
	if err != nil {
		return nil, err
	}
	if maxSide <= 0 {
		return cropped, nil
	}
	b := cropped.Bounds()
	if b.Dx() <= maxSide && b.Dy() <= maxSide {
		return cropped, nil
	}
	return imaging.Fit(cropped, maxSide, maxSide, imaging.Lanczos), nil
}
