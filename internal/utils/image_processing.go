package utils

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// FitScale returns the factor that maps the larger of width/height onto cap.
// Both dimensions below cap yield a factor above 1; callers that must not
// upscale have to clamp themselves.
func FitScale(width, height, cap int) float64 {
	return math.Min(float64(cap)/float64(width), float64(cap)/float64(height))
}

// ScaleInto renders img into an off-screen NRGBA raster of size
// (width*scale, height*scale), rounded to the integer pixel grid.
// A scale of exactly 1 returns a plain pixel copy so repeated runs on the
// same image stay bit-identical.
func ScaleInto(img image.Image, scale float64) (*image.NRGBA, error) {
	if img == nil {
		return nil, &ImageProcessingError{Operation: "scale", Err: errors.New("input image is nil")}
	}
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return nil, &ImageProcessingError{Operation: "scale", Err: errors.New("invalid scale factor")}
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < 1 || height < 1 {
		return nil, &ImageProcessingError{Operation: "scale", Err: errors.New("empty source image")}
	}

	newWidth := int(math.Round(float64(width) * scale))
	newHeight := int(math.Round(float64(height) * scale))
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	if newWidth == width && newHeight == height {
		return imaging.Clone(img), nil
	}
	return imaging.Resize(img, newWidth, newHeight, imaging.Lanczos), nil
}
