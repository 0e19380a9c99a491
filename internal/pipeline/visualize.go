package pipeline

import (
	"image"
	"image/color"
	"math"

	"github.com/facekit/facekit/internal/utils"
)

// RenderOverlay draws the face box and the eye/chin guide lines onto a copy
// of img. A nil result returns the plain copy.
func RenderOverlay(img image.Image, res *Result, boxCol, guideCol color.Color) *image.RGBA {
	if img == nil {
		return nil
	}
	if boxCol == nil {
		boxCol = color.RGBA{255, 0, 0, 255}
	}
	if guideCol == nil {
		guideCol = color.RGBA{0, 255, 0, 255}
	}

	b := img.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, img.At(x, y))
		}
	}
	if res == nil {
		return dst
	}

	box := utils.NewBox(res.Face.X, res.Face.Y,
		res.Face.X+res.Face.Width, res.Face.Y+res.Face.Height)
	utils.DrawRect(dst, box.ToRect(b), boxCol, 2)

	// Guide percentages are relative to native height.
	eyeY := b.Min.Y + int(math.Round(res.Landmarks.EyeLineY/100*float64(b.Dy())))
	chinY := b.Min.Y + int(math.Round(res.Landmarks.ChinY/100*float64(b.Dy())))
	utils.DrawHLine(dst, eyeY, guideCol, 1)
	utils.DrawHLine(dst, chinY, guideCol, 1)

	return dst
}
