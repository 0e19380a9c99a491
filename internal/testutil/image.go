package testutil

import (
	"image"
	"image/color"
	"image/draw"
)

// Colors used by the synthetic portrait generator. SkinTone passes the
// luma/chroma skin classifier; NonSkinBlue is pure blue and never matches.
var (
	SkinTone    = color.NRGBA{R: 224, G: 172, B: 105, A: 255}
	NonSkinBlue = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
)

// CreateTestImage creates a solid-color image of the given dimensions.
func CreateTestImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// PortraitConfig describes a synthetic portrait: a skin-tone rectangle
// (head plus body extent) on a uniform non-skin background.
type PortraitConfig struct {
	Width      int
	Height     int
	SkinRect   image.Rectangle
	Skin       color.Color
	Background color.Color
}

// DefaultPortraitConfig returns a portrait whose skin region produces a
// plausible face box under the heuristic detector.
func DefaultPortraitConfig() PortraitConfig {
	return PortraitConfig{
		Width:      300,
		Height:     300,
		SkinRect:   image.Rect(100, 60, 200, 220),
		Skin:       SkinTone,
		Background: NonSkinBlue,
	}
}

// GeneratePortraitImage renders the configured skin rectangle onto the
// background color.
func GeneratePortraitImage(cfg PortraitConfig) *image.NRGBA {
	img := CreateTestImage(cfg.Width, cfg.Height, cfg.Background)
	draw.Draw(img, cfg.SkinRect, &image.Uniform{cfg.Skin}, image.Point{}, draw.Src)
	return img
}

// GenerateNoisyImage scatters at most n isolated skin-tone pixels across a
// non-skin background, spaced so they never form a dense region.
func GenerateNoisyImage(width, height, n int) *image.NRGBA {
	img := CreateTestImage(width, height, NonSkinBlue)
	step := 7 // coprime with typical widths, spreads pixels deterministically
	placed := 0
	for i := 0; placed < n && i < width*height; i += step {
		x := i % width
		y := (i / width) * 3
		if y >= height {
			break
		}
		img.SetNRGBA(x, y, SkinTone)
		placed++
	}
	return img
}
