package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facekit/facekit/internal/skin"
)

func TestGeneratorColorsMatchClassifier(t *testing.T) {
	assert.True(t, skin.IsSkin(SkinTone.R, SkinTone.G, SkinTone.B))
	assert.False(t, skin.IsSkin(NonSkinBlue.R, NonSkinBlue.G, NonSkinBlue.B))
}

func TestGeneratePortraitImage(t *testing.T) {
	cfg := DefaultPortraitConfig()
	img := GeneratePortraitImage(cfg)

	require.Equal(t, cfg.Width, img.Bounds().Dx())
	require.Equal(t, cfg.Height, img.Bounds().Dy())

	inside := img.NRGBAAt(150, 100)
	assert.Equal(t, SkinTone, inside)

	outside := img.NRGBAAt(10, 10)
	assert.Equal(t, NonSkinBlue, outside)
}

func TestGenerateNoisyImage_PixelCount(t *testing.T) {
	img := GenerateNoisyImage(300, 300, 50)

	count := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if skin.IsSkin(c.R, c.G, c.B) {
				count++
			}
		}
	}
	assert.LessOrEqual(t, count, 50)
	assert.Positive(t, count)
}
