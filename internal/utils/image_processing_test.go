package utils

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFitScale(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cap           int
		want          float64
	}{
		{"landscape downscale", 600, 400, 300, 0.5},
		{"portrait downscale", 400, 600, 300, 0.5},
		{"square at cap", 300, 300, 300, 1.0},
		{"small image upscales", 150, 100, 300, 2.0},
		{"one dimension over cap", 600, 100, 300, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FitScale(tt.width, tt.height, tt.cap), 1e-9)
		})
	}
}

func TestScaleInto_Downscale(t *testing.T) {
	img := solidImage(600, 400, color.NRGBA{100, 150, 200, 255})

	out, err := ScaleInto(img, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 300, out.Bounds().Dx())
	assert.Equal(t, 200, out.Bounds().Dy())
}

func TestScaleInto_IdentityIsPixelExact(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 50, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 50; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 5), uint8(y * 6), uint8((x + y) % 256), 255})
		}
	}

	out, err := ScaleInto(img, 1.0)
	require.NoError(t, err)
	require.Equal(t, img.Bounds().Size(), out.Bounds().Size())
	for y := 0; y < 40; y++ {
		for x := 0; x < 50; x++ {
			assert.Equal(t, img.NRGBAAt(x, y), out.NRGBAAt(x, y))
		}
	}
}

func TestScaleInto_RoundsDimensions(t *testing.T) {
	img := solidImage(301, 200, color.NRGBA{10, 20, 30, 255})

	// 301 * 0.9966... rounds to 300, 200 * 0.9966... rounds to 199.
	scale := FitScale(301, 200, 300)
	out, err := ScaleInto(img, scale)
	require.NoError(t, err)
	assert.Equal(t, 300, out.Bounds().Dx())
	assert.Equal(t, 199, out.Bounds().Dy())
}

func TestScaleInto_TinyResultClampsToOnePixel(t *testing.T) {
	img := solidImage(10, 10, color.NRGBA{10, 20, 30, 255})

	out, err := ScaleInto(img, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Bounds().Dx())
	assert.Equal(t, 1, out.Bounds().Dy())
}

func TestScaleInto_Errors(t *testing.T) {
	img := solidImage(10, 10, color.NRGBA{})

	t.Run("nil image", func(t *testing.T) {
		_, err := ScaleInto(nil, 0.5)
		require.Error(t, err)
	})
	t.Run("zero scale", func(t *testing.T) {
		_, err := ScaleInto(img, 0)
		require.Error(t, err)
	})
	t.Run("negative scale", func(t *testing.T) {
		_, err := ScaleInto(img, -1)
		require.Error(t, err)
	})
	t.Run("empty source", func(t *testing.T) {
		empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
		_, err := ScaleInto(empty, 0.5)
		require.Error(t, err)
	})
}
