package utils

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedImage(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"photo.png", true},
		{"photo.bmp", true},
		{"photo.gif", false},
		{"photo.tiff", false},
		{"document.pdf", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSupportedImage(tt.path))
		})
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.png")

	img := image.NewNRGBA(image.Rect(0, 0, 12, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 20), uint8(y * 30), 100, 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	loaded, meta, err := LoadImage(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 12, loaded.Bounds().Dx())
	assert.Equal(t, 8, loaded.Bounds().Dy())
	assert.Equal(t, path, meta.Path)
	assert.Equal(t, 12, meta.Width)
	assert.Equal(t, 8, meta.Height)
}

func TestLoadImage_MissingFile(t *testing.T) {
	_, _, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)

	var ipe *ImageProcessingError
	assert.True(t, errors.As(err, &ipe))
}

func TestLoadImage_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))

	_, _, err := LoadImage(path)
	require.Error(t, err)
}

func TestImageProcessingError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ImageProcessingError{Operation: "load", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "load")
}
