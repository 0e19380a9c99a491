package utils

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBox_OrdersCoordinates(t *testing.T) {
	b := NewBox(10, 20, 4, 2)
	assert.Equal(t, Box{MinX: 4, MinY: 2, MaxX: 10, MaxY: 20}, b)
}

func TestBox_WidthHeight(t *testing.T) {
	b := NewBox(1, 2, 5, 10)
	assert.InDelta(t, 4, b.Width(), 1e-9)
	assert.InDelta(t, 8, b.Height(), 1e-9)
}

func TestBox_Scale(t *testing.T) {
	b := NewBox(1, 2, 3, 4).Scale(2)
	assert.Equal(t, Box{MinX: 2, MinY: 4, MaxX: 6, MaxY: 8}, b)
}

func TestBox_ToRect(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)

	tests := []struct {
		name string
		box  Box
		want image.Rectangle
	}{
		{"interior", NewBox(10.2, 20.7, 30.1, 40.9), image.Rect(10, 20, 31, 41)},
		{"clamped to bounds", NewBox(-5, -5, 200, 200), image.Rect(0, 0, 100, 100)},
		{"degenerate", NewBox(50, 50, 50, 50), image.Rect(50, 50, 50, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.box.ToRect(bounds))
		})
	}
}

func TestBoundingBox(t *testing.T) {
	pts := []Point{{X: 3, Y: 7}, {X: -1, Y: 2}, {X: 5, Y: 4}}
	b := BoundingBox(pts)
	assert.Equal(t, Box{MinX: -1, MinY: 2, MaxX: 5, MaxY: 7}, b)
}

func TestBoundingBox_Empty(t *testing.T) {
	assert.Equal(t, Box{}, BoundingBox(nil))
}

func TestBoundingBoxPoints(t *testing.T) {
	pts := []image.Point{{X: 10, Y: 30}, {X: 2, Y: 40}, {X: 25, Y: 5}}
	b := BoundingBoxPoints(pts)
	assert.Equal(t, Box{MinX: 2, MinY: 5, MaxX: 25, MaxY: 40}, b)
}

func TestBoundingBoxPoints_SinglePoint(t *testing.T) {
	b := BoundingBoxPoints([]image.Point{{X: 7, Y: 9}})
	assert.Equal(t, Box{MinX: 7, MinY: 9, MaxX: 7, MaxY: 9}, b)
	assert.Zero(t, b.Width())
	assert.Zero(t, b.Height())
}

func TestDrawRect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	red := color.RGBA{255, 0, 0, 255}

	DrawRect(img, image.Rect(5, 5, 15, 15), red, 1)

	// Corners and edges carry the outline color.
	assert.Equal(t, red, img.RGBAAt(5, 5))
	assert.Equal(t, red, img.RGBAAt(14, 14))
	assert.Equal(t, red, img.RGBAAt(10, 5))
	assert.Equal(t, red, img.RGBAAt(5, 10))
	// Interior stays untouched.
	assert.Equal(t, color.RGBA{}, img.RGBAAt(10, 10))
}

func TestDrawRect_OutsideBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	require.NotPanics(t, func() {
		DrawRect(img, image.Rect(50, 50, 60, 60), color.RGBA{255, 0, 0, 255}, 2)
	})
}

func TestDrawHLine(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	green := color.RGBA{0, 255, 0, 255}

	DrawHLine(img, 8, green, 2)

	for x := 0; x < 20; x++ {
		assert.Equal(t, green, img.RGBAAt(x, 8))
		assert.Equal(t, green, img.RGBAAt(x, 9))
	}
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 7))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 10))
}

func TestDrawHLine_OutOfRange(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	require.NotPanics(t, func() {
		DrawHLine(img, -5, color.RGBA{0, 255, 0, 255}, 1)
		DrawHLine(img, 100, color.RGBA{0, 255, 0, 255}, 1)
	})
}
