package pipeline

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facekit/facekit/internal/detector"
	"github.com/facekit/facekit/internal/landmark"
	"github.com/facekit/facekit/internal/testutil"
)

func TestRenderOverlay(t *testing.T) {
	img := testutil.CreateTestImage(100, 100, testutil.NonSkinBlue)
	res := &Result{
		Face:      detector.FaceBox{X: 20, Y: 20, Width: 40, Height: 40},
		Landmarks: landmark.Landmarks{EyeLineY: 34, ChinY: 60},
		Width:     100,
		Height:    100,
	}
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}

	out := RenderOverlay(img, res, red, green)
	require.NotNil(t, out)
	assert.Equal(t, img.Bounds(), out.Bounds())

	// Box outline at the face rectangle's top edge.
	assert.Equal(t, red, out.RGBAAt(40, 20))
	// Guide lines across the full width at the landmark rows.
	assert.Equal(t, green, out.RGBAAt(0, 34))
	assert.Equal(t, green, out.RGBAAt(99, 60))
	// A pixel away from box and guides keeps the source color.
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, out.RGBAAt(5, 5))
}

func TestRenderOverlay_NilResult(t *testing.T) {
	img := testutil.CreateTestImage(50, 50, testutil.SkinTone)

	out := RenderOverlay(img, nil, nil, nil)
	require.NotNil(t, out)

	// Plain copy, no decorations.
	r, g, b, _ := out.RGBAAt(25, 25).RGBA()
	sr, sg, sb, _ := testutil.SkinTone.RGBA()
	assert.Equal(t, sr, r)
	assert.Equal(t, sg, g)
	assert.Equal(t, sb, b)
}

func TestRenderOverlay_NilImage(t *testing.T) {
	assert.Nil(t, RenderOverlay(nil, sampleResult(), nil, nil))
}

func TestRenderOverlay_DefaultColors(t *testing.T) {
	img := testutil.CreateTestImage(100, 100, testutil.NonSkinBlue)
	res := &Result{
		Face:      detector.FaceBox{X: 10, Y: 10, Width: 50, Height: 50},
		Landmarks: landmark.Landmarks{EyeLineY: 27.5, ChinY: 60},
		Width:     100,
		Height:    100,
	}

	out := RenderOverlay(img, res, nil, nil)
	require.NotNil(t, out)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, out.RGBAAt(30, 10))
}
