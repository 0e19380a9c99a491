package landmark

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facekit/facekit/internal/detector"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name         string
		face         detector.FaceBox
		nativeHeight int
		wantEye      float64
		wantChin     float64
	}{
		{
			name:         "centered face",
			face:         detector.FaceBox{X: 0, Y: 100, Width: 150, Height: 200},
			nativeHeight: 1000,
			wantEye:      17, // (100 + 200*0.35) / 1000 * 100
			wantChin:     30, // (100 + 200) / 1000 * 100
		},
		{
			name:         "face at top edge",
			face:         detector.FaceBox{X: 10, Y: 0, Width: 100, Height: 100},
			nativeHeight: 400,
			wantEye:      8.75,
			wantChin:     25,
		},
		{
			name:         "fractional coordinates",
			face:         detector.FaceBox{X: 0, Y: 50.5, Width: 80, Height: 95.4},
			nativeHeight: 300,
			wantEye:      (50.5 + 95.4*0.35) / 300 * 100,
			wantChin:     (50.5 + 95.4) / 300 * 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lm := Estimate(tt.face, tt.nativeHeight)
			assert.InDelta(t, tt.wantEye, lm.EyeLineY, 1e-9)
			assert.InDelta(t, tt.wantChin, lm.ChinY, 1e-9)
		})
	}
}

// A face box spilling past the bottom edge yields percentages above 100;
// values are deliberately not clamped.
func TestEstimate_NoClamping(t *testing.T) {
	face := detector.FaceBox{X: 0, Y: 380, Width: 100, Height: 100}
	lm := Estimate(face, 400)

	assert.InDelta(t, 103.75, lm.EyeLineY, 1e-9)
	assert.InDelta(t, 120, lm.ChinY, 1e-9)
}

func TestEstimate_EyeLineAboveChin(t *testing.T) {
	face := detector.FaceBox{X: 0, Y: 10, Width: 50, Height: 60}
	lm := Estimate(face, 200)

	assert.Less(t, lm.EyeLineY, lm.ChinY)
}
