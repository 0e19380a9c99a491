package skin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponents(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b    uint8
		wantLuma   float64
		wantChromB float64
		wantChromR float64
	}{
		{
			name: "black",
			r:    0, g: 0, b: 0,
			wantLuma: 0, wantChromB: 128, wantChromR: 128,
		},
		{
			name: "pure red",
			r:    255, g: 0, b: 0,
			wantLuma: 76.245, wantChromB: 84.905, wantChromR: 255.5,
		},
		{
			name: "pure green",
			r:    0, g: 255, b: 0,
			wantLuma: 149.685, wantChromB: 43.595, wantChromR: 21.155,
		},
		{
			name: "pure blue",
			r:    0, g: 0, b: 255,
			wantLuma: 29.07, wantChromB: 255.5, wantChromR: 107.345,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			luma, cb, cr := Components(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.wantLuma, luma, 1e-9)
			assert.InDelta(t, tt.wantChromB, cb, 1e-9)
			assert.InDelta(t, tt.wantChromR, cr, 1e-9)
		})
	}
}

func TestIsSkin(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    bool
	}{
		{"light skin tone", 224, 172, 105, true},
		{"medium skin tone", 198, 134, 66, true},
		{"black", 0, 0, 0, false},
		{"white", 255, 255, 255, false},
		{"pure blue", 0, 0, 255, false},
		{"pure red", 255, 0, 0, false},
		{"pure green", 0, 255, 0, false},
		{"dark shadow", 60, 40, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSkin(tt.r, tt.g, tt.b))
		})
	}
}

// Boundary samples must fail: every comparison in the classifier is strict.
func TestIsSkin_StrictBoundaries(t *testing.T) {
	skinSamples := []struct{ r, g, b uint8 }{
		{224, 172, 105},
		{198, 134, 66},
	}

	for _, s := range skinSamples {
		luma, cb, cr := Components(s.r, s.g, s.b)
		require.True(t, IsSkin(s.r, s.g, s.b))
		assert.Greater(t, luma, MinLuma)
		assert.Greater(t, cb, MinChromaBlue)
		assert.Less(t, cb, MaxChromaBlue)
		assert.Greater(t, cr, MinChromaRed)
		assert.Less(t, cr, MaxChromaRed)
	}
}
