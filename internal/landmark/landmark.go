// Package landmark derives horizontal alignment guides from a face box.
package landmark

import "github.com/facekit/facekit/internal/detector"

// eyeLineRatio approximates the eye position within a face box, measured
// from its top edge. The chin is assumed to align with the bottom edge.
// Empirical constant, kept as-is.
const eyeLineRatio = 0.35

// Landmarks holds the two derived reference lines as percentages of the
// image's native height. Values are not clamped to [0, 100]: a face box
// extending outside image bounds produces out-of-range percentages, which
// is the caller's responsibility to handle.
type Landmarks struct {
	EyeLineY float64 `json:"eye_line_y"`
	ChinY    float64 `json:"chin_y"`
}

// Estimate converts a validated face box and the image's native height into
// eye-line and chin-line percentages.
func Estimate(face detector.FaceBox, nativeHeight int) Landmarks {
	h := float64(nativeHeight)
	return Landmarks{
		EyeLineY: (face.Y + face.Height*eyeLineRatio) / h * 100,
		ChinY:    (face.Y + face.Height) / h * 100,
	}
}
