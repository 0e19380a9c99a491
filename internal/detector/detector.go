// Package detector locates a single face region within a still image.
//
// Two implementations exist: a cascade-based native detector backed by pigo,
// and a fallback heuristic that classifies skin-tone pixels and aggregates
// them into a plausible head region. Both report at most one face.
package detector

import (
	"context"
	"image"
)

// FaceBox is an axis-aligned rectangle in source-image pixel coordinates
// believed to contain a face. Width and Height are positive for any box
// produced by a detector.
type FaceBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AspectRatio returns width over height. Callers must guard a zero height.
func (f FaceBox) AspectRatio() float64 { return f.Width / f.Height }

// Detector locates at most one face in an image.
//
// A nil FaceBox with a nil error means the image was processed but no
// plausible face was found. A non-nil error is a processing fault; callers
// decide whether faults collapse to "no detection".
type Detector interface {
	Detect(ctx context.Context, img image.Image) (*FaceBox, error)
	Name() string
}
