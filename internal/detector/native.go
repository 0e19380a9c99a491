package detector

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	pigo "github.com/esimov/pigo/core"
)

const (
	// Cascade scan parameters for fast single-face mode.
	nativeMinSize     = 20
	nativeShiftFactor = 0.1
	nativeScaleFactor = 1.1
	nativeClusterIoU  = 0.2
)

// DefaultMinScore is the minimum cascade quality score for a detection to
// be accepted.
const DefaultMinScore float32 = 5.0

// NativeDetector wraps a pigo cascade classifier. It plays the role of the
// platform-provided face detector: when a cascade is available the heuristic
// fallback is bypassed entirely and the cascade rectangle is used verbatim.
type NativeDetector struct {
	classifier *pigo.Pigo
	minScore   float32
}

// ProbeNative attempts to load and unpack a cascade file. It is the
// capability check run once at pipeline construction; a failed probe means
// the caller falls back to the heuristic detector.
func ProbeNative(cascadePath string, minScore float32) (*NativeDetector, error) {
	if cascadePath == "" {
		return nil, errors.New("cascade path is empty")
	}
	data, err := os.ReadFile(cascadePath) //nolint:gosec // G304: cascade path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack cascade file: %w", err)
	}

	if minScore <= 0 {
		minScore = DefaultMinScore
	}

	slog.Debug("native face detector available", "cascade", cascadePath, "min_score", minScore)
	return &NativeDetector{classifier: classifier, minScore: minScore}, nil
}

// Name identifies the detector backend.
func (d *NativeDetector) Name() string { return "native" }

// Detect runs the cascade in fast single-face mode and returns the
// highest-scoring rectangle, or (nil, nil) when nothing clears the score
// threshold.
func (d *NativeDetector) Detect(ctx context.Context, img image.Image) (*FaceBox, error) {
	if img == nil {
		return nil, errors.New("input image is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := pigo.ImgToNRGBA(img)
	pixels := pigo.RgbToGrayscale(src)
	cols := src.Bounds().Dx()
	rows := src.Bounds().Dy()
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", cols, rows)
	}

	maxSize := cols
	if rows > maxSize {
		maxSize = rows
	}

	params := pigo.CascadeParams{
		MinSize:     nativeMinSize,
		MaxSize:     maxSize,
		ShiftFactor: nativeShiftFactor,
		ScaleFactor: nativeScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, nativeClusterIoU)

	best := bestDetection(dets, d.minScore)
	if best == nil {
		return nil, nil
	}

	// pigo reports center and side length; convert to a top-left box.
	half := float64(best.Scale) / 2
	return &FaceBox{
		X:      float64(best.Col) - half,
		Y:      float64(best.Row) - half,
		Width:  float64(best.Scale),
		Height: float64(best.Scale),
	}, nil
}

// bestDetection picks the highest-quality detection at or above minScore.
func bestDetection(dets []pigo.Detection, minScore float32) *pigo.Detection {
	var best *pigo.Detection
	for i := range dets {
		if dets[i].Q < minScore {
			continue
		}
		if best == nil || dets[i].Q > best.Q {
			best = &dets[i]
		}
	}
	return best
}
