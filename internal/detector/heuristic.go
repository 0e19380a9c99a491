package detector

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/facekit/facekit/internal/skin"
	"github.com/facekit/facekit/internal/utils"
)

const (
	// workingCap bounds the larger dimension of the working raster. The
	// classification scan runs on the downsampled raster, not the source.
	workingCap = 300

	// minSkinPixels guards against false positives on near-empty or noisy
	// classification results.
	minSkinPixels = 100

	// headHeightRatio restricts the detected vertical extent to the head,
	// assuming the region below it covers neck and body. Empirical, not
	// derived from the data.
	headHeightRatio = 0.6

	// Plausible width-to-height range for a human face.
	minFaceAspect = 0.5
	maxFaceAspect = 1.5
)

// HeuristicDetector finds a face by skin-tone pixel classification and
// bounding-box aggregation. The pipeline is deterministic: the same image
// always yields bit-identical coordinates.
type HeuristicDetector struct{}

// NewHeuristicDetector creates the fallback skin-tone detector.
func NewHeuristicDetector() *HeuristicDetector { return &HeuristicDetector{} }

// Name identifies the detector backend.
func (d *HeuristicDetector) Name() string { return "heuristic" }

// Detect scans a downsampled working raster for skin-tone pixels and derives
// a validated face box in source-image coordinates. It returns (nil, nil)
// when no plausible face region is found.
func (d *HeuristicDetector) Detect(ctx context.Context, img image.Image) (*FaceBox, error) {
	if img == nil {
		return nil, errors.New("input image is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	scale := utils.FitScale(width, height, workingCap)

	raster, err := utils.ScaleInto(img, scale)
	if err != nil {
		return nil, fmt.Errorf("failed to render working raster: %w", err)
	}

	matches := collectSkinPixels(raster)
	if len(matches) < minSkinPixels {
		slog.Debug("insufficient skin-tone pixels", "matched", len(matches), "required", minSkinPixels)
		return nil, nil
	}

	box := utils.BoundingBoxPoints(matches)
	face := extractFace(box, scale)
	if face == nil {
		slog.Debug("skin region rejected as implausible",
			"min_x", box.MinX, "max_x", box.MaxX, "min_y", box.MinY, "max_y", box.MaxY)
	}
	return face, nil
}

// collectSkinPixels scans every pixel of the working raster and records the
// working-space coordinates classified as skin. Alpha is ignored.
func collectSkinPixels(raster *image.NRGBA) []image.Point {
	var matches []image.Point
	b := raster.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := raster.NRGBAAt(x, y)
			if skin.IsSkin(c.R, c.G, c.B) {
				matches = append(matches, image.Point{X: x - b.Min.X, Y: y - b.Min.Y})
			}
		}
	}
	return matches
}

// extractFace restricts the skin bounding box to the head region, rescales
// it to source-image coordinates, and validates plausibility. It returns nil
// for degenerate or implausible geometry.
func extractFace(box utils.Box, scale float64) *FaceBox {
	// The detected extent usually includes neck and body; keep the top part.
	headHeight := box.Height() * headHeightRatio

	face := FaceBox{
		X:      box.MinX / scale,
		Y:      box.MinY / scale,
		Width:  box.Width() / scale,
		Height: headHeight / scale,
	}

	// A single-row region yields zero height; reject instead of dividing.
	if face.Height <= 0 || face.Width <= 0 {
		return nil
	}
	if ar := face.AspectRatio(); ar < minFaceAspect || ar > maxFaceAspect {
		return nil
	}
	return &face
}
