package batch

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/facekit/facekit/internal/pipeline"
	"github.com/facekit/facekit/internal/utils"
)

// processFile loads one image, runs detection, and optionally writes an
// overlay PNG next to the result.
func processFile(ctx context.Context, pl *pipeline.Pipeline, path, overlayDir string) FileResult {
	img, meta, err := utils.LoadImage(path)
	if err != nil {
		return fileError(path, fmt.Errorf("failed to load %s: %w", path, err))
	}

	res, err := pl.Detect(ctx, img)
	if err != nil {
		return fileError(path, fmt.Errorf("detection failed for %s: %w", path, err))
	}

	if overlayDir != "" && res != nil {
		saveOverlay(img, res, meta, overlayDir)
	}

	return FileResult{Path: path, Result: res}
}

func fileError(path string, err error) FileResult {
	return FileResult{Path: path, Err: err, Error: err.Error()}
}

// saveOverlay renders and writes the overlay image; failures are ignored,
// the detection result itself is what matters.
func saveOverlay(img image.Image, res *pipeline.Result, meta utils.ImageMetadata, overlayDir string) {
	ov := pipeline.RenderOverlay(img, res, nil, nil)
	if ov == nil {
		return
	}
	if err := os.MkdirAll(overlayDir, 0o750); err != nil {
		return
	}

	base := filepath.Base(meta.Path)
	outPath := filepath.Join(overlayDir, strings.TrimSuffix(base, filepath.Ext(base))+"_overlay.png")
	if f, err := os.Create(outPath); err == nil { //nolint:gosec
		// G304: outPath constructed from the CLI overlay-dir flag, expected user input
		_ = png.Encode(f, ov)
		_ = f.Close()
	}
}
