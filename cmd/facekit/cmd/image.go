package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/facekit/facekit/internal/pipeline"
	"github.com/facekit/facekit/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// imageCmd represents the image command.
var imageCmd = &cobra.Command{
	Use:   "image [files...]",
	Short: "Locate faces and landmarks in image files",
	Long: `Locate the dominant face in one or more image files and report its
bounding box together with the estimated eye line and chin positions.

Supported formats: JPEG, PNG, BMP

Examples:
  facekit image photo.jpg
  facekit image *.png --format yaml
  facekit image portrait.jpg --overlay-dir out/`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()

		format := cfg.Output.Format
		outputFile := cfg.Output.File
		overlayDir := cfg.Output.OverlayDir

		validFormats := []string{pipeline.FormatJSON, pipeline.FormatYAML, pipeline.FormatText}
		isValidFormat := false
		for _, f := range validFormats {
			if format == f {
				isValidFormat = true
				break
			}
		}
		if !isValidFormat {
			return fmt.Errorf("invalid output format: %s (must be one of: %s)", format, strings.Join(validFormats, ", "))
		}

		b := pipeline.NewBuilder().
			WithCascadePath(cfg.Detector.CascadePath).
			WithMinNativeScore(float32(cfg.Detector.MinNativeScore)).
			WithForceHeuristic(cfg.Detector.ForceHeuristic)
		pl, err := b.Build()
		if err != nil {
			return fmt.Errorf("failed to build detection pipeline: %w", err)
		}

		boxCol := parseHexColor(cfg.Output.OverlayBoxColor, color.RGBA{255, 0, 0, 255})
		guideCol := parseHexColor(cfg.Output.OverlayGuideColor, color.RGBA{0, 255, 0, 255})

		var outputs []string
		for _, pth := range args {
			if !utils.IsSupportedImage(pth) {
				return fmt.Errorf("unsupported image format: %s", pth)
			}
			img, meta, err := utils.LoadImage(pth)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", pth, err)
			}
			res, err := pl.Detect(cmd.Context(), img)
			if err != nil {
				return fmt.Errorf("detection failed for %s: %w", pth, err)
			}
			if res == nil {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: no face found\n", meta.Path); err != nil {
					return fmt.Errorf("failed to write to stdout: %w", err)
				}
				continue
			}
			if overlayDir != "" {
				if err := writeOverlay(cmd, img, res, meta.Path, overlayDir, boxCol, guideCol); err != nil {
					return err
				}
			}
			switch format {
			case pipeline.FormatJSON:
				obj := struct {
					File string           `json:"file"`
					Face *pipeline.Result `json:"face"`
				}{File: meta.Path, Face: res}
				bts, err := json.MarshalIndent(obj, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				outputs = append(outputs, string(bts))
			case pipeline.FormatYAML:
				s, err := pipeline.ToYAML(res)
				if err != nil {
					return fmt.Errorf("format yaml failed: %w", err)
				}
				if len(args) > 1 {
					s = "# " + meta.Path + "\n" + s
				}
				outputs = append(outputs, s)
			default:
				s, err := pipeline.ToPlainText(res)
				if err != nil {
					return fmt.Errorf("format text failed: %w", err)
				}
				outputs = append(outputs, fmt.Sprintf("%s:\n%s", meta.Path, s))
			}
		}
		final := strings.Join(outputs, "\n")
		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(final), 0o600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", outputFile); err != nil {
				return err
			}
		} else if final != "" {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), final); err != nil {
				return fmt.Errorf("failed to write final output: %w", err)
			}
		}
		return nil
	},
}

// writeOverlay renders the detection overlay and saves it under overlayDir
// as <base>_overlay.png.
func writeOverlay(cmd *cobra.Command, img image.Image, res *pipeline.Result,
	srcPath, overlayDir string, boxCol, guideCol color.Color,
) error {
	ov := pipeline.RenderOverlay(img, res, boxCol, guideCol)
	if ov == nil {
		return nil
	}
	if err := os.MkdirAll(overlayDir, 0o750); err != nil {
		return fmt.Errorf("failed to create overlay directory: %w", err)
	}
	base := filepath.Base(srcPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	outPath := filepath.Join(overlayDir, base+"_overlay.png")
	f, err := os.Create(outPath) //nolint:gosec // G304: overlay output path is user-controlled
	if err != nil {
		return fmt.Errorf("failed to create overlay file: %w", err)
	}
	if err := png.Encode(f, ov); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode overlay: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close overlay file: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Saved overlay: %s\n", outPath); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

// parseHexColor parses "#RRGGBB" into a color, returning fallback on any
// malformed input.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

func addImageFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "json", "output format (json, yaml, text)")
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	cmd.Flags().String("overlay-dir", "", "directory to write overlay images (drawn box and guides)")
	cmd.Flags().String("overlay-box-color", "#FF0000", "overlay face box color (hex)")
	cmd.Flags().String("overlay-guide-color", "#00FF00", "overlay guide line color (hex)")
	cmd.Flags().Float64("min-score", 5.0, "minimum cascade detection score for the native backend")
	cmd.Flags().Bool("force-heuristic", false, "skip the native backend and use the skin-tone heuristic")
}

// bindImageFlags binds all flags to viper configuration keys.
func bindImageFlags(cmd *cobra.Command) {
	flagBindings := []struct {
		key  string
		flag string
	}{
		{"output.format", "format"},
		{"output.file", "output"},
		{"output.overlay_dir", "overlay-dir"},
		{"output.overlay_box_color", "overlay-box-color"},
		{"output.overlay_guide_color", "overlay-guide-color"},
		{"detector.min_native_score", "min-score"},
		{"detector.force_heuristic", "force-heuristic"},
	}

	for _, binding := range flagBindings {
		if err := viper.BindPFlag(binding.key, cmd.Flags().Lookup(binding.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", binding.flag, err))
		}
	}
}

func init() {
	rootCmd.AddCommand(imageCmd)

	addImageFlags(imageCmd)
	bindImageFlags(imageCmd)
}

// GetImageCommand returns the image command for testing purposes.
func GetImageCommand() *cobra.Command {
	return imageCmd
}
