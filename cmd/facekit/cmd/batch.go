package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/facekit/facekit/internal/batch"
	"github.com/facekit/facekit/internal/config"
	"github.com/facekit/facekit/internal/pipeline"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command for parallel image processing.
var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Locate faces in multiple images in parallel",
	Long: `Process multiple image files or directories in parallel and report the
face bounding box and landmark estimates for each.

Supported formats: JPEG, PNG, BMP

Examples:
  facekit batch *.jpg *.png
  facekit batch photos/ --recursive --workers 8
  facekit batch a.jpg b.png --format json --output results.json`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runBatchCommand,
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values through Viper's precedence system.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) batch.Config {
	batchConfig := batch.Config{
		Pipeline: pipeline.Config{
			CascadePath:    cfg.Detector.CascadePath,
			MinNativeScore: float32(cfg.Detector.MinNativeScore),
			ForceHeuristic: cfg.Detector.ForceHeuristic,
		},
	}

	batchConfig.Workers = cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}

	batchConfig.Recursive = cfg.Batch.Recursive
	if cmd.Flags().Changed("recursive") {
		batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	}

	batchConfig.ContinueOnError = cfg.Batch.ContinueOnError
	if cmd.Flags().Changed("continue-on-error") {
		batchConfig.ContinueOnError, _ = cmd.Flags().GetBool("continue-on-error")
	}

	batchConfig.OverlayDir = cfg.Output.OverlayDir
	if cmd.Flags().Changed("overlay-dir") {
		batchConfig.OverlayDir, _ = cmd.Flags().GetString("overlay-dir")
	}

	return batchConfig
}

func runBatchCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	batchConfig := configToBatchConfig(cfg, cmd)

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}
	outputFile := cfg.Output.File
	if cmd.Flags().Changed("output") {
		outputFile, _ = cmd.Flags().GetString("output")
	}
	quiet, _ := cmd.Flags().GetBool("quiet")

	var progress batch.ProgressFunc
	if !quiet {
		progress = func(done, total int, path string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s\n", done, total, path)
		}
	}

	result, err := batch.ProcessBatch(cmd.Context(), args, batchConfig, progress)
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	var out string
	if format == pipeline.FormatJSON {
		out, err = batch.ToJSON(result)
	} else {
		out, err = batch.FormatSummary(result)
	}
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(out), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", outputFile)
		}
	} else {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("workers", "w", 0,
		fmt.Sprintf("number of parallel workers (default: %d)", runtime.NumCPU()))
	batchCmd.Flags().BoolP("recursive", "r", false, "recursively scan directories")
	batchCmd.Flags().Bool("continue-on-error", true, "keep processing after per-file failures")
	batchCmd.Flags().StringP("format", "f", "json", "output format: json, text")
	batchCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	batchCmd.Flags().String("overlay-dir", "", "directory to save overlay images")
	batchCmd.Flags().Bool("quiet", false, "suppress progress output")
}
