// Package batch runs face detection over collections of image files.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/facekit/facekit/internal/pipeline"
)

// Config holds batch processing settings.
type Config struct {
	Workers         int
	Recursive       bool
	ContinueOnError bool
	OverlayDir      string

	// Pipeline is the detection pipeline configuration shared by workers.
	Pipeline pipeline.Config
}

// FileResult is the per-file outcome of a batch run.
type FileResult struct {
	Path   string           `json:"path"`
	Result *pipeline.Result `json:"result,omitempty"`
	Err    error            `json:"-"`
	Error  string           `json:"error,omitempty"`
}

// Result summarizes a batch run.
type Result struct {
	Files       []FileResult  `json:"files"`
	Detected    int           `json:"detected"`
	NoDetection int           `json:"no_detection"`
	Failed      int           `json:"failed"`
	Duration    time.Duration `json:"duration_ns"`
	WorkerCount int           `json:"worker_count"`
}

// ProgressFunc receives per-file completion notifications. Callbacks may be
// invoked from multiple worker goroutines.
type ProgressFunc func(done, total int, path string)

// ProcessBatch discovers image files under the given paths and runs face
// detection over them with a worker pool. Results are returned in discovery
// order regardless of completion order.
func ProcessBatch(ctx context.Context, paths []string, cfg Config, progress ProgressFunc) (*Result, error) {
	files, err := DiscoverImageFiles(paths, cfg.Recursive)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	pl, err := pipeline.NewBuilder().
		WithCascadePath(cfg.Pipeline.CascadePath).
		WithMinNativeScore(cfg.Pipeline.MinNativeScore).
		WithForceHeuristic(cfg.Pipeline.ForceHeuristic).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build detection pipeline: %w", err)
	}

	start := time.Now()
	results := make([]FileResult, len(files))

	var wg sync.WaitGroup
	var done int
	var doneMu sync.Mutex
	jobs := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = processFile(ctx, pl, files[i], cfg.OverlayDir)
				if progress != nil {
					doneMu.Lock()
					done++
					progress(done, len(files), files[i])
					doneMu.Unlock()
				}
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	res := &Result{
		Files:       results,
		Duration:    time.Since(start),
		WorkerCount: workers,
	}
	for i := range results {
		switch {
		case results[i].Err != nil:
			res.Failed++
			if !cfg.ContinueOnError {
				return res, fmt.Errorf("processing %s: %w", results[i].Path, results[i].Err)
			}
		case results[i].Result != nil:
			res.Detected++
		default:
			res.NoDetection++
		}
	}
	return res, nil
}
