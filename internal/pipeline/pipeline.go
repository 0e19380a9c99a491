// Package pipeline coordinates face detection and landmark estimation.
package pipeline

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/facekit/facekit/internal/detector"
	"github.com/facekit/facekit/internal/landmark"
)

// Config holds configuration for the detection pipeline.
type Config struct {
	// CascadePath points to a pigo cascade file. When the file loads, the
	// native detector is used and the heuristic fallback is bypassed.
	CascadePath string

	// MinNativeScore is the cascade quality threshold for the native path.
	MinNativeScore float32

	// ForceHeuristic skips the native capability probe entirely.
	ForceHeuristic bool
}

// DefaultConfig returns a default pipeline config.
func DefaultConfig() Config {
	return Config{
		MinNativeScore: detector.DefaultMinScore,
	}
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg Config
	det detector.Detector
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithCascadePath sets the cascade file used by the native capability probe.
func (b *Builder) WithCascadePath(path string) *Builder {
	if path != "" {
		b.cfg.CascadePath = path
	}
	return b
}

// WithMinNativeScore sets the cascade quality threshold.
func (b *Builder) WithMinNativeScore(score float32) *Builder {
	if score > 0 {
		b.cfg.MinNativeScore = score
	}
	return b
}

// WithForceHeuristic disables the native detector even when a cascade is
// configured.
func (b *Builder) WithForceHeuristic(force bool) *Builder {
	b.cfg.ForceHeuristic = force
	return b
}

// WithDetector injects a detector directly, bypassing the capability probe.
func (b *Builder) WithDetector(d detector.Detector) *Builder {
	b.det = d
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Build selects the detection strategy and initializes the pipeline. The
// native capability is probed exactly once here; the chosen backend is fixed
// for the pipeline's lifetime.
func (b *Builder) Build() (*Pipeline, error) {
	det := b.det
	if det == nil {
		det = selectDetector(b.cfg)
	}
	slog.Debug("face detection pipeline initialized", "backend", det.Name())
	return &Pipeline{cfg: b.cfg, det: det}, nil
}

// selectDetector runs the one-time capability probe.
func selectDetector(cfg Config) detector.Detector {
	if !cfg.ForceHeuristic && cfg.CascadePath != "" {
		native, err := detector.ProbeNative(cfg.CascadePath, cfg.MinNativeScore)
		if err == nil {
			return native
		}
		slog.Warn("native detector unavailable, falling back to heuristic",
			"cascade", cfg.CascadePath, "error", err)
	}
	return detector.NewHeuristicDetector()
}

// Pipeline runs face detection and landmark estimation on still images.
//
// It keeps a last-result cache and a busy indicator for display purposes.
// The pipeline does not serialize concurrent Detect calls; issuing a second
// call before the first returns leaves the cache and busy flag at
// last-writer-wins.
type Pipeline struct {
	cfg  Config
	det  detector.Detector
	busy atomic.Bool

	mu   sync.RWMutex
	last *Result
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Backend returns the name of the selected detection strategy.
func (p *Pipeline) Backend() string { return p.det.Name() }

// Busy reports whether a detection call is currently in flight.
func (p *Pipeline) Busy() bool { return p.busy.Load() }

// LastResult returns the most recently cached result, or nil when the last
// run found no face.
func (p *Pipeline) LastResult() *Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

func (p *Pipeline) setLast(res *Result) {
	p.mu.Lock()
	p.last = res
	p.mu.Unlock()
}

// Detect locates a face in img and derives its alignment guides.
//
// A nil result with a nil error means "no face found". Detection faults
// below the pipeline are logged and collapsed to the same outcome; only
// context cancellation and caller errors (nil image) surface as errors.
func (p *Pipeline) Detect(ctx context.Context, img image.Image) (*Result, error) {
	if img == nil {
		return nil, errors.New("input image is nil")
	}

	p.busy.Store(true)
	defer p.busy.Store(false)

	// Clear the prior result while this run is in flight.
	p.setLast(nil)

	start := time.Now()
	face, err := p.det.Detect(ctx, img)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		slog.Error("face detection failed", "backend", p.det.Name(), "error", err)
		return nil, nil
	}
	if face == nil {
		return nil, nil
	}

	bounds := img.Bounds()
	marks := landmark.Estimate(*face, bounds.Dy())

	res := &Result{
		Face:      *face,
		Landmarks: marks,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Backend:   p.det.Name(),
	}
	res.Processing.TotalNs = time.Since(start).Nanoseconds()

	p.setLast(res)
	return res, nil
}
