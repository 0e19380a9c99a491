package config

import (
	"fmt"
	"os"
)

// Valid log levels.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Valid output formats.
var validFormats = map[string]bool{
	"json": true,
	"yaml": true,
	"text": true,
}

// DefaultConfig returns a configuration populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Detector: DetectorConfig{
			MinNativeScore: 5.0,
		},
		Output: OutputConfig{
			Format:            "json",
			OverlayBoxColor:   "#FF0000",
			OverlayGuideColor: "#00FF00",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     50,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
			OverlayEnabled:  true,
		},
		Batch: BatchConfig{
			Workers:         4,
			ContinueOnError: true,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if c.Output.Format != "" && !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output format: %s", c.Output.Format)
	}
	if err := c.Detector.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Batch.Validate()
}

// Validate checks detector settings. A missing cascade file is not an
// error; the pipeline probes it and falls back to the heuristic.
func (d *DetectorConfig) Validate() error {
	if d.MinNativeScore < 0 {
		return fmt.Errorf("min_native_score must be >= 0, got %g", d.MinNativeScore)
	}
	if d.CascadePath != "" {
		if info, err := os.Stat(d.CascadePath); err == nil && info.IsDir() {
			return fmt.Errorf("cascade_path is a directory: %s", d.CascadePath)
		}
	}
	return nil
}

// Validate checks server settings.
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("server port must be in [1, 65535], got %d", s.Port)
	}
	if s.MaxUploadMB < 1 {
		return fmt.Errorf("max_upload_mb must be >= 1, got %d", s.MaxUploadMB)
	}
	if s.TimeoutSec < 1 {
		return fmt.Errorf("timeout_sec must be >= 1, got %d", s.TimeoutSec)
	}
	return nil
}

// Validate checks batch settings.
func (b *BatchConfig) Validate() error {
	if b.Workers < 1 {
		return fmt.Errorf("batch workers must be >= 1, got %d", b.Workers)
	}
	return nil
}
