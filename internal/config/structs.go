package config

// Config represents the complete configuration for the facekit application.
// It covers all commands (image, batch, serve) and supports loading from
// configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose"   yaml:"verbose"   json:"verbose"`

	// Detection settings
	Detector DetectorConfig `mapstructure:"detector" yaml:"detector" json:"detector"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// DetectorConfig contains face detection settings.
type DetectorConfig struct {
	// CascadePath points to a pigo cascade file enabling the native
	// detector. Empty or unreadable means the heuristic fallback runs.
	CascadePath    string  `mapstructure:"cascade_path"     yaml:"cascade_path"     json:"cascade_path"`
	MinNativeScore float64 `mapstructure:"min_native_score" yaml:"min_native_score" json:"min_native_score"`
	ForceHeuristic bool    `mapstructure:"force_heuristic"  yaml:"force_heuristic"  json:"force_heuristic"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format            string `mapstructure:"format"              yaml:"format"              json:"format"`
	File              string `mapstructure:"file"                yaml:"file"                json:"file"`
	OverlayDir        string `mapstructure:"overlay_dir"         yaml:"overlay_dir"         json:"overlay_dir"`
	OverlayBoxColor   string `mapstructure:"overlay_box_color"   yaml:"overlay_box_color"   json:"overlay_box_color"`
	OverlayGuideColor string `mapstructure:"overlay_guide_color" yaml:"overlay_guide_color" json:"overlay_guide_color"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host"             yaml:"host"             json:"host"`
	Port            int    `mapstructure:"port"             yaml:"port"             json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin"      yaml:"cors_origin"      json:"cors_origin"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb"    yaml:"max_upload_mb"    json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec"      yaml:"timeout_sec"      json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
	OverlayEnabled  bool   `mapstructure:"overlay_enabled"  yaml:"overlay_enabled"  json:"overlay_enabled"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int  `mapstructure:"workers"           yaml:"workers"           json:"workers"`
	Recursive       bool `mapstructure:"recursive"         yaml:"recursive"         json:"recursive"`
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}
