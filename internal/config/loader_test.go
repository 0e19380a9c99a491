package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoader_Load_Defaults(t *testing.T) {
	resetViper(t)

	// Run from an empty directory so no stray config file is picked up.
	chdir(t, t.TempDir())

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestLoader_LoadWithFile(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "facekit.yaml")
	content := `
log_level: debug
detector:
  cascade_path: /opt/cascades/facefinder
  min_native_score: 7.5
  force_heuristic: true
output:
  format: yaml
server:
  port: 9090
batch:
  workers: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/opt/cascades/facefinder", cfg.Detector.CascadePath)
	assert.InDelta(t, 7.5, cfg.Detector.MinNativeScore, 1e-9)
	assert.True(t, cfg.Detector.ForceHeuristic)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Batch.Workers)

	// Unset keys keep their defaults.
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.True(t, cfg.Batch.ContinueOnError)
}

func TestLoader_LoadWithFile_Missing(t *testing.T) {
	resetViper(t)

	_, err := NewLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoader_LoadWithFile_InvalidValues(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "facekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: noisy\n"), 0o600))

	_, err := NewLoader().LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoader_EnvironmentOverride(t *testing.T) {
	resetViper(t)
	chdir(t, t.TempDir())

	t.Setenv("FACEKIT_LOG_LEVEL", "warn")
	t.Setenv("FACEKIT_SERVER_PORT", "3000")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 3000, cfg.Server.Port)
}
