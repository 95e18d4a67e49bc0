package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) }) //nolint:errcheck
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 150.0, cfg.Estimator.AvgHourlyRate)
	assert.Equal(t, "benchmarks", cfg.Sources.Dir)
	assert.Equal(t, 15, cfg.Sources.TimeoutSecs)
	assert.Equal(t, 2.0, cfg.Sources.RatePerSec)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "estimates.db", cfg.Snapshot.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
estimator:
  avg_hourly_rate: 125.5
sources:
  dir: data/benchmarks
  urls:
    - https://benchmarks.example.com/datasets
server:
  port: 9090
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 125.5, cfg.Estimator.AvgHourlyRate)
	assert.Equal(t, "data/benchmarks", cfg.Sources.Dir)
	assert.Equal(t, []string{"https://benchmarks.example.com/datasets"}, cfg.Sources.URLs)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	// Unset keys keep their defaults.
	assert.Equal(t, "estimates.db", cfg.Snapshot.Path)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("estimator: ["), 0o644))
	chdir(t, dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "shouty", Format: "json"}))
}
