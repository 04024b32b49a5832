package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a fresh temp dir so no stray .env or recipefinder.yaml is picked up
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvBaseURL, EnvCacheTTL, EnvHTTPTimeout, EnvDebounce, EnvDBPath, EnvLogLevel} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoadYAMLFile(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  base_url: http://localhost:9000/api
  cache_ttl: 10m
ui:
  debounce: 150ms
storage:
  db_path: data/recipes.db
log_level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api", cfg.BaseURL)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout, "unset values keep defaults")
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "data/recipes.db", cfg.DBPath)
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestLoadDefaultFileWhenPresent(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("log_level: warn\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)
	path := filepath.Join(dir, "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  cache_ttl: 10m\n"), 0644))
	t.Setenv(EnvCacheTTL, "1m")
	t.Setenv(EnvDBPath, "/tmp/other.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
}

func TestDotEnvIsRead(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvDebounce+"=500ms\n"), 0644))
	t.Cleanup(func() { os.Unsetenv(EnvDebounce) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "missing explicit file", file: "-"},
		{name: "bad yaml", file: "catalog: [unclosed"},
		{name: "bad duration", env: map[string]string{EnvCacheTTL: "soon"}},
		{name: "negative ttl", env: map[string]string{EnvCacheTTL: "-1m"}},
		{name: "not http", env: map[string]string{EnvBaseURL: "ftp://example.com"}},
		{name: "bad level", env: map[string]string{EnvLogLevel: "chatty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdir(t)
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			switch tt.file {
			case "":
			case "-":
				path = filepath.Join(dir, "missing.yaml")
			default:
				path = filepath.Join(dir, "bad.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.file), 0644))
			}

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestOpenLogFile(t *testing.T) {
	dir := t.TempDir()

	f, err := OpenLogFile(filepath.Join(dir, "recipes.db"))
	require.NoError(t, err)
	defer f.Close()

	logger := NewLogger(f, "API", log.DebugLevel)
	logger.Info("GET", "url", "https://example.test")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "API")
	assert.Contains(t, string(data), "GET")
}
