package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config path is given and the file exists
const DefaultFile = "recipefinder.yaml"

// Environment variable names
const (
	EnvBaseURL     = "RECIPEFINDER_BASE_URL"
	EnvCacheTTL    = "RECIPEFINDER_CACHE_TTL"
	EnvHTTPTimeout = "RECIPEFINDER_HTTP_TIMEOUT"
	EnvDebounce    = "RECIPEFINDER_DEBOUNCE"
	EnvDBPath      = "RECIPEFINDER_DB"
	EnvLogLevel    = "RECIPEFINDER_LOG_LEVEL"
)

// Config holds the application configuration
type Config struct {
	BaseURL     string
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
	Debounce    time.Duration
	DBPath      string
	LogLevel    string
}

// fileConfig is the YAML shape; durations are strings like "5m"
type fileConfig struct {
	Catalog struct {
		BaseURL     string `yaml:"base_url"`
		CacheTTL    string `yaml:"cache_ttl"`
		HTTPTimeout string `yaml:"http_timeout"`
	} `yaml:"catalog"`
	UI struct {
		Debounce string `yaml:"debounce"`
	} `yaml:"ui"`
	Storage struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		BaseURL:     "https://www.themealdb.com/api/json/v1/1",
		CacheTTL:    5 * time.Minute,
		HTTPTimeout: 30 * time.Second,
		Debounce:    300 * time.Millisecond,
		DBPath:      "recipefinder.db",
		LogLevel:    "info",
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (or DefaultFile if path is empty and it exists), then .env and the environment
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.applyFile(path, explicit); err != nil {
		return nil, err
	}

	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setString(&c.BaseURL, fc.Catalog.BaseURL)
	setString(&c.DBPath, fc.Storage.DBPath)
	setString(&c.LogLevel, fc.LogLevel)

	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"catalog.cache_ttl", fc.Catalog.CacheTTL, &c.CacheTTL},
		{"catalog.http_timeout", fc.Catalog.HTTPTimeout, &c.HTTPTimeout},
		{"ui.debounce", fc.UI.Debounce, &c.Debounce},
	}
	for _, d := range durations {
		if err := setDuration(d.dst, d.name, d.value); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.BaseURL, getEnv(EnvBaseURL, ""))
	setString(&c.DBPath, getEnv(EnvDBPath, ""))
	setString(&c.LogLevel, getEnv(EnvLogLevel, ""))

	if err := setDuration(&c.CacheTTL, EnvCacheTTL, getEnv(EnvCacheTTL, "")); err != nil {
		return err
	}
	if err := setDuration(&c.HTTPTimeout, EnvHTTPTimeout, getEnv(EnvHTTPTimeout, "")); err != nil {
		return err
	}
	return setDuration(&c.Debounce, EnvDebounce, getEnv(EnvDebounce, ""))
}

// Validate checks that every value is usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: must be an http(s) URL", c.BaseURL)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.CacheTTL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", c.Debounce)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", name, err)
	}
	*dst = d
	return nil
}
