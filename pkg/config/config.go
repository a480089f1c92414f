package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"resultctl/pkg/result"

	"github.com/joho/godotenv"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	APIBaseURL       string `json:"api_base_url,omitempty"`
	CacheTTL         string `json:"cache_ttl,omitempty"`
	RequestTimeout   string `json:"request_timeout,omitempty"`
	Workers          int    `json:"workers,omitempty"`
	DefaultStudentID string `json:"default_student_id,omitempty"`
	OutputDir        string `json:"output_dir,omitempty"`
	AccentColor      string `json:"accent_color,omitempty"`
}

// Environment variables that override the file
const (
	EnvAPIBaseURL = "RESULTCTL_API_URL"
	EnvCacheTTL   = "RESULTCTL_CACHE_TTL"
	EnvTimeout    = "RESULTCTL_TIMEOUT"
	EnvWorkers    = "RESULTCTL_WORKERS"
)

// getConfigPath returns the absolute path to ~/.resultctl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".resultctl.json"), nil
}

// Defaults returns the built-in configuration
func Defaults() *AppConfig {
	return &AppConfig{
		APIBaseURL:     result.DefaultBaseURL,
		CacheTTL:       result.DefaultCacheTTL.String(),
		RequestTimeout: "15s",
		Workers:        result.DefaultWorkers,
		AccentColor:    "99",
	}
}

// Load reads the configuration file and applies environment overrides on
// top of it. A missing file yields the defaults. Only values present in the
// file are saved back by Save, so defaults never leak into the file.
func Load() (*AppConfig, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}

	// A .env file in the working directory is optional
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFile reads ~/.resultctl.json without defaults or environment overrides.
// Returns an empty struct if the file does not exist.
func LoadFile() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just return an empty configuration
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func applyEnv(cfg *AppConfig) error {
	if v, ok := os.LookupEnv(EnvAPIBaseURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvCacheTTL); ok && v != "" {
		cfg.CacheTTL = v
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok && v != "" {
		cfg.RequestTimeout = v
	}
	if v, ok := os.LookupEnv(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}
	return nil
}

func applyDefaults(cfg *AppConfig) {
	d := Defaults()
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = d.APIBaseURL
	}
	if cfg.CacheTTL == "" {
		cfg.CacheTTL = d.CacheTTL
	}
	if cfg.RequestTimeout == "" {
		cfg.RequestTimeout = d.RequestTimeout
	}
	if cfg.Workers == 0 {
		cfg.Workers = d.Workers
	}
	if cfg.AccentColor == "" {
		cfg.AccentColor = d.AccentColor
	}
}

// Validate checks that durations parse and counts are positive. Empty fields
// are accepted; they fall back to defaults on Load.
func (c *AppConfig) Validate() error {
	if c.CacheTTL != "" {
		if d, err := time.ParseDuration(c.CacheTTL); err != nil || d <= 0 {
			return fmt.Errorf("cache_ttl %q is not a positive duration", c.CacheTTL)
		}
	}
	if c.RequestTimeout != "" {
		if d, err := time.ParseDuration(c.RequestTimeout); err != nil || d <= 0 {
			return fmt.Errorf("request_timeout %q is not a positive duration", c.RequestTimeout)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// TTL returns the parsed cache validity window
func (c *AppConfig) TTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return result.DefaultCacheTTL
	}
	return d
}

// Timeout returns the parsed per-request timeout
func (c *AppConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
