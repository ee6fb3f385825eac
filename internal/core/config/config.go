// Package config handles configuration loading and validation for speakbox.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"speakbox/internal/core/history"
	"speakbox/internal/core/speak"
)

// Config holds the application configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	History HistoryConfig `yaml:"history"`
	// Player is the command used to play materialized audio files; the
	// file path is appended as the last argument. Empty disables playback.
	Player  []string `yaml:"player"`
	DataDir string   `yaml:"-"` // set by caller, not from config file
}

// BackendConfig holds synthesis backend settings.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// HistoryConfig holds history retention settings.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: speak.DefaultBaseURL,
			Model:   speak.DefaultModel,
		},
		History: HistoryConfig{
			Limit: history.DefaultLimit,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = defaults.Backend.BaseURL
	}
	if c.Backend.Model == "" {
		c.Backend.Model = defaults.Backend.Model
	}
	if c.History.Limit == 0 {
		c.History.Limit = defaults.History.Limit
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if u, err := url.Parse(c.Backend.BaseURL); err != nil {
		errs = errs.Append("backend.base_url", fmt.Errorf("invalid url: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = errs.Append("backend.base_url", fmt.Errorf("scheme must be http or https, got %q", u.Scheme))
	}

	if c.Backend.Model == "" {
		errs = errs.Append("backend.model", fmt.Errorf("model is required"))
	}

	if c.History.Limit < 1 {
		errs = errs.Append("history.limit", fmt.Errorf("must be at least 1"))
	}

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("data directory cannot be empty"))
	}

	return errs.ToError()
}

// HistoryFile returns the path to the history KV file.
func (c *Config) HistoryFile() string {
	return filepath.Join(c.DataDir, "history.json")
}

// AudioDir returns the directory for materialized audio files.
func (c *Config) AudioDir() string {
	return filepath.Join(c.DataDir, "audio")
}
