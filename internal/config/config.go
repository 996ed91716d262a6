package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Image source kinds
const (
	SourceURL = "url" // build cache-busting URLs locally
	SourceAPI = "api" // fetch image ids from the host's JSON API
)

const fileName = "config.yaml"

// Config represents the user's configuration
type Config struct {
	CatCount       int           `yaml:"cat_count" env:"PAWS_CAT_COUNT"`
	ImageSource    string        `yaml:"image_source" env:"PAWS_IMAGE_SOURCE"`
	ImageBaseURL   string        `yaml:"image_base_url" env:"PAWS_IMAGE_BASE_URL"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"PAWS_REQUEST_TIMEOUT"`

	// Terminal shell
	DragThreshold int           `yaml:"drag_threshold" env:"PAWS_DRAG_THRESHOLD"` // cells
	ExitDelay     time.Duration `yaml:"exit_delay" env:"PAWS_EXIT_DELAY"`
	Debug         bool          `yaml:"debug" env:"PAWS_DEBUG"`

	LogLevel string `yaml:"log_level" env:"PAWS_LOG_LEVEL"`
	LogFile  string `yaml:"log_file,omitempty" env:"PAWS_LOG_FILE"`

	// HTTP shell
	Port        int    `yaml:"port" env:"PAWS_PORT"`
	APIKey      string `yaml:"api_key,omitempty" env:"PAWS_API_KEY"`
	MaxSessions int    `yaml:"max_sessions" env:"PAWS_MAX_SESSIONS"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CatCount:       10,
		ImageSource:    SourceURL,
		ImageBaseURL:   "https://cataas.com",
		RequestTimeout: 10 * time.Second,
		DragThreshold:  8,
		ExitDelay:      350 * time.Millisecond,
		LogLevel:       "info",
		Port:           8742,
		MaxSessions:    1000,
	}
}

// globalConfigDir returns the global config directory path (~/.paws)
func globalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".paws"), nil
}

// GlobalConfigPath returns ~/.paws/config.yaml
func GlobalConfigPath() (string, error) {
	dir, err := globalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// ProjectConfigPath returns .paws/config.yaml in the working directory
func ProjectConfigPath() string {
	return filepath.Join(".paws", fileName)
}

// DefaultLogFile returns ~/.paws/paws.log, or paws.log when there is no home.
func DefaultLogFile() string {
	dir, err := globalConfigDir()
	if err != nil {
		return "paws.log"
	}
	return filepath.Join(dir, "paws.log")
}

// Load reads the project config, falling back to the global one, then applies
// environment overrides and validates.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := ProjectConfigPath()
	if _, err := os.Stat(path); err != nil {
		global, gerr := GlobalConfigPath()
		if gerr != nil {
			return nil, gerr
		}
		path = global
	}

	if err := readFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return finish(cfg)
}

// LoadFile reads an explicit config file. A missing file is an error.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := readFile(path, cfg); err != nil {
		return nil, err
	}
	return finish(cfg)
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.CatCount < 0 {
		return fmt.Errorf("cat_count must not be negative, got %d", c.CatCount)
	}
	if c.ImageSource != SourceURL && c.ImageSource != SourceAPI {
		return fmt.Errorf("image_source must be %q or %q, got %q", SourceURL, SourceAPI, c.ImageSource)
	}
	if c.ImageBaseURL == "" {
		return fmt.Errorf("image_base_url must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.DragThreshold < 1 {
		return fmt.Errorf("drag_threshold must be at least 1, got %d", c.DragThreshold)
	}
	if c.ExitDelay < 0 {
		return fmt.Errorf("exit_delay must not be negative, got %s", c.ExitDelay)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("max_sessions must be positive, got %d", c.MaxSessions)
	}
	return nil
}

// SaveToProject writes the config to .paws/config.yaml
func SaveToProject(cfg *Config) error {
	return writeFile(ProjectConfigPath(), cfg)
}

// SaveToGlobal writes the config to ~/.paws/config.yaml
func SaveToGlobal(cfg *Config) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}
	return writeFile(path, cfg)
}

// SaveTo writes the config to an explicit path, creating parent directories.
func SaveTo(path string, cfg *Config) error {
	return writeFile(path, cfg)
}

func writeFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
