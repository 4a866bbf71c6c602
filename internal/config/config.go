// Package config loads numfacts configuration from YAML with environment
// overrides, and watches the file for changes.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"numfacts/internal/factservice"
	"numfacts/internal/logging"
	"numfacts/internal/picker"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all numfacts configuration.
type Config struct {
	// Fact service
	Service ServiceConfig `yaml:"service"`

	// Initial screen state
	Screen ScreenConfig `yaml:"screen"`

	// Presentation
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig configures the numbers API client.
type ServiceConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  string `yaml:"timeout"` // empty = transport default
}

// ScreenConfig configures the state the screen starts in.
type ScreenConfig struct {
	Label           string `yaml:"label"`
	DefaultCategory string `yaml:"default_category"`
}

// UIConfig configures the terminal screen.
type UIConfig struct {
	Theme string `yaml:"theme"` // light, dark, auto
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	Format     string          `yaml:"format"`     // json, console
	File       string          `yaml:"file"`       // log file path
	DebugMode  bool            `yaml:"debug_mode"` // master toggle - false = no logging
	Categories map[string]bool `yaml:"categories"` // per-category toggles
}

// Options converts the config to logging options.
func (c LoggingConfig) Options() logging.Options {
	return logging.Options{
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		DebugMode:  c.DebugMode,
		Categories: c.Categories,
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Endpoint: factservice.DefaultEndpoint,
		},
		Screen: ScreenConfig{
			Label:           "Please enter a number",
			DefaultCategory: picker.Trivia,
		},
		UI: UIConfig{
			Theme: "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(".numfacts", "logs", "numfacts.log"),
		},
	}
}

// DefaultPath returns ./.numfacts/config.yaml.
func DefaultPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".numfacts", "config.yaml")
	}
	return filepath.Join(cwd, ".numfacts", "config.yaml")
}

// LoadDotEnv loads a .env file from the working directory, if present.
// Variables already set in the environment win.
func LoadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; env overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logging.Get(logging.CategoryConfig).Debug("config file not found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NUMFACTS_ENDPOINT"); v != "" {
		c.Service.Endpoint = v
	}
	if v := os.Getenv("NUMFACTS_TIMEOUT"); v != "" {
		c.Service.Timeout = v
	}
	if v := os.Getenv("NUMFACTS_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("NUMFACTS_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("NUMFACTS_DEBUG"); v != "" {
		c.Logging.DebugMode = v == "1" || strings.EqualFold(v, "true")
	}
}

// GetTimeout returns the request timeout; zero means none.
func (c *Config) GetTimeout() time.Duration {
	if c.Service.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Service.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// ValidThemes lists the accepted ui.theme values.
var ValidThemes = []string{"light", "dark", "auto"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Service.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid service endpoint %q: must be an absolute http(s) URL", c.Service.Endpoint)
	}

	if c.Service.Timeout != "" {
		d, err := time.ParseDuration(c.Service.Timeout)
		if err != nil {
			return fmt.Errorf("invalid service timeout %q: %w", c.Service.Timeout, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid service timeout %q: must not be negative", c.Service.Timeout)
		}
	}

	if c.Screen.DefaultCategory != "" && !picker.IsDefault(c.Screen.DefaultCategory) {
		return fmt.Errorf("invalid default category %q (valid: %v)", c.Screen.DefaultCategory, picker.DefaultOptions())
	}

	if c.UI.Theme != "" && !slices.Contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	return nil
}
