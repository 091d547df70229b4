// Package config handles the XDG configuration directory and config.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"todoctl/internal/logging"
)

const (
	// AppName is the application directory name.
	AppName = "todoctl"

	// ConfigFile is the optional TOML settings filename.
	ConfigFile = "config.toml"

	// DefaultEndpoint is the collection resource used when none is configured.
	DefaultEndpoint = "https://jsonplaceholder.typicode.com/todos"

	// DefaultLogFormat is the diagnostic output format.
	DefaultLogFormat = "text"
)

// Environment variables that override config.toml.
const (
	EnvEndpoint  = "TODOCTL_ENDPOINT"
	EnvLogFormat = "TODOCTL_LOG_FORMAT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Endpoint is the todo collection URL.
	Endpoint string `toml:"endpoint"`

	// TimeoutSeconds bounds each HTTP request. Zero disables the timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// LogFormat selects text, json or logfmt diagnostics.
	LogFormat string `toml:"log_format"`

	// LogTimestamps prefixes each diagnostic line with the time.
	LogTimestamps bool `toml:"log_timestamps"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`
}

// LogOptions returns the diagnostic logger settings.
func (c *Config) LogOptions() logging.Options {
	return logging.Options{Debug: c.Debug, Format: c.LogFormat, ReportTimestamp: c.LogTimestamps}
}

// New creates a Config with defaults for the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todoctl or $HOME/.config/todoctl.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:       dir,
		Endpoint:  DefaultEndpoint,
		LogFormat: DefaultLogFormat,
	}, nil
}

// Load creates a Config and applies config.toml and environment overrides on top
// of the defaults. A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(cfg.Path(), cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading config file %s: %w", cfg.Path(), err)
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		c.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		c.LogFormat = v
	}
}

// Validate checks values that cannot be used as-is.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("endpoint is empty")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid timeout_seconds: %d", c.TimeoutSeconds)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}
	return nil
}

// Timeout returns the per-request timeout, or zero for none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path to config.toml.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}
