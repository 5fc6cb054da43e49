// Package config loads the session configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the options recognized at session initialization.
type Config struct {
	// DebugMode enables verbose dispatch logging and the debug overlay.
	DebugMode bool `yaml:"debug_mode"`

	// TargetFPS is informational for the window core; the Ebitengine loop
	// uses it as the tick rate.
	TargetFPS int `yaml:"target_fps"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// WindowWidth/WindowHeight size the virtual desktop.
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DebugMode:    false,
		TargetFPS:    60,
		LogLevel:     "info",
		WindowWidth:  640,
		WindowHeight: 400,
	}
}

// Load reads the YAML config at path, layered over the defaults. A missing
// file is not an error: the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks option ranges.
func (c *Config) Validate() error {
	if c.TargetFPS <= 0 {
		return fmt.Errorf("target_fps must be positive, got %d", c.TargetFPS)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}
