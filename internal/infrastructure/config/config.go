package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all launcher configuration.
type Config struct {
	Launcher LauncherConfig `toml:"launcher"`
	Java     JavaConfig     `toml:"java"`
	Window   WindowConfig   `toml:"window"`
	Logging  LogConfig      `toml:"logging"`
	Status   StatusConfig   `toml:"status"`
}

// LauncherConfig holds the shared store location.
type LauncherConfig struct {
	BaseDir string `envconfig:"LAUNCHER_BASE_DIR" toml:"base_dir"`
}

// JavaConfig holds runtime sizing and overrides. Non-positive memory
// values fall back to the tuner defaults.
type JavaConfig struct {
	MinMemory int    `envconfig:"JAVA_MIN_MEMORY" default:"1024" toml:"min_memory"`
	MaxMemory int    `envconfig:"JAVA_MAX_MEMORY" default:"2048" toml:"max_memory"`
	PermGen   int    `envconfig:"JAVA_PERMGEN" default:"128" toml:"permgen"`
	JVMPath   string `envconfig:"JAVA_PATH" toml:"path"`
	JVMArgs   string `envconfig:"JAVA_ARGS" toml:"args"`
}

// WindowConfig holds the game window size. Widths below 10 disable the
// window arguments.
type WindowConfig struct {
	Width  int `envconfig:"WINDOW_WIDTH" default:"854" toml:"width"`
	Height int `envconfig:"WINDOW_HEIGHT" default:"480" toml:"height"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" toml:"development"`
}

// StatusConfig holds the optional status server address. Empty disables it.
type StatusConfig struct {
	Addr string `envconfig:"STATUS_ADDR" toml:"addr"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadFile loads environment configuration and layers the TOML file at
// path on top. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Java: JavaConfig{
			MinMemory: 1024,
			MaxMemory: 2048,
			PermGen:   128,
		},
		Window: WindowConfig{
			Width:  854,
			Height: 480,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// BaseDir returns the configured store root, or the per-user config
// directory when none is set.
func (c *Config) BaseDir() string {
	if c.Launcher.BaseDir != "" {
		return c.Launcher.BaseDir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "launchpad")
	}
	return ".launchpad"
}
