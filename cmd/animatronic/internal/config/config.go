// Package config loads animatronic.yaml and ANIMATRONIC_* environment
// overrides for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/go-drift/animatronic/pkg/animation"
)

// FileName is the config file looked up from the working directory upward.
const FileName = "animatronic.yaml"

// EnvPrefix prefixes environment overrides, e.g. ANIMATRONIC_ENGINE_FPS.
const EnvPrefix = "ANIMATRONIC"

// Config represents the optional animatronic.yaml configuration.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig controls the orchestrator and its frame loop.
type EngineConfig struct {
	// FPS is the frame rate of the fixed-interval loop (default: 60).
	FPS int `mapstructure:"fps"`
	// Strict rejects sequences that reference unregistered components.
	Strict bool `mapstructure:"strict"`
	// DefaultEasing names the curve used by time based declarations without
	// an easing (default: "standard").
	DefaultEasing string `mapstructure:"default_easing"`
}

// TUIConfig controls the terminal host.
type TUIConfig struct {
	// PixelsPerCell converts style pixels to terminal columns (default: 4).
	PixelsPerCell float64 `mapstructure:"pixels_per_cell"`
	// Watch reloads the sequence file when it changes.
	Watch bool `mapstructure:"watch"`
}

// LoggingConfig controls CLI logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: info).
	Level string `mapstructure:"level"`
}

// Resolved contains validated configuration values.
type Resolved struct {
	Source        string
	FPS           int
	Strict        bool
	DefaultEasing animation.Curve
	PixelsPerCell float64
	Watch         bool
	LogLevel      log.Level
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			FPS:           animation.DefaultFPS,
			Strict:        true,
			DefaultEasing: "standard",
		},
		TUI: TUIConfig{
			PixelsPerCell: 4,
			Watch:         true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("engine.fps", defaults.Engine.FPS)
	v.SetDefault("engine.strict", defaults.Engine.Strict)
	v.SetDefault("engine.default_easing", defaults.Engine.DefaultEasing)

	v.SetDefault("tui.pixels_per_cell", defaults.TUI.PixelsPerCell)
	v.SetDefault("tui.watch", defaults.TUI.Watch)

	v.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads path, or the nearest animatronic.yaml when path is empty, and
// applies environment overrides. A missing implicit file is not an error.
func Load(path string) (*Config, string, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		if found, err := FindConfig(); err == nil {
			path = found
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, path, nil
}

// Resolve loads the configuration and validates it.
func Resolve(path string) (*Resolved, error) {
	cfg, source, err := Load(path)
	if err != nil {
		return nil, err
	}

	if cfg.Engine.FPS <= 0 || cfg.Engine.FPS > 240 {
		return nil, fmt.Errorf("engine.fps must be between 1 and 240, got %d", cfg.Engine.FPS)
	}
	easing, err := animation.ParseCurve(cfg.Engine.DefaultEasing)
	if err != nil {
		return nil, fmt.Errorf("engine.default_easing: %w", err)
	}
	if cfg.TUI.PixelsPerCell <= 0 {
		return nil, fmt.Errorf("tui.pixels_per_cell must be positive, got %v", cfg.TUI.PixelsPerCell)
	}
	level, err := log.ParseLevel(strings.TrimSpace(cfg.Logging.Level))
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	return &Resolved{
		Source:        source,
		FPS:           cfg.Engine.FPS,
		Strict:        cfg.Engine.Strict,
		DefaultEasing: easing,
		PixelsPerCell: cfg.TUI.PixelsPerCell,
		Watch:         cfg.TUI.Watch,
		LogLevel:      level,
	}, nil
}

// FindConfig walks up from the current directory to find animatronic.yaml.
func FindConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found", FileName)
		}
		dir = parent
	}
}
