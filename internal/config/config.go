// Package config loads the scriptdom YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chrisuehlinger/scriptdom/dom"
	"github.com/chrisuehlinger/scriptdom/internal/logging"
)

// DefaultPath is the file read when no --config flag is given.
const DefaultPath = "scriptdom.yaml"

// Config is the root of scriptdom.yaml.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Script ScriptConfig `yaml:"script"`
}

// LogConfig selects the logger level and handler format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ScriptConfig controls script execution.
type ScriptConfig struct {
	// HandlerPrefix is the prefix of compiled inline handler names.
	HandlerPrefix string `yaml:"handler_prefix"`
	// RunInlineScripts disables <script> execution when false. Inline
	// event handlers still run.
	RunInlineScripts bool `yaml:"run_inline_scripts"`
	// EventLoopTimeout bounds how long timers may keep the event loop
	// running after the scripts finish. Zero skips the event loop.
	EventLoopTimeout time.Duration `yaml:"event_loop_timeout"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Script: ScriptConfig{
			HandlerPrefix:    dom.DefaultHandlerPrefix,
			RunInlineScripts: true,
			EventLoopTimeout: 5 * time.Second,
		},
	}
}

// Load reads path on top of the defaults. A missing file at DefaultPath is
// not an error; a missing file anywhere else is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that cannot be caught by decoding.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return err
	}
	if c.Script.EventLoopTimeout < 0 {
		return fmt.Errorf("script.event_loop_timeout must not be negative, got %s", c.Script.EventLoopTimeout)
	}
	return nil
}

// SlogLevel returns the configured log level. Call Validate first; an
// unknown level maps to info.
func (c Config) SlogLevel() slog.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// LogFormat returns the configured log format.
func (c Config) LogFormat() logging.Format {
	format, _ := logging.ParseFormat(c.Log.Format)
	return format
}

// Logger builds the logger described by the configuration.
func (c Config) Logger() *slog.Logger {
	return logging.New(c.SlogLevel(), c.LogFormat())
}
