// Package config loads the run configuration and builds the console platform.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/handheld/core"
	"gopkg.in/yaml.v3"
)

// LogConfig selects how diagnostics are written.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Config is the run configuration of the handheld tool.
type Config struct {
	Program   string    `yaml:"program"`
	FreqGHz   float64   `yaml:"freq_ghz"`
	Report    string    `yaml:"report"`
	DumpState bool      `yaml:"dump_state"`
	Log       LogConfig `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		FreqGHz: 1,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML configuration on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML configuration on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	var errs []error

	if c.FreqGHz <= 0 {
		errs = append(errs, fmt.Errorf("freq_ghz must be positive, got %v", c.FreqGHz))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// ParseLevel accepts "trace" in addition to the slog level names.
func ParseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return core.LevelTrace, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return level, nil
}

// NewHandler creates the slog handler described by the log configuration.
func (l LogConfig) NewHandler(w io.Writer) (slog.Handler, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	switch l.Format {
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	case "text", "":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", l.Format)
	}
}
