package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/cli/output"
	"github.com/leapstack-labs/ctmlc/internal/registry"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log_format: unknown format %q (want text or json)", c.LogFormat)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs: must be at least 1, got %d", c.Jobs)
	}
	return nil
}

// Level returns the configured log level. Verbose lowers it to debug.
func (c *Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: unknown level %q (want debug, info, warn or error)", c.LogLevel)
	}
	return l, nil
}

// Validation returns the initial values of the validate() directive.
func (c *Config) Validation() registry.Validation {
	v := registry.Validation{Species: c.ValidateSpecies, Reactions: c.ValidateReactions}
	if v.Species == "" {
		v.Species = "yes"
	}
	if v.Reactions == "" {
		v.Reactions = "yes"
	}
	return v
}
