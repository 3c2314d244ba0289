// Package config provides configuration management for the ctmlc CLI.
package config

import intconfig "github.com/leapstack-labs/ctmlc/internal/config"

// Config holds all CLI configuration options.
type Config struct {
	OutputDir         string `koanf:"output_dir"`
	OutputFormat      string `koanf:"output"`
	Verbose           bool   `koanf:"verbose"`
	LogLevel          string `koanf:"log_level"`
	LogFormat         string `koanf:"log_format"`
	Jobs              int    `koanf:"jobs"`
	CatalogPath       string `koanf:"catalog_path"`
	ValidateSpecies   string `koanf:"validate_species"`
	ValidateReactions string `koanf:"validate_reactions"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultOutputDir   = intconfig.DefaultOutputDir
	DefaultCatalogPath = intconfig.DefaultCatalogPath
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
