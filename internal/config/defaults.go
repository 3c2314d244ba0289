package config

// Default configuration values.
const (
	DefaultOutputDir   = "."
	DefaultCatalogPath = ".ctmlc/catalog.db"
	DefaultJobs        = 1
	DefaultValidate    = "yes"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
)

// ProjectConfig is the subset of ctmlc.yaml shared by the CLI and tests.
type ProjectConfig struct {
	OutputDir         string `koanf:"output_dir"`
	CatalogPath       string `koanf:"catalog_path"`
	Jobs              int    `koanf:"jobs"`
	ValidateSpecies   string `koanf:"validate_species"`
	ValidateReactions string `koanf:"validate_reactions"`
}

// ApplyDefaults fills unset fields with their defaults.
func (c *ProjectConfig) ApplyDefaults() {
	if c == nil {
		return
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.CatalogPath == "" {
		c.CatalogPath = DefaultCatalogPath
	}
	if c.Jobs == 0 {
		c.Jobs = DefaultJobs
	}
	if c.ValidateSpecies == "" {
		c.ValidateSpecies = DefaultValidate
	}
	if c.ValidateReactions == "" {
		c.ValidateReactions = DefaultValidate
	}
}

// Defaults returns the default values keyed by their config key.
func Defaults() map[string]any {
	return map[string]any{
		"output_dir":         DefaultOutputDir,
		"catalog_path":       DefaultCatalogPath,
		"jobs":               DefaultJobs,
		"validate_species":   DefaultValidate,
		"validate_reactions": DefaultValidate,
		"log_level":          DefaultLogLevel,
		"log_format":         DefaultLogFormat,
	}
}
