// Package commands implements the ctmlc subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/ctmlc/internal/cli/config"
	"github.com/leapstack-labs/ctmlc/internal/cli/output"
	"github.com/leapstack-labs/ctmlc/internal/compiler"
	intconfig "github.com/leapstack-labs/ctmlc/internal/config"
	"github.com/leapstack-labs/ctmlc/internal/loader"
	"github.com/leapstack-labs/ctmlc/internal/registry"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
	Loader   *loader.Loader
}

// NewCommandContext creates a CommandContext for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	v := cfg.Validation()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
		Loader:   loader.New(loader.Options{Logger: logger, Validation: &v}),
	}
}

// Compiled is one input taken through declaration and emission.
type Compiled struct {
	Path   string
	CC     *registry.CompilationContext
	Result *compiler.Result
}

// Compile loads and compiles the input at path.
func (c *CommandContext) Compile(ctx context.Context, path string) (*Compiled, error) {
	cc, err := c.Loader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	res, err := compiler.Compile(cc, compiler.Options{Logger: c.Logger.With("file", path)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Compiled{Path: path, CC: cc, Result: res}, nil
}

// resolve makes a relative path relative to the output directory.
func (c *CommandContext) resolve(path string) string {
	if filepath.IsAbs(path) || c.Cfg.OutputDir == "" {
		return path
	}
	return filepath.Join(c.Cfg.OutputDir, path)
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	jobs, err := strconv.Atoi(os.Getenv("CTMLC_JOBS"))
	if err != nil || jobs < 1 {
		jobs = intconfig.DefaultJobs
	}
	return &config.Config{
		OutputDir:         getEnvOrDefault("CTMLC_OUTPUT_DIR", intconfig.DefaultOutputDir),
		OutputFormat:      getEnvOrDefault("CTMLC_OUTPUT", config.DefaultOutput),
		CatalogPath:       getEnvOrDefault("CTMLC_CATALOG_PATH", intconfig.DefaultCatalogPath),
		LogLevel:          intconfig.DefaultLogLevel,
		LogFormat:         intconfig.DefaultLogFormat,
		Jobs:              jobs,
		ValidateSpecies:   getEnvOrDefault("CTMLC_VALIDATE_SPECIES", intconfig.DefaultValidate),
		ValidateReactions: getEnvOrDefault("CTMLC_VALIDATE_REACTIONS", intconfig.DefaultValidate),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
