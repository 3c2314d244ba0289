// Package loader reads chemistry input files and executes them into a
// compilation context, reporting failures with a source excerpt.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/registry"
	starctx "github.com/leapstack-labs/ctmlc/internal/starlark"
)

// InputExt is the extension of chemistry input files.
const InputExt = ".cti"

// Options configures a Loader.
type Options struct {
	// Logger for debug output and print() calls (optional, uses discard if nil)
	Logger *slog.Logger

	// MaxSteps bounds execution of each file. Zero means unlimited.
	MaxSteps uint64

	// Validation seeds the validate() directive. Nil keeps "yes"/"yes".
	Validation *registry.Validation
}

// Loader executes input files. Each call returns a fresh compilation
// context, so one Loader may be shared across goroutines.
type Loader struct {
	opts Options
}

// New creates a Loader.
func New(opts Options) *Loader {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{opts: opts}
}

// LoadFile reads and executes the input file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*registry.CompilationContext, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return l.Load(ctx, path, src)
}

// Load executes src as the input named name. The dataset defaults to the
// file stem of name; a dataset() directive overrides it.
func (l *Loader) Load(ctx context.Context, name string, src []byte) (*registry.CompilationContext, error) {
	cc := registry.New()
	if stem := Stem(name); stem != "" {
		cc.Dataset = stem
	}
	if l.opts.Validation != nil {
		cc.Validate = *l.opts.Validation
	}

	ec := starctx.NewExecutionContext(cc, starctx.Options{
		Logger:   l.opts.Logger,
		MaxSteps: l.opts.MaxSteps,
	})
	if err := ec.ExecFile(ctx, name, src); err != nil {
		return nil, newLoadError(name, src, err)
	}

	e, s, p, r := cc.Counts()
	l.opts.Logger.Debug("loaded input",
		"file", name,
		"dataset", cc.Dataset,
		"elements", e,
		"species", s,
		"phases", p,
		"reactions", r,
	)
	return cc, nil
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Discover expands paths into input files. Directories are walked
// recursively for *.cti files, skipping hidden files; plain files are
// returned as given.
func Discover(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !strings.HasSuffix(info.Name(), InputExt) {
				return nil
			}
			if strings.HasPrefix(info.Name(), ".") {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory: %w", err)
		}
	}
	return files, nil
}
