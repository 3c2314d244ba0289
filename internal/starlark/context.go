package starlark

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ctmlc/internal/registry"
	"go.starlark.net/starlark"
)

// Options configures an ExecutionContext.
type Options struct {
	// Logger receives print() output (optional, uses discard if nil)
	Logger *slog.Logger

	// MaxSteps bounds the number of Starlark computation steps per file.
	// Zero means unlimited.
	MaxSteps uint64
}

// ExecutionContext executes input files against one compilation context.
type ExecutionContext struct {
	cc      *registry.CompilationContext
	opts    Options
	globals starlark.StringDict
}

// NewExecutionContext creates an execution context whose builtins declare into cc.
func NewExecutionContext(cc *registry.CompilationContext, opts Options) *ExecutionContext {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	ec := &ExecutionContext{cc: cc, opts: opts}
	ec.globals = ec.predeclared()
	return ec
}

// Globals returns the predeclared names visible to input files.
func (ec *ExecutionContext) Globals() starlark.StringDict {
	return ec.globals
}

// Context returns the compilation context being declared into.
func (ec *ExecutionContext) Context() *registry.CompilationContext {
	return ec.cc
}

// ExecFile executes src as the input file filename. Declarations made before
// a failure remain in the compilation context.
func (ec *ExecutionContext) ExecFile(ctx context.Context, filename string, src []byte) error {
	thread, stop := newThread(ctx, filename, ec.opts.Logger, ec.opts.MaxSteps)
	defer stop()

	if _, err := starlark.ExecFileOptions(fileOptions, thread, filename, src, ec.globals); err != nil {
		return fmt.Errorf("executing %s: %w", filename, err)
	}
	return nil
}
