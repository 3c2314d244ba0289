package starlark

import (
	"context"
	"log/slog"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// fileOptions is the dialect accepted in input files: top-level if/for,
// while loops, sets, recursion and rebinding of globals.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// newThread creates a thread for executing one input file. print() output
// goes to logger at Info level. The thread is cancelled when ctx is done; the
// returned stop function releases the cancellation hook.
func newThread(ctx context.Context, name string, logger *slog.Logger, maxSteps uint64) (*starlark.Thread, func()) {
	thread := &starlark.Thread{
		Name: name,
		Print: func(t *starlark.Thread, msg string) {
			logger.Info(msg, "file", t.Name)
		},
	}
	if maxSteps > 0 {
		thread.SetMaxExecutionSteps(maxSteps)
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	return thread, func() { stop() }
}
