package starlark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ctmlc/internal/registry"
	"github.com/leapstack-labs/ctmlc/internal/testutil"
)

// run executes src against a fresh compilation context.
func run(t *testing.T, src string) (*registry.CompilationContext, error) {
	t.Helper()
	cc := registry.New()
	ec := NewExecutionContext(cc, Options{Logger: testutil.NewTestLogger(t)})
	return cc, ec.ExecFile(context.Background(), "input.cti", []byte(src))
}

func mustRun(t *testing.T, src string) *registry.CompilationContext {
	t.Helper()
	cc, err := run(t, src)
	require.NoError(t, err)
	return cc
}
