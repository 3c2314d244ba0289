package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/ctmlc/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// fixture copies a file from the repository testdata directory into dir.
func fixture(t *testing.T, dir, name string) string {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("..", "..", "..", "testdata", name))
	require.NoError(t, err)
	return writeFile(t, dir, name, string(src))
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// setup points the fallback configuration at a fresh output directory and
// output mode, returning the directory.
func setup(t *testing.T, mode string) string {
	t.Helper()
	config.ResetConfig()
	out := t.TempDir()
	t.Setenv("CTMLC_OUTPUT_DIR", out)
	t.Setenv("CTMLC_OUTPUT", mode)
	t.Setenv("CTMLC_JOBS", "")
	return out
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}
