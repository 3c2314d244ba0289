package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/leapstack-labs/ctmlc/internal/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"compile", "check", "export", "inspect", "catalog", "version", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	for _, flag := range []string{"config", "output", "verbose", "log-level", "log-format", "output-dir"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestCompletionCommand(t *testing.T) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"completion", "bash"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "ctmlc")
}

func TestPrintError(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		PrintError(&buf, errors.New("boom"))
		assert.Equal(t, "Error: boom\n", buf.String())
	})

	t.Run("load error with excerpt", func(t *testing.T) {
		le := &loader.LoadError{File: "a.cti", Line: 2, Col: 1, Msg: "undefined: x", Excerpt: ">    2 > x\n"}
		var buf bytes.Buffer
		PrintError(&buf, fmt.Errorf("compiling: %w", le))
		assert.Equal(t, "Error: compiling: a.cti:2:1: undefined: x\n>    2 > x\n", buf.String())
	})
}
