package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display ctmlc version and build information.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ctmlc v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "CTI to CTML mechanism compiler (%s)\n", runtime.Version())
		},
	}
}
