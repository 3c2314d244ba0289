package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := CompileOptions{DryRun: true}
	cmd := &cobra.Command{
		Use:   "check <input.cti|dir>...",
		Short: "Validate input files without writing output",
		Long: `Run declaration and emission for each input and report any error.
Nothing is written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			if !cmd.Flags().Changed("jobs") {
				opts.Jobs = c.Cfg.Jobs
			}
			inputs, err := discover(args)
			if err != nil {
				return err
			}

			reports, err := runCompile(cmd.Context(), c, inputs, opts)
			r := c.Renderer
			if ok, rerr := r.Structured(reports); ok {
				if err == nil {
					err = rerr
				}
				return err
			}
			for _, rep := range reports {
				r.StatusLine(rep.Input, "ok", fmt.Sprintf("%d species, %d phases, %d reactions", rep.Species, rep.Phases, rep.Reactions))
			}
			if err == nil {
				r.Success(fmt.Sprintf("%d input(s) OK", len(reports)))
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 1, "Number of inputs to check concurrently")
	return cmd
}
