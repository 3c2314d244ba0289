package commands

import (
	"github.com/leapstack-labs/ctmlc/internal/export"
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var csvPath string
	cmd := &cobra.Command{
		Use:   "export <input.cti>",
		Short: "Export species composition and thermo coefficients",
		Long: `Write one CSV row per species: the name, its element counts in
first-seen element order, then the fields of each NASA or NASA9 segment.

Without --csv the rows are written to standard output.`,
		Example: `  ctmlc export gri30.cti --csv gri30_species.csv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			comp, err := c.Compile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if csvPath == "" {
				return export.WriteSpecies(c.Renderer.Writer(), comp.CC)
			}
			if err := export.WriteSpeciesFile(csvPath, export.FormatCSV, comp.CC); err != nil {
				return err
			}
			c.Renderer.Success("species exported to " + csvPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file to write")
	return cmd
}
