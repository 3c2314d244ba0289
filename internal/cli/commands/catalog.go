package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/ctmlc/internal/catalog"
	intconfig "github.com/leapstack-labs/ctmlc/internal/config"
	"github.com/leapstack-labs/ctmlc/internal/ctml"
	"github.com/spf13/cobra"
)

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Record compiled mechanisms in a SQLite catalog",
		Long: `Record compiled mechanisms in a SQLite catalog and query their species
and reactions across mechanisms.`,
	}
	cmd.PersistentFlags().String("catalog", "", "Catalog database path (default: "+intconfig.DefaultCatalogPath+")")

	cmd.AddCommand(newCatalogAddCommand())
	cmd.AddCommand(newCatalogListCommand())
	return cmd
}

// openCatalog opens the catalog named by --catalog or the configuration.
func openCatalog(cmd *cobra.Command, c *CommandContext) (*catalog.Store, error) {
	path := c.Cfg.CatalogPath
	if f := cmd.Flags().Lookup("catalog"); f != nil && f.Changed {
		path = f.Value.String()
	}
	return catalog.Open(path, c.Logger)
}

func newCatalogAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <input.cti|dir>...",
		Short: "Compile inputs and record them in the catalog",
		Long: `Compile each input and record its species and reactions under its
dataset name. Re-adding a dataset replaces the earlier record.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			inputs, err := discover(args)
			if err != nil {
				return err
			}
			store, err := openCatalog(cmd, c)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			added := make([]catalog.Mechanism, 0, len(inputs))
			for _, in := range inputs {
				comp, err := c.Compile(ctx, in)
				if err != nil {
					return err
				}
				e := catalog.NewEntry(in, comp.CC, comp.Result)
				if err := store.Save(ctx, e); err != nil {
					return fmt.Errorf("saving %s: %w", in, err)
				}
				added = append(added, e.Mechanism)
			}

			r := c.Renderer
			if ok, err := r.Structured(added); ok {
				return err
			}
			for _, m := range added {
				r.StatusLine(m.Source, "ok", fmt.Sprintf("%s (%d species, %d reactions)", m.Name, m.Species, m.Reactions))
			}
			return nil
		},
	}
	return cmd
}

func newCatalogListCommand() *cobra.Command {
	var (
		mechanism string
		reactions bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued species or reactions",
		Long: `List the species of every catalogued mechanism, or of one with
--mechanism. With --reactions, list the reactions of one mechanism and their
rate units instead.`,
		Example: `  ctmlc catalog list
  ctmlc catalog list --mechanism gri30 --reactions -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if reactions && mechanism == "" {
				return errors.New("--reactions requires --mechanism")
			}
			c := NewCommandContext(cmd)
			store, err := openCatalog(cmd, c)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			r := c.Renderer
			if reactions {
				rows, err := store.Reactions(ctx, mechanism)
				if err != nil {
					return err
				}
				if rows == nil {
					rows = []catalog.Reaction{}
				}
				if ok, err := r.Structured(rows); ok {
					return err
				}
				table := make([][]string, 0, len(rows))
				for _, x := range rows {
					table = append(table, []string{x.Mechanism, x.ID, x.Equation, x.Kind,
						fmt.Sprintf("%g", x.UnitFactor), x.RateUnits, x.GoverningPhase})
				}
				r.Table([]string{"Mechanism", "ID", "Equation", "Kind", "Factor", "Units", "Phase"}, table)
				return nil
			}

			rows, err := store.Species(ctx, mechanism)
			if err != nil {
				return err
			}
			if rows == nil {
				rows = []catalog.Species{}
			}
			if ok, err := r.Structured(rows); ok {
				return err
			}
			if len(rows) == 0 {
				r.Muted("No species catalogued.")
				return nil
			}
			table := make([][]string, 0, len(rows))
			for _, s := range rows {
				charge := ""
				if s.Charge != nil {
					charge = ctml.Repr(*s.Charge)
				}
				table = append(table, []string{s.Mechanism, s.Name, s.Composition, s.Phase, charge})
			}
			r.Table([]string{"Mechanism", "Species", "Composition", "Phase", "Charge"}, table)
			return nil
		},
	}
	cmd.Flags().StringVar(&mechanism, "mechanism", "", "Only list this mechanism")
	cmd.Flags().BoolVar(&reactions, "reactions", false, "List reactions instead of species")
	return cmd
}
