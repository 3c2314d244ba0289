package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/catalog"
	"github.com/leapstack-labs/ctmlc/internal/ctml"
	"github.com/spf13/cobra"
)

type phaseInfo struct {
	Name      string `json:"name" yaml:"name"`
	Kind      string `json:"kind" yaml:"kind"`
	Elements  string `json:"elements" yaml:"elements"`
	Species   int    `json:"species" yaml:"species"`
	Dimension string `json:"concentration_dimension" yaml:"concentration_dimension"`
}

type reactionInfo struct {
	ID             string  `json:"id" yaml:"id"`
	Equation       string  `json:"equation" yaml:"equation"`
	Kind           string  `json:"kind" yaml:"kind"`
	MDim           float64 `json:"mdim" yaml:"mdim"`
	LDim           float64 `json:"ldim" yaml:"ldim"`
	UnitFactor     float64 `json:"unit_factor" yaml:"unit_factor"`
	RateUnits      string  `json:"rate_units,omitempty" yaml:"rate_units,omitempty"`
	GoverningPhase string  `json:"governing_phase,omitempty" yaml:"governing_phase,omitempty"`
}

type inspectReport struct {
	Input     string            `json:"input" yaml:"input"`
	Dataset   string            `json:"dataset" yaml:"dataset"`
	Phases    []phaseInfo       `json:"phases" yaml:"phases"`
	Species   []catalog.Species `json:"species" yaml:"species"`
	Reactions []reactionInfo    `json:"reactions" yaml:"reactions"`
}

func newInspectReport(comp *Compiled) *inspectReport {
	rep := &inspectReport{Input: comp.Path, Dataset: comp.CC.Dataset}
	for _, p := range comp.CC.Phases() {
		m, l := p.ConcentrationDimension()
		rep.Phases = append(rep.Phases, phaseInfo{
			Name:      p.Name,
			Kind:      p.Kind.String(),
			Elements:  p.Elements,
			Species:   len(p.MemberOrder),
			Dimension: fmt.Sprintf("(%d, %d)", m, l),
		})
	}
	rep.Species = catalog.NewEntry(comp.Path, comp.CC, comp.Result).Species
	for _, r := range comp.Result.Reactions {
		rep.Reactions = append(rep.Reactions, reactionInfo{
			ID:             r.ID,
			Equation:       r.Equation,
			Kind:           r.Kind.String(),
			MDim:           r.MDim,
			LDim:           r.LDim,
			UnitFactor:     r.UnitFactor,
			RateUnits:      r.RateUnits,
			GoverningPhase: r.GoverningPhase,
		})
	}
	return rep
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	var sections []string
	cmd := &cobra.Command{
		Use:   "inspect <input.cti>",
		Short: "Show phases, species and reactions of an input",
		Long: `Compile an input and print its phases, species and reactions. Reactions
are listed with their derived dimensions, unit factor and governing phase.`,
		Example: `  ctmlc inspect h2o2.cti
  ctmlc inspect gri30.cti --section reactions -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			comp, err := c.Compile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderInspect(c, newInspectReport(comp), sections)
		},
	}
	cmd.Flags().StringSliceVar(&sections, "section", nil, "Sections to show: phases, species, reactions (default all)")
	_ = cmd.RegisterFlagCompletionFunc("section", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"phases", "species", "reactions"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func renderInspect(c *CommandContext, rep *inspectReport, sections []string) error {
	show := func(name string) bool {
		if len(sections) == 0 {
			return true
		}
		for _, s := range sections {
			if strings.EqualFold(s, name) {
				return true
			}
		}
		return false
	}
	for _, s := range sections {
		switch strings.ToLower(s) {
		case "phases", "species", "reactions":
		default:
			return fmt.Errorf("unknown section %q (want phases, species or reactions)", s)
		}
	}

	r := c.Renderer
	if r.EffectiveMode().Structured() {
		if !show("phases") {
			rep.Phases = nil
		}
		if !show("species") {
			rep.Species = nil
		}
		if !show("reactions") {
			rep.Reactions = nil
		}
		_, err := r.Structured(rep)
		return err
	}

	r.Header(1, rep.Dataset)
	if show("phases") {
		r.Header(2, "Phases")
		rows := make([][]string, 0, len(rep.Phases))
		for _, p := range rep.Phases {
			rows = append(rows, []string{p.Name, p.Kind, p.Elements, ctml.Int(p.Species), p.Dimension})
		}
		r.Table([]string{"Name", "Kind", "Elements", "Species", "Dimension"}, rows)
	}
	if show("species") {
		r.Header(2, "Species")
		rows := make([][]string, 0, len(rep.Species))
		for _, s := range rep.Species {
			charge := ""
			if s.Charge != nil {
				charge = ctml.Repr(*s.Charge)
			}
			rows = append(rows, []string{s.Name, s.Composition, s.Phase, charge})
		}
		r.Table([]string{"Name", "Composition", "Phase", "Charge"}, rows)
	}
	if show("reactions") {
		r.Header(2, "Reactions")
		rows := make([][]string, 0, len(rep.Reactions))
		for _, x := range rep.Reactions {
			rows = append(rows, []string{
				x.ID, x.Equation, x.Kind,
				ctml.Repr(x.MDim), ctml.Repr(x.LDim),
				fmt.Sprintf("%g", x.UnitFactor), x.RateUnits, x.GoverningPhase,
			})
		}
		r.Table([]string{"ID", "Equation", "Kind", "mdim", "ldim", "Factor", "Units", "Phase"}, rows)
	}
	return nil
}
