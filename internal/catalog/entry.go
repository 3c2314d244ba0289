package catalog

import (
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/compiler"
	"github.com/leapstack-labs/ctmlc/internal/ctml"
	"github.com/leapstack-labs/ctmlc/internal/registry"
)

// NewEntry builds the catalog record of a compiled input.
func NewEntry(source string, cc *registry.CompilationContext, res *compiler.Result) *Entry {
	ne, ns, np, nr := cc.Counts()
	e := &Entry{
		Mechanism: Mechanism{
			Name:      cc.Dataset,
			Source:    source,
			Elements:  ne,
			Species:   ns,
			Phases:    np,
			Reactions: nr,
		},
	}

	for _, s := range cc.AllSpecies() {
		parts := make([]string, len(s.Atoms))
		for i, a := range s.Atoms {
			parts[i] = a.Element + ":" + ctml.Count(a.Count)
		}
		sp := Species{
			Mechanism:   cc.Dataset,
			Name:        s.Name,
			Composition: strings.Join(parts, " "),
		}
		if p, ok := cc.PhaseOf(s.Name); ok {
			sp.Phase = p.Name
		}
		if s.HasCharge {
			q := s.Charge
			sp.Charge = &q
		}
		e.Species = append(e.Species, sp)
	}

	for _, r := range res.Reactions {
		e.Reactions = append(e.Reactions, Reaction{
			Mechanism:      cc.Dataset,
			ID:             r.ID,
			Equation:       r.Equation,
			Kind:           r.Kind.String(),
			UnitFactor:     r.UnitFactor,
			RateUnits:      r.RateUnits,
			GoverningPhase: r.GoverningPhase,
		})
	}
	return e
}
