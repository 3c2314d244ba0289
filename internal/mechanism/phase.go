package mechanism

import (
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/registry"
	"github.com/leapstack-labs/ctmlc/internal/units"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

// PhaseDecl is a phase as declared by the front-end. Pointer fields are
// optional; nil selects the kind's default.
type PhaseDecl struct {
	Name     string
	Kind     core.PhaseKind
	Elements string

	// Species holds species-list strings, each optionally prefixed by
	// "source:" for species imported from another data file.
	Species []string

	// Reactions holds reaction-source strings. Nil or "none" declares no
	// reactions.
	Reactions []string

	InitialState *core.State
	Options      []string

	Kinetics  string
	Transport string

	Density        *core.Quantity
	SiteDensity    *core.Quantity
	Phases         string
	Vacancy        string
	Lattices       []*core.Phase
	SubstanceFlag  *int
	Bandgap        *core.Quantity
	EffectiveMassE *core.Quantity
	EffectiveMassH *core.Quantity
	TCrit          *core.Quantity
	PCrit          *core.Quantity
}

// Default model selectors.
const (
	defaultTransport        = "None"
	defaultGasKinetics      = "GasKinetics"
	defaultInterfaceKinetic = "Interface"
	defaultEdgeKinetics     = "Edge"

	// RedlichKwongFluidType is the fluid_type of every redlich_kwong phase.
	RedlichKwongFluidType = 7
)

// kindsWithReactions are the kinds whose reaction sources are honored.
var kindsWithReactions = map[core.PhaseKind]bool{
	core.IdealGas:       true,
	core.IdealInterface: true,
	core.Edge:           true,
}

// NewPhase validates and registers a phase.
func NewPhase(cc *registry.CompilationContext, d PhaseDecl) (*core.Phase, error) {
	if d.Kind == core.LatticeSolid {
		if len(d.Lattices) == 0 {
			return nil, core.Structuralf(d.Name, "one or more sublattices must be specified")
		}
		d.Elements, d.Species = latticeMembers(d.Lattices)
	}
	if d.Kind == core.Lattice {
		if d.Name == "" {
			return nil, core.Structuralf("", "sublattice name must be specified")
		}
		if len(d.Species) == 0 || strings.TrimSpace(strings.Join(d.Species, "")) == "" {
			return nil, core.Structuralf(d.Name, "sublattice species must be specified")
		}
		if d.SiteDensity == nil {
			return nil, core.Structuralf(d.Name, "sublattice %s site density must be specified", d.Name)
		}
	}

	p := &core.Phase{
		Name:         d.Name,
		Kind:         d.Kind,
		Elements:     d.Elements,
		Members:      make(map[string]int),
		InitialState: d.InitialState,
		Options:      d.Options,
		Kinetics:     d.Kinetics,
		Transport:    d.Transport,
		Adjacent:     d.Phases,
		Vacancy:      d.Vacancy,
		Lattices:     d.Lattices,
	}

	if err := resolveSpecies(p, d.Species); err != nil {
		return nil, err
	}
	if len(p.MemberOrder) == 0 {
		return nil, core.Validationf(d.Name, "no species declared for phase %s", d.Name)
	}
	if d.Kind.IsPure() && len(p.MemberOrder) > 1 {
		return nil, core.Validationf(d.Name,
			"stoichiometric phases must declare exactly one species, but phase %s declares %d", d.Name, len(p.MemberOrder))
	}

	if kindsWithReactions[d.Kind] {
		p.ReactionSources = resolveReactions(d.Reactions)
	}

	if err := applyKindDefaults(p, d); err != nil {
		return nil, err
	}

	if err := cc.RegisterPhase(p); err != nil {
		return nil, err
	}
	return p, nil
}

// resolveSpecies splits species strings into sources and members. Stray
// commas around names are stripped. The "all" token may repeat.
func resolveSpecies(p *core.Phase, lists []string) error {
	dim := p.Dim()
	for _, list := range lists {
		src := core.SpeciesSource{Names: list}
		if i := strings.Index(list, ":"); i > 0 {
			src.DataSource = strings.TrimSpace(list[:i]) + ".xml"
			src.Names = list[i+1:]
		}
		p.SpeciesSources = append(p.SpeciesSources, src)

		for _, tok := range strings.Fields(src.Names) {
			name := strings.TrimSuffix(strings.TrimPrefix(tok, ","), ",")
			if name == "" {
				continue
			}
			if _, dup := p.Members[name]; dup && name != core.AllToken {
				return core.Validationf(p.Name, "multiply-declared species %s in phase %s", name, p.Name)
			}
			if _, seen := p.Members[name]; !seen {
				p.MemberOrder = append(p.MemberOrder, name)
			}
			p.Members[name] = dim
		}
	}
	return nil
}

// resolveReactions returns nil when no reactions are declared.
func resolveReactions(lists []string) []core.ReactionSource {
	var out []core.ReactionSource
	for _, r := range lists {
		if strings.TrimSpace(r) == "none" {
			continue
		}
		src := core.ReactionSource{Spec: r}
		if i := strings.Index(r, ":"); i > 0 {
			src.DataSource = strings.TrimSpace(r[:i]) + ".xml"
			src.Spec = r[i+1:]
		}
		if len(strings.Fields(src.Spec)) == 0 {
			continue
		}
		out = append(out, src)
	}
	return out
}

// latticeMembers derives element and species lists from sublattices in
// first-seen order.
func latticeMembers(lattices []*core.Phase) (string, []string) {
	var elems, species []string
	seenE := map[string]bool{}
	seenS := map[string]bool{}
	for _, lat := range lattices {
		for _, e := range strings.Fields(lat.Elements) {
			if !seenE[e] {
				seenE[e] = true
				elems = append(elems, e)
			}
		}
		for _, s := range lat.MemberOrder {
			if !seenS[s] {
				seenS[s] = true
				species = append(species, s)
			}
		}
	}
	return strings.Join(elems, " "), []string{strings.Join(species, " ")}
}

func applyKindDefaults(p *core.Phase, d PhaseDecl) error {
	if p.Transport == "" {
		p.Transport = defaultTransport
	}
	quantity := func(q *core.Quantity, def core.Quantity) core.Quantity {
		if q == nil {
			return def
		}
		return *q
	}
	unspecified := core.Q(-1.0)

	switch d.Kind {
	case core.IdealGas:
		if p.Kinetics == "" {
			p.Kinetics = defaultGasKinetics
		}
	case core.StoichiometricSolid, core.StoichiometricLiquid, core.IncompressibleSolid:
		if d.Density == nil || d.Density.Value < 0 {
			return core.Structuralf(d.Name, "density must be specified")
		}
		p.Density = *d.Density
	case core.Metal:
		p.Density = quantity(d.Density, unspecified)
	case core.Semiconductor:
		p.Density = quantity(d.Density, unspecified)
		p.Bandgap = quantity(d.Bandgap, core.Q(1.0*units.ElectronVolt))
		p.EffectiveMassE = quantity(d.EffectiveMassE, core.Q(units.ElectronMass))
		p.EffectiveMassH = quantity(d.EffectiveMassH, core.Q(units.ElectronMass))
	case core.Lattice:
		p.SiteDensity = *d.SiteDensity
	case core.LiquidVapor:
		if d.SubstanceFlag != nil {
			p.SubstanceFlag = *d.SubstanceFlag
		}
	case core.RedlichKwong:
		p.SubstanceFlag = RedlichKwongFluidType
		p.TCrit = quantity(d.TCrit, core.Q(1.0))
		p.PCrit = quantity(d.PCrit, core.Q(1.0))
	case core.IdealInterface:
		p.SiteDensity = quantity(d.SiteDensity, core.Q(0))
		if p.Kinetics == "" {
			p.Kinetics = defaultInterfaceKinetic
		}
	case core.Edge:
		p.SiteDensity = quantity(d.SiteDensity, core.Q(0))
		if p.Kinetics == "" {
			p.Kinetics = defaultEdgeKinetics
		}
	}
	return nil
}
