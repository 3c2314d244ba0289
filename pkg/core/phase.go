package core

// PhaseKind selects one of the supported phase models.
type PhaseKind int

// Phase kinds.
const (
	IdealGas PhaseKind = iota
	StoichiometricSolid
	StoichiometricLiquid
	Metal
	Semiconductor
	IncompressibleSolid
	Lattice
	LatticeSolid
	LiquidVapor
	RedlichKwong
	IdealInterface
	Edge
)

var phaseKindNames = map[PhaseKind]string{
	IdealGas:             "ideal_gas",
	StoichiometricSolid:  "stoichiometric_solid",
	StoichiometricLiquid: "stoichiometric_liquid",
	Metal:                "metal",
	Semiconductor:        "semiconductor",
	IncompressibleSolid:  "incompressible_solid",
	Lattice:              "lattice",
	LatticeSolid:         "lattice_solid",
	LiquidVapor:          "liquid_vapor",
	RedlichKwong:         "redlich_kwong",
	IdealInterface:       "ideal_interface",
	Edge:                 "edge",
}

// String returns the input-language name of the kind.
func (k PhaseKind) String() string {
	if s, ok := phaseKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Dim returns the spatial dimension: 3 for bulk, 2 for surfaces, 1 for edges.
func (k PhaseKind) Dim() int {
	switch k {
	case IdealInterface:
		return 2
	case Edge:
		return 1
	default:
		return 3
	}
}

// ConcentrationDimension returns the (molar, length) powers with which a
// species concentration in this phase enters a rate-of-progress expression.
// Unit-activity phases contribute no concentration factor.
func (k PhaseKind) ConcentrationDimension() (molar, length int) {
	switch k {
	case StoichiometricSolid, StoichiometricLiquid, Metal, LatticeSolid, LiquidVapor, RedlichKwong:
		return 0, 0
	default:
		return 1, -k.Dim()
	}
}

// IsPure reports whether the kind must declare exactly one species.
func (k PhaseKind) IsPure() bool {
	switch k {
	case StoichiometricSolid, StoichiometricLiquid, LiquidVapor, RedlichKwong:
		return true
	default:
		return false
	}
}

// IsIdealGas reports whether species of this kind count as gas-phase
// reactants for sticking-probability rates.
func (k PhaseKind) IsIdealGas() bool {
	return k == IdealGas
}

// Phase processing options.
const (
	OptSkipUndeclaredSpecies     = "skip_undeclared_species"
	OptSkipUndeclaredThirdBodies = "skip_undeclared_third_bodies"
	OptSkipUndeclaredElements    = "skip_undeclared_elements"
	OptDebug                     = "debug"
)

// AllToken is the wildcard species or reaction token.
const AllToken = "all"

// SpeciesSource is one species-list entry of a phase. DataSource is empty for
// locally declared species and "<file>.xml" for imported ones.
type SpeciesSource struct {
	DataSource string
	Names      string
}

// ReactionSource is one reaction-list entry of a phase.
type ReactionSource struct {
	DataSource string
	Spec       string // "all", "R1", "R1 to R9"
}

// State is an initial thermodynamic state attached to a phase.
type State struct {
	Temperature      *Quantity
	Pressure         *Quantity
	Density          *Quantity
	MoleFractions    string
	MassFractions    string
	Coverages        string
	SoluteMolalities string
}

// Phase is a declared phase of matter or interface.
type Phase struct {
	Name     string
	Kind     PhaseKind
	Elements string

	SpeciesSources []SpeciesSource

	// Members maps species name to phase dimension. MemberOrder keeps
	// declaration order for deterministic iteration.
	Members     map[string]int
	MemberOrder []string

	// ReactionSources is nil when the phase declares reactions "none".
	ReactionSources []ReactionSource

	InitialState *State
	Options      []string

	Kinetics  string
	Transport string

	Density       Quantity
	SiteDensity   Quantity
	Adjacent      string // phases participating at an interface or edge
	Vacancy       string
	Lattices      []*Phase
	SubstanceFlag int

	Bandgap        Quantity
	EffectiveMassE Quantity
	EffectiveMassH Quantity

	TCrit Quantity
	PCrit Quantity
}

// Dim returns the spatial dimension of the phase.
func (p *Phase) Dim() int {
	return p.Kind.Dim()
}

// HasSpecies reports whether the phase declares a species with this name.
func (p *Phase) HasSpecies(name string) bool {
	_, ok := p.Members[name]
	return ok
}

// ConcentrationDimension returns the kind's (molar, length) powers.
func (p *Phase) ConcentrationDimension() (molar, length int) {
	return p.Kind.ConcentrationDimension()
}

// HasOption reports whether a processing option is set.
func (p *Phase) HasOption(opt string) bool {
	for _, o := range p.Options {
		if o == opt {
			return true
		}
	}
	return false
}

// HasReactions reports whether the phase references any reactions.
func (p *Phase) HasReactions() bool {
	return p.ReactionSources != nil
}
