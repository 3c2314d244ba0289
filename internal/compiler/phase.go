package compiler

import (
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/ctml"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

// buildPhase emits the structural record of a phase.
func (c *compiler) buildPhase(parent *ctml.Node, p *core.Phase) *ctml.Node {
	parent.AddComment("    phase " + p.Name + "     ")
	ph := parent.AddChild("phase", "").
		Set("id", p.Name).
		Set("dim", ctml.Int(p.Dim()))

	ph.AddChild("elementArray", p.Elements).Set("datasrc", "elements.xml")
	for _, src := range p.SpeciesSources {
		sa := ph.AddChild("speciesArray", src.Names).Set("datasrc", src.DataSource+"#species_data")
		if p.HasOption(core.OptSkipUndeclaredElements) {
			sa.AddChild("skip", "").Set("element", "undeclared")
		}
	}

	if p.HasReactions() {
		c.buildReactionArrays(ph, p)
	}
	if p.InitialState != nil {
		c.buildState(ph, p.InitialState)
	}

	c.buildPhaseModel(ph, p)
	return ph
}

func (c *compiler) buildReactionArrays(ph *ctml.Node, p *core.Phase) {
	for _, src := range p.ReactionSources {
		ra := ph.AddChild("reactionArray", "").Set("datasrc", src.DataSource+"#reaction_data")

		var skip *ctml.Node
		if p.HasOption(core.OptSkipUndeclaredSpecies) {
			skip = ra.AddChild("skip", "").Set("species", "undeclared")
		}
		if p.HasOption(core.OptSkipUndeclaredThirdBodies) {
			if skip == nil {
				skip = ra.AddChild("skip", "")
			}
			skip.Set("third_bodies", "undeclared")
		}

		toks := strings.Fields(src.Spec)
		if len(toks) == 0 || toks[0] == core.AllToken {
			continue
		}
		hi := toks[0]
		if len(toks) > 2 && (toks[1] == "to" || toks[1] == "-") {
			hi = toks[2]
		}
		ra.AddChild("include", "").Set("min", toks[0]).Set("max", hi)
	}
}

func (c *compiler) buildState(ph *ctml.Node, s *core.State) {
	st := ph.AddChild("state", "")
	if s.Temperature != nil {
		addFloat(st, "temperature", *s.Temperature, "", "K")
	}
	if s.Pressure != nil {
		addFloat(st, "pressure", *s.Pressure, "", c.u.Pressure)
	}
	if s.Density != nil {
		addFloat(st, "density", *s.Density, "", c.u.MassDensity())
	}
	if s.MoleFractions != "" {
		st.AddChild("moleFractions", s.MoleFractions)
	}
	if s.MassFractions != "" {
		st.AddChild("massFractions", s.MassFractions)
	}
	if s.Coverages != "" {
		st.AddChild("coverages", s.Coverages)
	}
	if s.SoluteMolalities != "" {
		st.AddChild("soluteMolalities", s.SoluteMolalities)
	}
}

// buildPhaseModel emits the thermo, kinetics and transport model selectors
// of the phase kind.
func (c *compiler) buildPhaseModel(ph *ctml.Node, p *core.Phase) {
	thermo := func(model string) *ctml.Node {
		return ph.AddChild("thermo", "").Set("model", model)
	}
	transport := func() {
		if p.Transport != "" {
			ph.AddChild("transport", "").Set("model", p.Transport)
		}
	}
	noKinetics := func() {
		ph.AddChild("kinetics", "").Set("model", "none")
	}

	switch p.Kind {
	case core.IdealGas:
		thermo("IdealGas")
		ph.AddChild("kinetics", "").Set("model", p.Kinetics)
		transport()

	case core.StoichiometricSolid, core.StoichiometricLiquid:
		addFloat(thermo("StoichSubstance"), "density", p.Density, "", c.u.MassDensity())
		transport()
		noKinetics()

	case core.Metal:
		addFloat(thermo("Metal"), "density", p.Density, "", c.u.MassDensity())
		transport()
		noKinetics()

	case core.Semiconductor:
		e := thermo("Semiconductor")
		addFloat(e, "density", p.Density, "", c.u.MassDensity())
		addFloat(e, "effectiveMass_e", p.EffectiveMassE, "", c.u.Mass)
		addFloat(e, "effectiveMass_h", p.EffectiveMassH, "", c.u.Mass)
		addFloat(e, "bandgap", p.Bandgap, "", "eV")
		transport()
		noKinetics()

	case core.IncompressibleSolid:
		addFloat(thermo("Incompressible"), "density", p.Density, "", c.u.MassDensity())
		transport()
		noKinetics()

	case core.Lattice:
		e := thermo("Lattice")
		addFloat(e, "site_density", p.SiteDensity, "", c.u.SiteDensity(3))
		if p.Vacancy != "" {
			e.AddChild("vacancy_species", p.Vacancy)
		}
		transport()
		noKinetics()

	case core.LatticeSolid:
		e := thermo("LatticeSolid")
		if len(p.Lattices) > 0 {
			la := e.AddChild("LatticeArray", "")
			for _, lat := range p.Lattices {
				c.buildPhase(la, lat)
			}
		}
		transport()
		noKinetics()

	case core.LiquidVapor:
		thermo("PureFluid").Set("fluid_type", ctml.Int(p.SubstanceFlag))
		noKinetics()

	case core.RedlichKwong:
		e := thermo("PureFluid").Set("fluid_type", ctml.Int(p.SubstanceFlag))
		addFloat(e, "Tc", p.TCrit, "", "K")
		addFloat(e, "Pc", p.PCrit, "", "Pa")
		noKinetics()

	case core.IdealInterface:
		addFloat(thermo("Surface"), "site_density", p.SiteDensity, "", c.u.SiteDensity(2))
		ph.AddChild("kinetics", "").Set("model", p.Kinetics)
		transport()
		ph.AddChild("phaseArray", p.Adjacent)

	case core.Edge:
		addFloat(thermo("Edge"), "site_density", p.SiteDensity, "", c.u.SiteDensity(1))
		ph.AddChild("kinetics", "").Set("model", p.Kinetics)
		transport()
		ph.AddChild("phaseArray", p.Adjacent)
	}
}
