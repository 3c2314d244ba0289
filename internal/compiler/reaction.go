package compiler

import (
	"fmt"
	"math"
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/ctml"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

// ReactionID returns the explicit id, or the 1-based number left-padded with
// zeros to four digits.
func ReactionID(r *core.Reaction) string {
	if r.ID != "" {
		return r.ID
	}
	return fmt.Sprintf("%04d", r.Number)
}

// Dimensions is the outcome of dimensional analysis for a reaction.
type Dimensions struct {
	MDim float64
	LDim float64

	// Governing is the lowest-dimension phase touched by the reactants,
	// first encountered on ties.
	Governing *core.Phase

	// GasSpecies lists reactants that belong to an ideal gas phase.
	GasSpecies []string
}

// analyze resolves each reactant to its phase and accumulates the molar and
// length dimensions of the rate of progress, weighted by reaction order,
// then applies the kind-specific correction. For falloff reactions the
// result applies to the high-pressure limit; LowPressureShift gives the
// low-pressure limit.
func (c *compiler) analyze(r *core.Reaction) (*Dimensions, error) {
	d := &Dimensions{}
	var perDim [4]int
	var touched []*core.Phase
	minDim := 4

	for _, s := range r.Reactants.Names() {
		ph, ok := c.cc.PhaseOf(s)
		if !ok {
			return nil, core.Dimensionalf(r.Equation, "species %s not found", s)
		}
		nm, nl := ph.ConcentrationDimension()
		if ph.Kind.IsIdealGas() {
			d.GasSpecies = append(d.GasSpecies, s)
		}
		if !containsPhase(touched, ph) {
			touched = append(touched, ph)
			perDim[ph.Dim()]++
			if ph.Dim() < minDim {
				d.Governing = ph
				minDim = ph.Dim()
			}
		}
		order := r.ReactionOrder(s)
		d.MDim += float64(nm) * order
		d.LDim += float64(nl) * order
	}

	switch r.Kind {
	case core.SurfaceReaction:
		d.MDim--
		d.LDim += 2
		if perDim[0] != 0 || perDim[1] != 0 || perDim[2] > 1 {
			return nil, core.Validationf(r.Equation, "a surface reaction may contain at most one surface phase")
		}
	case core.EdgeReaction:
		d.MDim--
		d.LDim++
		if perDim[0] != 0 || perDim[1] > 1 {
			return nil, core.Validationf(r.Equation, "an edge reaction may contain at most one edge phase")
		}
	default:
		d.MDim--
		d.LDim += 3
	}

	if r.Kind == core.ThreeBody {
		d.MDim, d.LDim = LowPressureShift(d.MDim, d.LDim)
	}
	return d, nil
}

// LowPressureShift adds the implicit third-body concentration factor.
func LowPressureShift(mdim, ldim float64) (float64, float64) {
	return mdim + 1, ldim - 3
}

func containsPhase(list []*core.Phase, p *core.Phase) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

func (c *compiler) buildReaction(parent *ctml.Node, r *core.Reaction) (*ReactionSummary, error) {
	id := ReactionID(r)

	dims, err := c.analyze(r)
	if err != nil {
		return nil, err
	}

	parent.AddComment("   reaction " + id + "    ")
	rn := parent.AddChild("reaction", "").Set("id", id)
	if r.Reversible {
		rn.Set("reversible", "yes")
	} else {
		rn.Set("reversible", "no")
	}
	if r.HasOption(core.OptDuplicate) {
		rn.Set("duplicate", "yes")
	}
	if r.HasOption(core.OptNegativeA) {
		rn.Set("negative_A", "yes")
	}

	eq := strings.NewReplacer("<", "[", ">", "]").Replace(r.Equation)
	rn.AddChild("equation", eq)

	if r.OrderSpec != "" {
		for _, s := range r.Reactants.Names() {
			rn.AddChild("order", ctml.Repr(r.ReactionOrder(s))).Set("species", s)
		}
	}

	if t := r.Kind.TypeAttr(); t != "" {
		rn.Set("type", t)
	}

	kf := rn.AddChild("rateCoeff", "")
	if r.Kind == core.EdgeReaction && r.Beta > 0 {
		kf.AddChild("electrochem", "").Set("beta", ctml.Repr(r.Beta))
	}

	factor, err := c.u.Factor(dims.MDim, dims.LDim)
	if err != nil {
		return nil, err
	}
	summary := &ReactionSummary{
		ID:         id,
		Equation:   r.Equation,
		Kind:       r.Kind,
		MDim:       dims.MDim,
		LDim:       dims.LDim,
		UnitFactor: factor,
		RateUnits:  c.u.RateUnits(dims.MDim, dims.LDim),
		GasSpecies: dims.GasSpecies,
	}
	if dims.Governing != nil {
		summary.GoverningPhase = dims.Governing.Name
	}

	mdim, ldim := dims.MDim, dims.LDim
	name := ""
	for i, k := range r.Rates {
		f, err := c.u.Factor(mdim, ldim)
		if err != nil {
			return nil, err
		}
		a, err := c.buildRate(kf, k, f, dims.GasSpecies, name, dims.Governing)
		if err != nil {
			return nil, err
		}
		if r.Kind == core.PLog {
			addFloat(a, "P", r.Pressures[i], "", "")
		}
		if r.Kind == core.FalloffReaction {
			mdim, ldim = LowPressureShift(mdim, ldim)
			name = "k0"
		}
	}

	switch r.Kind {
	case core.ThreeBody:
		if r.Efficiencies.Spec != "" {
			kf.AddChild("efficiencies", r.Efficiencies.Spec).Set("default", ctml.Repr(r.Efficiencies.Default))
		}
	case core.FalloffReaction:
		if r.Efficiencies.Spec != "" {
			kf.AddChild("efficiencies", r.Efficiencies.Spec).Set("default", ctml.Repr(r.Efficiencies.Default))
		}
		if r.Falloff != nil {
			buildFalloff(kf, r.Falloff)
		}
	case core.Chebyshev:
		buildChebyshev(kf, r.Cheb, factor)
	}

	rn.AddChild("reactants", r.Reactants.String(ctml.Repr))
	rn.AddChild("products", r.Products.String(ctml.Repr))
	return summary, nil
}

// buildChebyshev emits the fit. log10(factor) is added to the leading
// coefficient of a copy, so the declared table is never modified.
func buildChebyshev(kf *ctml.Node, t *core.ChebyshevTable, factor float64) {
	addFloat(kf, "Tmin", core.Q(t.TMin), "", "")
	addFloat(kf, "Tmax", core.Q(t.TMax), "", "")
	addFloat(kf, "Pmin", t.PMin, "", "")
	addFloat(kf, "Pmax", t.PMax, "", "")

	coeffs := make([][]float64, len(t.Coeffs))
	for i, row := range t.Coeffs {
		coeffs[i] = append([]float64(nil), row...)
	}
	coeffs[0][0] += math.Log10(factor)

	lines := make([]string, len(coeffs))
	for i, row := range coeffs {
		lines[i] = ctml.JoinFloats(ctml.FmtChebyshev, row)
	}
	kf.AddChild("floatArray", strings.Join(lines, ",\n")).
		Set("name", "coeffs").
		Set("degreeT", ctml.Int(len(coeffs))).
		Set("degreeP", ctml.Int(len(coeffs[0])))
}
