package mechanism

import (
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/registry"
	"github.com/leapstack-labs/ctmlc/internal/stoich"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

// ReactionDecl is a reaction as declared by the front-end.
type ReactionDecl struct {
	Kind     core.ReactionKind
	Equation string
	ID       string
	Order    string
	Options  []string

	// Rates holds one expression for most kinds, the high- then low-pressure
	// limits for falloff reactions and one per pressure for PLog reactions.
	Rates     []*core.Arrhenius
	Pressures []core.Quantity

	Efficiencies string
	Falloff      *core.Falloff
	Beta         float64
	Cheb         *core.ChebyshevTable
}

// Default Chebyshev pressure range.
var (
	DefaultChebyshevPMin = core.QU(0.001, "atm")
	DefaultChebyshevPMax = core.QU(100.0, "atm")
)

// Third-body tokens left on each side by the equation parser.
const (
	openThirdBody = "(+"
	anyThirdBody  = "M"
)

// NewReaction parses, cleans up and validates a reaction, then registers it
// to assign its number.
func NewReaction(cc *registry.CompilationContext, d ReactionDecl) (*core.Reaction, error) {
	eq, err := stoich.ParseEquation(d.Equation)
	if err != nil {
		return nil, err
	}

	r := &core.Reaction{
		ID:           d.ID,
		Equation:     d.Equation,
		Kind:         d.Kind,
		Reactants:    eq.Reactants,
		Products:     eq.Products,
		Reversible:   eq.Reversible,
		OrderSpec:    d.Order,
		Rates:        d.Rates,
		Pressures:    d.Pressures,
		Efficiencies: core.Efficiencies{Spec: d.Efficiencies, Default: 1.0},
		Falloff:      d.Falloff,
		Cheb:         d.Cheb,
		Options:      d.Options,
		Beta:         d.Beta,
	}

	switch d.Kind {
	case core.ThreeBody:
		stripThirdBody(r)
	case core.FalloffReaction:
		if err := stripFalloffThirdBody(r); err != nil {
			return nil, err
		}
	case core.Chebyshev:
		stripChebyshevThirdBody(r)
	}

	if err := checkRates(r); err != nil {
		return nil, err
	}

	if d.Order != "" {
		orders, err := stoich.ParseOrders(d.Order, r.Reactants)
		if err != nil {
			return nil, err
		}
		r.Orders = orders
	}

	if r.Kind == core.FalloffReaction && r.Falloff == nil {
		r.Falloff = &core.Falloff{Kind: core.Lindemann}
	}
	if r.Falloff != nil && !r.Falloff.Kind.ValidArity(len(r.Falloff.Params)) {
		return nil, core.Structuralf(d.Equation, "%s falloff function takes a different number of parameters than %d", r.Falloff.Kind, len(r.Falloff.Params))
	}

	cc.RegisterReaction(r)
	return r, nil
}

// NewFalloff validates a falloff function's parameter count.
func NewFalloff(kind core.FalloffKind, params []float64) (*core.Falloff, error) {
	if !kind.ValidArity(len(params)) {
		return nil, core.Structuralf(string(kind), "invalid number of falloff parameters: %d", len(params))
	}
	return &core.Falloff{Kind: kind, Params: append([]float64(nil), params...)}, nil
}

// stripThirdBody removes the "M" third-body token from both sides.
func stripThirdBody(r *core.Reaction) {
	for _, side := range []*core.StoichMap{r.Reactants, r.Products} {
		side.Delete(anyThirdBody)
		side.Delete(strings.ToLower(anyThirdBody))
	}
}

// stripFalloffThirdBody removes the "(+M)" or "(+Name)" tokens. A named bath
// gas becomes the only entry of the efficiency table, with default zero.
func stripFalloffThirdBody(r *core.Reaction) error {
	deleteBoth := func(tok string) {
		r.Reactants.Delete(tok)
		r.Products.Delete(tok)
	}

	// "(+ M)" splits into "(+" and "M)"; "(+M)" stays a single token.
	spaced := r.Reactants.Has(openThirdBody)
	deleteBoth(openThirdBody)

	for _, m := range []string{"M)", "m)", "(+M)", "(+m)"} {
		if r.Reactants.Has(m) {
			deleteBoth(m)
			return nil
		}
	}

	for _, tok := range r.Reactants.Names() {
		var name string
		switch {
		case spaced && strings.HasSuffix(tok, ")") && !strings.Contains(tok, "("):
			name = strings.TrimSuffix(tok, ")")
		case strings.HasPrefix(tok, openThirdBody) && strings.HasSuffix(tok, ")"):
			name = strings.TrimSuffix(strings.TrimPrefix(tok, openThirdBody), ")")
		default:
			continue
		}
		if r.Efficiencies.Spec != "" {
			return core.Validationf(r.Equation, "(+ %s) and %q cannot both be specified", name, r.Efficiencies.Spec)
		}
		r.Efficiencies = core.Efficiencies{Spec: name + ":1.0", Default: 0.0}
		deleteBoth(tok)
		return nil
	}

	return core.Structuralf(r.Equation, "falloff reaction must contain (+M) or (+species)")
}

func stripChebyshevThirdBody(r *core.Reaction) {
	for _, tok := range []string{openThirdBody, "M)", "m)", "(+M)", "(+m)"} {
		r.Reactants.Delete(tok)
		r.Products.Delete(tok)
	}
}

// checkRates verifies the number of rate expressions for the kind.
func checkRates(r *core.Reaction) error {
	n := len(r.Rates)
	for _, k := range r.Rates {
		if k == nil {
			return core.Structuralf(r.Equation, "missing rate expression")
		}
	}
	switch r.Kind {
	case core.FalloffReaction:
		if n != 2 {
			return core.Structuralf(r.Equation, "falloff reaction requires low- and high-pressure rate expressions, got %d", n)
		}
	case core.PLog:
		if n == 0 {
			return core.Structuralf(r.Equation, "pressure-dependent Arrhenius reaction requires at least one pressure")
		}
		if len(r.Pressures) != n {
			return core.Structuralf(r.Equation, "got %d pressures for %d rate expressions", len(r.Pressures), n)
		}
	case core.Chebyshev:
		if n != 0 {
			return core.Structuralf(r.Equation, "Chebyshev reaction takes no Arrhenius rate expressions")
		}
		if err := checkChebyshev(r); err != nil {
			return err
		}
	default:
		if n != 1 {
			return core.Structuralf(r.Equation, "%s reaction requires exactly one rate expression, got %d", r.Kind, n)
		}
	}
	return nil
}

func checkChebyshev(r *core.Reaction) error {
	if r.Cheb == nil || len(r.Cheb.Coeffs) == 0 || len(r.Cheb.Coeffs[0]) == 0 {
		return core.Structuralf(r.Equation, "Chebyshev reaction requires a non-empty coefficient matrix")
	}
	if r.Cheb.PMin == (core.Quantity{}) {
		r.Cheb.PMin = DefaultChebyshevPMin
	}
	if r.Cheb.PMax == (core.Quantity{}) {
		r.Cheb.PMax = DefaultChebyshevPMax
	}
	width := len(r.Cheb.Coeffs[0])
	for _, row := range r.Cheb.Coeffs {
		if len(row) != width {
			return core.Structuralf(r.Equation, "Chebyshev coefficient rows must all have %d entries", width)
		}
	}
	return nil
}
