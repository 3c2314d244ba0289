package mechanism

import (
	"github.com/leapstack-labs/ctmlc/internal/registry"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

// NewElement declares an element. A non-positive mass selects
// core.DefaultAtomicMass.
func NewElement(cc *registry.CompilationContext, symbol string, mass float64, number int) (*core.Element, error) {
	if symbol == "" {
		return nil, core.Structuralf("", "element symbol must be specified")
	}
	if mass <= 0 {
		mass = core.DefaultAtomicMass
	}
	e := &core.Element{Symbol: symbol, AtomicMass: mass, AtomicNumber: number}
	if err := cc.RegisterElement(e); err != nil {
		return nil, err
	}
	return e, nil
}

// SpeciesDecl is a species as declared by the front-end.
type SpeciesDecl struct {
	Name      string
	Atoms     core.Composition
	Note      string
	Thermo    []core.ThermoSegment
	Transport []*core.GasTransport
	Charge    *float64
	Size      *float64
}

// NewSpecies validates and registers a species. Species without thermo data
// get the default constant-cp parameterization. When the composition contains
// electrons the charge is inferred from their count and must agree with any
// declared charge.
func NewSpecies(cc *registry.CompilationContext, d SpeciesDecl) (*core.Species, error) {
	if d.Name == "" {
		return nil, core.Structuralf("", "species name must be specified")
	}

	s := &core.Species{
		Name:      d.Name,
		Atoms:     d.Atoms,
		Note:      d.Note,
		Thermo:    d.Thermo,
		Transport: d.Transport,
		Size:      1.0,
	}
	if d.Size != nil {
		s.Size = *d.Size
	}
	if len(s.Thermo) == 0 {
		s.Thermo = []core.ThermoSegment{core.DefaultConstCp()}
	}
	for _, seg := range s.Thermo {
		if err := validateSegment(d.Name, seg); err != nil {
			return nil, err
		}
	}

	if d.Charge != nil {
		s.Charge = *d.Charge
		s.HasCharge = true
	}
	if n, ok := d.Atoms.Count(core.ElectronSymbol); ok {
		inferred := -n
		if s.HasCharge && s.Charge != inferred {
			return nil, core.Validationf(d.Name, "specified charge %g inconsistent with number of electrons (%g)", s.Charge, n)
		}
		s.Charge = inferred
		s.HasCharge = true
	}

	if err := cc.RegisterSpecies(s); err != nil {
		return nil, err
	}
	return s, nil
}

// NewPolynomial builds a NASA, NASA9 or Shomate segment, checking the
// coefficient count for the form.
func NewPolynomial(form core.ThermoKind, tmin, tmax float64, coeffs []float64, p0 float64) (*core.Polynomial, error) {
	want := form.CoeffCount()
	if want == 0 {
		return nil, core.Structuralf(string(form), "not a polynomial thermo form")
	}
	if len(coeffs) != want {
		return nil, core.Structuralf(string(form), "%s coefficient list must have length = %d, got %d", form, want, len(coeffs))
	}
	return &core.Polynomial{
		Form:   form,
		TMin:   tmin,
		TMax:   tmax,
		P0:     p0,
		Coeffs: append([]float64(nil), coeffs...),
	}, nil
}

func validateSegment(species string, seg core.ThermoSegment) error {
	switch t := seg.(type) {
	case *core.Polynomial:
		if want := t.Form.CoeffCount(); want == 0 || len(t.Coeffs) != want {
			return core.Structuralf(species, "%s coefficient list must have length = %d, got %d", t.Form, want, len(t.Coeffs))
		}
	case *core.Mu0Table:
		if len(t.Points) == 0 {
			return core.Structuralf(species, "Mu0_table requires at least one (T, mu0) point")
		}
	case nil:
		return core.Structuralf(species, "nil thermo segment")
	}
	return nil
}
