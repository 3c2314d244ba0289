package core

// Element is an atomic element or isotope.
type Element struct {
	Symbol       string
	AtomicMass   float64 // amu
	AtomicNumber int
}

// DefaultAtomicMass is used when an element declaration omits its mass.
const DefaultAtomicMass = 0.01

// Atom is one entry of an atomic composition.
type Atom struct {
	Element string
	Count   float64
}

// Composition is an ordered atomic composition.
type Composition []Atom

// Count returns the number of atoms of element e and whether it is present.
func (c Composition) Count(e string) (float64, bool) {
	for _, a := range c {
		if a.Element == e {
			return a.Count, true
		}
	}
	return 0, false
}

// ElectronSymbol is the pseudo-element used to infer species charge.
const ElectronSymbol = "E"

// Species is a constituent of one or more phases.
type Species struct {
	Name  string
	Atoms Composition
	Note  string

	// Thermo holds one segment per temperature range, never empty.
	Thermo []ThermoSegment

	// Transport holds zero or more transport parameterizations.
	Transport []*GasTransport

	// Charge is meaningful only when HasCharge is set, either because it was
	// declared or because it was inferred from the electron count.
	Charge    float64
	HasCharge bool

	// Size is the number of surface sites occupied (default 1).
	Size float64
}

// ThermoKind names a thermodynamic parameterization.
type ThermoKind string

// Thermo parameterization kinds.
const (
	ThermoNASA     ThermoKind = "NASA"
	ThermoNASA9    ThermoKind = "NASA9"
	ThermoShomate  ThermoKind = "Shomate"
	ThermoConstCp  ThermoKind = "const_cp"
	ThermoMu0      ThermoKind = "Mu0"
	ThermoAdsorbed ThermoKind = "adsorbate"
)

// CoeffCount returns the required number of polynomial coefficients for
// the kind, or 0 when the kind is not a polynomial form.
func (k ThermoKind) CoeffCount() int {
	switch k {
	case ThermoNASA, ThermoShomate:
		return 7
	case ThermoNASA9:
		return 9
	default:
		return 0
	}
}

// ThermoSegment is one reference-state parameterization valid over a
// temperature range. The set of implementations is closed.
type ThermoSegment interface {
	Kind() ThermoKind
	thermoSegment()
}

// Polynomial is a NASA, NASA9 or Shomate polynomial.
type Polynomial struct {
	Form   ThermoKind
	TMin   float64
	TMax   float64
	P0     float64 // <= 0 selects the context reference pressure
	Coeffs []float64
}

// Kind implements ThermoSegment.
func (p *Polynomial) Kind() ThermoKind { return p.Form }
func (p *Polynomial) thermoSegment()   {}

// ConstCp is a constant-heat-capacity parameterization.
type ConstCp struct {
	T0   Quantity
	H0   Quantity
	S0   Quantity
	Cp0  Quantity
	TMin float64 // negative values are omitted from the document
	TMax float64
}

// DefaultConstCp returns the parameterization applied to species that
// declare no thermo data.
func DefaultConstCp() *ConstCp {
	return &ConstCp{T0: Q(298.15), TMin: 100.0, TMax: 5000.0}
}

// Kind implements ThermoSegment.
func (c *ConstCp) Kind() ThermoKind { return ThermoConstCp }
func (c *ConstCp) thermoSegment()   {}

// Mu0Point is a tabulated (temperature, standard chemical potential) pair.
type Mu0Point struct {
	T   float64
	Mu0 float64
}

// Mu0Table tabulates standard chemical potentials against temperature.
type Mu0Table struct {
	TMin   float64
	TMax   float64
	P0     float64
	H298   Quantity
	Points []Mu0Point
}

// Kind implements ThermoSegment.
func (m *Mu0Table) Kind() ThermoKind { return ThermoMu0 }
func (m *Mu0Table) thermoSegment()   {}

// Adsorbate describes an adsorbed species by binding energy and
// vibrational frequencies.
type Adsorbate struct {
	TMin          float64
	TMax          float64
	P0            float64
	BindingEnergy Quantity
	Frequencies   []float64
}

// Kind implements ThermoSegment.
func (a *Adsorbate) Kind() ThermoKind { return ThermoAdsorbed }
func (a *Adsorbate) thermoSegment()   {}

// GasTransport holds Lennard-Jones style transport parameters.
type GasTransport struct {
	Geometry  string // atom, linear or nonlin
	Diameter  float64
	WellDepth float64
	Dipole    float64
	Polar     float64
	RotRelax  float64
}
