package core

// ReactionKind is the closed set of reaction variants.
type ReactionKind int

// Reaction kinds.
const (
	Elementary ReactionKind = iota
	ThreeBody
	FalloffReaction
	PLog
	Chebyshev
	SurfaceReaction
	EdgeReaction
)

// TypeAttr returns the value of the emitted reaction "type" attribute.
// Elementary reactions carry no type attribute.
func (k ReactionKind) TypeAttr() string {
	switch k {
	case ThreeBody:
		return "threeBody"
	case FalloffReaction:
		return "falloff"
	case PLog:
		return "plog"
	case Chebyshev:
		return "chebyshev"
	case SurfaceReaction:
		return "surface"
	case EdgeReaction:
		return "edge"
	default:
		return ""
	}
}

// String returns a readable name for diagnostics.
func (k ReactionKind) String() string {
	if k == Elementary {
		return "elementary"
	}
	return k.TypeAttr()
}

// Reaction is a declared reaction. Reactants and Products hold species
// names only; third-body tokens are removed during construction.
type Reaction struct {
	Number   int // 1-based declaration index
	ID       string
	Equation string
	Kind     ReactionKind

	Reactants  *StoichMap
	Products   *StoichMap
	Reversible bool

	// OrderSpec is the raw order override string; Orders its parsed form.
	OrderSpec string
	Orders    *StoichMap

	// Rates holds the rate expressions. Falloff reactions keep the
	// high-pressure limit first and the low-pressure limit second.
	Rates []*Arrhenius

	// Pressures pairs with Rates for PLog reactions.
	Pressures []Quantity

	Efficiencies Efficiencies
	Falloff      *Falloff
	Cheb         *ChebyshevTable

	Options []string
	// Beta is the electrochemical symmetry factor for edge reactions.
	Beta float64
}

// Reaction options.
const (
	OptDuplicate = "duplicate"
	OptNegativeA = "negative_A"
)

// HasOption reports whether a reaction option is set.
func (r *Reaction) HasOption(opt string) bool {
	for _, o := range r.Options {
		if o == opt {
			return true
		}
	}
	return false
}

// ReactionOrder returns the order of a reactant species: the override if
// one exists, else its stoichiometric coefficient.
func (r *Reaction) ReactionOrder(species string) float64 {
	if r.Orders != nil {
		if v, ok := r.Orders.Get(species); ok {
			return v
		}
	}
	v, _ := r.Reactants.Get(species)
	return v
}

// RateType is the optional Arrhenius rate type tag.
type RateType string

// Rate types.
const (
	RateDefault RateType = ""
	RateStick   RateType = "stick"
)

// Coverage is a surface-coverage dependence term.
type Coverage struct {
	Species string
	A       Quantity
	M       float64
	E       Quantity
}

// Arrhenius is a modified Arrhenius rate expression.
type Arrhenius struct {
	A        Quantity
	B        float64
	E        Quantity
	Coverage []Coverage
	Type     RateType
}

// Efficiencies is a third-body efficiency table. Spec holds "S1:e1 S2:e2".
type Efficiencies struct {
	Spec    string
	Default float64
}

// FalloffKind names a falloff blending function.
type FalloffKind string

// Falloff kinds.
const (
	Lindemann FalloffKind = "Lindemann"
	Troe      FalloffKind = "Troe"
	SRI       FalloffKind = "SRI"
)

// Falloff is a falloff blending function with its parameters.
type Falloff struct {
	Kind   FalloffKind
	Params []float64
}

// ValidArity reports whether n parameters are acceptable for the kind.
func (k FalloffKind) ValidArity(n int) bool {
	switch k {
	case Troe:
		return n == 3 || n == 4
	case SRI:
		return n == 3 || n == 5
	case Lindemann:
		return n == 0
	default:
		return false
	}
}

// ChebyshevTable is a Chebyshev rate-coefficient fit over temperature and
// pressure. Coeffs is indexed [temperature][pressure].
type ChebyshevTable struct {
	TMin   float64
	TMax   float64
	PMin   Quantity
	PMax   Quantity
	Coeffs [][]float64
}
