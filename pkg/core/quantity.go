package core

// Quantity is a number as written in an input file.
//
// A bare number has an empty Units field and is interpreted in whatever unit
// system is active when the document is emitted. A (value, "units") pair keeps
// its unit string and is passed through to the document unchanged.
type Quantity struct {
	Value float64
	Units string
}

// Q returns a bare quantity interpreted in the active default units.
func Q(v float64) Quantity {
	return Quantity{Value: v}
}

// QU returns a quantity with an explicit unit string.
func QU(v float64, units string) Quantity {
	return Quantity{Value: v, Units: units}
}

// HasUnits reports whether the quantity carries an explicit unit string.
func (q Quantity) HasUnits() bool {
	return q.Units != ""
}

// PerSite reports whether the quantity uses the special "/site" form,
// which is divided by the governing surface phase's site density.
func (q Quantity) PerSite() bool {
	return q.Units == "/site"
}
