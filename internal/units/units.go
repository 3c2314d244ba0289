// Package units holds the active default unit system of a compilation.
//
// A Context is mutated by unit directives while an input is being declared
// and read when the document is emitted. Numbers are never converted at
// declaration time, so a directive placed late in an input still governs
// quantities declared before it.
package units

import (
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/ctmlc/pkg/core"
)

// Physical constants exposed to input files.
const (
	OneAtm       = 1.01325e5
	OneBar       = 1.0e5
	ElectronVolt = 96.4853e6 // J/kmol
	ElectronMass = 9.10938188e-31
)

// DefaultReferencePressure is the standard-state pressure in Pa.
const DefaultReferencePressure = 1.0e5

// Scale tables used to convert pre-exponential factors to m, kmol and s.
var (
	LengthScale = map[string]float64{
		"cm": 0.01,
		"m":  1.0,
		"mm": 0.001,
	}
	QuantityScale = map[string]float64{
		"kmol":  1.0,
		"mol":   0.001,
		"molec": 1.0 / 6.023e26,
	}
	TimeScale = map[string]float64{
		"s":   1.0,
		"min": 60.0,
		"hr":  3600.0,
	}
)

// Context is the active unit system plus the reference pressure.
type Context struct {
	Length    string
	Quantity  string
	Mass      string
	Time      string
	ActEnergy string
	Energy    string
	Pressure  string

	ReferencePressure float64
}

// New returns a Context holding the default units.
func New() *Context {
	return &Context{
		Length:            "m",
		Quantity:          "kmol",
		Mass:              "kg",
		Time:              "s",
		ActEnergy:         "J/kmol",
		Energy:            "J",
		Pressure:          "Pa",
		ReferencePressure: DefaultReferencePressure,
	}
}

// Set applies a units directive. Empty fields leave the current value
// unchanged; ReferencePressure is not touched.
func (c *Context) Set(u Context) {
	if u.Length != "" {
		c.Length = u.Length
	}
	if u.Quantity != "" {
		c.Quantity = u.Quantity
	}
	if u.Mass != "" {
		c.Mass = u.Mass
	}
	if u.Time != "" {
		c.Time = u.Time
	}
	if u.ActEnergy != "" {
		c.ActEnergy = u.ActEnergy
	}
	if u.Energy != "" {
		c.Energy = u.Energy
	}
	if u.Pressure != "" {
		c.Pressure = u.Pressure
	}
}

// Factor returns the conversion from a rate coefficient entered in the active
// length, quantity and time units to the fixed internal m, kmol, s system,
// given the molar and length dimensions of the reaction.
func (c *Context) Factor(mdim, ldim float64) (float64, error) {
	l, ok := LengthScale[c.Length]
	if !ok {
		return 0, core.Structuralf(c.Length, "unknown length unit")
	}
	q, ok := QuantityScale[c.Quantity]
	if !ok {
		return 0, core.Structuralf(c.Quantity, "unknown quantity unit")
	}
	t, ok := TimeScale[c.Time]
	if !ok {
		return 0, core.Structuralf(c.Time, "unknown time unit")
	}
	return math.Pow(l, -ldim) * math.Pow(q, -mdim) / t, nil
}

// Reference returns p0 if positive, otherwise the context reference pressure.
func (c *Context) Reference(p0 float64) float64 {
	if p0 <= 0 {
		return c.ReferencePressure
	}
	return p0
}

// MassDensity is the unit string of a bulk density.
func (c *Context) MassDensity() string { return c.Mass + "/" + c.Length + "3" }

// MolarEnergy is the unit string of an enthalpy or chemical potential.
func (c *Context) MolarEnergy() string { return c.Energy + "/" + c.Quantity }

// MolarEntropy is the unit string of an entropy or heat capacity.
func (c *Context) MolarEntropy() string { return c.Energy + "/" + c.Quantity + "/K" }

// MolarMass is the unit string of a molecular weight.
func (c *Context) MolarMass() string { return c.Mass + "/" + c.Quantity }

// SiteDensity is the unit string of a site density in a phase of dimension dim.
func (c *Context) SiteDensity(dim int) string {
	s := c.Quantity + "/" + c.Length
	if dim > 1 {
		s += strconv.Itoa(dim)
	}
	return s
}

// Power formats base raised to n as a unit suffix: "-cm2", "/s", "".
func Power(base string, n float64) string {
	switch {
	case n == 0:
		return ""
	case n == 1:
		return "-" + base
	case n == -1:
		return "/" + base
	case n > 0:
		return "-" + base + exponent(n)
	default:
		return "/" + base + exponent(-n)
	}
}

// RateUnits describes the units of a pre-exponential factor entered in the
// active system for a reaction with the given dimensions, e.g. "cm3/mol/s".
func (c *Context) RateUnits(mdim, ldim float64) string {
	var num []string
	if ldim < 0 {
		num = append(num, c.Length+exponent(-ldim))
	}
	if mdim < 0 {
		num = append(num, c.Quantity+exponent(-mdim))
	}
	s := "1"
	if len(num) > 0 {
		s = strings.Join(num, "-")
	}
	if mdim > 0 {
		s += Power(c.Quantity, -mdim)
	}
	if ldim > 0 {
		s += Power(c.Length, -ldim)
	}
	return s + Power(c.Time, -1)
}

func exponent(n float64) string {
	if n == 1 {
		return ""
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
