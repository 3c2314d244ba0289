package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ctmlc/pkg/core"
)

func TestNew_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, "m", c.Length)
	assert.Equal(t, "kmol", c.Quantity)
	assert.Equal(t, "kg", c.Mass)
	assert.Equal(t, "s", c.Time)
	assert.Equal(t, "J/kmol", c.ActEnergy)
	assert.Equal(t, "J", c.Energy)
	assert.Equal(t, "Pa", c.Pressure)
	assert.Equal(t, 1.0e5, c.ReferencePressure)
}

func TestSet_EmptyFieldsUnchanged(t *testing.T) {
	c := New()
	c.Set(Context{Length: "cm", Quantity: "mol", ActEnergy: "cal/mol"})

	assert.Equal(t, "cm", c.Length)
	assert.Equal(t, "mol", c.Quantity)
	assert.Equal(t, "cal/mol", c.ActEnergy)
	assert.Equal(t, "s", c.Time)
	assert.Equal(t, "kg", c.Mass)
	assert.Equal(t, 1.0e5, c.ReferencePressure)
}

func TestFactor(t *testing.T) {
	tests := []struct {
		name   string
		set    Context
		mdim   float64
		ldim   float64
		expect float64
	}{
		{"defaults bimolecular", Context{}, 1, -3, 1.0},
		{"cm mol bimolecular", Context{Length: "cm", Quantity: "mol"}, 1, -3, 1e-3},
		{"cm mol termolecular", Context{Length: "cm", Quantity: "mol"}, 2, -6, 1e-6},
		{"cm mol unimolecular", Context{Length: "cm", Quantity: "mol"}, 0, 0, 1.0},
		{"minutes", Context{Time: "min"}, 0, 0, 1.0 / 60.0},
		{"cm mol surface bimolecular", Context{Length: "cm", Quantity: "mol"}, 1, -2, 0.1},
		{"molecules", Context{Length: "cm", Quantity: "molec"}, 1, -3, 1e-6 * 6.023e26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Set(tt.set)
			f, err := c.Factor(tt.mdim, tt.ldim)
			require.NoError(t, err)
			assert.InDelta(t, tt.expect, f, 1e-12*tt.expect)
		})
	}
}

func TestFactor_UnknownUnit(t *testing.T) {
	c := New()
	c.Set(Context{Length: "furlong"})
	_, err := c.Factor(1, 3)
	require.Error(t, err)

	var se *core.StructuralError
	assert.True(t, errors.As(err, &se))
	assert.Contains(t, err.Error(), "furlong")
}

func TestReference(t *testing.T) {
	c := New()
	assert.Equal(t, 1.0e5, c.Reference(-1))
	assert.Equal(t, 1.0e5, c.Reference(0))
	assert.Equal(t, OneAtm, c.Reference(OneAtm))
}

func TestUnitStrings(t *testing.T) {
	c := New()
	c.Set(Context{Length: "cm", Quantity: "mol", Mass: "g", Energy: "cal"})

	assert.Equal(t, "g/cm3", c.MassDensity())
	assert.Equal(t, "cal/mol", c.MolarEnergy())
	assert.Equal(t, "cal/mol/K", c.MolarEntropy())
	assert.Equal(t, "g/mol", c.MolarMass())
	assert.Equal(t, "mol/cm3", c.SiteDensity(3))
	assert.Equal(t, "mol/cm2", c.SiteDensity(2))
	assert.Equal(t, "mol/cm", c.SiteDensity(1))
}

func TestPower(t *testing.T) {
	assert.Equal(t, "", Power("cm", 0))
	assert.Equal(t, "-cm", Power("cm", 1))
	assert.Equal(t, "/cm", Power("cm", -1))
	assert.Equal(t, "-cm3", Power("cm", 3))
	assert.Equal(t, "/cm2", Power("cm", -2))
	assert.Equal(t, "-cm1.5", Power("cm", 1.5))
}

func TestRateUnits(t *testing.T) {
	c := New()
	c.Set(Context{Length: "cm", Quantity: "mol"})

	assert.Equal(t, "cm3/mol/s", c.RateUnits(1, -3))
	assert.Equal(t, "cm6/mol2/s", c.RateUnits(2, -6))
	assert.Equal(t, "1/s", c.RateUnits(0, 0))
	assert.Equal(t, "cm2/mol/s", c.RateUnits(1, -2))
	assert.Equal(t, "mol/cm3/s", c.RateUnits(-1, 3))
	assert.Equal(t, "cm4.5/mol1.5/s", c.RateUnits(1.5, -4.5))
}
