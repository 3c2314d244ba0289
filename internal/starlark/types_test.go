package starlark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"

	"github.com/leapstack-labs/ctmlc/pkg/core"
)

func TestToQuantity(t *testing.T) {
	q, err := toQuantity("A", starlark.MakeInt(5))
	require.NoError(t, err)
	assert.Equal(t, core.Q(5), q)

	q, err = toQuantity("A", starlark.Tuple{starlark.Float(1.5), starlark.String("kJ/mol")})
	require.NoError(t, err)
	assert.Equal(t, core.QU(1.5, "kJ/mol"), q)

	_, err = toQuantity("A", starlark.String("fast"))
	assert.Error(t, err)

	_, err = toQuantity("A", starlark.Tuple{starlark.String("kJ/mol"), starlark.Float(1.5)})
	assert.Error(t, err)
}

func TestToStrings(t *testing.T) {
	got, err := toStrings("species", starlark.String("H2 O2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"H2 O2"}, got)

	got, err = toStrings("species", starlark.NewList([]starlark.Value{starlark.String("a"), starlark.String("b")}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	got, err = toStrings("species", starlark.None)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = toStrings("species", starlark.Tuple{starlark.MakeInt(1)})
	assert.Error(t, err)
}

func TestObjects(t *testing.T) {
	a := newObject("NASA", core.ThermoSegment(&core.Polynomial{Form: core.ThermoNASA}))
	b := newObject("const_cp", core.ThermoSegment(core.DefaultConstCp()))

	single, err := objects[core.ThermoSegment]("thermo", a)
	require.NoError(t, err)
	assert.Len(t, single, 1)

	both, err := objects[core.ThermoSegment]("thermo", starlark.Tuple{a, b})
	require.NoError(t, err)
	assert.Len(t, both, 2)

	_, err = objects[*core.GasTransport]("transport", a)
	assert.Error(t, err)

	assert.Equal(t, "NASA", a.Type())
	assert.Equal(t, starlark.True, a.Truth())
	_, err = a.Hash()
	assert.Error(t, err)
}

func TestToRange(t *testing.T) {
	lo, hi, err := toRange(starlark.NewList([]starlark.Value{starlark.MakeInt(300), starlark.Float(1000)}))
	require.NoError(t, err)
	assert.Equal(t, 300.0, lo)
	assert.Equal(t, 1000.0, hi)

	_, _, err = toRange(starlark.Tuple{starlark.Float(300)})
	assert.Error(t, err)
}
