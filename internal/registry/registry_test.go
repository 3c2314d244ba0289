package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ctmlc/pkg/core"
)

func gasPhase(name string, species ...string) *core.Phase {
	p := &core.Phase{Name: name, Kind: core.IdealGas, Members: map[string]int{}}
	for _, s := range species {
		p.Members[s] = 3
		p.MemberOrder = append(p.MemberOrder, s)
	}
	return p
}

func TestNew_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultDataset, c.Dataset)
	assert.Equal(t, Validation{Species: "yes", Reactions: "yes"}, c.Validate)
	assert.Equal(t, "kmol", c.Units.Quantity)
	assert.Nil(t, c.Export)
}

func TestRegisterSpecies_Duplicate(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterSpecies(&core.Species{Name: "H2"}))

	err := c.RegisterSpecies(&core.Species{Name: "H2"})
	require.Error(t, err)

	var ve *core.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "multiply defined")
	assert.Len(t, c.AllSpecies(), 1)
}

func TestRegisterSpecies_ElementOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterSpecies(&core.Species{Name: "H2O", Atoms: core.Composition{{Element: "H", Count: 2}, {Element: "O", Count: 1}}}))
	require.NoError(t, c.RegisterSpecies(&core.Species{Name: "CO", Atoms: core.Composition{{Element: "C", Count: 1}, {Element: "O", Count: 1}}}))

	assert.Equal(t, []string{"H", "O", "C"}, c.ElementOrder())
}

func TestRegisterPhase_Duplicate(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterPhase(gasPhase("gas", "H2")))

	err := c.RegisterPhase(gasPhase("gas", "O2"))
	var ve *core.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestRegisterElement_Duplicate(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterElement(&core.Element{Symbol: "H", AtomicMass: 1.008}))
	assert.Error(t, c.RegisterElement(&core.Element{Symbol: "H"}))

	e, ok := c.Element("H")
	require.True(t, ok)
	assert.Equal(t, 1.008, e.AtomicMass)
}

func TestRegisterReaction_Numbering(t *testing.T) {
	c := New()
	assert.Equal(t, 1, c.NextReactionNumber())

	r1 := &core.Reaction{Equation: "A => B"}
	r2 := &core.Reaction{Equation: "B => C"}
	assert.Equal(t, 1, c.RegisterReaction(r1))
	assert.Equal(t, 2, c.RegisterReaction(r2))
	assert.Equal(t, 2, r2.Number)
	assert.Equal(t, 3, c.NextReactionNumber())
}

func TestPhaseOf_FirstMatch(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterPhase(gasPhase("gas1", "H2", "O2")))
	require.NoError(t, c.RegisterPhase(gasPhase("gas2", "O2", "N2")))

	tests := []struct {
		species   string
		wantPhase string
		wantFound bool
	}{
		{"H2", "gas1", true},
		{"O2", "gas1", true},
		{"N2", "gas2", true},
		{"AR", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.species, func(t *testing.T) {
			p, ok := c.PhaseOf(tt.species)
			assert.Equal(t, tt.wantFound, ok)
			if tt.wantFound {
				assert.Equal(t, tt.wantPhase, p.Name)
			}
		})
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterPhase(gasPhase("gas", "H2")))

	phases := c.Phases()
	phases[0] = nil
	assert.NotNil(t, c.Phases()[0])

	e, s, p, r := c.Counts()
	assert.Equal(t, []int{0, 0, 1, 0}, []int{e, s, p, r})
}
