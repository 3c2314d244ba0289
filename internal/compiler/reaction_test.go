package compiler

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ctmlc/internal/mechanism"
	"github.com/leapstack-labs/ctmlc/internal/units"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

func TestReactionID(t *testing.T) {
	tests := []struct {
		num  int
		id   string
		want string
	}{
		{1, "", "0001"},
		{9, "", "0009"},
		{42, "", "0042"},
		{999, "", "0999"},
		{1000, "", "1000"},
		{12345, "", "12345"},
		{3, "R3", "R3"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ReactionID(&core.Reaction{Number: tt.num, ID: tt.id}))
		})
	}
}

// Pinned dimensional results per reaction kind with cm/mol/s units.
func TestCompile_UnitFactorPerKind(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.Elementary, Equation: "H + O2 <=> OH + O", Rates: []*core.Arrhenius{arrhenius(3.87e13, 0, 6260)}})
	f.reaction(mechanism.ReactionDecl{Kind: core.Elementary, Equation: "CH4 => CH3 + H", Rates: []*core.Arrhenius{arrhenius(1e15, 0, 0)}})
	f.reaction(mechanism.ReactionDecl{Kind: core.ThreeBody, Equation: "2 O + M <=> O2 + M", Rates: []*core.Arrhenius{arrhenius(1.2e17, -1, 0)}})
	f.reaction(mechanism.ReactionDecl{Kind: core.FalloffReaction, Equation: "H + O2 (+ M) <=> HO2 (+ M)", Rates: []*core.Arrhenius{arrhenius(4.65e12, 0.44, 0), arrhenius(6.366e20, -1.72, 524.8)}})
	f.reaction(mechanism.ReactionDecl{Kind: core.SurfaceReaction, Equation: "2 H(S) => H2 + 2 PT(S)", Rates: []*core.Arrhenius{arrhenius(3.7e21, 0, 67400)}})
	f.reaction(mechanism.ReactionDecl{Kind: core.EdgeReaction, Equation: "E(tpb) + H(S) => E(tpb) + PT(S)", Rates: []*core.Arrhenius{arrhenius(1e10, 0, 0)}})

	res := f.compile()
	require.Len(t, res.Reactions, 6)

	tests := []struct {
		id     string
		mdim   float64
		ldim   float64
		factor float64
		units  string
	}{
		{"0001", 1, -3, 1e-3, "cm3/mol/s"},
		{"0002", 0, 0, 1, "1/s"},
		{"0003", 2, -6, 1e-6, "cm6/mol2/s"},
		{"0004", 1, -3, 1e-3, "cm3/mol/s"},
		{"0005", 1, -2, 0.1, "cm2/mol/s"},
		{"0006", 1, -2, 0.1, "cm2/mol/s"},
	}
	for i, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s := res.Reactions[i]
			assert.Equal(t, tt.id, s.ID)
			assert.Equal(t, tt.mdim, s.MDim)
			assert.Equal(t, tt.ldim, s.LDim)
			assert.InDelta(t, tt.factor, s.UnitFactor, 1e-9*tt.factor)
			assert.Equal(t, tt.units, s.RateUnits)
		})
	}
}

func TestCompile_ElementaryPreExponential(t *testing.T) {
	f := newFixture(t)
	f.cc.Units.Set(units.Context{ActEnergy: "cal/mol"})
	f.reaction(mechanism.ReactionDecl{Kind: core.Elementary, Equation: "H + O2 <=> OH + O", Rates: []*core.Arrhenius{arrhenius(3.87e13, 0, 6260)}})

	res := f.compile()
	r := reactionNode(t, res, "0001")
	a := r.Child("rateCoeff").Child("Arrhenius")

	assert.Equal(t, "3.870000E+10", childValue(t, a, "A"))
	_, hasUnits := a.Child("A").Attr("units")
	assert.False(t, hasUnits)
	assert.Equal(t, "0.0", childValue(t, a, "b"))
	assert.Equal(t, "6260.000000", childValue(t, a, "E"))
	assert.Equal(t, "cal/mol", attr(t, a.Child("E"), "units"))
	assert.Equal(t, "yes", attr(t, r, "reversible"))
	_, hasType := r.Attr("type")
	assert.False(t, hasType)
	assert.Equal(t, "H:1.0 O2:1.0", childValue(t, r, "reactants"))
	assert.Equal(t, "OH:1.0 O:1.0", childValue(t, r, "products"))
	assert.Equal(t, "H + O2 [=] OH + O", childValue(t, r, "equation"))
}

func TestCompile_ExplicitUnitsPassThrough(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.Elementary, Equation: "H + O2 => OH + O", Rates: []*core.Arrhenius{{A: core.QU(3.87e13, "cm3/mol/s"), E: core.QU(25, "kJ/mol")}}})

	a := reactionNode(t, f.compile(), "0001").Child("rateCoeff").Child("Arrhenius")
	assert.Equal(t, "3.870000E+13", childValue(t, a, "A"))
	assert.Equal(t, "cm3/mol/s", attr(t, a.Child("A"), "units"))
	assert.Equal(t, "kJ/mol", attr(t, a.Child("E"), "units"))
}

// Unit directives issued after a reaction is declared still govern it.
func TestCompile_LateBoundUnits(t *testing.T) {
	f := newFixture(t)
	f.cc.Units.Set(units.Context{Length: "m", Quantity: "kmol"})
	f.reaction(mechanism.ReactionDecl{Kind: core.Elementary, Equation: "H + O2 => OH + O", Rates: []*core.Arrhenius{arrhenius(3.87e13, 0, 0)}})

	f.cc.Units.Set(units.Context{Length: "cm", Quantity: "mol"})
	a := reactionNode(t, f.compile(), "0001").Child("rateCoeff").Child("Arrhenius")
	assert.Equal(t, "3.870000E+10", childValue(t, a, "A"))
}

func TestCompile_ThreeBody(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.ThreeBody, Equation: "2 O + M <=> O2 + M", Rates: []*core.Arrhenius{arrhenius(1.2e17, -1, 0)}, Efficiencies: "AR:0.83 H2O:15.4"})

	r := reactionNode(t, f.compile(), "0001")
	assert.Equal(t, "threeBody", attr(t, r, "type"))
	kf := r.Child("rateCoeff")
	assert.Equal(t, "1.200000E+11", childValue(t, kf, "Arrhenius", "A"))
	assert.Equal(t, "-1.0", childValue(t, kf, "Arrhenius", "b"))

	eff := kf.Child("efficiencies")
	require.NotNil(t, eff)
	assert.Equal(t, "AR:0.83 H2O:15.4", eff.Value())
	assert.Equal(t, "1.0", attr(t, eff, "default"))
	assert.Equal(t, "O:2.0", childValue(t, r, "reactants"))
	assert.Equal(t, "O2:1.0", childValue(t, r, "products"))
}

func TestCompile_ThreeBodyWithoutEfficiencies(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.ThreeBody, Equation: "2 O + M <=> O2 + M", Rates: []*core.Arrhenius{arrhenius(1.2e17, -1, 0)}})

	kf := reactionNode(t, f.compile(), "0001").Child("rateCoeff")
	assert.Nil(t, kf.Child("efficiencies"))
}

func TestCompile_Falloff(t *testing.T) {
	f := newFixture(t)
	troe, err := mechanism.NewFalloff(core.Troe, []float64{0.5, 1e-30, 1e30})
	require.NoError(t, err)
	f.reaction(mechanism.ReactionDecl{
		Kind:         core.FalloffReaction,
		Equation:     "H + O2 (+ M) <=> HO2 (+ M)",
		Rates:        []*core.Arrhenius{arrhenius(4.65e12, 0.44, 0), arrhenius(6.366e20, -1.72, 524.8)},
		Efficiencies: "H2O:11.89",
		Falloff:      troe,
	})

	r := reactionNode(t, f.compile(), "0001")
	assert.Equal(t, "falloff", attr(t, r, "type"))
	kf := r.Child("rateCoeff")

	rates := kf.Elements("Arrhenius")
	require.Len(t, rates, 2)
	_, named := rates[0].Attr("name")
	assert.False(t, named)
	assert.Equal(t, "4.650000E+09", childValue(t, rates[0], "A"))
	assert.Equal(t, "k0", attr(t, rates[1], "name"))
	assert.Equal(t, "6.366000E+14", childValue(t, rates[1], "A"))

	assert.Equal(t, "H2O:11.89", childValue(t, kf, "efficiencies"))
	fo := kf.Child("falloff")
	require.NotNil(t, fo)
	assert.Equal(t, "Troe", attr(t, fo, "type"))
	assert.Equal(t, "0.5 1e-30 1e+30 ", fo.Value())
	assert.Equal(t, "H:1.0 O2:1.0", childValue(t, r, "reactants"))
}

func TestCompile_FalloffNamedBathGas(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{
		Kind:     core.FalloffReaction,
		Equation: "H + O2 (+ AR) <=> HO2 (+ AR)",
		Rates:    []*core.Arrhenius{arrhenius(1, 0, 0), arrhenius(1, 0, 0)},
	})

	kf := reactionNode(t, f.compile(), "0001").Child("rateCoeff")
	eff := kf.Child("efficiencies")
	require.NotNil(t, eff)
	assert.Equal(t, "AR:1.0", eff.Value())
	assert.Equal(t, "0.0", attr(t, eff, "default"))
	assert.Equal(t, "Lindemann", attr(t, kf.Child("falloff"), "type"))
	assert.Equal(t, "", kf.Child("falloff").Value())
}

func TestCompile_PLog(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{
		Kind:      core.PLog,
		Equation:  "H + O2 => OH + O",
		Rates:     []*core.Arrhenius{arrhenius(1e13, 0, 0), arrhenius(2e13, 0, 0)},
		Pressures: []core.Quantity{core.QU(1, "atm"), core.QU(10, "atm")},
	})

	r := reactionNode(t, f.compile(), "0001")
	assert.Equal(t, "plog", attr(t, r, "type"))
	rates := r.Child("rateCoeff").Elements("Arrhenius")
	require.Len(t, rates, 2)
	assert.Equal(t, "1.000000E+10", childValue(t, rates[0], "A"))
	assert.Equal(t, "1.0", childValue(t, rates[0], "P"))
	assert.Equal(t, "atm", attr(t, rates[0].Child("P"), "units"))
	assert.Equal(t, "2.000000E+10", childValue(t, rates[1], "A"))
	assert.Equal(t, "10.0", childValue(t, rates[1], "P"))
}

func TestCompile_Chebyshev(t *testing.T) {
	f := newFixture(t)
	r := f.reaction(mechanism.ReactionDecl{
		Kind:     core.Chebyshev,
		Equation: "H + O2 (+ M) <=> HO2 (+ M)",
		Cheb: &core.ChebyshevTable{
			TMin:   300,
			TMax:   2000,
			Coeffs: [][]float64{{8.2, 0.1}, {-0.3, 0.05}},
		},
	})

	for i := 0; i < 2; i++ {
		kf := reactionNode(t, f.compile(), "0001").Child("rateCoeff")
		assert.Equal(t, "300.0", childValue(t, kf, "Tmin"))
		assert.Equal(t, "0.001", childValue(t, kf, "Pmin"))
		assert.Equal(t, "atm", attr(t, kf.Child("Pmin"), "units"))
		assert.Equal(t, "100.0", childValue(t, kf, "Pmax"))

		arr := kf.Child("floatArray")
		require.NotNil(t, arr)
		assert.Equal(t, "5.20000e+00,  1.00000e-01,\n-3.00000e-01,  5.00000e-02", arr.Value())
		assert.Equal(t, "coeffs", attr(t, arr, "name"))
		assert.Equal(t, "2", attr(t, arr, "degreeT"))
		assert.Equal(t, "2", attr(t, arr, "degreeP"))
		assert.Empty(t, kf.Elements("Arrhenius"))
	}
	assert.Equal(t, 8.2, r.Cheb.Coeffs[0][0], "declared table must not change")
}

func TestCompile_Surface(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.SurfaceReaction, Equation: "2 H(S) => H2 + 2 PT(S)", Rates: []*core.Arrhenius{arrhenius(3.7e21, 0, 67400)}})
	f.reaction(mechanism.ReactionDecl{Kind: core.SurfaceReaction, Equation: "H2 + 2 PT(S) => 2 H(S)", Rates: []*core.Arrhenius{{A: core.Q(0.046), Type: core.RateStick}}})

	res := f.compile()
	r1 := reactionNode(t, res, "0001")
	assert.Equal(t, "surface", attr(t, r1, "type"))
	assert.Equal(t, "3.700000E+20", childValue(t, r1, "rateCoeff", "Arrhenius", "A"))
	assert.Equal(t, "surf", res.Reactions[0].GoverningPhase)

	a := reactionNode(t, res, "0002").Child("rateCoeff").Child("Arrhenius")
	assert.Equal(t, "stick", attr(t, a, "type"))
	assert.Equal(t, "H2", attr(t, a, "species"))
	assert.Equal(t, "4.600000E-02", childValue(t, a, "A"))
	assert.Equal(t, []string{"H2"}, res.Reactions[1].GasSpecies)
	assert.Equal(t, 2.0, res.Reactions[1].MDim)
	assert.Equal(t, -5.0, res.Reactions[1].LDim)
}

func TestCompile_Coverage(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.SurfaceReaction, Equation: "2 H(S) => H2 + 2 PT(S)", Rates: []*core.Arrhenius{{
		A:        core.Q(3.7e21),
		E:        core.Q(67400),
		Coverage: []core.Coverage{{Species: "H(S)", A: core.Q(0), M: 0, E: core.Q(-6000)}},
	}}})

	cov := reactionNode(t, f.compile(), "0001").Find("coverage")
	require.NotNil(t, cov)
	assert.Equal(t, "H(S)", attr(t, cov, "species"))
	assert.Equal(t, "0.000000", childValue(t, cov, "a"))
	assert.Equal(t, "0.0", childValue(t, cov, "m"))
	assert.Equal(t, "-6000.000000", childValue(t, cov, "e"))
	assert.Equal(t, "J/kmol", attr(t, cov.Child("e"), "units"))
}

func TestCompile_CoverageWithUnits(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.SurfaceReaction, Equation: "2 H(S) => H2 + 2 PT(S)", Rates: []*core.Arrhenius{{
		A:        core.Q(3.7e21),
		E:        core.Q(67400),
		Coverage: []core.Coverage{{Species: "H(S)", A: core.QU(1.5, "cm2/mol"), M: 0.5, E: core.Q(0)}},
	}}})

	cov := reactionNode(t, f.compile(), "0001").Find("coverage")
	require.NotNil(t, cov)
	assert.Equal(t, "1.500000", childValue(t, cov, "a"))
	assert.Equal(t, "cm2/mol", attr(t, cov.Child("a"), "units"))
	assert.Equal(t, "0.5", childValue(t, cov, "m"))
}

func TestCompile_StickingRequiresOneGasReactant(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.SurfaceReaction, Equation: "H2 + O2 + PT(S) => H(S) + HO2", Rates: []*core.Arrhenius{{A: core.Q(0.1), Type: core.RateStick}}})

	_, err := Compile(f.cc, Options{})
	require.Error(t, err)
	var ve *core.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "one gas-phase reactant")
}

func TestCompile_PerSitePreExponential(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.SurfaceReaction, Equation: "H(S) + O(S) => OH + 2 PT(S)", Rates: []*core.Arrhenius{{A: core.QU(2.0, "/site")}}})

	a := reactionNode(t, f.compile(), "0001").Child("rateCoeff").Child("Arrhenius")
	assert.Equal(t, "7.390164E+08", childValue(t, a, "A"))
	_, hasUnits := a.Child("A").Attr("units")
	assert.False(t, hasUnits)
}

func TestCompile_PerSiteWithoutSurface(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.Elementary, Equation: "H + O2 => OH + O", Rates: []*core.Arrhenius{{A: core.QU(2.0, "/site")}}})

	_, err := Compile(f.cc, Options{})
	var de *core.DimensionalError
	assert.True(t, errors.As(err, &de))
}

func TestCompile_SurfaceCardinality(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.SurfaceReaction, Equation: "H(S) + X(S) => PT(S) + X(S) + H", Rates: []*core.Arrhenius{arrhenius(1, 0, 0)}})

	res, err := Compile(f.cc, Options{})
	require.Error(t, err)
	assert.Nil(t, res)
	var ve *core.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "H(S) + X(S) => PT(S) + X(S) + H")
}

func TestCompile_EdgeRejectsSecondEdgeAndBeta(t *testing.T) {
	f := newFixture(t)
	f.phase(mechanism.PhaseDecl{Name: "tpb2", Kind: core.Edge, Species: []string{"E2(tpb)"}})
	f.reaction(mechanism.ReactionDecl{Kind: core.EdgeReaction, Equation: "E(tpb) + H(S) => E(tpb) + PT(S)", Rates: []*core.Arrhenius{arrhenius(1, 0, 0)}, Beta: 0.5})

	r := reactionNode(t, f.compile(), "0001")
	assert.Equal(t, "edge", attr(t, r, "type"))
	assert.Equal(t, "0.5", attr(t, r.Child("rateCoeff").Child("electrochem"), "beta"))

	f.reaction(mechanism.ReactionDecl{Kind: core.EdgeReaction, Equation: "E(tpb) + E2(tpb) => 2 E(tpb)", Rates: []*core.Arrhenius{arrhenius(1, 0, 0)}})
	_, err := Compile(f.cc, Options{})
	var ve *core.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestCompile_UnitActivityPhaseContributesNothing(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.Elementary, Equation: "C(gr) + O2 => CH4", Rates: []*core.Arrhenius{arrhenius(1, 0, 0)}})

	s := f.compile().Reactions[0]
	assert.Equal(t, 0.0, s.MDim)
	assert.Equal(t, 0.0, s.LDim)
	// governing phase is the first phase of minimal dimension
	assert.Equal(t, "bulk", s.GoverningPhase)
}

func TestCompile_SpeciesNotFound(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.Elementary, Equation: "H + N2 => NH + N", Rates: []*core.Arrhenius{arrhenius(1, 0, 0)}})

	_, err := Compile(f.cc, Options{})
	require.Error(t, err)
	var de *core.DimensionalError
	assert.True(t, errors.As(err, &de))
	assert.Contains(t, err.Error(), "species N2 not found")
}

func TestCompile_PhaseDeclaredAfterReaction(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{Kind: core.Elementary, Equation: "N2 + O => NO + N", Rates: []*core.Arrhenius{arrhenius(1e13, 0, 0)}})
	f.phase(mechanism.PhaseDecl{Name: "nitrogen", Kind: core.IdealGas, Species: []string{"N2 NO N"}})

	s := f.compile().Reactions[0]
	assert.Equal(t, 1.0, s.MDim)
	assert.Equal(t, -3.0, s.LDim)
}

func TestCompile_OrdersAndOptions(t *testing.T) {
	f := newFixture(t)
	f.reaction(mechanism.ReactionDecl{
		Kind:     core.Elementary,
		Equation: "H2 + O2 => 2 OH",
		Order:    "H2:1.5",
		Options:  []string{core.OptDuplicate, core.OptNegativeA},
		ID:       "ox1",
		Rates:    []*core.Arrhenius{arrhenius(1e13, 0, 0)},
	})

	res := f.compile()
	r := reactionNode(t, res, "ox1")
	assert.Equal(t, "no", attr(t, r, "reversible"))
	assert.Equal(t, "yes", attr(t, r, "duplicate"))
	assert.Equal(t, "yes", attr(t, r, "negative_A"))

	orders := r.Elements("order")
	require.Len(t, orders, 2)
	assert.Equal(t, "1.5", orders[0].Value())
	assert.Equal(t, "H2", attr(t, orders[0], "species"))
	assert.Equal(t, "1.0", orders[1].Value())
	assert.Equal(t, "O2", attr(t, orders[1], "species"))

	s := res.Reactions[0]
	assert.Equal(t, 1.5, s.MDim)
	assert.Equal(t, -4.5, s.LDim)
	assert.InEpsilon(t, math.Pow(0.01, 4.5)*math.Pow(0.001, -1.5), s.UnitFactor, 1e-12)
}

func TestCompile_UnknownLengthUnit(t *testing.T) {
	f := newFixture(t)
	f.cc.Units.Set(units.Context{Length: "ft"})
	f.reaction(mechanism.ReactionDecl{Kind: core.Elementary, Equation: "H + O2 => OH + O", Rates: []*core.Arrhenius{arrhenius(1, 0, 0)}})

	_, err := Compile(f.cc, Options{})
	var se *core.StructuralError
	assert.True(t, errors.As(err, &se))
}
