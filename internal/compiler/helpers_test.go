package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ctmlc/internal/ctml"
	"github.com/leapstack-labs/ctmlc/internal/mechanism"
	"github.com/leapstack-labs/ctmlc/internal/registry"
	"github.com/leapstack-labs/ctmlc/internal/testutil"
	"github.com/leapstack-labs/ctmlc/internal/units"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

func ptr[T any](v T) *T { return &v }

func arrhenius(a, b, e float64) *core.Arrhenius {
	return &core.Arrhenius{A: core.Q(a), B: b, E: core.Q(e)}
}

// fixture builds a context with a gas phase, a surface, a second surface and
// an edge, using cm/mol units.
type fixture struct {
	t  *testing.T
	cc *registry.CompilationContext
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, cc: registry.New()}
	f.cc.Units.Set(units.Context{Length: "cm", Quantity: "mol"})

	f.phase(mechanism.PhaseDecl{Name: "gas", Kind: core.IdealGas, Elements: "H O C", Species: []string{"H2 O2 H O OH HO2 H2O CH4 CH3 AR"}, Reactions: []string{"all"}})
	f.phase(mechanism.PhaseDecl{Name: "surf", Kind: core.IdealInterface, Elements: "Pt H", Species: []string{"PT(S) H(S) O(S)"}, SiteDensity: ptr(core.Q(2.7063e-9)), Phases: "gas", Reactions: []string{"all"}})
	f.phase(mechanism.PhaseDecl{Name: "surf2", Kind: core.IdealInterface, Species: []string{"X(S)"}, SiteDensity: ptr(core.Q(1e-9))})
	f.phase(mechanism.PhaseDecl{Name: "tpb", Kind: core.Edge, Species: []string{"E(tpb)"}, SiteDensity: ptr(core.Q(5e-17)), Phases: "surf"})
	f.phase(mechanism.PhaseDecl{Name: "bulk", Kind: core.StoichiometricSolid, Species: []string{"C(gr)"}, Density: ptr(core.QU(2.2, "g/cm3"))})
	return f
}

func (f *fixture) phase(d mechanism.PhaseDecl) *core.Phase {
	f.t.Helper()
	p, err := mechanism.NewPhase(f.cc, d)
	require.NoError(f.t, err)
	return p
}

func (f *fixture) reaction(d mechanism.ReactionDecl) *core.Reaction {
	f.t.Helper()
	r, err := mechanism.NewReaction(f.cc, d)
	require.NoError(f.t, err)
	return r
}

func (f *fixture) compile() *Result {
	f.t.Helper()
	res, err := Compile(f.cc, Options{Logger: testutil.NewTestLogger(f.t)})
	require.NoError(f.t, err)
	return res
}

// reactionNode returns the emitted reaction element with the given id.
func reactionNode(t *testing.T, res *Result, id string) *ctml.Node {
	t.Helper()
	n := res.Document.Find("reaction", "id", id)
	require.NotNil(t, n, "reaction %s not emitted", id)
	return n
}

func childValue(t *testing.T, n *ctml.Node, path ...string) string {
	t.Helper()
	for _, name := range path {
		n = n.Child(name)
		require.NotNil(t, n, "missing child %s", name)
	}
	return n.Value()
}

func attr(t *testing.T, n *ctml.Node, key string) string {
	t.Helper()
	v, ok := n.Attr(key)
	require.True(t, ok, "missing attribute %s on %s", key, n.Name())
	return v
}
