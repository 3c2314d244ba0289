package compiler

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/ctml"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

// buildRate emits one Arrhenius expression. A bare pre-exponential factor is
// multiplied by factor; a "/site" factor is divided by the governing phase's
// site density; any other unit string is passed through unconverted.
func (c *compiler) buildRate(parent *ctml.Node, k *core.Arrhenius, factor float64, gas []string, name string, governing *core.Phase) (*ctml.Node, error) {
	a := parent.AddChild("Arrhenius", "")
	if name != "" {
		a.Set("name", name)
	}

	if k.Type != core.RateDefault {
		a.Set("type", string(k.Type))
		if k.Type == core.RateStick {
			if len(gas) != 1 {
				return nil, core.Validationf(strings.Join(gas, " "),
					"sticking probabilities can only be used for reactions with one gas-phase reactant, but this reaction has %d", len(gas))
			}
			a.Set("species", gas[0])
			factor = 1.0
		}
	}

	switch {
	case !k.A.HasUnits():
		addFloat(a, "A", core.Q(k.A.Value*factor), ctml.FmtPreExp, "")
	case k.A.PerSite():
		if governing == nil || governing.Dim() > 2 || governing.SiteDensity.Value == 0 {
			return nil, core.Dimensionalf(fmt.Sprintf("%g/site", k.A.Value),
				"a per-site pre-exponential factor requires a governing surface phase with a nonzero site density")
		}
		addFloat(a, "A", core.Q(k.A.Value/governing.SiteDensity.Value), ctml.FmtPreExp, "")
	default:
		addFloat(a, "A", k.A, ctml.FmtPreExp, "")
	}

	a.AddChild("b", ctml.Repr(k.B))
	addFloat(a, "E", k.E, ctml.FmtFixed, c.u.ActEnergy)

	for _, cov := range k.Coverage {
		cn := a.AddChild("coverage", "").Set("species", cov.Species)
		addFloat(cn, "a", cov.A, ctml.FmtFixed, "")
		cn.AddChild("m", ctml.Repr(cov.M))
		addFloat(cn, "e", cov.E, ctml.FmtFixed, c.u.ActEnergy)
	}
	return a, nil
}

func buildFalloff(parent *ctml.Node, f *core.Falloff) {
	var b strings.Builder
	for _, p := range f.Params {
		b.WriteString(fmt.Sprintf(ctml.FmtFalloff, p) + " ")
	}
	parent.AddChild("falloff", b.String()).Set("type", string(f.Kind))
}
