package starlark

import (
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/mechanism"
	"github.com/leapstack-labs/ctmlc/pkg/core"
	"go.starlark.net/starlark"
)

// phaseParams lists each phase builtin's parameters in positional order.
var phaseParams = map[core.PhaseKind][]string{
	core.IdealGas:             {"name", "elements", "species", "reactions", "kinetics", "transport", "initial_state", "options"},
	core.StoichiometricSolid:  {"name", "elements", "species", "density", "transport", "initial_state", "options"},
	core.StoichiometricLiquid: {"name", "elements", "species", "density", "transport", "initial_state", "options"},
	core.Metal:                {"name", "elements", "species", "density", "transport", "initial_state", "options"},
	core.Semiconductor:        {"name", "elements", "species", "density", "bandgap", "effectiveMass_e", "effectiveMass_h", "transport", "initial_state", "options"},
	core.IncompressibleSolid:  {"name", "elements", "species", "density", "transport", "initial_state", "options"},
	core.Lattice:              {"name", "elements", "species", "reactions", "transport", "initial_state", "options", "site_density", "vacancy_species"},
	core.LatticeSolid:         {"name", "elements", "species", "lattices", "transport", "initial_state", "options"},
	core.LiquidVapor:          {"name", "elements", "species", "substance_flag", "initial_state", "options"},
	core.RedlichKwong:         {"name", "elements", "species", "substance_flag", "initial_state", "Tcrit", "Pcrit", "options"},
	core.IdealInterface:       {"name", "elements", "species", "reactions", "site_density", "phases", "kinetics", "transport", "initial_state", "options"},
	core.Edge:                 {"name", "elements", "species", "reactions", "site_density", "phases", "kinetics", "transport", "initial_state", "options"},
}

// phaseArgs holds the unpacked arguments of a phase builtin by name.
type phaseArgs map[string]starlark.Value

func (a phaseArgs) str(name string) (string, error) {
	v := a[name]
	if isNone(v) {
		return "", nil
	}
	s, ok := starlark.AsString(v)
	if !ok {
		return "", core.Structuralf(name, "expected a string, got %s", v.Type())
	}
	return s, nil
}

// phase returns the builtin declaring a phase of the given kind. It returns
// the phase so that lattices can be passed to lattice_solid.
func (ec *ExecutionContext) phase(kind core.PhaseKind) builtinFunc {
	params := phaseParams[kind]
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		vals := make([]starlark.Value, len(params))
		pairs := make([]any, 0, 2*len(params))
		for i, name := range params {
			pairs = append(pairs, name+"?", &vals[i])
		}
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, pairs...); err != nil {
			return nil, err
		}
		a := make(phaseArgs, len(params))
		for i, name := range params {
			a[name] = vals[i]
		}

		d, err := phaseDecl(kind, a)
		if err != nil {
			return nil, err
		}
		p, err := mechanism.NewPhase(ec.cc, d)
		if err != nil {
			return nil, err
		}
		return newObject(b.Name(), p), nil
	}
}

func phaseDecl(kind core.PhaseKind, a phaseArgs) (mechanism.PhaseDecl, error) {
	d := mechanism.PhaseDecl{Kind: kind}
	var err error

	for _, s := range []struct {
		name string
		dst  *string
	}{
		{"name", &d.Name},
		{"elements", &d.Elements},
		{"kinetics", &d.Kinetics},
		{"transport", &d.Transport},
		{"vacancy_species", &d.Vacancy},
	} {
		if *s.dst, err = a.str(s.name); err != nil {
			return d, err
		}
	}

	if d.Species, err = toStrings("species", a["species"]); err != nil {
		return d, err
	}
	if d.Reactions, err = toStrings("reactions", a["reactions"]); err != nil {
		return d, err
	}
	if d.Options, err = toStrings("options", a["options"]); err != nil {
		return d, err
	}
	adjacent, err := toStrings("phases", a["phases"])
	if err != nil {
		return d, err
	}
	d.Phases = strings.Join(adjacent, " ")

	if v := a["initial_state"]; !isNone(v) {
		if d.InitialState, err = object[*core.State]("initial_state", v); err != nil {
			return d, err
		}
	}
	if d.Lattices, err = objects[*core.Phase]("lattices", a["lattices"]); err != nil {
		return d, err
	}

	for _, q := range []struct {
		name string
		dst  **core.Quantity
	}{
		{"density", &d.Density},
		{"site_density", &d.SiteDensity},
		{"bandgap", &d.Bandgap},
		{"effectiveMass_e", &d.EffectiveMassE},
		{"effectiveMass_h", &d.EffectiveMassH},
		{"Tcrit", &d.TCrit},
		{"Pcrit", &d.PCrit},
	} {
		if *q.dst, err = optQuantity(q.name, a[q.name]); err != nil {
			return d, err
		}
	}
	// a negative lattice site density means "not given"
	if kind == core.Lattice && d.SiteDensity != nil && d.SiteDensity.Value < 0 {
		d.SiteDensity = nil
	}

	if v := a["substance_flag"]; !isNone(v) {
		flag, err := starlark.AsInt32(v)
		if err != nil {
			return d, core.Structuralf("substance_flag", "expected an integer, got %s", v.Type())
		}
		d.SubstanceFlag = &flag
	}
	return d, nil
}

func state(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var t, p, x, y, rho, cov, m starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"temperature?", &t,
		"pressure?", &p,
		"mole_fractions?", &x,
		"mass_fractions?", &y,
		"density?", &rho,
		"coverages?", &cov,
		"solute_molalities?", &m,
	); err != nil {
		return nil, err
	}

	s := &core.State{}
	var err error
	if s.Temperature, err = optQuantity("temperature", t); err != nil {
		return nil, err
	}
	if s.Pressure, err = optQuantity("pressure", p); err != nil {
		return nil, err
	}
	if s.Density, err = optQuantity("density", rho); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		name string
		v    starlark.Value
		dst  *string
	}{
		{"mole_fractions", x, &s.MoleFractions},
		{"mass_fractions", y, &s.MassFractions},
		{"coverages", cov, &s.Coverages},
		{"solute_molalities", m, &s.SoluteMolalities},
	} {
		if *f.dst, err = compositionString(f.name, f.v); err != nil {
			return nil, err
		}
	}
	return newObject(b.Name(), s), nil
}

// compositionString accepts an "A:1 B:2" string or a dict of values.
func compositionString(arg string, v starlark.Value) (string, error) {
	if isNone(v) {
		return "", nil
	}
	if s, ok := starlark.AsString(v); ok {
		return s, nil
	}
	dict, ok := v.(*starlark.Dict)
	if !ok {
		return "", core.Structuralf(arg, "expected a string or a dict, got %s", v.Type())
	}
	parts := make([]string, 0, dict.Len())
	for _, item := range dict.Items() {
		k, ok := starlark.AsString(item[0])
		if !ok {
			return "", core.Structuralf(arg, "species name must be a string, got %s", item[0].Type())
		}
		parts = append(parts, k+":"+item[1].String())
	}
	return strings.Join(parts, " "), nil
}
