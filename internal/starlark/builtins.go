package starlark

import (
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/mechanism"
	"github.com/leapstack-labs/ctmlc/internal/registry"
	"github.com/leapstack-labs/ctmlc/internal/stoich"
	"github.com/leapstack-labs/ctmlc/internal/units"
	"github.com/leapstack-labs/ctmlc/pkg/core"
	"go.starlark.net/starlark"
)

// builtinFunc is the signature of every predeclared function.
type builtinFunc func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// unsetCharge marks a species whose charge was not given.
const unsetCharge = -999.0

// predeclared returns the names visible to input files.
func (ec *ExecutionContext) predeclared() starlark.StringDict {
	fns := map[string]builtinFunc{
		// directives
		"units":             ec.units,
		"standard_pressure": ec.standardPressure,
		"dataset":           ec.dataset,
		"validate":          ec.validate,
		"export_species":    ec.exportSpecies,

		"element": ec.element,
		"species": ec.species,

		// thermo and transport
		"NASA":          polynomial(core.ThermoNASA),
		"NASA9":         polynomial(core.ThermoNASA9),
		"Shomate":       polynomial(core.ThermoShomate),
		"const_cp":      constCp,
		"Mu0_table":     mu0Table,
		"Adsorbate":     adsorbate,
		"gas_transport": gasTransport,

		// phases
		"ideal_gas":             ec.phase(core.IdealGas),
		"stoichiometric_solid":  ec.phase(core.StoichiometricSolid),
		"stoichiometric_liquid": ec.phase(core.StoichiometricLiquid),
		"metal":                 ec.phase(core.Metal),
		"semiconductor":         ec.phase(core.Semiconductor),
		"incompressible_solid":  ec.phase(core.IncompressibleSolid),
		"lattice":               ec.phase(core.Lattice),
		"lattice_solid":         ec.phase(core.LatticeSolid),
		"liquid_vapor":          ec.phase(core.LiquidVapor),
		"redlich_kwong":         ec.phase(core.RedlichKwong),
		"ideal_interface":       ec.phase(core.IdealInterface),
		"edge":                  ec.phase(core.Edge),
		"state":                 state,

		// reactions
		"reaction":            ec.reaction(core.Elementary),
		"three_body_reaction": ec.reaction(core.ThreeBody),
		"falloff_reaction":    ec.reaction(core.FalloffReaction),
		"pdep_arrhenius":      ec.pdepArrhenius,
		"chebyshev_reaction":  ec.chebyshevReaction,
		"surface_reaction":    ec.reaction(core.SurfaceReaction),
		"edge_reaction":       ec.reaction(core.EdgeReaction),
		"Arrhenius":           arrhenius(core.RateDefault),
		"stick":               arrhenius(core.RateStick),
		"Troe":                troe,
		"SRI":                 sri,
		"Lindemann":           lindemann,
	}

	globals := starlark.StringDict{
		"OneAtm":       starlark.Float(units.OneAtm),
		"OneBar":       starlark.Float(units.OneBar),
		"eV":           starlark.Float(units.ElectronVolt),
		"ElectronMass": starlark.Float(units.ElectronMass),
	}
	for name, fn := range fns {
		globals[name] = starlark.NewBuiltin(name, fn)
	}
	return globals
}

func (ec *ExecutionContext) units(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var u units.Context
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"length?", &u.Length,
		"quantity?", &u.Quantity,
		"mass?", &u.Mass,
		"time?", &u.Time,
		"act_energy?", &u.ActEnergy,
		"energy?", &u.Energy,
		"pressure?", &u.Pressure,
	); err != nil {
		return nil, err
	}
	ec.cc.Units.Set(u)
	return starlark.None, nil
}

func (ec *ExecutionContext) standardPressure(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var p0 starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "p0", &p0); err != nil {
		return nil, err
	}
	f, err := toFloat("p0", p0)
	if err != nil {
		return nil, err
	}
	ec.cc.Units.ReferencePressure = f
	return starlark.None, nil
}

func (ec *ExecutionContext) dataset(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "nm", &name); err != nil {
		return nil, err
	}
	ec.cc.Dataset = name
	return starlark.None, nil
}

func (ec *ExecutionContext) validate(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	v := registry.Validation{Species: "yes", Reactions: "yes"}
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"species?", &v.Species,
		"reactions?", &v.Reactions,
	); err != nil {
		return nil, err
	}
	ec.cc.Validate = v
	return starlark.None, nil
}

func (ec *ExecutionContext) exportSpecies(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	e := registry.Export{Format: "CSV"}
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"filename", &e.File,
		"fmt?", &e.Format,
	); err != nil {
		return nil, err
	}
	if e.Format != "CSV" {
		return nil, core.Structuralf(e.File, "unsupported species export format %q", e.Format)
	}
	ec.cc.Export = &e
	return starlark.None, nil
}

func (ec *ExecutionContext) element(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		symbol string
		mass   starlark.Value = starlark.Float(core.DefaultAtomicMass)
		number int
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"symbol?", &symbol,
		"atomic_mass?", &mass,
		"atomic_number?", &number,
	); err != nil {
		return nil, err
	}
	m, err := toFloat("atomic_mass", mass)
	if err != nil {
		return nil, err
	}
	if _, err := mechanism.NewElement(ec.cc, symbol, m, number); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (ec *ExecutionContext) species(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		d                 mechanism.SpeciesDecl
		atoms             starlark.Value = starlark.String("")
		thermo, transport starlark.Value
		charge            starlark.Value = starlark.Float(unsetCharge)
		size              starlark.Value = starlark.Float(1.0)
	)
	d.Name = "missing name!"
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name?", &d.Name,
		"atoms?", &atoms,
		"note?", &d.Note,
		"thermo?", &thermo,
		"transport?", &transport,
		"charge?", &charge,
		"size?", &size,
	); err != nil {
		return nil, err
	}

	comp, err := composition(atoms)
	if err != nil {
		return nil, err
	}
	d.Atoms = comp

	if d.Thermo, err = objects[core.ThermoSegment]("thermo", thermo); err != nil {
		return nil, err
	}
	if d.Transport, err = objects[*core.GasTransport]("transport", transport); err != nil {
		return nil, err
	}

	q, err := toFloat("charge", charge)
	if err != nil {
		return nil, err
	}
	if q != unsetCharge {
		d.Charge = &q
	}
	sz, err := toFloat("size", size)
	if err != nil {
		return nil, err
	}
	d.Size = &sz

	if _, err := mechanism.NewSpecies(ec.cc, d); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// composition accepts an "E1:n1 E2:n2" string or a dict of element counts.
func composition(v starlark.Value) (core.Composition, error) {
	if s, ok := starlark.AsString(v); ok {
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return stoich.ParseComposition(s)
	}
	dict, ok := v.(*starlark.Dict)
	if !ok {
		return nil, core.Structuralf("atoms", "expected a string or a dict, got %s", v.Type())
	}
	comp := make(core.Composition, 0, dict.Len())
	for _, item := range dict.Items() {
		el, ok := starlark.AsString(item[0])
		if !ok {
			return nil, core.Structuralf("atoms", "element must be a string, got %s", item[0].Type())
		}
		n, err := toFloat(el, item[1])
		if err != nil {
			return nil, err
		}
		comp = append(comp, core.Atom{Element: el, Count: n})
	}
	return comp, nil
}
