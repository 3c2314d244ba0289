package starlark

import (
	"github.com/leapstack-labs/ctmlc/internal/mechanism"
	"github.com/leapstack-labs/ctmlc/pkg/core"
	"go.starlark.net/starlark"
)

// unsetFalloffParam marks an optional Troe or SRI parameter that was not given.
const unsetFalloffParam = -999.9

// reactionParams lists each reaction builtin's parameters in positional
// order. A trailing "?" marks an optional parameter.
var reactionParams = map[core.ReactionKind][]string{
	core.Elementary:      {"equation?", "kf?", "id?", "order?", "options?"},
	core.ThreeBody:       {"equation?", "kf?", "efficiencies?", "id?", "options?"},
	core.FalloffReaction: {"equation", "kf0", "kf", "efficiencies?", "falloff?", "id?", "options?"},
	core.SurfaceReaction: {"equation?", "kf?", "id?", "order?", "options?"},
	core.EdgeReaction:    {"equation?", "kf?", "id?", "order?", "beta?", "options?"},
}

// reaction returns the builtin declaring a reaction of the given kind.
func (ec *ExecutionContext) reaction(kind core.ReactionKind) builtinFunc {
	params := reactionParams[kind]
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		vals := make([]starlark.Value, len(params))
		pairs := make([]any, 0, 2*len(params))
		for i, name := range params {
			pairs = append(pairs, name, &vals[i])
		}
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, pairs...); err != nil {
			return nil, err
		}
		a := make(phaseArgs, len(params))
		for i, name := range params {
			a[trimOptional(name)] = vals[i]
		}

		d := mechanism.ReactionDecl{Kind: kind}
		if err := commonReactionArgs(&d, a); err != nil {
			return nil, err
		}

		var err error
		if kind == core.FalloffReaction {
			// high-pressure limit first
			kf, err := rate("kf", a["kf"])
			if err != nil {
				return nil, err
			}
			kf0, err := rate("kf0", a["kf0"])
			if err != nil {
				return nil, err
			}
			d.Rates = []*core.Arrhenius{kf, kf0}
			if v := a["falloff"]; !isNone(v) {
				if d.Falloff, err = object[*core.Falloff]("falloff", v); err != nil {
					return nil, err
				}
			}
		} else {
			kf, err := rate("kf", a["kf"])
			if err != nil {
				return nil, err
			}
			d.Rates = []*core.Arrhenius{kf}
		}

		if d.Efficiencies, err = a.str("efficiencies"); err != nil {
			return nil, err
		}
		if v := a["beta"]; !isNone(v) {
			if d.Beta, err = toFloat("beta", v); err != nil {
				return nil, err
			}
		}

		if _, err := mechanism.NewReaction(ec.cc, d); err != nil {
			return nil, err
		}
		return starlark.None, nil
	}
}

func trimOptional(name string) string {
	if n := len(name); n > 0 && name[n-1] == '?' {
		return name[:n-1]
	}
	return name
}

// commonReactionArgs fills the equation, id, order and options.
func commonReactionArgs(d *mechanism.ReactionDecl, a phaseArgs) error {
	var err error
	if d.Equation, err = a.str("equation"); err != nil {
		return err
	}
	if d.ID, err = a.str("id"); err != nil {
		return err
	}
	if d.Order, err = a.str("order"); err != nil {
		return err
	}
	d.Options, err = toStrings("options", a["options"])
	return err
}

// pdepArrhenius declares a PLOG reaction. Each positional argument after the
// equation is a (pressure, A, n, E) sequence.
func (ec *ExecutionContext) pdepArrhenius(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	head, rest := args, starlark.Tuple(nil)
	if len(args) > 1 {
		head, rest = args[:1], args[1:]
	}
	var eq, id, order, options starlark.Value
	if err := starlark.UnpackArgs(b.Name(), head, kwargs,
		"equation?", &eq,
		"id?", &id,
		"order?", &order,
		"options?", &options,
	); err != nil {
		return nil, err
	}

	d := mechanism.ReactionDecl{Kind: core.PLog}
	if err := commonReactionArgs(&d, phaseArgs{"equation": eq, "id": id, "order": order, "options": options}); err != nil {
		return nil, err
	}
	for _, entry := range rest {
		items, ok := sequence(entry)
		if !ok || len(items) != 4 {
			return nil, core.Structuralf(d.Equation, "expected (pressure, A, n, E), got %s", entry)
		}
		p, err := toQuantity("pressure", items[0])
		if err != nil {
			return nil, err
		}
		k, err := rate("kf", starlark.Tuple(items[1:]))
		if err != nil {
			return nil, err
		}
		d.Pressures = append(d.Pressures, p)
		d.Rates = append(d.Rates, k)
	}

	if _, err := mechanism.NewReaction(ec.cc, d); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (ec *ExecutionContext) chebyshevReaction(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		eq, id, order, options starlark.Value
		tmin                   starlark.Value = starlark.Float(300)
		tmax                   starlark.Value = starlark.Float(2500)
		pmin                   starlark.Value = starlark.Tuple{starlark.Float(0.001), starlark.String("atm")}
		pmax                   starlark.Value = starlark.Tuple{starlark.Float(100), starlark.String("atm")}
		coeffs                 starlark.Value = starlark.NewList([]starlark.Value{starlark.NewList(nil)})
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"equation?", &eq,
		"Tmin?", &tmin,
		"Tmax?", &tmax,
		"Pmin?", &pmin,
		"Pmax?", &pmax,
		"coeffs?", &coeffs,
		"id?", &id,
		"order?", &order,
		"options?", &options,
	); err != nil {
		return nil, err
	}

	d := mechanism.ReactionDecl{Kind: core.Chebyshev}
	if err := commonReactionArgs(&d, phaseArgs{"equation": eq, "id": id, "order": order, "options": options}); err != nil {
		return nil, err
	}

	t := &core.ChebyshevTable{}
	var err error
	if t.TMin, err = toFloat("Tmin", tmin); err != nil {
		return nil, err
	}
	if t.TMax, err = toFloat("Tmax", tmax); err != nil {
		return nil, err
	}
	if t.PMin, err = toQuantity("Pmin", pmin); err != nil {
		return nil, err
	}
	if t.PMax, err = toQuantity("Pmax", pmax); err != nil {
		return nil, err
	}
	if t.Coeffs, err = toMatrix("coeffs", coeffs); err != nil {
		return nil, err
	}
	d.Cheb = t

	if _, err := mechanism.NewReaction(ec.cc, d); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// rate accepts an Arrhenius object or an [A, n, E] sequence.
func rate(arg string, v starlark.Value) (*core.Arrhenius, error) {
	if isNone(v) {
		return nil, nil
	}
	if o, ok := v.(*Object); ok {
		return object[*core.Arrhenius](arg, o)
	}
	items, ok := sequence(v)
	if !ok || len(items) != 3 {
		return nil, core.Structuralf(arg, "expected an Arrhenius expression or [A, n, E], got %s", v)
	}
	return arrheniusFrom(items[0], items[1], items[2], nil, core.RateDefault)
}

func arrheniusFrom(a, n, e, coverage starlark.Value, typ core.RateType) (*core.Arrhenius, error) {
	k := &core.Arrhenius{Type: typ}
	var err error
	if k.A, err = toQuantity("A", a); err != nil {
		return nil, err
	}
	if k.B, err = toFloat("n", n); err != nil {
		return nil, err
	}
	if k.E, err = toQuantity("E", e); err != nil {
		return nil, err
	}
	if k.Coverage, err = coverages(coverage); err != nil {
		return nil, err
	}
	return k, nil
}

// coverages accepts one [species, a, m, e] entry or a list of them.
func coverages(v starlark.Value) ([]core.Coverage, error) {
	items, ok := sequence(v)
	if isNone(v) || !ok || len(items) == 0 {
		return nil, nil
	}
	if _, single := starlark.AsString(items[0]); single {
		items = []starlark.Value{v}
	}
	out := make([]core.Coverage, 0, len(items))
	for _, it := range items {
		fields, ok := sequence(it)
		if !ok || len(fields) != 4 {
			return nil, core.Structuralf("coverage", "expected [species, a, m, e], got %s", it)
		}
		sp, ok := starlark.AsString(fields[0])
		if !ok {
			return nil, core.Structuralf("coverage", "species must be a string, got %s", fields[0].Type())
		}
		c := core.Coverage{Species: sp}
		var err error
		if c.A, err = toQuantity("coverage", fields[1]); err != nil {
			return nil, err
		}
		if c.M, err = toFloat("coverage", fields[2]); err != nil {
			return nil, err
		}
		if c.E, err = toQuantity("coverage", fields[3]); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// arrhenius returns the Arrhenius or stick builtin.
func arrhenius(typ core.RateType) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var (
			a, n, e  starlark.Value = starlark.Float(0), starlark.Float(0), starlark.Float(0)
			coverage starlark.Value = starlark.NewList(nil)
			rateType                = string(typ)
		)
		pairs := []any{"A?", &a, "n?", &n, "E?", &e, "coverage?", &coverage}
		if typ == core.RateDefault {
			pairs = append(pairs, "rate_type?", &rateType)
		}
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, pairs...); err != nil {
			return nil, err
		}
		k, err := arrheniusFrom(a, n, e, coverage, core.RateType(rateType))
		if err != nil {
			return nil, err
		}
		return newObject(b.Name(), k), nil
	}
}

func troe(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	p, err := falloffParams(b, args, kwargs, []string{"A", "T3", "T1", "T2"})
	if err != nil {
		return nil, err
	}
	if p[3] == unsetFalloffParam {
		p = p[:3]
	}
	return newFalloff(core.Troe, p)
}

func sri(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	p, err := falloffParams(b, args, kwargs, []string{"A", "B", "C", "D", "E"})
	if err != nil {
		return nil, err
	}
	if p[3] == unsetFalloffParam || p[4] == unsetFalloffParam {
		p = p[:3]
	}
	return newFalloff(core.SRI, p)
}

func lindemann(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return newFalloff(core.Lindemann, nil)
}

// falloffParams unpacks numeric parameters. The first three default to zero,
// the rest to unsetFalloffParam.
func falloffParams(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, names []string) ([]float64, error) {
	vals := make([]starlark.Value, len(names))
	pairs := make([]any, 0, 2*len(names))
	for i, name := range names {
		if i < 3 {
			vals[i] = starlark.Float(0)
		} else {
			vals[i] = starlark.Float(unsetFalloffParam)
		}
		pairs = append(pairs, name+"?", &vals[i])
	}
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, pairs...); err != nil {
		return nil, err
	}
	out := make([]float64, len(names))
	for i, v := range vals {
		f, err := toFloat(names[i], v)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func newFalloff(kind core.FalloffKind, params []float64) (starlark.Value, error) {
	f, err := mechanism.NewFalloff(kind, params)
	if err != nil {
		return nil, err
	}
	return newObject(string(kind), f), nil
}
