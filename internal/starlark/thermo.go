package starlark

import (
	"github.com/leapstack-labs/ctmlc/internal/mechanism"
	"github.com/leapstack-labs/ctmlc/pkg/core"
	"go.starlark.net/starlark"
)

// polynomial returns the builtin for a NASA, NASA9 or Shomate segment.
func polynomial(form core.ThermoKind) builtinFunc {
	return func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var (
			trange starlark.Value = starlark.Tuple{starlark.Float(0), starlark.Float(0)}
			coeffs starlark.Value = starlark.NewList(nil)
			p0     starlark.Value = starlark.Float(-1)
		)
		if err := starlark.UnpackArgs(b.Name(), args, kwargs,
			"Trange?", &trange,
			"coeffs?", &coeffs,
			"p0?", &p0,
		); err != nil {
			return nil, err
		}
		tmin, tmax, err := toRange(trange)
		if err != nil {
			return nil, err
		}
		c, err := toFloats("coeffs", coeffs)
		if err != nil {
			return nil, err
		}
		p, err := toFloat("p0", p0)
		if err != nil {
			return nil, err
		}
		seg, err := mechanism.NewPolynomial(form, tmin, tmax, c, p)
		if err != nil {
			return nil, err
		}
		return newObject(b.Name(), core.ThermoSegment(seg)), nil
	}
}

func constCp(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		t0         starlark.Value = starlark.Float(298.15)
		cp0, h0    starlark.Value = starlark.Float(0), starlark.Float(0)
		s0         starlark.Value = starlark.Float(0)
		tmax, tmin starlark.Value = starlark.Float(5000), starlark.Float(100)
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"t0?", &t0,
		"cp0?", &cp0,
		"h0?", &h0,
		"s0?", &s0,
		"tmax?", &tmax,
		"tmin?", &tmin,
	); err != nil {
		return nil, err
	}
	hi, err := toFloat("tmax", tmax)
	if err != nil {
		return nil, err
	}
	lo, err := toFloat("tmin", tmin)
	if err != nil {
		return nil, err
	}
	seg := &core.ConstCp{TMin: lo, TMax: hi}
	for _, f := range []struct {
		arg string
		v   starlark.Value
		dst *core.Quantity
	}{
		{"t0", t0, &seg.T0},
		{"cp0", cp0, &seg.Cp0},
		{"h0", h0, &seg.H0},
		{"s0", s0, &seg.S0},
	} {
		q, err := toQuantity(f.arg, f.v)
		if err != nil {
			return nil, err
		}
		*f.dst = q
	}
	return newObject(b.Name(), core.ThermoSegment(seg)), nil
}

func mu0Table(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		trange starlark.Value = starlark.Tuple{starlark.Float(0), starlark.Float(0)}
		h298   starlark.Value = starlark.Float(0)
		mu0    starlark.Value
		p0     starlark.Value = starlark.Float(-1)
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"Trange?", &trange,
		"h298?", &h298,
		"mu0?", &mu0,
		"p0?", &p0,
	); err != nil {
		return nil, err
	}
	tmin, tmax, err := toRange(trange)
	if err != nil {
		return nil, err
	}
	h, err := toQuantity("h298", h298)
	if err != nil {
		return nil, err
	}
	p, err := toFloat("p0", p0)
	if err != nil {
		return nil, err
	}

	seg := &core.Mu0Table{TMin: tmin, TMax: tmax, P0: p, H298: h}
	if !isNone(mu0) {
		rows, err := toMatrix("mu0", mu0)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if len(row) != 2 {
				return nil, core.Structuralf("mu0", "expected (T, mu0) pairs, got %d values", len(row))
			}
			seg.Points = append(seg.Points, core.Mu0Point{T: row[0], Mu0: row[1]})
		}
	}
	return newObject(b.Name(), core.ThermoSegment(seg)), nil
}

func adsorbate(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		trange starlark.Value = starlark.Tuple{starlark.Float(0), starlark.Float(0)}
		be     starlark.Value = starlark.Float(0)
		freqs  starlark.Value = starlark.NewList(nil)
		p0     starlark.Value = starlark.Float(-1)
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"Trange?", &trange,
		"binding_energy?", &be,
		"frequencies?", &freqs,
		"p0?", &p0,
	); err != nil {
		return nil, err
	}
	tmin, tmax, err := toRange(trange)
	if err != nil {
		return nil, err
	}
	e, err := toQuantity("binding_energy", be)
	if err != nil {
		return nil, err
	}
	f, err := toFloats("frequencies", freqs)
	if err != nil {
		return nil, err
	}
	p, err := toFloat("p0", p0)
	if err != nil {
		return nil, err
	}
	seg := &core.Adsorbate{TMin: tmin, TMax: tmax, P0: p, BindingEnergy: e, Frequencies: f}
	return newObject(b.Name(), core.ThermoSegment(seg)), nil
}

func gasTransport(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	g := &core.GasTransport{Geometry: "nonlin"}
	var diam, well, dipole, polar, rot starlark.Value = starlark.Float(0), starlark.Float(0), starlark.Float(0), starlark.Float(0), starlark.Float(0)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"geom?", &g.Geometry,
		"diam?", &diam,
		"well_depth?", &well,
		"dipole?", &dipole,
		"polar?", &polar,
		"rot_relax?", &rot,
	); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		arg string
		v   starlark.Value
		dst *float64
	}{
		{"diam", diam, &g.Diameter},
		{"well_depth", well, &g.WellDepth},
		{"dipole", dipole, &g.Dipole},
		{"polar", polar, &g.Polar},
		{"rot_relax", rot, &g.RotRelax},
	} {
		v, err := toFloat(f.arg, f.v)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return newObject(b.Name(), g), nil
}
