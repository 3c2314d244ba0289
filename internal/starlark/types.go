// Package starlark executes chemistry input files. An input is a Starlark
// program whose predeclared functions declare elements, species, phases and
// reactions into a registry.CompilationContext.
package starlark

import (
	"fmt"

	"github.com/leapstack-labs/ctmlc/pkg/core"
	"go.starlark.net/starlark"
)

// Object wraps a declaration returned by one builtin so that it can be passed
// to another, e.g. a NASA segment to species() or a lattice to lattice_solid().
type Object struct {
	typeName string
	value    any
}

var _ starlark.Value = (*Object)(nil)

func newObject(typeName string, v any) *Object {
	return &Object{typeName: typeName, value: v}
}

func (o *Object) String() string        { return o.typeName + "(...)" }
func (o *Object) Type() string          { return o.typeName }
func (o *Object) Freeze()               {}
func (o *Object) Truth() starlark.Bool  { return starlark.True }
func (o *Object) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", o.typeName) }

// Value returns the wrapped declaration.
func (o *Object) Value() any { return o.value }

// sequence returns the items of a list or tuple.
func sequence(v starlark.Value) ([]starlark.Value, bool) {
	switch s := v.(type) {
	case *starlark.List:
		out := make([]starlark.Value, s.Len())
		for i := range out {
			out[i] = s.Index(i)
		}
		return out, true
	case starlark.Tuple:
		return []starlark.Value(s), true
	}
	return nil, false
}

// isNone reports whether an optional argument was omitted or passed as None.
func isNone(v starlark.Value) bool {
	return v == nil || v == starlark.None
}

func toFloat(arg string, v starlark.Value) (float64, error) {
	f, ok := starlark.AsFloat(v)
	if !ok {
		return 0, core.Structuralf(arg, "expected a number, got %s", v.Type())
	}
	return f, nil
}

// toQuantity accepts a number or a (number, "units") pair.
func toQuantity(arg string, v starlark.Value) (core.Quantity, error) {
	if f, ok := starlark.AsFloat(v); ok {
		return core.Q(f), nil
	}
	if items, ok := sequence(v); ok && len(items) == 2 {
		f, okf := starlark.AsFloat(items[0])
		u, oku := starlark.AsString(items[1])
		if okf && oku {
			return core.QU(f, u), nil
		}
	}
	return core.Quantity{}, core.Structuralf(arg, "expected a number or a (value, units) pair, got %s", v)
}

// optQuantity is toQuantity for arguments that default to None.
func optQuantity(arg string, v starlark.Value) (*core.Quantity, error) {
	if isNone(v) {
		return nil, nil
	}
	q, err := toQuantity(arg, v)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// toStrings accepts a string or a list or tuple of strings.
func toStrings(arg string, v starlark.Value) ([]string, error) {
	if isNone(v) {
		return nil, nil
	}
	if s, ok := starlark.AsString(v); ok {
		return []string{s}, nil
	}
	items, ok := sequence(v)
	if !ok {
		return nil, core.Structuralf(arg, "expected a string or a list of strings, got %s", v.Type())
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := starlark.AsString(it)
		if !ok {
			return nil, core.Structuralf(arg, "expected a string, got %s", it.Type())
		}
		out = append(out, s)
	}
	return out, nil
}

func toFloats(arg string, v starlark.Value) ([]float64, error) {
	items, ok := sequence(v)
	if !ok {
		return nil, core.Structuralf(arg, "expected a list of numbers, got %s", v.Type())
	}
	out := make([]float64, len(items))
	for i, it := range items {
		f, err := toFloat(arg, it)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func toMatrix(arg string, v starlark.Value) ([][]float64, error) {
	rows, ok := sequence(v)
	if !ok {
		return nil, core.Structuralf(arg, "expected a list of lists of numbers, got %s", v.Type())
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		vals, err := toFloats(arg, row)
		if err != nil {
			return nil, err
		}
		out[i] = vals
	}
	return out, nil
}

// toRange unpacks a (Tmin, Tmax) pair.
func toRange(v starlark.Value) (float64, float64, error) {
	vals, err := toFloats("Trange", v)
	if err != nil {
		return 0, 0, err
	}
	if len(vals) != 2 {
		return 0, 0, core.Structuralf("Trange", "expected (Tmin, Tmax), got %d values", len(vals))
	}
	return vals[0], vals[1], nil
}

// objects accepts a single Object or a list or tuple of them, each wrapping
// a T.
func objects[T any](arg string, v starlark.Value) ([]T, error) {
	if isNone(v) {
		return nil, nil
	}
	items, ok := sequence(v)
	if !ok {
		items = []starlark.Value{v}
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		o, ok := it.(*Object)
		if !ok {
			return nil, core.Structuralf(arg, "unexpected %s", it.Type())
		}
		t, ok := o.value.(T)
		if !ok {
			return nil, core.Structuralf(arg, "unexpected %s", o.typeName)
		}
		out = append(out, t)
	}
	return out, nil
}

// object is objects for arguments that take exactly one value.
func object[T any](arg string, v starlark.Value) (T, error) {
	var zero T
	o, ok := v.(*Object)
	if !ok {
		return zero, core.Structuralf(arg, "unexpected %s", v.Type())
	}
	t, ok := o.value.(T)
	if !ok {
		return zero, core.Structuralf(arg, "unexpected %s", o.typeName)
	}
	return t, nil
}
