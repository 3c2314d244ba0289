// Package stoich parses reaction equations, reaction-order overrides and
// atomic composition strings.
package stoich

import (
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/ctmlc/pkg/core"
)

// Delimiters in priority order. The first one found splits the equation.
var delimiters = []struct {
	token      string
	reversible bool
}{
	{"<=>", true},
	{"=>", false},
	{"=", true},
}

// Equation is a parsed reaction equation.
type Equation struct {
	Reactants  *core.StoichMap
	Products   *core.StoichMap
	Reversible bool
}

// ParseEquation splits an equation at its arrow and parses both sides.
func ParseEquation(equation string) (*Equation, error) {
	for _, d := range delimiters {
		if !strings.Contains(equation, d.token) {
			continue
		}
		sides := strings.Split(equation, d.token)
		if len(sides) != 2 {
			return nil, core.Structuralf(equation, "equation contains more than one %q", d.token)
		}
		r, err := ParseSide(sides[0])
		if err != nil {
			return nil, err
		}
		p, err := ParseSide(sides[1])
		if err != nil {
			return nil, err
		}
		return &Equation{Reactants: r, Products: p, Reversible: d.reversible}, nil
	}
	return nil, core.Structuralf(equation, "no reaction delimiter (<=>, => or =) found")
}

// Number is the result of attempting to read a token as a number.
type Number struct {
	Value float64
	OK    bool
}

// TryNumber reads tok as a finite decimal number.
func TryNumber(tok string) Number {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return Number{}
	}
	return Number{Value: v, OK: true}
}

// ParseSide reduces one side of an equation to species coefficients.
// Only space-delimited plus signs separate species, so names such as "Ar3+"
// survive. Repeated species accumulate.
func ParseSide(side string) (*core.StoichMap, error) {
	m := core.NewStoichMap()
	n := 1.0
	for _, tok := range strings.Fields(strings.ReplaceAll(side, " + ", " ")) {
		num := TryNumber(tok)
		if num.OK {
			if num.Value < 0 {
				return nil, core.Structuralf(side, "negative stoichiometric coefficient")
			}
			n = num.Value
			continue
		}
		m.Add(tok, n)
		n = 1.0
	}
	return m, nil
}

// ParsePairs parses whitespace-separated "name:value" pairs in order.
func ParsePairs(s string) (*core.StoichMap, error) {
	m := core.NewStoichMap()
	for _, tok := range strings.Fields(s) {
		key, val, ok := strings.Cut(tok, ":")
		if !ok || key == "" {
			return nil, core.Structuralf(s, "malformed pair %q, expected name:value", tok)
		}
		num := TryNumber(val)
		if !num.OK {
			return nil, core.Structuralf(s, "malformed value in pair %q", tok)
		}
		m.Set(key, num.Value)
	}
	return m, nil
}

// ParseOrders returns the reaction orders of every reactant: its
// stoichiometric coefficient unless spec overrides it. An override naming a
// species that is not a reactant is an error.
func ParseOrders(spec string, reactants *core.StoichMap) (*core.StoichMap, error) {
	orders := reactants.Clone()
	if strings.TrimSpace(spec) == "" {
		return orders, nil
	}
	overrides, err := ParsePairs(spec)
	if err != nil {
		return nil, err
	}
	for _, name := range overrides.Names() {
		if !reactants.Has(name) {
			return nil, core.Structuralf(name, "order specified for non-reactant")
		}
		v, _ := overrides.Get(name)
		orders.Set(name, v)
	}
	return orders, nil
}

// ParseComposition parses an "E1:n1 E2:n2" composition. Commas act as
// separators.
func ParseComposition(atoms string) (core.Composition, error) {
	pairs, err := ParsePairs(strings.ReplaceAll(atoms, ",", " "))
	if err != nil {
		return nil, err
	}
	comp := make(core.Composition, 0, pairs.Len())
	for _, name := range pairs.Names() {
		v, _ := pairs.Get(name)
		comp = append(comp, core.Atom{Element: name, Count: v})
	}
	return comp, nil
}
