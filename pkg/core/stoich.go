package core

import "strings"

// StoichMap is an insertion-ordered mapping of species name to coefficient.
// It is used for reactant and product multisets and for reaction orders.
type StoichMap struct {
	names []string
	coef  map[string]float64
}

// NewStoichMap creates an empty map.
func NewStoichMap() *StoichMap {
	return &StoichMap{coef: make(map[string]float64)}
}

// Add increments the coefficient of name by n, appending it on first sight.
func (m *StoichMap) Add(name string, n float64) {
	if _, ok := m.coef[name]; !ok {
		m.names = append(m.names, name)
	}
	m.coef[name] += n
}

// Set overwrites the coefficient of name, appending it on first sight.
func (m *StoichMap) Set(name string, n float64) {
	if _, ok := m.coef[name]; !ok {
		m.names = append(m.names, name)
	}
	m.coef[name] = n
}

// Get returns the coefficient of name and whether it is present.
func (m *StoichMap) Get(name string) (float64, bool) {
	v, ok := m.coef[name]
	return v, ok
}

// Has reports whether name is present.
func (m *StoichMap) Has(name string) bool {
	_, ok := m.coef[name]
	return ok
}

// Delete removes name if present.
func (m *StoichMap) Delete(name string) {
	if _, ok := m.coef[name]; !ok {
		return
	}
	delete(m.coef, name)
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i], m.names[i+1:]...)
			break
		}
	}
}

// Names returns species names in first-seen order.
func (m *StoichMap) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Len returns the number of distinct species.
func (m *StoichMap) Len() int {
	return len(m.names)
}

// Clone returns an independent copy.
func (m *StoichMap) Clone() *StoichMap {
	c := NewStoichMap()
	for _, n := range m.names {
		c.Set(n, m.coef[n])
	}
	return c
}

// ToMap returns the coefficients as a plain map.
func (m *StoichMap) ToMap() map[string]float64 {
	out := make(map[string]float64, len(m.coef))
	for k, v := range m.coef {
		out[k] = v
	}
	return out
}

// String renders the map as "A:1 B:2" using the supplied number formatter.
func (m *StoichMap) String(format func(float64) string) string {
	parts := make([]string, 0, len(m.names))
	for _, n := range m.names {
		parts = append(parts, n+":"+format(m.coef[n]))
	}
	return strings.Join(parts, " ")
}
