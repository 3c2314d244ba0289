// Package registry provides the compilation context: the ordered collections
// of declared elements, species, phases and reactions, plus the active unit
// system and document-level directives of one input.
//
// Declaration registers entities in input order. Emission reads the
// completed context, so lookups made while compiling a reaction see every
// phase in the input, including phases declared after the reaction.
package registry

import (
	"sync"

	"github.com/leapstack-labs/ctmlc/internal/units"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

// DefaultDataset is the dataset name used when an input sets none.
const DefaultDataset = "noname"

// Validation holds the attributes of the document validation node.
type Validation struct {
	Species   string
	Reactions string
}

// Export is a request for the species CSV side channel.
type Export struct {
	File   string
	Format string
}

// CompilationContext holds everything declared by a single input.
type CompilationContext struct {
	mu sync.RWMutex

	Units    *units.Context
	Dataset  string
	Validate Validation
	Export   *Export

	elements  []*core.Element
	byElement map[string]*core.Element

	species   []*core.Species
	bySpecies map[string]*core.Species

	// elementOrder is the first-seen element order across species compositions.
	elementOrder []string
	seenElement  map[string]struct{}

	phases  []*core.Phase
	byPhase map[string]*core.Phase

	reactions []*core.Reaction
}

// New creates an empty context with default units and validation "yes".
func New() *CompilationContext {
	return &CompilationContext{
		Units:       units.New(),
		Dataset:     DefaultDataset,
		Validate:    Validation{Species: "yes", Reactions: "yes"},
		byElement:   make(map[string]*core.Element),
		bySpecies:   make(map[string]*core.Species),
		seenElement: make(map[string]struct{}),
		byPhase:     make(map[string]*core.Phase),
	}
}

// RegisterElement adds an element. Element symbols are unique.
func (c *CompilationContext) RegisterElement(e *core.Element) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byElement[e.Symbol]; ok {
		return core.Validationf(e.Symbol, "element %s multiply defined", e.Symbol)
	}
	c.byElement[e.Symbol] = e
	c.elements = append(c.elements, e)
	return nil
}

// RegisterSpecies adds a species. Species names are unique.
func (c *CompilationContext) RegisterSpecies(s *core.Species) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.bySpecies[s.Name]; ok {
		return core.Validationf(s.Name, "species %s multiply defined", s.Name)
	}
	c.bySpecies[s.Name] = s
	c.species = append(c.species, s)

	for _, a := range s.Atoms {
		if _, ok := c.seenElement[a.Element]; !ok {
			c.seenElement[a.Element] = struct{}{}
			c.elementOrder = append(c.elementOrder, a.Element)
		}
	}
	return nil
}

// RegisterPhase adds a phase. Phase names are unique.
func (c *CompilationContext) RegisterPhase(p *core.Phase) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byPhase[p.Name]; ok {
		return core.Validationf(p.Name, "phase %s multiply defined", p.Name)
	}
	c.byPhase[p.Name] = p
	c.phases = append(c.phases, p)
	return nil
}

// RegisterReaction adds a reaction and assigns its 1-based number.
func (c *CompilationContext) RegisterReaction(r *core.Reaction) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reactions = append(c.reactions, r)
	r.Number = len(c.reactions)
	return r.Number
}

// NextReactionNumber returns the number the next reaction will receive.
func (c *CompilationContext) NextReactionNumber() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.reactions) + 1
}

// Element returns the element with the given symbol.
func (c *CompilationContext) Element(symbol string) (*core.Element, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byElement[symbol]
	return e, ok
}

// Species returns the species with the given name.
func (c *CompilationContext) Species(name string) (*core.Species, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.bySpecies[name]
	return s, ok
}

// Phase returns the phase with the given name.
func (c *CompilationContext) Phase(name string) (*core.Phase, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byPhase[name]
	return p, ok
}

// PhaseOf returns the first phase, in declaration order, that contains the
// species.
func (c *CompilationContext) PhaseOf(species string) (*core.Phase, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.phases {
		if p.HasSpecies(species) {
			return p, true
		}
	}
	return nil, false
}

// Elements returns declared elements in order.
func (c *CompilationContext) Elements() []*core.Element {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*core.Element(nil), c.elements...)
}

// AllSpecies returns declared species in order.
func (c *CompilationContext) AllSpecies() []*core.Species {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*core.Species(nil), c.species...)
}

// Phases returns declared phases in order.
func (c *CompilationContext) Phases() []*core.Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*core.Phase(nil), c.phases...)
}

// Reactions returns declared reactions in order.
func (c *CompilationContext) Reactions() []*core.Reaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*core.Reaction(nil), c.reactions...)
}

// ElementOrder returns element symbols in the order species first used them.
func (c *CompilationContext) ElementOrder() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.elementOrder...)
}

// Counts summarizes the context for logging.
func (c *CompilationContext) Counts() (elements, species, phases, reactions int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.elements), len(c.species), len(c.phases), len(c.reactions)
}
