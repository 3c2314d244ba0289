// Package compiler emits the CTML document for a fully declared compilation
// context.
//
// Emission is the second of the two compilation phases. It walks the context
// in declaration order, converts every number through the unit system active
// at emission time and performs the dimensional analysis that turns each
// reaction's pre-exponential factor into internal m/kmol/s units.
package compiler

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/ctmlc/internal/ctml"
	"github.com/leapstack-labs/ctmlc/internal/registry"
	"github.com/leapstack-labs/ctmlc/internal/units"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

// Options configures a compilation.
type Options struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// ReactionSummary describes the derived properties of one emitted reaction.
type ReactionSummary struct {
	ID       string
	Equation string
	Kind     core.ReactionKind

	// MDim and LDim are the molar and length dimensions after the
	// kind-specific correction, as used for the first rate expression.
	MDim float64
	LDim float64

	UnitFactor     float64
	RateUnits      string
	GoverningPhase string
	GasSpecies     []string
}

// Result is the outcome of a successful compilation.
type Result struct {
	Document  *ctml.Node
	Reactions []ReactionSummary
}

// compiler carries per-call state through emission.
type compiler struct {
	cc     *registry.CompilationContext
	u      *units.Context
	logger *slog.Logger
}

// Compile emits the document for cc. It fails on the first error and returns
// no partial document.
func Compile(cc *registry.CompilationContext, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &compiler{cc: cc, u: cc.Units, logger: logger}

	ne, ns, np, nr := cc.Counts()
	logger.Debug("compiling", "dataset", cc.Dataset, "elements", ne, "species", ns, "phases", np, "reactions", nr)

	root := ctml.NewNode("ctml", "")
	root.AddChild("validate", "").
		Set("species", cc.Validate.Species).
		Set("reactions", cc.Validate.Reactions)

	if elements := cc.Elements(); len(elements) > 0 {
		ed := root.AddChild("elementData", "")
		for _, e := range elements {
			ed.AddChild("element", "").
				Set("name", e.Symbol).
				Set("atomicWt", ctml.Repr(e.AtomicMass)).
				Set("atomicNumber", ctml.Int(e.AtomicNumber))
		}
	}

	logger.Debug("compiling phases", "count", np)
	for _, p := range cc.Phases() {
		c.buildPhase(root, p)
	}

	logger.Debug("compiling species", "count", ns)
	root.AddComment("     species definitions     ")
	sd := root.AddChild("speciesData", "").Set("id", "species_data")
	for _, s := range cc.AllSpecies() {
		c.buildSpecies(sd, s)
	}

	logger.Debug("compiling reactions", "count", nr)
	rd := root.AddChild("reactionData", "").Set("id", "reaction_data")
	summaries := make([]ReactionSummary, 0, nr)
	for _, r := range cc.Reactions() {
		sum, err := c.buildReaction(rd, r)
		if err != nil {
			return nil, fmt.Errorf("reaction %s: %w", ReactionID(r), err)
		}
		summaries = append(summaries, *sum)
	}

	return &Result{Document: root, Reactions: summaries}, nil
}

// addFloat appends a numeric child. A quantity with its own units keeps them;
// a bare number gets defUnits when non-empty.
func addFloat(parent *ctml.Node, name string, q core.Quantity, format, defUnits string) *ctml.Node {
	n := parent.AddChild(name, ctml.Format(format, q.Value))
	switch {
	case q.HasUnits():
		n.Set("units", q.Units)
	case defUnits != "":
		n.Set("units", defUnits)
	}
	return n
}
