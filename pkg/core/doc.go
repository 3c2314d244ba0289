// Package core defines the shared language of the ctmlc compiler.
//
// This package contains:
//   - Declared entities (Element, Species, Phase, Reaction)
//   - Thermodynamic and transport parameterizations
//   - Rate expressions (Arrhenius, falloff functions, PLOG and Chebyshev data)
//   - Quantities carrying an optional explicit unit string
//   - The compile error taxonomy (StructuralError, ValidationError, DimensionalError)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
