package core

import "fmt"

// baseError carries the construct a diagnostic refers to.
type baseError struct {
	Construct string // equation text, species or phase name; may be empty
	Msg       string
}

func (e baseError) format(kind string) string {
	if e.Construct == "" {
		return kind + ": " + e.Msg
	}
	return fmt.Sprintf("%s: %s: %s", kind, e.Construct, e.Msg)
}

// StructuralError reports malformed input: bad equation syntax, wrong
// coefficient arity or a reference to an entity that does not exist.
type StructuralError struct {
	baseError
}

func (e *StructuralError) Error() string { return e.format("structural error") }

// ValidationError reports well-formed input that violates a semantic rule:
// duplicate names, charge inconsistency or cardinality violations.
type ValidationError struct {
	baseError
}

func (e *ValidationError) Error() string { return e.format("validation error") }

// DimensionalError reports a failure of rate-coefficient unit derivation.
type DimensionalError struct {
	baseError
}

func (e *DimensionalError) Error() string { return e.format("dimensional error") }

// Structuralf returns a StructuralError about construct.
func Structuralf(construct, format string, args ...any) *StructuralError {
	return &StructuralError{baseError{Construct: construct, Msg: fmt.Sprintf(format, args...)}}
}

// Validationf returns a ValidationError about construct.
func Validationf(construct, format string, args ...any) *ValidationError {
	return &ValidationError{baseError{Construct: construct, Msg: fmt.Sprintf(format, args...)}}
}

// Dimensionalf returns a DimensionalError about construct.
func Dimensionalf(construct, format string, args ...any) *DimensionalError {
	return &DimensionalError{baseError{Construct: construct, Msg: fmt.Sprintf(format, args...)}}
}
