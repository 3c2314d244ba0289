package ctml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Repr formats a float as its shortest round-trip decimal form. Magnitudes
// with a decimal exponent in [-4, 16) are written in positional notation with
// at least one fractional digit ("1.0", "0.0001"); others use an exponent of at
// least two digits ("1e+16", "1.5e-07").
func Repr(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// Count formats a composition count or charge: integral values without a
// fractional part, others as Repr.
func Count(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return Repr(v)
}

// Int formats an integer attribute value.
func Int(n int) string {
	return strconv.Itoa(n)
}

// Format applies a printf verb to v, or Repr when format is empty.
func Format(format string, v float64) string {
	if format == "" {
		return Repr(v)
	}
	return fmt.Sprintf(format, v)
}

// Printf-style formats used in documents.
const (
	FmtArray       = "%17.9E"
	FmtPreExp      = "%14.6E"
	FmtFixed       = "%f"
	FmtTransport   = "%8.3f"
	FmtFalloff     = "%.6g"
	FmtChebyshev   = "%12.5e"
	arraySeparator = ", "
)

// JoinFloats formats each value with format and joins them with ", ".
func JoinFloats(format string, vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf(format, v)
	}
	return strings.Join(parts, arraySeparator)
}
