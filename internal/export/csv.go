// Package export writes the species table side channel: one CSV row per
// species with its composition over every element used by any species,
// followed by its polynomial thermo coefficients.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/ctml"
	"github.com/leapstack-labs/ctmlc/internal/fsutil"
	"github.com/leapstack-labs/ctmlc/internal/registry"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

// FormatCSV is the only supported export format.
const FormatCSV = "CSV"

// SpeciesRows returns the export rows in declaration order. Element columns
// follow the order in which species first used each element.
func SpeciesRows(cc *registry.CompilationContext) [][]string {
	elements := cc.ElementOrder()
	species := cc.AllSpecies()
	rows := make([][]string, 0, len(species))
	for _, s := range species {
		row := make([]string, 0, 1+len(elements))
		row = append(row, s.Name)
		for _, e := range elements {
			if n, ok := s.Atoms.Count(e); ok {
				row = append(row, ctml.Repr(n))
			} else {
				row = append(row, "0")
			}
		}
		for _, seg := range s.Thermo {
			row = append(row, thermoFields(seg)...)
		}
		rows = append(rows, row)
	}
	return rows
}

// thermoFields returns the columns for one segment. Only NASA and NASA9
// segments are exported.
func thermoFields(seg core.ThermoSegment) []string {
	p, ok := seg.(*core.Polynomial)
	if !ok || (p.Form != core.ThermoNASA && p.Form != core.ThermoNASA9) {
		return nil
	}
	out := []string{string(p.Form), ctml.Repr(p.TMin), ctml.Repr(p.TMax)}
	for _, c := range p.Coeffs {
		out = append(out, strings.TrimSpace(fmt.Sprintf(ctml.FmtArray, c)))
	}
	return out
}

// WriteSpecies writes the species rows of cc as CSV.
func WriteSpecies(w io.Writer, cc *registry.CompilationContext) error {
	cw := csv.NewWriter(w)
	// rows vary in length with the number of thermo segments
	if err := cw.WriteAll(SpeciesRows(cc)); err != nil {
		return fmt.Errorf("writing species table: %w", err)
	}
	return nil
}

// WriteSpeciesFile writes the species table to path, replacing it only when
// the write succeeds.
func WriteSpeciesFile(path, format string, cc *registry.CompilationContext) error {
	if format != "" && format != FormatCSV {
		return core.Structuralf(path, "unsupported species export format %q", format)
	}
	return fsutil.WriteFileAtomic(path, func(w io.Writer) error {
		return WriteSpecies(w, cc)
	})
}
