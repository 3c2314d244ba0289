package compiler

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ctmlc/internal/ctml"
	"github.com/leapstack-labs/ctmlc/pkg/core"
)

func (c *compiler) buildSpecies(parent *ctml.Node, s *core.Species) {
	parent.AddComment("    species " + s.Name + "    ")
	sn := parent.AddChild("species", "").Set("name", s.Name)

	var atoms strings.Builder
	for _, a := range s.Atoms {
		atoms.WriteString(a.Element + ":" + ctml.Count(a.Count) + " ")
	}
	sn.AddChild("atomArray", atoms.String())

	if s.Note != "" {
		sn.AddChild("note", s.Note)
	}
	if s.HasCharge {
		sn.AddChild("charge", ctml.Count(s.Charge))
	}
	if s.Size != 1.0 {
		sn.AddChild("size", ctml.Repr(s.Size))
	}

	t := sn.AddChild("thermo", "")
	for _, seg := range s.Thermo {
		c.buildThermo(t, seg)
	}

	if len(s.Transport) > 0 {
		tr := sn.AddChild("transport", "")
		for _, g := range s.Transport {
			buildGasTransport(tr, g)
		}
	}
}

// rangeAttrs sets Tmin, Tmax and P0 on a thermo segment node.
func (c *compiler) rangeAttrs(n *ctml.Node, tmin, tmax, p0 float64) {
	n.Set("Tmin", ctml.Repr(tmin)).
		Set("Tmax", ctml.Repr(tmax)).
		Set("P0", ctml.Repr(c.u.Reference(p0)))
}

func (c *compiler) buildThermo(t *ctml.Node, seg core.ThermoSegment) {
	switch s := seg.(type) {
	case *core.Polynomial:
		n := t.AddChild(string(s.Form), "")
		c.rangeAttrs(n, s.TMin, s.TMax, s.P0)
		n.AddChild("floatArray", polynomialArray(s)).
			Set("size", ctml.Int(len(s.Coeffs))).
			Set("name", "coeffs")

	case *core.Mu0Table:
		n := t.AddChild("Mu0", "")
		c.rangeAttrs(n, s.TMin, s.TMax, s.P0)
		addFloat(n, "H298", s.H298, "", c.u.MolarEnergy())
		n.AddChild("numPoints", ctml.Int(len(s.Points)))

		temps := make([]float64, len(s.Points))
		mus := make([]float64, len(s.Points))
		for i, p := range s.Points {
			temps[i], mus[i] = p.T, p.Mu0
		}
		n.AddChild("floatArray", rows(mus, 3)).Set("size", "numPoints").Set("name", "Mu0Values")
		n.AddChild("floatArray", rows(temps, 3)).Set("size", "numPoints").Set("name", "Mu0Temperatures")

	case *core.Adsorbate:
		n := t.AddChild("adsorbate", "")
		c.rangeAttrs(n, s.TMin, s.TMax, s.P0)
		addFloat(n, "binding_energy", s.BindingEnergy, "", c.u.MolarEnergy())
		var b strings.Builder
		for _, f := range s.Frequencies {
			b.WriteString(fmt.Sprintf(ctml.FmtArray, f) + ", ")
		}
		b.WriteString("\n")
		n.AddChild("floatArray", b.String()).
			Set("size", ctml.Int(len(s.Frequencies))).
			Set("name", "freqs")

	case *core.ConstCp:
		n := t.AddChild("const_cp", "")
		if s.TMin >= 0 {
			n.Set("Tmin", ctml.Repr(s.TMin))
		}
		if s.TMax >= 0 {
			n.Set("Tmax", ctml.Repr(s.TMax))
		}
		addFloat(n, "t0", s.T0, "", "K")
		addFloat(n, "h0", s.H0, "", c.u.MolarEnergy())
		addFloat(n, "s0", s.S0, "", c.u.MolarEntropy())
		addFloat(n, "cp0", s.Cp0, "", c.u.MolarEntropy())
	}
}

// polynomialArray lays out coefficients four to the first line; NASA9 puts
// four more on the second line and the last one on a third.
func polynomialArray(p *core.Polynomial) string {
	c := p.Coeffs
	var b strings.Builder
	for _, v := range c[:4] {
		b.WriteString(fmt.Sprintf(ctml.FmtArray, v) + ", ")
	}
	b.WriteString("\n")
	if p.Form == core.ThermoNASA9 {
		b.WriteString(ctml.JoinFloats(ctml.FmtArray, c[4:8]) + ",\n")
		b.WriteString(fmt.Sprintf(ctml.FmtArray, c[8]))
		return b.String()
	}
	b.WriteString(ctml.JoinFloats(ctml.FmtArray, c[4:7]))
	return b.String()
}

// rows formats values perLine to a line, each followed by ", ", except that a
// full line ends with a newline instead of its final separator.
func rows(vals []float64, perLine int) string {
	var b strings.Builder
	col := 0
	for _, v := range vals {
		b.WriteString(fmt.Sprintf(ctml.FmtArray, v))
		col++
		if col == perLine {
			b.WriteString("\n")
			col = 0
		} else {
			b.WriteString(", ")
		}
	}
	return b.String()
}

func buildGasTransport(tr *ctml.Node, g *core.GasTransport) {
	tr.Set("model", "gas_transport")
	tr.AddChild("string", g.Geometry).Set("title", "geometry")
	addFloat(tr, "LJ_welldepth", core.QU(g.WellDepth, "K"), ctml.FmtTransport, "")
	addFloat(tr, "LJ_diameter", core.QU(g.Diameter, "A"), ctml.FmtTransport, "")
	addFloat(tr, "dipoleMoment", core.QU(g.Dipole, "Debye"), ctml.FmtTransport, "")
	addFloat(tr, "polarizability", core.QU(g.Polar, "A3"), ctml.FmtTransport, "")
	addFloat(tr, "rotRelax", core.Q(g.RotRelax), ctml.FmtTransport, "")
}
