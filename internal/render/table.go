// Package render turns network snapshots and training histories into text:
// tables, graphviz DOT drawings and ASCII curves.
package render

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func role(u net.UnitState) string {
	switch {
	case u.Input && u.Output:
		return "in/out"
	case u.Input:
		return "in"
	case u.Output:
		return "out"
	}
	return "hidden"
}

// Table writes a table of units followed by a table of edges.
func Table(w io.Writer, s net.Snapshot) {
	units := tablewriter.NewWriter(w)
	units.SetHeader([]string{"unit", "role", "activation", "value", "bias", "error", "probability"})
	for _, u := range s.Units {
		units.Append([]string{u.Name, role(u), u.Activation.String(), num(u.Value), num(u.Bias), num(u.Error), num(u.Probability)})
	}
	units.Render()

	edges := tablewriter.NewWriter(w)
	edges.SetHeader([]string{"from", "to", "weight", "raw"})
	for _, e := range s.Edges {
		from, to, raw := e.From, e.To, ""
		if from == "" {
			from = InputMarker
		}
		if to == "" {
			to = OutputMarker
		}
		if e.HasRaw {
			raw = num(e.Raw)
		}
		edges.Append([]string{from, to, num(e.Weight), raw})
	}
	edges.Render()
}
