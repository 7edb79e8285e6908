package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

const (
	// InputMarker stands for the outside world at the start of boundary
	// edges.
	InputMarker = "@in"
	// OutputMarker stands for the outside world at the end of sink edges.
	OutputMarker = "@out"
)

// Dot writes the snapshot as a graphviz digraph. Units are labelled with
// their value and bias, edges with their weight and, for boundary edges,
// the fed value.
func Dot(w io.Writer, title string, s net.Snapshot) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", strconv.Quote(title))
	fmt.Fprintf(bw, "  %s [label=\"in\", color=green];\n", strconv.Quote(InputMarker))
	fmt.Fprintf(bw, "  %s [label=\"out\", color=red];\n", strconv.Quote(OutputMarker))
	for _, u := range s.Units {
		label := fmt.Sprintf("%s : %s ~ %s", u.Name, num(u.Value), num(u.Bias))
		fmt.Fprintf(bw, "  %s [label=%s];\n", strconv.Quote(u.Name), strconv.Quote(label))
	}
	for _, e := range s.Edges {
		from, to := e.From, e.To
		if from == "" {
			from = InputMarker
		}
		if to == "" {
			to = OutputMarker
		}
		label := num(e.Weight)
		if e.HasRaw {
			label += " (" + num(e.Raw) + ")"
		}
		fmt.Fprintf(bw, "  %s -> %s [label=%s];\n", strconv.Quote(from), strconv.Quote(to), strconv.Quote(label))
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
