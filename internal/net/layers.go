package net

import "gonum.org/v1/gonum/mat"

// Layer is one layer of a strictly layered network in export form.
type Layer struct {
	// Units of the layer in creation order.
	Units []UnitID
	// Weights holds one row per unit of this layer and one column per unit
	// of the previous layer. Missing edges are zero. Nil for the input layer.
	Weights *mat.Dense
	// Bias of each unit, in the network's own convention: the activation
	// compares sum - bias.
	Bias []float64
}

// Layers groups the units by layer. Layer 0 holds the inputs. Networks that
// are not strictly layered fail with ErrNotLayered or ErrCycle.
func (n *Network) Layers() ([]Layer, error) {
	level, err := n.levels()
	if err != nil {
		return nil, err
	}

	depth := 0
	for _, l := range level {
		if l+1 > depth {
			depth = l + 1
		}
	}
	layers := make([]Layer, depth)
	column := make([]int, len(n.units))
	for i, l := range level {
		column[i] = len(layers[l].Units)
		layers[l].Units = append(layers[l].Units, UnitID(i))
		layers[l].Bias = append(layers[l].Bias, n.units[i].Bias)
	}

	for l := 1; l < depth; l++ {
		w := mat.NewDense(len(layers[l].Units), len(layers[l-1].Units), nil)
		for r, id := range layers[l].Units {
			for _, eid := range n.units[id].incoming {
				e := n.edges[eid]
				c := column[e.upstream]
				w.Set(r, c, w.At(r, c)+e.Weight)
			}
		}
		layers[l].Weights = w
	}
	return layers, nil
}
