package net

import "github.com/pkg/errors"

// Validate checks that the network is acyclic and strictly layered: every
// non-input unit is reachable from an input, inputs have no internal
// incoming edges, and every internal edge joins a layer to the next one.
func (n *Network) Validate() error {
	_, err := n.levels()
	return err
}

// levels returns the layer index of every unit, measured as the longest path
// from an input.
func (n *Network) levels() ([]int, error) {
	n.refresh()

	indegree := make([]int, len(n.units))
	for _, e := range n.edges {
		if e.upstream != NoUnit && e.downstream != NoUnit {
			indegree[e.downstream]++
		}
	}

	level := make([]int, len(n.units))
	order := make([]UnitID, 0, len(n.units))
	for i, d := range indegree {
		if d == 0 {
			order = append(order, UnitID(i))
		}
	}
	for i := 0; i < len(order); i++ {
		u := n.units[order[i]]
		for _, eid := range u.outgoing {
			down := n.edges[eid].downstream
			if down == NoUnit {
				continue
			}
			if l := level[order[i]] + 1; l > level[down] {
				level[down] = l
			}
			indegree[down]--
			if indegree[down] == 0 {
				order = append(order, down)
			}
		}
	}
	if len(order) != len(n.units) {
		for i, d := range indegree {
			if d > 0 {
				return nil, errors.Wrapf(ErrCycle, "through unit %q", n.units[i].Name)
			}
		}
	}

	for i, u := range n.units {
		if n.isInput[i] && level[i] != 0 {
			return nil, errors.Wrapf(ErrNotLayered, "input unit %q has internal incoming edges", u.Name)
		}
		if !n.isInput[i] && level[i] == 0 {
			return nil, errors.Wrapf(ErrNotLayered, "unit %q is not reachable from any input", u.Name)
		}
	}
	for _, e := range n.edges {
		if e.upstream == NoUnit || e.downstream == NoUnit {
			continue
		}
		if level[e.downstream] != level[e.upstream]+1 {
			return nil, errors.Wrapf(ErrNotLayered, "edge %q -> %q skips a layer",
				n.units[e.upstream].Name, n.units[e.downstream].Name)
		}
	}
	return level, nil
}
