package net

import "github.com/FlavioCFOliveira/GoPerceptron/internal/activations"

// UnitState is a read-only copy of a unit.
type UnitState struct {
	Name        string
	Value       float64
	Bias        float64
	Error       float64
	Probability float64
	Activation  activations.Kind
	Input       bool
	Output      bool
}

// EdgeState is a read-only copy of an edge. From is empty for boundary edges
// and To is empty for sink edges.
type EdgeState struct {
	From   string
	To     string
	Weight float64
	Raw    float64
	HasRaw bool
}

// Snapshot is the state of a network at one point in time, for renderers.
type Snapshot struct {
	Network string
	Epochs  int
	Units   []UnitState
	Edges   []EdgeState
}

// Snapshot copies the current state of every unit and edge.
func (n *Network) Snapshot() Snapshot {
	n.refresh()
	s := Snapshot{
		Network: n.Name,
		Epochs:  n.epochs,
		Units:   make([]UnitState, len(n.units)),
		Edges:   make([]EdgeState, len(n.edges)),
	}
	for i, u := range n.units {
		s.Units[i] = UnitState{
			Name:        u.Name,
			Value:       u.Value,
			Bias:        u.Bias,
			Error:       u.Error,
			Probability: u.Probability,
			Activation:  u.Activation,
			Input:       n.isInput[i],
			Output:      n.isOutput[i],
		}
	}
	for i, e := range n.edges {
		es := EdgeState{Weight: e.Weight, Raw: e.raw, HasRaw: e.hasRaw}
		if e.upstream != NoUnit {
			es.From = n.units[e.upstream].Name
		}
		if e.downstream != NoUnit {
			es.To = n.units[e.downstream].Name
		}
		s.Edges[i] = es
	}
	return s
}
