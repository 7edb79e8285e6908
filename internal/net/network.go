// Package net provides the graph network: units and edges held in an arena,
// forward propagation, classification, backward updates and training.
package net

import (
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
)

// Network owns its units and edges. Units and edges are addressed by the
// handles returned when they were added; insertion order is significant and
// inputs must be added before the units they feed.
//
// A Network is not safe for concurrent use.
type Network struct {
	Name string

	units  []*Unit
	edges  []*Edge
	byName map[string]UnitID

	// Derived from the edges, rebuilt lazily after a topology change.
	dirty    bool
	inputs   []UnitID
	outputs  []UnitID
	isInput  []bool
	isOutput []bool

	queue *queue
	// Scratch buffer of output values for softmax classification.
	values []float64

	epochs int
	draws  int
}

// New creates an empty network.
func New(name string) *Network {
	return &Network{
		Name:   name,
		byName: make(map[string]UnitID),
		queue:  newQueue(),
	}
}

// AddUnit appends a unit and returns its handle.
func (n *Network) AddUnit(name string, kind activations.Kind, bias float64) (UnitID, error) {
	if _, ok := n.byName[name]; ok {
		return NoUnit, errors.Wrapf(ErrDuplicateName, "%q", name)
	}
	id := UnitID(len(n.units))
	n.units = append(n.units, &Unit{Name: name, Bias: bias, Activation: kind})
	n.byName[name] = id
	n.dirty = true
	return id, nil
}

// AddEdge appends an edge from upstream to downstream. Exactly one of raw and
// upstream must be present; raw is copied.
func (n *Network) AddEdge(upstream, downstream UnitID, raw *float64, weight float64) (EdgeID, error) {
	if (raw != nil) == (upstream != NoUnit) {
		return -1, errors.Wrapf(ErrEdgeInvariant, "upstream %d, raw present %t", upstream, raw != nil)
	}
	if upstream != NoUnit && !n.valid(upstream) {
		return -1, errors.Wrapf(ErrUnknownUnit, "upstream %d", upstream)
	}
	if downstream != NoUnit && !n.valid(downstream) {
		return -1, errors.Wrapf(ErrUnknownUnit, "downstream %d", downstream)
	}

	id := EdgeID(len(n.edges))
	e := &Edge{Weight: weight, upstream: upstream, downstream: downstream}
	if raw != nil {
		e.raw, e.hasRaw = *raw, true
	}
	n.edges = append(n.edges, e)
	if upstream != NoUnit {
		u := n.units[upstream]
		u.outgoing = append(u.outgoing, id)
	}
	if downstream != NoUnit {
		d := n.units[downstream]
		d.incoming = append(d.incoming, id)
	}
	n.dirty = true
	return id, nil
}

// AddInput adds a boundary edge feeding unit, which makes it an input.
func (n *Network) AddInput(unit UnitID, weight float64) (EdgeID, error) {
	var raw float64
	return n.AddEdge(NoUnit, unit, &raw, weight)
}

// Connect adds an internal edge between two units.
func (n *Network) Connect(from, to UnitID, weight float64) (EdgeID, error) {
	if from == NoUnit || to == NoUnit {
		return -1, errors.Wrapf(ErrUnknownUnit, "connect %d -> %d", from, to)
	}
	return n.AddEdge(from, to, nil, weight)
}

// MarkOutput adds a sink edge leaving unit, which makes it an output.
func (n *Network) MarkOutput(unit UnitID) (EdgeID, error) {
	if unit == NoUnit {
		return -1, errors.Wrap(ErrUnknownUnit, "output")
	}
	return n.AddEdge(unit, NoUnit, nil, 1)
}

func (n *Network) valid(id UnitID) bool {
	return id >= 0 && int(id) < len(n.units)
}

// Unit returns the unit with the given handle, or nil.
func (n *Network) Unit(id UnitID) *Unit {
	if !n.valid(id) {
		return nil
	}
	return n.units[id]
}

// UnitByName looks a unit up by name.
func (n *Network) UnitByName(name string) (UnitID, bool) {
	id, ok := n.byName[name]
	return id, ok
}

// Units returns the number of units.
func (n *Network) Units() int { return len(n.units) }

// Edges returns the number of edges.
func (n *Network) Edges() int { return len(n.edges) }

// Edge returns the edge with the given handle, or nil.
func (n *Network) Edge(id EdgeID) *Edge {
	if id < 0 || int(id) >= len(n.edges) {
		return nil
	}
	return n.edges[id]
}

// Inputs returns the units that have a boundary edge among their incoming
// edges, in creation order.
func (n *Network) Inputs() []UnitID {
	return append([]UnitID(nil), n.inputUnits()...)
}

// Outputs returns the units that have a sink edge among their outgoing
// edges, in creation order.
func (n *Network) Outputs() []UnitID {
	return append([]UnitID(nil), n.outputUnits()...)
}

// inputUnits and outputUnits return the cached sets without copying. Callers
// must not keep or modify them.
func (n *Network) inputUnits() []UnitID {
	n.refresh()
	return n.inputs
}

func (n *Network) outputUnits() []UnitID {
	n.refresh()
	return n.outputs
}

// IsInput reports whether id is an input unit.
func (n *Network) IsInput(id UnitID) bool {
	n.refresh()
	return n.valid(id) && n.isInput[id]
}

// IsOutput reports whether id is an output unit.
func (n *Network) IsOutput(id UnitID) bool {
	n.refresh()
	return n.valid(id) && n.isOutput[id]
}

func (n *Network) refresh() {
	if !n.dirty && len(n.isInput) == len(n.units) {
		return
	}
	n.inputs = nil
	n.outputs = nil
	n.isInput = make([]bool, len(n.units))
	n.isOutput = make([]bool, len(n.units))
	for i, u := range n.units {
		for _, eid := range u.incoming {
			if n.edges[eid].Boundary() {
				n.isInput[i] = true
				break
			}
		}
		for _, eid := range u.outgoing {
			if n.edges[eid].Sink() {
				n.isOutput[i] = true
				break
			}
		}
		if n.isInput[i] {
			n.inputs = append(n.inputs, UnitID(i))
		}
		if n.isOutput[i] {
			n.outputs = append(n.outputs, UnitID(i))
		}
	}
	n.dirty = false
}

// FeedEdge sets the raw value of a boundary edge.
func (n *Network) FeedEdge(id EdgeID, x float64) error {
	e := n.Edge(id)
	if e == nil {
		return errors.Wrapf(ErrUnknownEdge, "%d", id)
	}
	if !e.Boundary() {
		return errors.Wrapf(ErrNotBoundary, "edge %d", id)
	}
	e.raw, e.hasRaw = x, true
	return nil
}

// EffectiveValue returns the raw value of a boundary edge or the value of
// the upstream unit of an internal edge. The weight is not applied.
func (n *Network) EffectiveValue(id EdgeID) float64 {
	return n.effective(n.edges[id])
}

func (n *Network) effective(e *Edge) float64 {
	if e.upstream == NoUnit {
		return e.raw
	}
	return n.units[e.upstream].Value
}

// Feed assigns values positionally to the first boundary edge of each input
// unit. Every non-input unit value is reset to zero first.
func (n *Network) Feed(values []float64) error {
	inputs := n.inputUnits()
	if len(values) != len(inputs) {
		return errors.Wrapf(ErrInputSize, "got %d values for %d inputs", len(values), len(inputs))
	}
	for i, u := range n.units {
		if !n.isInput[i] {
			u.Value = 0
		}
	}
	for i, id := range inputs {
		for _, eid := range n.units[id].incoming {
			e := n.edges[eid]
			if e.Boundary() {
				e.raw, e.hasRaw = values[i], true
				break
			}
		}
	}
	return nil
}

// Fire propagates the fed values through the network breadth first, starting
// from the inputs. Each dequeued unit sums the effective values of its
// incoming edges times their weights and activates.
//
// A unit fires the first time it is dequeued, so the result is only correct
// for strictly layered networks, where every predecessor of a unit lies in
// the layer right before it. Validate reports graphs that do not qualify.
func (n *Network) Fire() {
	for _, id := range n.inputUnits() {
		n.queue.push(id)
	}
	for {
		id, ok := n.queue.pop()
		if !ok {
			return
		}
		u := n.units[id]
		var sum float64
		for _, eid := range u.incoming {
			e := n.edges[eid]
			sum += n.effective(e) * e.Weight
		}
		u.Value = u.Activation.Activate(sum, u.Bias)
		for _, eid := range u.outgoing {
			n.queue.push(n.edges[eid].downstream)
		}
	}
}

// Epochs returns the number of training epochs run on this network so far.
func (n *Network) Epochs() int { return n.epochs }

// NextDraw returns the index of the next drawing of this network and
// advances the counter.
func (n *Network) NextDraw() int {
	d := n.draws
	n.draws++
	return d
}
