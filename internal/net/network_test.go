// Package net provides unit tests for the graph network.
package net

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
)

// thresholdNet builds step inputs with threshold 0.1 feeding one step output
// named OUT with the given threshold.
func thresholdNet(t testing.TB, entries int, threshold float64) *Network {
	t.Helper()
	n := New("threshold")
	out, err := n.AddUnit("OUT", activations.Step, threshold)
	require.NoError(t, err)
	_, err = n.MarkOutput(out)
	require.NoError(t, err)
	for i := 0; i < entries; i++ {
		in, err := n.AddUnit(string(rune('a'+i)), activations.Step, 0.1)
		require.NoError(t, err)
		_, err = n.AddInput(in, 1)
		require.NoError(t, err)
		_, err = n.Connect(in, out, 1)
		require.NoError(t, err)
	}
	return n
}

// perceptronNet builds identity inputs fully connected to sign outputs.
func perceptronNet(t testing.TB, entries int, outputs ...string) *Network {
	t.Helper()
	n := New("perceptron")
	ins := make([]UnitID, entries)
	for i := range ins {
		id, err := n.AddUnit(string(rune('a'+i)), activations.Identity, 0.1)
		require.NoError(t, err)
		_, err = n.AddInput(id, 1)
		require.NoError(t, err)
		ins[i] = id
	}
	for _, name := range outputs {
		id, err := n.AddUnit(name, activations.Sign, 0)
		require.NoError(t, err)
		_, err = n.MarkOutput(id)
		require.NoError(t, err)
		for _, in := range ins {
			_, err = n.Connect(in, id, 1)
			require.NoError(t, err)
		}
	}
	return n
}

// mlpNet builds a 2-2-2 network with tanh hidden units and identity outputs
// named "0" and "1". Weights are used in edge creation order.
func mlpNet(t testing.TB, w [8]float64) *Network {
	t.Helper()
	n := New("mlp")
	var ins, hidden []UnitID
	for _, name := range []string{"x1", "x2"} {
		id, err := n.AddUnit(name, activations.Identity, 0)
		require.NoError(t, err)
		_, err = n.AddInput(id, 1)
		require.NoError(t, err)
		ins = append(ins, id)
	}
	k := 0
	for _, name := range []string{"h1", "h2"} {
		id, err := n.AddUnit(name, activations.Tanh, 0)
		require.NoError(t, err)
		for _, in := range ins {
			_, err = n.Connect(in, id, w[k])
			require.NoError(t, err)
			k++
		}
		hidden = append(hidden, id)
	}
	for _, name := range []string{"0", "1"} {
		id, err := n.AddUnit(name, activations.Identity, 0)
		require.NoError(t, err)
		for _, h := range hidden {
			_, err = n.Connect(h, id, w[k])
			require.NoError(t, err)
			k++
		}
		_, err = n.MarkOutput(id)
		require.NoError(t, err)
	}
	return n
}

func value(n *Network, name string) float64 {
	id, _ := n.UnitByName(name)
	return n.Unit(id).Value
}

// TestThresholdOR tests a step network simulating OR.
func TestThresholdOR(t *testing.T) {
	for _, entries := range []int{1, 2, 3, 5} {
		n := thresholdNet(t, entries, 0.9)

		require.NoError(t, n.Feed(make([]float64, entries)))
		n.Fire()
		assert.Equal(t, 0.0, value(n, "OUT"), "all zero with %d entries", entries)

		for i := 0; i < entries; i++ {
			x := make([]float64, entries)
			x[i] = 1
			require.NoError(t, n.Feed(x))
			n.Fire()
			assert.Equal(t, 1.0, value(n, "OUT"), "input %d set with %d entries", i, entries)
		}
	}
}

// TestThresholdAND tests a step network simulating AND.
func TestThresholdAND(t *testing.T) {
	const entries = 3
	n := thresholdNet(t, entries, entries-0.1)

	for mask := 0; mask < 1<<entries; mask++ {
		x := make([]float64, entries)
		for i := range x {
			if mask&(1<<i) != 0 {
				x[i] = 1
			}
		}
		require.NoError(t, n.Feed(x))
		n.Fire()

		want := 0.0
		if mask == 1<<entries-1 {
			want = 1
		}
		assert.Equal(t, want, value(n, "OUT"), "inputs %v", x)
	}
}

// TestFireIdempotent tests that repeated forward passes give identical values.
func TestFireIdempotent(t *testing.T) {
	n := mlpNet(t, [8]float64{0.8, 0.9, -0.8, -0.6, -0.8, -0.9, 0.7, 0.6})
	require.NoError(t, n.Feed([]float64{0.3, -1.7}))

	n.Fire()
	first := n.Snapshot()
	n.Fire()
	second := n.Snapshot()

	assert.Equal(t, first.Units, second.Units)
}

// TestFireValues tests forward propagation through a hidden layer.
func TestFireValues(t *testing.T) {
	w := [8]float64{0.5, -0.25, 1, 2, 0.5, 0.5, -1, 1}
	n := mlpNet(t, w)
	require.NoError(t, n.Feed([]float64{1, 2}))
	n.Fire()

	h1 := tanh(1*w[0] + 2*w[1])
	h2 := tanh(1*w[2] + 2*w[3])
	assert.InDelta(t, h1, value(n, "h1"), 1e-12)
	assert.InDelta(t, h2, value(n, "h2"), 1e-12)
	assert.InDelta(t, h1*w[4]+h2*w[5], value(n, "0"), 1e-12)
	assert.InDelta(t, h1*w[6]+h2*w[7], value(n, "1"), 1e-12)
}

func tanh(x float64) float64 { return activations.Tanh.Activate(x, 0) }

// TestFeedResetsValues tests that feeding clears every non-input value.
func TestFeedResetsValues(t *testing.T) {
	n := thresholdNet(t, 2, 0.9)
	require.NoError(t, n.Feed([]float64{1, 1}))
	n.Fire()
	require.Equal(t, 1.0, value(n, "OUT"))

	require.NoError(t, n.Feed([]float64{0, 0}))
	assert.Equal(t, 0.0, value(n, "OUT"))
	// input values are left for the next forward pass
	assert.Equal(t, 1.0, value(n, "a"))
}

// TestFeedInputSize tests feeding a vector of the wrong length.
func TestFeedInputSize(t *testing.T) {
	n := thresholdNet(t, 2, 0.9)
	assert.ErrorIs(t, n.Feed([]float64{1}), ErrInputSize)
	assert.ErrorIs(t, n.Feed([]float64{1, 0, 1}), ErrInputSize)
}

// TestEdgeInvariant tests edge construction errors.
func TestEdgeInvariant(t *testing.T) {
	n := New("edges")
	a, _ := n.AddUnit("a", activations.Identity, 0)
	b, _ := n.AddUnit("b", activations.Identity, 0)
	raw := 1.0

	tests := []struct {
		name       string
		upstream   UnitID
		downstream UnitID
		raw        *float64
		err        error
	}{
		{"Neither raw nor upstream", NoUnit, b, nil, ErrEdgeInvariant},
		{"Both raw and upstream", a, b, &raw, ErrEdgeInvariant},
		{"Unknown upstream", 42, b, nil, ErrUnknownUnit},
		{"Unknown downstream", a, 42, nil, ErrUnknownUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.AddEdge(tt.upstream, tt.downstream, tt.raw, 1)
			assert.ErrorIs(t, err, tt.err)
		})
	}
	assert.Equal(t, 0, n.Edges())
}

// TestDuplicateName tests unit name uniqueness.
func TestDuplicateName(t *testing.T) {
	n := New("names")
	_, err := n.AddUnit("a", activations.Identity, 0)
	require.NoError(t, err)
	_, err = n.AddUnit("a", activations.Tanh, 0)
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Equal(t, 1, n.Units())
}

// TestDerivedSets tests that inputs and outputs follow topology changes.
func TestDerivedSets(t *testing.T) {
	n := New("sets")
	a, _ := n.AddUnit("a", activations.Identity, 0)
	b, _ := n.AddUnit("b", activations.Identity, 0)
	assert.Empty(t, n.Inputs())
	assert.Empty(t, n.Outputs())

	_, err := n.AddInput(a, 1)
	require.NoError(t, err)
	assert.Equal(t, []UnitID{a}, n.Inputs())
	assert.Empty(t, n.Outputs())

	_, err = n.Connect(a, b, 1)
	require.NoError(t, err)
	_, err = n.MarkOutput(b)
	require.NoError(t, err)
	assert.Equal(t, []UnitID{b}, n.Outputs())
	assert.True(t, n.IsInput(a))
	assert.False(t, n.IsInput(b))
	assert.True(t, n.IsOutput(b))
}

// TestDerivedSetsAreCopies tests that callers cannot reach the cached sets.
func TestDerivedSetsAreCopies(t *testing.T) {
	n := perceptronNet(t, 2, "0", "1")
	inputs := n.Inputs()
	outputs := n.Outputs()
	wantIn := append([]UnitID(nil), inputs...)
	wantOut := append([]UnitID(nil), outputs...)

	inputs[0], outputs[0] = NoUnit, NoUnit
	assert.Equal(t, wantIn, n.Inputs())
	assert.Equal(t, wantOut, n.Outputs())

	held := n.Outputs()
	c, err := n.AddUnit("c", activations.Sign, 0)
	require.NoError(t, err)
	_, err = n.MarkOutput(c)
	require.NoError(t, err)
	assert.Equal(t, wantOut, held)
	assert.Len(t, n.Outputs(), len(wantOut)+1)
}

// TestEdgeValues tests feeding and reading edge values.
func TestEdgeValues(t *testing.T) {
	n := New("values")
	a, _ := n.AddUnit("a", activations.Identity, 0)
	b, _ := n.AddUnit("b", activations.Identity, 0)
	in, _ := n.AddInput(a, 2)
	link, _ := n.Connect(a, b, 3)
	sink, _ := n.MarkOutput(b)

	assert.True(t, n.Edge(in).Boundary())
	assert.True(t, n.Edge(sink).Sink())
	assert.False(t, n.Edge(link).Boundary())
	assert.False(t, n.Edge(link).Sink())

	require.NoError(t, n.FeedEdge(in, 4))
	raw, ok := n.Edge(in).Raw()
	assert.True(t, ok)
	assert.Equal(t, 4.0, raw)
	assert.Equal(t, 4.0, n.EffectiveValue(in))

	assert.ErrorIs(t, n.FeedEdge(link, 1), ErrNotBoundary)
	assert.ErrorIs(t, n.FeedEdge(99, 1), ErrUnknownEdge)

	n.Fire()
	// the weight is applied by the downstream unit, not the edge
	assert.Equal(t, 8.0, n.EffectiveValue(link))
	assert.Equal(t, 24.0, n.Unit(b).Value)

	assert.Equal(t, []EdgeID{in}, n.Unit(a).Incoming())
	assert.Equal(t, []EdgeID{link}, n.Unit(a).Outgoing())
	assert.Equal(t, []EdgeID{sink}, n.Unit(b).Outgoing())
}

// TestValidate tests cycle and layering detection.
func TestValidate(t *testing.T) {
	build := func(extra func(n *Network, a, b, c UnitID)) *Network {
		n := New("validate")
		a, _ := n.AddUnit("a", activations.Identity, 0)
		b, _ := n.AddUnit("b", activations.Tanh, 0)
		c, _ := n.AddUnit("c", activations.Tanh, 0)
		n.AddInput(a, 1)
		n.Connect(a, b, 1)
		n.Connect(b, c, 1)
		n.MarkOutput(c)
		extra(n, a, b, c)
		return n
	}

	tests := []struct {
		name  string
		extra func(n *Network, a, b, c UnitID)
		err   error
	}{
		{"Layered", func(*Network, UnitID, UnitID, UnitID) {}, nil},
		{"Cycle", func(n *Network, a, b, c UnitID) { n.Connect(c, b, 1) }, ErrCycle},
		{"Skip connection", func(n *Network, a, b, c UnitID) { n.Connect(a, c, 1) }, ErrNotLayered},
		{"Unreachable unit", func(n *Network, a, b, c UnitID) { n.AddUnit("z", activations.Tanh, 0) }, ErrNotLayered},
		{"Input fed by a unit", func(n *Network, a, b, c UnitID) {
			d, _ := n.AddUnit("d", activations.Identity, 0)
			n.AddInput(d, 1)
			n.Connect(b, d, 1)
		}, ErrNotLayered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := build(tt.extra).Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

// TestLayers tests the layered export form.
func TestLayers(t *testing.T) {
	w := [8]float64{1, 2, 3, 4, 5, 6, 7, 8}
	n := mlpNet(t, w)
	h2, _ := n.UnitByName("h2")
	n.Unit(h2).Bias = 0.5

	layers, err := n.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 3)

	assert.Len(t, layers[0].Units, 2)
	assert.Nil(t, layers[0].Weights)

	r, c := layers[1].Weights.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, []float64{1, 2}, layers[1].Weights.RawRowView(0))
	assert.Equal(t, []float64{3, 4}, layers[1].Weights.RawRowView(1))
	assert.Equal(t, []float64{0, 0.5}, layers[1].Bias)

	assert.Equal(t, []float64{5, 6}, layers[2].Weights.RawRowView(0))
	assert.Equal(t, []float64{7, 8}, layers[2].Weights.RawRowView(1))

	n.Connect(n.Inputs()[0], n.Outputs()[0], 1)
	_, err = n.Layers()
	assert.ErrorIs(t, err, ErrNotLayered)
}

// TestSnapshot tests the read-only copy used by renderers.
func TestSnapshot(t *testing.T) {
	n := thresholdNet(t, 1, 0.9)
	require.NoError(t, n.Feed([]float64{1}))
	n.Fire()

	s := n.Snapshot()
	assert.Equal(t, "threshold", s.Network)
	require.Len(t, s.Units, 2)
	assert.Equal(t, UnitState{Name: "OUT", Value: 1, Bias: 0.9, Activation: activations.Step, Output: true}, s.Units[0])
	assert.True(t, s.Units[1].Input)

	require.Len(t, s.Edges, 3)
	assert.Equal(t, EdgeState{From: "OUT", Weight: 1}, s.Edges[0])
	assert.Equal(t, EdgeState{To: "a", Weight: 1, Raw: 1, HasRaw: true}, s.Edges[1])
	assert.Equal(t, EdgeState{From: "a", To: "OUT", Weight: 1}, s.Edges[2])

	// snapshots do not alias the network
	s.Units[0].Value = 42
	assert.Equal(t, 1.0, value(n, "OUT"))

	assert.Equal(t, 0, n.NextDraw())
	assert.Equal(t, 1, n.NextDraw())
}
