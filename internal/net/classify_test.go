package net

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
)

// outputsNet builds one input feeding identity outputs with the given
// weights, so that feeding 1 sets each output value to its weight.
func outputsNet(t testing.TB, weights ...float64) *Network {
	t.Helper()
	n := New("outputs")
	in, err := n.AddUnit("x", activations.Identity, 0)
	require.NoError(t, err)
	_, err = n.AddInput(in, 1)
	require.NoError(t, err)
	for i, w := range weights {
		id, err := n.AddUnit(string(rune('a'+i)), activations.Identity, 0)
		require.NoError(t, err)
		_, err = n.Connect(in, id, w)
		require.NoError(t, err)
		_, err = n.MarkOutput(id)
		require.NoError(t, err)
	}
	require.NoError(t, n.Feed([]float64{1}))
	n.Fire()
	return n
}

func name(n *Network, id UnitID) string {
	if u := n.Unit(id); u != nil {
		return u.Name
	}
	return ""
}

// TestClassify tests the three output policies.
func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		policy  Policy
		winner  string
		ok      bool
	}{
		{"Threshold first positive", []float64{-1, 0.5, 2}, Threshold, "b", true},
		{"Threshold none positive", []float64{-1, 0, -2}, Threshold, "", false},
		{"MaxValue", []float64{-1, 0.5, 2}, MaxValue, "c", true},
		{"MaxValue negative", []float64{-3, -1, -2}, MaxValue, "b", true},
		{"MaxValue tie goes first", []float64{1, 2, 2}, MaxValue, "b", true},
		{"Softmax", []float64{0.1, 3, -2}, SoftmaxPolicy, "b", true},
		{"Softmax tie goes first", []float64{4, 4}, SoftmaxPolicy, "a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := outputsNet(t, tt.weights...)
			id, ok := n.Classify(tt.policy)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.winner, name(n, id))
		})
	}
}

// TestClassifySoftmaxProbabilities tests that probabilities are stored on the
// output units.
func TestClassifySoftmaxProbabilities(t *testing.T) {
	n := outputsNet(t, 1, 2, 3)
	n.Classify(SoftmaxPolicy)

	z := math.Exp(1) + math.Exp(2) + math.Exp(3)
	var sum float64
	for i, id := range n.Outputs() {
		p := n.Unit(id).Probability
		assert.InDelta(t, math.Exp(float64(i+1))/z, p, 1e-12)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	// values are left untouched
	assert.Equal(t, 3.0, n.Unit(n.Outputs()[2]).Value)
}

// TestClassifyNoOutputs tests a network without output units.
func TestClassifyNoOutputs(t *testing.T) {
	n := New("empty")
	for _, p := range []Policy{Threshold, MaxValue, SoftmaxPolicy} {
		id, ok := n.Classify(p)
		assert.False(t, ok, p.String())
		assert.Equal(t, NoUnit, id)
	}
}
