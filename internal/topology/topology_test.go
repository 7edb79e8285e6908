// Package topology provides unit tests for the network builders.
package topology

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

var binary = []string{"0", "1"}

func examples(rows ...[3]float64) []net.Example {
	out := make([]net.Example, len(rows))
	for i, r := range rows {
		out[i] = net.Example{Inputs: []float64{r[0], r[1]}, Label: int(r[2])}
	}
	return out
}

var (
	or  = examples([3]float64{0, 0, 0}, [3]float64{0, 1, 1}, [3]float64{1, 0, 1}, [3]float64{1, 1, 1})
	and = examples([3]float64{0, 0, 0}, [3]float64{0, 1, 0}, [3]float64{1, 0, 0}, [3]float64{1, 1, 1})
	xor = examples([3]float64{0, 0, 0}, [3]float64{0, 1, 1}, [3]float64{1, 0, 1}, [3]float64{1, 1, 0})
	not = []net.Example{{Inputs: []float64{0}, Label: 1}, {Inputs: []float64{1}, Label: 0}}
)

func output(t *testing.T, n *net.Network) float64 {
	id, ok := n.UnitByName(OutputName)
	require.True(t, ok)
	return n.Unit(id).Value
}

// TestMcCullochPittsOR tests the OR threshold unit.
func TestMcCullochPittsOR(t *testing.T) {
	for entries := 1; entries <= 4; entries++ {
		n, err := McCullochPitts(entries, 0.9)
		require.NoError(t, err)

		require.NoError(t, n.Feed(make([]float64, entries)))
		n.Fire()
		assert.Equal(t, 0.0, output(t, n))

		for i := 0; i < entries; i++ {
			x := make([]float64, entries)
			x[i] = 1
			require.NoError(t, n.Feed(x))
			n.Fire()
			assert.Equal(t, 1.0, output(t, n), "entries %d input %d", entries, i)
		}
	}
}

// TestMcCullochPittsAND tests the AND threshold unit.
func TestMcCullochPittsAND(t *testing.T) {
	for entries := 1; entries <= 4; entries++ {
		n, err := McCullochPitts(entries, float64(entries)-0.1)
		require.NoError(t, err)

		for mask := 0; mask < 1<<entries; mask++ {
			x := make([]float64, entries)
			for i := range x {
				x[i] = float64(mask >> i & 1)
			}
			require.NoError(t, n.Feed(x))
			n.Fire()

			want := 0.0
			if mask == 1<<entries-1 {
				want = 1
			}
			assert.Equal(t, want, output(t, n), "inputs %v", x)
		}
	}
}

// TestRosenblattLogic tests which truth tables the delta rule learns.
func TestRosenblattLogic(t *testing.T) {
	tests := []struct {
		name      string
		entries   int
		examples  []net.Example
		converges bool
	}{
		{"OR", 2, or, true},
		{"AND", 2, and, true},
		{"NOT", 1, not, true},
		{"XOR", 2, xor, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Rosenblatt(tt.entries, binary)
			require.NoError(t, err)

			ok, err := n.Train(tt.examples, binary, net.TrainConfig{
				Mode:         net.ModeThreshold,
				LearningRate: 0.1,
				MaxEpochs:    100,
			})
			require.NoError(t, err)
			require.Equal(t, tt.converges, ok)
			if !ok {
				assert.Equal(t, 100, n.Epochs())
				return
			}

			for _, ex := range tt.examples {
				require.NoError(t, n.Feed(ex.Inputs))
				n.Fire()
				id, ok := n.Classify(net.Threshold)
				require.True(t, ok)
				assert.Equal(t, binary[ex.Label], n.Unit(id).Name, "inputs %v", ex.Inputs)
			}
		})
	}
}

// TestWerbosXOR tests softmax chain-rule training on XOR with one hidden
// layer of two tanh units.
func TestWerbosXOR(t *testing.T) {
	starts := [][]float64{
		{0.8, 0.9, -0.8, -0.6, -0.8, -0.9, 0.7, 0.6},
		{-0.9, -1.0, -0.4, -0.5, 0.2, 0.1, 0.5, 0.3},
		{0.9, 0.6, 0.9, 0.3, 0.6, 0.8, 0.8, -0.9},
	}

	for _, ws := range starts {
		n, err := Werbos(2, binary, []int{2}, WithInitializer(Values(ws...)))
		require.NoError(t, err)

		ok, err := n.Train(xor, binary, net.TrainConfig{
			Mode:         net.ModeSoftmax,
			LearningRate: 0.1,
			MaxEpochs:    1000,
		})
		require.NoError(t, err)
		require.True(t, ok, "start %v", ws)
		assert.LessOrEqual(t, n.Epochs(), 1000)

		for _, ex := range xor {
			require.NoError(t, n.Feed(ex.Inputs))
			n.Fire()
			id, _ := n.Classify(net.SoftmaxPolicy)
			assert.Equal(t, binary[ex.Label], n.Unit(id).Name, "start %v inputs %v", ws, ex.Inputs)
		}
	}
}

func convergesOnXOR(t *testing.T, opts ...Option) bool {
	n, err := Werbos(2, binary, []int{2}, opts...)
	require.NoError(t, err)
	ok, err := n.Train(xor, binary, net.TrainConfig{
		Mode:         net.ModeSoftmax,
		LearningRate: 0.1,
		MaxEpochs:    1000,
	})
	require.NoError(t, err)
	return ok
}

// TestWerbosDefaultInit tests that the default build is reproducible and
// that the default weight range learns XOR from most seeds.
func TestWerbosDefaultInit(t *testing.T) {
	a, err := Werbos(2, binary, []int{2})
	require.NoError(t, err)
	b, err := Werbos(2, binary, []int{2}, WithSeed(DefaultSeed))
	require.NoError(t, err)
	la, err := a.Layers()
	require.NoError(t, err)
	lb, err := b.Layers()
	require.NoError(t, err)
	assert.Equal(t, lb, la)
	for _, l := range la[1:] {
		for _, w := range l.Weights.RawMatrix().Data {
			assert.True(t, w >= -DefaultRange && w < DefaultRange, "weight %v", w)
		}
	}

	assert.True(t, convergesOnXOR(t), "default seed")

	const seeds = 200
	converged := 0
	for seed := int64(1); seed <= seeds; seed++ {
		if convergesOnXOR(t, WithSeed(seed)) {
			converged++
		}
	}
	assert.GreaterOrEqual(t, float64(converged)/seeds, 0.65, "%d of %d seeds", converged, seeds)
}

// TestWerbosShape tests the layout of a multi-layer network.
func TestWerbosShape(t *testing.T) {
	n, err := Werbos(3, []string{"a", "b"}, []int{4, 2},
		WithInitializer(Constant(0.5)),
		WithOutputActivation(activations.Logistic))
	require.NoError(t, err)

	assert.Equal(t, 3+4+2+2, n.Units())
	// boundary, internal and sink edges
	assert.Equal(t, 3+3*4+4*2+2*2+2, n.Edges())
	assert.Len(t, n.Inputs(), 3)
	assert.Len(t, n.Outputs(), 2)

	layers, err := n.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 4)
	r, c := layers[1].Weights.Dims()
	assert.Equal(t, [2]int{4, 3}, [2]int{r, c})
	r, c = layers[3].Weights.Dims()
	assert.Equal(t, [2]int{2, 2}, [2]int{r, c})
	assert.Equal(t, 0.5, layers[2].Weights.At(1, 3))

	h, ok := n.UnitByName(HiddenName(0, 3))
	require.True(t, ok)
	assert.Equal(t, activations.Tanh, n.Unit(h).Activation)
	a, _ := n.UnitByName("a")
	assert.Equal(t, activations.Logistic, n.Unit(a).Activation)
}

// TestBuilderErrors tests invalid builder arguments.
func TestBuilderErrors(t *testing.T) {
	_, err := McCullochPitts(0, 0.9)
	assert.Error(t, err)

	_, err = Rosenblatt(2, nil)
	assert.Error(t, err)

	_, err = Rosenblatt(2, []string{"a", "a"})
	assert.ErrorIs(t, err, net.ErrDuplicateName)

	_, err = Rosenblatt(2, []string{InputName(0)})
	assert.ErrorIs(t, err, net.ErrDuplicateName)

	_, err = Werbos(2, binary, []int{2, 0})
	assert.Error(t, err)
}

// TestInitializers tests the weight sources.
func TestInitializers(t *testing.T) {
	v := Values(1, 2, 3)
	got := make([]float64, 7)
	for i := range got {
		got[i] = v.Next()
	}
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3, 1}, got)
	assert.Equal(t, 0.0, Values().Next())

	assert.Equal(t, 0.25, Constant(0.25).Next())

	u := Uniform(rand.New(rand.NewSource(3)), 1, -1)
	for i := 0; i < 1000; i++ {
		w := u.Next()
		assert.True(t, w >= -1 && w < 1, "weight %v", w)
		assert.NotEqual(t, 0.0, w)
	}
	assert.Equal(t, 0.0, Uniform(rand.New(rand.NewSource(3)), 0, 0).Next())
}
