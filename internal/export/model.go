// Package export converts trained layered networks to the flat text model
// read by the native inference library, and reads such models back.
package export

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

// ErrUnsupported is returned for networks the native library cannot
// evaluate.
var ErrUnsupported = errors.New("network cannot be exported")

// Model is a layered perceptron in the native convention: every unit
// computes b + sum(w * x), hidden layers apply tanh and the last layer
// applies the logistic function. Inputs are normalized with
// (x - mean) / std first.
type Model struct {
	Inputs int
	// Sizes of every layer after the inputs.
	Sizes []int
	Means []float64
	Stds  []float64
	// Weights has one matrix per layer with one row per unit and one column
	// per unit of the previous layer.
	Weights []*mat.Dense
	Biases  [][]float64
}

type options struct {
	collapse bool
}

// Option configures FromNetwork.
type Option func(*options)

// CollapseBinarySoftmax exports a network with two softmax outputs as a
// single logistic output giving the probability of the second one. Since
// softmax(z)[1] = logistic(z1 - z0), the output row is w1 - w0 and the bias
// is b1 - b0.
func CollapseBinarySoftmax() Option {
	return func(o *options) { o.collapse = true }
}

// FromNetwork reads the layers of n. Hidden units must be tanh. The output
// units must be logistic, or identity logits when collapsing a binary
// softmax. Input units must be identity; their boundary weights are folded
// into the first layer. Nil means and stds default to 0 and 1.
func FromNetwork(n *net.Network, means, stds []float64, opts ...Option) (*Model, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	layers, err := n.Layers()
	if err != nil {
		return nil, err
	}
	if len(layers) < 2 {
		return nil, errors.Wrap(ErrUnsupported, "no layer after the inputs")
	}

	inputs := layers[0].Units
	m := &Model{Inputs: len(inputs)}
	if m.Means, err = stat(means, len(inputs), 0, "means"); err != nil {
		return nil, err
	}
	if m.Stds, err = stat(stds, len(inputs), 1, "stds"); err != nil {
		return nil, err
	}

	scale := make([]float64, len(inputs))
	for i, id := range inputs {
		u := n.Unit(id)
		if u.Activation != activations.Identity {
			return nil, errors.Wrapf(ErrUnsupported, "input unit %q is %s", u.Name, u.Activation)
		}
		for _, eid := range u.Incoming() {
			if e := n.Edge(eid); e.Boundary() {
				scale[i] = e.Weight
				break
			}
		}
	}

	last := len(layers) - 1
	for l := 1; l <= last; l++ {
		want := activations.Tanh
		if l == last {
			want = activations.Logistic
			if o.collapse {
				want = activations.Identity
			}
		}
		for _, id := range layers[l].Units {
			if u := n.Unit(id); u.Activation != want {
				return nil, errors.Wrapf(ErrUnsupported, "unit %q is %s, want %s", u.Name, u.Activation, want)
			}
		}

		w := mat.DenseCopyOf(layers[l].Weights)
		if l == 1 {
			for c, s := range scale {
				for r := 0; r < len(layers[l].Units); r++ {
					w.Set(r, c, w.At(r, c)*s)
				}
			}
		}
		// The network activates sum - bias, the native library b + sum.
		b := make([]float64, len(layers[l].Bias))
		for i, v := range layers[l].Bias {
			b[i] = -v
		}

		if l == last && o.collapse {
			if len(b) != 2 {
				return nil, errors.Wrapf(ErrUnsupported, "collapsing a softmax over %d outputs", len(b))
			}
			_, cols := w.Dims()
			row := mat.NewDense(1, cols, nil)
			row.Sub(w.Slice(1, 2, 0, cols), w.Slice(0, 1, 0, cols))
			w = row
			b = []float64{b[1] - b[0]}
		}

		m.Weights = append(m.Weights, w)
		m.Biases = append(m.Biases, b)
		m.Sizes = append(m.Sizes, len(b))
	}
	return m, nil
}

func stat(values []float64, n int, fill float64, name string) ([]float64, error) {
	if values == nil {
		out := make([]float64, n)
		for i := range out {
			out[i] = fill
		}
		return out, nil
	}
	if len(values) != n {
		return nil, errors.Errorf("%s has %d values for %d inputs", name, len(values), n)
	}
	return append([]float64(nil), values...), nil
}

// Predict normalizes raw and runs the model, returning the activations of
// the last layer.
func (m *Model) Predict(raw []float64) ([]float64, error) {
	if len(raw) != m.Inputs {
		return nil, errors.Errorf("predict: got %d values for %d inputs", len(raw), m.Inputs)
	}
	x := make([]float64, len(raw))
	for i, v := range raw {
		x[i] = (v - m.Means[i]) / m.Stds[i]
	}

	for l, w := range m.Weights {
		rows, _ := w.Dims()
		out := mat.NewVecDense(rows, nil)
		out.MulVec(w, mat.NewVecDense(len(x), x))
		kind := activations.Tanh
		if l == len(m.Weights)-1 {
			kind = activations.Logistic
		}
		x = make([]float64, rows)
		for r := range x {
			x[r] = kind.Activate(m.Biases[l][r]+out.AtVec(r), 0)
		}
	}
	return x, nil
}
