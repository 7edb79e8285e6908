// Package topology builds networks for the three historical models: the
// McCulloch-Pitts threshold unit, the Rosenblatt perceptron and the Werbos
// multi-layer network.
package topology

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/activations"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

// OutputName is the name of the single McCulloch-Pitts output unit.
const OutputName = "OUT"

// InputThreshold is the threshold of McCulloch-Pitts input units, so that
// an input of 1 fires and an input of 0 does not.
const InputThreshold = 0.1

// InputName returns the name of the i-th input unit, from 0.
func InputName(i int) string {
	return fmt.Sprintf("x%d", i+1)
}

// HiddenName returns the name of unit j of hidden layer l, both from 0.
func HiddenName(l, j int) string {
	return fmt.Sprintf("h%d.%d", l+1, j+1)
}

// McCullochPitts builds entries step inputs feeding a single step output
// named OUT with the given threshold. All weights are 1. A threshold of 0.9
// computes OR, entries-0.1 computes AND.
func McCullochPitts(entries int, threshold float64) (*net.Network, error) {
	if entries < 1 {
		return nil, errors.Errorf("mcculloch-pitts: need at least one entry, got %d", entries)
	}
	n := net.New("mcculloch-pitts")
	ins, err := addInputs(n, entries, activations.Step, InputThreshold)
	if err != nil {
		return nil, err
	}
	out, err := n.AddUnit(OutputName, activations.Step, threshold)
	if err != nil {
		return nil, err
	}
	for _, in := range ins {
		if _, err := n.Connect(in, out, 1); err != nil {
			return nil, err
		}
	}
	if _, err := n.MarkOutput(out); err != nil {
		return nil, err
	}
	return validated(n)
}

// Rosenblatt builds identity inputs connected to one sign output per name.
// All weights start at 1 and output thresholds at 0.
func Rosenblatt(entries int, outputs []string) (*net.Network, error) {
	if entries < 1 || len(outputs) == 0 {
		return nil, errors.Errorf("rosenblatt: need entries and outputs, got %d and %d", entries, len(outputs))
	}
	n := net.New("rosenblatt")
	ins, err := addInputs(n, entries, activations.Identity, InputThreshold)
	if err != nil {
		return nil, err
	}
	for _, name := range outputs {
		out, err := n.AddUnit(name, activations.Sign, 0)
		if err != nil {
			return nil, err
		}
		if _, err := n.MarkOutput(out); err != nil {
			return nil, err
		}
		for _, in := range ins {
			if _, err := n.Connect(in, out, 1); err != nil {
				return nil, err
			}
		}
	}
	return validated(n)
}

// DefaultSeed seeds the weights of a Werbos network built without an
// initializer, so that two default builds start from the same weights.
const DefaultSeed int64 = 1

// DefaultRange bounds the default initial weights to [-DefaultRange, DefaultRange).
const DefaultRange = 2.0

type werbosConfig struct {
	init   Initializer
	output activations.Kind
}

// Option configures Werbos.
type Option func(*werbosConfig)

// WithInitializer sets the source of the initial internal weights.
func WithInitializer(i Initializer) Option {
	return func(c *werbosConfig) { c.init = i }
}

// WithSeed draws the initial weights uniformly from the default range with
// the given seed.
func WithSeed(seed int64) Option {
	return WithInitializer(Uniform(rand.New(rand.NewSource(seed)), -DefaultRange, DefaultRange))
}

// WithOutputActivation sets the activation of the output units. Identity
// suits softmax training; tanh or logistic suit plain chain-rule training.
func WithOutputActivation(k activations.Kind) Option {
	return func(c *werbosConfig) { c.output = k }
}

// Werbos builds identity inputs, fully connected tanh hidden layers of the
// given sizes and fully connected output units. Weights come from the
// initializer in edge creation order: each unit takes one weight per unit
// of the previous layer. Biases start at 0. Without an initializer the
// weights come from WithSeed(DefaultSeed).
func Werbos(entries int, outputs []string, hidden []int, opts ...Option) (*net.Network, error) {
	if entries < 1 || len(outputs) == 0 {
		return nil, errors.Errorf("werbos: need entries and outputs, got %d and %d", entries, len(outputs))
	}
	cfg := werbosConfig{output: activations.Identity}
	WithSeed(DefaultSeed)(&cfg)
	for _, o := range opts {
		o(&cfg)
	}

	n := net.New("werbos")
	prev, err := addInputs(n, entries, activations.Identity, 0)
	if err != nil {
		return nil, err
	}
	for l, size := range hidden {
		if size < 1 {
			return nil, errors.Errorf("werbos: hidden layer %d has size %d", l, size)
		}
		layer := make([]net.UnitID, size)
		for j := range layer {
			id, err := n.AddUnit(HiddenName(l, j), activations.Tanh, 0)
			if err != nil {
				return nil, err
			}
			if err := connectAll(n, prev, id, cfg.init); err != nil {
				return nil, err
			}
			layer[j] = id
		}
		prev = layer
	}
	for _, name := range outputs {
		id, err := n.AddUnit(name, cfg.output, 0)
		if err != nil {
			return nil, err
		}
		if err := connectAll(n, prev, id, cfg.init); err != nil {
			return nil, err
		}
		if _, err := n.MarkOutput(id); err != nil {
			return nil, err
		}
	}
	return validated(n)
}

func addInputs(n *net.Network, entries int, kind activations.Kind, bias float64) ([]net.UnitID, error) {
	ins := make([]net.UnitID, entries)
	for i := range ins {
		id, err := n.AddUnit(InputName(i), kind, bias)
		if err != nil {
			return nil, err
		}
		if _, err := n.AddInput(id, 1); err != nil {
			return nil, err
		}
		ins[i] = id
	}
	return ins, nil
}

func connectAll(n *net.Network, from []net.UnitID, to net.UnitID, init Initializer) error {
	for _, f := range from {
		if _, err := n.Connect(f, to, init.Next()); err != nil {
			return err
		}
	}
	return nil
}

func validated(n *net.Network) (*net.Network, error) {
	if err := n.Validate(); err != nil {
		return nil, errors.Wrap(err, n.Name)
	}
	return n, nil
}
