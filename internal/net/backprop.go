package net

import (
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/loss"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/opt"
)

// FixRosenblatt applies the delta rule to every output unit: s is +1 for the
// target and -1 for the others, each incoming weight moves by lr*s times the
// edge value and the bias moves by -lr*s. Only the output layer changes.
func (n *Network) FixRosenblatt(target UnitID, lr float64) {
	for _, id := range n.outputUnits() {
		s := -1.0
		if id == target {
			s = 1
		}
		u := n.units[id]
		for _, eid := range u.incoming {
			e := n.edges[eid]
			e.Weight += lr * s * n.effective(e)
		}
		u.Bias += lr * s * -1
	}
}

// FixChainRule runs a forward pass and backpropagates (a - y) * f'(a) from
// every output unit, where y is 1 for target and 0 otherwise. Units whose
// activation has no derivative fail with activations.ErrNotDifferentiable.
func (n *Network) FixChainRule(target UnitID, lr float64) error {
	n.Fire()
	n.resetErrors()
	for _, id := range n.outputUnits() {
		u := n.units[id]
		y := 0.0
		if id == target {
			y = 1
		}
		d, err := u.Activation.Derivative(u.Value)
		if err != nil {
			return errors.Wrapf(err, "output unit %q", u.Name)
		}
		u.Error = (u.Value - y) * d
	}
	return n.propagate(lr)
}

// FixChainRuleSoftmax runs a forward pass, classifies with softmax and
// backpropagates probability - onehot from the output units, which is the
// gradient of cross entropy through softmax.
func (n *Network) FixChainRuleSoftmax(target UnitID, lr float64) error {
	n.Fire()
	n.Classify(SoftmaxPolicy)
	n.resetErrors()

	outputs := n.outputUnits()
	probs := make([]float64, len(outputs))
	index := -1
	for i, id := range outputs {
		probs[i] = n.units[id].Probability
		if id == target {
			index = i
		}
	}
	grad := make([]float64, len(outputs))
	loss.CrossEntropy{}.BackwardInPlace(probs, loss.OneHot(nil, len(outputs), index), grad)
	for i, id := range outputs {
		n.units[id].Error = grad[i]
	}
	return n.propagate(lr)
}

func (n *Network) resetErrors() {
	for _, u := range n.units {
		u.Error = 0
	}
}

// propagate computes the error of hidden units in reverse creation order
// from the output errors already set, then moves every internal weight by
// -lr * upstream value * downstream error and every non-input bias by
// +lr * error.
func (n *Network) propagate(lr float64) error {
	for i := len(n.units) - 1; i >= 0; i-- {
		if n.isInput[i] || n.isOutput[i] {
			continue
		}
		u := n.units[i]
		var sum float64
		for _, eid := range u.outgoing {
			e := n.edges[eid]
			if e.downstream == NoUnit {
				continue
			}
			sum += e.Weight * n.units[e.downstream].Error
		}
		d, err := u.Activation.Derivative(u.Value)
		if err != nil {
			return errors.Wrapf(err, "hidden unit %q", u.Name)
		}
		u.Error = d * sum
	}

	var (
		internal []*Edge
		params   []float64
		grads    []float64
	)
	for _, e := range n.edges {
		if e.upstream == NoUnit || e.downstream == NoUnit {
			continue
		}
		internal = append(internal, e)
		params = append(params, e.Weight)
		grads = append(grads, n.units[e.upstream].Value*n.units[e.downstream].Error)
	}
	biased := len(params)
	for i, u := range n.units {
		if n.isInput[i] {
			continue
		}
		params = append(params, u.Bias)
		grads = append(grads, -u.Error)
	}

	opt.SGD{LearningRate: lr}.StepInPlace(params, grads)

	for k, e := range internal {
		e.Weight = params[k]
	}
	k := biased
	for i, u := range n.units {
		if n.isInput[i] {
			continue
		}
		u.Bias = params[k]
		k++
	}
	return nil
}
