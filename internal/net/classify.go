package net

import "github.com/FlavioCFOliveira/GoPerceptron/internal/activations"

// Policy decides which output unit wins after a forward pass.
type Policy int

const (
	// Threshold picks the first output unit with a positive value.
	Threshold Policy = iota
	// MaxValue picks the output unit with the largest value.
	MaxValue
	// SoftmaxPolicy stores the softmax of the output values as each output
	// unit's Probability and picks the most probable one.
	SoftmaxPolicy
)

func (p Policy) String() string {
	switch p {
	case Threshold:
		return "threshold"
	case MaxValue:
		return "max-value"
	case SoftmaxPolicy:
		return "softmax"
	}
	return "unknown"
}

// Classify returns the winning output unit. The boolean is false when no
// output unit wins, which only happens under Threshold or when the network
// has no outputs. Ties go to the first unit in creation order.
func (n *Network) Classify(p Policy) (UnitID, bool) {
	outputs := n.outputUnits()
	if len(outputs) == 0 {
		return NoUnit, false
	}

	switch p {
	case Threshold:
		for _, id := range outputs {
			if n.units[id].Value > 0 {
				return id, true
			}
		}
		return NoUnit, false

	case MaxValue:
		best := outputs[0]
		for _, id := range outputs[1:] {
			if n.units[id].Value > n.units[best].Value {
				best = id
			}
		}
		return best, true

	case SoftmaxPolicy:
		n.values = n.values[:0]
		for _, id := range outputs {
			n.values = append(n.values, n.units[id].Value)
		}
		n.values = activations.Softmax(n.values, n.values)
		best := outputs[0]
		for i, id := range outputs {
			n.units[id].Probability = n.values[i]
			if n.values[i] > n.units[best].Probability {
				best = id
			}
		}
		return best, true
	}
	return NoUnit, false
}
