// Package activations provides the unit activation functions and their
// derivatives expressed in terms of the unit output.
package activations

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ErrNotDifferentiable is returned when a derivative is requested from a
// threshold activation.
var ErrNotDifferentiable = errors.New("activation is not differentiable")

// Kind is the closed set of activations a unit can carry.
// Every activation receives the weighted sum of the unit inputs and the unit
// bias, and compares them as sum - bias.
type Kind int

const (
	// Identity passes the weighted sum through, ignoring the bias.
	Identity Kind = iota
	// Step outputs 1 when sum >= bias, else 0.
	Step
	// Sign outputs 1, -1 or 0 depending on how sum compares to bias.
	Sign
	// Logistic computes 1 / (1 + exp(bias - sum)).
	Logistic
	// Tanh computes tanh(sum - bias).
	Tanh
)

var names = map[Kind]string{
	Identity: "identity",
	Step:     "step",
	Sign:     "sign",
	Logistic: "logistic",
	Tanh:     "tanh",
}

// String returns the lower case name of the activation.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind resolves an activation from its name.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range names {
		if name == s {
			return k, nil
		}
	}
	return 0, errors.Errorf("unknown activation %q", s)
}

// Activate computes the unit output for a weighted sum and a bias.
func (k Kind) Activate(sum, bias float64) float64 {
	switch k {
	case Identity:
		return sum
	case Step:
		if sum >= bias {
			return 1
		}
		return 0
	case Sign:
		if sum > bias {
			return 1
		} else if sum < bias {
			return -1
		}
		return 0
	case Logistic:
		return logistic(sum - bias)
	case Tanh:
		return math.Tanh(sum - bias)
	}
	panic("activations: unknown kind")
}

// logistic avoids exp overflow by only ever exponentiating a non-positive
// argument.
func logistic(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// Differentiable reports whether Derivative is defined for k.
func (k Kind) Differentiable() bool {
	switch k {
	case Identity, Logistic, Tanh:
		return true
	}
	return false
}

// Derivative returns the derivative of the activation given its own output.
// Step and Sign have no usable gradient and return ErrNotDifferentiable.
func (k Kind) Derivative(out float64) (float64, error) {
	switch k {
	case Identity:
		return 1, nil
	case Logistic:
		return out * (1 - out), nil
	case Tanh:
		return 1 - out*out, nil
	}
	return 0, errors.Wrapf(ErrNotDifferentiable, "%s", k)
}

// Softmax writes exp(x_i - max) / sum(exp(x_j - max)) into dst and returns it.
// dst is allocated when it is too short; dst and values may alias.
func Softmax(dst, values []float64) []float64 {
	if len(values) == 0 {
		return dst[:0]
	}
	if cap(dst) < len(values) {
		dst = make([]float64, len(values))
	}
	dst = dst[:len(values)]

	maxVal := floats.Max(values)
	for i, v := range values {
		dst[i] = math.Exp(v - maxVal)
	}
	sum := floats.Sum(dst)
	for i := range dst {
		dst[i] /= sum
	}
	return dst
}
