package topology

import "math/rand"

// Initializer yields initial edge weights, one per call, in edge creation
// order.
type Initializer interface {
	Next() float64
}

type uniform struct {
	rng          *rand.Rand
	lower, upper float64
}

// Uniform draws weights uniformly from [lower, upper). Zero is discarded and
// drawn again.
func Uniform(rng *rand.Rand, lower, upper float64) Initializer {
	if lower > upper {
		lower, upper = upper, lower
	}
	return &uniform{rng: rng, lower: lower, upper: upper}
}

func (u *uniform) Next() float64 {
	if u.lower == 0 && u.upper == 0 {
		return 0
	}
	for {
		if w := u.rng.Float64()*(u.upper-u.lower) + u.lower; w != 0 {
			return w
		}
	}
}

type constant float64

// Constant gives every edge the same weight.
func Constant(w float64) Initializer { return constant(w) }

func (c constant) Next() float64 { return float64(c) }

type values struct {
	ws []float64
	i  int
}

// Values hands out the given weights in order and starts over once they run
// out.
func Values(ws ...float64) Initializer {
	return &values{ws: ws}
}

func (v *values) Next() float64 {
	if len(v.ws) == 0 {
		return 0
	}
	w := v.ws[v.i%len(v.ws)]
	v.i++
	return w
}
