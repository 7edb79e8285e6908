// Package logic holds the truth tables used to exercise the builders.
package logic

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/net"
)

// ErrUnknownProblem is returned for names without a truth table.
var ErrUnknownProblem = errors.New("unknown problem")

// Labels name the two output classes of every table, false first.
var Labels = []string{"0", "1"}

var tables = map[string][]net.Example{
	"or": {
		{Inputs: []float64{0, 0}, Label: 0},
		{Inputs: []float64{0, 1}, Label: 1},
		{Inputs: []float64{1, 0}, Label: 1},
		{Inputs: []float64{1, 1}, Label: 1},
	},
	"and": {
		{Inputs: []float64{0, 0}, Label: 0},
		{Inputs: []float64{0, 1}, Label: 0},
		{Inputs: []float64{1, 0}, Label: 0},
		{Inputs: []float64{1, 1}, Label: 1},
	},
	"not": {
		{Inputs: []float64{0}, Label: 1},
		{Inputs: []float64{1}, Label: 0},
	},
	"xor": {
		{Inputs: []float64{0, 0}, Label: 0},
		{Inputs: []float64{0, 1}, Label: 1},
		{Inputs: []float64{1, 0}, Label: 1},
		{Inputs: []float64{1, 1}, Label: 0},
	},
}

// Names lists the known problems in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name has a truth table.
func Known(name string) bool {
	_, ok := tables[name]
	return ok
}

// Table returns a copy of the truth table of name.
func Table(name string) ([]net.Example, error) {
	t, ok := tables[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProblem, "%q", name)
	}
	out := make([]net.Example, len(t))
	for i, ex := range t {
		out[i] = net.Example{Inputs: append([]float64(nil), ex.Inputs...), Label: ex.Label}
	}
	return out, nil
}

// Arity is the number of inputs of name, 0 when unknown.
func Arity(name string) int {
	t, ok := tables[name]
	if !ok {
		return 0
	}
	return len(t[0].Inputs)
}
