package net

import "github.com/FlavioCFOliveira/GoPerceptron/internal/activations"

// UnitID is the handle of a unit inside its Network.
type UnitID int

// NoUnit marks an absent endpoint: the upstream of a boundary edge or the
// downstream of a sink edge.
const NoUnit UnitID = -1

// Unit is a computational node. Value, Error and Probability are rewritten by
// every forward and backward pass.
type Unit struct {
	Name       string
	Bias       float64
	Activation activations.Kind

	// Value is the output of the last activation.
	Value float64
	// Error is the error signal of the last chain-rule pass.
	Error float64
	// Probability is set by softmax classification on output units.
	Probability float64

	incoming []EdgeID
	outgoing []EdgeID
}

// Incoming returns the edges ending at u in creation order.
func (u *Unit) Incoming() []EdgeID {
	return append([]EdgeID(nil), u.incoming...)
}

// Outgoing returns the edges leaving u in creation order.
func (u *Unit) Outgoing() []EdgeID {
	return append([]EdgeID(nil), u.outgoing...)
}
