package net

import "github.com/pkg/errors"

var (
	// ErrEdgeInvariant is returned when an edge has both or neither of a raw
	// value and an upstream unit.
	ErrEdgeInvariant = errors.New("edge must carry exactly one of a raw value or an upstream unit")
	// ErrNotBoundary is returned when a raw value is fed to an internal edge.
	ErrNotBoundary = errors.New("edge is not a boundary edge")
	ErrUnknownUnit = errors.New("unknown unit")
	ErrUnknownEdge = errors.New("unknown edge")
	// ErrUnknownOutput is returned when a training output name does not
	// designate an output unit.
	ErrUnknownOutput = errors.New("unknown output unit")
	ErrDuplicateName = errors.New("duplicate unit name")
	ErrInputSize     = errors.New("input vector does not match the number of input units")
	ErrLabelRange    = errors.New("label index out of range")
	ErrCycle         = errors.New("network contains a cycle")
	// ErrNotLayered is returned for graphs where a unit has predecessors
	// outside the immediately preceding layer.
	ErrNotLayered = errors.New("network is not strictly layered")
)
