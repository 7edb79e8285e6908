package net

// EdgeID is the handle of an edge inside its Network.
type EdgeID int

// Edge is a weighted directed link. A boundary edge has no upstream unit and
// carries a raw value fed from outside. A sink edge has no downstream unit
// and only marks its upstream as an output.
type Edge struct {
	Weight float64

	upstream   UnitID
	downstream UnitID
	raw        float64
	hasRaw     bool
}

// Upstream returns the unit the edge leaves, or NoUnit.
func (e *Edge) Upstream() UnitID { return e.upstream }

// Downstream returns the unit the edge enters, or NoUnit.
func (e *Edge) Downstream() UnitID { return e.downstream }

// Boundary reports whether the edge is fed from outside the network.
func (e *Edge) Boundary() bool { return e.upstream == NoUnit }

// Sink reports whether the edge marks its upstream unit as an output.
func (e *Edge) Sink() bool { return e.downstream == NoUnit }

// Raw returns the fed value of a boundary edge.
func (e *Edge) Raw() (float64, bool) { return e.raw, e.hasRaw }
