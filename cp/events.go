package cp

import "strings"

// EventMask is a set of domain events.
type EventMask uint8

// Domain events. A single modification may carry more than one of them.
const (
	IncLow      EventMask = 1 << iota // lower bound increased
	DecUpp                            // upper bound decreased
	Instantiate                       // domain became a singleton

	Bound        = IncLow | DecUpp
	BoundAndInst = Bound | Instantiate
	AllEvents    = BoundAndInst
)

func (m EventMask) String() string {
	if m == 0 {
		return "VOID"
	}
	var names []string
	if m&IncLow != 0 {
		names = append(names, "INCLOW")
	}
	if m&DecUpp != 0 {
		names = append(names, "DECUPP")
	}
	if m&Instantiate != 0 {
		names = append(names, "INSTANTIATE")
	}
	return strings.Join(names, "|")
}

// ESat is a three-valued entailment estimate.
type ESat int8

// Entailment values.
const (
	False ESat = iota - 1
	Undefined
	True
)

func (e ESat) String() string {
	switch e {
	case False:
		return "FALSE"
	case True:
		return "TRUE"
	}
	return "UNDEFINED"
}

// PropagatorEvent tells a propagator why a coarse propagation has been
// scheduled.
type PropagatorEvent uint8

// Propagator events.
const (
	// FullPropagation is the initial propagation of a propagator and any
	// propagation which has to reconsider every variable.
	FullPropagation PropagatorEvent = iota + 1
	// CustomPropagation is a coarse propagation requested by a propagator
	// after fine grained events.
	CustomPropagation
)
