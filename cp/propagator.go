package cp

// Scheduler accepts requests for coarse propagation.
type Scheduler interface {
	Schedule(p Propagator, evt PropagatorEvent)
}

// Propagator filters the domains of its variables.
//
// Propagate is called once when the propagator is posted and whenever a coarse
// propagation has been scheduled for it. PropagateVar is called for every event
// on variable Vars()[vIdx] which matches PropagationConditions(vIdx), except for
// events caused by the propagator itself. Both return a *Contradiction if the
// current domains admit no solution.
type Propagator interface {
	Vars() []*IntVar
	PropagationConditions(vIdx int) EventMask
	Propagate(evt PropagatorEvent) error
	PropagateVar(vIdx int, mask EventMask) error
	IsEntailed() ESat
	Attach(s Scheduler, self Propagator)
}

// PropagatorBase implements the bookkeeping part of Propagator. Propagators
// embed it and implement the filtering methods. The default PropagateVar
// schedules a coarse propagation.
type PropagatorBase struct {
	vars  []*IntVar
	sched Scheduler
	self  Propagator
}

// NewPropagatorBase creates a base over vars.
func NewPropagatorBase(vars ...*IntVar) PropagatorBase {
	return PropagatorBase{vars: vars}
}

// Vars returns the propagator's variables.
func (b *PropagatorBase) Vars() []*IntVar {
	return b.vars
}

// Attach connects the propagator to a scheduler. self is the embedding
// propagator.
func (b *PropagatorBase) Attach(s Scheduler, self Propagator) {
	b.sched = s
	b.self = self
}

// ForcePropagate schedules a coarse propagation of the embedding propagator.
// Without a scheduler this is a no-op.
func (b *PropagatorBase) ForcePropagate(evt PropagatorEvent) {
	if b.sched != nil && b.self != nil {
		b.sched.Schedule(b.self, evt)
	}
}

// PropagateVar schedules a coarse propagation.
func (b *PropagatorBase) PropagateVar(vIdx int, mask EventMask) error {
	b.ForcePropagate(CustomPropagation)
	return nil
}
