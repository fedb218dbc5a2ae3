package solver

import (
	"errors"
	"fmt"

	"github.com/npillmayer/knapsack/cp"
)

// Engine dispatches domain events to propagators.
//
// Fine grained events are queued in FIFO order and delivered through
// PropagateVar to every propagator watching the variable, if the event matches
// the propagator's conditions. The propagator which caused an event is not
// notified of it. Coarse propagations requested through Schedule are run after
// the variable queue has been drained.
type Engine struct {
	vars     []*cp.IntVar
	props    []cp.Propagator
	index    map[cp.Propagator]int
	watchers [][]watch // per variable
	events   []varEvent
	coarse   []int // propagator indices
	pending  []cp.PropagatorEvent
	stats    EngineStats
}

// EngineStats counts the work done by an engine.
type EngineStats struct {
	VarPropagations    int
	CoarsePropagations int
	Contradictions     int
}

type watch struct {
	prop int // index of propagator
	vIdx int // index of variable within the propagator
}

type varEvent struct {
	v     *cp.IntVar
	mask  cp.EventMask
	cause cp.Propagator
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{index: make(map[cp.Propagator]int)}
}

// AddVar makes v report its events to the engine.
func (e *Engine) AddVar(v *cp.IntVar) {
	v.SetNotifier(e, len(e.vars))
	e.vars = append(e.vars, v)
	e.watchers = append(e.watchers, nil)
}

// Register adds a propagator and schedules its initial full propagation. All
// of the propagator's variables must have been added before.
func (e *Engine) Register(p cp.Propagator) error {
	if _, ok := e.index[p]; ok {
		return fmt.Errorf("%w: propagator %v posted twice", ErrIllegalArguments, p)
	}
	for _, v := range p.Vars() {
		if id := v.ID(); id < 0 || id >= len(e.vars) || e.vars[id] != v {
			return fmt.Errorf("%w: %s", ErrUnknownVariable, v.Name())
		}
	}
	idx := len(e.props)
	e.props = append(e.props, p)
	e.pending = append(e.pending, 0)
	e.index[p] = idx
	for vIdx, v := range p.Vars() {
		e.watchers[v.ID()] = append(e.watchers[v.ID()], watch{prop: idx, vIdx: vIdx})
	}
	p.Attach(e, p)
	e.Schedule(p, cp.FullPropagation)
	return nil
}

// Notify implements cp.Notifier.
func (e *Engine) Notify(v *cp.IntVar, mask cp.EventMask, cause cp.Propagator) {
	e.events = append(e.events, varEvent{v: v, mask: mask, cause: cause})
}

// Schedule implements cp.Scheduler. A propagator is queued at most once; a
// full propagation request supersedes a custom one.
func (e *Engine) Schedule(p cp.Propagator, evt cp.PropagatorEvent) {
	idx, ok := e.index[p]
	if !ok {
		tracer().Errorf("engine: schedule request for unknown propagator %v", p)
		return
	}
	if e.pending[idx] == 0 {
		e.coarse = append(e.coarse, idx)
		e.pending[idx] = evt
	} else if evt == cp.FullPropagation {
		e.pending[idx] = evt
	}
}

// ScheduleAll requests a full propagation of every propagator.
func (e *Engine) ScheduleAll() {
	for _, p := range e.props {
		e.Schedule(p, cp.FullPropagation)
	}
}

// Propagate runs propagators until no event is left. A contradiction empties
// the queues and is returned to the caller.
func (e *Engine) Propagate() error {
	for len(e.events) > 0 || len(e.coarse) > 0 {
		if len(e.events) > 0 {
			evt := e.events[0]
			e.events = e.events[1:]
			if err := e.dispatch(evt); err != nil {
				return e.fail(err)
			}
			continue
		}
		idx := e.coarse[0]
		e.coarse = e.coarse[1:]
		evt := e.pending[idx]
		e.pending[idx] = 0
		e.stats.CoarsePropagations++
		if err := e.props[idx].Propagate(evt); err != nil {
			return e.fail(err)
		}
	}
	e.events, e.coarse = e.events[:0], e.coarse[:0]
	return nil
}

func (e *Engine) dispatch(evt varEvent) error {
	for _, w := range e.watchers[evt.v.ID()] {
		p := e.props[w.prop]
		if p == evt.cause || evt.mask&p.PropagationConditions(w.vIdx) == 0 {
			continue
		}
		e.stats.VarPropagations++
		if err := p.PropagateVar(w.vIdx, evt.mask); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) fail(err error) error {
	e.flush()
	var c *cp.Contradiction
	if errors.As(err, &c) {
		e.stats.Contradictions++
		tracer().Debugf("engine: %v", c)
	} else {
		tracer().Errorf("engine: propagation failed: %v", err)
	}
	return err
}

func (e *Engine) flush() {
	e.events = e.events[:0]
	for _, idx := range e.coarse {
		e.pending[idx] = 0
	}
	e.coarse = e.coarse[:0]
}

// Stats returns the engine's counters.
func (e *Engine) Stats() EngineStats {
	return e.stats
}

var _ cp.Notifier = (*Engine)(nil)
var _ cp.Scheduler = (*Engine)(nil)
