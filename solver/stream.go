package solver

import (
	"context"

	"github.com/guiguan/caster"
)

// SolutionStream broadcasts the solutions of a search to any number of
// subscribers. Subscribers have to subscribe before Run is called; their
// channels receive Solution values and are closed when the search ends.
type SolutionStream struct {
	solver *Solver
	ctx    context.Context
	cast   *caster.Caster
	stats  Stats
	err    error
}

// Stream prepares a broadcasting search. The search is started by Run.
func (s *Solver) Stream(ctx context.Context) *SolutionStream {
	return &SolutionStream{
		solver: s,
		ctx:    ctx,
		cast:   caster.New(ctx),
	}
}

// Subscribe returns a channel which receives the solutions. capacity is the
// channel's buffer size; the search blocks on subscribers which fall behind.
func (st *SolutionStream) Subscribe(ctx context.Context, capacity uint) (<-chan interface{}, bool) {
	return st.cast.Sub(ctx, capacity)
}

// Run searches for all solutions in the calling goroutine, publishing each
// solution to the subscribers. It closes the subscriber channels when done.
func (st *SolutionStream) Run() (Stats, error) {
	defer st.cast.Close()
	st.stats, st.err = st.solver.FindAll(st.ctx, func(sol Solution) error {
		if !st.cast.Pub(sol) {
			tracer().Infof("stream: broadcaster closed, stopping search")
			return context.Canceled
		}
		return nil
	})
	return st.stats, st.err
}
