package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/knapsack/cp"
)

// Solution is an assignment of the decision variables.
type Solution struct {
	Index  int   // solutions are numbered from 1
	Values []int // aligned with the solver's decision variables
}

func (s Solution) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d:", s.Index)
	for _, v := range s.Values {
		fmt.Fprintf(&b, " %d", v)
	}
	return b.String()
}

// Stats counts the work done by a search.
type Stats struct {
	Nodes     int // decisions taken
	Fails     int // decisions refuted by propagation
	Solutions int
	MaxDepth  int
	Engine    EngineStats
}

// Recorder receives search events, e.g. to export them as metrics.
type Recorder interface {
	Node(depth int)
	Fail()
	Solution()
}

// Solver enumerates the solutions of a model.
type Solver struct {
	model    *Model
	decision []*cp.IntVar
	limit    int
	recorder Recorder
}

// Option configures a Solver.
type Option func(*Solver)

// WithDecisionVars restricts branching to vars, which are branched on in the
// given order. Default is every variable of the model in creation order.
func WithDecisionVars(vars ...*cp.IntVar) Option {
	return func(s *Solver) {
		s.decision = vars
	}
}

// WithLimit stops the search after n solutions. n ≤ 0 means no limit.
func WithLimit(n int) Option {
	return func(s *Solver) {
		s.limit = n
	}
}

// WithRecorder reports search events to r.
func WithRecorder(r Recorder) Option {
	return func(s *Solver) {
		s.recorder = r
	}
}

// New creates a solver for model m.
func New(m *Model, opts ...Option) *Solver {
	s := &Solver{model: m}
	for _, opt := range opts {
		opt(s)
	}
	if s.decision == nil {
		s.decision = m.Vars()
	}
	return s
}

// DecisionVars returns the variables the solver branches on.
func (s *Solver) DecisionVars() []*cp.IntVar {
	return s.decision
}

var errLimitReached = errors.New("solver: solution limit reached")

type search struct {
	*Solver
	ctx        context.Context
	base       int // world index of the root of the search
	onSolution func(Solution) error
	stats      Stats
}

// FindAll enumerates the solutions of the model and calls onSolution for each
// of them. A non-nil error from onSolution stops the search and is returned.
// The model's domains are restored when FindAll returns.
func (s *Solver) FindAll(ctx context.Context, onSolution func(Solution) error) (Stats, error) {
	env := s.model.Env()
	start := env.WorldIndex()
	env.WorldPush()
	defer func() {
		if err := env.WorldPopUntil(start); err != nil {
			tracer().Errorf("solver: cannot restore world %d: %v", start, err)
		}
	}()
	srch := &search{Solver: s, ctx: ctx, base: env.WorldIndex(), onSolution: onSolution}
	engine := s.model.Engine()
	before := engine.Stats()
	engine.ScheduleAll()
	err := engine.Propagate()
	var c *cp.Contradiction
	switch {
	case errors.As(err, &c):
		srch.fail()
		err = nil
	case err == nil:
		err = srch.dfs(0)
	}
	if errors.Is(err, errLimitReached) {
		err = nil
	}
	after := engine.Stats()
	srch.stats.Engine = EngineStats{
		VarPropagations:    after.VarPropagations - before.VarPropagations,
		CoarsePropagations: after.CoarsePropagations - before.CoarsePropagations,
		Contradictions:     after.Contradictions - before.Contradictions,
	}
	tracer().Infof("solver: %d solutions, %d nodes, %d fails", srch.stats.Solutions,
		srch.stats.Nodes, srch.stats.Fails)
	return srch.stats, err
}

// dfs branches on the first uninstantiated decision variable at or after pos.
func (srch *search) dfs(pos int) error {
	if err := srch.ctx.Err(); err != nil {
		return err
	}
	for pos < len(srch.decision) && srch.decision[pos].IsInstantiated() {
		pos++
	}
	if pos == len(srch.decision) {
		return srch.solution()
	}
	x := srch.decision[pos]
	env := srch.model.Env()
	lb, ub := x.LB(), x.UB()
	for value := lb; value <= ub; value++ {
		env.WorldPush()
		srch.node(env.WorldIndex() - srch.base)
		err := srch.decide(x, value)
		var c *cp.Contradiction
		switch {
		case errors.As(err, &c):
			srch.fail()
		case err == nil:
			err = srch.dfs(pos + 1)
		}
		if popErr := env.WorldPop(); popErr != nil {
			return popErr
		}
		if err != nil && !errors.As(err, &c) {
			return err
		}
	}
	return nil
}

func (srch *search) decide(x *cp.IntVar, value int) error {
	tracer().Debugf("solver: decide %s = %d", x.Name(), value)
	if _, err := x.InstantiateTo(value, nil); err != nil {
		return err
	}
	return srch.model.Propagate()
}

func (srch *search) solution() error {
	srch.stats.Solutions++
	if srch.recorder != nil {
		srch.recorder.Solution()
	}
	sol := Solution{Index: srch.stats.Solutions, Values: make([]int, len(srch.decision))}
	for i, x := range srch.decision {
		sol.Values[i] = x.Value()
	}
	tracer().Debugf("solver: solution %v", sol)
	if srch.onSolution != nil {
		if err := srch.onSolution(sol); err != nil {
			return err
		}
	}
	if srch.limit > 0 && srch.stats.Solutions >= srch.limit {
		return errLimitReached
	}
	return nil
}

func (srch *search) node(depth int) {
	srch.stats.Nodes++
	srch.stats.MaxDepth = max(srch.stats.MaxDepth, depth)
	if srch.recorder != nil {
		srch.recorder.Node(depth)
	}
}

func (srch *search) fail() {
	srch.stats.Fails++
	if srch.recorder != nil {
		srch.recorder.Fail()
	}
}
