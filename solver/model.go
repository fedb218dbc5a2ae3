package solver

import (
	"fmt"

	"github.com/npillmayer/knapsack"
	"github.com/npillmayer/knapsack/cp"
	"github.com/npillmayer/knapsack/trail"
)

// Model is a set of variables and propagators sharing a trail and an engine.
type Model struct {
	name      string
	env       *trail.Environment
	engine    *Engine
	vars      []*cp.IntVar
	props     []cp.Propagator
	knapsacks []*knapsack.PropKnapsack
}

// NewModel creates an empty model.
func NewModel(name string) *Model {
	return &Model{
		name:   name,
		env:    trail.New(),
		engine: NewEngine(),
	}
}

// Name returns the model's name.
func (m *Model) Name() string {
	return m.name
}

// Env returns the model's trail.
func (m *Model) Env() *trail.Environment {
	return m.env
}

// Engine returns the model's propagation engine.
func (m *Model) Engine() *Engine {
	return m.engine
}

// Vars returns the model's variables in order of creation.
func (m *Model) Vars() []*cp.IntVar {
	return m.vars
}

// Propagators returns the posted propagators.
func (m *Model) Propagators() []cp.Propagator {
	return m.props
}

// Knapsacks returns the knapsack propagators posted through Knapsack.
func (m *Model) Knapsacks() []*knapsack.PropKnapsack {
	return m.knapsacks
}

// IntVar creates a variable with domain [lb, ub].
func (m *Model) IntVar(name string, lb, ub int) (*cp.IntVar, error) {
	v, err := cp.NewIntVar(name, lb, ub, m.env)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalArguments, err)
	}
	m.engine.AddVar(v)
	m.vars = append(m.vars, v)
	return v, nil
}

// BoolVar creates a 0/1 variable.
func (m *Model) BoolVar(name string) (*cp.IntVar, error) {
	return m.IntVar(name, 0, 1)
}

// BoolVarArray creates n 0/1 variables named prefix[0], prefix[1], ….
func (m *Model) BoolVarArray(prefix string, n int) ([]*cp.IntVar, error) {
	vars := make([]*cp.IntVar, n)
	for i := range vars {
		v, err := m.BoolVar(fmt.Sprintf("%s[%d]", prefix, i))
		if err != nil {
			return nil, err
		}
		vars[i] = v
	}
	return vars, nil
}

// Post adds propagators to the model. They are run when the model is
// propagated next.
func (m *Model) Post(props ...cp.Propagator) error {
	for _, p := range props {
		if err := m.engine.Register(p); err != nil {
			return err
		}
		m.props = append(m.props, p)
	}
	return nil
}

// Propagate runs the engine until fixpoint.
func (m *Model) Propagate() error {
	return m.engine.Propagate()
}

// KnapsackOption configures the constraint posted by Model.Knapsack.
type KnapsackOption func(*knapsackConfig)

type knapsackConfig struct {
	relaxation bool
	opts       []knapsack.Option
}

// WithoutRelaxation posts the sums only, without a knapsack propagator.
func WithoutRelaxation() KnapsackOption {
	return func(c *knapsackConfig) {
		c.relaxation = false
	}
}

// WithPowerBound lets the knapsack propagator bound power by the relaxation.
func WithPowerBound() KnapsackOption {
	return func(c *knapsackConfig) {
		c.opts = append(c.opts, knapsack.WithPowerBound())
	}
}

// Knapsack posts
//
//	Σ weights[i]·items[i] = capacity   and   Σ profits[i]·items[i] = power
//
// as two scalar sums, plus a knapsack propagator filtering items by the
// Dantzig relaxation. It returns the knapsack propagator, which is nil with
// WithoutRelaxation.
func (m *Model) Knapsack(items []*cp.IntVar, capacity, power *cp.IntVar, weights, profits []int,
	opts ...KnapsackOption) (*knapsack.PropKnapsack, error) {
	//
	conf := knapsackConfig{relaxation: true}
	for _, opt := range opts {
		opt(&conf)
	}
	weightSum, err := NewScalarSum(items, weights, capacity)
	if err != nil {
		return nil, err
	}
	profitSum, err := NewScalarSum(items, profits, power)
	if err != nil {
		return nil, err
	}
	if err = m.Post(weightSum, profitSum); err != nil {
		return nil, err
	}
	if !conf.relaxation {
		return nil, nil
	}
	prop, err := knapsack.NewPropKnapsack(m.env, items, capacity, power, weights, profits, conf.opts...)
	if err != nil {
		return nil, err
	}
	if err = m.Post(prop); err != nil {
		return nil, err
	}
	m.knapsacks = append(m.knapsacks, prop)
	tracer().Infof("model %s: posted %v", m.name, prop)
	return prop, nil
}
