package knapsack

import (
	"fmt"
	"math"

	"github.com/npillmayer/knapsack/cp"
	"github.com/npillmayer/knapsack/trail"
)

// ItemState tells whether an item has been fixed.
type ItemState int8

// Item states. Added and Removed revert to Undetermined on backtrack only.
const (
	Removed      ItemState = -1
	Undetermined ItemState = 0
	Added        ItemState = 1
)

func (s ItemState) String() string {
	switch s {
	case Added:
		return "ADDED"
	case Removed:
		return "REMOVED"
	}
	return "UNDETERMINED"
}

// PropKnapsack propagates
//
//	Σ weights[i]·items[i] ≤ capacity   and   Σ profits[i]·items[i] = power
//
// for 0/1 variables items[i]. Its variables are items..., capacity, power.
//
// Consistency of the sums themselves is left to companion sum propagators;
// PropKnapsack fixes items which are mandatory or forbidden with respect to
// the Dantzig relaxation, and bounds power by the relaxation.
type PropKnapsack struct {
	cp.PropagatorBase
	env      *trail.Environment
	n        int
	capacity *cp.IntVar
	power    *cp.IntVar
	*trees
	state         []ItemState
	usedCapacity  int // weight of added items
	powerCreated  int // profit of added items
	info          Info
	mustRecompute bool
	lastWorld     int // world index of the last computation of info
	boundPower    bool
	stats         Stats
}

// Option configures a PropKnapsack.
type Option func(*PropKnapsack)

// WithPowerBound lets the propagator tighten the upper bound of power to the
// value of the relaxation. This requires power to equal the profit of the
// packed items, and makes the propagator fail as soon as the relaxation drops
// below the lower bound of power.
func WithPowerBound() Option {
	return func(p *PropKnapsack) {
		p.boundPower = true
	}
}

// Stats counts the work done by a propagator.
type Stats struct {
	Recomputations int
	Mandatory      int // items fixed to 1
	Forbidden      int // items fixed to 0
	Skipped        int // full propagations without filtering, relaxation below bound
}

// NewPropKnapsack creates a knapsack propagator. items have to be 0/1
// variables; weights and profits are index-aligned with items.
func NewPropKnapsack(env *trail.Environment, items []*cp.IntVar, capacity, power *cp.IntVar,
	weights, profits []int, opts ...Option) (*PropKnapsack, error) {
	//
	if env == nil || capacity == nil || power == nil {
		return nil, fmt.Errorf("%w: environment, capacity and power are required", ErrIllegalArguments)
	}
	if len(items) != len(weights) || len(items) != len(profits) {
		return nil, fmt.Errorf("%w: %d items, %d weights, %d profits", ErrIllegalArguments,
			len(items), len(weights), len(profits))
	}
	for i, x := range items {
		if x == nil || x.LB() < 0 || x.UB() > 1 {
			return nil, fmt.Errorf("%w: item %d is not a 0/1 variable", ErrIllegalArguments, i)
		}
	}
	trees, err := newTrees(profits, weights)
	if err != nil {
		return nil, err
	}
	vars := make([]*cp.IntVar, 0, len(items)+2)
	vars = append(vars, items...)
	vars = append(vars, capacity, power)
	p := &PropKnapsack{
		PropagatorBase: cp.NewPropagatorBase(vars...),
		env:            env,
		n:              len(items),
		capacity:       capacity,
		power:          power,
		trees:          trees,
		state:          make([]ItemState, len(items)),
		mustRecompute:  true,
		lastWorld:      env.WorldIndex(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *PropKnapsack) String() string {
	return fmt.Sprintf("knapsack(%d items, %v, %v)", p.n, p.capacity, p.power)
}

// PropagationConditions: items wake the propagator when they are fixed,
// capacity when its upper bound decreases, power when its lower bound increases.
func (p *PropKnapsack) PropagationConditions(vIdx int) cp.EventMask {
	switch {
	case vIdx < p.n:
		return cp.BoundAndInst
	case vIdx == p.n:
		return cp.DecUpp
	}
	return cp.IncLow
}

// IsEntailed is always undefined; entailment is decided by the sum propagators.
func (p *PropKnapsack) IsEntailed() cp.ESat {
	return cp.Undefined
}

// PropagateVar reacts to an event on a single variable. Fixed items are
// taken out of the trees. A coarse propagation is scheduled in any case.
func (p *PropKnapsack) PropagateVar(vIdx int, mask cp.EventMask) error {
	if vIdx < p.n {
		x := p.Vars()[vIdx]
		switch {
		case x.IsInstantiatedTo(0):
			if err := p.removeItemFromProblem(vIdx, false); err != nil {
				return err
			}
		case x.IsInstantiatedTo(1):
			if err := p.addItemToSolution(vIdx, false); err != nil {
				return err
			}
		}
	}
	if vIdx <= p.n || p.env.WorldIndex() < p.lastWorld {
		p.mustRecompute = true
	}
	p.ForcePropagate(cp.CustomPropagation)
	return nil
}

// Propagate filters items until no further item can be fixed. A full
// propagation first takes items out of the trees which have been fixed
// without notifying the propagator.
func (p *PropKnapsack) Propagate(evt cp.PropagatorEvent) error {
	if evt == cp.FullPropagation {
		if err := p.syncFixedItems(); err != nil {
			return err
		}
	}
	for {
		if p.env.WorldIndex() < p.lastWorld {
			tracer().Debugf("knapsack: backtrack detected, world %d < %d", p.env.WorldIndex(), p.lastWorld)
			p.mustRecompute = true
		}
		if p.mustRecompute {
			if err := p.computeCriticalInfo(); err != nil {
				return err
			}
		}
		if p.boundPower {
			if err := p.tightenPower(); err != nil {
				return err
			}
		}
		lb := float64(p.power.LB() - p.powerCreated)
		if p.info.Profit < lb {
			tracer().Debugf("knapsack: relaxation %.4f below lower bound %.0f, no filtering", p.info.Profit, lb)
			p.stats.Skipped++
			return nil
		}
		mandatory := p.mandatoryItems(p.info, lb)
		forbidden := p.forbiddenItems(p.info, lb)
		if len(mandatory) == 0 && len(forbidden) == 0 {
			return nil
		}
		for _, i := range mandatory {
			if err := p.addItemToSolution(i, true); err != nil {
				return err
			}
			p.stats.Mandatory++
		}
		for _, i := range forbidden {
			if err := p.removeItemFromProblem(i, true); err != nil {
				return err
			}
			p.stats.Forbidden++
		}
	}
}

// syncFixedItems takes items out of the trees which have been fixed before
// the propagator was posted or scheduled for a full propagation.
func (p *PropKnapsack) syncFixedItems() error {
	for i, x := range p.Vars()[:p.n] {
		switch {
		case x.IsInstantiatedTo(0):
			if err := p.removeItemFromProblem(i, false); err != nil {
				return err
			}
		case x.IsInstantiatedTo(1):
			if err := p.addItemToSolution(i, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// computeCriticalInfo recomputes the relaxation for the capacity left over by
// added items.
func (p *PropKnapsack) computeCriticalInfo() error {
	residual := p.capacity.UB() - p.usedCapacity
	if residual < 0 {
		return cp.Fail(p, p.capacity, "items of weight %d exceed capacity %d", p.usedCapacity, p.capacity.UB())
	}
	p.info = p.relax.FindCriticalItem(residual)
	p.mustRecompute = false
	p.lastWorld = p.env.WorldIndex()
	p.env.Save(RelaxationInvalidation{prop: p})
	p.stats.Recomputations++
	tracer().Debugf("knapsack: residual capacity %d, %v", residual, p.info)
	return nil
}

// tightenPower applies the relaxation as an upper bound to power. Offset
// keeps rounding noise from cutting off an integral optimum.
func (p *PropKnapsack) tightenPower() error {
	ub := p.powerCreated + int(math.Floor(p.info.Profit+Offset))
	_, err := p.power.UpdateUpperBound(ub, p)
	return err
}

// addItemToSolution marks item i as packed. The undo entry is saved before
// the variable is touched, so a contradiction leaves a consistent trail.
func (p *PropKnapsack) addItemToSolution(i int, fixVar bool) error {
	if p.state[i] != Undetermined {
		return nil
	}
	p.state[i] = Added
	p.deactivate(i)
	p.usedCapacity += p.weights[i]
	p.powerCreated += p.profits[i]
	p.env.Save(ItemReactivation{
		Item:     i,
		Expected: Added,
		Weight:   p.weights[i],
		Profit:   p.profits[i],
		prop:     p,
	})
	p.mustRecompute = true
	if fixVar {
		tracer().Debugf("knapsack: item %d is mandatory", i)
		if _, err := p.Vars()[i].RemoveValue(0, p); err != nil {
			return err
		}
	}
	return nil
}

// removeItemFromProblem marks item i as excluded.
func (p *PropKnapsack) removeItemFromProblem(i int, fixVar bool) error {
	if p.state[i] != Undetermined {
		return nil
	}
	p.state[i] = Removed
	p.deactivate(i)
	p.env.Save(ItemReactivation{
		Item:     i,
		Expected: Removed,
		prop:     p,
	})
	p.mustRecompute = true
	if fixVar {
		tracer().Debugf("knapsack: item %d is forbidden", i)
		if _, err := p.Vars()[i].RemoveValue(1, p); err != nil {
			return err
		}
	}
	return nil
}

// activateItem reverts addItemToSolution or removeItemFromProblem.
func (p *PropKnapsack) activateItem(r ItemReactivation) {
	if p.state[r.Item] != r.Expected {
		panic(fmt.Sprintf("knapsack: item %d is %v, undo expects %v", r.Item, p.state[r.Item], r.Expected))
	}
	p.activate(r.Item)
	p.usedCapacity -= r.Weight
	p.powerCreated -= r.Profit
	p.state[r.Item] = Undetermined
	p.mustRecompute = true
}

// State returns the state of item i.
func (p *PropKnapsack) State(i int) ItemState {
	return p.state[i]
}

// UsedCapacity returns the weight of the items packed so far.
func (p *PropKnapsack) UsedCapacity() int {
	return p.usedCapacity
}

// PowerCreated returns the profit of the items packed so far.
func (p *PropKnapsack) PowerCreated() int {
	return p.powerCreated
}

// CriticalInfo returns the relaxation as of the last computation. It is
// stale if items have been fixed since.
func (p *PropKnapsack) CriticalInfo() (Info, bool) {
	return p.info, !p.mustRecompute
}

// Stats returns the propagator's counters.
func (p *PropKnapsack) Stats() Stats {
	return p.stats
}

// RelaxationTree exposes the propagator's relaxation tree (for debugging).
func (p *PropKnapsack) RelaxationTree() *RelaxationTree {
	return p.relax
}

// SkipSearchTree exposes the propagator's skip-search tree (for debugging).
func (p *PropKnapsack) SkipSearchTree() *SkipSearchTree {
	return p.skip
}

var _ cp.Propagator = (*PropKnapsack)(nil)

// --- Trail entries ---------------------------------------------------------

// ItemReactivation undoes the fixing of an item: the item's leaves are
// re-activated and the saved weight and profit are given back.
type ItemReactivation struct {
	Item     int
	Expected ItemState // state the item must be in when undoing
	Weight   int       // weight to subtract from usedCapacity
	Profit   int       // profit to subtract from powerCreated
	prop     *PropKnapsack
}

// Undo re-activates the item. It panics if the item is not in the expected
// state, which means trail and trees are out of sync.
func (r ItemReactivation) Undo() {
	r.prop.activateItem(r)
}

func (r ItemReactivation) String() string {
	return fmt.Sprintf("reactivate(item=%d, %v, -%d/-%d)", r.Item, r.Expected, r.Weight, r.Profit)
}

// RelaxationInvalidation marks the cached relaxation as stale when the
// world in which it was computed is left.
type RelaxationInvalidation struct {
	prop *PropKnapsack
}

// Undo sets the propagator's dirty flag.
func (r RelaxationInvalidation) Undo() {
	r.prop.mustRecompute = true
}

func (r RelaxationInvalidation) String() string {
	return "invalidate(relaxation)"
}

var _ trail.Entry = ItemReactivation{}
var _ trail.Entry = RelaxationInvalidation{}
