package solver

import (
	"fmt"

	"github.com/npillmayer/knapsack/cp"
)

// ScalarSum enforces Σ coeffs[i]·vars[i] = total by bounds reasoning:
//
//   - total is pruned to [SumMin, SumMax], where SumMin (SumMax) adds up
//     coeffs[i] times the lower (upper) bound of vars[i]
//   - each vars[k] is pruned to the interval for which coeffs[k]·vars[k] lies in
//     [total.LB − OtherMax, total.UB − OtherMin]
//
// Coefficients must not be negative.
type ScalarSum struct {
	cp.PropagatorBase
	coeffs []int
	n      int
}

// NewScalarSum creates a sum propagator.
func NewScalarSum(vars []*cp.IntVar, coeffs []int, total *cp.IntVar) (*ScalarSum, error) {
	if len(vars) != len(coeffs) {
		return nil, fmt.Errorf("%w: %d variables but %d coefficients", ErrIllegalArguments,
			len(vars), len(coeffs))
	}
	if total == nil {
		return nil, fmt.Errorf("%w: total is required", ErrIllegalArguments)
	}
	for i, c := range coeffs {
		if c < 0 {
			return nil, fmt.Errorf("%w: coefficient %d is negative", ErrIllegalArguments, i)
		}
		if vars[i] == nil {
			return nil, fmt.Errorf("%w: variable %d is nil", ErrIllegalArguments, i)
		}
	}
	all := make([]*cp.IntVar, 0, len(vars)+1)
	all = append(all, vars...)
	all = append(all, total)
	return &ScalarSum{
		PropagatorBase: cp.NewPropagatorBase(all...),
		coeffs:         append([]int(nil), coeffs...),
		n:              len(vars),
	}, nil
}

func (s *ScalarSum) String() string {
	return fmt.Sprintf("sum(%d terms = %s)", s.n, s.total().Name())
}

func (s *ScalarSum) total() *cp.IntVar {
	return s.Vars()[s.n]
}

// PropagationConditions: any bound change.
func (s *ScalarSum) PropagationConditions(vIdx int) cp.EventMask {
	return cp.Bound
}

func (s *ScalarSum) bounds() (sumMin, sumMax int) {
	for i, x := range s.Vars()[:s.n] {
		sumMin += s.coeffs[i] * x.LB()
		sumMax += s.coeffs[i] * x.UB()
	}
	return
}

// Propagate prunes until the bounds are consistent. Events caused by the sum
// itself are not delivered to it, so it iterates on its own.
func (s *ScalarSum) Propagate(evt cp.PropagatorEvent) error {
	for {
		changed, err := s.prune()
		if err != nil || !changed {
			return err
		}
	}
}

func (s *ScalarSum) prune() (bool, error) {
	sumMin, sumMax := s.bounds()
	t := s.total()
	c1, err := t.UpdateLowerBound(sumMin, s)
	if err != nil {
		return false, err
	}
	c2, err := t.UpdateUpperBound(sumMax, s)
	if err != nil {
		return false, err
	}
	changed := c1 || c2
	tMin, tMax := t.LB(), t.UB()
	for i, x := range s.Vars()[:s.n] {
		c := s.coeffs[i]
		if c == 0 || x.IsInstantiated() {
			continue
		}
		otherMin := sumMin - c*x.LB()
		otherMax := sumMax - c*x.UB()
		lo, hi := ceilDiv(tMin-otherMax, c), floorDiv(tMax-otherMin, c)
		// other bounds may have moved within this pass; sumMin/sumMax are loose then, not wrong
		up, err := x.UpdateLowerBound(lo, s)
		if err != nil {
			return false, err
		}
		down, err := x.UpdateUpperBound(hi, s)
		if err != nil {
			return false, err
		}
		changed = changed || up || down
	}
	return changed, nil
}

// IsEntailed checks the sum against the current bounds.
func (s *ScalarSum) IsEntailed() cp.ESat {
	sumMin, sumMax := s.bounds()
	t := s.total()
	switch {
	case sumMin > t.UB() || sumMax < t.LB():
		return cp.False
	case sumMin == sumMax && t.IsInstantiatedTo(sumMin):
		return cp.True
	}
	return cp.Undefined
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && (a > 0) {
		q++
	}
	return q
}

var _ cp.Propagator = (*ScalarSum)(nil)
