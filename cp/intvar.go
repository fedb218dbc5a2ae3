package cp

import (
	"fmt"

	"github.com/npillmayer/knapsack/trail"
)

// Notifier receives domain events. The propagation engine implements it.
type Notifier interface {
	Notify(v *IntVar, mask EventMask, cause Propagator)
}

// IntVar is an integer variable with interval domain [LB, UB].
type IntVar struct {
	name     string
	id       int
	lb, ub   int
	env      *trail.Environment
	notifier Notifier
}

// NewIntVar creates a variable with domain [lb, ub]. Domain changes are saved
// to env.
func NewIntVar(name string, lb, ub int, env *trail.Environment) (*IntVar, error) {
	if lb > ub {
		return nil, fmt.Errorf("variable %s: empty initial domain [%d,%d]", name, lb, ub)
	}
	if env == nil {
		return nil, fmt.Errorf("variable %s: environment required", name)
	}
	return &IntVar{name: name, id: -1, lb: lb, ub: ub, env: env}, nil
}

// SetNotifier connects the variable to an event receiver, usually the
// propagation engine. id is the engine's index for this variable.
func (v *IntVar) SetNotifier(n Notifier, id int) {
	v.notifier = n
	v.id = id
}

// ID returns the index assigned by SetNotifier, or -1.
func (v *IntVar) ID() int {
	return v.id
}

// Name returns the variable's name.
func (v *IntVar) Name() string {
	return v.name
}

// LB returns the lower bound.
func (v *IntVar) LB() int {
	return v.lb
}

// UB returns the upper bound.
func (v *IntVar) UB() int {
	return v.ub
}

// IsInstantiated is true for singleton domains.
func (v *IntVar) IsInstantiated() bool {
	return v.lb == v.ub
}

// IsInstantiatedTo is true if the domain is {x}.
func (v *IntVar) IsInstantiatedTo(x int) bool {
	return v.lb == x && v.ub == x
}

// Value returns the lower bound, which is the value of an instantiated variable.
func (v *IntVar) Value() int {
	return v.lb
}

// Contains is true if x lies within the bounds.
func (v *IntVar) Contains(x int) bool {
	return v.lb <= x && x <= v.ub
}

func (v *IntVar) String() string {
	if v.IsInstantiated() {
		return fmt.Sprintf("%s=%d", v.name, v.lb)
	}
	return fmt.Sprintf("%s=[%d,%d]", v.name, v.lb, v.ub)
}

// UpdateLowerBound raises the lower bound to x. It reports whether the domain
// changed.
func (v *IntVar) UpdateLowerBound(x int, cause Propagator) (bool, error) {
	if x <= v.lb {
		return false, nil
	}
	if x > v.ub {
		return false, &Contradiction{Var: v, Cause: cause,
			Msg: fmt.Sprintf("lower bound %d exceeds upper bound %d", x, v.ub)}
	}
	v.save()
	v.lb = x
	mask := IncLow
	if v.lb == v.ub {
		mask |= Instantiate
	}
	v.notify(mask, cause)
	return true, nil
}

// UpdateUpperBound lowers the upper bound to x. It reports whether the domain
// changed.
func (v *IntVar) UpdateUpperBound(x int, cause Propagator) (bool, error) {
	if x >= v.ub {
		return false, nil
	}
	if x < v.lb {
		return false, &Contradiction{Var: v, Cause: cause,
			Msg: fmt.Sprintf("upper bound %d below lower bound %d", x, v.lb)}
	}
	v.save()
	v.ub = x
	mask := DecUpp
	if v.lb == v.ub {
		mask |= Instantiate
	}
	v.notify(mask, cause)
	return true, nil
}

// RemoveValue removes x from the domain. As domains are intervals, only
// bounds can be removed; removing an interior value leaves the domain
// unchanged.
func (v *IntVar) RemoveValue(x int, cause Propagator) (bool, error) {
	switch {
	case !v.Contains(x):
		return false, nil
	case v.lb == v.ub:
		return false, &Contradiction{Var: v, Cause: cause,
			Msg: fmt.Sprintf("cannot remove %d, the last value", x)}
	case x == v.lb:
		return v.UpdateLowerBound(x+1, cause)
	case x == v.ub:
		return v.UpdateUpperBound(x-1, cause)
	}
	return false, nil
}

// InstantiateTo sets the domain to {x}.
func (v *IntVar) InstantiateTo(x int, cause Propagator) (bool, error) {
	if !v.Contains(x) {
		return false, &Contradiction{Var: v, Cause: cause,
			Msg: fmt.Sprintf("%d outside of [%d,%d]", x, v.lb, v.ub)}
	}
	if v.IsInstantiated() {
		return false, nil
	}
	var mask EventMask = Instantiate
	if x > v.lb {
		mask |= IncLow
	}
	if x < v.ub {
		mask |= DecUpp
	}
	v.save()
	v.lb, v.ub = x, x
	v.notify(mask, cause)
	return true, nil
}

func (v *IntVar) save() {
	v.env.Save(BoundsRestore{Var: v, LB: v.lb, UB: v.ub})
}

func (v *IntVar) notify(mask EventMask, cause Propagator) {
	tracer().Debugf("%v: %v", v, mask)
	if v.notifier != nil {
		v.notifier.Notify(v, mask, cause)
	}
}

// BoundsRestore is the trail entry for a domain change. Undoing it resets the
// variable's bounds without notification.
type BoundsRestore struct {
	Var    *IntVar
	LB, UB int
}

// Undo restores the saved bounds.
func (r BoundsRestore) Undo() {
	r.Var.lb, r.Var.ub = r.LB, r.UB
}

func (r BoundsRestore) String() string {
	return fmt.Sprintf("%s:=[%d,%d]", r.Var.name, r.LB, r.UB)
}

var _ trail.Entry = BoundsRestore{}
