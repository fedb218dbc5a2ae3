package cp

import (
	"errors"
	"testing"

	"github.com/npillmayer/knapsack/trail"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type eventLog struct {
	masks []EventMask
}

func (l *eventLog) Notify(v *IntVar, mask EventMask, cause Propagator) {
	l.masks = append(l.masks, mask)
}

func TestBoundUpdatesAndEvents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "knapsack.solver")
	defer teardown()
	//
	env := trail.New()
	x, err := NewIntVar("x", 0, 10, env)
	if err != nil {
		t.Fatal(err)
	}
	log := &eventLog{}
	x.SetNotifier(log, 0)
	if ok, err := x.UpdateLowerBound(3, nil); !ok || err != nil {
		t.Fatalf("expected lower bound update, got %v, %v", ok, err)
	}
	if ok, _ := x.UpdateLowerBound(2, nil); ok {
		t.Errorf("weaker lower bound must not change the domain")
	}
	if ok, err := x.UpdateUpperBound(3, nil); !ok || err != nil {
		t.Fatalf("expected upper bound update, got %v, %v", ok, err)
	}
	if !x.IsInstantiatedTo(3) {
		t.Errorf("expected x=3, have %v", x)
	}
	if len(log.masks) != 2 || log.masks[0] != IncLow || log.masks[1] != DecUpp|Instantiate {
		t.Errorf("unexpected events %v", log.masks)
	}
}

func TestContradictionLeavesDomainUntouched(t *testing.T) {
	env := trail.New()
	b, _ := NewIntVar("b", 0, 1, env)
	if _, err := b.RemoveValue(0, nil); err != nil {
		t.Fatal(err)
	}
	_, err := b.RemoveValue(1, nil)
	var c *Contradiction
	if !errors.As(err, &c) || c.Var != b {
		t.Fatalf("expected contradiction on b, got %v", err)
	}
	if !b.IsInstantiatedTo(1) {
		t.Errorf("expected b=1 to survive the failed removal, have %v", b)
	}
	if _, err := b.UpdateUpperBound(0, nil); !errors.As(err, &c) {
		t.Errorf("expected contradiction, got %v", err)
	}
}

func TestRemoveValueOnIntervals(t *testing.T) {
	env := trail.New()
	x, _ := NewIntVar("x", 0, 5, env)
	if ok, _ := x.RemoveValue(3, nil); ok {
		t.Errorf("interior values cannot be removed from an interval")
	}
	if ok, _ := x.RemoveValue(7, nil); ok {
		t.Errorf("removing a value outside the domain must be a no-op")
	}
	_, _ = x.RemoveValue(5, nil)
	_, _ = x.RemoveValue(0, nil)
	if x.LB() != 1 || x.UB() != 4 {
		t.Errorf("expected [1,4], have %v", x)
	}
}

func TestBacktrackRestoresBounds(t *testing.T) {
	env := trail.New()
	x, _ := NewIntVar("x", 0, 9, env)
	env.WorldPush()
	_, _ = x.UpdateLowerBound(2, nil)
	env.WorldPush()
	_, _ = x.InstantiateTo(7, nil)
	_, _ = x.UpdateLowerBound(8, nil) // fails, x is fixed
	if err := env.WorldPop(); err != nil {
		t.Fatal(err)
	}
	if x.LB() != 2 || x.UB() != 9 {
		t.Errorf("expected [2,9] after first pop, have %v", x)
	}
	_ = env.WorldPop()
	if x.LB() != 0 || x.UB() != 9 {
		t.Errorf("expected [0,9] after second pop, have %v", x)
	}
}

func TestNewIntVarRejectsEmptyDomain(t *testing.T) {
	if _, err := NewIntVar("e", 3, 2, trail.New()); err == nil {
		t.Errorf("expected error for empty domain")
	}
}
