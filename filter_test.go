package knapsack

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestFilterFixAndRelease(t *testing.T) {
	f, err := NewFilter([]int{10, 10, 8}, []int{3, 5, 4})
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 3 {
		t.Errorf("expected 3 items, have %d", f.Len())
	}
	if err := f.FixItem(3, true); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if err := f.ReleaseItem(0); !errors.Is(err, ErrInconsistentState) {
		t.Errorf("expected ErrInconsistentState for releasing a free item, got %v", err)
	}
	if err := f.FixItem(1, true); err != nil {
		t.Fatal(err)
	}
	if err := f.FixItem(1, false); !errors.Is(err, ErrInconsistentState) {
		t.Errorf("expected ErrInconsistentState for fixing twice, got %v", err)
	}
	// 10 (item 1) + 10 (item 0) + 2 units of item 2
	if b := f.Bound(10); math.Abs(b-24) > 1e-9 {
		t.Errorf("expected bound 24, have %.4f", b)
	}
	if b := f.Bound(4); !math.IsInf(b, -1) {
		t.Errorf("expected -Inf for infeasible fixing, have %.4f", b)
	}
	if err := f.ReleaseItem(1); err != nil {
		t.Fatal(err)
	}
	if b := f.Bound(10); math.Abs(b-24) > 1e-9 {
		t.Errorf("expected bound 24 after release, have %.4f", b)
	}
}

func TestFilterUnreachableBound(t *testing.T) {
	f, _ := NewFilter([]int{10, 10, 8}, []int{3, 5, 4})
	if f.Mandatory(10, 27) != nil || f.Forbidden(10, 27) != nil {
		t.Errorf("expected no deductions for a bound above the relaxation")
	}
}

// bestWith returns the best profit of any packing within capacity which
// contains item i (in = true) or omits it. ok is false if there is no such
// packing.
func bestWith(profits, weights []int, capacity, i int, in bool) (best int, ok bool) {
	for set := 0; set < 1<<len(profits); set++ {
		if (set>>i&1 == 1) != in {
			continue
		}
		p, w := 0, 0
		for k := range profits {
			if set>>k&1 == 1 {
				p += profits[k]
				w += weights[k]
			}
		}
		if w <= capacity && (!ok || p > best) {
			best, ok = p, true
		}
	}
	return best, ok
}

// Every deduction of the filter must be confirmed by enumeration.
func TestFilterIsSound(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		n := 1 + rnd.Intn(9)
		profits, weights := make([]int, n), make([]int, n)
		for i := range profits {
			profits[i] = rnd.Intn(25)
			weights[i] = rnd.Intn(12)
		}
		f, err := NewFilter(profits, weights)
		if err != nil {
			t.Fatal(err)
		}
		capacity := rnd.Intn(30)
		lb := int(math.Floor(f.Bound(capacity))) - rnd.Intn(8)
		for _, i := range f.Mandatory(capacity, lb) {
			if best, ok := bestWith(profits, weights, capacity, i, false); ok && best >= lb {
				t.Fatalf("round %d: item %d mandatory, but packing of profit %d ≥ %d omits it (p=%v w=%v c=%d)",
					round, i, best, lb, profits, weights, capacity)
			}
		}
		for _, i := range f.Forbidden(capacity, lb) {
			if best, ok := bestWith(profits, weights, capacity, i, true); ok && best >= lb {
				t.Fatalf("round %d: item %d forbidden, but packing of profit %d ≥ %d contains it (p=%v w=%v c=%d)",
					round, i, best, lb, profits, weights, capacity)
			}
		}
	}
}

func TestFilterForbidsItemsWhichNeverFit(t *testing.T) {
	f, err := NewFilter([]int{24, 20}, []int{5, 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := bestWith([]int{24, 20}, []int{5, 1}, 0, 0, true); ok {
		t.Fatalf("expected no packing of capacity 0 to contain item 0")
	}
	// a negative bound is met by the empty packing
	if got := f.Forbidden(0, -3); len(got) != 2 {
		t.Errorf("expected both items to be forbidden for capacity 0, have %v", got)
	}
	if got := f.Mandatory(0, -3); len(got) != 0 {
		t.Errorf("expected no mandatory items, have %v", got)
	}
}
