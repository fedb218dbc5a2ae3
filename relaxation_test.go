package knapsack

import (
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/knapsack/fingertree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// profit/weight pairs, already sorted by decreasing efficiency
var fixture = [][2]int{
	{10, 3}, {10, 5}, {8, 4}, {16, 10}, {19, 13}, {16, 12}, {16, 12}, {2, 2}, {3, 9}, {5, 18},
}

func fixtureItems() []Item {
	items := make([]Item, len(fixture))
	for i, pw := range fixture {
		items[i] = fingertree.NewItem(pw[0], pw[1])
	}
	return items
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFindCriticalItem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "knapsack")
	defer teardown()
	//
	tree, err := NewRelaxationTree(fixtureItems())
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		capacity int
		index    int
		profit   float64
		weight   int
	}{
		{-10, NoCriticalItem, 0, 0},
		{0, 15, 0, 0},
		{150, 25, 105, 88},
		{88, 25, 105, 88},
		{20, 18, 40.8, 20},
		{12, 17, 28, 12}, // the first three items fill the capacity exactly
	} {
		info := tree.FindCriticalItem(tc.capacity)
		if info.Index != tc.index || !almostEqual(info.Profit, tc.profit) || info.Weight != tc.weight {
			t.Errorf("capacity %d: expected critical=%d profit=%.2f weight=%d, got %v",
				tc.capacity, tc.index, tc.profit, tc.weight, info)
		}
	}
	if info := tree.FindCriticalItem(20); info.WeightWithoutCritical != 12 {
		t.Errorf("expected 12 units before the critical item, got %d", info.WeightWithoutCritical)
	}
	if info := tree.FindCriticalItem(12); info.WeightWithoutCritical != 8 || info.packed() != 4 {
		t.Errorf("expected critical item packed completely after 8 units, got %v", info)
	}
}

func TestExactFitMakesLaterItemsForbiddable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "knapsack")
	defer teardown()
	//
	tree, err := NewRelaxationTree([]Item{fingertree.NewItem(10, 5), fingertree.NewItem(6, 5)})
	if err != nil {
		t.Fatal(err)
	}
	info := tree.FindCriticalItem(5)
	if info.Index != tree.LeafIndex(0) || !almostEqual(info.Profit, 10) || info.packed() != 5 {
		t.Fatalf("expected first item critical and packed completely, got %v", info)
	}
	// packing the second item evicts the first one, leaving a profit of 6
	if !tree.IsForbidden(info, 10, tree.LeafIndex(1)) {
		t.Errorf("expected second item to be forbidden for profit 10")
	}
	if tree.IsForbidden(info, 6, tree.LeafIndex(1)) {
		t.Errorf("expected second item to be allowed for profit 6")
	}
	if !tree.IsMandatory(info, 10, tree.LeafIndex(0)) {
		t.Errorf("expected first item to be mandatory for profit 10")
	}
	f, err := NewFilter([]int{10, 6}, []int{5, 5})
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Forbidden(5, 10); len(got) != 1 || got[0] != 1 {
		t.Errorf("expected item 1 to be forbidden, have %v", got)
	}
	if got := f.Mandatory(5, 10); len(got) != 1 || got[0] != 0 {
		t.Errorf("expected item 0 to be mandatory, have %v", got)
	}
}

func TestZeroCapacityForbidsEveryHeavyItem(t *testing.T) {
	f, err := NewFilter([]int{7, 10, 6}, []int{0, 5, 5})
	if err != nil {
		t.Fatal(err)
	}
	info := f.Relaxation(0)
	if info.Index != f.relax.LeafIndex(1) || info.packed() != 0 || !almostEqual(info.Profit, 7) {
		t.Fatalf("expected item 1 critical with nothing packed, got %v", info)
	}
	if got := f.Forbidden(0, 0); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected items 1 and 2 to be forbidden, have %v", got)
	}
	if got := f.Mandatory(0, 7); len(got) != 1 || got[0] != 0 {
		t.Errorf("expected weightless item 0 to be mandatory, have %v", got)
	}
}

func TestFindCriticalItemAfterRemovals(t *testing.T) {
	tree, _ := NewRelaxationTree(fixtureItems())
	steps := []struct {
		activate, remove int
		index            int
		profit           float64
	}{
		{-1, 16, 19, 34 + 3.0*19/13},
		{16, 18, 19, 28 + 8.0*19/13},
		{18, 19, 18, 40.8},
	}
	for k, step := range steps {
		if step.activate >= 0 {
			_ = tree.ActivateLeaf(step.activate)
		}
		_ = tree.RemoveLeaf(step.remove)
		info := tree.FindCriticalItem(20)
		if info.Index != step.index || !almostEqual(info.Profit, step.profit) {
			t.Errorf("step %d: expected critical=%d profit=%.4f, got %v", k, step.index, step.profit, info)
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("step %d: %v", k, err)
		}
	}
}

func TestZeroWeightItemsArePacked(t *testing.T) {
	tree, _ := NewRelaxationTree([]Item{
		fingertree.NewItem(7, 0), fingertree.NewItem(3, 0), fingertree.NewItem(10, 5), fingertree.NewItem(4, 4),
	})
	info := tree.FindCriticalItem(0)
	if info.Index != tree.LeafIndex(2) || !almostEqual(info.Profit, 10) {
		t.Errorf("expected both weightless items packed and item 2 critical, got %v", info)
	}
}

// --- Oracles ---------------------------------------------------------------

// relaxationWithout computes the relaxation with leaf g left out.
func relaxationWithout(tree *RelaxationTree, g, capacity int) Info {
	_ = tree.RemoveLeaf(g)
	info := tree.FindCriticalItem(capacity)
	_ = tree.ActivateLeaf(g)
	return info
}

func mandatoryOracle(tree *RelaxationTree, g, capacity int, lb float64) bool {
	if !tree.Leaf(g).IsActive() {
		return false
	}
	return lb-relaxationWithout(tree, g, capacity).Profit > Offset
}

func forbiddenOracle(tree *RelaxationTree, g, capacity int, lb float64) bool {
	it := tree.Leaf(g)
	if !it.IsActive() {
		return false
	}
	forced := relaxationWithout(tree, g, capacity-it.Weight)
	if forced.Index == NoCriticalItem {
		return true
	}
	return lb-(forced.Profit+float64(it.Profit)) > Offset
}

func randomItems(rnd *rand.Rand, n int) []Item {
	profits, weights := make([]int, n), make([]int, n)
	for i := 0; i < n; i++ {
		profits[i] = rnd.Intn(30)
		if rnd.Intn(8) > 0 {
			weights[i] = 1 + rnd.Intn(15)
		}
	}
	order, _, _ := SortByEfficiency(profits, weights)
	return sortedItems(profits, weights, order)
}

func TestPredicatesAgainstOracle(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for round := 0; round < 300; round++ {
		items := randomItems(rnd, 1+rnd.Intn(18))
		tree, err := NewRelaxationTree(items)
		if err != nil {
			t.Fatal(err)
		}
		for k := 0; k < len(items)/3; k++ {
			_ = tree.RemoveLeaf(tree.LeafIndex(rnd.Intn(len(items))))
		}
		capacity := rnd.Intn(tree.TotalWeight() + 5)
		info := tree.FindCriticalItem(capacity)
		lb := math.Floor(info.Profit) - float64(rnd.Intn(int(info.Profit)+3))
		for g := tree.InnerSize(); g < tree.NodeCount(); g++ {
			if got, want := tree.IsMandatory(info, lb, g), mandatoryOracle(tree, g, capacity, lb); got != want {
				t.Fatalf("round %d, leaf %d (%v), %v, lb=%.0f: mandatory=%v, oracle says %v",
					round, g, tree.Leaf(g), info, lb, got, want)
			}
			forbidden := tree.IsForbidden(info, lb, g)
			oracle := forbiddenOracle(tree, g, capacity, lb)
			if forbidden && !oracle {
				t.Fatalf("round %d, leaf %d (%v), %v, lb=%.0f: unsound forbidden", round, g, tree.Leaf(g), info, lb)
			}
			if !tree.IsTrivial(info) && g >= tree.firstForbiddenCandidate(info) && tree.Leaf(g).Weight > 0 &&
				forbidden != oracle {
				t.Fatalf("round %d, leaf %d (%v), %v, lb=%.0f: forbidden=%v, oracle says %v",
					round, g, tree.Leaf(g), info, lb, forbidden, oracle)
			}
		}
	}
}

// Items are sorted by decreasing efficiency, so an item further right is
// less efficient. Leaving out an item costs more the heavier and the more
// efficient it is, so a lighter item to the right of a non-mandatory one is
// not mandatory either. Packing an item costs more the heavier and the less
// efficient it is, so a lighter item to the left of a non-forbidden one is
// not forbidden either. The scans therefore move towards the critical item.
func TestPredicatesAreMonotone(t *testing.T) {
	rnd := rand.New(rand.NewSource(4711))
	for round := 0; round < 300; round++ {
		items := randomItems(rnd, 2+rnd.Intn(20))
		tree, _ := NewRelaxationTree(items)
		capacity := rnd.Intn(tree.TotalWeight() + 1)
		info := tree.FindCriticalItem(capacity)
		lb := math.Floor(info.Profit) - float64(rnd.Intn(10))
		last := info.Index
		if tree.IsTrivial(info) {
			last = tree.NodeCount() - 1
		}
		for i := tree.InnerSize(); i <= last; i++ {
			if tree.IsMandatory(info, lb, i) {
				continue
			}
			for k := i + 1; k <= last; k++ {
				if tree.Leaf(k).Weight <= tree.Leaf(i).Weight && tree.IsMandatory(info, lb, k) {
					t.Fatalf("round %d: leaf %d not mandatory, but lighter leaf %d is", round, i, k)
				}
			}
		}
		if tree.IsTrivial(info) {
			continue
		}
		for i := tree.NodeCount() - 1; i > info.Index; i-- {
			if tree.Leaf(i).Weight == 0 || tree.IsForbidden(info, lb, i) {
				continue
			}
			for k := info.Index + 1; k < i; k++ {
				if tree.Leaf(k).Weight <= tree.Leaf(i).Weight && tree.IsForbidden(info, lb, k) {
					t.Fatalf("round %d: leaf %d not forbidden, but lighter leaf %d is", round, i, k)
				}
			}
		}
	}
}

func TestNegativeAllowanceIsMandatory(t *testing.T) {
	tree, _ := NewRelaxationTree(fixtureItems())
	info := tree.FindCriticalItem(20)
	if !tree.IsMandatory(info, 41, 15) {
		t.Errorf("expected every item to be mandatory for an unreachable bound")
	}
	if !tree.IsForbidden(info, 41, 24) {
		t.Errorf("expected every later item to be forbidden for an unreachable bound")
	}
	if tree.IsMandatory(info, 41, 20) {
		t.Errorf("items after the critical item cannot be mandatory")
	}
}
