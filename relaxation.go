package knapsack

import (
	"errors"
	"fmt"

	"github.com/npillmayer/knapsack/fingertree"
)

// Offset is the tolerance for comparing fractional profits. A profit loss has
// to exceed its allowance by more than Offset to count.
const Offset = 1e-4

// NoCriticalItem is the index of the critical item for a negative capacity.
const NoCriticalItem = -1

// Info describes the Dantzig relaxation for some capacity.
//
// Index is the global tree index of the critical item, NoCriticalItem if the
// capacity is negative, or the tree's NodeCount if every active item fits
// (the trivial solution). Profit is the value of the relaxation,
// WeightWithoutCritical the weight of the items packed before the critical
// item, and Weight the capacity actually used.
type Info struct {
	Index                 int
	Profit                float64
	WeightWithoutCritical int
	Weight                int
}

func (info Info) String() string {
	return fmt.Sprintf("critical=%d profit=%.4f weight=%d/%d", info.Index, info.Profit,
		info.WeightWithoutCritical, info.Weight)
}

// RelaxationTree sums up profit and weight of active items and answers
// questions about the Dantzig relaxation.
type RelaxationTree struct {
	*fingertree.Tree[fingertree.ProfitWeight]
}

// NewRelaxationTree creates a tree over items, which have to be sorted by
// decreasing efficiency.
func NewRelaxationTree(items []Item) (*RelaxationTree, error) {
	tree, err := fingertree.New(fingertree.Config[fingertree.ProfitWeight]{
		Monoid: fingertree.SumMonoid{},
	}, items)
	if err != nil {
		return nil, err
	}
	return &RelaxationTree{Tree: tree}, nil
}

// NodeProfit returns the profit of the active items below node i.
func (t *RelaxationTree) NodeProfit(i int) int {
	return t.Summary(i).Profit
}

// NodeWeight returns the weight of the active items below node i.
func (t *RelaxationTree) NodeWeight(i int) int {
	return t.Summary(i).Weight
}

// TotalProfit returns the profit of all active items.
func (t *RelaxationTree) TotalProfit() int {
	return t.Root().Profit
}

// TotalWeight returns the weight of all active items.
func (t *RelaxationTree) TotalWeight() int {
	return t.Root().Weight
}

// IsTrivial is true if info describes a relaxation where every active item fits.
func (t *RelaxationTree) IsTrivial(info Info) bool {
	return info.Index >= t.NodeCount()
}

// FindCriticalItem computes the Dantzig relaxation for capacity.
//
// The critical item is the first active item at which the packed weight
// reaches capacity; items before it are packed, and it is packed with the
// remaining capacity, possibly completely. Subtrees of weight 0 never contain
// the critical item, so weightless items are always packed and a capacity of
// 0 makes the first item of positive weight critical, with nothing of it packed.
func (t *RelaxationTree) FindCriticalItem(capacity int) Info {
	if capacity < 0 {
		return Info{Index: NoCriticalItem}
	}
	total := t.Root()
	if total.Weight <= capacity {
		return Info{
			Index:                 t.NodeCount(),
			Profit:                float64(total.Profit),
			WeightWithoutCritical: total.Weight,
			Weight:                total.Weight,
		}
	}
	remaining, profit := capacity, 0
	i := 0
	for t.IsInnerNode(i) {
		left := t.Summary(t.LeftChild(i))
		if left.Weight >= remaining && left.Weight > 0 {
			i = t.LeftChild(i)
		} else {
			remaining -= left.Weight
			profit += left.Profit
			i = t.RightChild(i)
		}
	}
	critical := t.Leaf(i)
	assert(critical.IsActive() && critical.Weight > 0 && critical.Weight >= remaining,
		"knapsack: critical item must be active and fill the capacity")
	return Info{
		Index:                 i,
		Profit:                float64(profit) + fraction(critical, remaining),
		WeightWithoutCritical: capacity - remaining,
		Weight:                capacity,
	}
}

// packed returns the units of the critical item packed by the relaxation.
func (info Info) packed() int {
	return info.Weight - info.WeightWithoutCritical
}

// fraction returns the profit of packing units of weight of it.
func fraction(it Item, units int) float64 {
	if units == 0 {
		return 0
	}
	return float64(units) * float64(it.Profit) / float64(it.Weight)
}

// IsMandatory is true if leaving out the item at itemIndex drops the
// relaxation below profitLowerBound.
//
// The weight set free is refilled with the part of the critical item left
// out so far and then with the items after it, at decreasing efficiency. Only
// active items up to the critical item can be mandatory.
func (t *RelaxationTree) IsMandatory(info Info, profitLowerBound float64, itemIndex int) bool {
	if info.Index == NoCriticalItem || !t.IsLeaf(itemIndex) || !t.Leaf(itemIndex).IsActive() {
		return false
	}
	trivial := t.IsTrivial(info)
	if !trivial && itemIndex > info.Index {
		return false
	}
	allowed := info.Profit - profitLowerBound
	if allowed < 0 {
		return true
	}
	item := t.Leaf(itemIndex)
	if trivial {
		return float64(item.Profit)-allowed > Offset
	}
	critical := t.Leaf(info.Index)
	ec := critical.Efficiency()
	left := critical.Weight - info.packed()
	lossExceeds := func(w int, p float64) bool { // upper bound for the refill is e_c per unit
		return float64(item.Profit)-(p+float64(item.Weight-w)*ec)-allowed > Offset
	}
	_, refill, stopped := t.walk(info.Index, left, item.Weight, true, lossExceeds)
	if stopped {
		return true
	}
	return float64(item.Profit)-refill-allowed > Offset
}

// IsForbidden is true if packing the item at itemIndex drops the relaxation
// below profitLowerBound.
//
// Room for the item is made by evicting the packed part of the critical item
// and then the items before it, at increasing efficiency. Only active items
// with positive weight which are not part of the relaxation can be forbidden:
// the items after the critical item, and the critical item itself if nothing
// of it is packed. An item for which not enough weight can be evicted is
// forbidden.
func (t *RelaxationTree) IsForbidden(info Info, profitLowerBound float64, itemIndex int) bool {
	if info.Index == NoCriticalItem || t.IsTrivial(info) || itemIndex < t.firstForbiddenCandidate(info) {
		return false
	}
	if !t.IsLeaf(itemIndex) || !t.Leaf(itemIndex).IsActive() {
		return false
	}
	item := t.Leaf(itemIndex)
	if item.Weight == 0 {
		return false
	}
	allowed := info.Profit - profitLowerBound
	if allowed < 0 {
		return true
	}
	critical := t.Leaf(info.Index)
	ec := critical.Efficiency()
	packed := info.packed()
	lossExceeds := func(w int, p float64) bool { // evicting costs at least e_c per unit
		return p+float64(item.Weight-w)*ec-float64(item.Profit)-allowed > Offset
	}
	evicted, loss, stopped := t.walk(info.Index, packed, item.Weight, false, lossExceeds)
	if stopped || evicted < item.Weight {
		return true
	}
	return loss-float64(item.Profit)-allowed > Offset
}

// firstForbiddenCandidate is the leftmost global index which may be forbidden
// for a non-trivial relaxation.
func (t *RelaxationTree) firstForbiddenCandidate(info Info) int {
	if info.packed() == 0 {
		return info.Index
	}
	return info.Index + 1
}

// walk collects target units of weight, starting with seed units of the
// critical item and continuing with the items beyond it in direction right.
// It returns the weight and profit collected; a weight below target means the
// items ran out.
//
// Whole subtrees are collected while ascending (phase 1) until a subtree
// covers the rest, which is then entered by binary descent (phase 2). exceeds
// is consulted after every step of phase 1 and stops the walk early.
func (t *RelaxationTree) walk(critical, seed, target int, right bool,
	exceeds func(w int, p float64) bool) (int, float64, bool) {
	//
	critItem := t.Leaf(critical)
	if seed >= target {
		return target, fraction(critItem, target), false
	}
	w, p := seed, fraction(critItem, seed)
	i := critical
	for { // phase 1
		if exceeds(w, p) {
			return w, p, true
		}
		next, err := t.NextNode(i, right)
		if err != nil {
			assert(errors.Is(err, fingertree.ErrNoNeighbor), "knapsack: unexpected navigation error")
			return w, p, false
		}
		i = next
		s := t.Summary(i)
		if w+s.Weight >= target {
			break
		}
		w += s.Weight
		p += float64(s.Profit)
	}
	for t.IsInnerNode(i) { // phase 2
		near, far := t.LeftChild(i), t.RightChild(i)
		if !right {
			near, far = far, near
		}
		s := t.Summary(near)
		if w+s.Weight >= target {
			i = near
		} else {
			w += s.Weight
			p += float64(s.Profit)
			i = far
		}
	}
	p += fraction(t.Leaf(i), target-w)
	return target, p, false
}
