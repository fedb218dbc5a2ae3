package instance

import (
	"fmt"
	"math/rand"

	"github.com/npillmayer/knapsack"
	"github.com/npillmayer/knapsack/cp"
	"github.com/npillmayer/knapsack/solver"
)

// Range is a closed interval of integers.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}

// Knapsack is one knapsack constraint over the items of an instance.
type Knapsack struct {
	Name     string `yaml:"name"`
	Weights  []int  `yaml:"weights"`
	Profits  []int  `yaml:"profits"`
	Capacity Range  `yaml:"capacity"`
	Power    Range  `yaml:"power"`
}

// Instance is a set of items and the knapsacks constraining them.
type Instance struct {
	Name      string     `yaml:"name"`
	Items     []string   `yaml:"items,omitempty"` // optional item names
	Knapsacks []Knapsack `yaml:"knapsacks"`
}

// Len returns the number of items.
func (inst *Instance) Len() int {
	if len(inst.Knapsacks) == 0 {
		return 0
	}
	return len(inst.Knapsacks[0].Weights)
}

// ItemName returns the name of item i.
func (inst *Instance) ItemName(i int) string {
	if i < len(inst.Items) && inst.Items[i] != "" {
		return inst.Items[i]
	}
	return fmt.Sprintf("x[%d]", i)
}

// KnapsackName returns the name of knapsack k.
func (inst *Instance) KnapsackName(k int) string {
	if name := inst.Knapsacks[k].Name; name != "" {
		return name
	}
	return fmt.Sprintf("k%d", k)
}

// Validate checks that all knapsacks cover the same items with non-negative
// weights and profits, and that the ranges are not empty.
func (inst *Instance) Validate() error {
	if len(inst.Knapsacks) == 0 {
		return fmt.Errorf("%w: no knapsack", ErrInvalidInstance)
	}
	n := inst.Len()
	if len(inst.Items) > 0 && len(inst.Items) != n {
		return fmt.Errorf("%w: %d item names for %d items", ErrInvalidInstance, len(inst.Items), n)
	}
	for k, ks := range inst.Knapsacks {
		if len(ks.Weights) != n || len(ks.Profits) != n {
			return fmt.Errorf("%w: knapsack %d has %d weights and %d profits, expected %d",
				ErrInvalidInstance, k, len(ks.Weights), len(ks.Profits), n)
		}
		for i := 0; i < n; i++ {
			if ks.Weights[i] < 0 || ks.Profits[i] < 0 {
				return fmt.Errorf("%w: knapsack %d, item %d has negative weight or profit",
					ErrInvalidInstance, k, i)
			}
		}
		if ks.Capacity.Min > ks.Capacity.Max || ks.Power.Min > ks.Power.Max {
			return fmt.Errorf("%w: knapsack %d has empty range %v or %v", ErrInvalidInstance,
				k, ks.Capacity, ks.Power)
		}
	}
	return nil
}

// Model is the solver model of an instance.
type Model struct {
	*solver.Model
	Items      []*cp.IntVar
	Capacities []*cp.IntVar
	Powers     []*cp.IntVar
	Props      []*knapsack.PropKnapsack // nil entries for knapsacks posted without relaxation
}

// Build creates a model with one 0/1 variable per item, and posts every
// knapsack of the instance.
func (inst *Instance) Build(opts ...solver.KnapsackOption) (*Model, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	m := &Model{Model: solver.NewModel(inst.Name)}
	for i := 0; i < inst.Len(); i++ {
		x, err := m.BoolVar(inst.ItemName(i))
		if err != nil {
			return nil, err
		}
		m.Items = append(m.Items, x)
	}
	for k, ks := range inst.Knapsacks {
		name := inst.KnapsackName(k)
		capacity, err := m.IntVar(name+".capacity", ks.Capacity.Min, ks.Capacity.Max)
		if err != nil {
			return nil, err
		}
		power, err := m.IntVar(name+".power", ks.Power.Min, ks.Power.Max)
		if err != nil {
			return nil, err
		}
		prop, err := m.Knapsack(m.Items, capacity, power, ks.Weights, ks.Profits, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: knapsack %s: %v", ErrInvalidInstance, name, err)
		}
		m.Capacities = append(m.Capacities, capacity)
		m.Powers = append(m.Powers, power)
		m.Props = append(m.Props, prop)
	}
	tracer().Infof("instance %s: %d items, %d knapsacks", inst.Name, inst.Len(), len(inst.Knapsacks))
	return m, nil
}

// Random generates an instance of n items and k knapsacks. About every
// seventh item is weightless. Capacity ranges from a quarter to half of the
// total weight, profit from a third to two thirds of the total profit.
func Random(rnd *rand.Rand, name string, n, k int) *Instance {
	inst := &Instance{Name: name}
	for j := 0; j < k; j++ {
		ks := Knapsack{Name: fmt.Sprintf("k%d", j)}
		total, profit := 0, 0
		for i := 0; i < n; i++ {
			w := 0
			if rnd.Intn(7) > 0 {
				w = 1 + rnd.Intn(20)
			}
			p := rnd.Intn(30)
			ks.Weights = append(ks.Weights, w)
			ks.Profits = append(ks.Profits, p)
			total += w
			profit += p
		}
		ks.Capacity = Range{Min: total / 4, Max: total / 2}
		ks.Power = Range{Min: profit / 3, Max: profit / 3 * 2}
		inst.Knapsacks = append(inst.Knapsacks, ks)
	}
	return inst
}
