package instance

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/knapsack/solver"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const twoKnapsacks = `
name: multi
items: [a, b, c, d, e, f]
knapsacks:
  - name: weight
    weights: [3, 5, 4, 0, 10, 2]
    profits: [10, 10, 8, 3, 16, 2]
    capacity: {min: 5, max: 14}
    power: {min: 18, max: 40}
  - name: volume
    weights: [4, 1, 6, 2, 3, 5]
    profits: [1, 7, 2, 0, 9, 4]
    capacity: {min: 0, max: 10}
    power: {min: 8, max: 30}
`

func TestReadAndBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "knapsack")
	defer teardown()
	//
	inst, err := Read(strings.NewReader(twoKnapsacks))
	if err != nil {
		t.Fatal(err)
	}
	if inst.Len() != 6 || len(inst.Knapsacks) != 2 || inst.ItemName(4) != "e" {
		t.Fatalf("unexpected instance %+v", inst)
	}
	m, err := inst.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Props) != 2 || len(m.Knapsacks()) != 2 {
		t.Errorf("expected two knapsack propagators")
	}
	var got [][]int
	_, err = solver.New(m.Model, solver.WithDecisionVars(m.Items...)).FindAll(context.Background(),
		func(s solver.Solution) error {
			got = append(got, s.Values)
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(enumerate(inst), got); diff != "" {
		t.Errorf("solutions differ from enumeration (-want +got):\n%s", diff)
	}
}

// enumerate lists the packings satisfying every knapsack, in lexicographic
// order with 0 before 1.
func enumerate(inst *Instance) [][]int {
	n := inst.Len()
	var solutions [][]int
	for set := 0; set < 1<<n; set++ {
		values := make([]int, n)
		for i := 0; i < n; i++ {
			values[i] = set >> (n - 1 - i) & 1
		}
		ok := true
		for _, ks := range inst.Knapsacks {
			w, p := 0, 0
			for i, v := range values {
				w += v * ks.Weights[i]
				p += v * ks.Profits[i]
			}
			ok = ok && w >= ks.Capacity.Min && w <= ks.Capacity.Max && p >= ks.Power.Min && p <= ks.Power.Max
		}
		if ok {
			solutions = append(solutions, values)
		}
	}
	return solutions
}

func TestReadRejectsInvalidInstances(t *testing.T) {
	for _, text := range []string{
		"name: empty\n",
		"knapsacks:\n  - weights: [1, 2]\n    profits: [1]\n",
		"knapsacks:\n  - weights: [1]\n    profits: [1]\n    capacity: {min: 3, max: 2}\n",
		"knapsacks:\n  - weights: [-1]\n    profits: [1]\n",
		"knapsacks:\n  - weights: [1]\n    profits: [1]\n    volume: 3\n",
		"items: [a, b]\nknapsacks:\n  - weights: [1]\n    profits: [1]\n",
	} {
		if _, err := Read(strings.NewReader(text)); !errors.Is(err, ErrInvalidInstance) {
			t.Errorf("expected ErrInvalidInstance for\n%s\ngot %v", text, err)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	inst := Random(rand.New(rand.NewSource(3)), "random", 12, 2)
	if err := inst.Validate(); err != nil {
		t.Fatal(err)
	}
	name := filepath.Join(t.TempDir(), "random.yaml")
	if err := inst.Save(name); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(inst, loaded); diff != "" {
		t.Errorf("loaded instance differs (-saved +loaded):\n%s", diff)
	}
	if _, err = Load(t.TempDir()); err == nil {
		t.Errorf("expected error for loading a directory")
	}
}
