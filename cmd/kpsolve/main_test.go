package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/knapsack/instance"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// Subsets of weight at most 3: {}, {a}, {b}, {c}, {a,b}
const tiny = `
name: tiny
items: [a, b, c]
knapsacks:
  - weights: [1, 2, 3]
    profits: [1, 1, 1]
    capacity: {min: 0, max: 3}
    power: {min: 0, max: 3}
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) string {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("kpsolve %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestSolve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "knapsack.cli")
	defer teardown()
	//
	kp := writeFile(t, "tiny.yaml", tiny)
	out := run(t, "solve", kp, "--color=false")
	if !strings.Contains(out, "5 solutions") {
		t.Errorf("expected 5 solutions, got\n%s", out)
	}
	if !strings.Contains(out, "solution 4") {
		t.Errorf("expected solution 4 to be printed, got\n%s", out)
	}
	out = run(t, "solve", kp, "--color=false", "--relaxation=false", "--limit", "2")
	if !strings.Contains(out, "2 solutions") {
		t.Errorf("expected 2 solutions, got\n%s", out)
	}
}

func TestSolveWithMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "knapsack.cli")
	defer teardown()
	//
	kp := writeFile(t, "tiny.yaml", tiny)
	out := run(t, "solve", kp, "--color=false", "--metrics", "--power-bound")
	if !strings.Contains(out, "kpsolve_search_solutions_total 5") {
		t.Errorf("expected solution counter in metrics, got\n%s", out)
	}
	if !strings.Contains(out, "kpsolve_knapsack_recomputations_total") {
		t.Errorf("expected knapsack metrics, got\n%s", out)
	}
}

func TestConfigFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "knapsack.cli")
	defer teardown()
	//
	kp := writeFile(t, "tiny.yaml", tiny)
	conf := writeFile(t, "kpsolve.yaml", "limit: 2\ncolor: false\ntrace: info\n")
	out := run(t, "solve", kp, "--config", conf)
	if !strings.Contains(out, "2 solutions") {
		t.Errorf("expected limit from config file, got\n%s", out)
	}
	out = run(t, "solve", kp, "--config", conf, "--limit", "4")
	if !strings.Contains(out, "4 solutions") {
		t.Errorf("expected flag to override config file, got\n%s", out)
	}
	var buf bytes.Buffer
	cmd := newRootCmd(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"solve", kp, "--trace", "verbose"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected unknown trace level to be rejected")
	}
}

func TestGenAndSolve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "knapsack.cli")
	defer teardown()
	//
	kp := filepath.Join(t.TempDir(), "random.yaml")
	run(t, "gen", "-n", "9", "-k", "2", "--seed", "3", "-o", kp)
	inst, err := instance.Load(kp)
	if err != nil {
		t.Fatal(err)
	}
	if inst.Len() != 9 || len(inst.Knapsacks) != 2 {
		t.Fatalf("expected 9 items in 2 knapsacks, have %d in %d", inst.Len(), len(inst.Knapsacks))
	}
	out := run(t, "solve", kp, "--color=false")
	if !strings.Contains(out, " solutions, ") {
		t.Errorf("expected summary, got\n%s", out)
	}
	out = run(t, "gen", "-n", "4")
	if !strings.Contains(out, "knapsacks:") {
		t.Errorf("expected instance on stdout, got\n%s", out)
	}
}

func TestDot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "knapsack.cli")
	defer teardown()
	//
	kp := writeFile(t, "tiny.yaml", tiny)
	dir := t.TempDir()
	run(t, "dot", kp, "-o", dir)
	for _, name := range []string{"k0-relaxation.dot", "k0-skip.dot"} {
		dot, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(dot, []byte("strict digraph {")) {
			t.Errorf("%s is not a graphviz file", name)
		}
	}
}
