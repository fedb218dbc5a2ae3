package metrics

import (
	"fmt"
	"io"

	"github.com/npillmayer/knapsack"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Label names.
const (
	ConstraintLabel = "constraint"
	KindLabel       = "kind"
	Mandatory       = "mandatory"
	Forbidden       = "forbidden"
)

// Search collects the metrics of a search.
type Search struct {
	registry       *prometheus.Registry
	nodes          prometheus.Counter
	fails          prometheus.Counter
	solutions      prometheus.Counter
	depth          prometheus.Histogram
	maxDepth       prometheus.Gauge
	itemsFixed     *prometheus.CounterVec
	recomputations *prometheus.CounterVec
	skipped        *prometheus.CounterVec
	deepest        int
}

// New creates the metrics of a search. All metric names start with namespace.
func New(namespace string) *Search {
	s := &Search{
		registry: prometheus.NewRegistry(),
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_nodes_total",
			Help:      "Decisions taken by the search",
		}),
		fails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_fails_total",
			Help:      "Decisions refuted by propagation",
		}),
		solutions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_solutions_total",
			Help:      "Solutions found",
		}),
		depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_node_depth",
			Help:      "Depth of search nodes",
			Buckets:   prometheus.LinearBuckets(1, 4, 8),
		}),
		maxDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "search_depth_max",
			Help:      "Maximum depth of the search tree",
		}),
		itemsFixed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "knapsack_items_fixed_total",
			Help:      "Items fixed by knapsack propagators, by kind of deduction",
		}, []string{ConstraintLabel, KindLabel}),
		recomputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "knapsack_recomputations_total",
			Help:      "Computations of the critical item",
		}, []string{ConstraintLabel}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "knapsack_skipped_total",
			Help:      "Propagations without filtering, relaxation below the profit bound",
		}, []string{ConstraintLabel}),
	}
	s.registry.MustRegister(s.nodes, s.fails, s.solutions, s.depth, s.maxDepth,
		s.itemsFixed, s.recomputations, s.skipped)
	return s
}

// Registry returns the registry holding the search metrics.
func (s *Search) Registry() *prometheus.Registry {
	return s.registry
}

// Node records a decision at the given depth.
func (s *Search) Node(depth int) {
	s.nodes.Inc()
	s.depth.Observe(float64(depth))
	if depth > s.deepest {
		s.deepest = depth
		s.maxDepth.Set(float64(depth))
	}
}

// Fail records a refuted decision.
func (s *Search) Fail() {
	s.fails.Inc()
}

// Solution records a solution.
func (s *Search) Solution() {
	s.solutions.Inc()
}

// ObserveKnapsack adds the counters of a knapsack propagator, labeled with
// constraint.
func (s *Search) ObserveKnapsack(constraint string, stats knapsack.Stats) {
	s.itemsFixed.WithLabelValues(constraint, Mandatory).Add(float64(stats.Mandatory))
	s.itemsFixed.WithLabelValues(constraint, Forbidden).Add(float64(stats.Forbidden))
	s.recomputations.WithLabelValues(constraint).Add(float64(stats.Recomputations))
	s.skipped.WithLabelValues(constraint).Add(float64(stats.Skipped))
}

// WriteText writes all metrics in the Prometheus text exposition format.
func (s *Search) WriteText(w io.Writer) error {
	families, err := s.registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: cannot gather: %w", err)
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			tracer().Errorf("metrics: writing %s: %v", mf.GetName(), err)
			return err
		}
	}
	return nil
}
