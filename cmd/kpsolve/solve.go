package main

import (
	"errors"

	"github.com/npillmayer/knapsack/instance"
	"github.com/npillmayer/knapsack/metrics"
	"github.com/npillmayer/knapsack/solver"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newSolveCmd() *cobra.Command {
	solveCmd := &cobra.Command{
		Use:   "solve <instance.yaml>",
		Short: "Enumerate the solutions of a knapsack instance",
		Long: `The kpsolve solve command reads an instance and prints every packing
        of items which respects the weight and profit bounds of all knapsacks.

        $ kpsolve solve kp.yaml --limit 10
        `,
		Args: cobra.ExactArgs(1),
		RunE: solveFunc,
	}
	solveCmd.Flags().Int(keyLimit, 0, "stop after n solutions, 0 for all")
	solveCmd.Flags().Bool(keyRelaxation, true, "filter items by the Dantzig relaxation")
	solveCmd.Flags().Bool(keyPowerBound, false, "bound profits by the Dantzig relaxation")
	solveCmd.Flags().Bool(keyMetrics, false, "print metrics in Prometheus text format")
	return solveCmd
}

func solveFunc(cmd *cobra.Command, args []string) error {
	k, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if err = setupTracing(k); err != nil {
		return err
	}
	inst, err := instance.Load(args[0])
	if err != nil {
		return err
	}
	var opts []solver.KnapsackOption
	if !k.Bool(keyRelaxation) {
		opts = append(opts, solver.WithoutRelaxation())
	}
	if k.Bool(keyPowerBound) {
		opts = append(opts, solver.WithPowerBound())
	}
	model, err := inst.Build(opts...)
	if err != nil {
		return err
	}
	recorder := metrics.New("kpsolve")
	s := solver.New(model.Model,
		solver.WithDecisionVars(model.Items...),
		solver.WithLimit(k.Int(keyLimit)),
		solver.WithRecorder(recorder),
	)
	out := cmd.OutOrStdout()
	con := newConsole(out, inst, k.Bool(keyColor))
	con.Instance()
	//
	g, ctx := errgroup.WithContext(cmd.Context())
	stream := s.Stream(ctx)
	solutions, ok := stream.Subscribe(ctx, 64)
	if !ok {
		return errors.New("cannot subscribe to solutions")
	}
	var stats solver.Stats
	g.Go(func() error {
		var err error
		stats, err = stream.Run()
		return err
	})
	g.Go(func() error {
		for msg := range solutions {
			con.Solution(msg.(solver.Solution))
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		tracer().Errorf("search failed: %v", err)
		return err
	}
	con.Summary(stats)
	if !k.Bool(keyMetrics) {
		return nil
	}
	for i, prop := range model.Props {
		if prop != nil {
			recorder.ObserveKnapsack(inst.KnapsackName(i), prop.Stats())
		}
	}
	return recorder.WriteText(out)
}
