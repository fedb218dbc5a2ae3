package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/knapsack"
	"github.com/npillmayer/knapsack/instance"
	"github.com/spf13/cobra"
)

func newDotCmd() *cobra.Command {
	dotCmd := &cobra.Command{
		Use:   "dot <instance.yaml>",
		Short: "Write the trees of the knapsack propagators as Graphviz files",
		Long: `The kpsolve dot command propagates an instance once and writes, for every
        knapsack, the relaxation tree and the skip-search tree in DOT format.

        $ kpsolve dot kp.yaml -o trees
        $ dot -Tsvg trees/kp-relaxation.dot > kp.svg
        `,
		Args: cobra.ExactArgs(1),
		RunE: dotFunc,
	}
	dotCmd.Flags().StringP("output", "o", ".", "output directory")
	return dotCmd
}

func dotFunc(cmd *cobra.Command, args []string) error {
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
	model, err := inst.Build()
	if err != nil {
		return err
	}
	if err = model.Propagate(); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "instance has no solution: %v\n", err)
	}
	dir := k.String("output")
	for i, prop := range model.Props {
		if prop == nil {
			continue
		}
		name := inst.KnapsackName(i)
		var info *knapsack.Info
		if ci, valid := prop.CriticalInfo(); valid {
			info = &ci
		}
		err = writeDot(filepath.Join(dir, name+"-relaxation.dot"), func(f *os.File) error {
			return knapsack.Tree2Dot(prop.RelaxationTree(), info, f)
		})
		if err != nil {
			return err
		}
		err = writeDot(filepath.Join(dir, name+"-skip.dot"), func(f *os.File) error {
			return knapsack.SkipTree2Dot(prop.SkipSearchTree(), f)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote trees of knapsack %s to %s\n", name, dir)
	}
	return nil
}

func writeDot(name string, write func(*os.File) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
