package main

import (
	"math/rand"

	"github.com/npillmayer/knapsack/instance"
	"github.com/spf13/cobra"
)

func newGenCmd() *cobra.Command {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random knapsack instance",
		Args:  cobra.NoArgs,
		RunE:  genFunc,
	}
	genCmd.Flags().IntP("items", "n", 14, "number of items")
	genCmd.Flags().IntP("knapsacks", "k", 1, "number of knapsack constraints")
	genCmd.Flags().Int64("seed", 1, "random seed")
	genCmd.Flags().String("name", "random", "name of the instance")
	genCmd.Flags().StringP("output", "o", "", "output file, default is stdout")
	return genCmd
}

func genFunc(cmd *cobra.Command, args []string) error {
	k, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if err = setupTracing(k); err != nil {
		return err
	}
	rnd := rand.New(rand.NewSource(k.Int64("seed")))
	inst := instance.Random(rnd, k.String("name"), k.Int("items"), k.Int("knapsacks"))
	if name := k.String("output"); name != "" {
		tracer().Infof("writing instance to %s", name)
		return inst.Save(name)
	}
	return inst.Write(cmd.OutOrStdout())
}
