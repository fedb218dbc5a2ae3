/*
Command kpsolve enumerates the solutions of knapsack instances.

	kpsolve gen -n 14 -k 1 --seed 7 -o kp.yaml   # generate a random instance
	kpsolve solve kp.yaml --limit 10             # print solutions
	kpsolve dot kp.yaml -o trees                 # write the trees as Graphviz files

Configuration is read from a YAML file given by --config; command line flags
take precedence.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package main

import (
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// tracer writes to trace with key 'knapsack.cli'
func tracer() tracing.Trace {
	return tracing.Select("knapsack.cli")
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kpsolve",
		Short: "kpsolve",
		Long:  `A CLI tool to enumerate the solutions of knapsack instances.`,

		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().String(keyConfig, "", "YAML configuration file")
	rootCmd.PersistentFlags().String(keyTrace, "error", "trace level (debug, info, error)")
	rootCmd.PersistentFlags().String(keyTraceAdapter, "go", "trace adapter (go, logrus)")
	rootCmd.PersistentFlags().Bool(keyColor, true, "colored output")

	rootCmd.AddCommand(newSolveCmd(), newGenCmd(), newDotCmd())
	return rootCmd
}
