// Package cmd provides the CLI commands for factoryopt.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"factoryopt/internal/logging"
	"factoryopt/pkg/parser"
	"factoryopt/pkg/solver"
)

// noSolutionMessage is printed verbatim on an infeasible problem.
const noSolutionMessage = "A solution could not be found. Is a recipe missing?"

var (
	format      string
	showProblem bool
	verbose     bool
)

// rootCmd solves the problem file given as the single argument.
var rootCmd = &cobra.Command{
	Use:   "factoryopt <problem-file>",
	Short: "Optimize production pipelines for resource-crafting games",
	Long: `factoryopt computes the cheapest set of machines that satisfies a
set of production demands, given the recipes available to build with.

The problem file lists recipes and demands, one per statement:

  // Smelt ore into ingots.
  (IronOre) -> 1 IronOre (1s, cost 1)
  1 IronOre -> 1 IronIngot (2s, cost 4)
  IronIngot (120/min)

Machine counts in the solution are exact fractions; machines can be
underclocked to match.`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	RunE:          runSolve,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() { logging.Initialize(verbose) })

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostics")
	rootCmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	rootCmd.Flags().BoolVar(&showProblem, "show-problem", false, "echo the parsed problem before the solution")

	rootCmd.AddCommand(versionCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	// Arguments are valid from here on; errors below are diagnostics,
	// not usage problems.
	cmd.SilenceUsage = true
	defer logging.Sync()
	filename := args[0]

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s\n", filename)
		return err
	}
	logging.Debug("read problem file",
		zap.String("file", filename),
		zap.Int("bytes", len(source)))

	problem, err := parser.Parse(string(source))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	logging.Debug("parsed problem",
		zap.Int("recipes", len(problem.Recipes)),
		zap.Int("demands", len(problem.Demands)))

	if showProblem && format == "text" {
		fmt.Println(problem)
		fmt.Println()
	}

	start := time.Now()
	solution, err := solver.Solve(problem)
	if err != nil {
		if errors.Is(err, solver.ErrNoSolution) {
			fmt.Fprintln(os.Stderr, noSolutionMessage)
		}
		return err
	}
	logging.Debug("solved", zap.Duration("elapsed", time.Since(start)))

	return renderSolution(os.Stdout, problem, solution, format)
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("factoryopt version 0.1.0")
	},
}
