// Package cmd holds the vinom-maze command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vinom-maze",
		Short: "Generate, solve and serve perfect mazes",
		Long: `vinom-maze generates perfect mazes with a randomized depth-first
backtracker and serves them as levels of a ball-rolling game.

Print a maze
	vinom-maze generate -r 8 -c 16

Solve a saved maze
	vinom-maze solve maze.yaml

Run the game API
	vinom-maze serve
`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newGenerateCmd(), newSolveCmd())
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
