package cmd

import (
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/spf13/cobra"
)

func newSolveCmd() *cobra.Command {
	var pathOnly bool

	cmd := &cobra.Command{
		Use:   "solve <snapshot.yaml>",
		Short: "Print a saved maze with its solution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			m, err := maze.LoadSnapshot(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if pathOnly {
				path, err := m.Solve(m.Start, m.Goal())
				if err != nil {
					return err
				}
				for _, cell := range path {
					fmt.Fprintln(out, cell)
				}
				return nil
			}

			text, err := m.SolutionString()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, text)
			return err
		},
	}

	cmd.Flags().BoolVar(&pathOnly, "path", false, "Print the cells of the path instead of the maze")
	return cmd
}
