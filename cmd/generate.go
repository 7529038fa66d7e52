package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	rows        int
	columns     int
	seed        int64
	startRow    int
	startColumn int
	format      string
	solution    bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a maze and print it",
		Long: `Generate a perfect maze of the given size.

Passing --seed makes the output reproducible. Without --start-row and
--start-column the start cell is drawn at random.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("start-row") != flags.Changed("start-column") {
				return fmt.Errorf("--start-row and --start-column must be given together")
			}
			if !flags.Changed("seed") {
				opts.seed = time.Now().UnixNano()
			}

			mazeOpts := []maze.Option{maze.WithSource(rand.New(rand.NewSource(opts.seed)))}
			if flags.Changed("start-row") {
				mazeOpts = append(mazeOpts, maze.WithStart(opts.startRow, opts.startColumn))
			}

			m, err := maze.Generate(opts.rows, opts.columns, mazeOpts...)
			if err != nil {
				return err
			}
			return writeMaze(cmd, m, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.rows, "rows", "r", 10, "Number of rows")
	cmd.Flags().IntVarP(&opts.columns, "columns", "c", 10, "Number of columns")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed of the random source")
	cmd.Flags().IntVar(&opts.startRow, "start-row", 0, "Row of the start cell")
	cmd.Flags().IntVar(&opts.startColumn, "start-column", 0, "Column of the start cell")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "ascii", "Output format: ascii, yaml or json")
	cmd.Flags().BoolVar(&opts.solution, "solution", false, "Mark the path from start to goal (ascii only)")
	return cmd
}

func writeMaze(cmd *cobra.Command, m *maze.Maze, opts *generateOptions) error {
	out := cmd.OutOrStdout()

	switch opts.format {
	case "ascii":
		text := m.String()
		if opts.solution {
			var err error
			if text, err = m.SolutionString(); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(out, text)
		return err
	case "yaml":
		data, err := m.MarshalSnapshot(&opts.seed)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(&mazeapi.MazeResponse{Seed: opts.seed, Maze: m})
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}
