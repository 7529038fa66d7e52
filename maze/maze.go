/*
Package maze generates perfect rectangular mazes.

A maze is expressed as two boolean passage arrays. Horizontals[r][c] is true when the wall
between (r, c) and (r+1, c) is removed, and Verticals[r][c] is true when the wall between
(r, c) and (r, c+1) is removed. Open passages always form a spanning tree over the grid, so
there is exactly one path between any two cells.

Generation uses a randomized depth-first walk (recursive backtracker) driven by an
injectable random source, which makes mazes reproducible under a seeded source.
*/
package maze

import (
	"errors"
	"math/rand"
	"strings"
)

var (
	ErrInvalidDimension = errors.New("maze dimensions must be positive")
	ErrInvalidStart     = errors.New("start cell is out of the maze")
)

// Source produces uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

type globalSource struct{}

func (globalSource) Intn(n int) int { return rand.Intn(n) }

// Maze is a generated, read-only maze topology.
type Maze struct {
	Rows        int          `json:"rows"`
	Columns     int          `json:"columns"`
	Horizontals [][]bool     `json:"horizontals"` // (Rows-1) x Columns, true means open
	Verticals   [][]bool     `json:"verticals"`   // Rows x (Columns-1), true means open
	Start       CellPosition `json:"start"`
}

type options struct {
	source   Source
	start    CellPosition
	hasStart bool
}

// Option configures a Generate call.
type Option func(*options)

// WithStart forces the cell the walk begins at. An explicit (0, 0) is honored.
func WithStart(row, column int) Option {
	return func(o *options) {
		o.start = CellPosition{Row: row, Column: column}
		o.hasStart = true
	}
}

// WithSource sets the random source used for the start cell and the neighbor shuffles.
func WithSource(src Source) Option {
	return func(o *options) {
		if src != nil {
			o.source = src
		}
	}
}

// frame is one cell of the walk along with its shuffled neighbors still to try.
type frame struct {
	pos     CellPosition
	options [4]Direction
	next    int
}

// Generate builds a perfect maze of the given dimensions.
func Generate(rows, columns int, opts ...Option) (*Maze, error) {
	if rows <= 0 || columns <= 0 {
		return nil, ErrInvalidDimension
	}

	o := options{source: globalSource{}}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Maze{
		Rows:        rows,
		Columns:     columns,
		Horizontals: newMatrix(rows-1, columns),
		Verticals:   newMatrix(rows, columns-1),
	}

	if o.hasStart {
		if !m.InBound(o.start.Row, o.start.Column) {
			return nil, ErrInvalidStart
		}
		m.Start = o.start
	} else {
		m.Start.Row = o.source.Intn(rows)
		m.Start.Column = o.source.Intn(columns)
	}

	m.carve(o.source)
	return m, nil
}

// carve runs the depth-first walk from m.Start over an explicit stack. The visiting order
// and the random draws match a recursive walk exactly.
func (m *Maze) carve(src Source) {
	visited := newMatrix(m.Rows, m.Columns)

	enter := func(pos CellPosition) frame {
		visited[pos.Row][pos.Column] = true
		f := frame{pos: pos, options: neighborOrder}
		shuffle(f.options[:], src)
		return f
	}

	stack := []frame{enter(m.Start)}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.options) {
			stack = stack[:len(stack)-1]
			continue
		}

		dir := top.options[top.next]
		top.next++

		next := top.pos.Step(dir)
		if !m.InBound(next.Row, next.Column) || visited[next.Row][next.Column] {
			continue
		}

		m.open(next, dir)
		stack = append(stack, enter(next))
	}
}

// open removes the wall crossed when arriving at next by moving in dir. The passage
// arrays are addressed by the upper or left cell of the connected pair.
func (m *Maze) open(next CellPosition, dir Direction) {
	switch dir {
	case Up:
		m.Horizontals[next.Row][next.Column] = true
	case Down:
		m.Horizontals[next.Row-1][next.Column] = true
	case Right:
		m.Verticals[next.Row][next.Column-1] = true
	case Left:
		m.Verticals[next.Row][next.Column] = true
	}
}

// shuffle permutes s in place with Fisher-Yates, walking from the last index down and
// drawing src.Intn(i+1) at each step.
func shuffle(s []Direction, src Source) {
	for i := len(s) - 1; i >= 0; i-- {
		j := src.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func newMatrix(rows, columns int) [][]bool {
	if rows <= 0 {
		return [][]bool{}
	}
	matrix := make([][]bool, rows)
	for i := range matrix {
		matrix[i] = make([]bool, max(columns, 0))
	}
	return matrix
}

// InBound reports whether (row, column) lies on the grid.
func (m *Maze) InBound(row, column int) bool {
	return row >= 0 && row < m.Rows && column >= 0 && column < m.Columns
}

// Goal returns the terminal cell, the bottom-right corner of the grid.
func (m *Maze) Goal() CellPosition {
	return CellPosition{Row: m.Rows - 1, Column: m.Columns - 1}
}

// IsOpen reports whether the passage leaving from in direction d is open.
func (m *Maze) IsOpen(from CellPosition, d Direction) bool {
	to := from.Step(d)
	if !m.InBound(from.Row, from.Column) || !m.InBound(to.Row, to.Column) {
		return false
	}

	switch d {
	case Up:
		return m.Horizontals[to.Row][to.Column]
	case Down:
		return m.Horizontals[from.Row][from.Column]
	case Right:
		return m.Verticals[from.Row][from.Column]
	case Left:
		return m.Verticals[to.Row][to.Column]
	default:
		return false
	}
}

// Neighbors returns the open moves out of pos.
func (m *Maze) Neighbors(pos CellPosition) []Move {
	var result []Move
	for _, d := range neighborOrder {
		if m.IsOpen(pos, d) {
			result = append(result, Move{From: pos, To: pos.Step(d), Direction: d})
		}
	}
	return result
}

// Passages counts the open passages of the maze.
func (m *Maze) Passages() int {
	count := 0
	for _, walls := range [][][]bool{m.Horizontals, m.Verticals} {
		for _, row := range walls {
			for _, open := range row {
				if open {
					count++
				}
			}
		}
	}
	return count
}

// String provides a textual representation of the maze with the start marked S and the
// goal marked G.
func (m *Maze) String() string {
	return m.render(nil)
}

func (m *Maze) render(marks map[CellPosition]byte) string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", m.Columns) + "\n")

	for row := 0; row < m.Rows; row++ {
		// Cell rows
		output.WriteString("|")
		for col := 0; col < m.Columns; col++ {
			pos := CellPosition{Row: row, Column: col}
			switch {
			case pos == m.Start:
				output.WriteString(" S ")
			case pos == m.Goal():
				output.WriteString(" G ")
			case marks[pos] != 0:
				output.WriteString(" " + string(marks[pos]) + " ")
			default:
				output.WriteString("   ")
			}

			if m.IsOpen(pos, Right) {
				output.WriteString(" ")
			} else {
				output.WriteString("|")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for col := 0; col < m.Columns; col++ {
			if m.IsOpen(CellPosition{Row: row, Column: col}, Down) {
				output.WriteString("   +")
			} else {
				output.WriteString("---+")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
