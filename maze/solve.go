package maze

import (
	"errors"

	"github.com/gammazero/deque"
)

var (
	ErrOutOfBounds = errors.New("position is out of the maze")
	ErrNoPath      = errors.New("no path between positions")
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidMove = errors.New("path crosses a closed wall")
	ErrMalformed   = errors.New("passage arrays do not match maze dimensions")
	ErrNotPerfect  = errors.New("passages do not form a spanning tree")
)

// Solve returns the shortest path of cells from one position to another, both ends
// included. In a perfect maze this is the only path.
func (m *Maze) Solve(from, to CellPosition) ([]CellPosition, error) {
	if !m.InBound(from.Row, from.Column) || !m.InBound(to.Row, to.Column) {
		return nil, ErrOutOfBounds
	}

	cameFrom := map[CellPosition]CellPosition{from: from}
	var frontier deque.Deque[CellPosition]
	frontier.PushBack(from)

	for frontier.Len() > 0 {
		cell := frontier.PopFront()
		if cell == to {
			return backtrack(cameFrom, from, to), nil
		}

		for _, move := range m.Neighbors(cell) {
			if _, seen := cameFrom[move.To]; !seen {
				cameFrom[move.To] = cell
				frontier.PushBack(move.To)
			}
		}
	}

	return nil, ErrNoPath
}

// backtrack walks the parent links from to back to from and returns the path in
// forward order.
func backtrack(cameFrom map[CellPosition]CellPosition, from, to CellPosition) []CellPosition {
	path := []CellPosition{to}
	for cell := to; cell != from; {
		cell = cameFrom[cell]
		path = append(path, cell)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ValidatePath checks that every step of path moves to an adjacent cell through an
// open passage.
func (m *Maze) ValidatePath(path []CellPosition) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}

	for i, cell := range path {
		if !m.InBound(cell.Row, cell.Column) {
			return ErrOutOfBounds
		}
		if i == 0 {
			continue
		}

		dir, adjacent := path[i-1].DirectionTo(cell)
		if !adjacent || !m.IsOpen(path[i-1], dir) {
			return ErrInvalidMove
		}
	}

	return nil
}

// SolutionString renders the maze with the path from start to goal marked with dots.
func (m *Maze) SolutionString() (string, error) {
	path, err := m.Solve(m.Start, m.Goal())
	if err != nil {
		return "", err
	}

	marks := make(map[CellPosition]byte, len(path))
	for _, cell := range path {
		marks[cell] = '.'
	}
	return m.render(marks), nil
}

// Validate checks the shapes of the passage arrays, the start cell and the spanning-tree
// property of the passages.
func (m *Maze) Validate() error {
	if m.Rows <= 0 || m.Columns <= 0 {
		return ErrInvalidDimension
	}
	if !hasShape(m.Horizontals, m.Rows-1, m.Columns) || !hasShape(m.Verticals, m.Rows, m.Columns-1) {
		return ErrMalformed
	}
	if !m.InBound(m.Start.Row, m.Start.Column) {
		return ErrInvalidStart
	}

	cells := m.Rows * m.Columns
	if m.Passages() != cells-1 {
		return ErrNotPerfect
	}

	// With exactly cells-1 edges, reaching every cell from the start rules out cycles.
	visited := map[CellPosition]struct{}{m.Start: {}}
	stack := []CellPosition{m.Start}
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, move := range m.Neighbors(cell) {
			if _, seen := visited[move.To]; !seen {
				visited[move.To] = struct{}{}
				stack = append(stack, move.To)
			}
		}
	}

	if len(visited) != cells {
		return ErrNotPerfect
	}
	return nil
}

func hasShape(matrix [][]bool, rows, columns int) bool {
	if len(matrix) != max(rows, 0) {
		return false
	}
	for _, row := range matrix {
		if len(row) != columns {
			return false
		}
	}
	return true
}
