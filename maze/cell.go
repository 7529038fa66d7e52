package maze

import "fmt"

// Direction names the side of a cell a move leaves through.
type Direction string

// Directions a move can take.
const (
	Up    Direction = "up"
	Right Direction = "right"
	Left  Direction = "left"
	Down  Direction = "down"
)

// neighborOrder is the order the generator enumerates neighbors in before shuffling.
var neighborOrder = [4]Direction{Up, Right, Left, Down}

// delta returns the row and column offset of the direction.
func (d Direction) delta() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Right:
		return 0, 1
	case Left:
		return 0, -1
	case Down:
		return 1, 0
	default:
		return 0, 0
	}
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row    int `json:"row" yaml:"row"`       // Row index of the cell
	Column int `json:"column" yaml:"column"` // Column index of the cell
}

// Step returns the position one cell away in the given direction.
func (cp CellPosition) Step(d Direction) CellPosition {
	dr, dc := d.delta()
	return CellPosition{Row: cp.Row + dr, Column: cp.Column + dc}
}

// DirectionTo returns the direction leading from cp to an adjacent position.
// ok is false when the two positions are not grid neighbors.
func (cp CellPosition) DirectionTo(other CellPosition) (Direction, bool) {
	for _, d := range neighborOrder {
		if cp.Step(d) == other {
			return d, true
		}
	}
	return "", false
}

func (cp CellPosition) String() string {
	return fmt.Sprintf("(%d, %d)", cp.Row, cp.Column)
}

// Move represents a movement from one cell to an adjacent one.
type Move struct {
	From      CellPosition `json:"from"`      // Starting cell
	To        CellPosition `json:"to"`        // Destination cell
	Direction Direction    `json:"direction"` // Direction of the move
}
