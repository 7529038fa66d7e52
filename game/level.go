package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLevel = errors.New("level is out of the progression")
	ErrFinalLevel   = errors.New("already at the final level")
)

// Level describes the grid of one stage of the game.
type Level struct {
	Number  int `json:"number" bson:"number"`
	Rows    int `json:"rows" bson:"rows"`
	Columns int `json:"columns" bson:"columns"`
}

func (l Level) String() string {
	return fmt.Sprintf("level %d (%dx%d)", l.Number, l.Rows, l.Columns)
}

// Progression scales the grid from level to level.
type Progression struct {
	First      Level // Grid of level one
	RowStep    int   // Rows added per level
	ColumnStep int   // Columns added per level
	MaxLevel   int   // Number of the last level
}

// DefaultProgression starts at 2 rows by 4 columns and grows by one row and two columns
// per level, for five levels.
func DefaultProgression() Progression {
	return Progression{
		First:      Level{Number: 1, Rows: 2, Columns: 4},
		RowStep:    1,
		ColumnStep: 2,
		MaxLevel:   5,
	}
}

// Level returns the n-th level of the progression, counting from one.
func (p Progression) Level(n int) (Level, error) {
	if n < 1 || n > p.MaxLevel {
		return Level{}, fmt.Errorf("%w: %d", ErrInvalidLevel, n)
	}

	steps := n - p.First.Number
	return Level{
		Number:  n,
		Rows:    p.First.Rows + steps*p.RowStep,
		Columns: p.First.Columns + steps*p.ColumnStep,
	}, nil
}

// Next returns the level following l.
func (p Progression) Next(l Level) (Level, error) {
	if p.IsFinal(l) {
		return Level{}, ErrFinalLevel
	}
	return p.Level(l.Number + 1)
}

// IsFinal reports whether l is the last level.
func (p Progression) IsFinal(l Level) bool {
	return l.Number >= p.MaxLevel
}
