package game

import (
	"errors"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// Geometry constants of the static bodies, in surface units.
const (
	boundThickness = 2.0
	wallThickness  = 10.0
	wallOverlap    = 7.5
	goalScale      = 0.6
	ballScale      = 0.6
)

var ErrInvalidSurface = errors.New("surface dimensions must be positive")

// Rect is an axis-aligned rectangle positioned by its center.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Circle is positioned by its center.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Layout is the placement of every static body and the ball for a maze drawn on a
// width x height surface. A physics backend turns each rectangle into a static body.
type Layout struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	UnitWidth  float64 `json:"unit_width"`
	UnitHeight float64 `json:"unit_height"`
	Bounds     []Rect  `json:"bounds"` // Outer frame, top, bottom, left, right
	Walls      []Rect  `json:"walls"`  // One per closed passage
	Goal       Rect    `json:"goal"`
	Ball       Circle  `json:"ball"`
}

// NewLayout computes the static geometry of m on a width x height surface.
func NewLayout(m *maze.Maze, width, height float64) (*Layout, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSurface
	}

	unitWidth := width / float64(m.Columns)
	unitHeight := height / float64(m.Rows)
	unit := min(unitWidth, unitHeight)

	layout := &Layout{
		Width:      width,
		Height:     height,
		UnitWidth:  unitWidth,
		UnitHeight: unitHeight,
		Bounds: []Rect{
			{X: width / 2, Y: 0, Width: width, Height: boundThickness},
			{X: width / 2, Y: height, Width: width, Height: boundThickness},
			{X: 0, Y: height / 2, Width: boundThickness, Height: height},
			{X: width, Y: height / 2, Width: boundThickness, Height: height},
		},
	}

	for row, walls := range m.Horizontals {
		for col, open := range walls {
			if open {
				continue
			}
			layout.Walls = append(layout.Walls, Rect{
				X:      unitWidth/2 + unitWidth*float64(col),
				Y:      unitHeight + unitHeight*float64(row),
				Width:  unitWidth + wallOverlap,
				Height: wallThickness,
			})
		}
	}

	for row, walls := range m.Verticals {
		for col, open := range walls {
			if open {
				continue
			}
			layout.Walls = append(layout.Walls, Rect{
				X:      unitWidth + unitWidth*float64(col),
				Y:      unitHeight/2 + unitHeight*float64(row),
				Width:  wallThickness,
				Height: unitHeight + wallOverlap,
			})
		}
	}

	goal := m.Goal()
	side := unit * goalScale
	layout.Goal = Rect{
		X:      unitWidth/2 + unitWidth*float64(goal.Column),
		Y:      unitHeight/2 + unitHeight*float64(goal.Row),
		Width:  side,
		Height: side,
	}

	layout.Ball = Circle{
		X:      unitWidth/2 + unitWidth*float64(m.Start.Column),
		Y:      unitHeight/2 + unitHeight*float64(m.Start.Row),
		Radius: ballScale * unit / 2,
	}

	return layout, nil
}
