// Package mazeapi serves stateless maze generation.
package mazeapi

import "github.com/beka-birhanu/vinom-maze/maze"

// Output formats of GET /mazes.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatYAML = "yaml"
)

// MazeQuery holds the query parameters of GET /mazes. The start is used only when both
// coordinates are present.
type MazeQuery struct {
	Rows        int    `form:"rows" binding:"required,min=1"`
	Columns     int    `form:"columns" binding:"required,min=1"`
	Seed        *int64 `form:"seed"`
	StartRow    *int   `form:"startRow"`
	StartColumn *int   `form:"startColumn"`
	Format      string `form:"format" binding:"omitempty,oneof=json text yaml"`
}

// MazeResponse is the JSON form of a generated maze. The seed reproduces it.
type MazeResponse struct {
	Seed int64      `json:"seed"`
	Maze *maze.Maze `json:"maze"`
}
