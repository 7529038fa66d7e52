// Package gameapi exposes game sessions and leaderboards over HTTP.
package gameapi

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// CompleteRequest carries the walked path of a level, from the start cell to the goal.
type CompleteRequest struct {
	Path []maze.CellPosition `json:"path" binding:"required"`
}

// LayoutQuery holds the surface of GET /games/:id/layout.
type LayoutQuery struct {
	Width  float64 `form:"width" binding:"required,gt=0"`
	Height float64 `form:"height" binding:"required,gt=0"`
}

// LimitQuery bounds listing endpoints.
type LimitQuery struct {
	Limit int64 `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SessionResponse represents a session together with its current maze.
type SessionResponse struct {
	ID        uuid.UUID  `json:"id"`
	Level     game.Level `json:"level"`
	State     game.State `json:"state"`
	Attempts  int        `json:"attempts"`
	StartedAt time.Time  `json:"started_at"`
	Maze      *maze.Maze `json:"maze,omitempty"`
}

// CompleteResponse is returned when a level is completed.
type CompleteResponse struct {
	Session *SessionResponse `json:"session"`
	Result  *game.Result     `json:"result"`
}

// LeaderboardResponse lists the standings of a level. Total counts every ranked player,
// not only the listed ones.
type LeaderboardResponse struct {
	Level     int             `json:"level"`
	Total     int64           `json:"total"`
	Standings []game.Standing `json:"standings"`
}

func newSessionResponse(s *game.Session, m *maze.Maze) *SessionResponse {
	return &SessionResponse{
		ID:        s.ID,
		Level:     s.Level,
		State:     s.State,
		Attempts:  s.Attempts,
		StartedAt: s.StartedAt,
		Maze:      m,
	}
}
