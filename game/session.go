package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// Session-related errors.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrNotPlaying       = errors.New("level is not being played")
	ErrLevelNotComplete = errors.New("current level is not complete")
	ErrGameOver         = errors.New("game is already complete")
	ErrWrongStart       = errors.New("path does not begin at the start cell")
	ErrWrongGoal        = errors.New("path does not end at the goal")
)

// State is the position of a session in its lifecycle.
type State string

// Session states.
const (
	Playing       State = "playing"
	LevelComplete State = "level_complete"
	GameComplete  State = "game_complete"
)

// Session is one player's run through the level progression. Only the seed of the
// current maze is kept; the maze itself is regenerated from it on demand.
type Session struct {
	ID        uuid.UUID `json:"id"`
	PlayerID  uuid.UUID `json:"player_id"`
	Level     Level     `json:"level"`
	Seed      int64     `json:"seed"`
	State     State     `json:"state"`
	Attempts  int       `json:"attempts"`   // Attempts at the current level
	StartedAt time.Time `json:"started_at"` // When the current attempt began
}

// Result records a completed level.
type Result struct {
	ID          uuid.UUID     `json:"id" bson:"_id"`
	PlayerID    uuid.UUID     `json:"player_id" bson:"playerID"`
	SessionID   uuid.UUID     `json:"session_id" bson:"sessionID"`
	Level       Level         `json:"level" bson:"level"`
	Seed        int64         `json:"seed" bson:"seed"`
	Moves       int           `json:"moves" bson:"moves"`
	Attempts    int           `json:"attempts" bson:"attempts"`
	Duration    time.Duration `json:"duration" bson:"duration"`
	CompletedAt time.Time     `json:"completed_at" bson:"completedAt"`
}

// Standing is one entry of a level leaderboard.
type Standing struct {
	PlayerID uuid.UUID     `json:"player_id"`
	Duration time.Duration `json:"duration"`
}

// NewSession starts a session at level l.
func NewSession(id, playerID uuid.UUID, l Level, seed int64, now time.Time) *Session {
	return &Session{
		ID:        id,
		PlayerID:  playerID,
		Level:     l,
		Seed:      seed,
		State:     Playing,
		Attempts:  1,
		StartedAt: now,
	}
}

// Maze regenerates the maze of the current level from the session seed.
func (s *Session) Maze() (*maze.Maze, error) {
	return maze.Generate(s.Level.Rows, s.Level.Columns, maze.WithSource(rand.New(rand.NewSource(s.Seed))))
}

// Complete checks a walked path against the current maze and closes the level. The path
// must begin at the start cell and end at the goal. Finishing the last level of p
// completes the game.
func (s *Session) Complete(p Progression, path []maze.CellPosition, now time.Time) (*Result, error) {
	if s.State != Playing {
		return nil, ErrNotPlaying
	}

	m, err := s.Maze()
	if err != nil {
		return nil, err
	}

	if err := m.ValidatePath(path); err != nil {
		return nil, err
	}
	if path[0] != m.Start {
		return nil, ErrWrongStart
	}
	if path[len(path)-1] != m.Goal() {
		return nil, ErrWrongGoal
	}

	if p.IsFinal(s.Level) {
		s.State = GameComplete
	} else {
		s.State = LevelComplete
	}

	return &Result{
		ID:          uuid.New(),
		PlayerID:    s.PlayerID,
		SessionID:   s.ID,
		Level:       s.Level,
		Seed:        s.Seed,
		Moves:       len(path) - 1,
		Attempts:    s.Attempts,
		Duration:    now.Sub(s.StartedAt),
		CompletedAt: now,
	}, nil
}

// Advance moves a completed level on to the next one of p with a fresh maze.
func (s *Session) Advance(p Progression, seed int64, now time.Time) error {
	switch s.State {
	case GameComplete:
		return ErrGameOver
	case Playing:
		return ErrLevelNotComplete
	}

	next, err := p.Next(s.Level)
	if err != nil {
		return err
	}

	s.Level = next
	s.Seed = seed
	s.State = Playing
	s.Attempts = 1
	s.StartedAt = now
	return nil
}

// Restart replays the current level on a fresh maze.
func (s *Session) Restart(seed int64, now time.Time) error {
	if s.State == GameComplete {
		return ErrGameOver
	}

	s.Seed = seed
	s.State = Playing
	s.Attempts++
	s.StartedAt = now
	return nil
}
