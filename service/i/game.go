package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// GameService drives a player's sessions through the level progression.
type GameService interface {
	// NewGame starts a session at the first level for the player, retiring the current one.
	NewGame(ctx context.Context, playerID uuid.UUID) (*game.Session, error)

	// Current returns the live session of the player and its maze.
	Current(ctx context.Context, playerID uuid.UUID) (*game.Session, *maze.Maze, error)

	// Session returns a session owned by the player.
	Session(ctx context.Context, playerID, sessionID uuid.UUID) (*game.Session, error)

	// Maze returns a session and the maze of its current level.
	Maze(ctx context.Context, playerID, sessionID uuid.UUID) (*game.Session, *maze.Maze, error)

	// Layout returns the static geometry of the current maze on a width x height surface.
	Layout(ctx context.Context, playerID, sessionID uuid.UUID, width, height float64) (*game.Layout, error)

	// Complete submits the walked path of the current level.
	Complete(ctx context.Context, playerID, sessionID uuid.UUID, path []maze.CellPosition) (*game.Session, *game.Result, error)

	// Next advances a completed level to the next one.
	Next(ctx context.Context, playerID, sessionID uuid.UUID) (*game.Session, error)

	// Restart replays the current level on a new maze.
	Restart(ctx context.Context, playerID, sessionID uuid.UUID) (*game.Session, error)

	// History lists the completed levels of the player.
	History(ctx context.Context, playerID uuid.UUID, limit int64) ([]*game.Result, error)

	// Leaderboard returns the fastest standings of a level and the number of ranked players.
	Leaderboard(ctx context.Context, level int, limit int64) ([]game.Standing, int64, error)
}
