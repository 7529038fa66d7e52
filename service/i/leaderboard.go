package i

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/google/uuid"
)

// Leaderboard ranks players by their best completion time of each level.
type Leaderboard interface {
	// Record keeps d as the player's time for the level if it beats the stored one.
	Record(ctx context.Context, level int, playerID uuid.UUID, d time.Duration) error

	// Top returns the fastest standings of a level, fastest first.
	Top(ctx context.Context, level int, limit int64) ([]game.Standing, error)

	// Count returns the number of ranked players of a level.
	Count(ctx context.Context, level int) (int64, error)
}
