package sortedstorage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const leaderboardKeyFmt = "%s:level_%d"

const defaultPrefix = "leaderboard"

// RedisLeaderboard keeps one sorted set per level, scored by completion time in
// nanoseconds.
type RedisLeaderboard struct {
	client *redis.Client
	prefix string
}

// NewRedisLeaderboard initializes a RedisLeaderboard. An empty prefix selects
// "leaderboard".
func NewRedisLeaderboard(client *redis.Client, prefix string) (*RedisLeaderboard, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisLeaderboard{
		client: client,
		prefix: prefix,
	}, nil
}

// Record stores d for the player unless a faster time is already stored.
func (rl *RedisLeaderboard) Record(ctx context.Context, level int, playerID uuid.UUID, d time.Duration) error {
	err := rl.client.ZAddLT(ctx, rl.key(level), redis.Z{Score: float64(d), Member: playerID.String()}).Err()
	if err != nil {
		return fmt.Errorf("recording time of %s on level %d: %w", playerID, level, err)
	}
	return nil
}

// Top returns up to limit standings with the lowest times.
func (rl *RedisLeaderboard) Top(ctx context.Context, level int, limit int64) ([]game.Standing, error) {
	entries, err := rl.client.ZRangeWithScores(ctx, rl.key(level), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard of level %d: %w", level, err)
	}

	standings := make([]game.Standing, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		standings = append(standings, game.Standing{PlayerID: id, Duration: time.Duration(e.Score)})
	}
	return standings, nil
}

// Count returns the number of ranked players of a level.
func (rl *RedisLeaderboard) Count(ctx context.Context, level int) (int64, error) {
	return rl.client.ZCard(ctx, rl.key(level)).Result()
}

func (rl *RedisLeaderboard) key(level int) string {
	return fmt.Sprintf(leaderboardKeyFmt, rl.prefix, level)
}
