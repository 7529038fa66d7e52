package sortedstorage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLeaderboard(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	ctx := context.Background()

	board, err := NewRedisLeaderboard(client, "")
	require.NoError(t, err)

	fast, slow, middle := uuid.New(), uuid.New(), uuid.New()

	t.Run("Keeps the best time", func(t *testing.T) {
		require.NoError(t, board.Record(ctx, 1, slow, 40*time.Second))
		require.NoError(t, board.Record(ctx, 1, fast, 12*time.Second))
		require.NoError(t, board.Record(ctx, 1, middle, 30*time.Second))
		require.NoError(t, board.Record(ctx, 1, fast, 20*time.Second))
		require.NoError(t, board.Record(ctx, 1, middle, 25*time.Second))

		top, err := board.Top(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, top, 3)
		assert.Equal(t, fast, top[0].PlayerID)
		assert.Equal(t, 12*time.Second, top[0].Duration)
		assert.Equal(t, middle, top[1].PlayerID)
		assert.Equal(t, 25*time.Second, top[1].Duration)
		assert.Equal(t, slow, top[2].PlayerID)

		count, err := board.Count(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("Limit", func(t *testing.T) {
		top, err := board.Top(ctx, 1, 2)
		require.NoError(t, err)
		assert.Len(t, top, 2)
	})

	t.Run("Levels are separate", func(t *testing.T) {
		assert.True(t, server.Exists("leaderboard:level_1"))

		top, err := board.Top(ctx, 2, 10)
		require.NoError(t, err)
		assert.Empty(t, top)
	})

	t.Run("Foreign members are skipped", func(t *testing.T) {
		_, err := server.ZAdd("leaderboard:level_3", 1, "not-a-player")
		require.NoError(t, err)

		top, err := board.Top(ctx, 3, 10)
		require.NoError(t, err)
		assert.Empty(t, top)
	})

	t.Run("Nil client", func(t *testing.T) {
		_, err := NewRedisLeaderboard(nil, "")
		assert.Error(t, err)
	})
}
