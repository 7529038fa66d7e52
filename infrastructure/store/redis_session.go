package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyFmt       = "session:%s"
	playerSessionKeyFmt = "player_session:%s"
)

// RedisSessionStore keeps sessions as JSON values that expire after a period without
// saves.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore initializes a RedisSessionStore with the provided Redis client and TTL.
func NewRedisSessionStore(client *redis.Client, ttlSeconds int) (*RedisSessionStore, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %d", ttlSeconds)
	}
	return &RedisSessionStore{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Save writes the session and points its player at it. Both keys get a fresh TTL.
func (s *RedisSessionStore) Save(ctx context.Context, session *game.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", session.ID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, fmt.Sprintf(sessionKeyFmt, session.ID), data, s.ttl)
		pipe.Set(ctx, fmt.Sprintf(playerSessionKeyFmt, session.PlayerID), session.ID.String(), s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving session %s: %w", session.ID, err)
	}
	return nil
}

// ByID retrieves a session. Returns game.ErrSessionNotFound when it does not exist or expired.
func (s *RedisSessionStore) ByID(ctx context.Context, id uuid.UUID) (*game.Session, error) {
	data, err := s.client.Get(ctx, fmt.Sprintf(sessionKeyFmt, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, game.ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}

	var session game.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &session, nil
}

// ByPlayer retrieves the last saved session of a player.
func (s *RedisSessionStore) ByPlayer(ctx context.Context, playerID uuid.UUID) (*game.Session, error) {
	raw, err := s.client.Get(ctx, fmt.Sprintf(playerSessionKeyFmt, playerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, game.ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session of player %s: %w", playerID, err)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("session index of player %s: %w", playerID, err)
	}
	return s.ByID(ctx, id)
}

// Delete removes a session. The player index is left to expire; it resolves to
// game.ErrSessionNotFound once the session is gone.
func (s *RedisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, fmt.Sprintf(sessionKeyFmt, id)).Err(); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}
