package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	// A username taken by another user yields identity.ErrUsernameConflict.
	Save(user *identity.User) error

	// ByID retrieves a user by their unique ID.
	// Returns identity.ErrUserNotFound if the user is not found.
	ByID(id uuid.UUID) (*identity.User, error)

	// ByUsername retrieves a user by their username.
	// Returns identity.ErrUserNotFound if the user is not found.
	ByUsername(username string) (*identity.User, error)
}

// ResultRepo persists completed levels.
type ResultRepo interface {
	// Save stores a result.
	Save(ctx context.Context, result *game.Result) error

	// ByPlayer lists the results of a player, most recent first.
	ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]*game.Result, error)
}

// SessionStore keeps live game sessions.
type SessionStore interface {
	// Save stores the session and indexes it as the current session of its player.
	Save(ctx context.Context, session *game.Session) error

	// ByID retrieves a session. Returns game.ErrSessionNotFound when it does not exist or expired.
	ByID(ctx context.Context, id uuid.UUID) (*game.Session, error)

	// ByPlayer retrieves the current session of a player, or game.ErrSessionNotFound.
	ByPlayer(ctx context.Context, playerID uuid.UUID) (*game.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
