package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	sessionLockKeyFmt = "lock:session:%s"
	playerLockKeyFmt  = "lock:player:%s"

	defaultHistoryLimit     = 20
	defaultLeaderboardLimit = 10
)

// Config holds the collaborators of a Game service. Progression, Seeds and Now fall back
// to the default progression, math/rand and the UTC wall clock.
type Config struct {
	Store       i.SessionStore
	Results     i.ResultRepo
	Leaderboard i.Leaderboard
	Locker      i.Locker
	Users       i.UserRepo
	Logger      i.Logger
	Progression *game.Progression
	Seeds       func() int64
	Now         func() time.Time
}

// Game moves player sessions through the level progression. Every transition of a
// session runs under its lock.
type Game struct {
	store       i.SessionStore
	results     i.ResultRepo
	leaderboard i.Leaderboard
	locker      i.Locker
	users       i.UserRepo
	logger      i.Logger
	progression game.Progression
	seeds       func() int64
	now         func() time.Time
}

// NewGameService creates a Game from c.
func NewGameService(c *Config) (*Game, error) {
	if c == nil || c.Store == nil || c.Results == nil || c.Leaderboard == nil || c.Locker == nil || c.Users == nil || c.Logger == nil {
		return nil, errors.New("game service needs a store, results, leaderboard, locker, users and logger")
	}

	g := &Game{
		store:       c.Store,
		results:     c.Results,
		leaderboard: c.Leaderboard,
		locker:      c.Locker,
		users:       c.Users,
		logger:      c.Logger,
		progression: game.DefaultProgression(),
		seeds:       rand.Int63,
		now:         func() time.Time { return time.Now().UTC() },
	}

	if c.Progression != nil {
		g.progression = *c.Progression
	}
	if c.Seeds != nil {
		g.seeds = c.Seeds
	}
	if c.Now != nil {
		g.now = c.Now
	}

	return g, nil
}

// NewGame starts a session at the first level. The current session of the player, if
// any, is deleted first so only one session per player stays playable.
func (g *Game) NewGame(ctx context.Context, playerID uuid.UUID) (*game.Session, error) {
	first, err := g.progression.Level(1)
	if err != nil {
		return nil, err
	}

	unlock, err := g.lock(ctx, fmt.Sprintf(playerLockKeyFmt, playerID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := g.retire(ctx, playerID); err != nil {
		return nil, err
	}

	s := game.NewSession(uuid.New(), playerID, first, g.seeds(), g.now())
	if err := g.store.Save(ctx, s); err != nil {
		g.logger.Error(fmt.Sprintf("saving new session for player %s: %s", playerID, err))
		return nil, err
	}

	g.logger.Info(fmt.Sprintf("started session %s for player %s at %s", s.ID, playerID, s.Level))
	return s, nil
}

// Current returns the live session of the player with the maze of its current level.
func (g *Game) Current(ctx context.Context, playerID uuid.UUID) (*game.Session, *maze.Maze, error) {
	s, err := g.store.ByPlayer(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}
	return g.Maze(ctx, playerID, s.ID)
}

// Session returns a session owned by the player. Sessions of other players are reported
// as not found.
func (g *Game) Session(ctx context.Context, playerID, sessionID uuid.UUID) (*game.Session, error) {
	s, err := g.store.ByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.PlayerID != playerID {
		g.logger.Warning(fmt.Sprintf("player %s asked for session %s of another player", playerID, sessionID))
		return nil, game.ErrSessionNotFound
	}
	return s, nil
}

// Maze returns a session with the maze of its current level.
func (g *Game) Maze(ctx context.Context, playerID, sessionID uuid.UUID) (*game.Session, *maze.Maze, error) {
	s, err := g.Session(ctx, playerID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	m, err := s.Maze()
	if err != nil {
		g.logger.Error(fmt.Sprintf("regenerating maze of session %s: %s", sessionID, err))
		return nil, nil, err
	}
	return s, m, nil
}

// Layout returns the geometry of the current maze on a width x height surface.
func (g *Game) Layout(ctx context.Context, playerID, sessionID uuid.UUID, width, height float64) (*game.Layout, error) {
	_, m, err := g.Maze(ctx, playerID, sessionID)
	if err != nil {
		return nil, err
	}
	return game.NewLayout(m, width, height)
}

// Complete checks the walked path and records the finished level.
func (g *Game) Complete(ctx context.Context, playerID, sessionID uuid.UUID, path []maze.CellPosition) (*game.Session, *game.Result, error) {
	var result *game.Result
	s, err := g.transition(ctx, playerID, sessionID, func(s *game.Session) error {
		var err error
		result, err = s.Complete(g.progression, path, g.now())
		if err != nil {
			return err
		}
		if err := g.results.Save(ctx, result); err != nil {
			g.logger.Error(fmt.Sprintf("saving result of session %s: %s", sessionID, err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	g.logger.Info(fmt.Sprintf("player %s completed %s in %s", playerID, result.Level, result.Duration))
	g.recordStanding(ctx, result)
	return s, result, nil
}

// Next advances a completed level to the next one on a fresh maze.
func (g *Game) Next(ctx context.Context, playerID, sessionID uuid.UUID) (*game.Session, error) {
	s, err := g.transition(ctx, playerID, sessionID, func(s *game.Session) error {
		return s.Advance(g.progression, g.seeds(), g.now())
	})
	if err != nil {
		return nil, err
	}

	g.logger.Info(fmt.Sprintf("session %s moved to %s", sessionID, s.Level))
	return s, nil
}

// Restart replays the current level on a fresh maze.
func (g *Game) Restart(ctx context.Context, playerID, sessionID uuid.UUID) (*game.Session, error) {
	s, err := g.transition(ctx, playerID, sessionID, func(s *game.Session) error {
		return s.Restart(g.seeds(), g.now())
	})
	if err != nil {
		return nil, err
	}

	g.logger.Info(fmt.Sprintf("session %s restarted %s, attempt %d", sessionID, s.Level, s.Attempts))
	return s, nil
}

// History lists completed levels of the player, most recent first.
func (g *Game) History(ctx context.Context, playerID uuid.UUID, limit int64) ([]*game.Result, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return g.results.ByPlayer(ctx, playerID, limit)
}

// Leaderboard returns the fastest standings of a level and the number of ranked players.
func (g *Game) Leaderboard(ctx context.Context, level int, limit int64) ([]game.Standing, int64, error) {
	if _, err := g.progression.Level(level); err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	standings, err := g.leaderboard.Top(ctx, level, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := g.leaderboard.Count(ctx, level)
	if err != nil {
		return nil, 0, err
	}
	return standings, total, nil
}

// retire deletes the current session of the player under the session lock, so no
// transition of it is in flight.
func (g *Game) retire(ctx context.Context, playerID uuid.UUID) error {
	current, err := g.store.ByPlayer(ctx, playerID)
	if errors.Is(err, game.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		g.logger.Error(fmt.Sprintf("loading current session of player %s: %s", playerID, err))
		return err
	}

	unlock, err := g.lock(ctx, fmt.Sprintf(sessionLockKeyFmt, current.ID))
	if err != nil {
		return err
	}
	defer unlock()

	if err := g.store.Delete(ctx, current.ID); err != nil {
		g.logger.Error(fmt.Sprintf("deleting session %s: %s", current.ID, err))
		return err
	}
	g.logger.Info(fmt.Sprintf("retired session %s of player %s", current.ID, playerID))
	return nil
}

// lock acquires key. The returned release logs instead of failing.
func (g *Game) lock(ctx context.Context, key string) (func(), error) {
	unlock, err := g.locker.Lock(ctx, key)
	if err != nil {
		g.logger.Error(fmt.Sprintf("locking %s: %s", key, err))
		return nil, err
	}
	return func() {
		if err := unlock(); err != nil {
			g.logger.Warning(fmt.Sprintf("unlocking %s: %s", key, err))
		}
	}, nil
}

// transition loads the session under its lock, applies f and saves the result. Nothing
// is saved when f fails.
func (g *Game) transition(ctx context.Context, playerID, sessionID uuid.UUID, f func(*game.Session) error) (*game.Session, error) {
	unlock, err := g.lock(ctx, fmt.Sprintf(sessionLockKeyFmt, sessionID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	s, err := g.Session(ctx, playerID, sessionID)
	if err != nil {
		return nil, err
	}

	if err := f(s); err != nil {
		return nil, err
	}

	if err := g.store.Save(ctx, s); err != nil {
		g.logger.Error(fmt.Sprintf("saving session %s: %s", sessionID, err))
		return nil, err
	}
	return s, nil
}

// recordStanding updates the leaderboard and the best level of the player. Failures are
// logged, not returned.
func (g *Game) recordStanding(ctx context.Context, result *game.Result) {
	if err := g.leaderboard.Record(ctx, result.Level.Number, result.PlayerID, result.Duration); err != nil {
		g.logger.Warning(fmt.Sprintf("recording leaderboard time of player %s: %s", result.PlayerID, err))
	}

	user, err := g.users.ByID(result.PlayerID)
	if err != nil {
		g.logger.Warning(fmt.Sprintf("loading player %s: %s", result.PlayerID, err))
		return
	}
	if user.RecordLevel(result.Level.Number) {
		if err := g.users.Save(user); err != nil {
			g.logger.Warning(fmt.Sprintf("saving best level of player %s: %s", result.PlayerID, err))
		}
	}
}
