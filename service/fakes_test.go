package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/google/uuid"
)

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]identity.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[uuid.UUID]identity.User)}
}

func (m *memUsers) Save(user *identity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.Username == user.Username && id != user.ID {
			return identity.ErrUsernameConflict
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memUsers) ByID(id uuid.UUID) (*identity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) ByUsername(username string) (*identity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]game.Session
	current  map[uuid.UUID]uuid.UUID
	saves    int
}

func newMemSessions() *memSessions {
	return &memSessions{
		sessions: make(map[uuid.UUID]game.Session),
		current:  make(map[uuid.UUID]uuid.UUID),
	}
}

func (m *memSessions) Save(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	m.current[s.PlayerID] = s.ID
	m.saves++
	return nil
}

func (m *memSessions) ByID(_ context.Context, id uuid.UUID) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, game.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memSessions) ByPlayer(ctx context.Context, playerID uuid.UUID) (*game.Session, error) {
	m.mu.Lock()
	id, ok := m.current[playerID]
	m.mu.Unlock()
	if !ok {
		return nil, game.ErrSessionNotFound
	}
	return m.ByID(ctx, id)
}

func (m *memSessions) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok && m.current[s.PlayerID] == id {
		delete(m.current, s.PlayerID)
	}
	delete(m.sessions, id)
	return nil
}

type memResults struct {
	mu      sync.Mutex
	results []*game.Result
	fail    error
}

func (m *memResults) Save(_ context.Context, r *game.Result) error {
	if m.fail != nil {
		return m.fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

func (m *memResults) ByPlayer(_ context.Context, playerID uuid.UUID, limit int64) ([]*game.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*game.Result
	for j := len(m.results) - 1; j >= 0 && int64(len(out)) < limit; j-- {
		if m.results[j].PlayerID == playerID {
			out = append(out, m.results[j])
		}
	}
	return out, nil
}

type memLeaderboard struct {
	mu     sync.Mutex
	levels map[int]map[uuid.UUID]time.Duration
}

func newMemLeaderboard() *memLeaderboard {
	return &memLeaderboard{levels: make(map[int]map[uuid.UUID]time.Duration)}
}

func (m *memLeaderboard) Record(_ context.Context, level int, playerID uuid.UUID, d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.levels[level] == nil {
		m.levels[level] = make(map[uuid.UUID]time.Duration)
	}
	if best, ok := m.levels[level][playerID]; !ok || d < best {
		m.levels[level][playerID] = d
	}
	return nil
}

func (m *memLeaderboard) Top(_ context.Context, level int, limit int64) ([]game.Standing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []game.Standing
	for id, d := range m.levels[level] {
		out = append(out, game.Standing{PlayerID: id, Duration: d})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Duration < out[b].Duration })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memLeaderboard) Count(_ context.Context, level int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.levels[level])), nil
}

type memLocker struct {
	mu   sync.Mutex
	held map[string]bool
	keys []string
	fail error
}

func newMemLocker() *memLocker {
	return &memLocker{held: make(map[string]bool)}
}

func (m *memLocker) Lock(_ context.Context, key string) (func() error, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held[key] {
		return nil, errors.New("lock already held")
	}
	m.held[key] = true
	m.keys = append(m.keys, key)
	return func() error {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.held, key)
		return nil
	}, nil
}

func (m *memLocker) isHeld() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.held) > 0
}

type memLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *memLogger) Info(msg string)    { l.log("INFO " + msg) }
func (l *memLogger) Warning(msg string) { l.log("WARNING " + msg) }
func (l *memLogger) Error(msg string)   { l.log("ERROR " + msg) }

func (l *memLogger) log(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}
