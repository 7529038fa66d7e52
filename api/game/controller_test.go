package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGameService struct {
	session   *game.Session
	result    *game.Result
	standings []game.Standing
	total     int64
	err       error

	gotPlayer  uuid.UUID
	gotSession uuid.UUID
	gotPath    []maze.CellPosition
	gotLimit   int64
	gotSurface [2]float64
}

func (s *stubGameService) NewGame(_ context.Context, playerID uuid.UUID) (*game.Session, error) {
	s.gotPlayer = playerID
	return s.session, s.err
}

func (s *stubGameService) Current(_ context.Context, playerID uuid.UUID) (*game.Session, *maze.Maze, error) {
	s.gotPlayer = playerID
	if s.err != nil {
		return nil, nil, s.err
	}
	m, err := s.session.Maze()
	return s.session, m, err
}

func (s *stubGameService) Session(_ context.Context, playerID, sessionID uuid.UUID) (*game.Session, error) {
	s.gotPlayer, s.gotSession = playerID, sessionID
	return s.session, s.err
}

func (s *stubGameService) Maze(ctx context.Context, playerID, sessionID uuid.UUID) (*game.Session, *maze.Maze, error) {
	if _, err := s.Session(ctx, playerID, sessionID); err != nil {
		return nil, nil, err
	}
	m, err := s.session.Maze()
	return s.session, m, err
}

func (s *stubGameService) Layout(ctx context.Context, playerID, sessionID uuid.UUID, width, height float64) (*game.Layout, error) {
	s.gotSurface = [2]float64{width, height}
	_, m, err := s.Maze(ctx, playerID, sessionID)
	if err != nil {
		return nil, err
	}
	return game.NewLayout(m, width, height)
}

func (s *stubGameService) Complete(_ context.Context, playerID, sessionID uuid.UUID, path []maze.CellPosition) (*game.Session, *game.Result, error) {
	s.gotPlayer, s.gotSession, s.gotPath = playerID, sessionID, path
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.session, s.result, nil
}

func (s *stubGameService) Next(ctx context.Context, playerID, sessionID uuid.UUID) (*game.Session, error) {
	return s.Session(ctx, playerID, sessionID)
}

func (s *stubGameService) Restart(ctx context.Context, playerID, sessionID uuid.UUID) (*game.Session, error) {
	return s.Session(ctx, playerID, sessionID)
}

func (s *stubGameService) History(_ context.Context, playerID uuid.UUID, limit int64) ([]*game.Result, error) {
	s.gotPlayer, s.gotLimit = playerID, limit
	if s.result == nil {
		return nil, s.err
	}
	return []*game.Result{s.result}, s.err
}

func (s *stubGameService) Leaderboard(_ context.Context, level int, limit int64) ([]game.Standing, int64, error) {
	s.gotLimit = limit
	if level > 5 {
		return nil, 0, game.ErrInvalidLevel
	}
	return s.standings, s.total, s.err
}

func newEngine(t *testing.T, svc *stubGameService, playerID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	controller, err := NewGameController(svc)
	require.NoError(t, err)

	engine := gin.New()
	controller.RegisterPublic(engine.Group("/api/v1"))
	protected := engine.Group("/api/v1")
	protected.Use(func(c *gin.Context) {
		c.Set(identity.ContextUserClaims, map[string]any{"userID": playerID.String()})
	})
	controller.RegisterProtected(protected)
	return engine
}

func do(engine *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGameController(t *testing.T) {
	playerID := uuid.New()
	started := time.Date(2025, 2, 8, 12, 0, 0, 0, time.UTC)

	newSession := func() *game.Session {
		return game.NewSession(uuid.New(), playerID, game.Level{Number: 1, Rows: 2, Columns: 4}, 3, started)
	}

	t.Run("Nil service", func(t *testing.T) {
		_, err := NewGameController(nil)
		assert.Error(t, err)
	})

	t.Run("New game includes the maze", func(t *testing.T) {
		svc := &stubGameService{session: newSession()}
		rec := do(newEngine(t, svc, playerID), http.MethodPost, "/api/v1/games", nil)
		require.Equal(t, http.StatusCreated, rec.Code)

		var response SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		want, err := maze.Generate(2, 4, maze.WithSource(rand.New(rand.NewSource(3))))
		require.NoError(t, err)

		assert.Equal(t, svc.session.ID, response.ID)
		assert.Equal(t, game.Playing, response.State)
		assert.Equal(t, want, response.Maze)
		assert.Equal(t, playerID, svc.gotPlayer)
	})

	t.Run("Get session", func(t *testing.T) {
		svc := &stubGameService{session: newSession()}
		rec := do(newEngine(t, svc, playerID), http.MethodGet, "/api/v1/games/"+svc.session.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, svc.session.ID, svc.gotSession)
	})

	t.Run("Current session", func(t *testing.T) {
		svc := &stubGameService{session: newSession()}
		engine := newEngine(t, svc, playerID)

		rec := do(engine, http.MethodGet, "/api/v1/games/current", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var response SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, svc.session.ID, response.ID)
		assert.NotNil(t, response.Maze)
		assert.Equal(t, playerID, svc.gotPlayer)

		svc.err = game.ErrSessionNotFound
		assert.Equal(t, http.StatusNotFound, do(engine, http.MethodGet, "/api/v1/games/current", nil).Code)
	})

	t.Run("Invalid session id", func(t *testing.T) {
		svc := &stubGameService{session: newSession()}
		rec := do(newEngine(t, svc, playerID), http.MethodGet, "/api/v1/games/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Complete forwards the path", func(t *testing.T) {
		s := newSession()
		s.State = game.LevelComplete
		svc := &stubGameService{session: s, result: &game.Result{ID: uuid.New(), Moves: 4}}
		path := []maze.CellPosition{{Row: 0, Column: 0}, {Row: 0, Column: 1}}

		rec := do(newEngine(t, svc, playerID), http.MethodPost, "/api/v1/games/"+s.ID.String()+"/complete", gin.H{"path": path})
		require.Equal(t, http.StatusOK, rec.Code)

		var response CompleteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, path, svc.gotPath)
		assert.Equal(t, game.LevelComplete, response.Session.State)
		assert.Nil(t, response.Session.Maze)
		assert.Equal(t, 4, response.Result.Moves)
	})

	t.Run("Complete without a path", func(t *testing.T) {
		svc := &stubGameService{session: newSession()}
		rec := do(newEngine(t, svc, playerID), http.MethodPost, "/api/v1/games/"+svc.session.ID.String()+"/complete", gin.H{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Next and restart", func(t *testing.T) {
		for _, action := range []string{"next", "restart"} {
			svc := &stubGameService{session: newSession()}
			rec := do(newEngine(t, svc, playerID), http.MethodPost, "/api/v1/games/"+svc.session.ID.String()+"/"+action, nil)
			require.Equal(t, http.StatusOK, rec.Code, action)

			var response SessionResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.NotNil(t, response.Maze, action)
		}
	})

	t.Run("Layout", func(t *testing.T) {
		svc := &stubGameService{session: newSession()}
		engine := newEngine(t, svc, playerID)
		target := "/api/v1/games/" + svc.session.ID.String() + "/layout"

		rec := do(engine, http.MethodGet, target+"?width=400&height=200", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var layout game.Layout
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &layout))
		assert.Equal(t, 100.0, layout.UnitWidth)
		assert.Equal(t, [2]float64{400, 200}, svc.gotSurface)

		rec = do(engine, http.MethodGet, target+"?width=400", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("History", func(t *testing.T) {
		svc := &stubGameService{result: &game.Result{ID: uuid.New()}}
		engine := newEngine(t, svc, playerID)

		rec := do(engine, http.MethodGet, "/api/v1/games/history?limit=5", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(5), svc.gotLimit)

		var results []*game.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		assert.Len(t, results, 1)

		rec = do(engine, http.MethodGet, "/api/v1/games/history?limit=1000", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Empty history is a list", func(t *testing.T) {
		rec := do(newEngine(t, &stubGameService{}, playerID), http.MethodGet, "/api/v1/games/history", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("Leaderboard", func(t *testing.T) {
		other := uuid.New()
		svc := &stubGameService{standings: []game.Standing{{PlayerID: other, Duration: time.Second}}, total: 7}
		engine := newEngine(t, svc, playerID)

		rec := do(engine, http.MethodGet, "/api/v1/leaderboard/2", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var response LeaderboardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, LeaderboardResponse{Level: 2, Total: 7, Standings: svc.standings}, response)

		assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodGet, "/api/v1/leaderboard/two", nil).Code)
		assert.Equal(t, http.StatusBadRequest, do(engine, http.MethodGet, "/api/v1/leaderboard/9", nil).Code)
	})

	t.Run("Error statuses", func(t *testing.T) {
		cases := map[error]int{
			game.ErrSessionNotFound:  http.StatusNotFound,
			game.ErrLevelNotComplete: http.StatusConflict,
			game.ErrGameOver:         http.StatusConflict,
			game.ErrWrongGoal:        http.StatusBadRequest,
			maze.ErrInvalidMove:      http.StatusBadRequest,
			errors.New("redis down"): http.StatusInternalServerError,
		}
		for err, want := range cases {
			svc := &stubGameService{session: newSession(), err: err}
			rec := do(newEngine(t, svc, playerID), http.MethodPost, "/api/v1/games/"+svc.session.ID.String()+"/next", nil)
			assert.Equal(t, want, rec.Code, err.Error())
		}
	})
}
