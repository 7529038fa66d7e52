package gameapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GameController manages game sessions of the signed in player.
type GameController struct {
	gameService i.GameService
}

// NewGameController initializes a GameController.
func NewGameController(gs i.GameService) (*GameController, error) {
	if gs == nil {
		return nil, errors.New("game controller needs a game service")
	}
	return &GameController{
		gameService: gs,
	}, nil
}

// RegisterPublic registers public routes.
func (gc *GameController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard/:level", gc.leaderboard)
}

// RegisterProtected registers protected routes.
func (gc *GameController) RegisterProtected(route *gin.RouterGroup) {
	games := route.Group("/games")
	{
		games.POST("", gc.newGame)
		games.GET("/history", gc.history)
		games.GET("/current", gc.current)
		games.GET("/:id", gc.session)
		games.GET("/:id/layout", gc.layout)
		games.POST("/:id/complete", gc.complete)
		games.POST("/:id/next", gc.next)
		games.POST("/:id/restart", gc.restart)
	}
}

func (gc *GameController) newGame(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	s, err := gc.gameService.NewGame(ctx, playerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	m, err := s.Maze()
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newSessionResponse(s, m))
}

func (gc *GameController) current(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	s, m, err := gc.gameService.Current(ctx, playerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newSessionResponse(s, m))
}

func (gc *GameController) session(ctx *gin.Context) {
	playerID, sessionID, ok := ids(ctx)
	if !ok {
		return
	}

	s, m, err := gc.gameService.Maze(ctx, playerID, sessionID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newSessionResponse(s, m))
}

func (gc *GameController) layout(ctx *gin.Context) {
	playerID, sessionID, ok := ids(ctx)
	if !ok {
		return
	}

	var query LayoutQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	layout, err := gc.gameService.Layout(ctx, playerID, sessionID, query.Width, query.Height)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, layout)
}

func (gc *GameController) complete(ctx *gin.Context) {
	playerID, sessionID, ok := ids(ctx)
	if !ok {
		return
	}

	var request CompleteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, result, err := gc.gameService.Complete(ctx, playerID, sessionID, request.Path)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &CompleteResponse{
		Session: newSessionResponse(s, nil),
		Result:  result,
	})
}

func (gc *GameController) next(ctx *gin.Context) {
	gc.transition(ctx, gc.gameService.Next)
}

func (gc *GameController) restart(ctx *gin.Context) {
	gc.transition(ctx, gc.gameService.Restart)
}

// transition runs a session transition and responds with the new maze.
func (gc *GameController) transition(ctx *gin.Context, f func(context.Context, uuid.UUID, uuid.UUID) (*game.Session, error)) {
	playerID, sessionID, ok := ids(ctx)
	if !ok {
		return
	}

	s, err := f(ctx, playerID, sessionID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	m, err := s.Maze()
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newSessionResponse(s, m))
}

func (gc *GameController) history(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var query LimitQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := gc.gameService.History(ctx, playerID, query.Limit)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	if results == nil {
		results = []*game.Result{}
	}
	ctx.JSON(http.StatusOK, results)
}

func (gc *GameController) leaderboard(ctx *gin.Context) {
	level, err := strconv.Atoi(ctx.Param("level"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "level must be a number"})
		return
	}

	var query LimitQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	standings, total, err := gc.gameService.Leaderboard(ctx, level, query.Limit)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	if standings == nil {
		standings = []game.Standing{}
	}
	ctx.JSON(http.StatusOK, &LeaderboardResponse{Level: level, Total: total, Standings: standings})
}

// ids reads the player from the token and the session from the path. It responds on
// failure.
func ids(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, uuid.Nil, false
	}
	return playerID, sessionID, true
}

// abortWithError maps domain errors to status codes.
func abortWithError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrNotPlaying), errors.Is(err, game.ErrLevelNotComplete),
		errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrFinalLevel):
		status = http.StatusConflict
	case errors.Is(err, game.ErrWrongStart), errors.Is(err, game.ErrWrongGoal),
		errors.Is(err, game.ErrInvalidLevel), errors.Is(err, game.ErrInvalidSurface),
		errors.Is(err, maze.ErrEmptyPath), errors.Is(err, maze.ErrInvalidMove),
		errors.Is(err, maze.ErrOutOfBounds):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		ctx.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
