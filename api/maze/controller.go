package mazeapi

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gin-gonic/gin"
)

const defaultMaxDimension = 100

// Controller generates mazes on request.
type Controller struct {
	maxDimension int
	seeds        func() int64
}

// NewController creates a Controller that refuses grids larger than maxDimension on
// either side. A non-positive maxDimension selects the default of 100.
func NewController(maxDimension int) *Controller {
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}
	return &Controller{
		maxDimension: maxDimension,
		seeds:        rand.Int63,
	}
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/mazes", c.generate)
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {}

// generate handles GET /mazes.
func (c *Controller) generate(ctx *gin.Context) {
	var query MazeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if query.Rows > c.maxDimension || query.Columns > c.maxDimension {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("dimensions are limited to %d", c.maxDimension)})
		return
	}

	if (query.StartRow == nil) != (query.StartColumn == nil) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "startRow and startColumn must be given together"})
		return
	}

	seed := c.seeds()
	if query.Seed != nil {
		seed = *query.Seed
	}

	opts := []maze.Option{maze.WithSource(rand.New(rand.NewSource(seed)))}
	if query.StartRow != nil {
		opts = append(opts, maze.WithStart(*query.StartRow, *query.StartColumn))
	}

	m, err := maze.Generate(query.Rows, query.Columns, opts...)
	if err != nil {
		if errors.Is(err, maze.ErrInvalidStart) || errors.Is(err, maze.ErrInvalidDimension) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate maze"})
		return
	}

	switch query.Format {
	case FormatText:
		ctx.String(http.StatusOK, m.String())
	case FormatYAML:
		out, err := m.MarshalSnapshot(&seed)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not encode maze"})
			return
		}
		ctx.Data(http.StatusOK, "application/x-yaml; charset=utf-8", out)
	default:
		ctx.JSON(http.StatusOK, &MazeResponse{Seed: seed, Maze: m})
	}
}
