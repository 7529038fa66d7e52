package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	gameapi "github.com/beka-birhanu/vinom-maze/api/game"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastructure/lock"
	logger "github.com/beka-birhanu/vinom-maze/infrastructure/log"
	"github.com/beka-birhanu/vinom-maze/infrastructure/repo"
	"github.com/beka-birhanu/vinom-maze/infrastructure/sortedstorage"
	"github.com/beka-birhanu/vinom-maze/infrastructure/store"
	"github.com/beka-birhanu/vinom-maze/infrastructure/token"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	startupTimeout  = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// app holds the dependencies wired by serve.
type app struct {
	cfg         *config.Config
	logger      i.Logger
	mongoClient *mongo.Client
	redisClient *redis.Client
	userRepo    *repo.UserRepo
	resultRepo  *repo.ResultRepo
	tokenizer   i.Tokenizer
	authService i.Authenticator
	gameService i.GameService
	router      *api.Router
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the game HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	appLogger, err := logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		return err
	}
	a := &app{cfg: cfg, logger: appLogger}

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	if err := a.initMongo(startCtx); err != nil {
		return err
	}
	defer func() {
		_ = a.mongoClient.Disconnect(context.Background())
	}()

	if err := a.initRedis(startCtx); err != nil {
		return err
	}
	defer a.redisClient.Close()

	if err := a.initRepos(startCtx); err != nil {
		return err
	}
	a.initJWTTokenizer()
	if err := a.initAuthService(); err != nil {
		return err
	}
	if err := a.initGameService(); err != nil {
		return err
	}
	if err := a.initRouter(); err != nil {
		return err
	}

	return a.run(ctx)
}

func (a *app) initMongo(ctx context.Context) error {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", a.cfg.DBUser, a.cfg.DBPassword, a.cfg.DBHost, a.cfg.DBPort)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		a.logger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		return err
	}
	if err = client.Ping(ctx, nil); err != nil {
		a.logger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		return err
	}

	a.mongoClient = client
	a.logger.Info("Connected to MongoDB")
	return nil
}

func (a *app) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		a.logger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		return err
	}

	a.redisClient = client
	a.logger.Info("Connected to Redis")
	return nil
}

func (a *app) initRepos(ctx context.Context) error {
	a.userRepo = repo.NewUserRepo(a.mongoClient, a.cfg.DBName, "users")
	if err := a.userRepo.EnsureIndexes(ctx); err != nil {
		a.logger.Error(fmt.Sprintf("Creating user indexes: %v", err))
		return err
	}

	a.resultRepo = repo.NewResultRepo(a.mongoClient, a.cfg.DBName, "results")
	if err := a.resultRepo.EnsureIndexes(ctx); err != nil {
		a.logger.Error(fmt.Sprintf("Creating result indexes: %v", err))
		return err
	}

	a.logger.Info("Repositories initialized")
	return nil
}

func (a *app) initJWTTokenizer() {
	a.tokenizer = token.NewJwtService(a.cfg.JWTSecret, a.cfg.JWTIssuer)
	a.logger.Info("JWT Tokenizer initialized")
}

func (a *app) initAuthService() error {
	authService, err := service.NewAuthService(a.userRepo, a.tokenizer)
	if err != nil {
		a.logger.Error(fmt.Sprintf("Creating auth service: %v", err))
		return err
	}

	a.authService = authService
	a.logger.Info("Auth service initialized")
	return nil
}

func (a *app) initGameService() error {
	gameLogger, err := logger.New("GAME", config.ColorCyan, os.Stdout)
	if err != nil {
		return err
	}

	sessions, err := store.NewRedisSessionStore(a.redisClient, a.cfg.SessionTTLSeconds)
	if err != nil {
		a.logger.Error(fmt.Sprintf("Creating session store: %v", err))
		return err
	}
	leaderboard, err := sortedstorage.NewRedisLeaderboard(a.redisClient, "")
	if err != nil {
		a.logger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		return err
	}
	locker, err := lock.NewRedisLocker(a.redisClient, nil)
	if err != nil {
		a.logger.Error(fmt.Sprintf("Creating session locker: %v", err))
		return err
	}

	gameService, err := service.NewGameService(&service.Config{
		Store:       sessions,
		Results:     a.resultRepo,
		Leaderboard: leaderboard,
		Locker:      locker,
		Users:       a.userRepo,
		Logger:      gameLogger,
	})
	if err != nil {
		a.logger.Error(fmt.Sprintf("Creating game service: %v", err))
		return err
	}

	a.gameService = gameService
	a.logger.Info("Game service initialized")
	return nil
}

func (a *app) initRouter() error {
	gameController, err := gameapi.NewGameController(a.gameService)
	if err != nil {
		a.logger.Error(fmt.Sprintf("Creating game controller: %v", err))
		return err
	}

	gin.SetMode(a.cfg.GinMode)
	a.router = api.NewRouter(api.Config{
		Addr:    fmt.Sprintf("%s:%v", a.cfg.HostIP, a.cfg.RESTPort),
		BaseURL: "/api",
		Controllers: []api_i.Controller{
			identity.NewIdentityServer(a.authService),
			mazeapi.NewController(a.cfg.MaxMazeDimension),
			gameController,
		},
		AuthorizationMiddleware: identity.Authorize(a.tokenizer),
	})
	a.logger.Info("Router initialized")
	return nil
}

// run serves until ctx is done, then drains in-flight requests.
func (a *app) run(ctx context.Context) error {
	gin.ForceConsoleColor()
	server := a.router.Server()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(fmt.Sprintf("Listening on %s", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(fmt.Sprintf("Starting server: %v", err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warning(fmt.Sprintf("Shutting down server: %v", err))
		return err
	}
	return nil
}
