package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/eaglebank/user-directory/internal/command"
	"github.com/eaglebank/user-directory/internal/config"
	"github.com/eaglebank/user-directory/internal/database"
	"github.com/eaglebank/user-directory/internal/events"
	"github.com/eaglebank/user-directory/internal/handler"
	"github.com/eaglebank/user-directory/internal/logger"
	"github.com/eaglebank/user-directory/internal/query"
	redisClient "github.com/eaglebank/user-directory/internal/redis"
	"github.com/eaglebank/user-directory/internal/repository"
	"github.com/eaglebank/user-directory/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	// best-effort: flags read their env vars at parse time
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "users",
		Usage:  "User directory HTTP service",
		Flags:  config.Flags(),
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server",
				Flags:  config.Flags(),
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Apply database migrations and exit",
				Flags:  config.Flags(),
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "users: %v\n", err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) (config.Config, *zap.SugaredLogger, func(), error) {
	cfg, err := config.FromContext(c)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	lg, err := logger.Init(cfg.Logger())
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, lg.Sugar(), func() { _ = lg.Sync() }, nil
}

func serve(c *cli.Context) error {
	cfg, log, sync, err := setup(c)
	if err != nil {
		return err
	}
	defer sync()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, closePublisher, err := openPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	userHandler := handler.NewUserHandler(
		command.NewUserCommandService(store, publisher, log),
		query.NewUserQueryService(store),
	)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router.New(log, userHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("user service starting", "port", cfg.Port, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("graceful shutdown failed", "error", err)
	}
	log.Info("goodbye")
	return nil
}

func migrate(c *cli.Context) error {
	cfg, log, sync, err := setup(c)
	if err != nil {
		return err
	}
	defer sync()

	if cfg.StoreBackend != config.BackendPostgres {
		return fmt.Errorf("migrate requires the postgres store, got %q", cfg.StoreBackend)
	}

	db, err := database.Connect(c.Context, dbConfig(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(c.Context, db.DB); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func openStore(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (repository.UserStore, func(), error) {
	if cfg.StoreBackend == config.BackendMemory {
		log.Warn("using in-memory store, data is lost on exit")
		return repository.NewMemoryUserStore(), func() {}, nil
	}

	db, err := database.Connect(ctx, dbConfig(cfg))
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db.DB); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	return repository.NewPostgresUserStore(db), func() { db.Close() }, nil
}

func openPublisher(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (events.Publisher, func(), error) {
	if !cfg.EventsEnabled() {
		log.Info("REDIS_ADDR not set, user events disabled")
		return events.NopPublisher{}, func() {}, nil
	}

	rdb, err := redisClient.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	pub, err := events.NewRedisPublisher(rdb.Client, cfg.EventNodeID)
	if err != nil {
		rdb.Close()
		return nil, nil, err
	}
	return pub, func() { rdb.Close() }, nil
}

func dbConfig(cfg config.Config) database.Config {
	return database.Config{
		DSN:      cfg.DatabaseURL,
		Driver:   cfg.DBDriver,
		MaxConns: cfg.DBMaxConns,
		Timeout:  cfg.DBTimeout,
	}
}
