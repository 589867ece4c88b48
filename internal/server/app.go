// Package server initializes and runs the auth service: it wires the
// configuration, database, user-directory client and crypto services
// together and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/julinuzzo19/ecommerce-auth-service/internal/logging"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/auth"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/config"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/directory"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/httpapi"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/password"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/repositories/repomanager"
	"github.com/julinuzzo19/ecommerce-auth-service/internal/server/token"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	dir := directory.NewClient(c.DirectoryBaseURL, c.DirectorySecret, c.DirectoryTimeout)
	hasher := password.NewScrypt(c.MaxHashConcurrency)
	tokens := token.NewService([]byte(c.JWTSecret), c.TokenLifetime)

	authService := auth.NewService(db, repos, dir, hasher, tokens, logger, c.StoreTimeout)
	httpServer := httpapi.NewServer(c.HTTPAddr, authService, logger, c.TokenLifetime)

	return &App{config: c, logger: logger, db: db, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing db", "error", err)
	}
}
