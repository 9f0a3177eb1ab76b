// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/auth"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/config"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	db, dialect, err := dbx.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewSQLRepositoryManager(dialect)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	logger.Info(ctx, "database ready", "dialect", string(dialect))

	tokens := auth.NewTokenService([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	hasher := auth.NewPasswordHasher(c.BcryptCost)

	us := services.NewUserService(db, rm, hasher, tokens, logger)
	is := services.NewItemService(db, rm, logger)

	gin.SetMode(gin.ReleaseMode)
	srv, err := httpapi.NewServer(httpapi.Options{
		Address:               c.EndpointAddrHTTP,
		AllowedOrigins:        c.AllowedOrigins,
		AdminUsersRequireAuth: c.AdminUsersRequireAuth,
	}, logger, us, is, tokens)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("http server init error: %w", err)
	}

	return &App{config: c, logger: logger, db: db, server: srv}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves the API until ctx is cancelled or a shutdown signal arrives,
// then closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}
