// Package server wires the greeter together: configuration, logging, the
// user store backend, the user service and the HTTP endpoint. It also owns
// process lifecycle and graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/greeter/internal/logging"
	"github.com/dmitrijs2005/greeter/internal/server/config"
	"github.com/dmitrijs2005/greeter/internal/server/httpserver"
	"github.com/dmitrijs2005/greeter/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/greeter/internal/server/services"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	userService *services.UserService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewJSONLogger(os.Stdout, level)

	rm, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	backend := "memory"
	if c.DatabaseDSN != "" {
		backend = "postgres"
	}
	logger.Info(ctx, "User store ready", "backend", backend)

	us := services.NewUserService(rm.Users())

	return &App{config: c, logger: logger, repomanager: rm, userService: us}, nil
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}

func (app *App) newHTTPServer() *httpserver.HTTPServer {
	return httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService,
		httpserver.WithReadHeaderTimeout(app.config.ReadHeaderTimeout),
		httpserver.WithShutdownTimeout(app.config.ShutdownTimeout),
	)
}

// Run blocks until a termination signal arrives or ctx is cancelled, then
// stops the HTTP server and releases the store.
func (app *App) Run(ctx context.Context) error {

	ctx, stop := app.initSignalHandler(ctx)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.newHTTPServer().Run(gctx)
	})

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if cerr := app.repomanager.Close(); cerr != nil {
		app.logger.Error(ctx, "store close error", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
