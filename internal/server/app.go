// Package server initializes and runs the catalog API server: it opens the
// catalog storage, optionally seeds it, issues a start-up token and serves the
// HTTP API until an interrupt arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/modelcatalog/internal/client/models"
	"github.com/dmitrijs2005/modelcatalog/internal/logging"
	"github.com/dmitrijs2005/modelcatalog/internal/server/auth"
	"github.com/dmitrijs2005/modelcatalog/internal/server/catalog"
	"github.com/dmitrijs2005/modelcatalog/internal/server/config"
	"github.com/dmitrijs2005/modelcatalog/internal/server/httpapi"
	"github.com/dmitrijs2005/modelcatalog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/modelcatalog/internal/shared"
)

// secretSize is the number of random bytes in a generated signing secret.
const secretSize = 32

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	catalog *catalog.Service
}

// NewApp prepares the server described by c without starting it: storage is
// opened and migrated, and the demo data is loaded into an empty catalog when
// seeding is on.
func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	if c.SecretKey == "" {
		key, err := shared.MakeRandHexString(secretSize)
		if err != nil {
			return nil, fmt.Errorf("secret generation error: %w", err)
		}
		c.SecretKey = key
		logger.Warn(context.Background(), "no secret key configured, generated a random one")
	}

	ctx := context.Background()

	repos, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	svc := catalog.NewService(repos.Catalog())
	if c.Seed {
		if err := seedIfEmpty(ctx, svc); err != nil {
			_ = repos.Close()
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	return &App{config: c, logger: logger, repos: repos, catalog: svc}, nil
}

// seedIfEmpty loads the demo data unless the catalog already holds models,
// so restarting against a database does not duplicate it.
func seedIfEmpty(ctx context.Context, svc *catalog.Service) error {
	existing, err := svc.ListResources(ctx, models.KindModel, nil, 1, true)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return catalog.Seed(ctx, svc)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// issueDevToken logs a token for the configured development user so the CLI
// can be pointed at a fresh server straight away.
func (app *App) issueDevToken(ctx context.Context) {
	if app.config.DevUser == "" {
		return
	}
	tok, err := auth.GenerateToken(app.config.DevUser, []byte(app.config.SecretKey), app.config.TokenValidity)
	if err != nil {
		app.logger.Error(ctx, "token generation failed", "error", err)
		return
	}
	app.logger.Info(ctx, "issued development token", "user", app.config.DevUser, "validity", app.config.TokenValidity.String(), "token", tok)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.Addr, app.logger, app.catalog, app.config.SecretKey,
		httpapi.WithShutdownTimeout(app.config.ShutdownTimeout))

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is canceled or the process receives SIGINT, SIGTERM
// or SIGQUIT.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...", "seeded", app.config.Seed)

	app.initSignalHandler(cancelFunc)
	app.issueDevToken(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
