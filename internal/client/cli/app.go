package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/modelcatalog/internal/client/client"
	"github.com/dmitrijs2005/modelcatalog/internal/client/config"
	"github.com/dmitrijs2005/modelcatalog/internal/client/services"
	"github.com/dmitrijs2005/modelcatalog/internal/client/store"
	"github.com/dmitrijs2005/modelcatalog/internal/logging"
	"github.com/dmitrijs2005/modelcatalog/internal/shared"
	"github.com/prometheus/client_golang/prometheus"
)

// tokenLeeway tolerates small clock skew when checking token expiry locally.
const tokenLeeway = 30 * time.Second

type App struct {
	config   *config.Config
	service  services.CatalogService
	gatherer prometheus.Gatherer
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	refresh  bool
}

// NewApp builds the client stack described by c. When no token is configured
// the user is asked for one on the terminal.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	token := c.Token
	if token == "" {
		tok, err := GetToken(os.Stdout)
		if err != nil {
			return nil, fmt.Errorf("read token: %w", err)
		}
		token = string(tok)
		shared.WipeByteArray(tok)
	}

	reg := prometheus.NewRegistry()

	apiClient := client.NewHTTPClient(c.BaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithTokenSource(client.JWTTokenSource{Source: client.StaticToken(token), Leeway: tokenLeeway}),
		client.WithLogger(logger),
		client.WithRegisterer(reg),
	)

	s := store.New(apiClient,
		store.WithLogger(logger),
		store.WithQuerySizeLimit(c.QuerySizeLimit),
		store.WithRegisterer(reg),
	)

	return &App{
		config:   c,
		service:  services.NewCatalogService(s),
		gatherer: reg,
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	a.logger.Info(ctx, "catalog client started", "base_url", a.config.BaseURL)
	printlnFn("Model catalog CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) status() string {
	if a.refresh {
		return " (refresh)"
	}
	return ""
}

// ToggleRefresh switches refresh mode and returns the new state.
func (a *App) ToggleRefresh() bool {
	a.refresh = !a.refresh
	return a.refresh
}
