// Package httpapi serves the validation catalog REST API.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/modelcatalog/internal/logging"
	"github.com/dmitrijs2005/modelcatalog/internal/server/catalog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	address   string
	logger    logging.Logger
	svc       *catalog.Service
	jwtSecret []byte
	accessLog io.Writer
	registry  *prometheus.Registry
	stats     *Stats
	router    *mux.Router

	shutdownTimeout time.Duration
}

type Option func(*Server)

// WithAccessLog sets where the combined access log is written. Defaults to
// stdout.
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) { s.accessLog = w }
}

// WithRegistry exposes the request counters through reg.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests once
// its context is done.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

func NewServer(address string, l logging.Logger, svc *catalog.Service, secretKey string, opts ...Option) *Server {
	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		svc:       svc,
		jwtSecret: []byte(secretKey),
		accessLog: os.Stdout,

		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.stats = newStats(s.registry)
	s.router = s.routes()
	return s
}

// Stats returns the per-route request counters.
func (s *Server) Stats() *Stats {
	return s.stats
}

// Handler returns the full middleware chain: recovery, access log, routing.
func (s *Server) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))
	return recovery(handlers.LoggingHandler(s.accessLog, s.router))
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter().UseEncodedPath()
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.NewRoute().Subrouter()
	api.Use(s.stats.middleware, s.authenticate)

	for _, kind := range []string{"models", "tests"} {
		api.HandleFunc("/"+kind+"/", s.handleListResources).Methods(http.MethodGet)
		api.HandleFunc("/"+kind+"/", s.handleCreateResource).Methods(http.MethodPost)
		api.HandleFunc("/"+kind+"/query/instances/{instance_id}", s.handleFindInstance).Methods(http.MethodGet)
		api.HandleFunc("/"+kind+"/{id}", s.handleGetResource).Methods(http.MethodGet)
		api.HandleFunc("/"+kind+"/{id}", s.handleUpdateResource).Methods(http.MethodPut)
		api.HandleFunc("/"+kind+"/{id}/instances/", s.handleListInstances).Methods(http.MethodGet)
		api.HandleFunc("/"+kind+"/{id}/instances/", s.handleCreateInstance).Methods(http.MethodPost)
		api.HandleFunc("/"+kind+"/{id}/instances/{instance_id}", s.handleUpdateInstance).Methods(http.MethodPut)
	}

	api.HandleFunc("/results-summary/", s.handleSummaryResults).Methods(http.MethodGet)
	api.HandleFunc("/results-extended/", s.handleExtendedResults).Methods(http.MethodGet)
	api.HandleFunc("/results-extended/{id}", s.handleResult).Methods(http.MethodGet)

	api.HandleFunc("/comments/", s.handleListComments).Methods(http.MethodGet)
	api.HandleFunc("/comments/", s.handleCreateComment).Methods(http.MethodPost)
	api.HandleFunc("/comments/{id}", s.handleUpdateComment).Methods(http.MethodPut)
	api.HandleFunc("/comments/{id}", s.handleDeleteComment).Methods(http.MethodDelete)

	api.HandleFunc("/vocab/", s.handleVocabulary).Methods(http.MethodGet)
	api.HandleFunc("/projects", s.handleProjects).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
