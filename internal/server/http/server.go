// Package http exposes the account flows over JSON/HTTP using gin.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address  string
	accounts AccountFlows
	logger   logging.Logger
	metrics  *metrics.HTTPMetrics
	gatherer prometheus.Gatherer
	db       Pinger
	now      func() time.Time
}

// Option customizes an HTTPServer.
type Option func(*HTTPServer)

// WithMetrics instruments routes and serves gatherer on GET /metrics.
func WithMetrics(m *metrics.HTTPMetrics, gatherer prometheus.Gatherer) Option {
	return func(s *HTTPServer) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// WithHealthCheck makes GET /healthz ping db.
func WithHealthCheck(db Pinger) Option {
	return func(s *HTTPServer) { s.db = db }
}

func NewHTTPServer(address string, l logging.Logger, accounts AccountFlows, opts ...Option) *HTTPServer {
	s := &HTTPServer{
		address:  address,
		accounts: accounts,
		logger:   l.With("module", "http_server"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the gin engine with all routes registered.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.accessLog())
	r.Use(s.metrics.Handler())

	r.POST("/sign-up", s.signUp)
	r.POST("/login", s.login)
	r.GET("/healthz", s.healthz)
	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
