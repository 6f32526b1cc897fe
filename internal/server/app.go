// Package server wires configuration, storage, the account flows and both
// transports into a runnable process with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/dmitrijs2005/gophauth/internal/server/validation"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
	hs "github.com/dmitrijs2005/gophauth/internal/server/http"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	registry *prometheus.Registry
	accounts *services.AccountService
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

// NewApp builds every collaborator from c. Log lines go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(w, c.LogLevel)

	validator, err := validation.NewCredentialValidator(c.EmailPattern, c.PasswordPattern)
	if err != nil {
		return nil, fmt.Errorf("credential patterns: %w", err)
	}

	authority, err := auth.NewAuthority(c.SecretKey, c.TokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token authority: %w", err)
	}

	hasher, err := cryptox.NewArgon2Hasher(cryptox.Argon2Params{
		Memory:      c.Argon2Memory,
		Iterations:  c.Argon2Iterations,
		Parallelism: c.Argon2Parallelism,
	})
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	flowMetrics, err := metrics.NewFlowMetrics(registry)
	if err != nil {
		return nil, err
	}

	app := &App{config: c, logger: logger, registry: registry}

	var repo accounts.Repository
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database configured, accounts are kept in memory")
		repo = accounts.NewMemoryRepository()
	} else {
		db, err := openDB(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db ping error: %w", err)
		}

		m := repomanager.NewPostgresRepositoryManager()
		if err := m.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations error: %w", err)
		}

		app.db = db
		repo = repomanager.NewAccountStore(db, m)
	}

	app.accounts = services.NewAccountService(repo, validator, hasher, authority, logger,
		services.WithObserver(flowMetrics))

	return app, nil
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
	m, err := metrics.NewHTTPMetrics(app.registry)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	opts := []hs.Option{hs.WithMetrics(m, app.registry)}
	if app.db != nil {
		opts = append(opts, hs.WithHealthCheck(app.db))
	}

	s := hs.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.accounts, opts...)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	m, err := metrics.NewGRPCMetrics(app.registry)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accounts, m)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves the configured transports until ctx is cancelled, a signal
// arrives or a server fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	gin.SetMode(gin.ReleaseMode)

	var wg sync.WaitGroup

	if app.config.EndpointAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHTTPServer(ctx, cancelFunc)
		}()
	}

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "closing database", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
}
