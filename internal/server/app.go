// Package server wires the BailBridge components together: configuration,
// the identity directory, the credential hasher, the token codec, the
// session issuer and the HTTP API. It also handles graceful shutdown.
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

	"github.com/dmitrijs2005/bailbridge/internal/logging"
	"github.com/dmitrijs2005/bailbridge/internal/server/auth"
	"github.com/dmitrijs2005/bailbridge/internal/server/config"
	"github.com/dmitrijs2005/bailbridge/internal/server/httpapi"
	"github.com/dmitrijs2005/bailbridge/internal/server/metrics"
	"github.com/dmitrijs2005/bailbridge/internal/server/password"
	"github.com/dmitrijs2005/bailbridge/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bailbridge/internal/server/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewJSONLogger(logOut, c.LogLevel)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	if c.UseInMemoryStore {
		logger.Warn(ctx, "using in-memory identity store; identities are lost on restart")
		rm = repomanager.NewInMemoryRepositoryManager()
	} else {
		var err error
		db, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
		registry.MustRegister(collectors.NewDBStatsCollector(db, "bailbridge"))
	}

	fail := func(err error) (*App, error) {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	hasher, err := password.NewHasher(password.DefaultParams())
	if err != nil {
		return fail(fmt.Errorf("hasher init error: %w", err))
	}
	p := hasher.Params()
	logger.Info(ctx, "credential hasher ready",
		"memory_kib", p.MemoryKiB, "iterations", p.Iterations, "parallelism", p.Parallelism)

	codec, err := auth.NewCodec([]byte(c.SecretKey), c.TokenValidity)
	if err != nil {
		return fail(fmt.Errorf("token codec init error: %w", err))
	}

	m := metrics.New(registry)

	us, err := users.NewService(rm.Users(db), hasher, codec,
		users.WithLogger(logger),
		users.WithRecorder(m))
	if err != nil {
		return fail(fmt.Errorf("user service init error: %w", err))
	}

	srv, err := httpapi.NewHTTPServer(httpapi.Deps{
		Address:         c.HTTPAddr,
		Users:           us,
		Tokens:          codec,
		Metrics:         m,
		Logger:          logger,
		CORSOrigin:      c.CORSOrigin,
		ShutdownTimeout: c.ShutdownTimeout,
	})
	if err != nil {
		return fail(fmt.Errorf("http server init error: %w", err))
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

// Run blocks until ctx is cancelled, a termination signal arrives or the
// HTTP server fails.
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

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
}
