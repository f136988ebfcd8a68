// Package server wires the spellcheckd components together: storage,
// services, the HTTP and gRPC shells, and their shared lifecycle.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/spellcheckd/internal/logging"
	"github.com/dmitrijs2005/spellcheckd/internal/server/config"
	gs "github.com/dmitrijs2005/spellcheckd/internal/server/grpc"
	"github.com/dmitrijs2005/spellcheckd/internal/server/httpapi"
	"github.com/dmitrijs2005/spellcheckd/internal/server/metrics"
	"github.com/dmitrijs2005/spellcheckd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/spellcheckd/internal/server/services"
	"github.com/dmitrijs2005/spellcheckd/internal/server/spellcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	repomanager  repomanager.RepositoryManager
	registry     *prometheus.Registry
	userService  *services.UserService
	queryService *services.QueryService
	auditService *services.AuditService
}

// NewApp opens storage, seeds the administrator and builds the services.
// Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, w)

	rm, err := repomanager.New(ctx, c.StorageDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	checker, err := newChecker(c)
	if err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("spell checker init error: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mt := metrics.New(registry)

	us, err := services.NewUserService(rm, c, mt, logger)
	if err != nil {
		_ = rm.Close()
		return nil, err
	}
	if err := us.SeedAdmin(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("admin seed error: %w", err)
	}

	return &App{
		config:       c,
		logger:       logger,
		repomanager:  rm,
		registry:     registry,
		userService:  us,
		queryService: services.NewQueryService(us, rm.Queries(), checker, mt, logger),
		auditService: services.NewAuditService(us, rm.Logins(), logger),
	}, nil
}

// newChecker runs the external engine when a checker path is set, and
// falls back to the in-process wordlist checker otherwise.
func newChecker(c *config.Config) (spellcheck.Checker, error) {
	if c.CheckerPath != "" {
		return spellcheck.NewExecChecker(c.CheckerPath, c.WordlistPath, c.CheckTimeout), nil
	}
	f, err := os.Open(c.WordlistPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return spellcheck.LoadWordlist(f)
}

// Run serves HTTP and gRPC until ctx is cancelled, a termination signal
// arrives, or either server fails.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer func() {
		if err := app.repomanager.Close(); err != nil {
			app.logger.Error(context.Background(), "error closing storage", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageDriver)

	httpSrv := httpapi.NewServer(app.config.EndpointAddrHTTP, httpapi.Options{
		CSRFEnabled:        app.config.CSRFEnabled,
		LoginRatePerMinute: app.config.LoginRatePerMinute,
		Gatherer:           app.registry,
	}, app.userService, app.queryService, app.auditService, app.logger)

	grpcSrv := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.queryService, app.auditService)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpSrv.Run(ctx) })
	g.Go(func() error { return grpcSrv.Run(ctx) })

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, "server error", "error", err)
		return err
	}
	app.logger.Info(ctx, "App stopped")
	return nil
}
