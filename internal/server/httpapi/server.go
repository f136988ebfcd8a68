// Package httpapi is the browser-facing HTTP shell. It reproduces the
// original form-based routes on top of echo and hands sanitized input to
// the services.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/spellcheckd/internal/logging"
	"github.com/dmitrijs2005/spellcheckd/internal/server/models"
	"github.com/dmitrijs2005/spellcheckd/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type UserService interface {
	Register(ctx context.Context, currentToken, userName, password, secondFactor string) (*models.User, error)
	Login(ctx context.Context, currentToken, userName, password, secondFactor string) (*services.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

type QueryService interface {
	Submit(ctx context.Context, token, text string) (*models.QueryRecord, error)
	History(ctx context.Context, token, target string) (string, []models.QueryRecord, error)
	Query(ctx context.Context, token string, id int64) (*models.QueryRecord, error)
}

type AuditService interface {
	LoginHistory(ctx context.Context, token, target string) (string, []models.LoginRecord, error)
}

// Options tunes the middleware stack.
type Options struct {
	CSRFEnabled        bool
	LoginRatePerMinute int
	Gatherer           prometheus.Gatherer
}

type Server struct {
	address   string
	echo      *echo.Echo
	users     UserService
	queries   QueryService
	audit     AuditService
	sanitizer *bluemonday.Policy
	logger    logging.Logger
}

func NewServer(address string, opts Options, us UserService, qs QueryService, as AuditService, l logging.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		address:   address,
		echo:      e,
		users:     us,
		queries:   qs,
		audit:     as,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    l.With("module", "http_server"),
	}

	e.Use(s.requestLogger())
	e.Use(middleware.Recover())
	e.Use(secureHeaders())
	if opts.CSRFEnabled {
		e.Use(csrf())
	}

	limit := rateLimiter(opts.LoginRatePerMinute)

	e.GET("/", s.home)
	e.POST("/register", s.register, limit...)
	e.POST("/login", s.login, limit...)
	e.GET("/logout", s.logout)
	e.POST("/logout", s.logout)
	e.POST("/spell_check", s.spellCheck)
	e.GET("/history", s.history)
	e.POST("/history", s.history)
	e.GET("/history/query/:id", s.query)
	e.GET("/login_history", s.loginHistory)
	e.POST("/login_history", s.loginHistory)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	g := opts.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))

	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}
