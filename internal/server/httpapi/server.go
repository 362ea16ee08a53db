// Package httpapi is the HTTP boundary of BailBridge: it decodes requests,
// calls the session issuer, turns bearer tokens into claims and maps domain
// errors to status codes.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bailbridge/internal/logging"
	"github.com/dmitrijs2005/bailbridge/internal/server/auth"
	"github.com/dmitrijs2005/bailbridge/internal/server/metrics"
	"github.com/dmitrijs2005/bailbridge/internal/server/users"
)

// SessionIssuer registers identities and logs them in.
type SessionIssuer interface {
	Register(ctx context.Context, in users.RegisterInput) (*users.Session, error)
	Login(ctx context.Context, email, password string) (*users.Session, error)
}

// TokenParser turns a raw token into verified claims.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

const defaultShutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address         string
	users           SessionIssuer
	tokens          TokenParser
	metrics         *metrics.Metrics
	logger          logging.Logger
	corsOrigin      string
	shutdownTimeout time.Duration
}

// Deps holds what the HTTP server needs.
type Deps struct {
	Address         string
	Users           SessionIssuer
	Tokens          TokenParser
	Metrics         *metrics.Metrics
	Logger          logging.Logger
	CORSOrigin      string
	ShutdownTimeout time.Duration
}

func NewHTTPServer(d Deps) (*HTTPServer, error) {
	if d.Users == nil {
		return nil, errors.New("session issuer is required")
	}
	if d.Tokens == nil {
		return nil, errors.New("token parser is required")
	}
	if d.Metrics == nil {
		return nil, errors.New("metrics are required")
	}
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}
	if d.ShutdownTimeout <= 0 {
		d.ShutdownTimeout = defaultShutdownTimeout
	}

	return &HTTPServer{
		address:         d.Address,
		users:           d.Users,
		tokens:          d.Tokens,
		metrics:         d.Metrics,
		logger:          d.Logger.With("module", "http_server"),
		corsOrigin:      d.CORSOrigin,
		shutdownTimeout: d.ShutdownTimeout,
	}, nil
}

// Handler returns the fully wired router.
func (s *HTTPServer) Handler() http.Handler {
	return s.buildRouter()
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.buildRouter(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
