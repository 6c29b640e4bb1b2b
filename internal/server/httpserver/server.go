// Package httpserver exposes the account and translation services as a JSON
// HTTP API.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/speechauth/internal/logging"
	"github.com/dmitrijs2005/speechauth/internal/observability"
	"github.com/dmitrijs2005/speechauth/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address               string
	accounts              *services.AccountService
	translations          *services.TranslationService
	metrics               *observability.Metrics
	logger                logging.Logger
	translateRequiresAuth bool
}

func NewHTTPServer(a string, l logging.Logger, as *services.AccountService, ts *services.TranslationService, m *observability.Metrics, translateRequiresAuth bool) *HTTPServer {
	return &HTTPServer{
		address:               a,
		logger:                l.With("module", "http_server"),
		accounts:              as,
		translations:          ts,
		metrics:               m,
		translateRequiresAuth: translateRequiresAuth,
	}
}

// Handler returns the routed handler wrapped in request-id, access-log and
// panic-recovery middleware.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	s.route(mux, "POST /auth/register", http.HandlerFunc(s.handleRegister))
	s.route(mux, "POST /auth/login", http.HandlerFunc(s.handleLogin))
	s.route(mux, "POST /auth/verify", s.RequireAuth(http.HandlerFunc(s.handleVerify)))
	s.route(mux, "GET /auth/users", http.HandlerFunc(s.handleListUsers))

	var translate http.Handler = http.HandlerFunc(s.handleTranslate)
	if s.translateRequiresAuth {
		translate = s.RequireAuth(translate)
	}
	s.route(mux, "POST /translate", translate)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return s.withRequestID(s.withRecovery(mux))
}

func (s *HTTPServer) route(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, s.instrument(pattern, h))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
