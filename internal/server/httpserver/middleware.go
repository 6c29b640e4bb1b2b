package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/speechauth/internal/common"
	"github.com/dmitrijs2005/speechauth/internal/server/models"
	"github.com/google/uuid"
)

type ctxKey string

const (
	accountKey   ctxKey = "account"
	requestIDKey ctxKey = "requestID"
)

// RequestIDHeader is echoed back on every response.
const RequestIDHeader = "X-Request-ID"

// AccountFromContext returns the account attached by RequireAuth.
func AccountFromContext(ctx context.Context) (*models.Account, bool) {
	a, ok := ctx.Value(accountKey).(*models.Account)
	return a, ok
}

// RequestIDFromContext returns the id assigned by the request-id middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// extractBearer returns the token from an "Authorization: Bearer <token>"
// header value, or "" when the header is absent or uses another scheme.
func extractBearer(h string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth rejects requests without a valid Bearer token and puts the
// resolved account on the request context.
func (s *HTTPServer) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token := extractBearer(r.Header.Get(common.AuthorizationHeaderName))
		if token == "" {
			s.metrics.RecordAuthEvent("verify", "missing")
			writeError(w, http.StatusUnauthorized, msgNoToken)
			return
		}

		account, err := s.accounts.Verify(ctx, token)
		if err != nil {
			if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired) {
				s.metrics.RecordAuthEvent("verify", "rejected")
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}
			s.metrics.RecordAuthEvent("verify", "error")
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}

		s.metrics.RecordAuthEvent("verify", "success")
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, accountKey, account)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// instrument records per-route request counts and latency and writes the
// access log line.
func (s *HTTPServer) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		elapsed := time.Since(start)

		s.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		s.logger.Info(r.Context(), "request",
			"request_id", RequestIDFromContext(r.Context()),
			"route", route,
			"status", rec.status,
			"duration", elapsed,
		)
	})
}

func (s *HTTPServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *HTTPServer) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				s.logger.Error(r.Context(), "handler panic",
					"request_id", RequestIDFromContext(r.Context()),
					"panic", v,
				)
				writeError(w, http.StatusInternalServerError, msgInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
