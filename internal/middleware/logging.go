package middleware

import (
	"context"
	"net/http"
	"time"

	"infinite-experiment/consortium/internal/auth"
	"infinite-experiment/consortium/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDMiddleware propagates X-Request-ID, generating one when absent.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// requestInfo is shared between the logging middleware and the auth
// middleware further down the chain, which only sees a derived context.
type requestInfo struct {
	caller string
}

type requestInfoKey struct{}

// noteCaller records the authenticated caller for the request log line.
func noteCaller(r *http.Request, claims auth.CallerClaims) {
	if info, ok := r.Context().Value(requestInfoKey{}).(*requestInfo); ok && claims != nil {
		info.caller = claims.Address().String()
	}
}

// Logging writes one structured line per request once it has completed.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &requestInfo{}
		ctx := context.WithValue(r.Context(), requestInfoKey{}, info)

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		endpoint := routePattern(r)
		logging.WithRequest(GetRequestID(r.Context()), info.caller, endpoint).Infow("HTTP request completed",
			"method", r.Method,
			"status_code", wrapped.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// routePattern reports the matched chi pattern, or the normalized path when
// routing did not match.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return NormalizeEndpoint(r.URL.Path)
}
