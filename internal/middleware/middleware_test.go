package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"infinite-experiment/consortium/internal/auth"
	"infinite-experiment/consortium/internal/db/repositories"
	"infinite-experiment/consortium/internal/governance"
	"infinite-experiment/consortium/internal/metrics"
	"infinite-experiment/consortium/internal/models/dtos"
	"infinite-experiment/consortium/internal/models/entities"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testSecret = []byte("middleware-secret")
	testCaller = governance.MustParseAddress("0x00000000000000000000000000000000000000aa")
)

type mapLookup map[string]*entities.ApiKey

func (m mapLookup) GetStatus(_ context.Context, key string) (*entities.ApiKey, error) {
	if rec, ok := m[key]; ok {
		return rec, nil
	}
	return nil, repositories.ErrApiKeyNotFound
}

// echoCaller writes the resolved caller address as the response body.
func echoCaller(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetCallerClaims(r.Context())
	_, _ = w.Write([]byte(claims.Address().String() + " " + string(claims.Source())))
}

func authHandler() http.Handler {
	keys := mapLookup{
		"good-key":    {ApiKey: "good-key", CallerAddress: testCaller.String(), Status: true},
		"revoked-key": {ApiKey: "revoked-key", CallerAddress: testCaller.String(), Status: false},
	}
	return AuthMiddleware(keys, testSecret)(http.HandlerFunc(echoCaller))
}

func TestAuthMiddleware_Bearer(t *testing.T) {
	token, err := auth.IssueToken(testSecret, testCaller, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	authHandler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, testCaller.String()+" JWT", rr.Body.String())
}

func TestAuthMiddleware_ApiKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-API-Key", "good-key")
	rr := httptest.NewRecorder()
	authHandler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, testCaller.String()+" API_KEY", rr.Body.String())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
	}{
		{"no credentials", "", ""},
		{"bad token", "Authorization", "Bearer not-a-token"},
		{"unknown key", "X-API-Key", "missing"},
		{"revoked key", "X-API-Key", "revoked-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rr := httptest.NewRecorder()
			authHandler().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			var body dtos.APIResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, "UNAUTHENTICATED", body.ErrorCode)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	// Other clients and loopback have their own budget.
	for _, remote := range []string{"198.51.100.8:4000", "127.0.0.1:9999"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code, remote)
	}
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(reg))
	r.Get("/api/v1/airlines/{address}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/airlines/"+testCaller.String(), nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1.0, testutil.ToFloat64(
		reg.HTTPRequestsTotal.WithLabelValues("/api/v1/airlines/{address}", http.MethodGet, "418"),
	))
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rr.Header().Get("X-Request-ID"))

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/v1/airlines/" + testCaller.String(), "/api/v1/airlines/{address}"},
		{"/api/v1/events/123", "/api/v1/events/{id}"},
		{"/api/v1/events/0b7c6a1e-8d1f-4c3e-9a43-1f2b3c4d5e6f", "/api/v1/events/{id}"},
		{"/healthCheck", "/healthCheck"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEndpoint(tt.in), tt.in)
	}
}
