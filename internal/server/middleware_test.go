package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthpeek/feescope/internal/app"
	"github.com/wealthpeek/feescope/internal/interfaces"
	"github.com/wealthpeek/feescope/internal/models"
	"github.com/wealthpeek/feescope/internal/ratelimit"
)

type stubLimiter struct {
	result interfaces.RateLimitResult
	keys   []string
}

func (s *stubLimiter) Check(clientKey string) interfaces.RateLimitResult {
	s.keys = append(s.keys, clientKey)
	return s.result
}

func okLookup() *mockLookupService {
	return &mockLookupService{
		lookupFunc: func(ctx context.Context, rawFundCode string) (*models.FundLookupResponse, error) {
			return &models.FundLookupResponse{Success: true, FundCode: rawFundCode}, nil
		},
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/funds/lookup", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestCorrelationIDGenerated(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Len(t, rec.Header().Get("X-Correlation-ID"), 8)
}

func TestCorrelationIDEchoed(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "trace-42", rec.Header().Get("X-Correlation-ID"))
}

func TestRateLimitRejection(t *testing.T) {
	limiter := &stubLimiter{
		result: interfaces.RateLimitResult{Limited: true, ResetIn: 42 * time.Second},
	}
	srv := newTestServer(t, func(a *app.App) {
		a.RateLimiter = limiter
		a.LookupService = okLookup()
	})

	rec := postJSON(t, srv.Handler(), "/api/funds/lookup", models.FundLookupRequest{FundCode: "RBF1018"})

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "42", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "Too many requests")
}

func TestRateLimitSkipsUnthrottledPaths(t *testing.T) {
	limiter := &stubLimiter{
		result: interfaces.RateLimitResult{Limited: true, ResetIn: time.Minute},
	}
	srv := newTestServer(t, func(a *app.App) {
		a.RateLimiter = limiter
	})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, limiter.keys, "health endpoint consulted the limiter")
}

func TestRateLimitClientKeyFromForwardedFor(t *testing.T) {
	limiter := &stubLimiter{}
	srv := newTestServer(t, func(a *app.App) {
		a.RateLimiter = limiter
		a.LookupService = okLookup()
	})

	req := httptest.NewRequest(http.MethodPost, "/api/funds/lookup", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("Content-Type", "application/json")
	req.Body = http.NoBody
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Len(t, limiter.keys, 1)
	assert.Equal(t, "203.0.113.7", limiter.keys[0])
}

func TestRateLimitEndToEnd(t *testing.T) {
	srv := newTestServer(t, func(a *app.App) {
		a.RateLimiter = ratelimit.New(2, time.Minute)
		a.LookupService = okLookup()
	})

	for i := 0; i < 2; i++ {
		rec := postJSON(t, srv.Handler(), "/api/funds/lookup", models.FundLookupRequest{FundCode: "RBF1018"})
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := postJSON(t, srv.Handler(), "/api/funds/lookup", models.FundLookupRequest{FundCode: "RBF1018"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestClientIPFallbacks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.9:1234"
	assert.Equal(t, "192.0.2.9", clientIP(req))

	req.Header.Set("CF-Connecting-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", clientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.3")
	assert.Equal(t, "198.51.100.3", clientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", clientIP(req))

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	bare.RemoteAddr = ""
	assert.Equal(t, "unknown", clientIP(bare))
}

func TestRecoveryMiddleware(t *testing.T) {
	srv := newTestServer(t, func(a *app.App) {
		a.LookupService = &mockLookupService{
			lookupFunc: func(ctx context.Context, rawFundCode string) (*models.FundLookupResponse, error) {
				panic("boom")
			},
		}
	})

	rec := postJSON(t, srv.Handler(), "/api/funds/lookup", models.FundLookupRequest{FundCode: "RBF1018"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
