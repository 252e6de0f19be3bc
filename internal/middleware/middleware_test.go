// AngelaMos | 2026
// middleware_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prombirzha/marketplace/internal/config"
	"github.com/prombirzha/marketplace/internal/core"
)

type stubVerifier struct {
	identity *Identity
	err      error
}

func (s stubVerifier) VerifyAccessToken(
	_ context.Context,
	_ string,
) (*Identity, error) {
	return s.identity, s.err
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(GetUserID(r.Context())))
})

func TestAuthenticator(t *testing.T) {
	verifier := stubVerifier{identity: &Identity{UserID: "user-1"}}
	h := Authenticator(verifier)(okHandler)

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("expired token", func(t *testing.T) {
		h := Authenticator(stubVerifier{err: core.ErrTokenExpired})(okHandler)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
	})
}

func TestRequireRole(t *testing.T) {
	lookup := func(_ context.Context, userID string) (string, error) {
		switch userID {
		case "admin-1":
			return "admin", nil
		case "client-1":
			return "client", nil
		}
		return "", core.ErrNotFound
	}
	h := RequireAdmin(lookup)(okHandler)

	tests := []struct {
		name   string
		userID string
		want   int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"admin", "admin-1", http.StatusOK},
		{"client", "client-1", http.StatusForbidden},
		{"unknown user", "ghost", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				req = req.WithContext(WithIdentity(
					req.Context(),
					&Identity{UserID: tt.userID},
				))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer  token-value ")
	assert.Equal(t, "token-value", ExtractToken(req))

	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, ExtractToken(req))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	req.Header.Set(RequestIDHeader, "bad id with spaces")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "bad id with spaces", seen)
	assert.Len(t, seen, 36)
}

func TestRateLimiterLocalFallback(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Limit: PerMinute(1, 1)})
	h := rl.Handler(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	first := httptest.NewRecorder()
	h.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), "RATE_LIMITED")
}

func TestMutationLimiterSkipsReads(t *testing.T) {
	h := MutationLimiter(nil, PerMinute(1, 1))(okHandler)

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/orders", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "/v1/orders/{id}/responses", normalizeEndpoint("/v1/orders/42/responses"))
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(config.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/v1/orders", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))

	other := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
	other.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPerWindow(t *testing.T) {
	l := PerWindow(30, 10, 10*time.Second)
	assert.Equal(t, 30, l.Rate)
	assert.Equal(t, 10, l.Burst)
	assert.Equal(t, 10*time.Second, l.Period)

	assert.Equal(t, time.Minute, PerWindow(30, 10, 0).Period)
}
