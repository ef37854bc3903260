package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sivajik34/aifastcommerce/internal/auth"
	"github.com/sivajik34/aifastcommerce/internal/server/middleware"
)

const testSecret = "test-secret-key-that-is-long-enough!"

func okHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := middleware.UsernameFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "admin", username)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	t.Parallel()

	t.Run("valid bearer token", func(t *testing.T) {
		t.Parallel()

		token, err := auth.IssueAccessToken(testSecret, "admin", time.Hour)
		require.NoError(t, err)

		handler := middleware.Auth(testSecret)(okHandler(t))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid query token", func(t *testing.T) {
		t.Parallel()

		token, err := auth.IssueAccessToken(testSecret, "admin", time.Hour)
		require.NoError(t, err)

		handler := middleware.Auth(testSecret)(okHandler(t))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/?token="+token, nil)

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		handler := middleware.Auth(testSecret)(okHandler(t))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		handler := middleware.Auth(testSecret)(okHandler(t))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nonsense")

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		t.Parallel()

		token, err := auth.IssueAccessToken("another-signing-secret-thats-long", "admin", time.Hour)
		require.NoError(t, err)

		handler := middleware.Auth(testSecret)(okHandler(t))
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRateLimitByIP(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.RateLimitByIP(ctx, 1, 2)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	// Burst of 2 passes, third request is rejected.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different IP gets its own bucket.
	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWithOperator(t *testing.T) {
	t.Parallel()

	ctx := middleware.WithOperator(context.Background(), "admin", "operator")

	username, ok := middleware.UsernameFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "admin", username)

	role, ok := middleware.RoleFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "operator", role)

	_, ok = middleware.UsernameFromContext(context.Background())
	assert.False(t, ok)
}
