// AngelaMos | 2026
// ratelimit_test.go

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/gym-membership/internal/middleware"
)

func newLimitedHandler(t *testing.T, cfg middleware.RateLimitConfig) (http.Handler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := middleware.NewRateLimiter(rdb, cfg)
	h := middleware.Authenticator(verifier)(limiter.Handler(http.HandlerFunc(noContent)))
	return h, mr
}

func send(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/attendance/quick-check-in", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterPerStaff(t *testing.T) {
	h, _ := newLimitedHandler(t, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(2, 2),
	})

	assert.Equal(t, http.StatusNoContent, send(h, "desk").Code)
	assert.Equal(t, http.StatusNoContent, send(h, "desk").Code)

	rec := send(h, "desk")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, rec))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, send(h, "admin").Code)
}

func TestRateLimiterRoleOverride(t *testing.T) {
	h, _ := newLimitedHandler(t, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(1, 1),
		RoleLimits: map[string]middleware.Limit{
			middleware.RoleAdmin: middleware.PerMinute(5, 5),
		},
	})

	for range 5 {
		require.Equal(t, http.StatusNoContent, send(h, "admin").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, send(h, "admin").Code)

	assert.Equal(t, http.StatusNoContent, send(h, "desk").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(h, "desk").Code)
}

func TestRateLimiterFallsBackWhenRedisDown(t *testing.T) {
	h, mr := newLimitedHandler(t, middleware.RateLimitConfig{
		Limit: middleware.Window(1, time.Hour, 1),
	})
	mr.Close()

	assert.Equal(t, http.StatusNoContent, send(h, "desk").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(h, "desk").Code)
}

func TestRateLimiterBypass(t *testing.T) {
	h, _ := newLimitedHandler(t, middleware.RateLimitConfig{
		Limit:      middleware.PerMinute(1, 1),
		BypassFunc: func(*http.Request) bool { return true },
	})

	for range 3 {
		assert.Equal(t, http.StatusNoContent, send(h, "desk").Code)
	}
}
