package middleware

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimiter(t *testing.T, maxRequests int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiter(client, RateLimiterConfig{
		MaxRequests: maxRequests,
		Window:      window,
	}), server
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	limiter, _ := setupLimiter(t, 5, time.Minute)

	for i := 0; i < 5; i++ {
		allowed, _, err := limiter.CheckLimit("10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	limiter, _ := setupLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.CheckLimit("10.0.0.1")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, retryAfter, err := limiter.CheckLimit("10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRateLimiter_CountsPerIP(t *testing.T) {
	limiter, _ := setupLimiter(t, 1, time.Minute)

	allowed, _, err := limiter.CheckLimit("10.0.0.1")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = limiter.CheckLimit("10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, _, err = limiter.CheckLimit("10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	limiter, server := setupLimiter(t, 1, time.Minute)

	allowed, _, err := limiter.CheckLimit("10.0.0.1")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = limiter.CheckLimit("10.0.0.1")
	require.NoError(t, err)
	require.False(t, allowed)

	server.FastForward(2 * time.Minute)

	allowed, _, err = limiter.CheckLimit("10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}
