package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLimiter_Check(t *testing.T) {
	ctx := context.Background()
	limiter := NewCacheLimiter(map[Action]Rule{
		ActionLogin: {Max: 2, Window: time.Minute},
	})

	require.NoError(t, limiter.Check(ctx, ActionLogin, "sarah.j@company.com"))
	require.NoError(t, limiter.Check(ctx, ActionLogin, "SARAH.J@company.com"))
	assert.ErrorIs(t, limiter.Check(ctx, ActionLogin, "sarah.j@company.com"), ErrTooManyAttempts)

	// Other keys and unlisted actions are unaffected.
	assert.NoError(t, limiter.Check(ctx, ActionLogin, "mike.c@company.com"))
	assert.NoError(t, limiter.Check(ctx, ActionRegister, "sarah.j@company.com"))

	require.NoError(t, limiter.Reset(ctx, ActionLogin, "sarah.j@company.com"))
	assert.NoError(t, limiter.Check(ctx, ActionLogin, "sarah.j@company.com"))
}

func TestCacheLimiter_WindowExpires(t *testing.T) {
	ctx := context.Background()
	limiter := NewCacheLimiter(map[Action]Rule{
		ActionPasswordReset: {Max: 1, Window: 50 * time.Millisecond},
	})

	require.NoError(t, limiter.Check(ctx, ActionPasswordReset, "kim@company.com"))
	assert.ErrorIs(t, limiter.Check(ctx, ActionPasswordReset, "kim@company.com"), ErrTooManyAttempts)

	time.Sleep(100 * time.Millisecond)
	assert.NoError(t, limiter.Check(ctx, ActionPasswordReset, "kim@company.com"))
}

func TestRedisLimiter_Check(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis test in short mode")
	}
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	limiter := NewRedisLimiter(client, map[Action]Rule{
		ActionRegister: {Max: 1, Window: time.Minute},
	})
	key := uuid.NewString() + "@company.com"
	defer limiter.Reset(ctx, ActionRegister, key)

	require.NoError(t, limiter.Check(ctx, ActionRegister, key))
	assert.ErrorIs(t, limiter.Check(ctx, ActionRegister, key), ErrTooManyAttempts)

	ttl, err := client.TTL(ctx, attemptsKey(ActionRegister, key)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
