package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

var ErrTooManyAttempts = errors.New("too many attempts, try again later")

type Action string

const (
	ActionLogin         Action = "login"
	ActionRegister      Action = "register"
	ActionPasswordReset Action = "password_reset"
)

// Rule caps attempts per key within a fixed window.
type Rule struct {
	Max    int64
	Window time.Duration
}

var DefaultRules = map[Action]Rule{
	ActionLogin:         {Max: 5, Window: 15 * time.Minute},
	ActionRegister:      {Max: 3, Window: time.Hour},
	ActionPasswordReset: {Max: 3, Window: time.Hour},
}

type Limiter interface {
	// Check counts one attempt and returns ErrTooManyAttempts once the
	// action's rule is exceeded for key.
	Check(ctx context.Context, action Action, key string) error
	// Reset clears the attempts for key, e.g. after a successful login.
	Reset(ctx context.Context, action Action, key string) error
}

func attemptsKey(action Action, key string) string {
	return fmt.Sprintf("%s_attempts:%s", action, strings.ToLower(strings.TrimSpace(key)))
}

type RedisLimiter struct {
	redis *redis.Client
	rules map[Action]Rule
}

func NewRedisLimiter(client *redis.Client, rules map[Action]Rule) *RedisLimiter {
	if rules == nil {
		rules = DefaultRules
	}
	return &RedisLimiter{redis: client, rules: rules}
}

func (r *RedisLimiter) Check(ctx context.Context, action Action, key string) error {
	rule, ok := r.rules[action]
	if !ok {
		return nil
	}

	k := attemptsKey(action, key)
	count, err := r.redis.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("failed to count %s attempt: %w", action, err)
	}

	if count == 1 {
		if err := r.redis.Expire(ctx, k, rule.Window).Err(); err != nil {
			return fmt.Errorf("failed to set %s attempt window: %w", action, err)
		}
	}

	if count > rule.Max {
		return ErrTooManyAttempts
	}
	return nil
}

func (r *RedisLimiter) Reset(ctx context.Context, action Action, key string) error {
	return r.redis.Del(ctx, attemptsKey(action, key)).Err()
}

// CacheLimiter keeps the counters in process memory. Limits are per
// instance.
type CacheLimiter struct {
	cache *cache.Cache
	rules map[Action]Rule
}

func NewCacheLimiter(rules map[Action]Rule) *CacheLimiter {
	if rules == nil {
		rules = DefaultRules
	}
	return &CacheLimiter{
		cache: cache.New(time.Hour, 10*time.Minute),
		rules: rules,
	}
}

func (c *CacheLimiter) Check(ctx context.Context, action Action, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rule, ok := c.rules[action]
	if !ok {
		return nil
	}

	k := attemptsKey(action, key)
	// Add is a no-op while the window is still open.
	_ = c.cache.Add(k, int64(0), rule.Window)

	count, err := c.cache.IncrementInt64(k, 1)
	if err != nil {
		// The window expired between Add and Increment.
		c.cache.Set(k, int64(1), rule.Window)
		count = 1
	}

	if count > rule.Max {
		return ErrTooManyAttempts
	}
	return nil
}

func (c *CacheLimiter) Reset(ctx context.Context, action Action, key string) error {
	c.cache.Delete(attemptsKey(action, key))
	return nil
}
