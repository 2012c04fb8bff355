package account

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("reset token not found")

// TokenStore keeps password reset tokens until they expire or are
// consumed. A token can be consumed once.
type TokenStore interface {
	Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (uuid.UUID, error)
	Consume(ctx context.Context, token string) (uuid.UUID, error)
}

// CacheTokenStore keeps tokens in process memory.
type CacheTokenStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewCacheTokenStore(defaultTTL time.Duration) *CacheTokenStore {
	return &CacheTokenStore{cache: cache.New(defaultTTL, 10*time.Minute)}
}

func (s *CacheTokenStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	s.cache.Set(token, userID, ttl)
	return nil
}

func (s *CacheTokenStore) Lookup(ctx context.Context, token string) (uuid.UUID, error) {
	v, ok := s.cache.Get(token)
	if !ok {
		return uuid.Nil, ErrTokenNotFound
	}
	return v.(uuid.UUID), nil
}

func (s *CacheTokenStore) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.cache.Get(token)
	if !ok {
		return uuid.Nil, ErrTokenNotFound
	}
	s.cache.Delete(token)
	return v.(uuid.UUID), nil
}

// RedisTokenStore shares tokens between server instances.
type RedisTokenStore struct {
	redis *redis.Client
}

func NewRedisTokenStore(redis *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{redis: redis}
}

func resetTokenKey(token string) string {
	return fmt.Sprintf("password_reset_token:%s", token)
}

func (s *RedisTokenStore) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.redis.Set(ctx, resetTokenKey(token), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Lookup(ctx context.Context, token string) (uuid.UUID, error) {
	v, err := s.redis.Get(ctx, resetTokenKey(token)).Result()
	return parseStoredUserID(v, err)
}

func (s *RedisTokenStore) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	v, err := s.redis.GetDel(ctx, resetTokenKey(token)).Result()
	return parseStoredUserID(v, err)
}

func parseStoredUserID(v string, err error) (uuid.UUID, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrTokenNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to read reset token: %w", err)
	}
	userID, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt reset token entry: %w", err)
	}
	return userID, nil
}
