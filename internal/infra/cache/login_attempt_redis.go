package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/backend/internal/domain/model"
	repo "github.com/storefront/backend/internal/repository"
)

const loginAttemptKeyPrefix = "login_attempts:"

// RedisLoginAttemptStore shares lockout counters between API instances.
// The key TTL is the window, so expired counters disappear on their own.
type RedisLoginAttemptStore struct {
	rdb redis.UniversalClient
}

var _ repo.LoginAttemptStore = (*RedisLoginAttemptStore)(nil)

func NewRedisLoginAttemptStore(rdb redis.UniversalClient) *RedisLoginAttemptStore {
	return &RedisLoginAttemptStore{rdb: rdb}
}

func loginAttemptKey(email string) string {
	return loginAttemptKeyPrefix + email
}

// windowStart derives the first attempt time from the remaining TTL.
func windowStart(now time.Time, ttl, window time.Duration) time.Time {
	if ttl < 0 {
		return now
	}
	return now.Add(ttl - window)
}

func (s *RedisLoginAttemptStore) Attempts(ctx context.Context, email string, now time.Time, window time.Duration) (model.LoginAttempt, error) {
	key := loginAttemptKey(email)
	out := model.LoginAttempt{Email: email}

	pipe := s.rdb.Pipeline()
	get := pipe.Get(ctx, key)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return out, err
	}

	n, err := get.Int()
	if errors.Is(err, redis.Nil) {
		return out, nil
	}
	if err != nil {
		return out, err
	}
	out.Attempts = n
	out.WindowStartedAt = windowStart(now, ttl.Val(), window)
	return out, nil
}

// RegisterAttempt runs INCR and EXPIRE NX in one MULTI so the first attempt
// fixes the window and later attempts do not extend it.
func (s *RedisLoginAttemptStore) RegisterAttempt(ctx context.Context, email string, now time.Time, window time.Duration) (model.LoginAttempt, error) {
	key := loginAttemptKey(email)

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return model.LoginAttempt{}, err
	}
	return model.LoginAttempt{
		Email:           email,
		Attempts:        int(incr.Val()),
		WindowStartedAt: windowStart(now, ttl.Val(), window),
		UpdatedAt:       now,
	}, nil
}

func (s *RedisLoginAttemptStore) Reset(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, loginAttemptKey(email)).Err()
}

// PurgeExpired is a no-op, Redis expires the keys.
func (s *RedisLoginAttemptStore) PurgeExpired(context.Context, time.Time, time.Duration) (int64, error) {
	return 0, nil
}

// NewRedisClient pings before returning so start-up fails fast.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
