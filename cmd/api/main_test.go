package main

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/config"
	"github.com/storefront/backend/internal/infra/cache"
)

func TestLoginAttemptStore_Memory(t *testing.T) {
	cfg := config.Config{Lockout: config.LockoutConfig{Backend: config.LockoutBackendMemory}}

	store, closeStore, err := loginAttemptStore(context.Background(), cfg, nil, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, closeStore)
	assert.IsType(t, &cache.MemoryLoginAttemptStore{}, store)
	closeStore()
}

func TestLoginAttemptStore_RedisClosedOnRelease(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	cfg := config.Config{
		Lockout: config.LockoutConfig{Backend: config.LockoutBackendRedis},
		Redis:   config.RedisConfig{Addr: addr, Password: os.Getenv("TEST_REDIS_PASSWORD")},
	}

	store, closeStore, err := loginAttemptStore(context.Background(), cfg, nil, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Reset(context.Background(), "closed@example.test"))

	closeStore()
	assert.ErrorIs(t, store.Reset(context.Background(), "closed@example.test"), redis.ErrClosed)
}

func TestLoginAttemptStore_RedisUnreachable(t *testing.T) {
	cfg := config.Config{
		Lockout: config.LockoutConfig{Backend: config.LockoutBackendRedis},
		Redis:   config.RedisConfig{Addr: "127.0.0.1:1"},
	}

	_, closeStore, err := loginAttemptStore(context.Background(), cfg, nil, zap.NewNop())
	assert.ErrorContains(t, err, "connect redis")
	assert.Nil(t, closeStore)
}
