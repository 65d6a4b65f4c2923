package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type purgerFunc func(ctx context.Context, now time.Time) (int64, error)

func (f purgerFunc) Purge(ctx context.Context, now time.Time) (int64, error) { return f(ctx, now) }

func TestAddLoginAttemptPurge_InvalidSpec(t *testing.T) {
	s := New(zap.NewNop())

	err := s.AddLoginAttemptPurge("every ten minutes", purgerFunc(func(context.Context, time.Time) (int64, error) { return 0, nil }))
	require.Error(t, err)
}

func TestPurge_UsesClock(t *testing.T) {
	s := New(zap.NewNop())
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	var got time.Time
	s.purge(purgerFunc(func(ctx context.Context, now time.Time) (int64, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		got = now
		return 3, nil
	}))
	assert.Equal(t, fixed, got)
}

func TestStartStop(t *testing.T) {
	s := New(zap.NewNop())
	require.NoError(t, s.AddLoginAttemptPurge("@every 1h", purgerFunc(func(context.Context, time.Time) (int64, error) { return 0, nil })))

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
