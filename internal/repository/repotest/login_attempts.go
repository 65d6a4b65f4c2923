// Package repotest holds behaviour suites shared by every implementation of a
// repository interface.
package repotest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/repository"
)

// LoginAttemptStore runs the counter behaviour against stores built by newStore.
// Each subtest gets a fresh store and its own emails. now should be close to the
// wall clock for stores whose expiry is driven by the server (Redis).
func LoginAttemptStore(t *testing.T, newStore func(t *testing.T) repository.LoginAttemptStore, now time.Time) {
	t.Run("counts per email", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		window := 15 * time.Minute
		email, other := uniqueEmail(t, "a"), uniqueEmail(t, "b")

		for i := 1; i <= 3; i++ {
			a, err := s.RegisterAttempt(ctx, email, now, window)
			require.NoError(t, err)
			assert.Equal(t, i, a.Attempts)
			assert.WithinDuration(t, now, a.WindowStartedAt, time.Second)
		}

		a, err := s.Attempts(ctx, email, now, window)
		require.NoError(t, err)
		assert.Equal(t, 3, a.Attempts)

		a, err = s.Attempts(ctx, other, now, window)
		require.NoError(t, err)
		assert.Equal(t, 0, a.Attempts)
	})

	t.Run("reset clears the counter", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		window := time.Minute
		email := uniqueEmail(t, "r")

		_, err := s.RegisterAttempt(ctx, email, now, window)
		require.NoError(t, err)
		require.NoError(t, s.Reset(ctx, email))

		a, err := s.Attempts(ctx, email, now, window)
		require.NoError(t, err)
		assert.Equal(t, 0, a.Attempts)

		a, err = s.RegisterAttempt(ctx, email, now, window)
		require.NoError(t, err)
		assert.Equal(t, 1, a.Attempts)
	})

	t.Run("concurrent attempts get distinct counts", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)
		email := uniqueEmail(t, "c")

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = make(map[int]bool)
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				a, err := s.RegisterAttempt(ctx, email, now, time.Hour)
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				seen[a.Attempts] = true
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, seen, 20)
		for i := 1; i <= 20; i++ {
			assert.True(t, seen[i], "count %d was never handed out", i)
		}
	})
}

// LoginAttemptWindow checks window and expiry handling for stores that take the
// caller's now as their clock. Redis expires keys on its own clock and is not run here.
func LoginAttemptWindow(t *testing.T, s repository.LoginAttemptStore, now time.Time) {
	ctx := context.Background()
	window := 15 * time.Minute
	email, purged, kept := uniqueEmail(t, "e"), uniqueEmail(t, "p"), uniqueEmail(t, "k")

	_, err := s.RegisterAttempt(ctx, email, now, window)
	require.NoError(t, err)
	a, err := s.RegisterAttempt(ctx, email, now.Add(time.Minute), window)
	require.NoError(t, err)

	// later attempts do not move the window
	assert.Equal(t, 2, a.Attempts)
	assert.WithinDuration(t, now, a.WindowStartedAt, time.Second)
	assert.Equal(t, 14*time.Minute, a.RetryAfter(now.Add(time.Minute), window).Round(time.Second))

	later := now.Add(window)
	a, err = s.Attempts(ctx, email, later, window)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Attempts)

	// an attempt after the window starts a fresh count
	a, err = s.RegisterAttempt(ctx, email, later, window)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Attempts)
	assert.WithinDuration(t, later, a.WindowStartedAt, time.Second)

	_, err = s.RegisterAttempt(ctx, purged, now, window)
	require.NoError(t, err)
	_, err = s.RegisterAttempt(ctx, kept, now.Add(30*time.Second), window)
	require.NoError(t, err)

	n, err := s.PurgeExpired(ctx, now.Add(window).Add(time.Second), window)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	a, err = s.Attempts(ctx, kept, now.Add(window), window)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Attempts)
}

func uniqueEmail(t *testing.T, tag string) string {
	return tag + "-" + time.Now().Format("150405.000000000") + "@" + safeName(t.Name()) + ".test"
}

func safeName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
