package auth

import (
	"context"
	"math"
	"time"

	"github.com/storefront/backend/internal/apperr"
	"github.com/storefront/backend/internal/repository"
)

// LockoutPolicy allows at most MaxAttempts password checks per email inside Window.
// The window starts at the first attempt; a successful login clears it.
type LockoutPolicy struct {
	Store       repository.LoginAttemptStore
	MaxAttempts int
	Window      time.Duration
}

// Reserve counts an attempt before the password is looked at. Concurrent requests
// each get their own count from the store, so only MaxAttempts of them pass.
func (p LockoutPolicy) Reserve(ctx context.Context, email string, now time.Time) error {
	a, err := p.Store.RegisterAttempt(ctx, email, now, p.Window)
	if err != nil {
		return apperr.ErrDatabase.Wrap(err)
	}
	if a.Attempts > p.MaxAttempts {
		retry := a.RetryAfter(now, p.Window)
		return apperr.ErrTooManyAttempts.WithDetail(map[string]int{
			"retry_after_seconds": int(math.Ceil(retry.Seconds())),
		})
	}
	return nil
}

func (p LockoutPolicy) Reset(ctx context.Context, email string) error {
	if err := p.Store.Reset(ctx, email); err != nil {
		return apperr.ErrDatabase.Wrap(err)
	}
	return nil
}

// Purge drops counters whose window is over.
func (p LockoutPolicy) Purge(ctx context.Context, now time.Time) (int64, error) {
	return p.Store.PurgeExpired(ctx, now, p.Window)
}
