package repository

import (
	"context"
	"time"

	"github.com/storefront/backend/internal/domain/model"
)

// LoginAttemptStore counts login attempts per normalized email within a fixed window
// that starts at the first attempt. Implementations must make RegisterAttempt atomic
// across concurrent requests.
type LoginAttemptStore interface {
	// Attempts returns the counter inside the window ending at now.
	// An absent or elapsed counter comes back with Attempts == 0.
	Attempts(ctx context.Context, email string, now time.Time, window time.Duration) (model.LoginAttempt, error)
	// RegisterAttempt increments the counter and returns its new state.
	// A counter whose window has elapsed restarts at 1 with WindowStartedAt = now.
	RegisterAttempt(ctx context.Context, email string, now time.Time, window time.Duration) (model.LoginAttempt, error)
	Reset(ctx context.Context, email string) error
	// PurgeExpired removes counters whose window ended before now.
	PurgeExpired(ctx context.Context, now time.Time, window time.Duration) (int64, error)
}
