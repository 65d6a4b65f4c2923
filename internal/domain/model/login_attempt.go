package model

import "time"

// LoginAttempt is the login counter for one normalized email.
// The counter restarts when WindowStartedAt falls out of the lockout window.
type LoginAttempt struct {
	Email           string    `gorm:"type:varchar(255);primaryKey" db:"email"`
	Attempts        int       `gorm:"not null;default:0" db:"attempts"`
	WindowStartedAt time.Time `gorm:"not null;index" db:"window_started_at"`
	UpdatedAt       time.Time `gorm:"not null" db:"updated_at"`
}

// RetryAfter is how long until the window that started at WindowStartedAt ends.
func (a LoginAttempt) RetryAfter(now time.Time, window time.Duration) time.Duration {
	d := a.WindowStartedAt.Add(window).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
