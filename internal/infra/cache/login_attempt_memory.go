package cache

import (
	"context"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/model"
	repo "github.com/storefront/backend/internal/repository"
)

// MemoryLoginAttemptStore keeps counters in process. Only suitable for a single instance.
type MemoryLoginAttemptStore struct {
	mu      sync.Mutex
	entries map[string]*model.LoginAttempt
}

var _ repo.LoginAttemptStore = (*MemoryLoginAttemptStore)(nil)

func NewMemoryLoginAttemptStore() *MemoryLoginAttemptStore {
	return &MemoryLoginAttemptStore{entries: make(map[string]*model.LoginAttempt)}
}

func expired(e *model.LoginAttempt, now time.Time, window time.Duration) bool {
	return !now.Before(e.WindowStartedAt.Add(window))
}

func (s *MemoryLoginAttemptStore) Attempts(_ context.Context, email string, now time.Time, window time.Duration) (model.LoginAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok || expired(e, now, window) {
		return model.LoginAttempt{Email: email}, nil
	}
	return *e, nil
}

func (s *MemoryLoginAttemptStore) RegisterAttempt(_ context.Context, email string, now time.Time, window time.Duration) (model.LoginAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok || expired(e, now, window) {
		e = &model.LoginAttempt{Email: email, WindowStartedAt: now}
		s.entries[email] = e
	}
	e.Attempts++
	e.UpdatedAt = now
	return *e, nil
}

func (s *MemoryLoginAttemptStore) Reset(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, email)
	return nil
}

func (s *MemoryLoginAttemptStore) PurgeExpired(_ context.Context, now time.Time, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for email, e := range s.entries {
		if expired(e, now, window) {
			delete(s.entries, email)
			n++
		}
	}
	return n, nil
}
