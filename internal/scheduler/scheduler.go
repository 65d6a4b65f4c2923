package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Purger drops expired login-attempt counters.
type Purger interface {
	Purge(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler runs housekeeping jobs on cron specs.
type Scheduler struct {
	cron    *cron.Cron
	log     *zap.Logger
	timeout time.Duration
	now     func() time.Time
}

func New(log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		log:     log.Named("scheduler"),
		timeout: 30 * time.Second,
		now:     time.Now,
	}
}

// AddLoginAttemptPurge schedules p on spec, e.g. "@every 10m".
func (s *Scheduler) AddLoginAttemptPurge(spec string, p Purger) error {
	_, err := s.cron.AddFunc(spec, func() { s.purge(p) })
	if err != nil {
		return fmt.Errorf("schedule login attempt purge %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) purge(p Purger) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := p.Purge(ctx, s.now())
	if err != nil {
		s.log.Warn("login attempt purge failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("login attempts purged", zap.Int64("rows", n))
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
