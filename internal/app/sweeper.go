package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper periodically removes sessions that have been idle too long.
type Sweeper struct {
	sessions SessionRepository
	idle     time.Duration
	now      func() time.Time
	log      zerolog.Logger
	cron     *cron.Cron
}

func NewSweeper(sessions SessionRepository, idle time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		sessions: sessions,
		idle:     idle,
		now:      time.Now,
		log:      log,
		cron:     cron.New(),
	}
}

// Start schedules the sweep every interval and begins running it.
func (s *Sweeper) Start(every time.Duration) error {
	if _, err := s.cron.AddFunc("@every "+every.String(), func() {
		s.Sweep(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep removes idle sessions once and returns how many were removed.
func (s *Sweeper) Sweep(ctx context.Context) int {
	removed := s.sessions.SweepIdle(ctx, s.now().Add(-s.idle))
	if removed > 0 {
		s.log.Info().Int("removed", removed).Dur("idle", s.idle).Msg("swept idle sessions")
	}
	return removed
}
