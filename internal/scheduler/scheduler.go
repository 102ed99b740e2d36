package scheduler

import (
	"context"
	"fmt"
	"time"

	"rental-booking/internal/data/repository"
	"rental-booking/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = time.Minute

// Scheduler runs the periodic housekeeping jobs.
type Scheduler struct {
	cron     *cron.Cron
	bookings usecase.BookingService
	sessions repository.SessionRepository
	log      *zap.Logger
}

func NewScheduler(bookings usecase.BookingService, sessions repository.SessionRepository, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		bookings: bookings,
		sessions: sessions,
		log:      log.With(zap.String("component", "scheduler")),
	}
}

// Register adds the housekeeping jobs on the given cron spec, e.g. "@every 15m".
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.ExpirePendingBookings); err != nil {
		return fmt.Errorf("register expire pending bookings: %w", err)
	}
	if _, err := s.cron.AddFunc(spec, s.CleanSessions); err != nil {
		return fmt.Errorf("register clean sessions: %w", err)
	}

	s.log.Info("Cron jobs registered", zap.String("schedule", spec), zap.Int("jobs", len(s.cron.Entries())))
	return nil
}

// ExpirePendingBookings cancels unpaid bookings past their TTL.
func (s *Scheduler) ExpirePendingBookings() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.bookings.ExpireStalePending(ctx); err != nil {
		s.log.Error("Expire pending bookings job failed", zap.Error(err))
	}
}

func (s *Scheduler) CleanSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.sessions.CleanExpiredSessions(ctx)
	if err != nil {
		s.log.Error("Clean sessions job failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("Removed stale sessions", zap.Int64("count", n))
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("Cron scheduler started")
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("Cron scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("Cron scheduler stop timed out")
	}
}
