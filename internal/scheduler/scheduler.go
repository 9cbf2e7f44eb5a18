package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper is the housekeeping slice of the service layer.
type Sweeper interface {
	MarkOverdueLoans(ctx context.Context) (int, error)
	ExpireReservations(ctx context.Context) (int, error)
}

// Scheduler periodically flips overdue loans and expired reservations. One
// sweep runs at startup so a restarted instance catches up immediately.
type Scheduler struct {
	svc      Sweeper
	interval time.Duration
	log      *zap.Logger
}

func New(svc Sweeper, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		svc:      svc,
		interval: interval,
		log:      log.Named("scheduler"),
	}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	overdue, err := s.svc.MarkOverdueLoans(ctx)
	if err != nil {
		s.log.Error("overdue sweep", zap.Error(err))
	} else if overdue > 0 {
		s.log.Info("loans marked overdue", zap.Int("count", overdue))
	}

	expired, err := s.svc.ExpireReservations(ctx)
	if err != nil {
		s.log.Error("expiry sweep", zap.Error(err))
	} else if expired > 0 {
		s.log.Info("reservations expired", zap.Int("count", expired))
	}
}
