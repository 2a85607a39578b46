package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// OverdueSweeper periodically moves past-due demands with a balance to overdue.
type OverdueSweeper struct {
	refresher portssvc.OverdueRefresherSvc
	cron      *cron.Cron
	logger    *slog.Logger
	timeout   time.Duration
}

// NewOverdueSweeper schedules refresher on a standard five-field cron expression.
func NewOverdueSweeper(refresher portssvc.OverdueRefresherSvc, schedule string, logger *slog.Logger) (*OverdueSweeper, error) {
	s := &OverdueSweeper{
		refresher: refresher,
		cron:      cron.New(cron.WithLocation(time.UTC)),
		logger:    logger.With(slog.String("component", "overdue_sweeper")),
		timeout:   5 * time.Minute,
	}
	if _, err := s.cron.AddFunc(schedule, func() { _, _ = s.RunOnce(context.Background()) }); err != nil {
		return nil, err
	}
	return s, nil
}

// RunOnce performs a single sweep.
func (s *OverdueSweeper) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	n, err := s.refresher.RefreshOverdue(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("Overdue sweep failed", slog.String("error", err.Error()))
		return 0, err
	}
	return n, nil
}

// Start begins running scheduled sweeps in the background.
func (s *OverdueSweeper) Start() {
	s.cron.Start()
	s.logger.Info("Overdue sweeper started")
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *OverdueSweeper) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.logger.Info("Overdue sweeper stopped")
}
