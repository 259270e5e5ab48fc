// Package scheduler triggers report runs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sragwatch/srag-data-etl/internal/domain"
)

// runTimeout bounds a single scheduled run; a snapshot read plus the
// aggregation never legitimately takes longer.
const runTimeout = 10 * time.Minute

// ReportRunner executes one report run.
type ReportRunner interface {
	RunOnce(ctx context.Context) (domain.ReportBundle, error)
}

// Scheduler runs the report pipeline on a cron spec.
type Scheduler struct {
	cronEngine *cron.Cron
	runner     ReportRunner
	logger     *slog.Logger
	spec       string
}

// New creates a Scheduler; spec is a standard 5-field cron expression.
func New(runner ReportRunner, logger *slog.Logger, spec string) *Scheduler {
	return &Scheduler{
		cronEngine: cron.New(),
		runner:     runner,
		logger:     logger,
		spec:       spec,
	}
}

// Start registers the report job and starts the cron engine. Returns an
// error for an invalid cron spec.
func (s *Scheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.spec, s.runReport)
	if err != nil {
		return fmt.Errorf("register report job %q: %w", s.spec, err)
	}
	s.cronEngine.Start()
	s.logger.Info("scheduler started", "cron", s.spec)
	return nil
}

// Stop stops scheduling new runs and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runReport() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	s.logger.Info("scheduled report run starting")
	if _, err := s.runner.RunOnce(ctx); err != nil {
		// RunOnce already logged the details; the next tick retries.
		s.logger.Error("scheduled report run failed", "error", err)
	}
}
