// Package scheduler runs the aggregation job on a cron schedule for daemon
// deployments. One-shot runs bypass it entirely.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/ohvali/ainews/internal/logger"
)

// Job is a single schedulable unit of work.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner around one job.
type Scheduler struct {
	cron *cron.Cron
	spec string
	job  Job
}

// New creates a scheduler for the given cron spec (standard 5-field syntax).
func New(spec string, job Job) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		spec: spec,
		job:  job,
	}
}

// Start registers the job and starts the cron loop, then blocks until ctx is
// cancelled. Job failures are logged and the schedule keeps running.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.job(ctx); err != nil {
			logger.Error("scheduled run failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("scheduler started", "spec", s.spec)

	<-ctx.Done()
	stop := s.cron.Stop()
	<-stop.Done()
	logger.Info("scheduler stopped")
	return nil
}
