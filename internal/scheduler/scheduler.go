// Package scheduler wires up the cron job that periodically executes a
// monitoring pass.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"jobmatch/monitor-service/internal/monitor"
)

// Scheduler wraps robfig/cron and drives the monitor Runner.
type Scheduler struct {
	cron   *cron.Cron
	runner *monitor.Runner
	spec   string // cron spec, e.g. "@every 1h"
	log    zerolog.Logger
}

// New creates a Scheduler that fires every intervalHours hours.
func New(runner *monitor.Runner, intervalHours int, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
		log:    log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the job and starts the scheduler. One pass runs
// immediately so a fresh deployment does not wait for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runPass(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("cron started")

	go s.runPass(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("cron stopped")
}

func (s *Scheduler) runPass(ctx context.Context) {
	summary, err := s.runner.Run(ctx, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("monitoring pass failed")
		return
	}

	s.log.Info().
		Int("users", summary.UsersProcessed).
		Int("scraped", summary.TotalJobsScraped).
		Int("emails", summary.TotalEmailsSent).
		Msg("scheduled pass finished")
}
