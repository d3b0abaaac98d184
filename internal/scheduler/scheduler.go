// Package scheduler fires the daily word job on a fixed wall-clock time.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wordofday/internal/config"
	"wordofday/internal/job"

	"github.com/go-logr/zapr"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner executes one job run
type Runner interface {
	Run(ctx context.Context) (job.Outcome, error)
}

// Scheduler triggers a Runner once a day in the configured timezone
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	spec     string
	location *time.Location
	runner   Runner
	logger   *zap.Logger

	mu      sync.Mutex
	started bool
}

// New creates a Scheduler for cfg. It does not start it.
func New(cfg config.ScheduleConfig, runner Runner, logger *zap.Logger) (*Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}

	spec := cfg.CronSpec()
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule %q: %w", spec, err)
	}

	cronLogger := zapr.NewLogger(logger.Named("cron"))

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger),
			cron.WithChain(
				cron.Recover(cronLogger),
				cron.SkipIfStillRunning(cronLogger),
			),
		),
		schedule: schedule,
		spec:     spec,
		location: loc,
		runner:   runner,
		logger:   logger,
	}, nil
}

// Start registers the daily entry and starts the cron loop. Only the primary
// instance schedules anything; on every other instance Start is a no-op.
func (s *Scheduler) Start(isPrimaryInstance bool) error {
	if !isPrimaryInstance {
		s.logger.Info("scheduler disabled on non-primary instance")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, func() { s.RunNow(context.Background()) }); err != nil {
		return fmt.Errorf("failed to register daily job: %w", err)
	}
	s.cron.Start()
	s.started = true

	s.logger.Info("Scheduler started",
		zap.String("spec", s.spec),
		zap.String("timezone", s.location.String()),
		zap.Time("next_run", s.NextRun(time.Now())),
	)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	started := s.started
	s.started = false
	s.mu.Unlock()

	if !started {
		return nil
	}

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler did not stop in time: %w", ctx.Err())
	}
}

// Running reports whether the cron loop has been started
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// NextRun returns the first fire time strictly after t, in the schedule's timezone
func (s *Scheduler) NextRun(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.location))
}

// RunNow runs the job once. No error or panic escapes: failures are logged and
// the next scheduled run happens as usual.
func (s *Scheduler) RunNow(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("daily word job failed unexpectedly", zap.Any("panic", r))
		}
	}()

	outcome, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("daily word job failed unexpectedly",
			zap.String("outcome", string(outcome)),
			zap.Error(err))
		return
	}

	s.logger.Info("Daily word job finished", zap.String("outcome", string(outcome)))
}
