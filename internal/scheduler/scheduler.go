package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one report run.
type Job func(ctx context.Context) error

// Scheduler repeats a job on a cron expression (seconds field enabled).
type Scheduler struct {
	Cron   *cron.Cron
	Job    Job
	Logger *zap.Logger
	Ctx    context.Context
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

// NewScheduler creates a new Scheduler. Runs that would overlap a still-running one are skipped.
func NewScheduler(ctx context.Context, job Job, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{s: logger.Sugar()}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		Job:    job,
		Logger: logger,
		Ctx:    ctx,
	}
}

// Register adds the job under spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("register report task %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started", zap.Int("entries", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunNow executes the job immediately.
func (s *Scheduler) RunNow() error {
	return s.Job(s.Ctx)
}

func (s *Scheduler) run() {
	if s.Ctx.Err() != nil {
		return
	}
	s.Logger.Info("running scheduled report")
	if err := s.Job(s.Ctx); err != nil {
		s.Logger.Error("scheduled report failed", zap.Error(err))
	}
}
