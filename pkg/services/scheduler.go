package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a named unit of work fired on a cron spec with seconds.
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Scheduler runs jobs on their cron specs. A job still running when its next
// tick comes is skipped, so runs of the same job never overlap.
type Scheduler struct {
	log  Logger
	jobs []Job
	cron *cron.Cron
	ctx  context.Context
}

func NewScheduler(log Logger, jobs ...Job) *Scheduler {
	return &Scheduler{log: log, jobs: jobs, ctx: context.Background()}
}

func (s *Scheduler) Init() error {
	logger := cronLogger{s.log}
	s.cron = cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))

	for _, job := range s.jobs {
		if _, err := s.cron.AddFunc(job.Spec, s.wrap(job)); err != nil {
			return fmt.Errorf("invalid schedule %q for job %s: %w", job.Spec, job.Name, err)
		}
		s.log.Info("scheduled %s at %q", job.Name, job.Spec)
	}
	return nil
}

func (s *Scheduler) wrap(job Job) func() {
	return func() {
		ctx := s.ctx
		if job.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, job.Timeout)
			defer cancel()
		}
		if ctx.Err() != nil {
			return
		}

		started := time.Now()
		s.log.Info("job %s started", job.Name)
		if err := job.Run(ctx); err != nil {
			s.log.Error("job %s failed after %s: %v", job.Name, time.Since(started).Round(time.Millisecond), err)
			return
		}
		s.log.Info("job %s finished in %s", job.Name, time.Since(started).Round(time.Millisecond))
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	s.log.Info("cron started with %d jobs", len(s.jobs))
}

// Stop waits for running jobs to return.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// cronLogger adapts Logger to cron.Logger.
type cronLogger struct {
	log Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
