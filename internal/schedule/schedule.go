// Package schedule re-runs the announcement on a cron expression.
//
// Expressions use the standard five fields (minute hour dom month dow),
// descriptors such as "@daily", and an optional "CRON_TZ=Area/City" prefix.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	robfigcron "github.com/robfig/cron/v3"
)

// JobFunc is invoked on every scheduled tick.
type JobFunc func(ctx context.Context)

var parser = robfigcron.NewParser(
	robfigcron.Minute | robfigcron.Hour | robfigcron.Dom | robfigcron.Month | robfigcron.Dow | robfigcron.Descriptor,
)

// Scheduler runs one job on one cron schedule.
type Scheduler struct {
	expr   string
	sched  robfigcron.Schedule
	job    JobFunc
	robfig *robfigcron.Cron
}

// cronLogger routes robfig/cron diagnostics to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	slog.Info("schedule: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	slog.Error("schedule: "+msg, append(keysAndValues, "err", err)...)
}

// New parses expr and returns a Scheduler for job.
func New(expr string, job JobFunc) (*Scheduler, error) {
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", expr, err)
	}
	return &Scheduler{
		expr:   expr,
		sched:  sched,
		job:    job,
		robfig: robfigcron.New(
			robfigcron.WithParser(parser),
			robfigcron.WithChain(robfigcron.SkipIfStillRunning(cronLogger{})),
		),
	}, nil
}

// Next returns the first activation after t.
func (s *Scheduler) Next(t time.Time) time.Time { return s.sched.Next(t) }

// Start arms the schedule and blocks until ctx is cancelled. A run that is
// still in progress is waited for before Start returns.
func (s *Scheduler) Start(ctx context.Context) error {
	s.robfig.Schedule(s.sched, robfigcron.FuncJob(func() {
		slog.Info("schedule: firing", "expr", s.expr)
		s.job(ctx)
	}))
	s.robfig.Start()
	slog.Info("schedule: started", "expr", s.expr, "next", s.Next(time.Now()))

	<-ctx.Done()

	<-s.robfig.Stop().Done()
	slog.Info("schedule: stopped")
	return ctx.Err()
}
