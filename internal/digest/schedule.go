package digest

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// ValidateSchedule checks a standard five-field cron expression or a
// descriptor such as "@daily".
func ValidateSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Scheduler runs a digest job on a cron schedule.
type Scheduler struct {
	cron  *cron.Cron
	sched cron.Schedule
}

// NewScheduler registers job to run on spec. Call Start to begin.
func NewScheduler(spec string, job func()) (*Scheduler, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	c.Schedule(sched, cron.FuncJob(func() {
		slog.Debug("running follow-up digest")
		job()
	}))

	return &Scheduler{cron: c, sched: sched}, nil
}

// Start begins running the job in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("digest scheduled", "next", s.Next(time.Now()))
}

// Next returns the first run time after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.sched.Next(t)
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
