package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/nwp-tools/windborne-export/internal/log"
)

// Job is one scheduled export run.
type Job func(ctx context.Context) error

// Scheduler re-runs an export job on a fixed interval, for poll mode
// where the tool keeps following the observation stream instead of
// exiting after one batch.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	job       Job
}

// New creates a new Scheduler.
func New(interval time.Duration, job Job) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		interval:  interval,
		job:       job,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		log.Debugf("scheduler: running export job")

		ctx, cancel := context.WithTimeout(context.Background(), s.interval)
		defer cancel()

		if err := s.job(ctx); err != nil {
			log.Errorf("scheduler: export run failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
