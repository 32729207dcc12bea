package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const purgeTimeout = time.Minute

// Purger deletes rows that are past their expiry
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

// PurgerFunc adapts a function to Purger
type PurgerFunc func(ctx context.Context) (int64, error)

func (f PurgerFunc) Purge(ctx context.Context) (int64, error) { return f(ctx) }

// CronService runs the periodic cleanup of expired sessions and pending roles
type CronService struct {
	cron    *cron.Cron
	log     *slog.Logger
	jobs    map[string]Purger
	started bool
}

// NewCronService schedules every purger on the given cron spec, e.g. "@every 30m"
func NewCronService(spec string, log *slog.Logger, jobs map[string]Purger) (*CronService, error) {
	s := &CronService{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger))),
		log:  log.With("component", "cron"),
		jobs: jobs,
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CronService) Start() {
	s.cron.Start()
	s.started = true
	s.log.Info("cron service started", "jobs", len(s.jobs))
}

// Stop waits for a running purge to finish
func (s *CronService) Stop() {
	if !s.started {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info("cron service stopped")
}

// RunOnce runs every purger now. A failing job does not stop the others.
func (s *CronService) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	for name, job := range s.jobs {
		n, err := job.Purge(ctx)
		if err != nil {
			s.log.Error("purge failed", "job", name, "error", err)
			continue
		}
		if n > 0 {
			s.log.Info("purged expired rows", "job", name, "rows", n)
		}
	}
}
