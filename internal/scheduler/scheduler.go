// Package scheduler runs the periodic snapshot refresh on a cron schedule
// with seconds resolution, mirroring the polling cadence of the frontend it
// replaces.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/loopital/ledger-backend/internal/service"
)

// Scheduler drives periodic snapshot refreshes.
type Scheduler struct {
	cron    *cron.Cron
	refresh *service.RefreshService
	timeout time.Duration
}

// New creates a scheduler that refreshes the snapshot on the given cron
// expression (six fields, seconds first).
func New(refresh *service.RefreshService, schedule string, timeout time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		refresh: refresh,
		timeout: timeout,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the refresh cycle. The first refresh runs immediately so the
// service never serves an empty snapshot longer than one upstream round trip.
func (s *Scheduler) Start() {
	go s.run()
	s.cron.Start()
}

// Stop halts scheduling and waits for an in-flight refresh to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.refresh.Refresh(ctx); err != nil {
		log.Printf("Scheduled refresh failed: %v", err)
	}
}
