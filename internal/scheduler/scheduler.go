package scheduler

import (
	"context"
	"log"
	"time"

	"labo-backend/internal/services"
	"labo-backend/internal/timeutil"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic maintenance jobs: rolling started PENDING
// events to IN_PROGRESS and pruning stale 2FA attempt logs.
type Scheduler struct {
	cron   *cron.Cron
	events *services.EventService
	totp   *services.TOTPService
}

func New(events *services.EventService, totp *services.TOTPService) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(timeutil.Paris)),
		events: events,
		totp:   totp,
	}
}

// Start registers the jobs and launches the cron loop.
func (s *Scheduler) Start() error {
	// Every 5 minutes: flip PENDING events whose first slot has started.
	if _, err := s.cron.AddFunc("*/5 * * * *", s.rollStartedEvents); err != nil {
		return err
	}
	// Nightly: drop 2FA verification attempts past the retention window.
	if _, err := s.cron.AddFunc("30 3 * * *", s.cleanupTOTPAttempts); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("[Scheduler] started (%d jobs)", len(s.cron.Entries()))
	return nil
}

// Stop halts the cron loop, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Printf("[Scheduler] stopped")
}

func (s *Scheduler) rollStartedEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.events.RollPendingToInProgress(ctx); err != nil {
		log.Printf("[Scheduler] roll started events: %v", err)
	}
}

func (s *Scheduler) cleanupTOTPAttempts() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := s.totp.CleanupOldAttempts(ctx); err != nil {
		log.Printf("[Scheduler] cleanup 2FA attempts: %v", err)
	}
}
