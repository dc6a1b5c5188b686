package executor

import (
	"context"
	"log/slog"
	"time"

	"ads-scheduler/internal/core/domain"
	"ads-scheduler/internal/core/port"
	"ads-scheduler/internal/store"
)

// Executor scans due budget schedules on a fixed cadence and applies them
// against the platform, recording one execution log per attempt. A schedule
// is due when today matches its recurrence, the current minute-of-day falls
// inside its window and it has not already run in the current half-hour
// slot. Per-schedule failures are isolated: they are logged, recorded and
// the scan continues.
type Executor struct {
	store    *store.ScheduleStore
	repo     port.ScheduleRepository
	platform port.PlatformClient
	logger   *slog.Logger

	interval time.Duration
	// itemDelay spaces out the platform calls within a tick so the
	// downstream API is not hammered.
	itemDelay time.Duration
}

// New returns an executor ticking at the given interval.
func New(st *store.ScheduleStore, repo port.ScheduleRepository, platform port.PlatformClient, logger *slog.Logger, interval, itemDelay time.Duration) *Executor {
	return &Executor{
		store:     st,
		repo:      repo,
		platform:  platform,
		logger:    logger,
		interval:  interval,
		itemDelay: itemDelay,
	}
}

// Run ticks until ctx is cancelled. Tick errors are logged, never fatal.
func (e *Executor) Run(ctx context.Context) {
	e.logger.Info("executor started", slog.Duration("interval", e.interval))
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("executor stopped")
			return
		case <-ticker.C:
			if err := e.tickOnce(ctx, time.Now()); err != nil {
				e.logger.Error("executor tick failed", slog.Any("error", err))
			}
		}
	}
}

// tickOnce applies every schedule due at now.
func (e *Executor) tickOnce(ctx context.Context, now time.Time) error {
	schedules, err := e.store.ActiveSchedules(ctx)
	if err != nil {
		return err
	}
	minuteOfDay := now.Hour()*60 + now.Minute()
	applied := 0
	for i := range schedules {
		s := &schedules[i]
		if !s.EligibleOn(now) || !s.Covers(minuteOfDay) {
			continue
		}
		if ranInSlot(s, now, minuteOfDay) {
			continue
		}
		if applied > 0 && e.itemDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.itemDelay):
			}
		}
		e.apply(ctx, s, now)
		applied++
	}
	if applied > 0 {
		e.logger.Info("executor tick", slog.Int("applied", applied))
		e.store.Invalidate()
	}
	return nil
}

// ranInSlot reports whether the schedule already ran in the current
// half-hour slot of the current day, which suppresses re-firing across
// ticks shorter than a slot.
func ranInSlot(s *domain.BudgetSchedule, now time.Time, minuteOfDay int) bool {
	if s.LastRunAt == nil {
		return false
	}
	last := s.LastRunAt.In(now.Location())
	if last.Format(domain.DateLayout) != now.Format(domain.DateLayout) {
		return false
	}
	lastMinute := last.Hour()*60 + last.Minute()
	return lastMinute-lastMinute%30 == minuteOfDay-minuteOfDay%30
}

// apply performs one budget change and records the outcome. Failures are
// recorded as failed logs; the schedule is still stamped so it does not
// retry within the same slot.
func (e *Executor) apply(ctx context.Context, s *domain.BudgetSchedule, now time.Time) {
	log := &domain.BudgetLog{
		ShopID:       s.ShopID,
		CampaignID:   s.CampaignID,
		CampaignName: s.CampaignName,
		NewBudget:    s.Budget,
		Status:       domain.LogSuccess,
		ExecutedAt:   now.UTC(),
	}
	if err := e.platform.UpdateCampaignBudget(ctx, s.ShopID, s.CampaignID, s.Budget); err != nil {
		msg := err.Error()
		log.Status = domain.LogFailed
		log.ErrorMessage = &msg
		e.logger.Error("budget update failed",
			slog.Int64("campaign_id", s.CampaignID), slog.Any("error", err))
	}
	if err := e.repo.InsertLog(ctx, log); err != nil {
		e.logger.Error("insert execution log failed", slog.Any("error", err))
	}
	if err := e.repo.MarkRun(ctx, s.ID, now.UTC()); err != nil {
		e.logger.Error("mark run failed", slog.Any("error", err))
	}
}
