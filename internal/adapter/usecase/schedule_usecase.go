package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ads-scheduler/internal/core/domain"
	"ads-scheduler/internal/core/port"
)

// TableSchedules is the change-notification topic for schedule rows.
const TableSchedules = "scheduled_ads_budget"

// ScheduleUseCase provides the business logic of the budget scheduler: it
// turns bulk selections into schedule rows, answers conflict queries and
// drives run-now execution. It orchestrates the repository, the platform
// client and the change notifier to implement port.ScheduleUseCase.
type ScheduleUseCase struct {
	repo     port.ScheduleRepository
	platform port.PlatformClient
	notifier port.ChangeNotifier

	// minAutoBudget is the minimum amount accepted by the auto variant.
	// Plain schedules allow any non-negative budget.
	minAutoBudget int64
	// autoItemDelay spaces out the sequential inserts of the auto path so
	// downstream consumers of the table are not hit with a burst.
	autoItemDelay time.Duration
}

// NewScheduleUseCase creates a use case with the provided collaborators.
func NewScheduleUseCase(repo port.ScheduleRepository, platform port.PlatformClient, notifier port.ChangeNotifier, minAutoBudget int64, autoItemDelay time.Duration) *ScheduleUseCase {
	return &ScheduleUseCase{
		repo:          repo,
		platform:      platform,
		notifier:      notifier,
		minAutoBudget: minAutoBudget,
		autoItemDelay: autoItemDelay,
	}
}

// buildSchedules validates the bulk parameters and expands them into one
// record per selected campaign. Campaigns absent from the platform snapshot
// are skipped. No persistence happens here.
func (u *ScheduleUseCase) buildSchedules(ctx context.Context, p port.BulkScheduleParams, minBudget int64) ([]domain.BudgetSchedule, error) {
	if len(p.CampaignIDs) == 0 {
		return nil, port.Invalid("no campaigns selected")
	}
	if len(p.Slots) == 0 {
		return nil, port.Invalid("no time slot selected")
	}
	budget, err := domain.ParseBudget(p.BudgetInput)
	if err != nil {
		return nil, port.Invalid("%v", err)
	}
	if budget < minBudget {
		return nil, port.Invalid("budget %s is below the minimum of %s",
			domain.FormatBudget(budget), domain.FormatBudget(minBudget))
	}
	window, err := domain.ComputeWindow(p.Slots)
	if err != nil {
		return nil, port.Invalid("%v", err)
	}

	var days []int
	var dates []string
	if p.Daily {
		days = domain.AllDays()
	} else {
		if len(p.Dates) == 0 {
			return nil, port.Invalid("no dates selected")
		}
		for _, d := range p.Dates {
			if _, err := time.Parse(domain.DateLayout, d); err != nil {
				return nil, port.Invalid("invalid date %q", d)
			}
		}
		dates = p.Dates
	}

	campaigns, err := u.platform.ListCampaigns(ctx, p.ShopID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Campaign, len(campaigns))
	for _, c := range campaigns {
		byID[c.ID] = c
	}

	now := time.Now().UTC()
	schedules := make([]domain.BudgetSchedule, 0, len(p.CampaignIDs))
	for _, cid := range p.CampaignIDs {
		c, ok := byID[cid]
		if !ok {
			continue
		}
		schedules = append(schedules, domain.BudgetSchedule{
			ID:            uuid.New(),
			ShopID:        p.ShopID,
			CampaignID:    cid,
			CampaignName:  c.Name,
			AdType:        c.Type,
			HourStart:     window.HourStart,
			MinuteStart:   window.MinuteStart,
			HourEnd:       window.HourEnd,
			MinuteEnd:     window.MinuteEnd,
			DaysOfWeek:    days,
			SpecificDates: dates,
			Budget:        budget,
			IsActive:      true,
			CreatedAt:     now,
		})
	}
	return schedules, nil
}

// CreateSchedules persists one schedule per selected campaign in a single
// atomic batch and returns the created count.
func (u *ScheduleUseCase) CreateSchedules(ctx context.Context, p port.BulkScheduleParams) (int, error) {
	schedules, err := u.buildSchedules(ctx, p, 0)
	if err != nil {
		return 0, err
	}
	if len(schedules) == 0 {
		return 0, nil
	}
	if err := u.repo.CreateBatch(ctx, schedules); err != nil {
		return 0, err
	}
	_ = u.notifier.Publish(ctx, TableSchedules)
	return len(schedules), nil
}

// CreateAutoSchedules inserts one schedule per campaign sequentially,
// isolating failures per item and pausing between inserts. It enforces the
// configured minimum budget.
func (u *ScheduleUseCase) CreateAutoSchedules(ctx context.Context, p port.BulkScheduleParams) (*port.AutoScheduleResult, error) {
	schedules, err := u.buildSchedules(ctx, p, u.minAutoBudget)
	if err != nil {
		return nil, err
	}
	res := &port.AutoScheduleResult{}
	for i := range schedules {
		if i > 0 && u.autoItemDelay > 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-time.After(u.autoItemDelay):
			}
		}
		if err := u.repo.Create(ctx, &schedules[i]); err != nil {
			res.Failures = append(res.Failures, port.AutoFailure{
				CampaignID: schedules[i].CampaignID,
				Reason:     err.Error(),
			})
			continue
		}
		res.Created++
	}
	if res.Created > 0 {
		_ = u.notifier.Publish(ctx, TableSchedules)
	}
	return res, nil
}

// ListSchedules returns a shop's active schedules, newest first.
func (u *ScheduleUseCase) ListSchedules(ctx context.Context, shopID int64) ([]domain.BudgetSchedule, error) {
	return u.repo.ListActive(ctx, shopID)
}

// DeleteSchedule removes a schedule permanently.
func (u *ScheduleUseCase) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = u.notifier.Publish(ctx, TableSchedules)
	return nil
}

// DeactivateSchedule flips a schedule to inactive. The transition is
// terminal; reactivation requires a new record.
func (u *ScheduleUseCase) DeactivateSchedule(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	_ = u.notifier.Publish(ctx, TableSchedules)
	return nil
}

// UpdateScheduleBudget edits the budget value of an existing schedule.
func (u *ScheduleUseCase) UpdateScheduleBudget(ctx context.Context, id uuid.UUID, budgetInput string) error {
	budget, err := domain.ParseBudget(budgetInput)
	if err != nil {
		return port.Invalid("%v", err)
	}
	if err := u.repo.UpdateBudget(ctx, id, budget); err != nil {
		return err
	}
	_ = u.notifier.Publish(ctx, TableSchedules)
	return nil
}

// HasConflict reports whether an active schedule of the campaign covers the
// slot. A linear scan over the campaign's schedules is enough at this scale.
func (u *ScheduleUseCase) HasConflict(ctx context.Context, shopID, campaignID int64, hour, minute int) (bool, error) {
	schedules, err := u.campaignSchedules(ctx, shopID, campaignID)
	if err != nil {
		return false, err
	}
	return domain.ConflictAt(schedules, hour, minute), nil
}

// OccupiedSlots lists every half-hour slot covered by the campaign's active
// schedules.
func (u *ScheduleUseCase) OccupiedSlots(ctx context.Context, shopID, campaignID int64) ([]string, error) {
	schedules, err := u.campaignSchedules(ctx, shopID, campaignID)
	if err != nil {
		return nil, err
	}
	var slots []string
	for m := 0; m < 24*60; m += 30 {
		if domain.ConflictAt(schedules, m/60, m%60) {
			slots = append(slots, domain.FormatSlot(m))
		}
	}
	return slots, nil
}

func (u *ScheduleUseCase) campaignSchedules(ctx context.Context, shopID, campaignID int64) ([]domain.BudgetSchedule, error) {
	all, err := u.repo.ListActive(ctx, shopID)
	if err != nil {
		return nil, err
	}
	var schedules []domain.BudgetSchedule
	for _, s := range all {
		if s.CampaignID == campaignID {
			schedules = append(schedules, s)
		}
	}
	return schedules, nil
}

// RunNow applies one schedule immediately, ignoring its window, and records
// the outcome as an execution log.
func (u *ScheduleUseCase) RunNow(ctx context.Context, id uuid.UUID) (*domain.BudgetLog, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	log := &domain.BudgetLog{
		ShopID:       s.ShopID,
		CampaignID:   s.CampaignID,
		CampaignName: s.CampaignName,
		NewBudget:    s.Budget,
		Status:       domain.LogSuccess,
		ExecutedAt:   time.Now().UTC(),
	}
	if err := u.platform.UpdateCampaignBudget(ctx, s.ShopID, s.CampaignID, s.Budget); err != nil {
		msg := err.Error()
		log.Status = domain.LogFailed
		log.ErrorMessage = &msg
	}
	if err := u.repo.InsertLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// ListLogs returns a page of a shop's execution records. The limit defaults
// to 50 and is capped at 200.
func (u *ScheduleUseCase) ListLogs(ctx context.Context, shopID int64, limit, offset int) ([]domain.BudgetLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return u.repo.ListLogs(ctx, shopID, limit, offset)
}
