package port

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ads-scheduler/internal/core/domain"
)

// ValidationError marks input rejected before any persistence call. The HTTP
// layer maps it to a 400 response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Invalid builds a ValidationError from a format string.
func Invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// BulkScheduleParams is the user's selection from the bulk-budget dialog:
// which campaigns, which half-hour slots, the recurrence choice and the raw
// budget input.
type BulkScheduleParams struct {
	ShopID      int64
	CampaignIDs []int64
	Slots       []string // "HH:MM", minutes 00 or 30
	Daily       bool
	Dates       []string // ISO dates, required when Daily is false
	BudgetInput string   // may carry thousands separators
}

// AutoFailure describes one campaign the auto path could not schedule.
type AutoFailure struct {
	CampaignID int64  `json:"campaign_id"`
	Reason     string `json:"reason"`
}

// AutoScheduleResult reports partial completion of the per-campaign auto
// path.
type AutoScheduleResult struct {
	Created  int           `json:"created"`
	Failures []AutoFailure `json:"failures,omitempty"`
}

// ScheduleUseCase defines the business operations of the budget scheduler.
// This is the primary port into the application domain.
type ScheduleUseCase interface {
	// CreateSchedules converts a bulk selection into one schedule per
	// campaign and persists them atomically. It returns the number of
	// created records. Campaigns missing from the platform snapshot are
	// skipped.
	CreateSchedules(ctx context.Context, p BulkScheduleParams) (int, error)

	// CreateAutoSchedules is the campaign-by-campaign variant used for auto
	// campaigns. It enforces the configured minimum budget, inserts rows
	// sequentially with a fixed inter-item delay and reports per-item
	// failures instead of aborting.
	CreateAutoSchedules(ctx context.Context, p BulkScheduleParams) (*AutoScheduleResult, error)

	// ListSchedules returns a shop's active schedules, newest first.
	ListSchedules(ctx context.Context, shopID int64) ([]domain.BudgetSchedule, error)

	// DeleteSchedule removes a schedule permanently.
	DeleteSchedule(ctx context.Context, id uuid.UUID) error

	// DeactivateSchedule soft-removes a schedule. There is no way back; a
	// new record must be created to reactivate.
	DeactivateSchedule(ctx context.Context, id uuid.UUID) error

	// UpdateScheduleBudget edits the budget value of an existing schedule,
	// keeping its id and window.
	UpdateScheduleBudget(ctx context.Context, id uuid.UUID, budgetInput string) error

	// HasConflict reports whether an active schedule of the campaign
	// already covers the slot. Advisory only; creation never consults it.
	HasConflict(ctx context.Context, shopID, campaignID int64, hour, minute int) (bool, error)

	// OccupiedSlots lists the "HH:MM" slots covered by the campaign's
	// active schedules, for UI highlighting.
	OccupiedSlots(ctx context.Context, shopID, campaignID int64) ([]string, error)

	// RunNow applies one schedule immediately, ignoring its window, and
	// records the outcome.
	RunNow(ctx context.Context, id uuid.UUID) (*domain.BudgetLog, error)

	// ListLogs returns a page of a shop's execution records, newest first.
	ListLogs(ctx context.Context, shopID int64, limit, offset int) ([]domain.BudgetLog, error)
}
