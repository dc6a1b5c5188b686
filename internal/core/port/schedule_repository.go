package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"ads-scheduler/internal/core/domain"
)

// ErrNotFound is returned when a schedule id does not exist.
var ErrNotFound = errors.New("schedule not found")

// ScheduleRepository defines the persistence layer for budget schedules and
// execution logs. It is an outbound port in hexagonal architecture. The
// batch insert must be atomic; callers rely on all-or-nothing behaviour.
type ScheduleRepository interface {
	// CreateBatch inserts all schedules in one transaction.
	CreateBatch(ctx context.Context, schedules []domain.BudgetSchedule) error
	// Create inserts a single schedule. Used by the per-campaign auto path
	// so that one failure does not abort the rest.
	Create(ctx context.Context, s *domain.BudgetSchedule) error
	// ListActive returns the active schedules of a shop, newest first.
	ListActive(ctx context.Context, shopID int64) ([]domain.BudgetSchedule, error)
	// ListAllActive returns active schedules across all shops, for the
	// executor's due scan.
	ListAllActive(ctx context.Context) ([]domain.BudgetSchedule, error)
	// GetByID returns a schedule or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetSchedule, error)
	// Delete removes a schedule row.
	Delete(ctx context.Context, id uuid.UUID) error
	// Deactivate flips is_active to false. The transition is terminal.
	Deactivate(ctx context.Context, id uuid.UUID) error
	// UpdateBudget changes the budget value in place, keeping id and window.
	UpdateBudget(ctx context.Context, id uuid.UUID, budget int64) error
	// MarkRun stamps last_run_at after an execution attempt.
	MarkRun(ctx context.Context, id uuid.UUID, at time.Time) error

	// InsertLog appends one immutable execution record.
	InsertLog(ctx context.Context, log *domain.BudgetLog) error
	// ListLogs returns a shop's execution records, newest first.
	ListLogs(ctx context.Context, shopID int64, limit, offset int) ([]domain.BudgetLog, error)
}
