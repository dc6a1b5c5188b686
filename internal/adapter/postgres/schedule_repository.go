package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ads-scheduler/internal/core/domain"
	"ads-scheduler/internal/core/port"
)

// ScheduleRepository implements port.ScheduleRepository using pgxpool for
// PostgreSQL.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository returns a new repository instance.
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

const scheduleColumns = `id, shop_id, campaign_id, campaign_name, ad_type,
    hour_start, minute_start, hour_end, minute_end,
    days_of_week, specific_dates, budget, is_active, last_run_at, created_at`

const insertScheduleSQL = `INSERT INTO scheduled_ads_budget
    (id, shop_id, campaign_id, campaign_name, ad_type,
     hour_start, minute_start, hour_end, minute_end,
     days_of_week, specific_dates, budget, is_active, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`

// CreateBatch inserts all schedules inside a single transaction so that the
// bulk path stays all-or-nothing.
func (r *ScheduleRepository) CreateBatch(ctx context.Context, schedules []domain.BudgetSchedule) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()
	for i := range schedules {
		if _, err = tx.Exec(ctx, insertScheduleSQL, insertArgs(&schedules[i])...); err != nil {
			return err
		}
	}
	return nil
}

// Create inserts a single schedule.
func (r *ScheduleRepository) Create(ctx context.Context, s *domain.BudgetSchedule) error {
	_, err := r.pool.Exec(ctx, insertScheduleSQL, insertArgs(s)...)
	return err
}

func insertArgs(s *domain.BudgetSchedule) []any {
	return []any{
		s.ID, s.ShopID, s.CampaignID, s.CampaignName, s.AdType,
		s.HourStart, s.MinuteStart, s.HourEnd, s.MinuteEnd,
		daysToDB(s.DaysOfWeek), datesToDB(s.SpecificDates),
		s.Budget, s.IsActive, s.CreatedAt,
	}
}

// ListActive returns the active schedules of a shop, newest first.
func (r *ScheduleRepository) ListActive(ctx context.Context, shopID int64) ([]domain.BudgetSchedule, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+scheduleColumns+`
        FROM scheduled_ads_budget
        WHERE shop_id = $1 AND is_active = TRUE
        ORDER BY created_at DESC`, shopID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanSchedule)
}

// ListAllActive returns active schedules across all shops for the executor.
func (r *ScheduleRepository) ListAllActive(ctx context.Context) ([]domain.BudgetSchedule, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+scheduleColumns+`
        FROM scheduled_ads_budget
        WHERE is_active = TRUE
        ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanSchedule)
}

// GetByID returns a schedule or port.ErrNotFound.
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BudgetSchedule, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+scheduleColumns+`
        FROM scheduled_ads_budget WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	s, err := pgx.CollectOneRow(rows, scanSchedule)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a schedule row by id.
func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scheduled_ads_budget WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// Deactivate flips is_active to false.
func (r *ScheduleRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE scheduled_ads_budget SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// UpdateBudget changes the budget value in place.
func (r *ScheduleRepository) UpdateBudget(ctx context.Context, id uuid.UUID, budget int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE scheduled_ads_budget SET budget = $1 WHERE id = $2`, budget, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// MarkRun stamps last_run_at after an execution attempt.
func (r *ScheduleRepository) MarkRun(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE scheduled_ads_budget SET last_run_at = $1 WHERE id = $2`, at, id)
	return err
}

// InsertLog appends one execution record.
func (r *ScheduleRepository) InsertLog(ctx context.Context, log *domain.BudgetLog) error {
	return r.pool.QueryRow(ctx, `INSERT INTO ads_budget_logs
        (shop_id, campaign_id, campaign_name, new_budget, status, error_message, executed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		log.ShopID, log.CampaignID, log.CampaignName, log.NewBudget,
		string(log.Status), log.ErrorMessage, log.ExecutedAt,
	).Scan(&log.ID)
}

// ListLogs returns a page of a shop's execution records, newest first.
func (r *ScheduleRepository) ListLogs(ctx context.Context, shopID int64, limit, offset int) ([]domain.BudgetLog, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, shop_id, campaign_id, campaign_name,
        new_budget, status, error_message, executed_at
        FROM ads_budget_logs
        WHERE shop_id = $1
        ORDER BY executed_at DESC
        LIMIT $2 OFFSET $3`, shopID, limit, offset)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BudgetLog, error) {
		var (
			l      domain.BudgetLog
			status string
		)
		err := row.Scan(&l.ID, &l.ShopID, &l.CampaignID, &l.CampaignName,
			&l.NewBudget, &status, &l.ErrorMessage, &l.ExecutedAt)
		l.Status = domain.LogStatus(status)
		return l, err
	})
}

func scanSchedule(row pgx.CollectableRow) (domain.BudgetSchedule, error) {
	var (
		s     domain.BudgetSchedule
		days  []int32
		dates []string
	)
	err := row.Scan(&s.ID, &s.ShopID, &s.CampaignID, &s.CampaignName, &s.AdType,
		&s.HourStart, &s.MinuteStart, &s.HourEnd, &s.MinuteEnd,
		&days, &dates, &s.Budget, &s.IsActive, &s.LastRunAt, &s.CreatedAt)
	if err != nil {
		return s, err
	}
	s.DaysOfWeek = daysFromDB(days)
	s.SpecificDates = dates
	return s, nil
}

// daysToDB converts the weekday list into the int4[] shape pgx encodes. A
// nil result keeps the column NULL for specific-date schedules.
func daysToDB(days []int) []int32 {
	if len(days) == 0 {
		return nil
	}
	out := make([]int32, len(days))
	for i, d := range days {
		out[i] = int32(d)
	}
	return out
}

func daysFromDB(days []int32) []int {
	if len(days) == 0 {
		return nil
	}
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}

func datesToDB(dates []string) []string {
	if len(dates) == 0 {
		return nil
	}
	return dates
}
