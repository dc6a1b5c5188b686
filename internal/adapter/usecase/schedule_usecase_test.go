package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"ads-scheduler/internal/core/domain"
	"ads-scheduler/internal/core/port"
	"ads-scheduler/internal/core/port/porttest"
)

const testShop = int64(42)

func newTestUseCase(campaigns ...domain.Campaign) (*ScheduleUseCase, *porttest.FakeScheduleRepository, *porttest.FakePlatformClient, *porttest.FakeNotifier) {
	repo := porttest.NewFakeScheduleRepository()
	platform := porttest.NewFakePlatformClient(campaigns...)
	notifier := porttest.NewFakeNotifier()
	svc := NewScheduleUseCase(repo, platform, notifier, 100_000, 0)
	return svc, repo, platform, notifier
}

func bulkParams() port.BulkScheduleParams {
	return port.BulkScheduleParams{
		ShopID:      testShop,
		CampaignIDs: []int64{101, 102},
		Slots:       []string{"08:00", "08:30"},
		Daily:       true,
		BudgetInput: "1.500.000",
	}
}

// TestBulkCreateSchedules covers the whole bulk path: two campaigns, two
// adjacent morning slots, daily recurrence and a separator-formatted budget
// must yield two identical active rows.
func TestBulkCreateSchedules(t *testing.T) {
	svc, repo, _, notifier := newTestUseCase(
		domain.Campaign{ID: 101, Name: "Search ads", Type: "manual"},
		domain.Campaign{ID: 102, Name: "Discovery ads", Type: "auto"},
	)

	created, err := svc.CreateSchedules(context.Background(), bulkParams())
	require.NoError(t, err)
	require.Equal(t, 2, created)

	rows, err := repo.ListActive(context.Background(), testShop)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, s := range rows {
		require.Equal(t, 8, s.HourStart)
		require.Equal(t, 0, s.MinuteStart)
		require.Equal(t, 9, s.HourEnd)
		require.Equal(t, 0, s.MinuteEnd)
		require.Equal(t, int64(1500000), s.Budget)
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, s.DaysOfWeek)
		require.Empty(t, s.SpecificDates)
		require.True(t, s.IsActive)
		require.NoError(t, s.Validate())
	}
	// names and types are denormalized from the platform snapshot
	byCampaign := map[int64]domain.BudgetSchedule{}
	for _, s := range rows {
		byCampaign[s.CampaignID] = s
	}
	require.Equal(t, "Search ads", byCampaign[101].CampaignName)
	require.Equal(t, "auto", byCampaign[102].AdType)

	require.Equal(t, []string{TableSchedules}, notifier.Published())
}

func TestBulkCreateValidation(t *testing.T) {
	svc, repo, _, _ := newTestUseCase(domain.Campaign{ID: 101, Name: "A"})

	cases := []struct {
		name   string
		mutate func(*port.BulkScheduleParams)
	}{
		{"no campaigns", func(p *port.BulkScheduleParams) { p.CampaignIDs = nil }},
		{"no slots", func(p *port.BulkScheduleParams) { p.Slots = nil }},
		{"bad budget", func(p *port.BulkScheduleParams) { p.BudgetInput = "abc" }},
		{"bad slot", func(p *port.BulkScheduleParams) { p.Slots = []string{"08:15"} }},
		{"dates missing", func(p *port.BulkScheduleParams) { p.Daily = false }},
		{"bad date", func(p *port.BulkScheduleParams) {
			p.Daily = false
			p.Dates = []string{"25/08/2026"}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := bulkParams()
			tc.mutate(&p)
			_, err := svc.CreateSchedules(context.Background(), p)
			var vErr *port.ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}

	// validation failures must not create anything
	rows, err := repo.ListActive(context.Background(), testShop)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestBulkCreateSpecificDates(t *testing.T) {
	svc, repo, _, _ := newTestUseCase(domain.Campaign{ID: 101, Name: "A"})

	p := bulkParams()
	p.CampaignIDs = []int64{101}
	p.Daily = false
	p.Dates = []string{"2026-08-26", "2026-08-27"}

	created, err := svc.CreateSchedules(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	rows, _ := repo.ListActive(context.Background(), testShop)
	require.Len(t, rows, 1)
	require.Empty(t, rows[0].DaysOfWeek)
	require.Equal(t, []string{"2026-08-26", "2026-08-27"}, rows[0].SpecificDates)
}

// Campaigns missing from the platform snapshot are skipped, not failed.
func TestBulkCreateSkipsUnknownCampaigns(t *testing.T) {
	svc, repo, _, _ := newTestUseCase(domain.Campaign{ID: 101, Name: "A"})

	created, err := svc.CreateSchedules(context.Background(), bulkParams())
	require.NoError(t, err)
	require.Equal(t, 1, created)

	rows, _ := repo.ListActive(context.Background(), testShop)
	require.Len(t, rows, 1)
	require.Equal(t, int64(101), rows[0].CampaignID)
}

func TestBulkCreateBatchFailureCreatesNothing(t *testing.T) {
	svc, repo, _, notifier := newTestUseCase(domain.Campaign{ID: 101, Name: "A"})
	repo.BatchErr = errors.New("deadlock detected")

	_, err := svc.CreateSchedules(context.Background(), bulkParams())
	require.ErrorContains(t, err, "deadlock detected")

	rows, _ := repo.ListActive(context.Background(), testShop)
	require.Empty(t, rows)
	require.Empty(t, notifier.Published())
}

func TestAutoCreateEnforcesMinimumBudget(t *testing.T) {
	svc, _, _, _ := newTestUseCase(domain.Campaign{ID: 101, Name: "A", Type: "auto"})

	p := bulkParams()
	p.BudgetInput = "50.000" // below the 100.000 minimum

	_, err := svc.CreateAutoSchedules(context.Background(), p)
	var vErr *port.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Reason, "minimum")
}

// The auto path isolates per-item failures and reports partial completion.
func TestAutoCreatePartialFailure(t *testing.T) {
	svc, repo, _, _ := newTestUseCase(
		domain.Campaign{ID: 101, Name: "A", Type: "auto"},
		domain.Campaign{ID: 102, Name: "B", Type: "auto"},
		domain.Campaign{ID: 103, Name: "C", Type: "auto"},
	)
	repo.CreateErr = func(campaignID int64) error {
		if campaignID == 102 {
			return errors.New("unique violation")
		}
		return nil
	}

	p := bulkParams()
	p.CampaignIDs = []int64{101, 102, 103}

	res, err := svc.CreateAutoSchedules(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, 2, res.Created)
	require.Len(t, res.Failures, 1)
	require.Equal(t, int64(102), res.Failures[0].CampaignID)
	require.Contains(t, res.Failures[0].Reason, "unique violation")
}

func TestConflictQueries(t *testing.T) {
	svc, _, _, _ := newTestUseCase(domain.Campaign{ID: 7, Name: "A"})

	p := bulkParams()
	p.CampaignIDs = []int64{7}
	p.Slots = []string{"09:00", "09:30"} // window 09:00–10:00
	_, err := svc.CreateSchedules(context.Background(), p)
	require.NoError(t, err)

	for _, tc := range []struct {
		hour, minute int
		want         bool
	}{
		{9, 0, true},
		{9, 30, true},
		{10, 0, false},
		{8, 30, false},
	} {
		got, err := svc.HasConflict(context.Background(), testShop, 7, tc.hour, tc.minute)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "%02d:%02d", tc.hour, tc.minute)
	}

	// another campaign is unaffected
	got, err := svc.HasConflict(context.Background(), testShop, 8, 9, 0)
	require.NoError(t, err)
	require.False(t, got)

	slots, err := svc.OccupiedSlots(context.Background(), testShop, 7)
	require.NoError(t, err)
	require.Equal(t, []string{"09:00", "09:30"}, slots)
}

// Deactivation is terminal: the schedule leaves the active list and stops
// participating in conflict checks.
func TestDeactivateIsTerminal(t *testing.T) {
	svc, repo, _, _ := newTestUseCase(domain.Campaign{ID: 7, Name: "A"})

	p := bulkParams()
	p.CampaignIDs = []int64{7}
	p.Slots = []string{"09:00"}
	_, err := svc.CreateSchedules(context.Background(), p)
	require.NoError(t, err)

	rows, _ := repo.ListActive(context.Background(), testShop)
	require.Len(t, rows, 1)
	id := rows[0].ID

	require.NoError(t, svc.DeactivateSchedule(context.Background(), id))

	rows, err = svc.ListSchedules(context.Background(), testShop)
	require.NoError(t, err)
	require.Empty(t, rows)

	conflict, err := svc.HasConflict(context.Background(), testShop, 7, 9, 0)
	require.NoError(t, err)
	require.False(t, conflict)
}

func TestDeleteUnknownSchedule(t *testing.T) {
	svc, _, _, _ := newTestUseCase()
	err := svc.DeleteSchedule(context.Background(), uuid.New())
	require.ErrorIs(t, err, port.ErrNotFound)
}

func TestUpdateScheduleBudget(t *testing.T) {
	svc, repo, _, _ := newTestUseCase(domain.Campaign{ID: 7, Name: "A"})

	p := bulkParams()
	p.CampaignIDs = []int64{7}
	_, err := svc.CreateSchedules(context.Background(), p)
	require.NoError(t, err)

	rows, _ := repo.ListActive(context.Background(), testShop)
	id := rows[0].ID

	require.NoError(t, svc.UpdateScheduleBudget(context.Background(), id, "2.000.000"))

	updated, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, int64(2000000), updated.Budget)
	// the edit keeps id and window
	require.Equal(t, rows[0].HourStart, updated.HourStart)
	require.Equal(t, rows[0].HourEnd, updated.HourEnd)

	err = svc.UpdateScheduleBudget(context.Background(), id, "n/a")
	var vErr *port.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestRunNow(t *testing.T) {
	svc, repo, platform, _ := newTestUseCase(domain.Campaign{ID: 7, Name: "A"})

	p := bulkParams()
	p.CampaignIDs = []int64{7}
	_, err := svc.CreateSchedules(context.Background(), p)
	require.NoError(t, err)

	rows, _ := repo.ListActive(context.Background(), testShop)
	id := rows[0].ID

	log, err := svc.RunNow(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, domain.LogSuccess, log.Status)
	require.Equal(t, int64(1500000), log.NewBudget)
	require.Len(t, platform.Updates(), 1)
	require.Equal(t, porttest.BudgetUpdate{ShopID: testShop, CampaignID: 7, Budget: 1500000}, platform.Updates()[0])

	// a platform failure is recorded, not retried
	platform.UpdateErr = map[int64]error{7: errors.New("rate limited")}
	log, err = svc.RunNow(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, domain.LogFailed, log.Status)
	require.NotNil(t, log.ErrorMessage)
	require.Contains(t, *log.ErrorMessage, "rate limited")

	_, err = svc.RunNow(context.Background(), uuid.New())
	require.ErrorIs(t, err, port.ErrNotFound)
}

func TestListLogsDefaults(t *testing.T) {
	svc, repo, _, _ := newTestUseCase()

	for i := 0; i < 60; i++ {
		require.NoError(t, repo.InsertLog(context.Background(), &domain.BudgetLog{
			ShopID:     testShop,
			CampaignID: int64(i),
			Status:     domain.LogSuccess,
		}))
	}

	logs, err := svc.ListLogs(context.Background(), testShop, 0, 0)
	require.NoError(t, err)
	require.Len(t, logs, 50)

	logs, err = svc.ListLogs(context.Background(), testShop, 0, 50)
	require.NoError(t, err)
	require.Len(t, logs, 10)
}
