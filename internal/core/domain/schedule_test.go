package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func activeSchedule(campaignID int64, hourStart, minuteStart, hourEnd, minuteEnd int) BudgetSchedule {
	return BudgetSchedule{
		ID:          uuid.New(),
		ShopID:      1,
		CampaignID:  campaignID,
		HourStart:   hourStart,
		MinuteStart: minuteStart,
		HourEnd:     hourEnd,
		MinuteEnd:   minuteEnd,
		DaysOfWeek:  AllDays(),
		Budget:      100000,
		IsActive:    true,
	}
}

func TestConflictAt(t *testing.T) {
	// one active schedule covering [540, 600), i.e. 09:00–10:00
	schedules := []BudgetSchedule{activeSchedule(7, 9, 0, 10, 0)}

	require.True(t, ConflictAt(schedules, 9, 0))
	require.True(t, ConflictAt(schedules, 9, 30))
	require.False(t, ConflictAt(schedules, 10, 0))
	require.False(t, ConflictAt(schedules, 8, 30))
}

func TestConflictIgnoresInactive(t *testing.T) {
	s := activeSchedule(7, 9, 0, 10, 0)
	s.IsActive = false
	require.False(t, ConflictAt([]BudgetSchedule{s}, 9, 0))
}

func TestCoversMidnightEnd(t *testing.T) {
	s := activeSchedule(7, 23, 30, 24, 0)
	require.True(t, s.Covers(23*60+30))
	require.False(t, s.Covers(0))
}

func TestEligibleOn(t *testing.T) {
	// 2026-08-25 is a Tuesday (weekday 2)
	tue := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	daily := activeSchedule(1, 9, 0, 10, 0)
	require.True(t, daily.EligibleOn(tue))

	weekend := activeSchedule(1, 9, 0, 10, 0)
	weekend.DaysOfWeek = []int{0, 6}
	require.False(t, weekend.EligibleOn(tue))

	dated := activeSchedule(1, 9, 0, 10, 0)
	dated.DaysOfWeek = nil
	dated.SpecificDates = []string{"2026-08-25"}
	require.True(t, dated.EligibleOn(tue))
	require.False(t, dated.EligibleOn(tue.AddDate(0, 0, 1)))
}

func TestValidateRecurrenceExclusivity(t *testing.T) {
	s := activeSchedule(1, 9, 0, 10, 0)
	require.NoError(t, s.Validate())

	both := s
	both.SpecificDates = []string{"2026-08-25"}
	require.Error(t, both.Validate())

	neither := s
	neither.DaysOfWeek = nil
	require.Error(t, neither.Validate())

	dates := s
	dates.DaysOfWeek = nil
	dates.SpecificDates = []string{"2026-08-25"}
	require.NoError(t, dates.Validate())
}

func TestValidateWindow(t *testing.T) {
	backwards := activeSchedule(1, 10, 0, 9, 0)
	require.Error(t, backwards.Validate())

	empty := activeSchedule(1, 9, 0, 9, 0)
	require.Error(t, empty.Validate())

	quarter := activeSchedule(1, 9, 15, 10, 0)
	require.Error(t, quarter.Validate())

	negBudget := activeSchedule(1, 9, 0, 10, 0)
	negBudget.Budget = -1
	require.Error(t, negBudget.Validate())
}
