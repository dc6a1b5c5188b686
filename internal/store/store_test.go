package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"ads-scheduler/internal/core/domain"
	"ads-scheduler/internal/core/port/porttest"
)

func TestReadThroughAndInvalidate(t *testing.T) {
	repo := porttest.NewFakeScheduleRepository()
	require.NoError(t, repo.Create(context.Background(), &domain.BudgetSchedule{
		ID:         uuid.New(),
		ShopID:     1,
		CampaignID: 7,
		DaysOfWeek: domain.AllDays(),
		IsActive:   true,
	}))

	s := New(repo)

	// first read goes to the repository, repeats are served from cache
	for i := 0; i < 3; i++ {
		schedules, err := s.ActiveSchedules(context.Background())
		require.NoError(t, err)
		require.Len(t, schedules, 1)
	}
	require.Equal(t, 1, repo.ListAllActiveCalls)

	// a write elsewhere invalidates; the next read refetches and sees it
	require.NoError(t, repo.Create(context.Background(), &domain.BudgetSchedule{
		ID:         uuid.New(),
		ShopID:     1,
		CampaignID: 8,
		DaysOfWeek: domain.AllDays(),
		IsActive:   true,
	}))
	s.Invalidate()

	schedules, err := s.ActiveSchedules(context.Background())
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	require.Equal(t, 2, repo.ListAllActiveCalls)
}
