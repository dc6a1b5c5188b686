package store

import (
	"context"
	"sync"

	"ads-scheduler/internal/core/domain"
	"ads-scheduler/internal/core/port"
)

// ScheduleStore is a read-through cache of the active schedules across all
// shops. Reads return the cached rows until Invalidate marks them stale;
// the next read then goes back to the repository. The change notifier is
// expected to call Invalidate, so writers anywhere in the system refresh
// every reader.
type ScheduleStore struct {
	repo port.ScheduleRepository

	mu     sync.Mutex
	cached []domain.BudgetSchedule
	fresh  bool
}

// New returns a store that starts stale, so the first read hits the
// repository.
func New(repo port.ScheduleRepository) *ScheduleStore {
	return &ScheduleStore{repo: repo}
}

// ActiveSchedules returns the active schedules, reading through to the
// repository when the cache is stale. The returned slice is shared; callers
// must not mutate it.
func (s *ScheduleStore) ActiveSchedules(ctx context.Context) ([]domain.BudgetSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fresh {
		return s.cached, nil
	}
	schedules, err := s.repo.ListAllActive(ctx)
	if err != nil {
		return nil, err
	}
	s.cached = schedules
	s.fresh = true
	return schedules, nil
}

// Invalidate marks the cache stale. The next read refetches.
func (s *ScheduleStore) Invalidate() {
	s.mu.Lock()
	s.fresh = false
	s.mu.Unlock()
}
