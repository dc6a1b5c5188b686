// Package porttest provides hand-written in-memory fakes of the outbound
// ports for use in tests.
package porttest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"ads-scheduler/internal/core/domain"
	"ads-scheduler/internal/core/port"
)

// FakeScheduleRepository is an in-memory port.ScheduleRepository. Schedules
// keep insertion order; list methods return newest first like the real
// repository.
type FakeScheduleRepository struct {
	mu        sync.Mutex
	schedules []*domain.BudgetSchedule
	logs      []domain.BudgetLog

	// CreateErr, when set, fails Create for the returned campaigns.
	CreateErr func(campaignID int64) error
	// BatchErr, when set, fails CreateBatch entirely.
	BatchErr error

	// ListAllActiveCalls counts repository reads, for cache tests.
	ListAllActiveCalls int
}

func NewFakeScheduleRepository() *FakeScheduleRepository {
	return &FakeScheduleRepository{}
}

func (f *FakeScheduleRepository) CreateBatch(_ context.Context, schedules []domain.BudgetSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BatchErr != nil {
		return f.BatchErr
	}
	for i := range schedules {
		s := schedules[i]
		f.schedules = append(f.schedules, &s)
	}
	return nil
}

func (f *FakeScheduleRepository) Create(_ context.Context, s *domain.BudgetSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		if err := f.CreateErr(s.CampaignID); err != nil {
			return err
		}
	}
	cp := *s
	f.schedules = append(f.schedules, &cp)
	return nil
}

func (f *FakeScheduleRepository) ListActive(_ context.Context, shopID int64) ([]domain.BudgetSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BudgetSchedule
	for i := len(f.schedules) - 1; i >= 0; i-- {
		s := f.schedules[i]
		if s.ShopID == shopID && s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *FakeScheduleRepository) ListAllActive(_ context.Context) ([]domain.BudgetSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListAllActiveCalls++
	var out []domain.BudgetSchedule
	for i := len(f.schedules) - 1; i >= 0; i-- {
		if f.schedules[i].IsActive {
			out = append(out, *f.schedules[i])
		}
	}
	return out, nil
}

func (f *FakeScheduleRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.BudgetSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.schedules {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, port.ErrNotFound
}

func (f *FakeScheduleRepository) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.schedules {
		if s.ID == id {
			f.schedules = append(f.schedules[:i], f.schedules[i+1:]...)
			return nil
		}
	}
	return port.ErrNotFound
}

func (f *FakeScheduleRepository) Deactivate(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.schedules {
		if s.ID == id {
			s.IsActive = false
			return nil
		}
	}
	return port.ErrNotFound
}

func (f *FakeScheduleRepository) UpdateBudget(_ context.Context, id uuid.UUID, budget int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.schedules {
		if s.ID == id {
			s.Budget = budget
			return nil
		}
	}
	return port.ErrNotFound
}

func (f *FakeScheduleRepository) MarkRun(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.schedules {
		if s.ID == id {
			t := at
			s.LastRunAt = &t
			return nil
		}
	}
	return port.ErrNotFound
}

func (f *FakeScheduleRepository) InsertLog(_ context.Context, log *domain.BudgetLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	log.ID = int64(len(f.logs) + 1)
	f.logs = append(f.logs, *log)
	return nil
}

func (f *FakeScheduleRepository) ListLogs(_ context.Context, shopID int64, limit, offset int) ([]domain.BudgetLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []domain.BudgetLog
	for i := len(f.logs) - 1; i >= 0; i-- {
		if f.logs[i].ShopID == shopID {
			all = append(all, f.logs[i])
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Logs returns a copy of all recorded execution logs.
func (f *FakeScheduleRepository) Logs() []domain.BudgetLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.BudgetLog, len(f.logs))
	copy(out, f.logs)
	return out
}

// BudgetUpdate is one recorded platform call.
type BudgetUpdate struct {
	ShopID     int64
	CampaignID int64
	Budget     int64
}

// FakePlatformClient is an in-memory port.PlatformClient.
type FakePlatformClient struct {
	mu sync.Mutex

	// Campaigns is the snapshot returned by ListCampaigns.
	Campaigns []domain.Campaign
	// UpdateErr fails UpdateCampaignBudget for the listed campaigns.
	UpdateErr map[int64]error

	updates []BudgetUpdate
}

func NewFakePlatformClient(campaigns ...domain.Campaign) *FakePlatformClient {
	return &FakePlatformClient{Campaigns: campaigns}
}

func (f *FakePlatformClient) ListCampaigns(_ context.Context, _ int64) ([]domain.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Campaigns, nil
}

func (f *FakePlatformClient) UpdateCampaignBudget(_ context.Context, shopID, campaignID, budget int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.UpdateErr[campaignID]; err != nil {
		return err
	}
	f.updates = append(f.updates, BudgetUpdate{ShopID: shopID, CampaignID: campaignID, Budget: budget})
	return nil
}

// Updates returns a copy of the successful budget calls.
func (f *FakePlatformClient) Updates() []BudgetUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]BudgetUpdate, len(f.updates))
	copy(out, f.updates)
	return out
}

// FakeNotifier is an in-memory port.ChangeNotifier. Published events are
// recorded and delivered synchronously to subscribers.
type FakeNotifier struct {
	mu        sync.Mutex
	published []string
	subs      map[string][]func()
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{subs: make(map[string][]func())}
}

func (f *FakeNotifier) Publish(_ context.Context, table string) error {
	f.mu.Lock()
	f.published = append(f.published, table)
	fns := append([]func(){}, f.subs[table]...)
	f.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return nil
}

func (f *FakeNotifier) Subscribe(_ context.Context, table string, fn func()) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[table] = append(f.subs[table], fn)
	return func() {}, nil
}

// Published returns the tables published so far.
func (f *FakeNotifier) Published() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.published))
	copy(out, f.published)
	return out
}
