package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// BudgetSchedule is a persisted intent to change a campaign's daily budget
// during a time window. The window is half-open, [start, end) in
// minutes-of-day, with minute granularity of 0 or 30. Exactly one of
// DaysOfWeek (daily recurrence) or SpecificDates must be populated.
// CampaignName and AdType are snapshots taken at creation time and are not
// kept in sync with the platform.
type BudgetSchedule struct {
	ID            uuid.UUID
	ShopID        int64
	CampaignID    int64
	CampaignName  string
	AdType        string // auto, manual
	HourStart     int
	MinuteStart   int
	HourEnd       int
	MinuteEnd     int
	DaysOfWeek    []int    // 0 = Sunday .. 6 = Saturday
	SpecificDates []string // ISO dates, YYYY-MM-DD
	Budget        int64
	IsActive      bool
	LastRunAt     *time.Time
	CreatedAt     time.Time
}

// StartMinutes returns the window start in minutes-of-day.
func (s *BudgetSchedule) StartMinutes() int { return s.HourStart*60 + s.MinuteStart }

// EndMinutes returns the window end in minutes-of-day. A window ending at
// midnight yields 1440.
func (s *BudgetSchedule) EndMinutes() int { return s.HourEnd*60 + s.MinuteEnd }

// Covers reports whether the half-open window contains the given
// minute-of-day.
func (s *BudgetSchedule) Covers(minuteOfDay int) bool {
	return minuteOfDay >= s.StartMinutes() && minuteOfDay < s.EndMinutes()
}

// EligibleOn reports whether the schedule may run on the calendar day of t.
// Specific dates take precedence; otherwise the weekday list decides.
func (s *BudgetSchedule) EligibleOn(t time.Time) bool {
	if len(s.SpecificDates) > 0 {
		return slices.Contains(s.SpecificDates, t.Format(DateLayout))
	}
	return slices.Contains(s.DaysOfWeek, int(t.Weekday()))
}

// Validate checks the structural invariants of a schedule before it is
// persisted.
func (s *BudgetSchedule) Validate() error {
	if s.CampaignID == 0 {
		return errors.New("schedule has no campaign")
	}
	if s.MinuteStart != 0 && s.MinuteStart != 30 {
		return fmt.Errorf("start minute must be 0 or 30, got %d", s.MinuteStart)
	}
	if s.MinuteEnd != 0 && s.MinuteEnd != 30 {
		return fmt.Errorf("end minute must be 0 or 30, got %d", s.MinuteEnd)
	}
	if s.HourStart < 0 || s.HourStart > 23 {
		return fmt.Errorf("start hour out of range: %d", s.HourStart)
	}
	if s.HourEnd < 0 || s.HourEnd > 24 {
		return fmt.Errorf("end hour out of range: %d", s.HourEnd)
	}
	if s.StartMinutes() >= s.EndMinutes() {
		return errors.New("window end must be after window start")
	}
	if s.Budget < 0 {
		return errors.New("budget must not be negative")
	}
	if len(s.DaysOfWeek) > 0 && len(s.SpecificDates) > 0 {
		return errors.New("schedule cannot have both weekdays and specific dates")
	}
	if len(s.DaysOfWeek) == 0 && len(s.SpecificDates) == 0 {
		return errors.New("schedule needs either weekdays or specific dates")
	}
	for _, d := range s.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("weekday out of range: %d", d)
		}
	}
	for _, d := range s.SpecificDates {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q", d)
		}
	}
	return nil
}

// ConflictAt reports whether any active schedule in the list covers the slot
// identified by hour and minute. Inactive schedules never conflict. The scan
// is linear; the per-campaign schedule count is small.
func ConflictAt(schedules []BudgetSchedule, hour, minute int) bool {
	slot := hour*60 + minute
	for i := range schedules {
		if !schedules[i].IsActive {
			continue
		}
		if schedules[i].Covers(slot) {
			return true
		}
	}
	return false
}
