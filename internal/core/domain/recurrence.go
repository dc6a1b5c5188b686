package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO date format used for specific-date recurrence.
const DateLayout = "2006-01-02"

// AllDays returns the weekday list of a daily schedule, Sunday through
// Saturday.
func AllDays() []int {
	return []int{0, 1, 2, 3, 4, 5, 6}
}

// PickerDate is one entry of the date-picker payload.
type PickerDate struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

// UpcomingDates enumerates n calendar days starting today, with weekday
// labels, to populate a date picker. Dates follow the local clock; no
// timezone normalization is applied, so the list shifts at local midnight.
func UpcomingDates(now time.Time, n int) []PickerDate {
	out := make([]PickerDate, 0, n)
	for i := 0; i < n; i++ {
		d := now.AddDate(0, 0, i)
		out = append(out, PickerDate{
			Date:    d.Format(DateLayout),
			Weekday: d.Weekday().String(),
		})
	}
	return out
}

// DescribeRecurrence renders a schedule's recurrence for display: a fixed
// label for daily schedules, or the date count plus the first maxDates dates
// for specific-date schedules.
func DescribeRecurrence(s *BudgetSchedule, maxDates int) string {
	if len(s.SpecificDates) == 0 {
		return "daily"
	}
	shown := s.SpecificDates
	suffix := ""
	if maxDates > 0 && len(shown) > maxDates {
		shown = shown[:maxDates]
		suffix = ", …"
	}
	return fmt.Sprintf("%d dates: %s%s", len(s.SpecificDates), strings.Join(shown, ", "), suffix)
}
