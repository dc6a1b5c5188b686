package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Window is a half-open [start, end) time-of-day interval at half-hour
// granularity. The end may be 24:00 when the last selected slot is 23:30.
type Window struct {
	HourStart   int
	MinuteStart int
	HourEnd     int
	MinuteEnd   int
}

// ParseSlot parses an "HH:MM" slot identifier into its minute-of-day. The
// minute part must be 00 or 30.
func ParseSlot(slot string) (int, error) {
	h, m, ok := strings.Cut(slot, ":")
	if !ok {
		return 0, fmt.Errorf("invalid slot %q", slot)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid slot hour in %q", slot)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || (minute != 0 && minute != 30) {
		return 0, fmt.Errorf("slot minute must be 00 or 30 in %q", slot)
	}
	return hour*60 + minute, nil
}

// FormatSlot renders a minute-of-day as an "HH:MM" slot identifier.
func FormatSlot(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}

// ComputeWindow determines the contiguous window covering all selected
// slots: the start is the earliest slot, the end is the latest slot plus 30
// minutes, carrying into the next hour. The window is the span from first to
// last selection, so gaps between selected slots are covered as well.
func ComputeWindow(slots []string) (Window, error) {
	if len(slots) == 0 {
		return Window{}, fmt.Errorf("no time slot selected")
	}
	min, max := -1, -1
	for _, slot := range slots {
		m, err := ParseSlot(slot)
		if err != nil {
			return Window{}, err
		}
		if min == -1 || m < min {
			min = m
		}
		if m > max {
			max = m
		}
	}
	end := max + 30
	return Window{
		HourStart:   min / 60,
		MinuteStart: min % 60,
		HourEnd:     end / 60,
		MinuteEnd:   end % 60,
	}, nil
}
