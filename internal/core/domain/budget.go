package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBudget parses a user-entered budget amount. Thousands separators and
// any other non-digit characters are stripped before parsing, so "1.500.000"
// and "1,500,000" both yield 1500000. An input without any digits is
// rejected. The result is never negative because a leading minus sign is
// stripped with the rest of the non-digits.
func ParseBudget(input string) (int64, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)
	if digits == "" {
		return 0, fmt.Errorf("invalid budget amount %q", input)
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid budget amount %q", input)
	}
	return v, nil
}

// FormatBudget renders an amount with dot thousands separators, the format
// sellers enter budgets in. FormatBudget(ParseBudget(x)) round-trips.
func FormatBudget(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
