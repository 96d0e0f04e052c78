// Package clock implements minutes-of-day arithmetic that is safe across midnight.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the length of the day in minutes.
const MinutesPerDay = 1440

// Clamp limits m to [0, 1439].
func Clamp(m int) int {
	if m < 0 {
		return 0
	}
	if m > MinutesPerDay-1 {
		return MinutesPerDay - 1
	}
	return m
}

// Wrap folds any minute count into [0, 1439].
func Wrap(m int) int {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return m
}

// RoundToQuarterHour rounds to the nearest 15 minutes (7 past rounds down, 8 past
// rounds up). 23:53 rounds to 00:00.
func RoundToQuarterHour(m int) int {
	return Wrap((Wrap(m) + 7) / 15 * 15)
}

// WrapDiff is the forward distance from a to b, walking past midnight if needed.
// Equal values yield 0, never 1440.
func WrapDiff(a, b int) int {
	if b >= a {
		return b - a
	}
	return b + MinutesPerDay - a
}

// ToPercent returns offset as a share of total in [0, 100]. A zero total yields 0.
func ToPercent(offset, total int) float64 {
	if total == 0 {
		return 0
	}
	p := float64(offset) / float64(total) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Parse reads a 24-hour "HH:MM" string.
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 || !digits(hh) || !digits(mm) {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseOr is Parse with a fallback for empty or malformed input.
func ParseOr(s string, fallback int) int {
	m, err := Parse(s)
	if err != nil {
		return fallback
	}
	return m
}

// Format renders m as "HH:MM".
func Format(m int) string {
	m = Wrap(m)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatSpan renders a duration in minutes as "1h30m", "45m" or "0m".
func FormatSpan(mins int) string {
	if mins < 0 {
		mins = 0
	}
	h, m := mins/60, mins%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}

// FromTime returns the minutes-of-day of t in its own location.
func FromTime(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
