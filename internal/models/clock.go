package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// ParseDate parses a YYYY-MM-DD calendar date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// CalendarDay drops the clock and zone of t, keeping its wall-clock date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClockMinutes converts "HH:MM" (or the "HH:MM:SS" form Postgres returns for
// TIME columns) to minutes since midnight.
func ClockMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// NormalizeClock returns s as zero-padded "HH:MM".
func NormalizeClock(s string) (string, error) {
	total, err := ClockMinutes(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}

// DurationMinutes is the only place an entry duration is derived. An end
// before the start is an overnight shift and wraps past midnight. Either
// bound missing yields nil.
func DurationMinutes(start, end *string) *int {
	if start == nil || end == nil {
		return nil
	}
	s, err := ClockMinutes(*start)
	if err != nil {
		return nil
	}
	e, err := ClockMinutes(*end)
	if err != nil {
		return nil
	}
	d := ((e-s)%minutesPerDay + minutesPerDay) % minutesPerDay
	return &d
}
