package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/google/uuid"
)

// YearMonth names a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth accepts "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// MonthOf returns the month a calendar day falls in.
func MonthOf(d time.Time) YearMonth {
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Range returns the first and last calendar day of the month.
func (m YearMonth) Range() (first, last time.Time) {
	first = time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// MonthSummary is the dashboard view of one month.
type MonthSummary struct {
	Month              string                 `json:"month"`
	ByDay              map[int][]models.Entry `json:"by_day"`
	TotalCount         int                    `json:"total_count"`
	TotalDurationHours int                    `json:"total_duration_hours"`
	TodayCount         int                    `json:"today_count"`
	Streak             int                    `json:"streak"`
}

// Aggregate buckets the month's entries by day of month and totals them.
// Entries dated outside month are ignored. The streak is computed from the
// entries given; callers wanting history beyond the month pass it to Streak
// themselves.
func Aggregate(entries []models.Entry, month YearMonth, today time.Time) MonthSummary {
	today = models.CalendarDay(today)
	sum := MonthSummary{
		Month: month.String(),
		ByDay: make(map[int][]models.Entry),
	}

	var minutes int
	dates := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		d := models.CalendarDay(e.Date)
		if MonthOf(d) != month {
			continue
		}
		sum.ByDay[d.Day()] = append(sum.ByDay[d.Day()], e)
		sum.TotalCount++
		if e.DurationMinutes != nil {
			minutes += *e.DurationMinutes
		}
		if d.Equal(today) {
			sum.TodayCount++
		}
		dates = append(dates, d)
	}
	sum.TotalDurationHours = minutes / 60
	sum.Streak = Streak(dates, today)
	return sum
}

// Streak counts consecutive active days ending today, or ending yesterday
// when nothing is recorded today yet. It never looks past today.
func Streak(dates []time.Time, today time.Time) int {
	active := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		active[models.CalendarDay(d)] = struct{}{}
	}

	cursor := models.CalendarDay(today)
	if _, ok := active[cursor]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := active[cursor]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// CalendarService builds month summaries with a streak over the owner's
// whole history.
type CalendarService struct {
	store EntryStore
	loc   *time.Location
	log   logging.Logger
}

func NewCalendarService(store EntryStore, loc *time.Location, log logging.Logger) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{store: store, loc: loc, log: log}
}

// Today is the current calendar day in the service's time zone.
func (s *CalendarService) Today(now time.Time) time.Time {
	return models.CalendarDay(now.In(s.loc))
}

func (s *CalendarService) Month(ctx context.Context, ownerID uuid.UUID, month YearMonth, now time.Time) (*MonthSummary, error) {
	if ownerID == uuid.Nil {
		return nil, models.ErrUnauthorized
	}
	today := s.Today(now)
	first, last := month.Range()

	entries, err := s.store.ListAll(ctx, ownerID, models.EntryFilter{StartDate: &first, EndDate: &last})
	if err != nil {
		logging.FromContext(ctx, s.log).Error(ctx, "month entries failed", "owner_id", ownerID, "month", month.String(), "error", err)
		return nil, models.ErrStorage
	}
	sum := Aggregate(entries, month, today)

	dates, err := s.store.ActiveDates(ctx, ownerID, today)
	if err != nil {
		logging.FromContext(ctx, s.log).Error(ctx, "active dates failed", "owner_id", ownerID, "error", err)
		return nil, models.ErrStorage
	}
	sum.Streak = Streak(dates, today)
	return &sum, nil
}
