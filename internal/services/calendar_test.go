package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func withDuration(date string, minutes *int) models.Entry {
	return models.Entry{Date: d(date), ActivityName: "x", DurationMinutes: minutes}
}

func mins(n int) *int { return &n }

func TestStreak(t *testing.T) {
	today := d("2024-03-10")
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"three days then gap", []string{"2024-03-10", "2024-03-09", "2024-03-08", "2024-03-05"}, 3},
		{"starts yesterday", []string{"2024-03-09", "2024-03-08"}, 2},
		{"nothing today or yesterday", []string{"2024-03-08", "2024-03-07"}, 0},
		{"empty", nil, 0},
		{"duplicates count once", []string{"2024-03-10", "2024-03-10", "2024-03-09"}, 2},
		{"future days ignored", []string{"2024-03-11", "2024-03-12"}, 0},
		{"across month boundary", []string{"2024-03-01", "2024-02-29", "2024-02-28"}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var dates []time.Time
			for _, s := range tc.dates {
				dates = append(dates, d(s))
			}
			assert.Equal(t, tc.want, Streak(dates, today))
		})
	}

	leap := []time.Time{d("2024-03-01"), d("2024-02-29"), d("2024-02-28")}
	assert.Equal(t, 3, Streak(leap, d("2024-03-01")))
}

func TestStreak_TodayWithClock(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, jakarta)
	assert.Equal(t, 1, Streak([]time.Time{d("2024-03-10")}, now))
}

func TestAggregate(t *testing.T) {
	month := YearMonth{Year: 2024, Month: time.March}
	entries := []models.Entry{
		withDuration("2024-03-10", mins(90)),
		withDuration("2024-03-10", mins(45)),
		withDuration("2024-03-09", nil),
		withDuration("2024-03-01", mins(30)),
		withDuration("2024-02-29", mins(600)), // outside the month
	}

	sum := Aggregate(entries, month, d("2024-03-10"))

	assert.Equal(t, "2024-03", sum.Month)
	assert.Equal(t, 4, sum.TotalCount)
	assert.Equal(t, 2, sum.TotalDurationHours) // floor(165/60)
	assert.Equal(t, 2, sum.TodayCount)
	assert.Equal(t, 2, sum.Streak)
	assert.Len(t, sum.ByDay[10], 2)
	assert.Len(t, sum.ByDay[9], 1)
	assert.Len(t, sum.ByDay[1], 1)
	assert.NotContains(t, sum.ByDay, 29)
}

func TestAggregate_Empty(t *testing.T) {
	sum := Aggregate(nil, YearMonth{Year: 2024, Month: time.January}, d("2024-03-10"))
	assert.Zero(t, sum.TotalCount)
	assert.Zero(t, sum.TotalDurationHours)
	assert.Zero(t, sum.Streak)
	assert.NotNil(t, sum.ByDay)
}

func TestYearMonth(t *testing.T) {
	m, err := ParseYearMonth("2024-02")
	require.NoError(t, err)
	first, last := m.Range()
	assert.Equal(t, d("2024-02-01"), first)
	assert.Equal(t, d("2024-02-29"), last)
	assert.Equal(t, "2024-02", m.String())

	_, err = ParseYearMonth("2024-13")
	assert.Error(t, err)

	assert.Equal(t, YearMonth{Year: 2023, Month: time.December}, MonthOf(d("2023-12-31")))
}

func TestCalendarService_StreakUsesFullHistory(t *testing.T) {
	store := newMemEntryStore()
	ctx := context.Background()
	svc := NewEntryService(store, nil, logging.Discard())
	for _, date := range []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"} {
		_, err := svc.Create(ctx, alice, input(date, "Harian"))
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, bob, input("2024-03-01", "Punya Bob"))
	require.NoError(t, err)

	cal := NewCalendarService(store, time.UTC, logging.Discard())
	now := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	sum, err := cal.Month(ctx, alice, YearMonth{Year: 2024, Month: time.March}, now)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalCount)
	assert.Equal(t, 1, sum.TodayCount)
	assert.Equal(t, 2, sum.TotalDurationHours) // 2 x 75 minutes
	assert.Equal(t, 5, sum.Streak)
}

func TestCalendarService_TodayFollowsTimezone(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	cal := NewCalendarService(newMemEntryStore(), jakarta, logging.Discard())

	// 18:00 UTC is already the next day in Jakarta
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	assert.Equal(t, d("2024-03-02"), cal.Today(now))
}

func TestCalendarService_Errors(t *testing.T) {
	store := newMemEntryStore()
	cal := NewCalendarService(store, nil, logging.Discard())

	_, err := cal.Month(context.Background(), uuid.Nil, YearMonth{Year: 2024, Month: 1}, time.Now())
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	store.err = errors.New("down")
	_, err = cal.Month(context.Background(), alice, YearMonth{Year: 2024, Month: 1}, time.Now())
	assert.Equal(t, models.ErrStorage, err)
}
