package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDefaultProgressWithoutDates(t *testing.T) {
	tests := []struct {
		goalType GoalType
		total    int
		unit     string
	}{
		{GoalTypeDaily, 30, UnitDays},
		{GoalTypeWeekly, 4, UnitWeeks},
		{GoalTypeMonthly, 1, UnitMonths},
		{GoalTypeSingle, 1, UnitGoal},
		{"", 30, UnitDays},
		{"custom_unknown_type", 30, UnitDays},
	}

	for _, tt := range tests {
		t.Run(string(tt.goalType), func(t *testing.T) {
			got := DefaultProgress(tt.goalType, nil, nil)
			assert.Equal(t, Progress{Completed: 0, Total: tt.total, Unit: tt.unit}, got)
		})
	}
}

func TestDefaultProgressWithDates(t *testing.T) {
	start := date(2026, time.January, 1)

	tests := []struct {
		name     string
		goalType GoalType
		end      *time.Time
		total    int
		unit     string
	}{
		{"daily ten days", GoalTypeDaily, date(2026, time.January, 10), 10, UnitDays},
		{"weekly three weeks", GoalTypeWeekly, date(2026, time.January, 22), 4, UnitWeeks},
		{"monthly ninety days", GoalTypeMonthly, date(2026, time.April, 1), 4, UnitMonths},
		{"single ignores span", GoalTypeSingle, date(2026, time.December, 31), 1, UnitGoal},
		{"empty type counts days", "", date(2026, time.January, 21), 21, UnitDays},
		{"unknown type counts days", "custom_unknown_type", date(2026, time.February, 20), 51, UnitDays},
		{"same day", GoalTypeDaily, date(2026, time.January, 1), 1, UnitDays},
		{"weekly partial week rounds down", GoalTypeWeekly, date(2026, time.January, 7), 1, UnitWeeks},
		{"daily far future end", GoalTypeDaily, date(9999, time.December, 31), 2912443, UnitDays},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultProgress(tt.goalType, start, tt.end)
			assert.Equal(t, tt.total, got.Total)
			assert.Equal(t, tt.unit, got.Unit)
			assert.Zero(t, got.Completed)
		})
	}
}

func TestDefaultProgressInvertedRangeClampsToOne(t *testing.T) {
	start := date(2026, time.March, 10)
	end := date(2026, time.March, 1)

	for _, goalType := range []GoalType{GoalTypeDaily, GoalTypeWeekly, GoalTypeMonthly, GoalTypeSingle} {
		got := DefaultProgress(goalType, start, end)
		assert.Equal(t, 1, got.Total, goalType)
	}
}

func TestDefaultProgressOnlyOneDateUsesTable(t *testing.T) {
	got := DefaultProgress(GoalTypeWeekly, date(2026, time.January, 1), nil)
	assert.Equal(t, 4, got.Total)

	got = DefaultProgress(GoalTypeDaily, nil, date(2026, time.January, 1))
	assert.Equal(t, 30, got.Total)
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, time.May, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2026, time.May, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(start, end))

	// DST boundaries in local zones do not shift the count
	loc := time.FixedZone("UTC-3", -3*60*60)
	start = time.Date(2026, time.October, 1, 8, 0, 0, 0, loc)
	end = time.Date(2026, time.October, 31, 8, 0, 0, 0, loc)
	assert.Equal(t, 30, DaysBetween(start, end))
}

func TestDefaultProgressLongSpan(t *testing.T) {
	got := DefaultProgress(GoalTypeDaily, date(2000, time.January, 1), date(2400, time.January, 1))
	assert.Equal(t, 146098, got.Total)

	got = DefaultProgress(GoalTypeWeekly, date(2000, time.January, 1), date(2400, time.January, 1))
	assert.Equal(t, 146097/7+1, got.Total)
}
