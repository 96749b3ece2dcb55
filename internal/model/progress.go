package model

import "time"

const (
	UnitDays   = "days"
	UnitWeeks  = "weeks"
	UnitMonths = "months"
	UnitGoal   = "goal"
)

// progressBucket is one row of the default progress table.
type progressBucket struct {
	unit         string
	defaultTotal int
	// daysPerStep divides the date span; 0 means the total ignores dates.
	daysPerStep int
}

var dailyBucket = progressBucket{unit: UnitDays, defaultTotal: 30, daysPerStep: 1}

var progressBuckets = map[GoalType]progressBucket{
	GoalTypeDaily:   dailyBucket,
	GoalTypeWeekly:  {unit: UnitWeeks, defaultTotal: 4, daysPerStep: 7},
	GoalTypeMonthly: {unit: UnitMonths, defaultTotal: 1, daysPerStep: 30},
	GoalTypeSingle:  {unit: UnitGoal, defaultTotal: 1},
}

// DefaultProgress returns the starting progress for a goal that was created
// without one. Unknown or empty types use the daily bucket. When both dates
// are set the total counts the steps in the span, inclusive of the start;
// spans that would give less than one step are clamped to 1.
func DefaultProgress(goalType GoalType, start, end *time.Time) Progress {
	bucket, ok := progressBuckets[goalType]
	if !ok {
		bucket = dailyBucket
	}

	total := bucket.defaultTotal
	if start != nil && end != nil {
		total = 1
		if bucket.daysPerStep > 0 {
			total = DaysBetween(*start, *end)/bucket.daysPerStep + 1
		}
	}
	if total < 1 {
		total = 1
	}

	return Progress{Completed: 0, Total: total, Unit: bucket.unit}
}

// DaysBetween counts calendar days from start to end, ignoring time of day.
// Unix seconds are used because time.Duration saturates near 292 years.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int((e.Unix() - s.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60
