package engine

import (
	"fmt"
	"time"

	"github.com/JunoAX/chorepoints-go/internal/models"
)

// maxScheduleSteps bounds the due-date search so a weekday filter that never
// matches cannot loop forever.
const maxScheduleSteps = 1500

// NextDueDate computes the next due date for a recurring chore: advance one
// period from the current due date (or from now when none is set) until the
// result is strictly after now and, when a weekday filter applies, lands on
// an applicable weekday. Month arithmetic clamps the day to the target
// month's length, so Jan 31 plus one month is Feb 28 or 29.
func NextDueDate(chore *models.Chore, now time.Time) (time.Time, error) {
	if chore.Frequency == models.FrequencyNone {
		return time.Time{}, fmt.Errorf("chore %q has no recurrence: %w", chore.ID, ErrInvalidSchedule)
	}

	next := now
	if chore.DueDate != nil {
		next = *chore.DueDate
	}

	first := true
	for i := 0; i < maxScheduleSteps; i++ {
		if first || !next.After(now) {
			advanced, err := advanceOnePeriod(chore, next)
			if err != nil {
				return time.Time{}, err
			}
			next = advanced
			first = false
		} else {
			// Only reachable while walking toward an applicable weekday.
			next = next.AddDate(0, 0, 1)
		}
		if !next.After(now) {
			continue
		}
		if len(chore.ApplicableDays) > 0 && !weekdayApplicable(chore.ApplicableDays, next.Weekday()) {
			continue
		}
		return next, nil
	}
	return time.Time{}, fmt.Errorf("no due date found for chore %q: %w", chore.ID, ErrInvalidSchedule)
}

func advanceOnePeriod(chore *models.Chore, t time.Time) (time.Time, error) {
	switch chore.Frequency {
	case models.FrequencyDaily:
		return t.AddDate(0, 0, 1), nil
	case models.FrequencyWeekly:
		return t.AddDate(0, 0, 7), nil
	case models.FrequencyBiweekly:
		return t.AddDate(0, 0, 14), nil
	case models.FrequencyMonthly:
		return addMonthsClamped(t, 1), nil
	case models.FrequencyCustom:
		if chore.CustomInterval <= 0 {
			return time.Time{}, fmt.Errorf("custom interval %d for chore %q: %w",
				chore.CustomInterval, chore.ID, ErrInvalidSchedule)
		}
		switch chore.CustomIntervalUnit {
		case models.UnitDays:
			return t.AddDate(0, 0, chore.CustomInterval), nil
		case models.UnitWeeks:
			return t.AddDate(0, 0, 7*chore.CustomInterval), nil
		case models.UnitMonths:
			return addMonthsClamped(t, chore.CustomInterval), nil
		default:
			return time.Time{}, fmt.Errorf("custom interval unit %q for chore %q: %w",
				chore.CustomIntervalUnit, chore.ID, ErrInvalidSchedule)
		}
	default:
		return time.Time{}, fmt.Errorf("frequency %q for chore %q: %w",
			chore.Frequency, chore.ID, ErrInvalidSchedule)
	}
}

// addMonthsClamped adds months without the normalization overflow of
// AddDate: the day of month is clamped to the last valid day of the target
// month instead of spilling into the next one.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	anchor := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := anchor.AddDate(0, months, 0)
	last := daysInMonth(target.Year(), target.Month())
	if day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func weekdayApplicable(days []int, wd time.Weekday) bool {
	for _, d := range days {
		if d == int(wd) {
			return true
		}
	}
	return false
}
