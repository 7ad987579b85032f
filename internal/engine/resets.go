package engine

import (
	"time"

	"github.com/JunoAX/chorepoints-go/internal/models"
)

// RunDailyReset zeroes the daily counters, resets daily and one-off chores
// whose due date has passed back to Pending, and clears every pending reward
// approval. Scheduled at the configured daily hour.
func (e *Engine) RunDailyReset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.logger.Info("running daily reset")

	e.st.Snapshot().LastDailyReset = now.Format(models.DateLayout)
	for _, kid := range e.st.Snapshot().Kids {
		kid.EarnedToday = 0
		kid.CompletedToday = 0
		kid.PendingRewards = nil
	}
	e.st.Snapshot().PendingRewardApprovals = nil

	for _, chore := range e.st.Snapshot().Chores {
		if chore.Frequency != models.FrequencyDaily && chore.Frequency != models.FrequencyNone {
			continue
		}
		if chore.DueDate == nil || chore.DueDate.After(now) {
			continue
		}
		e.resetChoreStatuses(chore)
	}

	e.persist()
}

// LastDailyReset returns the calendar day of the most recent daily reset,
// empty if none has run yet.
func (e *Engine) LastDailyReset() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.Snapshot().LastDailyReset
}

// RunWeeklyReset zeroes the weekly counters, resets weekly chores and makes
// weekly periodic badges earnable again. Scheduled on Monday.
func (e *Engine) RunWeeklyReset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Info("running weekly reset")

	for _, kid := range e.st.Snapshot().Kids {
		kid.EarnedWeekly = 0
		kid.CompletedWeekly = 0
	}
	for _, chore := range e.st.Snapshot().Chores {
		if chore.Frequency == models.FrequencyWeekly || chore.Frequency == models.FrequencyBiweekly {
			if chore.DueDate != nil && !chore.DueDate.After(e.now()) {
				e.resetChoreStatuses(chore)
			}
		}
	}
	e.resetPeriodicBadges(models.WindowWeekly)

	e.persist()
}

// RunMonthlyReset zeroes the monthly counters, resets monthly chores and
// reopens monthly (and, on quarter boundaries, quarterly) periodic badges.
// Scheduled on the first of the month.
func (e *Engine) RunMonthlyReset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.logger.Info("running monthly reset")

	for _, kid := range e.st.Snapshot().Kids {
		kid.EarnedMonthly = 0
		kid.CompletedMonthly = 0
	}
	for _, chore := range e.st.Snapshot().Chores {
		if chore.Frequency == models.FrequencyMonthly {
			if chore.DueDate != nil && !chore.DueDate.After(now) {
				e.resetChoreStatuses(chore)
			}
		}
	}
	e.resetPeriodicBadges(models.WindowMonthly)
	if isQuarterStart(now.Month()) {
		e.resetPeriodicBadges(models.WindowQuarterly)
	}

	e.persist()
}

func isQuarterStart(m time.Month) bool {
	return m == time.January || m == time.April || m == time.July || m == time.October
}

// resetPeriodicBadges clears earners and progress for recurring periodic
// badges of the given window so the next window starts fresh. Lock held.
func (e *Engine) resetPeriodicBadges(window models.PeriodicWindow) {
	for _, b := range e.st.Snapshot().Badges {
		if b.Type != models.BadgePeriodic || b.Window != window {
			continue
		}
		b.WindowProgress = nil
		e.clearBadgeEarners(b)
	}
	for _, kid := range e.st.Snapshot().Kids {
		e.updateMultiplier(kid)
	}
}
