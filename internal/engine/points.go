package engine

import (
	"fmt"

	"github.com/JunoAX/chorepoints-go/internal/models"
)

// applyPointsDelta is the single mutation point for a kid's balance. The
// today/week/month counters always move by the delta; cumulative earned,
// cycle points and max-ever only move on positive deltas. Every nonzero
// delta re-evaluates badges, achievements and challenges, which is the hook
// the other engines rely on. Lock held.
func (e *Engine) applyPointsDelta(kid *models.Kid, delta float64) {
	if delta == 0 {
		return
	}
	kid.Points += delta
	kid.EarnedToday += delta
	kid.EarnedWeekly += delta
	kid.EarnedMonthly += delta
	if delta > 0 {
		kid.CumulativeEarned += delta
		kid.CyclePoints += delta
		if kid.Points > kid.MaxPointsEver {
			kid.MaxPointsEver = kid.Points
		}
		e.accruePeriodicWindows(kid, delta)
	}
	e.evaluateAll(kid)
}

// evaluateAll re-runs every engine that reacts to state changes for the kid.
// Lock held.
func (e *Engine) evaluateAll(kid *models.Kid) {
	e.evaluateBadges(kid)
	e.evaluateAchievements(kid)
	e.evaluateChallenges(kid)
	e.updateMultiplier(kid)
}

// SetKidPoints sets a kid's balance directly (parent adjustment). The ledger
// records the difference from the current balance.
func (e *Engine) SetKidPoints(kidID string, newBalance float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kid, ok := e.st.Kid(kidID)
	if !ok {
		return fmt.Errorf("kid %q: %w", kidID, ErrNotFound)
	}
	e.applyPointsDelta(kid, newBalance-kid.Points)
	e.persist()
	return nil
}
