package engine

import (
	"fmt"
	"time"

	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/notify"
)

// StateCounts is the per-kid-state vector the global-state reducer consumes.
type StateCounts struct {
	Total    int
	Pending  int
	Claimed  int
	Approved int
	Overdue  int
}

// ReduceGlobalState derives a chore's global state from its assignees'
// states. Pure function: a single assignee's state passes through 1:1; when
// every assignee agrees, that state wins; shared chores aggregate with
// precedence Overdue > ApprovedInPart > ClaimedInPart > Unknown; non-shared
// multi-assignee chores are Independent.
func ReduceGlobalState(c StateCounts, shared bool) models.ChoreState {
	switch {
	case c.Total == 0:
		return models.ChoreUnknown
	case c.Overdue == c.Total:
		return models.ChoreOverdue
	case c.Approved == c.Total:
		return models.ChoreApproved
	case c.Claimed == c.Total:
		return models.ChoreClaimed
	case c.Pending == c.Total:
		return models.ChorePending
	}
	if !shared {
		return models.ChoreIndependent
	}
	switch {
	case c.Overdue > 0:
		return models.ChoreOverdue
	case c.Approved > 0:
		return models.ChoreApprovedInPart
	case c.Claimed > 0:
		return models.ChoreClaimedInPart
	default:
		return models.ChoreUnknown
	}
}

// kidChoreState reads one kid's state for a chore. Overdue wins over a plain
// pending state; claimed and approved are mutually exclusive by invariant.
func kidChoreState(kid *models.Kid, choreID string) models.ChoreState {
	switch {
	case kid.HasApproved(choreID):
		return models.ChoreApproved
	case kid.HasClaimed(choreID):
		return models.ChoreClaimed
	case kid.HasOverdue(choreID):
		return models.ChoreOverdue
	default:
		return models.ChorePending
	}
}

// recomputeGlobalState re-derives chore.State from all assignees. Lock held.
func (e *Engine) recomputeGlobalState(chore *models.Chore) {
	var counts StateCounts
	for _, kidID := range chore.AssignedKids {
		kid, ok := e.st.Kid(kidID)
		if !ok {
			continue
		}
		counts.Total++
		switch kidChoreState(kid, chore.ID) {
		case models.ChoreApproved:
			counts.Approved++
		case models.ChoreClaimed:
			counts.Claimed++
		case models.ChoreOverdue:
			counts.Overdue++
		default:
			counts.Pending++
		}
	}
	chore.State = ReduceGlobalState(counts, chore.Shared)
}

// ClaimChore moves the kid to Claimed and queues a parent approval.
func (e *Engine) ClaimChore(kidID, choreID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kid, ok := e.st.Kid(kidID)
	if !ok {
		return fmt.Errorf("kid %q: %w", kidID, ErrNotFound)
	}
	chore, ok := e.st.Chore(choreID)
	if !ok {
		return fmt.Errorf("chore %q: %w", choreID, ErrNotFound)
	}
	if !chore.AssignedTo(kidID) {
		return fmt.Errorf("chore %q is not assigned to kid %q: %w", choreID, kidID, ErrNotAssigned)
	}
	if (kid.HasClaimed(choreID) || kid.HasApproved(choreID)) && !chore.AllowMultipleClaims {
		return fmt.Errorf("chore %q already claimed by kid %q: %w", choreID, kidID, ErrAlreadyActed)
	}

	kid.OverdueChores = models.RemoveID(kid.OverdueChores, choreID)
	kid.ApprovedChores = models.RemoveID(kid.ApprovedChores, choreID)
	kid.ClaimedChores = models.AddID(kid.ClaimedChores, choreID)
	now := e.now()
	chore.LastClaimed = &now

	notifID := e.notifyParents(kidID,
		"Chore claimed",
		fmt.Sprintf("%s claimed %q and is waiting for approval", kid.Name, chore.Name),
		notify.Action{Type: notify.ActionApproveChore, KidID: kidID, EntityID: choreID},
		notify.Action{Type: notify.ActionDisapproveChore, KidID: kidID, EntityID: choreID},
		notify.Action{Type: notify.ActionRemind30, KidID: kidID, EntityID: choreID},
	)
	e.st.AddChoreApproval(models.PendingChoreApproval{
		KidID:          kidID,
		ChoreID:        choreID,
		Timestamp:      now,
		NotificationID: notifID,
	})

	e.recomputeGlobalState(chore)
	e.persist()
	return nil
}

// ApproveChore awards points and moves the kid to Approved. pointsOverride,
// when non-nil, replaces the chore's default points before the kid's
// multiplier is applied.
func (e *Engine) ApproveChore(kidID, choreID string, pointsOverride *float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kid, ok := e.st.Kid(kidID)
	if !ok {
		return fmt.Errorf("kid %q: %w", kidID, ErrNotFound)
	}
	chore, ok := e.st.Chore(choreID)
	if !ok {
		return fmt.Errorf("chore %q: %w", choreID, ErrNotFound)
	}
	if !chore.AssignedTo(kidID) {
		return fmt.Errorf("chore %q is not assigned to kid %q: %w", choreID, kidID, ErrNotAssigned)
	}
	if kid.HasApproved(choreID) && !chore.AllowMultipleClaims {
		return fmt.Errorf("chore %q already approved for kid %q: %w", choreID, kidID, ErrAlreadyActed)
	}

	base := chore.DefaultPoints
	if pointsOverride != nil {
		base = *pointsOverride
	}
	awarded := base * kid.Multiplier

	now := e.now()
	kid.ClaimedChores = models.RemoveID(kid.ClaimedChores, choreID)
	kid.OverdueChores = models.RemoveID(kid.OverdueChores, choreID)
	delete(kid.OverdueNotified, choreID)
	kid.ApprovedChores = models.AddID(kid.ApprovedChores, choreID)
	chore.LastCompleted = &now

	kid.CompletedToday++
	kid.CompletedWeekly++
	kid.CompletedMonthly++
	kid.CompletedTotal++

	e.updateChoreStreak(kid, choreID)
	e.updateOverallStreak(kid)
	e.recordChoreCompletion(kid, chore)
	e.st.RemoveChoreApprovals(kidID, choreID)

	if awarded != 0 {
		e.applyPointsDelta(kid, awarded)
	} else {
		e.evaluateAll(kid)
	}

	e.notifyKid(kid,
		"Chore approved",
		fmt.Sprintf("%q was approved, you earned %.1f points", chore.Name, awarded),
	)

	e.recomputeGlobalState(chore)
	e.persist()
	return nil
}

// DisapproveChore resets the kid to Pending and drops the pending approval.
func (e *Engine) DisapproveChore(kidID, choreID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kid, ok := e.st.Kid(kidID)
	if !ok {
		return fmt.Errorf("kid %q: %w", kidID, ErrNotFound)
	}
	chore, ok := e.st.Chore(choreID)
	if !ok {
		return fmt.Errorf("chore %q: %w", choreID, ErrNotFound)
	}

	kid.ClaimedChores = models.RemoveID(kid.ClaimedChores, choreID)
	kid.ApprovedChores = models.RemoveID(kid.ApprovedChores, choreID)
	e.st.RemoveChoreApprovals(kidID, choreID)

	e.notifyKid(kid,
		"Chore not approved",
		fmt.Sprintf("%q was not approved this time", chore.Name),
	)

	e.recomputeGlobalState(chore)
	e.persist()
	return nil
}

// OverrideChoreState force-sets one kid's state outside the normal claim
// path. The global state is still derived by the reducer afterward.
func (e *Engine) OverrideChoreState(kidID, choreID string, state models.ChoreState) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kid, ok := e.st.Kid(kidID)
	if !ok {
		return fmt.Errorf("kid %q: %w", kidID, ErrNotFound)
	}
	chore, ok := e.st.Chore(choreID)
	if !ok {
		return fmt.Errorf("chore %q: %w", choreID, ErrNotFound)
	}
	if !chore.AssignedTo(kidID) {
		return fmt.Errorf("chore %q is not assigned to kid %q: %w", choreID, kidID, ErrNotAssigned)
	}

	kid.ClaimedChores = models.RemoveID(kid.ClaimedChores, choreID)
	kid.ApprovedChores = models.RemoveID(kid.ApprovedChores, choreID)
	kid.OverdueChores = models.RemoveID(kid.OverdueChores, choreID)
	switch state {
	case models.ChoreClaimed:
		kid.ClaimedChores = models.AddID(kid.ClaimedChores, choreID)
	case models.ChoreApproved:
		kid.ApprovedChores = models.AddID(kid.ApprovedChores, choreID)
	case models.ChoreOverdue:
		kid.OverdueChores = models.AddID(kid.OverdueChores, choreID)
	case models.ChorePending:
		// Cleared above.
	default:
		return fmt.Errorf("state %q is not a per-kid state: %w", state, ErrInvalidSchedule)
	}

	e.recomputeGlobalState(chore)
	e.persist()
	return nil
}

// updateChoreStreak applies the consecutive-day rules for one chore: same
// day is a no-op, yesterday extends by one, anything else restarts at one.
func (e *Engine) updateChoreStreak(kid *models.Kid, choreID string) {
	if kid.ChoreStreaks == nil {
		kid.ChoreStreaks = make(map[string]*models.StreakRecord)
	}
	rec, ok := kid.ChoreStreaks[choreID]
	if !ok {
		rec = &models.StreakRecord{}
		kid.ChoreStreaks[choreID] = rec
	}
	today := e.today()
	yesterday := e.now().AddDate(0, 0, -1).Format(models.DateLayout)
	switch rec.LastDate {
	case today:
		return
	case yesterday:
		rec.Current++
	default:
		rec.Current = 1
	}
	rec.LastDate = today
	if rec.Current > rec.Max {
		rec.Max = rec.Current
	}
}

// updateOverallStreak applies the same consecutive-day rules to the kid's
// overall daily activity.
func (e *Engine) updateOverallStreak(kid *models.Kid) {
	today := e.today()
	yesterday := e.now().AddDate(0, 0, -1).Format(models.DateLayout)
	switch kid.LastActivityDate {
	case today:
		return
	case yesterday:
		kid.OverallStreak++
	default:
		kid.OverallStreak = 1
	}
	kid.LastActivityDate = today
	if kid.OverallStreak > kid.OverallMaxStreak {
		kid.OverallMaxStreak = kid.OverallStreak
	}
}

// RunOverdueSweep re-derives overdue markers from due dates. Kids who have
// claimed or been approved are skipped; chores without a due date or with a
// future one get their markers cleared. Repeat notifications honor the
// cooldown, which resets once the due date advances past the last
// notification. Chores already completed past their due date are rescheduled
// (reschedule-on-completion). Per-chore failures are logged and do not stop
// the sweep.
func (e *Engine) RunOverdueSweep() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	changed := false
	for _, chore := range e.st.Snapshot().Chores {
		if e.sweepChore(chore, now) {
			changed = true
		}
	}
	if e.evaluateSpecialOccasions(now) {
		changed = true
	}
	if e.advancePeriodicWindows(now) {
		changed = true
	}
	if changed {
		e.persist()
	}
}

func (e *Engine) sweepChore(chore *models.Chore, now time.Time) bool {
	changed := false
	if chore.DueDate == nil || chore.DueDate.After(now) {
		for _, kidID := range chore.AssignedKids {
			kid, ok := e.st.Kid(kidID)
			if !ok {
				continue
			}
			if kid.HasOverdue(chore.ID) {
				kid.OverdueChores = models.RemoveID(kid.OverdueChores, chore.ID)
				changed = true
			}
		}
		if changed {
			e.recomputeGlobalState(chore)
		}
		return changed
	}

	// Past due. Completed chores reschedule; everyone else goes overdue.
	if (chore.State == models.ChoreApproved || chore.State == models.ChoreApprovedInPart) &&
		chore.Frequency != models.FrequencyNone {
		if err := e.rescheduleChore(chore, now); err != nil {
			e.logger.Error("reschedule failed", "chore_id", chore.ID, "error", err)
			return false
		}
		return true
	}

	for _, kidID := range chore.AssignedKids {
		kid, ok := e.st.Kid(kidID)
		if !ok {
			continue
		}
		if kid.HasClaimed(chore.ID) || kid.HasApproved(chore.ID) {
			continue
		}
		if !kid.HasOverdue(chore.ID) {
			kid.OverdueChores = models.AddID(kid.OverdueChores, chore.ID)
			changed = true
		}
		if e.shouldNotifyOverdue(kid, chore, now) {
			if kid.OverdueNotified == nil {
				kid.OverdueNotified = make(map[string]time.Time)
			}
			kid.OverdueNotified[chore.ID] = now
			e.notifyKid(kid, "Chore overdue",
				fmt.Sprintf("%q is overdue, please take care of it", chore.Name))
			e.notifyParents(kid.ID, "Chore overdue",
				fmt.Sprintf("%s has an overdue chore: %q", kid.Name, chore.Name))
			changed = true
		}
	}
	if changed {
		e.recomputeGlobalState(chore)
	}
	return changed
}

// shouldNotifyOverdue applies the notification cooldown. A notification sent
// before the current due date belongs to a previous cycle and does not count.
func (e *Engine) shouldNotifyOverdue(kid *models.Kid, chore *models.Chore, now time.Time) bool {
	last, ok := kid.OverdueNotified[chore.ID]
	if !ok {
		return true
	}
	if last.Before(*chore.DueDate) {
		return true
	}
	return now.Sub(last) >= e.cfg.OverdueCooldown
}

// RescheduleChore advances the chore to its next due date and resets every
// assignee to Pending.
func (e *Engine) RescheduleChore(choreID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	chore, ok := e.st.Chore(choreID)
	if !ok {
		return fmt.Errorf("chore %q: %w", choreID, ErrNotFound)
	}
	if err := e.rescheduleChore(chore, e.now()); err != nil {
		return err
	}
	e.persist()
	return nil
}

// rescheduleChore computes the next due date, clears all per-kid state for
// the chore and purges its pending approvals. Lock held.
func (e *Engine) rescheduleChore(chore *models.Chore, now time.Time) error {
	next, err := NextDueDate(chore, now)
	if err != nil {
		return err
	}
	chore.DueDate = &next
	e.resetChoreStatuses(chore)
	return nil
}

// resetChoreStatuses puts every assignee back to Pending and drops pending
// approvals for the chore. Lock held.
func (e *Engine) resetChoreStatuses(chore *models.Chore) {
	for _, kidID := range chore.AssignedKids {
		kid, ok := e.st.Kid(kidID)
		if !ok {
			continue
		}
		kid.ClaimedChores = models.RemoveID(kid.ClaimedChores, chore.ID)
		kid.ApprovedChores = models.RemoveID(kid.ApprovedChores, chore.ID)
		kid.OverdueChores = models.RemoveID(kid.OverdueChores, chore.ID)
		e.st.RemoveChoreApprovals(kidID, chore.ID)
	}
	e.recomputeGlobalState(chore)
}

// SetDueDate sets or clears a chore's due date. Clearing also clears overdue
// markers. A due date in the past is rejected.
func (e *Engine) SetDueDate(choreID string, due *time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	chore, ok := e.st.Chore(choreID)
	if !ok {
		return fmt.Errorf("chore %q: %w", choreID, ErrNotFound)
	}
	if due != nil && due.Before(e.now()) {
		return fmt.Errorf("due date %s is in the past: %w", due.Format(time.RFC3339), ErrInvalidSchedule)
	}
	chore.DueDate = due
	for _, kidID := range chore.AssignedKids {
		kid, ok := e.st.Kid(kidID)
		if !ok {
			continue
		}
		kid.OverdueChores = models.RemoveID(kid.OverdueChores, chore.ID)
		delete(kid.OverdueNotified, chore.ID)
	}
	e.recomputeGlobalState(chore)
	e.persist()
	return nil
}

// SkipDueDate advances the chore one recurrence period without completion.
func (e *Engine) SkipDueDate(choreID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	chore, ok := e.st.Chore(choreID)
	if !ok {
		return fmt.Errorf("chore %q: %w", choreID, ErrNotFound)
	}
	if chore.Frequency == models.FrequencyNone {
		return fmt.Errorf("chore %q does not recur: %w", choreID, ErrInvalidSchedule)
	}
	if err := e.rescheduleChore(chore, e.now()); err != nil {
		return err
	}
	e.persist()
	return nil
}

// RemindChoreIn re-sends the parent notification for a pending claim after
// the delay, only if it is still pending by then. The timer cancels itself
// implicitly once the claim leaves the pending queue.
func (e *Engine) RemindChoreIn(kidID, choreID string, delay time.Duration) error {
	e.mu.Lock()
	if !e.st.HasChoreApproval(kidID, choreID) {
		e.mu.Unlock()
		return fmt.Errorf("no pending approval for kid %q chore %q: %w", kidID, choreID, ErrNotFound)
	}
	e.mu.Unlock()

	time.AfterFunc(delay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if !e.st.HasChoreApproval(kidID, choreID) {
			return
		}
		kid, ok := e.st.Kid(kidID)
		if !ok {
			return
		}
		chore, ok := e.st.Chore(choreID)
		if !ok {
			return
		}
		e.notifyParents(kidID,
			"Reminder: chore waiting",
			fmt.Sprintf("%s is still waiting for approval of %q", kid.Name, chore.Name),
			notify.Action{Type: notify.ActionApproveChore, KidID: kidID, EntityID: choreID},
			notify.Action{Type: notify.ActionDisapproveChore, KidID: kidID, EntityID: choreID},
		)
	})
	return nil
}
