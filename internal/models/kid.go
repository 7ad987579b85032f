package models

import "time"

// DateLayout is the calendar-day format used for streaks and daily guards.
const DateLayout = "2006-01-02"

// StreakRecord tracks consecutive-day completions of one chore.
type StreakRecord struct {
	Current  int    `json:"current"`
	Max      int    `json:"max"`
	LastDate string `json:"last_date,omitempty"`
}

// Kid holds a child's balance, counters and all per-kid runtime state.
// A chore id is never present in both ClaimedChores and ApprovedChores.
type Kid struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Points        float64 `json:"points"`
	Multiplier    float64 `json:"multiplier"`
	NotifyEnabled bool    `json:"notify_enabled"`

	EarnedToday      float64 `json:"earned_today"`
	EarnedWeekly     float64 `json:"earned_weekly"`
	EarnedMonthly    float64 `json:"earned_monthly"`
	CumulativeEarned float64 `json:"cumulative_earned"`
	MaxPointsEver    float64 `json:"max_points_ever"`

	CompletedToday   int `json:"completed_today"`
	CompletedWeekly  int `json:"completed_weekly"`
	CompletedMonthly int `json:"completed_monthly"`
	CompletedTotal   int `json:"completed_total"`

	ClaimedChores  []string `json:"claimed_chores"`
	ApprovedChores []string `json:"approved_chores"`
	OverdueChores  []string `json:"overdue_chores"`
	// OverdueNotified records the last overdue notification per chore so the
	// sweep can honor its cooldown window.
	OverdueNotified map[string]time.Time `json:"overdue_notified,omitempty"`

	ChoreStreaks     map[string]*StreakRecord `json:"chore_streaks,omitempty"`
	OverallStreak    int                      `json:"overall_streak"`
	OverallMaxStreak int                      `json:"overall_max_streak"`
	LastActivityDate string                   `json:"last_activity_date,omitempty"`

	PendingRewards  []string `json:"pending_rewards"`
	RedeemedRewards []string `json:"redeemed_rewards"`

	// Badges is the denormalized list of badge names currently held.
	Badges []string `json:"badges"`

	// Cumulative-badge bookkeeping. CyclePoints accrue since the last periodic
	// reset; CycleBaseline absorbs prior cycles on upgrade or maintained reset.
	CycleBaseline    float64        `json:"cycle_baseline"`
	CyclePoints      float64        `json:"cycle_points"`
	CurrentTierBadge string         `json:"current_tier_badge,omitempty"`
	BadgeCycleWins   map[string]int `json:"badge_cycle_wins,omitempty"`

	PenaltyApplies map[string]int `json:"penalty_applies,omitempty"`
	BonusApplies   map[string]int `json:"bonus_applies,omitempty"`
}

// HasClaimed reports whether the kid currently has the chore claimed.
func (k *Kid) HasClaimed(choreID string) bool { return containsID(k.ClaimedChores, choreID) }

// HasApproved reports whether the kid currently has the chore approved.
func (k *Kid) HasApproved(choreID string) bool { return containsID(k.ApprovedChores, choreID) }

// HasOverdue reports whether the chore is marked overdue for the kid.
func (k *Kid) HasOverdue(choreID string) bool { return containsID(k.OverdueChores, choreID) }

// HasBadge reports whether the kid currently holds the named badge.
func (k *Kid) HasBadge(name string) bool { return containsID(k.Badges, name) }

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// AddID appends id to list if absent and returns the result.
func AddID(list []string, id string) []string {
	if containsID(list, id) {
		return list
	}
	return append(list, id)
}

// RemoveID removes the first occurrence of id from list.
func RemoveID(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
