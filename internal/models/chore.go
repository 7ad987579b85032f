package models

import "time"

// ChoreState is the lifecycle state of a chore, either for a single kid or
// globally across all assignees.
type ChoreState string

const (
	ChorePending        ChoreState = "pending"
	ChoreClaimed        ChoreState = "claimed"
	ChoreApproved       ChoreState = "approved"
	ChoreOverdue        ChoreState = "overdue"
	ChoreClaimedInPart  ChoreState = "claimed_in_part"
	ChoreApprovedInPart ChoreState = "approved_in_part"
	ChoreIndependent    ChoreState = "independent"
	ChoreUnknown        ChoreState = "unknown"
)

// Frequency describes how often a chore recurs.
type Frequency string

const (
	FrequencyNone     Frequency = "none"
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyCustom   Frequency = "custom"
)

// IntervalUnit is the unit for custom recurrence intervals.
type IntervalUnit string

const (
	UnitDays   IntervalUnit = "days"
	UnitWeeks  IntervalUnit = "weeks"
	UnitMonths IntervalUnit = "months"
)

// Chore is an assignable task definition plus its shared runtime state.
// Per-kid claim/approval state lives on the Kid; State here is the derived
// global state and is never set directly for multi-assignee chores.
type Chore struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Description         string       `json:"description,omitempty"`
	DefaultPoints       float64      `json:"default_points"`
	AssignedKids        []string     `json:"assigned_kids"`
	Shared              bool         `json:"shared"`
	AllowMultipleClaims bool         `json:"allow_multiple_claims_per_day"`
	PartialAllowed      bool         `json:"partial_allowed"`
	Frequency           Frequency    `json:"frequency"`
	CustomInterval      int          `json:"custom_interval,omitempty"`
	CustomIntervalUnit  IntervalUnit `json:"custom_interval_unit,omitempty"`
	ApplicableDays      []int        `json:"applicable_days,omitempty"` // 0=Sunday .. 6=Saturday
	DueDate             *time.Time   `json:"due_date,omitempty"`
	LastClaimed         *time.Time   `json:"last_claimed,omitempty"`
	LastCompleted       *time.Time   `json:"last_completed,omitempty"`
	State               ChoreState   `json:"state"`
}

// AssignedTo reports whether the chore is assigned to the given kid.
func (ch *Chore) AssignedTo(kidID string) bool {
	for _, id := range ch.AssignedKids {
		if id == kidID {
			return true
		}
	}
	return false
}
