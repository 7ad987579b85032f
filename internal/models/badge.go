package models

import "time"

// BadgeType discriminates the badge variants the engine knows how to evaluate.
type BadgeType string

const (
	BadgeCumulative        BadgeType = "cumulative"
	BadgeDaily             BadgeType = "daily"
	BadgePeriodic          BadgeType = "periodic"
	BadgeAchievementLinked BadgeType = "achievement_linked"
	BadgeChallengeLinked   BadgeType = "challenge_linked"
	BadgeSpecialOccasion   BadgeType = "special_occasion"
)

// AwardMode selects the side effect applied when a badge is awarded.
type AwardMode string

const (
	AwardNone            AwardMode = "none"
	AwardPoints          AwardMode = "points"
	AwardReward          AwardMode = "reward"
	AwardPointsAndReward AwardMode = "points_and_reward"
)

// PeriodicCriteria selects what a periodic badge measures.
type PeriodicCriteria string

const (
	CriteriaPoints     PeriodicCriteria = "points"
	CriteriaChoreCount PeriodicCriteria = "chore_count"
)

// ResetSchedule is when a cumulative badge's cycle rolls over.
type ResetSchedule string

const (
	ResetYearly    ResetSchedule = "yearly"
	ResetQuarterly ResetSchedule = "quarterly"
	ResetMonthly   ResetSchedule = "monthly"
	ResetCustom    ResetSchedule = "custom"
)

// PeriodicWindow is the evaluation window of a periodic badge.
type PeriodicWindow string

const (
	WindowWeekly    PeriodicWindow = "weekly"
	WindowMonthly   PeriodicWindow = "monthly"
	WindowQuarterly PeriodicWindow = "quarterly"
	WindowCustom    PeriodicWindow = "custom"
)

// Badge is a tagged definition; Type selects which of the variant field
// groups below apply. EarnedBy is runtime state shared by every variant
// except special occasions, which are guarded by LastAwarded instead.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        BadgeType `json:"type"`

	AwardMode     AwardMode `json:"award_mode"`
	AwardPoints   float64   `json:"award_points,omitempty"`
	AwardRewardID string    `json:"award_reward_id,omitempty"`

	// Cumulative fields.
	ThresholdValue   float64       `json:"threshold_value,omitempty"`
	MaintenanceValue float64       `json:"maintenance_value,omitempty"`
	PointsMultiplier float64       `json:"points_multiplier,omitempty"`
	ResetSchedule    ResetSchedule `json:"reset_schedule,omitempty"`
	ResetDate        *time.Time    `json:"reset_date,omitempty"`
	GracePeriodDays  int           `json:"grace_period_days,omitempty"`
	// NextReset is runtime bookkeeping: the boundary of the current cycle.
	NextReset *time.Time `json:"next_reset,omitempty"`

	// Daily fields. DailyThreshold is the completed-chore count required.
	DailyThreshold int `json:"daily_threshold,omitempty"`

	// Periodic fields.
	Criteria       PeriodicCriteria `json:"criteria,omitempty"`
	Window         PeriodicWindow   `json:"window,omitempty"`
	WindowStart    *time.Time       `json:"window_start,omitempty"`
	WindowEnd      *time.Time       `json:"window_end,omitempty"`
	Recurring      bool             `json:"recurring,omitempty"`
	RequiredChores []string         `json:"required_chores,omitempty"`
	// WindowProgress tracks points earned per kid inside the current window
	// for points-criteria periodic badges.
	WindowProgress map[string]float64 `json:"window_progress,omitempty"`

	// Linked fields.
	AchievementID string `json:"achievement_id,omitempty"`
	ChallengeID   string `json:"challenge_id,omitempty"`

	// Special-occasion fields. OccasionDate is the trigger day; LastAwarded
	// maps kid id to the calendar day of the most recent award.
	OccasionDate *time.Time        `json:"occasion_date,omitempty"`
	LastAwarded  map[string]string `json:"last_awarded,omitempty"`

	EarnedBy []string `json:"earned_by"`
}
