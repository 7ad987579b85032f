package models

// AchievementType discriminates achievement progress rules.
type AchievementType string

const (
	AchievementStreak       AchievementType = "streak"
	AchievementTotal        AchievementType = "total"
	AchievementDailyMinimum AchievementType = "daily_minimum"
)

// AchievementProgress is one kid's progress toward an achievement.
// Baseline is the kid's lifetime completion count captured the first time a
// total-type achievement sees the kid. CountedDate guards streak and
// daily-minimum progress so a day is only counted once.
type AchievementProgress struct {
	CurrentStreak int    `json:"current_streak,omitempty"`
	CountedDate   string `json:"counted_date,omitempty"`
	Baseline      int    `json:"baseline,omitempty"`
	BaselineSet   bool   `json:"baseline_set,omitempty"`
	Awarded       bool   `json:"awarded"`
}

// Achievement grants a one-shot point reward per kid once its criterion is
// met. Streak achievements watch a single selected chore.
type Achievement struct {
	ID              string                          `json:"id"`
	Name            string                          `json:"name"`
	Description     string                          `json:"description,omitempty"`
	Type            AchievementType                 `json:"type"`
	TargetValue     int                             `json:"target_value"`
	RewardPoints    float64                         `json:"reward_points"`
	SelectedChoreID string                          `json:"selected_chore_id,omitempty"`
	Progress        map[string]*AchievementProgress `json:"progress,omitempty"`
}

// ProgressFor returns the kid's progress record, creating it lazily.
func (a *Achievement) ProgressFor(kidID string) *AchievementProgress {
	if a.Progress == nil {
		a.Progress = make(map[string]*AchievementProgress)
	}
	p, ok := a.Progress[kidID]
	if !ok {
		p = &AchievementProgress{}
		a.Progress[kidID] = p
	}
	return p
}
