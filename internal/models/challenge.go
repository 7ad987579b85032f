package models

import "time"

// ChallengeType discriminates challenge progress rules.
type ChallengeType string

const (
	ChallengeTotalWithinWindow ChallengeType = "total_within_window"
	ChallengeDailyMinimum      ChallengeType = "daily_minimum"
)

// ChallengeProgress is one kid's progress inside a challenge window.
type ChallengeProgress struct {
	Count       int            `json:"count,omitempty"`
	DailyCounts map[string]int `json:"daily_counts,omitempty"`
	Awarded     bool           `json:"awarded"`
}

// Challenge is a time-boxed goal granting a one-shot point reward per kid.
type Challenge struct {
	ID              string                        `json:"id"`
	Name            string                        `json:"name"`
	Description     string                        `json:"description,omitempty"`
	Type            ChallengeType                 `json:"type"`
	TargetValue     int                           `json:"target_value"`
	RequiredDaily   int                           `json:"required_daily,omitempty"`
	RewardPoints    float64                       `json:"reward_points"`
	SelectedChoreID string                        `json:"selected_chore_id,omitempty"`
	StartDate       time.Time                     `json:"start_date"`
	EndDate         time.Time                     `json:"end_date"`
	Progress        map[string]*ChallengeProgress `json:"progress,omitempty"`
}

// ProgressFor returns the kid's progress record, creating it lazily.
func (c *Challenge) ProgressFor(kidID string) *ChallengeProgress {
	if c.Progress == nil {
		c.Progress = make(map[string]*ChallengeProgress)
	}
	p, ok := c.Progress[kidID]
	if !ok {
		p = &ChallengeProgress{DailyCounts: make(map[string]int)}
		c.Progress[kidID] = p
	}
	return p
}

// InWindow reports whether t falls inside the challenge window.
func (c *Challenge) InWindow(t time.Time) bool {
	return !t.Before(c.StartDate) && !t.After(c.EndDate)
}
