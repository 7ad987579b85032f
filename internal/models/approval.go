package models

import "time"

// PendingChoreApproval is a queued claim awaiting a parent's decision.
// NotificationID correlates the delivered parent notification so reminder
// timers and action callbacks can find it.
type PendingChoreApproval struct {
	KidID          string    `json:"kid_id"`
	ChoreID        string    `json:"chore_id"`
	Timestamp      time.Time `json:"timestamp"`
	NotificationID string    `json:"notification_id"`
}

// PendingRewardApproval is a queued redemption awaiting a parent's decision.
type PendingRewardApproval struct {
	KidID          string    `json:"kid_id"`
	RewardID       string    `json:"reward_id"`
	Timestamp      time.Time `json:"timestamp"`
	NotificationID string    `json:"notification_id"`
}
