package models

// Snapshot is the full engine state handed to the storage gateway. Every
// collection is keyed by opaque id.
type Snapshot struct {
	Kids         map[string]*Kid         `json:"kids"`
	Parents      map[string]*Parent      `json:"parents"`
	Chores       map[string]*Chore       `json:"chores"`
	Badges       map[string]*Badge       `json:"badges"`
	Rewards      map[string]*Reward      `json:"rewards"`
	Penalties    map[string]*Penalty     `json:"penalties"`
	Bonuses      map[string]*Bonus       `json:"bonuses"`
	Achievements map[string]*Achievement `json:"achievements"`
	Challenges   map[string]*Challenge   `json:"challenges"`

	PendingChoreApprovals  []PendingChoreApproval  `json:"pending_chore_approvals"`
	PendingRewardApprovals []PendingRewardApproval `json:"pending_reward_approvals"`

	// LastDailyReset is the calendar day (YYYY-MM-DD) of the most recent
	// daily reset. It rides the snapshot so a restart does not re-run the
	// reset for a day that already had one.
	LastDailyReset string `json:"last_daily_reset,omitempty"`
}

// NewSnapshot returns an empty snapshot with every collection allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Kids:         make(map[string]*Kid),
		Parents:      make(map[string]*Parent),
		Chores:       make(map[string]*Chore),
		Badges:       make(map[string]*Badge),
		Rewards:      make(map[string]*Reward),
		Penalties:    make(map[string]*Penalty),
		Bonuses:      make(map[string]*Bonus),
		Achievements: make(map[string]*Achievement),
		Challenges:   make(map[string]*Challenge),
	}
}
