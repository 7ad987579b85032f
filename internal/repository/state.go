// Package repository holds the in-memory state arena for the rules engine.
// Collections are keyed by opaque ids and passed explicitly into engine
// calls; there are no package-level singletons. The engine serializes all
// access, so State itself carries no locking.
package repository

import (
	"encoding/json"
	"fmt"

	"github.com/JunoAX/chorepoints-go/internal/models"
)

// State wraps the snapshot collections with typed lookups.
type State struct {
	snap *models.Snapshot
}

// New returns an empty State.
func New() *State {
	return &State{snap: models.NewSnapshot()}
}

// FromSnapshot wraps a loaded snapshot, allocating any nil collections so
// callers never see nil maps.
func FromSnapshot(s *models.Snapshot) *State {
	if s == nil {
		return New()
	}
	if s.Kids == nil {
		s.Kids = make(map[string]*models.Kid)
	}
	if s.Parents == nil {
		s.Parents = make(map[string]*models.Parent)
	}
	if s.Chores == nil {
		s.Chores = make(map[string]*models.Chore)
	}
	if s.Badges == nil {
		s.Badges = make(map[string]*models.Badge)
	}
	if s.Rewards == nil {
		s.Rewards = make(map[string]*models.Reward)
	}
	if s.Penalties == nil {
		s.Penalties = make(map[string]*models.Penalty)
	}
	if s.Bonuses == nil {
		s.Bonuses = make(map[string]*models.Bonus)
	}
	if s.Achievements == nil {
		s.Achievements = make(map[string]*models.Achievement)
	}
	if s.Challenges == nil {
		s.Challenges = make(map[string]*models.Challenge)
	}
	return &State{snap: s}
}

// Snapshot exposes the underlying collections.
func (s *State) Snapshot() *models.Snapshot { return s.snap }

// Clone returns a deep copy of the current snapshot, safe to hand to an
// asynchronous writer while the engine keeps mutating the original.
func (s *State) Clone() (*models.Snapshot, error) {
	raw, err := json.Marshal(s.snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	var out models.Snapshot
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot copy: %w", err)
	}
	return &out, nil
}

func (s *State) Kid(id string) (*models.Kid, bool) {
	k, ok := s.snap.Kids[id]
	return k, ok
}

func (s *State) Parent(id string) (*models.Parent, bool) {
	p, ok := s.snap.Parents[id]
	return p, ok
}

// ParentByUsername scans parents for a login match.
func (s *State) ParentByUsername(username string) (*models.Parent, bool) {
	for _, p := range s.snap.Parents {
		if p.Username == username {
			return p, true
		}
	}
	return nil, false
}

func (s *State) Chore(id string) (*models.Chore, bool) {
	c, ok := s.snap.Chores[id]
	return c, ok
}

func (s *State) Badge(id string) (*models.Badge, bool) {
	b, ok := s.snap.Badges[id]
	return b, ok
}

func (s *State) Reward(id string) (*models.Reward, bool) {
	r, ok := s.snap.Rewards[id]
	return r, ok
}

func (s *State) Penalty(id string) (*models.Penalty, bool) {
	p, ok := s.snap.Penalties[id]
	return p, ok
}

func (s *State) Bonus(id string) (*models.Bonus, bool) {
	b, ok := s.snap.Bonuses[id]
	return b, ok
}

func (s *State) Achievement(id string) (*models.Achievement, bool) {
	a, ok := s.snap.Achievements[id]
	return a, ok
}

func (s *State) Challenge(id string) (*models.Challenge, bool) {
	c, ok := s.snap.Challenges[id]
	return c, ok
}

// AddChoreApproval enqueues a pending chore approval.
func (s *State) AddChoreApproval(a models.PendingChoreApproval) {
	s.snap.PendingChoreApprovals = append(s.snap.PendingChoreApprovals, a)
}

// RemoveChoreApprovals drops every pending chore approval matching kid and
// chore and returns how many were removed.
func (s *State) RemoveChoreApprovals(kidID, choreID string) int {
	kept := s.snap.PendingChoreApprovals[:0]
	removed := 0
	for _, a := range s.snap.PendingChoreApprovals {
		if a.KidID == kidID && a.ChoreID == choreID {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	s.snap.PendingChoreApprovals = kept
	return removed
}

// HasChoreApproval reports whether a pending approval exists for kid+chore.
func (s *State) HasChoreApproval(kidID, choreID string) bool {
	for _, a := range s.snap.PendingChoreApprovals {
		if a.KidID == kidID && a.ChoreID == choreID {
			return true
		}
	}
	return false
}

// AddRewardApproval enqueues a pending reward approval.
func (s *State) AddRewardApproval(a models.PendingRewardApproval) {
	s.snap.PendingRewardApprovals = append(s.snap.PendingRewardApprovals, a)
}

// RemoveRewardApproval drops the first pending reward approval matching kid
// and reward, reporting whether one was found.
func (s *State) RemoveRewardApproval(kidID, rewardID string) bool {
	for i, a := range s.snap.PendingRewardApprovals {
		if a.KidID == kidID && a.RewardID == rewardID {
			s.snap.PendingRewardApprovals = append(
				s.snap.PendingRewardApprovals[:i], s.snap.PendingRewardApprovals[i+1:]...)
			return true
		}
	}
	return false
}

// HasRewardApproval reports whether a pending approval exists for kid+reward.
func (s *State) HasRewardApproval(kidID, rewardID string) bool {
	for _, a := range s.snap.PendingRewardApprovals {
		if a.KidID == kidID && a.RewardID == rewardID {
			return true
		}
	}
	return false
}
