package engine

import (
	"github.com/JunoAX/chorepoints-go/internal/models"
)

// ApplyCatalog reconciles engine state against the external configuration
// source. Keys present only in the catalog are created, keys present in both
// have their definition fields updated with runtime state preserved, and
// keys missing from the catalog are deleted with cascading cleanup of every
// cross-reference.
func (e *Engine) ApplyCatalog(data *models.CatalogData) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.st.Snapshot()

	// Deletes first so creates cannot collide with stale references.
	for id := range snap.Kids {
		if data.Kids[id] == nil {
			e.deleteKid(id)
		}
	}
	for id := range snap.Parents {
		if data.Parents[id] == nil {
			delete(snap.Parents, id)
		}
	}
	for id := range snap.Chores {
		if data.Chores[id] == nil {
			e.deleteChore(id)
		}
	}
	for id := range snap.Badges {
		if data.Badges[id] == nil {
			e.deleteBadge(id)
		}
	}
	for id := range snap.Rewards {
		if data.Rewards[id] == nil {
			e.deleteReward(id)
		}
	}
	for id := range snap.Penalties {
		if data.Penalties[id] == nil {
			for _, kid := range snap.Kids {
				delete(kid.PenaltyApplies, id)
			}
			delete(snap.Penalties, id)
		}
	}
	for id := range snap.Bonuses {
		if data.Bonuses[id] == nil {
			for _, kid := range snap.Kids {
				delete(kid.BonusApplies, id)
			}
			delete(snap.Bonuses, id)
		}
	}
	for id := range snap.Achievements {
		if data.Achievements[id] == nil {
			e.deleteAchievement(id)
		}
	}
	for id := range snap.Challenges {
		if data.Challenges[id] == nil {
			e.deleteChallenge(id)
		}
	}

	for id, def := range data.Kids {
		if kid, ok := snap.Kids[id]; ok {
			kid.Name = def.Name
			kid.NotifyEnabled = def.NotifyEnabled
		} else {
			snap.Kids[id] = &models.Kid{
				ID:            id,
				Name:          def.Name,
				NotifyEnabled: def.NotifyEnabled,
				Multiplier:    DefaultMultiplier,
			}
		}
	}
	for id, def := range data.Parents {
		if p, ok := snap.Parents[id]; ok {
			p.Name = def.Name
			p.Username = def.Username
			p.PasswordHash = def.PasswordHash
			p.AssociatedKids = def.AssociatedKids
			p.NotifyEnabled = def.NotifyEnabled
		} else {
			snap.Parents[id] = &models.Parent{
				ID:             id,
				Name:           def.Name,
				Username:       def.Username,
				PasswordHash:   def.PasswordHash,
				AssociatedKids: def.AssociatedKids,
				NotifyEnabled:  def.NotifyEnabled,
			}
		}
	}
	for id, def := range data.Chores {
		if ch, ok := snap.Chores[id]; ok {
			e.updateChoreDefinition(ch, def)
		} else {
			created := *def
			created.ID = id
			created.State = models.ChorePending
			snap.Chores[id] = &created
			e.recomputeGlobalState(&created)
		}
	}
	for id, def := range data.Badges {
		if b, ok := snap.Badges[id]; ok {
			updateBadgeDefinition(b, def)
		} else {
			created := *def
			created.ID = id
			snap.Badges[id] = &created
		}
	}
	for id, def := range data.Rewards {
		if r, ok := snap.Rewards[id]; ok {
			r.Name, r.Description, r.Cost = def.Name, def.Description, def.Cost
		} else {
			created := *def
			created.ID = id
			snap.Rewards[id] = &created
		}
	}
	for id, def := range data.Penalties {
		if p, ok := snap.Penalties[id]; ok {
			p.Name, p.Description, p.Points = def.Name, def.Description, def.Points
		} else {
			created := *def
			created.ID = id
			snap.Penalties[id] = &created
		}
	}
	for id, def := range data.Bonuses {
		if b, ok := snap.Bonuses[id]; ok {
			b.Name, b.Description, b.Points = def.Name, def.Description, def.Points
		} else {
			created := *def
			created.ID = id
			snap.Bonuses[id] = &created
		}
	}
	for id, def := range data.Achievements {
		if a, ok := snap.Achievements[id]; ok {
			a.Name = def.Name
			a.Description = def.Description
			a.Type = def.Type
			a.TargetValue = def.TargetValue
			a.RewardPoints = def.RewardPoints
			a.SelectedChoreID = def.SelectedChoreID
		} else {
			created := *def
			created.ID = id
			created.Progress = nil
			snap.Achievements[id] = &created
			// Total achievements measure progress from creation time, so
			// capture every kid's lifetime count as the baseline now.
			if created.Type == models.AchievementTotal {
				for kidID, kid := range snap.Kids {
					p := created.ProgressFor(kidID)
					p.Baseline = kid.CompletedTotal
					p.BaselineSet = true
				}
			}
		}
	}
	for id, def := range data.Challenges {
		if c, ok := snap.Challenges[id]; ok {
			c.Name = def.Name
			c.Description = def.Description
			c.Type = def.Type
			c.TargetValue = def.TargetValue
			c.RequiredDaily = def.RequiredDaily
			c.RewardPoints = def.RewardPoints
			c.SelectedChoreID = def.SelectedChoreID
			c.StartDate = def.StartDate
			c.EndDate = def.EndDate
		} else {
			created := *def
			created.ID = id
			created.Progress = nil
			snap.Challenges[id] = &created
		}
	}

	for _, chore := range snap.Chores {
		e.recomputeGlobalState(chore)
	}
	for _, kid := range snap.Kids {
		e.updateMultiplier(kid)
	}

	e.persist()
}

// updateChoreDefinition overwrites definition fields, preserving runtime
// state. Kids removed from the assignment list lose their per-kid state for
// the chore.
func (e *Engine) updateChoreDefinition(ch *models.Chore, def *models.Chore) {
	removed := []string{}
	for _, kidID := range ch.AssignedKids {
		if !def.AssignedTo(kidID) {
			removed = append(removed, kidID)
		}
	}
	ch.Name = def.Name
	ch.Description = def.Description
	ch.DefaultPoints = def.DefaultPoints
	ch.AssignedKids = def.AssignedKids
	ch.Shared = def.Shared
	ch.AllowMultipleClaims = def.AllowMultipleClaims
	ch.PartialAllowed = def.PartialAllowed
	ch.Frequency = def.Frequency
	ch.CustomInterval = def.CustomInterval
	ch.CustomIntervalUnit = def.CustomIntervalUnit
	ch.ApplicableDays = def.ApplicableDays
	if def.DueDate != nil {
		ch.DueDate = def.DueDate
	}
	for _, kidID := range removed {
		kid, ok := e.st.Kid(kidID)
		if !ok {
			continue
		}
		kid.ClaimedChores = models.RemoveID(kid.ClaimedChores, ch.ID)
		kid.ApprovedChores = models.RemoveID(kid.ApprovedChores, ch.ID)
		kid.OverdueChores = models.RemoveID(kid.OverdueChores, ch.ID)
		delete(kid.OverdueNotified, ch.ID)
		e.st.RemoveChoreApprovals(kidID, ch.ID)
	}
}

func updateBadgeDefinition(b *models.Badge, def *models.Badge) {
	b.Name = def.Name
	b.Description = def.Description
	b.Type = def.Type
	b.AwardMode = def.AwardMode
	b.AwardPoints = def.AwardPoints
	b.AwardRewardID = def.AwardRewardID
	b.ThresholdValue = def.ThresholdValue
	b.MaintenanceValue = def.MaintenanceValue
	b.PointsMultiplier = def.PointsMultiplier
	b.ResetSchedule = def.ResetSchedule
	b.ResetDate = def.ResetDate
	b.GracePeriodDays = def.GracePeriodDays
	b.DailyThreshold = def.DailyThreshold
	b.Criteria = def.Criteria
	b.Window = def.Window
	if def.WindowStart != nil {
		b.WindowStart = def.WindowStart
	}
	if def.WindowEnd != nil {
		b.WindowEnd = def.WindowEnd
	}
	b.Recurring = def.Recurring
	b.RequiredChores = def.RequiredChores
	b.AchievementID = def.AchievementID
	b.ChallengeID = def.ChallengeID
	if def.OccasionDate != nil {
		b.OccasionDate = def.OccasionDate
	}
}

func (e *Engine) deleteKid(id string) {
	snap := e.st.Snapshot()
	for _, chore := range snap.Chores {
		chore.AssignedKids = models.RemoveID(chore.AssignedKids, id)
	}
	for _, parent := range snap.Parents {
		parent.AssociatedKids = models.RemoveID(parent.AssociatedKids, id)
	}
	for _, badge := range snap.Badges {
		badge.EarnedBy = models.RemoveID(badge.EarnedBy, id)
		delete(badge.LastAwarded, id)
		delete(badge.WindowProgress, id)
	}
	for _, a := range snap.Achievements {
		delete(a.Progress, id)
	}
	for _, c := range snap.Challenges {
		delete(c.Progress, id)
	}
	kept := snap.PendingChoreApprovals[:0]
	for _, a := range snap.PendingChoreApprovals {
		if a.KidID != id {
			kept = append(kept, a)
		}
	}
	snap.PendingChoreApprovals = kept
	keptR := snap.PendingRewardApprovals[:0]
	for _, a := range snap.PendingRewardApprovals {
		if a.KidID != id {
			keptR = append(keptR, a)
		}
	}
	snap.PendingRewardApprovals = keptR
	delete(snap.Kids, id)
}

func (e *Engine) deleteChore(id string) {
	snap := e.st.Snapshot()
	for _, kid := range snap.Kids {
		kid.ClaimedChores = models.RemoveID(kid.ClaimedChores, id)
		kid.ApprovedChores = models.RemoveID(kid.ApprovedChores, id)
		kid.OverdueChores = models.RemoveID(kid.OverdueChores, id)
		delete(kid.OverdueNotified, id)
		delete(kid.ChoreStreaks, id)
	}
	for _, a := range snap.Achievements {
		if a.SelectedChoreID == id {
			a.SelectedChoreID = ""
		}
	}
	for _, c := range snap.Challenges {
		if c.SelectedChoreID == id {
			c.SelectedChoreID = ""
		}
	}
	for _, b := range snap.Badges {
		b.RequiredChores = models.RemoveID(b.RequiredChores, id)
	}
	kept := snap.PendingChoreApprovals[:0]
	for _, a := range snap.PendingChoreApprovals {
		if a.ChoreID != id {
			kept = append(kept, a)
		}
	}
	snap.PendingChoreApprovals = kept
	delete(snap.Chores, id)
}

func (e *Engine) deleteBadge(id string) {
	snap := e.st.Snapshot()
	b, ok := snap.Badges[id]
	if !ok {
		return
	}
	for _, kid := range snap.Kids {
		kid.Badges = models.RemoveID(kid.Badges, b.Name)
		delete(kid.BadgeCycleWins, id)
		if kid.CurrentTierBadge == id {
			kid.CurrentTierBadge = ""
		}
	}
	delete(snap.Badges, id)
}

func (e *Engine) deleteReward(id string) {
	snap := e.st.Snapshot()
	for _, kid := range snap.Kids {
		kid.PendingRewards = removeAll(kid.PendingRewards, id)
		kid.RedeemedRewards = removeAll(kid.RedeemedRewards, id)
	}
	kept := snap.PendingRewardApprovals[:0]
	for _, a := range snap.PendingRewardApprovals {
		if a.RewardID != id {
			kept = append(kept, a)
		}
	}
	snap.PendingRewardApprovals = kept
	delete(snap.Rewards, id)
}

func (e *Engine) deleteAchievement(id string) {
	snap := e.st.Snapshot()
	for _, b := range snap.Badges {
		if b.AchievementID == id {
			b.AchievementID = ""
		}
	}
	delete(snap.Achievements, id)
}

func (e *Engine) deleteChallenge(id string) {
	snap := e.st.Snapshot()
	for _, b := range snap.Badges {
		if b.ChallengeID == id {
			b.ChallengeID = ""
		}
	}
	delete(snap.Challenges, id)
}

func removeAll(list []string, id string) []string {
	kept := list[:0]
	for _, v := range list {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}
