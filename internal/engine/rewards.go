package engine

import (
	"fmt"
	"time"

	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/notify"
)

// RedeemReward checks the kid can afford the reward and queues it for parent
// approval. No points move until a parent approves.
func (e *Engine) RedeemReward(kidID, rewardID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kid, ok := e.st.Kid(kidID)
	if !ok {
		return fmt.Errorf("kid %q: %w", kidID, ErrNotFound)
	}
	reward, ok := e.st.Reward(rewardID)
	if !ok {
		return fmt.Errorf("reward %q: %w", rewardID, ErrNotFound)
	}
	if kid.Points < reward.Cost {
		return &BalanceError{Reward: reward.Name, Kid: kid.Name, Available: kid.Points, Required: reward.Cost}
	}

	kid.PendingRewards = append(kid.PendingRewards, rewardID)
	notifID := e.notifyParents(kidID,
		"Reward requested",
		fmt.Sprintf("%s wants to redeem %q for %.1f points", kid.Name, reward.Name, reward.Cost),
		notify.Action{Type: notify.ActionApproveReward, KidID: kidID, EntityID: rewardID},
		notify.Action{Type: notify.ActionDisapproveReward, KidID: kidID, EntityID: rewardID},
		notify.Action{Type: notify.ActionRemind30, KidID: kidID, EntityID: rewardID},
	)
	e.st.AddRewardApproval(models.PendingRewardApproval{
		KidID:          kidID,
		RewardID:       rewardID,
		Timestamp:      e.now(),
		NotificationID: notifID,
	})

	e.persist()
	return nil
}

// ApproveReward deducts the cost and moves the reward to the redeemed list.
// The balance is re-checked here because points may have been spent since
// the redemption was queued.
func (e *Engine) ApproveReward(kidID, rewardID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kid, ok := e.st.Kid(kidID)
	if !ok {
		return fmt.Errorf("kid %q: %w", kidID, ErrNotFound)
	}
	reward, ok := e.st.Reward(rewardID)
	if !ok {
		return fmt.Errorf("reward %q: %w", rewardID, ErrNotFound)
	}
	if !e.st.HasRewardApproval(kidID, rewardID) {
		return fmt.Errorf("no pending redemption of %q for kid %q: %w", rewardID, kidID, ErrNotFound)
	}
	if kid.Points < reward.Cost {
		return &BalanceError{Reward: reward.Name, Kid: kid.Name, Available: kid.Points, Required: reward.Cost}
	}

	e.st.RemoveRewardApproval(kidID, rewardID)
	kid.PendingRewards = models.RemoveID(kid.PendingRewards, rewardID)
	kid.RedeemedRewards = append(kid.RedeemedRewards, rewardID)
	e.applyPointsDelta(kid, -reward.Cost)

	e.notifyKid(kid, "Reward approved",
		fmt.Sprintf("%q was approved, enjoy!", reward.Name))

	e.persist()
	return nil
}

// DisapproveReward removes one pending redemption without touching points.
func (e *Engine) DisapproveReward(kidID, rewardID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kid, ok := e.st.Kid(kidID)
	if !ok {
		return fmt.Errorf("kid %q: %w", kidID, ErrNotFound)
	}
	reward, ok := e.st.Reward(rewardID)
	if !ok {
		return fmt.Errorf("reward %q: %w", rewardID, ErrNotFound)
	}
	if !e.st.RemoveRewardApproval(kidID, rewardID) {
		return fmt.Errorf("no pending redemption of %q for kid %q: %w", rewardID, kidID, ErrNotFound)
	}
	kid.PendingRewards = models.RemoveID(kid.PendingRewards, rewardID)

	e.notifyKid(kid, "Reward not approved",
		fmt.Sprintf("%q was not approved this time", reward.Name))

	e.persist()
	return nil
}

// RemindRewardIn re-sends the parent notification for a pending redemption
// after the delay, only if it is still pending by then.
func (e *Engine) RemindRewardIn(kidID, rewardID string, delay time.Duration) error {
	e.mu.Lock()
	if !e.st.HasRewardApproval(kidID, rewardID) {
		e.mu.Unlock()
		return fmt.Errorf("no pending redemption of %q for kid %q: %w", rewardID, kidID, ErrNotFound)
	}
	e.mu.Unlock()

	time.AfterFunc(delay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if !e.st.HasRewardApproval(kidID, rewardID) {
			return
		}
		kid, ok := e.st.Kid(kidID)
		if !ok {
			return
		}
		reward, ok := e.st.Reward(rewardID)
		if !ok {
			return
		}
		e.notifyParents(kidID,
			"Reminder: reward waiting",
			fmt.Sprintf("%s is still waiting for approval of %q", kid.Name, reward.Name),
			notify.Action{Type: notify.ActionApproveReward, KidID: kidID, EntityID: rewardID},
			notify.Action{Type: notify.ActionDisapproveReward, KidID: kidID, EntityID: rewardID},
		)
	})
	return nil
}

// ApplyPenalty deducts the penalty's points from the kid.
func (e *Engine) ApplyPenalty(kidID, penaltyID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kid, ok := e.st.Kid(kidID)
	if !ok {
		return fmt.Errorf("kid %q: %w", kidID, ErrNotFound)
	}
	penalty, ok := e.st.Penalty(penaltyID)
	if !ok {
		return fmt.Errorf("penalty %q: %w", penaltyID, ErrNotFound)
	}

	if kid.PenaltyApplies == nil {
		kid.PenaltyApplies = make(map[string]int)
	}
	kid.PenaltyApplies[penaltyID]++
	e.applyPointsDelta(kid, -penalty.Points)

	e.notifyKid(kid, "Penalty applied",
		fmt.Sprintf("%q cost you %.1f points", penalty.Name, penalty.Points))

	e.persist()
	return nil
}

// ApplyBonus grants the bonus's points to the kid.
func (e *Engine) ApplyBonus(kidID, bonusID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kid, ok := e.st.Kid(kidID)
	if !ok {
		return fmt.Errorf("kid %q: %w", kidID, ErrNotFound)
	}
	bonus, ok := e.st.Bonus(bonusID)
	if !ok {
		return fmt.Errorf("bonus %q: %w", bonusID, ErrNotFound)
	}

	if kid.BonusApplies == nil {
		kid.BonusApplies = make(map[string]int)
	}
	kid.BonusApplies[bonusID]++
	e.applyPointsDelta(kid, bonus.Points)

	e.notifyKid(kid, "Bonus awarded",
		fmt.Sprintf("%q earned you %.1f points", bonus.Name, bonus.Points))

	e.persist()
	return nil
}
