package engine

import (
	"fmt"

	"github.com/JunoAX/chorepoints-go/internal/models"
)

// recordChallengeProgress counts an approved chore toward every open
// challenge whose window contains now. A challenge bound to a specific chore
// ignores other chores; an unbound one counts everything.
func (e *Engine) recordChallengeProgress(kid *models.Kid, chore *models.Chore) {
	now := e.now()
	today := e.today()
	for _, c := range e.st.Snapshot().Challenges {
		if !c.InWindow(now) {
			continue
		}
		if c.SelectedChoreID != "" && c.SelectedChoreID != chore.ID {
			continue
		}
		p := c.ProgressFor(kid.ID)
		if p.Awarded {
			continue
		}
		switch c.Type {
		case models.ChallengeTotalWithinWindow:
			p.Count++
		case models.ChallengeDailyMinimum:
			if p.DailyCounts == nil {
				p.DailyCounts = make(map[string]int)
			}
			p.DailyCounts[today]++
		}
	}
}

// evaluateChallenges awards challenges whose goal is met. Total challenges
// can fire as soon as the count reaches the target; daily-minimum challenges
// are only decidable after the window closes, since every single day must
// meet the requirement. Lock held.
func (e *Engine) evaluateChallenges(kid *models.Kid) {
	now := e.now()
	for _, c := range e.st.Snapshot().Challenges {
		p := c.ProgressFor(kid.ID)
		if p.Awarded {
			continue
		}
		switch c.Type {
		case models.ChallengeTotalWithinWindow:
			if c.TargetValue > 0 && p.Count >= c.TargetValue {
				e.awardChallenge(c, kid, p)
			}
		case models.ChallengeDailyMinimum:
			if !now.After(c.EndDate) || c.RequiredDaily <= 0 {
				continue
			}
			if e.metDailyMinimum(c, p) {
				e.awardChallenge(c, kid, p)
			}
		}
	}
}

// metDailyMinimum checks that every day of the window reached the required
// count.
func (e *Engine) metDailyMinimum(c *models.Challenge, p *models.ChallengeProgress) bool {
	day := truncateToDay(c.StartDate)
	end := truncateToDay(c.EndDate)
	for !day.After(end) {
		if p.DailyCounts[day.Format(models.DateLayout)] < c.RequiredDaily {
			return false
		}
		day = day.AddDate(0, 0, 1)
	}
	return true
}

func (e *Engine) awardChallenge(c *models.Challenge, kid *models.Kid, p *models.ChallengeProgress) {
	p.Awarded = true
	e.notifyKid(kid, "Challenge completed",
		fmt.Sprintf("You completed the %q challenge!", c.Name))
	e.notifyParents(kid.ID, "Challenge completed",
		fmt.Sprintf("%s completed the %q challenge", kid.Name, c.Name))
	if c.RewardPoints != 0 {
		e.applyPointsDelta(kid, c.RewardPoints)
	}
}
