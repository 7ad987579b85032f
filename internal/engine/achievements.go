package engine

import (
	"fmt"

	"github.com/JunoAX/chorepoints-go/internal/models"
)

// recordChoreCompletion feeds an approved chore into the progress trackers
// that care about which chore was completed. Called from ApproveChore before
// the ledger update so evaluation sees fresh progress. Lock held.
func (e *Engine) recordChoreCompletion(kid *models.Kid, chore *models.Chore) {
	e.recordAchievementProgress(kid, chore)
	e.recordChallengeProgress(kid, chore)
}

// recordAchievementProgress advances streak achievements watching the
// completed chore: a day already counted is a no-op, yesterday extends the
// streak, any gap restarts it at one.
func (e *Engine) recordAchievementProgress(kid *models.Kid, chore *models.Chore) {
	today := e.today()
	yesterday := e.now().AddDate(0, 0, -1).Format(models.DateLayout)
	for _, a := range e.st.Snapshot().Achievements {
		if a.Type != models.AchievementStreak || a.SelectedChoreID != chore.ID {
			continue
		}
		p := a.ProgressFor(kid.ID)
		if p.Awarded {
			continue
		}
		switch p.CountedDate {
		case today:
			continue
		case yesterday:
			p.CurrentStreak++
		default:
			p.CurrentStreak = 1
		}
		p.CountedDate = today
	}
}

// evaluateAchievements awards any achievement whose criterion the kid now
// meets. Awards are one-shot per kid: once awarded, the record is never
// re-evaluated. Lock held.
func (e *Engine) evaluateAchievements(kid *models.Kid) {
	for _, a := range e.st.Snapshot().Achievements {
		p := a.ProgressFor(kid.ID)
		if p.Awarded {
			continue
		}
		switch a.Type {
		case models.AchievementStreak:
			if p.CurrentStreak >= a.TargetValue {
				e.awardAchievement(a, kid, p)
			}
		case models.AchievementTotal:
			if !p.BaselineSet {
				p.Baseline = kid.CompletedTotal
				p.BaselineSet = true
				continue
			}
			if kid.CompletedTotal >= p.Baseline+a.TargetValue {
				e.awardAchievement(a, kid, p)
			}
		case models.AchievementDailyMinimum:
			if a.TargetValue > 0 && kid.CompletedToday >= a.TargetValue {
				e.awardAchievement(a, kid, p)
			}
		}
	}
}

func (e *Engine) awardAchievement(a *models.Achievement, kid *models.Kid, p *models.AchievementProgress) {
	p.Awarded = true
	e.notifyKid(kid, "Achievement unlocked",
		fmt.Sprintf("You completed the %q achievement!", a.Name))
	e.notifyParents(kid.ID, "Achievement unlocked",
		fmt.Sprintf("%s completed the %q achievement", kid.Name, a.Name))
	if a.RewardPoints != 0 {
		e.applyPointsDelta(kid, a.RewardPoints)
	}
}
