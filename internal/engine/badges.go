package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/repository"
)

// Decision is the outcome of evaluating a badge for one kid.
type Decision int

const (
	DecisionNone Decision = iota
	DecisionAward
	DecisionMaintain
	DecisionRevoke
)

// evalContext carries the read state an evaluator needs.
type evalContext struct {
	st  *repository.State
	kid *models.Kid
	now time.Time
}

// badgeEvaluator is the shared contract all badge variants implement.
type badgeEvaluator interface {
	evaluate(ctx evalContext) Decision
}

// evaluatorFor dispatches once on the badge type; all further behavior lives
// on the variant.
func evaluatorFor(b *models.Badge) badgeEvaluator {
	switch b.Type {
	case models.BadgeCumulative:
		return cumulativeBadge{b}
	case models.BadgeDaily:
		return dailyBadge{b}
	case models.BadgePeriodic:
		return periodicBadge{b}
	case models.BadgeAchievementLinked:
		return achievementLinkedBadge{b}
	case models.BadgeChallengeLinked:
		return challengeLinkedBadge{b}
	case models.BadgeSpecialOccasion:
		return specialOccasionBadge{b}
	default:
		return nil
	}
}

func earned(b *models.Badge, kidID string) bool {
	for _, id := range b.EarnedBy {
		if id == kidID {
			return true
		}
	}
	return false
}

// cumulativeBadge compares the kid's baseline plus cycle points against the
// rung's threshold. Which rung actually becomes the current tier is decided
// by the ladder logic in checkCumulativeTier.
type cumulativeBadge struct{ b *models.Badge }

func (v cumulativeBadge) evaluate(ctx evalContext) Decision {
	if earned(v.b, ctx.kid.ID) {
		return DecisionMaintain
	}
	if ctx.kid.CycleBaseline+ctx.kid.CyclePoints >= v.b.ThresholdValue {
		return DecisionAward
	}
	return DecisionNone
}

// dailyBadge awards once today's completed-chore count reaches the
// threshold; once earned it is never re-evaluated.
type dailyBadge struct{ b *models.Badge }

func (v dailyBadge) evaluate(ctx evalContext) Decision {
	if earned(v.b, ctx.kid.ID) {
		return DecisionMaintain
	}
	if v.b.DailyThreshold > 0 && ctx.kid.CompletedToday >= v.b.DailyThreshold {
		return DecisionAward
	}
	return DecisionNone
}

// periodicBadge measures either points earned or required-chore completion
// inside its window.
type periodicBadge struct{ b *models.Badge }

func (v periodicBadge) evaluate(ctx evalContext) Decision {
	if earned(v.b, ctx.kid.ID) {
		return DecisionMaintain
	}
	start, end, ok := periodicWindowBounds(v.b, ctx.now)
	if !ok || ctx.now.Before(start) || ctx.now.After(end) {
		return DecisionNone
	}
	switch v.b.Criteria {
	case models.CriteriaPoints:
		if v.b.WindowProgress[ctx.kid.ID] >= v.b.ThresholdValue {
			return DecisionAward
		}
	case models.CriteriaChoreCount:
		if len(v.b.RequiredChores) == 0 {
			return DecisionNone
		}
		for _, choreID := range v.b.RequiredChores {
			rec, ok := ctx.kid.ChoreStreaks[choreID]
			if !ok || rec.LastDate == "" {
				return DecisionNone
			}
			done, err := time.ParseInLocation(models.DateLayout, rec.LastDate, ctx.now.Location())
			if err != nil || done.Before(truncateToDay(start)) {
				return DecisionNone
			}
		}
		return DecisionAward
	}
	return DecisionNone
}

// achievementLinkedBadge mirrors the referenced achievement's awarded flag.
type achievementLinkedBadge struct{ b *models.Badge }

func (v achievementLinkedBadge) evaluate(ctx evalContext) Decision {
	if earned(v.b, ctx.kid.ID) {
		return DecisionMaintain
	}
	a, ok := ctx.st.Achievement(v.b.AchievementID)
	if !ok {
		return DecisionNone
	}
	if p, ok := a.Progress[ctx.kid.ID]; ok && p.Awarded {
		return DecisionAward
	}
	return DecisionNone
}

// challengeLinkedBadge mirrors the referenced challenge's awarded flag.
type challengeLinkedBadge struct{ b *models.Badge }

func (v challengeLinkedBadge) evaluate(ctx evalContext) Decision {
	if earned(v.b, ctx.kid.ID) {
		return DecisionMaintain
	}
	c, ok := ctx.st.Challenge(v.b.ChallengeID)
	if !ok {
		return DecisionNone
	}
	if p, ok := c.Progress[ctx.kid.ID]; ok && p.Awarded {
		return DecisionAward
	}
	return DecisionNone
}

// specialOccasionBadge fires on its occasion day, at most once per calendar
// day per kid. Unlike the other variants the guard is LastAwarded, not
// EarnedBy, so a recurring occasion can fire again next year.
type specialOccasionBadge struct{ b *models.Badge }

func (v specialOccasionBadge) evaluate(ctx evalContext) Decision {
	if v.b.OccasionDate == nil {
		return DecisionNone
	}
	today := ctx.now.Format(models.DateLayout)
	if v.b.OccasionDate.Format(models.DateLayout) != today {
		return DecisionNone
	}
	if v.b.LastAwarded[ctx.kid.ID] == today {
		return DecisionMaintain
	}
	return DecisionAward
}

// evaluateBadges runs the full badge pass for one kid. Lock held.
func (e *Engine) evaluateBadges(kid *models.Kid) {
	e.checkCumulativeTier(kid)

	now := e.now()
	ctx := evalContext{st: e.st, kid: kid, now: now}
	for _, b := range e.st.Snapshot().Badges {
		if b.Type == models.BadgeCumulative {
			continue
		}
		ev := evaluatorFor(b)
		if ev == nil {
			e.logger.Warn("unknown badge type", "badge_id", b.ID, "type", string(b.Type))
			continue
		}
		if ev.evaluate(ctx) == DecisionAward {
			e.applyBadgeAward(b, kid)
		}
	}
}

// checkCumulativeTier upgrades the kid's cumulative tier when baseline plus
// cycle points reach a higher rung. Upgrades may skip rungs; the new tier's
// baseline absorbs everything accrued so far. Downgrades never happen here,
// only one rung at a time during periodic resets.
func (e *Engine) checkCumulativeTier(kid *models.Kid) {
	ladder := e.cumulativeLadder()
	if len(ladder) == 0 {
		return
	}
	total := kid.CycleBaseline + kid.CyclePoints

	var target *models.Badge
	for _, b := range ladder {
		if b.ThresholdValue <= total {
			target = b
		}
	}
	if target == nil || target.ID == kid.CurrentTierBadge {
		return
	}
	if cur, ok := e.st.Badge(kid.CurrentTierBadge); ok && cur.ThresholdValue >= target.ThresholdValue {
		return
	}

	kid.CurrentTierBadge = target.ID
	kid.CycleBaseline = total
	kid.CyclePoints = 0
	e.applyBadgeAward(target, kid)
}

// cumulativeLadder returns all cumulative badges ordered by ascending
// threshold.
func (e *Engine) cumulativeLadder() []*models.Badge {
	var ladder []*models.Badge
	for _, b := range e.st.Snapshot().Badges {
		if b.Type == models.BadgeCumulative {
			ladder = append(ladder, b)
		}
	}
	sort.Slice(ladder, func(i, j int) bool {
		return ladder[i].ThresholdValue < ladder[j].ThresholdValue
	})
	return ladder
}

// applyBadgeAward records the award and applies its side effects. Lock held.
func (e *Engine) applyBadgeAward(b *models.Badge, kid *models.Kid) {
	if b.Type == models.BadgeSpecialOccasion {
		if b.LastAwarded == nil {
			b.LastAwarded = make(map[string]string)
		}
		b.LastAwarded[kid.ID] = e.today()
	}
	b.EarnedBy = models.AddID(b.EarnedBy, kid.ID)
	kid.Badges = models.AddID(kid.Badges, b.Name)

	e.notifyKid(kid, "Badge earned", fmt.Sprintf("You earned the %q badge!", b.Name))
	e.notifyParents(kid.ID, "Badge earned", fmt.Sprintf("%s earned the %q badge", kid.Name, b.Name))

	switch b.AwardMode {
	case models.AwardPoints:
		e.applyPointsDelta(kid, b.AwardPoints)
	case models.AwardReward:
		e.grantRewardDirect(kid, b.AwardRewardID)
	case models.AwardPointsAndReward:
		e.applyPointsDelta(kid, b.AwardPoints)
		e.grantRewardDirect(kid, b.AwardRewardID)
	}
	e.updateMultiplier(kid)
}

// grantRewardDirect pre-approves a reward without cost, used by badge award
// modes.
func (e *Engine) grantRewardDirect(kid *models.Kid, rewardID string) {
	reward, ok := e.st.Reward(rewardID)
	if !ok {
		e.logger.Warn("badge reward missing", "reward_id", rewardID)
		return
	}
	kid.RedeemedRewards = append(kid.RedeemedRewards, rewardID)
	e.notifyKid(kid, "Reward unlocked", fmt.Sprintf("You received %q", reward.Name))
}

// updateMultiplier sets the kid's multiplier to the highest multiplier among
// held cumulative badges, or the default when none apply.
func (e *Engine) updateMultiplier(kid *models.Kid) {
	mult := DefaultMultiplier
	for _, b := range e.st.Snapshot().Badges {
		if b.Type != models.BadgeCumulative || !earned(b, kid.ID) {
			continue
		}
		if b.PointsMultiplier > mult {
			mult = b.PointsMultiplier
		}
	}
	kid.Multiplier = mult
}

// ApplyCumulativeResets runs the periodic maintenance check for every
// cumulative badge whose cycle boundary (plus grace period) has passed. A
// kid who met the maintenance threshold rolls cycle points into the
// baseline; one who did not drops exactly one rung and forfeits the cycle.
// The cycle counter is zeroed either way.
func (e *Engine) ApplyCumulativeResets() {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	changed := false
	for _, b := range e.st.Snapshot().Badges {
		if b.Type != models.BadgeCumulative {
			continue
		}
		if b.NextReset == nil {
			next := nextResetBoundary(b, now)
			if next.IsZero() {
				continue
			}
			b.NextReset = &next
			changed = true
			continue
		}
		grace := time.Duration(b.GracePeriodDays) * 24 * time.Hour
		if now.Before(b.NextReset.Add(grace)) {
			continue
		}
		for _, kid := range e.st.Snapshot().Kids {
			if kid.CurrentTierBadge != b.ID {
				continue
			}
			if kid.CyclePoints >= b.MaintenanceValue {
				kid.CycleBaseline += kid.CyclePoints
				if kid.BadgeCycleWins == nil {
					kid.BadgeCycleWins = make(map[string]int)
				}
				kid.BadgeCycleWins[b.ID]++
			} else {
				e.downgradeOneRung(kid, b)
			}
			kid.CyclePoints = 0
			e.updateMultiplier(kid)
		}
		next := advanceResetBoundary(b, *b.NextReset)
		b.NextReset = &next
		changed = true
	}
	if changed {
		e.persist()
	}
}

// downgradeOneRung demotes the kid from badge b to the next lower rung of
// the ladder, or off the ladder entirely when b is the lowest rung.
func (e *Engine) downgradeOneRung(kid *models.Kid, b *models.Badge) {
	ladder := e.cumulativeLadder()
	var lower *models.Badge
	for _, rung := range ladder {
		if rung.ThresholdValue < b.ThresholdValue {
			lower = rung
		}
	}

	b.EarnedBy = models.RemoveID(b.EarnedBy, kid.ID)
	kid.Badges = models.RemoveID(kid.Badges, b.Name)

	if lower != nil {
		kid.CurrentTierBadge = lower.ID
		kid.CycleBaseline = lower.ThresholdValue
		lower.EarnedBy = models.AddID(lower.EarnedBy, kid.ID)
		kid.Badges = models.AddID(kid.Badges, lower.Name)
		e.notifyKid(kid, "Badge changed",
			fmt.Sprintf("You moved from %q down to %q", b.Name, lower.Name))
	} else {
		kid.CurrentTierBadge = ""
		kid.CycleBaseline = 0
		e.notifyKid(kid, "Badge lost", fmt.Sprintf("You lost the %q badge", b.Name))
	}
}

// nextResetBoundary computes the first cycle boundary at or after now.
func nextResetBoundary(b *models.Badge, now time.Time) time.Time {
	loc := now.Location()
	switch b.ResetSchedule {
	case models.ResetYearly:
		return time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, loc)
	case models.ResetQuarterly:
		q := (int(now.Month()-1)/3)*3 + 3
		return time.Date(now.Year(), time.Month(q+1), 1, 0, 0, 0, 0, loc)
	case models.ResetMonthly:
		return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, loc)
	case models.ResetCustom:
		if b.ResetDate == nil {
			return time.Time{}
		}
		next := *b.ResetDate
		for !next.After(now) {
			next = addMonthsClamped(next, 12)
		}
		return next
	default:
		return time.Time{}
	}
}

// advanceResetBoundary moves a fired boundary forward by one cycle.
func advanceResetBoundary(b *models.Badge, fired time.Time) time.Time {
	switch b.ResetSchedule {
	case models.ResetYearly:
		return fired.AddDate(1, 0, 0)
	case models.ResetQuarterly:
		return addMonthsClamped(fired, 3)
	case models.ResetMonthly:
		return addMonthsClamped(fired, 1)
	case models.ResetCustom:
		return addMonthsClamped(fired, 12)
	default:
		return fired.AddDate(1, 0, 0)
	}
}

// accruePeriodicWindows adds a positive ledger delta to the window progress
// of every points-criteria periodic badge whose window contains now.
func (e *Engine) accruePeriodicWindows(kid *models.Kid, delta float64) {
	now := e.now()
	for _, b := range e.st.Snapshot().Badges {
		if b.Type != models.BadgePeriodic || b.Criteria != models.CriteriaPoints {
			continue
		}
		start, end, ok := periodicWindowBounds(b, now)
		if !ok || now.Before(start) || now.After(end) {
			continue
		}
		if b.WindowProgress == nil {
			b.WindowProgress = make(map[string]float64)
		}
		b.WindowProgress[kid.ID] += delta
	}
}

// advancePeriodicWindows rolls recurrent custom windows forward by one
// period length once they close, clearing progress and earners so the badge
// can be earned again.
func (e *Engine) advancePeriodicWindows(now time.Time) bool {
	changed := false
	for _, b := range e.st.Snapshot().Badges {
		if b.Type != models.BadgePeriodic || b.Window != models.WindowCustom || !b.Recurring {
			continue
		}
		if b.WindowStart == nil || b.WindowEnd == nil || !now.After(*b.WindowEnd) {
			continue
		}
		length := b.WindowEnd.Sub(*b.WindowStart)
		if length <= 0 {
			continue
		}
		start, end := *b.WindowStart, *b.WindowEnd
		for !end.After(now) {
			start = start.Add(length)
			end = end.Add(length)
		}
		b.WindowStart = &start
		b.WindowEnd = &end
		b.WindowProgress = nil
		e.clearBadgeEarners(b)
		changed = true
	}
	return changed
}

// clearBadgeEarners removes the badge from every kid so it can be re-earned
// in the next window.
func (e *Engine) clearBadgeEarners(b *models.Badge) {
	for _, kidID := range b.EarnedBy {
		if kid, ok := e.st.Kid(kidID); ok {
			kid.Badges = models.RemoveID(kid.Badges, b.Name)
		}
	}
	b.EarnedBy = nil
}

// evaluateSpecialOccasions fires occasion badges for every kid on the
// occasion day, then advances recurring occasions one year once the day has
// passed. February 29 occasions fall back to the 28th in non-leap years.
func (e *Engine) evaluateSpecialOccasions(now time.Time) bool {
	changed := false
	for _, b := range e.st.Snapshot().Badges {
		if b.Type != models.BadgeSpecialOccasion || b.OccasionDate == nil {
			continue
		}
		ctx := evalContext{st: e.st, now: now}
		for _, kid := range e.st.Snapshot().Kids {
			ctx.kid = kid
			if (specialOccasionBadge{b}).evaluate(ctx) == DecisionAward {
				e.applyBadgeAward(b, kid)
				changed = true
			}
		}
		if b.Recurring && truncateToDay(*b.OccasionDate).Before(truncateToDay(now)) {
			next := addYearClamped(*b.OccasionDate)
			b.OccasionDate = &next
			changed = true
		}
	}
	return changed
}

func addYearClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	last := daysInMonth(year+1, month)
	if day > last {
		day = last
	}
	return time.Date(year+1, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// periodicWindowBounds resolves the active window of a periodic badge.
// Weekly windows start on Monday.
func periodicWindowBounds(b *models.Badge, now time.Time) (time.Time, time.Time, bool) {
	loc := now.Location()
	switch b.Window {
	case models.WindowWeekly:
		offset := (int(now.Weekday()) + 6) % 7
		start := truncateToDay(now).AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond), true
	case models.WindowMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond), true
	case models.WindowQuarterly:
		q := time.Month((int(now.Month()-1)/3)*3 + 1)
		start := time.Date(now.Year(), q, 1, 0, 0, 0, 0, loc)
		return start, addMonthsClamped(start, 3).Add(-time.Nanosecond), true
	case models.WindowCustom:
		if b.WindowStart == nil || b.WindowEnd == nil {
			return time.Time{}, time.Time{}, false
		}
		return *b.WindowStart, *b.WindowEnd, true
	default:
		return time.Time{}, time.Time{}, false
	}
}
