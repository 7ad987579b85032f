package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/repository"
)

func addChallenge(st *repository.State, c *models.Challenge) *models.Challenge {
	st.Snapshot().Challenges[c.ID] = c
	return c
}

func TestTotalChallengeAwardsInsideWindow(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	kid := addKid(st, "k1", "Ada")
	chore := addChore(st, "c1", "Dishes", 1, "k1")
	chore.AllowMultipleClaims = true
	ch := addChallenge(st, &models.Challenge{
		ID: "ch1", Name: "Push Week", Type: models.ChallengeTotalWithinWindow,
		TargetValue: 2, RewardPoints: 20,
		StartDate: testStart.AddDate(0, 0, -1),
		EndDate:   testStart.AddDate(0, 0, 6),
	})

	require.NoError(t, eng.ClaimChore("k1", "c1"))
	require.NoError(t, eng.ApproveChore("k1", "c1", nil))
	assert.False(t, ch.ProgressFor("k1").Awarded)

	require.NoError(t, eng.ClaimChore("k1", "c1"))
	require.NoError(t, eng.ApproveChore("k1", "c1", nil))

	p := ch.ProgressFor("k1")
	assert.True(t, p.Awarded)
	assert.Equal(t, 2, p.Count)
	// Two chore points plus the challenge reward.
	assert.Equal(t, 22.0, kid.Points)
}

func TestChallengeIgnoresCompletionsOutsideWindow(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "k1", "Ada")
	addChore(st, "c1", "Dishes", 1, "k1")
	ch := addChallenge(st, &models.Challenge{
		ID: "ch1", Name: "Next Month", Type: models.ChallengeTotalWithinWindow,
		TargetValue: 1,
		StartDate:   testStart.AddDate(0, 1, 0),
		EndDate:     testStart.AddDate(0, 1, 7),
	})

	require.NoError(t, eng.ClaimChore("k1", "c1"))
	require.NoError(t, eng.ApproveChore("k1", "c1", nil))

	assert.Equal(t, 0, ch.ProgressFor("k1").Count)
	assert.False(t, ch.ProgressFor("k1").Awarded)
}

func TestChallengeBoundToChoreIgnoresOthers(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "k1", "Ada")
	addChore(st, "dishes", "Dishes", 1, "k1")
	ch := addChallenge(st, &models.Challenge{
		ID: "ch1", Name: "Reading Sprint", Type: models.ChallengeTotalWithinWindow,
		TargetValue: 1, SelectedChoreID: "read",
		StartDate: testStart.AddDate(0, 0, -1),
		EndDate:   testStart.AddDate(0, 0, 6),
	})

	require.NoError(t, eng.ClaimChore("k1", "dishes"))
	require.NoError(t, eng.ApproveChore("k1", "dishes", nil))

	assert.Equal(t, 0, ch.ProgressFor("k1").Count)
}

func TestDailyMinimumChallengeDecidedAfterWindowCloses(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	kid := addKid(st, "k1", "Ada")
	chore := addChore(st, "c1", "Dishes", 1, "k1")
	chore.AllowMultipleClaims = true

	start := truncateToDay(testStart)
	ch := addChallenge(st, &models.Challenge{
		ID: "ch1", Name: "Every Day", Type: models.ChallengeDailyMinimum,
		RequiredDaily: 1, RewardPoints: 10,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 3).Add(-time.Second),
	})

	// One completion on each of the three window days.
	for day := 0; day < 3; day++ {
		require.NoError(t, eng.ClaimChore("k1", "c1"))
		require.NoError(t, eng.ApproveChore("k1", "c1", nil))
		// Never decidable while the window is still open.
		assert.False(t, ch.ProgressFor("k1").Awarded)
		clock.Advance(24 * time.Hour)
	}

	// Past the window, the next evaluation settles the challenge.
	require.NoError(t, eng.SetKidPoints("k1", 100))
	assert.True(t, ch.ProgressFor("k1").Awarded)
	assert.Equal(t, 110.0, kid.Points)
}

func TestDailyMinimumChallengeFailsOnMissedDay(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	addKid(st, "k1", "Ada")
	chore := addChore(st, "c1", "Dishes", 1, "k1")
	chore.AllowMultipleClaims = true

	start := truncateToDay(testStart)
	ch := addChallenge(st, &models.Challenge{
		ID: "ch1", Name: "Every Day", Type: models.ChallengeDailyMinimum,
		RequiredDaily: 1, RewardPoints: 10,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 3).Add(-time.Second),
	})

	// Day one and three only; day two is missed.
	require.NoError(t, eng.ClaimChore("k1", "c1"))
	require.NoError(t, eng.ApproveChore("k1", "c1", nil))
	clock.Advance(48 * time.Hour)
	require.NoError(t, eng.ClaimChore("k1", "c1"))
	require.NoError(t, eng.ApproveChore("k1", "c1", nil))
	clock.Advance(24 * time.Hour)

	require.NoError(t, eng.SetKidPoints("k1", 100))
	assert.False(t, ch.ProgressFor("k1").Awarded)
}
