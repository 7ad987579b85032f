package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JunoAX/chorepoints-go/internal/models"
)

func TestClaimAndApproveAwardsPoints(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "max", "Max")
	addChore(st, "dishes", "Dishes", 5, "max")

	require.NoError(t, eng.ClaimChore("max", "dishes"))

	kid, _ := st.Kid("max")
	chore, _ := st.Chore("dishes")
	assert.True(t, kid.HasClaimed("dishes"))
	assert.Equal(t, models.ChoreClaimed, chore.State)
	assert.True(t, st.HasChoreApproval("max", "dishes"))

	require.NoError(t, eng.ApproveChore("max", "dishes", nil))

	assert.Equal(t, 5.0, kid.Points)
	assert.Equal(t, 1, kid.CompletedToday)
	assert.Equal(t, 5.0, kid.EarnedToday)
	assert.True(t, kid.HasApproved("dishes"))
	assert.False(t, kid.HasClaimed("dishes"))
	assert.Equal(t, models.ChoreApproved, chore.State)
	assert.False(t, st.HasChoreApproval("max", "dishes"))
}

func TestClaimChoreNotAssigned(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "max", "Max")
	addChore(st, "dishes", "Dishes", 5, "other")

	err := eng.ClaimChore("max", "dishes")
	require.ErrorIs(t, err, ErrNotAssigned)
}

func TestClaimChoreUnknownEntities(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "max", "Max")

	require.ErrorIs(t, eng.ClaimChore("max", "missing"), ErrNotFound)
	require.ErrorIs(t, eng.ClaimChore("missing", "missing"), ErrNotFound)
}

func TestClaimChoreTwiceRejected(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "max", "Max")
	addChore(st, "dishes", "Dishes", 5, "max")

	require.NoError(t, eng.ClaimChore("max", "dishes"))
	require.ErrorIs(t, eng.ClaimChore("max", "dishes"), ErrAlreadyActed)
}

func TestClaimChoreTwiceAllowedWhenMultipleClaims(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "dishes", "Dishes", 5, "max")
	chore.AllowMultipleClaims = true

	require.NoError(t, eng.ClaimChore("max", "dishes"))
	require.NoError(t, eng.ApproveChore("max", "dishes", nil))
	require.NoError(t, eng.ClaimChore("max", "dishes"))
	require.NoError(t, eng.ApproveChore("max", "dishes", nil))

	kid, _ := st.Kid("max")
	assert.Equal(t, 10.0, kid.Points)
	assert.Equal(t, 2, kid.CompletedToday)
}

func TestApproveChoreTwiceRejected(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "max", "Max")
	addChore(st, "dishes", "Dishes", 5, "max")

	require.NoError(t, eng.ClaimChore("max", "dishes"))
	require.NoError(t, eng.ApproveChore("max", "dishes", nil))
	require.ErrorIs(t, eng.ApproveChore("max", "dishes", nil), ErrAlreadyActed)
}

func TestApproveChoreOverrideAndMultiplier(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	kid := addKid(st, "max", "Max")
	kid.Multiplier = 2.0
	addChore(st, "dishes", "Dishes", 5, "max")

	require.NoError(t, eng.ApproveChore("max", "dishes", ptr(8.0)))
	assert.Equal(t, 16.0, kid.Points)
}

func TestDisapproveChoreResetsToPending(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "max", "Max")
	addChore(st, "dishes", "Dishes", 5, "max")

	require.NoError(t, eng.ClaimChore("max", "dishes"))
	require.NoError(t, eng.DisapproveChore("max", "dishes"))

	kid, _ := st.Kid("max")
	chore, _ := st.Chore("dishes")
	assert.False(t, kid.HasClaimed("dishes"))
	assert.False(t, kid.HasApproved("dishes"))
	assert.Equal(t, models.ChorePending, chore.State)
	assert.False(t, st.HasChoreApproval("max", "dishes"))
	assert.Equal(t, 0.0, kid.Points)
}

func TestClaimedAndApprovedMutuallyExclusive(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "dishes", "Dishes", 5, "max")
	chore.AllowMultipleClaims = true

	require.NoError(t, eng.ClaimChore("max", "dishes"))
	require.NoError(t, eng.ApproveChore("max", "dishes", nil))
	kid, _ := st.Kid("max")
	assert.False(t, kid.HasClaimed("dishes"))
	assert.True(t, kid.HasApproved("dishes"))

	require.NoError(t, eng.ClaimChore("max", "dishes"))
	assert.True(t, kid.HasClaimed("dishes"))
	assert.False(t, kid.HasApproved("dishes"))
}

func TestReduceGlobalState(t *testing.T) {
	tests := []struct {
		name   string
		counts StateCounts
		shared bool
		want   models.ChoreState
	}{
		{"no assignees", StateCounts{}, false, models.ChoreUnknown},
		{"single pending", StateCounts{Total: 1, Pending: 1}, false, models.ChorePending},
		{"single claimed", StateCounts{Total: 1, Claimed: 1}, false, models.ChoreClaimed},
		{"single approved", StateCounts{Total: 1, Approved: 1}, true, models.ChoreApproved},
		{"single overdue", StateCounts{Total: 1, Overdue: 1}, false, models.ChoreOverdue},
		{"all approved", StateCounts{Total: 3, Approved: 3}, true, models.ChoreApproved},
		{"shared overdue wins", StateCounts{Total: 3, Overdue: 1, Approved: 1, Claimed: 1}, true, models.ChoreOverdue},
		{"shared approved in part", StateCounts{Total: 3, Approved: 1, Claimed: 1, Pending: 1}, true, models.ChoreApprovedInPart},
		{"shared claimed in part", StateCounts{Total: 2, Claimed: 1, Pending: 1}, true, models.ChoreClaimedInPart},
		{"non-shared mixed", StateCounts{Total: 2, Approved: 1, Pending: 1}, false, models.ChoreIndependent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReduceGlobalState(tt.counts, tt.shared))
		})
	}
}

func TestGlobalStateSingleAssigneeMirrorsKid(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "dishes", "Dishes", 5, "max")

	require.NoError(t, eng.ClaimChore("max", "dishes"))
	assert.Equal(t, models.ChoreClaimed, chore.State)
	require.NoError(t, eng.ApproveChore("max", "dishes", nil))
	assert.Equal(t, models.ChoreApproved, chore.State)
}

func TestOverdueSweepMarksUnclaimedKids(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "trash", "Trash", 3, "max")
	due := clock.Now().Add(-time.Hour)
	chore.DueDate = &due

	eng.RunOverdueSweep()

	kid, _ := st.Kid("max")
	assert.True(t, kid.HasOverdue("trash"))
	assert.Equal(t, models.ChoreOverdue, chore.State)
}

func TestOverdueSweepSkipsClaimedKids(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "trash", "Trash", 3, "max")

	require.NoError(t, eng.ClaimChore("max", "trash"))
	due := clock.Now().Add(-time.Hour)
	chore.DueDate = &due

	eng.RunOverdueSweep()

	kid, _ := st.Kid("max")
	assert.False(t, kid.HasOverdue("trash"))
	assert.Equal(t, models.ChoreClaimed, chore.State)
}

func TestOverdueSweepClearsMarkersWhenDueAdvances(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "trash", "Trash", 3, "max")
	past := clock.Now().Add(-time.Hour)
	chore.DueDate = &past

	eng.RunOverdueSweep()
	kid, _ := st.Kid("max")
	require.True(t, kid.HasOverdue("trash"))

	future := clock.Now().Add(24 * time.Hour)
	chore.DueDate = &future
	eng.RunOverdueSweep()
	assert.False(t, kid.HasOverdue("trash"))
	assert.Equal(t, models.ChorePending, chore.State)
}

func TestRescheduleOverdueChoreYieldsFutureDueDate(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "trash", "Trash", 3, "max")
	due := time.Date(2026, time.March, 9, 23, 59, 0, 0, time.UTC)
	chore.DueDate = &due

	eng.RunOverdueSweep()
	require.NoError(t, eng.RescheduleChore("trash"))

	require.NotNil(t, chore.DueDate)
	assert.True(t, chore.DueDate.After(clock.Now()))
	assert.Equal(t, models.ChorePending, chore.State)
	kid, _ := st.Kid("max")
	assert.False(t, kid.HasOverdue("trash"))
}

func TestOverdueSweepReschedulesCompletedChore(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "trash", "Trash", 3, "max")
	future := clock.Now().Add(time.Hour)
	chore.DueDate = &future

	require.NoError(t, eng.ApproveChore("max", "trash", nil))
	clock.Advance(2 * time.Hour)

	eng.RunOverdueSweep()

	kid, _ := st.Kid("max")
	assert.False(t, kid.HasApproved("trash"))
	assert.Equal(t, models.ChorePending, chore.State)
	require.NotNil(t, chore.DueDate)
	assert.True(t, chore.DueDate.After(clock.Now()))
}

func TestOverdueNotificationCooldown(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "trash", "Trash", 3, "max")
	due := clock.Now().Add(-time.Hour)
	chore.DueDate = &due

	eng.RunOverdueSweep()
	kid, _ := st.Kid("max")
	first, ok := kid.OverdueNotified["trash"]
	require.True(t, ok)

	// Within the cooldown the timestamp must not move.
	clock.Advance(time.Hour)
	eng.RunOverdueSweep()
	assert.Equal(t, first, kid.OverdueNotified["trash"])

	// After the cooldown it does.
	clock.Advance(24 * time.Hour)
	eng.RunOverdueSweep()
	assert.True(t, kid.OverdueNotified["trash"].After(first))
}

func TestSetDueDateRejectsPast(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	addKid(st, "max", "Max")
	addChore(st, "trash", "Trash", 3, "max")

	past := clock.Now().Add(-time.Minute)
	require.ErrorIs(t, eng.SetDueDate("trash", &past), ErrInvalidSchedule)
}

func TestSetDueDateClearingAlsoClearsOverdue(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "trash", "Trash", 3, "max")
	due := clock.Now().Add(-time.Hour)
	chore.DueDate = &due

	eng.RunOverdueSweep()
	kid, _ := st.Kid("max")
	require.True(t, kid.HasOverdue("trash"))

	require.NoError(t, eng.SetDueDate("trash", nil))
	assert.Nil(t, chore.DueDate)
	assert.False(t, kid.HasOverdue("trash"))
}

func TestSkipDueDateAdvancesOnePeriod(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "trash", "Trash", 3, "max")
	due := clock.Now().Add(2 * time.Hour)
	chore.DueDate = &due

	require.NoError(t, eng.SkipDueDate("trash"))
	require.NotNil(t, chore.DueDate)
	assert.Equal(t, due.AddDate(0, 0, 1), *chore.DueDate)
}

func TestSkipDueDateRejectsNonRecurring(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "trash", "Trash", 3, "max")
	chore.Frequency = models.FrequencyNone

	require.ErrorIs(t, eng.SkipDueDate("trash"), ErrInvalidSchedule)
}

func TestOverrideChoreState(t *testing.T) {
	eng, st, _ := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "dishes", "Dishes", 5, "max")

	require.NoError(t, eng.OverrideChoreState("max", "dishes", models.ChoreApproved))
	kid, _ := st.Kid("max")
	assert.True(t, kid.HasApproved("dishes"))
	assert.Equal(t, models.ChoreApproved, chore.State)
	assert.Equal(t, 0.0, kid.Points)

	require.NoError(t, eng.OverrideChoreState("max", "dishes", models.ChorePending))
	assert.False(t, kid.HasApproved("dishes"))
	assert.Equal(t, models.ChorePending, chore.State)
}

func TestChoreStreakRules(t *testing.T) {
	eng, st, clock := newTestEngine(testStart)
	addKid(st, "max", "Max")
	chore := addChore(st, "reading", "Reading", 2, "max")
	chore.AllowMultipleClaims = true

	require.NoError(t, eng.ApproveChore("max", "reading", nil))
	kid, _ := st.Kid("max")
	require.Equal(t, 1, kid.ChoreStreaks["reading"].Current)

	// Second approval the same day is a streak no-op.
	require.NoError(t, eng.ApproveChore("max", "reading", nil))
	assert.Equal(t, 1, kid.ChoreStreaks["reading"].Current)

	// Next day extends.
	clock.Advance(24 * time.Hour)
	require.NoError(t, eng.ApproveChore("max", "reading", nil))
	assert.Equal(t, 2, kid.ChoreStreaks["reading"].Current)

	// Skipping a day resets to one.
	clock.Advance(48 * time.Hour)
	require.NoError(t, eng.ApproveChore("max", "reading", nil))
	assert.Equal(t, 1, kid.ChoreStreaks["reading"].Current)
	assert.Equal(t, 2, kid.ChoreStreaks["reading"].Max)
}
