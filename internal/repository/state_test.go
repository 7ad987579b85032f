package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JunoAX/chorepoints-go/internal/models"
)

func TestFromSnapshotAllocatesNilCollections(t *testing.T) {
	st := FromSnapshot(&models.Snapshot{})

	snap := st.Snapshot()
	assert.NotNil(t, snap.Kids)
	assert.NotNil(t, snap.Parents)
	assert.NotNil(t, snap.Chores)
	assert.NotNil(t, snap.Badges)
	assert.NotNil(t, snap.Rewards)
	assert.NotNil(t, snap.Penalties)
	assert.NotNil(t, snap.Bonuses)
	assert.NotNil(t, snap.Achievements)
	assert.NotNil(t, snap.Challenges)
}

func TestFromSnapshotNilYieldsEmptyState(t *testing.T) {
	st := FromSnapshot(nil)
	assert.Empty(t, st.Snapshot().Kids)
}

func TestParentByUsername(t *testing.T) {
	st := New()
	st.Snapshot().Parents["p1"] = &models.Parent{ID: "p1", Username: "mom"}

	p, ok := st.ParentByUsername("mom")
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID)

	_, ok = st.ParentByUsername("dad")
	assert.False(t, ok)
}

func TestChoreApprovalQueue(t *testing.T) {
	st := New()
	st.AddChoreApproval(models.PendingChoreApproval{KidID: "k1", ChoreID: "c1"})
	st.AddChoreApproval(models.PendingChoreApproval{KidID: "k1", ChoreID: "c1"})
	st.AddChoreApproval(models.PendingChoreApproval{KidID: "k2", ChoreID: "c1"})

	assert.True(t, st.HasChoreApproval("k1", "c1"))

	// Duplicate claims are removed together.
	removed := st.RemoveChoreApprovals("k1", "c1")
	assert.Equal(t, 2, removed)
	assert.False(t, st.HasChoreApproval("k1", "c1"))
	assert.True(t, st.HasChoreApproval("k2", "c1"))
}

func TestRewardApprovalQueueRemovesOneAtATime(t *testing.T) {
	st := New()
	st.AddRewardApproval(models.PendingRewardApproval{KidID: "k1", RewardID: "r1"})
	st.AddRewardApproval(models.PendingRewardApproval{KidID: "k1", RewardID: "r1"})

	require.True(t, st.RemoveRewardApproval("k1", "r1"))
	assert.True(t, st.HasRewardApproval("k1", "r1"))
	require.True(t, st.RemoveRewardApproval("k1", "r1"))
	assert.False(t, st.HasRewardApproval("k1", "r1"))
	assert.False(t, st.RemoveRewardApproval("k1", "r1"))
}

func TestCloneIsIndependent(t *testing.T) {
	st := New()
	due := time.Date(2026, time.March, 10, 18, 0, 0, 0, time.UTC)
	st.Snapshot().Kids["k1"] = &models.Kid{
		ID: "k1", Name: "Ada", Points: 10,
		ClaimedChores: []string{"c1"},
		ChoreStreaks:  map[string]*models.StreakRecord{"c1": {Current: 2}},
	}
	st.Snapshot().Chores["c1"] = &models.Chore{ID: "c1", Name: "Dishes", DueDate: &due}

	clone, err := st.Clone()
	require.NoError(t, err)

	// Mutating the original must not leak into the copy.
	st.Snapshot().Kids["k1"].Points = 99
	st.Snapshot().Kids["k1"].ChoreStreaks["c1"].Current = 7
	st.Snapshot().Chores["c1"].Name = "Changed"

	assert.Equal(t, 10.0, clone.Kids["k1"].Points)
	assert.Equal(t, 2, clone.Kids["k1"].ChoreStreaks["c1"].Current)
	assert.Equal(t, "Dishes", clone.Chores["c1"].Name)
	assert.True(t, clone.Chores["c1"].DueDate.Equal(due))
}
