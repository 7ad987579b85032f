package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/repository"
)

// ApplyCatalog reconciles engine state against a full catalog payload
func (s *Server) ApplyCatalog(c *gin.Context) {
	var data models.CatalogData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid catalog payload", "details": err.Error()})
		return
	}
	s.eng.ApplyCatalog(&data)
	c.JSON(http.StatusOK, gin.H{"message": "Catalog applied"})
}

// ListPendingApprovals returns the queued chore and reward approvals
func (s *Server) ListPendingApprovals(c *gin.Context) {
	var chores []models.PendingChoreApproval
	var rewards []models.PendingRewardApproval
	s.eng.View(func(st *repository.State) {
		chores = append(chores, st.Snapshot().PendingChoreApprovals...)
		rewards = append(rewards, st.Snapshot().PendingRewardApprovals...)
	})
	c.JSON(http.StatusOK, gin.H{
		"pending_chore_approvals":  chores,
		"pending_reward_approvals": rewards,
	})
}
