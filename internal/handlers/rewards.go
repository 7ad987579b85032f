package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/repository"
)

// RedeemRewardRequest is the request body for redeeming a reward
type RedeemRewardRequest struct {
	KidID string `json:"kid_id" binding:"required"`
}

// RewardDecisionRequest is the request body for approving or disapproving a
// redemption
type RewardDecisionRequest struct {
	KidID string `json:"kid_id" binding:"required"`
}

// ApplyRequest is the request body for applying a penalty or bonus
type ApplyRequest struct {
	KidID string `json:"kid_id" binding:"required"`
}

// ListRewards returns all rewards
func (s *Server) ListRewards(c *gin.Context) {
	var rewards []*models.Reward
	s.eng.View(func(st *repository.State) {
		for _, r := range st.Snapshot().Rewards {
			rewards = append(rewards, r)
		}
	})
	c.JSON(http.StatusOK, gin.H{
		"rewards": rewards,
		"count":   len(rewards),
	})
}

// RedeemReward queues a redemption for parent approval
func (s *Server) RedeemReward(c *gin.Context) {
	var req RedeemRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kid_id required"})
		return
	}
	if err := s.eng.RedeemReward(req.KidID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Redemption requested, waiting for approval"})
}

// ApproveReward deducts points and completes a redemption
func (s *Server) ApproveReward(c *gin.Context) {
	var req RewardDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kid_id required"})
		return
	}
	if err := s.eng.ApproveReward(req.KidID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reward approved"})
}

// DisapproveReward drops a pending redemption
func (s *Server) DisapproveReward(c *gin.Context) {
	var req RewardDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kid_id required"})
		return
	}
	if err := s.eng.DisapproveReward(req.KidID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reward disapproved"})
}

// RemindReward re-sends the redemption notification after a delay
func (s *Server) RemindReward(c *gin.Context) {
	var req RemindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kid_id required"})
		return
	}
	minutes := req.Minutes
	if minutes <= 0 {
		minutes = 30
	}
	if err := s.eng.RemindRewardIn(req.KidID, c.Param("id"), time.Duration(minutes)*time.Minute); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder scheduled", "minutes": minutes})
}

// ApplyPenalty deducts a penalty from a kid
func (s *Server) ApplyPenalty(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kid_id required"})
		return
	}
	if err := s.eng.ApplyPenalty(req.KidID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Penalty applied"})
}

// ApplyBonus grants a bonus to a kid
func (s *Server) ApplyBonus(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kid_id required"})
		return
	}
	if err := s.eng.ApplyBonus(req.KidID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bonus applied"})
}
