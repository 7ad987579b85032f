package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/repository"
)

// ClaimChoreRequest is the request body for claiming a chore
type ClaimChoreRequest struct {
	KidID string `json:"kid_id" binding:"required"`
}

// ApproveChoreRequest is the request body for approving a chore
type ApproveChoreRequest struct {
	KidID          string   `json:"kid_id" binding:"required"`
	PointsOverride *float64 `json:"points_override,omitempty"`
}

// DisapproveChoreRequest is the request body for disapproving a chore
type DisapproveChoreRequest struct {
	KidID string `json:"kid_id" binding:"required"`
}

// OverrideStateRequest is the request body for a manual state override
type OverrideStateRequest struct {
	KidID string `json:"kid_id" binding:"required"`
	State string `json:"state" binding:"required"`
}

// SetDueDateRequest is the request body for setting or clearing a due date
type SetDueDateRequest struct {
	DueDate *time.Time `json:"due_date"`
}

// RemindRequest is the request body for scheduling a reminder
type RemindRequest struct {
	KidID   string `json:"kid_id" binding:"required"`
	Minutes int    `json:"minutes"`
}

// ListChores returns all chores
func (s *Server) ListChores(c *gin.Context) {
	var chores []*models.Chore
	s.eng.View(func(st *repository.State) {
		for _, ch := range st.Snapshot().Chores {
			chores = append(chores, ch)
		}
	})
	c.JSON(http.StatusOK, gin.H{
		"chores": chores,
		"count":  len(chores),
	})
}

// GetChore returns one chore by id
func (s *Server) GetChore(c *gin.Context) {
	choreID := c.Param("id")
	var chore *models.Chore
	s.eng.View(func(st *repository.State) {
		if ch, ok := st.Chore(choreID); ok {
			chore = ch
		}
	})
	if chore == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chore not found"})
		return
	}
	c.JSON(http.StatusOK, chore)
}

// ClaimChore marks a chore claimed by a kid and queues parent approval
func (s *Server) ClaimChore(c *gin.Context) {
	var req ClaimChoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kid_id required"})
		return
	}
	if err := s.eng.ClaimChore(req.KidID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chore claimed, waiting for approval"})
}

// ApproveChore approves a claim and awards points
func (s *Server) ApproveChore(c *gin.Context) {
	var req ApproveChoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kid_id required"})
		return
	}
	if err := s.eng.ApproveChore(req.KidID, c.Param("id"), req.PointsOverride); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chore approved"})
}

// DisapproveChore resets a claim back to pending
func (s *Server) DisapproveChore(c *gin.Context) {
	var req DisapproveChoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kid_id required"})
		return
	}
	if err := s.eng.DisapproveChore(req.KidID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chore disapproved"})
}

// OverrideChoreState force-sets one kid's chore state
func (s *Server) OverrideChoreState(c *gin.Context) {
	var req OverrideStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kid_id and state required"})
		return
	}
	if err := s.eng.OverrideChoreState(req.KidID, c.Param("id"), models.ChoreState(req.State)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chore state updated"})
}

// SetDueDate sets or clears a chore's due date
func (s *Server) SetDueDate(c *gin.Context) {
	var req SetDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date"})
		return
	}
	if err := s.eng.SetDueDate(c.Param("id"), req.DueDate); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Due date updated"})
}

// SkipDueDate advances a recurring chore one period without completion
func (s *Server) SkipDueDate(c *gin.Context) {
	if err := s.eng.SkipDueDate(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Due date skipped"})
}

// RescheduleChore recomputes the next due date and resets assignees
func (s *Server) RescheduleChore(c *gin.Context) {
	if err := s.eng.RescheduleChore(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chore rescheduled"})
}

// RemindChore re-sends the approval notification after a delay
func (s *Server) RemindChore(c *gin.Context) {
	var req RemindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kid_id required"})
		return
	}
	minutes := req.Minutes
	if minutes <= 0 {
		minutes = 30
	}
	if err := s.eng.RemindChoreIn(req.KidID, c.Param("id"), time.Duration(minutes)*time.Minute); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder scheduled", "minutes": minutes})
}
