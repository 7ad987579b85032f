package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/repository"
)

// SetPointsRequest is the request body for a direct balance adjustment
type SetPointsRequest struct {
	Points *float64 `json:"points" binding:"required"`
}

// ListKids returns all kids
func (s *Server) ListKids(c *gin.Context) {
	var kids []*models.Kid
	s.eng.View(func(st *repository.State) {
		for _, k := range st.Snapshot().Kids {
			kids = append(kids, k)
		}
	})
	c.JSON(http.StatusOK, gin.H{
		"kids":  kids,
		"count": len(kids),
	})
}

// GetKid returns one kid by id
func (s *Server) GetKid(c *gin.Context) {
	kidID := c.Param("id")
	var kid *models.Kid
	s.eng.View(func(st *repository.State) {
		if k, ok := st.Kid(kidID); ok {
			kid = k
		}
	})
	if kid == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Kid not found"})
		return
	}
	c.JSON(http.StatusOK, kid)
}

// SetKidPoints sets a kid's balance directly (parent adjustment)
func (s *Server) SetKidPoints(c *gin.Context) {
	var req SetPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Points value required"})
		return
	}
	if err := s.eng.SetKidPoints(c.Param("id"), *req.Points); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Points updated"})
}
