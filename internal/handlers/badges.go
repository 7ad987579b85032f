package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JunoAX/chorepoints-go/internal/models"
	"github.com/JunoAX/chorepoints-go/internal/repository"
)

// ListBadges returns all badges
func (s *Server) ListBadges(c *gin.Context) {
	var badges []*models.Badge
	s.eng.View(func(st *repository.State) {
		for _, b := range st.Snapshot().Badges {
			badges = append(badges, b)
		}
	})
	c.JSON(http.StatusOK, gin.H{
		"badges": badges,
		"count":  len(badges),
	})
}

// ListAchievements returns all achievements with progress
func (s *Server) ListAchievements(c *gin.Context) {
	var achievements []*models.Achievement
	s.eng.View(func(st *repository.State) {
		for _, a := range st.Snapshot().Achievements {
			achievements = append(achievements, a)
		}
	})
	c.JSON(http.StatusOK, gin.H{
		"achievements": achievements,
		"count":        len(achievements),
	})
}

// ListChallenges returns all challenges with progress
func (s *Server) ListChallenges(c *gin.Context) {
	var challenges []*models.Challenge
	s.eng.View(func(st *repository.State) {
		for _, ch := range st.Snapshot().Challenges {
			challenges = append(challenges, ch)
		}
	})
	c.JSON(http.StatusOK, gin.H{
		"challenges": challenges,
		"count":      len(challenges),
	})
}
