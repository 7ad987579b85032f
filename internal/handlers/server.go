// Package handlers exposes the rules engine over HTTP. Handlers validate
// input, call into the engine and translate its error taxonomy to status
// codes; no game rules live here.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JunoAX/chorepoints-go/internal/auth"
	"github.com/JunoAX/chorepoints-go/internal/engine"
)

// Server bundles the dependencies the handlers need.
type Server struct {
	eng *engine.Engine
	jwt *auth.JWTService
}

// New creates a handler set over the engine.
func New(eng *engine.Engine, jwt *auth.JWTService) *Server {
	return &Server{eng: eng, jwt: jwt}
}

// respondError maps engine errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "details": err.Error()})
	case errors.Is(err, engine.ErrNotAssigned):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not assigned", "details": err.Error()})
	case errors.Is(err, engine.ErrAlreadyActed):
		c.JSON(http.StatusConflict, gin.H{"error": "Already acted", "details": err.Error()})
	case errors.Is(err, engine.ErrInsufficientBalance):
		resp := gin.H{"error": "Insufficient points"}
		var be *engine.BalanceError
		if errors.As(err, &be) {
			resp["points_available"] = be.Available
			resp["points_required"] = be.Required
			resp["points_short"] = be.Short()
		}
		c.JSON(http.StatusBadRequest, resp)
	case errors.Is(err, engine.ErrInvalidSchedule):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule", "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error", "details": err.Error()})
	}
}
