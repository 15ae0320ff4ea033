package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"student-concern-api/config"
	"student-concern-api/services"

	"github.com/gin-gonic/gin"
)

// SSCDecision handles the class-level validity triage: a pending concern is
// either forwarded for severity assessment or closed as invalid.
func SSCDecision(c *gin.Context) {
	reviewer := currentReviewer(c)
	if reviewer == nil {
		return
	}

	concernID, err := strconv.Atoi(c.Param("id"))
	if err != nil || concernID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid concern ID"})
		return
	}

	var req struct {
		Validity string `json:"validity" binding:"required"`
		Notes    string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var action services.Action
	switch strings.ToLower(strings.TrimSpace(req.Validity)) {
	case "valid":
		action = services.ActionMarkValid
	case "invalid":
		action = services.ActionMarkInvalid
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validity must be either 'valid' or 'invalid'"})
		return
	}

	if !requireConcernAccess(c, reviewer, concernID) {
		return
	}

	concern, err := services.ApplyTransition(config.DB, services.TransitionInput{
		ConcernID: concernID,
		Reviewer:  *reviewer,
		Action:    action,
		Notes:     req.Notes,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	message := "Concern validated and forwarded to USC"
	if action == services.ActionMarkInvalid {
		message = "Concern marked invalid and closed"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"concern": concern,
	})
}

// respondTransitionError maps workflow failures onto HTTP statuses. Guard
// failures name the unmet precondition so the client can refresh and
// re-offer the correct actions.
func respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Concern not found"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMissingFacultyAssignment):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
