package controllers

import (
	"net/http"
	"strconv"

	"student-concern-api/config"
	"student-concern-api/services"

	"github.com/gin-gonic/gin"
)

// USCAssessment handles the department-level decision on a reviewing
// concern: severity is assessed once, then the concern is either resolved
// or escalated to a named faculty mentor.
func USCAssessment(c *gin.Context) {
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
		Severity  int    `json:"severity" binding:"required,min=1,max=5"`
		Escalate  bool   `json:"escalate"`
		FacultyID int    `json:"faculty_id"`
		Notes     string `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	action := services.ActionResolve
	if req.Escalate {
		action = services.ActionEscalate
	}

	concern, err := services.ApplyTransition(config.DB, services.TransitionInput{
		ConcernID: concernID,
		Reviewer:  *reviewer,
		Action:    action,
		Notes:     req.Notes,
		Severity:  req.Severity,
		FacultyID: req.FacultyID,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	message := "Concern assessment recorded"
	if req.Escalate {
		message = "Concern escalated to faculty"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"concern": concern,
	})
}

// FinalResolution handles the department-level closing of an escalated
// concern once faculty remarks are present.
func FinalResolution(c *gin.Context) {
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
		Resolution string `json:"resolution" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	concern, err := services.ApplyTransition(config.DB, services.TransitionInput{
		ConcernID:  concernID,
		Reviewer:   *reviewer,
		Action:     services.ActionFinalResolve,
		Resolution: req.Resolution,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	})
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Final resolution recorded",
		"concern": concern,
	})
}
