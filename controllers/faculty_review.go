package controllers

import (
	"net/http"
	"strconv"

	"student-concern-api/config"
	"student-concern-api/services"

	"github.com/gin-gonic/gin"
)

// FacultyRemarks attaches the faculty mentor's remarks to an escalated
// concern, optionally flagging it for open-forum or flagship handling.
// Remarks are set once; the concern stays escalated until the USC issues
// the final resolution.
func FacultyRemarks(c *gin.Context) {
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
		Remarks     string `json:"remarks" binding:"required"`
		IsOpenForum bool   `json:"is_open_forum"`
		IsFlagship  bool   `json:"is_flagship"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !requireConcernAccess(c, reviewer, concernID) {
		return
	}

	concern, err := services.ApplyTransition(config.DB, services.TransitionInput{
		ConcernID: concernID,
		Reviewer:  *reviewer,
		Action:    services.ActionAttachRemarks,
		Remarks:   req.Remarks,
		OpenForum: req.IsOpenForum,
		Flagship:  req.IsFlagship,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Faculty remarks recorded",
		"concern": concern,
	})
}
