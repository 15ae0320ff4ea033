package controllers

import (
	"errors"
	"net/http"

	"student-concern-api/config"
	"student-concern-api/models"
	"student-concern-api/services"

	"github.com/gin-gonic/gin"
)

// currentReviewer resolves the authenticated caller to a reviewer profile.
// Writes the error response and returns nil when the caller cannot act.
func currentReviewer(c *gin.Context) *models.Reviewer {
	reviewerIDValue, exists := c.Get("reviewerID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrUnauthenticated.Error()})
		return nil
	}
	reviewerID, ok := reviewerIDValue.(int)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid reviewer context"})
		return nil
	}

	reviewer, err := services.GetReviewer(config.DB, reviewerID)
	if err != nil {
		if errors.Is(err, services.ErrRoleNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found"})
			return nil
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviewer"})
		return nil
	}
	return reviewer
}

// requireConcernAccess enforces the caller's visibility gate on an
// individually addressed concern before a mutation is attempted. The
// lifecycle engine still re-validates role and status on apply.
func requireConcernAccess(c *gin.Context, reviewer *models.Reviewer, concernID int) bool {
	var concern models.Concern
	if err := config.DB.Where("concern_id = ?", concernID).First(&concern).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Concern not found"})
		return false
	}

	allowed, err := services.CanAccess(config.DB, reviewer, &concern)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not assigned to this concern"})
		return false
	}
	return true
}
