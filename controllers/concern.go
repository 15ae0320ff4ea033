package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"student-concern-api/config"
	"student-concern-api/models"
	"student-concern-api/services"
	"student-concern-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubmitConcernRequest struct {
	Category    string `json:"category" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
	IsAnonymous bool   `json:"is_anonymous"`

	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
	StudentCode  string `json:"student_id"`
	Department   string `json:"department"`

	EvidenceURL string `json:"evidence_url"`
}

// SubmitConcern handles the public submission form. No session required.
func SubmitConcern(c *gin.Context) {
	var req SubmitConcernRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	concern, err := services.CreateConcern(config.DB, services.CreateConcernInput{
		Category:     req.Category,
		Subject:      req.Subject,
		Description:  req.Description,
		IsAnonymous:  req.IsAnonymous,
		StudentName:  req.StudentName,
		StudentEmail: req.StudentEmail,
		StudentCode:  req.StudentCode,
		Department:   req.Department,
		EvidenceURL:  req.EvidenceURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrReferenceCollision) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not allocate a concern number, please retry"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"message":        "Concern submitted successfully",
		"concern_number": concern.ConcernNumber,
	})
}

// TrackConcern is the public tracking endpoint keyed by concern number.
// Identity fields never appear in the public payload, even for named
// submissions.
func TrackConcern(c *gin.Context) {
	number := strings.ToUpper(strings.TrimSpace(c.Param("number")))
	if !utils.IsConcernNumber(number) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid concern number"})
		return
	}

	concern, err := services.GetConcernByNumber(config.DB, number)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Concern not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load concern"})
		return
	}

	timeline, err := services.GetTimeline(config.DB, concern.ConcernID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"concern": gin.H{
			"concern_number": concern.ConcernNumber,
			"category":       concern.Category,
			"subject":        concern.Subject,
			"status":         concern.Status,
			"severity":       concern.Severity,
			"is_open_forum":  concern.IsOpenForum,
			"is_flagship":    concern.IsFlagship,
			"created_at":     concern.CreatedAt,
			"updated_at":     concern.UpdatedAt,
		},
		"timeline": timeline,
	})
}

// GetConcern returns one concern for a reviewer, gated by the caller's
// visibility. Offered actions are presentation hints; every mutation is
// re-validated against the stored status when applied.
func GetConcern(c *gin.Context) {
	reviewer := currentReviewer(c)
	if reviewer == nil {
		return
	}

	concernID, err := strconv.Atoi(c.Param("id"))
	if err != nil || concernID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid concern ID"})
		return
	}

	var concern models.Concern
	if err := config.DB.Where("concern_id = ?", concernID).First(&concern).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Concern not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load concern"})
		return
	}

	allowed, err := services.CanAccess(config.DB, reviewer, &concern)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not assigned to this concern"})
		return
	}

	timeline, err := services.GetTimeline(config.DB, concern.ConcernID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline"})
		return
	}

	var assignments []models.Assignment
	if err := config.DB.Preload("Reviewer").
		Where("concern_id = ?", concern.ConcernID).
		Order("created_at ASC").
		Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"concern":         concern,
		"timeline":        timeline,
		"assignments":     assignments,
		"offered_actions": services.OfferedActions(concern.Status, reviewer.Role),
	})
}

// ListConcerns is the concern library: the caller's full visible set with
// optional status and month filters.
func ListConcerns(c *gin.Context) {
	reviewer := currentReviewer(c)
	if reviewer == nil {
		return
	}

	concerns, err := services.VisibleConcerns(config.DB, reviewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list concerns"})
		return
	}

	statusFilter := strings.TrimSpace(c.Query("status"))
	monthFilter := strings.TrimSpace(c.Query("month")) // YYYY-MM

	filtered := make([]models.Concern, 0, len(concerns))
	for _, concern := range concerns {
		if statusFilter != "" && statusFilter != "all" && string(concern.Status) != statusFilter {
			continue
		}
		if monthFilter != "" && concern.CreatedAt.Format("2006-01") != monthFilter {
			continue
		}
		filtered = append(filtered, concern)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"concerns": filtered,
		"total":    len(filtered),
	})
}

// GetOpenForumConcerns lists concerns flagged for open-forum handling.
func GetOpenForumConcerns(c *gin.Context) {
	reviewer := currentReviewer(c)
	if reviewer == nil {
		return
	}

	var concerns []models.Concern
	if err := config.DB.Where("is_open_forum = ?", true).
		Order("created_at DESC").
		Find(&concerns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list open forum concerns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"concerns": concerns,
		"total":    len(concerns),
	})
}

// GetCategories returns the fixed submission category list.
func GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": models.ConcernCategories,
	})
}

// GetFacultyMentors lists active faculty mentors for the escalation picker.
func GetFacultyMentors(c *gin.Context) {
	reviewer := currentReviewer(c)
	if reviewer == nil {
		return
	}
	if reviewer.Role != models.RoleUSC {
		c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("Role %s cannot list faculty mentors", reviewer.Role)})
		return
	}

	var mentors []models.Reviewer
	if err := config.DB.Where("role = ? AND delete_at IS NULL", models.RoleFaculty).
		Order("full_name ASC").
		Find(&mentors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list faculty mentors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"faculty": mentors,
	})
}
