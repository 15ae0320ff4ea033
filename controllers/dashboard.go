package controllers

import (
	"net/http"

	"student-concern-api/config"
	"student-concern-api/models"
	"student-concern-api/services"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns the caller's role-scoped concern list with the
// actions offered for each, plus summary counts. For USC callers it also
// groups concerns per supervised SSC representative.
func GetDashboard(c *gin.Context) {
	reviewer := currentReviewer(c)
	if reviewer == nil {
		return
	}

	concerns, err := services.DashboardConcerns(config.DB, reviewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	type dashboardConcern struct {
		models.Concern
		OfferedActions []services.Action `json:"offered_actions"`
	}

	items := make([]dashboardConcern, 0, len(concerns))
	for _, concern := range concerns {
		items = append(items, dashboardConcern{
			Concern:        concern,
			OfferedActions: services.OfferedActions(concern.Status, reviewer.Role),
		})
	}

	stats, err := dashboardStats(reviewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	response := gin.H{
		"success":  true,
		"role":     reviewer.Role,
		"concerns": items,
		"stats":    stats,
	}

	if reviewer.Role == models.RoleUSC {
		groups, err := services.SubordinateGroups(config.DB, reviewer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load representative groups"})
			return
		}
		response["representatives"] = groups
	}

	c.JSON(http.StatusOK, response)
}

// dashboardStats counts the caller's visible set by status.
func dashboardStats(reviewer *models.Reviewer) (gin.H, error) {
	concerns, err := services.VisibleConcerns(config.DB, reviewer)
	if err != nil {
		return nil, err
	}

	counts := map[models.ConcernStatus]int{}
	for _, concern := range concerns {
		counts[concern.Status]++
	}

	stats := gin.H{
		"total":     len(concerns),
		"pending":   counts[models.StatusPending],
		"reviewing": counts[models.StatusReviewing],
		"resolved":  counts[models.StatusResolved],
	}
	if reviewer.Role != models.RoleSSC {
		stats["escalated"] = counts[models.StatusEscalated]
	}
	return stats, nil
}
