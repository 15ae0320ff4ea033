package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"student-concern-api/config"
	"student-concern-api/models"

	"github.com/gin-gonic/gin"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(c *gin.Context) {
	reviewer := currentReviewer(c)
	if reviewer == nil {
		return
	}

	unreadOnly := strings.TrimSpace(c.Query("unreadOnly"))
	limit := 20
	offset := 0
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("offset"))); err == nil && v >= 0 {
		offset = v
	}

	q := config.DB.Model(&models.Notification{}).Where("reviewer_id = ?", reviewer.ReviewerID)
	if unreadOnly == "1" || strings.EqualFold(unreadOnly, "true") {
		q = q.Where("is_read = 0")
	}

	var items []models.Notification
	if err := q.Order("create_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetNotificationCounter returns the caller's unread count.
func GetNotificationCounter(c *gin.Context) {
	reviewer := currentReviewer(c)
	if reviewer == nil {
		return
	}

	var n int64
	if err := config.DB.Model(&models.Notification{}).
		Where("reviewer_id = ? AND is_read = 0", reviewer.ReviewerID).
		Count(&n).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	reviewer := currentReviewer(c)
	if reviewer == nil {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := config.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND reviewer_id = ?", id, reviewer.ReviewerID).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MarkAllNotificationsRead marks every unread notification of the caller.
func MarkAllNotificationsRead(c *gin.Context) {
	reviewer := currentReviewer(c)
	if reviewer == nil {
		return
	}

	if err := config.DB.Model(&models.Notification{}).
		Where("reviewer_id = ? AND is_read = 0", reviewer.ReviewerID).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
