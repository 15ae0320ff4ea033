package models

import "time"

// Notification is an in-app message for one reviewer, usually produced by a
// concern transition. Read state is per notification, not per reviewer.
type Notification struct {
	NotificationID   uint       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	ReviewerID       uint       `gorm:"column:reviewer_id" json:"reviewer_id"`
	Title            string     `gorm:"column:title" json:"title"`
	Message          string     `gorm:"column:message" json:"message"`
	Type             string     `gorm:"column:type" json:"type"` // info|success|warning|error
	RelatedConcernID *uint      `gorm:"column:related_concern_id" json:"related_concern_id,omitempty"`
	IsRead           bool       `gorm:"column:is_read" json:"is_read"`
	CreateAt         time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"-"`
}

// TableName specifies the table for Notification.
func (Notification) TableName() string {
	return "notifications"
}
