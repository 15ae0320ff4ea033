package models

import "time"

// TimelineEntry is an append-only audit record attached to one concern.
// Entries are never updated or deleted after creation; ordering between
// concurrent appends is the store's own insertion order.
type TimelineEntry struct {
	EntryID     int       `gorm:"primaryKey;column:entry_id" json:"entry_id"`
	ConcernID   int       `gorm:"column:concern_id" json:"concern_id"`
	Title       string    `gorm:"column:title" json:"title"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table for TimelineEntry.
func (TimelineEntry) TableName() string {
	return "concern_timeline"
}
