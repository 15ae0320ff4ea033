package models

import "time"

// Assignment links a concern to a reviewer responsible for it. Assignments
// are additive only: there is no removal operation and duplicates are
// tolerated. A concern may carry zero, one, or many assignments at once.
type Assignment struct {
	AssignmentID int       `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	ConcernID    int       `gorm:"column:concern_id" json:"concern_id"`
	ReviewerID   int       `gorm:"column:reviewer_id" json:"reviewer_id"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`

	Reviewer *Reviewer `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName specifies the table for Assignment.
func (Assignment) TableName() string {
	return "concern_assignments"
}
