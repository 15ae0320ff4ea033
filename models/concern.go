package models

import "time"

// ConcernStatus is the closed set of lifecycle states for a concern.
type ConcernStatus string

const (
	StatusPending   ConcernStatus = "pending"
	StatusReviewing ConcernStatus = "reviewing"
	StatusEscalated ConcernStatus = "escalated"
	StatusResolved  ConcernStatus = "resolved"
)

// ConcernCategories is the fixed list offered on the submission form.
var ConcernCategories = []string{
	"Academic Issues",
	"Infrastructure",
	"Faculty Related",
	"Administrative",
	"Hostel/Accommodation",
	"Canteen/Mess",
	"Transportation",
	"Library",
	"Sports & Recreation",
	"Events & Activities",
	"Safety & Security",
	"Other",
}

// IsValidCategory reports whether category is one of the fixed submission categories.
func IsValidCategory(category string) bool {
	for _, c := range ConcernCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Concern represents one student-raised issue tracked through the review
// lifecycle. Rows are never deleted; resolved concerns stay as audit records.
type Concern struct {
	ConcernID     int    `gorm:"primaryKey;column:concern_id" json:"concern_id"`
	ConcernNumber string `gorm:"column:concern_number;unique" json:"concern_number"`
	Category      string `gorm:"column:category" json:"category"`
	Subject       string `gorm:"column:subject" json:"subject"`
	Description   string `gorm:"column:description" json:"description"`
	IsAnonymous   bool   `gorm:"column:is_anonymous" json:"is_anonymous"`

	// Identity fields are NULL for anonymous submissions, not merely hidden.
	StudentName  *string `gorm:"column:student_name" json:"student_name,omitempty"`
	StudentEmail *string `gorm:"column:student_email" json:"student_email,omitempty"`
	StudentCode  *string `gorm:"column:student_code" json:"student_code,omitempty"`
	Department   *string `gorm:"column:department" json:"department,omitempty"`

	EvidenceURL *string `gorm:"column:evidence_url" json:"evidence_url,omitempty"`

	Status         ConcernStatus `gorm:"column:status" json:"status"`
	Severity       *int          `gorm:"column:severity" json:"severity,omitempty"`
	IsOpenForum    bool          `gorm:"column:is_open_forum" json:"is_open_forum"`
	IsFlagship     bool          `gorm:"column:is_flagship" json:"is_flagship"`
	FacultyRemarks *string       `gorm:"column:faculty_remarks" json:"faculty_remarks,omitempty"`
	Resolution     *string       `gorm:"column:resolution" json:"resolution,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Concern.
func (Concern) TableName() string {
	return "concerns"
}
