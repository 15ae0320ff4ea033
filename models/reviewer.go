package models

import "time"

// ReviewerRole is the closed three-valued role set of the review hierarchy.
type ReviewerRole string

const (
	RoleSSC     ReviewerRole = "ssc"     // class-level representative
	RoleUSC     ReviewerRole = "usc"     // department-level representative
	RoleFaculty ReviewerRole = "faculty" // faculty mentor
)

// IsValidRole reports whether role is one of the three reviewer roles.
func IsValidRole(role ReviewerRole) bool {
	switch role {
	case RoleSSC, RoleUSC, RoleFaculty:
		return true
	}
	return false
}

// Reviewer is one participant in the review hierarchy. Role is immutable
// once assigned. SSC representatives are paired via PartnerID; SSC report to
// a USC and USCs report to a faculty mentor via ParentID, forming a shallow
// two-level tree.
type Reviewer struct {
	ReviewerID int          `gorm:"primaryKey;column:reviewer_id" json:"reviewer_id"`
	Email      string       `gorm:"column:email;unique" json:"email"`
	Password   string       `gorm:"column:password" json:"-"`
	FullName   string       `gorm:"column:full_name" json:"full_name"`
	Role       ReviewerRole `gorm:"column:role" json:"role"`
	Department *string      `gorm:"column:department" json:"department,omitempty"`
	PartnerID  *int         `gorm:"column:partner_id" json:"partner_id,omitempty"`
	ParentID   *int         `gorm:"column:parent_id" json:"parent_id,omitempty"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Partner *Reviewer `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	Parent  *Reviewer `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
}

// TableName specifies the table for Reviewer.
func (Reviewer) TableName() string {
	return "reviewers"
}
