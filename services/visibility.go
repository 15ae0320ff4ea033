package services

import (
	"errors"
	"fmt"

	"student-concern-api/models"

	"gorm.io/gorm"
)

// DashboardAssignedLimit caps the SSC dashboard at the two most recently
// assigned concerns. Display convention only: an SSC representative may
// still open any individually addressed concern assigned to them.
const DashboardAssignedLimit = 2

// GetReviewer resolves an authenticated identity to its reviewer profile.
// An identity without a profile row gets ErrRoleNotFound; nothing is
// visible and no default role is assumed.
func GetReviewer(db *gorm.DB, reviewerID int) (*models.Reviewer, error) {
	var reviewer models.Reviewer
	if err := db.Where("reviewer_id = ? AND delete_at IS NULL", reviewerID).First(&reviewer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reviewer %d: %w", reviewerID, ErrRoleNotFound)
		}
		return nil, fmt.Errorf("failed to load reviewer: %w", err)
	}
	return &reviewer, nil
}

// assignedConcernScope narrows a concern query to the caller's assignments.
// Assignments are duplicate-tolerant, so a subquery keeps the result set
// free of repeated rows.
func assignedConcernScope(db *gorm.DB, reviewerID int) *gorm.DB {
	sub := db.Model(&models.Assignment{}).
		Select("concern_id").
		Where("reviewer_id = ?", reviewerID)
	return db.Model(&models.Concern{}).Where("concern_id IN (?)", sub)
}

// facultyConcernScope narrows a concern query to the escalation-or-flag
// gated set a faculty mentor may see.
func facultyConcernScope(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Concern{}).
		Where("status = ? OR is_flagship = ? OR is_open_forum = ?", models.StatusEscalated, true, true)
}

// VisibleConcerns lists every concern the reviewer's role permits:
// assignment-scoped for SSC, everything for USC, escalation-or-flag gated
// for faculty.
func VisibleConcerns(db *gorm.DB, reviewer *models.Reviewer) ([]models.Concern, error) {
	var concerns []models.Concern
	var query *gorm.DB

	switch reviewer.Role {
	case models.RoleSSC:
		query = assignedConcernScope(db, reviewer.ReviewerID)
	case models.RoleUSC:
		query = db.Model(&models.Concern{})
	case models.RoleFaculty:
		query = facultyConcernScope(db)
	default:
		return nil, fmt.Errorf("role %q: %w", reviewer.Role, ErrRoleNotFound)
	}

	if err := query.Order("created_at DESC").Find(&concerns).Error; err != nil {
		return nil, fmt.Errorf("failed to list concerns: %w", err)
	}
	return concerns, nil
}

// DashboardConcerns is VisibleConcerns with the SSC display cap applied.
func DashboardConcerns(db *gorm.DB, reviewer *models.Reviewer) ([]models.Concern, error) {
	if reviewer.Role != models.RoleSSC {
		return VisibleConcerns(db, reviewer)
	}

	var concerns []models.Concern
	if err := assignedConcernScope(db, reviewer.ReviewerID).
		Order("created_at DESC").
		Limit(DashboardAssignedLimit).
		Find(&concerns).Error; err != nil {
		return nil, fmt.Errorf("failed to list concerns: %w", err)
	}
	return concerns, nil
}

// CanAccess reports whether the reviewer may open one individually
// addressed concern. USC sees all; SSC needs an assignment; faculty needs
// the escalation-or-flag gate.
func CanAccess(db *gorm.DB, reviewer *models.Reviewer, concern *models.Concern) (bool, error) {
	switch reviewer.Role {
	case models.RoleUSC:
		return true, nil
	case models.RoleSSC:
		var count int64
		if err := db.Model(&models.Assignment{}).
			Where("concern_id = ? AND reviewer_id = ?", concern.ConcernID, reviewer.ReviewerID).
			Count(&count).Error; err != nil {
			return false, fmt.Errorf("failed to check assignment: %w", err)
		}
		return count > 0, nil
	case models.RoleFaculty:
		return concern.Status == models.StatusEscalated || concern.IsFlagship || concern.IsOpenForum, nil
	}
	return false, fmt.Errorf("role %q: %w", reviewer.Role, ErrRoleNotFound)
}

// Subordinates lists the reviewers supervised by the caller via the
// parent back-reference (SSC under a USC, USC under a faculty mentor).
func Subordinates(db *gorm.DB, reviewer *models.Reviewer) ([]models.Reviewer, error) {
	var subs []models.Reviewer
	if err := db.Where("parent_id = ? AND delete_at IS NULL", reviewer.ReviewerID).
		Order("full_name ASC").
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load subordinates: %w", err)
	}
	return subs, nil
}

// SubordinateGroup is one supervised SSC representative together with the
// concerns currently assigned to them, for the USC grouped dashboard view.
type SubordinateGroup struct {
	Reviewer models.Reviewer  `json:"reviewer"`
	Concerns []models.Concern `json:"concerns"`
}

// SubordinateGroups computes, per supervised class representative, the
// subset of concerns assigned to that representative.
func SubordinateGroups(db *gorm.DB, reviewer *models.Reviewer) ([]SubordinateGroup, error) {
	subs, err := Subordinates(db, reviewer)
	if err != nil {
		return nil, err
	}

	groups := make([]SubordinateGroup, 0, len(subs))
	for _, sub := range subs {
		var concerns []models.Concern
		if err := assignedConcernScope(db, sub.ReviewerID).
			Order("created_at DESC").
			Find(&concerns).Error; err != nil {
			return nil, fmt.Errorf("failed to list concerns for reviewer %d: %w", sub.ReviewerID, err)
		}
		groups = append(groups, SubordinateGroup{Reviewer: sub, Concerns: concerns})
	}
	return groups, nil
}
