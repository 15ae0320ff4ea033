package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"student-concern-api/models"
	"student-concern-api/utils"

	"gorm.io/gorm"
)

// CreateConcernInput is a validated submission from the public form.
type CreateConcernInput struct {
	Category    string
	Subject     string
	Description string
	IsAnonymous bool

	StudentName  string
	StudentEmail string
	StudentCode  string
	Department   string

	EvidenceURL string
}

// CreateConcern records a new concern in pending status, appends the initial
// timeline entries and assigns the class representatives. For anonymous
// submissions the identity columns are written as NULL, not blanked
// client-side.
func CreateConcern(db *gorm.DB, in CreateConcernInput) (*models.Concern, error) {
	if !models.IsValidCategory(in.Category) {
		return nil, fmt.Errorf("unknown concern category %q", in.Category)
	}
	if strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("subject and description are required")
	}

	concern := models.Concern{
		Category:    in.Category,
		Subject:     utils.SanitizeInput(in.Subject),
		Description: utils.SanitizeInput(in.Description),
		IsAnonymous: in.IsAnonymous,
		Status:      models.StatusPending,
	}

	if in.IsAnonymous {
		// All identity fields stay NULL, department included. Anonymous
		// concerns route to the default representative pair.
	} else {
		name := strings.TrimSpace(in.StudentName)
		email := strings.TrimSpace(in.StudentEmail)
		code := strings.TrimSpace(in.StudentCode)
		dept := strings.TrimSpace(in.Department)
		if name == "" || email == "" || code == "" || dept == "" {
			return nil, fmt.Errorf("named submissions require name, email, student id and department")
		}
		if !utils.ValidateEmail(email) {
			return nil, fmt.Errorf("invalid student email")
		}
		concern.StudentName = &name
		concern.StudentEmail = &email
		concern.StudentCode = &code
		concern.Department = &dept
	}

	if evidence := strings.TrimSpace(in.EvidenceURL); evidence != "" {
		// Opaque reference to the uploaded object; never dereferenced here.
		concern.EvidenceURL = &evidence
	}

	number, err := GenerateConcernNumber(db)
	if err != nil {
		return nil, err
	}
	concern.ConcernNumber = number

	now := time.Now()
	concern.CreatedAt = now
	concern.UpdatedAt = now

	tx := db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Create(&concern).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create concern: %w", err)
	}

	submitted := models.TimelineEntry{
		ConcernID:   concern.ConcernID,
		Title:       "Concern Submitted",
		Description: strPtr("Concern received and queued for SSC review."),
		CreatedAt:   now,
	}
	if err := tx.Create(&submitted).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to append timeline entry: %w", err)
	}

	representatives, err := classRepresentatives(tx, concern.Department)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(representatives) > 0 {
		for _, rep := range representatives {
			assignment := models.Assignment{
				ConcernID:  concern.ConcernID,
				ReviewerID: rep.ReviewerID,
				CreatedAt:  now,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				tx.Rollback()
				return nil, fmt.Errorf("failed to assign representative: %w", err)
			}
		}
		assigned := models.TimelineEntry{
			ConcernID:   concern.ConcernID,
			Title:       "Assigned to Representatives",
			Description: strPtr(fmt.Sprintf("Assigned to %d SSC representative(s).", len(representatives))),
			CreatedAt:   now,
		}
		if err := tx.Create(&assigned).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to append timeline entry: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit concern: %w", err)
	}

	return &concern, nil
}

// classRepresentatives picks the SSC pair for the submission's department,
// falling back to the representatives with no department (the general pair).
// A concern with no matching representatives simply starts unassigned.
func classRepresentatives(db *gorm.DB, department *string) ([]models.Reviewer, error) {
	var reps []models.Reviewer

	if department != nil {
		if err := db.Where("role = ? AND department = ? AND delete_at IS NULL", models.RoleSSC, *department).
			Find(&reps).Error; err != nil {
			return nil, fmt.Errorf("failed to load representatives: %w", err)
		}
		if len(reps) > 0 {
			return reps, nil
		}
	}

	if err := db.Where("role = ? AND department IS NULL AND delete_at IS NULL", models.RoleSSC).
		Find(&reps).Error; err != nil {
		return nil, fmt.Errorf("failed to load representatives: %w", err)
	}
	return reps, nil
}

// GetConcernByNumber loads one concern by its public reference code.
func GetConcernByNumber(db *gorm.DB, number string) (*models.Concern, error) {
	var concern models.Concern
	if err := db.Where("concern_number = ?", strings.TrimSpace(number)).First(&concern).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("concern %s: %w", number, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load concern: %w", err)
	}
	return &concern, nil
}

// GetTimeline lists a concern's timeline entries in insertion order.
func GetTimeline(db *gorm.DB, concernID int) ([]models.TimelineEntry, error) {
	var entries []models.TimelineEntry
	if err := db.Where("concern_id = ?", concernID).
		Order("created_at ASC, entry_id ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	return entries, nil
}
