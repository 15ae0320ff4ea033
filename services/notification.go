package services

import (
	"fmt"
	"log"
	"time"

	"student-concern-api/config"
	"student-concern-api/models"

	"gorm.io/gorm"
)

// queueTransitionNotifications inserts the notification rows a transition
// produces, inside the same transaction as the transition itself.
func queueTransitionNotifications(tx *gorm.DB, concern *models.Concern, tr Transition, in TransitionInput, faculty *models.Reviewer, now time.Time) error {
	concernID := uint(concern.ConcernID)

	switch in.Action {
	case ActionEscalate:
		if faculty == nil {
			return nil
		}
		notification := models.Notification{
			ReviewerID:       uint(faculty.ReviewerID),
			Title:            "Concern Escalated to You",
			Message:          fmt.Sprintf("Concern %s (%s) was escalated for your review.", concern.ConcernNumber, concern.Category),
			Type:             "warning",
			RelatedConcernID: &concernID,
			CreateAt:         now,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return fmt.Errorf("failed to queue escalation notification: %w", err)
		}

	case ActionAttachRemarks:
		// Tell the USC reviewers supervised by this faculty mentor that the
		// concern is ready for final resolution.
		var subordinates []models.Reviewer
		if err := tx.Where("parent_id = ? AND role = ? AND delete_at IS NULL", in.Reviewer.ReviewerID, models.RoleUSC).
			Find(&subordinates).Error; err != nil {
			return fmt.Errorf("failed to load subordinate reviewers: %w", err)
		}
		for _, usc := range subordinates {
			notification := models.Notification{
				ReviewerID:       uint(usc.ReviewerID),
				Title:            "Faculty Remarks Attached",
				Message:          fmt.Sprintf("Concern %s has faculty remarks and awaits final resolution.", concern.ConcernNumber),
				Type:             "info",
				RelatedConcernID: &concernID,
				CreateAt:         now,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return fmt.Errorf("failed to queue remarks notification: %w", err)
			}
		}
	}

	return nil
}

// sendEscalationEmail mails the chosen faculty mentor after an escalation
// commits. Failures are logged and never propagated.
func sendEscalationEmail(concern *models.Concern, faculty *models.Reviewer) {
	subject := fmt.Sprintf("Concern %s escalated for your review", concern.ConcernNumber)
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>The concern <strong>%s</strong> (category: %s) has been escalated to you by the university student council.</p>
<p>Subject: %s</p>
<p>Please sign in to the concern portal to attach your remarks.</p>`,
		faculty.FullName, concern.ConcernNumber, concern.Category, concern.Subject)

	if err := config.SendMail([]string{faculty.Email}, subject, body); err != nil {
		log.Printf("Warning: failed to send escalation email for %s: %v", concern.ConcernNumber, err)
	}
}
