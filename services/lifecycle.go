package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"student-concern-api/models"

	"gorm.io/gorm"
)

// Action identifies one reviewer decision on a concern.
type Action string

const (
	ActionMarkInvalid   Action = "mark_invalid"
	ActionMarkValid     Action = "mark_valid"
	ActionResolve       Action = "resolve"
	ActionEscalate      Action = "escalate"
	ActionAttachRemarks Action = "attach_remarks"
	ActionFinalResolve  Action = "final_resolve"
)

// Transition is one edge of the concern lifecycle graph. The graph is
// linear with a single optional escalation hop and no path out of
// resolved; a resolved concern cannot be reopened.
type Transition struct {
	From          models.ConcernStatus
	Role          models.ReviewerRole
	Action        Action
	To            models.ConcernStatus
	TimelineTitle string
}

var transitionTable = []Transition{
	{From: models.StatusPending, Role: models.RoleSSC, Action: ActionMarkInvalid, To: models.StatusResolved, TimelineTitle: "SSC Review: INVALID"},
	{From: models.StatusPending, Role: models.RoleSSC, Action: ActionMarkValid, To: models.StatusReviewing, TimelineTitle: "SSC Review: VALID"},
	{From: models.StatusReviewing, Role: models.RoleUSC, Action: ActionResolve, To: models.StatusResolved, TimelineTitle: "USC Assessment: RESOLVED"},
	{From: models.StatusReviewing, Role: models.RoleUSC, Action: ActionEscalate, To: models.StatusEscalated, TimelineTitle: "Escalated to Faculty"},
	{From: models.StatusEscalated, Role: models.RoleFaculty, Action: ActionAttachRemarks, To: models.StatusEscalated, TimelineTitle: "Faculty Remarks Added"},
	{From: models.StatusEscalated, Role: models.RoleUSC, Action: ActionFinalResolve, To: models.StatusResolved, TimelineTitle: "Final Resolution"},
}

// LookupTransition finds the transition for the given source status, actor
// role and action. Missing entries mean the action is not permitted.
func LookupTransition(from models.ConcernStatus, role models.ReviewerRole, action Action) (Transition, bool) {
	for _, tr := range transitionTable {
		if tr.From == from && tr.Role == role && tr.Action == action {
			return tr, true
		}
	}
	return Transition{}, false
}

// OfferedActions lists the actions a dashboard should present for a concern
// in the given status to a reviewer of the given role. Presentation only:
// ApplyTransition re-validates against the stored status on every call.
func OfferedActions(status models.ConcernStatus, role models.ReviewerRole) []Action {
	var actions []Action
	for _, tr := range transitionTable {
		if tr.From == status && tr.Role == role {
			actions = append(actions, tr.Action)
		}
	}
	return actions
}

// TransitionInput carries one reviewer decision. Severity, FacultyID,
// Remarks and Resolution are consulted only by the actions that need them.
type TransitionInput struct {
	ConcernID int
	Reviewer  models.Reviewer
	Action    Action
	Notes     string

	Severity  int // resolve / escalate
	FacultyID int // escalate
	Remarks   string
	OpenForum bool
	Flagship  bool

	Resolution string

	IPAddress string
	UserAgent string
}

// ApplyTransition applies one lifecycle decision. The stored status is the
// authority: the update is conditional on the row still holding the
// transition's source status (plus the set-once guards), so two reviewers
// racing on the same concern produce exactly one winner. The loser gets
// ErrInvalidTransition and must re-read before retrying.
func ApplyTransition(db *gorm.DB, in TransitionInput) (*models.Concern, error) {
	var concern models.Concern
	if err := db.Where("concern_id = ?", in.ConcernID).First(&concern).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("concern %d: %w", in.ConcernID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load concern: %w", err)
	}

	tr, ok := LookupTransition(concern.Status, in.Reviewer.Role, in.Action)
	if !ok {
		return nil, fmt.Errorf("action %q is not available to role %q while concern %s is %q: %w",
			in.Action, in.Reviewer.Role, concern.ConcernNumber, concern.Status, ErrInvalidTransition)
	}

	var faculty *models.Reviewer
	switch in.Action {
	case ActionResolve, ActionEscalate:
		if in.Severity < 1 || in.Severity > 5 {
			return nil, fmt.Errorf("severity must be between 1 and 5")
		}
		if in.Action == ActionEscalate {
			if in.FacultyID == 0 {
				return nil, ErrMissingFacultyAssignment
			}
			var mentor models.Reviewer
			if err := db.Where("reviewer_id = ? AND role = ? AND delete_at IS NULL", in.FacultyID, models.RoleFaculty).
				First(&mentor).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("reviewer %d is not a faculty mentor: %w", in.FacultyID, ErrMissingFacultyAssignment)
				}
				return nil, fmt.Errorf("failed to load faculty mentor: %w", err)
			}
			faculty = &mentor
		}
	case ActionAttachRemarks:
		if strings.TrimSpace(in.Remarks) == "" {
			return nil, fmt.Errorf("faculty remarks must not be empty")
		}
	case ActionFinalResolve:
		if strings.TrimSpace(in.Resolution) == "" {
			return nil, fmt.Errorf("resolution message must not be empty")
		}
		if concern.FacultyRemarks == nil {
			return nil, fmt.Errorf("concern %s has no faculty remarks yet: %w", concern.ConcernNumber, ErrInvalidTransition)
		}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     tr.To,
		"updated_at": now,
	}
	// Extra guard clauses enforce the set-once invariants alongside the
	// status compare-and-swap.
	guards := ""

	switch in.Action {
	case ActionResolve, ActionEscalate:
		// Severity is assigned exactly once, during the department review.
		updates["severity"] = in.Severity
		guards = "severity IS NULL"
	case ActionAttachRemarks:
		updates["faculty_remarks"] = strings.TrimSpace(in.Remarks)
		updates["is_open_forum"] = in.OpenForum
		updates["is_flagship"] = in.Flagship
		guards = "faculty_remarks IS NULL"
	case ActionFinalResolve:
		updates["resolution"] = strings.TrimSpace(in.Resolution)
		guards = "faculty_remarks IS NOT NULL AND resolution IS NULL"
	}

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

	query := tx.Model(&models.Concern{}).
		Where("concern_id = ? AND status = ?", concern.ConcernID, tr.From)
	if guards != "" {
		query = query.Where(guards)
	}

	res := query.Updates(updates)
	if res.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update concern: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, staleTransitionError(db, concern.ConcernID, concern.ConcernNumber, tr)
	}

	if faculty != nil {
		assignment := models.Assignment{
			ConcernID:  concern.ConcernID,
			ReviewerID: faculty.ReviewerID,
			CreatedAt:  now,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to assign faculty mentor: %w", err)
		}
	}

	entry := models.TimelineEntry{
		ConcernID: concern.ConcernID,
		Title:     tr.TimelineTitle,
		CreatedAt: now,
	}
	if desc := timelineDescription(tr, in, faculty); desc != "" {
		entry.Description = &desc
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to append timeline entry: %w", err)
	}

	if err := writeAudit(tx, &concern, tr, in, updates); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := queueTransitionNotifications(tx, &concern, tr, in, faculty, now); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	if faculty != nil {
		// Email is best effort; a mail outage must not fail the decision.
		go sendEscalationEmail(&concern, faculty)
	}

	var updated models.Concern
	if err := db.Where("concern_id = ?", concern.ConcernID).First(&updated).Error; err != nil {
		return nil, fmt.Errorf("failed to reload concern: %w", err)
	}
	return &updated, nil
}

// staleTransitionError names the precondition that failed so the caller can
// refresh and re-offer correct actions instead of seeing an opaque error.
func staleTransitionError(db *gorm.DB, concernID int, number string, tr Transition) error {
	var current models.Concern
	if err := db.Select("status").Where("concern_id = ?", concernID).First(&current).Error; err == nil {
		if current.Status != tr.From {
			return fmt.Errorf("concern %s is no longer in %q state (now %q): %w",
				number, tr.From, current.Status, ErrInvalidTransition)
		}
	}
	return fmt.Errorf("concern %s does not meet the preconditions for %q: %w", number, tr.Action, ErrInvalidTransition)
}

func timelineDescription(tr Transition, in TransitionInput, faculty *models.Reviewer) string {
	var parts []string
	switch in.Action {
	case ActionMarkValid:
		parts = append(parts, "Concern validated by SSC and forwarded to USC for severity assessment.")
	case ActionMarkInvalid:
		parts = append(parts, "Concern marked invalid by SSC and closed.")
	case ActionResolve:
		parts = append(parts, fmt.Sprintf("Severity assessed at %d. Concern resolved without escalation.", in.Severity))
	case ActionEscalate:
		if faculty != nil {
			parts = append(parts, fmt.Sprintf("Severity assessed at %d. Escalated to faculty mentor %s.", in.Severity, faculty.FullName))
		}
	case ActionAttachRemarks:
		parts = append(parts, "Faculty mentor attached remarks.")
		if in.OpenForum {
			parts = append(parts, "Flagged for open forum.")
		}
		if in.Flagship {
			parts = append(parts, "Flagged as flagship concern.")
		}
	case ActionFinalResolve:
		parts = append(parts, "Final resolution issued by USC.")
	}
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		parts = append(parts, notes)
	}
	return strings.Join(parts, " ")
}

func writeAudit(tx *gorm.DB, concern *models.Concern, tr Transition, in TransitionInput, updates map[string]interface{}) error {
	serialized, _ := json.Marshal(updates)
	entityID := concern.ConcernID
	number := concern.ConcernNumber
	description := fmt.Sprintf("%s by %s on %s", in.Action, in.Reviewer.Role, concern.ConcernNumber)

	audit := models.AuditLog{
		ReviewerID:   in.Reviewer.ReviewerID,
		Action:       string(in.Action),
		EntityType:   "concern",
		EntityID:     &entityID,
		EntityNumber: &number,
		NewValues:    strPtr(string(serialized)),
		Description:  &description,
		IPAddress:    in.IPAddress,
	}
	if ua := strings.TrimSpace(in.UserAgent); ua != "" {
		audit.UserAgent = &ua
	}

	if err := tx.Create(&audit).Error; err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func strPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
