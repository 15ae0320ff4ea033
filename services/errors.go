package services

import "errors"

// Workflow failures are recoverable and reported to the invoking reviewer
// with the unmet precondition named. Callers branch with errors.Is.
var (
	// ErrNotFound indicates an unknown concern reference.
	ErrNotFound = errors.New("concern not found")

	// ErrUnauthenticated indicates the caller has no resolvable session.
	ErrUnauthenticated = errors.New("caller is not authenticated")

	// ErrRoleNotFound indicates an authenticated identity with no reviewer
	// profile; no default role is ever assumed.
	ErrRoleNotFound = errors.New("no reviewer profile for caller")

	// ErrInvalidTransition indicates a status change not permitted from the
	// concern's current stored state, including the stale-read race where
	// another reviewer already applied a transition.
	ErrInvalidTransition = errors.New("status transition not permitted")

	// ErrMissingFacultyAssignment indicates an escalation request that
	// named no faculty mentor.
	ErrMissingFacultyAssignment = errors.New("escalation requires a faculty mentor")

	// ErrReferenceCollision indicates the concern number retry budget was
	// exhausted without finding an unused number.
	ErrReferenceCollision = errors.New("could not generate a unique concern number")
)
