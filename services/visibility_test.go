package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"student-concern-api/models"
)

func TestGetReviewerMissingProfile(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `reviewers` WHERE reviewer_id = \\? AND delete_at IS NULL"),
			args:    []driver.Value{int64(7)},
			columns: reviewerColumns,
			rows:    [][]driver.Value{},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := GetReviewer(gormDB, 7)
	if !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCanAccessFacultyGate(t *testing.T) {
	faculty := &models.Reviewer{ReviewerID: 3, Role: models.RoleFaculty}
	cases := []struct {
		name    string
		concern models.Concern
		want    bool
	}{
		{"escalated", models.Concern{Status: models.StatusEscalated}, true},
		{"pending unflagged", models.Concern{Status: models.StatusPending}, false},
		{"reviewing unflagged", models.Concern{Status: models.StatusReviewing}, false},
		{"flagship overrides status", models.Concern{Status: models.StatusResolved, IsFlagship: true}, true},
		{"open forum overrides status", models.Concern{Status: models.StatusResolved, IsOpenForum: true}, true},
	}
	for _, tc := range cases {
		ok, err := CanAccess(nil, faculty, &tc.concern)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if ok != tc.want {
			t.Errorf("%s: got %v want %v", tc.name, ok, tc.want)
		}
	}
}

func TestCanAccessSSCRequiresAssignment(t *testing.T) {
	countPattern := regexp.MustCompile("SELECT count\\(\\*\\) FROM `concern_assignments` WHERE concern_id = \\? AND reviewer_id = \\?")

	for _, tc := range []struct {
		count int64
		want  bool
	}{
		{0, false},
		{1, true},
		{3, true}, // duplicate assignments still mean assigned
	} {
		steps := []*queryStep{
			{
				kind:    kindQuery,
				pattern: countPattern,
				args:    []driver.Value{int64(41), int64(7)},
				columns: []string{"count(*)"},
				rows:    [][]driver.Value{{tc.count}},
			},
		}

		gormDB, state, cleanup := newScriptedGormDB(t, steps)

		ok, err := CanAccess(gormDB, &models.Reviewer{ReviewerID: 7, Role: models.RoleSSC}, &models.Concern{ConcernID: 41})
		if err != nil {
			t.Errorf("count %d: unexpected error: %v", tc.count, err)
		}
		if ok != tc.want {
			t.Errorf("count %d: got %v want %v", tc.count, ok, tc.want)
		}
		if err := state.verifyComplete(); err != nil {
			t.Errorf("count %d: %v", tc.count, err)
		}
		cleanup()
	}
}

func TestCanAccessUSCSeesEverything(t *testing.T) {
	ok, err := CanAccess(nil, &models.Reviewer{ReviewerID: 11, Role: models.RoleUSC}, &models.Concern{ConcernID: 41})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected usc reviewer to access any concern")
	}
}

func TestDashboardConcernsCapsAssignedList(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `concerns` WHERE concern_id IN \\(SELECT .*FROM `concern_assignments` WHERE reviewer_id = \\?\\) ORDER BY created_at DESC LIMIT 2"),
			args:    []driver.Value{int64(7)},
			columns: concernColumns,
			rows: [][]driver.Value{
				concernRow(41, "SC-MLCGEX8B-5W3W", "pending", nil, nil),
				concernRow(38, "SC-MLCGD120-C3PO", "reviewing", nil, nil),
			},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	concerns, err := DashboardConcerns(gormDB, &models.Reviewer{ReviewerID: 7, Role: models.RoleSSC})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(concerns) != 2 {
		t.Fatalf("expected 2 concerns, got %d", len(concerns))
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestVisibleConcernsFacultyScope(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `concerns` WHERE status = \\? OR is_flagship = \\? OR is_open_forum = \\? ORDER BY created_at DESC"),
			args:    []driver.Value{"escalated", true, true},
			columns: concernColumns,
			rows: [][]driver.Value{
				concernRow(52, "SC-MLCGF001-AAAA", "escalated", int64(4), nil),
			},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	concerns, err := VisibleConcerns(gormDB, &models.Reviewer{ReviewerID: 3, Role: models.RoleFaculty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(concerns) != 1 || concerns[0].Status != models.StatusEscalated {
		t.Fatalf("unexpected result: %+v", concerns)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestVisibleConcernsRejectsUnknownRole(t *testing.T) {
	_, err := VisibleConcerns(nil, &models.Reviewer{ReviewerID: 1, Role: "intern"})
	if !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}
