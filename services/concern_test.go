package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"

	"student-concern-api/models"
)

func TestCreateConcernRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		in   CreateConcernInput
		want string
	}{
		{
			name: "unknown category",
			in:   CreateConcernInput{Category: "Parking", Subject: "s", Description: "d", IsAnonymous: true},
			want: "unknown concern category",
		},
		{
			name: "blank subject",
			in:   CreateConcernInput{Category: "Infrastructure", Subject: "   ", Description: "d", IsAnonymous: true},
			want: "subject and description are required",
		},
		{
			name: "named without email",
			in: CreateConcernInput{
				Category: "Infrastructure", Subject: "s", Description: "d",
				StudentName: "Asha Verma", StudentCode: "21CS118", Department: "Computer Science",
			},
			want: "name, email, student id and department",
		},
		{
			name: "named with invalid email",
			in: CreateConcernInput{
				Category: "Infrastructure", Subject: "s", Description: "d",
				StudentName: "Asha Verma", StudentEmail: "not-an-email",
				StudentCode: "21CS118", Department: "Computer Science",
			},
			want: "invalid student email",
		},
	}

	for _, tc := range cases {
		_, err := CreateConcern(nil, tc.in)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestCreateConcernAnonymousNullsIdentity(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `concerns` WHERE concern_number = \\?"),
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `concerns`"),
			result:  scriptedResult{lastInsertID: 77, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `concern_timeline`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `reviewers` WHERE role = \\? AND department IS NULL AND delete_at IS NULL"),
			args:    []driver.Value{"ssc"},
			columns: reviewerColumns,
			rows: [][]driver.Value{
				reviewerRow(7, "rep.one@university.edu", "Rep One", "ssc"),
				reviewerRow(8, "rep.two@university.edu", "Rep Two", "ssc"),
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `concern_assignments`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `concern_assignments`"),
			result:  scriptedResult{lastInsertID: 2, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `concern_timeline`"),
			result:  scriptedResult{lastInsertID: 2, rowsAffected: 1},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	concern, err := CreateConcern(gormDB, CreateConcernInput{
		Category:    "Infrastructure",
		Subject:     "Broken projector",
		Description: "Projector in LT-3 has been down for a week.",
		IsAnonymous: true,
		// Identity offered anyway; must not be stored for anonymous submissions.
		StudentName:  "Asha Verma",
		StudentEmail: "asha@university.edu",
		StudentCode:  "21CS118",
		Department:   "Computer Science",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if concern.ConcernID != 77 {
		t.Errorf("expected concern id 77, got %d", concern.ConcernID)
	}
	if concern.Status != models.StatusPending {
		t.Errorf("expected pending status, got %s", concern.Status)
	}
	if concern.StudentName != nil || concern.StudentEmail != nil || concern.StudentCode != nil || concern.Department != nil {
		t.Errorf("expected identity fields to stay unset, got %+v", concern)
	}
	if !concernNumberPattern.MatchString(concern.ConcernNumber) {
		t.Errorf("concern number %q does not match expected shape", concern.ConcernNumber)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestCreateConcernStartsUnassignedWithoutRepresentatives(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count\\(\\*\\) FROM `concerns` WHERE concern_number = \\?"),
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `concerns`"),
			result:  scriptedResult{lastInsertID: 78, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `concern_timeline`"),
			result:  scriptedResult{lastInsertID: 3, rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `reviewers` WHERE role = \\? AND department IS NULL AND delete_at IS NULL"),
			args:    []driver.Value{"ssc"},
			columns: reviewerColumns,
			rows:    [][]driver.Value{},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	concern, err := CreateConcern(gormDB, CreateConcernInput{
		Category:    "Other",
		Subject:     "General feedback",
		Description: "Please add more water coolers.",
		IsAnonymous: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if concern.Department != nil {
		t.Errorf("expected no department, got %v", *concern.Department)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestGetConcernByNumberNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `concerns` WHERE concern_number = \\?"),
			args:    []driver.Value{"SC-NOPE-0000"},
			columns: concernColumns,
			rows:    [][]driver.Value{},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := GetConcernByNumber(gormDB, " SC-NOPE-0000 ")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
