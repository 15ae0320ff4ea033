package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

var concernNumberPattern = regexp.MustCompile(`^SC-[0-9A-Z]+-[0-9A-Z]{4}$`)

func TestNewConcernNumberFormat(t *testing.T) {
	at := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	number, err := NewConcernNumber(at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !concernNumberPattern.MatchString(number) {
		t.Fatalf("concern number %q does not match expected shape", number)
	}

	wantStamp := strings.ToUpper(strconv.FormatInt(at.UnixMilli(), 36))
	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		t.Fatalf("concern number %q has %d segments, want 3", number, len(parts))
	}
	if parts[1] != wantStamp {
		t.Fatalf("timestamp segment %q, want %q", parts[1], wantStamp)
	}
}

func TestNewConcernNumberVariesWithinMillisecond(t *testing.T) {
	at := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		number, err := NewConcernNumber(at)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[number] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected random suffix to vary, got only %v", seen)
	}
}

func TestGenerateConcernNumberRetriesOnCollision(t *testing.T) {
	countPattern := regexp.MustCompile("SELECT count\\(\\*\\) FROM `concerns` WHERE concern_number = \\?")
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: countPattern,
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(1)}},
		},
		{
			kind:    kindQuery,
			pattern: countPattern,
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(0)}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	number, err := GenerateConcernNumber(gormDB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !concernNumberPattern.MatchString(number) {
		t.Fatalf("concern number %q does not match expected shape", number)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestGenerateConcernNumberGivesUpAfterBudget(t *testing.T) {
	countPattern := regexp.MustCompile("SELECT count\\(\\*\\) FROM `concerns` WHERE concern_number = \\?")
	var steps []*queryStep
	for i := 0; i < referenceRetryBudget; i++ {
		steps = append(steps, &queryStep{
			kind:    kindQuery,
			pattern: countPattern,
			columns: []string{"count(*)"},
			rows:    [][]driver.Value{{int64(1)}},
		})
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := GenerateConcernNumber(gormDB)
	if !errors.Is(err, ErrReferenceCollision) {
		t.Fatalf("expected ErrReferenceCollision, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
