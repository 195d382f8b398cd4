package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mockmate/interviewprep/internal/interview"
)

func testSession(userID, id string, completed time.Time) interview.Session {
	return interview.Session{
		ID:     id,
		UserID: userID,
		Job:    interview.JobDetails{Role: "Software Engineer", Company: "Google"},
		Questions: []interview.Question{
			{ID: "1", Text: "Introduce yourself.", Category: "Behavioral", Difficulty: "Easy"},
		},
		Answers: []interview.Answer{
			{QuestionID: "1", Text: "Hello.", Score: 8, Feedback: "Good.", Timestamp: completed},
		},
		Score:       8,
		DurationSec: 900,
		CompletedAt: &completed,
	}
}

func TestUpsertUserIsKeyedByEmail(t *testing.T) {
	store := NewSQLiteStore(setupTestDB(t))
	ctx := context.Background()

	first, err := store.UpsertUser(ctx, "x@example.com", "X", "", "id-1")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := store.UpsertUser(ctx, "x@example.com", "X", "", "id-2")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("IDs differ: %q vs %q", first.ID, second.ID)
	}

	loaded, err := store.UserByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("loading user: %v", err)
	}
	if loaded.Email != "x@example.com" {
		t.Errorf("email = %q, want x@example.com", loaded.Email)
	}
}

func TestUserByIDNotFound(t *testing.T) {
	store := NewSQLiteStore(setupTestDB(t))

	_, err := store.UserByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestArchiveSessionIsIdempotent(t *testing.T) {
	store := NewSQLiteStore(setupTestDB(t))
	ctx := context.Background()

	user, err := store.UpsertUser(ctx, "archive@example.com", "A", "", "user-1")
	if err != nil {
		t.Fatalf("upserting user: %v", err)
	}

	s := testSession(user.ID, "session-1", time.Now().Truncate(time.Second))
	if err := store.ArchiveSession(ctx, s); err != nil {
		t.Fatalf("first archive: %v", err)
	}
	if err := store.ArchiveSession(ctx, s); err != nil {
		t.Fatalf("second archive: %v", err)
	}

	sessions, err := store.CompletedSessions(ctx, user.ID)
	if err != nil {
		t.Fatalf("listing sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	got := sessions[0]
	if got.Score != 8 || got.DurationSec != 900 {
		t.Errorf("session = %+v, want score 8 and duration 900", got)
	}
	if len(got.Answers) != 1 {
		t.Fatalf("answers = %d, want 1", len(got.Answers))
	}
	if got.Answers[0].Feedback != "Good." {
		t.Errorf("feedback = %q, want Good.", got.Answers[0].Feedback)
	}
}

func TestCompletedSessionsOrderedByCompletion(t *testing.T) {
	store := NewSQLiteStore(setupTestDB(t))
	ctx := context.Background()

	user, err := store.UpsertUser(ctx, "order@example.com", "O", "", "user-1")
	if err != nil {
		t.Fatalf("upserting user: %v", err)
	}

	base := time.Now().Truncate(time.Second)
	if err := store.ArchiveSession(ctx, testSession(user.ID, "later", base.Add(time.Hour))); err != nil {
		t.Fatalf("archiving later: %v", err)
	}
	if err := store.ArchiveSession(ctx, testSession(user.ID, "earlier", base)); err != nil {
		t.Fatalf("archiving earlier: %v", err)
	}

	sessions, err := store.CompletedSessions(ctx, user.ID)
	if err != nil {
		t.Fatalf("listing sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}
	if sessions[0].ID != "earlier" || sessions[1].ID != "later" {
		t.Errorf("order = %q, %q; want earlier, later", sessions[0].ID, sessions[1].ID)
	}
}
