package server

import (
	"context"
	"errors"

	"github.com/mockmate/interviewprep/internal/interview"
)

var ErrNotFound = errors.New("not found")

// Store persists users and the archive of completed sessions. Live session
// state never touches it; only completion writes a session row.
type Store interface {
	// UpsertUser returns the user with the given email, creating it with
	// newID on first sight. The password hash is stored but never checked:
	// authentication is mocked by design.
	UpsertUser(ctx context.Context, email, name, passwordHash, newID string) (interview.User, error)
	UserByID(ctx context.Context, id string) (interview.User, error)

	// ArchiveSession appends a completed session to the user's history.
	// Archiving the same session twice is a no-op.
	ArchiveSession(ctx context.Context, s interview.Session) error

	// CompletedSessions lists the user's archive in completion order.
	CompletedSessions(ctx context.Context, userID string) ([]interview.Session, error)
}
