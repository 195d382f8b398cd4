package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mockmate/interviewprep/internal/interview"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) UpsertUser(ctx context.Context, email, name, passwordHash, newID string) (interview.User, error) {
	var u interview.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.Name)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return u, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password_hash)
		VALUES (?, ?, ?, ?)
	`, newID, email, name, passwordHash)
	if err != nil {
		return u, fmt.Errorf("inserting user: %w", err)
	}
	return interview.User{ID: newID, Email: email, Name: name}, nil
}

func (s *SQLiteStore) UserByID(ctx context.Context, id string) (interview.User, error) {
	var u interview.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Email, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

func (s *SQLiteStore) ArchiveSession(ctx context.Context, sess interview.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var completedAt sql.NullString
	if sess.CompletedAt != nil {
		completedAt = sql.NullString{String: sess.CompletedAt.UTC().Format(time.RFC3339Nano), Valid: true}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO sessions
			(id, user_id, role, company, job_description, resume_name, score, duration_sec, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sess.ID, sess.UserID, sess.Job.Role, sess.Job.Company, sess.Job.JobDescription,
		sess.ResumeName, sess.Score, sess.DurationSec, completedAt)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Already archived.
		return nil
	}

	for _, a := range sess.Answers {
		q, _ := sess.Question(a.QuestionID)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO answers
				(session_id, question_id, question_text, category, difficulty, answer_text, score, feedback, answered_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, sess.ID, a.QuestionID, q.Text, q.Category, q.Difficulty,
			a.Text, a.Score, a.Feedback, a.Timestamp.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("inserting answer: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) CompletedSessions(ctx context.Context, userID string) ([]interview.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, role, company, job_description, resume_name, score, duration_sec, completed_at
		FROM sessions
		WHERE user_id = ?
		ORDER BY completed_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []interview.Session
	for rows.Next() {
		var sess interview.Session
		var completedAt sql.NullString
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.Job.Role, &sess.Job.Company,
			&sess.Job.JobDescription, &sess.ResumeName, &sess.Score, &sess.DurationSec, &completedAt); err != nil {
			return nil, err
		}
		if completedAt.Valid {
			t, err := time.Parse(time.RFC3339Nano, completedAt.String)
			if err == nil {
				sess.CompletedAt = &t
			}
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		answers, err := s.sessionAnswers(ctx, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Answers = answers
	}
	return sessions, nil
}

func (s *SQLiteStore) sessionAnswers(ctx context.Context, sessionID string) ([]interview.Answer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, answer_text, score, feedback, answered_at
		FROM answers
		WHERE session_id = ?
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []interview.Answer
	for rows.Next() {
		var a interview.Answer
		var answeredAt string
		if err := rows.Scan(&a.QuestionID, &a.Text, &a.Score, &a.Feedback, &answeredAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, answeredAt); err == nil {
			a.Timestamp = t
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
