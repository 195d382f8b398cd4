// Package interview holds the domain model of a rehearsal session and the
// pure helpers that generate questions, placeholder feedback, and the
// running overall score.
package interview

import "time"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type JobDetails struct {
	Role           string `json:"role"`
	Company        string `json:"company"`
	JobDescription string `json:"jobDescription"`
}

type Question struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

type Answer struct {
	QuestionID string    `json:"questionId"`
	Text       string    `json:"text"`
	Score      int       `json:"score"`
	Feedback   string    `json:"feedback"`
	Timestamp  time.Time `json:"timestamp"`
}

// Session is one interview attempt. Job details and the resume name are
// snapshotted at start; Answers grows as the user responds; Score is the
// running mean of answer scores. CompletedAt is set exactly once, after
// which the session is immutable apart from being archived.
type Session struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Job         JobDetails `json:"jobDetails"`
	ResumeName  string     `json:"resumeName,omitempty"`
	Questions   []Question `json:"questions"`
	Answers     []Answer   `json:"answers"`
	Score       float64    `json:"score"`
	DurationSec int        `json:"duration"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Completed reports whether the session has been stamped.
func (s *Session) Completed() bool {
	return s != nil && s.CompletedAt != nil
}

// Question returns the question with the given id, if the session owns it.
func (s *Session) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
