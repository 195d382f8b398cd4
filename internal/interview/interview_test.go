package interview

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateQuestionsDefaultSet(t *testing.T) {
	questions := GenerateQuestions("Software Engineer", "Google", false)

	if len(questions) != 1 {
		t.Fatalf("expected exactly 1 question, got %d", len(questions))
	}
	if questions[0].ID != "1" {
		t.Errorf("expected ordinal id %q, got %q", "1", questions[0].ID)
	}
	if questions[0].Category != "Behavioral" {
		t.Errorf("expected category Behavioral, got %q", questions[0].Category)
	}
}

func TestGenerateQuestionsExtendedSet(t *testing.T) {
	questions := GenerateQuestions("Data Analyst", "Acme", true)

	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
	for i, q := range questions {
		want := string(rune('1' + i))
		if q.ID != want {
			t.Errorf("question %d: expected id %q, got %q", i, want, q.ID)
		}
	}
	if !strings.Contains(questions[1].Text, "Data Analyst") {
		t.Errorf("expected role templated into question 2, got %q", questions[1].Text)
	}
}

func TestRandomScorerRange(t *testing.T) {
	scorer := NewRandomScorer(1)
	q := GenerateQuestions("", "", false)[0]

	for i := 0; i < 100; i++ {
		score, feedback := scorer.Score("any answer", q)
		if score < 7 || score > 10 {
			t.Fatalf("score %d out of [7,10]", score)
		}
		if feedback == "" {
			t.Fatal("expected non-empty feedback")
		}
	}
}

func TestRandomDurationRange(t *testing.T) {
	scorer := NewRandomScorer(2)
	for i := 0; i < 100; i++ {
		d := scorer.RandomDuration()
		if d < 600 || d >= 2400 {
			t.Fatalf("duration %d out of [600,2400)", d)
		}
	}
}

func TestOverallScore(t *testing.T) {
	if got := OverallScore(nil); got != 0 {
		t.Errorf("empty answers: expected 0, got %v", got)
	}

	answers := []Answer{
		{QuestionID: "1", Score: 7, Timestamp: time.Now()},
	}
	if got := OverallScore(answers); got != 7 {
		t.Errorf("expected 7, got %v", got)
	}

	answers = append(answers, Answer{QuestionID: "2", Score: 10})
	if got := OverallScore(answers); got != 8.5 {
		t.Errorf("expected 8.5, got %v", got)
	}
}

func TestRatingLabel(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{9.5, "Outstanding"},
		{8.2, "Strong Hire"},
		{7, "Good"},
		{6.1, "Average"},
		{3, "Needs Improvement"},
	}
	for _, c := range cases {
		if got := RatingLabel(c.score); got != c.want {
			t.Errorf("RatingLabel(%v): expected %q, got %q", c.score, c.want, got)
		}
	}
}

func TestSessionQuestionLookup(t *testing.T) {
	s := &Session{Questions: GenerateQuestions("", "", true)}

	if _, ok := s.Question("3"); !ok {
		t.Error("expected question 3 to resolve")
	}
	if _, ok := s.Question("99"); ok {
		t.Error("expected unknown id to miss")
	}
}
