package interview

import (
	"math/rand"
	"sync"
)

// Scorer produces a score and feedback line for a submitted answer.
// Handlers hold it as an interface so tests can swap in a deterministic stub.
type Scorer interface {
	Score(answerText string, q Question) (int, string)
}

var feedbackLines = []string{
	"Great answer! Your response demonstrates strong understanding and experience.",
	"Good response with solid examples. Consider adding more specific details.",
	"Excellent insight! Your answer shows deep knowledge of the subject.",
	"Well articulated answer. You effectively addressed the key points.",
	"Strong response with clear structure and relevant examples.",
}

// RandomScorer is the placeholder scoring strategy: a uniform score in
// [7,10] and one of five canned feedback lines. It deliberately ignores
// the answer content.
type RandomScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomScorer(seed int64) *RandomScorer {
	return &RandomScorer{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomScorer) Score(_ string, _ Question) (int, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	score := 7 + r.rng.Intn(4)
	feedback := feedbackLines[r.rng.Intn(len(feedbackLines))]
	return score, feedback
}

// RandomDuration returns a completion duration between 10 and 40 minutes,
// in seconds. Like the scorer it is a placeholder, not a measurement.
func (r *RandomScorer) RandomDuration() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return 600 + r.rng.Intn(1800)
}
