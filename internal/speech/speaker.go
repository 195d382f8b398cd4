package speech

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Synth renders one utterance and returns when it finishes or ctx is
// cancelled.
type Synth interface {
	Speak(ctx context.Context, text string) error
}

// Speaker enforces the single-utterance rule: starting a new utterance
// cancels any prior one first.
type Speaker struct {
	mu     sync.Mutex
	synth  Synth
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSpeaker(synth Synth) *Speaker {
	return &Speaker{synth: synth}
}

// Speak cancels the active utterance, if any, and starts reading text.
func (s *Speaker) Speak(text string) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		_ = s.synth.Speak(ctx, text)

		s.mu.Lock()
		if s.done == done {
			s.cancel = nil
			s.done = nil
		}
		s.mu.Unlock()
	}()
}

// Cancel stops the active utterance, if any.
func (s *Speaker) Cancel() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
}

// Speaking reports whether an utterance is in flight.
func (s *Speaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done != nil
}

// SimSynth paces itself on word count so cancellation mid-utterance is
// observable. PerWord defaults to 50ms.
type SimSynth struct {
	PerWord time.Duration
}

func (s SimSynth) Speak(ctx context.Context, text string) error {
	perWord := s.PerWord
	if perWord <= 0 {
		perWord = 50 * time.Millisecond
	}
	for range strings.Fields(text) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(perWord):
		}
	}
	return nil
}
