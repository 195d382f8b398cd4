// Package speech models the two speech collaborators of the live session:
// a streaming recognizer that turns dictation fragments into interim and
// final transcripts, and a speaker that reads question text aloud with at
// most one utterance active.
package speech

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultSilence is how long the recognizer waits without input before it
// stops on its own.
const DefaultSilence = 5 * time.Second

type EventType string

const (
	EventInterim EventType = "interim"
	EventFinal   EventType = "final"
)

// Event is one transcription update. Text carries the full transcript so
// far; Final marks the auto-stop (or explicit stop) result.
type Event struct {
	Type EventType `json:"type"`
	Text string    `json:"text"`
}

// Recognizer accumulates dictation fragments into a transcript. It emits
// an interim event per fragment and a single final event when stopped,
// either explicitly or after the silence window elapses with no input.
type Recognizer struct {
	silence time.Duration
	input   chan string
	events  chan Event
	stop    chan struct{}
	once    sync.Once
}

func NewRecognizer(silence time.Duration) *Recognizer {
	if silence <= 0 {
		silence = DefaultSilence
	}
	return &Recognizer{
		silence: silence,
		input:   make(chan string, 16),
		events:  make(chan Event, 16),
		stop:    make(chan struct{}),
	}
}

// Events is closed after the final event is delivered.
func (r *Recognizer) Events() <-chan Event {
	return r.events
}

// Hear feeds one dictation fragment. Fragments arriving after the
// recognizer stopped are dropped.
func (r *Recognizer) Hear(fragment string) {
	select {
	case r.input <- fragment:
	case <-r.stop:
	}
}

// Stop ends recognition; the final transcript is still emitted.
func (r *Recognizer) Stop() {
	r.once.Do(func() { close(r.stop) })
}

// Run consumes input until ctx is cancelled, Stop is called, or the
// silence window passes without a fragment. It owns the events channel
// and closes it on return.
func (r *Recognizer) Run(ctx context.Context) {
	defer close(r.events)

	var parts []string
	timer := time.NewTimer(r.silence)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			r.finish(&parts)
			return
		case <-r.stop:
			r.finish(&parts)
			return
		case <-timer.C:
			// Silence auto-stop.
			r.Stop()
			r.finish(&parts)
			return
		case fragment := <-r.input:
			if !r.accumulate(&parts, fragment) {
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(r.silence)
		}
	}
}

// finish drains fragments still queued when the stop won the select, then
// emits the final transcript. Without the drain, speech heard just before
// a stop would be lost.
func (r *Recognizer) finish(parts *[]string) {
	for {
		select {
		case fragment := <-r.input:
			r.accumulate(parts, fragment)
		default:
			r.emit(Event{Type: EventFinal, Text: strings.Join(*parts, " ")})
			return
		}
	}
}

// accumulate appends one fragment and emits the interim transcript.
// Blank fragments are ignored.
func (r *Recognizer) accumulate(parts *[]string, fragment string) bool {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return false
	}
	*parts = append(*parts, fragment)
	r.emit(Event{Type: EventInterim, Text: strings.Join(*parts, " ")})
	return true
}

func (r *Recognizer) emit(e Event) {
	select {
	case r.events <- e:
	default:
		// Drop if the consumer is slow.
	}
}
