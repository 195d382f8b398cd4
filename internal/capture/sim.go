package capture

import (
	"context"
	"sync"
	"time"
)

// SimProvider is the in-process stand-in for the browser capture API.
// Denied kinds fail with ErrPermissionDenied; Latency delays the grant so
// the toggle-off race is reachable in tests.
type SimProvider struct {
	mu      sync.Mutex
	denied  map[Kind]bool
	Latency time.Duration
}

func NewSimProvider() *SimProvider {
	return &SimProvider{denied: make(map[Kind]bool)}
}

// Deny makes future acquisitions of kind fail.
func (p *SimProvider) Deny(kind Kind) {
	p.mu.Lock()
	p.denied[kind] = true
	p.mu.Unlock()
}

func (p *SimProvider) Acquire(ctx context.Context, kind Kind) (Stream, error) {
	if p.Latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.Latency):
		}
	}

	p.mu.Lock()
	denied := p.denied[kind]
	p.mu.Unlock()
	if denied {
		return nil, ErrPermissionDenied
	}
	return &simStream{}, nil
}

type simStream struct {
	mu      sync.Mutex
	stopped bool
	stops   int
}

func (s *simStream) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.stops++
	s.mu.Unlock()
}
