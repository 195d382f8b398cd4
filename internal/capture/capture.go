// Package capture manages camera and microphone acquisition. The real
// provider is the browser's capture API on the far side of the rendering
// surface; this package owns the lifecycle rules: an acquisition that
// resolves after the user has toggled the device off is released
// immediately, disabling a device always leaves zero live tracks, and
// release is idempotent.
package capture

import (
	"context"
	"errors"
	"sync"
)

type Kind string

const (
	Camera     Kind = "camera"
	Microphone Kind = "microphone"
)

// ErrPermissionDenied is returned when the provider refuses access.
var ErrPermissionDenied = errors.New("capture: permission denied")

// Stream is a live capture handle. Stop must be safe to call repeatedly.
type Stream interface {
	Stop()
}

// Provider acquires device streams. Acquisition may take arbitrarily long
// and must honor ctx cancellation.
type Provider interface {
	Acquire(ctx context.Context, kind Kind) (Stream, error)
}

// Guard tracks per-device user intent and the streams currently held. All
// acquisition results funnel through it so a late grant can never outlive
// a disable.
type Guard struct {
	mu      sync.Mutex
	p       Provider
	wanted  map[Kind]bool
	streams map[Kind]Stream
}

func NewGuard(p Provider) *Guard {
	return &Guard{
		p:       p,
		wanted:  make(map[Kind]bool),
		streams: make(map[Kind]Stream),
	}
}

// Enable requests the device. It blocks until the provider resolves; if
// the device was disabled while the request was in flight, the granted
// stream is stopped at once and Enable reports context.Canceled.
func (g *Guard) Enable(ctx context.Context, kind Kind) error {
	g.mu.Lock()
	g.wanted[kind] = true
	g.mu.Unlock()

	stream, err := g.p.Acquire(ctx, kind)
	if err != nil {
		g.mu.Lock()
		g.wanted[kind] = false
		g.mu.Unlock()
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.wanted[kind] {
		// Toggled off while the request was in flight.
		stream.Stop()
		return context.Canceled
	}
	if prev, ok := g.streams[kind]; ok {
		prev.Stop()
	}
	g.streams[kind] = stream
	return nil
}

// Disable drops intent for the device and synchronously stops any stream
// held for it. Safe to call whether or not the device is active.
func (g *Guard) Disable(kind Kind) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.wanted[kind] = false
	if s, ok := g.streams[kind]; ok {
		s.Stop()
		delete(g.streams, kind)
	}
}

// Active reports whether a live stream is held for the device.
func (g *Guard) Active(kind Kind) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.streams[kind]
	return ok
}

// Close releases every held stream.
func (g *Guard) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for kind, s := range g.streams {
		s.Stop()
		delete(g.streams, kind)
	}
	for kind := range g.wanted {
		g.wanted[kind] = false
	}
}
