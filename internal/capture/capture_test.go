package capture

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// trackingStream records stops for assertions.
type trackingStream struct {
	mu    sync.Mutex
	stops int
}

func (s *trackingStream) Stop() {
	s.mu.Lock()
	s.stops++
	s.mu.Unlock()
}

func (s *trackingStream) stopCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}

// providerFunc adapts a function to Provider.
type providerFunc func(ctx context.Context, kind Kind) (Stream, error)

func (f providerFunc) Acquire(ctx context.Context, kind Kind) (Stream, error) {
	return f(ctx, kind)
}

func TestEnableThenDisable(t *testing.T) {
	stream := &trackingStream{}
	g := NewGuard(providerFunc(func(context.Context, Kind) (Stream, error) {
		return stream, nil
	}))

	if err := g.Enable(context.Background(), Camera); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !g.Active(Camera) {
		t.Fatal("expected active stream after enable")
	}

	g.Disable(Camera)
	if g.Active(Camera) {
		t.Fatal("expected no stream after disable")
	}
	if stream.stopCount() != 1 {
		t.Errorf("expected 1 stop, got %d", stream.stopCount())
	}
}

func TestDisableIsIdempotent(t *testing.T) {
	stream := &trackingStream{}
	g := NewGuard(providerFunc(func(context.Context, Kind) (Stream, error) {
		return stream, nil
	}))

	if err := g.Enable(context.Background(), Microphone); err != nil {
		t.Fatalf("enable: %v", err)
	}
	g.Disable(Microphone)
	g.Disable(Microphone)
	g.Disable(Microphone)

	if stream.stopCount() != 1 {
		t.Errorf("expected redundant disables to stop once, got %d", stream.stopCount())
	}
	if g.Active(Microphone) {
		t.Error("expected no live tracks outstanding")
	}
}

func TestPermissionDenied(t *testing.T) {
	p := NewSimProvider()
	p.Deny(Camera)
	g := NewGuard(p)

	err := g.Enable(context.Background(), Camera)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if g.Active(Camera) {
		t.Error("expected no stream after denial")
	}
}

func TestLateGrantIsDiscarded(t *testing.T) {
	stream := &trackingStream{}
	acquiring := make(chan struct{})
	release := make(chan struct{})

	g := NewGuard(providerFunc(func(ctx context.Context, _ Kind) (Stream, error) {
		close(acquiring)
		<-release
		return stream, nil
	}))

	done := make(chan error, 1)
	go func() {
		done <- g.Enable(context.Background(), Camera)
	}()

	<-acquiring
	// User toggles the camera off before the grant resolves.
	g.Disable(Camera)
	close(release)

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled for the stale grant, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("enable did not return")
	}

	if g.Active(Camera) {
		t.Error("expected no live stream after late grant")
	}
	if stream.stopCount() != 1 {
		t.Errorf("expected stale stream stopped immediately, got %d stops", stream.stopCount())
	}
}

func TestReEnableReplacesStream(t *testing.T) {
	var streams []*trackingStream
	g := NewGuard(providerFunc(func(context.Context, Kind) (Stream, error) {
		s := &trackingStream{}
		streams = append(streams, s)
		return s, nil
	}))

	if err := g.Enable(context.Background(), Camera); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if err := g.Enable(context.Background(), Camera); err != nil {
		t.Fatalf("re-enable: %v", err)
	}

	if len(streams) != 2 {
		t.Fatalf("expected 2 acquisitions, got %d", len(streams))
	}
	if streams[0].stopCount() != 1 {
		t.Error("expected first stream stopped when replaced")
	}
	if streams[1].stopCount() != 0 {
		t.Error("expected second stream live")
	}
}

func TestCloseStopsEverything(t *testing.T) {
	g := NewGuard(NewSimProvider())
	if err := g.Enable(context.Background(), Camera); err != nil {
		t.Fatalf("enable camera: %v", err)
	}
	if err := g.Enable(context.Background(), Microphone); err != nil {
		t.Fatalf("enable mic: %v", err)
	}

	g.Close()
	if g.Active(Camera) || g.Active(Microphone) {
		t.Error("expected all streams released on close")
	}
}
