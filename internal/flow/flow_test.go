package flow

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/mockmate/interviewprep/internal/interview"
)

func startLive(t *testing.T, f *Flow) {
	t.Helper()
	f.Dispatch(Authenticate{User: interview.User{ID: "u1", Email: "a@b.com", Name: "a"}})
	state, _ := f.Dispatch(StartInterview{Session: interview.Session{
		ID:        "s1",
		UserID:    "u1",
		Questions: interview.GenerateQuestions("", "", false),
	}})
	if state.Screen != ScreenLiveSession {
		t.Fatalf("expected live session, got %s", state.Screen)
	}
}

func TestClockTicksWhileLive(t *testing.T) {
	var ticks atomic.Int64
	f := NewFlow(testEnv(8), 5*time.Millisecond, func(Clock) { ticks.Add(1) })
	defer f.Close()

	startLive(t, f)

	deadline := time.After(2 * time.Second)
	for ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 ticks, got %d", ticks.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	if got := f.State().Clock.Elapsed; got < 3 {
		t.Errorf("expected elapsed >= 3, got %d", got)
	}
}

func TestClockStopsOnLeave(t *testing.T) {
	f := NewFlow(testEnv(8), 5*time.Millisecond, nil)
	defer f.Close()

	startLive(t, f)
	time.Sleep(30 * time.Millisecond)

	state, _ := f.Dispatch(LeaveSession{})
	if state.Session != nil {
		t.Fatal("expected session discarded")
	}

	// Any in-flight tick no-ops against the landing state; the counter
	// must not move once the clock is cancelled.
	time.Sleep(20 * time.Millisecond)
	before := f.State().Clock.Elapsed
	time.Sleep(30 * time.Millisecond)
	if after := f.State().Clock.Elapsed; after != before {
		t.Errorf("expected clock frozen after leave, got %d -> %d", before, after)
	}
	if before != 0 {
		t.Errorf("expected counters reset on leave, got %d", before)
	}
}

func TestClockStopsOnCompletion(t *testing.T) {
	f := NewFlow(testEnv(8), 5*time.Millisecond, nil)
	defer f.Close()

	startLive(t, f)
	state, effects := f.Dispatch(CompleteInterview{})
	if !state.Session.Completed() {
		t.Fatal("expected completed session")
	}
	// Clock effects are absorbed by the flow; only the archive surfaces.
	if len(effects) != 1 {
		t.Fatalf("expected only the archive effect, got %v", effects)
	}
	if _, ok := effects[0].(ArchiveSession); !ok {
		t.Fatalf("expected ArchiveSession, got %T", effects[0])
	}

	time.Sleep(20 * time.Millisecond)
	before := f.State().Clock.Elapsed
	time.Sleep(30 * time.Millisecond)
	if after := f.State().Clock.Elapsed; after != before {
		t.Errorf("expected clock frozen after completion, got %d -> %d", before, after)
	}
}

func TestManagerReturnsSameFlowPerUser(t *testing.T) {
	m := NewManager(testEnv(8), time.Minute, nil)
	defer m.Close()

	a := m.Get("u1")
	b := m.Get("u1")
	c := m.Get("u2")

	if a != b {
		t.Error("expected the same flow for the same user")
	}
	if a == c {
		t.Error("expected distinct flows per user")
	}
}

func TestManagerSweepDiscardsIdleFlows(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	env := testEnv(8)
	env.Now = func() time.Time { return now }

	m := NewManager(env, time.Minute, nil)
	defer m.Close()

	f := m.Get("u1")
	f.Dispatch(Authenticate{User: interview.User{ID: "u1", Email: "a@b.com", Name: "a"}})

	now = now.Add(30 * time.Minute)
	if removed := m.Sweep(time.Hour); removed != 0 {
		t.Fatalf("expected fresh flow kept, removed %d", removed)
	}

	now = now.Add(time.Hour)
	if removed := m.Sweep(time.Hour); removed != 1 {
		t.Fatalf("expected idle flow removed, removed %d", removed)
	}

	if m.Get("u1") == f {
		t.Error("expected a fresh flow after sweep")
	}
}

func TestManagerSweepNotifiesOnRemove(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	env := testEnv(8)
	env.Now = func() time.Time { return now }

	m := NewManager(env, time.Minute, nil)
	defer m.Close()

	var removed []string
	m.OnRemove(func(userID string) { removed = append(removed, userID) })

	m.Get("u1").Dispatch(Authenticate{User: interview.User{ID: "u1", Email: "a@b.com", Name: "a"}})
	m.Get("u2").Dispatch(Authenticate{User: interview.User{ID: "u2", Email: "c@d.com", Name: "c"}})

	now = now.Add(2 * time.Hour)
	if n := m.Sweep(time.Hour); n != 2 {
		t.Fatalf("expected both flows removed, removed %d", n)
	}
	if len(removed) != 2 {
		t.Fatalf("on-remove calls = %d, want 2", len(removed))
	}
	seen := map[string]bool{removed[0]: true, removed[1]: true}
	if !seen["u1"] || !seen["u2"] {
		t.Errorf("on-remove users = %v, want u1 and u2", removed)
	}
}
