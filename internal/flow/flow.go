package flow

import (
	"context"
	"sync"
	"time"
)

// Flow is one user's running state machine. Dispatch serializes intents so
// transitions never interleave; the session clock is the only background
// activity and feeds Tick intents through the same door.
type Flow struct {
	mu         sync.Mutex
	state      State
	env        Env
	interval   time.Duration
	onTick     func(Clock)
	cancelTick context.CancelFunc
	lastActive time.Time
}

// NewFlow creates a flow in the landing state. interval is the clock tick
// period (one second in production; tests shorten it). onTick, if set, is
// called with the clock snapshot after every applied tick.
func NewFlow(env Env, interval time.Duration, onTick func(Clock)) *Flow {
	if interval <= 0 {
		interval = time.Second
	}
	return &Flow{
		state:      NewState(),
		env:        env,
		interval:   interval,
		onTick:     onTick,
		lastActive: env.Now(),
	}
}

// Dispatch applies one intent and returns the new state plus any effects
// the caller must run. Clock effects are absorbed here: the ticker starts
// and stops with the session so an abandoned flow never keeps ticking.
func (f *Flow) Dispatch(intent Intent) (State, []Effect) {
	f.mu.Lock()
	next, effects := Reduce(f.state, intent, f.env)
	f.state = next
	if _, isTick := intent.(Tick); !isTick {
		f.lastActive = f.env.Now()
	}

	var out []Effect
	for _, e := range effects {
		switch e.(type) {
		case StartClock:
			f.startClockLocked()
		case StopClock:
			f.stopClockLocked()
		default:
			out = append(out, e)
		}
	}
	f.mu.Unlock()
	return next, out
}

// State returns the current state snapshot.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastActive is the time of the last user intent (ticks excluded).
func (f *Flow) LastActive() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastActive
}

// Close stops the clock if it is running.
func (f *Flow) Close() {
	f.mu.Lock()
	f.stopClockLocked()
	f.mu.Unlock()
}

func (f *Flow) startClockLocked() {
	f.stopClockLocked()
	ctx, cancel := context.WithCancel(context.Background())
	f.cancelTick = cancel

	go func() {
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				state, _ := f.Dispatch(Tick{})
				if f.onTick != nil {
					f.onTick(state.Clock)
				}
			}
		}
	}()
}

func (f *Flow) stopClockLocked() {
	if f.cancelTick != nil {
		f.cancelTick()
		f.cancelTick = nil
	}
}
