package flow

import (
	"sync"
	"time"
)

// Manager holds one flow per authenticated user for the process lifetime.
type Manager struct {
	mu       sync.Mutex
	flows    map[string]*Flow
	env      Env
	interval time.Duration
	onTick   func(userID string, c Clock)
	onRemove func(userID string)
}

func NewManager(env Env, interval time.Duration, onTick func(userID string, c Clock)) *Manager {
	return &Manager{
		flows:    make(map[string]*Flow),
		env:      env,
		interval: interval,
		onTick:   onTick,
	}
}

// OnRemove registers a callback invoked with the user ID after a sweep
// discards that user's flow, so resources held outside the manager (the
// capture guard) are released with it. Set before the janitor starts.
func (m *Manager) OnRemove(fn func(userID string)) {
	m.onRemove = fn
}

// Get returns the user's flow, creating it on first use.
func (m *Manager) Get(userID string) *Flow {
	m.mu.Lock()
	defer m.mu.Unlock()

	if f, ok := m.flows[userID]; ok {
		return f
	}

	var onTick func(Clock)
	if m.onTick != nil {
		id := userID
		onTick = func(c Clock) { m.onTick(id, c) }
	}
	f := NewFlow(m.env, m.interval, onTick)
	m.flows[userID] = f
	return f
}

// Sweep discards flows idle for longer than ttl. A live session is left
// first so its clock is cancelled and no session outlives its user.
// Returns the number of flows removed.
func (m *Manager) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.env.Now()
	removed := 0
	for id, f := range m.flows {
		if now.Sub(f.LastActive()) < ttl {
			continue
		}
		f.Dispatch(LeaveSession{})
		f.Close()
		delete(m.flows, id)
		if m.onRemove != nil {
			m.onRemove(id)
		}
		removed++
	}
	return removed
}

// Close stops every flow's clock.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.flows {
		f.Close()
	}
}
