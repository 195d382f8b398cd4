package server

import (
	"sync"

	"github.com/mockmate/interviewprep/internal/capture"
)

// GuardRegistry hands out one capture guard per user, created on first use.
type GuardRegistry struct {
	mu       sync.Mutex
	provider capture.Provider
	guards   map[string]*capture.Guard
}

func NewGuardRegistry(provider capture.Provider) *GuardRegistry {
	return &GuardRegistry{
		provider: provider,
		guards:   make(map[string]*capture.Guard),
	}
}

func (g *GuardRegistry) Get(userID string) *capture.Guard {
	g.mu.Lock()
	defer g.mu.Unlock()

	if guard, ok := g.guards[userID]; ok {
		return guard
	}
	guard := capture.NewGuard(g.provider)
	g.guards[userID] = guard
	return guard
}

// Remove releases the user's streams and drops the registry entry. The
// janitor calls this when it sweeps the user's flow, so an abandoned
// user's camera and microphone never stay acquired.
func (g *GuardRegistry) Remove(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if guard, ok := g.guards[userID]; ok {
		guard.Close()
		delete(g.guards, userID)
	}
}

// Close releases every user's streams.
func (g *GuardRegistry) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, guard := range g.guards {
		guard.Close()
		delete(g.guards, id)
	}
}
