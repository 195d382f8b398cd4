package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mockmate/interviewprep/internal/flow"
)

// handleState returns the current flow state for the authenticated user.
// Screens render from this snapshot.
func handleState(flows *flow.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)
		writeJSON(w, http.StatusOK, flows.Get(user.ID).State())
	}
}

type NavigateRequest struct {
	Screen flow.Screen `json:"screen"`
}

// handleNavigate moves between the landing and archive screens. Other
// targets are ignored by the state machine.
func handleNavigate(flows *flow.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NavigateRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user := userFrom(r)
		state, _ := flows.Get(user.ID).Dispatch(flow.Navigate{Screen: req.Screen})
		writeJSON(w, http.StatusOK, state)
	}
}

// runEffects carries out the effects a transition returned: archiving a
// completed session and announcing it on the event stream. Archive errors
// are logged, not surfaced — the state machine has already moved on.
// The session is stamped completed before the archive runs and is never
// re-archived, so the write must not die with the request: a client that
// disconnects mid-completion would otherwise lose its history row.
func runEffects(ctx context.Context, logger *slog.Logger, store Store, broker *Broker, userID string, effects []flow.Effect) {
	ctx = context.WithoutCancel(ctx)
	for _, e := range effects {
		switch e := e.(type) {
		case flow.ArchiveSession:
			if err := store.ArchiveSession(ctx, e.Session); err != nil {
				logger.Error("archiving session", "session_id", e.Session.ID, "error", err)
				continue
			}
			completedSessions.Inc()
			broker.Publish(userID, SSEEvent{
				Type:      "session_completed",
				SessionID: e.Session.ID,
				Score:     e.Session.Score,
			})
		}
	}
}
