package server

import (
	"net/http"

	"github.com/mockmate/interviewprep/internal/interview"
)

// HistoryRow is the archive view's display projection of a completed
// session.
type HistoryRow struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Time    string  `json:"time"`
	Role    string  `json:"role"`
	Company string  `json:"company"`
	Score   float64 `json:"score"`
	Status  string  `json:"status"`
}

const missingTimestamp = "—"

// historyRow derives the display row without touching the source session.
func historyRow(s interview.Session) HistoryRow {
	row := HistoryRow{
		ID:      s.ID,
		Date:    missingTimestamp,
		Time:    missingTimestamp,
		Role:    s.Job.Role,
		Company: s.Job.Company,
		Score:   s.Score,
		Status:  "Completed",
	}
	if s.CompletedAt != nil {
		local := s.CompletedAt.Local()
		row.Date = local.Format("1/2/2006")
		row.Time = local.Format("3:04 PM")
	}
	return row
}

func handleHistory(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r)

		sessions, err := store.CompletedSessions(r.Context(), user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		rows := make([]HistoryRow, 0, len(sessions))
		for _, s := range sessions {
			rows = append(rows, historyRow(s))
		}
		writeJSON(w, http.StatusOK, rows)
	}
}
