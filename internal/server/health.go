package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func handleHealth(logger *slog.Logger, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		resp := HealthResponse{
			Status: "ok",
			Checks: map[string]string{"sqlite": "ok"},
		}
		status := http.StatusOK

		if err := db.PingContext(ctx); err != nil {
			logger.Error("health check failed", "name", "sqlite", "error", err)
			resp.Status = "error"
			resp.Checks["sqlite"] = "error"
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, resp)
	}
}
