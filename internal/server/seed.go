package server

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// SeedDemo creates the fixed demo identity so "try the demo" works on a
// fresh database. Idempotent: the upsert is keyed by email.
func SeedDemo(ctx context.Context, logger *slog.Logger, store Store) error {
	user, err := store.UpsertUser(ctx, demoEmail, demoName, "", uuid.NewString())
	if err != nil {
		return err
	}
	logger.Info("demo user ready", "user_id", user.ID)
	return nil
}
