package server

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mockmate/interviewprep/internal/flow"
)

// Janitor periodically discards flows whose user has gone away, so an
// abandoned live session can never leave its clock ticking.
type Janitor struct {
	c      *cron.Cron
	logger *slog.Logger
}

func NewJanitor(logger *slog.Logger, flows *flow.Manager, schedule string, ttl time.Duration) (*Janitor, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if removed := flows.Sweep(ttl); removed > 0 {
			logger.Info("swept idle flows", "removed", removed)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling janitor: %w", err)
	}
	return &Janitor{c: c, logger: logger}, nil
}

func (j *Janitor) Start() {
	j.c.Start()
}

func (j *Janitor) Stop() {
	j.c.Stop()
}
