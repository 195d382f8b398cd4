package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr          string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath            string        `env:"DB_PATH" envDefault:"data/interviewprep.db"`
	LogLevel          slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir            string        `env:"SPA_DIR" envDefault:"../web/dist"`
	JWTSecret         string        `env:"JWT_SECRET" envDefault:"dev-only-secret"`
	ExtendedQuestions bool          `env:"EXTENDED_QUESTIONS" envDefault:"false"`
	FlowIdleTTL       time.Duration `env:"FLOW_IDLE_TTL" envDefault:"2h"`
	JanitorSchedule   string        `env:"JANITOR_SCHEDULE" envDefault:"@every 10m"`
	SilenceWindow     time.Duration `env:"SILENCE_WINDOW" envDefault:"5s"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
