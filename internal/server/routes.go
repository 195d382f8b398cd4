package server

import (
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/mockmate/interviewprep/internal/flow"
	"github.com/mockmate/interviewprep/internal/speech"
)

// Deps bundles what the routes need.
type Deps struct {
	DB                *sql.DB
	Store             Store
	Flows             *flow.Manager
	Broker            *Broker
	Guards            *GuardRegistry
	Speaker           *speech.Speaker
	JWTSecret         string
	ExtendedQuestions bool
	SilenceWindow     time.Duration
	SPADir            string
}

func addRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("InterviewPrep API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, d.DB))
	r.Method("GET", "/metrics", handleMetrics())

	r.Post("/api/auth", handleAuth(d.Store, d.Flows, d.JWTSecret))

	// Streams authenticate via query token: EventSource and the browser
	// WebSocket API cannot set headers.
	r.Get("/api/session/events", handleEvents(d.Broker, d.JWTSecret))
	r.Get("/api/session/transcribe", handleTranscribe(logger, d.Broker, d.JWTSecret, d.SilenceWindow))

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(d.JWTSecret, d.Store))

		r.Get("/api/state", handleState(d.Flows))
		r.Post("/api/navigate", handleNavigate(d.Flows))

		r.Put("/api/onboarding/job", handleJobDetails(d.Flows))
		r.Put("/api/onboarding/resume", handleResume(d.Flows))
		r.Post("/api/onboarding/device", handleDevice(d.Flows, d.Guards))
		r.Post("/api/onboarding/continue", handleContinue(d.Flows))
		r.Post("/api/setup/edit", handleEditSetup(d.Flows))

		r.Post("/api/interview/start", handleStartInterview(d.Flows, d.ExtendedQuestions))
		r.Post("/api/interview/answer", handleSubmitAnswer(logger, d.Flows, d.Store, d.Broker))
		r.Post("/api/interview/skip", handleSkipQuestion(logger, d.Flows, d.Store, d.Broker))
		r.Post("/api/interview/complete", handleCompleteInterview(logger, d.Flows, d.Store, d.Broker))
		r.Post("/api/interview/pause", handleTogglePause(d.Flows))
		r.Post("/api/interview/recording", handleToggleRecording(logger, d.Flows, d.Guards))
		r.Post("/api/interview/leave", handleLeaveSession(d.Flows, d.Guards))
		r.Post("/api/interview/retake", handleRetakeInterview(d.Flows, d.Guards))

		r.Post("/api/report/view", handleViewReport(d.Flows, d.Guards))
		r.Get("/api/report", handleReport(d.Flows))

		r.Post("/api/session/speak", handleSpeak(d.Flows, d.Speaker))
		r.Post("/api/session/speak/cancel", handleCancelSpeech(d.Speaker))

		r.Get("/api/history", handleHistory(d.Store))
	})

	if d.SPADir != "" {
		if info, err := os.Stat(d.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", d.SPADir)
			r.NotFound(handleSPA(d.SPADir))
		}
	}
}
