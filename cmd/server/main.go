package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mockmate/interviewprep/internal/capture"
	"github.com/mockmate/interviewprep/internal/config"
	"github.com/mockmate/interviewprep/internal/database"
	"github.com/mockmate/interviewprep/internal/flow"
	"github.com/mockmate/interviewprep/internal/migrations"
	"github.com/mockmate/interviewprep/internal/server"
	"github.com/mockmate/interviewprep/internal/speech"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	store := server.NewSQLiteStore(db)
	if err := server.SeedDemo(ctx, logger, store); err != nil {
		return fmt.Errorf("seeding demo user: %w", err)
	}

	// --- State machine, events, devices ---
	broker := server.NewBroker()
	flows := flow.NewManager(flow.DefaultEnv(), time.Second, func(userID string, c flow.Clock) {
		broker.Publish(userID, server.SSEEvent{Type: "tick", Clock: &c})
	})
	defer flows.Close()

	guards := server.NewGuardRegistry(capture.NewSimProvider())
	defer guards.Close()
	flows.OnRemove(guards.Remove)

	janitor, err := server.NewJanitor(logger, flows, cfg.JanitorSchedule, cfg.FlowIdleTTL)
	if err != nil {
		return fmt.Errorf("creating janitor: %w", err)
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		DB:                db,
		Store:             store,
		Flows:             flows,
		Broker:            broker,
		Guards:            guards,
		Speaker:           speech.NewSpeaker(speech.SimSynth{}),
		JWTSecret:         cfg.JWTSecret,
		ExtendedQuestions: cfg.ExtendedQuestions,
		SilenceWindow:     cfg.SilenceWindow,
		SPADir:            cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		janitor.Start()
		<-gctx.Done()
		janitor.Stop()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
