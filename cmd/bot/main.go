// Package main implements the Telegram bot binary: the conversational
// front-end plus the practice-reminder scheduler.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/speakoai/speako-api/internal/bot"
	"github.com/speakoai/speako-api/internal/config"
	"github.com/speakoai/speako-api/internal/platform/gemini"
	"github.com/speakoai/speako-api/internal/platform/logger"
	"github.com/speakoai/speako-api/internal/platform/postgres"
	"github.com/speakoai/speako-api/internal/scheduler"
	"github.com/speakoai/speako-api/internal/service/analytics"
	"github.com/speakoai/speako-api/internal/service/practice"
)

const dbPingTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatalf("Bot failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Bot.Token == "" {
		return errors.New("bot token is required (SPEAKO_BOT_TOKEN)")
	}

	slogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	pingCtx, pingCancel := context.WithTimeout(ctx, dbPingTimeout)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, slogger)
	questionStore := postgres.NewPostgresQuestionStore(db, slogger)
	responseStore := postgres.NewPostgresResponseStore(db, slogger)

	analyticsService := analytics.NewService(userStore, questionStore, responseStore, slogger)

	scorer, err := gemini.NewGeminiScorer(ctx, slogger, cfg.Scoring)
	if err != nil {
		return fmt.Errorf("failed to create scorer: %w", err)
	}

	practiceService := practice.NewService(
		db,
		userStore,
		questionStore,
		responseStore,
		practice.NewRandomSelector(questionStore),
		scorer,
		practice.NewMemorySessionStore(),
		time.Duration(cfg.Scoring.TimeoutSeconds)*time.Second,
		slogger,
	)

	b, err := bot.New(cfg.Bot.Token, practiceService, analyticsService, slogger)
	if err != nil {
		return err
	}

	reminders := scheduler.New(
		userStore,
		responseStore,
		b,
		time.Duration(cfg.Bot.ReminderInterval)*time.Hour,
		slogger,
	)
	reminders.Start()
	defer reminders.Stop()

	// Cancel the update loop on SIGINT/SIGTERM.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		sig := <-sigCh
		slogger.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	slogger.Info("bot started")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	slogger.Info("bot stopped")
	return nil
}
