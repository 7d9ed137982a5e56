package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/speakoai/speako-api/internal/config"
	"github.com/speakoai/speako-api/internal/platform/gemini"
	"github.com/speakoai/speako-api/internal/platform/logger"
	"github.com/speakoai/speako-api/internal/platform/postgres"
	"github.com/speakoai/speako-api/internal/service/analytics"
	"github.com/speakoai/speako-api/internal/service/practice"
	"github.com/speakoai/speako-api/internal/store"
)

// application holds the assembled dependency graph for the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	questionStore store.QuestionStore
	responseStore store.ResponseStore
	feedbackStore store.FeedbackStore

	analyticsService analytics.Service
	practiceService  practice.Service
}

// newApplication loads configuration, connects to the database, runs
// migrations and wires every service.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := openDatabase(ctx, cfg.Database.URL, log)
	if err != nil {
		return nil, err
	}

	userStore := postgres.NewPostgresUserStore(db, log)
	questionStore := postgres.NewPostgresQuestionStore(db, log)
	responseStore := postgres.NewPostgresResponseStore(db, log)
	feedbackStore := postgres.NewPostgresFeedbackStore(db, log)

	analyticsService := analytics.NewService(userStore, questionStore, responseStore, log)

	scorer, err := gemini.NewGeminiScorer(ctx, log, cfg.Scoring)
	if err != nil {
		return nil, fmt.Errorf("failed to create scorer: %w", err)
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
		log,
	)

	return &application{
		config:           cfg,
		logger:           log,
		db:               db,
		userStore:        userStore,
		questionStore:    questionStore,
		responseStore:    responseStore,
		feedbackStore:    feedbackStore,
		analyticsService: analyticsService,
		practiceService:  practiceService,
	}, nil
}

// cleanup releases the application's resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
