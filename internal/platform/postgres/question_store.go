package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/platform/logger"
	"github.com/speakoai/speako-api/internal/store"
)

// PostgresQuestionStore implements the store.QuestionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuestionStore creates a new PostgreSQL implementation of the QuestionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresQuestionStore(db store.DBTX, logger *slog.Logger) *PostgresQuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

// Ensure PostgresQuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*PostgresQuestionStore)(nil)

// WithTx implements store.QuestionStore.WithTx
func (s *PostgresQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return &PostgresQuestionStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.QuestionStore.Create
func (s *PostgresQuestionStore) Create(ctx context.Context, question *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		log.Warn("question validation failed during create",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()))
		return err
	}

	query := `
		INSERT INTO questions (id, part, question_text, sample_answer, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		question.ID,
		question.Part,
		question.Text,
		question.SampleAnswer,
		question.Category,
		question.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create question",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()))
		return MapError(err)
	}

	log.Info("question created successfully",
		slog.String("question_id", question.ID.String()),
		slog.Int("part", question.Part))
	return nil
}

// GetByID implements store.QuestionStore.GetByID
// Returns store.ErrQuestionNotFound if the question does not exist.
func (s *PostgresQuestionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, part, question_text, sample_answer, category, created_at
		FROM questions
		WHERE id = $1
	`
	var question domain.Question
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&question.ID,
		&question.Part,
		&question.Text,
		&question.SampleAnswer,
		&question.Category,
		&question.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrQuestionNotFound
		}
		log.Error("failed to get question by ID",
			slog.String("error", err.Error()),
			slog.String("question_id", id.String()))
		return nil, MapError(err)
	}

	return &question, nil
}

// List implements store.QuestionStore.List
// A part of store.AnyPart returns the whole pool.
func (s *PostgresQuestionStore) List(ctx context.Context, part int) ([]*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, part, question_text, sample_answer, category, created_at
		FROM questions
		WHERE ($1 = 0 OR part = $1)
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, part)
	if err != nil {
		log.Error("failed to list questions",
			slog.String("error", err.Error()),
			slog.Int("part", part))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var questions []*domain.Question
	for rows.Next() {
		var question domain.Question
		if err := rows.Scan(
			&question.ID,
			&question.Part,
			&question.Text,
			&question.SampleAnswer,
			&question.Category,
			&question.CreatedAt,
		); err != nil {
			log.Error("failed to scan question row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		questions = append(questions, &question)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return questions, nil
}

// Update implements store.QuestionStore.Update
// Returns store.ErrQuestionNotFound if the question does not exist.
func (s *PostgresQuestionStore) Update(ctx context.Context, question *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		log.Warn("question validation failed during update",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()))
		return err
	}

	query := `
		UPDATE questions
		SET part = $2, question_text = $3, sample_answer = $4, category = $5
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		question.ID,
		question.Part,
		question.Text,
		question.SampleAnswer,
		question.Category,
	)
	if err != nil {
		log.Error("failed to update question",
			slog.String("error", err.Error()),
			slog.String("question_id", question.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrQuestionNotFound)
}

// Delete implements store.QuestionStore.Delete
// Returns store.ErrQuestionNotFound if the question does not exist.
func (s *PostgresQuestionStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete question",
			slog.String("error", err.Error()),
			slog.String("question_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrQuestionNotFound)
}
