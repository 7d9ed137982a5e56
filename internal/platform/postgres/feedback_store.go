package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/platform/logger"
	"github.com/speakoai/speako-api/internal/store"
)

// PostgresFeedbackStore implements the store.FeedbackStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFeedbackStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFeedbackStore creates a new PostgreSQL implementation of the FeedbackStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresFeedbackStore(db store.DBTX, logger *slog.Logger) *PostgresFeedbackStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFeedbackStore{
		db:     db,
		logger: logger.With(slog.String("component", "feedback_store")),
	}
}

// Ensure PostgresFeedbackStore implements store.FeedbackStore interface
var _ store.FeedbackStore = (*PostgresFeedbackStore)(nil)

// WithTx implements store.FeedbackStore.WithTx
func (s *PostgresFeedbackStore) WithTx(tx *sql.Tx) store.FeedbackStore {
	return &PostgresFeedbackStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.FeedbackStore.Create
func (s *PostgresFeedbackStore) Create(ctx context.Context, feedback *domain.Feedback) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := feedback.Validate(); err != nil {
		log.Warn("feedback validation failed during create",
			slog.String("error", err.Error()),
			slog.String("feedback_id", feedback.ID.String()))
		return err
	}

	query := `
		INSERT INTO feedbacks (id, user_id, ai_comment, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		feedback.ID,
		feedback.UserID,
		feedback.Comment,
		feedback.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during feedback creation",
				slog.String("feedback_id", feedback.ID.String()),
				slog.String("user_id", feedback.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, feedback.UserID)
		}

		log.Error("failed to create feedback",
			slog.String("error", err.Error()),
			slog.String("feedback_id", feedback.ID.String()))
		return MapError(err)
	}

	log.Info("feedback created successfully",
		slog.String("feedback_id", feedback.ID.String()),
		slog.String("user_id", feedback.UserID.String()))
	return nil
}

// GetByID implements store.FeedbackStore.GetByID
// Returns store.ErrFeedbackNotFound if the entry does not exist.
func (s *PostgresFeedbackStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Feedback, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, ai_comment, created_at
		FROM feedbacks
		WHERE id = $1
	`
	var feedback domain.Feedback
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&feedback.ID,
		&feedback.UserID,
		&feedback.Comment,
		&feedback.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFeedbackNotFound
		}
		log.Error("failed to get feedback by ID",
			slog.String("error", err.Error()),
			slog.String("feedback_id", id.String()))
		return nil, MapError(err)
	}

	return &feedback, nil
}

// ListByUser implements store.FeedbackStore.ListByUser
func (s *PostgresFeedbackStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Feedback, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, ai_comment, created_at
		FROM feedbacks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list feedback",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var feedbacks []*domain.Feedback
	for rows.Next() {
		var feedback domain.Feedback
		if err := rows.Scan(
			&feedback.ID,
			&feedback.UserID,
			&feedback.Comment,
			&feedback.CreatedAt,
		); err != nil {
			log.Error("failed to scan feedback row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		feedbacks = append(feedbacks, &feedback)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return feedbacks, nil
}

// Update implements store.FeedbackStore.Update
// Returns store.ErrFeedbackNotFound if the entry does not exist.
func (s *PostgresFeedbackStore) Update(ctx context.Context, feedback *domain.Feedback) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := feedback.Validate(); err != nil {
		log.Warn("feedback validation failed during update",
			slog.String("error", err.Error()),
			slog.String("feedback_id", feedback.ID.String()))
		return err
	}

	query := `
		UPDATE feedbacks
		SET ai_comment = $2
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, feedback.ID, feedback.Comment)
	if err != nil {
		log.Error("failed to update feedback",
			slog.String("error", err.Error()),
			slog.String("feedback_id", feedback.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrFeedbackNotFound)
}

// Delete implements store.FeedbackStore.Delete
// Returns store.ErrFeedbackNotFound if the entry does not exist.
func (s *PostgresFeedbackStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete feedback",
			slog.String("error", err.Error()),
			slog.String("feedback_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrFeedbackNotFound)
}
