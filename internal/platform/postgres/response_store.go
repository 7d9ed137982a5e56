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

// responseColumns is the column list shared by every response query.
const responseColumns = `id, user_id, question_id, response_text, audio_file_path,
	fluency_score, pronunciation_score, grammar_score, vocabulary_score,
	overall_score, ai_feedback, created_at`

// PostgresResponseStore implements the store.ResponseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresResponseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresResponseStore creates a new PostgreSQL implementation of the ResponseStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresResponseStore(db store.DBTX, logger *slog.Logger) *PostgresResponseStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresResponseStore{
		db:     db,
		logger: logger.With(slog.String("component", "response_store")),
	}
}

// Ensure PostgresResponseStore implements store.ResponseStore interface
var _ store.ResponseStore = (*PostgresResponseStore)(nil)

// WithTx implements store.ResponseStore.WithTx
func (s *PostgresResponseStore) WithTx(tx *sql.Tx) store.ResponseStore {
	return &PostgresResponseStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ResponseStore.Create
// Returns store.ErrInvalidEntity if the user or question foreign key is
// violated; callers are expected to have checked existence already.
func (s *PostgresResponseStore) Create(ctx context.Context, response *domain.Response) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := response.Validate(); err != nil {
		log.Warn("response validation failed during create",
			slog.String("error", err.Error()),
			slog.String("response_id", response.ID.String()))
		return err
	}

	query := `
		INSERT INTO user_responses (` + responseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		response.ID,
		response.UserID,
		response.QuestionID,
		response.Text,
		response.AudioPath,
		response.FluencyScore,
		response.PronunciationScore,
		response.GrammarScore,
		response.VocabularyScore,
		response.OverallScore,
		response.AIFeedback,
		response.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during response creation",
				slog.String("response_id", response.ID.String()),
				slog.String("user_id", response.UserID.String()),
				slog.String("question_id", response.QuestionID.String()))
			return fmt.Errorf("%w: user or question does not exist", store.ErrInvalidEntity)
		}

		log.Error("failed to create response",
			slog.String("error", err.Error()),
			slog.String("response_id", response.ID.String()))
		return MapError(err)
	}

	log.Info("response created successfully",
		slog.String("response_id", response.ID.String()),
		slog.String("user_id", response.UserID.String()),
		slog.String("question_id", response.QuestionID.String()))
	return nil
}

// GetByID implements store.ResponseStore.GetByID
// Returns store.ErrResponseNotFound if the response does not exist.
func (s *PostgresResponseStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Response, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + responseColumns + ` FROM user_responses WHERE id = $1`

	var response domain.Response
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&response.ID,
		&response.UserID,
		&response.QuestionID,
		&response.Text,
		&response.AudioPath,
		&response.FluencyScore,
		&response.PronunciationScore,
		&response.GrammarScore,
		&response.VocabularyScore,
		&response.OverallScore,
		&response.AIFeedback,
		&response.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrResponseNotFound
		}
		log.Error("failed to get response by ID",
			slog.String("error", err.Error()),
			slog.String("response_id", id.String()))
		return nil, MapError(err)
	}

	return &response, nil
}

// ListByUser implements store.ResponseStore.ListByUser
// Results are ordered newest first; ties on created_at fall back to the
// ID so the order is deterministic per run.
func (s *PostgresResponseStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Response, error) {
	query := `
		SELECT ` + responseColumns + `
		FROM user_responses
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return s.listResponses(ctx, query, userID)
}

// ListByQuestion implements store.ResponseStore.ListByQuestion
func (s *PostgresResponseStore) ListByQuestion(
	ctx context.Context,
	questionID uuid.UUID,
) ([]*domain.Response, error) {
	query := `
		SELECT ` + responseColumns + `
		FROM user_responses
		WHERE question_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return s.listResponses(ctx, query, questionID)
}

func (s *PostgresResponseStore) listResponses(
	ctx context.Context,
	query string,
	arg any,
) ([]*domain.Response, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Error("failed to list responses", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var responses []*domain.Response
	for rows.Next() {
		var response domain.Response
		if err := rows.Scan(
			&response.ID,
			&response.UserID,
			&response.QuestionID,
			&response.Text,
			&response.AudioPath,
			&response.FluencyScore,
			&response.PronunciationScore,
			&response.GrammarScore,
			&response.VocabularyScore,
			&response.OverallScore,
			&response.AIFeedback,
			&response.CreatedAt,
		); err != nil {
			log.Error("failed to scan response row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		responses = append(responses, &response)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return responses, nil
}

// AggregateOverallScores implements store.ResponseStore.AggregateOverallScores
// One grouped query replaces a per-user scan; the leaderboard reads it.
func (s *PostgresResponseStore) AggregateOverallScores(
	ctx context.Context,
) ([]store.UserScoreAggregate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id,
		       COUNT(*),
		       COUNT(overall_score),
		       COALESCE(AVG(overall_score), 0)
		FROM user_responses
		GROUP BY user_id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to aggregate overall scores", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var aggregates []store.UserScoreAggregate
	for rows.Next() {
		var agg store.UserScoreAggregate
		if err := rows.Scan(
			&agg.UserID,
			&agg.TotalResponses,
			&agg.ScoredCount,
			&agg.MeanOverall,
		); err != nil {
			log.Error("failed to scan aggregate row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		aggregates = append(aggregates, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return aggregates, nil
}

// Update implements store.ResponseStore.Update
// Returns store.ErrResponseNotFound if the response does not exist.
func (s *PostgresResponseStore) Update(ctx context.Context, response *domain.Response) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := response.Validate(); err != nil {
		log.Warn("response validation failed during update",
			slog.String("error", err.Error()),
			slog.String("response_id", response.ID.String()))
		return err
	}

	query := `
		UPDATE user_responses
		SET response_text = $2, audio_file_path = $3, fluency_score = $4,
		    pronunciation_score = $5, grammar_score = $6, vocabulary_score = $7,
		    overall_score = $8, ai_feedback = $9
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		response.ID,
		response.Text,
		response.AudioPath,
		response.FluencyScore,
		response.PronunciationScore,
		response.GrammarScore,
		response.VocabularyScore,
		response.OverallScore,
		response.AIFeedback,
	)
	if err != nil {
		log.Error("failed to update response",
			slog.String("error", err.Error()),
			slog.String("response_id", response.ID.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrResponseNotFound)
}

// Delete implements store.ResponseStore.Delete
// Returns store.ErrResponseNotFound if the response does not exist.
func (s *PostgresResponseStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM user_responses WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete response",
			slog.String("error", err.Error()),
			slog.String("response_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrResponseNotFound)
}
