// Package analytics turns a user's response history into aggregate
// statistics and a competitive ranking. All operations are read-only
// and tolerate reading a slightly stale snapshot while writes are in
// flight; they never open a transaction.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/platform/logger"
	"github.com/speakoai/speako-api/internal/store"
)

// RecentScoreCount is how many of the latest overall scores a summary carries.
const RecentScoreCount = 5

// Common sentinel errors for the analytics service.
var (
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrQuestionNotFound indicates that the question does not exist.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrInvalidLimit indicates a non-positive leaderboard limit.
	ErrInvalidLimit = errors.New("limit must be greater than zero")
)

// UserSummary is the per-user aggregate over all submitted responses.
// Averages are nil when no response carries the dimension; a user with
// zero responses gets a summary with TotalResponses 0, not an error.
type UserSummary struct {
	UserID               uuid.UUID `json:"user_id"`
	FirstName            string    `json:"first_name"`
	TotalResponses       int       `json:"total_responses"`
	AverageOverall       *float64  `json:"average_overall_score,omitempty"`
	AverageFluency       *float64  `json:"average_fluency_score,omitempty"`
	AveragePronunciation *float64  `json:"average_pronunciation_score,omitempty"`
	AverageGrammar       *float64  `json:"average_grammar_score,omitempty"`
	AverageVocabulary    *float64  `json:"average_vocabulary_score,omitempty"`
	BestScore            *float64  `json:"best_score,omitempty"`
	RecentScores         []float64 `json:"recent_scores"`
}

// LeaderboardEntry is one ranked row: a user identity with their mean
// overall score and how many responses it is based on.
type LeaderboardEntry struct {
	UserID         uuid.UUID `json:"user_id"`
	FirstName      string    `json:"first_name"`
	TotalResponses int       `json:"total_responses"`
	AverageOverall float64   `json:"average_overall_score"`
}

// QuestionSummary aggregates all responses to one question.
type QuestionSummary struct {
	Question       *domain.Question   `json:"question"`
	Responses      []*domain.Response `json:"responses"`
	TotalResponses int                `json:"total_responses"`
}

// Service provides the analytics operations.
type Service interface {
	// UserSummary builds the aggregate statistics for one user.
	// Returns ErrUserNotFound if the user does not exist.
	UserSummary(ctx context.Context, userID uuid.UUID) (*UserSummary, error)

	// Leaderboard ranks users by mean overall score, descending, at most
	// limit entries. Users with no scored responses are omitted.
	// Returns ErrInvalidLimit if limit <= 0.
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// QuestionSummary aggregates all responses to one question,
	// most recent first. Returns ErrQuestionNotFound if it does not exist.
	QuestionSummary(ctx context.Context, questionID uuid.UUID) (*QuestionSummary, error)
}

type serviceImpl struct {
	users     store.UserStore
	questions store.QuestionStore
	responses store.ResponseStore
	logger    *slog.Logger
}

// NewService creates a new analytics Service.
func NewService(
	users store.UserStore,
	questions store.QuestionStore,
	responses store.ResponseStore,
	log *slog.Logger,
) Service {
	if users == nil {
		panic("users store cannot be nil")
	}
	if questions == nil {
		panic("questions store cannot be nil")
	}
	if responses == nil {
		panic("responses store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		users:     users,
		questions: questions,
		responses: responses,
		logger:    log.With(slog.String("component", "analytics_service")),
	}
}

// UserSummary implements Service.UserSummary.
func (s *serviceImpl) UserSummary(
	ctx context.Context,
	userID uuid.UUID,
) (*UserSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		log.Error("failed to load user for summary",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// Newest first, deterministic tie order (store contract).
	responses, err := s.responses.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to load responses for summary",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	summary := &UserSummary{
		UserID:         user.ID,
		FirstName:      user.FirstName,
		TotalResponses: len(responses),
		RecentScores:   []float64{},
	}
	if len(responses) == 0 {
		return summary, nil
	}

	// Each dimension averages only the responses where it is present,
	// so a partial-score response never biases another dimension's
	// denominator.
	summary.AverageOverall = meanOf(responses, func(r *domain.Response) *float64 { return r.OverallScore })
	summary.AverageFluency = meanOf(responses, func(r *domain.Response) *float64 { return r.FluencyScore })
	summary.AveragePronunciation = meanOf(responses, func(r *domain.Response) *float64 { return r.PronunciationScore })
	summary.AverageGrammar = meanOf(responses, func(r *domain.Response) *float64 { return r.GrammarScore })
	summary.AverageVocabulary = meanOf(responses, func(r *domain.Response) *float64 { return r.VocabularyScore })

	for _, r := range responses {
		if r.OverallScore == nil {
			continue
		}
		if summary.BestScore == nil || *r.OverallScore > *summary.BestScore {
			summary.BestScore = r.OverallScore
		}
		if len(summary.RecentScores) < RecentScoreCount {
			summary.RecentScores = append(summary.RecentScores, *r.OverallScore)
		}
	}

	return summary, nil
}

// Leaderboard implements Service.Leaderboard.
func (s *serviceImpl) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	users, err := s.users.List(ctx)
	if err != nil {
		log.Error("failed to list users for leaderboard",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	// One grouped rollup instead of a per-user query.
	aggregates, err := s.responses.AggregateOverallScores(ctx)
	if err != nil {
		log.Error("failed to aggregate scores for leaderboard",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate scores: %w", err)
	}
	byUser := make(map[uuid.UUID]store.UserScoreAggregate, len(aggregates))
	for _, agg := range aggregates {
		byUser[agg.UserID] = agg
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, user := range users {
		agg, ok := byUser[user.ID]
		// Users with no scored responses are not ranked at all.
		if !ok || agg.ScoredCount == 0 {
			continue
		}

		entries = append(entries, LeaderboardEntry{
			UserID:         user.ID,
			FirstName:      user.FirstName,
			TotalResponses: agg.TotalResponses,
			AverageOverall: agg.MeanOverall,
		})
	}

	// Descending by mean; ties broken by user ID so the order is
	// reproducible across runs.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AverageOverall != entries[j].AverageOverall {
			return entries[i].AverageOverall > entries[j].AverageOverall
		}
		return entries[i].UserID.String() < entries[j].UserID.String()
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// QuestionSummary implements Service.QuestionSummary.
func (s *serviceImpl) QuestionSummary(
	ctx context.Context,
	questionID uuid.UUID,
) (*QuestionSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		log.Error("failed to load question for summary",
			slog.String("error", err.Error()),
			slog.String("question_id", questionID.String()))
		return nil, fmt.Errorf("failed to load question: %w", err)
	}

	responses, err := s.responses.ListByQuestion(ctx, questionID)
	if err != nil {
		log.Error("failed to load responses for question summary",
			slog.String("error", err.Error()),
			slog.String("question_id", questionID.String()))
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}
	if responses == nil {
		responses = []*domain.Response{}
	}

	return &QuestionSummary{
		Question:       question,
		Responses:      responses,
		TotalResponses: len(responses),
	}, nil
}

// meanOf averages one score dimension across the responses where it is
// present. Returns nil when no response carries the dimension.
func meanOf(
	responses []*domain.Response,
	dimension func(*domain.Response) *float64,
) *float64 {
	var sum float64
	var count int
	for _, r := range responses {
		if score := dimension(r); score != nil {
			sum += *score
			count++
		}
	}
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	return &mean
}
