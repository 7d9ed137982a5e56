// Package practice drives one user through a single practice turn:
// question selection, answer collection, scoring, persistence and the
// progress report. Session state is conversational and in-memory; the
// only durable side effect of a turn is the single Response row written
// through the unit-of-work executor after a successful scoring call.
package practice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/platform/logger"
	"github.com/speakoai/speako-api/internal/scoring"
	"github.com/speakoai/speako-api/internal/service/analytics"
	"github.com/speakoai/speako-api/internal/store"
)

// Report is what a completed turn hands back to the transport: the
// persisted response and a summary that already includes it.
type Report struct {
	Response *domain.Response       `json:"response"`
	Summary  *analytics.UserSummary `json:"summary"`
}

// Service drives the practice session state machine. All methods are
// safe to call from concurrent conversations; each user has at most one
// session and sessions never share state.
type Service interface {
	// Register looks up the user by telegram ID, creating them on first
	// contact. It never starts a session.
	Register(ctx context.Context, telegramID int64, firstName string, username *string) (*domain.User, error)

	// StartPractice begins a practice turn, moving the session to
	// AwaitingPartChoice. Any previous unfinished turn is discarded.
	StartPractice(ctx context.Context, userID uuid.UUID) error

	// ChoosePart selects a question for the chosen part (PartRandom for
	// an unfiltered draw) and moves to QuestionPresented.
	// Returns ErrNotAwaitingPartChoice unless the session is awaiting a
	// part, ErrInvalidPart for a malformed part and ErrNoQuestions when
	// the filtered pool is empty.
	ChoosePart(ctx context.Context, userID uuid.UUID, part int) (*domain.Question, error)

	// ConfirmReady acknowledges the presented question and moves to
	// AwaitingAnswer. Returns ErrNotAwaitingReadiness unless a question
	// is presented.
	ConfirmReady(ctx context.Context, userID uuid.UUID) error

	// SubmitAnswer takes the user's answer text, scores it, persists
	// the response and builds the report. On success the session is in
	// ReportReady; on scoring failure it is in ScoringFailed and
	// nothing was persisted. Returns ErrNotAwaitingAnswer (state
	// unchanged) if no answer was expected.
	SubmitAnswer(ctx context.Context, userID uuid.UUID, answerText string) (*Report, error)

	// FinishTurn returns the session to Idle once the report or failure
	// notice has been delivered.
	FinishTurn(userID uuid.UUID)

	// SessionState reports the user's current state; Idle if no session
	// exists.
	SessionState(userID uuid.UUID) State
}

type serviceImpl struct {
	db             *sql.DB
	users          store.UserStore
	questions      store.QuestionStore
	responses      store.ResponseStore
	selector       QuestionSelector
	scorer         scoring.Scorer
	sessions       SessionStore
	scoringTimeout time.Duration
	logger         *slog.Logger
}

// Ensure serviceImpl implements Service
var _ Service = (*serviceImpl)(nil)

// NewService creates the practice Service.
func NewService(
	db *sql.DB,
	users store.UserStore,
	questions store.QuestionStore,
	responses store.ResponseStore,
	selector QuestionSelector,
	scorer scoring.Scorer,
	sessions SessionStore,
	scoringTimeout time.Duration,
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
	if selector == nil {
		panic("selector cannot be nil")
	}
	if scorer == nil {
		panic("scorer cannot be nil")
	}
	if sessions == nil {
		panic("sessions store cannot be nil")
	}
	if scoringTimeout <= 0 {
		scoringTimeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		db:             db,
		users:          users,
		questions:      questions,
		responses:      responses,
		selector:       selector,
		scorer:         scorer,
		sessions:       sessions,
		scoringTimeout: scoringTimeout,
		logger:         log.With(slog.String("component", "practice_service")),
	}
}

// Register implements Service.Register.
func (s *serviceImpl) Register(
	ctx context.Context,
	telegramID int64,
	firstName string,
	username *string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user, err = domain.NewUser(telegramID, firstName, username)
	if err != nil {
		log.Warn("invalid user data on registration",
			slog.String("error", err.Error()),
			slog.Int64("telegram_id", telegramID))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		// Another conversation may have registered the same user
		// between the lookup and the insert.
		if errors.Is(err, store.ErrTelegramIDExists) {
			return s.users.GetByTelegramID(ctx, telegramID)
		}
		log.Error("failed to register user",
			slog.String("error", err.Error()),
			slog.Int64("telegram_id", telegramID))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered on first contact",
		slog.String("user_id", user.ID.String()),
		slog.Int64("telegram_id", telegramID))
	return user, nil
}

// StartPractice implements Service.StartPractice.
func (s *serviceImpl) StartPractice(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	s.sessions.Put(&Session{
		UserID: userID,
		State:  StateAwaitingPartChoice,
	})
	return nil
}

// ChoosePart implements Service.ChoosePart.
func (s *serviceImpl) ChoosePart(
	ctx context.Context,
	userID uuid.UUID,
	part int,
) (*domain.Question, error) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return nil, ErrNoActiveSession
	}
	if session.State != StateAwaitingPartChoice {
		return nil, ErrNotAwaitingPartChoice
	}

	if part != PartRandom && (part < domain.MinPart || part > domain.MaxPart) {
		return nil, ErrInvalidPart
	}

	question, err := s.selector.Select(ctx, part)
	if err != nil {
		// The empty-pool case keeps the session where it is so the user
		// can pick another part.
		return nil, err
	}

	session.Part = part
	session.QuestionID = question.ID
	session.State = StateQuestionPresented
	s.sessions.Put(session)

	return question, nil
}

// ConfirmReady implements Service.ConfirmReady.
func (s *serviceImpl) ConfirmReady(ctx context.Context, userID uuid.UUID) error {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return ErrNoActiveSession
	}
	if session.State != StateQuestionPresented {
		return ErrNotAwaitingReadiness
	}

	session.State = StateAwaitingAnswer
	s.sessions.Put(session)
	return nil
}

// SubmitAnswer implements Service.SubmitAnswer.
func (s *serviceImpl) SubmitAnswer(
	ctx context.Context,
	userID uuid.UUID,
	answerText string,
) (*Report, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, ok := s.sessions.Get(userID)
	if !ok || session.State != StateAwaitingAnswer {
		// Orphaned text: reject with guidance, change nothing.
		return nil, ErrNotAwaitingAnswer
	}

	session.State = StateScoring
	s.sessions.Put(session)

	// Score before opening any transaction; the workspace is never held
	// across this call. A timeout counts as a scoring failure.
	scoreCtx, cancel := context.WithTimeout(ctx, s.scoringTimeout)
	result, err := s.scorer.Score(scoreCtx, answerText)
	cancel()
	if err != nil {
		log.Warn("scoring failed, persisting nothing",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("question_id", session.QuestionID.String()))

		session.State = StateScoringFailed
		s.sessions.Put(session)
		return nil, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}

	response, err := domain.NewResponse(userID, session.QuestionID, answerText)
	if err != nil {
		session.State = StateScoringFailed
		s.sessions.Put(session)
		return nil, err
	}
	response.FluencyScore = result.Fluency
	response.PronunciationScore = result.Pronunciation
	response.GrammarScore = result.Grammar
	response.VocabularyScore = result.Vocabulary
	response.OverallScore = result.Overall
	if result.Feedback != "" {
		feedback := result.Feedback
		response.AIFeedback = &feedback
	}

	// One unit of work: re-validate both parents, write the response,
	// then build the report summary from the same transaction so it
	// already reflects the new row.
	var summary *analytics.UserSummary
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)
		txQuestions := s.questions.WithTx(tx)
		txResponses := s.responses.WithTx(tx)

		if _, err := txUsers.GetByID(ctx, userID); err != nil {
			return err
		}
		if _, err := txQuestions.GetByID(ctx, session.QuestionID); err != nil {
			return err
		}

		if err := txResponses.Create(ctx, response); err != nil {
			return err
		}

		txAnalytics := analytics.NewService(txUsers, txQuestions, txResponses, s.logger)
		summary, err = txAnalytics.UserSummary(ctx, userID)
		return err
	})
	if err != nil {
		log.Error("failed to persist practice response",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("question_id", session.QuestionID.String()))

		// The transaction rolled back; nothing is visible. Drop the
		// conversational state so the user can start a clean turn.
		s.sessions.Delete(userID)
		return nil, &ServiceError{
			Operation: "submit_answer",
			Message:   "failed to persist response",
			Err:       err,
		}
	}

	session.State = StateReportReady
	s.sessions.Put(session)

	log.Info("practice turn completed",
		slog.String("user_id", userID.String()),
		slog.String("response_id", response.ID.String()))

	return &Report{Response: response, Summary: summary}, nil
}

// FinishTurn implements Service.FinishTurn.
func (s *serviceImpl) FinishTurn(userID uuid.UUID) {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return
	}
	if session.State == StateReportReady || session.State == StateScoringFailed {
		s.sessions.Delete(userID)
	}
}

// SessionState implements Service.SessionState.
func (s *serviceImpl) SessionState(userID uuid.UUID) State {
	session, ok := s.sessions.Get(userID)
	if !ok {
		return StateIdle
	}
	return session.State
}
