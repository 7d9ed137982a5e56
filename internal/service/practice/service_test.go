package practice_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/mocks"
	"github.com/speakoai/speako-api/internal/scoring"
	"github.com/speakoai/speako-api/internal/service/practice"
	"github.com/speakoai/speako-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const answerText = "I believe consistent daily practice is the best way to improve."

// fixture bundles everything a practice service test needs.
type fixture struct {
	db        *sql.DB
	dbMock    sqlmock.Sqlmock
	users     *mocks.MockUserStore
	questions *mocks.MockQuestionStore
	responses *mocks.MockResponseStore
	selector  *mocks.MockQuestionSelector
	scorer    *mocks.MockScorer
	sessions  *practice.MemorySessionStore
	service   practice.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{
		db:        db,
		dbMock:    dbMock,
		users:     mocks.NewMockUserStore(),
		questions: mocks.NewMockQuestionStore(),
		responses: mocks.NewMockResponseStore(),
		selector:  &mocks.MockQuestionSelector{},
		scorer:    mocks.NewMockScorer(6.5),
		sessions:  practice.NewMemorySessionStore(),
	}
	f.service = practice.NewService(
		db,
		f.users,
		f.questions,
		f.responses,
		f.selector,
		f.scorer,
		f.sessions,
		5*time.Second,
		nil,
	)
	return f
}

// seedUser puts a user into the mock store.
func (f *fixture) seedUser(t *testing.T, telegramID int64) *domain.User {
	t.Helper()

	user, err := domain.NewUser(telegramID, "Alice", nil)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

// seedQuestion puts a question into the mock store and wires the
// selector to return it.
func (f *fixture) seedQuestion(t *testing.T, part int) *domain.Question {
	t.Helper()

	question, err := domain.NewQuestion(part, "Describe a skill you would like to learn and why.", nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.questions.Create(context.Background(), question))
	f.selector.Question = question
	return question
}

// advanceToAwaitingAnswer walks a fresh session to the point where the
// next text message is taken as the answer.
func (f *fixture) advanceToAwaitingAnswer(t *testing.T, user *domain.User, part int) *domain.Question {
	t.Helper()

	ctx := context.Background()
	question := f.seedQuestion(t, part)

	require.NoError(t, f.service.StartPractice(ctx, user.ID))
	_, err := f.service.ChoosePart(ctx, user.ID, part)
	require.NoError(t, err)
	require.NoError(t, f.service.ConfirmReady(ctx, user.ID))
	require.Equal(t, practice.StateAwaitingAnswer, f.service.SessionState(user.ID))
	return question
}

func TestRegister_CreatesUserOnFirstContact(t *testing.T) {
	f := newFixture(t)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectCommit()

	user, err := f.service.Register(context.Background(), 555, "Alice", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(555), user.TelegramID)

	// Second contact returns the same account without another insert.
	again, err := f.service.Register(context.Background(), 555, "Alice", nil)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.NoError(t, f.dbMock.ExpectationsWereMet())
}

func TestRegister_InvalidData(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Register(context.Background(), 0, "Alice", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTelegramID)
}

func TestStartPractice_UnknownUser(t *testing.T) {
	f := newFixture(t)

	err := f.service.StartPractice(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestChoosePart_Guards(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 1)
	ctx := context.Background()

	t.Run("no session", func(t *testing.T) {
		_, err := f.service.ChoosePart(ctx, user.ID, 1)
		assert.ErrorIs(t, err, practice.ErrNoActiveSession)
	})

	t.Run("invalid part leaves session waiting", func(t *testing.T) {
		require.NoError(t, f.service.StartPractice(ctx, user.ID))

		_, err := f.service.ChoosePart(ctx, user.ID, 4)
		assert.ErrorIs(t, err, practice.ErrInvalidPart)
		assert.Equal(t, practice.StateAwaitingPartChoice, f.service.SessionState(user.ID))
	})

	t.Run("empty pool leaves session waiting", func(t *testing.T) {
		f.selector.Err = practice.ErrNoQuestions

		_, err := f.service.ChoosePart(ctx, user.ID, 2)
		assert.ErrorIs(t, err, practice.ErrNoQuestions)
		assert.Equal(t, practice.StateAwaitingPartChoice, f.service.SessionState(user.ID))
		f.selector.Err = nil
	})

	t.Run("wrong state after question presented", func(t *testing.T) {
		f.seedQuestion(t, 2)
		_, err := f.service.ChoosePart(ctx, user.ID, 2)
		require.NoError(t, err)

		_, err = f.service.ChoosePart(ctx, user.ID, 2)
		assert.ErrorIs(t, err, practice.ErrNotAwaitingPartChoice)
	})
}

func TestConfirmReady_Guard(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 2)
	ctx := context.Background()

	require.NoError(t, f.service.StartPractice(ctx, user.ID))

	err := f.service.ConfirmReady(ctx, user.ID)
	assert.ErrorIs(t, err, practice.ErrNotAwaitingReadiness)
	assert.Equal(t, practice.StateAwaitingPartChoice, f.service.SessionState(user.ID))
}

func TestSubmitAnswer_RejectedWhenNotAwaiting(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 3)

	_, err := f.service.SubmitAnswer(context.Background(), user.ID, answerText)
	assert.ErrorIs(t, err, practice.ErrNotAwaitingAnswer)
	// Orphaned text never reaches the scorer.
	assert.Empty(t, f.scorer.ScoreCalls)
	assert.Equal(t, practice.StateIdle, f.service.SessionState(user.ID))
}

func TestSubmitAnswer_HappyPath(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 4)
	question := f.advanceToAwaitingAnswer(t, user, 2)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectCommit()

	report, err := f.service.SubmitAnswer(context.Background(), user.ID, answerText)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, practice.StateReportReady, f.service.SessionState(user.ID))

	require.NotNil(t, report.Response.OverallScore)
	assert.InDelta(t, 6.5, *report.Response.OverallScore, 1e-9)
	assert.Equal(t, question.ID, report.Response.QuestionID)
	assert.Equal(t, user.ID, report.Response.UserID)

	// The persisted row is visible in the report's summary already.
	require.NotNil(t, report.Summary)
	assert.Equal(t, 1, report.Summary.TotalResponses)
	require.NotNil(t, report.Summary.AverageOverall)
	assert.InDelta(t, 6.5, *report.Summary.AverageOverall, 1e-9)

	// One response row was written.
	assert.Len(t, f.responses.Responses, 1)

	f.service.FinishTurn(user.ID)
	assert.Equal(t, practice.StateIdle, f.service.SessionState(user.ID))
	assert.NoError(t, f.dbMock.ExpectationsWereMet())
}

func TestSubmitAnswer_ScoringFailurePersistsNothing(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 5)
	f.advanceToAwaitingAnswer(t, user, 1)

	f.scorer.ScoreFn = func(ctx context.Context, answer string) (*scoring.Result, error) {
		return nil, scoring.ErrUnavailable
	}

	_, err := f.service.SubmitAnswer(context.Background(), user.ID, answerText)
	require.Error(t, err)
	assert.ErrorIs(t, err, practice.ErrScoringFailed)

	assert.Equal(t, practice.StateScoringFailed, f.service.SessionState(user.ID))
	assert.Empty(t, f.responses.Responses)
	// No transaction was opened at all.
	assert.NoError(t, f.dbMock.ExpectationsWereMet())

	f.service.FinishTurn(user.ID)
	assert.Equal(t, practice.StateIdle, f.service.SessionState(user.ID))
}

func TestSubmitAnswer_ScoringTimeout(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 6)
	f.advanceToAwaitingAnswer(t, user, 1)

	// A scorer that honors its deadline reports the context error.
	f.scorer.ScoreFn = func(ctx context.Context, answer string) (*scoring.Result, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		require.True(t, deadline.After(time.Now()))
		return nil, context.DeadlineExceeded
	}

	_, err := f.service.SubmitAnswer(context.Background(), user.ID, answerText)
	assert.ErrorIs(t, err, practice.ErrScoringFailed)
	assert.Equal(t, practice.StateScoringFailed, f.service.SessionState(user.ID))
	assert.Empty(t, f.responses.Responses)
}

func TestSubmitAnswer_PersistenceFailureDiscardsSession(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 7)
	f.advanceToAwaitingAnswer(t, user, 3)

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectRollback()

	storeErr := errors.New("disk full")
	f.responses.CreateFn = func(ctx context.Context, response *domain.Response) error {
		return storeErr
	}

	_, err := f.service.SubmitAnswer(context.Background(), user.ID, answerText)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)

	var svcErr *practice.ServiceError
	assert.ErrorAs(t, err, &svcErr)

	// The session is gone so the user can start a clean turn.
	assert.Equal(t, practice.StateIdle, f.service.SessionState(user.ID))
	assert.NoError(t, f.dbMock.ExpectationsWereMet())
}

func TestSubmitAnswer_QuestionDeletedMidTurn(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 8)
	question := f.advanceToAwaitingAnswer(t, user, 2)

	// The question disappears between presentation and submission.
	require.NoError(t, f.questions.Delete(context.Background(), question.ID))

	f.dbMock.ExpectBegin()
	f.dbMock.ExpectRollback()

	_, err := f.service.SubmitAnswer(context.Background(), user.ID, answerText)
	assert.ErrorIs(t, err, store.ErrQuestionNotFound)
	assert.Empty(t, f.responses.Responses)
	assert.NoError(t, f.dbMock.ExpectationsWereMet())
}

func TestStartPractice_DiscardsPreviousTurn(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 9)
	f.advanceToAwaitingAnswer(t, user, 1)

	// Starting over abandons the half-finished turn.
	require.NoError(t, f.service.StartPractice(context.Background(), user.ID))
	assert.Equal(t, practice.StateAwaitingPartChoice, f.service.SessionState(user.ID))
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	f := newFixture(t)
	alice := f.seedUser(t, 10)
	bob := f.seedUser(t, 11)
	ctx := context.Background()

	require.NoError(t, f.service.StartPractice(ctx, alice.ID))

	assert.Equal(t, practice.StateAwaitingPartChoice, f.service.SessionState(alice.ID))
	assert.Equal(t, practice.StateIdle, f.service.SessionState(bob.ID))

	_, err := f.service.SubmitAnswer(ctx, bob.ID, answerText)
	assert.ErrorIs(t, err, practice.ErrNotAwaitingAnswer)
	assert.Equal(t, practice.StateAwaitingPartChoice, f.service.SessionState(alice.ID))
}
