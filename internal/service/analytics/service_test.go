package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/mocks"
	"github.com/speakoai/speako-api/internal/service/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

// seedUser registers a user in the mock store with a fixed telegram ID.
func seedUser(t *testing.T, users *mocks.MockUserStore, telegramID int64, firstName string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(telegramID, firstName, nil)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

// seedResponse stores a response with the given overall score (nil for
// unscored) at the given creation time.
func seedResponse(
	t *testing.T,
	responses *mocks.MockResponseStore,
	userID uuid.UUID,
	overall *float64,
	createdAt time.Time,
) *domain.Response {
	t.Helper()

	response, err := domain.NewResponse(userID, uuid.New(), "This is a sufficiently long practice answer.")
	require.NoError(t, err)
	response.OverallScore = overall
	response.CreatedAt = createdAt
	require.NoError(t, responses.Create(context.Background(), response))
	return response
}

func newTestService(
	users *mocks.MockUserStore,
	questions *mocks.MockQuestionStore,
	responses *mocks.MockResponseStore,
) analytics.Service {
	return analytics.NewService(users, questions, responses, nil)
}

func TestUserSummary_MeanOfScoredResponses(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	questions := mocks.NewMockQuestionStore()
	responses := mocks.NewMockResponseStore()
	svc := newTestService(users, questions, responses)

	user := seedUser(t, users, 100, "Alice")
	base := time.Now().UTC()

	seedResponse(t, responses, user.ID, floatPtr(6.0), base.Add(-2*time.Hour))
	seedResponse(t, responses, user.ID, floatPtr(8.0), base.Add(-1*time.Hour))

	summary, err := svc.UserSummary(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalResponses)
	require.NotNil(t, summary.AverageOverall)
	assert.InDelta(t, 7.0, *summary.AverageOverall, 1e-9)
	require.NotNil(t, summary.BestScore)
	assert.InDelta(t, 8.0, *summary.BestScore, 1e-9)
	// Newest first.
	assert.Equal(t, []float64{8.0, 6.0}, summary.RecentScores)
}

func TestUserSummary_DimensionAveragesUsePresentValuesOnly(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	questions := mocks.NewMockQuestionStore()
	responses := mocks.NewMockResponseStore()
	svc := newTestService(users, questions, responses)

	user := seedUser(t, users, 101, "Bob")
	base := time.Now().UTC()

	// One response carries fluency, the other does not; the fluency
	// average must ignore the absent one instead of diluting it.
	first := seedResponse(t, responses, user.ID, floatPtr(5.0), base.Add(-2*time.Hour))
	first.FluencyScore = floatPtr(4.0)
	seedResponse(t, responses, user.ID, floatPtr(7.0), base.Add(-1*time.Hour))

	summary, err := svc.UserSummary(context.Background(), user.ID)
	require.NoError(t, err)

	require.NotNil(t, summary.AverageFluency)
	assert.InDelta(t, 4.0, *summary.AverageFluency, 1e-9)
	require.NotNil(t, summary.AverageOverall)
	assert.InDelta(t, 6.0, *summary.AverageOverall, 1e-9)
	assert.Nil(t, summary.AverageGrammar)
}

func TestUserSummary_NoResponses(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	questions := mocks.NewMockQuestionStore()
	responses := mocks.NewMockResponseStore()
	svc := newTestService(users, questions, responses)

	user := seedUser(t, users, 102, "Carol")

	summary, err := svc.UserSummary(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalResponses)
	assert.Nil(t, summary.AverageOverall)
	assert.Nil(t, summary.BestScore)
	assert.Empty(t, summary.RecentScores)
}

func TestUserSummary_RecentScoresCappedAtFive(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	questions := mocks.NewMockQuestionStore()
	responses := mocks.NewMockResponseStore()
	svc := newTestService(users, questions, responses)

	user := seedUser(t, users, 103, "Dave")
	base := time.Now().UTC()

	for i := 0; i < 7; i++ {
		score := float64(i) // 0.0 .. 6.0, oldest to newest
		seedResponse(t, responses, user.ID, floatPtr(score), base.Add(time.Duration(i)*time.Minute))
	}

	summary, err := svc.UserSummary(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, []float64{6.0, 5.0, 4.0, 3.0, 2.0}, summary.RecentScores)
}

func TestUserSummary_UserNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(mocks.NewMockUserStore(), mocks.NewMockQuestionStore(), mocks.NewMockResponseStore())

	_, err := svc.UserSummary(context.Background(), uuid.New())
	assert.ErrorIs(t, err, analytics.ErrUserNotFound)
}

func TestLeaderboard_OrdersByMeanDescending(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	questions := mocks.NewMockQuestionStore()
	responses := mocks.NewMockResponseStore()
	svc := newTestService(users, questions, responses)

	base := time.Now().UTC()

	low := seedUser(t, users, 200, "Low")
	seedResponse(t, responses, low.ID, floatPtr(6.0), base)

	high := seedUser(t, users, 201, "High")
	seedResponse(t, responses, high.ID, floatPtr(8.0), base)

	// A user with only unscored responses must not be ranked.
	unscored := seedUser(t, users, 202, "Unscored")
	seedResponse(t, responses, unscored.ID, nil, base)

	// A user with no responses at all must not be ranked either.
	seedUser(t, users, 203, "Silent")

	entries, err := svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "High", entries[0].FirstName)
	assert.InDelta(t, 8.0, entries[0].AverageOverall, 1e-9)
	assert.Equal(t, "Low", entries[1].FirstName)
	assert.InDelta(t, 6.0, entries[1].AverageOverall, 1e-9)
}

func TestLeaderboard_LimitTruncates(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	questions := mocks.NewMockQuestionStore()
	responses := mocks.NewMockResponseStore()
	svc := newTestService(users, questions, responses)

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		user := seedUser(t, users, int64(300+i), "User")
		seedResponse(t, responses, user.ID, floatPtr(float64(i+1)), base)
	}

	entries, err := svc.Leaderboard(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.InDelta(t, 5.0, entries[0].AverageOverall, 1e-9)
	assert.InDelta(t, 4.0, entries[1].AverageOverall, 1e-9)
	assert.InDelta(t, 3.0, entries[2].AverageOverall, 1e-9)
}

func TestLeaderboard_UsesSingleScoreRollup(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	questions := mocks.NewMockQuestionStore()
	responses := mocks.NewMockResponseStore()
	svc := newTestService(users, questions, responses)

	base := time.Now().UTC()
	for i := 0; i < 4; i++ {
		user := seedUser(t, users, int64(500+i), "User")
		seedResponse(t, responses, user.ID, floatPtr(float64(i+5)), base)
	}

	// The ranking must come from the grouped rollup, never from one
	// listing query per user.
	responses.ListByUserFn = func(ctx context.Context, userID uuid.UUID) ([]*domain.Response, error) {
		t.Errorf("leaderboard listed responses for user %s", userID)
		return nil, nil
	}

	entries, err := svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, entries, 4)
	assert.InDelta(t, 8.0, entries[0].AverageOverall, 1e-9)
}

func TestLeaderboard_InvalidLimit(t *testing.T) {
	t.Parallel()

	svc := newTestService(mocks.NewMockUserStore(), mocks.NewMockQuestionStore(), mocks.NewMockResponseStore())

	for _, limit := range []int{0, -1} {
		_, err := svc.Leaderboard(context.Background(), limit)
		assert.ErrorIs(t, err, analytics.ErrInvalidLimit)
	}
}

func TestQuestionSummary(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	questions := mocks.NewMockQuestionStore()
	responses := mocks.NewMockResponseStore()
	svc := newTestService(users, questions, responses)

	question, err := domain.NewQuestion(2, "Describe a book that influenced you deeply.", nil, nil)
	require.NoError(t, err)
	require.NoError(t, questions.Create(context.Background(), question))

	user := seedUser(t, users, 400, "Eve")
	response, err := domain.NewResponse(user.ID, question.ID, "A long enough answer about a favourite book.")
	require.NoError(t, err)
	require.NoError(t, responses.Create(context.Background(), response))

	summary, err := svc.QuestionSummary(context.Background(), question.ID)
	require.NoError(t, err)

	assert.Equal(t, question.ID, summary.Question.ID)
	assert.Equal(t, 1, summary.TotalResponses)
	require.Len(t, summary.Responses, 1)
	assert.Equal(t, response.ID, summary.Responses[0].ID)
}

func TestQuestionSummary_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(mocks.NewMockUserStore(), mocks.NewMockQuestionStore(), mocks.NewMockResponseStore())

	_, err := svc.QuestionSummary(context.Background(), uuid.New())
	assert.ErrorIs(t, err, analytics.ErrQuestionNotFound)
}
