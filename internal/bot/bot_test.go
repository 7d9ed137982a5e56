package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/service/practice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSender captures outgoing messages instead of hitting Telegram.
type fakeSender struct {
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) texts() []string {
	var texts []string
	for _, c := range f.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}

// scriptedPractice is a practice.Service stub with a fixed user, a
// fixed session state and a scripted SubmitAnswer outcome.
type scriptedPractice struct {
	user        *domain.User
	state       practice.State
	report      *practice.Report
	submitErr   error
	finishCalls int
}

func (s *scriptedPractice) Register(ctx context.Context, telegramID int64, firstName string, username *string) (*domain.User, error) {
	return s.user, nil
}

func (s *scriptedPractice) StartPractice(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (s *scriptedPractice) ChoosePart(ctx context.Context, userID uuid.UUID, part int) (*domain.Question, error) {
	return nil, nil
}

func (s *scriptedPractice) ConfirmReady(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (s *scriptedPractice) SubmitAnswer(ctx context.Context, userID uuid.UUID, answerText string) (*practice.Report, error) {
	return s.report, s.submitErr
}

func (s *scriptedPractice) FinishTurn(userID uuid.UUID) {
	s.finishCalls++
}

func (s *scriptedPractice) SessionState(userID uuid.UUID) practice.State {
	return s.state
}

func newTestBot(svc *scriptedPractice) (*Bot, *fakeSender) {
	out := &fakeSender{}
	b := &Bot{
		out:      out,
		practice: svc,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return b, out
}

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 42},
		From: &tgbotapi.User{ID: 7, FirstName: "Ana"},
		Text: text,
	}
}

func TestHandleText_IdleSessionGetsGuidanceOnly(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser(7, "Ana", nil)
	require.NoError(t, err)

	svc := &scriptedPractice{
		user:      user,
		state:     practice.StateIdle,
		submitErr: practice.ErrNoActiveSession,
	}
	b, out := newTestBot(svc)

	b.handleText(context.Background(), textMessage("hello bot"))

	texts := out.texts()
	require.Len(t, texts, 1)
	assert.Equal(t, guidanceFor(practice.ErrNoActiveSession), texts[0])
	assert.NotContains(t, texts[0], "Scoring your answer")
}

func TestHandleText_AwaitingAnswerAnnouncesScoring(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser(7, "Ana", nil)
	require.NoError(t, err)

	overall := 6.5
	response, err := domain.NewResponse(user.ID, uuid.New(), "I usually read in the evening.")
	require.NoError(t, err)
	response.OverallScore = &overall

	svc := &scriptedPractice{
		user:   user,
		state:  practice.StateAwaitingAnswer,
		report: &practice.Report{Response: response},
	}
	b, out := newTestBot(svc)

	b.handleText(context.Background(), textMessage("I usually read in the evening."))

	texts := out.texts()
	require.Len(t, texts, 2)
	assert.Contains(t, texts[0], "Scoring your answer")
	assert.Contains(t, texts[1], "Your scores")
	assert.Equal(t, 1, svc.finishCalls)
}
