package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/speakoai/speako-api/internal/domain"
	"github.com/speakoai/speako-api/internal/service/practice"
)

const leaderboardSize = 10

const welcomeText = `Welcome to Speako! 🎤

I help you practice IELTS speaking. Answer questions, get scored on
fluency, pronunciation, grammar and vocabulary, and track your progress.

Commands:
/practice - start a practice turn
/progress - your score statistics
/leaderboard - top practicers`

// resolveUser registers the sender on first contact and returns their
// account for every subsequent interaction.
func (b *Bot) resolveUser(ctx context.Context, from *tgbotapi.User) (*domain.User, error) {
	var username *string
	if from.UserName != "" {
		name := from.UserName
		username = &name
	}
	firstName := from.FirstName
	if firstName == "" {
		firstName = "there"
	}
	return b.practice.Register(ctx, from.ID, firstName, username)
}

// handleCommand dispatches bot commands.
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		b.logger.Error("failed to resolve user",
			slog.String("error", err.Error()),
			slog.Int64("telegram_id", message.From.ID))
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}

	switch message.Command() {
	case "start":
		b.reply(chatID, welcomeText)

	case "practice":
		if err := b.practice.StartPractice(ctx, user.ID); err != nil {
			b.logger.Error("failed to start practice",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			b.reply(chatID, "Something went wrong, please try again.")
			return
		}
		msg := tgbotapi.NewMessage(chatID, "Which part would you like to practice?")
		msg.ReplyMarkup = partKeyboard()
		b.send(msg)

	case "progress":
		b.sendProgress(ctx, chatID, user)

	case "leaderboard":
		b.sendLeaderboard(ctx, chatID)

	default:
		b.reply(chatID, "Unknown command. Use /practice to start practicing.")
	}
}

// handleCallbackQuery dispatches inline keyboard presses.
func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Acknowledge the press so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Debug("failed to answer callback query", slog.String("error", err.Error()))
	}

	chatID := callback.Message.Chat.ID

	user, err := b.resolveUser(ctx, callback.From)
	if err != nil {
		b.logger.Error("failed to resolve user",
			slog.String("error", err.Error()),
			slog.Int64("telegram_id", callback.From.ID))
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}

	switch callback.Data {
	case callbackPart1, callbackPart2, callbackPart3, callbackPartRandom:
		part := practice.PartRandom
		switch callback.Data {
		case callbackPart1:
			part = 1
		case callbackPart2:
			part = 2
		case callbackPart3:
			part = 3
		}

		question, err := b.practice.ChoosePart(ctx, user.ID, part)
		if err != nil {
			b.reply(chatID, guidanceFor(err))
			return
		}

		msg := tgbotapi.NewMessage(chatID, formatQuestion(question))
		msg.ReplyMarkup = answeredKeyboard()
		b.send(msg)

	case callbackAnswered:
		if err := b.practice.ConfirmReady(ctx, user.ID); err != nil {
			b.reply(chatID, guidanceFor(err))
			return
		}
		b.reply(chatID, "Great! Type your answer as a single message.")

	default:
		b.logger.Debug("unknown callback data", slog.String("data", callback.Data))
	}
}

// handleText treats free text as the answer to the presented question.
func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		b.logger.Error("failed to resolve user",
			slog.String("error", err.Error()),
			slog.Int64("telegram_id", message.From.ID))
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}

	// The progress notice is only warranted when an answer is expected;
	// any other state gets the guidance reply from SubmitAnswer alone.
	if b.practice.SessionState(user.ID) == practice.StateAwaitingAnswer {
		b.reply(chatID, "Scoring your answer, one moment... ⏳")
	}

	report, err := b.practice.SubmitAnswer(ctx, user.ID, message.Text)
	if err != nil {
		b.reply(chatID, guidanceFor(err))
		// A delivered failure notice ends the turn.
		b.practice.FinishTurn(user.ID)
		return
	}

	b.reply(chatID, formatReport(report))
	b.practice.FinishTurn(user.ID)
}

// sendProgress renders the user's analytics summary.
func (b *Bot) sendProgress(ctx context.Context, chatID int64, user *domain.User) {
	summary, err := b.analytics.UserSummary(ctx, user.ID)
	if err != nil {
		b.logger.Error("failed to build user summary",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}

	if summary.TotalResponses == 0 {
		b.reply(chatID, "No practice sessions yet. Use /practice to get started!")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Your progress, %s\n\n", summary.FirstName)
	fmt.Fprintf(&sb, "Answers submitted: %d\n", summary.TotalResponses)
	appendScoreLine(&sb, "Overall", summary.AverageOverall)
	appendScoreLine(&sb, "Fluency", summary.AverageFluency)
	appendScoreLine(&sb, "Pronunciation", summary.AveragePronunciation)
	appendScoreLine(&sb, "Grammar", summary.AverageGrammar)
	appendScoreLine(&sb, "Vocabulary", summary.AverageVocabulary)
	appendScoreLine(&sb, "Best score", summary.BestScore)

	if len(summary.RecentScores) > 0 {
		scores := make([]string, len(summary.RecentScores))
		for i, score := range summary.RecentScores {
			scores[i] = formatScore(score)
		}
		fmt.Fprintf(&sb, "Recent: %s\n", strings.Join(scores, ", "))
	}

	b.reply(chatID, sb.String())
}

// sendLeaderboard renders the ranked top practicers.
func (b *Bot) sendLeaderboard(ctx context.Context, chatID int64) {
	entries, err := b.analytics.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		b.logger.Error("failed to build leaderboard", slog.String("error", err.Error()))
		b.reply(chatID, "Something went wrong, please try again.")
		return
	}

	if len(entries) == 0 {
		b.reply(chatID, "The leaderboard is empty. Be the first with /practice!")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Leaderboard\n\n")
	for i, entry := range entries {
		fmt.Fprintf(&sb, "%d. %s — %s (%d answers)\n",
			i+1, entry.FirstName, formatScore(entry.AverageOverall), entry.TotalResponses)
	}

	b.reply(chatID, sb.String())
}

// SendPracticeReminder implements scheduler.Notifier. Telegram chat IDs
// equal user IDs for private chats.
func (b *Bot) SendPracticeReminder(telegramID int64, lastPracticed *time.Time) error {
	text := "👋 Ready for a speaking session? Use /practice to get a question."
	if lastPracticed != nil {
		days := int(time.Since(*lastPracticed).Hours() / 24)
		if days >= 1 {
			text = fmt.Sprintf("👋 It's been %d day(s) since your last practice. Use /practice to keep your streak going!", days)
		}
	}

	msg := tgbotapi.NewMessage(telegramID, text)
	if _, err := b.out.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}

// guidanceFor turns practice guard errors into chat guidance instead of
// error noise.
func guidanceFor(err error) string {
	switch {
	case errors.Is(err, practice.ErrNoActiveSession):
		return "No practice turn in progress. Use /practice to start one."
	case errors.Is(err, practice.ErrNotAwaitingPartChoice):
		return "I wasn't expecting a part choice. Use /practice to start over."
	case errors.Is(err, practice.ErrNotAwaitingReadiness):
		return "There's no question waiting for you. Use /practice to start a turn."
	case errors.Is(err, practice.ErrNotAwaitingAnswer):
		return "I wasn't expecting an answer right now. Use /practice to start a turn."
	case errors.Is(err, practice.ErrInvalidPart):
		return "That part doesn't exist. Pick part 1, 2 or 3."
	case errors.Is(err, practice.ErrNoQuestions):
		return "No questions available for that part yet. Try another one."
	case errors.Is(err, practice.ErrScoringFailed):
		return "Scoring didn't work out this time, and your answer was not saved. Please try again in a bit."
	default:
		return "Something went wrong, please try again."
	}
}

// formatQuestion renders a question message.
func formatQuestion(question *domain.Question) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗣 Part %d question:\n\n%s\n\n", question.Part, question.Text)
	sb.WriteString("Take a moment to speak your answer out loud, then press the button and type what you said.")
	return sb.String()
}

// formatReport renders the scored report message.
func formatReport(report *practice.Report) string {
	var sb strings.Builder
	sb.WriteString("✅ Your scores:\n\n")
	appendScoreLine(&sb, "Fluency", report.Response.FluencyScore)
	appendScoreLine(&sb, "Pronunciation", report.Response.PronunciationScore)
	appendScoreLine(&sb, "Grammar", report.Response.GrammarScore)
	appendScoreLine(&sb, "Vocabulary", report.Response.VocabularyScore)
	appendScoreLine(&sb, "Overall", report.Response.OverallScore)

	if report.Response.AIFeedback != nil && *report.Response.AIFeedback != "" {
		fmt.Fprintf(&sb, "\n💬 %s\n", *report.Response.AIFeedback)
	}

	if report.Summary != nil && report.Summary.AverageOverall != nil {
		fmt.Fprintf(&sb, "\nRunning average: %s over %d answers.",
			formatScore(*report.Summary.AverageOverall), report.Summary.TotalResponses)
	}

	return sb.String()
}

// appendScoreLine writes one "label: score" line, skipping absent scores.
func appendScoreLine(sb *strings.Builder, label string, score *float64) {
	if score == nil {
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", label, formatScore(*score))
}

// formatScore renders a band score with one decimal place.
func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}
