// Package bot is the Telegram front-end. It translates chat updates
// into practice and analytics service calls and renders the results;
// every domain decision is delegated, the bot holds no state beyond
// the API client itself.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/speakoai/speako-api/internal/service/analytics"
	"github.com/speakoai/speako-api/internal/service/practice"
)

// Callback data values for the inline keyboards.
const (
	callbackPart1      = "part_1"
	callbackPart2      = "part_2"
	callbackPart3      = "part_3"
	callbackPartRandom = "part_random"
	callbackAnswered   = "answered"
)

const updateTimeoutSeconds = 60

// sender is the outbound half of the Telegram API. The live client
// satisfies it; tests substitute a capture.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot wires the Telegram API to the practice and analytics services.
type Bot struct {
	api       *tgbotapi.BotAPI
	out       sender
	practice  practice.Service
	analytics analytics.Service
	logger    *slog.Logger
}

// New creates the bot and authorizes against the Telegram API.
func New(
	token string,
	practiceService practice.Service,
	analyticsService analytics.Service,
	log *slog.Logger,
) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if practiceService == nil {
		panic("practice service cannot be nil")
	}
	if analyticsService == nil {
		panic("analytics service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Bot{
		api:       api,
		out:       api,
		practice:  practiceService,
		analytics: analyticsService,
		logger:    log.With(slog.String("component", "telegram_bot")),
	}, nil
}

// Start consumes the update stream until the context is cancelled.
// Each update is handled in its own goroutine; per-user ordering is
// enforced by the practice service's session guards, not here.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("bot authorized", slog.String("username", b.api.Self.UserName))

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = updateTimeoutSeconds
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches one Telegram update.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic while handling update", slog.Any("panic", r))
		}
	}()

	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.handleText(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	}
}

// send delivers a message, logging delivery failures instead of
// propagating them; there is nobody upstream to answer to.
func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.out.Send(msg); err != nil {
		b.logger.Error("failed to send telegram message", slog.String("error", err.Error()))
	}
}

// reply sends plain text to a chat.
func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// partKeyboard is the inline keyboard for choosing a speaking part.
func partKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Part 1", callbackPart1),
			tgbotapi.NewInlineKeyboardButtonData("Part 2", callbackPart2),
			tgbotapi.NewInlineKeyboardButtonData("Part 3", callbackPart3),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Surprise me", callbackPartRandom),
		),
	)
}

// answeredKeyboard is the inline keyboard shown under a question.
func answeredKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("I've answered", callbackAnswered),
		),
	)
}
