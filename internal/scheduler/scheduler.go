// Package scheduler runs the periodic practice-reminder job: users who
// have not submitted an answer within the configured window get a nudge
// through the Notifier.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/speakoai/speako-api/internal/store"
)

// DefaultReminderWindow is how long a user may stay quiet before a
// reminder is due.
const DefaultReminderWindow = 24 * time.Hour

// checkTimeout bounds one full reminder sweep.
const checkTimeout = 2 * time.Minute

// Notifier delivers a practice reminder to a user. The bot implements
// this over Telegram.
type Notifier interface {
	SendPracticeReminder(telegramID int64, lastPracticed *time.Time) error
}

// Scheduler manages the periodic reminder job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     store.UserStore
	responses store.ResponseStore
	notifier  Notifier
	window    time.Duration
	logger    *slog.Logger
}

// New creates a scheduler. A non-positive window falls back to
// DefaultReminderWindow.
func New(
	users store.UserStore,
	responses store.ResponseStore,
	notifier Notifier,
	window time.Duration,
	log *slog.Logger,
) *Scheduler {
	if users == nil {
		panic("users store cannot be nil")
	}
	if responses == nil {
		panic("responses store cannot be nil")
	}
	if notifier == nil {
		panic("notifier cannot be nil")
	}
	if window <= 0 {
		window = DefaultReminderWindow
	}
	if log == nil {
		log = slog.Default()
	}

	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		users:     users,
		responses: responses,
		notifier:  notifier,
		window:    window,
		logger:    log.With(slog.String("component", "reminder_scheduler")),
	}
}

// Start begins running the hourly reminder sweep in the background.
func (s *Scheduler) Start() {
	if _, err := s.scheduler.Every(1).Hour().Do(s.remindInactiveUsers); err != nil {
		s.logger.Error("failed to schedule reminder job", slog.String("error", err.Error()))
		return
	}
	s.scheduler.StartAsync()
	s.logger.Info("reminder scheduler started", slog.Duration("window", s.window))
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// remindInactiveUsers is one sweep: every user whose latest response is
// older than the window (or who never answered) gets a reminder.
func (s *Scheduler) remindInactiveUsers() {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users for reminders", slog.String("error", err.Error()))
		return
	}

	cutoff := time.Now().UTC().Add(-s.window)
	var sent int
	for _, user := range users {
		responses, err := s.responses.ListByUser(ctx, user.ID)
		if err != nil {
			s.logger.Error("failed to list responses for reminder check",
				slog.String("error", err.Error()),
				slog.String("user_id", user.ID.String()))
			continue
		}

		var lastPracticed *time.Time
		if len(responses) > 0 {
			// Newest first per the store contract.
			lastPracticed = &responses[0].CreatedAt
		}
		if lastPracticed != nil && lastPracticed.After(cutoff) {
			continue
		}

		if err := s.notifier.SendPracticeReminder(user.TelegramID, lastPracticed); err != nil {
			s.logger.Error("failed to send practice reminder",
				slog.String("error", err.Error()),
				slog.Int64("telegram_id", user.TelegramID))
			continue
		}
		sent++
	}

	s.logger.Info("reminder sweep finished",
		slog.Int("users_checked", len(users)),
		slog.Int("reminders_sent", sent))
}
