package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/observability"
	"go.uber.org/zap"
)

const (
	ReminderTypePeriod    = "period"
	ReminderTypeFertility = "fertility"

	DefaultReminderInterval   = 6 * time.Hour
	DefaultPeriodReminderDays = 2
)

type ReminderSender interface {
	Send(ctx context.Context, chatID int64, message string) error
}

type ReminderRecipientLister interface {
	ListReminderRecipients(ctx context.Context) ([]models.User, error)
}

type OverviewBuilder interface {
	BuildOverview(ctx context.Context, userID uint, today time.Time) (CycleOverview, error)
}

type ReminderOptions struct {
	Interval           time.Duration
	PeriodReminderDays int
	NotifyFertility    bool
	Location           *time.Location
}

type ReminderService struct {
	users     ReminderRecipientLister
	overviews OverviewBuilder
	sender    ReminderSender
	logger    *zap.Logger
	options   ReminderOptions

	mu   sync.Mutex
	sent map[string]time.Time
}

func NewReminderService(users ReminderRecipientLister, overviews OverviewBuilder, sender ReminderSender, logger *zap.Logger, options ReminderOptions) *ReminderService {
	if options.Interval <= 0 {
		options.Interval = DefaultReminderInterval
	}
	if options.PeriodReminderDays < 1 {
		options.PeriodReminderDays = DefaultPeriodReminderDays
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ReminderService{
		users:     users,
		overviews: overviews,
		sender:    sender,
		logger:    logger,
		options:   options,
		sent:      make(map[string]time.Time),
	}
}

// Start runs one pass immediately and then one per interval until ctx is cancelled.
func (service *ReminderService) Start(ctx context.Context) {
	if service.sender == nil {
		service.logger.Info("reminders disabled: no sender configured")
		return
	}

	ticker := time.NewTicker(service.options.Interval)
	go func() {
		defer ticker.Stop()

		service.RunOnce(ctx, time.Now())
		for {
			select {
			case <-ctx.Done():
				return
			case tick := <-ticker.C:
				service.RunOnce(ctx, tick)
			}
		}
	}()
}

// RunOnce evaluates every opted-in user against now and returns how many messages were sent.
func (service *ReminderService) RunOnce(ctx context.Context, now time.Time) int {
	if service.sender == nil {
		return 0
	}

	recipients, err := service.users.ListReminderRecipients(ctx)
	if err != nil {
		service.logger.Error("list reminder recipients failed", zap.Error(err))
		return 0
	}

	today := DateAtLocation(now, service.options.Location)
	service.pruneSentBefore(today)
	sent := 0
	for _, user := range recipients {
		if !user.RemindersEnabled() {
			continue
		}

		overview, err := service.overviews.BuildOverview(ctx, user.ID, today)
		if err != nil {
			service.logger.Warn("build overview for reminder failed", zap.Uint("user_id", user.ID), zap.Error(err))
			continue
		}
		if !overview.HasData {
			continue
		}

		for _, reminder := range service.dueReminders(overview) {
			if !service.markSent(reminder.kind, user.ID, today) {
				continue
			}
			if err := service.sender.Send(ctx, user.TelegramChatID, reminder.message); err != nil {
				service.forget(reminder.kind, user.ID)
				service.logger.Warn("send reminder failed",
					zap.Uint("user_id", user.ID),
					zap.String("type", reminder.kind),
					zap.Error(err),
				)
				continue
			}
			observability.RecordReminderSent(reminder.kind)
			sent++
		}
	}
	return sent
}

type dueReminder struct {
	kind    string
	message string
}

func (service *ReminderService) dueReminders(overview CycleOverview) []dueReminder {
	due := make([]dueReminder, 0, 2)
	prediction := overview.Prediction
	current := overview.Current
	if prediction == nil || current == nil {
		return due
	}

	if current.CurrentPhase != PhaseUnknown && current.DaysUntilNextPeriod == service.options.PeriodReminderDays {
		due = append(due, dueReminder{
			kind: ReminderTypePeriod,
			message: fmt.Sprintf("Ciclo reminder: your next period is expected in %d day(s), on %s.",
				current.DaysUntilNextPeriod,
				FormatDay(prediction.NextPeriodStartDate),
			),
		})
	}
	if service.options.NotifyFertility && sameDay(overview.Today, prediction.FertileWindowStart) {
		due = append(due, dueReminder{
			kind: ReminderTypeFertility,
			message: fmt.Sprintf("Ciclo reminder: your fertile window starts today (%s).",
				FormatDay(prediction.FertileWindowStart),
			),
		})
	}
	return due
}

func reminderKey(kind string, userID uint) string {
	return fmt.Sprintf("%s:%d", kind, userID)
}

func (service *ReminderService) markSent(kind string, userID uint, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	key := reminderKey(kind, userID)
	if sentOn, ok := service.sent[key]; ok && sameDay(sentOn, today) {
		return false
	}

	service.sent[key] = today
	return true
}

// pruneSentBefore drops dedupe entries recorded on any day other than today.
func (service *ReminderService) pruneSentBefore(today time.Time) {
	service.mu.Lock()
	defer service.mu.Unlock()

	for key, sentOn := range service.sent {
		if !sameDay(sentOn, today) {
			delete(service.sent, key)
		}
	}
}

func (service *ReminderService) trackedReminders() int {
	service.mu.Lock()
	defer service.mu.Unlock()
	return len(service.sent)
}

func (service *ReminderService) forget(kind string, userID uint) {
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.sent, reminderKey(kind, userID))
}
