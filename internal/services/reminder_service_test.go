package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/ciclo/internal/models"
)

func newReminderFixture(t *testing.T, options ReminderOptions) (*ReminderService, *reminderSenderStub, *cycleRepositoryStub) {
	t.Helper()

	users := newAuthUserRepositoryStub()
	users.users[1] = models.User{ID: 1, Email: "ana@example.com", TelegramChatID: 42}
	users.users[2] = models.User{ID: 2, Email: "bia@example.com"}

	cycles := &cycleRepositoryStub{cycles: []models.Cycle{
		makeCycle("2024-01-01", intPtr(5)),
		{ID: "other", UserID: 2, StartDate: mustParseDay("2024-01-01")},
	}}
	sender := &reminderSenderStub{}
	service := NewReminderService(users, NewOverviewService(cycles), sender, nil, options)
	return service, sender, cycles
}

func TestRunOnceSendsPeriodReminder(t *testing.T) {
	service, sender, _ := newReminderFixture(t, ReminderOptions{PeriodReminderDays: 2})

	sent := service.RunOnce(context.Background(), mustParseDay("2024-01-27"))

	require.Equal(t, 1, sent)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(42), sender.sent[0].chatID)
	assert.Contains(t, sender.sent[0].message, "2024-01-29")
}

func TestRunOnceSendsFertilityReminderWhenEnabled(t *testing.T) {
	service, sender, _ := newReminderFixture(t, ReminderOptions{PeriodReminderDays: 2, NotifyFertility: true})

	sent := service.RunOnce(context.Background(), mustParseDay("2024-01-10"))

	require.Equal(t, 1, sent)
	assert.Contains(t, sender.sent[0].message, "fertile window")
}

func TestRunOnceSkipsFertilityReminderWhenDisabled(t *testing.T) {
	service, sender, _ := newReminderFixture(t, ReminderOptions{PeriodReminderDays: 2})

	assert.Zero(t, service.RunOnce(context.Background(), mustParseDay("2024-01-10")))
	assert.Empty(t, sender.sent)
}

func TestRunOnceDeduplicatesWithinDay(t *testing.T) {
	service, sender, _ := newReminderFixture(t, ReminderOptions{PeriodReminderDays: 2})
	day := mustParseDay("2024-01-27")

	assert.Equal(t, 1, service.RunOnce(context.Background(), day))
	assert.Zero(t, service.RunOnce(context.Background(), day.Add(6*time.Hour)))
	assert.Len(t, sender.sent, 1)
}

func TestRunOnceRetriesAfterSendFailure(t *testing.T) {
	service, sender, _ := newReminderFixture(t, ReminderOptions{PeriodReminderDays: 2})
	day := mustParseDay("2024-01-27")

	sender.sendErr = errors.New("telegram down")
	assert.Zero(t, service.RunOnce(context.Background(), day))

	sender.sendErr = nil
	assert.Equal(t, 1, service.RunOnce(context.Background(), day))
}

func TestRunOnceIgnoresLateCycles(t *testing.T) {
	service, sender, _ := newReminderFixture(t, ReminderOptions{PeriodReminderDays: 1})

	assert.Zero(t, service.RunOnce(context.Background(), mustParseDay("2024-02-05")))
	assert.Empty(t, sender.sent)
}

func TestRunOnceSkipsUsersWithoutCycles(t *testing.T) {
	service, sender, cycles := newReminderFixture(t, ReminderOptions{PeriodReminderDays: 2, NotifyFertility: true})
	cycles.cycles = nil

	assert.Zero(t, service.RunOnce(context.Background(), mustParseDay("2024-01-27")))
	assert.Empty(t, sender.sent)
}

func TestRunOnceWithoutSenderIsNoop(t *testing.T) {
	service := NewReminderService(newAuthUserRepositoryStub(), NewOverviewService(&cycleRepositoryStub{}), nil, nil, ReminderOptions{})

	assert.Zero(t, service.RunOnce(context.Background(), mustParseDay("2024-01-27")))
}

func TestRunOnceDeduplicatesManyRecipientsWithinDay(t *testing.T) {
	users := newAuthUserRepositoryStub()
	cycles := &cycleRepositoryStub{}
	for id := uint(1); id <= 600; id++ {
		users.users[id] = models.User{ID: id, Email: fmt.Sprintf("user%d@example.com", id), TelegramChatID: int64(id)}
		cycles.cycles = append(cycles.cycles, models.Cycle{ID: fmt.Sprintf("cycle-%d", id), UserID: id, StartDate: mustParseDay("2024-01-01")})
	}
	sender := &reminderSenderStub{}
	service := NewReminderService(users, NewOverviewService(cycles), sender, nil, ReminderOptions{PeriodReminderDays: 2})
	day := mustParseDay("2024-01-27")

	assert.Equal(t, 600, service.RunOnce(context.Background(), day))
	assert.Zero(t, service.RunOnce(context.Background(), day.Add(6*time.Hour)))
	assert.Len(t, sender.sent, 600)
	assert.Equal(t, 600, service.trackedReminders())
}

func TestRunOncePrunesEarlierDays(t *testing.T) {
	service, _, _ := newReminderFixture(t, ReminderOptions{PeriodReminderDays: 2, NotifyFertility: true})

	assert.Equal(t, 1, service.RunOnce(context.Background(), mustParseDay("2024-01-10")))
	assert.Equal(t, 1, service.trackedReminders())

	assert.Equal(t, 1, service.RunOnce(context.Background(), mustParseDay("2024-01-27")))
	assert.Equal(t, 1, service.trackedReminders())
}

func TestNewReminderServiceRejectsZeroLeadDays(t *testing.T) {
	service, sender, _ := newReminderFixture(t, ReminderOptions{PeriodReminderDays: 0})

	assert.Equal(t, DefaultPeriodReminderDays, service.options.PeriodReminderDays)
	assert.Equal(t, 1, service.RunOnce(context.Background(), mustParseDay("2024-01-27")))
	assert.Len(t, sender.sent, 1)
}
