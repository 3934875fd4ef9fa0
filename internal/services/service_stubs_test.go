package services

import (
	"context"
	"sort"
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
)

type cycleRepositoryStub struct {
	cycles    []models.Cycle
	listErr   error
	insertErr error
	updateErr error
	deleteErr error
	inserted  []models.Cycle
}

func (stub *cycleRepositoryStub) ListByUser(_ context.Context, userID uint) ([]models.Cycle, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.Cycle, 0, len(stub.cycles))
	for _, cycle := range stub.cycles {
		if cycle.UserID == userID {
			result = append(result, cycle)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.After(result[j].StartDate)
	})
	return result, nil
}

func (stub *cycleRepositoryStub) FindByID(_ context.Context, userID uint, cycleID string) (models.Cycle, error) {
	for _, cycle := range stub.cycles {
		if cycle.UserID == userID && cycle.ID == cycleID {
			return cycle, nil
		}
	}
	return models.Cycle{}, models.NewRepositoryError(models.ErrorKindNotFound, "find cycle", nil)
}

func (stub *cycleRepositoryStub) Insert(_ context.Context, cycle *models.Cycle) error {
	if stub.insertErr != nil {
		return stub.insertErr
	}
	if cycle.ID == "" {
		cycle.ID = "cycle-" + FormatDay(cycle.StartDate)
	}
	stub.inserted = append(stub.inserted, *cycle)
	stub.cycles = append(stub.cycles, *cycle)
	return nil
}

func (stub *cycleRepositoryStub) UpdateFlowDuration(_ context.Context, userID uint, cycleID string, days int) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	for index := range stub.cycles {
		if stub.cycles[index].UserID == userID && stub.cycles[index].ID == cycleID {
			stub.cycles[index].FlowDurationDays = intPtr(days)
			return nil
		}
	}
	return models.NewRepositoryError(models.ErrorKindNotFound, "update cycle", nil)
}

func (stub *cycleRepositoryStub) Delete(_ context.Context, userID uint, cycleID string) error {
	if stub.deleteErr != nil {
		return stub.deleteErr
	}
	for index, cycle := range stub.cycles {
		if cycle.UserID == userID && cycle.ID == cycleID {
			stub.cycles = append(stub.cycles[:index], stub.cycles[index+1:]...)
			return nil
		}
	}
	return models.NewRepositoryError(models.ErrorKindNotFound, "delete cycle", nil)
}

type dailyLogRepositoryStub struct {
	entries   map[string]models.DailyLog
	upsertErr error
	findErr   error
	upserts   int
}

func newDailyLogRepositoryStub() *dailyLogRepositoryStub {
	return &dailyLogRepositoryStub{entries: make(map[string]models.DailyLog)}
}

func (stub *dailyLogRepositoryStub) Upsert(_ context.Context, entry *models.DailyLog) error {
	if stub.upsertErr != nil {
		return stub.upsertErr
	}
	stub.upserts++
	stub.entries[FormatDay(entry.Date)] = *entry
	return nil
}

func (stub *dailyLogRepositoryStub) FindByUserAndDate(_ context.Context, userID uint, day time.Time) (models.DailyLog, bool, error) {
	if stub.findErr != nil {
		return models.DailyLog{}, false, stub.findErr
	}
	entry, ok := stub.entries[FormatDay(day)]
	if !ok || entry.UserID != userID {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

func (stub *dailyLogRepositoryStub) ListByUserRange(_ context.Context, userID uint, from time.Time, to time.Time) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	for _, entry := range stub.entries {
		if entry.UserID != userID {
			continue
		}
		if DaysBetween(from, entry.Date) < 0 || DaysBetween(entry.Date, to) < 0 {
			continue
		}
		logs = append(logs, entry)
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
	return logs, nil
}

func (stub *dailyLogRepositoryStub) DeleteByUserAndDate(_ context.Context, userID uint, day time.Time) error {
	key := FormatDay(day)
	if entry, ok := stub.entries[key]; ok && entry.UserID == userID {
		delete(stub.entries, key)
	}
	return nil
}

type authUserRepositoryStub struct {
	users     map[uint]models.User
	nextID    uint
	createErr error
	findErr   error
}

func newAuthUserRepositoryStub() *authUserRepositoryStub {
	return &authUserRepositoryStub{users: make(map[uint]models.User), nextID: 1}
}

func (stub *authUserRepositoryStub) ExistsByNormalizedEmail(_ context.Context, email string) (bool, error) {
	for _, user := range stub.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (stub *authUserRepositoryStub) FindByNormalizedEmail(_ context.Context, email string) (models.User, error) {
	if stub.findErr != nil {
		return models.User{}, stub.findErr
	}
	for _, user := range stub.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, models.NewRepositoryError(models.ErrorKindNotFound, "find user", nil)
}

func (stub *authUserRepositoryStub) FindByID(_ context.Context, userID uint) (models.User, error) {
	user, ok := stub.users[userID]
	if !ok {
		return models.User{}, models.NewRepositoryError(models.ErrorKindNotFound, "find user", nil)
	}
	return user, nil
}

func (stub *authUserRepositoryStub) Create(_ context.Context, user *models.User) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	user.ID = stub.nextID
	stub.nextID++
	stub.users[user.ID] = *user
	return nil
}

func (stub *authUserRepositoryStub) UpdateTelegramChatID(_ context.Context, userID uint, chatID int64) error {
	user, ok := stub.users[userID]
	if !ok {
		return models.NewRepositoryError(models.ErrorKindNotFound, "update user", nil)
	}
	user.TelegramChatID = chatID
	stub.users[userID] = user
	return nil
}

func (stub *authUserRepositoryStub) UpdatePasswordHash(_ context.Context, userID uint, passwordHash string) error {
	user, ok := stub.users[userID]
	if !ok {
		return models.NewRepositoryError(models.ErrorKindNotFound, "update user", nil)
	}
	user.PasswordHash = passwordHash
	stub.users[userID] = user
	return nil
}

func (stub *authUserRepositoryStub) ListReminderRecipients(_ context.Context) ([]models.User, error) {
	recipients := make([]models.User, 0)
	for _, user := range stub.users {
		if user.RemindersEnabled() {
			recipients = append(recipients, user)
		}
	}
	sort.Slice(recipients, func(i, j int) bool {
		return recipients[i].ID < recipients[j].ID
	})
	return recipients, nil
}

type sentReminder struct {
	chatID  int64
	message string
}

type reminderSenderStub struct {
	sent    []sentReminder
	sendErr error
}

func (stub *reminderSenderStub) Send(_ context.Context, chatID int64, message string) error {
	if stub.sendErr != nil {
		return stub.sendErr
	}
	stub.sent = append(stub.sent, sentReminder{chatID: chatID, message: message})
	return nil
}
