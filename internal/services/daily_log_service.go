package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/ciclo/internal/models"
	"go.uber.org/multierr"
)

var (
	ErrInvalidDailyLogInput = errors.New("invalid daily log input")
	ErrInvalidDailyLogRange = errors.New("invalid daily log range")
)

type DailyLogRepository interface {
	Upsert(ctx context.Context, entry *models.DailyLog) error
	FindByUserAndDate(ctx context.Context, userID uint, day time.Time) (models.DailyLog, bool, error)
	ListByUserRange(ctx context.Context, userID uint, from time.Time, to time.Time) ([]models.DailyLog, error)
	DeleteByUserAndDate(ctx context.Context, userID uint, day time.Time) error
}

type DailyLogInput struct {
	Flow     string   `validate:"omitempty,oneof=none light medium heavy"`
	Symptoms []string `validate:"max=16,dive,required"`
	Moods    []string `validate:"max=16,dive,required"`
	Notes    string   `validate:"max=2000"`
}

type DailyLogService struct {
	logs     DailyLogRepository
	validate *validator.Validate
}

func NewDailyLogService(logs DailyLogRepository) *DailyLogService {
	return &DailyLogService{
		logs:     logs,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SaveDailyLog writes the log for day, replacing any log already stored for that date.
func (service *DailyLogService) SaveDailyLog(ctx context.Context, userID uint, day time.Time, input DailyLogInput) (models.DailyLog, error) {
	normalized := NormalizeDailyLogInput(input)
	if err := service.validateDailyLogInput(normalized); err != nil {
		return models.DailyLog{}, err
	}

	entry := models.DailyLog{
		UserID:   userID,
		Date:     calendarDay(day),
		Flow:     normalized.Flow,
		Symptoms: normalized.Symptoms,
		Moods:    normalized.Moods,
		Notes:    normalized.Notes,
	}
	if err := service.logs.Upsert(ctx, &entry); err != nil {
		return models.DailyLog{}, fmt.Errorf("upsert daily log: %w", err)
	}
	return entry, nil
}

// GetDailyLog returns the stored log or an empty entry when the day has none.
func (service *DailyLogService) GetDailyLog(ctx context.Context, userID uint, day time.Time) (models.DailyLog, error) {
	entry, found, err := service.logs.FindByUserAndDate(ctx, userID, calendarDay(day))
	if err != nil {
		return models.DailyLog{}, err
	}
	if !found {
		return models.DailyLog{
			UserID:   userID,
			Date:     calendarDay(day),
			Flow:     models.FlowNone,
			Symptoms: []string{},
			Moods:    []string{},
		}, nil
	}
	return entry, nil
}

func (service *DailyLogService) ListDailyLogs(ctx context.Context, userID uint, from time.Time, to time.Time) ([]models.DailyLog, error) {
	if DaysBetween(from, to) < 0 {
		return nil, ErrInvalidDailyLogRange
	}
	return service.logs.ListByUserRange(ctx, userID, calendarDay(from), calendarDay(to))
}

func (service *DailyLogService) DeleteDailyLog(ctx context.Context, userID uint, day time.Time) error {
	return service.logs.DeleteByUserAndDate(ctx, userID, calendarDay(day))
}

func NormalizeDailyLogInput(input DailyLogInput) DailyLogInput {
	flow := strings.ToLower(strings.TrimSpace(input.Flow))
	if flow == "" {
		flow = models.FlowNone
	}
	return DailyLogInput{
		Flow:     flow,
		Symptoms: normalizeOptionValues(input.Symptoms),
		Moods:    normalizeOptionValues(input.Moods),
		Notes:    strings.TrimSpace(input.Notes),
	}
}

func (service *DailyLogService) validateDailyLogInput(input DailyLogInput) error {
	var errs error
	if err := service.validate.Struct(input); err != nil {
		errs = multierr.Append(errs, err)
	}
	for _, symptom := range input.Symptoms {
		if !models.IsKnownOption(models.SymptomOptions(), symptom) {
			errs = multierr.Append(errs, fmt.Errorf("unknown symptom %q", symptom))
		}
	}
	for _, mood := range input.Moods {
		if !models.IsKnownOption(models.MoodOptions(), mood) {
			errs = multierr.Append(errs, fmt.Errorf("unknown mood %q", mood))
		}
	}
	if errs != nil {
		return multierr.Append(ErrInvalidDailyLogInput, errs)
	}
	return nil
}

func normalizeOptionValues(values []string) []string {
	normalized := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		candidate := strings.ToLower(strings.TrimSpace(value))
		if candidate == "" {
			continue
		}
		if _, exists := seen[candidate]; exists {
			continue
		}
		seen[candidate] = struct{}{}
		normalized = append(normalized, candidate)
	}
	return normalized
}
