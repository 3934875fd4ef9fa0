package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/ciclo/internal/models"
	"go.uber.org/multierr"
)

const MaxFlowDurationDays = 14

var (
	ErrInvalidCycleInput  = errors.New("invalid cycle input")
	ErrCycleStartInFuture = errors.New("cycle start is in the future")
)

type CycleRepository interface {
	CycleReader
	FindByID(ctx context.Context, userID uint, cycleID string) (models.Cycle, error)
	Insert(ctx context.Context, cycle *models.Cycle) error
	UpdateFlowDuration(ctx context.Context, userID uint, cycleID string, days int) error
	Delete(ctx context.Context, userID uint, cycleID string) error
}

type CycleInput struct {
	StartDate        time.Time `validate:"required"`
	FlowDurationDays *int      `validate:"omitempty,min=1,max=14"`
}

type CycleService struct {
	cycles   CycleRepository
	validate *validator.Validate
}

func NewCycleService(cycles CycleRepository) *CycleService {
	return &CycleService{
		cycles:   cycles,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (service *CycleService) ListCycles(ctx context.Context, userID uint) ([]models.Cycle, error) {
	return service.cycles.ListByUser(ctx, userID)
}

// LogCycleStart records a new cycle start. The repository links it to its neighbours,
// closing whichever cycle precedes it.
func (service *CycleService) LogCycleStart(ctx context.Context, userID uint, input CycleInput, today time.Time) (models.Cycle, error) {
	if err := service.validateCycleInput(input); err != nil {
		return models.Cycle{}, err
	}
	if DaysBetween(today, input.StartDate) > 0 {
		return models.Cycle{}, ErrCycleStartInFuture
	}

	cycle := models.Cycle{
		UserID:           userID,
		StartDate:        calendarDay(input.StartDate),
		FlowDurationDays: input.FlowDurationDays,
	}
	if err := service.cycles.Insert(ctx, &cycle); err != nil {
		return models.Cycle{}, fmt.Errorf("insert cycle: %w", err)
	}
	return cycle, nil
}

func (service *CycleService) UpdateFlowDuration(ctx context.Context, userID uint, cycleID string, days int) (models.Cycle, error) {
	if days < 1 || days > MaxFlowDurationDays {
		return models.Cycle{}, ErrInvalidCycleInput
	}
	if err := service.cycles.UpdateFlowDuration(ctx, userID, cycleID, days); err != nil {
		return models.Cycle{}, fmt.Errorf("update flow duration: %w", err)
	}
	return service.cycles.FindByID(ctx, userID, cycleID)
}

func (service *CycleService) DeleteCycle(ctx context.Context, userID uint, cycleID string) error {
	if err := service.cycles.Delete(ctx, userID, cycleID); err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	return nil
}

func (service *CycleService) validateCycleInput(input CycleInput) error {
	if err := service.validate.Struct(input); err != nil {
		return multierr.Append(ErrInvalidCycleInput, err)
	}
	return nil
}
