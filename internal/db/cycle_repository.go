package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

// ListByUser returns the user's cycles most recent first.
func (repo *CycleRepository) ListByUser(ctx context.Context, userID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&cycles).Error; err != nil {
		return nil, classifyError("list cycles", err)
	}
	return cycles, nil
}

func (repo *CycleRepository) FindByID(ctx context.Context, userID uint, cycleID string) (models.Cycle, error) {
	var cycle models.Cycle
	if err := repo.database.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, cycleID).
		First(&cycle).Error; err != nil {
		return models.Cycle{}, classifyError("find cycle", err)
	}
	return cycle, nil
}

// Insert stores cycle and keeps end dates consistent with its neighbours: the cycle
// before it ends the day before cycle starts, and cycle ends the day before the next one.
func (repo *CycleRepository) Insert(ctx context.Context, cycle *models.Cycle) error {
	if cycle.ID == "" {
		cycle.ID = uuid.NewString()
	}
	cycle.StartDate = dayStart(cycle.StartDate)

	err := repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, hasNext, err := findNeighbour(tx, cycle.UserID, "start_date > ?", cycle.StartDate, "start_date ASC")
		if err != nil {
			return err
		}
		cycle.EndDate = nil
		if hasNext {
			end := next.StartDate.AddDate(0, 0, -1)
			cycle.EndDate = &end
		}

		if err := tx.Create(cycle).Error; err != nil {
			return err
		}

		previous, hasPrevious, err := findNeighbour(tx, cycle.UserID, "start_date < ?", cycle.StartDate, "start_date DESC")
		if err != nil || !hasPrevious {
			return err
		}
		previousEnd := cycle.StartDate.AddDate(0, 0, -1)
		return tx.Model(&models.Cycle{}).
			Where("id = ?", previous.ID).
			Update("end_date", previousEnd).Error
	})
	return classifyError("insert cycle", err)
}

func (repo *CycleRepository) UpdateFlowDuration(ctx context.Context, userID uint, cycleID string, days int) error {
	result := repo.database.WithContext(ctx).
		Model(&models.Cycle{}).
		Where("user_id = ? AND id = ?", userID, cycleID).
		Update("flow_duration_days", days)
	if result.Error != nil {
		return classifyError("update cycle flow duration", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("update cycle flow duration")
	}
	return nil
}

// Delete removes the cycle and hands its end date to the cycle before it, re-opening
// that cycle when the deleted one was the latest.
func (repo *CycleRepository) Delete(ctx context.Context, userID uint, cycleID string) error {
	err := repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.Cycle
		if err := tx.Where("user_id = ? AND id = ?", userID, cycleID).First(&target).Error; err != nil {
			return err
		}

		previous, hasPrevious, err := findNeighbour(tx, userID, "start_date < ?", target.StartDate, "start_date DESC")
		if err != nil {
			return err
		}

		if err := tx.Delete(&models.Cycle{}, "id = ?", target.ID).Error; err != nil {
			return err
		}
		if !hasPrevious {
			return nil
		}
		return tx.Model(&models.Cycle{}).
			Where("id = ?", previous.ID).
			Update("end_date", target.EndDate).Error
	})
	return classifyError("delete cycle", err)
}

func findNeighbour(tx *gorm.DB, userID uint, condition string, startDate time.Time, order string) (models.Cycle, bool, error) {
	var neighbour models.Cycle
	result := tx.
		Where("user_id = ?", userID).
		Where(condition, startDate).
		Order(order).
		Limit(1).
		Find(&neighbour)
	if result.Error != nil {
		return models.Cycle{}, false, result.Error
	}
	return neighbour, result.RowsAffected > 0, nil
}
