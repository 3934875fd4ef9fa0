package db

import (
	"context"
	"time"

	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

// Upsert inserts the entry or overwrites the payload of the entry already stored for its date.
func (repo *DailyLogRepository) Upsert(ctx context.Context, entry *models.DailyLog) error {
	entry.Date = dayStart(entry.Date)
	if entry.Symptoms == nil {
		entry.Symptoms = []string{}
	}
	if entry.Moods == nil {
		entry.Moods = []string{}
	}

	err := repo.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"flow", "symptoms", "moods", "notes", "updated_at"}),
		}).
		Create(entry).Error
	return classifyError("upsert daily log", err)
}

func (repo *DailyLogRepository) FindByUserAndDate(ctx context.Context, userID uint, day time.Time) (models.DailyLog, bool, error) {
	from := dayStart(day)
	entry := models.DailyLog{}
	result := repo.database.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, from.AddDate(0, 0, 1)).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, classifyError("find daily log", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

// ListByUserRange returns logs whose date falls within [from, to], oldest first.
func (repo *DailyLogRepository) ListByUserRange(ctx context.Context, userID uint, from time.Time, to time.Time) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart(from), dayStart(to).AddDate(0, 0, 1)).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, classifyError("list daily logs", err)
	}
	return logs, nil
}

func (repo *DailyLogRepository) DeleteByUserAndDate(ctx context.Context, userID uint, day time.Time) error {
	from := dayStart(day)
	err := repo.database.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, from.AddDate(0, 0, 1)).
		Delete(&models.DailyLog{}).Error
	return classifyError("delete daily log", err)
}
