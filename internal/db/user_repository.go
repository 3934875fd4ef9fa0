package db

import (
	"context"

	"github.com/terraincognita07/ciclo/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(ctx context.Context, userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).First(&user, userID).Error; err != nil {
		return models.User{}, classifyError("find user", err)
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := repo.database.WithContext(ctx).
		Where("lower(trim(email)) = ?", email).
		First(&user).Error; err != nil {
		return models.User{}, classifyError("find user by email", err)
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(ctx context.Context, email string) (bool, error) {
	var matched int64
	if err := repo.database.WithContext(ctx).
		Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, classifyError("count users by email", err)
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(ctx context.Context, user *models.User) error {
	return classifyError("create user", repo.database.WithContext(ctx).Create(user).Error)
}

func (repo *UserRepository) UpdateTelegramChatID(ctx context.Context, userID uint, chatID int64) error {
	result := repo.database.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("telegram_chat_id", chatID)
	if result.Error != nil {
		return classifyError("update telegram chat id", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("update telegram chat id")
	}
	return nil
}

func (repo *UserRepository) UpdatePasswordHash(ctx context.Context, userID uint, passwordHash string) error {
	result := repo.database.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return classifyError("update password hash", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("update password hash")
	}
	return nil
}

func (repo *UserRepository) ListReminderRecipients(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.WithContext(ctx).
		Where("telegram_chat_id <> 0").
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, classifyError("list reminder recipients", err)
	}
	return users, nil
}
