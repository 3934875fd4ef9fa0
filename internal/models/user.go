package models

import "time"

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	TelegramChatID int64     `gorm:"not null;default:0" json:"telegram_chat_id"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (user User) RemindersEnabled() bool {
	return user.TelegramChatID != 0
}
