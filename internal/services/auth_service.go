package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/ciclo/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("weak password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(ctx context.Context, email string) (bool, error)
	FindByNormalizedEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, userID uint) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateTelegramChatID(ctx context.Context, userID uint, chatID int64) error
	UpdatePasswordHash(ctx context.Context, userID uint, passwordHash string) error
}

type AuthService struct {
	users    AuthUserRepository
	validate *validator.Validate
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{
		users:    users,
		validate: validator.New(),
	}
}

func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return ErrWeakPassword
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if hasUpper && hasLower && hasDigit {
		return nil
	}
	return ErrWeakPassword
}

func (service *AuthService) Register(ctx context.Context, rawEmail string, password string, now time.Time) (models.User, error) {
	email := NormalizeEmail(rawEmail)
	if err := service.validate.Var(email, "required,email,max=254"); err != nil {
		return models.User{}, ErrInvalidEmail
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		CreatedAt:    now.UTC(),
	}
	if err := service.users.Create(ctx, &user); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate never distinguishes an unknown email from a wrong password.
func (service *AuthService) Authenticate(ctx context.Context, rawEmail string, password string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(ctx, NormalizeEmail(rawEmail))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(ctx context.Context, userID uint) (models.User, error) {
	return service.users.FindByID(ctx, userID)
}

func (service *AuthService) UpdateTelegramChatID(ctx context.Context, userID uint, chatID int64) error {
	return service.users.UpdateTelegramChatID(ctx, userID, chatID)
}

// ResetPassword replaces the password of the account registered under rawEmail.
func (service *AuthService) ResetPassword(ctx context.Context, rawEmail string, password string) (models.User, error) {
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(ctx, NormalizeEmail(rawEmail))
	if err != nil {
		return models.User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePasswordHash(ctx, user.ID, string(passwordHash)); err != nil {
		return models.User{}, err
	}
	user.PasswordHash = string(passwordHash)
	return user, nil
}
