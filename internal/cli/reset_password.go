package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/security"
	"github.com/terraincognita07/ciclo/internal/services"
	"go.uber.org/zap"
)

const (
	temporaryPasswordAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	maxPasswordGenerationTries = 32
)

type ResetPasswordOptions struct {
	DBPath   string
	Email    string
	Generate bool
	Logger   *zap.Logger
}

// RunResetPasswordCommand sets a new password for an account, either typed at the
// terminal or generated when options.Generate is set.
func RunResetPasswordCommand(ctx context.Context, in *os.File, out io.Writer, options ResetPasswordOptions) error {
	email := services.NormalizeEmail(options.Email)
	if email == "" {
		return errors.New("email is required")
	}

	var password string
	var err error
	if options.Generate {
		password, err = generateTemporaryPassword(12)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
	} else {
		password, err = promptNewPassword(in, out)
		if err != nil {
			return err
		}
	}

	database, err := db.OpenSQLite(options.DBPath, options.Logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	auth := services.NewAuthService(db.NewRepositories(database).Users)
	if _, err := auth.ResetPassword(ctx, email, password); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return fmt.Errorf("user %s not found", email)
		case errors.Is(err, services.ErrWeakPassword):
			return errors.New("password must have at least 8 characters with upper, lower case letters and a digit")
		}
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	if options.Generate {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
	}
	return nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	for attempt := 0; attempt < maxPasswordGenerationTries; attempt++ {
		candidate, err := security.RandomString(length, temporaryPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(candidate) == nil {
			return candidate, nil
		}
	}
	return "", errors.New("could not generate a password satisfying the policy")
}
