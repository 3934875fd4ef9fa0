package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/services"
	"go.uber.org/zap"
)

type ForecastOptions struct {
	DBPath   string
	Email    string
	Date     string
	Location *time.Location
	Logger   *zap.Logger
}

// RunForecastCommand prints the cycle overview of one user as indented JSON.
func RunForecastCommand(ctx context.Context, out io.Writer, options ForecastOptions) error {
	email := services.NormalizeEmail(options.Email)
	if email == "" {
		return errors.New("email is required")
	}

	today := services.DateAtLocation(time.Now(), options.Location)
	if raw := strings.TrimSpace(options.Date); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
		}
		today = parsed
	}

	database, err := db.OpenSQLite(options.DBPath, options.Logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	repos := db.NewRepositories(database)
	user, err := repos.Users.FindByNormalizedEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("user %s not found", email)
		}
		return fmt.Errorf("load user: %w", err)
	}

	overview, err := services.NewOverviewService(repos.Cycles).BuildOverview(ctx, user.ID, today)
	if err != nil {
		return fmt.Errorf("build overview: %w", err)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(overview)
}
