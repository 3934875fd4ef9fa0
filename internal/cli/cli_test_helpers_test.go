package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/services"
)

const testPassword = "StrongPass1"

func seedUser(t *testing.T, dbPath string, email string) models.User {
	t.Helper()

	database, err := db.OpenSQLite(dbPath, nil)
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repos := db.NewRepositories(database)
	user, err := services.NewAuthService(repos.Users).Register(context.Background(), email, testPassword, time.Now())
	require.NoError(t, err)
	return user
}

func seedCycle(t *testing.T, dbPath string, userID uint, start time.Time) {
	t.Helper()

	database, err := db.OpenSQLite(dbPath, nil)
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	cycles := services.NewCycleService(db.NewRepositories(database).Cycles)
	_, err = cycles.LogCycleStart(context.Background(), userID, services.CycleInput{StartDate: start}, start)
	require.NoError(t, err)
}

func testDatabasePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "ciclo.db")
}
