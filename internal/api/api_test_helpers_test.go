package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/i18n"
	"github.com/terraincognita07/ciclo/internal/services"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type testClock struct {
	current time.Time
}

func (clock *testClock) Now() time.Time {
	return clock.current
}

type testApp struct {
	app      *fiber.App
	database *gorm.DB
	clock    *testClock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ciclo-api.db"), nil)
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager(i18n.LangPT)
	require.NoError(t, err)

	repos := db.NewRepositories(database)
	clock := &testClock{current: time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)}
	handler, err := NewHandler(testSecretKey, Dependencies{
		Auth:      services.NewAuthService(repos.Users),
		Cycles:    services.NewCycleService(repos.Cycles),
		DailyLogs: services.NewDailyLogService(repos.DailyLogs),
		Overview:  services.NewOverviewService(repos.Cycles),
		Calendar:  services.NewCalendarService(repos.Cycles, repos.DailyLogs),
		I18n:      i18nManager,
		Location:  time.UTC,
		Now:       clock.Now,
	})
	require.NoError(t, err)

	return &testApp{app: NewApp(handler), database: database, clock: clock}
}

func (ta *testApp) request(t *testing.T, method string, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	response, err := ta.app.Test(request, -1)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func (ta *testApp) registerUser(t *testing.T, email string) string {
	t.Helper()

	response := ta.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "StrongPass1",
	}, "")
	require.Equal(t, http.StatusCreated, response.StatusCode)

	var payload authResponse
	decodeJSON(t, response, &payload)
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(response.Body).Decode(target))
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()

	payload := map[string]string{}
	decodeJSON(t, response, &payload)
	return payload["error"]
}
