package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/ciclo/internal/services"
)

func TestOverviewWithoutCycles(t *testing.T) {
	ta := newTestApp(t)
	token := ta.registerUser(t, "ana@example.com")

	response := ta.request(t, http.MethodGet, "/api/overview", nil, token)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var payload overviewResponse
	decodeJSON(t, response, &payload)
	assert.False(t, payload.HasData)
	assert.Nil(t, payload.Prediction)
	assert.Nil(t, payload.Current)
	assert.Equal(t, "pt", payload.Language)
	assert.NotEmpty(t, payload.Message)
}

func TestOverviewForReferenceDate(t *testing.T) {
	ta := newTestApp(t)
	token := ta.registerUser(t, "ana@example.com")
	createCycle(t, ta, token, "2024-01-01")

	response := ta.request(t, http.MethodGet, "/api/overview?date=2024-01-15", nil, token)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var payload overviewResponse
	decodeJSON(t, response, &payload)
	require.True(t, payload.HasData)
	require.NotNil(t, payload.Current)
	require.NotNil(t, payload.Prediction)

	assert.Equal(t, 15, payload.Current.CurrentDay)
	assert.Equal(t, services.PhaseOvulation, payload.Current.CurrentPhase)
	assert.Equal(t, 14, payload.Current.DaysUntilNextPeriod)
	assert.Equal(t, "2024-01-29", services.FormatDay(payload.Prediction.NextPeriodStartDate))
	assert.Equal(t, "Ovulação", payload.PhaseLabel)
}

func TestOverviewUsesRequestedLanguage(t *testing.T) {
	ta := newTestApp(t)
	token := ta.registerUser(t, "ana@example.com")
	createCycle(t, ta, token, "2024-01-01")

	response := ta.request(t, http.MethodGet, "/api/overview?date=2024-01-20&lang=en", nil, token)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "en", response.Header.Get("Content-Language"))

	var payload overviewResponse
	decodeJSON(t, response, &payload)
	assert.Equal(t, "Luteal", payload.PhaseLabel)
}

func TestOverviewRejectsInvalidDate(t *testing.T) {
	ta := newTestApp(t)
	token := ta.registerUser(t, "ana@example.com")

	response := ta.request(t, http.MethodGet, "/api/overview?date=2024-13-40", nil, token)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}

func TestOverviewReportsUnavailableStorage(t *testing.T) {
	ta := newTestApp(t)
	token := ta.registerUser(t, "ana@example.com")

	sqlDB, err := ta.database.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	response := ta.request(t, http.MethodGet, "/api/overview", nil, token)
	assert.Equal(t, http.StatusServiceUnavailable, response.StatusCode)
	assert.Equal(t, "data unavailable", readAPIError(t, response))
}

func TestCalendarMonth(t *testing.T) {
	ta := newTestApp(t)
	token := ta.registerUser(t, "ana@example.com")
	createCycle(t, ta, token, "2024-01-01")

	response := ta.request(t, http.MethodGet, "/api/calendar?month=2024-01", nil, token)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var payload struct {
		Month string                 `json:"month"`
		Days  []services.CalendarDay `json:"days"`
	}
	decodeJSON(t, response, &payload)
	assert.Equal(t, "2024-01", payload.Month)
	require.Len(t, payload.Days, 35)
	assert.True(t, payload.Days[1].IsCycleStart)
	assert.True(t, payload.Days[10].IsToday)
	assert.True(t, payload.Days[15].IsOvulation)
}

func TestCalendarRejectsInvalidMonth(t *testing.T) {
	ta := newTestApp(t)
	token := ta.registerUser(t, "ana@example.com")

	response := ta.request(t, http.MethodGet, "/api/calendar?month=January", nil, token)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
}
