package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsAreLocalized(t *testing.T) {
	ta := newTestApp(t)

	response := ta.request(t, http.MethodGet, "/api/options?lang=en", nil, "")
	require.Equal(t, http.StatusOK, response.StatusCode)

	var payload struct {
		Language string       `json:"language"`
		Flows    []optionView `json:"flows"`
		Symptoms []optionView `json:"symptoms"`
		Moods    []optionView `json:"moods"`
	}
	decodeJSON(t, response, &payload)
	assert.Equal(t, "en", payload.Language)
	require.Len(t, payload.Flows, 4)
	assert.Equal(t, optionView{Value: "none", Label: "No flow"}, payload.Flows[0])
	assert.Contains(t, payload.Symptoms, optionView{Value: "cramps", Label: "Cramps"})
	assert.Contains(t, payload.Moods, optionView{Value: "tired", Label: "Tired"})
}

func TestUpdateTelegram(t *testing.T) {
	ta := newTestApp(t)
	token := ta.registerUser(t, "ana@example.com")

	response := ta.request(t, http.MethodPut, "/api/settings/telegram", map[string]any{"chat_id": 4242}, token)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var payload struct {
		ChatID           int64 `json:"telegram_chat_id"`
		RemindersEnabled bool  `json:"reminders_enabled"`
	}
	decodeJSON(t, response, &payload)
	assert.Equal(t, int64(4242), payload.ChatID)
	assert.True(t, payload.RemindersEnabled)

	missing := ta.request(t, http.MethodPut, "/api/settings/telegram", map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)
}
