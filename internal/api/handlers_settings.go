package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/models"
)

type optionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type telegramInput struct {
	ChatID *int64 `json:"chat_id"`
}

func (handler *Handler) GetOptions(c *fiber.Ctx) error {
	language := currentLanguage(c)
	return c.JSON(fiber.Map{
		"language": language,
		"flows":    handler.optionViews(language, "flow", models.FlowOptions()),
		"symptoms": handler.optionViews(language, "symptom", models.SymptomOptions()),
		"moods":    handler.optionViews(language, "mood", models.MoodOptions()),
	})
}

func (handler *Handler) optionViews(language string, group string, values []string) []optionView {
	views := make([]optionView, 0, len(values))
	for _, value := range values {
		views = append(views, optionView{
			Value: value,
			Label: handler.i18n.OptionLabel(language, group, value),
		})
	}
	return views
}

// UpdateTelegram stores the chat that receives reminders; a zero chat_id turns them off.
func (handler *Handler) UpdateTelegram(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input telegramInput
	if err := c.BodyParser(&input); err != nil || input.ChatID == nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.auth.UpdateTelegramChatID(c.UserContext(), user.ID, *input.ChatID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"telegram_chat_id":  *input.ChatID,
		"reminders_enabled": *input.ChatID != 0,
	})
}
