package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/services"
)

type overviewResponse struct {
	services.CycleOverview
	Language   string `json:"language"`
	PhaseLabel string `json:"phase_label,omitempty"`
	Message    string `json:"message,omitempty"`
}

func (handler *Handler) GetOverview(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	today, err := parseOptionalDay(c.Query("date"), handler.today())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	overview, err := handler.overview.BuildOverview(c.UserContext(), user.ID, today)
	if err != nil {
		return handler.respondServiceError(c, err)
	}

	language := currentLanguage(c)
	response := overviewResponse{
		CycleOverview: overview,
		Language:      language,
	}
	if overview.Current != nil {
		response.PhaseLabel = handler.i18n.PhaseLabel(language, string(overview.Current.CurrentPhase))
	} else {
		response.Message = handler.i18n.Translate(language, "overview.no_data")
	}
	return c.JSON(response)
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	today := handler.today()
	month, err := parseMonth(c.Query("month"), today)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	days, err := handler.calendar.BuildMonth(c.UserContext(), user.ID, month, today)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"month": month.Format(monthLayout),
		"days":  days,
	})
}
