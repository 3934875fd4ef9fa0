package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/services"
)

const defaultLogRangeDays = 30

type dailyLogInput struct {
	Flow     string   `json:"flow"`
	Symptoms []string `json:"symptoms"`
	Moods    []string `json:"moods"`
	Notes    string   `json:"notes"`
}

func (handler *Handler) ListDailyLogs(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	today := handler.today()
	to, err := parseOptionalDay(c.Query("to"), today)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}
	from, err := parseOptionalDay(c.Query("from"), services.AddDays(to, -defaultLogRangeDays))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}

	logs, err := handler.dailyLogs.ListDailyLogs(c.UserContext(), user.ID, from, to)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"from": services.FormatDay(from),
		"to":   services.FormatDay(to),
		"logs": logs,
	})
}

func (handler *Handler) GetDailyLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, err := parseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, err := handler.dailyLogs.GetDailyLog(c.UserContext(), user.ID, day)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) SaveDailyLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, err := parseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	var input dailyLogInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, err := handler.dailyLogs.SaveDailyLog(c.UserContext(), user.ID, day, services.DailyLogInput{
		Flow:     input.Flow,
		Symptoms: input.Symptoms,
		Moods:    input.Moods,
		Notes:    input.Notes,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteDailyLog(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, err := parseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if err := handler.dailyLogs.DeleteDailyLog(c.UserContext(), user.ID, day); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
