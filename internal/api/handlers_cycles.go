package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/services"
)

type cycleInput struct {
	StartDate        string `json:"start_date"`
	FlowDurationDays *int   `json:"flow_duration_days"`
}

type flowDurationInput struct {
	FlowDurationDays *int `json:"flow_duration_days"`
}

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cycles, err := handler.cycles.ListCycles(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"cycles": cycles})
}

func (handler *Handler) CreateCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input cycleInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	startDate, err := parseDay(input.StartDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid start_date")
	}

	cycle, err := handler.cycles.LogCycleStart(c.UserContext(), user.ID, services.CycleInput{
		StartDate:        startDate,
		FlowDurationDays: input.FlowDurationDays,
	}, handler.today())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cycle)
}

func (handler *Handler) UpdateCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input flowDurationInput
	if err := c.BodyParser(&input); err != nil || input.FlowDurationDays == nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	cycle, err := handler.cycles.UpdateFlowDuration(c.UserContext(), user.ID, c.Params("id"), *input.FlowDurationDays)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(cycle)
}

func (handler *Handler) DeleteCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.cycles.DeleteCycle(c.UserContext(), user.ID, c.Params("id")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
