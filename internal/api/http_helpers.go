package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ciclo/internal/models"
	"github.com/terraincognita07/ciclo/internal/services"
	"go.uber.org/zap"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

var errInvalidDate = errors.New("invalid date")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps service and repository failures onto HTTP statuses. Anything
// unclassified is reported as unavailable storage, never as an empty result.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCycleInput):
		return apiError(c, fiber.StatusBadRequest, services.ErrInvalidCycleInput.Error())
	case errors.Is(err, services.ErrCycleStartInFuture):
		return apiError(c, fiber.StatusBadRequest, services.ErrCycleStartInFuture.Error())
	case errors.Is(err, services.ErrInvalidDailyLogInput):
		return apiError(c, fiber.StatusBadRequest, services.ErrInvalidDailyLogInput.Error())
	case errors.Is(err, services.ErrInvalidDailyLogRange):
		return apiError(c, fiber.StatusBadRequest, services.ErrInvalidDailyLogRange.Error())
	case errors.Is(err, models.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, models.ErrConflict):
		return apiError(c, fiber.StatusConflict, "already exists")
	}

	handler.logger.Error("request failed",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return apiError(c, fiber.StatusServiceUnavailable, models.ErrUnavailable.Error())
}

func parseDay(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dayLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return parsed, nil
}

func parseOptionalDay(raw string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return parseDay(raw)
}

func parseMonth(raw string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Date(fallback.Year(), fallback.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.ParseInLocation(monthLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return parsed, nil
}
