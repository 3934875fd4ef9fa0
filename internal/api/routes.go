package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.ListCycles)
	cycles.Post("", handler.CreateCycle)
	cycles.Patch("/:id", handler.UpdateCycle)
	cycles.Delete("/:id", handler.DeleteCycle)

	api.Get("/overview", handler.AuthRequired, handler.GetOverview)
	api.Get("/calendar", handler.AuthRequired, handler.GetCalendar)

	logs := api.Group("/logs", handler.AuthRequired)
	logs.Get("", handler.ListDailyLogs)
	logs.Get("/:date", handler.GetDailyLog)
	logs.Put("/:date", handler.SaveDailyLog)
	logs.Delete("/:date", handler.DeleteDailyLog)

	api.Get("/options", handler.GetOptions)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Put("/telegram", handler.UpdateTelegram)
}
