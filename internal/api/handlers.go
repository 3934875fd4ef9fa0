package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/ciclo/internal/i18n"
	"github.com/terraincognita07/ciclo/internal/services"
	"go.uber.org/zap"
)

const (
	authTokenTTL        = 7 * 24 * time.Hour
	loginAttemptsLimit  = 5
	loginAttemptsWindow = 15 * time.Minute
)

type Dependencies struct {
	Auth      *services.AuthService
	Cycles    *services.CycleService
	DailyLogs *services.DailyLogService
	Overview  *services.OverviewService
	Calendar  *services.CalendarService
	I18n      *i18n.Manager
	Location  *time.Location
	Logger    *zap.Logger
	Now       func() time.Time
}

type Handler struct {
	secretKey    []byte
	auth         *services.AuthService
	cycles       *services.CycleService
	dailyLogs    *services.DailyLogService
	overview     *services.OverviewService
	calendar     *services.CalendarService
	i18n         *i18n.Manager
	location     *time.Location
	logger       *zap.Logger
	now          func() time.Time
	loginLimiter *attemptLimiter
}

func NewHandler(secret string, deps Dependencies) (*Handler, error) {
	if secret == "" {
		return nil, errors.New("secret key is required")
	}
	if deps.Auth == nil || deps.Cycles == nil || deps.DailyLogs == nil || deps.Overview == nil || deps.Calendar == nil {
		return nil, errors.New("all services are required")
	}
	if deps.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Handler{
		secretKey:    []byte(secret),
		auth:         deps.Auth,
		cycles:       deps.Cycles,
		dailyLogs:    deps.DailyLogs,
		overview:     deps.Overview,
		calendar:     deps.Calendar,
		i18n:         deps.I18n,
		location:     deps.Location,
		logger:       deps.Logger,
		now:          deps.Now,
		loginLimiter: newAttemptLimiter(),
	}, nil
}

// NewApp builds the fiber application with the standard middleware chain and every route.
func NewApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Ciclo",
		DisableStartupMessage: true,
		ErrorHandler:          handler.errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)

	RegisterRoutes(app, handler)
	return app
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) today() time.Time {
	return services.DateAtLocation(handler.now(), handler.location)
}

func (handler *Handler) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apiError(c, fiberErr.Code, fiberErr.Message)
	}
	handler.logger.Error("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}
