package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/terraincognita07/ciclo/internal/api"
	"github.com/terraincognita07/ciclo/internal/cli"
	"github.com/terraincognita07/ciclo/internal/config"
	"github.com/terraincognita07/ciclo/internal/db"
	"github.com/terraincognita07/ciclo/internal/i18n"
	"github.com/terraincognita07/ciclo/internal/services"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	commandServe         = "serve"
	commandForecast      = "forecast"
	commandResetPassword = "reset-password"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	command, rest := splitCommand(args)
	switch command {
	case commandServe:
		return runServe()
	case commandForecast:
		return runForecast(rest)
	case commandResetPassword:
		return runResetPassword(rest)
	default:
		return fmt.Errorf("unknown command %q (expected %s, %s or %s)", command, commandServe, commandForecast, commandResetPassword)
	}
}

func splitCommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return commandServe, args
	}
	return args[0], args[1:]
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	time.Local = cfg.Location

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	repos, store, err := openStore(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("database close failed", zap.Error(err))
		}
	}()

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	overview := services.NewOverviewService(repos.Cycles)
	handler, err := api.NewHandler(cfg.SecretKey, api.Dependencies{
		Auth:      services.NewAuthService(repos.Users),
		Cycles:    services.NewCycleService(repos.Cycles),
		DailyLogs: services.NewDailyLogService(repos.DailyLogs),
		Overview:  overview,
		Calendar:  services.NewCalendarService(repos.Cycles, repos.DailyLogs),
		I18n:      i18nManager,
		Location:  cfg.Location,
		Logger:    logger.Named("api"),
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	if cfg.Reminders.Enabled() {
		sender, err := services.NewTelegramSender(cfg.Reminders.TelegramBotToken)
		if err != nil {
			logger.Warn("telegram reminders disabled", zap.Error(err))
		} else {
			reminders := services.NewReminderService(repos.Users, overview, sender, logger.Named("reminders"), services.ReminderOptions{
				Interval:           cfg.Reminders.Interval,
				PeriodReminderDays: cfg.Reminders.PeriodDays,
				NotifyFertility:    cfg.Reminders.NotifyFertility,
				Location:           cfg.Location,
			})
			reminders.Start(lifecycleCtx)
		}
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("ciclo listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("db", cfg.DBPath),
		zap.String("tz", cfg.Location.String()),
		zap.Bool("reminders", cfg.Reminders.Enabled()),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// openStore opens the database and returns its repositories with the handle to close on exit.
func openStore(dbPath string, logger *zap.Logger) (*db.Repositories, io.Closer, error) {
	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database handle: %w", err)
	}
	return db.NewRepositories(database), sqlDB, nil
}

type forecastArgs struct {
	email string
	date  string
}

func parseForecastArgs(args []string, output io.Writer) (forecastArgs, error) {
	flags := flag.NewFlagSet(commandForecast, flag.ContinueOnError)
	flags.SetOutput(output)
	parsed := forecastArgs{}
	flags.StringVar(&parsed.email, "email", "", "account email")
	flags.StringVar(&parsed.date, "date", "", "reference day as YYYY-MM-DD (defaults to today)")
	if err := flags.Parse(args); err != nil {
		return forecastArgs{}, err
	}
	if strings.TrimSpace(parsed.email) == "" {
		return forecastArgs{}, errors.New("forecast: --email is required")
	}
	return parsed, nil
}

type resetPasswordArgs struct {
	email    string
	generate bool
}

func parseResetPasswordArgs(args []string, output io.Writer) (resetPasswordArgs, error) {
	flags := flag.NewFlagSet(commandResetPassword, flag.ContinueOnError)
	flags.SetOutput(output)
	parsed := resetPasswordArgs{}
	flags.StringVar(&parsed.email, "email", "", "account email")
	flags.BoolVar(&parsed.generate, "generate", false, "generate a temporary password instead of prompting")
	if err := flags.Parse(args); err != nil {
		return resetPasswordArgs{}, err
	}
	if strings.TrimSpace(parsed.email) == "" {
		return resetPasswordArgs{}, errors.New("reset-password: --email is required")
	}
	return parsed, nil
}

func runForecast(args []string) error {
	parsed, err := parseForecastArgs(args, os.Stderr)
	if err != nil {
		return err
	}
	cfg, logger, err := loadTooling()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return cli.RunForecastCommand(context.Background(), os.Stdout, cli.ForecastOptions{
		DBPath:   cfg.DBPath,
		Email:    parsed.email,
		Date:     parsed.date,
		Location: cfg.Location,
		Logger:   logger,
	})
}

func runResetPassword(args []string) error {
	parsed, err := parseResetPasswordArgs(args, os.Stderr)
	if err != nil {
		return err
	}
	cfg, logger, err := loadTooling()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return cli.RunResetPasswordCommand(context.Background(), os.Stdin, os.Stdout, cli.ResetPasswordOptions{
		DBPath:   cfg.DBPath,
		Email:    parsed.email,
		Generate: parsed.generate,
		Logger:   logger,
	})
}

func loadTooling() (config.ToolingConfig, *zap.Logger, error) {
	cfg, err := config.LoadTooling()
	if err != nil {
		return config.ToolingConfig{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return config.ToolingConfig{}, nil, fmt.Errorf("logger init failed: %w", err)
	}
	return cfg, logger, nil
}
