package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port            string
	DBPath          string
	Location        *time.Location
	SecretKey       string
	DefaultLanguage string
	LogLevel        zapcore.Level
	Reminders       ReminderConfig
}

type ReminderConfig struct {
	TelegramBotToken string
	PeriodDays       int
	NotifyFertility  bool
	Interval         time.Duration
}

func (cfg ReminderConfig) Enabled() bool {
	return cfg.TelegramBotToken != ""
}

// Load reads the process environment. Every invalid variable is reported, not just the first.
func Load() (Config, error) {
	var errs error

	port, err := resolvePort()
	errs = multierr.Append(errs, err)

	secretKey, err := resolveSecretKey()
	errs = multierr.Append(errs, err)

	logLevel, err := zapcore.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	periodDays, err := resolvePositiveInt("REMINDER_PERIOD_DAYS", 2)
	errs = multierr.Append(errs, err)

	notifyFertility, err := resolveBool("REMINDER_NOTIFY_FERTILITY", true)
	errs = multierr.Append(errs, err)

	interval, err := resolveDuration("REMINDER_INTERVAL", 6*time.Hour)
	errs = multierr.Append(errs, err)

	if errs != nil {
		return Config{}, errs
	}

	return Config{
		Port:            port,
		DBPath:          getEnv("DB_PATH", filepath.Join("data", "ciclo.db")),
		Location:        loadLocation(getEnv("TZ", "UTC")),
		SecretKey:       secretKey,
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "pt"),
		LogLevel:        logLevel,
		Reminders: ReminderConfig{
			TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
			PeriodDays:       periodDays,
			NotifyFertility:  notifyFertility,
			Interval:         interval,
		},
	}, nil
}

// ToolingConfig is the subset of settings the maintenance commands need.
type ToolingConfig struct {
	DBPath   string
	Location *time.Location
	LogLevel zapcore.Level
}

func LoadTooling() (ToolingConfig, error) {
	logLevel, err := zapcore.ParseLevel(getEnv("LOG_LEVEL", "warn"))
	if err != nil {
		return ToolingConfig{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return ToolingConfig{
		DBPath:   getEnv("DB_PATH", filepath.Join("data", "ciclo.db")),
		Location: loadLocation(getEnv("TZ", "UTC")),
		LogLevel: logLevel,
	}, nil
}

func resolveSecretKey() (string, error) {
	secretKey := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secretKey)]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secretKey) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be a number between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolvePositiveInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return value, nil
}

func resolveBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return value, nil
}

func resolveDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return value, nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
