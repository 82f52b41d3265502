package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/cashflow-service/internal/forecast"
	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"
)

// Config holds application configuration
type Config struct {
	Port           string
	DBConn         string
	LogLevel       string
	JWTSecret      string
	UseMemoryStore bool
	SeedFile       string

	DefaultCurrency string
	DefaultLocale   language.Tag
	QueryTimeout    time.Duration
	CacheTTL        time.Duration
	CORSOrigins     []string

	AlertSchedule      string
	AlertHorizonMonths int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=erp sslmode=disable"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		SeedFile:        getEnv("SEED_FILE", ""),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "RON"),
		AlertSchedule:   getEnv("ALERT_SCHEDULE", "0 7 * * *"),
		SMTPHost:        getEnv("SMTP_HOST", "localhost"),
		SMTPPort:        getEnv("SMTP_PORT", "1025"),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SenderEmail:     getEnv("SENDER_EMAIL", "cashflow@localhost"),
	}

	var err error
	if cfg.UseMemoryStore, err = strconv.ParseBool(getEnv("USE_MEMORY_STORE", "false")); err != nil {
		return nil, fmt.Errorf("invalid USE_MEMORY_STORE: %w", err)
	}
	if cfg.DefaultLocale, err = language.Parse(getEnv("DEFAULT_LOCALE", "ro")); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_LOCALE: %w", err)
	}
	// ro-RO and friends resolve to the supported base locale
	cfg.DefaultLocale = forecast.MatchLocale(language.Romanian, cfg.DefaultLocale.String())
	if cfg.QueryTimeout, err = time.ParseDuration(getEnv("QUERY_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("invalid QUERY_TIMEOUT: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "0s")); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cfg.AlertHorizonMonths, err = strconv.Atoi(getEnv("ALERT_HORIZON_MONTHS", "3")); err != nil {
		return nil, fmt.Errorf("invalid ALERT_HORIZON_MONTHS: %w", err)
	}
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))

	if !cfg.UseMemoryStore && cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DefaultCurrency == "" {
		return nil, fmt.Errorf("DEFAULT_CURRENCY is required")
	}
	if cfg.QueryTimeout <= 0 {
		return nil, fmt.Errorf("QUERY_TIMEOUT must be positive")
	}
	if cfg.AlertHorizonMonths <= 0 {
		return nil, fmt.Errorf("ALERT_HORIZON_MONTHS must be positive")
	}
	if cfg.AlertSchedule != "" {
		if _, err := cron.ParseStandard(cfg.AlertSchedule); err != nil {
			return nil, fmt.Errorf("invalid ALERT_SCHEDULE: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
