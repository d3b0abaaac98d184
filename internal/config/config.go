package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // schedule zones must resolve on images without zoneinfo

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL string
	SMTP        SMTPConfig
	Schedule    ScheduleConfig
	Server      ServerConfig
	Bot         BotConfig
	LogLevel    string

	// IsPrimaryInstance is set by the process supervisor on the worker that
	// owns the daily job. Secondary instances never start the scheduler.
	IsPrimaryInstance bool
}

// SMTPConfig holds outbound mail transport settings
type SMTPConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	SenderAddress string
}

// Complete reports whether every transport setting is present
func (c SMTPConfig) Complete() bool {
	return c.Host != "" && c.Port > 0 && c.Username != "" && c.Password != "" && c.SenderAddress != ""
}

// ScheduleConfig holds the daily fire time
type ScheduleConfig struct {
	Hour     int
	Minute   int
	Timezone string
}

// Location resolves the configured timezone
func (c ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// CronSpec returns the five-field cron expression for the daily trigger
func (c ScheduleConfig) CronSpec() string {
	return fmt.Sprintf("%d %d * * *", c.Minute, c.Hour)
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port                   string
	CORSAllowedOrigins     []string
	RegistrationsPerMinute int
	ShutdownTimeout        time.Duration
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

// BotConfig holds the optional Telegram admin bot settings
type BotConfig struct {
	Token    string
	Password string
}

// Enabled reports whether the admin bot should be started
func (c BotConfig) Enabled() bool {
	return c.Token != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	smtpPort, err := getEnvInt("SMTP_PORT", 2525)
	if err != nil {
		return nil, err
	}
	hour, err := getEnvInt("SCHEDULE_HOUR", 19)
	if err != nil {
		return nil, err
	}
	minute, err := getEnvInt("SCHEDULE_MINUTE", 27)
	if err != nil {
		return nil, err
	}
	registrations, err := getEnvInt("RATE_LIMIT_REGISTRATIONS", 10)
	if err != nil {
		return nil, err
	}
	primary, err := getEnvBool("PRIMARY_INSTANCE", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", "sqlite://wordofday.db"),
		SMTP: SMTPConfig{
			Host:          getEnv("SMTP_SERVER", "smtp.mailtrap.io"),
			Port:          smtpPort,
			Username:      os.Getenv("SMTP_USERNAME"),
			Password:      os.Getenv("SMTP_PASSWORD"),
			SenderAddress: os.Getenv("SENDER_EMAIL"),
		},
		Schedule: ScheduleConfig{
			Hour:     hour,
			Minute:   minute,
			Timezone: getEnv("SCHEDULE_TIMEZONE", "US/Eastern"),
		},
		Server: ServerConfig{
			Port:                   getEnv("SERVER_PORT", "5000"),
			CORSAllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8000,http://127.0.0.1:8000")),
			RegistrationsPerMinute: registrations,
			ShutdownTimeout:        10 * time.Second,
		},
		Bot: BotConfig{
			Token:    os.Getenv("BOT_TOKEN"),
			Password: os.Getenv("BOT_PASSWORD"),
		},
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		IsPrimaryInstance: primary,
	}

	// Validate
	if cfg.Schedule.Hour < 0 || cfg.Schedule.Hour > 23 {
		return nil, fmt.Errorf("SCHEDULE_HOUR must be between 0 and 23, got %d", cfg.Schedule.Hour)
	}
	if cfg.Schedule.Minute < 0 || cfg.Schedule.Minute > 59 {
		return nil, fmt.Errorf("SCHEDULE_MINUTE must be between 0 and 59, got %d", cfg.Schedule.Minute)
	}
	if cfg.Server.RegistrationsPerMinute < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_REGISTRATIONS must be at least 1, got %d", cfg.Server.RegistrationsPerMinute)
	}
	if _, err := cfg.Schedule.Location(); err != nil {
		return nil, fmt.Errorf("SCHEDULE_TIMEZONE is invalid: %w", err)
	}
	if _, _, err := cfg.DatabaseDriver(); err != nil {
		return nil, err
	}
	if cfg.Bot.Token != "" && cfg.Bot.Password == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required when BOT_TOKEN is set")
	}

	return cfg, nil
}

// Database driver names understood by DatabaseDriver
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseDriver returns the database/sql driver name and DSN for DatabaseURL
func (c *Config) DatabaseDriver() (string, string, error) {
	switch {
	case strings.HasPrefix(c.DatabaseURL, "postgres://"), strings.HasPrefix(c.DatabaseURL, "postgresql://"):
		return DriverPostgres, c.DatabaseURL, nil
	case strings.HasPrefix(c.DatabaseURL, "sqlite://"):
		path := strings.TrimPrefix(c.DatabaseURL, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("DATABASE_URL has an empty sqlite path")
		}
		return DriverSQLite, path, nil
	default:
		return "", "", fmt.Errorf("unsupported DATABASE_URL scheme: %q", c.DatabaseURL)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return i, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
