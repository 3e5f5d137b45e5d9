package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fenn-labs/ipo-monitor/shared"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all environment-sourced settings. It is constructed
// once at startup and passed by reference; the qualification threshold
// and exchange set are compiled-in constants in the services package,
// not configuration.
type Config struct {
	FinnhubAPIKey    string
	EmailUser        string
	EmailAppPassword string
	EmailTo          string
	SMTPHost         string
	SMTPPort         int
	ServerPort       string
	LogLevel         string
}

// LoadConfig reads configuration from a .env file (if present) and the
// process environment. Call Validate before using the result.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		FinnhubAPIKey:    getEnv("FINNHUB_API_KEY", ""),
		EmailUser:        getEnv("EMAIL_USER", ""),
		EmailAppPassword: getEnv("EMAIL_APP_PASSWORD", ""),
		EmailTo:          getEnv("EMAIL_TO", ""),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks every required key and reports all missing ones in a
// single error so operators fix the environment in one pass.
func (c *Config) Validate() error {
	var missing []string

	if c.FinnhubAPIKey == "" {
		missing = append(missing, "FINNHUB_API_KEY")
	}
	if c.EmailUser == "" {
		missing = append(missing, "EMAIL_USER")
	}
	if c.EmailAppPassword == "" {
		missing = append(missing, "EMAIL_APP_PASSWORD")
	}
	if c.EmailTo == "" {
		missing = append(missing, "EMAIL_TO")
	}

	if len(missing) > 0 {
		return shared.NewServiceError(
			shared.ErrorCategoryConfiguration,
			"MISSING_ENV_VARS",
			fmt.Sprintf("missing required environment variables: %s", strings.Join(missing, ", ")),
			"Config",
			"Validate",
			nil,
		)
	}
	return nil
}

// ParsedLogLevel returns the configured logrus level, defaulting to
// info when the value is unrecognized.
func (c *Config) ParsedLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid LOG_LEVEL value: %s, using info", c.LogLevel)
		return logrus.InfoLevel
	}
	return level
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("Invalid %s value: %s, using default %d", key, value, fallback)
		return fallback
	}
	return parsed
}
