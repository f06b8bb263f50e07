package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath                  string
	ImageDir                string
	LogLevel                slog.Level
	LogFormat               string // "text" or "json"
	BusyTimeout             time.Duration
	AdminUsername           string
	AdminPassword           string
	StrictStatusTransitions bool
}

// LoadConfig reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not read .env file", "error", err)
	}

	cfg := &Config{
		DBPath:                  getEnv("DB_PATH", "./storefront.db"),
		ImageDir:                getEnv("IMAGE_DIR", "./images"),
		LogFormat:               strings.ToLower(getEnv("LOG_FORMAT", "text")),
		AdminUsername:           getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:           getEnv("ADMIN_PASSWORD", "123456"),
		StrictStatusTransitions: getEnv("STRICT_STATUS_TRANSITIONS", "false") == "true",
		BusyTimeout:             5 * time.Second,
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		slog.Warn("Invalid LOG_LEVEL. Falling back to info.", "LOG_LEVEL", os.Getenv("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	if raw, ok := os.LookupEnv("BUSY_TIMEOUT_MS"); ok {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			slog.Warn("Invalid BUSY_TIMEOUT_MS. Falling back to default.", "BUSY_TIMEOUT_MS", raw)
		} else {
			cfg.BusyTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		slog.Warn("Invalid LOG_FORMAT. Falling back to text.", "LOG_FORMAT", cfg.LogFormat)
		cfg.LogFormat = "text"
	}

	return cfg, nil
}

// NewLogger builds the process logger from the config.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
