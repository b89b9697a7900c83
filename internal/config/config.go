// Package config loads the bot's configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	// Telegram
	TelegramToken string

	// Database
	SQLiteDBPath string

	// Metrics
	MetricsAddr string
}

func Load() *Config {
	return &Config{
		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),
		SQLiteDBPath:  getEnv("SQLITE_DB_PATH", "./data/gastobot.db"),
		MetricsAddr:   getEnv("METRICS_ADDR", ":9090"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.TelegramToken == "" {
		errors = append(errors, "TELEGRAM_TOKEN is required")
	}
	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLITE_DB_PATH must not be empty")
	}
	if c.MetricsAddr == "" {
		errors = append(errors, "METRICS_ADDR must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errors, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
