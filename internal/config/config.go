package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	TelegramToken      string
	AdminChatID        int64
	DatabaseURL        string
	LogLevel           string
	Port               string
	WebhookURL         string
	BlockCheckFailOpen bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
		Port:       getEnvOrDefault("PORT", "8080"),
		WebhookURL: os.Getenv("WEBHOOK_URL"),
	}

	// Required environment variables
	if cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN"); cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is required")
	}

	if cfg.DatabaseURL = os.Getenv("DATABASE_URL"); cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	rawChatID := os.Getenv("ADMIN_CHAT_ID")
	if rawChatID == "" {
		return nil, fmt.Errorf("ADMIN_CHAT_ID environment variable is required")
	}
	chatID, err := strconv.ParseInt(rawChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_CHAT_ID must be an integer: %w", err)
	}
	cfg.AdminChatID = chatID

	// A store failure during the block check admits the message by
	// default; set BLOCK_CHECK_FAIL_OPEN=false to deny instead.
	failOpen, err := strconv.ParseBool(getEnvOrDefault("BLOCK_CHECK_FAIL_OPEN", "true"))
	if err != nil {
		return nil, fmt.Errorf("BLOCK_CHECK_FAIL_OPEN must be a boolean: %w", err)
	}
	cfg.BlockCheckFailOpen = failOpen

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
