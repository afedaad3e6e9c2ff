package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the bot configuration
type Config struct {
	BotToken     string
	AdminIDs     []int64
	DBPath       string
	PicsDir      string
	ReminderTime string // HH:MM, local time
	Debug        bool
}

// LoadConfig loads configuration from a .env file and environment
// variables. The .env file is optional.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:     os.Getenv("BOT_TOKEN"),
		DBPath:       envOr("DB_PATH", "./data.db"),
		PicsDir:      envOr("PICS_DIR", "./pics"),
		ReminderTime: envOr("REMINDER_TIME", "10:00"),
		Debug:        os.Getenv("BOT_DEBUG") == "1",
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	admins, err := parseAdminIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.AdminIDs = admins

	if _, err := ParseTime(cfg.ReminderTime); err != nil {
		return nil, fmt.Errorf("REMINDER_TIME: %w", err)
	}

	return cfg, nil
}

// IsAdmin checks the static administrator allow-list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseAdminIDs parses a comma-separated list of Telegram user ids.
func parseAdminIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_IDS: invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
