package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"study-planner/internal/clock"
)

// Config keeps runtime settings for the bot.
type Config struct {
	BotToken        string
	DatabaseURL     string
	TimezoneOffset  int    // hours east of UTC, applied globally
	MaintenanceTime string // HH:MM local wall-clock time for the daily job
}

// Load reads configuration from the environment (with .env support) and
// applies sane defaults. The default offset is UTC+5 (Astana).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		BotToken:        strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TimezoneOffset:  parseOffset(strings.TrimSpace(os.Getenv("TIMEZONE_OFFSET_HOURS"))),
		MaintenanceTime: strings.TrimSpace(os.Getenv("MAINTENANCE_TIME")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "study_planner.db"
	}

	if cfg.MaintenanceTime == "" {
		cfg.MaintenanceTime = "04:00"
	}
	if _, err := clock.ParseTimeOfDay(cfg.MaintenanceTime); err != nil {
		return cfg, fmt.Errorf("MAINTENANCE_TIME %q: %w", cfg.MaintenanceTime, err)
	}

	if cfg.BotToken == "" {
		return cfg, fmt.Errorf("BOT_TOKEN is required")
	}

	return cfg, nil
}

func parseOffset(raw string) int {
	if raw == "" {
		return 5
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours < -12 || hours > 14 {
		return 5
	}
	return hours
}
