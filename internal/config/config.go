// Package config loads configuration from environment variables.
//
// A .env file is honored when present (local development); in deployment
// the variables come from the process environment. Missing optional values
// fall back to defaults; the only variable whose absence is dangerous is
// HUNTER_API_KEY, and that is reported by the verification endpoints as a
// 500 rather than refusing to boot — the listing/export/delete surface
// works without it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/legalforensics/leadcapture/internal/limiter"
)

// Config holds everything main needs to wire the server.
type Config struct {
	Port          int
	DBPath        string
	HunterAPIKey  string
	HunterBaseURL string
	AdminSecret   string

	// Rate-limit tuning. These were documented but ignored for a long
	// time — the limiter silently ran on its compiled-in defaults. They
	// are now actually consumed; the defaults still match the old
	// hard-coded behavior (60 requests / 60 seconds).
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load reads the environment (and .env, if present) into a Config.
func Load() (Config, error) {
	// Ignore the error: no .env file is the normal case outside dev.
	_ = godotenv.Load()

	cfg := Config{
		Port:              8080,
		DBPath:            "data/leads.db",
		HunterAPIKey:      os.Getenv("HUNTER_API_KEY"),
		HunterBaseURL:     os.Getenv("HUNTER_BASE_URL"),
		AdminSecret:       os.Getenv("ADMIN_SECRET"),
		RateLimitRequests: limiter.DefaultMax,
		RateLimitWindow:   limiter.DefaultWindow,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config: invalid RATE_LIMIT_REQUESTS %q", v)
		}
		cfg.RateLimitRequests = n
	}

	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		// Seconds, matching the original documentation.
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Config{}, fmt.Errorf("config: invalid RATE_LIMIT_WINDOW %q", v)
		}
		cfg.RateLimitWindow = time.Duration(secs) * time.Second
	}

	return cfg, nil
}
