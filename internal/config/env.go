package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by parseEnv.
const (
	envBaseURL        = "PORTAL_API_BASE_URL"
	envRequestTimeout = "PORTAL_REQUEST_TIMEOUT"
	envDatabasePath   = "PORTAL_DATABASE_PATH"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first if present; variables
// already exported take precedence over the file (godotenv semantics).
//
// PORTAL_REQUEST_TIMEOUT accepts either a Go duration ("10s") or an integer
// number of seconds.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		} else if secs, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv(envDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
}
