package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// AeroDataAPIKey enables the metered scheduled-data provider. Empty
	// means the provider is disabled and the engine never spends quota.
	AeroDataAPIKey string

	// OpenSky OAuth2 client credentials. Both empty means unauthenticated
	// calls, which the provider accepts at tighter rate limits.
	OpenSkyClientID     string
	OpenSkyClientSecret string

	// QuotaLimit is the monthly call budget for the metered provider.
	QuotaLimit int

	// QuotaResetAt optionally overrides the next quota reset instant,
	// for operational recovery. Zero means derive from the calendar.
	QuotaResetAt time.Time

	// Optional infrastructure. Empty RedisAddr falls back to the
	// in-memory cache; empty DBConnStr disables audit persistence.
	RedisAddr string
	DBConnStr string

	// NATSURL overrides the daemon's default NATS endpoint. The daemon
	// always serves lookups over NATS; only the one-shot CLI runs
	// without it.
	NATSURL string

	// Base URL overrides, used by tests and self-hosted mirrors.
	OpenSkyBaseURL  string
	AeroDataBaseURL string
}

const defaultQuotaLimit = 100

// Load loads the configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		AeroDataAPIKey:      os.Getenv("AERODATA_API_KEY"),
		OpenSkyClientID:     os.Getenv("OPENSKY_CLIENT_ID"),
		OpenSkyClientSecret: os.Getenv("OPENSKY_CLIENT_SECRET"),
		QuotaLimit:          defaultQuotaLimit,
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		DBConnStr:           os.Getenv("DB_CONN_STR"),
		NATSURL:             os.Getenv("NATS_URL"),
		OpenSkyBaseURL:      os.Getenv("OPENSKY_BASE_URL"),
		AeroDataBaseURL:     os.Getenv("AERODATA_BASE_URL"),
	}

	if v := os.Getenv("FLIGHT_QUOTA_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			log.Printf("Warning: ignoring invalid FLIGHT_QUOTA_LIMIT %q", v)
		} else {
			cfg.QuotaLimit = limit
		}
	}

	if v := os.Getenv("FLIGHT_QUOTA_RESET_AT"); v != "" {
		resetAt, err := time.Parse(time.RFC3339, v)
		if err != nil {
			log.Printf("Warning: ignoring invalid FLIGHT_QUOTA_RESET_AT %q: %v", v, err)
		} else {
			cfg.QuotaResetAt = resetAt
		}
	}

	return cfg, nil
}
