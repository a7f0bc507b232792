package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/experience-kok/kok-api-admin-server-sub001/pkg/jwtx"
)

type Config struct {
	Issuer     string        // Issuer claim for tokens (default: kok-admin)
	SigningKey string        // Required: HMAC-SHA256 signing key for tokens
	AccessTTL  time.Duration // Access token lifetime (default: 1h)
	RefreshTTL time.Duration // Refresh token lifetime (default: 168h)
	Leeway     time.Duration // Clock skew tolerance for expiry checks (default: 0)

	AdminEmail    string // Optional: seed admin email for first boot
	AdminPassword string // Optional: seed admin password for first boot
	AdminName     string // Optional: seed admin display name (default: Administrator)

	DatabaseFile         string        // Path to SQLite database file (default: ./admin.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Background sweep interval (default: 10m)
}

func LoadConfig() Config {
	return Config{
		Issuer:     getEnvOrDefault("ADMIN_ISSUER", "kok-admin"),
		SigningKey: os.Getenv("ADMIN_SIGNING_KEY"),
		AccessTTL:  getEnvDurationOrDefault("ADMIN_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL: getEnvDurationOrDefault("ADMIN_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		Leeway:     getEnvDurationOrDefault("ADMIN_CLOCK_LEEWAY", 0),

		AdminEmail:    os.Getenv("ADMIN_SEED_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_SEED_PASSWORD"),
		AdminName:     getEnvOrDefault("ADMIN_SEED_NAME", "Administrator"),

		DatabaseFile:         getEnvOrDefault("ADMIN_DATABASE_FILE", "admin.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),
	}
}

// Validate rejects configurations the token layer cannot operate with.
func (cfg Config) Validate() error {
	if cfg.SigningKey == "" {
		return errors.New("ADMIN_SIGNING_KEY is required")
	}
	if len(cfg.SigningKey) < 32 {
		return errors.New("ADMIN_SIGNING_KEY must be at least 32 bytes")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if cfg.AccessTTL >= cfg.RefreshTTL {
		return fmt.Errorf("access lifetime %s must be shorter than refresh lifetime %s",
			cfg.AccessTTL, cfg.RefreshTTL)
	}
	if cfg.Leeway < 0 {
		return errors.New("clock leeway must not be negative")
	}
	if cfg.HousekeepingInterval <= 0 {
		return errors.New("housekeeping interval must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
