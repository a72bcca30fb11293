// Package config loads settler's configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the runtime configuration. Engine tunables live here so a
// deployment can adjust them without a rebuild and tests can run several
// configurations side by side.
type Config struct {
	// Database
	SQLiteDBPath string

	// Engine
	Epsilon   float64
	CacheTTL  time.Duration
	CacheSize int
}

// Load reads configuration from the environment with defaults.
func Load() *Config {
	return &Config{
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/settler.db"),
		Epsilon:      getEnvFloat("BALANCE_EPSILON", 0.01),
		CacheTTL:     getEnvDuration("REPORT_CACHE_TTL", 5*time.Minute),
		CacheSize:    getEnvInt("REPORT_CACHE_SIZE", 256),
	}
}

// Validate returns an error when the configuration is unusable.
func (c *Config) Validate() error {
	if c.SQLiteDBPath == "" {
		return fmt.Errorf("config: SQLITE_DB_PATH must not be empty")
	}
	if c.Epsilon <= 0 || c.Epsilon >= 1 {
		return fmt.Errorf("config: BALANCE_EPSILON must be in (0, 1), got %g", c.Epsilon)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("config: REPORT_CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("config: REPORT_CACHE_SIZE must be positive, got %d", c.CacheSize)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
