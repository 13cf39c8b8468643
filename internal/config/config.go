package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything configurable through the environment.
type AppConfig struct {
	Port string

	// Upstream provider credential.
	OpenWeatherAPIKey string

	// CacheDuration is the freshness window for cached upstream responses.
	CacheDuration time.Duration

	// CacheCleanupInterval is how often the background sweep runs.
	CacheCleanupInterval time.Duration

	// HTTPTimeout bounds outbound provider calls.
	HTTPTimeout time.Duration

	// SeedData controls whether the business store starts with sample data.
	SeedData bool
}

// Load reads configuration from environment with sensible defaults.
// CACHE_DURATION and CACHE_CLEANUP_INTERVAL are integer milliseconds, kept
// compatible with existing deployments.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")

	cfg.CacheDuration = time.Duration(getenvInt("CACHE_DURATION", 600000)) * time.Millisecond
	cfg.CacheCleanupInterval = time.Duration(getenvInt("CACHE_CLEANUP_INTERVAL", 1800000)) * time.Millisecond
	if cfg.CacheDuration <= 0 {
		return nil, fmt.Errorf("CACHE_DURATION must be positive")
	}
	if cfg.CacheCleanupInterval <= 0 {
		return nil, fmt.Errorf("CACHE_CLEANUP_INTERVAL must be positive")
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.SeedData = getenvBool("SEED_DATA", true)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
