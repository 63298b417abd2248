// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds configuration knobs for the HTTP server, the catalog and its collaborators.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
	LogLevel        string

	CatalogSourceURL    string
	CatalogFetchLimit   int
	CatalogFreshness    time.Duration
	CatalogFetchTimeout time.Duration
	CatalogRandomSeed   int64
	CatalogRedisAddr    string
	CatalogRedisPrefix  string

	SearchDelay    time.Duration
	SearchPageSize int

	PredictionAPIURL  string
	PredictionTimeout time.Duration
	WeatherDelay      time.Duration

	AutosaveQuiet     time.Duration
	AutosaveWorkers   int
	AutosaveQueueSize int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func int64env(key string, def int64) int64 {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func durenvms(key string, defMs int) time.Duration {
	ms := atoienv(key, defMs)
	return time.Duration(ms) * time.Millisecond
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// LoadDotEnv merges variables from the given .env files into the process
// environment. Variables that are already set win. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Load(f)
	}
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		LogLevel:        getenv("LOG_LEVEL", "info"),

		CatalogSourceURL:    getenv("CATALOG_SOURCE_URL", "https://world.openfoodfacts.org/cgi/search.pl"),
		CatalogFetchLimit:   atoienv("CATALOG_FETCH_LIMIT", 500),
		CatalogFreshness:    durenvs("CATALOG_FRESHNESS_SEC", 300),
		CatalogFetchTimeout: durenvs("CATALOG_FETCH_TIMEOUT_SEC", 30),
		CatalogRandomSeed:   int64env("CATALOG_RANDOM_SEED", 0),
		CatalogRedisAddr:    getenv("CATALOG_REDIS_ADDR", ""),
		CatalogRedisPrefix:  getenv("CATALOG_REDIS_PREFIX", "catalog:"),

		SearchDelay:    durenvms("SEARCH_DELAY_MS", 300),
		SearchPageSize: atoienv("SEARCH_PAGE_SIZE", 12),

		PredictionAPIURL:  getenv("PREDICTION_API_URL", "http://localhost:8000/api/v1"),
		PredictionTimeout: durenvs("PREDICTION_TIMEOUT_SEC", 15),
		WeatherDelay:      durenvms("WEATHER_DELAY_MS", 500),

		AutosaveQuiet:     durenvms("AUTOSAVE_QUIET_MS", 500),
		AutosaveWorkers:   atoienv("AUTOSAVE_WORKERS", 2),
		AutosaveQueueSize: atoienv("AUTOSAVE_QUEUE_SIZE", 128),
	}
}
