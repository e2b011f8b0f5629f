// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
)

// Tool output limit defaults.
const (
	DefaultSearchLimitValue  = 10
	DefaultQueryLimitValue   = 20
	DefaultInferSamplesValue = 100
)

// Processing safety cap defaults.
const (
	MaxSearchResultsValue = 10000
	MaxQueryRecordsValue  = 10000
	MaxInferSamplesValue  = 1000
)

// Config holds all configuration for the MCP server.
type Config struct {
	ClassifyCacheMaxItems int // CLASSIFY_CACHE_MAX_ITEMS, default 1024
	IngestWorkers         int // INGEST_WORKERS, default 8

	// Tool output limits
	DefaultSearchLimit  int // DEFAULT_SEARCH_LIMIT
	DefaultQueryLimit   int // DEFAULT_QUERY_LIMIT
	DefaultInferSamples int // DEFAULT_INFER_SAMPLES

	// Processing safety caps (upper bounds for search/query space)
	MaxSearchResults int // MAX_SEARCH_RESULTS, default 10000
	MaxQueryRecords  int // MAX_QUERY_RECORDS, default 10000
	MaxInferSamples  int // MAX_INFER_SAMPLES, default 1000

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ClassifyCacheMaxItems: getEnvInt("CLASSIFY_CACHE_MAX_ITEMS", 1024),
		IngestWorkers:         getEnvInt("INGEST_WORKERS", 8),

		DefaultSearchLimit:  getEnvInt("DEFAULT_SEARCH_LIMIT", DefaultSearchLimitValue),
		DefaultQueryLimit:   getEnvInt("DEFAULT_QUERY_LIMIT", DefaultQueryLimitValue),
		DefaultInferSamples: getEnvInt("DEFAULT_INFER_SAMPLES", DefaultInferSamplesValue),

		MaxSearchResults: getEnvInt("MAX_SEARCH_RESULTS", MaxSearchResultsValue),
		MaxQueryRecords:  getEnvInt("MAX_QUERY_RECORDS", MaxQueryRecordsValue),
		MaxInferSamples:  getEnvInt("MAX_INFER_SAMPLES", MaxInferSamplesValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
