// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Pagination bounds. Page sizes outside this range are clamped, never rejected.
const (
	MinPageSize = 10
	MaxPageSize = 500
)

// Search behavior defaults
const (
	DefaultDebounceMs    = 1000
	DefaultMinQueryLen   = 3
	DefaultPageSizeValue = 50
	DefaultPreviewLimit  = 100
	DefaultHistoryMax    = 5
)

// Config holds all configuration for the netinv MCP server.
type Config struct {
	NetinvBaseURL  string        // NETINV_BASE_URL, default "http://localhost:8245"
	SearchTimeout  time.Duration // SEARCH_TIMEOUT_MS, default 30000ms (30s)
	PreviewTimeout time.Duration // PREVIEW_TIMEOUT_MS, default 12000ms (12s)
	InfoTimeout    time.Duration // INFO_TIMEOUT_MS, default 12000ms (12s)

	Debounce    time.Duration // DEBOUNCE_MS, default 1000ms of input silence
	MinQueryLen int           // MIN_QUERY_LEN, default 3

	PreviewTTL          time.Duration // PREVIEW_TTL_MS, default 300000ms (5min)
	ResultCacheTTL      time.Duration // RESULT_CACHE_TTL_MS, default 300000ms (5min)
	ResultCacheMaxItems int           // RESULT_CACHE_MAX_ITEMS, default 32

	DefaultPageSize int // DEFAULT_PAGE_SIZE, default 50
	PreviewLimit    int // PREVIEW_LIMIT, default 100
	HistoryMax      int // HISTORY_MAX, default 5

	StateDir string // STATE_DIR, default ~/.netinv-mcp (session + history persistence)

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 3
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		NetinvBaseURL:  getEnvString("NETINV_BASE_URL", "http://localhost:8245"),
		SearchTimeout:  getEnvDurationMs("SEARCH_TIMEOUT_MS", 30000),
		PreviewTimeout: getEnvDurationMs("PREVIEW_TIMEOUT_MS", 12000),
		InfoTimeout:    getEnvDurationMs("INFO_TIMEOUT_MS", 12000),

		Debounce:    getEnvDurationMs("DEBOUNCE_MS", DefaultDebounceMs),
		MinQueryLen: getEnvInt("MIN_QUERY_LEN", DefaultMinQueryLen),

		PreviewTTL:          getEnvDurationMs("PREVIEW_TTL_MS", 300000),
		ResultCacheTTL:      getEnvDurationMs("RESULT_CACHE_TTL_MS", 300000),
		ResultCacheMaxItems: getEnvInt("RESULT_CACHE_MAX_ITEMS", 32),

		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", DefaultPageSizeValue),
		PreviewLimit:    getEnvInt("PREVIEW_LIMIT", DefaultPreviewLimit),
		HistoryMax:      getEnvInt("HISTORY_MAX", DefaultHistoryMax),

		StateDir: getEnvString("STATE_DIR", defaultStateDir()),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".netinv-mcp"
	}
	return filepath.Join(home, ".netinv-mcp")
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

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
