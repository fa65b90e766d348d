package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend    string
	SQLiteDBPath   string
	MemorySeedFile string

	// AMQP, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror (worker only)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Reports
	ReportCacheSize int
	ReportCacheTTL  time.Duration

	// Worker
	SyncConcurrency int

	LogLevel string
}

var (
	validBackends  = []string{"memory", "sqlite"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend:    getEnv("DATA_BACKEND", "memory"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/finance.db"),
		MemorySeedFile: getEnv("MEMORY_SEED_FILE", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finance"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sync_transactions"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Transactions"),

		ReportCacheSize: getEnvInt("REPORT_CACHE_SIZE", 64),
		ReportCacheTTL:  getEnvDuration("REPORT_CACHE_TTL", 30*time.Second),

		SyncConcurrency: getEnvInt("SYNC_CONCURRENCY", 4),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

// Validate returns every problem found, not just the first.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.DataBackend == "memory" && c.MemorySeedFile != "" {
		if _, err := os.Stat(c.MemorySeedFile); err != nil {
			errors = append(errors, fmt.Sprintf("memory seed file is not readable: %s", c.MemorySeedFile))
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.ReportCacheSize < 0 {
		errors = append(errors, fmt.Sprintf("invalid report cache size %d: must not be negative", c.ReportCacheSize))
	}
	if c.ReportCacheSize > 0 && c.ReportCacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid report cache TTL %v: must be positive", c.ReportCacheTTL))
	}

	if c.SyncConcurrency < 1 || c.SyncConcurrency > 64 {
		errors = append(errors, fmt.Sprintf("invalid sync concurrency %d: must be between 1 and 64", c.SyncConcurrency))
	}

	if !slices.Contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// ValidateWorker adds the checks only the sync worker needs.
func (c *Config) ValidateWorker() error {
	var errors []string
	if c.AMQPURL == "" {
		errors = append(errors, "AMQP_URL is required for the sync worker")
	}
	if c.GoogleSpreadsheetID == "" {
		errors = append(errors, "GOOGLE_SPREADSHEET_ID is required for the sync worker")
	}
	if c.DataBackend != "sqlite" {
		errors = append(errors, "the sync worker reads from the sqlite backend (set DATA_BACKEND=sqlite)")
	}
	if len(errors) > 0 {
		return fmt.Errorf("worker configuration invalid:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
