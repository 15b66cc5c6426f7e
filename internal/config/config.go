package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

type Config struct {
	// Backend selection
	Backend string

	// Storage locations
	SQLitePath string
	FilePath   string
	StorageKey string

	// Logging
	LogLevel  string
	LogFormat string

	// Derived view cache
	ViewCacheSize int

	// Backup export
	ExportDir string
}

var validBackends = []string{"sqlite", "memory", "file"}

func Load() *Config {
	return &Config{
		Backend: getEnv("ZENSPEND_BACKEND", "sqlite"),

		SQLitePath: getEnv("ZENSPEND_SQLITE_PATH", "./data/zenspend.db"),
		FilePath:   getEnv("ZENSPEND_FILE_PATH", "./data/zenspend.json"),
		StorageKey: getEnv("ZENSPEND_STORAGE_KEY", "zenspend_local_data"),

		LogLevel:  getEnv("ZENSPEND_LOG_LEVEL", "info"),
		LogFormat: getEnv("ZENSPEND_LOG_FORMAT", "text"),

		ViewCacheSize: getEnvInt("ZENSPEND_VIEW_CACHE_SIZE", 64),

		ExportDir: getEnv("ZENSPEND_EXPORT_DIR", "."),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.Backend) {
		errors = append(errors, fmt.Sprintf("invalid backend '%s': must be one of %v", c.Backend, validBackends))
	}

	switch c.Backend {
	case "sqlite":
		if c.SQLitePath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if msg := ensureDir(c.SQLitePath); msg != "" {
			errors = append(errors, msg)
		}
	case "file":
		if c.FilePath == "" {
			errors = append(errors, "document file path cannot be empty when using file backend")
		} else if msg := ensureDir(c.FilePath); msg != "" {
			errors = append(errors, msg)
		}
	}

	if strings.TrimSpace(c.StorageKey) == "" {
		errors = append(errors, "storage key cannot be empty")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if c.ViewCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid view cache size %d: must be at least 1", c.ViewCacheSize))
	} else if c.ViewCacheSize > 4096 {
		errors = append(errors, fmt.Sprintf("invalid view cache size %d: must be at most 4096", c.ViewCacheSize))
	}

	if c.ExportDir == "" {
		errors = append(errors, "export directory cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ensureDir creates the parent directory of path when missing and returns a
// validation message on failure.
func ensureDir(path string) string {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return ""
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Sprintf("cannot create directory '%s': %v", dir, err)
		}
	}
	return ""
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
