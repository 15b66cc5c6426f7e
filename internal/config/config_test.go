package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Backend:       "sqlite",
		SQLitePath:    filepath.Join(dir, "zenspend.db"),
		FilePath:      filepath.Join(dir, "zenspend.json"),
		StorageKey:    "zenspend_local_data",
		LogLevel:      "info",
		LogFormat:     "text",
		ViewCacheSize: 64,
		ExportDir:     ".",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid sqlite backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid memory backend ignores paths",
			mutate:  func(c *Config) { c.Backend = "memory"; c.SQLitePath = ""; c.FilePath = "" },
			wantErr: false,
		},
		{
			name:    "valid file backend",
			mutate:  func(c *Config) { c.Backend = "file" },
			wantErr: false,
		},
		{
			name:        "invalid backend",
			mutate:      func(c *Config) { c.Backend = "sheets" },
			wantErr:     true,
			errorString: "invalid backend 'sheets': must be one of [sqlite memory file]",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.SQLitePath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "file backend missing path",
			mutate:      func(c *Config) { c.Backend = "file"; c.FilePath = "" },
			wantErr:     true,
			errorString: "document file path cannot be empty when using file backend",
		},
		{
			name:        "empty storage key",
			mutate:      func(c *Config) { c.StorageKey = "  " },
			wantErr:     true,
			errorString: "storage key cannot be empty",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "invalid log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "view cache too small",
			mutate:      func(c *Config) { c.ViewCacheSize = 0 },
			wantErr:     true,
			errorString: "invalid view cache size 0: must be at least 1",
		},
		{
			name:        "view cache too large",
			mutate:      func(c *Config) { c.ViewCacheSize = 5000 },
			wantErr:     true,
			errorString: "invalid view cache size 5000: must be at most 4096",
		},
		{
			name:        "empty export dir",
			mutate:      func(c *Config) { c.ExportDir = "" },
			wantErr:     true,
			errorString: "export directory cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Validate() expected error but got none")
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Validate() error = %v, want error containing %v", err, tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Backend = "bogus"
	cfg.LogLevel = "loud"
	cfg.ViewCacheSize = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("expected 3 aggregated errors, got %d in %q", got, err)
	}
}

func TestConfig_ValidateCreatesDirectory(t *testing.T) {
	cfg := validConfig(t)
	cfg.SQLitePath = filepath.Join(t.TempDir(), "nested", "deeper", "zenspend.db")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, key := range []string{
			"ZENSPEND_BACKEND", "ZENSPEND_SQLITE_PATH", "ZENSPEND_FILE_PATH",
			"ZENSPEND_STORAGE_KEY", "ZENSPEND_LOG_LEVEL", "ZENSPEND_LOG_FORMAT",
			"ZENSPEND_VIEW_CACHE_SIZE", "ZENSPEND_EXPORT_DIR",
		} {
			t.Setenv(key, "")
		}

		cfg := Load()
		if cfg.Backend != "sqlite" {
			t.Errorf("Backend = %q, want sqlite", cfg.Backend)
		}
		if cfg.SQLitePath != "./data/zenspend.db" {
			t.Errorf("SQLitePath = %q", cfg.SQLitePath)
		}
		if cfg.FilePath != "./data/zenspend.json" {
			t.Errorf("FilePath = %q", cfg.FilePath)
		}
		if cfg.StorageKey != "zenspend_local_data" {
			t.Errorf("StorageKey = %q", cfg.StorageKey)
		}
		if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
			t.Errorf("log = %q/%q", cfg.LogLevel, cfg.LogFormat)
		}
		if cfg.ViewCacheSize != 64 {
			t.Errorf("ViewCacheSize = %d", cfg.ViewCacheSize)
		}
		if cfg.ExportDir != "." {
			t.Errorf("ExportDir = %q", cfg.ExportDir)
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("ZENSPEND_BACKEND", "file")
		t.Setenv("ZENSPEND_FILE_PATH", "/tmp/z.json")
		t.Setenv("ZENSPEND_LOG_FORMAT", "json")
		t.Setenv("ZENSPEND_VIEW_CACHE_SIZE", "8")

		cfg := Load()
		if cfg.Backend != "file" || cfg.FilePath != "/tmp/z.json" {
			t.Errorf("unexpected backend config %+v", cfg)
		}
		if cfg.LogFormat != "json" {
			t.Errorf("LogFormat = %q", cfg.LogFormat)
		}
		if cfg.ViewCacheSize != 8 {
			t.Errorf("ViewCacheSize = %d", cfg.ViewCacheSize)
		}
	})

	t.Run("bad integer falls back to default", func(t *testing.T) {
		t.Setenv("ZENSPEND_VIEW_CACHE_SIZE", "lots")
		if got := Load().ViewCacheSize; got != 64 {
			t.Errorf("ViewCacheSize = %d, want 64", got)
		}
	})
}
