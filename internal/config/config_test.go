package config

import (
	"os"
	"strings"
	"testing"

	"github.com/cesargomez89/airscore/internal/constants"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	if cfg.Port != constants.DefaultPort {
		t.Errorf("Expected Port to be %s, got %s", constants.DefaultPort, cfg.Port)
	}

	if cfg.DBPath != constants.DefaultDBPath {
		t.Errorf("Expected DBPath to be %s, got %s", constants.DefaultDBPath, cfg.DBPath)
	}

	if cfg.MaxUploadMB != constants.DefaultMaxUploadMB {
		t.Errorf("Expected MaxUploadMB to be %d, got %d", constants.DefaultMaxUploadMB, cfg.MaxUploadMB)
	}

	// Depends on the user's home dir
	if cfg.LibraryDir == "" {
		t.Error("Expected LibraryDir to not be empty")
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	os.Setenv("PORT", "9090")
	os.Setenv("DB_PATH", "/tmp/test.db")
	os.Setenv("LIBRARY_DIR", "/tmp/scores")
	os.Setenv("MAX_UPLOAD_MB", "10")
	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DB_PATH")
		os.Unsetenv("LIBRARY_DIR")
		os.Unsetenv("MAX_UPLOAD_MB")
	}()

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Expected Port to be 9090, got %s", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("Expected DBPath to be /tmp/test.db, got %s", cfg.DBPath)
	}
	if cfg.LibraryDir != "/tmp/scores" {
		t.Errorf("Expected LibraryDir to be /tmp/scores, got %s", cfg.LibraryDir)
	}
	if cfg.MaxUploadMB != 10 {
		t.Errorf("Expected MaxUploadMB to be 10, got %d", cfg.MaxUploadMB)
	}
}

func TestLoadBadIntFallsBack(t *testing.T) {
	os.Setenv("MAX_UPLOAD_MB", "lots")
	defer os.Unsetenv("MAX_UPLOAD_MB")

	cfg := Load()
	if cfg.MaxUploadMB != constants.DefaultMaxUploadMB {
		t.Errorf("Expected fallback to default, got %d", cfg.MaxUploadMB)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Port:        "8080",
		DBPath:      "airscore.db",
		LibraryDir:  "/tmp/scores",
		MaxUploadMB: 50,
		LogLevel:    "info",
		LogFormat:   "text",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid config to pass, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty port", func(c *Config) { c.Port = "" }, "PORT cannot be empty"},
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, "PORT must be a valid number"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "PORT must be between"},
		{"empty db path", func(c *Config) { c.DBPath = "" }, "DB_PATH cannot be empty"},
		{"empty library dir", func(c *Config) { c.LibraryDir = "" }, "LIBRARY_DIR cannot be empty"},
		{"zero upload limit", func(c *Config) { c.MaxUploadMB = 0 }, "MAX_UPLOAD_MB must be at least 1"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "LOG_LEVEL must be one of"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT must be one of"},
	}

	for _, tt := range tests {
		cfg := *valid
		tt.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.want, err)
		}
	}
}
