// Package config provides configuration management for the complaints dashboard.
//
// This package handles loading configuration from environment variables,
// validating settings, and providing sensible defaults for optional
// parameters. Configuration is loaded once at startup and remains immutable
// during runtime for thread-safety.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (highest priority)
//  2. External .env file (loaded via godotenv, if present)
//  3. Hard-coded defaults (lowest priority)
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
//
// This struct is immutable after creation to ensure thread-safety.
type Config struct {
	// HTTP server
	HTTPPort string // Port for the dashboard HTTP server

	// Workbook ingest
	SheetName      string // Sheet name expected in uploaded workbooks
	MaxUploadBytes int64  // Maximum accepted upload size in bytes

	// Session cache for parsed uploads
	SessionTTL    time.Duration // How long a parsed upload stays cached
	SweepInterval time.Duration // How often expired sessions are evicted
	MaxSessions   int           // Maximum number of concurrent sessions

	// Chart rendering
	ChartWidth  int // Chart canvas width in pixels
	ChartHeight int // Chart canvas height in pixels

	// Debug mode - more verbose request logging
	DebugMode bool
}

// LoadConfig loads configuration from environment variables with defaults.
//
// Loading process:
//  1. Try to load external .env file (optional)
//  2. Read environment variables
//  3. Apply hard-coded defaults for any missing values
//  4. Validate that all values are sensible
//
// Returns:
//   - *Config: Fully populated configuration struct
//   - error: Validation error if a value is out of range
func LoadConfig() (*Config, error) {
	// Optional .env file; environment variables take precedence
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort: getEnvOrDefault("HTTP_PORT", "8080"),

		// "Internal Requests" is the sheet name the ticketing system exports
		SheetName:      getEnvOrDefault("SHEET_NAME", "Internal Requests"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 20*1024*1024),

		SessionTTL:    getEnvDuration("SESSION_TTL", 30*time.Minute),
		SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		MaxSessions:   getEnvInt("MAX_SESSIONS", 100),

		ChartWidth:  getEnvInt("CHART_WIDTH", 1000),
		ChartHeight: getEnvInt("CHART_HEIGHT", 600),

		DebugMode: getEnvOrDefault("DEBUG_MODE", "false") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that configuration values are present and sensible.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}
	if c.SheetName == "" {
		return fmt.Errorf("SHEET_NAME cannot be empty")
	}
	if c.MaxUploadBytes < 1 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.SessionTTL < time.Second {
		return fmt.Errorf("SESSION_TTL must be at least 1s, got %v", c.SessionTTL)
	}
	if c.SweepInterval < time.Second {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be at least 1s, got %v", c.SweepInterval)
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("MAX_SESSIONS must be at least 1, got %d", c.MaxSessions)
	}
	if c.ChartWidth < 100 || c.ChartHeight < 100 {
		return fmt.Errorf("chart dimensions must be at least 100x100, got %dx%d",
			c.ChartWidth, c.ChartHeight)
	}
	return nil
}

// Helper functions for environment variable parsing

// getEnvOrDefault returns the environment variable value or a default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as an integer or a default if not set/invalid
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns the environment variable as an int64 or a default if not set/invalid
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns the environment variable as a duration or a default if not set/invalid.
//
// Accepts standard Go duration strings like "5s", "10m", "1h30m"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
