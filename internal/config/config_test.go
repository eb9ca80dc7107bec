package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "Internal Requests", cfg.SheetName)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 100, cfg.MaxSessions)
	assert.False(t, cfg.DebugMode)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SHEET_NAME", "Tickets")
	t.Setenv("SESSION_TTL", "2m")
	t.Setenv("DEBUG_MODE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "Tickets", cfg.SheetName)
	assert.Equal(t, 2*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.DebugMode)
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		mutate  func(c *Config)
		wantErr string
	}{
		"EmptySheetName": {
			mutate:  func(c *Config) { c.SheetName = "" },
			wantErr: "SHEET_NAME",
		},
		"ZeroUploadLimit": {
			mutate:  func(c *Config) { c.MaxUploadBytes = 0 },
			wantErr: "MAX_UPLOAD_BYTES",
		},
		"TinySessionTTL": {
			mutate:  func(c *Config) { c.SessionTTL = time.Millisecond },
			wantErr: "SESSION_TTL",
		},
		"NoSessions": {
			mutate:  func(c *Config) { c.MaxSessions = 0 },
			wantErr: "MAX_SESSIONS",
		},
		"TinyChart": {
			mutate:  func(c *Config) { c.ChartWidth = 10 },
			wantErr: "chart dimensions",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig()
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, getEnvDuration("TEST_DURATION", time.Minute))

	t.Setenv("TEST_DURATION", "not-a-duration")
	assert.Equal(t, time.Minute, getEnvDuration("TEST_DURATION", time.Minute))

	assert.Equal(t, time.Hour, getEnvDuration("TEST_DURATION_UNSET", time.Hour))
}
