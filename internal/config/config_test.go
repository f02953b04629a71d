package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, 5001, cfg.App.Port)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiration)
	assert.Equal(t, 8.0, cfg.Attendance.ExpectedDailyHours)
	assert.Equal(t, 26, cfg.Salary.WorkingDaysPerMonth)
	assert.Equal(t, time.Duration(0), cfg.Salary.DraftInterval)
	assert.Empty(t, cfg.Upstream.BaseURL)
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/factory_attendance?sslmode=disable", cfg.DatabaseURL())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://app@db/attendance")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("UPSTREAM_BASE_URL", "http://review.local/api/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, "postgres://app@db/attendance", cfg.DatabaseURL())
	assert.Equal(t, "http://review.local/api", cfg.Upstream.BaseURL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, "DEBUG", cfg.SlogLevel().String())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"DB_PASSWORD": "pw"}},
		{"missing database", map[string]string{"JWT_SECRET": "s"}},
		{"bad port", map[string]string{"DB_PASSWORD": "pw", "JWT_SECRET": "s", "PORT": "http"}},
		{"bad duration", map[string]string{"DB_PASSWORD": "pw", "JWT_SECRET": "s", "UPSTREAM_TIMEOUT": "soon"}},
		{"bad hours", map[string]string{"DB_PASSWORD": "pw", "JWT_SECRET": "s", "EXPECTED_DAILY_HOURS": "30"}},
		{"bad mode", map[string]string{"DB_PASSWORD": "pw", "JWT_SECRET": "s", "PAIRING_MODE": "random"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"DB_PASSWORD", "JWT_SECRET", "DATABASE_URL"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()

			assert.Error(t, err)
		})
	}
}
