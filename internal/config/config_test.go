package config

import (
	"testing"
	"time"

	"github.com/Freeeeeet/barber_bot/internal/model"
	"github.com/Freeeeeet/barber_bot/internal/slots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"TELEGRAM_TOKEN", "ENV", "LOG_LEVEL", "STORAGE_DRIVER", "STORAGE_PATH", "STORAGE_KEY",
	"DB_DSN", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "BUSINESS_OPEN", "BUSINESS_CLOSE",
	"SERVICES", "RECENT_LIMIT", "SESSION_TTL", "HTTP_ADDR",
}

// cleanEnv обнуляет все ключи конфигурации на время теста
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
}

func TestFromEnvDefaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, "museum-bookings-v1", cfg.StorageKey)
	assert.Equal(t, slots.BusinessHours{Start: 540, End: 1140}, cfg.Hours)
	assert.Equal(t, model.DefaultCatalog(), cfg.Catalog)
	assert.Equal(t, 5, cfg.RecentLimit)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestFromEnvOverrides(t *testing.T) {
	cleanEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("BUSINESS_OPEN", "10:00")
	t.Setenv("BUSINESS_CLOSE", "18:30")
	t.Setenv("SERVICES", "fade:Skin Fade:45, beard:Beard Trim:20")
	t.Setenv("RECENT_LIMIT", "10")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.StorageDriver)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, slots.BusinessHours{Start: 600, End: 1110}, cfg.Hours)
	require.Len(t, cfg.Catalog, 2)
	assert.Equal(t, model.Service{ID: "fade", Label: "Skin Fade", Duration: 45}, cfg.Catalog[0])
	assert.Equal(t, 10, cfg.RecentLimit)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestFromEnvClosingAtMidnight(t *testing.T) {
	cleanEnv(t)
	t.Setenv("BUSINESS_OPEN", "18:00")
	t.Setenv("BUSINESS_CLOSE", "24:00")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, slots.BusinessHours{Start: 1080, End: 1440}, cfg.Hours)
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing token", map[string]string{"TELEGRAM_TOKEN": ""}},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mongo"}},
		{"postgres without dsn", map[string]string{"STORAGE_DRIVER": "postgres"}},
		{"redis without addr", map[string]string{"STORAGE_DRIVER": "redis"}},
		{"bad env", map[string]string{"ENV": "staging"}},
		{"bad open", map[string]string{"BUSINESS_OPEN": "9am"}},
		{"open at midnight end", map[string]string{"BUSINESS_OPEN": "24:00"}},
		{"open after close", map[string]string{"BUSINESS_OPEN": "19:00", "BUSINESS_CLOSE": "09:00"}},
		{"bad services", map[string]string{"SERVICES": "hair:Haircut"}},
		{"zero duration service", map[string]string{"SERVICES": "hair:Haircut:0"}},
		{"bad recent limit", map[string]string{"RECENT_LIMIT": "five"}},
		{"negative recent limit", map[string]string{"RECENT_LIMIT": "-1"}},
		{"bad ttl", map[string]string{"SESSION_TTL": "forever"}},
		{"tiny ttl", map[string]string{"SESSION_TTL": "10ms"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
