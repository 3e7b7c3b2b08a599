package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Freeeeeet/barber_bot/internal/model"
	"github.com/Freeeeeet/barber_bot/internal/slots"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"

	defaultStorageKey  = "museum-bookings-v1"
	defaultStoragePath = "data"
	defaultOpen        = "09:00"
	defaultClose       = "19:00"
	defaultRecentLimit = 5
	defaultSessionTTL  = 30 * time.Minute
	defaultHTTPAddr    = ":8080"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	TelegramToken string `validate:"required"`
	Environment   string `validate:"oneof=development production"`
	LogLevel      string `validate:"omitempty,oneof=debug info warn error"`

	StorageDriver string `validate:"oneof=memory file postgres redis"`
	StoragePath   string `validate:"required_if=StorageDriver file"`
	StorageKey    string `validate:"required"`
	DBDSN         string `validate:"required_if=StorageDriver postgres"`
	RedisAddr     string `validate:"required_if=StorageDriver redis"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`

	Hours       slots.BusinessHours
	Catalog     model.Catalog `validate:"required,min=1"`
	RecentLimit int           `validate:"gte=0"`
	SessionTTL  time.Duration `validate:"min=1s"`
	HTTPAddr    string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфигурацию из переменных окружения, подставляет значения
// по умолчанию и проверяет результат
func FromEnv() (*Config, error) {
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Environment:   getenv("ENV", "development"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		StorageDriver: getenv("STORAGE_DRIVER", DriverMemory),
		StoragePath:   getenv("STORAGE_PATH", defaultStoragePath),
		StorageKey:    getenv("STORAGE_KEY", defaultStorageKey),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		HTTPAddr:      getenv("HTTP_ADDR", defaultHTTPAddr),
	}

	var err error
	if cfg.RedisDB, err = getenvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RecentLimit, err = getenvInt("RECENT_LIMIT", defaultRecentLimit); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getenvDuration("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.Hours, err = parseHours(getenv("BUSINESS_OPEN", defaultOpen), getenv("BUSINESS_CLOSE", defaultClose)); err != nil {
		return nil, err
	}

	if raw := os.Getenv("SERVICES"); raw != "" {
		if cfg.Catalog, err = model.ParseCatalog(raw); err != nil {
			return nil, fmt.Errorf("%w: SERVICES: %w", ErrInvalidConfig, err)
		}
	} else {
		cfg.Catalog = model.DefaultCatalog()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет теги полей и доменные ограничения
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Hours.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func parseHours(open, closing string) (slots.BusinessHours, error) {
	start, err := slots.ParseClock(open)
	if err != nil {
		return slots.BusinessHours{}, fmt.Errorf("%w: BUSINESS_OPEN: %w", ErrInvalidConfig, err)
	}
	end, err := slots.ParseClosingClock(closing)
	if err != nil {
		return slots.BusinessHours{}, fmt.Errorf("%w: BUSINESS_CLOSE: %w", ErrInvalidConfig, err)
	}
	return slots.BusinessHours{Start: start, End: end}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, raw)
	}
	return v, nil
}

func getenvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, raw)
	}
	return v, nil
}
