package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/barber_bot/internal/app"
	"github.com/Freeeeeet/barber_bot/internal/config"
	"github.com/Freeeeeet/barber_bot/internal/controller"
	"github.com/Freeeeeet/barber_bot/internal/controller/state"
	"github.com/Freeeeeet/barber_bot/internal/httpapi"
	"github.com/Freeeeeet/barber_bot/internal/ledger"
	"github.com/Freeeeeet/barber_bot/internal/metrics"
	"github.com/Freeeeeet/barber_bot/internal/repository"
	"github.com/Freeeeeet/barber_bot/internal/service"
	"github.com/Freeeeeet/barber_bot/migrations"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting barber bot",
		zap.String("environment", cfg.Environment),
		zap.String("storage", cfg.StorageDriver),
		zap.Int("services", len(cfg.Catalog)),
		zap.Int("token_length", len(cfg.TelegramToken)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingMetrics := metrics.NewBookingMetrics(reg)

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	l, err := ledger.Open(ctx, store, cfg.StorageKey, bookingMetrics, logger)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}

	bookingService := service.NewBookingService(
		cfg.Catalog,
		cfg.Hours,
		l,
		time.Now,
		cfg.RecentLimit,
		bookingMetrics,
		logger,
	)

	sessions := state.NewManager(bookingService.NewSession, time.Now)
	janitor := app.NewSessionJanitor(sessions, cfg.SessionTTL, logger)
	janitor.Start(ctx)
	defer janitor.Stop()

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewServer(bookingService, reg, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Starting HTTP API", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP API failed", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP API shutdown failed", zap.Error(err))
		}
	}()

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	botController := controller.NewBotController(b, bookingService, sessions, bookingMetrics, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично, бот работает и без него
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	return botController.Start(ctx)
}

// openStore выбирает хранилище блоба по STORAGE_DRIVER
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ledger.BlobStore, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.DriverFile:
		store, err := repository.NewFileBlobRepository(cfg.StoragePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open file store: %w", err)
		}
		return store, noop, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("ping postgres: %w", err)
		}

		migrator, err := app.NewMigrator(pool, migrations.FS, ".", logger)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		defer migrator.Close()
		if err := migrator.Run(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return repository.NewPostgresBlobRepository(pool), pool.Close, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("ping redis: %w", err)
		}
		return repository.NewRedisBlobRepository(client, "barber:"), func() { _ = client.Close() }, nil

	default:
		logger.Warn("Using in-memory storage, bookings are lost on restart")
		return repository.NewMemoryBlobRepository(), noop, nil
	}
}
