package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper удаляет сессии, простаивающие дольше idle
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// SessionJanitor периодически вычищает брошенные сессии бронирования
type SessionJanitor struct {
	sessions Sweeper
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// NewSessionJanitor создаёт новый janitor. Проверка идёт раз в ttl/2, но не реже раза в минуту.
func NewSessionJanitor(sessions Sweeper, ttl time.Duration, logger *zap.Logger) *SessionJanitor {
	interval := ttl / 2
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	return &SessionJanitor{
		sessions: sessions,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновую очистку
func (j *SessionJanitor) Start(ctx context.Context) {
	j.logger.Info("Starting session janitor",
		zap.Duration("ttl", j.ttl),
		zap.Duration("interval", j.interval))

	go j.run(ctx)
}

// Stop останавливает очистку и ждёт завершения горутины
func (j *SessionJanitor) Stop() {
	j.logger.Info("Stopping session janitor")
	close(j.stopChan)
	<-j.done
}

func (j *SessionJanitor) run(ctx context.Context) {
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.SweepOnce()
		case <-j.stopChan:
			j.logger.Info("Session janitor stopped")
			return
		case <-ctx.Done():
			j.logger.Info("Session janitor cancelled")
			return
		}
	}
}

// SweepOnce удаляет простаивающие сессии и возвращает их число
func (j *SessionJanitor) SweepOnce() int {
	removed := j.sessions.Sweep(j.ttl)
	if removed > 0 {
		j.logger.Info("Evicted idle sessions", zap.Int("count", removed))
	}
	return removed
}
