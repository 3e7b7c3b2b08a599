package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSweeper struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (f *fakeSweeper) Sweep(idle time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, idle)
	return 2
}

func (f *fakeSweeper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestSweepOncePassesTTL(t *testing.T) {
	sweeper := &fakeSweeper{}
	j := NewSessionJanitor(sweeper, 30*time.Minute, zap.NewNop())

	assert.Equal(t, 2, j.SweepOnce())
	assert.Equal(t, []time.Duration{30 * time.Minute}, sweeper.calls)
	assert.Equal(t, time.Minute, j.interval)
}

func TestJanitorRunsUntilStopped(t *testing.T) {
	sweeper := &fakeSweeper{}
	j := NewSessionJanitor(sweeper, 20*time.Millisecond, zap.NewNop())
	assert.Equal(t, 10*time.Millisecond, j.interval)

	j.Start(context.Background())
	assert.Eventually(t, func() bool { return sweeper.count() >= 2 }, time.Second, 5*time.Millisecond)
	j.Stop()

	after := sweeper.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, sweeper.count())
}

func TestJanitorStopsOnContextCancel(t *testing.T) {
	j := NewSessionJanitor(&fakeSweeper{}, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	j.Start(ctx)
	cancel()

	select {
	case <-j.done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}
