package state

import (
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/barber_bot/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager() (*Manager, *testClock) {
	clock := &testClock{now: time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)}
	factory := func() *service.Session {
		return &service.Session{ID: uuid.New(), ServiceID: "hair"}
	}
	return NewManager(factory, clock.Now), clock
}

func TestWithCreatesAndKeepsSession(t *testing.T) {
	sm, _ := newTestManager()

	var first, second uuid.UUID
	require.NoError(t, sm.With(1, func(sess *service.Session) error {
		first = sess.ID
		sess.ServiceID = "combo"
		return nil
	}))
	require.NoError(t, sm.With(1, func(sess *service.Session) error {
		second = sess.ID
		assert.Equal(t, "combo", sess.ServiceID)
		return nil
	}))

	assert.Equal(t, first, second)
	assert.True(t, sm.Has(1))
	assert.False(t, sm.Has(2))
}

func TestResetDropsSession(t *testing.T) {
	sm, _ := newTestManager()

	var before, after uuid.UUID
	_ = sm.With(7, func(sess *service.Session) error { before = sess.ID; return nil })
	sm.Reset(7)
	assert.False(t, sm.Has(7))
	_ = sm.With(7, func(sess *service.Session) error { after = sess.ID; return nil })

	assert.NotEqual(t, before, after)
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	sm, clock := newTestManager()

	_ = sm.With(1, func(*service.Session) error { return nil })
	clock.Advance(20 * time.Minute)
	_ = sm.With(2, func(*service.Session) error { return nil })
	clock.Advance(15 * time.Minute)

	removed := sm.Sweep(30 * time.Minute)
	assert.Equal(t, 1, removed)
	assert.False(t, sm.Has(1))
	assert.True(t, sm.Has(2))
	assert.Equal(t, 1, sm.Len())
}

func TestWithSerializesPerChat(t *testing.T) {
	sm, _ := newTestManager()

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sm.With(42, func(sess *service.Session) error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()

				counter++

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 50, counter)
}
