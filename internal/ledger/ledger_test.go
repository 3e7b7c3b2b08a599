package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Freeeeeet/barber_bot/internal/model"
	"github.com/Freeeeeet/barber_bot/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testKey = "museum-bookings-v1"

type fakeStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	getErr  error
	setErr  error
	setCall int
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: make(map[string][]byte)}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.blobs[key], nil
}

func (s *fakeStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCall++
	if s.setErr != nil {
		return s.setErr
	}
	s.blobs[key] = append([]byte(nil), value...)
	return nil
}

type recordingObserver struct {
	loads  []LoadResult
	claims []string
}

func (o *recordingObserver) ObserveLoad(result LoadResult) { o.loads = append(o.loads, result) }
func (o *recordingObserver) ObserveClaim(result string)    { o.claims = append(o.claims, result) }

func openLedger(t *testing.T, store BlobStore) *Ledger {
	t.Helper()
	l, err := Open(context.Background(), store, testKey, nil, zap.NewNop())
	require.NoError(t, err)
	return l
}

func TestClaimExclusivity(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, newFakeStore())

	require.NoError(t, l.Claim(ctx, "2026-10-20", "09:00", "hair"))
	assert.True(t, l.IsBooked("2026-10-20", "09:00"))

	for _, serviceID := range []string{"hair", "combo", "other"} {
		err := l.Claim(ctx, "2026-10-20", "09:00", serviceID)
		assert.ErrorIs(t, err, ErrAlreadyBooked)
	}
	assert.Equal(t, "hair", l.Snapshot()["2026-10-20"]["09:00"])
}

func TestClaimPersistsBeforeSuccess(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	l := openLedger(t, store)

	require.NoError(t, l.Claim(ctx, "2026-10-20", "10:00", "combo"))

	persisted, err := Decode(store.blobs[testKey])
	require.NoError(t, err)
	assert.Equal(t, Bookings{"2026-10-20": {"10:00": "combo"}}, persisted)
}

func TestClaimStoreFailureLeavesLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	l := openLedger(t, store)
	store.setErr = errors.New("disk full")

	err := l.Claim(ctx, "2026-10-20", "10:00", "combo")
	require.Error(t, err)
	assert.False(t, l.IsBooked("2026-10-20", "10:00"))
	assert.Empty(t, l.List())

	store.setErr = nil
	require.NoError(t, l.Claim(ctx, "2026-10-20", "10:00", "combo"))
}

func TestClaimAlreadyBookedDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	l := openLedger(t, store)

	require.NoError(t, l.Claim(ctx, "2026-10-20", "10:00", "hair"))
	require.ErrorIs(t, l.Claim(ctx, "2026-10-20", "10:00", "hair"), ErrAlreadyBooked)
	assert.Equal(t, 1, store.setCall)
}

func TestClaimInvalidKeys(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, newFakeStore())

	assert.ErrorIs(t, l.Claim(ctx, "20-10-2026", "10:00", "hair"), ErrInvalidKey)
	assert.ErrorIs(t, l.Claim(ctx, "2026-10-20", "10", "hair"), ErrInvalidKey)
	assert.ErrorIs(t, l.Claim(ctx, "2026-10-20", "10:00", ""), ErrInvalidKey)
	assert.Empty(t, l.List())
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	l := openLedger(t, store)

	claims := []model.Reservation{
		{DateKey: "2026-10-20", TimeKey: "09:00", ServiceID: "hair"},
		{DateKey: "2026-10-20", TimeKey: "09:30", ServiceID: "combo"},
		{DateKey: "2026-11-02", TimeKey: "18:00", ServiceID: "combo"},
	}
	for _, c := range claims {
		require.NoError(t, l.Claim(ctx, c.DateKey, c.TimeKey, c.ServiceID))
	}

	reloaded := openLedger(t, store)
	assert.Equal(t, l.Snapshot(), reloaded.Snapshot())
	assert.Equal(t, l.List(), reloaded.List())
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, newFakeStore())

	require.NoError(t, l.Claim(ctx, "2025-03-10", "09:00", "hair"))
	require.NoError(t, l.Claim(ctx, "2025-03-09", "18:00", "combo"))
	require.NoError(t, l.Claim(ctx, "2025-03-10", "08:30", "hair"))

	assert.Equal(t, []model.Reservation{
		{DateKey: "2025-03-09", TimeKey: "18:00", ServiceID: "combo"},
		{DateKey: "2025-03-10", TimeKey: "08:30", ServiceID: "hair"},
		{DateKey: "2025-03-10", TimeKey: "09:00", ServiceID: "hair"},
	}, l.List())

	assert.Len(t, l.Recent(2), 2)
	assert.Len(t, l.Recent(0), 3)
	assert.Len(t, l.Recent(10), 3)
}

func TestOpenMalformedStore(t *testing.T) {
	for _, raw := range []string{`42`, `"text"`, `[1,2,3]`, `{"2026-10-20": 5}`, `{"2026-10-20": {"09:00": 1}}`, `{not json`} {
		t.Run(raw, func(t *testing.T) {
			store := newFakeStore()
			store.blobs[testKey] = []byte(raw)
			observer := &recordingObserver{}

			l, err := Open(context.Background(), store, testKey, observer, zap.NewNop())
			require.NoError(t, err)
			assert.Empty(t, l.List())
			assert.Equal(t, []LoadResult{LoadMalformed}, observer.loads)
		})
	}
}

func TestDecodeDropsInvalidEntries(t *testing.T) {
	raw := `{
		"2026-10-20": {"09:00": null, "10:00": "hair", "9:30": "hair", "11:00": ""},
		"junk": {"x": "y"},
		"2026-10-21": {"09:00": null}
	}`

	bookings, err := Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, Bookings{"2026-10-20": {"10:00": "hair"}}, bookings)

	store := newFakeStore()
	store.blobs[testKey] = []byte(raw)
	l := openLedger(t, store)
	assert.False(t, l.IsBooked("2026-10-20", "09:00"))
	assert.Len(t, l.List(), 1)
	require.NoError(t, l.Claim(context.Background(), "2026-10-20", "09:00", "combo"))
}

func TestOpenMissingAndNull(t *testing.T) {
	observer := &recordingObserver{}
	store := newFakeStore()

	l, err := Open(context.Background(), store, testKey, observer, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, l.List())

	store.blobs[testKey] = []byte("null")
	l, err = Open(context.Background(), store, testKey, observer, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, l.List())

	assert.Equal(t, []LoadResult{LoadMissing, LoadOK}, observer.loads)
}

func TestOpenEmptyStoredBlob(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryBlobRepository()
	require.NoError(t, store.Set(ctx, testKey, []byte{}))

	observer := &recordingObserver{}
	l, err := Open(ctx, store, testKey, observer, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, l.List())
	assert.Equal(t, []LoadResult{LoadOK}, observer.loads)
}

func TestOpenStoreError(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")

	_, err := Open(context.Background(), store, testKey, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestConcurrentClaimsHaveSingleWinner(t *testing.T) {
	ctx := context.Background()
	observer := &recordingObserver{}
	l, err := Open(ctx, newFakeStore(), testKey, observer, zap.NewNop())
	require.NoError(t, err)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		losses int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.Claim(ctx, "2026-10-20", "12:00", "hair")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if errors.Is(err, ErrAlreadyBooked) {
				losses++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 19, losses)
	assert.Len(t, observer.claims, 20)
}
