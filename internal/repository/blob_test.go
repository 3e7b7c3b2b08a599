package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

func exerciseBlobStore(t *testing.T, store blobStore) {
	t.Helper()
	ctx := context.Background()

	data, err := store.Get(ctx, "museum-bookings-v1")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Set(ctx, "museum-bookings-v1", []byte(`{"2026-10-20":{"09:00":"hair"}}`)))
	require.NoError(t, store.Set(ctx, "museum-bookings-v1", []byte(`{"2026-10-20":{"09:00":"combo"}}`)))

	data, err = store.Get(ctx, "museum-bookings-v1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"2026-10-20":{"09:00":"combo"}}`, string(data))
}

// exerciseEmptyBlob: записанный пустой блоб отличается от отсутствующего
func exerciseEmptyBlob(t *testing.T, store blobStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "empty", []byte{}))
	data, err := store.Get(ctx, "empty")
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestMemoryBlobRepository(t *testing.T) {
	store := NewMemoryBlobRepository()
	exerciseBlobStore(t, store)
	exerciseEmptyBlob(t, store)
}

func TestFileBlobRepository(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store, err := NewFileBlobRepository(dir)
	require.NoError(t, err)

	exerciseBlobStore(t, store)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "museum-bookings-v1.json", entries[0].Name())

	exerciseEmptyBlob(t, store)
}

func TestFileBlobRepositoryRejectsPathKeys(t *testing.T) {
	store, err := NewFileBlobRepository(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidBlobKey)
	assert.ErrorIs(t, store.Set(context.Background(), "a/b", []byte("{}")), ErrInvalidBlobKey)
}

func TestRedisBlobRepository(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisBlobRepository(client, "barber:")
	exerciseBlobStore(t, store)
	assert.True(t, mr.Exists("barber:museum-bookings-v1"))
	exerciseEmptyBlob(t, store)
}

func TestRedisBlobRepositoryError(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	mr.Close()

	store := NewRedisBlobRepository(client, "")
	_, err = store.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestPostgresBlobRepository(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresBlobRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery("SELECT value FROM blobs").WithArgs("museum-bookings-v1").WillReturnError(pgx.ErrNoRows)
	data, err := store.Get(ctx, "museum-bookings-v1")
	require.NoError(t, err)
	assert.Nil(t, data)

	mock.ExpectExec("INSERT INTO blobs").WithArgs("museum-bookings-v1", `{"2026-10-20":{"09:00":"hair"}}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, store.Set(ctx, "museum-bookings-v1", []byte(`{"2026-10-20":{"09:00":"hair"}}`)))

	mock.ExpectQuery("SELECT value FROM blobs").WithArgs("museum-bookings-v1").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`{"2026-10-20":{"09:00":"hair"}}`))
	data, err = store.Get(ctx, "museum-bookings-v1")
	require.NoError(t, err)
	assert.Equal(t, `{"2026-10-20":{"09:00":"hair"}}`, string(data))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBlobRepositoryErrors(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresBlobRepository(mock)
	ctx := context.Background()
	boom := errors.New("connection reset")

	mock.ExpectQuery("SELECT value FROM blobs").WithArgs("k").WillReturnError(boom)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)

	mock.ExpectExec("INSERT INTO blobs").WithArgs("k", "{}").WillReturnError(boom)
	assert.ErrorIs(t, store.Set(ctx, "k", []byte("{}")), boom)

	require.NoError(t, mock.ExpectationsWereMet())
}
