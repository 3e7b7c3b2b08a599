package repository

import (
	"context"
	"sync"
)

// MemoryBlobRepository держит блобы в памяти процесса; для тестов и STORAGE_DRIVER=memory
type MemoryBlobRepository struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobRepository() *MemoryBlobRepository {
	return &MemoryBlobRepository{blobs: make(map[string][]byte)}
}

func (r *MemoryBlobRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.blobs[key]
	if !ok {
		return nil, nil
	}
	// пустой, но записанный блоб не должен выглядеть отсутствующим
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (r *MemoryBlobRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.blobs[key] = append([]byte(nil), value...)
	return nil
}
