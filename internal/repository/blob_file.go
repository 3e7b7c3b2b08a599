package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

var (
	ErrInvalidBlobKey = errors.New("invalid blob key")

	blobKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// FileBlobRepository хранит каждый блоб в отдельном файле <dir>/<key>.json
type FileBlobRepository struct {
	dir string
}

func NewFileBlobRepository(dir string) (*FileBlobRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileBlobRepository{dir: dir}, nil
}

func (r *FileBlobRepository) path(key string) (string, error) {
	if !blobKeyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidBlobKey, key)
	}
	return filepath.Join(r.dir, key+".json"), nil
}

func (r *FileBlobRepository) Get(_ context.Context, key string) ([]byte, error) {
	path, err := r.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

// Set пишет во временный файл и переименовывает, чтобы читатель не увидел половину блоба
func (r *FileBlobRepository) Set(_ context.Context, key string, value []byte) error {
	path, err := r.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp blob: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write blob: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename blob: %w", err)
	}
	return nil
}
