package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/barber_bot/internal/repository/base"
)

// PostgresBlobRepository хранит блобы в таблице blobs (см. миграции)
type PostgresBlobRepository struct {
	*base.Repository
}

func NewPostgresBlobRepository(db base.DB) *PostgresBlobRepository {
	return &PostgresBlobRepository{Repository: base.NewRepository(db)}
}

// Get возвращает содержимое блоба или nil, если его нет
func (r *PostgresBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM blobs WHERE key = $1`

	var value string
	err := r.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blob: %w", err)
	}

	return []byte(value), nil
}

// Set перезаписывает блоб целиком
func (r *PostgresBlobRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO blobs (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	affected, err := r.ExecAffected(ctx, query, key, string(value))
	if err != nil {
		return fmt.Errorf("set blob: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set blob: no rows written")
	}

	return nil
}
