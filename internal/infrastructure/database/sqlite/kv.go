package sqlite

import (
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type kvRepository struct {
	db *gorm.DB
}

// NewKVRepository creates a KeyValueStore backed by the kv_store table.
func NewKVRepository(db *gorm.DB) repository.KeyValueStore {
	return &kvRepository{db: db}
}

// Get retrieves the blob stored under key.
func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry entity.KVEntry
	if err := r.db.WithContext(ctx).Where("name = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set upserts the blob stored under key.
func (r *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	entry := entity.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	// Save inserts when no row matches the primary key.
	if err := r.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys.
func (r *kvRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("name IN ?", keys).Delete(&entity.KVEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete keys %v: %w", keys, err)
	}
	return nil
}
