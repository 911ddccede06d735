package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValueEntry is one row of kv_entries. Value holds the raw JSON text
// of a collection.
type KeyValueEntry struct {
	Key       string    `gorm:"column:storage_key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (KeyValueEntry) TableName() string {
	return "kv_entries"
}

type KeyValueRepository struct {
	database *gorm.DB
}

func NewKeyValueRepository(database *gorm.DB) *KeyValueRepository {
	return &KeyValueRepository{database: database}
}

func (repo *KeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var entry KeyValueEntry
	err := repo.database.WithContext(ctx).
		Where("storage_key = ?", key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (repo *KeyValueRepository) Set(ctx context.Context, key string, value string) error {
	now := time.Now().UTC()
	entry := KeyValueEntry{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return repo.database.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (repo *KeyValueRepository) RemoveMany(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return repo.database.WithContext(ctx).
		Where("storage_key IN ?", keys).
		Delete(&KeyValueEntry{}).Error
}

func (repo *KeyValueRepository) Keys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0)
	if err := repo.database.WithContext(ctx).
		Model(&KeyValueEntry{}).
		Order("storage_key ASC").
		Pluck("storage_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}
