package postgres

import (
	"context"
	"errors"
	"time"

	"klinechart/pkg/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ storage.Store = (*PostgresClient)(nil)

func (p *PostgresClient) Get(ctx context.Context, key string) ([]byte, error) {
	var rec SlotRecord
	err := p.DB.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.Value, nil
}

// Put upserts the slot, replacing any previous value.
func (p *PostgresClient) Put(ctx context.Context, key string, value []byte) error {
	rec := &SlotRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	return p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rec).Error
}
