package postgres

import "time"

// SlotRecord holds one whole-value storage slot.
type SlotRecord struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Value     []byte    `gorm:"type:bytea;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the default table name for GORM.
func (SlotRecord) TableName() string {
	return "kv_slot"
}
