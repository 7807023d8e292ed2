package entity

import "time"

// KVEntry is one named blob in the durable key-value table.
type KVEntry struct {
	Key       string    `gorm:"column:name;primaryKey"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the KVEntry entity.
func (KVEntry) TableName() string {
	return "kv_store"
}
