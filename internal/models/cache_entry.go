package models

import "time"

// CacheEntry is one row of the persistent key/value medium backing the expiring cache.
// Value holds the JSON envelope written by the cache layer.
type CacheEntry struct {
	Key       string    `gorm:"column:cache_key;primaryKey;size:512"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName specifies the table name for CacheEntry Model
func (CacheEntry) TableName() string {
	return "cache_entries"
}
