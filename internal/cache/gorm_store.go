package cache

import (
	"errors"

	"country-explorer/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists cache entries in the cache_entries table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by db. The cache_entries table must exist
// (see database.InitDB).
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get implements Store.Get.
func (s *GormStore) Get(key string) ([]byte, bool, error) {
	var entry models.CacheEntry
	err := s.db.Where("cache_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(entry.Value), true, nil
}

// Set implements Store.Set as an upsert on the primary key.
func (s *GormStore) Set(key string, value []byte) error {
	entry := models.CacheEntry{Key: key, Value: string(value)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Delete implements Store.Delete.
func (s *GormStore) Delete(key string) error {
	return s.db.Where("cache_key = ?", key).Delete(&models.CacheEntry{}).Error
}

// Keys implements Store.Keys.
func (s *GormStore) Keys(prefix string) ([]string, error) {
	var keys []string
	err := s.db.Model(&models.CacheEntry{}).
		Where("cache_key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("cache_key").
		Pluck("cache_key", &keys).Error
	return keys, err
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

var _ Store = (*GormStore)(nil)
