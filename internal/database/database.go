package database

import (
	"fmt"
	"log"

	"country-explorer/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the SQLite cache database at path and runs migrations.
// glebarez/sqlite is a pure Go implementation (no CGO required).
func InitDB(path string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	// the file is created if it doesn't exist yet
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to cache database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&models.CacheEntry{}); err != nil {
		return nil, fmt.Errorf("migrate cache database: %w", err)
	}

	DB = db
	log.Printf("database: cache database %s connected and migrated", path)
	return db, nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
