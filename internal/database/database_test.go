package database

import (
	"path/filepath"
	"testing"

	"country-explorer/internal/models"

	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesCacheTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	db, err := InitDB(path, false)
	require.NoError(t, err)
	require.Same(t, db, GetDB())
	require.True(t, db.Migrator().HasTable(&models.CacheEntry{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestInitDB_InvalidPath(t *testing.T) {
	_, err := InitDB(filepath.Join(t.TempDir(), "missing", "dir", "cache.db"), false)
	require.Error(t, err)
}
