package database

import (
	"errors"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/godwish/build-portal/internal/models"
)

// Connect opens the sqlite database file, creating its parent directory if
// needed.
func Connect(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, errors.New("empty database path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the builds table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Build{})
}
