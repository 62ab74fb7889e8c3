package database

import (
	"fmt"

	"gorm.io/gorm"
)

// OpenInMemory opens a private in-memory SQLite database and migrates the given models
func OpenInMemory(models ...interface{}) (*gorm.DB, error) {
	db, err := NewSQLiteConnection(":memory:")
	if err != nil {
		return nil, err
	}
	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}
