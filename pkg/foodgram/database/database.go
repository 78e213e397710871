package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect initializes the database connection.
// TranslateError is enabled so unique-constraint races surface as
// gorm.ErrDuplicatedKey and can be mapped to domain errors at the boundary.
func Connect(dsn string) error {
	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}
	// SQLite does not enforce foreign keys unless asked; cascades depend on it.
	return DB.Exec("PRAGMA foreign_keys = ON").Error
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
