package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase establishes a connection to the database.
// When DATABASE_URL is set it connects to PostgreSQL; otherwise it falls back
// to a local SQLite file, creating the containing directory if missing.
func ConnectDatabase(cfg *Config) error {
	var err error

	if cfg.DatabaseURL != "" {
		DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		log.Println("Database connection established (postgres)")
		return nil
	}

	if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	DB, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to sqlite: %w", err)
	}
	log.Printf("Database connection established (sqlite: %s)", cfg.SQLitePath)
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB replaces the database instance (used by tests)
func SetDB(db *gorm.DB) {
	DB = db
}
