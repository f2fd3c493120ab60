// Package db provides a GORM-based database layer for gamebase.
// It uses the pure-Go SQLite driver.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Olexiy95/gamebase/internal/models"
)

// DB wraps the GORM database connection with gamebase-specific operations.
type DB struct {
	*gorm.DB
	path  string
	locks *keyedMutex
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and runs migrations.
func New(cfg Config) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Configure GORM logger
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// Build DSN with DELETE journal mode for simpler transaction handling
	// (WAL mode has visibility issues with the pure-Go SQLite driver)
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true, // Better performance for read operations
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path, locks: newKeyedMutex()}

	// Run auto-migrations
	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Game{},
		&models.AchievementRecord{},
		&models.StatRecord{},
		&models.ScrapeRun{},
		&models.GameOutcome{},
	)
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
// If the callback returns an error, the transaction is rolled back.
// If the callback returns nil, the transaction is committed.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path, locks: d.locks}
		return fc(wrappedTx)
	})
}

// Stats returns aggregate statistics about the database.
func (db *DB) Stats() (*StoreStats, error) {
	var stats StoreStats

	if err := db.Model(&models.Account{}).Count(&stats.Accounts).Error; err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}

	if err := db.Model(&models.Game{}).Count(&stats.Games).Error; err != nil {
		return nil, fmt.Errorf("count games: %w", err)
	}

	if err := db.Model(&models.AchievementRecord{}).Count(&stats.AchievementRecords).Error; err != nil {
		return nil, fmt.Errorf("count achievement records: %w", err)
	}

	if err := db.Model(&models.ScrapeRun{}).Count(&stats.ScrapeRuns).Error; err != nil {
		return nil, fmt.Errorf("count scrape runs: %w", err)
	}

	// Get database file size
	if info, err := os.Stat(db.path); err == nil {
		stats.SizeBytes = info.Size()
	}

	return &stats, nil
}

// StoreStats provides aggregate statistics.
type StoreStats struct {
	Accounts           int64 `json:"accounts"`
	Games              int64 `json:"games"`
	AchievementRecords int64 `json:"achievement_records"`
	ScrapeRuns         int64 `json:"scrape_runs"`
	SizeBytes          int64 `json:"size_bytes"`
}
