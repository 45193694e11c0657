package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the process-wide database handle.
var DB *gorm.DB

// Init opens the database and migrates the schema.
// An empty databasePath falls back to portfolio.db.
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "portfolio.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	gdb, err := Open(path, logger.Warn)
	if err != nil {
		return err
	}
	DB = gdb
	return nil
}

// Open connects to the SQLite database at dsn and runs AutoMigrate.
func Open(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate creates or updates every table the content store uses.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&Category{},
		&Subcategory{},
		&Content{},
		&Collection{},
		&ContentCollection{},
		&ResumeEntryType{},
		&ResumeEntry{},
		&Profile{},
		&DownloadableFile{},
	)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
