// Package store persists learner progress in a local SQLite database.
package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Store owns the database handle and the repositories built on it.
type Store struct {
	db *gorm.DB

	Completions CompletionRepo
	Activity    ActivityRepo
	Reviews     ReviewRepo
}

// Open opens (creating if needed) the SQLite database at path and runs
// migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)

	gormLog := gormLogger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&Completion{}, &StudyEvent{}, &Review{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{
		db:          db,
		Completions: NewCompletionRepo(db),
		Activity:    NewActivityRepo(db),
		Reviews:     NewReviewRepo(db),
	}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUANTSLEARN_DB environment variable
// 2. $XDG_DATA_HOME/quantslearn/quantslearn.db
// 3. ~/.local/share/quantslearn/quantslearn.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUANTSLEARN_DB"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "quantslearn", "quantslearn.db"), nil
}
