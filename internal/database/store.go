// Package database provides the persisted key-value blob store and the
// per-resource repositories built on top of it. The engine keeps one JSON
// blob per logical resource (progress, session draft, app settings).
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Store is the blob store handle. Construct it once in main and pass it to
// the repositories; there is no package-level connection.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Options configure the database connection.
type Options struct {
	// Driver is "sqlite3" or "postgres". Defaults to sqlite3.
	Driver string
	// DSN is the sqlite file path or the postgres connection string.
	DSN string
}

// OptionsFromEnv builds Options from DB_TYPE and DATABASE_URL, defaulting to
// a local sqlite file under data/.
func OptionsFromEnv() Options {
	if os.Getenv("DB_TYPE") == "postgres" {
		return Options{Driver: "postgres", DSN: os.Getenv("DATABASE_URL")}
	}
	return Options{Driver: "sqlite3", DSN: filepath.Join("data", "practicebot.db")}
}

// Open connects to the database and ensures the blobs table exists.
func Open(opts Options) (*Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = "sqlite3"
	}

	if driver == "sqlite3" {
		if err := os.MkdirAll(filepath.Dir(opts.DSN), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}
	}

	db, err := sqlx.Connect(driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if driver == "sqlite3" {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &Store{db: db, driver: driver}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create blobs table: %v", err)
	}
	return nil
}

// Get returns the blob stored under key, reporting whether it exists.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.Get(&value, "SELECT value FROM blobs WHERE key = $1", key)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get blob %s: %v", key, err)
	}
	return []byte(value), true, nil
}

// Set stores value under key, replacing any previous blob.
func (s *Store) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO blobs (key, value, updated_at) VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("failed to set blob %s: %v", key, err)
	}
	return nil
}

// Delete removes the blob stored under key. Deleting a missing key is not an
// error.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM blobs WHERE key = $1", key)
	if err != nil {
		return fmt.Errorf("failed to delete blob %s: %v", key, err)
	}
	return nil
}
