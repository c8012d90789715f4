// Package sqlite provides a SQLite-backed key/value store. Every value is
// stored with its SHA256 checksum, which is verified on read.
package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dashkit/todo/internal/storage"
)

const timeFormat = "2006-01-02T15:04:05Z"

const schema = `
CREATE TABLE IF NOT EXISTS entries (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL,
  checksum TEXT NOT NULL,
  updated TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT
);
`

// schemaVersion is recorded in the metadata table on open.
const schemaVersion = "1"

// Store wraps a SQLite database holding key/value entries.
type Store struct {
	db     *sql.DB
	dbPath string
	opts   storage.Options
}

// Compile-time checks that Store satisfies the storage interfaces.
var (
	_ storage.Store    = (*Store)(nil)
	_ storage.Verifier = (*Store)(nil)
)

// Open opens or creates a SQLite store at the given path and initializes the schema.
func Open(dbPath string, opts ...storage.Option) (*Store, error) {
	o := storage.ApplyOptions(opts...)

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=%d", dbPath, o.LockTimeout.Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("failed to open store db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize store schema: %w", err)
	}

	if _, err := db.Exec("INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)", "schema_version", schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to record schema version: %w", err)
	}

	o.Log(fmt.Sprintf("sqlite: opened %s", dbPath))
	return &Store{db: db, dbPath: dbPath, opts: o}, nil
}

// DB returns the underlying *sql.DB for direct queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value for key. It returns storage.ErrNotFound for a missing
// key and wraps storage.ErrChecksum when the stored checksum does not match.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := storage.ValidateKey(key); err != nil {
		return nil, err
	}

	s.opts.Log(fmt.Sprintf("read: entry %s", key))
	value, stored, err := s.read(ctx, key)
	if err != nil {
		return nil, err
	}

	if computeHash(value) != stored {
		return nil, fmt.Errorf("%w: key %s", storage.ErrChecksum, key)
	}
	s.opts.Log("read: checksum verified")
	return value, nil
}

// Set replaces the value for key and its checksum in a single transaction.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin write transaction: %w", err)
	}
	defer tx.Rollback()

	s.opts.Log(fmt.Sprintf("write: entry %s", key))
	_, err = tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO entries (key, value, checksum, updated) VALUES (?, ?, ?, ?)",
		key, value, computeHash(value), time.Now().UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to write entry %s: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit write transaction: %w", err)
	}
	s.opts.Log(fmt.Sprintf("write: wrote %d bytes", len(value)))
	return nil
}

// Verify checks the stored checksum for key without returning the value.
func (s *Store) Verify(ctx context.Context, key string) error {
	value, stored, err := s.read(ctx, key)
	if err != nil {
		return err
	}
	if computeHash(value) != stored {
		return fmt.Errorf("%w: key %s", storage.ErrChecksum, key)
	}
	return nil
}

// Raw returns the stored value for key without checking its checksum.
func (s *Store) Raw(ctx context.Context, key string) ([]byte, error) {
	value, _, err := s.read(ctx, key)
	return value, err
}

func (s *Store) read(ctx context.Context, key string) ([]byte, string, error) {
	var value []byte
	var stored string
	err := s.db.QueryRowContext(ctx, "SELECT value, checksum FROM entries WHERE key = ?", key).Scan(&value, &stored)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", storage.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to query entry %s: %w", key, err)
	}
	return value, stored, nil
}

// computeHash returns the SHA256 hex digest of the given data.
func computeHash(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h)
}
