package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contexts (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contexts_expires ON contexts(expires_at);
`

// SQLite is a persistent Store backed by a SQLite database file. Expired rows
// are deleted lazily on read.
type SQLite struct {
	dsn  string
	conn *sql.DB
	now  func() time.Time
}

// NewSQLite creates a SQLite store for the given database path. The store is
// unusable until Connect is called.
func NewSQLite(path string) *SQLite {
	return &SQLite{dsn: path, now: time.Now}
}

// Connect opens (or creates) the database and applies the schema.
func (s *SQLite) Connect() error {
	conn, err := sql.Open("sqlite3", s.dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("cache: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("cache: ping: %w", err)
	}
	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return fmt.Errorf("cache: apply schema: %w", err)
	}
	s.conn = conn
	return nil
}

// Disconnect closes the underlying database connection.
func (s *SQLite) Disconnect() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// Get returns the value for key. Expired rows are removed and reported as a
// miss.
func (s *SQLite) Get(key string) ([]byte, bool, error) {
	if s.conn == nil {
		return nil, false, errors.New("cache: not connected")
	}

	var value []byte
	var expiresAt int64
	err := s.conn.QueryRow(`SELECT value, expires_at FROM contexts WHERE key = ?`, key).
		Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}

	if s.now().Unix() >= expiresAt {
		_, _ = s.conn.Exec(`DELETE FROM contexts WHERE key = ?`, key)
		return nil, false, nil
	}

	return value, true, nil
}

// SetEx upserts the value with its expiry timestamp (last writer wins).
func (s *SQLite) SetEx(key string, ttl time.Duration, value []byte) error {
	if s.conn == nil {
		return errors.New("cache: not connected")
	}

	expiresAt := s.now().Add(ttl).Unix()
	_, err := s.conn.Exec(`
		INSERT INTO contexts (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			expires_at = excluded.expires_at
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}
