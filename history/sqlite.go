package history

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"
)

// SchemaVersion is the current schema version.
const SchemaVersion = "1"

// SQLite is a SQLite-backed store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite opens or creates a SQLite history database at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS calculation_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			expression TEXT NOT NULL,
			result TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS calculation_history_timestamp
			ON calculation_history (timestamp);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}
	version, err := s.getMetadataUnlocked("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case "":
		if err := s.setMetadataUnlocked("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}
	return s, nil
}

// Insert records an entry.
func (s *SQLite) Insert(e Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.db.Exec(`
		INSERT INTO calculation_history (expression, result, timestamp) VALUES (?, ?, ?)
	`, e.Expression, e.Result, e.Timestamp.UnixMilli())
	if err != nil {
		return 0, err
	}
	return r.LastInsertId()
}

// Recent returns up to n of the most recent entries.
func (s *SQLite) Recent(n int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query(`
		SELECT id, expression, result, timestamp FROM calculation_history
		ORDER BY timestamp DESC, id DESC LIMIT ?
	`, limit(n))
}

// Search returns up to n of the most recent entries matching q.
func (s *SQLite) Search(q string, n int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pattern := "%" + likeEscaper.Replace(q) + "%"
	return s.query(`
		SELECT id, expression, result, timestamp FROM calculation_history
		WHERE expression LIKE ? ESCAPE '\' OR result LIKE ? ESCAPE '\'
		ORDER BY timestamp DESC, id DESC LIMIT ?
	`, pattern, pattern, limit(n))
}

// Delete removes an entry by ID.
func (s *SQLite) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM calculation_history WHERE id = ?", id)
	return err
}

// Clear removes all entries.
func (s *SQLite) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM calculation_history")
	return err
}

// Count returns the number of entries.
func (s *SQLite) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM calculation_history").Scan(&n)
	return n, err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// GetMetadata retrieves a metadata value by key.
func (s *SQLite) GetMetadata(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getMetadataUnlocked(key)
}

// getMetadataUnlocked retrieves metadata without locking (caller must hold lock).
func (s *SQLite) getMetadataUnlocked(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// setMetadataUnlocked stores metadata without locking (caller must hold lock).
func (s *SQLite) setMetadataUnlocked(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// query runs a listing query (caller must hold lock).
func (s *SQLite) query(q string, args ...interface{}) ([]Entry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		var ms int64
		if err := rows.Scan(&e.ID, &e.Expression, &e.Result, &ms); err != nil {
			return nil, err
		}
		e.Timestamp = time.UnixMilli(ms)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// limit converts a listing size to a LIMIT argument. SQLite treats a
// negative limit as no limit.
func limit(n int) int {
	if n <= 0 {
		return -1
	}
	return n
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
