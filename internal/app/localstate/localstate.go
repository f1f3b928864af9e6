/*
Package localstate implements the durable local identity store.

It keeps a single serialized copy of the active user in a sqlite database
under the user data directory, the board equivalent of browser local storage.
The copy exists only for fast session restore at startup; it is always
re-validated against the authoritative user set before being trusted.
*/
package localstate

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"taskboard/internal/app/model"
	"taskboard/internal/pkg/logx"
)

const schema = `
CREATE TABLE IF NOT EXISTS identity (
    slot INTEGER PRIMARY KEY CHECK (slot = 1),
    record TEXT NOT NULL
);
`

// Store persists the active user identity across process restarts.
type Store struct {
	db *sql.DB
}

// Open creates or opens the local state database at the given path.
// An empty path places the database under the XDG data directory.
func Open(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open local state database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize local state schema: %w", err)
	}

	return &Store{db: db}, nil
}

// defaultPath returns the default database location, creating the
// application data directory if needed.
func defaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "taskboard")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "state.db"), nil
}

// Get returns the saved user identity, or nil if none is stored.
// A stored record that fails to decode is treated as absent: it is logged
// and cleared, never surfaced as a fatal error.
func (s *Store) Get() (*model.User, error) {
	var record string
	err := s.db.QueryRow(`SELECT record FROM identity WHERE slot = 1`).Scan(&record)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read saved identity: %w", err)
	}

	var u model.User
	if err := json.Unmarshal([]byte(record), &u); err != nil {
		logx.Warn("Saved identity record is malformed. Discarding it.", "error", err.Error())
		if clearErr := s.Clear(); clearErr != nil {
			logx.Error(clearErr, "Failed to clear malformed identity record")
		}
		return nil, nil
	}

	return &u, nil
}

// Set saves the given user as the active identity, replacing any previous one.
func (s *Store) Set(u model.User) error {
	record, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode identity record: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO identity (slot, record) VALUES (1, ?)
		ON CONFLICT(slot) DO UPDATE SET record = excluded.record
	`, string(record))
	if err != nil {
		return fmt.Errorf("save identity record: %w", err)
	}
	return nil
}

// Clear removes the saved identity, if any.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM identity WHERE slot = 1`); err != nil {
		return fmt.Errorf("clear identity record: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
