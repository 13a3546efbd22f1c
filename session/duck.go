package session

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// DDLCreateClientStateTable holds key-value client state.
// The session token is the row keyed by TokenKey.
const DDLCreateClientStateTable = `
CREATE TABLE IF NOT EXISTS client_state (
    state_key   VARCHAR PRIMARY KEY,
    state_value VARCHAR NOT NULL,
    updated_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// DBStore persists the token in a DuckDB database file
type DBStore struct {
	db *sql.DB
	mu sync.Mutex // DuckDB allows one writer; serialize our own writes
}

// OpenDBStore opens (creating if needed) the database at path and runs the migration.
// An empty path opens an in-memory database, which is handy in tests.
func OpenDBStore(path string) (*DBStore, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, serr.Wrap(err, "failed to create session db directory")
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open session database")
	}

	if _, err := db.Exec(DDLCreateClientStateTable); err != nil {
		_ = db.Close()
		return nil, serr.Wrap(err, "failed to create client_state table")
	}

	logger.Debug("Session database ready", "path", path)
	return &DBStore{db: db}, nil
}

// Close releases the database handle
func (s *DBStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *DBStore) Get() (string, error) {
	var token string
	err := s.db.QueryRow(
		"SELECT state_value FROM client_state WHERE state_key = ?", TokenKey,
	).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", serr.Wrap(err, "failed to read session token")
	}
	return token, nil
}

func (s *DBStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO client_state (state_key, state_value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (state_key) DO UPDATE SET
			state_value = excluded.state_value,
			updated_at = excluded.updated_at
	`, TokenKey, token)
	if err != nil {
		return serr.Wrap(err, "failed to store session token")
	}
	return nil
}

func (s *DBStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM client_state WHERE state_key = ?", TokenKey); err != nil {
		return serr.Wrap(err, "failed to clear session token")
	}
	return nil
}
