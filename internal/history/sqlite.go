package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists the transcript across sessions
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens (or creates) the transcript database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		text TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_entries_session ON entries(session_id);
	CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Append adds an entry to the transcript
func (s *SQLiteStore) Append(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, session_id, role, text, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.Role, entry.Text, entry.Timestamp)

	if err != nil {
		return fmt.Errorf("failed to append entry: %w", err)
	}

	return nil
}

// Entries returns up to limit entries for a session, oldest first
func (s *SQLiteStore) Entries(ctx context.Context, sessionID string, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, session_id, role, text, timestamp
		FROM entries WHERE session_id = ?
		ORDER BY timestamp ASC, id ASC
	`
	args := []interface{}{sessionID}
	if limit > 0 {
		// Newest N, then flipped back to chronological order
		query = `
			SELECT id, session_id, role, text, timestamp FROM (
				SELECT id, session_id, role, text, timestamp
				FROM entries WHERE session_id = ?
				ORDER BY timestamp DESC, id DESC LIMIT ?
			) ORDER BY timestamp ASC, id ASC
		`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Role, &e.Text, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// Clear removes all entries for a session
func (s *SQLiteStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
