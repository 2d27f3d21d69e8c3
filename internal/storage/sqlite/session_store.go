// Package sqlite provides the SQLite-backed session store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/skrylnikov/arcana/internal/storage"
	"github.com/skrylnikov/arcana/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	user_id    TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
`

// SessionStore implements storage.SessionStore using SQLite. The session is
// stored as a JSON document keyed by user id; updated_at drives lazy expiry.
type SessionStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSessionStore opens (or creates) the database at dsn and applies the
// schema. A non-positive ttl falls back to storage.DefaultTTL.
func NewSessionStore(dsn string, ttl time.Duration) (*SessionStore, error) {
	if ttl <= 0 {
		ttl = storage.DefaultTTL
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}
	return &SessionStore{db: db, ttl: ttl}, nil
}

// Get implements storage.SessionStore.
func (s *SessionStore) Get(ctx context.Context, userID string) (*types.Session, error) {
	var payload, updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload, updated_at FROM sessions WHERE user_id = ?", userID,
	).Scan(&payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to load session: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: corrupt session timestamp: %w", err)
	}
	if time.Now().UTC().Sub(ts) > s.ttl {
		// Lazy eviction: expired sessions are absent.
		_, _ = s.db.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = ?", userID)
		return nil, storage.ErrNotFound
	}

	var session types.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("sqlite: corrupt session payload: %w", err)
	}
	return &session, nil
}

// Put implements storage.SessionStore.
func (s *SessionStore) Put(ctx context.Context, session *types.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("sqlite: failed to encode session: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, session.UserID, string(payload), session.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlite: failed to store session: %w", err)
	}
	return nil
}

// Delete implements storage.SessionStore.
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("sqlite: failed to delete session: %w", err)
	}
	return nil
}

// Close implements storage.SessionStore.
func (s *SessionStore) Close() error {
	return s.db.Close()
}
