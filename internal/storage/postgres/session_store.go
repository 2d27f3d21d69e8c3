// Package postgres provides the Postgres-backed session store for
// deployments where sessions must survive process restarts across replicas.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Postgres driver

	"github.com/skrylnikov/arcana/internal/storage"
	"github.com/skrylnikov/arcana/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	user_id    TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
`

// SessionStore implements storage.SessionStore using Postgres.
type SessionStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSessionStore connects to the database and applies the schema.
// A non-positive ttl falls back to storage.DefaultTTL.
func NewSessionStore(connString string, ttl time.Duration) (*SessionStore, error) {
	if ttl <= 0 {
		ttl = storage.DefaultTTL
	}
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to connect: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: failed to apply schema: %w", err)
	}
	return &SessionStore{db: db, ttl: ttl}, nil
}

// Get implements storage.SessionStore.
func (s *SessionStore) Get(ctx context.Context, userID string) (*types.Session, error) {
	var payload []byte
	var updatedAt time.Time
	err := s.db.QueryRowContext(ctx,
		"SELECT payload, updated_at FROM sessions WHERE user_id = $1", userID,
	).Scan(&payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to load session: %w", err)
	}

	if time.Now().UTC().Sub(updatedAt) > s.ttl {
		_, _ = s.db.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = $1", userID)
		return nil, storage.ErrNotFound
	}

	var session types.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("postgres: corrupt session payload: %w", err)
	}
	return &session, nil
}

// Put implements storage.SessionStore.
func (s *SessionStore) Put(ctx context.Context, session *types.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode session: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`, session.UserID, payload, session.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("postgres: failed to store session: %w", err)
	}
	return nil
}

// Delete implements storage.SessionStore.
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("postgres: failed to delete session: %w", err)
	}
	return nil
}

// Close implements storage.SessionStore.
func (s *SessionStore) Close() error {
	return s.db.Close()
}
