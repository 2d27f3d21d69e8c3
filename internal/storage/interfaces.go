// Package storage defines the session persistence boundary. The core only
// needs a key-value store keyed by user identifier with a time-to-live; the
// backends range from a process-local map (the default, so the core works
// with no external services) to SQLite and Postgres.
//
// Eviction is lazy: expired sessions are treated as absent on the next
// lookup, there is no background sweep.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/skrylnikov/arcana/pkg/types"
)

// ErrNotFound indicates no live session exists for the user identifier.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is the inactivity window after which a session is evicted.
const DefaultTTL = 24 * time.Hour

// SessionStore persists per-user conversation sessions.
// Implementations must be safe for concurrent use; the engine additionally
// serializes all operations for a given user identifier.
type SessionStore interface {
	// Get returns the session for the user id, or ErrNotFound when none
	// exists or its inactivity window has elapsed.
	Get(ctx context.Context, userID string) (*types.Session, error)

	// Put stores the session, refreshing its time-to-live.
	Put(ctx context.Context, session *types.Session) error

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, userID string) error

	// Close releases any resources held by the store.
	Close() error
}
