// Package memory provides the process-local session store. It is the default
// backend: volatile by design, correct within a single process lifetime.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/skrylnikov/arcana/internal/storage"
	"github.com/skrylnikov/arcana/pkg/types"
)

// Store keeps sessions in a map guarded by a mutex. Expired entries are
// dropped on access.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*types.Session
	ttl      time.Duration
}

// NewStore creates an in-memory store. A non-positive ttl falls back to
// storage.DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = storage.DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*types.Session),
		ttl:      ttl,
	}
}

// Get implements storage.SessionStore.
func (s *Store) Get(_ context.Context, userID string) (*types.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[userID]
	s.mu.RUnlock()

	if !ok {
		return nil, storage.ErrNotFound
	}
	if session.ExpiredAt(time.Now().UTC(), s.ttl) {
		s.mu.Lock()
		delete(s.sessions, userID)
		s.mu.Unlock()
		return nil, storage.ErrNotFound
	}

	clone := *session
	return &clone, nil
}

// Put implements storage.SessionStore.
func (s *Store) Put(_ context.Context, session *types.Session) error {
	clone := *session
	s.mu.Lock()
	s.sessions[session.UserID] = &clone
	s.mu.Unlock()
	return nil
}

// Delete implements storage.SessionStore.
func (s *Store) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
	return nil
}

// Close implements storage.SessionStore.
func (s *Store) Close() error {
	s.mu.Lock()
	s.sessions = make(map[string]*types.Session)
	s.mu.Unlock()
	return nil
}
