// Package memorysession implements repository.SessionRepository in process
// memory. It is the default store when no redis address is configured: the
// session contract is a single-process TTL'd token-to-identity map, which a
// mutex-guarded map satisfies. Sessions do not survive a restart.
package memorysession

import (
	"context"
	"sync"
	"time"

	"community-board/internal/domain"
	"community-board/internal/repository"
)

// MemorySessionRepository keeps session records in a map, expiring them
// lazily on access.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewMemorySessionRepository creates an empty store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]domain.Session)}
}

// Save stores the session. ExpiresAt is derived from ttl here so both store
// implementations enforce the same deadline.
func (r *MemorySessionRepository) Save(_ context.Context, session domain.Session, ttl time.Duration) error {
	session.ExpiresAt = time.Now().Add(ttl)
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
	return nil
}

// Find returns repository.ErrSessionNotFound for unknown or expired IDs.
// Expired entries are removed on the way out.
func (r *MemorySessionRepository) Find(_ context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if session.Expired() {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, repository.ErrSessionNotFound
	}
	return &session, nil
}

// Delete invalidates the session.
func (r *MemorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}
