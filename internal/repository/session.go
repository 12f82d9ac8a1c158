package repository

import (
	"context"
	"time"

	"community-board/internal/domain"
)

// SessionRepository is the server-side token-to-identity mapping. A session is
// created at login with a TTL, looked up by the session gate on every
// protected request, and deleted at logout. Expiry is enforced by the store:
// Find never returns an expired session.
type SessionRepository interface {
	// Save stores the session and arranges for it to expire after ttl.
	Save(ctx context.Context, session domain.Session, ttl time.Duration) error

	// Find returns ErrSessionNotFound for unknown or expired session IDs.
	Find(ctx context.Context, id string) (*domain.Session, error)

	// Delete invalidates the session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}
