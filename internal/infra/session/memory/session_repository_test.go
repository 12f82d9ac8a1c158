package memorysession

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"community-board/internal/domain"
	"community-board/internal/repository"
)

func TestMemorySessionRepository_SaveFindDelete(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	session := domain.Session{ID: "sid-1", UserID: 42, Username: "alice"}
	require.NoError(t, repo.Save(ctx, session, time.Hour))

	found, err := repo.Find(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, uint(42), found.UserID)
	assert.Equal(t, "alice", found.Username)
	assert.False(t, found.ExpiresAt.IsZero(), "Save must set the deadline from the TTL")

	require.NoError(t, repo.Delete(ctx, "sid-1"))
	_, err = repo.Find(ctx, "sid-1")
	assert.True(t, errors.Is(err, repository.ErrSessionNotFound))
}

func TestMemorySessionRepository_Find_Unknown(t *testing.T) {
	repo := NewMemorySessionRepository()
	_, err := repo.Find(context.Background(), "never-existed")
	assert.True(t, errors.Is(err, repository.ErrSessionNotFound))
}

func TestMemorySessionRepository_Find_Expired(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	session := domain.Session{ID: "sid-2", UserID: 1, Username: "bob"}
	require.NoError(t, repo.Save(ctx, session, -time.Second))

	_, err := repo.Find(ctx, "sid-2")
	assert.True(t, errors.Is(err, repository.ErrSessionNotFound))

	// The expired entry is dropped, so a second lookup behaves the same.
	_, err = repo.Find(ctx, "sid-2")
	assert.True(t, errors.Is(err, repository.ErrSessionNotFound))
}

func TestMemorySessionRepository_DeleteUnknownIsNoError(t *testing.T) {
	repo := NewMemorySessionRepository()
	assert.NoError(t, repo.Delete(context.Background(), "ghost"))
}
