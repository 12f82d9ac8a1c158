package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"community-board/internal/domain"
)

// SessionRepository is a mock of repository.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Save(ctx context.Context, session domain.Session, ttl time.Duration) error {
	args := m.Called(ctx, session, ttl)
	return args.Error(0)
}

func (m *SessionRepository) Find(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	var session *domain.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*domain.Session)
	}
	return session, args.Error(1)
}

func (m *SessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// FileStore is a mock of repository.FileStore.
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Save(ctx context.Context, name string, upload domain.PendingUpload) (*domain.StoredUpload, error) {
	args := m.Called(ctx, name, upload)
	var stored *domain.StoredUpload
	if args.Get(0) != nil {
		stored = args.Get(0).(*domain.StoredUpload)
	}
	return stored, args.Error(1)
}

func (m *FileStore) Remove(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *FileStore) ListOlderThan(ctx context.Context, cutoff time.Time) ([]string, error) {
	args := m.Called(ctx, cutoff)
	var names []string
	if args.Get(0) != nil {
		names = args.Get(0).([]string)
	}
	return names, args.Error(1)
}
