// Package repository declares the storage interfaces the services depend on.
// Implementations live under internal/infra.
package repository

import (
	"context"

	"community-board/internal/domain"
)

// UserRepository stores and retrieves account records.
type UserRepository interface {
	// FindByUsername returns ErrUserNotFound if no such account exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID returns ErrUserNotFound if no such account exists.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// Save creates the user (or updates it when the ID is already set).
	// Returns ErrDuplicateEntry when username or email is already taken.
	Save(ctx context.Context, user *domain.User) error
}
