package repository

import (
	"context"

	"community-board/internal/domain"
)

// PostRepository persists the three post kinds. Each Create is a single
// implicit transaction; the repository trusts its caller and does not
// re-validate fields. Listings are newest first (insertion order descending)
// and an empty slice is a valid result, not an error.
type PostRepository interface {
	CreateLostFound(ctx context.Context, post *domain.LostFoundPost) error
	ListLostFound(ctx context.Context) ([]domain.LostFoundPost, error)

	CreateComplaint(ctx context.Context, complaint *domain.Complaint) error
	ListComplaints(ctx context.Context) ([]domain.Complaint, error)

	CreateHelp(ctx context.Context, post *domain.HelpPost) error
	ListHelp(ctx context.Context) ([]domain.HelpPost, error)

	// FileReferenced reports whether any post of any kind references the
	// stored filename. Used by the orphan sweep.
	FileReferenced(ctx context.Context, name string) (bool, error)
}

// CommentRepository persists comments. The post reference is weak; creating a
// comment never checks that the post exists.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error)
}
