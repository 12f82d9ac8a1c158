package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"community-board/internal/domain"
)

// GormCommentRepository is the gorm implementation of
// repository.CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates the repository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCommentRepository")
	}
	return &GormCommentRepository{db: db}
}

// Create inserts the comment. The post reference is not checked; posts are
// never deleted so a dangling reference cannot appear after the fact either.
func (r *GormCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("gorm: create comment for post %d: %w", comment.PostID, err)
	}
	return nil
}

// ListByPost returns the post's comments, newest first.
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	comments := make([]domain.Comment, 0)
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id DESC").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list comments for post %d: %w", postID, err)
	}
	return comments, nil
}
