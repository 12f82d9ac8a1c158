package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"community-board/internal/domain"
)

// GormPostRepository is the gorm implementation of repository.PostRepository.
// Listings order by id descending: ids are strictly increasing, so this is
// newest-first with no ties.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates the repository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) CreateLostFound(ctx context.Context, post *domain.LostFoundPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("gorm: create lostfound post: %w", err)
	}
	return nil
}

func (r *GormPostRepository) ListLostFound(ctx context.Context) ([]domain.LostFoundPost, error) {
	posts := make([]domain.LostFoundPost, 0)
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("gorm: list lostfound posts: %w", err)
	}
	return posts, nil
}

func (r *GormPostRepository) CreateComplaint(ctx context.Context, complaint *domain.Complaint) error {
	if err := r.db.WithContext(ctx).Create(complaint).Error; err != nil {
		return fmt.Errorf("gorm: create complaint: %w", err)
	}
	return nil
}

func (r *GormPostRepository) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	complaints := make([]domain.Complaint, 0)
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("gorm: list complaints: %w", err)
	}
	return complaints, nil
}

func (r *GormPostRepository) CreateHelp(ctx context.Context, post *domain.HelpPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("gorm: create help post: %w", err)
	}
	return nil
}

func (r *GormPostRepository) ListHelp(ctx context.Context) ([]domain.HelpPost, error) {
	posts := make([]domain.HelpPost, 0)
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("gorm: list help posts: %w", err)
	}
	return posts, nil
}

// FileReferenced checks the three file columns for the stored name.
func (r *GormPostRepository) FileReferenced(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.LostFoundPost{}).Where("image = ?", name).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: check lostfound file reference %q: %w", name, err)
	}
	if count > 0 {
		return true, nil
	}
	err = r.db.WithContext(ctx).Model(&domain.Complaint{}).Where("image = ?", name).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: check complaint file reference %q: %w", name, err)
	}
	if count > 0 {
		return true, nil
	}
	err = r.db.WithContext(ctx).Model(&domain.HelpPost{}).Where("share_file = ?", name).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: check help file reference %q: %w", name, err)
	}
	return count > 0, nil
}
