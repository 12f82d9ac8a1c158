package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"community-board/internal/domain"
)

// PostRepository is a mock of repository.PostRepository.
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) CreateLostFound(ctx context.Context, post *domain.LostFoundPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) ListLostFound(ctx context.Context) ([]domain.LostFoundPost, error) {
	args := m.Called(ctx)
	var posts []domain.LostFoundPost
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.LostFoundPost)
	}
	return posts, args.Error(1)
}

func (m *PostRepository) CreateComplaint(ctx context.Context, complaint *domain.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *PostRepository) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	args := m.Called(ctx)
	var complaints []domain.Complaint
	if args.Get(0) != nil {
		complaints = args.Get(0).([]domain.Complaint)
	}
	return complaints, args.Error(1)
}

func (m *PostRepository) CreateHelp(ctx context.Context, post *domain.HelpPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) ListHelp(ctx context.Context) ([]domain.HelpPost, error) {
	args := m.Called(ctx)
	var posts []domain.HelpPost
	if args.Get(0) != nil {
		posts = args.Get(0).([]domain.HelpPost)
	}
	return posts, args.Error(1)
}

func (m *PostRepository) FileReferenced(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// CommentRepository is a mock of repository.CommentRepository.
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	var comments []domain.Comment
	if args.Get(0) != nil {
		comments = args.Get(0).([]domain.Comment)
	}
	return comments, args.Error(1)
}
