package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"community-board/internal/domain"
	"community-board/internal/repository"
)

// LostFoundInput carries the raw lost-and-found form fields.
type LostFoundInput struct {
	Name        string
	Category    string
	Type        string
	Item        string
	Description string
}

// ComplaintInput carries the raw complaint form fields.
type ComplaintInput struct {
	Name  string
	Issue string
}

// HelpInput carries the raw help-and-sharing form fields.
type HelpInput struct {
	Name    string
	Message string
}

// PostService validates submissions, stores attachments and persists posts.
// The attachment write and the row insert are separate effects; when the
// insert fails the just-written file is removed so no orphan survives a
// failed request.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	fileStore   repository.FileStore
	uploads     *UploadPolicy
}

// NewPostService creates the service.
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, fileStore repository.FileStore, uploads *UploadPolicy) *PostService {
	if postRepo == nil {
		panic("PostRepository cannot be nil for PostService")
	}
	if commentRepo == nil {
		panic("CommentRepository cannot be nil for PostService")
	}
	if fileStore == nil {
		panic("FileStore cannot be nil for PostService")
	}
	if uploads == nil {
		panic("UploadPolicy cannot be nil for PostService")
	}
	return &PostService{postRepo: postRepo, commentRepo: commentRepo, fileStore: fileStore, uploads: uploads}
}

// CreateLostFound validates and persists a lost-and-found post. upload may be
// nil; the post then carries a null image reference.
func (s *PostService) CreateLostFound(ctx context.Context, input LostFoundInput, upload *domain.PendingUpload) (*domain.LostFoundPost, error) {
	name, okName := cleanText(input.Name, MaxNameLen)
	category, okCat := cleanText(input.Category, MaxCategoryLen)
	item, okItem := cleanText(input.Item, MaxItemLen)
	description, okDesc := cleanText(input.Description, MaxDescriptionLen)
	if !okName || !okCat || !okItem || !okDesc {
		return nil, ErrValidationFailed
	}
	if !validCategory(category) {
		return nil, ErrInvalidCategory
	}
	// Type is optional; when given it must be Lost or Found.
	postType, _ := cleanText(input.Type, MaxCategoryLen)
	if postType != "" && !validType(postType) {
		return nil, ErrValidationFailed
	}

	stored, rejected, err := s.storeUpload(ctx, upload)
	if err != nil {
		return nil, err
	}

	post := &domain.LostFoundPost{
		Name:        name,
		Category:    category,
		Type:        postType,
		Item:        item,
		Description: description,
		Image:       stored,
	}
	if err := s.postRepo.CreateLostFound(ctx, post); err != nil {
		s.discardUpload(ctx, stored)
		logrus.WithError(err).Error("Failed to insert lostfound post")
		return nil, ErrInternalServer
	}
	logrus.WithFields(logrus.Fields{"post_id": post.ID, "category": category}).Info("Lost-and-found post created")
	if rejected {
		return post, ErrRejectedUpload
	}
	return post, nil
}

// CreateComplaint validates and persists a complaint.
func (s *PostService) CreateComplaint(ctx context.Context, input ComplaintInput, upload *domain.PendingUpload) (*domain.Complaint, error) {
	name, okName := cleanText(input.Name, MaxNameLen)
	issue, okIssue := cleanText(input.Issue, MaxIssueLen)
	if !okName || !okIssue {
		return nil, ErrValidationFailed
	}

	stored, rejected, err := s.storeUpload(ctx, upload)
	if err != nil {
		return nil, err
	}

	complaint := &domain.Complaint{Name: name, Issue: issue, Image: stored}
	if err := s.postRepo.CreateComplaint(ctx, complaint); err != nil {
		s.discardUpload(ctx, stored)
		logrus.WithError(err).Error("Failed to insert complaint")
		return nil, ErrInternalServer
	}
	logrus.WithField("post_id", complaint.ID).Info("Complaint created")
	if rejected {
		return complaint, ErrRejectedUpload
	}
	return complaint, nil
}

// CreateHelp validates and persists a help request.
func (s *PostService) CreateHelp(ctx context.Context, input HelpInput, upload *domain.PendingUpload) (*domain.HelpPost, error) {
	name, okName := cleanText(input.Name, MaxNameLen)
	message, okMsg := cleanText(input.Message, MaxMessageLen)
	if !okName || !okMsg {
		return nil, ErrValidationFailed
	}

	stored, rejected, err := s.storeUpload(ctx, upload)
	if err != nil {
		return nil, err
	}

	post := &domain.HelpPost{Name: name, Message: message, ShareFile: stored}
	if err := s.postRepo.CreateHelp(ctx, post); err != nil {
		s.discardUpload(ctx, stored)
		logrus.WithError(err).Error("Failed to insert help post")
		return nil, ErrInternalServer
	}
	logrus.WithField("post_id", post.ID).Info("Help post created")
	if rejected {
		return post, ErrRejectedUpload
	}
	return post, nil
}

// ListLostFound returns lost-and-found posts newest first.
func (s *PostService) ListLostFound(ctx context.Context) ([]domain.LostFoundPost, error) {
	posts, err := s.postRepo.ListLostFound(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list lostfound posts")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// ListComplaints returns complaints newest first.
func (s *PostService) ListComplaints(ctx context.Context) ([]domain.Complaint, error) {
	complaints, err := s.postRepo.ListComplaints(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list complaints")
		return nil, ErrInternalServer
	}
	return complaints, nil
}

// ListHelp returns help posts newest first.
func (s *PostService) ListHelp(ctx context.Context) ([]domain.HelpPost, error) {
	posts, err := s.postRepo.ListHelp(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list help posts")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// AddComment validates and persists a comment on a post. The post reference
// stays weak; commenting on an unknown id succeeds by design.
func (s *PostService) AddComment(ctx context.Context, postID uint, text string) (*domain.Comment, error) {
	text, ok := cleanText(text, MaxCommentLen)
	if !ok || postID == 0 {
		return nil, ErrValidationFailed
	}
	comment := &domain.Comment{PostID: postID, Comment: text}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("Failed to insert comment")
		return nil, ErrInternalServer
	}
	return comment, nil
}

// ListComments returns a post's comments newest first.
func (s *PostService) ListComments(ctx context.Context, postID uint) ([]domain.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("Failed to list comments")
		return nil, ErrInternalServer
	}
	return comments, nil
}

// storeUpload validates and writes an optional attachment, returning the
// stored name for the row. A nil upload or one with an empty filename yields
// a nil reference. A file that fails policy does not block the post: the
// attachment is dropped, rejected is true, and the caller reports the
// rejection alongside the created post. Only infrastructure failures abort.
func (s *PostService) storeUpload(ctx context.Context, upload *domain.PendingUpload) (stored *string, rejected bool, err error) {
	if upload == nil || upload.Filename == "" {
		return nil, false, nil
	}
	if err := s.uploads.Validate(upload.Filename, upload.Size); err != nil {
		logrus.WithField("filename", upload.Filename).Warn("Attachment rejected by upload policy")
		return nil, true, nil
	}
	name := s.uploads.StorageName(upload.Filename)
	file, err := s.fileStore.Save(ctx, name, *upload)
	if err != nil {
		logrus.WithError(err).WithField("filename", upload.Filename).Error("Failed to store upload")
		return nil, false, ErrInternalServer
	}
	return &file.Name, false, nil
}

// discardUpload removes a file written for a row that failed to insert.
func (s *PostService) discardUpload(ctx context.Context, stored *string) {
	if stored == nil {
		return
	}
	if err := s.fileStore.Remove(ctx, *stored); err != nil {
		logrus.WithError(err).WithField("file", *stored).Warn("Failed to remove upload after insert failure")
	}
}
