package repository

import (
	"context"
	"time"

	"community-board/internal/domain"
)

// FileStore writes uploaded files into the upload directory. Names passed in
// must already be safe bare entries (see service.UploadPolicy.StorageName).
type FileStore interface {
	// Save writes the upload under name and returns the stored file.
	Save(ctx context.Context, name string, upload domain.PendingUpload) (*domain.StoredUpload, error)

	// Remove deletes a stored file. Removing a missing file is not an error;
	// it is the compensation path when a row insert fails after the write.
	Remove(ctx context.Context, name string) error

	// ListOlderThan returns the names of stored files whose modification time
	// is before cutoff. Used by the orphan sweep.
	ListOlderThan(ctx context.Context, cutoff time.Time) ([]string, error)
}
