package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"community-board/internal/repository"
	"community-board/internal/tasks"
)

// UploadSweepHandler removes orphaned files from the upload directory. A file
// becomes an orphan when the process dies between writing the upload and
// inserting the row that references it; within a live request the service
// already compensates, so the sweep only covers the crash window.
type UploadSweepHandler struct {
	postRepo  repository.PostRepository
	fileStore repository.FileStore
}

// NewUploadSweepHandler creates the handler.
func NewUploadSweepHandler(postRepo repository.PostRepository, fileStore repository.FileStore) *UploadSweepHandler {
	return &UploadSweepHandler{postRepo: postRepo, fileStore: fileStore}
}

// ProcessTask implements asynq.Handler.
func (h *UploadSweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithField("task_type", t.Type())
	logCtx.Info("Processing upload sweep task...")

	var payload tasks.UploadSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.OlderThan <= 0 {
		payload.OlderThan = time.Hour
	}

	cutoff := time.Now().Add(-payload.OlderThan)
	candidates, err := h.fileStore.ListOlderThan(ctx, cutoff)
	if err != nil {
		logCtx.WithError(err).Error("Failed to list upload directory")
		return fmt.Errorf("failed to list stored files: %w", err)
	}

	removed := 0
	for _, name := range candidates {
		referenced, err := h.postRepo.FileReferenced(ctx, name)
		if err != nil {
			logCtx.WithError(err).WithField("file", name).Error("Failed to check file reference")
			return fmt.Errorf("failed to check reference for %q: %w", name, err)
		}
		if referenced {
			continue
		}
		if err := h.fileStore.Remove(ctx, name); err != nil {
			logCtx.WithError(err).WithField("file", name).Warn("Failed to remove orphaned file")
			continue
		}
		logCtx.WithField("file", name).Info("Removed orphaned upload")
		removed++
	}

	logCtx.WithFields(logrus.Fields{"candidates": len(candidates), "removed": removed}).Info("Upload sweep task processed")
	return nil
}
