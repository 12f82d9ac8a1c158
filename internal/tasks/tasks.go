// Package tasks defines the asynq task types and payloads.
package tasks

import (
	"encoding/json"
	"time"
)

// Task type identifiers.
const (
	// TypeUploadSweep scans the upload directory for orphaned files: an
	// upload written for a request whose row insert never landed (crash
	// between the two effects) is referenced by no post and can be removed.
	TypeUploadSweep = "upload:sweep"
)

// UploadSweepPayload configures one sweep run.
type UploadSweepPayload struct {
	// OlderThan protects in-flight uploads: only files whose modification
	// time is at least this old are candidates.
	OlderThan time.Duration `json:"older_than"`
}

// NewUploadSweepTask builds the payload for a sweep task.
func NewUploadSweepTask(olderThan time.Duration) ([]byte, error) {
	payload := UploadSweepPayload{OlderThan: olderThan}
	return json.Marshal(payload)
}
