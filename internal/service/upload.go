package service

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadPolicy decides whether a submitted file is acceptable and derives the
// name it is stored under. It never touches the filesystem.
type UploadPolicy struct {
	allowed  map[string]bool
	maxBytes int64 // 0 means no limit
}

// NewUploadPolicy builds a policy from the configured extension allow-list
// (compared case-insensitively, without the dot) and the optional size cap.
func NewUploadPolicy(extensions []string, maxBytes int64) *UploadPolicy {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = true
		}
	}
	return &UploadPolicy{allowed: allowed, maxBytes: maxBytes}
}

// Validate accepts a file only if the name carries an allow-listed extension
// and the size is within the cap. Returns ErrRejectedUpload otherwise.
func (p *UploadPolicy) Validate(filename string, size int64) error {
	ext := extension(filename)
	if ext == "" || !p.allowed[ext] {
		return ErrRejectedUpload
	}
	if p.maxBytes > 0 && size > p.maxBytes {
		return ErrRejectedUpload
	}
	return nil
}

// StorageName derives a collision-safe on-disk name: the sanitized original
// name prefixed with a random uuid. Two uploads of the same file never share
// a name, so the caller needs no overwrite discipline.
func (p *UploadPolicy) StorageName(filename string) string {
	return uuid.NewString() + "_" + sanitizeFilename(filename)
}

// extension returns the lowercased extension without the dot, or "" when the
// name has none.
func extension(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// sanitizeFilename reduces the client-supplied name to a safe bare entry:
// path components are dropped, traversal sequences collapse, and anything
// outside [A-Za-z0-9._-] becomes '_'.
func sanitizeFilename(filename string) string {
	// Clients may send either separator regardless of their OS.
	filename = strings.ReplaceAll(filename, `\`, "/")
	filename = filepath.Base(filename)

	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	safe := b.String()
	for strings.Contains(safe, "..") {
		safe = strings.ReplaceAll(safe, "..", ".")
	}
	safe = strings.Trim(safe, "._")
	if safe == "" {
		safe = "file"
	}
	return safe
}
