package domain

import (
	"io"
	"time"
)

// PendingUpload is a file received with a form submission, not yet validated
// or written to disk.
type PendingUpload struct {
	Filename string
	Size     int64
	Data     io.Reader
}

// StoredUpload describes a file already written to the upload directory.
type StoredUpload struct {
	Name string // bare filesystem entry, no path components
	Size int64
}

// Session is a server-side login record. The client holds a signed token
// carrying the session ID; the record here is what logout invalidates.
type Session struct {
	ID        string
	UserID    uint
	Username  string
	ExpiresAt time.Time
}

// Expired reports whether the session's TTL has elapsed.
func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
